package catalog

import "strconv"

// nativeStyleFor projects a style token's property list into a NativeStyle
// record, per spec §4.7. Bare properties are ignored; unrecognized names
// and unparsable values are ignored without affecting HasPhysical.
func nativeStyleFor(snap *CatalogSnapshot, token string, args []string) NativeStyle {
	out := DefaultNativeStyle()
	if snap == nil {
		return out
	}

	props, ok := snap.styleProperties(token)
	if !ok {
		return out
	}

	rc := &resolveCtx{snap: snap, seen: map[string]struct{}{token: {}}}

	for _, p := range props {
		if p.IsBare() {
			continue
		}

		name := p.Name
		name = stripDoubleDash(name)

		var target *float64
		switch name {
		case "mass":
			target = &out.Mass
		case "friction":
			target = &out.Friction
		case "restitution":
			target = &out.Restitution
		case "drag":
			target = &out.Drag
		case "gravity-scale", "gravity_scale":
			target = &out.GravityScale
		case "spacing", "gap":
			target = &out.Spacing
		default:
			continue
		}

		resolved := resolvePlainRef(rc, p.Value, args, 0)
		value, err := strconv.ParseFloat(resolved, 64)
		if err != nil {
			continue
		}

		*target = value
		out.HasPhysical = true
	}

	return out
}

func stripDoubleDash(name string) string {
	if len(name) >= 2 && name[0] == '-' && name[1] == '-' {
		return name[2:]
	}
	return name
}
