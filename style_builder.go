package catalog

import "strings"

// buildStyleString builds the canonical declaration string for a style
// token's property list (spec §4.6). ok is false when the registry entry
// is absent, empty, or the buffer collapses to empty — callers then fall
// back to normal template expansion.
func buildStyleString(rc *resolveCtx, token string, args []string, depth int) (string, bool) {
	props, ok := rc.snap.styleProperties(token)
	if !ok || len(props) == 0 {
		return "", false
	}

	var b strings.Builder
	// Bare fragments are emitted as a leading block, then named declarations,
	// regardless of how the two kinds were interleaved in the source template.
	for _, p := range props {
		if !p.IsBare() {
			continue
		}
		resolved := resolvePlainRef(rc, p.Value, args, depth)
		if resolved == "" {
			continue
		}
		appendWithSpaceGuard(&b, resolved)
		b.WriteByte(' ')
	}

	for _, p := range props {
		if p.IsBare() {
			continue
		}
		resolved := resolvePlainRef(rc, p.Value, args, depth)
		appendWithSpaceGuard(&b, p.Name+": "+resolved+";")
	}

	out := strings.TrimRight(b.String(), " ")
	return out, out != ""
}

// resolvePlainRef resolves a property value as plain text (spec §4.3.2):
// embedded %N/@ref forms are expanded the same as a normal template, except
// that any @ref encountered routes through resolvePlain rather than resolve,
// so nested style tokens yield their raw template instead of a rebuilt
// canonical style string.
func resolvePlainRef(rc *resolveCtx, value string, args []string, depth int) string {
	return rc.expandTemplate(value, args, depth, rc.resolvePlain)
}

// appendWithSpaceGuard appends s to b, preceding it with a single space if
// the buffer is non-empty and does not already end in a space (spec §4.6, §9).
func appendWithSpaceGuard(b *strings.Builder, s string) {
	cur := b.String()
	if len(cur) > 0 && cur[len(cur)-1] != ' ' {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}
