package catalog

import (
	"hash/fnv"
	"strings"
)

// fnv1a32 hashes name with FNV-1a/32, seed 0x811C9DC5, prime 0x01000193 —
// used both for style property name hashes (§4.5) and binary codec checksums (§4.2).
func fnv1a32(data []byte) uint32 {
	h := fnv.New32a()
	h.Write(data)
	return h.Sum32()
}

// parseStyleProperties splits a raw style template on ';' into an ordered
// list of properties, per spec §4.5.
func parseStyleProperties(template string) []StyleProperty {
	segments := strings.Split(template, ";")
	props := make([]StyleProperty, 0, len(segments))

	for _, seg := range segments {
		seg = trimASCIISpace(seg)
		if seg == "" {
			continue
		}

		colon := strings.IndexByte(seg, ':')
		if colon < 0 {
			if strings.HasPrefix(seg, "@") {
				props = append(props, StyleProperty{Name: "", Value: seg})
			}
			continue
		}

		name := foldToken(trimASCIISpace(seg[:colon]))
		value := trimASCIISpace(seg[colon+1:])
		if name == "" || value == "" {
			continue
		}

		props = append(props, StyleProperty{
			Name:     name,
			Value:    value,
			NameHash: fnv1a32([]byte(name)),
		})
	}

	return props
}
