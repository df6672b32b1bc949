package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var metaKeys = map[string]bool{
	"locale":   true,
	"fallback": true,
	"note":     true,
	"plural":   true,
}

// parseText implements the line-oriented text catalog reader (spec §4.1).
// It builds a new snapshot; on failure it returns nil and the partially
// built snapshot is dropped.
func parseText(src []byte, strict bool) (*CatalogSnapshot, error) {
	src = stripBOM(src)
	text := string(src)
	lines := strings.Split(text, "\n")

	snap := newSnapshot()
	meta := Metadata{}

	metaPhase := true

	for i, rawLine := range lines {
		lineNo := i + 1
		line := rawLine
		line = strings.TrimSuffix(line, "\r")

		trimmed := trimASCIISpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if metaPhase && strings.HasPrefix(trimmed, "@meta ") {
			key, value, ok := parseMetaLine(trimmed)
			if !ok {
				if strict {
					return nil, &ParseError{Line: lineNo, Reason: "malformed meta directive"}
				}
				continue
			}
			if !metaKeys[key] {
				if strict {
					return nil, &ParseError{Line: lineNo, Reason: "unknown meta key: " + key}
				}
				continue
			}
			applyMeta(&meta, key, value)
			continue
		}

		if metaPhase {
			metaPhase = false
		} else if strings.HasPrefix(trimmed, "@meta ") {
			if strict {
				return nil, &ParseError{Line: lineNo, Reason: "meta directive after first entry"}
			}
			continue
		}

		if err := parseEntryLine(snap, trimmed, lineNo, strict); err != nil {
			var dup *DuplicateTokenError
			if errors.As(err, &dup) || strict {
				return nil, err
			}
			continue
		}
	}

	if snap.entryCount() == 0 {
		return nil, ErrEmptyCatalog
	}

	snap.metadata = meta
	snap.populateStyleRegistry()
	return snap, nil
}

// parseMetaLine splits "@meta <key> = <value>" into key/value. Whitespace
// around key and value is trimmed.
func parseMetaLine(line string) (key, value string, ok bool) {
	rest := strings.TrimPrefix(line, "@meta ")
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return "", "", false
	}
	key = foldToken(trimASCIISpace(rest[:eq]))
	value = trimASCIISpace(rest[eq+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func applyMeta(meta *Metadata, key, value string) {
	switch key {
	case "locale":
		meta.Locale = value
	case "fallback":
		meta.Fallback = value
	case "note":
		meta.Note = value
	case "plural":
		meta.PluralRule = ParsePluralRule(value)
	}
}

// parseEntryLine parses "head ':' text" where head = token ('(' label ')')?.
func parseEntryLine(snap *CatalogSnapshot, line string, lineNo int, strict bool) error {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return &ParseError{Line: lineNo, Reason: "missing ':'"}
	}
	head := trimASCIISpace(line[:colon])
	rawText := trimASCIISpace(line[colon+1:])

	tokenPart := head
	label := ""
	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return &ParseError{Line: lineNo, Reason: "unterminated '('"}
		}
		label = trimASCIISpace(head[open+1 : len(head)-1])
		tokenPart = trimASCIISpace(head[:open])
	}

	base, variant, ok := validateToken(tokenPart)
	if !ok {
		if strict {
			return &ParseError{Line: lineNo, Reason: fmt.Sprintf("invalid token: %q", tokenPart)}
		}
		return &ParseError{Line: lineNo, Reason: "invalid token (skipped)"}
	}

	template := unescapeText(rawText)

	if err := snap.addEntry(base, variant, template, label); err != nil {
		// duplicate token is always fatal, even in non-strict mode.
		return err
	}
	return nil
}
