package catalog

import "strings"

// minHexTokenLen and maxHexTokenLen bound a hex base token per the catalog grammar.
const (
	minHexTokenLen = 6
	maxHexTokenLen = 32

	minVariantLen = 1
	maxVariantLen = 16

	stylePrefix = "style_"
)

// foldToken lower-cases an ASCII token. Catalog tokens are defined as lowercase
// ASCII, so this only folds 'A'-'Z'; it does not attempt full Unicode case folding.
func foldToken(s string) string {
	var b strings.Builder
	needsFold := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			needsFold = true
			break
		}
	}
	if !needsFold {
		return s
	}
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func trimASCIISpace(s string) string {
	return strings.Trim(s, " \t")
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

func isIdentByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// isHexToken reports whether base is a valid hex token: 6-32 lowercase hex digits.
func isHexToken(base string) bool {
	if len(base) < minHexTokenLen || len(base) > maxHexTokenLen {
		return false
	}
	for i := 0; i < len(base); i++ {
		if !isHexDigit(base[i]) {
			return false
		}
	}
	return true
}

// isStyleToken reports whether base is a valid style token: "style_" followed
// by 1+ characters from [a-z0-9_-].
func isStyleToken(base string) bool {
	if !strings.HasPrefix(base, stylePrefix) {
		return false
	}
	rest := base[len(stylePrefix):]
	if len(rest) == 0 {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !isIdentByte(rest[i]) {
			return false
		}
	}
	return true
}

// isValidBaseToken reports whether base satisfies the hex-token or style-token grammar.
func isValidBaseToken(base string) bool {
	return isHexToken(base) || isStyleToken(base)
}

// isValidVariant reports whether variant is 1-16 characters from [a-z0-9_-].
func isValidVariant(variant string) bool {
	if len(variant) < minVariantLen || len(variant) > maxVariantLen {
		return false
	}
	for i := 0; i < len(variant); i++ {
		if !isIdentByte(variant[i]) {
			return false
		}
	}
	return true
}

// splitVariant splits a token of the form base{variant} into its parts.
// If there is no variant suffix, variant is returned empty and ok is true
// as long as base itself is non-empty. ok is false on a malformed suffix
// (unterminated '{', trailing bytes after '}', or an empty variant).
func splitVariant(token string) (base, variant string, ok bool) {
	open := strings.IndexByte(token, '{')
	if open < 0 {
		return token, "", true
	}
	if !strings.HasSuffix(token, "}") {
		return "", "", false
	}
	variant = token[open+1 : len(token)-1]
	base = token[:open]
	if base == "" || variant == "" {
		return "", "", false
	}
	return base, variant, true
}

// joinVariant rebuilds base{variant}, or just base if variant is empty.
func joinVariant(base, variant string) string {
	if variant == "" {
		return base
	}
	return base + "{" + variant + "}"
}

// validateToken case-folds and validates a full token (base, or base{variant}).
func validateToken(raw string) (base, variant string, ok bool) {
	folded := foldToken(raw)
	base, variant, ok = splitVariant(folded)
	if !ok {
		return "", "", false
	}
	if !isValidBaseToken(base) {
		return "", "", false
	}
	if variant != "" && !isValidVariant(variant) {
		return "", "", false
	}
	return base, variant, true
}

// IsValidToken reports whether raw satisfies the catalog token grammar
// (hex or style_-prefixed base, optional {variant} suffix). Exported for
// external collaborators such as bundleimport that need to validate a
// candidate token without constructing a snapshot.
func IsValidToken(raw string) bool {
	_, _, ok := validateToken(raw)
	return ok
}

// stripBOM removes a leading UTF-8 byte-order mark, if present.
func stripBOM(b []byte) []byte {
	const bom = "\xef\xbb\xbf"
	if len(b) >= 3 && string(b[:3]) == bom {
		return b[3:]
	}
	return b
}

// unescapeText applies the catalog's backslash-escape rules to template text:
// \n \t \r \\ \: map to their control-character / literal forms; any other
// \x drops the backslash and keeps x verbatim.
func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case ':':
			b.WriteByte(':')
		default:
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}
