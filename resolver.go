package catalog

import (
	"strconv"
	"strings"
)

const maxResolveDepth = 32

// resolveCtx carries the ambient state threaded through a single top-level
// resolve call: the snapshot being queried and the cycle-guard set. The
// recursion depth is passed to each call as a parameter (spec §4.3).
type resolveCtx struct {
	snap *CatalogSnapshot
	seen map[string]struct{}
}

// Translate resolves token (already case-folded/variant-resolved by the
// caller) against the snapshot, substituting args for %N placeholders and
// recursively expanding @ref inline references. It never fails: ill-formed
// input degrades to a textual sentinel (spec §7).
func translate(snap *CatalogSnapshot, token string, args []string) string {
	if snap == nil {
		return "⟦NO_CATALOG⟧"
	}
	rc := &resolveCtx{snap: snap, seen: make(map[string]struct{})}
	return rc.resolve(token, args, 0)
}

func (rc *resolveCtx) resolve(token string, args []string, depth int) string {
	if depth > maxResolveDepth {
		return "⟦RECURSION_LIMIT⟧"
	}
	if _, cyclic := rc.seen[token]; cyclic {
		return "⟦CYCLE:" + token + "⟧"
	}

	if rc.snap.isStyleCapable() {
		if _, ok := rc.snap.styleProperties(token); ok {
			if built, ok := buildStyleString(rc, token, args, depth); ok && built != "" {
				return built
			}
		}
	}

	entry, ok := rc.snap.lookup(token)
	if !ok {
		return "⟦" + token + "⟧"
	}

	rc.seen[token] = struct{}{}
	defer delete(rc.seen, token)

	return rc.expandTemplate(entry.Template, args, depth, rc.resolve)
}

// resolvePlain is the simplified resolver used by the style builder for the
// @refs found in a property value: no style short-circuit, but each token it
// expands is added to the cycle-guard set like resolve does, and @refs and
// %N are expanded with the same semantics. The property value itself has no
// token, so resolvePlainRef adds nothing to the set for it. Nested @refs
// encountered along the way continue to route through resolvePlain, so a
// style token referenced from a property value yields its raw template
// rather than re-triggering the canonical style-string short-circuit
// (spec §4.3.2, §4.6).
func (rc *resolveCtx) resolvePlain(token string, args []string, depth int) string {
	if depth > maxResolveDepth {
		return "⟦RECURSION_LIMIT⟧"
	}
	if _, cyclic := rc.seen[token]; cyclic {
		return "⟦CYCLE:" + token + "⟧"
	}

	entry, ok := rc.snap.lookup(token)
	if !ok {
		return "⟦" + token + "⟧"
	}

	rc.seen[token] = struct{}{}
	defer delete(rc.seen, token)

	return rc.expandTemplate(entry.Template, args, depth, rc.resolvePlain)
}

// expandTemplate walks template left to right, emitting @@ -> @, @ref
// expansion (recursing via resolveFn), %N placeholder substitution, and
// verbatim bytes otherwise.
func (rc *resolveCtx) expandTemplate(template string, args []string, depth int, resolveFn func(string, []string, int) string) string {
	var b strings.Builder
	b.Grow(len(template))

	i := 0
	n := len(template)
	for i < n {
		c := template[i]

		if c == '@' {
			if i+1 < n && template[i+1] == '@' {
				b.WriteByte('@')
				i += 2
				continue
			}
			if refToken, consumed, ok := scanInlineRef(template[i+1:]); ok {
				folded := foldToken(refToken)
				if _, hit := rc.snap.lookup(folded); hit {
					b.WriteString(resolveFn(folded, args, depth+1))
				} else {
					b.WriteString("⟦MISSING:@" + refToken + "⟧")
				}
				i += 1 + consumed
				continue
			}
			b.WriteByte('@')
			i++
			continue
		}

		if c == '%' && i+1 < n && isDigit(template[i+1]) {
			j := i + 1
			for j < n && isDigit(template[j]) {
				j++
			}
			idx, _ := strconv.Atoi(template[i+1 : j])
			if idx < len(args) {
				b.WriteString(rc.resolveArgument(args[idx], depth, resolveFn))
			} else {
				b.WriteString("⟦arg:" + strconv.Itoa(idx) + "⟧")
			}
			i = j
			continue
		}

		b.WriteByte(c)
		i++
	}

	return b.String()
}

// resolveArgument implements §4.3.1: a literal "=..." argument is emitted
// verbatim after stripping the '='; otherwise, if the normalized argument has
// a hex base and names a catalog entry, that entry is expanded with an empty
// args list;
// else the argument is emitted unchanged.
func (rc *resolveCtx) resolveArgument(arg string, depth int, resolveFn func(string, []string, int) string) string {
	if strings.HasPrefix(arg, "=") {
		return arg[1:]
	}

	base, variant, ok := validateToken(arg)
	if !ok || !isHexToken(base) {
		return arg
	}

	full := joinVariant(base, variant)
	if _, hit := rc.snap.lookup(full); !hit {
		return arg
	}

	return resolveFn(full, nil, depth+1)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanInlineRef attempts to read a valid inline-token form, optionally
// suffixed with {variant}, from the start of s. A style_-prefixed base
// consumes a maximal run of identifier bytes; any other base consumes a
// maximal run of hex digits capped at maxHexTokenLen, stopping at the first
// non-hex byte rather than the first non-identifier byte — so "@abcdefg"
// resolves "abcdef" and leaves "g" to be emitted verbatim, matching the
// original's greedy-hex scan. It returns the raw token text (case as
// written) and how many bytes of s it consumed, not including the leading
// '@' which the caller already skipped.
func scanInlineRef(s string) (token string, consumed int, ok bool) {
	n := len(s)
	i := 0

	if hasFoldedStylePrefix(s) {
		i = len(stylePrefix)
		for i < n && isIdentByte(foldByte(s[i])) {
			i++
		}
	} else {
		for i < n && i < maxHexTokenLen && isHexDigit(foldByte(s[i])) {
			i++
		}
		if i < minHexTokenLen {
			return "", 0, false
		}
	}
	if i == 0 {
		return "", 0, false
	}
	base := s[:i]

	variantEnd := i
	if i < n && s[i] == '{' {
		close := strings.IndexByte(s[i:], '}')
		if close < 0 {
			// unterminated variant suffix: treat only the base as the reference.
		} else {
			variantEnd = i + close + 1
		}
	}

	full := s[:variantEnd]
	foldedBase, foldedVariant, vok := splitVariant(foldToken(full))
	if !vok {
		foldedBase, foldedVariant = foldToken(base), ""
		variantEnd = i
		full = base
	}
	if !isValidBaseToken(foldedBase) {
		return "", 0, false
	}
	if foldedVariant != "" && !isValidVariant(foldedVariant) {
		foldedBase, foldedVariant = foldToken(base), ""
		variantEnd = i
		full = base
	}

	return full, variantEnd, true
}

// hasFoldedStylePrefix reports whether s begins with "style_", folding case
// so an inline reference written as "@STYLE_box" is still recognized.
func hasFoldedStylePrefix(s string) bool {
	if len(s) < len(stylePrefix) {
		return false
	}
	for i := 0; i < len(stylePrefix); i++ {
		if foldByte(s[i]) != stylePrefix[i] {
			return false
		}
	}
	return true
}

// foldByte lower-cases a single ASCII byte, used by scanInlineRef's identifier scan
// so that an uppercase inline reference (e.g. "@ABCDEF") is still recognized.
func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
