package catalog

import "sort"

// CatalogSnapshot is an immutable, fully-populated catalog. Once published
// through an Engine it is never mutated; see snapshot_lifecycle.go for the
// atomic swap / acquire read path described in spec §4.9 and §5.
type CatalogSnapshot struct {
	// catalog maps a full token (base or base{variant}) to its entry.
	catalog map[string]CatalogEntry

	// pluralVariants maps a base token to the set of variant names observed
	// for it in the source catalog.
	pluralVariants map[string]map[string]struct{}

	metadata Metadata

	// styleRegistry maps a style token to its parsed property list. Present
	// iff the raw template parsed to at least one property (spec §3).
	styleRegistry map[string][]StyleProperty
}

// newSnapshot builds an empty, writable snapshot used by the parsers during load.
func newSnapshot() *CatalogSnapshot {
	return &CatalogSnapshot{
		catalog:        make(map[string]CatalogEntry),
		pluralVariants: make(map[string]map[string]struct{}),
		styleRegistry:  make(map[string][]StyleProperty),
	}
}

// addEntry inserts a validated entry. It returns an error if the token is
// already present (duplicate tokens are always fatal, per spec §4.1/§7).
func (s *CatalogSnapshot) addEntry(base, variant, template, label string) error {
	full := joinVariant(base, variant)
	if _, exists := s.catalog[full]; exists {
		return &DuplicateTokenError{Token: full}
	}
	s.catalog[full] = CatalogEntry{Token: full, Template: template, Label: label}

	if variant != "" {
		set, ok := s.pluralVariants[base]
		if !ok {
			set = make(map[string]struct{})
			s.pluralVariants[base] = set
		}
		set[variant] = struct{}{}
	}
	return nil
}

// lookup returns the entry for a full token, if present.
func (s *CatalogSnapshot) lookup(token string) (CatalogEntry, bool) {
	e, ok := s.catalog[token]
	return e, ok
}

// entryCount reports how many catalog entries are present.
func (s *CatalogSnapshot) entryCount() int {
	return len(s.catalog)
}

// sortedTokens returns every token in the catalog, ascending.
func (s *CatalogSnapshot) sortedTokens() []string {
	tokens := make([]string, 0, len(s.catalog))
	for t := range s.catalog {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// variantsOf returns the recorded variant names for a base token, sorted.
func (s *CatalogSnapshot) variantsOf(base string) []string {
	set, ok := s.pluralVariants[base]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// populateStyleRegistry parses every style-prefixed entry's template into a
// property list and stores the non-empty results. Called once after the
// catalog finishes loading (spec §2: "style-registry population").
func (s *CatalogSnapshot) populateStyleRegistry() {
	for full, entry := range s.catalog {
		base, _, ok := splitVariant(full)
		if !ok || !isStyleToken(base) {
			continue
		}
		props := parseStyleProperties(entry.Template)
		if len(props) > 0 {
			s.styleRegistry[full] = props
		}
	}
}

// styleProperties returns the parsed property list for a style token, if any.
func (s *CatalogSnapshot) styleProperties(token string) ([]StyleProperty, bool) {
	p, ok := s.styleRegistry[token]
	return p, ok
}

// isStyleCapable reports whether the snapshot has any style registry entries at all.
func (s *CatalogSnapshot) isStyleCapable() bool {
	return len(s.styleRegistry) > 0
}
