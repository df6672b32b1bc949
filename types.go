package catalog

// PluralRule selects which plural-variant naming scheme pick() uses.
type PluralRule int

const (
	// RuleDefault treats 0 and 1 specially, everything else falls to "other".
	RuleDefault PluralRule = iota
	// RuleSlavic implements the Slavic-family plural rule (one/few/many/other).
	RuleSlavic
	// RuleArabic implements the Arabic plural rule (zero/one/two/few/many/other).
	RuleArabic
)

func (r PluralRule) String() string {
	switch r {
	case RuleSlavic:
		return "SLAVIC"
	case RuleArabic:
		return "ARABIC"
	default:
		return "DEFAULT"
	}
}

// ParsePluralRule maps a metadata string onto a PluralRule, defaulting to RuleDefault.
func ParsePluralRule(s string) PluralRule {
	switch foldToken(s) {
	case "slavic":
		return RuleSlavic
	case "arabic":
		return RuleArabic
	default:
		return RuleDefault
	}
}

// CatalogEntry is a single token -> template mapping, with an optional label.
type CatalogEntry struct {
	Token    string // full token, including any {variant} suffix
	Template string
	Label    string
}

// Metadata holds the catalog-level directives from @meta lines / the binary metadata block.
type Metadata struct {
	Locale     string
	Fallback   string
	Note       string
	PluralRule PluralRule
}

// StyleProperty is one entry in a style declaration list. A "bare" property
// has an empty Name and a Value beginning with '@'.
type StyleProperty struct {
	Name     string
	Value    string
	NameHash uint32
}

// IsBare reports whether this is a bare (name-less, @ref) property.
func (p StyleProperty) IsBare() bool {
	return p.Name == ""
}

// NativeStyle is the typed numeric projection of a style token's declarations,
// consumed by physics/layout callers.
type NativeStyle struct {
	Mass           float64
	Friction       float64
	Restitution    float64
	Drag           float64
	GravityScale   float64
	Spacing        float64
	HasPhysical    bool
}

// DefaultNativeStyle returns the zero-value NativeStyle with its documented defaults.
func DefaultNativeStyle() NativeStyle {
	return NativeStyle{GravityScale: 1}
}

// FindResult is one hit from FindAny: a token plus which field matched.
type FindResult struct {
	Token      string
	MatchedIn  string // "template" or "label"
	Excerpt    string
}
