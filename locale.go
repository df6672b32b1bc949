package catalog

import "golang.org/x/text/language"

// validateLocaleTags checks Metadata.Locale and Metadata.Fallback, when
// non-empty, against BCP-47 well-formedness (spec §3's "free-text strings"
// note, extended per the ambient locale-validation component). It returns
// the first malformed tag's problem as an error; callers in strict mode
// treat that as fatal, non-strict mode as a warning.
func validateLocaleTags(meta Metadata) error {
	if meta.Locale != "" {
		if _, err := language.Parse(meta.Locale); err != nil {
			return &ParseError{Reason: "invalid locale tag " + quoted(meta.Locale) + ": " + err.Error()}
		}
	}
	if meta.Fallback != "" {
		if _, err := language.Parse(meta.Fallback); err != nil {
			return &ParseError{Reason: "invalid fallback tag " + quoted(meta.Fallback) + ": " + err.Error()}
		}
	}
	return nil
}

func quoted(s string) string {
	return "\"" + s + "\""
}
