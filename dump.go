package catalog

import (
	"strings"
)

// dumpTable renders a deterministic tabular listing of every token in the
// snapshot, ascending, one per line: "token\tlabel\ttemplate" (spec §6
// "dump table"). Two snapshots with equal catalog/labels produce
// byte-identical output (spec §8, "Determinism of dump").
func dumpTable(snap *CatalogSnapshot) string {
	if snap == nil {
		return ""
	}

	var b strings.Builder
	for _, token := range snap.sortedTokens() {
		entry, _ := snap.lookup(token)
		b.WriteString(token)
		b.WriteByte('\t')
		b.WriteString(entry.Label)
		b.WriteByte('\t')
		b.WriteString(entry.Template)
		b.WriteByte('\n')
	}
	return b.String()
}

// findAny performs a case-insensitive substring match over every template
// and label, returning sorted results (spec §6 "find any").
func findAny(snap *CatalogSnapshot, query string) []FindResult {
	if snap == nil || query == "" {
		return nil
	}
	needle := foldToken(query)

	var results []FindResult
	for _, token := range snap.sortedTokens() {
		entry, _ := snap.lookup(token)

		if idx := indexFold(entry.Template, needle); idx >= 0 {
			results = append(results, FindResult{Token: token, MatchedIn: "template", Excerpt: entry.Template})
		}
		if entry.Label != "" {
			if idx := indexFold(entry.Label, needle); idx >= 0 {
				results = append(results, FindResult{Token: token, MatchedIn: "label", Excerpt: entry.Label})
			}
		}
	}
	return results
}

// indexFold returns the byte index of needle (already lower-cased) within
// haystack, case-insensitively, or -1 if not found. It only folds ASCII
// letters, matching the engine's token case-folding rules elsewhere.
func indexFold(haystack, needle string) int {
	return strings.Index(foldToken(haystack), needle)
}
