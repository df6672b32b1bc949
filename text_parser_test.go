package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseText_Basic(t *testing.T) {
	src := "abcdef: hi\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)

	entry, ok := snap.lookup("abcdef")
	require.True(t, ok)
	require.Equal(t, "hi", entry.Template)
}

func TestParseText_MetaDirectives(t *testing.T) {
	src := "@meta locale = en\n@meta fallback = en-US\n@meta note = sample\n@meta plural = SLAVIC\nabcdef: hi\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)

	require.Equal(t, "en", snap.metadata.Locale)
	require.Equal(t, "en-US", snap.metadata.Fallback)
	require.Equal(t, "sample", snap.metadata.Note)
	require.Equal(t, RuleSlavic, snap.metadata.PluralRule)
}

func TestParseText_CommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a comment\n\nabcdef: hi\n   \n# trailing comment\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)
	require.Equal(t, 1, snap.entryCount())
}

func TestParseText_LabelParsing(t *testing.T) {
	src := "abcdef(Greeting): hi\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)

	entry, ok := snap.lookup("abcdef")
	require.True(t, ok)
	require.Equal(t, "Greeting", entry.Label)
	require.Equal(t, "hi", entry.Template)
}

func TestParseText_BOMStripped(t *testing.T) {
	src := "\xef\xbb\xbfabcdef: hi\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)
	require.Equal(t, 1, snap.entryCount())
}

func TestParseText_EmptyCatalogFails(t *testing.T) {
	_, err := parseText([]byte("# just a comment\n"), true)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestParseText_DuplicateTokenAlwaysFatal(t *testing.T) {
	src := "abcdef: hi\nabcdef: again\n"

	_, err := parseText([]byte(src), true)
	require.Error(t, err)
	var dup *DuplicateTokenError
	require.ErrorAs(t, err, &dup)

	// Non-strict mode does not rescue a duplicate token either.
	_, err = parseText([]byte(src), false)
	require.Error(t, err)
	require.ErrorAs(t, err, &dup)
}

func TestParseText_InvalidTokenStrictFails(t *testing.T) {
	src := "nothex: hi\n"
	_, err := parseText([]byte(src), true)
	require.Error(t, err)
}

func TestParseText_InvalidTokenNonStrictSkipsLine(t *testing.T) {
	src := "nothex: hi\nabcdef: ok\n"
	snap, err := parseText([]byte(src), false)
	require.NoError(t, err)
	require.Equal(t, 1, snap.entryCount())
}

func TestParseText_UnknownMetaKeyStrictFails(t *testing.T) {
	src := "@meta bogus = value\nabcdef: hi\n"
	_, err := parseText([]byte(src), true)
	require.Error(t, err)
}

func TestParseText_UnknownMetaKeyNonStrictSkipped(t *testing.T) {
	src := "@meta bogus = value\nabcdef: hi\n"
	snap, err := parseText([]byte(src), false)
	require.NoError(t, err)
	require.Equal(t, "", snap.metadata.Note)
}

func TestParseText_MetaAfterFirstEntryStrictFails(t *testing.T) {
	src := "abcdef: hi\n@meta locale = en\n"
	_, err := parseText([]byte(src), true)
	require.Error(t, err)
}

func TestParseText_MetaAfterFirstEntryNonStrictIgnored(t *testing.T) {
	src := "abcdef: hi\n@meta locale = en\n"
	snap, err := parseText([]byte(src), false)
	require.NoError(t, err)
	require.Equal(t, "", snap.metadata.Locale)
}

func TestParseText_VariantEntries(t *testing.T) {
	src := "a1b2c3{one}: 1 apple\na1b2c3{other}: %0 apples\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)

	require.Equal(t, []string{"one", "other"}, snap.variantsOf("a1b2c3"))
}

func TestParseText_EscapeSequences(t *testing.T) {
	src := `abcdef: line one\nline two`
	snap, err := parseText([]byte(src+"\n"), true)
	require.NoError(t, err)

	entry, _ := snap.lookup("abcdef")
	require.Equal(t, "line one\nline two", entry.Template)
}

func TestParseText_CRLFLineEndings(t *testing.T) {
	src := "abcdef: hi\r\nffffff: bye\r\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)
	require.Equal(t, 2, snap.entryCount())
}

func TestParseText_UnterminatedLabelStrictFails(t *testing.T) {
	src := "abcdef(unterminated: hi\n"
	_, err := parseText([]byte(src), true)
	require.Error(t, err)
}

func TestParseText_MissingColonIsSkippedNonStrict(t *testing.T) {
	src := "abcdef no colon here\nabcdef: hi\n"
	snap, err := parseText([]byte(src), false)
	require.NoError(t, err)
	require.Equal(t, 1, snap.entryCount())
}

func TestParseText_StyleEntryPopulatesRegistry(t *testing.T) {
	src := "style_box: color: red;\n"
	snap, err := parseText([]byte(src), true)
	require.NoError(t, err)
	require.True(t, snap.isStyleCapable())

	props, ok := snap.styleProperties("style_box")
	require.True(t, ok)
	require.Len(t, props, 1)
}
