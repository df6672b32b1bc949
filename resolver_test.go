package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 1: case folding is idempotent at the resolver boundary.
func TestTranslate_CaseFolding(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "hi", ""))

	require.Equal(t, "hi", translate(snap, foldToken("ABCDEF"), nil))
	require.Equal(t, translate(snap, "abcdef", nil), translate(snap, foldToken("ABCDEF"), nil))
}

// Scenario 2: placeholder substitution, and the ⟦arg:N⟧ sentinel for a
// missing argument.
func TestTranslate_Placeholders(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "%0 + %1", ""))

	require.Equal(t, "x + y", translate(snap, "abcdef", []string{"x", "y"}))
	require.Equal(t, "x + ⟦arg:1⟧", translate(snap, "abcdef", []string{"x"}))
}

// Scenario 3: inline @ref expansion.
func TestTranslate_InlineRefExpansion(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("aaaaaa", "", "hello @bbbbbb", ""))
	require.NoError(t, snap.addEntry("bbbbbb", "", "world", ""))

	require.Equal(t, "hello world", translate(snap, "aaaaaa", nil))
}

// An inline reference scans a maximal run of hex digits, not a maximal run
// of identifier bytes: a trailing non-hex letter is left in the output
// rather than invalidating the whole reference.
func TestTranslate_InlineRefStopsAtNonHexByte(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "hi", ""))
	require.NoError(t, snap.addEntry("ffffff", "", "@abcdefg", ""))

	require.Equal(t, "hig", translate(snap, "ffffff", nil))
}

// Scenario 4: cycles are detected and bounded.
func TestTranslate_CycleDetection(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("aaaaaa", "", "@bbbbbb", ""))
	require.NoError(t, snap.addEntry("bbbbbb", "", "@aaaaaa", ""))

	result := translate(snap, "aaaaaa", nil)
	require.Contains(t, result, "⟦CYCLE:aaaaaa⟧")
}

func TestTranslate_RecursionNeverExceedsLimit(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("aaaaaa", "", "@bbbbbb", ""))
	require.NoError(t, snap.addEntry("bbbbbb", "", "@aaaaaa", ""))

	result := translate(snap, "aaaaaa", nil)
	// A self-referential chain should terminate via the cycle guard long
	// before the recursion-limit sentinel would ever fire.
	require.NotContains(t, result, "⟦RECURSION_LIMIT⟧")
}

func TestTranslate_MissingToken(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "hi", ""))

	require.Equal(t, "⟦ffffff⟧", translate(snap, "ffffff", nil))
}

func TestTranslate_MissingInlineRef(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("aaaaaa", "", "hello @bbbbbb", ""))

	require.Equal(t, "hello ⟦MISSING:@bbbbbb⟧", translate(snap, "aaaaaa", nil))
}

func TestTranslate_NilSnapshot(t *testing.T) {
	require.Equal(t, "⟦NO_CATALOG⟧", translate(nil, "abcdef", nil))
}

// Invariant: argument literal escape. translate(tok, ["=raw"]) on "%0"
// returns "raw" verbatim, even when raw looks like a hex token.
func TestTranslate_ArgumentLiteralEscape(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "%0", ""))
	require.NoError(t, snap.addEntry("fedcba", "", "nested entry text", ""))

	require.Equal(t, "fedcba", translate(snap, "abcdef", []string{"=fedcba"}))
}

// When an argument names a live catalog entry (no "=" escape), it is
// expanded as a nested reference.
func TestTranslate_ArgumentResolvesAsNestedEntry(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "%0", ""))
	require.NoError(t, snap.addEntry("fedcba", "", "nested", ""))

	require.Equal(t, "nested", translate(snap, "abcdef", []string{"fedcba"}))
}

// Open question (spec §9): nested argument resolution receives an empty
// args list, so its own placeholders are never filled from the outer call.
func TestTranslate_NestedArgumentResolutionGetsEmptyArgs(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "%0", ""))
	require.NoError(t, snap.addEntry("fedcba", "", "got %0", ""))

	require.Equal(t, "got ⟦arg:0⟧", translate(snap, "abcdef", []string{"fedcba", "unused"}))
}

func TestTranslate_ArgumentThatIsNotAKnownTokenIsEmittedVerbatim(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "%0", ""))

	require.Equal(t, "plain text", translate(snap, "abcdef", []string{"plain text"}))
}

func TestTranslate_DoubleAtIsLiteral(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "reach me @@bbbbbb", ""))

	require.Equal(t, "reach me @bbbbbb", translate(snap, "abcdef", nil))
}

func TestTranslate_DeepChainWithoutCycleResolvesFully(t *testing.T) {
	snap := newSnapshot()
	prev := ""
	// Build a chain shorter than the recursion cap so it resolves cleanly.
	for i := 0; i < 10; i++ {
		tok := strings.Repeat("a", 5) + string(rune('0'+i))
		template := "x"
		if prev != "" {
			template = "@" + prev
		}
		require.NoError(t, snap.addEntry(tok, "", template, ""))
		prev = tok
	}
	require.Equal(t, "x", translate(snap, prev, nil))
}
