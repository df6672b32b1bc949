package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpTable_Nil(t *testing.T) {
	require.Equal(t, "", dumpTable(nil))
}

func TestDumpTable_OrderedByToken(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("ffffff", "", "last", ""))
	require.NoError(t, snap.addEntry("abcdef", "", "first", "Greeting"))

	require.Equal(t, "abcdef\tGreeting\tfirst\nffffff\t\tlast\n", dumpTable(snap))
}

// Invariant: determinism of dump. Two snapshots with equal catalog/labels
// produce byte-identical output, independent of insertion order.
func TestDumpTable_DeterministicAcrossInsertionOrder(t *testing.T) {
	a := newSnapshot()
	require.NoError(t, a.addEntry("abcdef", "", "hi", "Greeting"))
	require.NoError(t, a.addEntry("ffffff", "", "bye", ""))

	b := newSnapshot()
	require.NoError(t, b.addEntry("ffffff", "", "bye", ""))
	require.NoError(t, b.addEntry("abcdef", "", "hi", "Greeting"))

	require.Equal(t, dumpTable(a), dumpTable(b))
}

func TestFindAny_MatchesTemplateAndLabel(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "greetings, world", "Greeting"))
	require.NoError(t, snap.addEntry("ffffff", "", "farewell", "Goodbye greeting"))

	results := findAny(snap, "greet")
	require.Len(t, results, 3)
	require.Equal(t, "abcdef", results[0].Token)
	require.Equal(t, "template", results[0].MatchedIn)
	require.Equal(t, "abcdef", results[1].Token)
	require.Equal(t, "label", results[1].MatchedIn)
	require.Equal(t, "ffffff", results[2].Token)
	require.Equal(t, "label", results[2].MatchedIn)
}

func TestFindAny_CaseInsensitive(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "Hello World", ""))

	results := findAny(snap, "HELLO")
	require.Len(t, results, 1)
	require.Equal(t, "template", results[0].MatchedIn)
}

func TestFindAny_NilOrEmptyQuery(t *testing.T) {
	require.Nil(t, findAny(nil, "x"))

	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "hi", ""))
	require.Nil(t, findAny(snap, ""))
}

func TestFindAny_NoMatches(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abcdef", "", "hi", ""))

	require.Empty(t, findAny(snap, "zzz"))
}
