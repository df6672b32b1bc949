package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStyleProperties(t *testing.T) {
	props := parseStyleProperties("color: #fff; @utility; mass: 2.5")
	require.Len(t, props, 3)

	require.Equal(t, "color", props[0].Name)
	require.Equal(t, "#fff", props[0].Value)
	require.NotZero(t, props[0].NameHash)

	require.True(t, props[1].IsBare())
	require.Equal(t, "@utility", props[1].Value)

	require.Equal(t, "mass", props[2].Name)
	require.Equal(t, "2.5", props[2].Value)
}

func TestParseStyleProperties_DropsMalformedSegments(t *testing.T) {
	props := parseStyleProperties("  ; no-colon-no-at ; : empty-name ; color: ; good: 1 ;")
	require.Len(t, props, 1)
	require.Equal(t, "good", props[0].Name)
	require.Equal(t, "1", props[0].Value)
}

func TestParseStyleProperties_NameIsCaseFolded(t *testing.T) {
	props := parseStyleProperties("COLOR: red")
	require.Len(t, props, 1)
	require.Equal(t, "color", props[0].Name)
}

// Scenario 6: the style builder emits bare fragments ahead of named
// declarations, regardless of their position in the source template, and
// property resolution still routes @refs through the plain resolver.
func TestBuildStyleString_Scenario6(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abc123", "", "utility", ""))
	require.NoError(t, snap.addEntry("style_box", "", "color: #fff; @abc123; mass: 2.5", ""))
	snap.populateStyleRegistry()

	rc := &resolveCtx{snap: snap, seen: make(map[string]struct{})}
	out, ok := buildStyleString(rc, "style_box", nil, 0)
	require.True(t, ok)
	require.Equal(t, "utility color: #fff; mass: 2.5;", out)
}

func TestBuildStyleString_EmptyRegistryEntryFails(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("style_box", "", "", ""))
	snap.populateStyleRegistry()

	rc := &resolveCtx{snap: snap, seen: make(map[string]struct{})}
	_, ok := buildStyleString(rc, "style_box", nil, 0)
	require.False(t, ok)
}

func TestTranslate_RoutesStyleTokenThroughBuilder(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("style_box", "", "color: red; weight: bold", ""))
	snap.populateStyleRegistry()

	require.Equal(t, "color: red; weight: bold;", translate(snap, "style_box", nil))
}

func TestAppendWithSpaceGuard(t *testing.T) {
	var b strings.Builder
	appendWithSpaceGuard(&b, "a")
	appendWithSpaceGuard(&b, "b")
	require.Equal(t, "a b", b.String())
}

// NativeStyle projection.
func TestNativeStyleFor_Scenario6(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("abc123", "", "utility", ""))
	require.NoError(t, snap.addEntry("style_box", "", "color: #fff; @abc123; mass: 2.5", ""))
	snap.populateStyleRegistry()

	ns := nativeStyleFor(snap, "style_box", nil)
	require.True(t, ns.HasPhysical)
	require.Equal(t, 2.5, ns.Mass)
	require.Equal(t, float64(1), ns.GravityScale)
}

func TestNativeStyleFor_Defaults(t *testing.T) {
	ns := DefaultNativeStyle()
	require.False(t, ns.HasPhysical)
	require.Equal(t, float64(1), ns.GravityScale)
	require.Equal(t, float64(0), ns.Mass)
}

func TestNativeStyleFor_UnrecognizedPropertiesIgnored(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("style_box", "", "color: red; unknown-prop: 9", ""))
	snap.populateStyleRegistry()

	ns := nativeStyleFor(snap, "style_box", nil)
	require.False(t, ns.HasPhysical)
}

func TestNativeStyleFor_AliasesAndDoubleDashStrip(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("style_box", "", "--gravity-scale: 0.5; gap: 3", ""))
	snap.populateStyleRegistry()

	ns := nativeStyleFor(snap, "style_box", nil)
	require.True(t, ns.HasPhysical)
	require.Equal(t, 0.5, ns.GravityScale)
	require.Equal(t, float64(3), ns.Spacing)
}

func TestNativeStyleFor_UnparsableValueIgnored(t *testing.T) {
	snap := newSnapshot()
	require.NoError(t, snap.addEntry("style_box", "", "mass: not-a-number", ""))
	snap.populateStyleRegistry()

	ns := nativeStyleFor(snap, "style_box", nil)
	require.False(t, ns.HasPhysical)
	require.Equal(t, float64(0), ns.Mass)
}

func TestNativeStyleFor_NilSnapshot(t *testing.T) {
	ns := nativeStyleFor(nil, "style_box", nil)
	require.Equal(t, DefaultNativeStyle(), ns)
}
