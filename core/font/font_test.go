package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
)

func TestFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	for _, fam := range []Family{FamilyDefault, FamilyBold, FamilyMonospace, FamilyCustom + 2} {
		f, ok := ParseFamily(fam.String())
		assert.True(t, ok, "expected %s to parse", fam)
		assert.Equal(t, fam, f)
	}
	_, ok := ParseFamily("fraktur")
	assert.False(t, ok)
	assert.Equal(t, FamilyBold, FamilyFor(xfont.WeightBold, false))
	assert.Equal(t, FamilyMonospace, FamilyFor(xfont.WeightBold, true))
	assert.Equal(t, FamilyDefault, FamilyFor(xfont.WeightNormal, false))
}

func TestFallbackFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	assert.Equal(t, "Go Regular", FallbackFont(FamilyDefault).Fontname)
	assert.Equal(t, "Go Bold", FallbackFont(FamilyBold).Fontname)
	assert.Equal(t, "Go Mono", FallbackFont(FamilyMonospace).Fontname)
	assert.Same(t, FallbackFont(FamilyDefault), FallbackFont(FamilyCustom))
}

func TestTypeCaseBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	tc, err := FallbackFont(FamilyDefault).PrepareCase(32)
	require.NoError(t, err)
	assert.Equal(t, float32(32), tc.PxSize())
	b := tc.Bounds("W")
	t.Logf("bounds of 'W' at 32px = %v", b)
	assert.Greater(t, Width(b), float32(10))
	assert.Greater(t, Height(b), float32(10))
	assert.Less(t, Height(b), float32(33))
	wide := tc.Bounds("WWW")
	assert.Greater(t, Width(wide), 2*Width(b))
	assert.Equal(t, float32(0), Width(tc.Bounds("")))
	//
	small, err := FallbackFont(FamilyDefault).PrepareCase(0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), small.PxSize())
}

func TestHasGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	var buf sfnt.Buffer
	f := FallbackFont(FamilyDefault)
	assert.True(t, f.HasGlyph('A', &buf))
	assert.False(t, f.HasGlyph('\U0001F600', &buf), "Go fonts have no emoji")
}
