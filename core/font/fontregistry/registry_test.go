package fontregistry

import (
	"testing"

	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/font"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	fr := NewRegistry()
	tc, err := fr.TypeCase(font.FamilyBold, 14)
	assert.Error(t, err, "expected hint about missing font for family")
	require.NotNil(t, tc)
	assert.Equal(t, "Go Bold", tc.ScalableFontParent().Fontname)
	tc2, err := fr.TypeCase(font.FamilyBold, 14)
	assert.NoError(t, err)
	assert.Same(t, tc, tc2)
	assert.Equal(t, []string{"bold-14.00"}, fr.TypeCaseNames())
}

func TestStoreFontReplacesTypeCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	fr := NewRegistry()
	_, _ = fr.TypeCase(font.FamilyDefault, 20)
	_, _ = fr.TypeCase(font.FamilyMonospace, 20)
	fr.StoreFont(font.FamilyDefault, font.FallbackFont(font.FamilyMonospace))
	assert.Equal(t, []string{"monospace-20.00"}, fr.TypeCaseNames())
	tc, err := fr.TypeCase(font.FamilyDefault, 20)
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", tc.ScalableFontParent().Fontname)
	fr.StoreFont(font.FamilyBold, nil) // ignored
	fr.LogFontList()
}

func TestMeasureThroughRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	var m font.Measurer = GlobalRegistry()
	regular := m.TextBounds("m", font.Paint{Size: 24, Family: font.FamilyDefault})
	bold := m.TextBounds("m", font.Paint{Size: 24, Family: font.FamilyBold})
	assert.Greater(t, font.Width(regular), float32(0))
	assert.GreaterOrEqual(t, font.Width(bold), font.Width(regular))
	i := m.TextBounds("i", font.Paint{Size: 24, Family: font.FamilyMonospace})
	assert.Greater(t, font.Width(i), float32(0))
}

func TestSetupWithMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.font")
	defer teardown()
	//
	conf := testconfig.Conf{
		parameters.FontBold: "/nonexistent/NoSuchFont-Bold.ttf",
	}
	incidents := &core.IncidentCounter{}
	fr := Setup(conf, incidents)
	assert.Equal(t, 1, incidents.Count(core.EMISSING))
	tc, _ := fr.TypeCase(font.FamilyBold, 12)
	require.NotNil(t, tc)
	assert.Equal(t, "Go Bold", tc.ScalableFontParent().Fontname)
}
