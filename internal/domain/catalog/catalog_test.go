package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Same(t, c, Default())

	jaipur, ok := c.FindCuratedDestination("jaipur")
	require.True(t, ok)
	assert.Equal(t, "Jaipur", jaipur.Name)
	assert.Len(t, jaipur.Days, 2)
	assert.InDelta(t, 26.9124, jaipur.Center.Lat(), 1e-9)
	assert.InDelta(t, 75.7873, jaipur.Center.Lon(), 1e-9)

	_, ok = c.FindCuratedDestination("lisbon")
	assert.False(t, ok)

	for _, key := range []string{TemplateDefault, TemplateNoMuseums, TemplateOutdoorOnly, TemplateVegetarian} {
		assert.NotEmpty(t, c.GenericTemplate(key).Activities, key)
	}
	assert.Equal(t, c.GenericTemplate(TemplateDefault), c.GenericTemplate("unknown"))

	country, ok := c.CountryForCity("old delhi, india")
	require.True(t, ok)
	assert.Equal(t, "India", country)

	info, ok := c.Country(" india ")
	require.True(t, ok)
	assert.Equal(t, "112", info.Helpline.Number)
	require.NotNil(t, info.Culture)

	assert.Len(t, c.GeneralGuidelines(), 5)
	assert.Len(t, c.SoloGuidelines(), 3)
	assert.NotEmpty(t, c.Disclaimer())
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	goa, ok := c.FindCuratedDestination("goa")
	require.True(t, ok)
	goa.Days[0].Activities[0] = "changed"

	tmpl := c.GenericTemplate(TemplateDefault)
	tmpl.Activities[0] = "changed"

	info, _ := c.Country("japan")
	info.Culture.Dress = "changed"

	again, _ := c.FindCuratedDestination("goa")
	assert.NotEqual(t, "changed", again.Days[0].Activities[0])
	assert.NotEqual(t, "changed", c.GenericTemplate(TemplateDefault).Activities[0])
	japan, _ := c.Country("japan")
	assert.NotEqual(t, "changed", japan.Culture.Dress)
}

const minimalSafety = `
cities:
  - { city: lima, country: Peru }
countries:
  peru:
    name: Peru
    helpline: { number: "105", service_name: Police }
general: [Be careful]
solo: [Tell someone]
disclaimer: Stay safe.
`

const minimalGeneric = `
generic:
  default: { activities: [Walk] }
  no-museums: { activities: [Walk] }
  outdoor-only: { activities: [Hike] }
  vegetarian: { activities: [Cook] }
`

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		destinationsFile: {Data: []byte(`
curated:
  - keyword: Lima
    name: Lima
    center: [-77.0428, -12.0464]
    days:
      - activities: [Miraflores boardwalk]
` + minimalGeneric)},
		safetyFile: {Data: []byte(minimalSafety)},
	}

	c, err := LoadFS(fsys)
	require.NoError(t, err)

	lima, ok := c.FindCuratedDestination("lima, peru")
	require.True(t, ok)
	assert.Equal(t, "lima", lima.Keyword)
	assert.Equal(t, "Stay safe.", c.Disclaimer())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name         string
		destinations string
	}{
		{"不正なYAML", "curated: [::"},
		{"汎用テンプレート不足", "generic:\n  default: { activities: [Walk] }\n"},
		{"キーワードなし", "curated:\n  - name: X\n    center: [1, 2]\n    days: [{ activities: [a] }]\n" + minimalGeneric},
		{"行程なし", "curated:\n  - keyword: x\n    center: [1, 2]\n" + minimalGeneric},
		{"座標が不正", "curated:\n  - keyword: x\n    center: [1]\n    days: [{ activities: [a] }]\n" + minimalGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.destinations), []byte(minimalSafety))
			assert.Error(t, err)
		})
	}

	_, err := LoadFS(fstest.MapFS{})
	assert.Error(t, err)
}
