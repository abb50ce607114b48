package casedoc_test

import (
	"testing"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_Defaults(t *testing.T) {
	m := casedoc.New().Models()

	coal, err := m.CoalCombustion()
	require.NoError(t, err)
	assert.Equal(t, casedoc.CoalOff, coal)

	rad, err := m.Radiation()
	require.NoError(t, err)
	assert.Equal(t, casedoc.RadiationOff, rad)

	ale, err := m.ALE()
	require.NoError(t, err)
	assert.False(t, ale)

	coals, err := m.Coals()
	require.NoError(t, err)
	assert.Empty(t, coals)
}

func TestModels_EnablingCoalCreatesOneCoal(t *testing.T) {
	m := casedoc.New().Models()

	require.NoError(t, m.SetCoalCombustion(casedoc.CoalHomogeneousMoist))
	enabled, err := m.CoalEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	coals, err := m.Coals()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, coals)

	assert.Error(t, m.SetCoalCombustion("lagrangian"))
}

func TestModels_SetCoalsKeepsExistingDiameters(t *testing.T) {
	doc := casedoc.New()
	m := doc.Models()
	require.NoError(t, m.SetCoals([]int{2, 1}))

	fuels := doc.Section(casedoc.SectionModels).Find("solid_fuels")
	first := fuels.FindPath(tree.S("solid_fuel", "fuel_id", "1"), tree.S("class"), tree.S("diameter", "class_id", "2"))
	require.NotNil(t, first)
	assert.Equal(t, "2.5e-05", first.Text())
	first.SetText("4e-05")

	require.NoError(t, m.SetCoals([]int{3}))
	coals, err := m.Coals()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, coals)

	kept := fuels.FindPath(tree.S("solid_fuel", "fuel_id", "1"), tree.S("class"), tree.S("diameter", "class_id", "2"))
	require.NotNil(t, kept)
	assert.Equal(t, "4e-05", kept.Text())
	assert.Nil(t, fuels.Find("solid_fuel", tree.A("fuel_id", "2")))
}

func TestModels_SetCoalsRejects(t *testing.T) {
	m := casedoc.New().Models()

	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(m.SetCoals(nil)))
	assert.Equal(t, schema.KindWrongSign, schema.KindOf(m.SetCoals([]int{1, 0})))
}

func TestModels_RadiationAndALE(t *testing.T) {
	doc := casedoc.New()
	m := doc.Models()

	require.NoError(t, m.SetRadiation(casedoc.RadiationP1))
	on, err := m.RadiationEnabled()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, m.SetALE(true))
	ale, err := m.ALE()
	require.NoError(t, err)
	assert.True(t, ale)

	node := doc.Root().FindPath(tree.S(casedoc.SectionModels), tree.S("ale_method"))
	status, _ := node.Attr("status")
	assert.Equal(t, "on", status)
}

func TestModels_EnabledChecksOnlyRead(t *testing.T) {
	doc, err := casedoc.Open([]byte(`<Code_Saturne_GUI version="2.0"/>`))
	require.NoError(t, err)
	before := doc.Root().Clone()

	m := doc.Models()
	coal, err := m.CoalEnabled()
	require.NoError(t, err)
	assert.False(t, coal)
	rad, err := m.RadiationEnabled()
	require.NoError(t, err)
	assert.False(t, rad)

	assert.True(t, tree.Equal(before, doc.Root()))

	require.NoError(t, m.SetRadiation(casedoc.RadiationP1))
	rad, err = m.RadiationEnabled()
	require.NoError(t, err)
	assert.True(t, rad)

	doc.Section(casedoc.SectionModels).FindOrCreate("solid_fuels").SetAttr("model", "lagrangian")
	_, err = m.CoalEnabled()
	assert.Equal(t, schema.KindNotInSet, schema.KindOf(err))
}
