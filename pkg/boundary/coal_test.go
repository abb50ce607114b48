package boundary_test

import (
	"math"
	"testing"

	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coalDoc(t *testing.T, classes ...int) *casedoc.Document {
	t.Helper()
	doc := casedoc.New()
	require.NoError(t, doc.Models().SetCoalCombustion(casedoc.CoalHomogeneous))
	require.NoError(t, doc.Models().SetCoals(classes))
	return doc
}

func sumOf(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func TestCoalInlet_BulkRatioScenario(t *testing.T) {
	doc := coalDoc(t, 1, 2)
	b, err := boundary.Make(boundary.CoalInlet, "burner", doc)
	require.NoError(t, err)
	coal := b.(*boundary.CoalInletBoundary)
	assert.Equal(t, 2, coal.CoalCount())

	require.NoError(t, coal.SetClassRatios(1, []float64{45, 55}))
	ratios, err := coal.ClassRatios(1)
	require.NoError(t, err)
	assert.InDelta(t, 100, sumOf(ratios), 1e-6)

	before := coal.Node().Clone()
	err = coal.SetClassRatios(1, []float64{45, 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrValidation)

	after, err := coal.ClassRatios(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{45, 55}, after)
	assert.True(t, tree.Equal(before, coal.Node()))

	assert.Error(t, coal.SetClassRatios(1, []float64{100}), "wrong length")
	assert.Error(t, coal.SetClassRatios(1, []float64{120, -20}), "element outside range")
	assert.Error(t, coal.SetClassRatios(2, []float64{100}), "no third coal")
}

func TestCoalInlet_Defaults(t *testing.T) {
	doc := coalDoc(t, 3)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)

	choice, err := coal.VelocityChoice()
	require.NoError(t, err)
	assert.Equal(t, boundary.VelocityFlow1, choice)

	ratios, err := coal.ClassRatios(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 0, 0}, ratios)

	temp, err := coal.Temperature(0)
	require.NoError(t, err)
	assert.Equal(t, boundary.DefaultCoalTemperature, temp)
	again, err := coal.Temperature(0)
	require.NoError(t, err)
	assert.Equal(t, temp, again)

	ox, err := coal.OxidantTemperature()
	require.NoError(t, err)
	assert.Equal(t, boundary.DefaultOxidantTemperature, ox)
	n, err := coal.OxidantNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	flow, err := coal.Flow(0)
	require.NoError(t, err)
	assert.Zero(t, flow)

	ratio := coal.Node().FindPath(
		tree.S("velocity_pressure"),
		tree.S("coal", "name", "coal01"),
		tree.S("ratio", "name", "class01"),
	)
	require.NotNil(t, ratio)
	assert.Equal(t, "100", ratio.Text())
}

func TestCoalInlet_SingleEditKeepsSum(t *testing.T) {
	doc := coalDoc(t, 4)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)

	edits := []struct {
		class int
		value float64
	}{
		{0, 40},
		{1, 25.5},
		{3, 10},
		{2, 12.25},
		{3, 0},
		{0, 33.3333333},
	}

	for _, e := range edits {
		require.NoError(t, coal.SetClassRatio(0, e.class, e.value))
		ratios, err := coal.ClassRatios(0)
		require.NoError(t, err)
		assert.InDelta(t, 100, sumOf(ratios), 1e-6)
		assert.InDelta(t, e.value, ratios[e.class], 1e-12)
		for _, r := range ratios {
			assert.GreaterOrEqual(t, r, 0.0)
		}
	}
}

func TestCoalInlet_SingleEditFreeElement(t *testing.T) {
	doc := coalDoc(t, 3)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	require.NoError(t, coal.SetClassRatios(0, []float64{50, 30, 20}))

	require.NoError(t, coal.SetClassRatio(0, 0, 60))
	ratios, _ := coal.ClassRatios(0)
	assert.Equal(t, []float64{60, 30, 10}, ratios, "last class absorbs the edit")

	require.NoError(t, coal.SetClassRatio(0, 2, 0))
	ratios, _ = coal.ClassRatios(0)
	assert.Equal(t, []float64{60, 40, 0}, ratios, "editing the last class moves the one before it")

	before := coal.Node().Clone()
	err = coal.SetClassRatio(0, 0, 100.5)
	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(err))
	err = coal.SetClassRatio(0, 2, 70)
	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(err), "free ratio would go negative")
	assert.True(t, tree.Equal(before, coal.Node()))
}

func TestCoalInlet_SingleClass(t *testing.T) {
	doc := coalDoc(t, 1)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)

	assert.Error(t, coal.SetClassRatio(0, 0, 50))
	require.NoError(t, coal.SetClassRatio(0, 0, 100))
	r, err := coal.ClassRatio(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, r)
}

func TestCoalInlet_ResyncsWithModel(t *testing.T) {
	doc := coalDoc(t, 2, 2)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	require.NoError(t, coal.SetClassRatios(1, []float64{70, 30}))

	require.NoError(t, doc.Models().SetCoals([]int{2, 3}))
	coal, err = boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	ratios, err := coal.ClassRatios(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{70, 30, 0}, ratios)

	require.NoError(t, doc.Models().SetCoals([]int{1}))
	coal, err = boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	assert.Equal(t, 1, coal.CoalCount())
	vp := coal.Node().Find("velocity_pressure")
	assert.Len(t, vp.FindAll("coal"), 1)
	ratios, err = coal.ClassRatios(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, ratios)

	_, err = coal.Flow(1)
	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(err))
}

func TestCoalInlet_ResyncRepairsSum(t *testing.T) {
	doc := coalDoc(t, 3)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	require.NoError(t, coal.SetClassRatios(0, []float64{20, 30, 50}))

	require.NoError(t, doc.Models().SetCoals([]int{2}))
	coal, err = boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)
	ratios, err := coal.ClassRatios(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 80}, ratios)
	assert.False(t, math.IsNaN(sumOf(ratios)))
}

func TestCoalInlet_FlowAndTemperatureGuards(t *testing.T) {
	doc := coalDoc(t, 1)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)

	assert.Equal(t, schema.KindWrongSign, schema.KindOf(coal.SetFlow(0, -1)))
	assert.Equal(t, schema.KindWrongSign, schema.KindOf(coal.SetTemperature(0, 0)))
	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(coal.SetOxidantNumber(4)))
	require.NoError(t, coal.SetFlow(0, 0.2))
	require.NoError(t, coal.SetOxidantNumber(2))

	f, err := coal.Flow(0)
	require.NoError(t, err)
	assert.Equal(t, 0.2, f)
}

func TestCoalInlet_OxidantNumberMustBeWhole(t *testing.T) {
	doc := coalDoc(t, 1)
	coal, err := boundary.NewCoalInlet(doc, "burner")
	require.NoError(t, err)

	coal.Node().Find("velocity_pressure").SetScalar("oxydant", "1.5")
	_, err = coal.OxidantNumber()
	assert.Equal(t, schema.KindNotANumber, schema.KindOf(err))

	issues := schema.ValidationErrors(boundary.Check(doc))
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Error(), "oxydant")
}
