package tree_test

import (
	"testing"

	"github.com/aretw0/casetree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *tree.Node {
	root := tree.New("Code_Saturne_GUI", tree.A("version", "2.0"))
	bc := root.FindOrCreate("boundary_conditions")
	bc.FindOrCreate("wall", tree.A("label", "mur"))
	bc.FindOrCreate("inlet", tree.A("label", "in1"))
	bc.FindOrCreate("inlet", tree.A("label", "in2"), tree.A("field_id", "1"))
	return root
}

func TestFindOrCreate_Idempotent(t *testing.T) {
	root := sample()
	bc := root.Find("boundary_conditions")
	require.NotNil(t, bc)

	before := root.Count()
	first := bc.FindOrCreate("wall", tree.A("label", "mur"))
	second := bc.FindOrCreate("wall", tree.A("label", "mur"))

	assert.Same(t, first, second)
	assert.Equal(t, before, root.Count(), "no node should be created for an existing match")

	created := bc.FindOrCreate("wall", tree.A("label", "paroi"))
	again := bc.FindOrCreate("wall", tree.A("label", "paroi"))
	assert.Same(t, created, again)
	assert.Equal(t, before+1, root.Count())

	label, ok := created.Attr("label")
	assert.True(t, ok)
	assert.Equal(t, "paroi", label)
}

func TestFind_Filters(t *testing.T) {
	root := sample()
	bc := root.Find("boundary_conditions")

	tests := []struct {
		name    string
		tag     string
		filters []tree.Attr
		want    int
	}{
		{"tag only", "inlet", nil, 2},
		{"exact label", "inlet", []tree.Attr{tree.A("label", "in1")}, 1},
		{"two filters", "inlet", []tree.Attr{tree.A("label", "in2"), tree.A("field_id", "1")}, 1},
		{"missing attribute excludes", "inlet", []tree.Attr{tree.A("field_id", "1"), tree.A("label", "in1")}, 0},
		{"absent attribute is not a wildcard", "wall", []tree.Attr{tree.A("field_id", "")}, 0},
		{"unknown tag", "outlet", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bc.FindAll(tt.tag, tt.filters...)
			assert.Len(t, got, tt.want)
			if tt.want == 0 {
				assert.Nil(t, bc.Find(tt.tag, tt.filters...))
			} else {
				assert.Same(t, got[0], bc.Find(tt.tag, tt.filters...))
			}
		})
	}
}

func TestFindAll_ChildOrder(t *testing.T) {
	root := sample()
	inlets := root.Find("boundary_conditions").FindAll("inlet")
	require.Len(t, inlets, 2)

	l0, _ := inlets[0].Attr("label")
	l1, _ := inlets[1].Attr("label")
	assert.Equal(t, []string{"in1", "in2"}, []string{l0, l1})
}

func TestScalars(t *testing.T) {
	n := tree.New("velocity_pressure")

	_, ok := n.GetScalar("norm")
	assert.False(t, ok)
	assert.Equal(t, 0, n.Len(), "reading must not create")

	n.SetScalar("norm", "1.5")
	v, ok := n.GetScalar("norm")
	assert.True(t, ok)
	assert.Equal(t, "1.5", v)

	n.SetScalar("norm", "2")
	assert.Equal(t, 1, n.Len(), "set must reuse the child")

	n.FindOrCreate("empty")
	_, ok = n.GetScalar("empty")
	assert.False(t, ok, "an element without text carries no value")
}

func TestAppend_TreeByConstruction(t *testing.T) {
	root := tree.New("a")
	child := tree.New("b")
	require.NoError(t, root.Append(child))

	assert.ErrorIs(t, root.Append(child), tree.ErrAttached)

	grand := child.FindOrCreate("c")
	assert.ErrorIs(t, grand.Append(root), tree.ErrCycle)
	assert.ErrorIs(t, root.Append(root), tree.ErrCycle)
}

func TestRemove(t *testing.T) {
	root := sample()
	bc := root.Find("boundary_conditions")
	wall := bc.Find("wall", tree.A("label", "mur"))

	wall.Remove()
	assert.Nil(t, wall.Parent())
	assert.Nil(t, bc.Find("wall"))
	assert.Equal(t, 2, bc.Len())

	wall.Remove() // detached: no-op

	assert.Equal(t, 2, bc.RemoveAll("inlet"))
	assert.Equal(t, 0, bc.Len())
}

func TestAttrs_OrderAndDelete(t *testing.T) {
	n := tree.New("x", tree.A("b", "1"), tree.A("a", "2"))
	n.SetAttr("c", "3")
	n.SetAttr("b", "10")

	assert.Equal(t, []tree.Attr{{"b", "10"}, {"a", "2"}, {"c", "3"}}, n.Attrs())
	assert.True(t, n.DelAttr("a"))
	assert.False(t, n.DelAttr("a"))
	assert.Equal(t, []tree.Attr{{"b", "10"}, {"c", "3"}}, n.Attrs())
}

func TestPath(t *testing.T) {
	root := tree.New("root")
	path := []tree.Selector{
		tree.S("boundary_conditions"),
		tree.S("wall", "label", "mur"),
		tree.S("velocity_pressure"),
	}

	assert.Nil(t, root.FindPath(path...))
	vp := root.FindOrCreatePath(path...)
	assert.Same(t, vp, root.FindPath(path...))
	assert.Same(t, vp, root.FindOrCreatePath(path...))
	assert.Equal(t, 4, root.Count())
	assert.Equal(t, `wall[@label="mur"]`, path[1].String())
}

func TestCloneAndEqual(t *testing.T) {
	root := sample()
	root.FindPath(tree.S("boundary_conditions"), tree.S("wall", "label", "mur")).SetScalar("roughness", "0.01")

	c := root.Clone()
	assert.True(t, tree.Equal(root, c))
	assert.Nil(t, c.Parent())

	c.Find("boundary_conditions").Find("wall").SetScalar("roughness", "0.02")
	assert.False(t, tree.Equal(root, c), "clone must be deep")

	assert.True(t, tree.Equal(nil, nil))
	assert.False(t, tree.Equal(root, nil))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.01", tree.FormatFloat(0.01))
	assert.Equal(t, "101325", tree.FormatFloat(101325))
	assert.Equal(t, "1e-06", tree.FormatFloat(1e-6))
}
