package boundary

import (
	"strconv"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// DefaultRoughness is the wall roughness height of a new wall, in metres.
const DefaultRoughness = 0.01

var wallVelocity = gate{
	attr: "choice",
	def:  casedoc.Off,
	options: []option{
		{casedoc.On, []field{velocityComponent(0), velocityComponent(1), velocityComponent(2)}},
		{casedoc.Off, nil},
	},
}

func velocityComponent(i int) field {
	return field{sel: tree.S("dirichlet", "name", "velocity", "component", strconv.Itoa(i)), text: "0"}
}

// WallBoundary is a solid wall, optionally sliding.
type WallBoundary struct {
	*base
}

// NewWall adopts or creates the wall labelled label.
func NewWall(doc *casedoc.Document, label string) (*WallBoundary, error) {
	return newWall(doc, label, Wall)
}

func newWall(doc *casedoc.Document, label string, nature Nature) (*WallBoundary, error) {
	b, _, err := locate(doc, nature, label)
	if err != nil {
		return nil, err
	}
	w := &WallBoundary{base: b}
	if _, err := w.VelocityChoice(); err != nil {
		return nil, err
	}
	return w, nil
}

func (b *WallBoundary) velocityNode() *tree.Node { return b.child("velocity_pressure") }

// VelocityChoice returns "on" for a sliding wall with an imposed velocity, "off" otherwise.
func (b *WallBoundary) VelocityChoice() (string, error) {
	return wallVelocity.get(b.doc, b.velocityNode())
}

// SetVelocityChoice switches the imposed velocity. "on" creates three zero components; "off" removes them.
func (b *WallBoundary) SetVelocityChoice(choice string) error {
	return wallVelocity.set(b.doc, b.velocityNode(), choice)
}

// VelocityComponent returns component i (0, 1 or 2) of the imposed velocity.
func (b *WallBoundary) VelocityComponent(i int) (float64, error) {
	n, err := b.component(i)
	if err != nil {
		return 0, err
	}
	return schema.ParseNumber("velocity", n.Text())
}

// SetVelocityComponent writes component i of the imposed velocity.
func (b *WallBoundary) SetVelocityComponent(i int, v float64) error {
	n, err := b.component(i)
	if err != nil {
		return err
	}
	if err := schema.Finite("velocity", v); err != nil {
		return err
	}
	text := tree.FormatFloat(v)
	if n.Text() == text {
		return nil
	}
	n.SetText(text)
	b.doc.MarkModified()
	return nil
}

func (b *WallBoundary) component(i int) (*tree.Node, error) {
	if i < 0 || i > 2 {
		return nil, indexError("component", i, 3)
	}
	choice, err := b.VelocityChoice()
	if err != nil {
		return nil, err
	}
	if err := schema.InSet("velocity_pressure", choice, casedoc.On); err != nil {
		return nil, err
	}
	f := velocityComponent(i)
	n := b.velocityNode().FindOrCreate(f.sel.Tag, f.sel.Attrs...)
	if n.Text() == "" {
		n.SetText(f.text)
	}
	return n, nil
}

// Roughness returns the wall roughness height, materializing the default on first access.
func (b *WallBoundary) Roughness() (float64, error) {
	return b.doc.GetFloat(b.velocityNode(), "roughness", DefaultRoughness, casedoc.NonNegative)
}

// SetRoughness writes the wall roughness height. It must be non-negative.
func (b *WallBoundary) SetRoughness(v float64) error {
	return b.doc.SetFloat(b.velocityNode(), "roughness", v, casedoc.NonNegative)
}

// SymmetryBoundary is a symmetry plane. It carries no properties.
type SymmetryBoundary struct {
	*base
}

// NewSymmetry adopts or creates the symmetry plane labelled label.
func NewSymmetry(doc *casedoc.Document, label string) (*SymmetryBoundary, error) {
	b, _, err := locate(doc, Symmetry, label)
	if err != nil {
		return nil, err
	}
	return &SymmetryBoundary{base: b}, nil
}
