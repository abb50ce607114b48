package boundary

import (
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// Velocity choices of an inlet.
const (
	VelocityNorm         = "norm"
	VelocityFlow1        = "flow1"
	VelocityFlow2        = "flow2"
	VelocityNormFormula  = "norm_formula"
	VelocityFlow1Formula = "flow1_formula"
	VelocityFlow2Formula = "flow2_formula"
)

// Direction choices of an inlet.
const (
	DirectionNormal      = "normal"
	DirectionCoordinates = "coordinates"
	DirectionFormula     = "formula"
)

// Turbulence choices of an inlet.
const (
	TurbulenceHydraulicDiameter  = "hydraulic_diameter"
	TurbulenceTurbulentIntensity = "turbulent_intensity"
	TurbulenceFormula            = "formula"
)

const (
	defaultNormFormula      = "u_norm = 1.0;"
	defaultFlowFormula      = "q_m = 1.0;"
	defaultDirectionFormula = "dir_x = 1.0; dir_y = 0.0; dir_z = 0.0;"
	defaultTurbFormula      = "k = 1e-4; epsilon = 1e-5;"
)

var (
	inletVelocity = gate{
		attr: "choice",
		def:  VelocityNorm,
		options: []option{
			{VelocityNorm, []field{leaf("norm", "1")}},
			{VelocityFlow1, []field{leaf("flow1", "1")}},
			{VelocityFlow2, []field{leaf("flow2", "1")}},
			{VelocityNormFormula, []field{leaf("norm_formula", defaultNormFormula)}},
			{VelocityFlow1Formula, []field{leaf("flow1_formula", defaultFlowFormula)}},
			{VelocityFlow2Formula, []field{leaf("flow2_formula", defaultFlowFormula)}},
		},
	}

	inletDirection = gate{
		attr: "choice",
		def:  DirectionNormal,
		options: []option{
			{DirectionNormal, nil},
			{DirectionCoordinates, []field{leaf("direction_x", "0"), leaf("direction_y", "0"), leaf("direction_z", "0")}},
			{DirectionFormula, []field{leaf("direction_formula", defaultDirectionFormula)}},
		},
	}

	inletTurbulence = gate{
		attr: "choice",
		def:  TurbulenceHydraulicDiameter,
		options: []option{
			{TurbulenceHydraulicDiameter, []field{leaf("hydraulic_diameter", "1")}},
			{TurbulenceTurbulentIntensity, []field{leaf("turbulent_intensity", "2"), leaf("hydraulic_diameter", "1")}},
			{TurbulenceFormula, []field{leaf("formula", defaultTurbFormula)}},
		},
	}
)

// InletBoundary is a flow inlet.
type InletBoundary struct {
	*base
	velocity gate
}

// NewInlet adopts or creates the inlet labelled label.
func NewInlet(doc *casedoc.Document, label string) (*InletBoundary, error) {
	return newInlet(doc, label, Inlet, inletVelocity)
}

func newInlet(doc *casedoc.Document, label string, nature Nature, velocity gate) (*InletBoundary, error) {
	b, _, err := locate(doc, nature, label)
	if err != nil {
		return nil, err
	}
	in := &InletBoundary{base: b, velocity: velocity}
	if _, err := in.velocity.get(doc, in.velocityNode()); err != nil {
		return nil, err
	}
	if _, err := inletDirection.get(doc, in.directionNode()); err != nil {
		return nil, err
	}
	if _, err := inletTurbulence.get(doc, in.turbulenceNode()); err != nil {
		return nil, err
	}
	return in, nil
}

func (b *InletBoundary) velocityNode() *tree.Node   { return b.child("velocity_pressure") }
func (b *InletBoundary) directionNode() *tree.Node  { return b.velocityNode().FindOrCreate("direction") }
func (b *InletBoundary) turbulenceNode() *tree.Node { return b.child("turbulence") }

// VelocityChoice returns how the inlet velocity is specified.
func (b *InletBoundary) VelocityChoice() (string, error) {
	return b.velocity.get(b.doc, b.velocityNode())
}

// SetVelocityChoice switches how the velocity is given.
func (b *InletBoundary) SetVelocityChoice(choice string) error {
	return b.velocity.set(b.doc, b.velocityNode(), choice)
}

// Velocity returns the value of the active numeric velocity choice: a norm, or a mass or volume flow.
func (b *InletBoundary) Velocity() (float64, error) {
	choice, err := b.VelocityChoice()
	if err != nil {
		return 0, err
	}
	if err := numericVelocity(choice); err != nil {
		return 0, err
	}
	return b.doc.GetFloat(b.velocityNode(), choice, 1, velocityGuard(choice))
}

// SetVelocity writes the value of the active numeric velocity choice. Flows must be non-negative.
func (b *InletBoundary) SetVelocity(v float64) error {
	choice, err := b.VelocityChoice()
	if err != nil {
		return err
	}
	if err := numericVelocity(choice); err != nil {
		return err
	}
	return b.doc.SetFloat(b.velocityNode(), choice, v, velocityGuard(choice))
}

// VelocityFormula returns the expression of the active formula choice.
func (b *InletBoundary) VelocityFormula() (string, error) {
	choice, err := b.VelocityChoice()
	if err != nil {
		return "", err
	}
	if err := formulaVelocity(choice); err != nil {
		return "", err
	}
	def := defaultFlowFormula
	if choice == VelocityNormFormula {
		def = defaultNormFormula
	}
	return b.doc.GetString(b.velocityNode(), choice, def), nil
}

// SetVelocityFormula writes the expression of the active formula choice.
func (b *InletBoundary) SetVelocityFormula(formula string) error {
	choice, err := b.VelocityChoice()
	if err != nil {
		return err
	}
	if err := formulaVelocity(choice); err != nil {
		return err
	}
	return b.doc.SetString(b.velocityNode(), choice, formula)
}

func numericVelocity(choice string) error {
	return schema.InSet("velocity_pressure", choice, VelocityNorm, VelocityFlow1, VelocityFlow2)
}

func formulaVelocity(choice string) error {
	return schema.InSet("velocity_pressure", choice, VelocityNormFormula, VelocityFlow1Formula, VelocityFlow2Formula)
}

func velocityGuard(choice string) casedoc.FloatGuard {
	if choice == VelocityNorm {
		return schema.Finite
	}
	return casedoc.NonNegative
}

// DirectionChoice returns how the flow direction is specified.
func (b *InletBoundary) DirectionChoice() (string, error) {
	return inletDirection.get(b.doc, b.directionNode())
}

// SetDirectionChoice switches how the direction is given.
func (b *InletBoundary) SetDirectionChoice(choice string) error {
	return inletDirection.set(b.doc, b.directionNode(), choice)
}

// Direction returns the direction vector when the choice is coordinates.
func (b *InletBoundary) Direction() ([3]float64, error) {
	var out [3]float64
	if err := b.requireDirection(DirectionCoordinates); err != nil {
		return out, err
	}
	for i, tag := range []string{"direction_x", "direction_y", "direction_z"} {
		v, err := b.doc.GetFloat(b.directionNode(), tag, 0)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// SetDirection writes the direction vector when the choice is coordinates.
func (b *InletBoundary) SetDirection(dir [3]float64) error {
	if err := b.requireDirection(DirectionCoordinates); err != nil {
		return err
	}
	for i, tag := range []string{"direction_x", "direction_y", "direction_z"} {
		if err := b.doc.SetFloat(b.directionNode(), tag, dir[i]); err != nil {
			return err
		}
	}
	return nil
}

// DirectionFormula returns the direction expression when the choice is formula.
func (b *InletBoundary) DirectionFormula() (string, error) {
	if err := b.requireDirection(DirectionFormula); err != nil {
		return "", err
	}
	return b.doc.GetString(b.directionNode(), "direction_formula", defaultDirectionFormula), nil
}

// SetDirectionFormula writes the direction expression when the choice is formula.
func (b *InletBoundary) SetDirectionFormula(formula string) error {
	if err := b.requireDirection(DirectionFormula); err != nil {
		return err
	}
	return b.doc.SetString(b.directionNode(), "direction_formula", formula)
}

func (b *InletBoundary) requireDirection(want string) error {
	choice, err := b.DirectionChoice()
	if err != nil {
		return err
	}
	return schema.InSet("direction", choice, want)
}

// TurbulenceChoice returns how the inlet turbulence is specified.
func (b *InletBoundary) TurbulenceChoice() (string, error) {
	return inletTurbulence.get(b.doc, b.turbulenceNode())
}

// SetTurbulenceChoice switches how the turbulence is given. The hydraulic diameter is shared by two choices
// and survives a switch between them.
func (b *InletBoundary) SetTurbulenceChoice(choice string) error {
	return inletTurbulence.set(b.doc, b.turbulenceNode(), choice)
}

// HydraulicDiameter returns the hydraulic diameter, in metres.
func (b *InletBoundary) HydraulicDiameter() (float64, error) {
	if err := b.requireTurbulence("hydraulic_diameter"); err != nil {
		return 0, err
	}
	return b.doc.GetFloat(b.turbulenceNode(), "hydraulic_diameter", 1, casedoc.Positive)
}

// SetHydraulicDiameter writes the hydraulic diameter.
func (b *InletBoundary) SetHydraulicDiameter(v float64) error {
	if err := b.requireTurbulence("hydraulic_diameter"); err != nil {
		return err
	}
	return b.doc.SetFloat(b.turbulenceNode(), "hydraulic_diameter", v, casedoc.Positive)
}

// TurbulentIntensity returns the turbulent intensity, in percent.
func (b *InletBoundary) TurbulentIntensity() (float64, error) {
	if err := b.requireTurbulence("turbulent_intensity"); err != nil {
		return 0, err
	}
	return b.doc.GetFloat(b.turbulenceNode(), "turbulent_intensity", 2, casedoc.Range(0, 100, true))
}

// SetTurbulentIntensity writes the turbulent intensity.
func (b *InletBoundary) SetTurbulentIntensity(v float64) error {
	if err := b.requireTurbulence("turbulent_intensity"); err != nil {
		return err
	}
	return b.doc.SetFloat(b.turbulenceNode(), "turbulent_intensity", v, casedoc.Range(0, 100, true))
}

// TurbulenceFormula returns the turbulence expression.
func (b *InletBoundary) TurbulenceFormula() (string, error) {
	if err := b.requireTurbulence("formula"); err != nil {
		return "", err
	}
	return b.doc.GetString(b.turbulenceNode(), "formula", defaultTurbFormula), nil
}

// SetTurbulenceFormula writes the turbulence expression.
func (b *InletBoundary) SetTurbulenceFormula(formula string) error {
	if err := b.requireTurbulence("formula"); err != nil {
		return err
	}
	return b.doc.SetString(b.turbulenceNode(), "formula", formula)
}

// requireTurbulence fails when the active turbulence choice does not own tag.
func (b *InletBoundary) requireTurbulence(tag string) error {
	choice, err := b.TurbulenceChoice()
	if err != nil {
		return err
	}
	if inletTurbulence.uses(b.turbulenceNode(), tag) {
		return nil
	}
	return &schema.ValidationError{
		Kind:    schema.KindNotInSet,
		Key:     "turbulence",
		Value:   choice,
		Allowed: choicesUsing(inletTurbulence, tag),
		Reason:  tag + " is not used by this choice",
	}
}

func choicesUsing(g gate, tag string) []string {
	var out []string
	for _, o := range g.options {
		for _, f := range o.fields {
			if f.sel.Tag == tag {
				out = append(out, o.name)
				break
			}
		}
	}
	return out
}
