package boundary

import (
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// Mesh motion choices of a mobile wall.
const (
	ALEFixedBoundary     = "fixed_boundary"
	ALESlidingBoundary   = "sliding_boundary"
	ALEInternalCoupling  = "internal_coupling"
	ALEExternalCoupling  = "external_coupling"
	ALEFixedVelocity     = "fixed_velocity"
	ALEFixedDisplacement = "fixed_displacement"
)

// Vectors and matrices of an internally coupled wall.
const (
	InitialDisplacement     = "initial_displacement"
	EquilibriumDisplacement = "equilibrium_displacement"
	InitialVelocity         = "initial_velocity"

	MassMatrix      = "mass_matrix"
	StiffnessMatrix = "stiffness_matrix"
	DampingMatrix   = "damping_matrix"
	FluidForce      = "fluid_force"
)

const (
	defaultVelocityFormula     = "mesh_velocity_U = 0; mesh_velocity_V = 0; mesh_velocity_W = 0;"
	defaultDisplacementFormula = "mesh_x = 0; mesh_y = 0; mesh_z = 0;"
)

var couplingFormulas = map[string]string{
	MassMatrix:      "m11 = 1; m22 = 1; m33 = 1; m12 = 0; m13 = 0; m21 = 0; m23 = 0; m31 = 0; m32 = 0;",
	StiffnessMatrix: "k11 = 1; k22 = 1; k33 = 1; k12 = 0; k13 = 0; k21 = 0; k23 = 0; k31 = 0; k32 = 0;",
	DampingMatrix:   "c11 = 1; c22 = 1; c33 = 1; c12 = 0; c13 = 0; c21 = 0; c23 = 0; c31 = 0; c32 = 0;",
	FluidForce:      "fx = fluid_fx; fy = fluid_fy; fz = fluid_fz;",
}

var axes = []string{"X", "Y", "Z"}

func vector(tag string) field {
	return group(tag, leaf("X", "0"), leaf("Y", "0"), leaf("Z", "0"))
}

func formula(tag string) field {
	return group(tag, leaf("formula", couplingFormulas[tag]))
}

var wallALE = gate{
	attr: "choice",
	def:  ALEFixedBoundary,
	options: []option{
		{ALEFixedBoundary, nil},
		{ALESlidingBoundary, nil},
		{ALEInternalCoupling, []field{
			vector(InitialDisplacement),
			vector(EquilibriumDisplacement),
			vector(InitialVelocity),
			formula(MassMatrix),
			formula(StiffnessMatrix),
			formula(DampingMatrix),
			formula(FluidForce),
		}},
		{ALEExternalCoupling, nil},
		{ALEFixedVelocity, []field{leaf("formula", defaultVelocityFormula)}},
		{ALEFixedDisplacement, []field{leaf("formula", defaultDisplacementFormula)}},
	},
}

// MobileWallBoundary is a wall whose mesh moves with the deformation method.
type MobileWallBoundary struct {
	*WallBoundary
	ale gate
}

// NewMobileWall adopts or creates the mobile wall labelled label.
func NewMobileWall(doc *casedoc.Document, label string) (*MobileWallBoundary, error) {
	return newMobileWall(doc, label, MobileWall, wallALE)
}

func newMobileWall(doc *casedoc.Document, label string, nature Nature, ale gate) (*MobileWallBoundary, error) {
	w, err := newWall(doc, label, nature)
	if err != nil {
		return nil, err
	}
	mw := &MobileWallBoundary{WallBoundary: w, ale: ale}
	if _, err := mw.MotionChoice(); err != nil {
		return nil, err
	}
	return mw, nil
}

func (b *MobileWallBoundary) aleNode() *tree.Node { return b.child("ale") }

// MotionChoice returns the mesh motion of the wall.
func (b *MobileWallBoundary) MotionChoice() (string, error) {
	return b.ale.get(b.doc, b.aleNode())
}

// SetMotionChoice switches the mesh motion.
func (b *MobileWallBoundary) SetMotionChoice(choice string) error {
	return b.ale.set(b.doc, b.aleNode(), choice)
}

// MotionFormula returns the imposed velocity or displacement expression.
func (b *MobileWallBoundary) MotionFormula() (string, error) {
	choice, err := b.requireMotion(ALEFixedVelocity, ALEFixedDisplacement)
	if err != nil {
		return "", err
	}
	def := defaultVelocityFormula
	if choice == ALEFixedDisplacement {
		def = defaultDisplacementFormula
	}
	return b.doc.GetString(b.aleNode(), "formula", def), nil
}

// SetMotionFormula writes the imposed velocity or displacement expression.
func (b *MobileWallBoundary) SetMotionFormula(formula string) error {
	if _, err := b.requireMotion(ALEFixedVelocity, ALEFixedDisplacement); err != nil {
		return err
	}
	return b.doc.SetString(b.aleNode(), "formula", formula)
}

func (b *MobileWallBoundary) requireMotion(allowed ...string) (string, error) {
	choice, err := b.MotionChoice()
	if err != nil {
		return "", err
	}
	return choice, schema.InSet("ale", choice, allowed...)
}

// CoupledMobileWallBoundary is a mobile wall coupled to the internal structure solver.
type CoupledMobileWallBoundary struct {
	*MobileWallBoundary
}

// NewCoupledMobileWall adopts or creates the coupled wall labelled label. A new wall starts with internal coupling.
func NewCoupledMobileWall(doc *casedoc.Document, label string) (*CoupledMobileWallBoundary, error) {
	mw, err := newMobileWall(doc, label, CoupledMobileWall, wallALE.withDefault(ALEInternalCoupling))
	if err != nil {
		return nil, err
	}
	return &CoupledMobileWallBoundary{MobileWallBoundary: mw}, nil
}

func (b *CoupledMobileWallBoundary) coupled() error {
	_, err := b.requireMotion(ALEInternalCoupling)
	if err != nil {
		return &PreconditionError{Nature: CoupledMobileWall, Model: "internal_coupling", Detail: err.Error()}
	}
	return nil
}

// Vector returns the X, Y and Z components of one of InitialDisplacement, EquilibriumDisplacement or
// InitialVelocity.
func (b *CoupledMobileWallBoundary) Vector(name string) ([3]float64, error) {
	var out [3]float64
	n, err := b.vectorNode(name)
	if err != nil {
		return out, err
	}
	for i, axis := range axes {
		v, err := b.doc.GetFloat(n, axis, 0)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// SetVector writes the components of one of the coupling vectors.
func (b *CoupledMobileWallBoundary) SetVector(name string, v [3]float64) error {
	n, err := b.vectorNode(name)
	if err != nil {
		return err
	}
	for i, axis := range axes {
		if err := b.doc.SetFloat(n, axis, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *CoupledMobileWallBoundary) vectorNode(name string) (*tree.Node, error) {
	if err := schema.InSet("vector", name, InitialDisplacement, EquilibriumDisplacement, InitialVelocity); err != nil {
		return nil, err
	}
	if err := b.coupled(); err != nil {
		return nil, err
	}
	return b.aleNode().FindOrCreate(name), nil
}

// Formula returns one of MassMatrix, StiffnessMatrix, DampingMatrix or FluidForce.
func (b *CoupledMobileWallBoundary) Formula(name string) (string, error) {
	n, err := b.formulaNode(name)
	if err != nil {
		return "", err
	}
	return b.doc.GetString(n, "formula", couplingFormulas[name]), nil
}

// SetFormula writes one of the coupling expressions.
func (b *CoupledMobileWallBoundary) SetFormula(name, expr string) error {
	n, err := b.formulaNode(name)
	if err != nil {
		return err
	}
	return b.doc.SetString(n, "formula", expr)
}

func (b *CoupledMobileWallBoundary) formulaNode(name string) (*tree.Node, error) {
	if err := schema.InSet("formula", name, MassMatrix, StiffnessMatrix, DampingMatrix, FluidForce); err != nil {
		return nil, err
	}
	if err := b.coupled(); err != nil {
		return nil, err
	}
	return b.aleNode().FindOrCreate(name), nil
}
