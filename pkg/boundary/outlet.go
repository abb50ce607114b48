package boundary

import "github.com/aretw0/casetree/pkg/casedoc"

// DefaultReferencePressure is the outlet pressure of a new case, in pascals.
const DefaultReferencePressure = 101325.0

// OutletBoundary is a free outlet with a reference pressure.
type OutletBoundary struct {
	*base
}

// NewOutlet adopts or creates the outlet labelled label.
func NewOutlet(doc *casedoc.Document, label string) (*OutletBoundary, error) {
	b, _, err := locate(doc, Outlet, label)
	if err != nil {
		return nil, err
	}
	out := &OutletBoundary{base: b}
	if _, err := out.ReferencePressure(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReferencePressure returns the outlet pressure, in pascals.
func (b *OutletBoundary) ReferencePressure() (float64, error) {
	return b.doc.GetFloat(b.child("velocity_pressure"), "pressure", DefaultReferencePressure, casedoc.Positive)
}

// SetReferencePressure writes the outlet pressure. It must be positive.
func (b *OutletBoundary) SetReferencePressure(v float64) error {
	return b.doc.SetFloat(b.child("velocity_pressure"), "pressure", v, casedoc.Positive)
}
