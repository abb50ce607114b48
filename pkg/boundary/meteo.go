package boundary

import (
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/tree"
)

// MeteoBoundary is an inlet whose profiles can come from a meteorological data file.
type MeteoBoundary struct {
	*InletBoundary
}

// NewMeteo adopts or creates the meteorological inlet labelled label.
func NewMeteo(doc *casedoc.Document, label string) (*MeteoBoundary, error) {
	in, err := newInlet(doc, label, Meteo, inletVelocity)
	if err != nil {
		return nil, err
	}
	m := &MeteoBoundary{InletBoundary: in}
	if _, err := m.ReadData(); err != nil {
		return nil, err
	}
	if _, err := m.Automatic(); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *MeteoBoundary) meteoNode() *tree.Node { return b.child("meteo") }

// ReadData reports whether boundary profiles are read from the meteo file.
func (b *MeteoBoundary) ReadData() (bool, error) {
	return b.doc.GetStatus(b.meteoNode(), "read_data", false)
}

// SetReadData switches reading of the meteo file.
func (b *MeteoBoundary) SetReadData(on bool) error {
	return b.doc.SetStatus(b.meteoNode(), "read_data", on)
}

// Automatic reports whether the inlet/outlet nature is chosen automatically from the meteo wind direction.
func (b *MeteoBoundary) Automatic() (bool, error) {
	return b.doc.GetStatus(b.meteoNode().FindOrCreate("automatic"), "status", false)
}

// SetAutomatic switches automatic nature detection.
func (b *MeteoBoundary) SetAutomatic(on bool) error {
	return b.doc.SetStatus(b.meteoNode().FindOrCreate("automatic"), "status", on)
}
