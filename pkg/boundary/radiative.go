package boundary

import (
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// Radiative wall conditions.
const (
	RadiativeImposedTemperature = "itpimp" // fixed inner temperature
	RadiativeGreyConduction     = "ipgrno" // grey or black wall, conduction through the thickness
	RadiativeReflectConduction  = "iprefl" // reflecting wall, conduction through the thickness
	RadiativeGreyFlux           = "ifgrno" // grey or black wall, imposed flux
	RadiativeReflectFlux        = "ifrefl" // reflecting wall, imposed flux
)

// Radiative wall properties.
const (
	PropEmissivity          = "emissivity"
	PropThermalConductivity = "thermal_conductivity"
	PropThickness           = "thickness"
	PropExternalTemperature = "external_temperature_profile"
	PropInternalTemperature = "internal_temperature_profile"
	PropFlux                = "flux"
)

type radiativeProp struct {
	def   float64
	guard casedoc.FloatGuard
}

var radiativeProps = map[string]radiativeProp{
	PropEmissivity:          {0.8, casedoc.Range(0, 1, true)},
	PropThermalConductivity: {3.0, casedoc.Positive},
	PropThickness:           {0.1, casedoc.Positive},
	PropExternalTemperature: {273.15, casedoc.Positive},
	PropInternalTemperature: {303.15, casedoc.Positive},
	PropFlux:                {0, schema.Finite},
}

func radiativeFields(props ...string) []field {
	out := make([]field, len(props))
	for i, p := range props {
		out[i] = leaf(p, tree.FormatFloat(radiativeProps[p].def))
	}
	return out
}

var radiativeData = gate{
	attr: "choice",
	def:  RadiativeImposedTemperature,
	options: []option{
		{RadiativeImposedTemperature, radiativeFields(PropEmissivity, PropInternalTemperature)},
		{RadiativeGreyConduction, radiativeFields(PropEmissivity, PropThermalConductivity, PropThickness, PropExternalTemperature, PropInternalTemperature)},
		{RadiativeReflectConduction, radiativeFields(PropThermalConductivity, PropThickness, PropExternalTemperature, PropInternalTemperature)},
		{RadiativeGreyFlux, radiativeFields(PropEmissivity, PropFlux, PropInternalTemperature)},
		{RadiativeReflectFlux, radiativeFields(PropFlux, PropInternalTemperature)},
	},
}

// RadiativeWallBoundary is a wall exchanging radiation. It requires an active radiative transfer model.
type RadiativeWallBoundary struct {
	*WallBoundary
}

// NewRadiativeWall adopts or creates the radiative wall labelled label.
func NewRadiativeWall(doc *casedoc.Document, label string) (*RadiativeWallBoundary, error) {
	on, err := doc.Models().RadiationEnabled()
	if err != nil {
		return nil, err
	}
	if !on {
		return nil, &PreconditionError{Nature: RadiativeWall, Model: "radiative_transfer", Detail: "radiation model is off"}
	}
	w, err := newWall(doc, label, RadiativeWall)
	if err != nil {
		return nil, err
	}
	rw := &RadiativeWallBoundary{WallBoundary: w}
	if _, err := rw.Condition(); err != nil {
		return nil, err
	}
	return rw, nil
}

func (b *RadiativeWallBoundary) dataNode() *tree.Node { return b.child("radiative_data") }

// Condition returns the radiative condition.
func (b *RadiativeWallBoundary) Condition() (string, error) {
	return radiativeData.get(b.doc, b.dataNode())
}

// SetCondition switches the radiative condition. Properties shared with the previous condition keep their values.
func (b *RadiativeWallBoundary) SetCondition(choice string) error {
	return radiativeData.set(b.doc, b.dataNode(), choice)
}

// Properties lists the properties of the active condition.
func (b *RadiativeWallBoundary) Properties() ([]string, error) {
	choice, err := b.Condition()
	if err != nil {
		return nil, err
	}
	fields := radiativeData.fields(choice)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.sel.Tag
	}
	return out, nil
}

// Property reads one property of the active condition.
func (b *RadiativeWallBoundary) Property(name string) (float64, error) {
	p, err := b.property(name)
	if err != nil {
		return 0, err
	}
	return b.doc.GetFloat(b.dataNode(), name, p.def, p.guard)
}

// SetProperty writes one property of the active condition.
func (b *RadiativeWallBoundary) SetProperty(name string, v float64) error {
	p, err := b.property(name)
	if err != nil {
		return err
	}
	return b.doc.SetFloat(b.dataNode(), name, v, p.guard)
}

func (b *RadiativeWallBoundary) property(name string) (radiativeProp, error) {
	props, err := b.Properties()
	if err != nil {
		return radiativeProp{}, err
	}
	if err := schema.InSet("radiative_data", name, props...); err != nil {
		return radiativeProp{}, err
	}
	return radiativeProps[name], nil
}

// Emissivity reads the wall emissivity, in [0, 1].
func (b *RadiativeWallBoundary) Emissivity() (float64, error) {
	return b.Property(PropEmissivity)
}

// SetEmissivity writes the wall emissivity.
func (b *RadiativeWallBoundary) SetEmissivity(v float64) error {
	return b.SetProperty(PropEmissivity, v)
}

// InternalTemperature reads the inner wall temperature, in kelvin.
func (b *RadiativeWallBoundary) InternalTemperature() (float64, error) {
	return b.Property(PropInternalTemperature)
}

// SetInternalTemperature writes the inner wall temperature.
func (b *RadiativeWallBoundary) SetInternalTemperature(v float64) error {
	return b.SetProperty(PropInternalTemperature, v)
}
