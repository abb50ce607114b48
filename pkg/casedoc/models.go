package casedoc

import (
	"fmt"
	"strconv"

	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// Coal combustion models stored in solid_fuels@model.
const (
	CoalOff              = "off"
	CoalHomogeneous      = "homogeneous_fuel"
	CoalHomogeneousMoist = "homogeneous_fuel_moisture"
)

// Radiative transfer models stored in radiative_transfer@model.
const (
	RadiationOff = "off"
	RadiationDOM = "dom"
	RadiationP1  = "p-1"
)

// DefaultDiameter is the initial particle diameter of a new coal class, in metres.
const DefaultDiameter = 2.5e-05

var (
	coalModels      = []string{CoalOff, CoalHomogeneous, CoalHomogeneousMoist}
	radiationModels = []string{RadiationOff, RadiationDOM, RadiationP1}
)

// Models is a view over the physical-model switches under thermophysical_models. Boundary variants consult it
// for their construction preconditions.
type Models struct {
	doc *Document
}

// Models returns the physical-model view of the case. Building the view writes nothing.
func (d *Document) Models() Models {
	return Models{doc: d}
}

func (m Models) section() *tree.Node {
	return m.doc.Section(SectionModels)
}

func (m Models) solidFuels() *tree.Node {
	return m.section().FindOrCreate("solid_fuels")
}

// peek reads a model attribute without creating nodes or writing the default.
func (m Models) peek(tag, attr, def string, allowed []string) (string, error) {
	v := def
	if section := m.doc.root.Find(SectionModels); section != nil {
		if n := section.Find(tag); n != nil {
			if raw, ok := n.Attr(attr); ok {
				v = raw
			}
		}
	}
	if err := schema.InSet(attr, v, allowed...); err != nil {
		return "", err
	}
	return v, nil
}

// CoalCombustion returns the active coal combustion model, "off" by default.
func (m Models) CoalCombustion() (string, error) {
	return m.doc.GetChoice(m.solidFuels(), "model", CoalOff, coalModels...)
}

// SetCoalCombustion switches the coal combustion model. Enabling it on a case without coals creates one coal
// with a single class.
func (m Models) SetCoalCombustion(model string) error {
	changed, err := m.doc.SetChoice(m.solidFuels(), "model", model, coalModels...)
	if err != nil || !changed {
		return err
	}
	if model != CoalOff && len(m.solidFuels().FindAll("solid_fuel")) == 0 {
		return m.SetCoals([]int{1})
	}
	return nil
}

// CoalEnabled reports whether a coal combustion model is active. It only reads the tree.
func (m Models) CoalEnabled() (bool, error) {
	model, err := m.peek("solid_fuels", "model", CoalOff, coalModels)
	return model != CoalOff, err
}

// Coals returns the number of classes of each coal, in fuel_id order.
func (m Models) Coals() ([]int, error) {
	fuels := m.solidFuels().FindAll("solid_fuel")
	counts := make([]int, 0, len(fuels))
	for i := range fuels {
		fuel := m.solidFuels().Find("solid_fuel", tree.A("fuel_id", strconv.Itoa(i+1)))
		if fuel == nil {
			return nil, fmt.Errorf("solid_fuel %d: missing or out of sequence", i+1)
		}
		counts = append(counts, len(fuel.FindOrCreate("class").FindAll("diameter")))
	}
	return counts, nil
}

// SetCoals resizes the coal list to len(classCounts) coals with the given number of classes each. Existing
// coals and class diameters are kept, extra ones removed and missing ones created with DefaultDiameter.
func (m Models) SetCoals(classCounts []int) error {
	if len(classCounts) == 0 {
		return &schema.ValidationError{Kind: schema.KindOutOfRange, Key: "solid_fuel", Value: 0, Min: 1, Max: 1, Inclusive: true, Reason: "at least one coal"}
	}
	for i, n := range classCounts {
		if err := schema.Positive(fmt.Sprintf("solid_fuel[%d].class", i+1), float64(n)); err != nil {
			return err
		}
	}

	sf := m.solidFuels()
	for _, fuel := range sf.FindAll("solid_fuel") {
		id, err := strconv.Atoi(attr(fuel, "fuel_id"))
		if err != nil || id < 1 || id > len(classCounts) {
			fuel.Remove()
		}
	}
	for i, n := range classCounts {
		class := sf.FindOrCreate("solid_fuel", tree.A("fuel_id", strconv.Itoa(i+1))).FindOrCreate("class")
		for _, dia := range class.FindAll("diameter") {
			id, err := strconv.Atoi(attr(dia, "class_id"))
			if err != nil || id < 1 || id > n {
				dia.Remove()
			}
		}
		for k := 1; k <= n; k++ {
			dia := class.FindOrCreate("diameter", tree.A("class_id", strconv.Itoa(k)))
			if dia.Text() == "" {
				dia.SetText(tree.FormatFloat(DefaultDiameter))
			}
		}
	}
	m.doc.MarkModified()
	return nil
}

// Radiation returns the active radiative transfer model, "off" by default.
func (m Models) Radiation() (string, error) {
	return m.doc.GetChoice(m.section().FindOrCreate("radiative_transfer"), "model", RadiationOff, radiationModels...)
}

// SetRadiation switches the radiative transfer model.
func (m Models) SetRadiation(model string) error {
	_, err := m.doc.SetChoice(m.section().FindOrCreate("radiative_transfer"), "model", model, radiationModels...)
	return err
}

// RadiationEnabled reports whether a radiative transfer model is active. It only reads the tree.
func (m Models) RadiationEnabled() (bool, error) {
	model, err := m.peek("radiative_transfer", "model", RadiationOff, radiationModels)
	return model != RadiationOff, err
}

// ALE reports whether the mesh deformation method is on.
func (m Models) ALE() (bool, error) {
	return m.doc.GetStatus(m.section().FindOrCreate("ale_method"), "status", false)
}

// SetALE switches the mesh deformation method.
func (m Models) SetALE(on bool) error {
	return m.doc.SetStatus(m.section().FindOrCreate("ale_method"), "status", on)
}

func attr(n *tree.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}
