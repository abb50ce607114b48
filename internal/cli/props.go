package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
)

// propSetter writes one property. idx is the one-based suffix of indexed properties such as "flow.2",
// zero when absent.
type propSetter func(b boundary.Boundary, idx int, value string) error

var inletProps = map[string]propSetter{
	"velocity_choice": func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetVelocityChoice(v) },
	"velocity": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("velocity", v, inlet(b).SetVelocity)
	},
	"velocity_formula":  func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetVelocityFormula(v) },
	"direction_choice":  func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetDirectionChoice(v) },
	"direction_formula": func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetDirectionFormula(v) },
	"direction": func(b boundary.Boundary, _ int, v string) error {
		vec, err := parseVector("direction", v)
		if err != nil {
			return err
		}
		return inlet(b).SetDirection(vec)
	},
	"turbulence_choice":  func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetTurbulenceChoice(v) },
	"turbulence_formula": func(b boundary.Boundary, _ int, v string) error { return inlet(b).SetTurbulenceFormula(v) },
	"hydraulic_diameter": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("hydraulic_diameter", v, inlet(b).SetHydraulicDiameter)
	},
	"turbulent_intensity": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("turbulent_intensity", v, inlet(b).SetTurbulentIntensity)
	},
}

var coalProps = map[string]propSetter{
	"oxidant": func(b boundary.Boundary, _ int, v string) error {
		n, err := schema.ParseInt("oxidant", v)
		if err != nil {
			return err
		}
		return b.(*boundary.CoalInletBoundary).SetOxidantNumber(n)
	},
	"oxidant_temperature": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("oxidant_temperature", v, b.(*boundary.CoalInletBoundary).SetOxidantTemperature)
	},
	"flow": func(b boundary.Boundary, idx int, v string) error {
		return withFloat("flow", v, func(f float64) error { return b.(*boundary.CoalInletBoundary).SetFlow(idx-1, f) })
	},
	"temperature": func(b boundary.Boundary, idx int, v string) error {
		return withFloat("temperature", v, func(f float64) error { return b.(*boundary.CoalInletBoundary).SetTemperature(idx-1, f) })
	},
	"ratios": func(b boundary.Boundary, idx int, v string) error {
		values, err := parseList("ratios", v)
		if err != nil {
			return err
		}
		return b.(*boundary.CoalInletBoundary).SetClassRatios(idx-1, values)
	},
}

var meteoProps = map[string]propSetter{
	"read_data": func(b boundary.Boundary, _ int, v string) error {
		return withBool("read_data", v, b.(*boundary.MeteoBoundary).SetReadData)
	},
	"automatic": func(b boundary.Boundary, _ int, v string) error {
		return withBool("automatic", v, b.(*boundary.MeteoBoundary).SetAutomatic)
	},
}

var outletProps = map[string]propSetter{
	"pressure": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("pressure", v, b.(*boundary.OutletBoundary).SetReferencePressure)
	},
}

var wallProps = map[string]propSetter{
	"velocity_choice": func(b boundary.Boundary, _ int, v string) error { return wall(b).SetVelocityChoice(v) },
	"velocity": func(b boundary.Boundary, idx int, v string) error {
		return withFloat("velocity", v, func(f float64) error { return wall(b).SetVelocityComponent(idx-1, f) })
	},
	"roughness": func(b boundary.Boundary, _ int, v string) error {
		return withFloat("roughness", v, wall(b).SetRoughness)
	},
}

var radiativeProps = map[string]propSetter{
	"condition": func(b boundary.Boundary, _ int, v string) error {
		return b.(*boundary.RadiativeWallBoundary).SetCondition(v)
	},
}

func init() {
	for _, p := range []string{
		boundary.PropEmissivity,
		boundary.PropThermalConductivity,
		boundary.PropThickness,
		boundary.PropExternalTemperature,
		boundary.PropInternalTemperature,
		boundary.PropFlux,
	} {
		name := p
		radiativeProps[name] = func(b boundary.Boundary, _ int, v string) error {
			return withFloat(name, v, func(f float64) error { return b.(*boundary.RadiativeWallBoundary).SetProperty(name, f) })
		}
	}
}

var mobileProps = map[string]propSetter{
	"motion":         func(b boundary.Boundary, _ int, v string) error { return mobile(b).SetMotionChoice(v) },
	"motion_formula": func(b boundary.Boundary, _ int, v string) error { return mobile(b).SetMotionFormula(v) },
}

var coupledProps = map[string]propSetter{}

func init() {
	for _, vec := range []string{boundary.InitialDisplacement, boundary.EquilibriumDisplacement, boundary.InitialVelocity} {
		name := vec
		coupledProps[name] = func(b boundary.Boundary, _ int, v string) error {
			parsed, err := parseVector(name, v)
			if err != nil {
				return err
			}
			return b.(*boundary.CoupledMobileWallBoundary).SetVector(name, parsed)
		}
	}
	for _, f := range []string{boundary.MassMatrix, boundary.StiffnessMatrix, boundary.DampingMatrix, boundary.FluidForce} {
		name := f
		coupledProps[name] = func(b boundary.Boundary, _ int, v string) error {
			return b.(*boundary.CoupledMobileWallBoundary).SetFormula(name, v)
		}
	}
}

// propTables returns the property tables of a nature, most specific first.
func propTables(n boundary.Nature) []map[string]propSetter {
	switch n {
	case boundary.Inlet:
		return []map[string]propSetter{inletProps}
	case boundary.CoalInlet:
		return []map[string]propSetter{coalProps, inletProps}
	case boundary.Meteo:
		return []map[string]propSetter{meteoProps, inletProps}
	case boundary.Outlet:
		return []map[string]propSetter{outletProps}
	case boundary.Wall:
		return []map[string]propSetter{wallProps}
	case boundary.RadiativeWall:
		return []map[string]propSetter{radiativeProps, wallProps}
	case boundary.MobileWall:
		return []map[string]propSetter{mobileProps, wallProps}
	case boundary.CoupledMobileWall:
		return []map[string]propSetter{coupledProps, mobileProps, wallProps}
	}
	return nil
}

// PropertyNames lists the properties SetProperty accepts for a nature, sorted.
func PropertyNames(n boundary.Nature) []string {
	var names []string
	for _, table := range propTables(n) {
		for name := range table {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// SetProperty writes a property given as text. Indexed properties take a one-based suffix: "flow.2" is the
// flow of the second coal, "velocity.1" the first wall velocity component.
func SetProperty(b boundary.Boundary, prop, value string) error {
	name, suffix, indexed := strings.Cut(prop, ".")
	idx := 0
	if indexed {
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 1 {
			return fmt.Errorf("property %q: index must be a positive integer", prop)
		}
		idx = n
	}

	for _, table := range propTables(b.Nature()) {
		if set, ok := table[name]; ok {
			return set(b, idx, value)
		}
	}
	return fmt.Errorf("unknown property %q for %s (known: %s)", prop, b.Nature(), strings.Join(PropertyNames(b.Nature()), ", "))
}

func inlet(b boundary.Boundary) *boundary.InletBoundary {
	switch v := b.(type) {
	case *boundary.CoalInletBoundary:
		return v.InletBoundary
	case *boundary.MeteoBoundary:
		return v.InletBoundary
	}
	return b.(*boundary.InletBoundary)
}

func wall(b boundary.Boundary) *boundary.WallBoundary {
	switch v := b.(type) {
	case *boundary.RadiativeWallBoundary:
		return v.WallBoundary
	case *boundary.MobileWallBoundary:
		return v.WallBoundary
	case *boundary.CoupledMobileWallBoundary:
		return v.WallBoundary
	}
	return b.(*boundary.WallBoundary)
}

func mobile(b boundary.Boundary) *boundary.MobileWallBoundary {
	if v, ok := b.(*boundary.CoupledMobileWallBoundary); ok {
		return v.MobileWallBoundary
	}
	return b.(*boundary.MobileWallBoundary)
}

func withFloat(key, raw string, set func(float64) error) error {
	v, err := schema.ParseNumber(key, raw)
	if err != nil {
		return err
	}
	return set(v)
}

func withBool(key, raw string, set func(bool) error) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case casedoc.On, "true", "yes", "1":
		return set(true)
	case casedoc.Off, "false", "no", "0":
		return set(false)
	}
	return schema.InSet(key, raw, casedoc.On, casedoc.Off)
}

func parseList(key, raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := schema.ParseNumber(key, strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseVector(key, raw string) ([3]float64, error) {
	values, err := parseList(key, raw)
	if err != nil {
		return [3]float64{}, err
	}
	if len(values) != 3 {
		return [3]float64{}, fmt.Errorf("%s: expected 3 comma-separated components, got %d", key, len(values))
	}
	return [3]float64{values[0], values[1], values[2]}, nil
}

// ParseCounts reads a comma-separated list of class counts such as "1,2".
func ParseCounts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := schema.ParseInt("coals", strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
