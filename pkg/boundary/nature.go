package boundary

import (
	"fmt"
	"strings"
)

// Nature is the closed set of boundary variants.
type Nature int

const (
	Inlet Nature = iota
	Outlet
	Wall
	Symmetry
	RadiativeWall
	MobileWall
	CoupledMobileWall
	CoalInlet
	Meteo
)

var natureNames = [...]string{
	Inlet:             "inlet",
	Outlet:            "outlet",
	Wall:              "wall",
	Symmetry:          "symmetry",
	RadiativeWall:     "radiative_wall",
	MobileWall:        "mobile_wall",
	CoupledMobileWall: "coupled_mobile_wall",
	CoalInlet:         "coal_inlet",
	Meteo:             "meteo",
}

// Natures lists every variant in declaration order.
func Natures() []Nature {
	out := make([]Nature, len(natureNames))
	for i := range natureNames {
		out[i] = Nature(i)
	}
	return out
}

func (n Nature) String() string {
	if n < 0 || int(n) >= len(natureNames) {
		return fmt.Sprintf("nature(%d)", int(n))
	}
	return natureNames[n]
}

// ParseNature accepts the names returned by String, case-insensitively, with '-' as an alias of '_'.
func ParseNature(s string) (Nature, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range natureNames {
		if name == key {
			return Nature(i), nil
		}
	}
	return 0, fmt.Errorf("unknown boundary nature %q", s)
}

// Tag returns the element tag under boundary_conditions. Specialized inlets and walls share the tag of their
// base nature.
func (n Nature) Tag() string {
	switch n {
	case Inlet, CoalInlet, Meteo:
		return "inlet"
	case Outlet:
		return "outlet"
	case Wall, RadiativeWall, MobileWall, CoupledMobileWall:
		return "wall"
	case Symmetry:
		return "symmetry"
	default:
		return ""
	}
}
