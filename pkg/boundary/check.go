package boundary

import (
	"slices"
	"strings"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// leafTypes constrains stored scalars by tag, wherever they appear in a boundary subtree.
var leafTypes = schema.Schema{
	"norm":                  schema.Float(),
	"flow1":                 schema.AtLeastZero(),
	"flow2":                 schema.AtLeastZero(),
	"direction_x":           schema.Float(),
	"direction_y":           schema.Float(),
	"direction_z":           schema.Float(),
	"hydraulic_diameter":    schema.Above(),
	"turbulent_intensity":   schema.Between(0, 100),
	"pressure":              schema.Above(),
	"roughness":             schema.AtLeastZero(),
	"dirichlet":             schema.Float(),
	PropEmissivity:          schema.Between(0, 1),
	PropThermalConductivity: schema.Above(),
	PropThickness:           schema.Above(),
	PropExternalTemperature: schema.Above(),
	PropInternalTemperature: schema.Above(),
	PropFlux:                schema.Float(),
	"oxydant":               schema.IntBetween(1, 3),
	"temperature":           schema.Above(),
	"ratio":                 schema.Between(0, RatioTotal),
	"X":                     schema.Float(),
	"Y":                     schema.Float(),
	"Z":                     schema.Float(),
}

// choiceTypes constrains choice attributes by (boundary tag, element tag).
var choiceTypes = map[[2]string]schema.Type{
	{"inlet", "velocity_pressure"}: schema.Enum(inletVelocity.names()...),
	{"inlet", "direction"}:         schema.Enum(inletDirection.names()...),
	{"inlet", "turbulence"}:        schema.Enum(inletTurbulence.names()...),
	{"wall", "velocity_pressure"}:  schema.Enum(wallVelocity.names()...),
	{"wall", "radiative_data"}:     schema.Enum(radiativeData.names()...),
	{"wall", "ale"}:                schema.Enum(wallALE.names()...),
}

// Check lints every stored boundary: numeric scalars, choice attributes and coal class ratio sums. It returns
// nil or a *schema.AggregateError whose entries are keyed by node path. Save never calls it.
func Check(doc *casedoc.Document) error {
	section := doc.Root().Find(casedoc.SectionBoundaries)
	if section == nil {
		return nil
	}

	sch := schema.Schema{}
	data := map[string]any{}
	var errs []error

	for _, e := range List(doc) {
		b := section.Find(e.Tag, tree.A(LabelAttr, e.Label))
		prefix := tree.S(e.Tag, LabelAttr, e.Label).String()

		b.Walk(func(n *tree.Node) bool {
			key := prefix + pathFrom(b, n)
			if typ, ok := choiceTypes[[2]string{e.Tag, n.Tag}]; ok {
				if choice, set := n.Attr("choice"); set {
					sch[key+"@choice"] = typ
					data[key+"@choice"] = choice
				}
			}
			if n.Len() == 0 && n.Text() != "" {
				if typ, ok := leafTypes[n.Tag]; ok {
					sch[key] = typ
					data[key] = n.Text()
				}
			}
			if n.Tag == "coal" && e.Tag == "inlet" {
				if err := checkRatioSum(key, n); err != nil {
					errs = append(errs, err)
				}
			}
			return true
		})
	}

	if err := schema.ValidatePresent(sch, data); err != nil {
		errs = append(errs, schema.ValidationErrors(err)...)
	}
	if len(errs) == 0 {
		return nil
	}
	slices.SortFunc(errs, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})
	return &schema.AggregateError{Errors: errs}
}

func checkRatioSum(key string, coal *tree.Node) error {
	ratios := coal.FindAll("ratio")
	if len(ratios) == 0 {
		return nil
	}
	values := make([]float64, 0, len(ratios))
	for _, r := range ratios {
		v, err := schema.ParseNumber("ratio", r.Text())
		if err != nil {
			return nil // reported by the scalar check
		}
		values = append(values, v)
	}
	return schema.SumTo(key+"/ratio", values, RatioTotal, RatioTolerance)
}

// pathFrom renders the selectors leading from ancestor down to n, "" when n is ancestor.
func pathFrom(ancestor, n *tree.Node) string {
	var parts []string
	for cur := n; cur != nil && cur != ancestor; cur = cur.Parent() {
		sel := tree.Selector{Tag: cur.Tag}
		for _, a := range cur.Attrs() {
			if a.Name == "name" || a.Name == "component" {
				sel.Attrs = append(sel.Attrs, a)
			}
		}
		parts = append(parts, sel.String())
	}
	slices.Reverse(parts)
	if len(parts) == 0 {
		return ""
	}
	return "/" + strings.Join(parts, "/")
}
