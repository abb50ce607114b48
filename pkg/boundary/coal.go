package boundary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

const (
	// RatioTotal is the sum every coal's class ratios must reach, in percent.
	RatioTotal = 100.0
	// RatioTolerance bounds the rounding error accepted on RatioTotal.
	RatioTolerance = 1e-6

	DefaultOxidantTemperature = 1273.15
	DefaultCoalTemperature    = 373.15
)

// CoalInletBoundary is an inlet injecting air and pulverised coal. It requires an active coal combustion model;
// the coal and class counts come from the model and the ratio lists follow them.
type CoalInletBoundary struct {
	*InletBoundary
	classes []int
}

// NewCoalInlet adopts or creates the coal inlet labelled label.
func NewCoalInlet(doc *casedoc.Document, label string) (*CoalInletBoundary, error) {
	models := doc.Models()
	on, err := models.CoalEnabled()
	if err != nil {
		return nil, err
	}
	if !on {
		return nil, &PreconditionError{Nature: CoalInlet, Model: "solid_fuels", Detail: "coal combustion model is off"}
	}
	classes, err := models.Coals()
	if err != nil {
		return nil, err
	}

	in, err := newInlet(doc, label, CoalInlet, inletVelocity.withDefault(VelocityFlow1))
	if err != nil {
		return nil, err
	}
	b := &CoalInletBoundary{InletBoundary: in, classes: classes}
	if _, err := b.OxidantNumber(); err != nil {
		return nil, err
	}
	if _, err := b.OxidantTemperature(); err != nil {
		return nil, err
	}
	if err := b.sync(); err != nil {
		return nil, err
	}
	return b, nil
}

func coalName(i int) string  { return fmt.Sprintf("coal%02d", i+1) }
func className(k int) string { return fmt.Sprintf("class%02d", k+1) }

// nameIndex parses the zero-based index out of names such as coal01 or class12.
func nameIndex(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// sync aligns the stored coals and ratio lists with the model's class counts.
func (b *CoalInletBoundary) sync() error {
	vp := b.velocityNode()
	for _, c := range vp.FindAll("coal") {
		name, _ := c.Attr("name")
		if i, ok := nameIndex(name, "coal"); !ok || i >= len(b.classes) {
			c.Remove()
		}
	}

	for i, count := range b.classes {
		coal := vp.FindOrCreate("coal", tree.A("name", coalName(i)))
		if _, err := b.doc.GetFloat(coal, "flow1", 0, casedoc.NonNegative); err != nil {
			return err
		}
		if _, err := b.doc.GetFloat(coal, "temperature", DefaultCoalTemperature, casedoc.Positive); err != nil {
			return err
		}
		if err := syncRatios(coal, count); err != nil {
			return err
		}
	}
	return nil
}

func syncRatios(coal *tree.Node, count int) error {
	for _, r := range coal.FindAll("ratio") {
		name, _ := r.Attr("name")
		if k, ok := nameIndex(name, "class"); !ok || k >= count {
			r.Remove()
		}
	}
	if count == 0 {
		return nil
	}

	values := make([]float64, count)
	fresh := true
	for k := range values {
		r := coal.Find("ratio", tree.A("name", className(k)))
		if r == nil || r.Text() == "" {
			continue
		}
		fresh = false
		v, err := schema.ParseNumber("ratio", r.Text())
		if err != nil {
			return err
		}
		values[k] = v
	}

	switch {
	case fresh:
		values[0] = RatioTotal
	case math.Abs(sum(values)-RatioTotal) > RatioTolerance:
		last := count - 1
		free := RatioTotal - (sum(values) - values[last])
		if free >= 0 && free <= RatioTotal {
			values[last] = free
		} else {
			clear(values)
			values[0] = RatioTotal
		}
	}

	for k, v := range values {
		coal.FindOrCreate("ratio", tree.A("name", className(k))).SetText(tree.FormatFloat(v))
	}
	return nil
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// CoalCount returns the number of coals injected.
func (b *CoalInletBoundary) CoalCount() int {
	return len(b.classes)
}

// ClassCount returns the number of classes of coal i.
func (b *CoalInletBoundary) ClassCount(coal int) (int, error) {
	if coal < 0 || coal >= len(b.classes) {
		return 0, indexError("coal", coal, len(b.classes))
	}
	return b.classes[coal], nil
}

func (b *CoalInletBoundary) coalNode(coal int) (*tree.Node, error) {
	if coal < 0 || coal >= len(b.classes) {
		return nil, indexError("coal", coal, len(b.classes))
	}
	return b.velocityNode().FindOrCreate("coal", tree.A("name", coalName(coal))), nil
}

// OxidantNumber returns which oxidant (1 to 3) carries the coal.
func (b *CoalInletBoundary) OxidantNumber() (int, error) {
	v, err := b.doc.GetFloat(b.velocityNode(), "oxydant", 1, casedoc.Integral, casedoc.Range(1, 3, true))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetOxidantNumber selects the oxidant.
func (b *CoalInletBoundary) SetOxidantNumber(n int) error {
	return b.doc.SetFloat(b.velocityNode(), "oxydant", float64(n), casedoc.Range(1, 3, true))
}

// OxidantTemperature returns the inlet oxidant temperature, in kelvin.
func (b *CoalInletBoundary) OxidantTemperature() (float64, error) {
	return b.doc.GetFloat(b.velocityNode(), "temperature", DefaultOxidantTemperature, casedoc.Positive)
}

// SetOxidantTemperature writes the oxidant temperature.
func (b *CoalInletBoundary) SetOxidantTemperature(v float64) error {
	return b.doc.SetFloat(b.velocityNode(), "temperature", v, casedoc.Positive)
}

// Flow returns the mass flow of coal i, in kg/s.
func (b *CoalInletBoundary) Flow(coal int) (float64, error) {
	n, err := b.coalNode(coal)
	if err != nil {
		return 0, err
	}
	return b.doc.GetFloat(n, "flow1", 0, casedoc.NonNegative)
}

// SetFlow writes the mass flow of coal i.
func (b *CoalInletBoundary) SetFlow(coal int, v float64) error {
	n, err := b.coalNode(coal)
	if err != nil {
		return err
	}
	return b.doc.SetFloat(n, "flow1", v, casedoc.NonNegative)
}

// Temperature returns the injection temperature of coal i, in kelvin.
func (b *CoalInletBoundary) Temperature(coal int) (float64, error) {
	n, err := b.coalNode(coal)
	if err != nil {
		return 0, err
	}
	return b.doc.GetFloat(n, "temperature", DefaultCoalTemperature, casedoc.Positive)
}

// SetTemperature writes the injection temperature of coal i.
func (b *CoalInletBoundary) SetTemperature(coal int, v float64) error {
	n, err := b.coalNode(coal)
	if err != nil {
		return err
	}
	return b.doc.SetFloat(n, "temperature", v, casedoc.Positive)
}

// ClassRatios returns the mass ratios of the classes of coal i, in percent.
func (b *CoalInletBoundary) ClassRatios(coal int) ([]float64, error) {
	n, err := b.coalNode(coal)
	if err != nil {
		return nil, err
	}
	out := make([]float64, b.classes[coal])
	for k := range out {
		r := n.Find("ratio", tree.A("name", className(k)))
		if r == nil {
			return nil, &schema.ValidationError{Kind: schema.KindRequired, Key: className(k), Reason: "ratio missing"}
		}
		v, err := schema.ParseNumber(className(k), r.Text())
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// ClassRatio returns the ratio of class k of coal i.
func (b *CoalInletBoundary) ClassRatio(coal, class int) (float64, error) {
	ratios, err := b.ClassRatios(coal)
	if err != nil {
		return 0, err
	}
	if class < 0 || class >= len(ratios) {
		return 0, indexError("class", class, len(ratios))
	}
	return ratios[class], nil
}

// SetClassRatio edits one ratio and recomputes a free ratio so the sum stays at RatioTotal. The free ratio is
// the last class, or the one before it when the last class is edited. An edit that would push the free ratio
// outside [0, RatioTotal] is rejected and nothing is written. A coal with a single class only accepts
// RatioTotal.
func (b *CoalInletBoundary) SetClassRatio(coal, class int, v float64) error {
	ratios, err := b.ClassRatios(coal)
	if err != nil {
		return err
	}
	if class < 0 || class >= len(ratios) {
		return indexError("class", class, len(ratios))
	}
	if err := schema.InRange(className(class), v, 0, RatioTotal, true); err != nil {
		return err
	}

	if len(ratios) == 1 {
		if math.Abs(v-RatioTotal) > RatioTolerance {
			return schema.SumTo("ratio", []float64{v}, RatioTotal, RatioTolerance)
		}
		return b.writeRatios(coal, []float64{RatioTotal})
	}

	free := len(ratios) - 1
	if class == free {
		free--
	}
	next := append([]float64(nil), ratios...)
	next[class] = v
	rest := RatioTotal - (sum(next) - next[free])
	if rest < -RatioTolerance || rest > RatioTotal+RatioTolerance {
		return &schema.ValidationError{
			Kind:      schema.KindOutOfRange,
			Key:       className(free),
			Value:     rest,
			Min:       0,
			Max:       RatioTotal,
			Inclusive: true,
			Reason:    "free ratio cannot absorb the edit",
		}
	}
	next[free] = math.Min(math.Max(rest, 0), RatioTotal)
	return b.writeRatios(coal, next)
}

// SetClassRatios replaces every ratio of coal i. The input must have one value per class, each in
// [0, RatioTotal], summing to RatioTotal. A rejected input leaves the stored ratios unchanged.
func (b *CoalInletBoundary) SetClassRatios(coal int, values []float64) error {
	count, err := b.ClassCount(coal)
	if err != nil {
		return err
	}
	if len(values) != count {
		return &schema.ValidationError{
			Kind:      schema.KindOutOfRange,
			Key:       "ratio",
			Value:     len(values),
			Min:       float64(count),
			Max:       float64(count),
			Inclusive: true,
			Reason:    fmt.Sprintf("coal %d has %d classes", coal+1, count),
		}
	}
	for k, v := range values {
		if err := schema.InRange(className(k), v, 0, RatioTotal, true); err != nil {
			return err
		}
	}
	if err := schema.SumTo("ratio", values, RatioTotal, RatioTolerance); err != nil {
		return err
	}
	return b.writeRatios(coal, values)
}

func (b *CoalInletBoundary) writeRatios(coal int, values []float64) error {
	n, err := b.coalNode(coal)
	if err != nil {
		return err
	}
	changed := false
	for k, v := range values {
		r := n.FindOrCreate("ratio", tree.A("name", className(k)))
		text := tree.FormatFloat(v)
		if r.Text() != text {
			r.SetText(text)
			changed = true
		}
	}
	if changed {
		b.doc.MarkModified()
	}
	return nil
}
