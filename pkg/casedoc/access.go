package casedoc

import (
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// FloatGuard checks a number about to be read from or written to the key it names.
type FloatGuard func(key string, v float64) error

// Range returns a guard for [min, max], or (min, max) when inclusive is false.
func Range(min, max float64, inclusive bool) FloatGuard {
	return func(key string, v float64) error {
		return schema.InRange(key, v, min, max, inclusive)
	}
}

// Positive, NonNegative and Integral adapt the schema guards of the same name.
var (
	Positive    FloatGuard = schema.Positive
	NonNegative FloatGuard = schema.NonNegative
	Integral    FloatGuard = schema.Integral
)

// GetFloat reads the number stored as the text of the child tagged tag. An absent value is replaced by def,
// which is written back so the next read returns the same value. Writing a default does not mark the case
// modified. The value is validated after the fallback.
func (d *Document) GetFloat(n *tree.Node, tag string, def float64, guards ...FloatGuard) (float64, error) {
	raw, ok := n.GetScalar(tag)
	if !ok {
		raw = tree.FormatFloat(def)
		n.SetScalar(tag, raw)
	}
	v, err := schema.ParseNumber(tag, raw)
	if err != nil {
		return 0, err
	}
	for _, guard := range guards {
		if err := guard(tag, v); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// SetFloat validates v and stores it as the text of the child tagged tag. Storing the current value is a no-op.
func (d *Document) SetFloat(n *tree.Node, tag string, v float64, guards ...FloatGuard) error {
	if err := schema.Finite(tag, v); err != nil {
		return err
	}
	for _, guard := range guards {
		if err := guard(tag, v); err != nil {
			return err
		}
	}
	return d.SetString(n, tag, tree.FormatFloat(v))
}

// GetString reads free text such as a formula, writing def back when absent.
func (d *Document) GetString(n *tree.Node, tag, def string) string {
	raw, ok := n.GetScalar(tag)
	if !ok {
		n.SetScalar(tag, def)
		return def
	}
	return raw
}

// SetString stores free text. Storing the current value is a no-op. Empty text is rejected since an empty
// child reads as absent, and so is text the XML form cannot carry unchanged.
func (d *Document) SetString(n *tree.Node, tag, value string) error {
	if value == "" {
		return &schema.ValidationError{Kind: schema.KindRequired, Key: tag, Reason: "must not be empty"}
	}
	if !tree.ValidText(value) {
		return &schema.ValidationError{Kind: schema.KindBadText, Key: tag, Value: value, Reason: "invalid UTF-8 or control character"}
	}
	if cur, ok := n.GetScalar(tag); ok && cur == value {
		return nil
	}
	n.SetScalar(tag, value)
	d.MarkModified()
	return nil
}

// GetChoice reads an enumerated attribute of n, writing def back when absent.
func (d *Document) GetChoice(n *tree.Node, attr, def string, allowed ...string) (string, error) {
	v, ok := n.Attr(attr)
	if !ok {
		v = def
		n.SetAttr(attr, v)
	}
	if err := schema.InSet(attr, v, allowed...); err != nil {
		return "", err
	}
	return v, nil
}

// SetChoice validates and stores an enumerated attribute. changed is false when the stored value already equals
// value, in which case nothing is written.
func (d *Document) SetChoice(n *tree.Node, attr, value string, allowed ...string) (changed bool, err error) {
	if err := schema.InSet(attr, value, allowed...); err != nil {
		return false, err
	}
	if cur, ok := n.Attr(attr); ok && cur == value {
		return false, nil
	}
	n.SetAttr(attr, value)
	d.MarkModified()
	return true, nil
}

// GetStatus reads an on/off attribute as a bool, writing def back when absent.
func (d *Document) GetStatus(n *tree.Node, attr string, def bool) (bool, error) {
	v, err := d.GetChoice(n, attr, onOff(def), On, Off)
	if err != nil {
		return false, err
	}
	return v == On, nil
}

// SetStatus stores an on/off attribute.
func (d *Document) SetStatus(n *tree.Node, attr string, status bool) error {
	_, err := d.SetChoice(n, attr, onOff(status), On, Off)
	return err
}

// On and Off are the persisted spelling of boolean switches.
const (
	On  = "on"
	Off = "off"
)

func onOff(b bool) string {
	if b {
		return On
	}
	return Off
}
