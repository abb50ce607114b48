package boundary

import (
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/tree"
)

// field is a child created for a choice: a selector, the default text and an optional subtree.
type field struct {
	sel  tree.Selector
	text string
	sub  []field
}

func leaf(tag, text string) field {
	return field{sel: tree.S(tag), text: text}
}

func group(tag string, sub ...field) field {
	return field{sel: tree.S(tag), sub: sub}
}

func (f field) materialize(parent *tree.Node) {
	n := parent.FindOrCreate(f.sel.Tag, f.sel.Attrs...)
	if len(f.sub) == 0 {
		if n.Text() == "" && f.text != "" {
			n.SetText(f.text)
		}
		return
	}
	for _, s := range f.sub {
		s.materialize(n)
	}
}

// key identifies a field across options. Two options share a field only when selector and default agree.
func (f field) key() string {
	return f.sel.String() + "=" + f.text
}

type option struct {
	name   string
	fields []field
}

// gate stores a choice in attr and keeps the sibling children of the chosen option in place.
type gate struct {
	attr    string
	def     string
	options []option
}

func (g gate) names() []string {
	out := make([]string, len(g.options))
	for i, o := range g.options {
		out[i] = o.name
	}
	return out
}

func (g gate) fields(choice string) []field {
	for _, o := range g.options {
		if o.name == choice {
			return o.fields
		}
	}
	return nil
}

func (g gate) withDefault(def string) gate {
	g.def = def
	return g
}

// get returns the stored choice. An absent choice is replaced by the default and its children are created.
func (g gate) get(doc *casedoc.Document, n *tree.Node) (string, error) {
	_, stored := n.Attr(g.attr)
	choice, err := doc.GetChoice(n, g.attr, g.def, g.names()...)
	if err != nil {
		return "", err
	}
	if !stored {
		for _, f := range g.fields(choice) {
			f.materialize(n)
		}
	}
	return choice, nil
}

// set switches the choice. Setting the stored choice again is a no-op. Otherwise the children only the old
// choice used are removed and the new choice's children are created with defaults; shared children keep their
// values.
func (g gate) set(doc *casedoc.Document, n *tree.Node, choice string) error {
	old, _ := n.Attr(g.attr)
	changed, err := doc.SetChoice(n, g.attr, choice, g.names()...)
	if err != nil || !changed {
		return err
	}

	keep := make(map[string]bool)
	for _, f := range g.fields(choice) {
		keep[f.key()] = true
	}
	for _, f := range g.fields(old) {
		if !keep[f.key()] {
			n.RemoveAll(f.sel.Tag, f.sel.Attrs...)
		}
	}
	for _, f := range g.fields(choice) {
		f.materialize(n)
	}
	return nil
}

// uses reports whether the stored choice owns the child tagged tag.
func (g gate) uses(n *tree.Node, tag string) bool {
	choice, _ := n.Attr(g.attr)
	for _, f := range g.fields(choice) {
		if f.sel.Tag == tag {
			return true
		}
	}
	return false
}
