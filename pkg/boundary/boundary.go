package boundary

import (
	"fmt"
	"strings"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// LabelAttr keys boundary subtrees under boundary_conditions.
const LabelAttr = "label"

// PreconditionError is returned when a variant needs a physical model that is switched off.
type PreconditionError struct {
	Nature Nature
	Model  string
	Detail string
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s boundary requires %s", e.Nature, e.Model)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return domain.ErrPreconditionNotMet
}

// Boundary is the protocol shared by every variant.
type Boundary interface {
	Label() string
	Nature() Nature
	// Node returns the backing subtree.
	Node() *tree.Node
	// Delete removes the backing subtree from the document.
	Delete()
}

type base struct {
	doc    *casedoc.Document
	node   *tree.Node
	label  string
	nature Nature
}

func (b *base) Label() string    { return b.label }
func (b *base) Nature() Nature   { return b.nature }
func (b *base) Node() *tree.Node { return b.node }

func (b *base) Delete() {
	if b.node.Parent() == nil {
		return
	}
	b.node.Remove()
	b.doc.MarkModified()
}

func (b *base) child(tag string) *tree.Node {
	return b.node.FindOrCreate(tag)
}

// locate adopts the subtree of (nature tag, label), creating an empty one when absent.
func locate(doc *casedoc.Document, nature Nature, label string) (*base, bool, error) {
	if strings.TrimSpace(label) == "" {
		return nil, false, &schema.ValidationError{Kind: schema.KindRequired, Key: LabelAttr, Reason: "boundary label is empty"}
	}
	section := doc.Section(casedoc.SectionBoundaries)
	existing := section.Find(nature.Tag(), tree.A(LabelAttr, label))
	node := section.FindOrCreate(nature.Tag(), tree.A(LabelAttr, label))
	if existing == nil {
		doc.MarkModified()
	}
	return &base{doc: doc, node: node, label: label, nature: nature}, existing != nil, nil
}

// Make returns the variant for nature backed by the subtree labelled label. An existing subtree is adopted as
// is; otherwise a minimal subtree is created with the variant's defaults. Calling Make twice with the same
// arguments yields views over the same node.
func Make(nature Nature, label string, doc *casedoc.Document) (Boundary, error) {
	switch nature {
	case Inlet:
		return wrap(NewInlet(doc, label))
	case Outlet:
		return wrap(NewOutlet(doc, label))
	case Wall:
		return wrap(NewWall(doc, label))
	case Symmetry:
		return wrap(NewSymmetry(doc, label))
	case RadiativeWall:
		return wrap(NewRadiativeWall(doc, label))
	case MobileWall:
		return wrap(NewMobileWall(doc, label))
	case CoupledMobileWall:
		return wrap(NewCoupledMobileWall(doc, label))
	case CoalInlet:
		return wrap(NewCoalInlet(doc, label))
	case Meteo:
		return wrap(NewMeteo(doc, label))
	default:
		return nil, fmt.Errorf("unknown boundary nature %d", int(nature))
	}
}

// wrap keeps a nil variant pointer from turning into a non-nil Boundary.
func wrap[T Boundary](b T, err error) (Boundary, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Entry identifies a stored boundary.
type Entry struct {
	Tag   string
	Label string
}

// List returns every stored boundary in document order.
func List(doc *casedoc.Document) []Entry {
	section := doc.Root().Find(casedoc.SectionBoundaries)
	if section == nil {
		return nil
	}
	var out []Entry
	for _, n := range section.Children() {
		label, ok := n.Attr(LabelAttr)
		if !ok {
			continue
		}
		switch n.Tag {
		case "inlet", "outlet", "wall", "symmetry":
			out = append(out, Entry{Tag: n.Tag, Label: label})
		}
	}
	return out
}

// Delete removes the boundary (nature tag, label). It reports whether a subtree was removed.
func Delete(doc *casedoc.Document, nature Nature, label string) bool {
	section := doc.Root().Find(casedoc.SectionBoundaries)
	if section == nil {
		return false
	}
	if section.RemoveAll(nature.Tag(), tree.A(LabelAttr, label)) == 0 {
		return false
	}
	doc.MarkModified()
	return true
}

// indexError reports a zero-based index outside [0, n).
func indexError(key string, i, n int) error {
	return &schema.ValidationError{
		Kind:      schema.KindOutOfRange,
		Key:       key,
		Value:     i,
		Min:       0,
		Max:       float64(n - 1),
		Inclusive: true,
	}
}
