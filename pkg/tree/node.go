package tree

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrAttached is returned when appending a node that already has a parent.
	ErrAttached = errors.New("node already attached to a parent")

	// ErrCycle is returned when appending a node under itself or one of its descendants.
	ErrCycle = errors.New("node cannot be appended under its own subtree")
)

// Attr is a single attribute. Attributes keep their insertion order.
type Attr struct {
	Name  string
	Value string
}

// A builds an attribute filter or attribute value.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Node is an element of the document tree.
type Node struct {
	Tag string

	attrs    []Attr
	children []*Node
	text     string
	parent   *Node
}

// New creates a detached node.
func New(tag string, attrs ...Attr) *Node {
	n := &Node{Tag: tag}
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

// Parent returns the owning node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up to the topmost ancestor.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the attribute list.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// SetAttr replaces the value in place when the attribute exists, otherwise appends it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// DelAttr removes the attribute and reports whether it was present.
func (n *Node) DelAttr(name string) bool {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Text returns the scalar content of the node.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces the scalar content of the node.
func (n *Node) SetText(s string) {
	n.text = s
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Append attaches a detached node as the last child.
func (n *Node) Append(child *Node) error {
	if child.parent != nil {
		return ErrAttached
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == child {
			return ErrCycle
		}
	}
	n.adopt(child)
	return nil
}

func (n *Node) adopt(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches the node from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) matches(tag string, filters []Attr) bool {
	if n.Tag != tag {
		return false
	}
	for _, f := range filters {
		v, ok := n.Attr(f.Name)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}

// FindAll returns the direct children matching tag and every filter, in child order.
func (n *Node) FindAll(tag string, filters ...Attr) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.matches(tag, filters) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first matching child or nil.
func (n *Node) Find(tag string, filters ...Attr) *Node {
	for _, c := range n.children {
		if c.matches(tag, filters) {
			return c
		}
	}
	return nil
}

// FindOrCreate returns the first matching child, appending a new one carrying the filters as attributes
// when none exists.
func (n *Node) FindOrCreate(tag string, filters ...Attr) *Node {
	if c := n.Find(tag, filters...); c != nil {
		return c
	}
	c := New(tag, filters...)
	n.adopt(c)
	return c
}

// RemoveAll detaches every matching child and returns how many were removed.
func (n *Node) RemoveAll(tag string, filters ...Attr) int {
	kept := n.children[:0]
	removed := 0
	for _, c := range n.children {
		if c.matches(tag, filters) {
			c.parent = nil
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = kept
	return removed
}

// GetScalar returns the text of the first child tagged childTag. ok is false when the child is absent or
// carries no text.
func (n *Node) GetScalar(childTag string) (string, bool) {
	c := n.Find(childTag)
	if c == nil || c.text == "" {
		return "", false
	}
	return c.text, true
}

// SetScalar writes the text of the child tagged childTag, creating it when absent.
func (n *Node) SetScalar(childTag, value string) {
	n.FindOrCreate(childTag).text = value
}

// Selector addresses children by tag and attribute filters.
type Selector struct {
	Tag   string
	Attrs []Attr
}

// S builds a selector from a tag and name/value pairs. A trailing unpaired name is ignored.
func S(tag string, kv ...string) Selector {
	sel := Selector{Tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		sel.Attrs = append(sel.Attrs, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return sel
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	for _, a := range s.Attrs {
		b.WriteString("[@")
		b.WriteString(a.Name)
		b.WriteString("=")
		b.WriteString(strconv.Quote(a.Value))
		b.WriteString("]")
	}
	return b.String()
}

// FindPath follows the selectors one level at a time and returns nil as soon as a step has no match.
func (n *Node) FindPath(path ...Selector) *Node {
	cur := n
	for _, sel := range path {
		cur = cur.Find(sel.Tag, sel.Attrs...)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindOrCreatePath is FindOrCreate applied level by level.
func (n *Node) FindOrCreatePath(path ...Selector) *Node {
	cur := n
	for _, sel := range path {
		cur = cur.FindOrCreate(sel.Tag, sel.Attrs...)
	}
	return cur
}

// Clone returns a detached deep copy.
func (n *Node) Clone() *Node {
	c := &Node{
		Tag:   n.Tag,
		attrs: n.Attrs(),
		text:  n.text,
	}
	for _, child := range n.children {
		c.adopt(child.Clone())
	}
	return c
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Walk visits the subtree depth first, parents before children. Returning false skips the children of the
// visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Equal reports structural equality: tag, ordered attributes, text and ordered children.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.text != b.text {
		return false
	}
	if len(a.attrs) != len(b.attrs) || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.attrs {
		if a.attrs[i] != b.attrs[i] {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// FormatFloat renders a float the way scalars are stored: shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
