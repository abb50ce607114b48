package tree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMalformed wraps any failure to read the serialized form.
	ErrMalformed = errors.New("malformed document")

	// ErrEmptyDocument is returned when the input holds no root element.
	ErrEmptyDocument = errors.New("document has no root element")

	// ErrMixedContent is returned when a node carries both text and element children.
	ErrMixedContent = errors.New("node mixes text and element children")

	// ErrInvalidText is returned when a text or attribute value holds characters XML cannot carry.
	ErrInvalidText = errors.New("value is not valid XML character data")
)

const indent = "  "

// Serialize renders the tree rooted at root as indented XML preceded by an XML declaration.
func Serialize(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write is Serialize to an io.Writer.
func Write(w io.Writer, root *Node) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)

	decl := xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="utf-8"`)}
	if err := enc.EncodeToken(decl); err != nil {
		return err
	}
	if err := encodeNode(enc, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	if len(n.children) > 0 && n.text != "" {
		return fmt.Errorf("%w: <%s>", ErrMixedContent, n.Tag)
	}
	if !ValidText(n.text) {
		return fmt.Errorf("%w: text of <%s>", ErrInvalidText, n.Tag)
	}

	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.attrs {
		if !ValidText(a.Value) {
			return fmt.Errorf("%w: <%s %s>", ErrInvalidText, n.Tag, a.Name)
		}
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if len(n.children) == 0 {
		if n.text != "" {
			if err := enc.EncodeToken(xml.CharData(n.text)); err != nil {
				return err
			}
		}
	} else {
		for _, c := range n.children {
			if err := encodeNode(enc, c); err != nil {
				return err
			}
		}
	}

	return enc.EncodeToken(start.End())
}

// Parse reads a document produced by Serialize (or any XML without namespaces and mixed content).
// Whitespace between elements is treated as indentation and dropped.
func Parse(data []byte) (*Node, error) {
	return Read(bytes.NewReader(data))
}

// Read is Parse from an io.Reader.
func Read(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
		texts []*strings.Builder
	)

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
			}
			n := &Node{Tag: qualified(t.Name)}
			for _, a := range t.Attr {
				n.SetAttr(qualified(a.Name), a.Value)
			}
			if len(stack) == 0 {
				root = n
			} else {
				stack[len(stack)-1].adopt(n)
			}
			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if qualified(t.Name) != top.Tag {
				return nil, fmt.Errorf("%w: </%s> closes <%s>", ErrMalformed, qualified(t.Name), top.Tag)
			}
			text := texts[len(texts)-1].String()
			if len(top.children) > 0 {
				if strings.TrimSpace(text) != "" {
					return nil, fmt.Errorf("%w: <%s>", ErrMixedContent, top.Tag)
				}
			} else {
				top.text = text
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, fmt.Errorf("%w: text outside the root element", ErrMalformed)
				}
				continue
			}
			texts[len(texts)-1].Write(t)
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed <%s>", ErrMalformed, stack[len(stack)-1].Tag)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// ValidText reports whether s is valid UTF-8 made only of characters allowed in XML 1.0 documents, so that it
// survives Serialize and Parse unchanged.
func ValidText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
