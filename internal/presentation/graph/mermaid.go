package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/casetree/pkg/tree"
)

// Overlay contains editing state to visualize on the graph.
type Overlay struct {
	// Current is the label of the boundary zone being edited.
	Current string
	// Modified flags the root as carrying unsaved changes.
	Modified bool
}

// GenerateMermaid produces a Mermaid flowchart of the case tree rooted at root.
// It applies semantic styling:
// - Root: ((Circle))
// - Inlet: [/Parallelogram/]
// - Outlet: [\Parallelogram\]
// - Wall, symmetry: [[Subroutine]]
// - Scalar leaf: (Rounded)
// - Default: [Rectangle]
// Levels deeper than maxDepth are cut; zero or less draws the whole tree.
func GenerateMermaid(root *tree.Node, maxDepth int, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*tree.Node]string)
	var current []string

	var visit func(n *tree.Node, depth int)
	visit = func(n *tree.Node, depth int) {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		opener, closer := shape(n, depth)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label(n), closer))
		if parent, ok := ids[n.Parent()]; ok && depth > 0 {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parent, id))
		}

		if overlay != nil && overlay.Current != "" && isBoundary(n) {
			if v, _ := n.Attr("label"); v == overlay.Current {
				current = append(current, id)
			}
		}

		if maxDepth > 0 && depth >= maxDepth {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(root, 0)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef modified fill:#ffe0e0,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range current {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
		}
		if overlay.Modified {
			sb.WriteString(fmt.Sprintf("    class %s modified;\n", ids[root]))
		}
	}

	return sb.String()
}

func shape(n *tree.Node, depth int) (string, string) {
	switch {
	case depth == 0:
		return "((", "))"
	case isBoundary(n) && n.Tag == "inlet":
		return "[/", "/]"
	case isBoundary(n) && n.Tag == "outlet":
		return "[\\", "\\]"
	case isBoundary(n):
		return "[[", "]]"
	case n.Len() == 0 && n.Text() != "":
		return "(", ")"
	}
	return "[", "]"
}

func isBoundary(n *tree.Node) bool {
	p := n.Parent()
	if p == nil || p.Tag != "boundary_conditions" {
		return false
	}
	_, ok := n.Attr("label")
	return ok
}

func label(n *tree.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs() {
		sb.WriteString(fmt.Sprintf(" %s=%s", a.Name, a.Value))
	}
	if text := n.Text(); text != "" {
		sb.WriteString(" = " + text)
	}
	return strings.ReplaceAll(sb.String(), "\"", "'")
}
