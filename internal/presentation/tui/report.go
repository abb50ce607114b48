package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/aretw0/casetree/pkg/tree"
)

// Report summarizes a case as markdown: model switches, boundary zones and the outcome of boundary.Check.
// It reads the tree directly and never writes defaults back.
func Report(name string, doc *casedoc.Document) string {
	var sb strings.Builder
	if name == "" {
		name = "unsaved case"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	models := doc.Root().Find(casedoc.SectionModels)
	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Version | %s |\n", doc.Version())
	fmt.Fprintf(&sb, "| Modified | %s |\n", yesNo(doc.IsModified()))
	fmt.Fprintf(&sb, "| Coal combustion | %s |\n", stored(models, "solid_fuels", "model", casedoc.CoalOff))
	fmt.Fprintf(&sb, "| Radiative transfer | %s |\n", stored(models, "radiative_transfer", "model", casedoc.RadiationOff))
	fmt.Fprintf(&sb, "| ALE | %s |\n", stored(models, "ale_method", "status", casedoc.Off))

	entries := boundary.List(doc)
	sb.WriteString("\n## Boundary zones\n\n")
	if len(entries) == 0 {
		sb.WriteString("No boundary zones.\n")
	} else {
		sb.WriteString("| Zone | Kind | Choices |\n|---|---|---|\n")
		section := doc.Root().Find(casedoc.SectionBoundaries)
		for _, e := range entries {
			n := section.Find(e.Tag, tree.A(boundary.LabelAttr, e.Label))
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", e.Label, e.Tag, choices(n))
		}
	}

	sb.WriteString("\n## Checks\n\n")
	err := boundary.Check(doc)
	if err == nil {
		sb.WriteString("All stored values satisfy their constraints.\n")
		return sb.String()
	}
	issues := schema.ValidationErrors(err)
	if issues == nil {
		issues = []error{err}
	}
	for _, issue := range issues {
		fmt.Fprintf(&sb, "- %s\n", issue)
	}
	return sb.String()
}

func stored(models *tree.Node, tag, attr, def string) string {
	if models == nil {
		return def
	}
	n := models.Find(tag)
	if n == nil {
		return def
	}
	if v, ok := n.Attr(attr); ok {
		return v
	}
	return def
}

// choices lists the choice attributes of the zone's direct children, e.g. "velocity_pressure=norm".
func choices(n *tree.Node) string {
	if n == nil {
		return ""
	}
	var parts []string
	for _, c := range n.Children() {
		for _, a := range c.Attrs() {
			if a.Name == "choice" {
				parts = append(parts, c.Tag+"="+a.Value)
			}
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
