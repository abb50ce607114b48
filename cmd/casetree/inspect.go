package main

import (
	"fmt"

	"github.com/aretw0/casetree/internal/presentation/graph"
	"github.com/aretw0/casetree/internal/presentation/tui"
	"github.com/aretw0/casetree/pkg/tree"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <case>",
	Short: "Show a case as a report, raw XML or a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		depth, _ := cmd.Flags().GetInt("depth")
		zone, _ := cmd.Flags().GetString("zone")

		ed, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer ed.Close()
		out := cmd.OutOrStdout()

		switch format {
		case "xml":
			return tree.Write(out, ed.Document().Root())
		case "mermaid":
			overlay := &graph.Overlay{Current: zone, Modified: ed.IsModified()}
			fmt.Fprint(out, graph.GenerateMermaid(ed.Document().Root(), depth, overlay))
			return nil
		case "report", "markdown":
			report := tui.Report(args[0], ed.Document())
			if format == "markdown" {
				fmt.Fprint(out, report)
				return nil
			}
			color := app.Color()
			if color {
				tui.PrintBanner(out, app.Profile())
			}
			render, err := tui.NewRenderer(color, 100)
			if err != nil {
				return err
			}
			rendered, err := render(report)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		}
		return fmt.Errorf("unknown format %q (report, markdown, xml, mermaid)", format)
	},
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "report", "report, markdown, xml or mermaid")
	inspectCmd.Flags().Int("depth", 0, "Mermaid: deepest level drawn, 0 for all")
	inspectCmd.Flags().String("zone", "", "Mermaid: label of the zone to highlight")
	rootCmd.AddCommand(inspectCmd)
}
