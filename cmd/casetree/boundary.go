package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/casetree/internal/cli"
	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/spf13/cobra"
)

var boundaryCmd = &cobra.Command{
	Use:     "boundary",
	Aliases: []string{"bc"},
	Short:   "Manage boundary zones",
}

var boundaryLsCmd = &cobra.Command{
	Use:   "ls <case>",
	Short: "List the boundary zones of a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer ed.Close()

		entries := boundary.List(ed.Document())
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No boundary zones.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", e.Tag, e.Label)
		}
		return nil
	},
}

var boundaryAddCmd = &cobra.Command{
	Use:   "add <case> <nature> <label>",
	Short: "Create a boundary zone with its defaults",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nature, err := boundary.ParseNature(args[1])
		if err != nil {
			return err
		}
		return app.Modify(cmd.Context(), args[0], "boundary", func(doc *casedoc.Document) error {
			_, err := boundary.Make(nature, args[2], doc)
			return err
		})
	},
}

var boundaryRmCmd = &cobra.Command{
	Use:   "rm <case> <nature> <label>",
	Short: "Remove a boundary zone",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nature, err := boundary.ParseNature(args[1])
		if err != nil {
			return err
		}
		return app.Modify(cmd.Context(), args[0], "boundary", func(doc *casedoc.Document) error {
			if !boundary.Delete(doc, nature, args[2]) {
				return fmt.Errorf("no %s zone labelled '%s'", nature.Tag(), args[2])
			}
			return nil
		})
	},
}

var boundarySetCmd = &cobra.Command{
	Use:   "set <case> <nature> <label> <property=value>...",
	Short: "Write boundary properties",
	Long: `Writes one or more properties of a zone as a single edit. Indexed properties take a
one-based suffix, e.g. flow.2=0.5 or ratios.1=40,60. Run 'casetree boundary props <nature>' for names.`,
	Args: cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		nature, err := boundary.ParseNature(args[1])
		if err != nil {
			return err
		}
		return app.Modify(cmd.Context(), args[0], "boundary", func(doc *casedoc.Document) error {
			b, err := boundary.Make(nature, args[2], doc)
			if err != nil {
				return err
			}
			for _, assignment := range args[3:] {
				prop, value, ok := strings.Cut(assignment, "=")
				if !ok {
					return fmt.Errorf("expected property=value, got %q", assignment)
				}
				if err := cli.SetProperty(b, strings.TrimSpace(prop), value); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var boundaryPropsCmd = &cobra.Command{
	Use:   "props <nature>",
	Short: "List the properties accepted by 'boundary set'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nature, err := boundary.ParseNature(args[0])
		if err != nil {
			return err
		}
		names := cli.PropertyNames(nature)
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has no editable properties.\n", nature)
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boundaryCmd)
	boundaryCmd.AddCommand(boundaryLsCmd)
	boundaryCmd.AddCommand(boundaryAddCmd)
	boundaryCmd.AddCommand(boundaryRmCmd)
	boundaryCmd.AddCommand(boundarySetCmd)
	boundaryCmd.AddCommand(boundaryPropsCmd)
}
