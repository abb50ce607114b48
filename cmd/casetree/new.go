package main

import (
	"fmt"

	"github.com/aretw0/casetree/internal/cli"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <case>",
	Short: "Create an empty case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := app.Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		ed.Close()

		if modelFlagsChanged(cmd) {
			if err := app.Modify(cmd.Context(), args[0], "models", applyModelFlags(cmd)); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created case '%s'\n", args[0])
		return nil
	},
}

var modelCmd = &cobra.Command{
	Use:   "model <case>",
	Short: "Switch physical models",
	Long:  `Switches coal combustion, radiative transfer and mesh deformation. Without flags, prints the current models.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelFlagsChanged(cmd) {
			return app.Modify(cmd.Context(), args[0], "models", applyModelFlags(cmd))
		}

		ed, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer ed.Close()

		m := ed.Document().Models()
		coal, err := m.CoalCombustion()
		if err != nil {
			return err
		}
		coals, err := m.Coals()
		if err != nil {
			return err
		}
		radiation, err := m.Radiation()
		if err != nil {
			return err
		}
		ale, err := m.ALE()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "coal:      %s %v\n", coal, coals)
		fmt.Fprintf(out, "radiation: %s\n", radiation)
		fmt.Fprintf(out, "ale:       %t\n", ale)
		return nil
	},
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("coal", "", "Coal combustion model: off, homogeneous_fuel or homogeneous_fuel_moisture")
	cmd.Flags().String("coals", "", "Class count of each coal, e.g. 1,2")
	cmd.Flags().String("radiation", "", "Radiative transfer model: off, dom or p-1")
	cmd.Flags().Bool("ale", false, "Enable the mesh deformation method")
}

func modelFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"coal", "coals", "radiation", "ale"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyModelFlags(cmd *cobra.Command) func(*casedoc.Document) error {
	return func(doc *casedoc.Document) error {
		m := doc.Models()
		flags := cmd.Flags()
		if flags.Changed("coal") {
			v, _ := flags.GetString("coal")
			if err := m.SetCoalCombustion(v); err != nil {
				return err
			}
		}
		if flags.Changed("coals") {
			v, _ := flags.GetString("coals")
			counts, err := cli.ParseCounts(v)
			if err != nil {
				return err
			}
			if err := m.SetCoals(counts); err != nil {
				return err
			}
		}
		if flags.Changed("radiation") {
			v, _ := flags.GetString("radiation")
			if err := m.SetRadiation(v); err != nil {
				return err
			}
		}
		if flags.Changed("ale") {
			v, _ := flags.GetBool("ale")
			if err := m.SetALE(v); err != nil {
				return err
			}
		}
		return nil
	}
}

func init() {
	addModelFlags(newCmd)
	addModelFlags(modelCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(modelCmd)
}
