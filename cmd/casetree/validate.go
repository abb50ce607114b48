package main

import (
	"fmt"

	"github.com/aretw0/casetree/internal/presentation/tui"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <case>",
	Short: "Check every stored boundary value",
	Long:  `Re-validates the scalars, choices and coal class ratios of every boundary zone and reports violations.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer ed.Close()

		profile := app.Profile()
		out := cmd.OutOrStdout()
		err = ed.Check()
		if err == nil {
			fmt.Fprintln(out, tui.Status(profile, true, "Case is valid!"))
			return nil
		}

		issues := schema.ValidationErrors(err)
		if issues == nil {
			return err
		}
		for _, issue := range issues {
			fmt.Fprintln(out, tui.Status(profile, false, "- "+issue.Error()))
		}
		return fmt.Errorf("validation failed: %d issue(s)", len(issues))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
