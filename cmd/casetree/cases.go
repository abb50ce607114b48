package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := app.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cases found.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+name)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <case>...",
	Short: "Remove one or more cases",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, name := range args {
			if err := app.Store.Delete(cmd.Context(), name); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", name, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed case '%s'\n", name)
		}
		if failed > 0 {
			return fmt.Errorf("%d case(s) not removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(rmCmd)
}
