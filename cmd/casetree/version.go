package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/casetree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of casetree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "casetree version %s\n", strings.TrimSpace(casetree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
