package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/casetree/internal/cli"
	"github.com/aretw0/casetree/internal/config"
	"github.com/spf13/cobra"
)

var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "casetree",
	Short: "casetree edits simulation case files",
	Long: `casetree reads and writes the XML parameter files of simulation cases.
Every write is checked against the value constraints of the edited parameter.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("store-dir") {
			cfg.StoreDir, _ = flags.GetString("store-dir")
		}
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("color") {
			cfg.Color, _ = flags.GetString("color")
		}
		if flags.Changed("metrics") {
			cfg.Metrics, _ = flags.GetBool("metrics")
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		app, err = cli.NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return app.Finish()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.FileName, "Configuration file")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory holding the cases (overrides the config)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("color", "", "auto, always or never")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print Prometheus counters to stderr on exit")
}
