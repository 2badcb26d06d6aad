package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/frasig/internal/cli"
	"github.com/aretw0/frasig/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "frasig",
	Short: "FRASIG draws simplified phrase-structure trees of Swedish sentences",
	Long: `FRASIG sends a Swedish sentence to a constituency parser, simplifies the tree
for teaching (placeholder phrases are removed, lone verbs get a verb phrase,
tags become Swedish labels) and draws it as a graphic.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		// Flags override file and environment
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("parser-url") {
			cfg.Parser.URL, _ = cmd.Flags().GetString("parser-url")
		}
		if cmd.Flags().Changed("fixtures") {
			cfg.Parser.Fixtures, _ = cmd.Flags().GetString("fixtures")
		}

		logger, err = cli.NewLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("parser-url", "", "Base URL of the parser service")
	rootCmd.PersistentFlags().String("fixtures", "", "YAML file with known parses (offline mode)")
	rootCmd.SilenceUsage = true
}
