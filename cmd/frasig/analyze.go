package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/frasig/internal/cli"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <sentence>",
	Short: "Analyze one sentence and print its tree",
	Long: `Analyzes the first sentence of the given text and prints the simplified tree.

Formats:
- markdown (default): report, styled when printing to a terminal
- bracket: normalized tree in bracket notation
- skeleton: normalized tree without the words
- svg: the drawing shown by the web form
- mermaid: flowchart, with inserted verb phrases highlighted`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := cli.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		rt, err := cli.CreateEngine(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()
		ctx, cancel := context.WithTimeout(sc, cfg.Parser.Timeout+5*time.Second)
		defer cancel()

		a, err := rt.Engine.Analyze(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if a.Discarded > 0 {
			cli.PrintSystemMessage(os.Stderr, "Only the first sentence was analyzed (%d ignored).", a.Discarded)
		}
		return cli.WriteAnalysis(os.Stdout, a, format, cli.IsTerminal(os.Stdout), rt.Engine.Normalizer())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", string(cli.FormatMarkdown), "Output format: markdown, bracket, skeleton, svg or mermaid")
}
