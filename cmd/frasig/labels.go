package main

import (
	"os"

	"github.com/aretw0/frasig/internal/cli"
	"github.com/aretw0/frasig/pkg/labels"
	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the tag to label table",
	Long:  `Prints every grammar tag with the Swedish label it is shown as, including overrides from the configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.WriteLabels(os.Stdout, labels.Default().Merge(cfg.Labels))
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
