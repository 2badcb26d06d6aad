package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/frasig"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of frasig",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("frasig version %s\n", strings.TrimSpace(frasig.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
