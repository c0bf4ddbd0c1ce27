package main

import (
	"os"

	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "dankvscode",
	Short: "Build VSCode color themes from a base theme and vendor fragments",
	Long: `dankvscode merges a base VSCode color theme with vendor override
fragments and writes one theme file per variant.

Fragments are JSON with comments. Token color rules are reconciled scope by
scope, so a fragment only needs to name the scopes it changes.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(buildCmd, mergeCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
