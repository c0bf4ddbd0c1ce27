package main

import (
	"fmt"
	"os"

	"github.com/AvengeMedia/dankvscode/internal/build"
	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/AvengeMedia/dankvscode/internal/merge"
	"github.com/AvengeMedia/dankvscode/internal/recipe"
	"github.com/AvengeMedia/dankvscode/internal/themefile"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <base> [source...]",
	Short: "Merge theme fragments onto a base theme",
	Long:  "Merge one or more theme fragments onto a base theme, left to right, and print or write the result",
	Args:  cobra.MinimumNArgs(1),
	Run:   runMerge,
}

func init() {
	mergeCmd.Flags().StringP("strategy", "s", string(merge.StrategyDeep), "Merge strategy: deep (key and scope level) or overwrite (whole fields)")
	mergeCmd.Flags().StringP("output", "o", "", "Write the merged theme to this path instead of stdout")
	mergeCmd.Flags().StringSlice("ansi", nil, "16 comma-separated terminal colors applied after the sources")
}

func runMerge(cmd *cobra.Command, args []string) {
	strategyFlag, _ := cmd.Flags().GetString("strategy")
	output, _ := cmd.Flags().GetString("output")
	ansi, _ := cmd.Flags().GetStringSlice("ansi")

	strategy, err := merge.ParseStrategy(strategyFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store := themefile.NewOSStore()
	builder := build.NewBuilder(store, log.GetLogger())

	theme, err := builder.Compose(recipe.Variant{
		Name:     "merge",
		Strategy: strategy,
		Base:     args[0],
		Sources:  args[1:],
		ANSI:     ansi,
	})
	if err != nil {
		log.Fatalf("Error merging themes: %v", err)
	}

	if output != "" {
		if err := store.Write(output, theme); err != nil {
			log.Fatalf("Error writing theme: %v", err)
		}
		log.Infof("Wrote %s", output)
		return
	}

	data, err := themefile.Encode(theme)
	if err != nil {
		log.Fatalf("Error encoding theme: %v", err)
	}
	fmt.Fprint(os.Stdout, string(data))
}
