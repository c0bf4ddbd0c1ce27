package main

import (
	"context"

	"github.com/AvengeMedia/dankvscode/internal/build"
	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/AvengeMedia/dankvscode/internal/recipe"
	"github.com/AvengeMedia/dankvscode/internal/themefile"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [recipe.yaml]",
	Short: "Build every theme variant in a recipe",
	Long:  "Load the base theme and vendor fragments of each recipe variant, merge them and write the result",
	Args:  cobra.MaximumNArgs(1),
	Run:   runBuild,
}

func init() {
	buildCmd.Flags().String("only", "", "Build only the named variant")
	buildCmd.Flags().Int("jobs", 0, "Number of variants to build in parallel (overrides the recipe)")
}

func runBuild(cmd *cobra.Command, args []string) {
	path := recipe.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}
	only, _ := cmd.Flags().GetString("only")
	jobs, _ := cmd.Flags().GetInt("jobs")

	store := themefile.NewOSStore()
	r, err := recipe.Load(store.Fs(), path)
	if err != nil {
		log.Fatalf("Error loading recipe %s: %v", path, err)
	}

	if jobs > 0 {
		r.Jobs = jobs
	}

	if only != "" {
		v, ok := r.Variant(only)
		if !ok {
			log.Fatalf("Variant not found in %s: %s", path, only)
		}
		r.Variants = []recipe.Variant{v}
	}

	builder := build.NewBuilder(store, log.GetLogger())
	if err := builder.BuildAll(context.Background(), r); err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	log.Debugf("Built %d variant(s) from %s", len(r.Variants), path)
}
