package main

import (
	"fmt"

	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/AvengeMedia/dankvscode/internal/report"
	"github.com/AvengeMedia/dankvscode/internal/themefile"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <theme>",
	Short: "Summarize a theme file",
	Long:  "Print counts, effective token scope settings and color issues for a theme file",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func runInspect(cmd *cobra.Command, args []string) {
	path := args[0]

	theme, err := themefile.NewOSStore().Load(path)
	if err != nil {
		log.Fatalf("Error loading theme: %v", err)
	}

	fmt.Print(report.Summary(path, theme))
}
