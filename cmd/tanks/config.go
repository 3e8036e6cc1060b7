package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the default configuration",
	Long: `Prints the built-in configuration YAML. Save it to
~/.tanks/configs/tanks.yaml or pass it with --config to customize battles.

Examples:
  tanks config > ~/.tanks/configs/tanks.yaml
  tanks config tanks_survival`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	mode := "tanks"
	if len(args) == 1 {
		mode = args[0]
	}

	data := config.GetDefaultYAML(mode)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no configuration for %q\n", mode)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
