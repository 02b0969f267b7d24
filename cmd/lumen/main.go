package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lumenlang/lumen/internal/config"
	"github.com/lumenlang/lumen/internal/runtime"
	"github.com/lumenlang/lumen/internal/stdext/db"
)

const version = "0.3.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "lumen",
	Short:   "Lumen host runtime inspection tool",
	Long:    "Inspect the Lumen host runtime: loaded extensions, their routines and types, and configured constants.",
	Version: version,
}

func main() {
	rootCmd.AddCommand(extCmd)
	rootCmd.AddCommand(constsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to lumen.yaml (default: ./lumen.yaml when present)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newContext builds a context the way an embedding host would: standard
// extensions registered, configuration applied when available.
func newContext() (*runtime.Context, error) {
	db.Register()

	ctx := runtime.NewContext()

	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err != nil {
			return ctx, nil
		}
		path = config.DefaultFileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(ctx); err != nil {
		return nil, fmt.Errorf("applying %s: %w", path, err)
	}
	return ctx, nil
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
