package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/games/catcher"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default settings",
	Long: `Print the built-in settings YAML. Save it to
~/.catcher/configs/catcher.yaml or pass it with --config to customize a round.

Example:
  catcher config > my-catcher.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.GetDefaultYAML(catcher.GameID))
		return err
	},
}
