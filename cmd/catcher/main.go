// catcher is a terminal Coin Catcher game with a replay journal.
//
// Usage:
//
//	catcher play             - Play a round in this terminal
//	catcher serve            - Start SSH server for remote play
//	catcher replays          - Browse and watch recorded rounds
//	catcher replay <id>      - Watch or verify one recording
//	catcher config           - Print the default settings
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set replay journal path (default: ~/.catcher/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/coin-catcher/internal/games/catcher"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catcher",
	Short: "Coin Catcher - catch falling coins in your terminal",
	Long: `Coin Catcher is a terminal arcade game. Move the collector with the
mouse or the arrow keys, catch coins to grow it and grab hearts for extra lives.

Every round is recorded to a local journal and can be replayed later.

Available commands:
  play     - Play a round in this terminal
  serve    - Start SSH server for remote play
  replays  - Browse recorded rounds
  replay   - Watch or verify a single recording
  config   - Print the default settings YAML

Examples:
  catcher play
  catcher play --preset hard
  catcher serve --ssh :2222
  catcher replays
  catcher replay 3f2a9c1e --verify`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catcher/replays.db", "Path to replay journal")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
