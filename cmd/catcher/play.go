package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/games/catcher"
	"github.com/vovakirdan/coin-catcher/internal/platform/audio"
	"github.com/vovakirdan/coin-catcher/internal/platform/tui"
	"github.com/vovakirdan/coin-catcher/internal/registry"
	"github.com/vovakirdan/coin-catcher/internal/storage"
)

var (
	flagConfig   string
	flagPreset   string
	flagMute     bool
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start Coin Catcher in this terminal.

Controls:
  Mouse drag      - Move the collector
  Left/Right, A/D - Nudge the collector
  Space/Enter     - Start
  P               - Pause
  Space/R         - Play again (after game over)
  M               - Toggle sound
  I               - Toggle session info
  Esc             - Pause, or leave when not playing
  Q/Ctrl+C        - Quit

Presets:
  easy   - Slower coins and fewer spawns
  normal - Default ranges
  hard   - Faster coins and more spawns

Examples:
  catcher play
  catcher play --preset easy
  catcher play --seed 42 --no-record
  catcher play --config ./my-catcher.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the session to the replay journal")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}
	catcher.SetConfigPath(flagConfig)
	catcher.SetPreset(preset)

	// Audio settings live in the game config
	gameCfg, err := config.LoadCatcher(flagConfig)
	if err != nil {
		log.Warn("could not load config, using defaults", "error", err)
		gameCfg = config.DefaultCatcherConfig()
	}

	defaults := core.DefaultConfig()
	width, height := defaults.ScreenW, defaults.ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(catcher.GameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	player := audio.NewPlayer(gameCfg.Audio)
	if flagMute {
		player.SetMuted(true)
	}
	if err := player.Init(); err != nil {
		log.Warn("audio unavailable, playing silently", "error", err)
		player.SetMuted(true)
	}
	defer player.Close()

	opts := tui.Options{
		Audio:  player,
		Player: config.GetEnv("USER", "player"),
	}

	if !flagNoRecord {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			log.Warn("could not open replay journal, session will not be recorded", "error", openErr)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	savedID, err := tui.Run(game, cfg, opts)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	if savedID != "" {
		fmt.Printf("Round saved as %s\n", savedID)
		fmt.Printf("Watch it with: catcher replay %s\n", savedID[:8])
	}
	return nil
}
