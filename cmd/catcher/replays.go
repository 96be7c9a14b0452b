package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/platform/tui"
	"github.com/vovakirdan/coin-catcher/internal/replay"
	"github.com/vovakirdan/coin-catcher/internal/storage"
)

var flagVerify bool

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded rounds",
	Long: `Open the replay journal. Pick a round with Enter to watch it,
press X to delete it.

While watching:
  Space/P - Pause
  +/-     - Change speed
  Esc     - Back to the list
  Q       - Quit`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify one recording",
	Long: `Play back a recorded round. The ID may be any unique prefix.

With --verify the round is re-simulated headlessly and its final state
is compared with the one captured when it was recorded.

Examples:
  catcher replay 3f2a9c1e
  catcher replay 3f2a --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-simulate and check the final state instead of watching")
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening replay journal: %w", err)
	}
	defer store.Close()

	defaults := core.DefaultConfig()
	width, height := defaults.ScreenW, defaults.ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	for {
		id, err := tui.RunBrowser(store, width, height)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}

		rec, err := store.LoadRecording(id)
		if err != nil {
			return err
		}

		goBack, err := tui.RunPlayback(rec)
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening replay journal: %w", err)
	}
	defer store.Close()

	rec, err := store.LoadRecording(args[0])
	if err != nil {
		return err
	}

	if flagVerify {
		if err := replay.Verify(rec); err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d ticks, %d inputs)\n", rec.ID, rec.Ticks, len(rec.Events))
		return nil
	}

	_, err = tui.RunPlayback(rec)
	return err
}
