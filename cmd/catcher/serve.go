package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/games/catcher"
	"github.com/vovakirdan/coin-catcher/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Coin Catcher SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own round sized to the client terminal.
Sessions are silent and are recorded to the server's replay journal
under the SSH user name.

Host key handling:
  - If --host-key (or CATCHER_HOST_KEY) is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.catcher/host_key

Examples:
  catcher serve                           # Listen on :23235 with auto-generated key
  catcher serve --ssh :2222               # Listen on port 2222
  catcher serve --host-key ./my_host_key  # Use specific host key
  CATCHER_SSH_ADDR=:2222 catcher serve    # Address from the environment

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default $CATCHER_SSH_ADDR or :23235)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default $CATCHER_HOST_KEY or auto-generated)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	defaults := tui.DefaultSSHServerConfig()

	addr := flagSSHAddr
	if addr == "" {
		addr = config.GetEnv("CATCHER_SSH_ADDR", defaults.Address)
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = config.GetEnv("CATCHER_HOST_KEY", "")
	}

	cfg := tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: hostKey,
		DBPath:      flagDBPath,
		GameID:      catcher.GameID,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting Coin Catcher SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
