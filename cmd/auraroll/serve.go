package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auraroll/internal/logging"
	"github.com/vovakirdan/auraroll/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSaveDir     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aura Roll SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user gets their own save file in the save directory and can run
one game at a time. Notable pulls go to the shared leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.auraroll/host_key

Examples:
  auraroll serve                           # Listen on :23235 with auto-generated key
  auraroll serve --ssh :2222               # Listen on port 2222
  auraroll serve --saves /srv/auraroll     # Keep save files elsewhere
  auraroll serve --db ./leaderboard.db     # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSaveDir, "saves", def.SaveDir, "Directory for per-user save files")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		SaveDir:     flagSaveDir,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	logger := logging.New(os.Stderr, flagLogLevel, "auraroll-ssh")
	server, err := tui.NewSSHServer(cfg, cat, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting Aura Roll SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
