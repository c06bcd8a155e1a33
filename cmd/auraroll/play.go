package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/auraroll/internal/core"
	"github.com/vovakirdan/auraroll/internal/logging"
	"github.com/vovakirdan/auraroll/internal/platform/tui"
	"github.com/vovakirdan/auraroll/internal/save"
	"github.com/vovakirdan/auraroll/internal/storage"
)

const logFileName = "auraroll.log"

var (
	flagSeed   int64
	flagPlayer string
	flagFresh  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Aura Roll",
	Long: `Start an interactive game. The save file is loaded automatically
if it exists.

Controls:
  Type a menu number and press Enter
  Esc        - Cancel the current prompt
  PgUp/PgDn  - Scroll the output log
  Ctrl+C     - Save and quit

Examples:
  auraroll play
  auraroll play --fresh
  auraroll play --seed 42 --save ./test_save.json
  auraroll play --catalog ./my-catalog.yaml`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Name on the leaderboard (default: OS user)")
	cmd.Flags().BoolVar(&flagFresh, "fresh", false, "Start without loading the save file")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	path := savePath()

	// The terminal belongs to the TUI, so logs go to a file beside the save
	logger := log.New(io.Discard)
	logFile, err := logging.OpenFile(filepath.Join(filepath.Dir(path), logFileName))
	if err == nil {
		defer logFile.Close()
		logger = logging.New(logFile, flagLogLevel, "auraroll")
	}

	// Open leaderboard storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open leaderboard database", "path", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("session starting", "save", path, "player", playerName())
	err = tui.Run(tui.Options{
		Catalog: cat,
		Save:    save.New(path),
		Store:   store,
		Logger:  logger,
		Player:  playerName(),
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Fresh: flagFresh,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Thanks for playing Aura Roll! Come back again next time!")
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username)
	}
	return "player"
}
