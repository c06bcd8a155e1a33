// auraroll is a terminal aura-rolling game with a daily shop, quests,
// crafting and a local leaderboard.
//
// Usage:
//
//	auraroll                 - Play (same as 'auraroll play')
//	auraroll play            - Play, loading the save file if present
//	auraroll auras           - List every aura with its odds and biomes
//	auraroll stats           - Show roll statistics from the save file
//	auraroll leaderboard     - Show the rarest pulls and the player ranking
//	auraroll serve           - Start SSH server for remote play
//
// Global flags:
//
//	--save <path>       - Save file (default: aura_save.json next to the binary)
//	--catalog <path>    - Custom catalog YAML
//	--db <path>         - Leaderboard database (default: ~/.auraroll/leaderboard.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auraroll/internal/config"
	"github.com/vovakirdan/auraroll/internal/save"
)

var (
	// Global flags
	flagSavePath string
	flagCatalog  string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "auraroll",
	Short: "Aura Roll - collect rare auras in your terminal",
	Long: `Aura Roll is a terminal gacha game. Roll for auras, collect shiny
variants, buy items from the daily shop, finish daily quests and craft
powerful devices. Biomes and weather shift the odds as you play.

Available commands:
  play         - Start a game (default)
  auras        - Show every aura and where it spawns
  stats        - Show roll statistics from your save
  leaderboard  - Show the rarest pulls
  serve        - Start SSH server for remote play

Examples:
  auraroll
  auraroll play --seed 42
  auraroll stats --save ./aura_save.json
  auraroll serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", "", "Path to save file (default: aura_save.json next to the executable)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.auraroll/leaderboard.db", "Path to leaderboard database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(aurasCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(serveCmd)
}

// savePath resolves the save file location. The default sits next to the
// executable so a copied binary carries its save along.
func savePath() string {
	if flagSavePath != "" {
		return flagSavePath
	}
	exe, err := os.Executable()
	if err != nil {
		return save.DefaultFileName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), save.DefaultFileName)
}

func loadCatalog() (*config.Catalog, error) {
	cat, err := config.LoadCatalog(flagCatalog)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}
