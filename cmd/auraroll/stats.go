package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/auraroll/internal/core"
	"github.com/vovakirdan/auraroll/internal/gacha"
	"github.com/vovakirdan/auraroll/internal/save"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show roll statistics from the save file",
	Long: `Reads the save file and prints totals, the collection and earned
titles without starting a game.

Examples:
  auraroll stats
  auraroll stats --save ./aura_save.json`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	path := savePath()
	st := gacha.NewState(cat)
	if err := save.New(path).Load(st); err != nil {
		if errors.Is(err, save.ErrNoSave) {
			fmt.Fprintf(cmd.OutOrStdout(), "No save file at %s.\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'auraroll play' to start collecting!")
			return nil
		}
		return err
	}

	// Read-only: the engine is used for its views and never ticked
	rng, err := core.NewRand(0)
	if err != nil {
		return err
	}
	engine := gacha.NewEngine(cat, st, rng, core.RealClock{})
	sum := engine.Summary()
	out := cmd.OutOrStdout()

	width := 80
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w > 0 {
		width = w
	}
	wrap := lipgloss.NewStyle().Width(width - 2)

	fmt.Fprintf(out, "Roll Stats - %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total Rolls:  %d\n", sum.TotalRolls)
	fmt.Fprintf(out, "Unique Auras: %d/%d\n", sum.UniqueAuras, len(cat.Auras))
	fmt.Fprintf(out, "Shiny Auras:  %d\n", sum.ShinyTotal)
	if sum.BestAura != "" {
		fmt.Fprintf(out, "Best Pull:    %s (1 in %d)\n", sum.BestAura, sum.BestRarity)
	}
	fmt.Fprintf(out, "Biome:        %s, Weather: %s\n", st.CurrentBiome, st.CurrentWeather)
	if len(sum.Titles) > 0 {
		fmt.Fprintln(out, wrap.Render("Titles:       "+strings.Join(sum.Titles, ", ")))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Your Aura Collection:")
	entries := engine.Collection()
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (empty)")
	}
	for i, c := range entries {
		fmt.Fprintf(out, "  No. %d %s 1 in %d: You have %d!\n", i+1, c.Name(), c.Rarity, c.Count)
	}

	if len(st.ItemInventory) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, wrap.Render("Items: "+strings.Join(st.ItemInventory, ", ")))
	}
	return nil
}
