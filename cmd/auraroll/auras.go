package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var aurasCmd = &cobra.Command{
	Use:   "auras",
	Short: "List every aura with its odds and biomes",
	Long:  `Shows the aura catalog: base odds and the biomes each aura spawns in.`,
	RunE:  runAuras,
}

func runAuras(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Calculate column widths
	maxNameLen := 4 // "Aura" header
	for _, a := range cat.Auras {
		if len(a.Name) > maxNameLen {
			maxNameLen = len(a.Name)
		}
	}

	fmt.Fprintln(out, "Auras:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-12s  %s\n", maxNameLen, "Aura", "Odds", "Biomes")
	fmt.Fprintf(out, "  %-*s  %-12s  %s\n", maxNameLen, "----", "----", "------")
	for _, a := range cat.Auras {
		fmt.Fprintf(out, "  %-*s  %-12s  %s\n", maxNameLen, a.Name, fmt.Sprintf("1 in %d", a.Rarity), strings.Join(a.Biomes, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Biomes:")
	for _, b := range cat.Biomes {
		fmt.Fprintf(out, "  %-14s x%.2f\n", b.Name, b.Modifier)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Weather:")
	for _, w := range cat.Weather {
		fmt.Fprintf(out, "  %-14s x%.2f (%s)\n", w.Name, w.Modifier(), w.Class)
	}
	return nil
}
