package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auraroll/internal/storage"
)

var (
	flagLimit       int
	flagBoardPlayer string
	flagClear       bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the rarest pulls and the player ranking",
	Long: `Display the rarest pulls recorded in the leaderboard database and
the players ranked by their best pull.

Examples:
  auraroll leaderboard
  auraroll leaderboard --limit 25
  auraroll leaderboard --player alice
  auraroll leaderboard --player alice --clear`,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of pulls to show")
	leaderboardCmd.Flags().StringVar(&flagBoardPlayer, "player", "", "Show one player's pulls")
	leaderboardCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the records of --player")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	if flagClear && flagBoardPlayer == "" {
		return errors.New("--clear needs --player")
	}

	// Open leaderboard storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening leaderboard database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearPlayer(flagBoardPlayer); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared leaderboard records of %s.\n", flagBoardPlayer)
		return nil
	}

	if flagBoardPlayer != "" {
		return printPlayer(cmd, store, flagBoardPlayer)
	}

	pulls, err := store.TopPulls(flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Rarest Pulls")
	fmt.Fprintln(out)
	if len(pulls) == 0 {
		fmt.Fprintln(out, "No notable pulls recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'auraroll' and roll something rare!")
		return nil
	}
	printPulls(cmd, pulls)

	players, err := store.TopPlayers(10)
	if err != nil {
		return err
	}
	if len(players) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Players")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-6s  %-5s  %s\n", "Rank", "Player", "Rolls", "Unique", "Shiny", "Best")
		fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-6s  %-5s  %s\n", "----", "------", "-----", "------", "-----", "----")
		for i, p := range players {
			fmt.Fprintf(out, "  %-4d  %-16s  %-8d  %-6d  %-5d  %s\n", i+1, p.Player, p.TotalRolls, p.UniqueAuras, p.ShinyTotal, bestPull(p))
		}
	}
	return nil
}

func printPlayer(cmd *cobra.Command, store *storage.Store, player string) error {
	out := cmd.OutOrStdout()

	st, err := store.Player(player)
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Fprintf(out, "No records for %s.\n", player)
		return nil
	}

	fmt.Fprintf(out, "%s - %d rolls, %d unique, %d shiny, %d titles\n",
		st.Player, st.TotalRolls, st.UniqueAuras, st.ShinyTotal, st.Titles)
	fmt.Fprintf(out, "Best: %s\n", bestPull(*st))
	fmt.Fprintln(out)

	pulls, err := store.PlayerPulls(player, flagLimit)
	if err != nil {
		return err
	}
	if len(pulls) == 0 {
		fmt.Fprintln(out, "No notable pulls yet.")
		return nil
	}
	fmt.Fprintln(out, "Recent notable pulls:")
	printPulls(cmd, pulls)
	return nil
}

func printPulls(cmd *cobra.Command, pulls []storage.Pull) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-4s  %-16s  %-20s  %-12s  %-14s  %s\n", "Rank", "Player", "Aura", "Odds", "Biome", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-20s  %-12s  %-14s  %s\n", "----", "------", "----", "----", "-----", "----")
	for i, p := range pulls {
		fmt.Fprintf(out, "  %-4d  %-16s  %-20s  %-12s  %-14s  %s\n",
			i+1, p.Player, p.DisplayName(), fmt.Sprintf("1 in %d", p.Rarity), p.Biome, p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func bestPull(p storage.PlayerStats) string {
	if p.BestAura == "" {
		return "-"
	}
	return fmt.Sprintf("%s (1 in %d)", p.BestAura, p.BestRarity)
}
