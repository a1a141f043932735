package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/games/forge"
	"github.com/vovakirdan/runeforge/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
)

var spinsCmd = &cobra.Command{
	Use:   "spins",
	Short: "Show spin history",
	Long: `Display a profile's best spins, or the latest ones with --recent.

Examples:
  runeforge spins
  runeforge spins --limit 25 --recent`,
	RunE: runSpins,
}

func init() {
	spinsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of spins to show")
	spinsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Newest first instead of best first")
}

func runSpins(_ *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var spins []storage.SpinRecord
	if flagRecent {
		spins, err = store.RecentSpins(flagProfile, flagLimit)
	} else {
		spins, err = store.TopSpins(flagProfile, flagLimit)
	}
	if err != nil {
		return err
	}

	title := "Best spins"
	if flagRecent {
		title = "Recent spins"
	}
	fmt.Printf("%s - %s\n\n", title, flagProfile)

	if len(spins) == 0 {
		fmt.Println("No spins recorded yet.")
		fmt.Println()
		fmt.Println("Run 'runeforge play' to fill the history!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Runes", "Groups", "Energy", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "-----", "------", "------", "----")
	for i, sp := range spins {
		fmt.Printf("  %-4d  %-10s  %-8s  %-6d  %s\n",
			i+1, runeString(sp.Runes), groupString(sp.Groups), sp.Energy, sp.CreatedAt.Format("2006-01-02 15:04"))
	}

	sum, err := store.Summary(flagProfile)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Total: %d spins, %d wins, %d energy. Best: %d\n", sum.Spins, sum.Wins, sum.TotalEnergy, sum.BestEnergy)
	return nil
}

func runeString(runes []int) string {
	var sb strings.Builder
	for _, r := range runes {
		sb.WriteRune(forge.Glyph(r))
	}
	return sb.String()
}

func groupString(groups []int) string {
	if len(groups) == 0 {
		return "-"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprint(g)
	}
	return strings.Join(parts, "+")
}
