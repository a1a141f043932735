package main

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/config"
	"github.com/vovakirdan/runeforge/internal/rings"
)

var flagSimSpins int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the ring engine headless and report payouts",
	Long: `Spin the configured rings many times without a screen and print the
energy earned and how often each group pattern came up. Useful for
tuning a ring config before playing it.

Examples:
  runeforge simulate --spins 10000
  runeforge simulate --config ./my-rings.yaml --seed 1`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimSpins, "spins", 1000, "Number of spins")
}

// simReport sums a headless run.
type simReport struct {
	Spins       int
	Wins        int
	TotalEnergy int
	BestEnergy  int
	Unscored    int
	Patterns    map[string]int // Group pattern ("2", "2+3") or "miss" -> count
}

// simulate spins every reel n times, settling each reel on a segment
// before reading the top runes, as the game does.
func simulate(cfg config.RingsConfig, seed int64, n int) simReport {
	rng := rand.New(rand.NewSource(seed))
	reels := rings.InitializeReels(cfg.ReelConfigs(), cfg.RuneLayout(), rng)
	table := cfg.RewardTable()

	rep := simReport{Patterns: make(map[string]int)}
	for range n {
		for i := range reels {
			reels[i].Spin(rng)
			reels[i].CurrentAngle = rings.SnapToNearestSegment(reels[i].CurrentAngle)
		}

		out := rings.DetectMatches(reels, table)
		rep.Spins++
		rep.TotalEnergy += out.TotalEnergy
		rep.BestEnergy = max(rep.BestEnergy, out.TotalEnergy)
		rep.Unscored += len(out.Unscored)
		if !out.IsMiss() {
			rep.Wins++
		}

		pattern := "miss"
		if len(out.Groups) > 0 {
			pattern = groupString(out.Groups)
		}
		rep.Patterns[pattern]++
	}
	return rep
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimSpins <= 0 {
		return fmt.Errorf("--spins must be positive, got %d", flagSimSpins)
	}

	cfg, err := config.LoadRings(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("simulating", "spins", flagSimSpins, "seed", seed, "reels", len(cfg.Reels))

	rep := simulate(cfg, seed, flagSimSpins)

	fmt.Printf("Spins        %d (seed %d)\n", rep.Spins, seed)
	fmt.Printf("Wins         %d (%.1f%%)\n", rep.Wins, 100*float64(rep.Wins)/float64(rep.Spins))
	fmt.Printf("Energy       %d (%.2f per spin)\n", rep.TotalEnergy, float64(rep.TotalEnergy)/float64(rep.Spins))
	fmt.Printf("Best spin    %d\n", rep.BestEnergy)
	if rep.Unscored > 0 {
		fmt.Printf("Unscored     %d groups had no reward entry\n", rep.Unscored)
	}

	patterns := make([]string, 0, len(rep.Patterns))
	for p := range rep.Patterns {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		return rep.Patterns[patterns[i]] > rep.Patterns[patterns[j]] ||
			(rep.Patterns[patterns[i]] == rep.Patterns[patterns[j]] && patterns[i] < patterns[j])
	})

	fmt.Println()
	fmt.Printf("  %-8s  %8s  %6s\n", "Groups", "Count", "Share")
	fmt.Printf("  %-8s  %8s  %6s\n", "------", "-----", "-----")
	for _, p := range patterns {
		c := rep.Patterns[p]
		fmt.Printf("  %-8s  %8d  %5.1f%%\n", p, c, 100*float64(c)/float64(rep.Spins))
	}
	return nil
}
