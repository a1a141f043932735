package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/storage"
)

var flagAllProfiles bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a profile's progress",
	Long: `Print energy, level, unlocks and spin totals for a profile.

Examples:
  runeforge progress
  runeforge progress --profile ash
  runeforge progress --all`,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "List every profile in the database")
}

func runProgress(_ *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagAllProfiles {
		return printProfiles(store)
	}

	sess, err := openSession(store)
	if err != nil {
		return err
	}
	s := sess.Snapshot()

	fmt.Printf("Profile %s\n\n", flagProfile)
	fmt.Printf("  Energy       %d\n", s.TotalEnergy)
	fmt.Printf("  Level        %d (%d of %d unlocked)\n", s.CurrentLevel, len(s.UnlockedLevelIDs()), len(s.Levels))
	if next, ok := s.NextLevel(); ok {
		fmt.Printf("  Next level   %d at %d energy (%d to go)\n", next.ID, next.EnergyRequired, next.EnergyRequired-s.TotalEnergy)
	} else {
		fmt.Println("  Next level   all levels unlocked")
	}
	fmt.Printf("  Background   %d\n", s.SelectedBackground)
	fmt.Printf("  Artifacts    %d of %d\n", len(s.UnlockedArtifactIDs()), len(s.Artifacts))
	fmt.Printf("  Sound        %s, music %s\n", onOff(s.Settings.SoundEnabled), onOff(s.Settings.MusicEnabled))

	fmt.Println()
	fmt.Println("Achievements:")
	for _, a := range s.Achievements {
		mark := " "
		if a.IsCompleted {
			mark = "x"
		}
		fmt.Printf("  [%s] %-20s %s\n", mark, a.Title, a.Description)
	}

	sum, err := store.Summary(flagProfile)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Spins %d, wins %d, energy earned %d, best spin %d\n", sum.Spins, sum.Wins, sum.TotalEnergy, sum.BestEnergy)
	return nil
}

func printProfiles(store *storage.Store) error {
	profiles, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles saved yet.")
		return nil
	}

	fmt.Printf("  %-16s  %8s  %5s\n", "Profile", "Energy", "Level")
	fmt.Printf("  %-16s  %8s  %5s\n", "-------", "------", "-----")
	for _, p := range profiles {
		s, err := progression.Load(store.Progress(p))
		if err != nil {
			logger.Warn("cannot load profile", "profile", p, "err", err)
			continue
		}
		fmt.Printf("  %-16s  %8d  %5d\n", p, s.TotalEnergy, s.CurrentLevel)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
