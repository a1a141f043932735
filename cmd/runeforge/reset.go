package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe a profile's progress and spin history",
	Long: `Reset a profile to a fresh save: no energy, level 1, background 1,
no artifacts or achievements, audio on. Its spin history is deleted too.

Examples:
  runeforge reset
  runeforge reset --profile ash --yes`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Reset all progress for %q? Type 'yes' to confirm: ", flagProfile)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := openSession(store)
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	if err := store.ClearSpins(flagProfile); err != nil {
		return err
	}

	logger.Info("profile reset", "profile", flagProfile)
	fmt.Fprintf(cmd.OutOrStdout(), "Profile %s reset.\n", flagProfile)
	return nil
}
