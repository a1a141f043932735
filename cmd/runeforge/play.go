package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/games/forge"
	"github.com/vovakirdan/runeforge/internal/platform/tui"
	"github.com/vovakirdan/runeforge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Spin the rings",
	Long: `Start a rune forge round. The mode is "rings" (default), which earns
energy for the profile, or "rings_practice", which keeps nothing.

Controls:
  Space/Enter  - Spin
  P            - Pause
  R            - Restart (while idle)
  Esc/B        - Leave (while idle)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  runeforge play
  runeforge play rings_practice
  runeforge play --config ./my-rings.yaml --seed 7`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(forge.ModeCampaign)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'runeforge list' to see modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		// The round still plays; progress lives in memory.
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	progress, err := openSession(store)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Progress: progress,
		Store:    store,
		Profile:  flagProfile,
		Logger:   logger,
	}
	return tui.Run(game, deps, runtimeConfig())
}
