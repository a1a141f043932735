package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode. The menu lists the game modes and the
collection screens: levels, upgrades, artifacts, achievements, settings
and spin history. Leaving a round returns to the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab          - Next collection tab
  Esc/B        - Back
  Q            - Quit

Examples:
  runeforge menu
  runeforge menu --profile ash --fps 30`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
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
	return tui.RunApp(deps, runtimeConfig())
}
