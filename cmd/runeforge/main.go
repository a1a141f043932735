// runeforge spins rune rings in the terminal and turns matches into
// energy that unlocks levels, backgrounds, artifacts and achievements.
//
// Usage:
//
//	runeforge play [mode]      - Spin the rings (rings or rings_practice)
//	runeforge menu             - Menu with game modes and collection screens
//	runeforge serve            - Serve the forge over SSH
//	runeforge list             - List game modes
//	runeforge progress         - Show a profile's progress
//	runeforge reset            - Wipe a profile's progress
//	runeforge spins            - Show spin history
//	runeforge simulate         - Run the engine headless and report payouts
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible spins
//	--db <path>         - Progress database (default: ~/.runeforge/runeforge.db)
//	--config <path>     - Ring config YAML
//	--profile <name>    - Player profile
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Where TUI commands write their log
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/games/forge"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/storage"
)

// tuiAnnotation marks commands that own the terminal; they must not log to it.
const tuiAnnotation = "tui"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagLogLevel string
	flagLogFile  string
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runeforge",
	Short: "Rune Forge - spin the rings, match the runes",
	Long: `Rune Forge is a terminal rune-ring slot game. Five concentric rings
spin and settle; adjacent rings showing the same rune at the top form a
group, and groups pay energy. Energy unlocks levels, backgrounds,
artifacts and achievements.

Examples:
  runeforge play
  runeforge play rings_practice --seed 42
  runeforge menu --profile ash
  runeforge serve --ssh :23235
  runeforge simulate --spins 10000`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.runeforge/runeforge.db", "Path to progress database (env RUNEFORGE_DB)")
	pf.StringVar(&flagConfig, "config", "", "Path to ring config YAML")
	pf.StringVar(&flagProfile, "profile", "", "Player profile (env RUNEFORGE_PROFILE)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for play and menu (default: no log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(spinsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup loads .env, applies environment overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	flags := cmd.Flags()
	if v := os.Getenv("RUNEFORGE_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("RUNEFORGE_PROFILE"); v != "" && !flags.Changed("profile") {
		flagProfile = v
	}
	if flagProfile == "" {
		flagProfile = storage.DefaultProfile
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case cmd.Annotations[tuiAnnotation] != "":
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "runeforge",
	})

	forge.SetConfigPath(flagConfig)
	forge.SetLogger(logger.WithPrefix("forge"))
	return nil
}

// runtimeConfig sizes the screen from the attached terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the progress database. An empty --db returns a nil
// store and progress stays in memory.
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", flagDBPath)
	return store, nil
}

// requireStore is openStore for commands that only read or wipe saved data.
func requireStore() (*storage.Store, error) {
	store, err := openStore()
	if err == nil && store == nil {
		err = errors.New("no database configured, set --db or RUNEFORGE_DB")
	}
	return store, err
}

// openSession loads the profile's progression. A nil store keeps it in memory.
func openSession(store *storage.Store) (*progression.Session, error) {
	var kv progression.Store = storage.NewMemoryKV()
	if store != nil {
		kv = store.Progress(flagProfile)
	}
	return progression.NewSession(kv, logger.With("profile", flagProfile))
}
