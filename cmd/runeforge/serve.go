package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runeforge/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagCacheSize   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rune forge over SSH",
	Long: `Start an SSH server. Every connection gets the main menu; the SSH
user name is the profile, so each player keeps their own energy and
unlocks. Two connections from the same user share one progress.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.runeforge/host_key

Examples:
  runeforge serve
  runeforge serve --ssh :2222
  runeforge serve --host-key ./host_key --db ./forge.db

Players connect with:
  ssh -p 23235 <name>@localhost`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagCacheSize, "sessions", def.SessionCacheSize, "Player sessions kept loaded")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:          flagSSHAddr,
		HostKeyPath:      flagHostKey,
		DBPath:           flagDBPath,
		IdleTimeout:      time.Duration(flagIdleTimeout) * time.Minute,
		SessionCacheSize: flagCacheSize,
		TickRate:         flagFPS,
		Logger:           logger.WithPrefix("ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Rune forge listening on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
