package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.runeforge/host_key.
	HostKeyPath string

	// DBPath is the progress database. Empty keeps progress in memory.
	DBPath string

	IdleTimeout time.Duration

	// SessionCacheSize caps how many disconnected players' sessions stay
	// loaded. Connected players' sessions are never evicted.
	SessionCacheSize int

	TickRate int
	Logger   *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:          ":23235",
		DBPath:           "~/.runeforge/runeforge.db",
		IdleTimeout:      30 * time.Minute,
		SessionCacheSize: 128,
		TickRate:         60,
	}
}

// SSHServer serves the rune forge over SSH. Each SSH user is a
// profile; connections from the same user share one progression
// Session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu   sync.Mutex
	live map[string]*liveSession
	// idle holds sessions with no open connection.
	idle *lru.Cache[string, *progression.Session]
}

// liveSession is a session held by at least one open connection.
// Live sessions are never evicted.
type liveSession struct {
	sess *progression.Session
	refs int
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "runeforge-ssh",
		})
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open progress database, progress will not persist", "error", err)
			store = nil
		}
	}

	size := cfg.SessionCacheSize
	if size <= 0 {
		size = DefaultSSHServerConfig().SessionCacheSize
	}
	idle, err := lru.NewWithEvict(size, func(user string, _ *progression.Session) {
		logger.Debug("idle session unloaded", "user", user)
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create session cache: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		live:   make(map[string]*liveSession),
		idle:   idle,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".runeforge", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// Acquire returns the shared progression session of a user, loading
// it on first use. The session stays loaded until release is called;
// release is safe to call more than once.
func (s *SSHServer) Acquire(user string) (*progression.Session, func(), error) {
	if user == "" {
		user = storage.DefaultProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ls, ok := s.live[user]; ok {
		ls.refs++
		return ls.sess, s.releaser(user), nil
	}

	sess, ok := s.idle.Peek(user)
	if ok {
		s.idle.Remove(user)
	} else {
		loaded, err := s.load(user)
		if err != nil {
			return nil, nil, err
		}
		sess = loaded
	}

	s.live[user] = &liveSession{sess: sess, refs: 1}
	return sess, s.releaser(user), nil
}

func (s *SSHServer) load(user string) (*progression.Session, error) {
	var kv progression.Store
	if s.store != nil {
		kv = s.store.Progress(user)
	} else {
		kv = storage.NewMemoryKV()
	}

	sess, err := progression.NewSession(kv, s.logger.With("user", user))
	if err != nil {
		return nil, fmt.Errorf("cannot load progress for %s: %w", user, err)
	}
	return sess, nil
}

func (s *SSHServer) releaser(user string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { s.release(user) })
	}
}

// release drops one reference. The last one moves the session to
// the idle cache, where it may be evicted; its state is already saved.
func (s *SSHServer) release(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.live[user]
	if !ok {
		return
	}
	ls.refs--
	if ls.refs > 0 {
		return
	}
	delete(s.live, user)
	s.idle.Add(user, ls.sess)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	progress, release, err := s.Acquire(user)
	if err != nil {
		s.logger.Error("cannot start session", "user", user, "error", err)
		return nil, nil
	}
	go func() {
		<-sshSession.Context().Done()
		release()
	}()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	deps := Deps{
		Progress: progress,
		Store:    s.store,
		Profile:  user,
		Logger:   s.logger.With("user", user),
	}

	return NewSessionModel(deps, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
