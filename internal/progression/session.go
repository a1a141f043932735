package progression

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Session is a loaded save bound to its store.
// Every mutation is written back before the call returns.
// Safe for concurrent use; SSH connections of one player share a Session.
type Session struct {
	mu     sync.Mutex
	store  Store
	state  State
	logger *log.Logger
}

// NewSession loads the save held in store.
// A nil logger discards output.
func NewSession(store Store, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	state, err := Load(store)
	if err != nil {
		return nil, err
	}

	return &Session{
		store:  store,
		state:  state,
		logger: logger,
	}, nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddEnergy applies an energy gain and saves.
func (s *Session) AddEnergy(amount int) (Unlocks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.state.ApplyEnergyGain(amount)
	s.logger.Debug("energy gained", "amount", amount, "total", s.state.TotalEnergy)
	for _, id := range u.Levels {
		s.logger.Info("level unlocked", "level_id", id)
	}
	for _, id := range u.Artifacts {
		s.logger.Info("artifact unlocked", "artifact_id", id)
	}
	for _, id := range u.Achievements {
		s.logger.Info("achievement completed", "achievement_id", id)
	}

	if err := Save(s.store, s.state); err != nil {
		return u, err
	}
	return u, nil
}

// SelectBackground selects an unlocked background and saves.
// A locked background is a no-op and reports false.
func (s *Session) SelectBackground(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.SelectBackground(id) {
		return false, nil
	}
	return true, Save(s.store, s.state)
}

// SetCurrentLevel makes an unlocked level current and saves.
// A locked level is a no-op and reports false.
func (s *Session) SetCurrentLevel(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.SetCurrentLevel(id) {
		return false, nil
	}
	return true, Save(s.store, s.state)
}

// SetSound toggles sound and saves.
func (s *Session) SetSound(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SetSound(on)
	return Save(s.store, s.state)
}

// SetMusic toggles music and saves. Reports false when music was
// refused because sound is off.
func (s *Session) SetMusic(on bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.state.SetMusic(on)
	return ok, Save(s.store, s.state)
}

// Reset wipes the store and returns the session to a fresh save.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ResetAll(); err != nil {
		return fmt.Errorf("progression: reset: %w", err)
	}
	s.state.Reset()
	s.logger.Info("progress reset")
	return nil
}
