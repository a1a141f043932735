package storage

import (
	"slices"
	"sync"

	"github.com/vovakirdan/runeforge/internal/progression"
)

// MemoryKV is a progression.Store held in memory.
// Used when no database is configured; nothing survives the process.
type MemoryKV struct {
	mu    sync.Mutex
	ints  map[string]int
	lists map[string][]int
	bools map[string]bool
}

var _ progression.Store = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	m := &MemoryKV{}
	m.init()
	return m
}

func (m *MemoryKV) init() {
	m.ints = make(map[string]int)
	m.lists = make(map[string][]int)
	m.bools = make(map[string]bool)
}

func (m *MemoryKV) GetInt(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.ints[key]
	return v, ok, nil
}

func (m *MemoryKV) SetInt(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints[key] = value
	return nil
}

func (m *MemoryKV) GetIntList(key string) ([]int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.lists[key]
	return slices.Clone(v), ok, nil
}

func (m *MemoryKV) SetIntList(key string, values []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = slices.Clone(values)
	return nil
}

func (m *MemoryKV) GetBool(key string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.bools[key]
	return v, ok, nil
}

func (m *MemoryKV) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = value
	return nil
}

func (m *MemoryKV) ResetAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	return nil
}
