package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/runeforge/internal/progression"
)

// DefaultProfile is used when no player name is given.
const DefaultProfile = "default"

// KV is one profile's slice of the progress table.
// It satisfies progression.Store.
type KV struct {
	db      *sql.DB
	profile string
}

var _ progression.Store = (*KV)(nil)

// Progress returns the key-value view for a profile.
func (s *Store) Progress(profile string) *KV {
	if profile == "" {
		profile = DefaultProfile
	}
	return &KV{db: s.db, profile: profile}
}

// Profile returns the profile name this view reads and writes.
func (kv *KV) Profile() string {
	return kv.profile
}

// get reads the raw value for key.
func (kv *KV) get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow(
		"SELECT value FROM progress WHERE profile = ? AND key = ?",
		kv.profile, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// set upserts the raw value for key.
func (kv *KV) set(key, value string) error {
	_, err := kv.db.Exec(
		`INSERT INTO progress (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		kv.profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// GetInt reads an integer value.
func (kv *KV) GetInt(key string) (int, bool, error) {
	raw, found, err := kv.get(key)
	if err != nil || !found {
		return 0, found, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("storage: %s is not an integer: %w", key, err)
	}
	return v, true, nil
}

// SetInt writes an integer value.
func (kv *KV) SetInt(key string, value int) error {
	return kv.set(key, strconv.Itoa(value))
}

// GetIntList reads an integer list stored as JSON.
func (kv *KV) GetIntList(key string) ([]int, bool, error) {
	raw, found, err := kv.get(key)
	if err != nil || !found {
		return nil, found, err
	}
	var values []int
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, true, fmt.Errorf("storage: %s is not an integer list: %w", key, err)
	}
	return values, true, nil
}

// SetIntList writes an integer list as JSON.
func (kv *KV) SetIntList(key string, values []int) error {
	if values == nil {
		values = []int{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	return kv.set(key, string(data))
}

// GetBool reads a boolean value.
func (kv *KV) GetBool(key string) (bool, bool, error) {
	raw, found, err := kv.get(key)
	if err != nil || !found {
		return false, found, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("storage: %s is not a boolean: %w", key, err)
	}
	return v, true, nil
}

// SetBool writes a boolean value.
func (kv *KV) SetBool(key string, value bool) error {
	return kv.set(key, strconv.FormatBool(value))
}

// ResetAll deletes every key of the profile. Spin history is kept.
func (kv *KV) ResetAll() error {
	if _, err := kv.db.Exec("DELETE FROM progress WHERE profile = ?", kv.profile); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// Profiles lists every profile with saved progress.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT profile FROM progress ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}
