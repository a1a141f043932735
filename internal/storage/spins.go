package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SpinRecord is one resolved spin in the history table.
type SpinRecord struct {
	ID         int64
	Profile    string
	SessionID  string // Play session that produced the spin
	Runes      []int  // Top rune per reel
	Groups     []int  // Qualifying group sizes
	Multiplier int
	Energy     int
	CreatedAt  time.Time
}

// SpinSummary aggregates a profile's spin history.
type SpinSummary struct {
	Spins       int
	Wins        int
	TotalEnergy int
	BestEnergy  int
}

// RecordSpin appends a spin to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordSpin(rec SpinRecord) (int64, error) {
	if rec.Profile == "" {
		rec.Profile = DefaultProfile
	}

	runes, err := json.Marshal(nonNil(rec.Runes))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode runes: %w", err)
	}
	groups, err := json.Marshal(nonNil(rec.Groups))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode groups: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO spins (profile, session_id, runes, groups_json, multiplier, energy)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Profile, rec.SessionID, string(runes), string(groups), rec.Multiplier, rec.Energy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save spin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopSpins retrieves the profile's highest-earning spins.
// Ties are broken by recency.
func (s *Store) TopSpins(profile string, limit int) ([]SpinRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.querySpins(
		`SELECT id, profile, session_id, runes, groups_json, multiplier, energy, created_at
		 FROM spins
		 WHERE profile = ?
		 ORDER BY energy DESC, id DESC
		 LIMIT ?`,
		profile, limit,
	)
}

// RecentSpins retrieves the profile's latest spins, newest first.
func (s *Store) RecentSpins(profile string, limit int) ([]SpinRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.querySpins(
		`SELECT id, profile, session_id, runes, groups_json, multiplier, energy, created_at
		 FROM spins
		 WHERE profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		profile, limit,
	)
}

// querySpins runs a spin query and scans every row.
func (s *Store) querySpins(query string, args ...any) ([]SpinRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query spins: %w", err)
	}
	defer rows.Close()

	var records []SpinRecord
	for rows.Next() {
		var rec SpinRecord
		var runes, groups string
		var createdAt any
		if err := rows.Scan(
			&rec.ID, &rec.Profile, &rec.SessionID, &runes, &groups,
			&rec.Multiplier, &rec.Energy, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(runes), &rec.Runes); err != nil {
			return nil, fmt.Errorf("storage: bad runes in spin %d: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(groups), &rec.Groups); err != nil {
			return nil, fmt.Errorf("storage: bad groups in spin %d: %w", rec.ID, err)
		}
		rec.CreatedAt = parseTime(createdAt)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestSpin returns the highest energy earned by a single spin.
// Returns 0 if no spins exist.
func (s *Store) BestSpin(profile string) (int, error) {
	var energy sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(energy) FROM spins WHERE profile = ?",
		profile,
	).Scan(&energy)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best spin: %w", err)
	}

	if !energy.Valid {
		return 0, nil
	}

	return int(energy.Int64), nil
}

// Summary aggregates the profile's spin history.
func (s *Store) Summary(profile string) (SpinSummary, error) {
	var sum SpinSummary
	var total, best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN energy > 0 THEN 1 ELSE 0 END), 0),
		        SUM(energy),
		        MAX(energy)
		 FROM spins
		 WHERE profile = ?`,
		profile,
	).Scan(&sum.Spins, &sum.Wins, &total, &best)
	if err != nil {
		return sum, fmt.Errorf("storage: cannot summarize spins: %w", err)
	}

	sum.TotalEnergy = int(total.Int64)
	sum.BestEnergy = int(best.Int64)
	return sum, nil
}

// ClearSpins deletes the profile's spin history.
func (s *Store) ClearSpins(profile string) error {
	_, err := s.db.Exec("DELETE FROM spins WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear spins: %w", err)
	}
	return nil
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
