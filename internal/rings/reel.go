// Package rings implements the rune-ring matching engine: reel layout,
// spin resolution, top-rune detection and energy rewards.
// Everything here is pure and synchronous. Randomness comes in through
// a Source so spins are reproducible under a fixed seed.
package rings

import "time"

// Segment geometry shared by every reel.
const (
	SegmentCount   = 12
	SegmentDegrees = 30.0
	FullTurn       = SegmentCount * SegmentDegrees
)

// NoRune is returned by RuneAtTop for a reel without a rune layout.
const NoRune = -1

// Source is the random source used for spins and starting angles.
// *rand.Rand from math/rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Reel is one rotating ring bearing SegmentCount runes.
type Reel struct {
	ID    int
	Scale float64 // Rendering size only, ignored by matching

	// CurrentAngle is unconstrained and may exceed a full turn or go
	// negative. Use NormalizeAngle for the logical angle.
	CurrentAngle float64

	// Runes are read clockwise from 12 o'clock. Rune k spans
	// [k*30, (k+1)*30) degrees.
	Runes []int

	MinRotation float64 // Inclusive, degrees, multiple of 30
	MaxRotation float64 // Inclusive, degrees, multiple of 30
	Direction   int     // +1 clockwise, -1 counter-clockwise

	AnimationDuration time.Duration
}

// ReelConfig is the static part of a reel.
type ReelConfig struct {
	ID          int
	Scale       float64
	MinRotation float64
	MaxRotation float64
	Duration    time.Duration
	Direction   int
}

// DefaultRunes is the reference rune layout.
func DefaultRunes() []int {
	runes := make([]int, SegmentCount)
	for i := range runes {
		runes[i] = i
	}
	return runes
}

// DefaultReelConfigs returns the reference five-reel setup: each reel
// is smaller than the last, travels further and turns the other way.
func DefaultReelConfigs() []ReelConfig {
	return []ReelConfig{
		{ID: 1, Scale: 1.0, MinRotation: 30, MaxRotation: 90, Duration: 1200 * time.Millisecond, Direction: 1},
		{ID: 2, Scale: 0.85, MinRotation: 90, MaxRotation: 180, Duration: 1400 * time.Millisecond, Direction: -1},
		{ID: 3, Scale: 0.7, MinRotation: 180, MaxRotation: 360, Duration: 1600 * time.Millisecond, Direction: 1},
		{ID: 4, Scale: 0.55, MinRotation: 360, MaxRotation: 720, Duration: 1800 * time.Millisecond, Direction: -1},
		{ID: 5, Scale: 0.4, MinRotation: 720, MaxRotation: 1440, Duration: 2000 * time.Millisecond, Direction: 1},
	}
}

// InitializeReels builds one reel per config, in config order.
// Each reel starts snapped to a segment drawn uniformly from the
// SegmentCount positions.
func InitializeReels(cfgs []ReelConfig, runes []int, rng Source) []Reel {
	reels := make([]Reel, len(cfgs))
	for i, c := range cfgs {
		layout := make([]int, len(runes))
		copy(layout, runes)

		reels[i] = Reel{
			ID:                c.ID,
			Scale:             c.Scale,
			CurrentAngle:      float64(rng.Intn(SegmentCount)) * SegmentDegrees,
			Runes:             layout,
			MinRotation:       c.MinRotation,
			MaxRotation:       c.MaxRotation,
			Direction:         c.Direction,
			AnimationDuration: c.Duration,
		}
	}
	return reels
}

// Spin resolves a rotation for the reel and applies it.
// Returns the applied delta in degrees.
func (r *Reel) Spin(rng Source) float64 {
	delta := ResolveSpin(*r, rng)
	r.CurrentAngle += delta
	return delta
}

// sign reports the reel's rotation direction as +1 or -1.
func (r Reel) sign() float64 {
	if r.Direction < 0 {
		return -1
	}
	return 1
}
