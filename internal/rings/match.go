package rings

// MinGroupSize is the shortest run of equal runes that scores.
const MinGroupSize = 2

// MatchOutcome is the result of reading every reel after a spin.
type MatchOutcome struct {
	Runes       []int // Top rune per reel, in reel order
	Groups      []int // Qualifying run lengths, in scan order
	Multiplier  int
	TotalEnergy int

	// Unscored lists group sizes the reward table has no entry for.
	// They contributed nothing to TotalEnergy.
	Unscored []int
}

// IsMiss reports whether the spin earned nothing.
func (o MatchOutcome) IsMiss() bool {
	return o.TotalEnergy == 0
}

// RuneAtTop returns the rune under the read position of a reel.
func RuneAtTop(r Reel) int {
	if len(r.Runes) == 0 {
		return NoRune
	}
	return r.Runes[segmentIndex(r.CurrentAngle)%len(r.Runes)]
}

// TopRunes reads the top rune of every reel in order.
func TopRunes(reels []Reel) []int {
	runes := make([]int, len(reels))
	for i, r := range reels {
		runes[i] = RuneAtTop(r)
	}
	return runes
}

// DetectMatches reads every reel in configured order and scores the
// maximal runs of equal top runes. Only adjacent reels form a run, so
// reels 0 and 2 showing the same rune do not match across reel 1.
// Callers must only pass reels whose spins have fully settled.
func DetectMatches(reels []Reel, table RewardTable) MatchOutcome {
	runes := TopRunes(reels)
	groups := FindGroups(runes)
	total, mult, unscored := CalculateEnergy(groups, table)

	return MatchOutcome{
		Runes:       runes,
		Groups:      groups,
		Multiplier:  mult,
		TotalEnergy: total,
		Unscored:    unscored,
	}
}

// FindGroups scans left to right and returns the lengths of every run
// of equal values at least MinGroupSize long.
func FindGroups(runes []int) []int {
	groups := []int{}
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= MinGroupSize {
			groups = append(groups, j-i)
		}
		i = j
	}
	return groups
}

// GroupMask marks the positions that belong to a qualifying run.
// It uses the same scan as FindGroups.
func GroupMask(runes []int) []bool {
	mask := make([]bool, len(runes))
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= MinGroupSize {
			for k := i; k < j; k++ {
				mask[k] = true
			}
		}
		i = j
	}
	return mask
}

// CountLeadingMatches counts reels sharing reel 0's top rune, stopping
// at the first mismatch. Returns 0 when fewer than two reels match.
//
// Deprecated: single-run scoring misses later groups. Use DetectMatches.
func CountLeadingMatches(reels []Reel) int {
	if len(reels) == 0 {
		return 0
	}

	first := RuneAtTop(reels[0])
	count := 1
	for _, r := range reels[1:] {
		if RuneAtTop(r) != first {
			break
		}
		count++
	}

	if count < MinGroupSize {
		return 0
	}
	return count
}
