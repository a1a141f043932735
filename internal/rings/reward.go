package rings

import "fmt"

// RewardTable maps a qualifying group size to its base energy.
type RewardTable struct {
	Base map[int]int

	// Multiplier applies once two or more groups qualify.
	Multiplier int
}

// DefaultRewardTable returns the reference five-reel payouts.
func DefaultRewardTable() RewardTable {
	return RewardTable{
		Base: map[int]int{
			2: 10,
			3: 30,
			4: 40,
			5: 100,
		},
		Multiplier: 2,
	}
}

// Lookup returns the base energy for a group size.
// ok is false when the table has no entry for size.
func (t RewardTable) Lookup(size int) (energy int, ok bool) {
	energy, ok = t.Base[size]
	return energy, ok
}

// multiplierFor returns the multiplier for a spin with n groups.
func (t RewardTable) multiplierFor(n int) int {
	if n >= 2 && t.Multiplier > 1 {
		return t.Multiplier
	}
	return 1
}

// CalculateEnergy sums the base reward of each group and applies the
// multi-group multiplier. Sizes missing from the table score 0 and are
// returned in unscored; debug builds panic instead.
func CalculateEnergy(groups []int, table RewardTable) (total, multiplier int, unscored []int) {
	sum := 0
	for _, size := range groups {
		energy, ok := table.Lookup(size)
		if !ok {
			if strictRewards {
				panic(fmt.Sprintf("rings: no reward for group of %d", size))
			}
			unscored = append(unscored, size)
			continue
		}
		sum += energy
	}

	multiplier = table.multiplierFor(len(groups))
	return sum * multiplier, multiplier, unscored
}
