//go:build debug

package rings

// strictRewards makes CalculateEnergy panic on group sizes missing from
// the reward table.
const strictRewards = true
