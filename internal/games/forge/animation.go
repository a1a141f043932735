package forge

import (
	"math"

	"github.com/vovakirdan/runeforge/internal/rings"
)

// reelAnim tracks one reel's rotation from its resting angle to the
// resolved target.
type reelAnim struct {
	start   float64
	delta   float64
	elapsed int
	total   int
	settled bool
}

// progress returns the eased completion in [0, 1].
func (a reelAnim) progress() float64 {
	if a.total <= 0 || a.elapsed >= a.total {
		return 1
	}
	return easeOut(float64(a.elapsed) / float64(a.total))
}

// easeOut is a cubic ease-out curve.
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// startSpin resolves every reel's rotation up front and starts the
// animations. Reel angles stay untouched until each one settles.
func (g *Game) startSpin() {
	for i := range g.reels {
		r := g.reels[i]
		g.anims[i] = reelAnim{
			start: r.CurrentAngle,
			delta: rings.ResolveSpin(r, g.rng),
			total: g.durationTicks(r),
		}
	}
	g.phase = phaseSpinning
	g.notices = nil
	logger.Debug("spin started", "tick", g.tick)
}

func (g *Game) durationTicks(r rings.Reel) int {
	ticks := int(math.Round(r.AnimationDuration.Seconds() * float64(g.tickRate)))
	return max(1, ticks)
}

// advance moves every animation one tick and snaps reels that finish.
// Returns true once all reels have settled.
func (g *Game) advance() bool {
	done := true
	for i := range g.anims {
		a := &g.anims[i]
		if a.settled {
			continue
		}
		a.elapsed++
		if a.elapsed >= a.total {
			a.settled = true
			g.reels[i].CurrentAngle = rings.SnapToNearestSegment(a.start + a.delta)
			continue
		}
		done = false
	}
	return done
}

// displayAngle is the angle to draw reel i at this tick.
func (g *Game) displayAngle(i int) float64 {
	if g.phase != phaseSpinning || g.anims[i].settled {
		return g.reels[i].CurrentAngle
	}
	a := g.anims[i]
	return a.start + a.delta*a.progress()
}
