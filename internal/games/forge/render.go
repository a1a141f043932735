package forge

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/rings"
)

const (
	minScreenW = 40
	minScreenH = 16
)

// futhark holds one glyph per rune id.
var futhark = []rune{'ᚠ', 'ᚢ', 'ᚦ', 'ᚨ', 'ᚱ', 'ᚲ', 'ᚷ', 'ᚹ', 'ᚺ', 'ᚾ', 'ᛁ', 'ᛃ'}

// Glyph returns the display glyph for a rune id.
func Glyph(id int) rune {
	if id < 0 || id >= len(futhark) {
		return '?'
	}
	return futhark[id]
}

// ringColors cycle outermost to innermost.
var ringColors = []core.Color{core.ColorOrange, core.ColorEmber, core.ColorRed, core.ColorMagenta, core.ColorGray}

// Render draws the rings, read marker, HUD and latest notices.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.tooSmall {
		dst.DrawTextCentered(h/2, "Terminal too small")
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH))
		return
	}

	title := "RUNE FORGE"
	if g.mode == ModePractice {
		title += " - PRACTICE"
	}
	dst.DrawTextCenteredColored(0, title, core.ColorOrange)
	dst.DrawTextCenteredColored(1, g.hudLine(), core.ColorBrightWhite)
	g.drawEnergyBar(dst, 2)

	// Ring area sits between the HUD and the three footer rows.
	area := core.NewRect(0, 3, w, h-7)
	dst.DrawBox(area, core.ColorAsh)

	inner := area.Inset(1)
	cx, cy := inner.Center()
	ry := float64(inner.H-1) / 2
	rx := min(ry*2, float64(inner.W/2-1))

	for i := range g.reels {
		g.drawReel(dst, i, cx, cy, rx, ry)
	}
	if mx, my := cx, cy-int(ry)-1; area.Contains(mx, my) {
		dst.SetColored(mx, my, '▼', core.ColorBrightYellow)
	}

	g.drawTopRow(dst, h-4)

	if len(g.notices) > 0 {
		dst.DrawTextCenteredColored(h-3, g.notices[0], core.ColorBrightYellow)
		if len(g.notices) > 1 {
			dst.DrawTextCenteredColored(h-2, strings.Join(g.notices[1:], "  "), core.ColorBrightCyan)
		}
	}

	dst.DrawTextColored(1, h-1, "SPACE spin  P pause  B back  Q quit", core.ColorGray)

	if g.paused {
		dst.DrawTextCenteredColored(cy, " PAUSED ", core.ColorBrightWhite)
	}
}

// hudLine summarizes energy. Campaign games show saved progress.
func (g *Game) hudLine() string {
	if g.mode == ModeCampaign && g.progress != nil {
		s := g.progress.Snapshot()
		line := fmt.Sprintf("Energy %d  Level %d", s.TotalEnergy, s.CurrentLevel)
		if next, ok := s.NextLevel(); ok {
			line += fmt.Sprintf("  Next at %d", next.EnergyRequired)
		}
		return line
	}
	return fmt.Sprintf("Run energy %d  Spins %d", g.score, g.spins)
}

// drawEnergyBar shows campaign progress toward the next level, hotter
// as it fills. Practice games have no bar.
func (g *Game) drawEnergyBar(dst *core.Screen, y int) {
	if g.mode != ModeCampaign || g.progress == nil {
		return
	}
	s := g.progress.Snapshot()
	next, ok := s.NextLevel()
	if !ok {
		return
	}

	from := 0
	if cur, ok := s.Level(next.ID - 1); ok {
		from = cur.EnergyRequired
	}
	frac := float64(s.TotalEnergy-from) / float64(max(1, next.EnergyRequired-from))

	width := min(40, dst.Width()-4)
	filled := core.Clamp(int(frac*float64(width)), 0, width)
	x := (dst.Width() - width) / 2
	dst.DrawHLine(x, y, width, '░', core.ColorAsh)
	dst.DrawHLine(x, y, filled, '█', core.Heat(frac))
}

// drawReel places the reel's runes on its ellipse. The rune under the
// read marker is the one RuneAtTop reports for the drawn angle.
func (g *Game) drawReel(dst *core.Screen, i, cx, cy int, rx, ry float64) {
	r := g.reels[i]
	angle := g.displayAngle(i)
	color := ringColors[i%len(ringColors)]

	top := -1
	if len(r.Runes) > 0 {
		top = int(rings.SnapToNearestSegment(angle)/rings.SegmentDegrees) % len(r.Runes)
	}

	for k, id := range r.Runes {
		x, y := core.OnRing(cx, cy, rx*r.Scale, ry*r.Scale, float64(k)*rings.SegmentDegrees-angle)
		c := color
		if k == top && g.phase == phaseIdle {
			c = core.ColorBrightWhite
		}
		dst.SetColored(x, y, Glyph(id), c)
	}
}

// drawTopRow prints the top rune of each reel, lighting up matched runs.
func (g *Game) drawTopRow(dst *core.Screen, y int) {
	runes := make([]int, len(g.reels))
	for i, r := range g.reels {
		probe := r
		probe.CurrentAngle = g.displayAngle(i)
		runes[i] = rings.RuneAtTop(probe)
	}

	var mask []bool
	if g.phase == phaseIdle && g.hasLast {
		mask = rings.GroupMask(runes)
	}

	width := len(runes)*3 - 2
	x := (dst.Width() - width) / 2
	for i, id := range runes {
		c := core.ColorWhite
		if mask != nil && mask[i] {
			c = core.ColorBrightYellow
		}
		dst.SetColored(x+i*3, y, Glyph(id), c)
	}
}
