package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'ᚠ', ColorOrange)
	if got := s.GetCell(5, 5); got.Rune != 'ᚠ' || got.Color != ColorOrange {
		t.Errorf("GetCell(5, 5) = %+v, expected orange ᚠ", got)
	}

	s.Set(5, 5, 'X')
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorDefault {
		t.Errorf("Set should reset colour, got %+v", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.Fill('#')
	s.SetColored(1, 1, '*', ColorRed)
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Clear left content behind: %q", s.String())
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should drop colours")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"ascii", 0, "Hello", "Hello     "},
		{"offset", 3, "abc", "   abc    "},
		{"clipped right", 8, "xyz", "        xy"},
		{"clipped left", -2, "abcd", "cd        "},
		{"runes count as one cell", 0, "ᚠᚢᚦ", "ᚠᚢᚦ       "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCenteredColored(0, "ᚠᚢᚦ", ColorYellow)

	if got := s.Row(0); got != "    ᚠᚢᚦ    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorYellow {
		t.Error("centered text lost its colour")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(s.Bounds(), ColorGray)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corner should carry the colour")
	}

	tiny := NewScreen(3, 3)
	tiny.DrawBox(NewRect(0, 0, 1, 1), ColorGray)
	if strings.TrimSpace(tiny.String()) != "" {
		t.Error("degenerate box should draw nothing")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.SetColored(1, 1, 'z', ColorBlue)

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("Resize dims = %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "ab" {
		t.Errorf("Row(0) after shrink = %q", s.Row(0))
	}
	if c := s.GetCell(1, 1); c.Rune != 'z' || c.Color != ColorBlue {
		t.Errorf("Resize lost cell: %+v", c)
	}
	if s.Row(2) != "  " {
		t.Errorf("new row should be blank, got %q", s.Row(2))
	}

	s.Resize(-5, -5)
	if s.Width() != 0 || s.Height() != 0 {
		t.Error("negative sizes should clamp to zero")
	}
}

func TestNewScreenClampsSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"positive", 5, 3, 5, 3},
		{"negative width", -2, 3, 0, 3},
		{"negative height", 4, -1, 4, 0},
		{"both negative", -7, -7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.width, tt.height)
			if s.Width() != tt.wantW || s.Height() != tt.wantH {
				t.Errorf("NewScreen(%d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, s.Width(), s.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionJump, ActionPause)

	if !f.Has(ActionJump) || !f.Has(ActionPause) {
		t.Error("FrameOf should set the given actions")
	}
	if f.Has(ActionConfirm) {
		t.Error("unset action reported as set")
	}
	if !f.Any(ActionConfirm, ActionJump) {
		t.Error("Any should match one of the actions")
	}

	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should reset actions")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionBack)
	if !zero.Has(ActionBack) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
