package tui

import (
	"strings"
	"testing"
)

func TestCanvasSetPixel(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] != rune(brailleBase|0x1) {
		t.Errorf("grid[0][0] = %#x, want %#x", c.Grid[0][0], brailleBase|0x1)
	}

	// Pixel (3, 7) lands in cell (1, 1), sub-position (1, 3) = dot 8.
	c.Set(3, 7)
	if c.Grid[1][1] != rune(brailleBase|0x80) {
		t.Errorf("grid[1][1] = %#x, want %#x", c.Grid[1][1], brailleBase|0x80)
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 4)
	pw, ph := c.PixelSize()

	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(pw, 0)
	c.Set(0, ph)

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != brailleBase {
				t.Fatalf("cell (%d,%d) lit by out-of-range set", row, col)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(8, 4)
	c.FillCircle(8, 8, 3)
	c.Clear()

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != brailleBase {
				t.Fatalf("cell (%d,%d) not cleared", row, col)
			}
		}
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)

	// Center pixel (10, 10): cell (5, 2), sub (0, 2) = dot 3.
	if c.Grid[2][5]&0x4 == 0 {
		t.Error("circle center not lit")
	}

	lit := 0
	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != brailleBase {
				lit++
			}
		}
	}
	if lit < 4 {
		t.Errorf("circle lit only %d cells, expected a filled disc", lit)
	}
}

func TestFillCircleTiny(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(4, 4, 0)

	// Radius zero still marks the center: cell (2, 1), sub (0, 0) = dot 1.
	if c.Grid[1][2]&0x1 == 0 {
		t.Error("zero-radius circle should light its center pixel")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 12, 0)

	if c.Grid[0][0]&0x1 == 0 {
		t.Error("line start not lit")
	}
	// Pixel (12, 0): cell (6, 0), sub (0, 0) = dot 1.
	if c.Grid[0][6]&0x1 == 0 {
		t.Error("line end not lit")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(6, 3)
	out := c.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 6 {
			t.Errorf("line %d has %d runes, want 6", i, n)
		}
	}
}
