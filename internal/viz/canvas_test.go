package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("unexpected pixel size %dx%d", c.PixelWidth(), c.PixelHeight())
	}

	c.Set(0, 0, InkOrbiter)
	c.Set(1, 3, InkOrbiter)
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if !c.Lit(0, 0) || !c.Lit(1, 3) || c.Lit(1, 0) {
		t.Error("lit pixels do not match")
	}

	// out of range is ignored
	c.Set(-1, 0, InkOrbiter)
	c.Set(8, 0, InkOrbiter)
	c.Set(0, 8, InkOrbiter)
	if c.Lit(-1, 0) || c.Lit(8, 0) {
		t.Error("out of range pixel reported lit")
	}

	c.Clear()
	if c.Lit(0, 0) || c.Grid[0][0] != brailleBlank {
		t.Error("clear did not reset the canvas")
	}
}

func TestCanvasInkPriority(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, InkAnchor)
	c.Set(1, 1, InkTrail)
	if c.inks[0][0] != InkAnchor {
		t.Errorf("lower ink replaced higher ink: %d", c.inks[0][0])
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 11, InkTrail)
	if !c.Lit(0, 0) || !c.Lit(19, 11) {
		t.Error("line endpoints not drawn")
	}

	c.Clear()
	c.DrawLine(5, 2, 5, 2, InkTrail)
	if !c.Lit(5, 2) {
		t.Error("single-point line not drawn")
	}
}

func TestDrawDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawDisc(10, 10, 3, InkAnchor)
	for _, p := range [][2]int{{10, 10}, {13, 10}, {10, 7}, {8, 12}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("pixel %v should be inside the disc", p)
		}
	}
	if c.Lit(13, 13) {
		t.Error("corner pixel should be outside the disc")
	}

	c.Clear()
	c.DrawDisc(4, 4, 0, InkAnchor)
	if !c.Lit(4, 4) {
		t.Error("zero radius disc should set its centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("expected 3 cells, got %q", l)
		}
	}

	c.Set(0, 0, InkOrbiter)
	rendered := c.Render(ThemeIce.inkStyles())
	if !strings.Contains(rendered, string(rune(0x2801))) {
		t.Error("render lost the lit cell")
	}
	if strings.Count(rendered, "\n") != 2 {
		t.Error("render changed the line count")
	}
}
