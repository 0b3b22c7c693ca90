package bento

import (
	"math"
	"testing"
)

func rectCell(x0, y0, x1, y1 float64) *Cell {
	return &Cell{
		Left:   &Edge{Orient: Vertical, Rest: x0, Pos: x0},
		Right:  &Edge{Orient: Vertical, Rest: x1, Pos: x1},
		Top:    &Edge{Orient: Horizontal, Rest: y0, Pos: y0},
		Bottom: &Edge{Orient: Horizontal, Rest: y1, Pos: y1},
	}
}

// --- Derived geometry ---

func TestCellDerivedGeometry(t *testing.T) {
	c := rectCell(10, 20, 110, 70)
	assertNear(t, "X", c.X(), 10)
	assertNear(t, "Y", c.Y(), 20)
	assertNear(t, "Width", c.Width(), 100)
	assertNear(t, "Height", c.Height(), 50)
	assertNear(t, "center X", c.Center().X, 60)
	assertNear(t, "center Y", c.Center().Y, 45)
	assertNear(t, "rest center X", c.RestCenter().X, 60)

	// Geometry follows the edges' current positions, not rest.
	c.Right.Pos = 160
	assertNear(t, "moved width", c.Width(), 150)
	assertNear(t, "rest width unchanged", c.RestWidth(), 100)
}

func TestCellVerticesPlainRect(t *testing.T) {
	c := rectCell(0, 0, 100, 60)
	pts := c.Vertices(5, nil)
	if len(pts) != 4 {
		t.Fatalf("got %d vertices, want 4", len(pts))
	}
	assertNear(t, "first X", pts[0].X, 5)
	assertNear(t, "first Y", pts[0].Y, 5)
	assertNear(t, "third X", pts[2].X, 95)
	assertNear(t, "third Y", pts[2].Y, 55)
}

func TestCellVerticesDegenerate(t *testing.T) {
	c := rectCell(0, 0, 10, 10)
	if pts := c.Vertices(6, nil); len(pts) != 0 {
		t.Errorf("over-inset cell should have no vertices, got %d", len(pts))
	}
}

// --- Diagonal clipping ---

func TestClipHalfPlaneCornerToCorner(t *testing.T) {
	d := &DiagonalEdge{
		RestP1: Vec2{X: 0, Y: 0}, RestP2: Vec2{X: 100, Y: 100},
		P1: Vec2{X: 0, Y: 0}, P2: Vec2{X: 100, Y: 100},
	}
	square := []Vec2{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	// keep=+1 holds the lower-left triangle.
	got := clipHalfPlane(append([]Vec2(nil), square...), d, 1, 0)
	want := []Vec2{{0, 0}, {100, 100}, {0, 100}}
	if len(got) != len(want) {
		t.Fatalf("keep=+1: got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		assertNear(t, "keep=+1 X", got[i].X, want[i].X)
		assertNear(t, "keep=+1 Y", got[i].Y, want[i].Y)
	}

	// keep=-1 holds the upper-right triangle.
	got = clipHalfPlane(append([]Vec2(nil), square...), d, -1, 0)
	want = []Vec2{{0, 0}, {100, 0}, {100, 100}}
	if len(got) != len(want) {
		t.Fatalf("keep=-1: got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		assertNear(t, "keep=-1 X", got[i].X, want[i].X)
		assertNear(t, "keep=-1 Y", got[i].Y, want[i].Y)
	}
}

func TestClipHalfPlaneGapOffset(t *testing.T) {
	d := &DiagonalEdge{P1: Vec2{X: 0, Y: 0}, P2: Vec2{X: 100, Y: 100}}
	square := []Vec2{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	const gap = 6.0

	got := clipHalfPlane(append([]Vec2(nil), square...), d, 1, gap)
	if len(got) < 3 {
		t.Fatalf("gap clip degenerated to %d vertices", len(got))
	}
	// Every surviving vertex keeps at least the gap's perpendicular distance
	// from the unshifted diagonal line.
	norm := math.Sqrt(2) * 100
	for _, p := range got {
		cross := (100-0)*(p.Y-0) - (100-0)*(p.X-0)
		if dist := cross / norm; dist < gap-1e-6 {
			t.Errorf("vertex %+v only %g from the diagonal, want >= %g", p, dist, gap)
		}
	}
}

func TestClipHalfPlaneZeroLength(t *testing.T) {
	d := &DiagonalEdge{P1: Vec2{X: 50, Y: 50}, P2: Vec2{X: 50, Y: 50}}
	square := []Vec2{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	if got := clipHalfPlane(square, d, 1, 0); len(got) != 0 {
		t.Errorf("zero-length diagonal should clip to nothing, got %d vertices", len(got))
	}
}

func TestCellContainsClipped(t *testing.T) {
	c := rectCell(0, 0, 100, 100)
	d := &DiagonalEdge{
		RestP1: Vec2{X: 0, Y: 0}, RestP2: Vec2{X: 100, Y: 100},
		P1: Vec2{X: 0, Y: 0}, P2: Vec2{X: 100, Y: 100},
	}
	c.Clips = append(c.Clips, DiagonalClip{Edge: d, Keep: 1})

	if !c.Contains(20, 80, 0) {
		t.Error("point inside the kept triangle should hit")
	}
	if c.Contains(80, 20, 0) {
		t.Error("point in the discarded half should miss")
	}
	if c.Contains(120, 50, 0) {
		t.Error("point outside the rectangle should miss")
	}
}

func TestCellContainsPlain(t *testing.T) {
	c := rectCell(0, 0, 100, 100)
	if !c.Contains(50, 50, 4) {
		t.Error("center should hit")
	}
	if c.Contains(2, 50, 4) {
		t.Error("point inside the gap inset should miss")
	}
}
