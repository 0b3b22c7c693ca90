package bento

import (
	"math"
	"math/rand/v2"
	"testing"
)

func seededRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func gridConfig(w, h float64, depth int, minSize float64) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Depth = depth
	cfg.MinCellSize = minSize
	cfg.DiagonalCount = 0
	return cfg
}

// --- Subdivision ---

func TestSubdivisionTilesContainer(t *testing.T) {
	cfg := gridConfig(1000, 800, 5, 80)
	g := NewGrid(cfg, seededRNG(7))

	var area float64
	for _, c := range g.Cells {
		r := c.RestRect()
		if r.Width <= 0 || r.Height <= 0 {
			t.Fatalf("cell %d has degenerate rest rect %+v", c.ID, r)
		}
		if r.X < -epsilon || r.Y < -epsilon ||
			r.X+r.Width > cfg.Width+epsilon || r.Y+r.Height > cfg.Height+epsilon {
			t.Fatalf("cell %d rest rect %+v escapes the container", c.ID, r)
		}
		area += r.Width * r.Height
	}
	assertWithin(t, "total rest area", area, cfg.Width*cfg.Height, 1e-6)
}

func TestSubdivisionDeterministicWithSeed(t *testing.T) {
	cfg := gridConfig(1280, 720, 6, 90)
	g1 := NewGrid(cfg, seededRNG(42))
	g2 := NewGrid(cfg, seededRNG(42))

	if len(g1.Cells) != len(g2.Cells) {
		t.Fatalf("cell counts differ: %d vs %d", len(g1.Cells), len(g2.Cells))
	}
	if len(g1.Edges) != len(g2.Edges) {
		t.Fatalf("edge counts differ: %d vs %d", len(g1.Edges), len(g2.Edges))
	}
	for i := range g1.Edges {
		a, b := g1.Edges[i], g2.Edges[i]
		if a.Orient != b.Orient || a.Boundary != b.Boundary {
			t.Fatalf("edge %d metadata differs", i)
		}
		assertNear(t, "edge rest", a.Rest, b.Rest)
	}
	for i := range g1.Cells {
		if g1.Cells[i].Left.ID != g2.Cells[i].Left.ID ||
			g1.Cells[i].Right.ID != g2.Cells[i].Right.ID ||
			g1.Cells[i].Top.ID != g2.Cells[i].Top.ID ||
			g1.Cells[i].Bottom.ID != g2.Cells[i].Bottom.ID {
			t.Fatalf("cell %d references different edges", i)
		}
	}
}

func TestSubdivisionDepthOneSplitsOnce(t *testing.T) {
	// 800x600 at depth 1 must produce exactly two cells partitioning the
	// container along a single axis.
	for seed := uint64(1); seed <= 10; seed++ {
		cfg := gridConfig(800, 600, 1, 60)
		g := NewGrid(cfg, seededRNG(seed))

		if len(g.Cells) != 2 {
			t.Fatalf("seed %d: got %d cells, want 2", seed, len(g.Cells))
		}
		a, b := g.Cells[0], g.Cells[1]
		sideBySide := a.Right == b.Left &&
			math.Abs(a.RestWidth()+b.RestWidth()-800) < epsilon && a.RestHeight() == 600
		stacked := a.Bottom == b.Top &&
			math.Abs(a.RestHeight()+b.RestHeight()-600) < epsilon && a.RestWidth() == 800
		if !sideBySide && !stacked {
			t.Fatalf("seed %d: cells do not partition the container along one axis", seed)
		}
	}
}

func TestSubdivisionRespectsMinimumSize(t *testing.T) {
	cfg := gridConfig(1000, 1000, 7, 80)
	g := NewGrid(cfg, seededRNG(3))

	// Any split keeps both halves at >= 0.3 of a dimension that was itself
	// >= 1.5*minSize, so no leaf dimension can drop below 0.45*minSize.
	floor := 0.45 * cfg.MinCellSize
	for _, c := range g.Cells {
		if c.RestWidth() < floor-epsilon || c.RestHeight() < floor-epsilon {
			t.Errorf("cell %d rest size %gx%g below floor %g",
				c.ID, c.RestWidth(), c.RestHeight(), floor)
		}
	}
}

func TestSubdivisionLeafCountMatchesTree(t *testing.T) {
	// With no diagonals, every non-boundary edge is one binary split, and a
	// binary tree has one more leaf than internal splits.
	cfg := gridConfig(1000, 1000, 5, 80)
	g := NewGrid(cfg, seededRNG(11))

	for _, c := range g.Cells {
		if len(c.Clips) != 0 {
			t.Fatalf("cell %d has %d clips, want 0", c.ID, len(c.Clips))
		}
	}
	splits := len(g.Edges) - 4
	if len(g.Cells) != splits+1 {
		t.Errorf("got %d cells for %d splits, want %d", len(g.Cells), splits, splits+1)
	}
}

func TestBoundaryEdges(t *testing.T) {
	cfg := gridConfig(640, 480, 3, 60)
	g := NewGrid(cfg, seededRNG(5))

	var boundaries int
	for _, e := range g.Edges {
		if !e.Boundary {
			if e.Outward != 0 {
				t.Errorf("internal edge %d has outward sign %g", e.ID, e.Outward)
			}
			continue
		}
		boundaries++
		if e.Outward != -1 && e.Outward != 1 {
			t.Errorf("boundary edge %d has outward sign %g", e.ID, e.Outward)
		}
	}
	if boundaries != 4 {
		t.Errorf("got %d boundary edges, want 4", boundaries)
	}
}

func TestEdgeAdjacencySymmetric(t *testing.T) {
	cfg := gridConfig(1000, 800, 5, 80)
	g := NewGrid(cfg, seededRNG(9))

	for _, e := range g.Edges {
		for _, adj := range e.adjacent {
			if adj.Orient != e.Orient {
				t.Errorf("edge %d linked to edge %d with different orientation", e.ID, adj.ID)
			}
			var back bool
			for _, rev := range adj.adjacent {
				if rev == e {
					back = true
					break
				}
			}
			if !back {
				t.Errorf("adjacency %d->%d is not bidirectional", e.ID, adj.ID)
			}
		}
	}
}

// --- Hit testing ---

func TestCellAtFindsEveryCell(t *testing.T) {
	cfg := gridConfig(1000, 800, 4, 100)
	g := NewGrid(cfg, seededRNG(13))

	for _, c := range g.Cells {
		ctr := c.RestCenter()
		got := g.CellAt(ctr.X, ctr.Y, cfg.Gap)
		if got != c {
			t.Errorf("CellAt(center of cell %d) returned %v", c.ID, got)
		}
	}
}

func TestCellAtMisses(t *testing.T) {
	cfg := gridConfig(500, 500, 2, 100)
	g := NewGrid(cfg, seededRNG(2))

	if got := g.CellAt(-10, 250, cfg.Gap); got != nil {
		t.Errorf("point left of the container hit cell %d", got.ID)
	}
	if got := g.CellAt(250, 600, cfg.Gap); got != nil {
		t.Errorf("point below the container hit cell %d", got.ID)
	}
	// A point inside a cell's rectangle but within the gap inset belongs to
	// no cell.
	c := g.Cells[0]
	x := c.Left.Pos + cfg.Gap/2
	y := c.Center().Y
	if got := g.CellAt(x, y, cfg.Gap); got != nil {
		t.Errorf("point in the gap strip hit cell %d", got.ID)
	}
}

func TestNewGridNilRNG(t *testing.T) {
	cfg := gridConfig(800, 600, 3, 80)
	g := NewGrid(cfg, nil)
	if len(g.Cells) == 0 {
		t.Fatal("grid with nil rng produced no cells")
	}
}

func TestNewGridSeedFromConfig(t *testing.T) {
	cfg := gridConfig(800, 600, 4, 80)
	cfg.Seed = 77
	g1 := NewGrid(cfg, nil)
	g2 := NewGrid(cfg, nil)
	if len(g1.Cells) != len(g2.Cells) {
		t.Fatalf("seeded grids differ: %d vs %d cells", len(g1.Cells), len(g2.Cells))
	}
	for i := range g1.Edges {
		assertNear(t, "edge rest", g1.Edges[i].Rest, g2.Edges[i].Rest)
	}
}
