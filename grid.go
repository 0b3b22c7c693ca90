package bento

import "math/rand/v2"

// Grid owns the full edge set and cell list for one container size and
// configuration. A Grid is built once and never mutated incrementally:
// container resizes and structural parameter changes replace it wholesale.
type Grid struct {
	Width, Height float64

	// Edges holds every edge in creation order: the four boundary edges
	// first, then internal split edges, then any diagonal-overlap edges.
	Edges []*Edge

	// Cells holds every leaf cell in subdivision emit order.
	Cells []*Cell

	// Diagonals holds the diagonal boundaries created by assignment.
	Diagonals []*DiagonalEdge

	rng    *rand.Rand
	hitBuf []Vec2
}

// NewGrid builds a grid for the given configuration. rng drives split
// direction, split position, and diagonal placement; pass nil for a fresh
// nondeterministic layout (or a seeded source for reproducible ones). When
// cfg.Seed is nonzero and rng is nil, the seed is used instead.
//
// The configuration must already be validated; NewGrid does not check it.
func NewGrid(cfg Config, rng *rand.Rand) *Grid {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed<<32|seed>>32))
	}

	g := &Grid{
		Width:  cfg.Width,
		Height: cfg.Height,
		rng:    rng,
	}

	top := g.newBoundaryEdge(Horizontal, 0, -1)
	bottom := g.newBoundaryEdge(Horizontal, cfg.Height, +1)
	left := g.newBoundaryEdge(Vertical, 0, -1)
	right := g.newBoundaryEdge(Vertical, cfg.Width, +1)

	g.subdivide(cfg.Depth, cfg.MinCellSize, top, bottom, left, right)
	g.assignDiagonals(cfg)
	return g
}

func (g *Grid) newBoundaryEdge(o Orientation, pos, outward float64) *Edge {
	e := &Edge{
		ID:       len(g.Edges),
		Orient:   o,
		Boundary: true,
		Outward:  outward,
		Rest:     pos,
		Pos:      pos,
	}
	g.Edges = append(g.Edges, e)
	return e
}

func (g *Grid) newInternalEdge(o Orientation, pos float64) *Edge {
	e := &Edge{
		ID:     len(g.Edges),
		Orient: o,
		Rest:   pos,
		Pos:    pos,
	}
	g.Edges = append(g.Edges, e)
	return e
}

// subdivide recursively partitions the region bounded by the four edges.
// Recursion stops at depth zero or when the region is too small to split
// while keeping both halves above the minimum cell size.
func (g *Grid) subdivide(depth int, minSize float64, top, bottom, left, right *Edge) {
	w := right.Rest - left.Rest
	h := bottom.Rest - top.Rest

	if depth <= 0 || (w < 2*minSize && h < 2*minSize) {
		g.Cells = append(g.Cells, &Cell{
			ID:     len(g.Cells),
			Top:    top,
			Bottom: bottom,
			Left:   left,
			Right:  right,
		})
		return
	}

	// A region too narrow for a side-by-side split must stack, and vice
	// versa. Otherwise split randomly, biased 70/30 toward cutting the
	// longer dimension.
	var horizontal bool
	switch {
	case w < 1.5*minSize:
		horizontal = true
	case h < 1.5*minSize:
		horizontal = false
	default:
		p := 0.3
		if w/h < 1 {
			p = 0.7
		}
		horizontal = g.rng.Float64() < p
	}

	// Keep the split away from the region edges to avoid slivers.
	ratio := 0.3 + g.rng.Float64()*0.4

	if horizontal {
		e := g.newInternalEdge(Horizontal, top.Rest+h*ratio)
		e.link(top)
		e.link(bottom)
		g.subdivide(depth-1, minSize, top, e, left, right)
		g.subdivide(depth-1, minSize, e, bottom, left, right)
	} else {
		e := g.newInternalEdge(Vertical, left.Rest+w*ratio)
		e.link(left)
		e.link(right)
		g.subdivide(depth-1, minSize, top, bottom, left, e)
		g.subdivide(depth-1, minSize, top, bottom, e, right)
	}
}

// CellAt returns the cell whose rendered geometry contains (x, y), or nil.
// Plain rectangles use a bounding-box test; diagonally-clipped cells test
// the actual polygon.
func (g *Grid) CellAt(x, y, gap float64) *Cell {
	for _, c := range g.Cells {
		if len(c.Clips) == 0 {
			if c.Rect().Inset(gap).Contains(x, y) {
				return c
			}
			continue
		}
		g.hitBuf = c.Vertices(gap, g.hitBuf)
		if pointInConvexPolygon(g.hitBuf, x, y) {
			return c
		}
	}
	return nil
}
