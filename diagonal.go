package bento

import "math"

// Tolerance when matching the perpendicular extents of adjacent cells, and
// the eligibility limits that keep diagonals off slivers and extreme shapes.
const (
	spanTolerance   = 1.0
	maxDiagAspect   = 3.0
	overlapSafety   = 0.05
	maxOverlapShare = 0.3
)

// DiagonalEdge is a line-segment boundary shared by exactly two overlapping
// cells. Each owner keeps one half-plane side of the line. Endpoints carry
// rest and current positions; the current ones scale with the hovered owner
// and relax back to rest otherwise.
type DiagonalEdge struct {
	RestP1, RestP2 Vec2
	P1, P2         Vec2
}

// resetMotion restores both endpoints to their rest positions.
func (d *DiagonalEdge) resetMotion() {
	d.P1 = d.RestP1
	d.P2 = d.RestP2
}

// diagCandidate is an axis-aligned adjacent cell pair eligible for
// conversion into a diagonally-clipped pair.
type diagCandidate struct {
	a, b     *Cell // a is the left (vertical) or top (horizontal) cell
	vertical bool  // orientation of the shared edge
}

// assignDiagonals converts up to cfg.DiagonalCount adjacent cell pairs into
// diagonally-clipped pairs. Candidates are shuffled and assigned greedily;
// each cell participates in at most one diagonal.
func (g *Grid) assignDiagonals(cfg Config) {
	if cfg.DiagonalCount <= 0 {
		return
	}

	cands := g.diagonalCandidates(cfg)
	g.rng.Shuffle(len(cands), func(i, j int) {
		cands[i], cands[j] = cands[j], cands[i]
	})

	used := make(map[int]bool)
	remaining := cfg.DiagonalCount
	for _, cand := range cands {
		if remaining == 0 {
			break
		}
		if used[cand.a.ID] || used[cand.b.ID] {
			continue
		}
		if g.assignPair(cand, cfg) {
			used[cand.a.ID] = true
			used[cand.b.ID] = true
			remaining--
		}
	}
}

// diagonalCandidates enumerates adjacent cell pairs sharing a full edge of
// equal span, filtered by the size and aspect eligibility rules.
func (g *Grid) diagonalCandidates(cfg Config) []diagCandidate {
	var cands []diagCandidate
	for _, a := range g.Cells {
		for _, b := range g.Cells {
			if a == b {
				continue
			}
			if a.Right == b.Left &&
				math.Abs(a.Top.Rest-b.Top.Rest) <= spanTolerance &&
				math.Abs(a.Bottom.Rest-b.Bottom.Rest) <= spanTolerance {
				if diagEligible(a, cfg) && diagEligible(b, cfg) {
					cands = append(cands, diagCandidate{a: a, b: b, vertical: true})
				}
			}
			if a.Bottom == b.Top &&
				math.Abs(a.Left.Rest-b.Left.Rest) <= spanTolerance &&
				math.Abs(a.Right.Rest-b.Right.Rest) <= spanTolerance {
				if diagEligible(a, cfg) && diagEligible(b, cfg) {
					cands = append(cands, diagCandidate{a: a, b: b, vertical: false})
				}
			}
		}
	}
	return cands
}

// diagEligible rejects cells too small or too stretched to carry a diagonal
// without degenerating into slivers or absurd pentagons.
func diagEligible(c *Cell, cfg Config) bool {
	w := c.RestWidth()
	h := c.RestHeight()
	if w < cfg.MinCellSize || h < cfg.MinCellSize {
		return false
	}
	aspect := w / h
	if aspect < 1 {
		aspect = 1 / aspect
	}
	return aspect <= maxDiagAspect
}

// assignPair converts one adjacent pair into a diagonally-clipped pair. Each
// cell's shared edge is replaced by a new internal edge extended into the
// neighbor's rest territory, so that during maximum hover expansion the
// clipped polygon still covers the cell. The diagonal spans the overlap band
// corner to corner, oriented randomly. Returns false if the geometry would
// degenerate.
func (g *Grid) assignPair(cand diagCandidate, cfg Config) bool {
	a, b := cand.a, cand.b

	if cand.vertical {
		s := a.Right.Rest
		overlap := diagOverlap(cfg, math.Min(a.RestWidth(), b.RestWidth()))

		aRight := g.newInternalEdge(Vertical, s+overlap)
		bLeft := g.newInternalEdge(Vertical, s-overlap)
		aRight.link(a.Left)
		aRight.link(b.Right)
		aRight.link(bLeft)
		bLeft.link(a.Left)
		bLeft.link(b.Right)
		a.Right = aRight
		b.Left = bLeft

		y0 := math.Max(a.Top.Rest, b.Top.Rest)
		y1 := math.Min(a.Bottom.Rest, b.Bottom.Rest)
		p1 := Vec2{X: s - overlap, Y: y0}
		p2 := Vec2{X: s + overlap, Y: y1}
		if g.rng.Float64() < 0.5 {
			p1.X, p2.X = p2.X, p1.X
		}
		return g.attachDiagonal(a, b, p1, p2)
	}

	s := a.Bottom.Rest
	overlap := diagOverlap(cfg, math.Min(a.RestHeight(), b.RestHeight()))

	aBottom := g.newInternalEdge(Horizontal, s+overlap)
	bTop := g.newInternalEdge(Horizontal, s-overlap)
	aBottom.link(a.Top)
	aBottom.link(b.Bottom)
	aBottom.link(bTop)
	bTop.link(a.Top)
	bTop.link(b.Bottom)
	a.Bottom = aBottom
	b.Top = bTop

	x0 := math.Max(a.Left.Rest, b.Left.Rest)
	x1 := math.Min(a.Right.Rest, b.Right.Rest)
	p1 := Vec2{X: x0, Y: s - overlap}
	p2 := Vec2{X: x1, Y: s + overlap}
	if g.rng.Float64() < 0.5 {
		p1.Y, p2.Y = p2.Y, p1.Y
	}
	return g.attachDiagonal(a, b, p1, p2)
}

// diagOverlap computes the half-width of the overlap band from the maximum
// hover expansion expected, capped so each cell's rest center stays strictly
// on its own side of the band.
func diagOverlap(cfg Config, minDim float64) float64 {
	overlap := ((cfg.HoverScale-1)/2 + overlapSafety) * minDim
	return math.Min(overlap, maxOverlapShare*minDim)
}

// attachDiagonal creates the DiagonalEdge and the two opposing clip
// descriptors. Cells whose rest center falls exactly on the line would
// degenerate and are rejected.
func (g *Grid) attachDiagonal(a, b *Cell, p1, p2 Vec2) bool {
	d := &DiagonalEdge{RestP1: p1, RestP2: p2, P1: p1, P2: p2}

	keepA := sideSign(p1, p2, a.RestCenter())
	keepB := sideSign(p1, p2, b.RestCenter())
	if keepA == 0 || keepB == 0 || keepA == keepB {
		return false
	}

	a.Clips = append(a.Clips, DiagonalClip{Edge: d, Keep: keepA})
	b.Clips = append(b.Clips, DiagonalClip{Edge: d, Keep: keepB})
	g.Diagonals = append(g.Diagonals, d)
	return true
}

// sideSign returns the sign of the cross product placing p relative to the
// directed line p1->p2.
func sideSign(p1, p2, p Vec2) float64 {
	cross := (p2.X-p1.X)*(p.Y-p1.Y) - (p2.Y-p1.Y)*(p.X-p1.X)
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}
