package bento

import "math"

// DiagonalClip attaches a diagonal boundary to a cell. The cell keeps the
// half-plane on one side of the diagonal line and discards the other.
type DiagonalClip struct {
	Edge *DiagonalEdge

	// Keep is the sign (+1 or -1) of the cross product identifying the
	// half-plane this cell keeps. The paired cell holds the opposite sign.
	Keep float64
}

// Cell is a rectangular (optionally diagonally-clipped) region bounded by
// exactly four edges. All geometry is derived on demand from the edges'
// current positions; a cell stores none of its own.
type Cell struct {
	// ID is the subdivision emit order, also used for deterministic color
	// assignment.
	ID int

	Top, Bottom, Left, Right *Edge

	// Clips holds this cell's diagonal boundaries. At most one per cell is
	// assigned at generation time, but rendering handles any number.
	Clips []DiagonalClip
}

// X returns the current left coordinate.
func (c *Cell) X() float64 { return c.Left.Pos }

// Y returns the current top coordinate.
func (c *Cell) Y() float64 { return c.Top.Pos }

// Width returns the current width.
func (c *Cell) Width() float64 { return c.Right.Pos - c.Left.Pos }

// Height returns the current height.
func (c *Cell) Height() float64 { return c.Bottom.Pos - c.Top.Pos }

// RestWidth returns the width of the unperturbed layout.
func (c *Cell) RestWidth() float64 { return c.Right.Rest - c.Left.Rest }

// RestHeight returns the height of the unperturbed layout.
func (c *Cell) RestHeight() float64 { return c.Bottom.Rest - c.Top.Rest }

// Rect returns the current bounding rectangle.
func (c *Cell) Rect() Rect {
	return Rect{X: c.Left.Pos, Y: c.Top.Pos, Width: c.Width(), Height: c.Height()}
}

// RestRect returns the rest bounding rectangle.
func (c *Cell) RestRect() Rect {
	return Rect{X: c.Left.Rest, Y: c.Top.Rest, Width: c.RestWidth(), Height: c.RestHeight()}
}

// Center returns the current center point.
func (c *Cell) Center() Vec2 {
	return Vec2{X: (c.Left.Pos + c.Right.Pos) / 2, Y: (c.Top.Pos + c.Bottom.Pos) / 2}
}

// RestCenter returns the rest center point.
func (c *Cell) RestCenter() Vec2 {
	return Vec2{X: (c.Left.Rest + c.Right.Rest) / 2, Y: (c.Top.Rest + c.Bottom.Rest) / 2}
}

// hasDiagonal reports whether the given diagonal edge belongs to this cell.
func (c *Cell) hasDiagonal(d *DiagonalEdge) bool {
	for i := range c.Clips {
		if c.Clips[i].Edge == d {
			return true
		}
	}
	return false
}

// Vertices returns the cell's rendered polygon: the current rectangle inset
// by gap on all sides, clipped against each attached diagonal. The result is
// a convex polygon with 3-5 vertices, or an empty slice when the cell is
// degenerate this frame (callers must skip it). buf is reused when large
// enough.
func (c *Cell) Vertices(gap float64, buf []Vec2) []Vec2 {
	r := c.Rect().Inset(gap)
	if r.Width <= 0 || r.Height <= 0 {
		return buf[:0]
	}

	pts := append(buf[:0],
		Vec2{X: r.X, Y: r.Y},
		Vec2{X: r.X + r.Width, Y: r.Y},
		Vec2{X: r.X + r.Width, Y: r.Y + r.Height},
		Vec2{X: r.X, Y: r.Y + r.Height},
	)

	for i := range c.Clips {
		pts = clipHalfPlane(pts, c.Clips[i].Edge, c.Clips[i].Keep, gap)
		if len(pts) < 3 {
			return pts[:0]
		}
	}
	return pts
}

// Contains reports whether the point (x, y) lies inside the cell's rendered
// geometry. Plain rectangles use a bounding-box test; clipped cells test
// against the actual polygon.
func (c *Cell) Contains(x, y, gap float64) bool {
	if len(c.Clips) == 0 {
		return c.Rect().Inset(gap).Contains(x, y)
	}
	return pointInConvexPolygon(c.Vertices(gap, nil), x, y)
}

// clipHalfPlane clips a convex polygon against one side of a diagonal edge
// (Sutherland-Hodgman with a single clip line). The line is offset by gap
// toward the kept side so diagonal seams carry the same visual gap as
// axis-aligned ones. The clip is performed in place when capacity allows.
func clipHalfPlane(pts []Vec2, d *DiagonalEdge, keep, gap float64) []Vec2 {
	p1, p2 := d.P1, d.P2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := dx*dx + dy*dy
	if length == 0 {
		return pts[:0]
	}

	// Shift the clip line along its normal toward the kept half-plane.
	if gap != 0 {
		inv := gap * keep / math.Sqrt(length)
		nx := -dy * inv
		ny := dx * inv
		p1.X += nx
		p1.Y += ny
		p2.X += nx
		p2.Y += ny
	}

	side := func(p Vec2) float64 {
		return ((p2.X-p1.X)*(p.Y-p1.Y) - (p2.Y-p1.Y)*(p.X-p1.X)) * keep
	}

	out := make([]Vec2, 0, len(pts)+1)
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		sc := side(cur)
		sn := side(next)

		if sc >= 0 {
			out = append(out, cur)
		}
		// Edge crosses the clip line: emit the intersection point.
		if (sc > 0 && sn < 0) || (sc < 0 && sn > 0) {
			t := sc / (sc - sn)
			out = append(out, Vec2{
				X: cur.X + (next.X-cur.X)*t,
				Y: cur.Y + (next.Y-cur.Y)*t,
			})
		}
	}

	pts = append(pts[:0], out...)
	return pts
}
