package bento

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is pure opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Lerp returns the component-wise interpolation between c and other at t,
// where t=0 yields c and t=1 yields other.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Vec2 is a 2D vector used for positions, offsets, and polygon vertices
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Inset returns the rectangle shrunk by d on all four sides. The result may
// have zero or negative dimensions; callers are expected to skip those.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		X:      r.X + d,
		Y:      r.Y + d,
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
	}
}

// Orientation distinguishes the two edge directions. A horizontal edge is a
// horizontal line whose position is a Y coordinate; a vertical edge's
// position is an X coordinate.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// pointInConvexPolygon reports whether (x, y) lies inside a convex polygon
// using the cross-product sign test. Points must define a convex polygon in
// either winding order.
func pointInConvexPolygon(pts []Vec2, x, y float64) bool {
	n := len(pts)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := pts[i].X
		y1 := pts[i].Y
		j := (i + 1) % n
		x2 := pts[j].X
		y2 := pts[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// polygonArea returns the absolute area of a simple polygon (shoelace).
func polygonArea(pts []Vec2) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
