package bento

import (
	"math"
	"sort"
)

const (
	// hardFloorMultiplier scales the corrective force once a cell is
	// compressed below MinSizeRatio.
	hardFloorMultiplier = 8.0

	// rippleFalloff is the fraction of an edge's accumulated force passed to
	// its adjacency-linked neighbors each tick.
	rippleFalloff = 0.5

	// limitDamping is applied to velocity when an edge hits a clamp limit.
	limitDamping = 0.3

	// boundaryStiffness multiplies the spring-back force on the container
	// perimeter so the outer frame resists distortion.
	boundaryStiffness = 3.0

	// maxFillBias caps how far the fill-ratio bias can amplify short-axis
	// expansion on extreme aspect ratios.
	maxFillBias = 2.5
)

// Engine runs the hover-driven spring simulation over one Grid. It applies
// expansion to the hovered cell's edges, propagates incompressibility forces
// to the rest, integrates velocities, and enforces the boundary and
// minimum-size constraints. One call to Step is one animation frame.
//
// The Engine holds a pointer to its Config so physics tuning fields can be
// mutated live between ticks. Structural fields must not change; regenerate
// the Grid and Engine instead.
type Engine struct {
	grid *Grid
	cfg  *Config

	hovered *Cell
	auth    [4]*Edge // the hovered cell's edges, authoritative while hovered

	forceSnap []float64
	sweep     []*Cell
}

// NewEngine creates an engine over the given grid. cfg must outlive the
// engine and must already be validated.
func NewEngine(grid *Grid, cfg *Config) *Engine {
	return &Engine{grid: grid, cfg: cfg}
}

// SetHover makes c the hovered cell. Passing nil clears the hover; the
// previously hovered cell's edges resume normal spring dynamics toward rest.
func (e *Engine) SetHover(c *Cell) {
	e.hovered = c
}

// ClearHover is shorthand for SetHover(nil).
func (e *Engine) ClearHover() {
	e.hovered = nil
}

// Hovered returns the currently hovered cell, or nil.
func (e *Engine) Hovered() *Cell {
	return e.hovered
}

// Reset forces every edge and diagonal back to rest with zero velocity and
// clears the hover state. Used after regeneration.
func (e *Engine) Reset() {
	for _, ed := range e.grid.Edges {
		ed.resetMotion()
	}
	for _, d := range e.grid.Diagonals {
		d.resetMotion()
	}
	e.hovered = nil
	e.auth = [4]*Edge{}
}

// Step advances the simulation one tick: hover drive, incompressibility,
// force rippling, integration, clamping, minimum-size enforcement.
func (e *Engine) Step() {
	if e.hovered != nil {
		e.driveHover()
	} else {
		e.auth = [4]*Edge{}
	}

	e.relaxDiagonals()

	if e.hovered != nil {
		e.applyIncompressibility()
		e.rippleForces()
	}

	e.integrate()
	e.clampEdges()
	e.enforceMinSize()
}

// isAuth reports whether ed is one of the hovered cell's edges this tick.
func (e *Engine) isAuth(ed *Edge) bool {
	if e.hovered == nil {
		return false
	}
	return ed == e.auth[0] || ed == e.auth[1] || ed == e.auth[2] || ed == e.auth[3]
}

// hoverScales returns the per-axis expansion factors for the hovered cell.
// With a nonzero fill ratio, a flat or tall cell expands more in its shorter
// axis, counteracting aspect skew.
func (e *Engine) hoverScales(c *Cell) (sw, sh float64) {
	scale := e.cfg.HoverScale
	sw, sh = scale, scale

	if e.cfg.FillRatio <= 0 {
		return sw, sh
	}
	w := c.RestWidth()
	h := c.RestHeight()
	if w <= 0 || h <= 0 {
		return sw, sh
	}

	aspect := w / h
	if aspect > 1 {
		bias := math.Min(aspect, maxFillBias)
		sh = 1 + (scale-1)*(1+e.cfg.FillRatio*(bias-1))
	} else if aspect < 1 {
		bias := math.Min(1/aspect, maxFillBias)
		sw = 1 + (scale-1)*(1+e.cfg.FillRatio*(bias-1))
	}
	return sw, sh
}

// driveHover moves the hovered cell's four edges directly toward their
// scaled targets by exponential smoothing. These writes are authoritative:
// they bypass the force system and zero the edges' velocity every tick.
// Attached diagonals scale around the same center by the same factors.
func (e *Engine) driveHover() {
	c := e.hovered
	e.auth = [4]*Edge{c.Top, c.Bottom, c.Left, c.Right}

	ctr := c.RestCenter()
	sw, sh := e.hoverScales(c)
	halfW := c.RestWidth() * sw / 2
	halfH := c.RestHeight() * sh / 2
	speed := e.cfg.ScaleSpeed

	drive := func(ed *Edge, target float64) {
		ed.Pos += (target - ed.Pos) * speed
		ed.Vel = 0
	}
	drive(c.Left, ctr.X-halfW)
	drive(c.Right, ctr.X+halfW)
	drive(c.Top, ctr.Y-halfH)
	drive(c.Bottom, ctr.Y+halfH)

	for i := range c.Clips {
		d := c.Clips[i].Edge
		t1x := ctr.X + (d.RestP1.X-ctr.X)*sw
		t1y := ctr.Y + (d.RestP1.Y-ctr.Y)*sh
		t2x := ctr.X + (d.RestP2.X-ctr.X)*sw
		t2y := ctr.Y + (d.RestP2.Y-ctr.Y)*sh
		d.P1.X += (t1x - d.P1.X) * speed
		d.P1.Y += (t1y - d.P1.Y) * speed
		d.P2.X += (t2x - d.P2.X) * speed
		d.P2.Y += (t2y - d.P2.Y) * speed
	}
}

// relaxDiagonals eases every diagonal not attached to the hovered cell back
// toward its rest endpoints.
func (e *Engine) relaxDiagonals() {
	speed := e.cfg.ScaleSpeed
	for _, d := range e.grid.Diagonals {
		if e.hovered != nil && e.hovered.hasDiagonal(d) {
			continue
		}
		d.P1.X += (d.RestP1.X - d.P1.X) * speed
		d.P1.Y += (d.RestP1.Y - d.P1.Y) * speed
		d.P2.X += (d.RestP2.X - d.P2.X) * speed
		d.P2.Y += (d.RestP2.Y - d.P2.Y) * speed
	}
}

// applyIncompressibility accumulates corrective forces on the edges of every
// compressed non-hovered cell. Forces are directed only outward relative to
// the hovered cell's center — a cell to the left of the hover is only ever
// pushed further left — which keeps neighboring cells from fighting each
// other.
func (e *Engine) applyIncompressibility() {
	hc := e.hovered.RestCenter()
	for _, c := range e.grid.Cells {
		if c == e.hovered {
			continue
		}
		e.axisForce(c.Left, c.Right, c.Width(), c.RestWidth(), hc.X)
		e.axisForce(c.Top, c.Bottom, c.Height(), c.RestHeight(), hc.Y)
	}
}

// axisForce computes the compression force for one axis of one cell and
// accumulates it on both edges, skipping authoritative ones. Below
// MinSizeRatio the force jumps by hardFloorMultiplier.
func (e *Engine) axisForce(lo, hi *Edge, cur, rest, hoverCenter float64) {
	if rest <= 0 {
		return
	}
	ratio := cur / rest
	if ratio >= 1 {
		return
	}

	f := (1 - ratio) * e.cfg.Incompressibility
	if ratio < e.cfg.MinSizeRatio {
		f += (e.cfg.MinSizeRatio - ratio) * e.cfg.Incompressibility * hardFloorMultiplier
	}

	sign := 1.0
	if (lo.Rest+hi.Rest)/2 < hoverCenter {
		sign = -1
	}
	if !e.isAuth(lo) {
		lo.addForce(f * sign)
	}
	if !e.isAuth(hi) {
		hi.addForce(f * sign)
	}
}

// rippleForces bleeds a fraction of each edge's accumulated force into its
// adjacency-linked neighbors, one hop per tick. Over successive ticks this
// propagates compression outward to edges that never bounded a compressed
// cell directly.
func (e *Engine) rippleForces() {
	edges := e.grid.Edges
	if cap(e.forceSnap) < len(edges) {
		e.forceSnap = make([]float64, len(edges))
	}
	e.forceSnap = e.forceSnap[:len(edges)]

	for i, ed := range edges {
		e.forceSnap[i] = ed.force
	}
	for i, ed := range edges {
		f := e.forceSnap[i]
		if f == 0 {
			continue
		}
		for _, adj := range ed.adjacent {
			if e.isAuth(adj) {
				continue
			}
			adj.addForce(f * rippleFalloff)
		}
	}
}

// integrate applies spring-back plus accumulated forces to every
// non-authoritative edge, updates velocity and position, and zeroes the
// force accumulators.
func (e *Engine) integrate() {
	damping := e.cfg.effectiveDamping()
	for _, ed := range e.grid.Edges {
		if e.isAuth(ed) {
			ed.force = 0
			continue
		}
		spring := (ed.Rest - ed.Pos) * e.cfg.SpringStrength
		if ed.Boundary {
			spring *= boundaryStiffness
		}
		ed.Vel = (ed.Vel + (spring+ed.force)*e.cfg.RippleSpeed) * damping
		ed.Pos += ed.Vel
		ed.force = 0
	}
}

// clampEdges enforces the displacement limits: boundary edges may only move
// outward from rest up to the bleed zone; internal edges are clamped to a
// maximum absolute displacement. Velocity is damped sharply at a limit.
// Authoritative edges are not exempt, so a hovered cell sitting on the
// container perimeter can only flex the perimeter as far as the bleed zone.
func (e *Engine) clampEdges() {
	for _, ed := range e.grid.Edges {
		d := ed.Pos - ed.Rest
		if ed.Boundary {
			out := d * ed.Outward
			if out < 0 {
				ed.Pos = ed.Rest
				ed.Vel *= limitDamping
			} else if out > e.cfg.BleedZone {
				ed.Pos = ed.Rest + ed.Outward*e.cfg.BleedZone
				ed.Vel *= limitDamping
			}
			continue
		}
		if d > e.cfg.MaxDisplacement {
			ed.Pos = ed.Rest + e.cfg.MaxDisplacement
			ed.Vel *= limitDamping
		} else if d < -e.cfg.MaxDisplacement {
			ed.Pos = ed.Rest - e.cfg.MaxDisplacement
			ed.Vel *= limitDamping
		}
	}
}

// enforceMinSize repositions edges so no cell ends the tick narrower or
// shorter than the absolute floor. While hovered, each axis is resolved by a
// sweep from the container inward: every violated cell pushes its hover-side
// edge back toward the hover, so chains of compressed cells resolve in one
// pass and, at the limit, push the hovered cell's own edge back rather than
// invert. Idle ticks use a symmetric reposition about each cell's midpoint.
func (e *Engine) enforceMinSize() {
	floor := e.cfg.MinCellPx
	if floor <= 0 {
		return
	}
	if e.hovered == nil {
		for _, c := range e.grid.Cells {
			enforceAxisSymmetric(c.Left, c.Right, floor)
			enforceAxisSymmetric(c.Top, c.Bottom, floor)
		}
		return
	}

	hc := e.hovered.RestCenter()
	e.sweepAxis(hc.X, floor, func(c *Cell) (*Edge, *Edge) { return c.Left, c.Right })
	e.sweepAxis(hc.Y, floor, func(c *Cell) (*Edge, *Edge) { return c.Top, c.Bottom })
}

func enforceAxisSymmetric(lo, hi *Edge, floor float64) {
	if hi.Pos-lo.Pos >= floor {
		return
	}
	mid := (lo.Pos + hi.Pos) / 2
	switch {
	case !lo.Boundary && !hi.Boundary:
		lo.Pos = mid - floor/2
		hi.Pos = mid + floor/2
	case !hi.Boundary:
		hi.Pos = lo.Pos + floor
	case !lo.Boundary:
		lo.Pos = hi.Pos - floor
	}
}

// sweepAxis enforces the floor along one axis while a cell is hovered. Cells
// are visited farthest-from-hover first, so each fix is made against an
// already-settled outer edge and nearer cells see the updated positions.
func (e *Engine) sweepAxis(hoverCenter, floor float64, axis func(*Cell) (*Edge, *Edge)) {
	e.sweep = e.sweep[:0]
	for _, c := range e.grid.Cells {
		if c == e.hovered {
			continue
		}
		e.sweep = append(e.sweep, c)
	}
	dist := func(c *Cell) float64 {
		lo, hi := axis(c)
		d := math.Abs(lo.Rest - hoverCenter)
		if dh := math.Abs(hi.Rest - hoverCenter); dh < d {
			d = dh
		}
		return d
	}
	sort.Slice(e.sweep, func(i, j int) bool { return dist(e.sweep[i]) > dist(e.sweep[j]) })

	for _, c := range e.sweep {
		lo, hi := axis(c)
		if hi.Pos-lo.Pos >= floor {
			continue
		}
		// A cell spanning the hover center cannot be compressed; only
		// cells fully to one side need fixing.
		if lo.Rest >= hoverCenter {
			if !lo.Boundary && lo.Pos > hi.Pos-floor {
				lo.Pos = hi.Pos - floor
			}
		} else if hi.Rest <= hoverCenter {
			if !hi.Boundary && hi.Pos < lo.Pos+floor {
				hi.Pos = lo.Pos + floor
			}
		}
	}
}
