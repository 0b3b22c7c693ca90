package bento

// Edge is a movable boundary line shared by one or more cells. A horizontal
// edge stores a Y coordinate, a vertical edge an X coordinate. Edges are
// created during subdivision, owned by their Grid, and mutated every physics
// tick; cells hold non-owning references to exactly four of them.
type Edge struct {
	// ID is unique within one Grid, in creation order.
	ID int

	Orient Orientation

	// Boundary marks the four container perimeter edges. Boundary edges may
	// only flex outward from rest, up to the configured bleed zone.
	Boundary bool

	// Outward is the sign of the outward direction for boundary edges:
	// -1 for the top/left perimeter, +1 for bottom/right, 0 for internal.
	Outward float64

	// Rest is the design position produced by subdivision. It never changes
	// after creation.
	Rest float64

	// Pos is the current position. Derived cell geometry reads this.
	Pos float64

	// Vel is the current velocity in units per tick.
	Vel float64

	// force accumulates constraint forces within one tick and is zeroed at
	// the end of every integration step.
	force float64

	// adjacent links this edge to same-orientation edges recorded at split
	// time: the two parallel edges of the region a split edge subdivides.
	// Used to ripple constraint forces between edges that never bound the
	// same cell.
	adjacent []*Edge
}

// Displacement returns the current offset from the rest position.
func (e *Edge) Displacement() float64 {
	return e.Pos - e.Rest
}

// addForce accumulates f into the edge's force accumulator.
func (e *Edge) addForce(f float64) {
	e.force += f
}

// link records bidirectional adjacency between e and other. Both edges must
// share the same orientation; mismatched orientations are ignored.
func (e *Edge) link(other *Edge) {
	if e == nil || other == nil || e == other || e.Orient != other.Orient {
		return
	}
	for _, a := range e.adjacent {
		if a == other {
			return
		}
	}
	e.adjacent = append(e.adjacent, other)
	other.adjacent = append(other.adjacent, e)
}

// resetMotion restores the edge to its rest state with no velocity or
// pending force.
func (e *Edge) resetMotion() {
	e.Pos = e.Rest
	e.Vel = 0
	e.force = 0
}
