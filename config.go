package bento

import "fmt"

// Config holds every layout and physics parameter. Structural fields (Width,
// Height, Depth, MinCellSize, DiagonalCount, Seed) require a full Grid+Engine
// regeneration when changed; the physics tuning fields apply live between
// ticks. The toml tags let front-ends load a Config straight from a file.
type Config struct {
	// Container dimensions in pixels.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Depth is the maximum subdivision recursion depth.
	Depth int `toml:"depth"`

	// MinCellSize is the minimum rest dimension a subdivision may produce.
	MinCellSize float64 `toml:"min_cell_size"`

	// Gap is the visual inset subtracted from each cell's rendered rectangle
	// on all sides. Affects rendering and hit-testing only.
	Gap float64 `toml:"gap"`

	// DiagonalCount is the number of adjacent cell pairs converted into
	// diagonally-clipped pairs.
	DiagonalCount int `toml:"diagonal_count"`

	// Seed selects the random layout. Zero means a fresh nondeterministic
	// seed per regeneration.
	Seed uint64 `toml:"seed"`

	// HoverScale is the target expansion factor for the hovered cell.
	HoverScale float64 `toml:"hover_scale"`

	// FillRatio biases hover expansion toward a cell's shorter axis,
	// counteracting aspect skew. Zero disables the bias.
	FillRatio float64 `toml:"fill_ratio"`

	// ScaleSpeed is the exponential smoothing factor moving hovered edges
	// toward their targets each tick.
	ScaleSpeed float64 `toml:"scale_speed"`

	// Incompressibility scales the corrective force applied to cells
	// compressed below their rest size.
	Incompressibility float64 `toml:"incompressibility"`

	// MinSizeRatio is the hard floor for a cell's current/rest size ratio.
	// Below it the corrective force becomes much stronger.
	MinSizeRatio float64 `toml:"min_size_ratio"`

	// BleedZone is the maximum outward flex of a container boundary edge.
	BleedZone float64 `toml:"bleed_zone"`

	// RippleSpeed scales how fast accumulated forces feed into velocity.
	RippleSpeed float64 `toml:"ripple_speed"`

	// Overshoot reduces damping, producing springier settling. The effective
	// damping is Damping - Overshoot*0.3.
	Overshoot float64 `toml:"overshoot"`

	// Damping is the base velocity damping per tick.
	Damping float64 `toml:"damping"`

	// SpringStrength pulls every non-hovered edge back toward rest. Boundary
	// edges use three times this value.
	SpringStrength float64 `toml:"spring_strength"`

	// MaxDisplacement is the absolute position clamp for internal edges.
	MaxDisplacement float64 `toml:"max_displacement"`

	// MinCellPx is the absolute minimum cell dimension enforced after
	// integration, independent of MinSizeRatio.
	MinCellPx float64 `toml:"min_cell_px"`
}

// DefaultConfig returns the tuned defaults used by the demos.
func DefaultConfig() Config {
	return Config{
		Width:             1280,
		Height:            720,
		Depth:             5,
		MinCellSize:       120,
		Gap:               6,
		DiagonalCount:     3,
		HoverScale:        1.4,
		FillRatio:         0.5,
		ScaleSpeed:        0.18,
		Incompressibility: 0.8,
		MinSizeRatio:      0.5,
		BleedZone:         40,
		RippleSpeed:       0.15,
		Overshoot:         0.2,
		Damping:           0.9,
		SpringStrength:    0.06,
		MaxDisplacement:   240,
		MinCellPx:         20,
	}
}

// Validate rejects malformed configuration before it can reach the
// simulation. All failures are reported at configuration-set time; the
// engine itself never validates.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bento: container size %gx%g must be positive", c.Width, c.Height)
	}
	if c.Depth < 1 {
		return fmt.Errorf("bento: subdivision depth %d must be >= 1", c.Depth)
	}
	if c.MinCellSize <= 0 {
		return fmt.Errorf("bento: min cell size %g must be positive", c.MinCellSize)
	}
	if c.Gap < 0 {
		return fmt.Errorf("bento: gap %g must not be negative", c.Gap)
	}
	if c.DiagonalCount < 0 {
		return fmt.Errorf("bento: diagonal count %d must not be negative", c.DiagonalCount)
	}
	if c.HoverScale <= 1 {
		return fmt.Errorf("bento: hover scale %g must be > 1", c.HoverScale)
	}
	if c.ScaleSpeed <= 0 || c.ScaleSpeed > 1 {
		return fmt.Errorf("bento: scale speed %g must be in (0, 1]", c.ScaleSpeed)
	}
	if c.MinSizeRatio <= 0 || c.MinSizeRatio >= 1 {
		return fmt.Errorf("bento: min size ratio %g must be in (0, 1)", c.MinSizeRatio)
	}
	if c.BleedZone < 0 {
		return fmt.Errorf("bento: bleed zone %g must not be negative", c.BleedZone)
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		return fmt.Errorf("bento: damping %g must be in (0, 1)", c.Damping)
	}
	if c.Damping-c.Overshoot*0.3 <= 0 {
		return fmt.Errorf("bento: overshoot %g leaves no effective damping", c.Overshoot)
	}
	if c.SpringStrength < 0 || c.RippleSpeed < 0 || c.Incompressibility < 0 || c.FillRatio < 0 {
		return fmt.Errorf("bento: force parameters must not be negative")
	}
	if c.MaxDisplacement <= 0 {
		return fmt.Errorf("bento: max displacement %g must be positive", c.MaxDisplacement)
	}
	if c.MinCellPx < 0 {
		return fmt.Errorf("bento: min cell px %g must not be negative", c.MinCellPx)
	}
	return nil
}

// effectiveDamping derives the per-tick velocity damping from the base
// damping and the overshoot tuning knob.
func (c *Config) effectiveDamping() float64 {
	return c.Damping - c.Overshoot*0.3
}
