// Package bento procedurally generates a bento-box grid of panels and
// animates them with a mass-spring physics simulation.
//
// A [Grid] recursively subdivides a rectangular container into cells that
// share movable edges. An [Engine] expands the hovered cell while its
// neighbors compress, ripple, and spring back, without ever letting a cell
// invert or escape the container by more than the configured bleed zone.
// Cells can optionally share diagonal boundaries, producing pentagon and
// hexagon panels via half-plane clipping.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	app, err := bento.NewApp(bento.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	bento.Run(app, bento.RunConfig{
//		Title: "bento", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and drive the pieces
// directly:
//
//	grid := bento.NewGrid(cfg, rng)
//	engine := bento.NewEngine(grid, &cfg)
//	// each frame:
//	engine.SetHover(grid.CellAt(px, py, cfg.Gap))
//	engine.Step()
//
// # Layout model
//
// Every cell is bounded by exactly four edges (top, bottom, left, right) and
// derives its geometry from their current positions. Edges are owned by the
// Grid; the physics engine mutates edge positions each tick and cells never
// store geometry of their own. Regeneration (resize, depth change, and so on)
// discards the Grid and Engine wholesale — there is no incremental migration.
//
// All simulation state is single-threaded and frame-driven. One call to
// [Engine.Step] corresponds to one animation frame.
package bento
