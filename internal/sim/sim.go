package sim

import "noetica/internal/geom"

// Simulation is the contract every autonomous simulation satisfies for the
// external renderer/orchestrator.
type Simulation interface {
	Name() string

	// Initialize (re)seeds all populations and grids from configuration.
	// It is idempotent and safe to call repeatedly; Reset uses it.
	Initialize()

	// Update advances one tick, synchronously and completely.
	Update()

	// Render reads current state into the drawing context. It never
	// mutates simulation state.
	Render(rc RenderContext)

	// State returns a copy-out snapshot of counts, averages and evolution
	// metrics. Callers may mutate the returned map freely.
	State() map[string]float64

	Reset()
}

// RenderContext is the drawing surface handed in by the excluded renderer.
type RenderContext interface {
	DrawCircle(center geom.Vec2, radius float64, color string)
	DrawLine(from, to geom.Vec2, width float64, color string)
	FillCell(col, row int, intensity float64)
}

// NopContext discards all drawing calls.
type NopContext struct{}

func (NopContext) DrawCircle(geom.Vec2, float64, string)          {}
func (NopContext) DrawLine(geom.Vec2, geom.Vec2, float64, string) {}
func (NopContext) FillCell(int, int, float64)                     {}

// CountingContext tallies drawing calls; used by headless runs and tests to
// confirm Render touches state without mutating it.
type CountingContext struct {
	Circles int
	Lines   int
	Cells   int
}

func (c *CountingContext) DrawCircle(geom.Vec2, float64, string) { c.Circles++ }

func (c *CountingContext) DrawLine(geom.Vec2, geom.Vec2, float64, string) { c.Lines++ }

func (c *CountingContext) FillCell(int, int, float64) { c.Cells++ }
