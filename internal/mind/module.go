package mind

import "noetica/internal/sim"

// Module adapts the core to the simulation contract so the engine evolves it
// once per tick, ahead of the simulations that read it.
type Module struct {
	core *Core
}

func NewModule(core *Core) *Module {
	return &Module{core: core}
}

func (m *Module) Name() string { return "mind" }

func (m *Module) Initialize() { m.core.reset() }

func (m *Module) Update() { m.core.Evolve() }

func (m *Module) Reset() { m.core.reset() }

// Render draws nothing; the consciousness parameters are scalar state read
// by the other simulations' renderers.
func (m *Module) Render(sim.RenderContext) {}

func (m *Module) State() map[string]float64 {
	s := m.core.Snapshot()
	return map[string]float64{
		"tick":        float64(s.Tick),
		"cycle":       float64(s.Cycle),
		"phase_shift": s.PhaseShift,
		"complexity":  s.Params.Complexity,
		"emergence":   s.Params.Emergence,
		"coherence":   s.Params.Coherence,
		"adaptation":  s.Params.Adaptation,
		"entropy":     m.core.Entropy(),
		"synergy":     m.core.Coherence(),
	}
}
