package sim

import (
	"context"
	"fmt"
	"sort"
)

// EngineHooks surface per-subsystem failures without coupling the engine to a
// logging destination.
type EngineHooks struct {
	OnSubsystemFailure func(name string, tick int, err error)
}

// Engine drives a set of registered simulations on a shared tick. A failure
// inside one simulation's update skips that simulation for the tick; all
// others continue. Nothing here is fatal.
type Engine struct {
	hooks EngineHooks

	names []string
	sims  map[string]Simulation

	tick     int
	failures map[string]int
}

func NewEngine(hooks EngineHooks) *Engine {
	return &Engine{
		hooks:    hooks,
		sims:     make(map[string]Simulation),
		failures: make(map[string]int),
	}
}

func (e *Engine) Register(s Simulation) error {
	if s == nil {
		return fmt.Errorf("simulation is required")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("simulation name is required")
	}
	if _, exists := e.sims[name]; exists {
		return fmt.Errorf("simulation already registered: %s", name)
	}
	e.sims[name] = s
	e.names = append(e.names, name)
	return nil
}

func (e *Engine) Simulations() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

func (e *Engine) Initialize() {
	for _, name := range e.names {
		e.sims[name].Initialize()
	}
	e.tick = 0
	e.failures = make(map[string]int)
}

// Update advances every registered simulation one tick, in registration
// order. Population mutation completes before any render can observe it.
func (e *Engine) Update() {
	e.tick++
	for _, name := range e.names {
		e.updateOne(name)
	}
}

func (e *Engine) updateOne(name string) {
	defer func() {
		if r := recover(); r != nil {
			e.failures[name]++
			if e.hooks.OnSubsystemFailure != nil {
				e.hooks.OnSubsystemFailure(name, e.tick, fmt.Errorf("update panic: %v", r))
			}
		}
	}()
	e.sims[name].Update()
}

func (e *Engine) Render(rc RenderContext) {
	if rc == nil {
		return
	}
	for _, name := range e.names {
		e.sims[name].Render(rc)
	}
}

func (e *Engine) Tick() int {
	return e.tick
}

// Failures reports update-skip counts by simulation name.
func (e *Engine) Failures() map[string]int {
	out := make(map[string]int, len(e.failures))
	for k, v := range e.failures {
		out[k] = v
	}
	return out
}

// State merges every simulation's snapshot, prefixing keys with the
// simulation name.
func (e *Engine) State() map[string]float64 {
	out := map[string]float64{"engine.tick": float64(e.tick)}
	names := append([]string(nil), e.names...)
	sort.Strings(names)
	for _, name := range names {
		for k, v := range e.sims[name].State() {
			out[name+"."+k] = v
		}
	}
	return out
}

func (e *Engine) Reset() {
	e.Initialize()
}

// Run advances ticks update passes headlessly. When captureEvery > 0, capture
// is invoked after every captureEvery-th tick with the engine quiescent.
func (e *Engine) Run(ctx context.Context, ticks, captureEvery int, capture func(tick int) error) error {
	if ticks <= 0 {
		return fmt.Errorf("ticks must be > 0")
	}
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Update()
		if captureEvery > 0 && capture != nil && e.tick%captureEvery == 0 {
			if err := capture(e.tick); err != nil {
				return fmt.Errorf("capture at tick %d: %w", e.tick, err)
			}
		}
	}
	return nil
}
