package eco

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"noetica/internal/geom"
	"noetica/internal/mind"
	"noetica/internal/sim"
)

// Ecosystem is the multi-species simulation: per-kind populations of
// autonomous entities, a pairwise interaction engine, and a lifecycle
// manager. Entities later in iteration order observe earlier entities'
// already-updated scalars within a tick; for a fixed seed and iteration
// order the run is fully deterministic.
type Ecosystem struct {
	cfg  Config
	core *mind.Core
	rng  *rand.Rand
	grid *geom.Grid

	entities     []*Entity
	byID         map[string]*Entity
	associations []Association

	tick   int
	births int
	deaths int
}

func NewEcosystem(cfg Config, core *mind.Core) (*Ecosystem, error) {
	if core == nil {
		return nil, fmt.Errorf("consciousness core is required")
	}
	cfg = cfg.normalized()
	return &Ecosystem{
		cfg:  cfg,
		core: core,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		grid: geom.NewGrid(cfg.Width, cfg.Height, cfg.SenseRadius, true),
	}, nil
}

func (eco *Ecosystem) Name() string { return "eco" }

// Initialize reseeds every population from configuration. Safe to call
// repeatedly; Reset uses it.
func (eco *Ecosystem) Initialize() {
	eco.rng = rand.New(rand.NewSource(eco.cfg.Seed))
	eco.entities = eco.entities[:0]
	eco.byID = make(map[string]*Entity)
	eco.associations = eco.associations[:0]
	eco.tick = 0
	eco.births = 0
	eco.deaths = 0

	for k := Kind(0); k < kindCount; k++ {
		for i := 0; i < eco.cfg.target(k); i++ {
			eco.insert(eco.spawn(k))
		}
	}
}

func (eco *Ecosystem) Reset() { eco.Initialize() }

func (eco *Ecosystem) spawn(k Kind) *Entity {
	return &Entity{
		ID:   uuid.NewString(),
		Kind: k,
		Pos: geom.Vec2{
			X: eco.rng.Float64() * eco.cfg.Width,
			Y: eco.rng.Float64() * eco.cfg.Height,
		},
		Energy:         0.4 + eco.rng.Float64()*0.4,
		LastReproduced: -1,
		Traits: Traits{
			Speed:       0.2 + eco.rng.Float64()*0.6,
			Size:        0.2 + eco.rng.Float64()*0.6,
			Aggression:  eco.rng.Float64(),
			Cooperation: eco.rng.Float64(),
		},
		Relationships: make(map[string]*Relationship),
	}
}

func (eco *Ecosystem) insert(e *Entity) {
	eco.entities = append(eco.entities, e)
	eco.byID[e.ID] = e
}

// Update advances one tick: interactions first, then per-entity updates,
// then lifecycle. Population mutation completes inside this call, so a
// renderer running afterwards sees a consistent post-tick snapshot.
func (eco *Ecosystem) Update() {
	if eco.byID == nil {
		// Defensive: an uninitialized ecosystem reseeds itself instead
		// of failing the tick.
		eco.Initialize()
	}
	eco.tick++
	params := eco.core.Snapshot().Params

	eco.rebuildGrid()
	eco.applyInteractions()
	for _, e := range eco.entities {
		eco.updateEntity(e, params)
	}
	eco.applyLifecycle(params)
}

func (eco *Ecosystem) rebuildGrid() {
	eco.grid.Clear()
	for i, e := range eco.entities {
		eco.grid.Insert(i, e.Pos)
	}
}

// neighbors returns entities within radius of e, excluding e itself.
func (eco *Ecosystem) neighbors(e *Entity, radius float64) []*Entity {
	ids := eco.grid.Query(e.Pos, radius, nil)
	out := make([]*Entity, 0, len(ids))
	for _, idx := range ids {
		other := eco.entities[idx]
		if other == e {
			continue
		}
		if geom.TorusDist(e.Pos, other.Pos, eco.cfg.Width, eco.cfg.Height) <= radius {
			out = append(out, other)
		}
	}
	return out
}

func (eco *Ecosystem) updateEntity(e *Entity, params mind.Params) {
	e.Age++
	if e.Cooldown > 0 {
		e.Cooldown--
	}
	for id, rel := range e.Relationships {
		if _, alive := eco.byID[id]; !alive {
			delete(e.Relationships, id)
			continue
		}
		rel.Age++
	}

	e.Energy -= eco.cfg.BaseDecay + e.Traits.Size*eco.cfg.SizeDecayFactor
	if e.Kind == KindProducer {
		// Producers photosynthesize; global complexity modulates yield.
		e.Energy += eco.cfg.ProducerRegen * (0.5 + params.Complexity)
	}
	e.Energy = geom.Clamp01(e.Energy)

	near := eco.neighbors(e, eco.cfg.SenseRadius)
	behavior, target, hasTarget := eco.selectBehavior(e, near)
	eco.move(e, behavior, target, hasTarget)

	e.Energy = geom.Clamp01(e.Energy)
	e.remember(eco.tick, behavior)
}

// selectBehavior walks the priority-ordered decision table; the first
// matching rule wins.
func (eco *Ecosystem) selectBehavior(e *Entity, near []*Entity) (Behavior, geom.Vec2, bool) {
	if e.Energy < 0.4 {
		if food, ok := eco.nearest(e, near, func(o *Entity) bool { return hunts(e.Kind, o.Kind) }); ok {
			return BehaviorForage, food.Pos, true
		}
	}
	if threat, ok := eco.nearest(e, near, func(o *Entity) bool { return hunts(o.Kind, e.Kind) }); ok {
		return BehaviorFlee, threat.Pos, true
	}
	if e.Energy > 0.7 && e.Cooldown == 0 {
		if mate, ok := eco.nearest(e, near, func(o *Entity) bool { return o.Kind == e.Kind }); ok {
			return BehaviorSeekMate, mate.Pos, true
		}
	}
	return BehaviorWander, geom.Vec2{}, false
}

func (eco *Ecosystem) nearest(e *Entity, near []*Entity, match func(*Entity) bool) (*Entity, bool) {
	var best *Entity
	bestDist := 0.0
	for _, o := range near {
		if !match(o) {
			continue
		}
		d := geom.TorusDist(e.Pos, o.Pos, eco.cfg.Width, eco.cfg.Height)
		if best == nil || d < bestDist {
			best = o
			bestDist = d
		}
	}
	return best, best != nil
}

func (eco *Ecosystem) move(e *Entity, behavior Behavior, target geom.Vec2, hasTarget bool) {
	var steer geom.Vec2
	switch {
	case hasTarget && behavior == BehaviorFlee:
		delta := geom.TorusDelta(e.Pos, target, eco.cfg.Width, eco.cfg.Height)
		if l := delta.Len(); l > 0 {
			steer = delta.Scale(-eco.cfg.SteerForce / l)
		}
	case hasTarget:
		delta := geom.TorusDelta(e.Pos, target, eco.cfg.Width, eco.cfg.Height)
		if l := delta.Len(); l > 0 {
			steer = delta.Scale(eco.cfg.SteerForce / l)
		}
	default:
		steer = geom.Vec2{
			X: (eco.rng.Float64() - 0.5) * eco.cfg.SteerForce,
			Y: (eco.rng.Float64() - 0.5) * eco.cfg.SteerForce,
		}
	}

	maxSpeed := eco.cfg.MaxSpeed * (0.5 + e.Traits.Speed)
	e.Vel = e.Vel.Add(steer).Scale(eco.cfg.Damping).ClampLen(maxSpeed)
	e.Pos = geom.Wrap(e.Pos.Add(e.Vel), eco.cfg.Width, eco.cfg.Height)
}

func (eco *Ecosystem) Tick() int { return eco.tick }

// Entities exposes the live population for tests and sibling simulations.
func (eco *Ecosystem) Entities() []*Entity { return eco.entities }

// Associations is this tick's recomputed interaction set.
func (eco *Ecosystem) Associations() []Association {
	out := make([]Association, len(eco.associations))
	copy(out, eco.associations)
	return out
}

func (eco *Ecosystem) State() map[string]float64 {
	counts := make([]int, kindCount)
	totalEnergy := 0.0
	relationships := 0
	cols := int(eco.cfg.Width/eco.cfg.SenseRadius) + 1
	rows := int(eco.cfg.Height/eco.cfg.SenseRadius) + 1
	occupied := geom.NewCellSet(cols)
	for _, e := range eco.entities {
		counts[e.Kind]++
		totalEnergy += e.Energy
		relationships += len(e.Relationships)
		occupied.Mark(int(e.Pos.X/eco.cfg.SenseRadius), int(e.Pos.Y/eco.cfg.SenseRadius))
	}
	state := map[string]float64{
		"tick":          float64(eco.tick),
		"population":    float64(len(eco.entities)),
		"births":        float64(eco.births),
		"deaths":        float64(eco.deaths),
		"associations":  float64(len(eco.associations)),
		"relationships": float64(relationships),
		"coverage":      float64(occupied.Len()) / float64(cols*rows),
	}
	for k := Kind(0); k < kindCount; k++ {
		state[k.String()+"s"] = float64(counts[k])
	}
	if len(eco.entities) > 0 {
		state["mean_energy"] = totalEnergy / float64(len(eco.entities))
	} else {
		state["mean_energy"] = 0
	}
	return state
}

var kindColors = map[Kind]string{
	KindProducer: "#3fa34d",
	KindConsumer: "#4d7ea8",
	KindPredator: "#b33a3a",
	KindSymbiont: "#b58db6",
}

func (eco *Ecosystem) Render(rc sim.RenderContext) {
	for _, e := range eco.entities {
		for id, rel := range e.Relationships {
			other, ok := eco.byID[id]
			if !ok {
				continue
			}
			rc.DrawLine(e.Pos, other.Pos, rel.Strength, "#888888")
		}
	}
	for _, e := range eco.entities {
		rc.DrawCircle(e.Pos, 1+e.bodySize(eco.cfg.BodyScale)/2, kindColors[e.Kind])
	}
}
