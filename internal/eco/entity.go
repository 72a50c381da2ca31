package eco

import (
	"noetica/internal/geom"
)

// Kind is the closed set of entity variants in the ecosystem.
type Kind int

const (
	KindProducer Kind = iota
	KindConsumer
	KindPredator
	KindSymbiont
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindProducer:
		return "producer"
	case KindConsumer:
		return "consumer"
	case KindPredator:
		return "predator"
	case KindSymbiont:
		return "symbiont"
	default:
		return "unknown"
	}
}

// preyOf lists, per hunter kind, the kinds it may hunt.
var preyOf = map[Kind][]Kind{
	KindPredator: {KindConsumer, KindSymbiont},
	KindConsumer: {KindProducer},
}

func hunts(hunter, prey Kind) bool {
	for _, k := range preyOf[hunter] {
		if k == prey {
			return true
		}
	}
	return false
}

// Traits is the heritable vector. All traits live in (0,1]; mutation floors
// them at a small positive minimum so no trait ever reaches zero.
type Traits struct {
	Speed       float64
	Size        float64
	Aggression  float64
	Cooperation float64
}

func (t Traits) mean(o Traits) Traits {
	return Traits{
		Speed:       (t.Speed + o.Speed) / 2,
		Size:        (t.Size + o.Size) / 2,
		Aggression:  (t.Aggression + o.Aggression) / 2,
		Cooperation: (t.Cooperation + o.Cooperation) / 2,
	}
}

// Relationship is a directed weighted link to another entity, referenced by
// id only. Dangling ids after a death are tolerated and pruned lazily.
type Relationship struct {
	Strength float64
	Age      int
}

type Behavior int

const (
	BehaviorWander Behavior = iota
	BehaviorForage
	BehaviorFlee
	BehaviorSeekMate
)

func (b Behavior) String() string {
	switch b {
	case BehaviorForage:
		return "forage"
	case BehaviorFlee:
		return "flee"
	case BehaviorSeekMate:
		return "seek-mate"
	default:
		return "wander"
	}
}

// Experience is one ring-buffer record of what an entity did on a tick.
type Experience struct {
	Tick     int
	Behavior Behavior
	Energy   float64
}

const experienceCap = 32

type Entity struct {
	ID   string
	Kind Kind

	Pos geom.Vec2
	Vel geom.Vec2

	Energy float64
	Age    int

	Cooldown       int
	LastReproduced int

	Traits        Traits
	Relationships map[string]*Relationship

	history []Experience
}

func (e *Entity) remember(tick int, b Behavior) {
	e.history = append(e.history, Experience{Tick: tick, Behavior: b, Energy: e.Energy})
	if len(e.history) > experienceCap {
		e.history = e.history[len(e.history)-experienceCap:]
	}
}

func (e *Entity) History() []Experience {
	out := make([]Experience, len(e.history))
	copy(out, e.history)
	return out
}

// bodySize converts the normalized size trait into field units.
func (e *Entity) bodySize(scale float64) float64 {
	return e.Traits.Size * scale
}
