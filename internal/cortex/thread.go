package cortex

import (
	"math"

	"noetica/internal/geom"
)

// ThreadKind is the closed set of processing thread specializations.
type ThreadKind int

const (
	ThreadPatternRecognition ThreadKind = iota
	ThreadSemanticAnalysis
	ThreadMemoryConsolidation
	ThreadCreativeSynthesis
	threadKindCount
)

func (k ThreadKind) String() string {
	switch k {
	case ThreadPatternRecognition:
		return "pattern-recognition"
	case ThreadSemanticAnalysis:
		return "semantic-analysis"
	case ThreadMemoryConsolidation:
		return "memory-consolidation"
	case ThreadCreativeSynthesis:
		return "creative-synthesis"
	default:
		return "unknown"
	}
}

// Link is a directed weighted connection to another thread, by id.
type Link struct {
	Weight float64
	Age    int
}

// Thread is one parallel worker agent. Its activation is a logistic of
// weighted link input plus message packets received this tick.
type Thread struct {
	ID   string
	Kind ThreadKind

	Pos geom.Vec2
	Vel geom.Vec2

	Activation  float64
	Confidence  float64
	Uncertainty float64
	Activity    float64
	Age         int

	Links map[string]*Link

	// pending accumulates activation packets sent by other threads; it is
	// consumed (read and cleared) by the next update.
	pending float64
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// update recomputes activation from link input, advances the exponential
// activity average, and integrates damped bounce movement.
func (c *Cortex) updateThread(t *Thread) {
	t.Age++

	input := t.pending
	t.pending = 0
	for id, link := range t.Links {
		other, ok := c.byID[id]
		if !ok {
			delete(t.Links, id)
			continue
		}
		input += link.Weight * other.Activation
		link.Age++
		link.Weight *= c.cfg.LinkDecay
		if link.Weight < c.cfg.LinkFloor {
			delete(t.Links, id)
		}
	}

	t.Activation = sigmoid(4*input - 2)
	t.Activity = geom.Clamp01(0.9*t.Activity + 0.1*t.Activation)
	t.Confidence = geom.Clamp01(0.95*t.Confidence + 0.05*t.Activation)
	t.Uncertainty = geom.Clamp01(1 - t.Confidence)

	c.moveThread(t)
}

// moveThread steers toward the strongest-linked peer and bounces at the
// field boundary instead of wrapping.
func (c *Cortex) moveThread(t *Thread) {
	var steer geom.Vec2
	if peer, ok := c.strongestPeer(t); ok {
		delta := peer.Pos.Sub(t.Pos)
		if l := delta.Len(); l > 1 {
			steer = delta.Scale(c.cfg.SteerForce / l)
		}
	} else {
		steer = geom.Vec2{
			X: (c.rng.Float64() - 0.5) * c.cfg.SteerForce,
			Y: (c.rng.Float64() - 0.5) * c.cfg.SteerForce,
		}
	}
	t.Vel = t.Vel.Add(steer).Scale(c.cfg.Damping).ClampLen(c.cfg.MaxSpeed)
	t.Pos, t.Vel = geom.Bounce(t.Pos.Add(t.Vel), t.Vel, c.cfg.Width, c.cfg.Height)
}

func (c *Cortex) strongestPeer(t *Thread) (*Thread, bool) {
	var best *Thread
	bestWeight := 0.0
	for id, link := range t.Links {
		other, ok := c.byID[id]
		if !ok {
			continue
		}
		if best == nil || link.Weight > bestWeight {
			best = other
			bestWeight = link.Weight
		}
	}
	return best, best != nil
}

// passMessages sends one activation packet per thread along its strongest
// link. Receivers consume packets on their own update; a receiver updated
// earlier in the pass sees the packet next tick.
func (c *Cortex) passMessages() {
	for _, t := range c.threads {
		peer, ok := c.strongestPeer(t)
		if !ok {
			continue
		}
		peer.pending += t.Activation * t.Links[peer.ID].Weight * c.cfg.MessageRate
	}
}
