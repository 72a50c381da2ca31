package cortex

import (
	"github.com/google/uuid"

	"noetica/internal/geom"
	"noetica/internal/mind"
)

// Insight is a transient emergent signal attributed to up to three
// high-performing threads. Intensity decays geometrically every tick.
type Insight struct {
	ID        string
	Pos       geom.Vec2
	Intensity float64
	Sources   []string
	Age       int
}

// Cascade is a pattern cascade: an expanding ring with geometrically
// decaying intensity, culled at a radius or intensity threshold.
type Cascade struct {
	Pos       geom.Vec2
	Radius    float64
	Intensity float64
}

// AttentionNode focuses on one thread at a time. The pool size is fixed:
// nodes below the strength floor are removed and replaced.
type AttentionNode struct {
	TargetID string
	Pos      geom.Vec2
	Strength float64
}

// updateInsights decays existing insights, culls the faded ones, and
// probabilistically emits a new insight when at least three threads run at
// high confidence and activity.
func (c *Cortex) updateInsights(params mind.Params) {
	kept := c.insights[:0]
	for _, in := range c.insights {
		in.Intensity *= c.cfg.InsightDecay
		in.Age++
		if in.Intensity >= c.cfg.InsightFloor {
			kept = append(kept, in)
		}
	}
	c.insights = kept

	if len(c.insights) >= c.cfg.MaxInsights {
		return
	}
	performers := c.highPerformers()
	if len(performers) < 3 {
		return
	}
	if c.rng.Float64() >= geom.Clamp01(c.cfg.InsightProb*(0.5+params.Emergence)) {
		return
	}

	sources := performers
	if len(sources) > 3 {
		sources = sources[:3]
	}
	var centroid geom.Vec2
	ids := make([]string, 0, len(sources))
	for _, t := range sources {
		centroid = centroid.Add(t.Pos)
		ids = append(ids, t.ID)
	}
	centroid = centroid.Scale(1 / float64(len(sources)))
	c.insights = append(c.insights, &Insight{
		ID:        uuid.NewString(),
		Pos:       centroid,
		Intensity: 0.7 + c.rng.Float64()*0.3,
		Sources:   ids,
	})
	c.insightsEmitted++
}

// highPerformers returns threads with confidence > 0.8 and activity > 0.7,
// in population order.
func (c *Cortex) highPerformers() []*Thread {
	out := make([]*Thread, 0)
	for _, t := range c.threads {
		if t.Confidence > 0.8 && t.Activity > 0.7 {
			out = append(out, t)
		}
	}
	return out
}

// updateCascades grows and fades pattern cascades, and probabilistically
// starts a new one at the most active thread when mean activation is high.
func (c *Cortex) updateCascades(params mind.Params) {
	kept := c.cascades[:0]
	for _, ca := range c.cascades {
		ca.Radius += c.cfg.CascadeGrowth
		ca.Intensity *= c.cfg.CascadeDecay
		if ca.Radius <= c.cfg.CascadeMaxRadius && ca.Intensity >= c.cfg.CascadeFloor {
			kept = append(kept, ca)
		}
	}
	c.cascades = kept

	if len(c.threads) == 0 {
		return
	}
	if c.meanActivation() <= 0.6 {
		return
	}
	if c.rng.Float64() >= geom.Clamp01(c.cfg.CascadeProb*(0.5+params.Complexity)) {
		return
	}
	origin := c.mostActive()
	c.cascades = append(c.cascades, &Cascade{
		Pos:       origin.Pos,
		Radius:    1,
		Intensity: 0.8 + c.rng.Float64()*0.2,
	})
}

func (c *Cortex) meanActivation() float64 {
	if len(c.threads) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range c.threads {
		sum += t.Activation
	}
	return sum / float64(len(c.threads))
}

func (c *Cortex) mostActive() *Thread {
	best := c.threads[0]
	for _, t := range c.threads[1:] {
		if t.Activity > best.Activity {
			best = t
		}
	}
	return best
}

// updateAttention decays node strength, probabilistically retargets the
// highest-activity thread with a strength boost, prunes nodes below the
// floor, and replenishes the pool to its configured size.
func (c *Cortex) updateAttention() {
	for _, node := range c.attention {
		node.Strength *= c.cfg.AttentionDecay
		if target, ok := c.byID[node.TargetID]; ok {
			node.Pos = target.Pos
		}
		if c.rng.Float64() < c.cfg.RetargetProb && len(c.threads) > 0 {
			target := c.mostActive()
			node.TargetID = target.ID
			node.Pos = target.Pos
			node.Strength = geom.Clamp01(node.Strength + c.cfg.AttentionBoost)
		}
	}

	kept := c.attention[:0]
	for _, node := range c.attention {
		if node.Strength >= c.cfg.AttentionFloor {
			kept = append(kept, node)
		}
	}
	c.attention = kept

	for len(c.attention) < c.cfg.AttentionPool && len(c.threads) > 0 {
		target := c.threads[c.rng.Intn(len(c.threads))]
		c.attention = append(c.attention, &AttentionNode{
			TargetID: target.ID,
			Pos:      target.Pos,
			Strength: 0.5,
		})
	}
}
