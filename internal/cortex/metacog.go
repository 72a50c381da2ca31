package cortex

import (
	"noetica/internal/geom"
)

// MetaCognition tracks a self-awareness scalar and a bounded recursive
// reflection depth. Depth increments are probabilistic; each increment
// schedules a tick-counted decrement instead of a wall-clock timer, so depth
// decays when not actively reinforced.
type MetaCognition struct {
	SelfAwareness   float64
	ReflectionDepth int
}

func (c *Cortex) updateMetaCognition() {
	load := c.meanActivation()
	insightDensity := float64(len(c.insights)) / float64(c.cfg.MaxInsights)
	depthRatio := float64(c.meta.ReflectionDepth) / float64(c.cfg.ReflectionMax)

	c.meta.SelfAwareness = geom.Clamp01(0.5*load + 0.3*insightDensity + 0.2*depthRatio)

	if c.meta.SelfAwareness > 0.6 &&
		c.meta.ReflectionDepth < c.cfg.ReflectionMax &&
		c.rng.Float64() < c.cfg.ReflectionProb {
		c.meta.ReflectionDepth++
		c.deferred.Schedule(c.cfg.ReflectionHold, func() {
			if c.meta.ReflectionDepth > 0 {
				c.meta.ReflectionDepth--
			}
		})
	}
}
