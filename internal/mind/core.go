package mind

import (
	"math"
	"math/rand"

	"noetica/internal/geom"
)

const (
	// ParamMin and ParamMax bound every consciousness parameter.
	ParamMin = 0.1
	ParamMax = 0.9

	ampMin = 0.1
	ampMax = 0.4

	defaultPhasePeriod = 1500
)

// Params are the four global scalars that drive probabilities and thresholds
// across the simulations.
type Params struct {
	Complexity float64
	Emergence  float64
	Coherence  float64
	Adaptation float64
}

func (p Params) values() [4]float64 {
	return [4]float64{p.Complexity, p.Emergence, p.Coherence, p.Adaptation}
}

// Snapshot is an immutable view of the core at one tick.
type Snapshot struct {
	Params     Params
	Tick       int
	Cycle      int
	PhaseShift float64
}

type attractor struct {
	freq      float64
	amp       float64
	harmonics int
}

type Config struct {
	// PhasePeriod is the number of ticks between phase transitions.
	PhasePeriod int
	Seed        int64
}

func (c Config) normalized() Config {
	if c.PhasePeriod <= 0 {
		c.PhasePeriod = defaultPhasePeriod
	}
	return c
}

// Core evolves the consciousness parameters as superposed sinusoidal
// attractors. It is a pure numeric state machine with no failure modes.
type Core struct {
	cfg Config
	rng *rand.Rand

	tick       int
	cycle      int
	phaseShift float64
	attractors [4]attractor
	params     Params
}

func NewCore(cfg Config) *Core {
	c := &Core{cfg: cfg.normalized()}
	c.reset()
	return c
}

// reset restores the seeded initial state in place, so references held by
// sibling simulations stay valid across a reinitialization.
func (c *Core) reset() {
	c.rng = rand.New(rand.NewSource(c.cfg.Seed))
	c.tick = 0
	c.cycle = 0
	c.phaseShift = 0
	c.attractors = [4]attractor{
		{freq: 0.005, amp: 0.3, harmonics: 3},
		{freq: 0.007, amp: 0.25, harmonics: 2},
		{freq: 0.003, amp: 0.35, harmonics: 3},
		{freq: 0.011, amp: 0.2, harmonics: 2},
	}
	c.recompute()
}

// Evolve advances one tick and recomputes all four parameters. Every
// PhasePeriod ticks it triggers a phase transition: the cycle counter
// increments, the phase shift advances by pi/3, and each attractor's
// frequency and amplitude are randomly perturbed.
func (c *Core) Evolve() {
	c.tick++
	if c.tick%c.cfg.PhasePeriod == 0 {
		c.phaseTransition()
	}
	c.recompute()
}

func (c *Core) phaseTransition() {
	c.cycle++
	c.phaseShift += math.Pi / 3
	for i := range c.attractors {
		c.attractors[i].freq += (c.rng.Float64() - 0.5) * 0.1
		c.attractors[i].amp = geom.Clamp(c.attractors[i].amp+(c.rng.Float64()-0.5)*0.05, ampMin, ampMax)
	}
}

func (c *Core) recompute() {
	t := float64(c.tick)
	var out [4]float64
	for i, a := range c.attractors {
		v := 0.5 + math.Sin(t*a.freq)*a.amp
		for h := 1; h <= a.harmonics; h++ {
			v += math.Sin(t*a.freq*float64(h+1)) * a.amp / float64(h+1)
		}
		v += math.Cos(t*a.freq+c.phaseShift) * 0.05
		out[i] = geom.Clamp(v, ParamMin, ParamMax)
	}
	c.params = Params{
		Complexity: out[0],
		Emergence:  out[1],
		Coherence:  out[2],
		Adaptation: out[3],
	}
}

func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		Params:     c.params,
		Tick:       c.tick,
		Cycle:      c.cycle,
		PhaseShift: c.phaseShift,
	}
}

// Entropy is the population standard deviation of the four parameters.
func (c *Core) Entropy() float64 {
	vals := c.params.values()
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}

// Coherence blends low entropy with a pairwise-product synergy term.
func (c *Core) Coherence() float64 {
	vals := c.params.values()
	synergy := 0.0
	pairs := 0
	for i := 0; i < len(vals); i++ {
		for j := i + 1; j < len(vals); j++ {
			synergy += vals[i] * vals[j]
			pairs++
		}
	}
	synergy /= float64(pairs)
	return geom.Clamp01((1-c.Entropy())*0.7 + synergy*0.3)
}
