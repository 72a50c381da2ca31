package cortex

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"noetica/internal/geom"
	"noetica/internal/mind"
	"noetica/internal/sim"
)

// Cortex is the composite AI-experience simulation: parallel processing
// threads, an attention pool, an uncertainty field and a meta-cognition
// layer, all driven by the shared consciousness core.
type Cortex struct {
	cfg  Config
	core *mind.Core
	rng  *rand.Rand

	threads []*Thread
	byID    map[string]*Thread

	insights  []*Insight
	cascades  []*Cascade
	attention []*AttentionNode
	field     *Field
	meta      MetaCognition
	deferred  sim.DeferredQueue

	tick            int
	insightsEmitted int
}

func NewCortex(cfg Config, core *mind.Core) (*Cortex, error) {
	if core == nil {
		return nil, fmt.Errorf("consciousness core is required")
	}
	cfg = cfg.normalized()
	return &Cortex{
		cfg:  cfg,
		core: core,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (c *Cortex) Name() string { return "cortex" }

func (c *Cortex) Initialize() {
	c.rng = rand.New(rand.NewSource(c.cfg.Seed))
	c.threads = c.threads[:0]
	c.byID = make(map[string]*Thread)
	c.insights = nil
	c.cascades = nil
	c.attention = nil
	c.meta = MetaCognition{}
	c.deferred = sim.DeferredQueue{}
	c.tick = 0
	c.insightsEmitted = 0
	c.field = NewField(c.cfg.GridCols, c.cfg.GridRows, c.cfg.DiffuseRetain, 0.5)

	for i := 0; i < c.cfg.Threads; i++ {
		t := &Thread{
			ID:   uuid.NewString(),
			Kind: ThreadKind(i % int(threadKindCount)),
			Pos: geom.Vec2{
				X: c.rng.Float64() * c.cfg.Width,
				Y: c.rng.Float64() * c.cfg.Height,
			},
			Activation: c.rng.Float64() * 0.5,
			Confidence: 0.3 + c.rng.Float64()*0.4,
			Links:      make(map[string]*Link),
		}
		t.Uncertainty = 1 - t.Confidence
		c.threads = append(c.threads, t)
		c.byID[t.ID] = t
	}
	c.wireLinks()
}

// wireLinks gives every thread LinkCount random outgoing links. A small
// pool cannot supply LinkCount distinct peers, so the fan-out is capped at
// the peer count.
func (c *Cortex) wireLinks() {
	if len(c.threads) < 2 {
		return
	}
	want := c.cfg.LinkCount
	if max := len(c.threads) - 1; want > max {
		want = max
	}
	for _, t := range c.threads {
		for len(t.Links) < want {
			peer := c.threads[c.rng.Intn(len(c.threads))]
			if peer == t {
				continue
			}
			if _, exists := t.Links[peer.ID]; exists {
				continue
			}
			t.Links[peer.ID] = &Link{Weight: 0.3 + c.rng.Float64()*0.5}
		}
	}
}

func (c *Cortex) Reset() { c.Initialize() }

// Update advances one tick: message passing, thread updates, emergent signal
// layers, field diffusion and meta-cognition, then the deferred queue.
func (c *Cortex) Update() {
	if c.byID == nil {
		c.Initialize()
	}
	c.tick++
	params := c.core.Snapshot().Params

	c.passMessages()
	for _, t := range c.threads {
		c.updateThread(t)
	}
	c.updateInsights(params)
	c.updateCascades(params)
	c.updateAttention()
	c.field.Diffuse()
	c.perturbField()
	c.updateMetaCognition()
	c.deferred.Advance()
}

func (c *Cortex) Tick() int { return c.tick }

func (c *Cortex) Threads() []*Thread { return c.threads }

func (c *Cortex) Insights() []*Insight { return c.insights }

func (c *Cortex) Attention() []*AttentionNode { return c.attention }

func (c *Cortex) FieldGrid() *Field { return c.field }

func (c *Cortex) Meta() MetaCognition { return c.meta }

func (c *Cortex) State() map[string]float64 {
	totalConfidence := 0.0
	totalUncertainty := 0.0
	links := 0
	for _, t := range c.threads {
		totalConfidence += t.Confidence
		totalUncertainty += t.Uncertainty
		links += len(t.Links)
	}
	state := map[string]float64{
		"tick":             float64(c.tick),
		"threads":          float64(len(c.threads)),
		"links":            float64(links),
		"insights":         float64(len(c.insights)),
		"insights_emitted": float64(c.insightsEmitted),
		"cascades":         float64(len(c.cascades)),
		"attention_nodes":  float64(len(c.attention)),
		"self_awareness":   c.meta.SelfAwareness,
		"reflection_depth": float64(c.meta.ReflectionDepth),
		"mean_activation":  c.meanActivation(),
	}
	if len(c.threads) > 0 {
		state["mean_confidence"] = totalConfidence / float64(len(c.threads))
		state["mean_uncertainty"] = totalUncertainty / float64(len(c.threads))
	}
	return state
}

var threadColors = map[ThreadKind]string{
	ThreadPatternRecognition:  "#e0b345",
	ThreadSemanticAnalysis:    "#45a0e0",
	ThreadMemoryConsolidation: "#9a6fd0",
	ThreadCreativeSynthesis:   "#e06a8a",
}

func (c *Cortex) Render(rc sim.RenderContext) {
	for row := 0; row < c.field.Rows(); row++ {
		for col := 0; col < c.field.Cols(); col++ {
			rc.FillCell(col, row, c.field.At(col, row))
		}
	}
	for _, t := range c.threads {
		for id, link := range t.Links {
			if peer, ok := c.byID[id]; ok {
				rc.DrawLine(t.Pos, peer.Pos, link.Weight, "#555555")
			}
		}
	}
	for _, t := range c.threads {
		rc.DrawCircle(t.Pos, 2+t.Activation*3, threadColors[t.Kind])
	}
	for _, in := range c.insights {
		rc.DrawCircle(in.Pos, 4*in.Intensity, "#ffffff")
	}
	for _, ca := range c.cascades {
		rc.DrawCircle(ca.Pos, ca.Radius, "#7fd4ff")
	}
	for _, node := range c.attention {
		rc.DrawCircle(node.Pos, 6*node.Strength, "#ffd27f")
	}
}
