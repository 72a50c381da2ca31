package cortex

// Config is the flat set of numeric knobs for the experience simulation.
type Config struct {
	Width  float64
	Height float64

	Threads   int
	LinkCount int

	MaxSpeed   float64
	Damping    float64
	SteerForce float64

	// MessageRate scales the activation packet sent along each thread's
	// strongest link every tick.
	MessageRate float64

	LinkDecay float64
	LinkFloor float64

	InsightProb  float64
	InsightDecay float64
	InsightFloor float64
	MaxInsights  int

	CascadeProb      float64
	CascadeGrowth    float64
	CascadeDecay     float64
	CascadeMaxRadius float64
	CascadeFloor     float64

	AttentionPool  int
	AttentionDecay float64
	AttentionBoost float64
	AttentionFloor float64
	RetargetProb   float64

	GridCols      int
	GridRows      int
	DiffuseRetain float64
	PerturbWeight float64

	ReflectionMax  int
	ReflectionProb float64
	ReflectionHold int

	Seed int64
}

func (c Config) normalized() Config {
	if c.Width <= 0 {
		c.Width = 200
	}
	if c.Height <= 0 {
		c.Height = 200
	}
	if c.Threads <= 0 {
		c.Threads = 24
	}
	if c.LinkCount <= 0 {
		c.LinkCount = 3
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = 1.2
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Damping = 0.9
	}
	if c.SteerForce <= 0 {
		c.SteerForce = 0.2
	}
	if c.MessageRate <= 0 {
		c.MessageRate = 0.1
	}
	if c.LinkDecay <= 0 || c.LinkDecay >= 1 {
		c.LinkDecay = 0.999
	}
	if c.LinkFloor <= 0 {
		c.LinkFloor = 0.05
	}
	if c.InsightProb <= 0 {
		c.InsightProb = 0.08
	}
	if c.InsightDecay <= 0 || c.InsightDecay >= 1 {
		c.InsightDecay = 0.99
	}
	if c.InsightFloor <= 0 {
		c.InsightFloor = 0.05
	}
	if c.MaxInsights <= 0 {
		c.MaxInsights = 12
	}
	if c.CascadeProb <= 0 {
		c.CascadeProb = 0.03
	}
	if c.CascadeGrowth <= 0 {
		c.CascadeGrowth = 1.5
	}
	if c.CascadeDecay <= 0 || c.CascadeDecay >= 1 {
		c.CascadeDecay = 0.95
	}
	if c.CascadeMaxRadius <= 0 {
		c.CascadeMaxRadius = 60
	}
	if c.CascadeFloor <= 0 {
		c.CascadeFloor = 0.05
	}
	if c.AttentionPool <= 0 {
		c.AttentionPool = 5
	}
	if c.AttentionDecay <= 0 || c.AttentionDecay >= 1 {
		c.AttentionDecay = 0.98
	}
	if c.AttentionBoost <= 0 {
		c.AttentionBoost = 0.3
	}
	if c.AttentionFloor <= 0 {
		c.AttentionFloor = 0.1
	}
	if c.RetargetProb <= 0 {
		c.RetargetProb = 0.05
	}
	if c.GridCols <= 0 {
		c.GridCols = 20
	}
	if c.GridRows <= 0 {
		c.GridRows = 20
	}
	if c.DiffuseRetain <= 0 || c.DiffuseRetain >= 1 {
		c.DiffuseRetain = 0.9
	}
	if c.PerturbWeight <= 0 {
		c.PerturbWeight = 0.05
	}
	if c.ReflectionMax <= 0 {
		c.ReflectionMax = 5
	}
	if c.ReflectionProb <= 0 {
		c.ReflectionProb = 0.1
	}
	if c.ReflectionHold <= 0 {
		c.ReflectionHold = 40
	}
	return c
}
