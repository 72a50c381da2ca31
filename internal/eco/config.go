package eco

// Config is the flat set of numeric knobs for the ecosystem. Zero values are
// replaced with defaults by normalized; validation happens in NewEcosystem.
type Config struct {
	Width  float64
	Height float64

	// Target population sizes per kind. Culling and reseeding keep each
	// population near its target.
	Producers int
	Consumers int
	Predators int
	Symbionts int

	// MinPopulation is the floor below which a kind is reseeded.
	MinPopulation int

	BaseDecay       float64
	SizeDecayFactor float64
	ProducerRegen   float64

	MaxSpeed   float64
	Damping    float64
	SteerForce float64

	SenseRadius       float64
	CompetitionRadius float64
	CooperationRadius float64
	BodyScale         float64

	CompetitionPenalty    float64
	CooperationGain       float64
	RelationshipThreshold float64

	// HuntBaseRate multiplies hunt success into a per-pair attempt
	// probability. The default 0.1 makes even a dominant predator land
	// roughly one hunt in five.
	HuntBaseRate float64

	ReproduceProb        float64
	ReproductionCost     float64
	ReproductionCooldown int
	MinReproAge          int
	OffspringEnergy      float64
	MutationRate         float64
	MutationStrength     float64
	TraitFloor           float64

	SurvivalThreshold float64
	OldAge            int
	OldAgeDeathProb   float64
	CrowdLimit        int
	CrowdDeathProb    float64

	// CullFactor times the target size is the hard cap that triggers a
	// fitness-ranked truncation.
	CullFactor float64

	Seed int64
}

func (c Config) normalized() Config {
	if c.Width <= 0 {
		c.Width = 200
	}
	if c.Height <= 0 {
		c.Height = 200
	}
	if c.Producers <= 0 {
		c.Producers = 30
	}
	if c.Consumers <= 0 {
		c.Consumers = 20
	}
	if c.Predators <= 0 {
		c.Predators = 6
	}
	if c.Symbionts <= 0 {
		c.Symbionts = 10
	}
	if c.MinPopulation <= 0 {
		c.MinPopulation = 2
	}
	if c.BaseDecay <= 0 {
		c.BaseDecay = 0.002
	}
	if c.SizeDecayFactor <= 0 {
		c.SizeDecayFactor = 0.002
	}
	if c.ProducerRegen <= 0 {
		c.ProducerRegen = 0.004
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = 1.6
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Damping = 0.92
	}
	if c.SteerForce <= 0 {
		c.SteerForce = 0.25
	}
	if c.SenseRadius <= 0 {
		c.SenseRadius = 24
	}
	if c.CompetitionRadius <= 0 {
		c.CompetitionRadius = 12
	}
	if c.CooperationRadius <= 0 {
		c.CooperationRadius = 8
	}
	if c.BodyScale <= 0 {
		c.BodyScale = 6
	}
	if c.CompetitionPenalty <= 0 {
		c.CompetitionPenalty = 0.004
	}
	if c.CooperationGain <= 0 {
		c.CooperationGain = 0.003
	}
	if c.RelationshipThreshold <= 0 {
		c.RelationshipThreshold = 0.35
	}
	if c.HuntBaseRate <= 0 {
		c.HuntBaseRate = 0.1
	}
	if c.ReproduceProb <= 0 {
		c.ReproduceProb = 0.25
	}
	if c.ReproductionCost <= 0 {
		c.ReproductionCost = 0.7
	}
	if c.ReproductionCooldown <= 0 {
		c.ReproductionCooldown = 120
	}
	if c.MinReproAge <= 0 {
		c.MinReproAge = 60
	}
	if c.OffspringEnergy <= 0 {
		c.OffspringEnergy = 0.5
	}
	if c.MutationRate <= 0 {
		c.MutationRate = 0.15
	}
	if c.MutationStrength <= 0 {
		c.MutationStrength = 0.2
	}
	if c.TraitFloor <= 0 {
		c.TraitFloor = 0.05
	}
	if c.SurvivalThreshold <= 0 {
		c.SurvivalThreshold = 0.02
	}
	if c.OldAge <= 0 {
		c.OldAge = 1200
	}
	if c.OldAgeDeathProb <= 0 {
		c.OldAgeDeathProb = 0.01
	}
	if c.CrowdLimit <= 0 {
		c.CrowdLimit = 12
	}
	if c.CrowdDeathProb <= 0 {
		c.CrowdDeathProb = 0.005
	}
	if c.CullFactor <= 1 {
		c.CullFactor = 1.5
	}
	return c
}

func (c Config) target(k Kind) int {
	switch k {
	case KindProducer:
		return c.Producers
	case KindConsumer:
		return c.Consumers
	case KindPredator:
		return c.Predators
	case KindSymbiont:
		return c.Symbionts
	default:
		return 0
	}
}
