package eco

import (
	"sort"

	"noetica/internal/geom"
	"noetica/internal/mind"
)

// applyLifecycle runs death checks, reproduction, fitness-ranked culling and
// minimum-population reseeding, in that order.
func (eco *Ecosystem) applyLifecycle(params mind.Params) {
	eco.applyDeaths()
	eco.applyReproduction(params)
	eco.applyCulling()
	eco.reseedMinimums()
}

// applyDeaths evaluates the three death checks in a fixed order; the first
// true check kills, with no double counting: starvation, then probabilistic
// old age, then probabilistic overcrowding.
func (eco *Ecosystem) applyDeaths() {
	// Mark first: dies consults the spatial grid, which indexes into the
	// entity slice, so the splice must wait until every check has run.
	doomed := make(map[string]struct{})
	for _, e := range eco.entities {
		if eco.dies(e) {
			doomed[e.ID] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return
	}
	survivors := eco.entities[:0]
	for _, e := range eco.entities {
		if _, dead := doomed[e.ID]; dead {
			delete(eco.byID, e.ID)
			eco.deaths++
			continue
		}
		survivors = append(survivors, e)
	}
	eco.entities = survivors
}

func (eco *Ecosystem) dies(e *Entity) bool {
	if e.Energy < eco.cfg.SurvivalThreshold {
		return true
	}
	if e.Age > eco.cfg.OldAge {
		return eco.rng.Float64() < eco.cfg.OldAgeDeathProb
	}
	if len(eco.neighbors(e, eco.cfg.SenseRadius)) > eco.cfg.CrowdLimit {
		return eco.rng.Float64() < eco.cfg.CrowdDeathProb
	}
	return false
}

// applyReproduction pairs eligible entities of one kind in collection order,
// two at a time. Each pair reproduces with a fixed per-tick probability.
func (eco *Ecosystem) applyReproduction(params mind.Params) {
	byKind := make([][]*Entity, kindCount)
	for _, e := range eco.entities {
		if eco.eligible(e) {
			byKind[e.Kind] = append(byKind[e.Kind], e)
		}
	}

	mutationRate := geom.Clamp01(eco.cfg.MutationRate * (0.5 + params.Adaptation))
	for _, eligible := range byKind {
		for i := 0; i+1 < len(eligible); i += 2 {
			if eco.rng.Float64() >= eco.cfg.ReproduceProb {
				continue
			}
			eco.reproduce(eligible[i], eligible[i+1], mutationRate)
		}
	}
}

func (eco *Ecosystem) eligible(e *Entity) bool {
	return e.Energy > 0.8 && e.Cooldown == 0 && e.Age > eco.cfg.MinReproAge
}

func (eco *Ecosystem) reproduce(p1, p2 *Entity, mutationRate float64) {
	child := eco.makeOffspring(p1, p2)
	child.Traits = eco.mutateTraits(child.Traits, mutationRate)

	p1.Energy = geom.Clamp01(p1.Energy * eco.cfg.ReproductionCost)
	p2.Energy = geom.Clamp01(p2.Energy * eco.cfg.ReproductionCost)
	p1.Cooldown = eco.cfg.ReproductionCooldown
	p2.Cooldown = eco.cfg.ReproductionCooldown
	p1.LastReproduced = eco.tick
	p2.LastReproduced = eco.tick

	eco.insert(child)
	eco.births++
}

// makeOffspring builds the pre-mutation child: genetics are the arithmetic
// mean of both parents' trait vectors.
func (eco *Ecosystem) makeOffspring(p1, p2 *Entity) *Entity {
	mid := p1.Pos.Add(geom.TorusDelta(p1.Pos, p2.Pos, eco.cfg.Width, eco.cfg.Height).Scale(0.5))
	jitter := geom.Vec2{
		X: (eco.rng.Float64() - 0.5) * 2,
		Y: (eco.rng.Float64() - 0.5) * 2,
	}
	child := eco.spawn(p1.Kind)
	child.Pos = geom.Wrap(mid.Add(jitter), eco.cfg.Width, eco.cfg.Height)
	child.Energy = eco.cfg.OffspringEnergy
	child.Age = 0
	child.LastReproduced = -1
	child.Traits = p1.Traits.mean(p2.Traits)
	return child
}

// mutateTraits perturbs each trait independently with probability rate by a
// multiplicative 1±strength factor, floored at a small positive minimum.
func (eco *Ecosystem) mutateTraits(t Traits, rate float64) Traits {
	mutate := func(v float64) float64 {
		if eco.rng.Float64() >= rate {
			return v
		}
		factor := 1 + (eco.rng.Float64()*2-1)*eco.cfg.MutationStrength
		v *= factor
		if v < eco.cfg.TraitFloor {
			v = eco.cfg.TraitFloor
		}
		return geom.Clamp01(v)
	}
	t.Speed = mutate(t.Speed)
	t.Size = mutate(t.Size)
	t.Aggression = mutate(t.Aggression)
	t.Cooperation = mutate(t.Cooperation)
	return t
}

// applyCulling truncates any population above CullFactor times its target,
// keeping the top performers by fitness. The lowest-fitness individuals are
// dropped, never randomly sampled.
func (eco *Ecosystem) applyCulling() {
	for k := Kind(0); k < kindCount; k++ {
		limit := int(eco.cfg.CullFactor * float64(eco.cfg.target(k)))
		members := make([]*Entity, 0)
		for _, e := range eco.entities {
			if e.Kind == k {
				members = append(members, e)
			}
		}
		if len(members) <= limit {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return eco.fitness(members[i]) > eco.fitness(members[j])
		})
		doomed := make(map[string]struct{}, len(members)-limit)
		for _, e := range members[limit:] {
			doomed[e.ID] = struct{}{}
		}
		survivors := eco.entities[:0]
		for _, e := range eco.entities {
			if _, dead := doomed[e.ID]; dead {
				delete(eco.byID, e.ID)
				eco.deaths++
				continue
			}
			survivors = append(survivors, e)
		}
		eco.entities = survivors
	}
}

// fitness ranks an entity for culling: a weighted sum of energy, maturity,
// reproduction recency, social connectedness and two genetic traits.
func (eco *Ecosystem) fitness(e *Entity) float64 {
	maturity := float64(e.Age) / float64(eco.cfg.OldAge)
	if maturity > 1 {
		maturity = 1
	}
	recency := 0.0
	if e.LastReproduced >= 0 {
		since := float64(eco.tick - e.LastReproduced)
		recency = 1 / (1 + since/float64(eco.cfg.ReproductionCooldown))
	}
	social := float64(len(e.Relationships)) / 8
	if social > 1 {
		social = 1
	}
	return 0.3*e.Energy +
		0.2*maturity +
		0.15*recency +
		0.15*social +
		0.1*e.Traits.Speed +
		0.1*e.Traits.Size
}

// reseedMinimums keeps every kind above its population floor so a collapsed
// niche recovers instead of staying extinct.
func (eco *Ecosystem) reseedMinimums() {
	counts := make([]int, kindCount)
	for _, e := range eco.entities {
		counts[e.Kind]++
	}
	for k := Kind(0); k < kindCount; k++ {
		for counts[k] < eco.cfg.MinPopulation {
			eco.insert(eco.spawn(k))
			eco.births++
			counts[k]++
		}
	}
}
