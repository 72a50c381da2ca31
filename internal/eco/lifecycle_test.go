package eco

import (
	"math"
	"testing"

	"noetica/internal/mind"
)

func TestReproductionScenario(t *testing.T) {
	cfg := Config{Seed: 1, ReproduceProb: 1.0}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	p1 := eco.spawn(KindConsumer)
	p2 := eco.spawn(KindConsumer)
	for _, p := range [...]*Entity{p1, p2} {
		p.Energy = 1.0
		p.Cooldown = 0
		p.Age = 100
		eco.insert(p)
	}

	eco.applyReproduction(mind.Params{Complexity: 0.5, Emergence: 0.5, Coherence: 0.5, Adaptation: 0.5})

	if got := len(eco.Entities()); got != 3 {
		t.Fatalf("expected population 3, got %d", got)
	}
	if math.Abs(p1.Energy-0.7) > 1e-12 || math.Abs(p2.Energy-0.7) > 1e-12 {
		t.Fatalf("expected both parents at 0.7, got %f %f", p1.Energy, p2.Energy)
	}
	child := eco.Entities()[2]
	if child.Age != 0 {
		t.Fatalf("expected newborn age 0, got %d", child.Age)
	}
	if child.Kind != KindConsumer {
		t.Fatalf("expected offspring kind consumer, got %s", child.Kind)
	}
	if p1.Cooldown != cfg.ReproductionCooldown || p2.Cooldown != cfg.ReproductionCooldown {
		t.Fatal("expected parent cooldowns reset")
	}
}

func TestOffspringTraitsAreParentMeanBeforeMutation(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	p1 := eco.spawn(KindSymbiont)
	p2 := eco.spawn(KindSymbiont)
	p1.Traits = Traits{Speed: 0.8, Size: 0.2, Aggression: 0.6, Cooperation: 0.4}
	p2.Traits = Traits{Speed: 0.4, Size: 0.6, Aggression: 0.2, Cooperation: 0.8}

	child := eco.makeOffspring(p1, p2)
	want := Traits{Speed: 0.6, Size: 0.4, Aggression: 0.4, Cooperation: 0.6}
	if child.Traits != want {
		t.Fatalf("expected component-wise mean %+v, got %+v", want, child.Traits)
	}
}

func TestMutationFloorsTraitsAboveZero(t *testing.T) {
	cfg := Config{Seed: 9, MutationStrength: 0.99, TraitFloor: 0.05}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	start := Traits{Speed: 0.06, Size: 0.06, Aggression: 0.06, Cooperation: 0.06}
	for i := 0; i < 200; i++ {
		mutated := eco.mutateTraits(start, 1.0)
		for _, v := range [...]float64{mutated.Speed, mutated.Size, mutated.Aggression, mutated.Cooperation} {
			if v < cfg.TraitFloor {
				t.Fatalf("trait %f fell below floor %f", v, cfg.TraitFloor)
			}
		}
	}
}

func TestMutationRateZeroLeavesTraitsUntouched(t *testing.T) {
	eco := emptyTestEcosystem(t, Config{Seed: 2})
	start := Traits{Speed: 0.5, Size: 0.5, Aggression: 0.5, Cooperation: 0.5}
	if got := eco.mutateTraits(start, 0); got != start {
		t.Fatalf("rate 0 must not mutate, got %+v", got)
	}
}

func TestIneligibleParentsDoNotReproduce(t *testing.T) {
	cfg := Config{Seed: 1, ReproduceProb: 1.0}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	young := eco.spawn(KindConsumer)
	young.Energy = 1.0
	young.Age = 1 // below MinReproAge
	tired := eco.spawn(KindConsumer)
	tired.Energy = 1.0
	tired.Age = 100
	tired.Cooldown = 10
	eco.insert(young)
	eco.insert(tired)

	eco.applyReproduction(mind.Params{Adaptation: 0.5})
	if got := len(eco.Entities()); got != 2 {
		t.Fatalf("expected no reproduction, got population %d", got)
	}
}

func TestStarvationKillsFirst(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	starving := eco.spawn(KindConsumer)
	starving.Energy = cfg.SurvivalThreshold / 2
	healthy := eco.spawn(KindConsumer)
	healthy.Energy = 0.9
	eco.insert(starving)
	eco.insert(healthy)
	eco.rebuildGrid()

	eco.applyDeaths()
	if len(eco.Entities()) != 1 || eco.Entities()[0] != healthy {
		t.Fatalf("expected only the healthy entity to survive, got %d", len(eco.Entities()))
	}
	if eco.deaths != 1 {
		t.Fatalf("expected one recorded death, got %d", eco.deaths)
	}
}

func TestCullingKeepsTopFitness(t *testing.T) {
	cfg := Config{Seed: 1, Predators: 2, CullFactor: 1.5}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	// Cap is 3; seed 5 predators with strictly increasing energy so
	// fitness ordering is unambiguous.
	var all []*Entity
	for i := 0; i < 5; i++ {
		p := eco.spawn(KindPredator)
		p.Energy = 0.1 + 0.2*float64(i)
		p.Age = 100
		p.Traits = Traits{Speed: 0.5, Size: 0.5, Aggression: 0.5, Cooperation: 0.5}
		eco.insert(p)
		all = append(all, p)
	}

	eco.applyCulling()

	if got := len(eco.Entities()); got != 3 {
		t.Fatalf("expected truncation to cap 3, got %d", got)
	}
	for _, weak := range all[:2] {
		if _, alive := eco.byID[weak.ID]; alive {
			t.Fatalf("expected lowest-fitness entity %s culled", weak.ID)
		}
	}
}

func TestReseedKeepsMinimumPopulation(t *testing.T) {
	cfg := Config{Seed: 1, MinPopulation: 2}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	eco.reseedMinimums()
	counts := map[Kind]int{}
	for _, e := range eco.Entities() {
		counts[e.Kind]++
	}
	for k := Kind(0); k < kindCount; k++ {
		if counts[k] != 2 {
			t.Fatalf("expected %s reseeded to 2, got %d", k, counts[k])
		}
	}
}

func TestFitnessRewardsEnergyAndConnections(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	strong := eco.spawn(KindConsumer)
	strong.Energy = 0.9
	strong.Relationships["x"] = &Relationship{Strength: 0.8}
	strong.Relationships["y"] = &Relationship{Strength: 0.7}
	weak := eco.spawn(KindConsumer)
	weak.Energy = 0.1
	strong.Traits = weak.Traits
	strong.Age = weak.Age

	if eco.fitness(strong) <= eco.fitness(weak) {
		t.Fatal("expected higher fitness for energetic, connected entity")
	}
}
