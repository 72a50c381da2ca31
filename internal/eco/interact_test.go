package eco

import (
	"math"
	"testing"

	"noetica/internal/geom"
)

func TestCompetitionEffectAtDistanceZeroIsFullMagnitude(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	a := eco.spawn(KindConsumer)
	b := eco.spawn(KindConsumer)
	a.Energy, b.Energy = 0.5, 0.5
	a.Traits.Aggression, b.Traits.Aggression = 0.8, 0.4

	eco.competePair(a, b, 0)

	want := cfg.CompetitionPenalty * 0.6 // blended aggression, falloff 1
	if math.Abs((0.5-a.Energy)-want) > 1e-12 {
		t.Fatalf("expected penalty %g, got %g", want, 0.5-a.Energy)
	}
	if a.Energy != b.Energy {
		t.Fatal("competition penalty must be symmetric")
	}
}

func TestInteractionEffectIsZeroAtBoundary(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	a := eco.spawn(KindConsumer)
	b := eco.spawn(KindConsumer)
	a.Energy, b.Energy = 0.5, 0.5

	eco.competePair(a, b, cfg.CompetitionRadius)
	if a.Energy != 0.5 || b.Energy != 0.5 {
		t.Fatalf("effect at the radius boundary must be zero, got %f %f", a.Energy, b.Energy)
	}

	c := eco.spawn(KindProducer)
	c.Energy = 0.5
	eco.cooperatePair(a, c, cfg.CooperationRadius)
	if a.Energy != 0.5 || c.Energy != 0.5 {
		t.Fatal("cooperation at the boundary must have no effect")
	}
}

func TestFalloffIsLinear(t *testing.T) {
	if f := falloff(5, 10); math.Abs(f-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %f", f)
	}
	if f := falloff(10, 10); f != 0 {
		t.Fatalf("expected 0 at boundary, got %f", f)
	}
	if f := falloff(0, 10); f != 1 {
		t.Fatalf("expected 1 at distance zero, got %f", f)
	}
}

func TestCooperationRecordsRelationshipAboveThreshold(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	a := eco.spawn(KindProducer)
	b := eco.spawn(KindSymbiont)
	a.Traits.Cooperation, b.Traits.Cooperation = 0.9, 0.9

	eco.cooperatePair(a, b, 0)
	if _, ok := a.Relationships[b.ID]; !ok {
		t.Fatal("expected relationship edge on a")
	}
	if _, ok := b.Relationships[a.ID]; !ok {
		t.Fatal("expected relationship edge on b")
	}

	// Weak cooperators interact without bonding.
	c := eco.spawn(KindProducer)
	d := eco.spawn(KindConsumer)
	c.Traits.Cooperation, d.Traits.Cooperation = 0.1, 0.1
	eco.cooperatePair(c, d, 0)
	if len(c.Relationships) != 0 {
		t.Fatal("expected no relationship below the strength threshold")
	}
}

func TestHuntTransfersThirtyPercent(t *testing.T) {
	cfg := Config{Seed: 1, HuntBaseRate: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	pred := eco.spawn(KindPredator)
	prey := eco.spawn(KindConsumer)
	pred.Traits.Speed = 2
	prey.Traits.Speed = 1
	pred.Energy = 0.2
	prey.Energy = 1.0

	// HuntBaseRate 1 makes the success probability
	// clamp(2/(1+0.1)) -> 1, so the single draw always lands.
	eco.huntPair(pred, prey, 0)

	if math.Abs(prey.Energy-0.3) > 1e-12 {
		t.Fatalf("expected prey at 0.3, got %f", prey.Energy)
	}
	if math.Abs(pred.Energy-0.5) > 1e-12 {
		t.Fatalf("expected predator at 0.2+0.3, got %f", pred.Energy)
	}
	if len(eco.associations) != 1 || eco.associations[0].Kind != AssociationPredation {
		t.Fatalf("expected one predation association, got %v", eco.associations)
	}
}

func TestHuntOutOfRangeDoesNothing(t *testing.T) {
	cfg := Config{Seed: 1, HuntBaseRate: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	pred := eco.spawn(KindPredator)
	prey := eco.spawn(KindConsumer)
	prey.Energy = 1.0
	before := pred.Energy

	eco.huntPair(pred, prey, pred.bodySize(cfg.BodyScale)*3+1)
	if prey.Energy != 1.0 || pred.Energy != before {
		t.Fatal("hunt beyond range must have no effect")
	}
}

func TestAssociationsAreRecomputedEachTick(t *testing.T) {
	cfg := Config{Seed: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	a := eco.spawn(KindProducer)
	b := eco.spawn(KindConsumer)
	a.Traits.Cooperation, b.Traits.Cooperation = 0.9, 0.9
	a.Pos = geom.Vec2{X: 50, Y: 50}
	b.Pos = geom.Vec2{X: 52, Y: 50}
	eco.insert(a)
	eco.insert(b)

	eco.rebuildGrid()
	eco.applyInteractions()
	if len(eco.associations) == 0 {
		t.Fatal("expected an association for the close pair")
	}

	// Separate the pair; the stale association must not carry forward.
	b.Pos = geom.Vec2{X: 150, Y: 150}
	eco.rebuildGrid()
	eco.applyInteractions()
	if len(eco.associations) != 0 {
		t.Fatalf("stale associations persisted: %v", eco.associations)
	}
}

func TestSmallFieldPairInteractsOncePerTick(t *testing.T) {
	// On a 40x40 field the spatial query window wraps onto itself, which
	// used to hand applyInteractions the same neighbor twice and double
	// every pairwise effect. One close pair must produce exactly one
	// competition association.
	cfg := Config{Seed: 1, Width: 40, Height: 40}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	a := eco.spawn(KindConsumer)
	b := eco.spawn(KindConsumer)
	a.Pos = geom.Vec2{X: 14, Y: 10}
	b.Pos = geom.Vec2{X: 25, Y: 10}
	eco.insert(a)
	eco.insert(b)

	eco.rebuildGrid()
	eco.applyInteractions()

	count := 0
	for _, assoc := range eco.associations {
		if assoc.Kind == AssociationCompetition {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one competition association for one pair, got %d: %v", count, eco.associations)
	}
}

func TestAllThreeChecksCanFireForOnePair(t *testing.T) {
	// A predator/consumer pair at close range cooperates (different kinds)
	// and hunts in the same tick; competition stays out (kinds differ).
	cfg := Config{Seed: 1, HuntBaseRate: 1}.normalized()
	eco := emptyTestEcosystem(t, cfg)
	pred := eco.spawn(KindPredator)
	prey := eco.spawn(KindConsumer)
	pred.Traits.Speed = 2
	prey.Traits.Speed = 0.5
	pred.Pos = geom.Vec2{X: 50, Y: 50}
	prey.Pos = geom.Vec2{X: 51, Y: 50}
	eco.insert(pred)
	eco.insert(prey)

	eco.rebuildGrid()
	eco.applyInteractions()

	kinds := map[AssociationKind]bool{}
	for _, assoc := range eco.associations {
		kinds[assoc.Kind] = true
	}
	if !kinds[AssociationCooperation] || !kinds[AssociationPredation] {
		t.Fatalf("expected cooperation and predation for the same pair, got %v", eco.associations)
	}
}
