package eco

import (
	"noetica/internal/geom"
)

// AssociationKind classifies a per-tick pairwise interaction.
type AssociationKind int

const (
	AssociationCompetition AssociationKind = iota
	AssociationCooperation
	AssociationPredation
)

func (k AssociationKind) String() string {
	switch k {
	case AssociationCompetition:
		return "competition"
	case AssociationCooperation:
		return "cooperation"
	case AssociationPredation:
		return "predation"
	default:
		return "unknown"
	}
}

// Association is an ephemeral record of one interaction between two
// entities. The set is recomputed from scratch every tick; nothing here
// carries over.
type Association struct {
	A        string
	B        string
	Kind     AssociationKind
	Strength float64
}

// applyInteractions evaluates every unordered pair within range. The three
// checks (competition, cooperation, predation) are independent; all of them
// can fire for the same pair in the same tick. Every effect decays linearly
// with distance: zero exactly at the class radius, full magnitude at
// distance zero.
func (eco *Ecosystem) applyInteractions() {
	eco.associations = eco.associations[:0]

	maxRange := eco.cfg.CompetitionRadius
	if eco.cfg.CooperationRadius > maxRange {
		maxRange = eco.cfg.CooperationRadius
	}
	if huntMax := eco.cfg.BodyScale * 3; huntMax > maxRange {
		maxRange = huntMax
	}

	for i, a := range eco.entities {
		candidates := eco.grid.Query(a.Pos, maxRange, nil)
		for _, j := range candidates {
			if j <= i {
				continue
			}
			b := eco.entities[j]
			d := geom.TorusDist(a.Pos, b.Pos, eco.cfg.Width, eco.cfg.Height)
			if d > maxRange {
				continue
			}
			eco.competePair(a, b, d)
			eco.cooperatePair(a, b, d)
			eco.huntPair(a, b, d)
			eco.huntPair(b, a, d)
		}
	}
}

func falloff(d, maxDist float64) float64 {
	if maxDist <= 0 || d >= maxDist {
		return 0
	}
	return 1 - d/maxDist
}

// competePair: identical kinds contest the same niche. Symmetric energy
// penalty proportional to blended aggression.
func (eco *Ecosystem) competePair(a, b *Entity, d float64) {
	if a.Kind != b.Kind || d > eco.cfg.CompetitionRadius {
		return
	}
	scale := falloff(d, eco.cfg.CompetitionRadius)
	if scale == 0 {
		return
	}
	aggression := (a.Traits.Aggression + b.Traits.Aggression) / 2
	penalty := eco.cfg.CompetitionPenalty * aggression * scale
	a.Energy = geom.Clamp01(a.Energy - penalty)
	b.Energy = geom.Clamp01(b.Energy - penalty)
	eco.associations = append(eco.associations, Association{
		A: a.ID, B: b.ID, Kind: AssociationCompetition, Strength: aggression * scale,
	})
}

// cooperatePair: differing kinds inside the tighter cooperation radius gain
// mutual energy; above the strength threshold a persistent relationship edge
// is recorded on both entities.
func (eco *Ecosystem) cooperatePair(a, b *Entity, d float64) {
	if a.Kind == b.Kind || d > eco.cfg.CooperationRadius {
		return
	}
	scale := falloff(d, eco.cfg.CooperationRadius)
	if scale == 0 {
		return
	}
	cooperation := (a.Traits.Cooperation + b.Traits.Cooperation) / 2
	gain := eco.cfg.CooperationGain * cooperation * scale
	a.Energy = geom.Clamp01(a.Energy + gain)
	b.Energy = geom.Clamp01(b.Energy + gain)

	strength := cooperation * scale
	if strength > eco.cfg.RelationshipThreshold {
		eco.bond(a, b, strength)
		eco.bond(b, a, strength)
	}
	eco.associations = append(eco.associations, Association{
		A: a.ID, B: b.ID, Kind: AssociationCooperation, Strength: strength,
	})
}

func (eco *Ecosystem) bond(from, to *Entity, strength float64) {
	rel, ok := from.Relationships[to.ID]
	if !ok {
		from.Relationships[to.ID] = &Relationship{Strength: geom.Clamp01(strength)}
		return
	}
	if strength > rel.Strength {
		rel.Strength = geom.Clamp01(strength)
	}
}

// huntPair: one hunting attempt per qualifying pair per tick, never
// guaranteed. Hunt success favors the faster party; on success the hunter
// takes 30% of the prey's energy and the prey keeps 30%, both scaled by the
// distance falloff.
func (eco *Ecosystem) huntPair(hunter, prey *Entity, d float64) {
	if !hunts(hunter.Kind, prey.Kind) {
		return
	}
	huntRange := hunter.bodySize(eco.cfg.BodyScale) * 3
	if d > huntRange {
		return
	}
	scale := falloff(d, huntRange)
	if scale == 0 {
		return
	}
	success := hunter.Traits.Speed / (prey.Traits.Speed + 0.1)
	if eco.rng.Float64() >= geom.Clamp01(success*eco.cfg.HuntBaseRate) {
		return
	}
	before := prey.Energy
	hunter.Energy = geom.Clamp01(hunter.Energy + 0.3*before*scale)
	prey.Energy = geom.Clamp01(before - 0.7*before*scale)
	eco.associations = append(eco.associations, Association{
		A: hunter.ID, B: prey.ID, Kind: AssociationPredation, Strength: scale,
	})
}
