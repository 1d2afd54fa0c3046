package duel

import "math"

// Damage is one health change produced by an impact.
type Damage struct {
	Player      PlayerID
	Amount      int
	Distance    float64 // from the impact centre; 0 for a direct hit
	HealthAfter int
}

// SplashFalloff is the unrounded splash damage at distance d from the
// impact: maxDamage at the centre, falling linearly to zero at radius.
func SplashFalloff(d, radius float64, maxDamage int) float64 {
	if radius <= 0 || d >= radius {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return float64(maxDamage) * (1 - d/radius)
}

// SplashDamage is SplashFalloff rounded to whole health points.
func SplashDamage(d, radius float64, maxDamage int) int {
	return int(math.Round(SplashFalloff(d, radius, maxDamage)))
}

// Resolver turns impacts into health changes.
type Resolver struct {
	terrain *Terrain
	tuning  Tuning
}

// NewResolver returns a resolver that measures splash distance to each
// tank's ground contact point on terrain.
func NewResolver(terrain *Terrain, t Tuning) *Resolver {
	return &Resolver{terrain: terrain, tuning: t}
}

// Resolve applies the impact to combatants in place and reports every
// non-zero change. A splash can hurt both tanks, shooter included; a direct
// hit touches only the named tank.
func (r *Resolver) Resolve(imp Impact, combatants []*Combatant) []Damage {
	var out []Damage
	if target, ok := imp.Kind.Target(); ok {
		for _, c := range combatants {
			if c.ID != target {
				continue
			}
			after := c.applyDamage(r.tuning.DirectHitDamage)
			out = append(out, Damage{Player: c.ID, Amount: r.tuning.DirectHitDamage, HealthAfter: after})
		}
		return out
	}

	for _, c := range combatants {
		d := math.Hypot(imp.X-c.PositionX, imp.Y-r.terrain.HeightAt(c.PositionX))
		if d >= r.tuning.SplashRadius {
			continue
		}
		amount := SplashDamage(d, r.tuning.SplashRadius, r.tuning.SplashMaxDamage)
		if amount <= 0 {
			continue
		}
		after := c.applyDamage(amount)
		out = append(out, Damage{Player: c.ID, Amount: amount, Distance: d, HealthAfter: after})
	}
	return out
}
