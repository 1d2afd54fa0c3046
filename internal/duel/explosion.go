package duel

import "time"

// Explosion is the visual record of an impact. Damage has already been
// applied by the time one exists; the match drops it after Duration.
type Explosion struct {
	CenterX, CenterY float64
	Kind             ImpactKind
	StartTick        uint64
	Duration         time.Duration
	MaxRadius        float64
}

// Progress is the fraction of the lifetime elapsed at tick, in [0,1].
func (e Explosion) Progress(tick uint64, tps int) float64 {
	total := TicksFor(e.Duration, tps)
	if tick <= e.StartTick {
		return 0
	}
	p := float64(tick-e.StartTick) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// Radius is the blast radius drawn at tick.
func (e Explosion) Radius(tick uint64, tps int) float64 {
	return e.MaxRadius * e.Progress(tick, tps)
}
