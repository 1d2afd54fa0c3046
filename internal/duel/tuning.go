package duel

import "time"

// Default simulation constants. Increments are per tick, not per second.
const (
	defaultWidth           = 800.0
	defaultHeight          = 600.0
	defaultTerrainStep     = 20.0
	defaultTerrainFallback = 450.0 // heightAt outside the sampled span
	defaultAnchorY         = 500.0 // closing anchors of the fill silhouette

	defaultMinX         = 50.0
	defaultMaxX         = 750.0
	defaultMoveStep     = 20.0
	defaultMovesPerTurn = 4
	defaultMaxHealth    = 100
	defaultMaxPower     = 100

	defaultGravity      = 1.0
	defaultWind         = 1.0
	defaultGravityAccel = 0.3  // vy += gravity*gravityAccel each tick
	defaultWindAccel    = 0.02 // vx += wind*windAccel each tick
	defaultMaxSpeed     = 20.0 // launch speed at power 100
	defaultBarrelLength = 30.0
	defaultTurretHeight = 19.0 // barrel pivot above the ground contact point

	defaultHitHalfWidth  = 20.0
	defaultHitHalfHeight = 25.0

	defaultSplashRadius    = 40.0
	defaultSplashMaxDamage = 20
	defaultDirectHitDamage = 30

	defaultResolveDelay      = 600 * time.Millisecond
	defaultExplosionDuration = 500 * time.Millisecond
	defaultExplosionRadius   = 50.0

	// defaultTicksPerSecond matches ebiten's default TPS; only used to turn
	// millisecond delays into tick counts.
	defaultTicksPerSecond = 60
)

// Tuning carries every numeric constant the simulation reads. The zero value
// is not usable; start from DefaultTuning.
type Tuning struct {
	Width           float64
	Height          float64
	TerrainStep     float64
	TerrainFallback float64
	AnchorY         float64

	MinX         float64
	MaxX         float64
	MoveStep     float64
	MovesPerTurn int
	MaxHealth    int
	MaxPower     int

	Gravity      float64
	Wind         float64
	GravityAccel float64
	WindAccel    float64
	MaxSpeed     float64
	BarrelLength float64
	TurretHeight float64

	HitHalfWidth  float64
	HitHalfHeight float64

	SplashRadius    float64
	SplashMaxDamage int
	DirectHitDamage int

	ResolveDelay      time.Duration
	ExplosionDuration time.Duration
	ExplosionRadius   float64

	TicksPerSecond int
}

// DefaultTuning returns the stock duel constants.
func DefaultTuning() Tuning {
	return Tuning{
		Width:           defaultWidth,
		Height:          defaultHeight,
		TerrainStep:     defaultTerrainStep,
		TerrainFallback: defaultTerrainFallback,
		AnchorY:         defaultAnchorY,

		MinX:         defaultMinX,
		MaxX:         defaultMaxX,
		MoveStep:     defaultMoveStep,
		MovesPerTurn: defaultMovesPerTurn,
		MaxHealth:    defaultMaxHealth,
		MaxPower:     defaultMaxPower,

		Gravity:      defaultGravity,
		Wind:         defaultWind,
		GravityAccel: defaultGravityAccel,
		WindAccel:    defaultWindAccel,
		MaxSpeed:     defaultMaxSpeed,
		BarrelLength: defaultBarrelLength,
		TurretHeight: defaultTurretHeight,

		HitHalfWidth:  defaultHitHalfWidth,
		HitHalfHeight: defaultHitHalfHeight,

		SplashRadius:    defaultSplashRadius,
		SplashMaxDamage: defaultSplashMaxDamage,
		DirectHitDamage: defaultDirectHitDamage,

		ResolveDelay:      defaultResolveDelay,
		ExplosionDuration: defaultExplosionDuration,
		ExplosionRadius:   defaultExplosionRadius,

		TicksPerSecond: defaultTicksPerSecond,
	}
}

// ResolveDelayTicks is the turn-resolution delay expressed in ticks.
func (t Tuning) ResolveDelayTicks() int {
	return TicksFor(t.ResolveDelay, t.TicksPerSecond)
}

// ExplosionTicks is the explosion lifetime expressed in ticks.
func (t Tuning) ExplosionTicks() int {
	return TicksFor(t.ExplosionDuration, t.TicksPerSecond)
}

// TicksFor converts a duration to a whole number of ticks at tps, rounding
// up. The result is at least 1 so a scheduled callback never fires on the
// tick that scheduled it.
func TicksFor(d time.Duration, tps int) int {
	if tps <= 0 {
		tps = defaultTicksPerSecond
	}
	n := int((int64(d)*int64(tps) + int64(time.Second) - 1) / int64(time.Second))
	if n < 1 {
		return 1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
