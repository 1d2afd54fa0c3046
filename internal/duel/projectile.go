package duel

import "math"

// Projectile is the single shell in flight.
type Projectile struct {
	X, Y   float64
	VX, VY float64
}

// ImpactKind is the terminal collision category of a flight.
type ImpactKind int

const (
	ImpactBounds ImpactKind = iota
	ImpactTerrain
	ImpactTank1
	ImpactTank2
)

func (k ImpactKind) String() string {
	switch k {
	case ImpactBounds:
		return "bounds"
	case ImpactTerrain:
		return "terrain"
	case ImpactTank1:
		return "tank1"
	case ImpactTank2:
		return "tank2"
	default:
		return "unknown"
	}
}

// Target returns the combatant struck directly, if any.
func (k ImpactKind) Target() (PlayerID, bool) {
	switch k {
	case ImpactTank1:
		return Player1, true
	case ImpactTank2:
		return Player2, true
	default:
		return 0, false
	}
}

// Splash reports whether the impact deals area damage.
func (k ImpactKind) Splash() bool {
	return k == ImpactBounds || k == ImpactTerrain
}

func tankImpact(id PlayerID) ImpactKind {
	if id == Player1 {
		return ImpactTank1
	}
	return ImpactTank2
}

// Impact is emitted exactly once, on the step that ends a flight.
type Impact struct {
	Kind ImpactKind
	X, Y float64
	Tick uint64
}

// Simulator integrates shells over a terrain. It holds no flight state of its
// own; the match owns the projectile.
type Simulator struct {
	terrain *Terrain
	tuning  Tuning
}

// NewSimulator returns a simulator bound to terrain.
func NewSimulator(terrain *Terrain, t Tuning) *Simulator {
	return &Simulator{terrain: terrain, tuning: t}
}

// MuzzleDirection converts an aim angle (0 = up, clockwise) into the unit
// firing vector in screen space.
func MuzzleDirection(aimAngle float64) (dx, dy float64) {
	rad := (aimAngle - 90) * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// TurretPivot is the point the barrel rotates around.
func (s *Simulator) TurretPivot(positionX float64) (x, y float64) {
	return positionX, s.terrain.HeightAt(positionX) - s.tuning.TurretHeight
}

// Launch spawns a shell at the muzzle of c.
func (s *Simulator) Launch(c Combatant) Projectile {
	dx, dy := MuzzleDirection(c.AimAngle)
	speed := s.tuning.MaxSpeed * float64(c.Power) / float64(s.tuning.MaxPower)
	px, py := s.TurretPivot(c.PositionX)
	return Projectile{
		X:  px + dx*s.tuning.BarrelLength,
		Y:  py + dy*s.tuning.BarrelLength,
		VX: dx * speed,
		VY: dy * speed,
	}
}

// Step advances p by one tick and classifies the first collision. When it
// returns true the flight is over and p must be discarded. Combatants are
// tested in the order given.
func (s *Simulator) Step(p *Projectile, combatants []Combatant) (Impact, bool) {
	t := s.tuning
	p.VX += t.Wind * t.WindAccel
	p.VY += t.Gravity * t.GravityAccel
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > t.Width || p.Y > t.Height {
		return Impact{
			Kind: ImpactBounds,
			X:    clamp(p.X, 0, t.Width),
			Y:    math.Min(p.Y, t.Height),
		}, true
	}

	if ground := s.terrain.HeightAt(p.X); p.Y >= ground {
		return Impact{Kind: ImpactTerrain, X: p.X, Y: ground}, true
	}

	for _, c := range combatants {
		tankY := s.terrain.HeightAt(c.PositionX)
		if math.Abs(p.X-c.PositionX) < t.HitHalfWidth && math.Abs(p.Y-tankY) < t.HitHalfHeight {
			return Impact{Kind: tankImpact(c.ID), X: p.X, Y: p.Y}, true
		}
	}
	return Impact{}, false
}

// Trajectory flies a shell from c to its impact without touching any match
// state. maxTicks bounds the flight; ok is false if it was reached first.
func (s *Simulator) Trajectory(c Combatant, combatants []Combatant, maxTicks int) (path []Point, impact Impact, ok bool) {
	p := s.Launch(c)
	path = append(path, Point{X: p.X, Y: p.Y})
	for i := 1; i <= maxTicks; i++ {
		imp, done := s.Step(&p, combatants)
		if done {
			imp.Tick = uint64(i)
			path = append(path, Point{X: imp.X, Y: imp.Y})
			return path, imp, true
		}
		path = append(path, Point{X: p.X, Y: p.Y})
	}
	return path, Impact{}, false
}
