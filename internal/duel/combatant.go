package duel

import (
	"fmt"
	"math"
	"strings"
)

// PlayerID identifies one of the two combatants.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const playerCount = 2

// Players returns both ids in turn order.
func Players() []PlayerID {
	return []PlayerID{Player1, Player2}
}

// Valid reports whether id names a combatant.
func (id PlayerID) Valid() bool {
	return id == Player1 || id == Player2
}

// Other returns the opponent of id.
func (id PlayerID) Other() PlayerID {
	if id == Player1 {
		return Player2
	}
	return Player1
}

func (id PlayerID) String() string {
	switch id {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "--"
	}
}

func (id PlayerID) index() int {
	return int(id) - 1
}

// Weapon is a selectable shell label. It has no effect on flight or damage.
type Weapon int

const (
	WeaponStandard Weapon = iota
	WeaponHeavy
	WeaponCluster
	weaponCount
)

// Weapons lists the selectable weapons in menu order.
func Weapons() []Weapon {
	return []Weapon{WeaponStandard, WeaponHeavy, WeaponCluster}
}

func (w Weapon) String() string {
	switch w {
	case WeaponStandard:
		return "Standard"
	case WeaponHeavy:
		return "Heavy"
	case WeaponCluster:
		return "Cluster"
	default:
		return "unknown"
	}
}

// Valid reports whether w is one of the enumerated weapons.
func (w Weapon) Valid() bool {
	return w >= WeaponStandard && w < weaponCount
}

// ParseWeapon maps a case-insensitive name to a Weapon.
func ParseWeapon(s string) (Weapon, error) {
	for _, w := range Weapons() {
		if strings.EqualFold(s, w.String()) {
			return w, nil
		}
	}
	return WeaponStandard, fmt.Errorf("unknown weapon %q", s)
}

// Direction is a lateral move.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Combatant is one player's tank. Values returned by Match queries are
// copies, so a reader always sees a consistent record.
type Combatant struct {
	ID             PlayerID
	PositionX      float64
	Health         int
	AimAngle       float64 // degrees in [0,360); 0 points straight up, 90 right
	Power          int     // [0, MaxPower]
	Weapon         Weapon
	MovesRemaining int
}

// newCombatant returns the match-start record for id.
func newCombatant(id PlayerID, t Tuning) Combatant {
	c := Combatant{
		ID:             id,
		Health:         t.MaxHealth,
		Power:          t.MaxPower / 2,
		Weapon:         WeaponStandard,
		MovesRemaining: t.MovesPerTurn,
	}
	if id == Player1 {
		c.PositionX = 150
		c.AimAngle = 45
	} else {
		c.PositionX = 650
		c.AimAngle = 135
	}
	return c
}

// Alive reports whether the combatant still has health.
func (c Combatant) Alive() bool {
	return c.Health > 0
}

// move shifts the tank one step, clamped to [MinX, MaxX]. A move costs one
// allowance even when the clamp swallows it.
func (c *Combatant) move(dir Direction, t Tuning) bool {
	if c.MovesRemaining <= 0 {
		return false
	}
	dx := t.MoveStep
	if dir == Left {
		dx = -dx
	}
	c.PositionX = clamp(c.PositionX+dx, t.MinX, t.MaxX)
	c.MovesRemaining--
	return true
}

func (c *Combatant) adjustAngle(delta float64) {
	c.AimAngle = wrapAngle(c.AimAngle + delta)
}

func (c *Combatant) setAngle(angle float64) {
	c.AimAngle = wrapAngle(angle)
}

func (c *Combatant) adjustPower(delta int, t Tuning) {
	c.Power = clampInt(c.Power+delta, 0, t.MaxPower)
}

// applyDamage subtracts amount, floored at zero, and returns the health left.
func (c *Combatant) applyDamage(amount int) int {
	if amount <= 0 {
		return c.Health
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health
}

// wrapAngle folds any angle into [0,360).
func wrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360.
	if a >= 360 {
		a = 0
	}
	return a
}
