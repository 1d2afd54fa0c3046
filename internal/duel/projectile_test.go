package duel

import (
	"math"
	"testing"
)

func defaultSim() (*Simulator, *Terrain, Tuning) {
	tu := DefaultTuning()
	tr := NewTerrain(tu)
	return NewSimulator(tr, tu), tr, tu
}

func TestLaunch_MuzzleAndVelocity(t *testing.T) {
	sim, tr, _ := defaultSim()
	c := Combatant{ID: Player1, PositionX: 150, AimAngle: 45, Power: 50}
	p := sim.Launch(c)

	rad := (45.0 - 90) * math.Pi / 180
	wantX := 150 + math.Cos(rad)*30
	wantY := tr.HeightAt(150) - 19 + math.Sin(rad)*30
	if math.Abs(p.X-wantX) > 1e-9 || math.Abs(p.Y-wantY) > 1e-9 {
		t.Fatalf("muzzle expected (%.3f,%.3f), got (%.3f,%.3f)", wantX, wantY, p.X, p.Y)
	}
	speed := math.Hypot(p.VX, p.VY)
	if math.Abs(speed-10) > 1e-9 {
		t.Fatalf("power 50 should launch at speed 10, got %.4f", speed)
	}
	if p.VX <= 0 || p.VY >= 0 {
		t.Fatalf("45° should fire up and to the right, got v=(%.3f,%.3f)", p.VX, p.VY)
	}
}

func TestLaunch_ZeroPowerHasNoVelocity(t *testing.T) {
	sim, _, _ := defaultSim()
	p := sim.Launch(Combatant{PositionX: 400, AimAngle: 90, Power: 0})
	if p.VX != 0 || p.VY != 0 {
		t.Fatalf("zero power should give zero velocity, got (%.3f,%.3f)", p.VX, p.VY)
	}
}

func TestStep_FixedPerTickIncrements(t *testing.T) {
	sim, _, _ := defaultSim()
	p := Projectile{X: 400, Y: 100, VX: 1, VY: -5}
	if _, done := sim.Step(&p, nil); done {
		t.Fatal("shell high over the middle should not collide")
	}
	if math.Abs(p.VX-1.02) > 1e-12 || math.Abs(p.VY-(-4.7)) > 1e-12 {
		t.Fatalf("expected v=(1.02,-4.70), got (%.4f,%.4f)", p.VX, p.VY)
	}
	if math.Abs(p.X-401.02) > 1e-12 || math.Abs(p.Y-95.3) > 1e-12 {
		t.Fatalf("expected position (401.02,95.30), got (%.4f,%.4f)", p.X, p.Y)
	}
}

func TestStep_OutOfBoundsClampsImpactPoint(t *testing.T) {
	sim, _, _ := defaultSim()
	p := Projectile{X: 799, Y: 100, VX: 5, VY: 0}
	imp, done := sim.Step(&p, nil)
	if !done || imp.Kind != ImpactBounds {
		t.Fatalf("expected bounds impact, got %v done=%v", imp.Kind, done)
	}
	if imp.X != 800 {
		t.Fatalf("bounds impact x should clamp to 800, got %.3f", imp.X)
	}

	p = Projectile{X: 10, Y: 100, VX: -20, VY: 0}
	imp, _ = sim.Step(&p, nil)
	if imp.Kind != ImpactBounds || imp.X != 0 {
		t.Fatalf("expected bounds impact clamped to x=0, got %v at %.3f", imp.Kind, imp.X)
	}
}

func TestStep_BoundsBeatsTerrain(t *testing.T) {
	sim, _, _ := defaultSim()
	// Lands below the floor: bounds wins over terrain, y capped at 600.
	p := Projectile{X: 400, Y: 590, VX: 0, VY: 30}
	imp, done := sim.Step(&p, nil)
	if !done || imp.Kind != ImpactBounds || imp.Y != 600 {
		t.Fatalf("expected bounds impact at y=600, got %v at y=%.2f", imp.Kind, imp.Y)
	}
}

func TestStep_TerrainImpactSnapsToSurface(t *testing.T) {
	sim, tr, _ := defaultSim()
	ground := tr.HeightAt(400.02)
	p := Projectile{X: 400, Y: ground - 1, VX: 0, VY: 5}
	imp, done := sim.Step(&p, nil)
	if !done || imp.Kind != ImpactTerrain {
		t.Fatalf("expected terrain impact, got %v done=%v", imp.Kind, done)
	}
	if math.Abs(imp.Y-tr.HeightAt(imp.X)) > 1e-9 {
		t.Fatalf("terrain impact y should be the surface height, got %.3f vs %.3f", imp.Y, tr.HeightAt(imp.X))
	}
}

func TestStep_TankProximityOrder(t *testing.T) {
	sim, tr, _ := defaultSim()
	// Both tanks share an x so the shell is inside both boxes; P1 is tested first.
	x := 400.0
	tanks := []Combatant{{ID: Player1, PositionX: x}, {ID: Player2, PositionX: x}}
	p := Projectile{X: x - 0.02, Y: tr.HeightAt(x) - 20.3, VX: 0, VY: 0}
	imp, done := sim.Step(&p, tanks)
	if !done || imp.Kind != ImpactTank1 {
		t.Fatalf("expected tank1 impact, got %v done=%v", imp.Kind, done)
	}

	tanks = []Combatant{{ID: Player1, PositionX: 150}, {ID: Player2, PositionX: x}}
	p = Projectile{X: x - 0.02, Y: tr.HeightAt(x) - 20.3, VX: 0, VY: 0}
	imp, _ = sim.Step(&p, tanks)
	if imp.Kind != ImpactTank2 {
		t.Fatalf("expected tank2 impact, got %v", imp.Kind)
	}
}

// Every aim from the player 1 start terminates well inside a bounded number
// of ticks under the stock gravity and wind.
func TestTrajectory_AlwaysTerminates(t *testing.T) {
	sim, _, tu := defaultSim()
	tanks := []Combatant{newCombatant(Player1, tu), newCombatant(Player2, tu)}
	const maxTicks = 1000
	longest := 0
	for angle := 0; angle < 360; angle++ {
		for power := 1; power <= 100; power++ {
			c := tanks[0]
			c.AimAngle = float64(angle)
			c.Power = power
			_, imp, ok := sim.Trajectory(c, tanks, maxTicks)
			if !ok {
				t.Fatalf("angle=%d power=%d did not terminate within %d ticks", angle, power, maxTicks)
			}
			if int(imp.Tick) > longest {
				longest = int(imp.Tick)
			}
		}
	}
	t.Logf("longest flight: %d ticks", longest)
}

func TestTrajectory_DefaultOpeningShot(t *testing.T) {
	sim, _, tu := defaultSim()
	tanks := []Combatant{newCombatant(Player1, tu), newCombatant(Player2, tu)}
	_, imp, ok := sim.Trajectory(tanks[0], tanks, 1000)
	if !ok || imp.Kind != ImpactTerrain {
		t.Fatalf("opening shot should land on terrain, got %v ok=%v", imp.Kind, ok)
	}
	if imp.Tick != 23 || math.Abs(imp.X-339.37) > 0.01 {
		t.Fatalf("opening shot expected to land near x=339.37 on tick 23, got x=%.2f tick=%d", imp.X, imp.Tick)
	}
}

func TestImpactKind_Target(t *testing.T) {
	if id, ok := ImpactTank2.Target(); !ok || id != Player2 {
		t.Fatalf("tank2 should target P2, got %v %v", id, ok)
	}
	if _, ok := ImpactTerrain.Target(); ok {
		t.Fatal("terrain impact has no direct target")
	}
	if !ImpactBounds.Splash() || ImpactTank1.Splash() {
		t.Fatal("bounds splashes, tank hits do not")
	}
}
