package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Tank-Duel/internal/config"
	"github.com/Garsondee/Tank-Duel/internal/duel"
)

type countingSound struct {
	fire, explosion, hit int
	muted                bool
}

func (c *countingSound) PlayFire()      { c.fire++ }
func (c *countingSound) PlayExplosion() { c.explosion++ }
func (c *countingSound) PlayHit()       { c.hit++ }
func (c *countingSound) ToggleMute() bool {
	c.muted = !c.muted
	return c.muted
}

func newTestGame(t *testing.T) (*Game, *countingSound) {
	t.Helper()
	snd := &countingSound{}
	g, err := New(config.Default(), snd)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g, snd
}

func runUntilAiming(t *testing.T, g *Game, max int) {
	t.Helper()
	for i := 0; i < max; i++ {
		g.match.Advance()
		if g.match.Phase() == duel.PhaseAiming && !g.match.ResolvePending() {
			return
		}
	}
	t.Fatalf("match did not return to aiming within %d ticks", max)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Scene = "volcano"
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("unknown scene should be rejected")
	}
	cfg = config.Default()
	cfg.Sim.TicksPerSecond = 0
	if _, err := New(cfg, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLayout_IncludesLogPanel(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(0, 0)
	if w != 2*borderWidth+800+logPanelWidth || h != 2*borderWidth+600 {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
}

func TestApply_ActsForActivePlayer(t *testing.T) {
	g, _ := newTestGame(t)
	if !g.apply(actMoveRight) || !g.apply(actAngleDownFast) || !g.apply(actPowerUp) || !g.apply(actWeaponHeavy) {
		t.Fatal("aiming actions should be accepted on P1's turn")
	}
	c, _ := g.match.Combatant(duel.Player1)
	if c.PositionX != 170 || c.AimAngle != 40 || c.Power != 60 || c.Weapon != duel.WeaponHeavy {
		t.Fatalf("unexpected P1 state: %+v", c)
	}
	p2, _ := g.match.Combatant(duel.Player2)
	if p2.PositionX != 650 {
		t.Fatal("P2 should be untouched")
	}
}

func TestApply_FireDrivesSounds(t *testing.T) {
	g, snd := newTestGame(t)
	if !g.apply(actFire) {
		t.Fatal("fire should be accepted")
	}
	if g.apply(actFire) {
		t.Fatal("second fire should be refused while the shell flies")
	}
	runUntilAiming(t, g, 300)
	if snd.fire != 1 || snd.explosion != 1 || snd.hit != 0 {
		t.Fatalf("expected one fire and one explosion sound, got %+v", snd)
	}
	if g.match.ActivePlayer() != duel.Player2 {
		t.Fatal("turn should pass to P2")
	}
	if g.apply(actMoveLeft) {
		c, _ := g.match.Combatant(duel.Player2)
		if c.PositionX != 630 {
			t.Fatalf("P2 should move left, got x=%.0f", c.PositionX)
		}
	} else {
		t.Fatal("P2 move should be accepted")
	}
}

func TestApply_DirectHitPlaysHit(t *testing.T) {
	g, snd := newTestGame(t)
	g.match.SetAngle(duel.Player1, 10)
	g.match.AdjustPower(duel.Player1, 41)
	g.apply(actFire)
	runUntilAiming(t, g, 400)
	if snd.hit != 1 {
		t.Fatalf("direct hit should play the hit sound, got %+v", snd)
	}
}

func TestMute_WithoutAudioDevice(t *testing.T) {
	g, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if !g.muted {
		t.Fatal("a game with no sound player should start muted")
	}
	for i := 0; i < 2; i++ {
		if g.apply(actMute) {
			t.Fatal("mute should be refused without an audio device")
		}
		if !g.muted || g.status != "no audio device" {
			t.Fatalf("press %d: muted=%v status=%q", i+1, g.muted, g.status)
		}
	}
}

func TestApply_ResetAndMute(t *testing.T) {
	g, snd := newTestGame(t)
	g.apply(actMoveLeft)
	g.apply(actReset)
	c, _ := g.match.Combatant(duel.Player1)
	if c.PositionX != 150 || c.MovesRemaining != 4 {
		t.Fatalf("reset should restore P1, got %+v", c)
	}
	g.apply(actMute)
	if !snd.muted || !g.muted || g.status != "sound off" {
		t.Fatalf("mute should toggle: sound=%v game=%v status=%q", snd.muted, g.muted, g.status)
	}
	help := g.showHelp
	g.apply(actToggleHelp)
	if g.showHelp == help {
		t.Fatal("help should toggle")
	}
}

func TestCopyReport(t *testing.T) {
	g, _ := newTestGame(t)
	var got string
	g.copyText = func(s string) error { got = s; return nil }
	if !g.apply(actCopyReport) {
		t.Fatal("copy should succeed")
	}
	if !strings.Contains(got, "Tank Duel match report") || g.status != "match report copied" {
		t.Fatalf("unexpected clipboard text or status %q:\n%s", g.status, got)
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	if g.apply(actCopyReport) {
		t.Fatal("copy failure should be reported")
	}
	if g.status != "clipboard unavailable" {
		t.Fatalf("unexpected status %q", g.status)
	}
}

func TestDragDial_SetsAbsoluteAngle(t *testing.T) {
	g, _ := newTestGame(t)
	if !g.dragDial(dialCX+20, dialCY) {
		t.Fatal("dial drag should aim while aiming")
	}
	c, _ := g.match.Combatant(duel.Player1)
	if c.AimAngle != 90 {
		t.Fatalf("pointer right of centre should aim 90, got %.2f", c.AimAngle)
	}
	g.apply(actFire)
	if g.dragDial(dialCX, dialCY-20) {
		t.Fatal("dial drag should be ignored while firing")
	}
}

func TestInspector_PickAndToggle(t *testing.T) {
	g, _ := newTestGame(t)
	if g.apply(actToggleInspector) {
		t.Fatal("toggling with nothing selected should be refused")
	}

	x := 650.0
	if !g.handleInspectorClick(x+5, g.match.TerrainHeight(x)-8) {
		t.Fatal("click on the hull should pick P2")
	}
	if g.inspector.selected != duel.Player2 {
		t.Fatalf("expected P2 selected, got %s", g.inspector.selected)
	}
	if !g.apply(actToggleInspector) || !g.inspector.rawView {
		t.Fatal("I should switch to the raw view")
	}

	if g.handleInspectorClick(400, 50) || g.inspector.selected.Valid() {
		t.Fatal("click in the sky should clear the selection")
	}
}

func TestInspectorLines(t *testing.T) {
	tu := duel.DefaultTuning()
	c := duel.Combatant{ID: duel.Player1, Health: 70, Power: 50, AimAngle: 45, MovesRemaining: 2}
	st := duel.Stats{ShotsFired: 2, DirectHits: 1, DamageDealt: 30, DamageTaken: 30}
	gr := duel.GradePlayers(duel.Snapshot{}, tu)[0]
	gr.Grade = "B"

	curated := strings.Join(inspectorLines(c, st, gr, tu, false), "\n")
	for _, want := range []string{"hp     #######... 70", "power  #####..... 50", "grade B  hits 1/2", "dealt 30  taken 30"} {
		if !strings.Contains(curated, want) {
			t.Fatalf("curated view missing %q:\n%s", want, curated)
		}
	}
	raw := strings.Join(inspectorLines(c, st, gr, tu, true), "\n")
	if !strings.Contains(raw, "hp=70/100 alive=true") || !strings.Contains(raw, "shots=2 direct=1") {
		t.Fatalf("raw view:\n%s", raw)
	}
}

func TestMeter(t *testing.T) {
	cases := map[float64]string{0: "..........", 0.5: "#####.....", 1: "##########", 1.7: "##########", -1: ".........."}
	for v, want := range cases {
		if got := meter(v); got != want {
			t.Errorf("meter(%.1f) = %q, want %q", v, got, want)
		}
	}
}
