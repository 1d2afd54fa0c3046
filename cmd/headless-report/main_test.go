package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

const directHitScript = `
name: opening hit
shots:
  - player: 1
    angle: 10
    power: 91
    weapon: heavy
  - player: 2
    moves: [left, left]
    angle: 300
    power: 60
`

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte(directHitScript))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "opening hit" || s.MaxTicks != 2000 || len(s.Shots) != 2 {
		t.Fatalf("unexpected script: %+v", s)
	}
	if s.Shots[0].Angle == nil || *s.Shots[0].Angle != 10 || s.Shots[1].Power == nil || *s.Shots[1].Power != 60 {
		t.Fatal("aim fields should be decoded")
	}
	if len(s.Shots[1].Moves) != 2 {
		t.Fatalf("expected two moves, got %v", s.Shots[1].Moves)
	}
}

func TestParseScript_Rejects(t *testing.T) {
	bad := map[string]string{
		"no shots":   "name: empty\n",
		"player":     "shots:\n  - player: 3\n",
		"move":       "shots:\n  - moves: [up]\n",
		"weapon":     "shots:\n  - weapon: nuke\n",
		"not yaml":   "shots: [",
		"wrong type": "shots:\n  - angle: steep\n",
	}
	for name, src := range bad {
		if _, err := parseScript([]byte(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestReplay_DirectHit(t *testing.T) {
	s, err := parseScript([]byte(directHitScript))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := replay(s, duel.DefaultTuning(), false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(res.shots) != 2 {
		t.Fatalf("expected two shots, got %d", len(res.shots))
	}
	first := res.shots[0]
	if first.impact.Kind != duel.ImpactTank2 || first.weapon != duel.WeaponHeavy {
		t.Fatalf("first shot should be a heavy-labelled direct hit, got %s %s", first.impact.Kind, first.weapon)
	}
	if len(first.damages) != 1 || first.damages[0].Amount != 30 || first.damages[0].HealthAfter != 70 {
		t.Fatalf("direct hit should take P2 to 70, got %+v", first.damages)
	}
	second := res.shots[1]
	if second.player != duel.Player2 || second.turn != 2 || len(second.refused) != 0 {
		t.Fatalf("second shot should be P2 on turn 2, got %+v", second)
	}
	if res.outcome != duel.OutcomeInProgress {
		t.Fatalf("match should still be running, got %s", res.outcome)
	}
	if !strings.Contains(res.report, "session=") {
		t.Fatalf("replay should carry the match report:\n%s", res.report)
	}
	if line := shotLine(1, first); !strings.Contains(line, "impact=tank2") || !strings.Contains(line, "P2-30(hp=70)") {
		t.Fatalf("shot line: %q", line)
	}
}

func TestReplay_WrongPlayer(t *testing.T) {
	s, err := parseScript([]byte("shots:\n  - player: 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := replay(s, duel.DefaultTuning(), false); err == nil || !strings.Contains(err.Error(), "P1's turn") {
		t.Fatalf("expected a turn-order error, got %v", err)
	}
}

func TestReplay_StopsOnceDecided(t *testing.T) {
	tu := duel.DefaultTuning()
	tu.DirectHitDamage = tu.MaxHealth
	s, err := parseScript([]byte(directHitScript))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := replay(s, tu, false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(res.shots) != 1 || res.skipped != 1 {
		t.Fatalf("expected one shot played and one skipped, got %d/%d", len(res.shots), res.skipped)
	}
	if res.outcome != duel.OutcomePlayer1Wins {
		t.Fatalf("expected P1 win, got %s", res.outcome)
	}
}

func TestFiringTable_FindsDirectHit(t *testing.T) {
	rows := firingTable(duel.DefaultTuning(), duel.Player1, []float64{10}, []int{91}, 400)
	c := rows[0][0]
	if !c.landed || c.impact.Kind != duel.ImpactTank2 {
		t.Fatalf("angle 10 power 91 should hit P2, got %+v", c)
	}
	if c.ticks <= 0 {
		t.Fatalf("flight should take some ticks, got %d", c.ticks)
	}
	st := summarizeTable(duel.Player1, rows)
	if st.shots != 1 || st.enemyHits != 1 || st.selfHits != 0 {
		t.Fatalf("unexpected summary %+v", st)
	}
}

func TestCellText(t *testing.T) {
	cases := []struct {
		c    tableCell
		want string
	}{
		{tableCell{}, "--"},
		{tableCell{landed: true, impact: duel.Impact{Kind: duel.ImpactBounds}}, "out"},
		{tableCell{landed: true, impact: duel.Impact{Kind: duel.ImpactTank1}}, "P1!"},
		{tableCell{landed: true, impact: duel.Impact{Kind: duel.ImpactTerrain, X: 339.4}}, "339"},
	}
	for _, c := range cases {
		if got := cellText(c.c); got != c.want {
			t.Errorf("cellText(%+v) = %q, want %q", c.c, got, c.want)
		}
	}
}

func TestParseLists(t *testing.T) {
	fs, err := parseFloats(" 10, 22.5 ,")
	if err != nil || len(fs) != 2 || fs[1] != 22.5 {
		t.Fatalf("parseFloats: %v %v", fs, err)
	}
	if _, err := parseInts("10,x"); err == nil {
		t.Fatal("parseInts should reject non-numbers")
	}
	if _, err := parseInts(" , "); err == nil {
		t.Fatal("empty list should be rejected")
	}
}
