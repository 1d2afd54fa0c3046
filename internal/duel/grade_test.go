package duel

import (
	"strings"
	"testing"
)

func TestLetterGrade(t *testing.T) {
	cases := map[float64]string{-1: "-", 100: "A+", 93: "A+", 92.9: "A", 78: "B+", 70: "B", 55: "C", 45: "D", 44.9: "F", 0: "F"}
	for score, want := range cases {
		if got := LetterGrade(score); got != want {
			t.Errorf("LetterGrade(%.1f) = %q, want %q", score, got, want)
		}
	}
}

func TestGradePlayers_AfterDirectHit(t *testing.T) {
	td := NewTestDuel()
	if imp, ok := td.Shoot(10, 91, 400); !ok || imp.Kind != ImpactTank2 {
		t.Fatalf("setup shot should hit P2, got %+v ok=%v", imp, ok)
	}
	grades := GradePlayers(td.Match.Snapshot(), td.Match.Tuning())
	if len(grades) != 2 || grades[0].Player != Player1 || grades[1].Player != Player2 {
		t.Fatalf("expected P1 then P2, got %+v", grades)
	}

	p1 := grades[0]
	if p1.Score != 100 || p1.Grade != "A+" || p1.Accuracy != 1 || p1.Efficiency != 1 {
		t.Fatalf("one shot one hit should be perfect, got %+v", p1)
	}
	if len(p1.GoodTraits) != 1 || p1.GoodTraits[0] != "untouched" {
		t.Fatalf("a single shot is too few for sharpshooter, traits=%v", p1.GoodTraits)
	}

	p2 := grades[1]
	if p2.Score != -1 || p2.Grade != "-" || p2.HealthLeft != 0.7 || !p2.Survived {
		t.Fatalf("P2 has not fired yet, got %+v", p2)
	}
}

func TestGradePlayer_SelfDamagePenalty(t *testing.T) {
	tu := DefaultTuning()
	c := Combatant{ID: Player1, Health: 90}
	st := Stats{ShotsFired: 3, SelfDamage: 10, DamageTaken: 10}
	g := gradePlayer(Player1, c, st, tu)
	if g.Score != 0 || g.Grade != "F" {
		t.Fatalf("self damage should sink the score, got %.1f %s", g.Score, g.Grade)
	}
	if strings.Join(g.BadTraits, ",") != "self_inflicted,wasteful" {
		t.Fatalf("unexpected bad traits %v", g.BadTraits)
	}
	if len(g.GoodTraits) != 0 {
		t.Fatalf("no good traits expected, got %v", g.GoodTraits)
	}
}

func TestGradePlayer_Sharpshooter(t *testing.T) {
	tu := DefaultTuning()
	c := Combatant{ID: Player2, Health: 40}
	st := Stats{ShotsFired: 4, DirectHits: 2, DamageDealt: 70, DamageTaken: 60}
	g := gradePlayer(Player2, c, st, tu)
	// 100 * (0.4*0.5 + 0.4*(70/120) + 0.2*0.4) = 51.33
	if g.Score < 51.3 || g.Score > 51.4 || g.Grade != "D" {
		t.Fatalf("unexpected score %.2f %s", g.Score, g.Grade)
	}
	if len(g.GoodTraits) != 1 || g.GoodTraits[0] != "sharpshooter" {
		t.Fatalf("expected sharpshooter, got %v", g.GoodTraits)
	}
}

func TestFormatGrades(t *testing.T) {
	grades := []GunneryGrade{
		{Player: Player1, Grade: "B", Score: 72, Survived: true, Accuracy: 0.5, GoodTraits: []string{"sharpshooter"}},
		{Player: Player2, Grade: "F", Score: 10, BadTraits: []string{"wasteful"}},
	}
	out := FormatGrades(grades)
	for _, want := range []string{"P1  B   [standing]  acc=50%", "Good: sharpshooter", "P2  F   [destroyed]", "Bad:  wasteful"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
