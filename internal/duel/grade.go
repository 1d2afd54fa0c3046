package duel

import (
	"fmt"
	"math"
	"strings"
)

// Grading thresholds.
const (
	gradeMinShots       = 2   // fewer shots than this cannot earn accuracy traits
	gradeSharpshooter   = 0.5 // direct-hit ratio
	gradeWastefulShots  = 3
	gradeSelfDamageCost = 2.0 // score points per point of self-inflicted damage
)

// GunneryGrade is an end-of-match (or mid-match) assessment of one player.
type GunneryGrade struct {
	Player   PlayerID
	Grade    string  // A+, A, B+, B, C+, C, D, F, or "-" with no shots
	Score    float64 // 0-100; -1 when there is nothing to grade
	Survived bool

	Accuracy   float64 // direct hits per shot, 0-1
	Efficiency float64 // damage dealt per shot relative to a direct hit, 0-1
	HealthLeft float64 // 0-1

	GoodTraits []string
	BadTraits  []string
}

// LetterGrade maps a 0-100 score to a letter.
func LetterGrade(score float64) string {
	switch {
	case score < 0:
		return "-"
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// GradePlayers grades both players from a snapshot, P1 first.
func GradePlayers(s Snapshot, t Tuning) []GunneryGrade {
	out := make([]GunneryGrade, 0, playerCount)
	for _, id := range Players() {
		out = append(out, gradePlayer(id, s.Combatant(id), s.Stats[id.index()], t))
	}
	return out
}

func gradePlayer(id PlayerID, c Combatant, st Stats, t Tuning) GunneryGrade {
	g := GunneryGrade{Player: id, Survived: c.Alive(), Score: -1}
	if t.MaxHealth > 0 {
		g.HealthLeft = float64(c.Health) / float64(t.MaxHealth)
	}
	if st.ShotsFired == 0 {
		g.Grade = LetterGrade(g.Score)
		return g
	}

	shots := float64(st.ShotsFired)
	g.Accuracy = float64(st.DirectHits) / shots
	if t.DirectHitDamage > 0 {
		g.Efficiency = math.Min(1, float64(st.DamageDealt)/(shots*float64(t.DirectHitDamage)))
	}

	score := 100 * (0.4*g.Accuracy + 0.4*g.Efficiency + 0.2*g.HealthLeft)
	score -= gradeSelfDamageCost * float64(st.SelfDamage)
	g.Score = math.Max(0, math.Min(100, score))
	g.Grade = LetterGrade(g.Score)

	if st.ShotsFired >= gradeMinShots && g.Accuracy >= gradeSharpshooter {
		g.GoodTraits = append(g.GoodTraits, "sharpshooter")
	}
	if st.DamageTaken == 0 {
		g.GoodTraits = append(g.GoodTraits, "untouched")
	}
	if st.SelfDamage > 0 {
		g.BadTraits = append(g.BadTraits, "self_inflicted")
	}
	if st.ShotsFired >= gradeWastefulShots && st.DamageDealt == 0 {
		g.BadTraits = append(g.BadTraits, "wasteful")
	}
	return g
}

// FormatGrades renders grades as a plain-text block.
func FormatGrades(grades []GunneryGrade) string {
	var sb strings.Builder
	sb.WriteString("=== Gunnery Grades ===\n")
	for _, g := range grades {
		status := "standing"
		if !g.Survived {
			status = "destroyed"
		}
		fmt.Fprintf(&sb, "  %-2s  %-3s [%s]  acc=%.0f%%  eff=%.0f%%  hp=%.0f%%\n",
			g.Player, g.Grade, status, g.Accuracy*100, g.Efficiency*100, g.HealthLeft*100)
		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "      Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "      Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}
	}
	return sb.String()
}
