package duel

import (
	"fmt"
	"strings"
)

// reportRecentEntries is how much of the log a report reproduces.
const reportRecentEntries = 24

// Report renders a plain-text summary of the match for pasting into bug
// reports. It reads the log, so call it from the goroutine driving Advance.
func Report(m *Match) string {
	s := m.Snapshot()
	t := m.Tuning()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Tank Duel match report ---\n")
	fmt.Fprintf(&b, "session=%s tick=%d turn=%d phase=%s active=%s outcome=%s\n",
		s.Session, s.Tick, s.Turn, s.Phase, s.Active, s.Outcome)
	fmt.Fprintf(&b, "gravity=%.2f wind=%.2f tps=%d resolve=%s (%d ticks)\n\n",
		t.Gravity, t.Wind, t.TicksPerSecond, t.ResolveDelay, t.ResolveDelayTicks())

	for _, id := range Players() {
		c := s.Combatant(id)
		st := s.Stats[id.index()]
		fmt.Fprintf(&b, "== %s ==\n", id)
		fmt.Fprintf(&b, "x=%.0f ground=%.1f hp=%d angle=%.1f power=%d weapon=%s moves=%d\n",
			c.PositionX, m.TerrainHeight(c.PositionX), c.Health, c.AimAngle, c.Power, c.Weapon, c.MovesRemaining)
		fmt.Fprintf(&b, "shots=%d direct=%d dealt=%d self=%d taken=%d moved=%d\n\n",
			st.ShotsFired, st.DirectHits, st.DamageDealt, st.SelfDamage, st.DamageTaken, st.MovesUsed)
	}

	if s.HasProjectile {
		p := s.Projectile
		fmt.Fprintf(&b, "projectile: (%.1f,%.1f) v=(%.2f,%.2f)\n", p.X, p.Y, p.VX, p.VY)
	}
	if imp, ok := m.LastImpact(); ok {
		fmt.Fprintf(&b, "last impact: %s at (%.1f,%.1f) T=%d\n", imp.Kind, imp.X, imp.Y, imp.Tick)
	}

	b.WriteByte('\n')
	b.WriteString(FormatGrades(GradePlayers(s, t)))

	recent := m.RecentLog(reportRecentEntries)
	if len(recent) > 0 {
		b.WriteString("\nrecent events:\n")
		b.WriteString(formatEntries(recent))
	}
	return b.String()
}
