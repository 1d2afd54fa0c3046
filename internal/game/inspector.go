package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 170
	inspPad   = 4
	inspLineH = 13

	// inspPickRadius is how close a click must land to a tank's hull.
	inspPickRadius = 24.0
)

// Inspector holds the selected tank and view toggle state.
type Inspector struct {
	selected duel.PlayerID // 0 when nothing is selected
	rawView  bool          // false = curated, true = raw dump
	buf      *ebiten.Image
}

// pickTank returns the tank nearest to the battlefield point (fx, fy)
// within inspPickRadius.
func pickTank(m *duel.Match, fx, fy float64) (duel.PlayerID, bool) {
	best := inspPickRadius * inspPickRadius
	var hit duel.PlayerID
	for _, id := range duel.Players() {
		c, _ := m.Combatant(id)
		dx := c.PositionX - fx
		dy := m.TerrainHeight(c.PositionX) - fy
		if d2 := dx*dx + dy*dy; d2 < best {
			best = d2
			hit = id
		}
	}
	return hit, hit.Valid()
}

// handleInspectorClick selects the clicked tank, or clears the selection on
// empty ground. It reports whether a tank was hit.
func (g *Game) handleInspectorClick(fx, fy float64) bool {
	id, ok := pickTank(g.match, fx, fy)
	g.inspector.selected = id
	return ok
}

// inspectorLines builds the panel text for c.
func inspectorLines(c duel.Combatant, st duel.Stats, gr duel.GunneryGrade, t duel.Tuning, raw bool) []string {
	if raw {
		return []string{
			fmt.Sprintf("id=%d x=%.2f", c.ID, c.PositionX),
			fmt.Sprintf("hp=%d/%d alive=%v", c.Health, t.MaxHealth, c.Alive()),
			fmt.Sprintf("ang=%.2f pow=%d/%d", c.AimAngle, c.Power, t.MaxPower),
			fmt.Sprintf("wpn=%d(%s) mv=%d", c.Weapon, c.Weapon, c.MovesRemaining),
			"-- stats --",
			fmt.Sprintf("shots=%d direct=%d", st.ShotsFired, st.DirectHits),
			fmt.Sprintf("dealt=%d self=%d", st.DamageDealt, st.SelfDamage),
			fmt.Sprintf("taken=%d moved=%d", st.DamageTaken, st.MovesUsed),
			"-- grade --",
			fmt.Sprintf("score=%.2f acc=%.2f", gr.Score, gr.Accuracy),
			fmt.Sprintf("eff=%.2f hp=%.2f", gr.Efficiency, gr.HealthLeft),
		}
	}
	lines := []string{
		"-- STATUS --",
		fmt.Sprintf("hp     %s %d", meter(float64(c.Health)/float64(t.MaxHealth)), c.Health),
		fmt.Sprintf("power  %s %d", meter(float64(c.Power)/float64(t.MaxPower)), c.Power),
		fmt.Sprintf("angle %5.1f  %s", c.AimAngle, c.Weapon),
		fmt.Sprintf("moves  %d left", c.MovesRemaining),
		"-- GUNNERY --",
		fmt.Sprintf("grade %s  hits %d/%d", gr.Grade, st.DirectHits, st.ShotsFired),
		fmt.Sprintf("dealt %d  taken %d", st.DamageDealt, st.DamageTaken),
	}
	if len(gr.GoodTraits) > 0 {
		lines = append(lines, "+ "+strings.Join(gr.GoodTraits, ", "))
	}
	if len(gr.BadTraits) > 0 {
		lines = append(lines, "- "+strings.Join(gr.BadTraits, ", "))
	}
	return lines
}

// meter draws v in [0,1] as a ten-cell bar.
func meter(v float64) string {
	filled := int(v*10 + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
}

// drawInspector renders the inspector panel for the selected tank in the
// lower right of the battlefield.
func (g *Game) drawInspector(screen *ebiten.Image, s duel.Snapshot) {
	id := g.inspector.selected
	if !id.Valid() {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(inspBufH)
	border := playerColors[int(id)-1]
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 24, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, border, false)

	view := "CURATED"
	if g.inspector.rawView {
		view = "RAW"
	}
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ %s ]  %s  [I]", id, view), inspPad, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, inspPad, float32(ly), bw-inspPad, float32(ly), 1.0, border, false)
	ly += 4

	grades := duel.GradePlayers(s, g.tuning)
	lines := inspectorLines(s.Combatant(id), s.Stats[int(id)-1], grades[int(id)-1], g.tuning, g.inspector.rawView)
	for _, l := range lines {
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
	}

	px := g.offX + g.gameWidth - inspBufW*inspScale - 8
	py := g.offY + g.gameHeight - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
