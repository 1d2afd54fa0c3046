package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// Parallax lifts for the two background ridges.
const (
	backLayerLift   = 40
	middleLayerLift = 20
)

// fillPolygon fills the closed polygon through pts with col.
func fillPolygon(dst *ebiten.Image, pts []duel.Point, ox, oy float32, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(ox+float32(pts[0].X), oy+float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(ox+float32(p.X), oy+float32(p.Y))
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(col)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

// ridge closes a lifted copy of the terrain surface down to the floor.
func ridge(samples []duel.Point, lift, floor float64, every int) []duel.Point {
	if every < 1 {
		every = 1
	}
	pts := make([]duel.Point, 0, len(samples)/every+3)
	pts = append(pts, duel.Point{X: samples[0].X, Y: floor})
	for i, p := range samples {
		if i%every == 0 {
			pts = append(pts, duel.Point{X: p.X, Y: p.Y - lift})
		}
	}
	last := samples[len(samples)-1]
	pts = append(pts, duel.Point{X: last.X, Y: floor})
	return pts
}

// drawTerrain draws the two parallax ridges, the main terrain and its slope
// highlights.
func drawTerrain(dst *ebiten.Image, tr *duel.Terrain, ox, oy float32, height float64, p palette) {
	samples := tr.Samples()
	if len(samples) < 2 {
		return
	}
	fillPolygon(dst, ridge(samples, backLayerLift, height, 2), ox, oy, p.back)
	fillPolygon(dst, ridge(samples, middleLayerLift, height, 1), ox, oy, p.middle)
	fillPolygon(dst, ridge(samples, 0, height, 1), ox, oy, p.front)

	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		x0, y0 := ox+float32(a.X), oy+float32(a.Y)
		x1, y1 := ox+float32(b.X), oy+float32(b.Y)
		vector.StrokeLine(dst, x0, y0, x1, y1, 2, p.outline, true)
		if b.Y < a.Y {
			vector.StrokeLine(dst, x0, y0-2, x1, y1-2, 1.5, p.ridge, true)
		} else if b.Y > a.Y {
			vector.StrokeLine(dst, x0, y0, x1, y1+3, 1, p.valley, true)
		}
	}
}

// drawTank draws a combatant standing on the terrain at groundY.
func drawTank(dst *ebiten.Image, c duel.Combatant, groundY float64, ox, oy float32, t duel.Tuning, active bool) {
	col := playerColors[0]
	if c.ID == duel.Player2 {
		col = playerColors[1]
	}
	if !c.Alive() {
		col = lerpColor(col, trackColor, 0.6)
	}
	x, y := ox+float32(c.PositionX), oy+float32(groundY)

	if active {
		vector.FillCircle(dst, x, y-12, 30, scaleAlpha(col, 0.25), true)
	}
	vector.FillRect(dst, x-20, y-15, 40, 15, col, false)
	vector.FillRect(dst, x-12, y-25, 24, 12, col, false)

	mx, my := duel.MuzzleDirection(c.AimAngle)
	px, py := x, y-float32(t.TurretHeight)
	bl := float32(t.BarrelLength)
	vector.StrokeLine(dst, px, py, px+float32(mx)*bl, py+float32(my)*bl, 4, col, true)

	vector.FillRect(dst, x-22, y, 44, 4, trackColor, false)
	for i := float32(-20); i <= 20; i += 8 {
		vector.FillRect(dst, x+i, y, 4, 4, trackDetail, false)
	}
}

// drawShell draws the projectile and its one-frame trail.
func drawShell(dst *ebiten.Image, p duel.Projectile, ox, oy float32) {
	tx, ty := ox+float32(p.X-2*p.VX), oy+float32(p.Y-2*p.VY)
	vector.FillCircle(dst, tx, ty, 4, shellTrail, true)
	vector.FillCircle(dst, ox+float32(p.X), oy+float32(p.Y), 6, shellColor, true)
}

// drawExplosion draws the three fading discs of a blast.
func drawExplosion(dst *ebiten.Image, e duel.Explosion, tick uint64, tps int, ox, oy float32) {
	prog := e.Progress(tick, tps)
	if prog >= 1 {
		return
	}
	r := float32(e.Radius(tick, tps))
	fade := 1 - prog
	cx, cy := ox+float32(e.CenterX), oy+float32(e.CenterY)
	vector.FillCircle(dst, cx, cy, r, scaleAlpha(blastOuter, fade*0.6), true)
	vector.FillCircle(dst, cx, cy, r*0.6, scaleAlpha(blastInner, fade*0.8), true)
	vector.FillCircle(dst, cx, cy, r*0.3, scaleAlpha(blastCore, fade), true)
}

// drawText draws s with the HUD face; y is the baseline.
func drawText(dst *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, col)
}

// textWidth is the pixel width of s in the HUD face.
func textWidth(s string) int {
	return len(s) * basicfont.Face7x13.Advance
}

// drawPlayerCard draws one player's health, moves and aim readout. right
// aligns the card to the right edge of the field.
func drawPlayerCard(dst *ebiten.Image, c duel.Combatant, t duel.Tuning, x, y int, active, right bool) {
	col := playerColors[0]
	if c.ID == duel.Player2 {
		col = playerColors[1]
	}
	labelCol := color.Color(inactiveText)
	if active {
		labelCol = col
	}
	const barW, barH = 160, 12
	bx := x
	if right {
		bx = x - barW
	}

	title := fmt.Sprintf("PLAYER %d", int(c.ID))
	tx := bx
	if right {
		tx = x - textWidth(title)
	}
	drawText(dst, title, tx, y+11, labelCol)

	vector.FillRect(dst, float32(bx), float32(y+16), barW, barH, trackColor, false)
	frac := float32(c.Health) / float32(t.MaxHealth)
	vector.FillRect(dst, float32(bx), float32(y+16), barW*frac, barH, col, false)
	border := color.Color(trackDetail)
	if active {
		border = col
	}
	vector.StrokeRect(dst, float32(bx), float32(y+16), barW, barH, 2, border, false)

	lines := []string{
		fmt.Sprintf("HP %d/%d  moves %d", c.Health, t.MaxHealth, c.MovesRemaining),
		fmt.Sprintf("angle %5.1f  power %3d", c.AimAngle, c.Power),
		fmt.Sprintf("weapon %s", c.Weapon),
	}
	for i, l := range lines {
		lx := bx
		if right {
			lx = x - textWidth(l)
		}
		drawText(dst, l, lx, y+44+i*14, col)
	}
}

// drawPowerBar draws the active player's power as a vertical gauge.
func drawPowerBar(dst *ebiten.Image, power, maxPower int, x, y float32) {
	const w, h = 16, 80
	vector.FillRect(dst, x, y, w, h, trackColor, false)
	frac := float32(power) / float32(maxPower)
	vector.FillRect(dst, x, y+h*(1-frac), w, h*frac, powerBarColor, false)
	vector.StrokeRect(dst, x, y, w, h, 2, trackDetail, false)
}

// drawBanner covers the field with the end-of-match headline.
func drawBanner(dst *ebiten.Image, out duel.Outcome, ox, oy, w, h float32) {
	vector.FillRect(dst, ox, oy, w, h, nrgba(0, 0, 0, 204), false)
	msg := out.Banner()
	col := color.Color(powerBarColor)
	if id, ok := out.Winner(); ok {
		col = playerColors[int(id)-1]
	}
	cx := int(ox + w/2)
	cy := int(oy + h/2)
	drawText(dst, msg, cx-textWidth(msg)/2, cy, col)
	hint := "press R for a new match"
	drawText(dst, hint, cx-textWidth(hint)/2, cy+24, inactiveText)
}
