package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// hudRows is the number of text rows under the battlefield.
const hudRows = 3

var (
	styleGround    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x4a6b2f))
	styleRidge     = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x6f8f3f))
	styleShell     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBlastCore = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xffe08a)).Bold(true)
	styleBlast     = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xff8c1a))
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBanner    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
	stylePlayer    = [...]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.NewHexColor(0x00d4ff)),
		tcell.StyleDefault.Foreground(tcell.NewHexColor(0xff4444)),
	}
)

func playerStyle(id duel.PlayerID) tcell.Style {
	if id == duel.Player2 {
		return stylePlayer[1]
	}
	return stylePlayer[0]
}

// view maps battlefield coordinates onto a character grid.
type view struct {
	cols, rows    int // battlefield area only
	width, height float64
}

func newView(c *canvas, t duel.Tuning) view {
	rows := c.h - hudRows
	if rows < 1 {
		rows = 1
	}
	return view{cols: c.w, rows: rows, width: t.Width, height: t.Height}
}

func (v view) col(x float64) int {
	return int(math.Floor(x * float64(v.cols) / v.width))
}

func (v view) row(y float64) int {
	return int(math.Floor(y * float64(v.rows) / v.height))
}

// centre returns the battlefield point at the middle of cell (c, r).
func (v view) centre(c, r int) (x, y float64) {
	return (float64(c) + 0.5) * v.width / float64(v.cols),
		(float64(r) + 0.5) * v.height / float64(v.rows)
}

// barrelRune picks the character closest to the barrel direction.
func barrelRune(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	switch int(math.Round(a/45)) % 4 {
	case 0:
		return '|'
	case 1:
		return '/'
	case 2:
		return '-'
	default:
		return '\\'
	}
}

// render composes one frame of the match onto c.
func render(c *canvas, m *duel.Match, status string) {
	c.clear()
	snap := m.Snapshot()
	t := m.Tuning()
	v := newView(c, t)

	drawGround(c, v, m.Terrain())
	for _, id := range duel.Players() {
		drawTank(c, v, m.Terrain(), snap.Combatant(id))
	}
	if snap.HasProjectile {
		drawShell(c, v, snap.Projectile)
	}
	if snap.HasExplosion {
		drawBlast(c, v, snap.Explosion.CenterX, snap.Explosion.CenterY, snap.Explosion.Radius(snap.Tick, t.TicksPerSecond))
	}
	drawHUD(c, v, snap, t, status)
}

func drawGround(c *canvas, v view, tr *duel.Terrain) {
	for col := 0; col < v.cols; col++ {
		x, _ := v.centre(col, 0)
		top := v.row(tr.HeightAt(x))
		if top < 0 {
			top = 0
		}
		for r := top; r < v.rows; r++ {
			if r == top {
				c.set(col, r, '▓', styleRidge)
			} else {
				c.set(col, r, '█', styleGround)
			}
		}
	}
}

func drawTank(c *canvas, v view, tr *duel.Terrain, cb duel.Combatant) {
	if !cb.ID.Valid() {
		return
	}
	st := playerStyle(cb.ID)
	if !cb.Alive() {
		st = st.Dim(true)
	}
	col := v.col(cb.PositionX)
	row := v.row(tr.HeightAt(cb.PositionX)) - 1
	c.set(col-1, row, '▄', st)
	c.set(col, row, '█', st)
	c.set(col+1, row, '▄', st)

	dx, dy := duel.MuzzleDirection(cb.AimAngle)
	c.set(col+int(math.Round(dx)), row-1+int(math.Round(dy)), barrelRune(cb.AimAngle), st)
}

func drawShell(c *canvas, v view, p duel.Projectile) {
	col := v.col(p.X)
	row := v.row(p.Y)
	if row < 0 {
		// Off the top of the screen.
		c.set(col, 0, '^', styleShell)
		return
	}
	c.set(col, row, '●', styleShell)
}

func drawBlast(c *canvas, v view, cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	c0, c1 := v.col(cx-radius), v.col(cx+radius)
	r0, r1 := v.row(cy-radius), v.row(cy+radius)
	for r := r0; r <= r1 && r < v.rows; r++ {
		for col := c0; col <= c1; col++ {
			x, y := v.centre(col, r)
			d := math.Hypot(x-cx, y-cy)
			switch {
			case d <= radius*0.5:
				c.set(col, r, '@', styleBlastCore)
			case d <= radius:
				c.set(col, r, '*', styleBlast)
			}
		}
	}
}

func playerLine(snap duel.Snapshot, id duel.PlayerID) string {
	cb := snap.Combatant(id)
	marker := " "
	if snap.Active == id && snap.Outcome == duel.OutcomeInProgress {
		marker = ">"
	}
	return fmt.Sprintf("%s%s hp:%3d ang:%3.0f pow:%3d %-8s moves:%d",
		marker, id, cb.Health, cb.AimAngle, cb.Power, cb.Weapon, cb.MovesRemaining)
}

func drawHUD(c *canvas, v view, snap duel.Snapshot, t duel.Tuning, status string) {
	y := v.rows
	c.text(0, y, playerLine(snap, duel.Player1), playerStyle(duel.Player1))
	c.text(0, y+1, playerLine(snap, duel.Player2), playerStyle(duel.Player2))

	if snap.Outcome != duel.OutcomeInProgress && !snap.HasExplosion {
		b := " " + snap.Outcome.Banner() + "  r: rematch "
		c.text((c.w-len(b))/2, v.rows/3, b, styleBanner)
	}

	line := fmt.Sprintf("turn %d  %s %s  wind %.1f", snap.Turn, snap.Active, snap.Phase, t.Wind)
	if status != "" {
		line += "  " + status
	}
	c.text(0, y+2, line, styleStatus)
}
