package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rotary aiming dial, in playfield coordinates.
const (
	dialCX     = 400.0
	dialCY     = 70.0
	dialRadius = 44.0
)

// DialAngle converts a pointer position around a dial centre into a barrel
// angle: 0 points up, 90 right, 180 down.
func DialAngle(cx, cy, px, py float64) float64 {
	deg := math.Atan2(py-cy, px-cx)*180/math.Pi + 90 + 360
	return math.Mod(deg, 360)
}

// inDial reports whether (px,py) lies on the dial face.
func inDial(px, py float64) bool {
	return math.Hypot(px-dialCX, py-dialCY) <= dialRadius
}

func drawDial(dst *ebiten.Image, ox, oy float32, angle float64, active bool) {
	cx, cy := ox+dialCX, oy+dialCY
	vector.FillCircle(dst, cx, cy, dialRadius, panelBackColor, true)
	col := dialColor
	if !active {
		col = scaleAlpha(col, 0.4)
	}
	vector.StrokeCircle(dst, cx, cy, dialRadius, 3, col, true)

	// Tick marks every 45°.
	for deg := 0; deg < 360; deg += 45 {
		r := float64(deg-90) * math.Pi / 180
		x0 := cx + float32(math.Cos(r)*(dialRadius-8))
		y0 := cy + float32(math.Sin(r)*(dialRadius-8))
		x1 := cx + float32(math.Cos(r)*(dialRadius-2))
		y1 := cy + float32(math.Sin(r)*(dialRadius-2))
		vector.StrokeLine(dst, x0, y0, x1, y1, 2, inactiveText, true)
	}

	r := (angle - 90) * math.Pi / 180
	nx := cx + float32(math.Cos(r)*(dialRadius-10))
	ny := cy + float32(math.Sin(r)*(dialRadius-10))
	vector.StrokeLine(dst, cx, cy, nx, ny, 3, col, true)
	vector.FillCircle(dst, nx, ny, 4, col, true)
}
