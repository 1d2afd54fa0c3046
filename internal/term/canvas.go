package term

import (
	"github.com/gdamore/tcell/v2"
)

type cell struct {
	r     rune
	style tcell.Style
}

// canvas is an off-screen character grid. Frames are composed here and then
// copied to the screen in one pass.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{}
	c.resize(w, h)
	return c
}

func (c *canvas) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]cell, w*h)
	c.clear()
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', style: tcell.StyleDefault}
	}
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) set(x, y int, r rune, style tcell.Style) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: style}
}

func (c *canvas) at(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y*c.w+x].r
}

func (c *canvas) styleAt(x, y int) tcell.Style {
	if !c.inside(x, y) {
		return tcell.StyleDefault
	}
	return c.cells[y*c.w+x].style
}

// text writes s starting at (x, y), clipped to the row.
func (c *canvas) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.set(x, y, r, style)
		x++
	}
}

// row returns row y as a string, for tests and debugging.
func (c *canvas) row(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	rs := make([]rune, c.w)
	for x := 0; x < c.w; x++ {
		rs[x] = c.cells[y*c.w+x].r
	}
	return string(rs)
}

func (c *canvas) flush(s tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			s.SetContent(x, y, cl.r, nil, cl.style)
		}
	}
	s.Show()
}
