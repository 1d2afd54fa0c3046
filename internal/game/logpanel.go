package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

const (
	logPanelWidth = 320
	logLineHeight = 11
	logHighlight  = 3 // newest entries drawn on a highlighted row
)

// logLine renders one match event compactly for the side panel.
func logLine(e duel.MatchLogEntry) string {
	if e.Value == "" {
		return fmt.Sprintf("%4d %s %s", e.Tick, e.Category, e.Key)
	}
	return fmt.Sprintf("%4d %s %s %s", e.Tick, e.Category, e.Key, e.Value)
}

// drawLogPanel renders the match log on the right side of the screen,
// newest at the bottom.
func drawLogPanel(screen *ebiten.Image, ml *duel.MatchLog, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 50, B: 100, A: 200}, false)

	maxVisible := (panelH - 24) / logLineHeight
	visible := ml.Recent(maxVisible)

	y := 20
	for i, e := range visible {
		if i >= len(visible)-logHighlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 30, B: 50, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, entryColor(e), false)
		ebitenutil.DebugPrintAt(screen, logLine(e), panelX+12, y)
		y += logLineHeight
	}
}

// entryColor is the player colour for an entry, grey for match-wide events.
func entryColor(e duel.MatchLogEntry) color.RGBA {
	switch e.Player {
	case duel.Player1.String():
		return playerColors[0]
	case duel.Player2.String():
		return playerColors[1]
	default:
		return inactiveText
	}
}
