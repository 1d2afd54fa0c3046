package game

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tank-Duel/internal/config"
	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// statusTicks is how long a status message stays on screen.
const statusTicks = 120

// SoundPlayer receives match events worth a sound. *audio.SoundManager
// satisfies it.
type SoundPlayer interface {
	PlayFire()
	PlayExplosion()
	PlayHit()
	ToggleMute() bool
}

type silentPlayer struct{}

func (silentPlayer) PlayFire()        {}
func (silentPlayer) PlayExplosion()   {}
func (silentPlayer) PlayHit()         {}
func (silentPlayer) ToggleMute() bool { return true }

// Game is the ebiten front-end for a hot-seat duel. It drives the match one
// Advance per Update and renders from a snapshot each Draw.
type Game struct {
	width      int
	height     int
	gameWidth  int // playfield width (log panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	match  *duel.Match
	log    *duel.MatchLog
	tuning duel.Tuning
	sound  SoundPlayer
	scene  Scene
	sky    *sky

	showHelp  bool
	muted     bool
	dragging  bool // dial drag in progress
	inspector Inspector

	status      string
	statusUntil uint64

	// copyText writes the match report somewhere the player can paste it.
	copyText func(string) error
}

// New builds a game from cfg. sound may be nil for a silent game.
func New(cfg config.Config, sound SoundPlayer) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := ParseScene(cfg.Window.Scene)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	silent := sound == nil
	if silent {
		sound = silentPlayer{}
	}
	t := cfg.Tuning()
	g := &Game{
		gameWidth:  int(t.Width),
		gameHeight: int(t.Height),
		offX:       borderWidth,
		offY:       borderWidth,
		tuning:     t,
		sound:      sound,
		scene:      scene,
		sky:        skyForNow(t.Width),
		showHelp:   true,
		muted:      silent || !cfg.Audio.Enabled,
		copyText:   clipboard.WriteAll,
	}
	g.width = borderWidth + g.gameWidth + borderWidth + logPanelWidth
	g.height = borderWidth + g.gameHeight + borderWidth
	g.log = duel.NewMatchLog(cfg.Log.Capacity, cfg.Log.Verbose)
	g.match = duel.NewMatch(
		duel.WithTuning(t),
		duel.WithLog(g.log),
		duel.WithFireHandler(func(duel.PlayerID, duel.Projectile) {
			g.sound.PlayFire()
		}),
		duel.WithImpactHandler(func(imp duel.Impact, _ []duel.Damage) {
			g.sound.PlayExplosion()
			if _, ok := imp.Kind.Target(); ok {
				g.sound.PlayHit()
			}
		}),
	)
	return g, nil
}

// Match exposes the running match.
func (g *Game) Match() *duel.Match {
	return g.match
}

// Close tears the match down.
func (g *Game) Close() {
	g.match.Close()
}

func (g *Game) Update() error {
	g.handleInput()
	g.sky.update(g.tuning.Wind)
	g.match.Advance()
	return nil
}

// action is a player command independent of the key that produced it.
type action int

const (
	actMoveLeft action = iota
	actMoveRight
	actAngleUp
	actAngleDown
	actAngleUpFast
	actAngleDownFast
	actPowerUp
	actPowerDown
	actPowerUpFine
	actPowerDownFine
	actWeaponStandard
	actWeaponHeavy
	actWeaponCluster
	actFire
	actReset
	actCopyReport
	actMute
	actToggleHelp
	actToggleInspector
)

// apply runs a on the match for whoever's turn it is. It reports whether
// anything changed.
func (g *Game) apply(a action) bool {
	m := g.match
	id := m.ActivePlayer()
	switch a {
	case actMoveLeft:
		return m.Move(id, duel.Left)
	case actMoveRight:
		return m.Move(id, duel.Right)
	case actAngleUp:
		return m.AdjustAngle(id, 1)
	case actAngleDown:
		return m.AdjustAngle(id, -1)
	case actAngleUpFast:
		return m.AdjustAngle(id, 5)
	case actAngleDownFast:
		return m.AdjustAngle(id, -5)
	case actPowerUp:
		return m.AdjustPower(id, 10)
	case actPowerDown:
		return m.AdjustPower(id, -10)
	case actPowerUpFine:
		return m.AdjustPower(id, 1)
	case actPowerDownFine:
		return m.AdjustPower(id, -1)
	case actWeaponStandard:
		return m.SetWeapon(id, duel.WeaponStandard)
	case actWeaponHeavy:
		return m.SetWeapon(id, duel.WeaponHeavy)
	case actWeaponCluster:
		return m.SetWeapon(id, duel.WeaponCluster)
	case actFire:
		return m.Fire()
	case actReset:
		m.ResetMatch()
		g.setStatus("new match")
		return true
	case actCopyReport:
		return g.copyReport()
	case actMute:
		if _, ok := g.sound.(silentPlayer); ok {
			g.setStatus("no audio device")
			return false
		}
		g.muted = g.sound.ToggleMute()
		if g.muted {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
		return true
	case actToggleHelp:
		g.showHelp = !g.showHelp
		return true
	case actToggleInspector:
		if !g.inspector.selected.Valid() {
			return false
		}
		g.inspector.rawView = !g.inspector.rawView
		return true
	}
	return false
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusUntil = g.match.Tick() + statusTicks
}

// copyReport puts the match report on the clipboard.
func (g *Game) copyReport() bool {
	if err := g.copyText(duel.Report(g.match)); err != nil {
		log.Printf("copy report: %v", err)
		g.setStatus("clipboard unavailable")
		return false
	}
	g.setStatus("match report copied")
	return true
}

// keyRepeat reports a press on the first frame and then every few frames
// while held.
func keyRepeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 18 && d%3 == 0)
}

func shiftHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift)
}

func (g *Game) handleInput() {
	pressed := inpututil.IsKeyJustPressed

	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		g.apply(actMoveLeft)
	}
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		g.apply(actMoveRight)
	}
	if keyRepeat(ebiten.KeyArrowUp) {
		if shiftHeld() {
			g.apply(actAngleUpFast)
		} else {
			g.apply(actAngleUp)
		}
	}
	if keyRepeat(ebiten.KeyArrowDown) {
		if shiftHeld() {
			g.apply(actAngleDownFast)
		} else {
			g.apply(actAngleDown)
		}
	}
	if keyRepeat(ebiten.KeyW) {
		g.apply(actPowerUpFine)
	}
	if keyRepeat(ebiten.KeyS) {
		g.apply(actPowerDownFine)
	}
	if pressed(ebiten.KeyPageUp) || pressed(ebiten.KeyEqual) {
		g.apply(actPowerUp)
	}
	if pressed(ebiten.KeyPageDown) || pressed(ebiten.KeyMinus) {
		g.apply(actPowerDown)
	}
	if pressed(ebiten.Key1) {
		g.apply(actWeaponStandard)
	}
	if pressed(ebiten.Key2) {
		g.apply(actWeaponHeavy)
	}
	if pressed(ebiten.Key3) {
		g.apply(actWeaponCluster)
	}
	if pressed(ebiten.KeySpace) || pressed(ebiten.KeyEnter) {
		g.apply(actFire)
	}
	if pressed(ebiten.KeyR) {
		g.apply(actReset)
	}
	if pressed(ebiten.KeyC) {
		g.apply(actCopyReport)
	}
	if pressed(ebiten.KeyM) {
		g.apply(actMute)
	}
	if pressed(ebiten.KeyH) {
		g.apply(actToggleHelp)
	}
	if pressed(ebiten.KeyI) {
		g.apply(actToggleInspector)
	}

	g.handleDial()
}

// handleDial turns a left-button drag that starts on the dial into absolute
// angle commands. Clicks elsewhere pick a tank for the inspector.
func (g *Game) handleDial() {
	mx, my := ebiten.CursorPosition()
	fx := float64(mx - g.offX)
	fy := float64(my - g.offY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if inDial(fx, fy) {
			g.dragging = g.match.Phase() == duel.PhaseAiming
		} else {
			g.handleInspectorClick(fx, fy)
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		g.dragDial(fx, fy)
	}
}

// dragDial aims the active tank at the pointer position around the dial.
func (g *Game) dragDial(fx, fy float64) bool {
	return g.match.SetAngle(g.match.ActivePlayer(), DialAngle(dialCX, dialCY, fx, fy))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 20, A: 255})

	s := g.match.Snapshot()
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	field := screen.SubImage(image.Rect(g.offX, g.offY, g.offX+g.gameWidth, g.offY+g.gameHeight)).(*ebiten.Image)

	p := paletteFor(g.scene, g.sky.night)
	g.sky.draw(field, ox, oy, gw, gh, p)
	drawTerrain(field, g.match.Terrain(), ox, oy, g.tuning.Height, p)

	for _, id := range duel.Players() {
		c := s.Combatant(id)
		active := id == s.Active && s.Outcome == duel.OutcomeInProgress
		drawTank(field, c, g.match.TerrainHeight(c.PositionX), ox, oy, g.tuning, active)
	}
	if s.HasProjectile {
		drawShell(field, s.Projectile, ox, oy)
	}
	if s.HasExplosion {
		drawExplosion(field, s.Explosion, s.Tick, g.tuning.TicksPerSecond, ox, oy)
	}

	g.drawHUD(field, s)
	g.drawInspector(screen, s)
	if s.Outcome != duel.OutcomeInProgress && !s.HasExplosion {
		drawBanner(field, s.Outcome, ox, oy, gw, gh)
	}

	borderCol := color.RGBA{R: 48, G: 43, B: 99, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, borderCol, false)

	drawLogPanel(screen, g.log, g.offX+g.gameWidth+g.offX, g.height)
}

func (g *Game) drawHUD(dst *ebiten.Image, s duel.Snapshot) {
	x0, y0 := g.offX+12, g.offY+10
	x1 := g.offX + g.gameWidth - 12
	drawPlayerCard(dst, s.Combatant(duel.Player1), g.tuning, x0, y0, s.Active == duel.Player1, false)
	drawPlayerCard(dst, s.Combatant(duel.Player2), g.tuning, x1, y0, s.Active == duel.Player2, true)

	ox, oy := float32(g.offX), float32(g.offY)
	active := s.Combatant(s.Active)
	aiming := s.Phase == duel.PhaseAiming && s.Outcome == duel.OutcomeInProgress
	drawDial(dst, ox, oy, active.AimAngle, aiming)
	drawPowerBar(dst, active.Power, g.tuning.MaxPower, ox+dialCX+dialRadius+14, oy+dialCY-40)

	turn := fmt.Sprintf("turn %d  %s  %s", s.Turn, s.Active, s.Phase)
	drawText(dst, turn, g.offX+int(dialCX)-textWidth(turn)/2, g.offY+int(dialCY+dialRadius)+18, color.White)
	wind := fmt.Sprintf("wind %+.1f  gravity %.1f  %s", g.tuning.Wind, g.tuning.Gravity, g.scene)
	if g.muted {
		wind += "  muted"
	}
	drawText(dst, wind, g.offX+int(dialCX)-textWidth(wind)/2, g.offY+int(dialCY+dialRadius)+32, inactiveText)

	if g.status != "" && s.Tick < g.statusUntil {
		drawText(dst, g.status, g.offX+int(dialCX)-textWidth(g.status)/2, g.offY+int(dialCY+dialRadius)+48, powerBarColor)
	}

	if g.showHelp {
		help := []string{
			"A/D move  Up/Down angle (Shift x5)  drag dial",
			"W/S power  PgUp/PgDn power x10  1/2/3 weapon",
			"Space fire  R reset  C copy report  M mute  H help",
			"click a tank to inspect  I raw/curated view",
		}
		hy := g.offY + g.gameHeight - 8 - len(help)*12
		vector.FillRect(dst, ox+6, float32(hy-4), float32(textWidth(help[3])+12), float32(len(help)*12+8), panelBackColor, false)
		for i, l := range help {
			ebitenutil.DebugPrintAt(dst, l, g.offX+12, hy+i*12)
		}
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the unscaled window size the game lays out to.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
