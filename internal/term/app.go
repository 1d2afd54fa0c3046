// Package term is a character-cell front-end for a hot-seat duel. It runs
// the same match as the windowed game on any terminal tcell supports.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Tank-Duel/internal/config"
	"github.com/Garsondee/Tank-Duel/internal/duel"
)

const statusTicks = 90

// Sounds receives match events worth a sound. *audio.SoundManager
// satisfies it.
type Sounds interface {
	PlayFire()
	PlayExplosion()
	PlayHit()
	PlayDenied()
	ToggleMute() bool
}

type quiet struct{}

func (quiet) PlayFire()        {}
func (quiet) PlayExplosion()   {}
func (quiet) PlayHit()         {}
func (quiet) PlayDenied()      {}
func (quiet) ToggleMute() bool { return true }

// App drives a match at a fixed tick rate and draws it on a tcell screen.
type App struct {
	screen tcell.Screen
	match  *duel.Match
	canvas *canvas
	sound  Sounds
	tps    int

	status      string
	statusUntil uint64
}

// New builds an app on an initialised screen. sound may be nil.
func New(screen tcell.Screen, cfg config.Config, sound Sounds) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sound == nil {
		sound = quiet{}
	}
	w, h := screen.Size()
	a := &App{
		screen: screen,
		canvas: newCanvas(w, h),
		sound:  sound,
		tps:    cfg.Sim.TicksPerSecond,
	}
	a.match = duel.NewMatch(
		duel.WithTuning(cfg.Tuning()),
		duel.WithLog(duel.NewMatchLog(cfg.Log.Capacity, cfg.Log.Verbose)),
		duel.WithFireHandler(func(duel.PlayerID, duel.Projectile) {
			a.sound.PlayFire()
		}),
		duel.WithImpactHandler(func(imp duel.Impact, ds []duel.Damage) {
			a.sound.PlayExplosion()
			if _, ok := imp.Kind.Target(); ok {
				a.sound.PlayHit()
			}
			for _, d := range ds {
				a.setStatus(fmt.Sprintf("%s -%d", d.Player, d.Amount))
			}
		}),
	)
	return a, nil
}

// Match exposes the running match.
func (a *App) Match() *duel.Match {
	return a.match
}

// Run processes input and advances the match until the player quits or ctx
// is cancelled. The match is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.match.Close()

	ticker := time.NewTicker(time.Second / time.Duration(a.tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.step()
		}
	}
}

// step advances the match one tick and redraws.
func (a *App) step() {
	a.match.Advance()
	if a.status != "" && a.match.Tick() >= a.statusUntil {
		a.status = ""
	}
	a.draw()
}

func (a *App) draw() {
	render(a.canvas, a.match, a.status)
	a.canvas.flush(a.screen)
}

// handleEvent reports false when the app should exit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(keyAction(ev))
	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.canvas.resize(w, h)
		a.screen.Sync()
	}
	return true
}

// apply runs act for the active player. Refused match commands beep.
func (a *App) apply(act action) bool {
	m := a.match
	id := m.ActivePlayer()
	ok := true
	switch act {
	case actNone:
		return true
	case actQuit:
		return false
	case actMoveLeft:
		ok = m.Move(id, duel.Left)
	case actMoveRight:
		ok = m.Move(id, duel.Right)
	case actAngleUp:
		ok = m.AdjustAngle(id, 1)
	case actAngleDown:
		ok = m.AdjustAngle(id, -1)
	case actAngleUpFast:
		ok = m.AdjustAngle(id, 5)
	case actAngleDownFast:
		ok = m.AdjustAngle(id, -5)
	case actPowerUp:
		ok = m.AdjustPower(id, 10)
	case actPowerDown:
		ok = m.AdjustPower(id, -10)
	case actPowerUpFine:
		ok = m.AdjustPower(id, 1)
	case actPowerDownFine:
		ok = m.AdjustPower(id, -1)
	case actWeaponStandard:
		ok = m.SetWeapon(id, duel.WeaponStandard)
	case actWeaponHeavy:
		ok = m.SetWeapon(id, duel.WeaponHeavy)
	case actWeaponCluster:
		ok = m.SetWeapon(id, duel.WeaponCluster)
	case actFire:
		ok = m.Fire()
	case actReset:
		m.ResetMatch()
		a.setStatus("new match")
	case actMute:
		if _, silent := a.sound.(quiet); silent {
			a.setStatus("no audio device")
		} else if a.sound.ToggleMute() {
			a.setStatus("sound off")
		} else {
			a.setStatus("sound on")
		}
	}
	if !ok {
		a.sound.PlayDenied()
	}
	return true
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusUntil = a.match.Tick() + statusTicks
}
