package term

import "github.com/gdamore/tcell/v2"

type action int

const (
	actNone action = iota
	actQuit
	actMoveLeft
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
	actMute
)

var runeActions = map[rune]action{
	'a': actMoveLeft,
	'd': actMoveRight,
	'w': actPowerUpFine,
	's': actPowerDownFine,
	'=': actPowerUp,
	'+': actPowerUp,
	'-': actPowerDown,
	'1': actWeaponStandard,
	'2': actWeaponHeavy,
	'3': actWeaponCluster,
	' ': actFire,
	'r': actReset,
	'm': actMute,
	'q': actQuit,
}

// keyAction maps a key event to a command.
func keyAction(ev *tcell.EventKey) action {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyLeft:
		return actMoveLeft
	case tcell.KeyRight:
		return actMoveRight
	case tcell.KeyUp:
		if shift {
			return actAngleUpFast
		}
		return actAngleUp
	case tcell.KeyDown:
		if shift {
			return actAngleDownFast
		}
		return actAngleDown
	case tcell.KeyPgUp:
		return actPowerUp
	case tcell.KeyPgDn:
		return actPowerDown
	case tcell.KeyEnter:
		return actFire
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'A', 'D', 'W', 'S', 'R', 'M':
			r += 'a' - 'A'
		}
		return runeActions[r]
	}
	return actNone
}
