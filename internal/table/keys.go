package table

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key event the way keymaps in config.toml do: "ctrl+v",
// "shift+tab", "shift+up", "f2", ":".
func keyString(ev *tcell.EventKey) string {
	mod := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mod&tcell.ModCtrl != 0 {
			return "ctrl+" + strings.ToLower(string(r))
		}
		if mod&tcell.ModAlt != 0 {
			return "alt+" + string(r)
		}
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	prefix := ""
	if mod&tcell.ModShift != 0 {
		prefix = "shift+"
	}
	// Keys sharing a code with ctrl+letter come first.
	switch ev.Key() {
	case tcell.KeyTab:
		return prefix + "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return prefix + "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyUp:
		return prefix + "up"
	case tcell.KeyDown:
		return prefix + "down"
	case tcell.KeyLeft:
		return prefix + "left"
	case tcell.KeyRight:
		return prefix + "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyF1:
		return "f1"
	case tcell.KeyF2:
		return "f2"
	case tcell.KeyF5:
		return "f5"
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	}
	return ""
}

// printable reports whether the event types a character into a cell.
func printable(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return false
	}
	return unicode.IsPrint(ev.Rune())
}
