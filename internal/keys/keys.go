package keys

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// String names a key event the way keymaps spell it: "ctrl+z", "shift+left",
// "backspace", "5". It returns "" for keys that have no name.
func String(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	shift := mods&tcell.ModShift != 0

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		switch {
		case mods&tcell.ModCtrl != 0:
			name = strings.ToLower(name)
			if shift || (r >= 'A' && r <= 'Z') {
				return "ctrl+shift+" + name
			}
			return "ctrl+" + name
		case mods&tcell.ModAlt != 0:
			return "alt+" + name
		case mods&tcell.ModMeta != 0:
			return "cmd+" + strings.ToLower(name)
		}
		return name
	}

	// Backspace, Tab, Enter and Esc share codes with ctrl+letter keys, so
	// they are named first.
	var name string
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyEscape:
		name = "esc"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pgup"
	case tcell.KeyPgDn:
		name = "pgdn"
	case tcell.KeyDelete:
		name = "del"
	case tcell.KeyInsert:
		name = "insert"
	default:
		if letter := ctrlLetter(ev); letter != 0 {
			if shift {
				return "ctrl+shift+" + string(letter)
			}
			return "ctrl+" + string(letter)
		}
		return ""
	}

	var prefix strings.Builder
	if mods&tcell.ModMeta != 0 {
		prefix.WriteString("cmd+")
	}
	if mods&tcell.ModCtrl != 0 {
		prefix.WriteString("ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		prefix.WriteString("alt+")
	}
	if shift {
		prefix.WriteString("shift+")
	}
	return prefix.String() + name
}

// ctrlLetter recovers the letter of a control key. Terminals deliver these
// either as KeyCtrlA..KeyCtrlZ or as a raw control code carrying the letter.
func ctrlLetter(ev *tcell.EventKey) rune {
	k := ev.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return 'a' + rune(k-tcell.KeyCtrlA)
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if r := ev.Rune(); r >= 'a' && r <= 'z' {
			return r
		}
	}
	return 0
}

// IsBackspace reports whether ev deletes backwards.
func IsBackspace(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2
}

// Plain reports whether ev carries no modifier other than shift.
func Plain(ev *tcell.EventKey) bool {
	return ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0
}
