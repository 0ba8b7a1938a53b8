package livefmt

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/livenum/internal/keys"
)

// handleKey runs before the field handles ev. It reports true when the
// field must not handle the key itself.
func (l *LiveFormat) handleKey(ev *tcell.EventKey) bool {
	if l.detached {
		return false
	}
	l.deletion = false

	switch l.keymap[keys.String(ev)] {
	case ActionUndo:
		l.Undo()
		return true
	case ActionRedo:
		l.Redo()
		return true
	}

	switch {
	case keys.IsBackspace(ev):
		l.deletion = true
		return false
	case ev.Key() == tcell.KeyLeft && ev.Modifiers() == tcell.ModNone:
		return l.skipLeft()
	case ev.Key() == tcell.KeyRight && ev.Modifiers() == tcell.ModNone:
		return l.skipRight()
	case ev.Key() == tcell.KeyDelete:
		return l.skipSeparator()
	case ev.Key() == tcell.KeyRune && keys.Plain(ev):
		return l.filterRune(ev.Rune())
	}
	return false
}

// skipLeft steps over a separator together with the digit before it, so the
// cursor never lands right after a separator.
func (l *LiveFormat) skipLeft() bool {
	text := []rune(l.field.Text())
	start, _ := l.field.Selection()
	if start-2 < 0 || start-2 >= len(text) {
		return false
	}
	if text[start-2] != l.cfg.GroupSeparator {
		return false
	}
	l.setCursor(start - 2)
	return true
}

func (l *LiveFormat) skipRight() bool {
	text := []rune(l.field.Text())
	start, _ := l.field.Selection()
	if start < 0 || start >= len(text) || text[start] != l.cfg.GroupSeparator {
		return false
	}
	l.setCursor(start + 2)
	return true
}

// skipSeparator moves a forward delete past the separator under the cursor
// onto the digit after it.
func (l *LiveFormat) skipSeparator() bool {
	text := []rune(l.field.Text())
	start, _ := l.field.Selection()
	if start <= 0 || start >= len(text) || text[start] != l.cfg.GroupSeparator {
		return false
	}
	l.setCursor(start + 1)
	return true
}

func (l *LiveFormat) filterRune(r rune) bool {
	if r == l.cfg.DecimalMark {
		if !l.cfg.DecimalsEnabled() {
			return true
		}
		return !l.cfg.AllowDecimalReplacement && l.hasDecimalMark()
	}
	if r >= '0' && r <= '9' {
		return l.digitRefused()
	}
	return false
}

func (l *LiveFormat) hasDecimalMark() bool {
	for _, r := range l.field.Text() {
		if r == l.cfg.DecimalMark {
			return true
		}
	}
	return false
}

// digitRefused reports whether a digit typed at the cursor would exceed the
// limit of the part it lands in. The check counts digits already present, so
// the keystroke that would go past the limit is the one refused. Typing over
// a selection is always allowed.
func (l *LiveFormat) digitRefused() bool {
	start, end := l.field.Selection()
	if start != end {
		return false
	}

	mark := -1
	intDigits, decDigits := 0, 0
	for i, r := range []rune(l.field.Text()) {
		switch {
		case r == l.cfg.DecimalMark && mark < 0:
			mark = i
		case r >= '0' && r <= '9':
			if mark < 0 {
				intDigits++
			} else {
				decDigits++
			}
		}
	}

	if mark < 0 || start <= mark {
		return l.cfg.IntegerFull(intDigits)
	}
	return l.cfg.DecimalFull(decDigits)
}
