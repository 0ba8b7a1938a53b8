// Package textfield is a single-line editable text input drawn on a tcell
// screen. It owns the text, cursor and selection and tells subscribers about
// keys before handling them and about every content change after it.
package textfield

import (
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/livenum/internal/keys"
)

type changeSub struct {
	id int
	fn func()
}

type keySub struct {
	id int
	fn func(*tcell.EventKey) bool
}

// Styles used by Render.
type Styles struct {
	Text      tcell.Style
	Selection tcell.Style
}

type Field struct {
	text []rune
	// selection runs from anchor to cursor; anchor == cursor means none
	anchor int
	cursor int
	// first visible rune when the text is wider than the field
	offset int

	changeFns []changeSub
	keyFns    []keySub
	nextID    int

	// ReadClipboard supplies the text for Paste.
	ReadClipboard func() (string, error)
}

func New(text string) *Field {
	f := &Field{
		text:          []rune(sanitize(text)),
		ReadClipboard: clipboard.ReadAll,
	}
	f.cursor = len(f.text)
	f.anchor = f.cursor
	return f
}

func (f *Field) Text() string {
	return string(f.text)
}

// SetText replaces the contents. The selection is clamped to the new text.
func (f *Field) SetText(text string) {
	f.text = []rune(sanitize(text))
	f.anchor = f.clamp(f.anchor)
	f.cursor = f.clamp(f.cursor)
	f.changed()
}

// Selection returns the selected range in ascending order. With nothing
// selected both values are the cursor.
func (f *Field) Selection() (start, end int) {
	if f.anchor <= f.cursor {
		return f.anchor, f.cursor
	}
	return f.cursor, f.anchor
}

// SetSelection selects start..end and leaves the cursor at end.
func (f *Field) SetSelection(start, end int) {
	f.anchor = f.clamp(start)
	f.cursor = f.clamp(end)
}

func (f *Field) Cursor() int {
	return f.cursor
}

func (f *Field) HasSelection() bool {
	return f.anchor != f.cursor
}

func (f *Field) SelectAll() {
	f.anchor = 0
	f.cursor = len(f.text)
}

// OnChange subscribes fn to content changes. cancel removes the
// subscription and may be called more than once.
func (f *Field) OnChange(fn func()) (cancel func()) {
	f.nextID++
	id := f.nextID
	f.changeFns = append(f.changeFns, changeSub{id: id, fn: fn})
	return func() {
		// a fresh slice, so a notification loop in progress is not disturbed
		kept := make([]changeSub, 0, len(f.changeFns))
		for _, sub := range f.changeFns {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		f.changeFns = kept
	}
}

// OnKey subscribes fn to keys before the field handles them. fn returns true
// to stop the field from handling the key.
func (f *Field) OnKey(fn func(*tcell.EventKey) bool) (cancel func()) {
	f.nextID++
	id := f.nextID
	f.keyFns = append(f.keyFns, keySub{id: id, fn: fn})
	return func() {
		kept := make([]keySub, 0, len(f.keyFns))
		for _, sub := range f.keyFns {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		f.keyFns = kept
	}
}

func (f *Field) changed() {
	for _, sub := range f.changeFns {
		sub.fn()
	}
}

// HandleKey feeds a key to the subscribers and then to the field's own
// editing. It reports whether the key was consumed by either.
func (f *Field) HandleKey(ev *tcell.EventKey) bool {
	for _, sub := range f.keyFns {
		if sub.fn(ev) {
			return true
		}
	}

	shift := ev.Modifiers()&tcell.ModShift != 0
	switch {
	case keys.IsBackspace(ev):
		f.deleteBackward()
	case ev.Key() == tcell.KeyDelete:
		f.deleteForward()
	case ev.Key() == tcell.KeyLeft:
		f.move(f.cursor-1, shift)
	case ev.Key() == tcell.KeyRight:
		f.move(f.cursor+1, shift)
	case ev.Key() == tcell.KeyHome:
		f.move(0, shift)
	case ev.Key() == tcell.KeyEnd:
		f.move(len(f.text), shift)
	case ev.Key() == tcell.KeyRune && keys.Plain(ev):
		f.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}

// Insert replaces the selection with s, or inserts it at the cursor.
func (f *Field) Insert(s string) {
	rs := []rune(sanitize(s))
	start, end := f.Selection()
	if len(rs) == 0 && start == end {
		return
	}
	f.replace(start, end, rs)
}

// Paste inserts the clipboard contents.
func (f *Field) Paste() error {
	text, err := f.ReadClipboard()
	if err != nil {
		return err
	}
	f.Insert(text)
	return nil
}

func (f *Field) deleteBackward() {
	start, end := f.Selection()
	switch {
	case start != end:
		f.replace(start, end, nil)
	case start > 0:
		f.replace(start-1, start, nil)
	}
}

func (f *Field) deleteForward() {
	start, end := f.Selection()
	switch {
	case start != end:
		f.replace(start, end, nil)
	case start < len(f.text):
		f.replace(start, start+1, nil)
	}
}

func (f *Field) move(pos int, extend bool) {
	if !extend && f.HasSelection() {
		// collapse to the side the arrow points at
		start, end := f.Selection()
		if pos < f.cursor {
			pos = start
		} else if pos > f.cursor {
			pos = end
		}
	}
	f.cursor = f.clamp(pos)
	if !extend {
		f.anchor = f.cursor
	}
}

func (f *Field) replace(from, to int, rs []rune) {
	out := make([]rune, 0, len(f.text)-(to-from)+len(rs))
	out = append(out, f.text[:from]...)
	out = append(out, rs...)
	out = append(out, f.text[to:]...)
	f.text = out
	f.cursor = from + len(rs)
	f.anchor = f.cursor
	f.changed()
}

func (f *Field) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(f.text) {
		return len(f.text)
	}
	return pos
}

// sanitize drops control characters such as newlines and tabs from pasted text.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Render draws the field at x,y, width cells wide, scrolled so the cursor is
// visible, and places the terminal cursor.
func (f *Field) Render(s tcell.Screen, x, y, width int, st Styles) {
	if width < 1 {
		return
	}
	// the cursor may sit one past the last rune
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+width {
		f.offset = f.cursor - width + 1
	}
	if f.offset > len(f.text) {
		f.offset = len(f.text)
	}

	start, end := f.Selection()
	for col := 0; col < width; col++ {
		idx := f.offset + col
		r := ' '
		style := st.Text
		if idx < len(f.text) {
			r = f.text[idx]
			if idx >= start && idx < end {
				style = st.Selection
			}
		}
		s.SetContent(x+col, y, r, nil, style)
	}
	s.ShowCursor(x+f.cursor-f.offset, y)
}
