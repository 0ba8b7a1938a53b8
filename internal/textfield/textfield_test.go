package textfield

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/livenum/internal/history"
	"github.com/kobzarvs/livenum/internal/livefmt"
	"github.com/kobzarvs/livenum/internal/numfmt"
)

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(f *Field, s string) {
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func TestEditing(t *testing.T) {
	f := New("")
	typeText(f, "abc")
	assert.Equal(t, "abc", f.Text())
	assert.Equal(t, 3, f.Cursor())

	f.HandleKey(key(tcell.KeyLeft, tcell.ModNone))
	f.HandleKey(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Equal(t, "ac", f.Text())
	assert.Equal(t, 1, f.Cursor())

	f.HandleKey(key(tcell.KeyDelete, tcell.ModNone))
	assert.Equal(t, "a", f.Text())

	f.HandleKey(key(tcell.KeyHome, tcell.ModNone))
	typeText(f, "x")
	assert.Equal(t, "xa", f.Text())
}

func TestShiftSelection(t *testing.T) {
	f := New("12345")
	f.HandleKey(key(tcell.KeyLeft, tcell.ModShift))
	f.HandleKey(key(tcell.KeyLeft, tcell.ModShift))
	start, end := f.Selection()
	assert.Equal(t, [2]int{3, 5}, [2]int{start, end})

	typeText(f, "9")
	assert.Equal(t, "1239", f.Text(), "typing replaces the selection")

	f.SelectAll()
	f.HandleKey(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Empty(t, f.Text())
}

func TestArrowCollapsesSelection(t *testing.T) {
	f := New("12345")
	f.SetSelection(1, 4)
	f.HandleKey(key(tcell.KeyLeft, tcell.ModNone))
	start, end := f.Selection()
	assert.Equal(t, [2]int{1, 1}, [2]int{start, end})
}

func TestChangeAndKeySubscribers(t *testing.T) {
	f := New("")
	changes := 0
	cancelChange := f.OnChange(func() { changes++ })
	f.OnKey(func(ev *tcell.EventKey) bool { return ev.Rune() == 'x' })

	typeText(f, "axb")
	assert.Equal(t, "ab", f.Text())
	assert.Equal(t, 2, changes)

	f.SetText("zz")
	assert.Equal(t, 3, changes, "SetText notifies")

	cancelChange()
	typeText(f, "c")
	assert.Equal(t, 3, changes, "cancelled subscriber still notified")
}

func TestCancelRemovesSubscribers(t *testing.T) {
	f := New("")
	keep := 0
	f.OnChange(func() { keep++ })
	for i := 0; i < 10; i++ {
		cancelChange := f.OnChange(func() {})
		cancelKey := f.OnKey(func(*tcell.EventKey) bool { return false })
		cancelChange()
		cancelKey()
		cancelKey()
	}
	assert.Len(t, f.changeFns, 1)
	assert.Empty(t, f.keyFns)

	// cancelling from inside a notification still lets the loop finish
	var cancelSelf func()
	cancelSelf = f.OnChange(func() { cancelSelf() })
	f.SetText("1")
	f.SetText("2")
	assert.Equal(t, 2, keep)
	assert.Len(t, f.changeFns, 1)
}

func TestReattachKeepsSubscribersBounded(t *testing.T) {
	f := New("")
	sched := history.NewManual()
	for i := 0; i < 5; i++ {
		l := livefmt.Attach(f, numfmt.DefaultConfig(), livefmt.WithScheduler(sched))
		l.Detach()
	}
	l := livefmt.Attach(f, numfmt.DefaultConfig(), livefmt.WithScheduler(sched))
	defer l.Detach()

	assert.Len(t, f.changeFns, 1)
	assert.Len(t, f.keyFns, 1)
	typeText(f, "1234")
	assert.Equal(t, "1,234", f.Text())
}

func TestPaste(t *testing.T) {
	f := New("1")
	f.ReadClipboard = func() (string, error) { return "23\n4", nil }
	require.NoError(t, f.Paste())
	assert.Equal(t, "1234", f.Text())

	f.ReadClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	assert.Error(t, f.Paste())
	assert.Equal(t, "1234", f.Text(), "failed paste changed text")
}

func TestRenderScrollsToCursor(t *testing.T) {
	s := newScreen(t, 10, 1)

	f := New("123456789")
	f.Render(s, 0, 0, 5, Styles{})
	s.Show()

	cells, _, _ := s.GetContents()
	require.NotEmpty(t, cells[0].Runes)
	assert.Equal(t, '6', cells[0].Runes[0], "first visible rune")
	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, [2]int{4, 0}, [2]int{x, y})
}

func TestRenderSelectionStyle(t *testing.T) {
	s := newScreen(t, 10, 1)

	sel := tcell.StyleDefault.Background(tcell.ColorBlue)
	f := New("abc")
	f.SetSelection(1, 2)
	f.Render(s, 0, 0, 10, Styles{Text: tcell.StyleDefault, Selection: sel})
	s.Show()

	cells, _, _ := s.GetContents()
	_, bg, _ := cells[1].Style.Decompose()
	assert.Equal(t, tcell.ColorBlue, bg, "selected cell background")
	_, bg, _ = cells[0].Style.Decompose()
	assert.NotEqual(t, tcell.ColorBlue, bg, "unselected cell background")
}

func TestLiveFormatting(t *testing.T) {
	f := New("")
	sched := history.NewManual()
	l := livefmt.Attach(f, numfmt.DefaultConfig(), livefmt.WithScheduler(sched))
	defer l.Detach()

	typeText(f, "12345")
	assert.Equal(t, "12,345", f.Text())
	f.HandleKey(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Equal(t, "1,234", f.Text())
	assert.Equal(t, 5, f.Cursor())

	sched.Advance(numfmt.DefaultDebounce)
	f.ReadClipboard = func() (string, error) { return "99", nil }
	require.NoError(t, f.Paste())
	assert.Equal(t, "123,499", f.Text())

	f.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModCtrl))
	assert.Equal(t, "1,234", f.Text(), "undo")
}
