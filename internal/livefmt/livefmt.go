// Package livefmt keeps a text field formatted as a number while it is being
// edited. It reformats the field on every change, keeps the cursor where the
// user expects it, filters keys that would break the number and records a
// debounced undo/redo history.
package livefmt

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/kobzarvs/livenum/internal/history"
	"github.com/kobzarvs/livenum/internal/logger"
	"github.com/kobzarvs/livenum/internal/numfmt"
)

// Field is the editable text a LiveFormat is attached to. Offsets are rune
// offsets into Text.
//
// OnChange handlers run after every content change, including changes made
// through SetText. OnKey handlers run before a key modifies the field; a
// handler returning true suppresses the field's own handling of the key.
type Field interface {
	Text() string
	SetText(text string)
	Selection() (start, end int)
	SetSelection(start, end int)
	OnChange(fn func()) (cancel func())
	OnKey(fn func(ev *tcell.EventKey) bool) (cancel func())
}

const (
	ActionUndo = "undo"
	ActionRedo = "redo"
)

// DefaultKeymap binds the history actions.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"ctrl+z":       ActionUndo,
		"ctrl+y":       ActionRedo,
		"ctrl+shift+z": ActionRedo,
	}
}

type options struct {
	sched  history.Scheduler
	keymap map[string]string
}

type Option func(*options)

// WithScheduler sets where debounced history snapshots are scheduled.
func WithScheduler(s history.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithKeymap binds key names to ActionUndo and ActionRedo. Entries with
// other actions are ignored.
func WithKeymap(keymap map[string]string) Option {
	return func(o *options) { o.keymap = keymap }
}

// LiveFormat is one field kept under live formatting. It is not safe for
// concurrent use; every method and field callback must run on the goroutine
// that owns the field.
type LiveFormat struct {
	field   Field
	cfg     numfmt.Config
	fmt     *numfmt.Formatter
	hist    *history.Manager
	keymap  map[string]string
	cancels []func()

	// deletion is set by a backspace and cleared by the next key
	deletion bool
	// writing is set while the field is written from here, so the
	// resulting change notification is not taken for a user edit
	writing  bool
	detached bool
}

// Attach binds a formatter to field. Text already in the field is formatted
// right away and the cursor is put at its end.
func Attach(field Field, cfg numfmt.Config, opts ...Option) *LiveFormat {
	o := options{keymap: DefaultKeymap()}
	for _, opt := range opts {
		opt(&o)
	}

	f := numfmt.New(cfg)
	cfg = f.Config()
	l := &LiveFormat{
		field:  field,
		cfg:    cfg,
		fmt:    f,
		hist:   history.NewManager(cfg.MaxHistoryDepth, cfg.Debounce, o.sched),
		keymap: make(map[string]string, len(o.keymap)),
	}
	for name, action := range o.keymap {
		if action == ActionUndo || action == ActionRedo {
			l.keymap[name] = action
		}
	}

	l.formatInitial()

	l.cancels = append(l.cancels,
		field.OnChange(l.handleChange),
		field.OnKey(l.handleKey),
	)
	logger.Debug("livefmt attached",
		"style", cfg.Grouping.String(),
		"integerLimit", cfg.IntegerLimit,
		"decimalLimit", cfg.DecimalLimit,
	)
	return l
}

// Detach unsubscribes from the field and drops the pending snapshot. Later
// calls on l, and any snapshot timer that still fires, do nothing.
func (l *LiveFormat) Detach() {
	if l.detached {
		return
	}
	l.detached = true
	for _, cancel := range l.cancels {
		cancel()
	}
	l.cancels = nil
	l.hist.Close()
	logger.Debug("livefmt detached")
}

func (l *LiveFormat) Config() numfmt.Config {
	return l.cfg
}

// RawValue returns the text as displayed, separators included.
func (l *LiveFormat) RawValue() string {
	return l.field.Text()
}

// Float returns the displayed number, or 0 when the text holds none.
func (l *LiveFormat) Float() float64 {
	return numfmt.Float(l.field.Text(), l.cfg)
}

// Decimal is Float without the float64 rounding.
func (l *LiveFormat) Decimal() decimal.Decimal {
	return numfmt.Value(l.field.Text(), l.cfg)
}

// HistoryLen returns the number of undo and redo steps available.
func (l *LiveFormat) HistoryLen() (undo, redo int) {
	return l.hist.Len()
}

// Undo restores the previous snapshot. A snapshot still waiting for its
// debounce delay is committed first so the latest edit can be undone.
func (l *LiveFormat) Undo() {
	if l.detached {
		return
	}
	l.hist.Flush()
	e, ok := l.hist.Undo()
	if !ok {
		return
	}
	l.write(e.Text, e.Cursor)
	logger.Debug("undo", "text", e.Text, "cursor", e.Cursor)
}

// Redo reapplies the last undone snapshot.
func (l *LiveFormat) Redo() {
	if l.detached {
		return
	}
	l.hist.Flush()
	e, ok := l.hist.Redo()
	if !ok {
		return
	}
	l.write(e.Text, e.Cursor)
	logger.Debug("redo", "text", e.Text, "cursor", e.Cursor)
}

func (l *LiveFormat) handleChange() {
	if l.writing || l.detached {
		return
	}
	l.hist.Cancel()

	old := l.field.Text()
	_, end := l.field.Selection()

	// "0,000" is left alone so zeros can be typed ahead of other digits
	if !l.cfg.StripLeadingZeros && numfmt.OnlyZeros(old, l.cfg) {
		return
	}

	text := l.fmt.Format(old)
	pos := numfmt.Reconcile(l.cfg, end, old, text, l.deletion)
	pos = l.write(text, pos)
	l.hist.Record(history.Entry{Text: text, Cursor: pos})
}

func (l *LiveFormat) formatInitial() {
	old := l.field.Text()
	if old == "" {
		return
	}
	if !l.cfg.StripLeadingZeros && numfmt.OnlyZeros(old, l.cfg) {
		l.write(old, utf8.RuneCountInString(old))
		return
	}
	text := l.fmt.Format(old)
	pos := l.write(text, utf8.RuneCountInString(text))
	l.hist.Record(history.Entry{Text: text, Cursor: pos})
}

// write replaces the field contents without treating the change as an edit
// and returns the cursor offset actually applied.
func (l *LiveFormat) write(text string, cursor int) int {
	l.writing = true
	defer func() { l.writing = false }()

	if l.field.Text() != text {
		l.field.SetText(text)
	}
	return l.setCursor(cursor)
}

func (l *LiveFormat) setCursor(pos int) int {
	n := utf8.RuneCountInString(l.field.Text())
	if pos < 0 {
		pos = 0
	}
	if pos > n {
		pos = n
	}
	l.field.SetSelection(pos, pos)
	return pos
}
