package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/livenum/internal/config"
	"github.com/kobzarvs/livenum/internal/history"
	"github.com/kobzarvs/livenum/internal/keys"
	"github.com/kobzarvs/livenum/internal/livefmt"
	"github.com/kobzarvs/livenum/internal/logger"
	"github.com/kobzarvs/livenum/internal/numfmt"
	"github.com/kobzarvs/livenum/internal/session"
	"github.com/kobzarvs/livenum/internal/textfield"
)

type styles struct {
	main      tcell.Style
	label     tcell.Style
	field     textfield.Styles
	status    tcell.Style
	statusMsg tcell.Style
}

// ui is one labelled number field with a value read-out and a status line.
type ui struct {
	cfg      config.Config
	field    *textfield.Field
	live     *livefmt.LiveFormat
	sched    history.Scheduler
	sessions *session.Manager
	styles   styles
	status   string
}

// newUI builds the field, restores its last state from sessions when asked
// to and attaches the live formatter. sessions may be nil.
func newUI(cfg config.Config, nf numfmt.Config, sched history.Scheduler, sessions *session.Manager) *ui {
	u := &ui{
		cfg:      cfg,
		sched:    sched,
		sessions: sessions,
		styles:   buildStyles(cfg.Theme),
	}

	var restored *session.FieldState
	if sessions != nil && cfg.Field.RestoreLast {
		if st, ok := sessions.FieldState(cfg.Field.Name); ok {
			restored = &st
		}
	}
	text := ""
	if restored != nil {
		text = restored.Text
	}
	u.field = textfield.New(text)
	u.live = livefmt.Attach(u.field, nf,
		livefmt.WithScheduler(sched),
		livefmt.WithKeymap(cfg.Keymap),
	)
	if restored != nil {
		u.field.SetSelection(restored.Cursor, restored.Cursor)
		logger.Info("field restored", "field", cfg.Field.Name, "text", u.field.Text())
	}
	return u
}

// reconfigure swaps in a reloaded configuration. The formatter is attached
// anew, which reformats the current text under the new options and starts
// an empty history.
func (u *ui) reconfigure(cfg config.Config) {
	nf, err := cfg.Format.NumFmt()
	if err != nil {
		u.status = "config: " + err.Error()
		return
	}
	cfg.Field.Name = u.cfg.Field.Name
	u.cfg = cfg
	u.styles = buildStyles(cfg.Theme)

	u.live.Detach()
	u.live = livefmt.Attach(u.field, nf,
		livefmt.WithScheduler(u.sched),
		livefmt.WithKeymap(cfg.Keymap),
	)
	u.status = "config reloaded"
	applied := u.live.Config()
	logger.Info("config reloaded",
		"style", applied.Grouping.String(),
		"delimiter", string(applied.GroupSeparator),
		"decimalMark", string(applied.DecimalMark),
	)
}

// handle processes one event and reports whether the app should quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}
	return false
}

func (u *ui) handleKey(ev *tcell.EventKey) bool {
	u.status = ""
	name := keys.String(ev)
	switch u.cfg.Keymap[name] {
	case config.ActionQuit:
		return true
	case config.ActionPaste:
		if err := u.field.Paste(); err != nil {
			logger.Warn("paste failed", "error", err)
			u.status = "paste: " + err.Error()
		}
	case config.ActionSelectAll:
		u.field.SelectAll()
	default:
		if !u.field.HandleKey(ev) {
			logger.Debug("key ignored", "key", name)
		}
	}
	u.saveState()
	return false
}

func (u *ui) saveState() {
	if u.sessions == nil {
		return
	}
	u.sessions.SetFieldState(u.cfg.Field.Name, session.FieldState{
		Text:   u.field.Text(),
		Cursor: u.field.Cursor(),
		Value:  u.live.Decimal().String(),
	})
}

func (u *ui) close() {
	u.saveState()
	u.live.Detach()
}

func (u *ui) render(s tcell.Screen) {
	w, h := s.Size()
	s.SetStyle(u.styles.main)
	s.Clear()

	label := u.cfg.Field.Label + ": "
	x := drawText(s, 1, 1, w, label, u.styles.label)
	width := u.cfg.Field.Width
	if x+width > w {
		width = w - x
	}
	u.field.Render(s, x, 1, width, u.styles.field)

	value := u.live.Decimal()
	drawText(s, 1, 3, w, "value "+value.String(), u.styles.main)
	drawText(s, 1, 4, w, "float "+strconv.FormatFloat(u.live.Float(), 'g', -1, 64), u.styles.main)
	undo, redo := u.live.HistoryLen()
	drawText(s, 1, 5, w, fmt.Sprintf("undo %d  redo %d", undo, redo), u.styles.main)

	if h > 0 {
		line, style := helpLine(u.cfg.Keymap), u.styles.status
		if u.status != "" {
			line, style = u.status, u.styles.statusMsg
		}
		clearLine(s, h-1, w, style)
		drawText(s, 0, h-1, w, " "+line, style)
	}
	s.Show()
}

// helpLine lists the keymap as "action key,key" pairs in a stable order.
func helpLine(keymap map[string]string) string {
	byAction := map[string][]string{}
	for key, action := range keymap {
		byAction[action] = append(byAction[action], key)
	}
	order := []string{
		config.ActionUndo,
		config.ActionRedo,
		config.ActionPaste,
		config.ActionSelectAll,
		config.ActionQuit,
	}
	var parts []string
	for _, action := range order {
		ks := byAction[action]
		if len(ks) == 0 {
			continue
		}
		sort.Strings(ks)
		parts = append(parts, strings.ReplaceAll(action, "_", " ")+" "+strings.Join(ks, ","))
	}
	return strings.Join(parts, "  ")
}

func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func buildStyles(t config.Theme) styles {
	main := tcell.StyleDefault.
		Foreground(parseColor(t.Foreground, tcell.ColorDefault)).
		Background(parseColor(t.Background, tcell.ColorDefault))
	fieldBg := parseColor(t.FieldBackground, tcell.ColorDefault)
	return styles{
		main:  main,
		label: main.Foreground(parseColor(t.LabelForeground, tcell.ColorDefault)).Bold(true),
		field: textfield.Styles{
			Text: tcell.StyleDefault.
				Foreground(parseColor(t.FieldForeground, tcell.ColorDefault)).
				Background(fieldBg),
			Selection: tcell.StyleDefault.
				Foreground(parseColor(t.SelectionForeground, tcell.ColorDefault)).
				Background(parseColor(t.SelectionBackground, tcell.ColorBlue)),
		},
		status: tcell.StyleDefault.
			Foreground(parseColor(t.StatusForeground, tcell.ColorDefault)).
			Background(parseColor(t.StatusBackground, tcell.ColorDefault)),
		statusMsg: tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Background(parseColor(t.StatusBackground, tcell.ColorDefault)),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
