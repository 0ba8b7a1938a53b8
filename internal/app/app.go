package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/livenum/internal/config"
	"github.com/kobzarvs/livenum/internal/history"
	"github.com/kobzarvs/livenum/internal/logger"
	"github.com/kobzarvs/livenum/internal/session"
)

// App is the top-level runtime for livenum.
type App struct {
	args  []string
	debug bool
}

func New(args []string) *App {
	a := &App{debug: os.Getenv("LIVENUM_DEBUG") != ""}
	for _, arg := range args {
		if arg == "--debug" {
			a.debug = true
			continue
		}
		a.args = append(a.args, arg)
	}
	return a
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	nf, err := cfg.Format.NumFmt()
	if err != nil {
		return err
	}
	if len(a.args) > 0 {
		cfg.Field.Name = a.args[0]
	}

	if err := logger.Init(a.debug); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	sessions, err := session.NewManager()
	if err != nil {
		logger.Warn("session disabled", "error", err)
		sessions = nil
	}
	if sessions != nil {
		defer func() {
			if err := sessions.Stop(); err != nil {
				logger.Warn("session save failed", "error", err)
			}
		}()
	}

	// Debounced history snapshots fire on timer goroutines; they are posted
	// back to this loop so the field is only touched from here.
	sched := history.Posting(func(fn func()) {
		_ = s.PostEvent(tcell.NewEventInterrupt(fn))
	})

	u := newUI(cfg, nf, sched, sessions)
	defer u.close()

	watcher, err := config.Watch(
		func(c config.Config) {
			_ = s.PostEvent(tcell.NewEventInterrupt(func() { u.reconfigure(c) }))
		},
		func(err error) {
			logger.Warn("config watch", "error", err)
			_ = s.PostEvent(tcell.NewEventInterrupt(func() { u.status = err.Error() }))
		},
	)
	if err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
	}

	u.render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		if u.handle(ev) {
			return nil
		}
		u.render(s)
	}
}
