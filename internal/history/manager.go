package history

import (
	"sync"
	"time"

	"github.com/kobzarvs/livenum/internal/logger"
)

// Manager debounces snapshots into a Stack. Only the last Record call within
// the debounce window is pushed; scheduling a new snapshot cancels the
// pending one, so at most one push is ever outstanding.
type Manager struct {
	mu      sync.Mutex
	stack   *Stack
	sched   Scheduler
	delay   time.Duration
	pending Timer
	entry   Entry
	gen     uint64
	closed  bool
}

func NewManager(depth int, delay time.Duration, sched Scheduler) *Manager {
	if sched == nil {
		sched = TimeScheduler
	}
	return &Manager{
		stack: NewStack(depth),
		sched: sched,
		delay: delay,
	}
}

// Record schedules e to be pushed once the debounce delay passes without
// another Record.
func (m *Manager) Record(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.cancelLocked()
	m.gen++
	gen := m.gen
	m.entry = e
	m.pending = m.sched.AfterFunc(m.delay, func() { m.fire(gen) })
}

func (m *Manager) fire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// a stale callback whose timer could not be stopped in time
	if m.closed || m.pending == nil || gen != m.gen {
		return
	}
	m.pending = nil
	m.pushLocked(m.entry)
}

func (m *Manager) pushLocked(e Entry) {
	if !m.stack.Push(e) {
		logger.Debug("history push rejected", "depth", m.stack.Depth())
	}
}

// Cancel drops the pending snapshot, if any.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}

func (m *Manager) cancelLocked() {
	if m.pending == nil {
		return
	}
	m.pending.Stop()
	m.pending = nil
	m.gen++
}

// Flush pushes the pending snapshot right away.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.pending == nil {
		return
	}
	entry := m.entry
	m.cancelLocked()
	m.pushLocked(entry)
}

// Pending reports whether a snapshot is waiting for its debounce delay.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Undo returns the state to show after undoing the newest snapshot.
func (m *Manager) Undo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack.Undo()
}

// Redo returns the snapshot to show after redoing the newest undone one.
func (m *Manager) Redo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack.Redo()
}

// Len returns the sizes of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack.UndoLen(), m.stack.RedoLen()
}

// Close cancels the pending snapshot and turns every later callback and
// Record into a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.closed = true
}
