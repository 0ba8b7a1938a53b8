// Package history keeps bounded undo/redo stacks of field snapshots and
// debounces how often new snapshots are taken.
package history

// Entry is a snapshot of the field: its text and the cursor offset in it.
type Entry struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// Stack is a pair of undo/redo stacks. The undo stack never holds more than
// depth entries: once it is full further pushes are dropped rather than
// evicting old states.
type Stack struct {
	undo  []Entry
	redo  []Entry
	depth int
}

func NewStack(depth int) *Stack {
	if depth < 1 {
		depth = 1
	}
	return &Stack{depth: depth}
}

// Push records e and clears the redo stack. It reports false when the undo
// stack is already at its bound, in which case nothing changes.
func (s *Stack) Push(e Entry) bool {
	if len(s.undo) >= s.depth {
		return false
	}
	s.undo = append(s.undo, e)
	s.redo = s.redo[:0]
	return true
}

// Undo moves the newest entry to the redo stack and returns the state the
// field should show afterwards: the entry below it, or an empty field when it
// was the only one.
func (s *Stack) Undo() (Entry, bool) {
	n := len(s.undo)
	if n == 0 {
		return Entry{}, false
	}
	s.redo = append(s.redo, s.undo[n-1])
	s.undo = s.undo[:n-1]
	if n == 1 {
		return Entry{}, true
	}
	return s.undo[n-2], true
}

// Redo moves the newest redo entry back onto the undo stack and returns it.
func (s *Stack) Redo() (Entry, bool) {
	n := len(s.redo)
	if n == 0 {
		return Entry{}, false
	}
	e := s.redo[n-1]
	s.redo = s.redo[:n-1]
	s.undo = append(s.undo, e)
	return e, true
}

func (s *Stack) UndoLen() int { return len(s.undo) }
func (s *Stack) RedoLen() int { return len(s.redo) }
func (s *Stack) Depth() int   { return s.depth }
