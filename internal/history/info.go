package history

import "time"

// EntryInfo provides read-only info about a history entry.
// Used for displaying the undo/redo history to users.
type EntryInfo struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e entry[T]) info() EntryInfo {
	return EntryInfo{ID: e.id, Description: e.label, Timestamp: e.timestamp}
}

// UndoInfo returns the undo entries, oldest first.
func (m *Manager[T]) UndoInfo() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]EntryInfo, len(m.undoStack))
	for i, e := range m.undoStack {
		result[i] = e.info()
	}
	return result
}

// RedoInfo returns the redo entries in replay order: the entry Redo would
// apply next comes first.
func (m *Manager[T]) RedoInfo() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.redoStack)
	result := make([]EntryInfo, n)
	for i, e := range m.redoStack {
		result[n-1-i] = e.info()
	}
	return result
}

// PeekUndo returns info about the next undo without performing it.
func (m *Manager[T]) PeekUndo() (EntryInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return m.undoStack[len(m.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo without performing it.
func (m *Manager[T]) PeekRedo() (EntryInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return m.redoStack[len(m.redoStack)-1].info(), true
}

// Status is a consistent view of the manager: every field is read under
// the same lock.
type Status[T any] struct {
	Current  T
	CanUndo  bool
	CanRedo  bool
	NextUndo EntryInfo // zero when CanUndo is false
	NextRedo EntryInfo // zero when CanRedo is false
}

// Status returns the current document together with the undo/redo state.
func (m *Manager[T]) Status() Status[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status[T]{
		Current: m.current,
		CanUndo: len(m.undoStack) > 0,
		CanRedo: len(m.redoStack) > 0,
	}
	if st.CanUndo {
		st.NextUndo = m.undoStack[len(m.undoStack)-1].info()
	}
	if st.CanRedo {
		st.NextRedo = m.redoStack[len(m.redoStack)-1].info()
	}
	return st
}
