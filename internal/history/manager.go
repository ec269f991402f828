package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 100

// Snapshot is a value that can produce an independent deep copy of itself.
type Snapshot[T any] interface {
	Clone() T
}

// Mutation computes the next document from the current one. It must not
// modify its input; returning the input itself means "no change".
type Mutation[T any] func(T) (T, error)

// entry wraps a snapshot with metadata. The label names the edit that
// separates the snapshot from the state that followed it.
type entry[T any] struct {
	id        string
	label     string
	snapshot  T
	timestamp time.Time
}

// Manager owns the current document and its undo/redo stacks.
type Manager[T Snapshot[T]] struct {
	mu sync.Mutex

	current T

	// Both stacks keep the next entry to pop at the end of the slice.
	undoStack []entry[T]
	redoStack []entry[T]

	maxEntries int
}

// NewManager creates a history manager around an initial document.
func NewManager[T Snapshot[T]](initial T, maxEntries int) *Manager[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager[T]{
		current:    initial,
		maxEntries: maxEntries,
	}
}

// Apply runs mutation against the current document and makes its result
// current. The previous document is kept on the undo stack and the redo
// stack is discarded. If mutation fails nothing changes.
func (m *Manager[T]) Apply(mutation Mutation[T]) (T, error) {
	return m.ApplyNamed("", mutation)
}

// ApplyNamed is Apply with a label shown in the history panel.
func (m *Manager[T]) ApplyNamed(label string, mutation Mutation[T]) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.current.Clone()
	next, err := mutation(m.current)
	if err != nil {
		// a misbehaving mutation may have written into current
		m.current = before
		return m.current, err
	}

	m.undoStack = append(m.undoStack, entry[T]{
		id:        uuid.NewString(),
		label:     label,
		snapshot:  before,
		timestamp: time.Now(),
	})
	m.redoStack = nil
	m.trimLocked()

	m.current = next
	return next, nil
}

// trimLocked drops the oldest undo entries beyond maxEntries.
func (m *Manager[T]) trimLocked() {
	if len(m.undoStack) > m.maxEntries {
		excess := len(m.undoStack) - m.maxEntries
		clear(m.undoStack[:excess])
		m.undoStack = m.undoStack[excess:]
	}
}

// Undo restores the most recent snapshot and reports whether it did. With
// nothing to undo it returns the current document and false.
func (m *Manager[T]) Undo() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return m.current, false
	}

	e := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	m.redoStack = append(m.redoStack, entry[T]{
		id:        e.id,
		label:     e.label,
		snapshot:  m.current,
		timestamp: time.Now(),
	})
	m.current = e.snapshot
	return m.current, true
}

// Redo replays the most recently undone edit and reports whether it did.
// With nothing to redo it returns the current document and false.
func (m *Manager[T]) Redo() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return m.current, false
	}

	e := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	m.undoStack = append(m.undoStack, entry[T]{
		id:        e.id,
		label:     e.label,
		snapshot:  m.current,
		timestamp: time.Now(),
	})
	m.trimLocked()
	m.current = e.snapshot
	return m.current, true
}

// Current returns the live document. Callers must not modify it.
func (m *Manager[T]) Current() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CanUndo returns true if undo is available.
func (m *Manager[T]) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (m *Manager[T]) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (m *Manager[T]) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo steps available.
func (m *Manager[T]) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// Clear drops both stacks and keeps the current document.
func (m *Manager[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = nil
	m.redoStack = nil
}

// Reset replaces the current document and drops all history.
func (m *Manager[T]) Reset(doc T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = doc
	m.undoStack = nil
	m.redoStack = nil
}

// SetMaxEntries changes the undo depth. If the stack is already deeper,
// the oldest entries are dropped.
func (m *Manager[T]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxEntries = max
	m.trimLocked()
}

// MaxEntries returns the undo depth.
func (m *Manager[T]) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}
