package history

import (
	"sync"
	"time"

	"kj-canvas-be/internal/entity"
)

// MaxStates bounds the undo log. The oldest snapshot is evicted FIFO once
// the log would exceed it.
const MaxStates = 50

// Manager keeps a linear undo/redo log of whole-board snapshots. Saving
// after an undo discards the redo tail (linear history, not a tree).
// Snapshots are deep-copied on the way in and out, so nothing a caller does
// to a returned state can corrupt the log.
type Manager struct {
	mu     sync.Mutex
	states []entity.Snapshot
	cursor int
}

func NewManager() *Manager {
	return &Manager{
		states: make([]entity.Snapshot, 0, MaxStates),
		cursor: -1,
	}
}

func (m *Manager) SaveState(cards []entity.Card, groups []entity.Group, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := entity.Snapshot{
		Cards:       entity.CloneCards(cards),
		Groups:      entity.CloneGroups(groups),
		Timestamp:   time.Now(),
		Description: description,
	}

	// Drop anything after the cursor: a new action after undo branches off
	// the undone state and the old redo tail becomes unreachable.
	m.states = append(m.states[:m.cursor+1], snapshot)

	if len(m.states) > MaxStates {
		m.states = m.states[1:]
	}
	m.cursor = len(m.states) - 1
}

// Undo steps the cursor back and returns the snapshot now under it. Nil at
// the beginning of history (no-op, not an error).
func (m *Manager) Undo() *entity.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor <= 0 {
		return nil
	}
	m.cursor--
	snapshot := m.states[m.cursor].Clone()
	return &snapshot
}

// Redo steps the cursor forward and returns that snapshot. Nil at the end of
// history.
func (m *Manager) Redo() *entity.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor >= len(m.states)-1 {
		return nil
	}
	m.cursor++
	snapshot := m.states[m.cursor].Clone()
	return &snapshot
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor < len(m.states)-1
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}
