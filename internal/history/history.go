// Package history keeps bounded undo and redo stacks of grid snapshots.
package history

import (
	"errors"

	"github.com/san-kum/fluidlab/internal/fluid"
)

const DefaultCapacity = 10

var ErrInvalidCapacity = errors.New("history: capacity must be positive")

// Snapshotter is implemented by *fluid.Grid.
type Snapshotter interface {
	SaveState() fluid.State
	RestoreState(fluid.State) error
}

// Manager is not safe for concurrent use; callers drive it from the same
// goroutine that steps the grid.
type Manager struct {
	capacity int
	undo     []fluid.State
	redo     []fluid.State
}

func New(capacity int) (*Manager, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Manager{capacity: capacity}, nil
}

func (m *Manager) Capacity() int { return m.capacity }
func (m *Manager) Len() int      { return len(m.undo) }
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Record pushes the current state of src. The oldest entry is dropped once
// capacity is reached, and any redo history is discarded.
func (m *Manager) Record(src Snapshotter) {
	if len(m.undo) == m.capacity {
		m.undo[0] = fluid.State{}
		m.undo = m.undo[1:]
	}
	m.undo = append(m.undo, src.SaveState())
	m.redo = m.redo[:0]
}

// Undo restores the most recent recorded state, saving the current one for
// Redo. It reports false when there is nothing to undo.
func (m *Manager) Undo(target Snapshotter) (bool, error) {
	return m.swap(target, &m.undo, &m.redo)
}

// Redo mirrors Undo.
func (m *Manager) Redo(target Snapshotter) (bool, error) {
	return m.swap(target, &m.redo, &m.undo)
}

// Clear drops both stacks, e.g. after the grid is rebuilt at a new size.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) swap(target Snapshotter, from, to *[]fluid.State) (bool, error) {
	if len(*from) == 0 {
		return false, nil
	}
	last := len(*from) - 1
	prev := (*from)[last]
	current := target.SaveState()
	if err := target.RestoreState(prev); err != nil {
		return false, err
	}
	(*from)[last] = fluid.State{}
	*from = (*from)[:last]
	*to = append(*to, current)
	return true, nil
}
