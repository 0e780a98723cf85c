// Package undo is a host undo manager. Mutations register named inverse
// closures; undoing runs them and whatever they register in turn becomes the
// redo step.
package undo

import "emojiart/logger"

// Action is one undoable step.
type Action struct {
	Name     string
	inverses []func()
}

type mode int

const (
	modeNormal mode = iota
	modeUndoing
	modeRedoing
)

// DefaultLimit bounds the undo history.
const DefaultLimit = 100

// Manager keeps the undo and redo stacks. A nil *Manager accepts and drops
// every registration.
type Manager struct {
	undoStack []Action
	redoStack []Action
	mode      mode
	group     *Action
	depth     int
	limit     int
}

// New returns a manager keeping at most limit undo steps; limit <= 0 uses
// DefaultLimit.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Record registers an inverse under name. Inside a group it is appended to
// the group instead of forming its own step.
func (m *Manager) Record(name string, inverse func()) {
	if m == nil || inverse == nil {
		return
	}
	if m.group != nil {
		if m.group.Name == "" {
			m.group.Name = name
		}
		m.group.inverses = append(m.group.inverses, inverse)
		return
	}
	m.push(Action{Name: name, inverses: []func(){inverse}})
}

// BeginGroup starts coalescing registrations into one step. Groups nest;
// only the outermost name is kept.
func (m *Manager) BeginGroup(name string) {
	if m == nil {
		return
	}
	m.depth++
	if m.depth == 1 {
		m.group = &Action{Name: name}
	}
}

// EndGroup closes the current group and records it if anything was
// registered.
func (m *Manager) EndGroup() {
	if m == nil || m.depth == 0 {
		return
	}
	m.depth--
	if m.depth > 0 {
		return
	}
	g := m.group
	m.group = nil
	if len(g.inverses) > 0 {
		m.push(*g)
	}
}

func (m *Manager) push(a Action) {
	switch m.mode {
	case modeUndoing:
		m.redoStack = append(m.redoStack, a)
	case modeRedoing:
		m.undoStack = append(m.undoStack, a)
	default:
		m.undoStack = append(m.undoStack, a)
		m.redoStack = m.redoStack[:0]
	}
	if len(m.undoStack) > m.limit {
		m.undoStack = append(m.undoStack[:0:0], m.undoStack[len(m.undoStack)-m.limit:]...)
	}
}

// Undo reverses the most recent step. It returns false when there is
// nothing to undo or a group is open.
func (m *Manager) Undo() bool {
	if m == nil || len(m.undoStack) == 0 || m.depth > 0 {
		return false
	}
	last := len(m.undoStack) - 1
	action := m.undoStack[last]
	m.undoStack = m.undoStack[:last]
	m.replay(action, modeUndoing)
	logger.Get().Debug().Str("action", action.Name).Msg("undo")
	return true
}

// Redo reapplies the most recently undone step.
func (m *Manager) Redo() bool {
	if m == nil || len(m.redoStack) == 0 || m.depth > 0 {
		return false
	}
	last := len(m.redoStack) - 1
	action := m.redoStack[last]
	m.redoStack = m.redoStack[:last]
	m.replay(action, modeRedoing)
	logger.Get().Debug().Str("action", action.Name).Msg("redo")
	return true
}

// replay runs the inverses newest first, collecting what they register into
// the opposite stack under the same name.
func (m *Manager) replay(action Action, md mode) {
	m.mode = md
	m.depth = 1
	m.group = &Action{Name: action.Name}
	for i := len(action.inverses) - 1; i >= 0; i-- {
		action.inverses[i]()
	}
	g := m.group
	m.group = nil
	m.depth = 0
	if len(g.inverses) > 0 {
		g.Name = action.Name
		m.push(*g)
	}
	m.mode = modeNormal
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return m != nil && len(m.undoStack) > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return m != nil && len(m.redoStack) > 0 }

// UndoName is the name of the step Undo would reverse.
func (m *Manager) UndoName() string {
	if !m.CanUndo() {
		return ""
	}
	return m.undoStack[len(m.undoStack)-1].Name
}

// RedoName is the name of the step Redo would reapply.
func (m *Manager) RedoName() string {
	if !m.CanRedo() {
		return ""
	}
	return m.redoStack[len(m.redoStack)-1].Name
}

// Clear drops all history.
func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.undoStack = nil
	m.redoStack = nil
}
