package main

func (m *model) undo() {
	name := m.history.UndoName()
	if !m.history.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.state.TapBackground()
	m.successMessage = "Undo " + name
}

func (m *model) redo() {
	name := m.history.RedoName()
	if !m.history.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.state.TapBackground()
	m.successMessage = "Redo " + name
}
