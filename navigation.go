package main

import "emojiart/geom"

func (m *model) handleNavigation(key string, speed int) {
	switch {
	case m.mode == ModeMove:
		m.handleMoveSelection(key, speed)
	case m.zPanMode:
		m.handlePan(key, speed)
	default:
		m.handleCursorMove(key, speed)
	}
}

func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

// handlePan moves the view so that the content follows the key direction
// in reverse, like scrolling.
func (m *model) handlePan(key string, speed int) {
	dx, dy := direction(key)
	m.state.PanEnded(geom.Vector{
		DX: -float64(dx*speed) * cellWidth,
		DY: -float64(dy*speed) * cellHeight,
	})
}

func (m *model) handleMoveSelection(key string, speed int) {
	dx, dy := direction(key)
	m.moveDX += dx * speed
	m.moveDY += dy * speed
	m.state.DragChanged(m.moveTranslation())
}

func (m *model) moveTranslation() geom.Vector {
	return geom.Vector{DX: float64(m.moveDX) * cellWidth, DY: float64(m.moveDY) * cellHeight}
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
