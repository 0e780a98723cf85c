package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emojiart/geom"
	"emojiart/glyph"
	"emojiart/palette"
	"emojiart/platform"
	"emojiart/render"
)

// canvasSize is the drawing area in cells; the bottom two rows hold the
// palette bar and the status line.
func (m *model) canvasSize() (int, int) {
	cols, rows := m.width, m.height-2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m *model) syncViewport() {
	cols, rows := m.canvasSize()
	m.state.SetViewport(geom.Size{Width: float64(cols) * cellWidth, Height: float64(rows) * cellHeight})
}

func (m *model) ensureCursorInBounds() {
	cols, rows := m.canvasSize()
	if m.cursorX >= cols {
		m.cursorX = cols - 1
	}
	if m.cursorY >= rows {
		m.cursorY = rows - 1
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
}

func (m *model) cursorPoint() geom.Point {
	return cellCenter(m.cursorX, m.cursorY)
}

func (m *model) scene() render.Scene {
	m.syncViewport()
	return render.Compose(m.state, m.loader.Image())
}

func (m *model) currentPalette() palette.Palette {
	return m.palettes.Palette(m.paletteIndex)
}

func (m *model) currentEmoji() string {
	emojis := glyph.Clusters(m.currentPalette().Emojis)
	if len(emojis) == 0 {
		return ""
	}
	if m.emojiIndex >= len(emojis) {
		m.emojiIndex = len(emojis) - 1
	}
	if m.emojiIndex < 0 {
		m.emojiIndex = 0
	}
	return emojis[m.emojiIndex]
}

func (m *model) zoomBy(factor float64) {
	m.state.ZoomChanged(factor)
	m.state.ZoomEnded(factor)
}

func (m *model) tickIfFetching() tea.Cmd {
	if m.ticking || !m.state.Fetching() {
		return nil
	}
	m.ticking = true
	return tea.Tick(spinnerPeriod*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func pickImage(picker platform.Picker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		data, err := picker.PickImage(ctx)
		return pickedMsg{data: data, err: err}
	}
}
