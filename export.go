package main

import (
	"fmt"

	"emojiart/geom"
	"emojiart/render"
)

// exportPNG draws the current view, at the pixel size the terminal stands
// for, into a PNG file.
func (m *model) exportPNG(filename string) error {
	cols, rows := m.canvasSize()
	if cols < 1 || rows < 1 {
		return fmt.Errorf("nothing to export")
	}
	m.state.SetViewport(geom.Size{Width: float64(cols) * cellWidth, Height: float64(rows) * cellHeight})
	scene := render.Compose(m.state, m.loader.Image())
	return m.raster.SavePNG(filename, scene)
}
