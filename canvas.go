package main

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"emojiart/geom"
	"emojiart/glyph"
	"emojiart/render"
)

// cell is one terminal cell. A wide glyph occupies its cell and marks the
// following ones as covered.
type cell struct {
	text     string
	covered  bool
	bg       string
	fg       string
	bold     bool
	reversed bool
}

type grid struct {
	cols, rows int
	cells      [][]cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]cell, cols)
		for x := range g.cells[y] {
			g.cells[y][x].text = " "
		}
	}
	return g
}

func (g *grid) isValidPos(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// put writes text starting at (x, y). Glyphs that would not fit are
// dropped.
func (g *grid) put(x, y int, text, fg string, bold bool) bool {
	w := glyph.Width(text)
	if w < 1 {
		w = 1
	}
	if !g.isValidPos(x, y) || !g.isValidPos(x+w-1, y) {
		return false
	}
	// a glyph landing on the right half of a wide one replaces it
	if g.cells[y][x].covered && x > 0 {
		g.cells[y][x-1].text = " "
	}
	c := &g.cells[y][x]
	c.text, c.covered, c.fg, c.bold = text, false, fg, bold
	for i := 1; i < w; i++ {
		g.cells[y][x+i].covered = true
		g.cells[y][x+i].text = ""
	}
	return true
}

func cellOf(p geom.Point) (int, int) {
	return int(math.Floor(p.X / cellWidth)), int(math.Floor(p.Y / cellHeight))
}

func cellCenter(x, y int) geom.Point {
	return geom.Point{X: (float64(x) + 0.5) * cellWidth, Y: (float64(y) + 0.5) * cellHeight}
}

// glyphStart is the first column of a glyph centered on p.
func glyphStart(p geom.Point, text string) (int, int) {
	x, y := cellOf(p)
	return x - (glyph.Width(text)-1)/2, y
}

// paintBackground samples the bitmap at the center of every cell.
func (g *grid) paintBackground(sc render.Scene) {
	img := sc.Background
	if img == nil || !(sc.Zoom > 0) {
		return
	}
	b := img.Bounds()
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			p := cellCenter(x, y)
			ix := int(math.Floor((p.X-sc.Origin.X)/sc.Zoom + float64(b.Dx())/2))
			iy := int(math.Floor((p.Y-sc.Origin.Y)/sc.Zoom + float64(b.Dy())/2))
			if ix < 0 || iy < 0 || ix >= b.Dx() || iy >= b.Dy() {
				continue
			}
			g.cells[y][x].bg = hexColor(img, b.Min.X+ix, b.Min.Y+iy)
		}
	}
}

func hexColor(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func (g *grid) drawItems(sc render.Scene) {
	for _, it := range sc.Items {
		x, y := glyphStart(it.Center, it.Text)
		if !g.put(x, y, it.Text, "", false) {
			continue
		}
		if !it.Selected {
			continue
		}
		w := glyph.Width(it.Text)
		g.put(x-1, y, "[", selectionColor, true)
		g.put(x+w, y, "]", selectionColor, true)
		dx, dy := cellOf(it.DeleteIcon)
		g.put(dx, dy, "×", deleteColor, true)
	}
}

func (g *grid) drawCentered(y int, text, fg string) {
	x := (g.cols - glyph.Width(text)) / 2
	if x < 0 {
		x = 0
	}
	for _, cluster := range glyph.Clusters(text) {
		if !g.put(x, y, cluster, fg, true) {
			return
		}
		x += max(glyph.Width(cluster), 1)
	}
}

func (g *grid) drawCursor(x, y int) {
	if !g.isValidPos(x, y) {
		return
	}
	if g.cells[y][x].covered && x > 0 {
		x--
	}
	c := &g.cells[y][x]
	if c.text == " " {
		c.text = "█"
		c.fg = cursorColor
		return
	}
	c.reversed = true
}

func (c cell) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	return s.Bold(c.bold).Reverse(c.reversed)
}

func (c cell) plain() bool {
	return c.bg == "" && c.fg == "" && !c.bold && !c.reversed
}

func (c cell) sameStyle(o cell) bool {
	return c.bg == o.bg && c.fg == o.fg && c.bold == o.bold && c.reversed == o.reversed
}

// lines renders each row, merging runs of identically styled cells.
func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for y, row := range g.cells {
		var sb, run strings.Builder
		var runCell cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCell.plain() {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(runCell.style().Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.covered {
				continue
			}
			if run.Len() > 0 && !c.sameStyle(runCell) {
				flush()
			}
			runCell = c
			run.WriteString(c.text)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// renderCanvas draws a scene into cols x rows terminal lines.
func renderCanvas(sc render.Scene, cols, rows, cursorX, cursorY int, showCursor bool, spinner string) []string {
	if cols < 1 || rows < 1 {
		return nil
	}
	g := newGrid(cols, rows)
	g.paintBackground(sc)
	if sc.Fetching {
		g.drawCentered(rows/2, spinner+" Fetching background…", statusColor)
	} else {
		g.drawItems(sc)
	}
	if showCursor {
		g.drawCursor(cursorX, cursorY)
	}
	return g.lines()
}

// itemAtCell returns the topmost item drawn over the cell (x, y).
func itemAtCell(sc render.Scene, x, y int) (render.Item, bool) {
	for i := len(sc.Items) - 1; i >= 0; i-- {
		it := sc.Items[i]
		sx, sy := glyphStart(it.Center, it.Text)
		if y == sy && x >= sx && x < sx+max(glyph.Width(it.Text), 1) {
			return it, true
		}
	}
	return render.Item{}, false
}

const (
	selectionColor = "12"
	deleteColor    = "9"
	cursorColor    = "7"
	statusColor    = "11"
)
