package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/glyph"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	modeStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	alertStyle   = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true)
	paletteStyle = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Reverse(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	cols, rows := m.canvasSize()
	var result strings.Builder

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.fileListView(cols, rows))
	} else {
		sc := m.scene()
		showCursor := m.mode != ModeFileInput
		lines := renderCanvas(sc, cols, rows, m.cursorX, m.cursorY, showCursor, spinnerFrames[m.spinnerFrame])
		result.WriteString(strings.Join(lines, "\n"))
	}
	result.WriteString("\n")
	result.WriteString(m.paletteBar(cols))
	result.WriteString("\n")
	result.WriteString(m.statusLine(cols))
	return result.String()
}

func (m model) fileListView(cols, rows int) string {
	var result strings.Builder
	result.WriteString("Select a saved document:\n")
	result.WriteString(strings.Repeat("─", cols))
	result.WriteString("\n")

	used := 3
	if len(m.fileList) == 0 {
		result.WriteString("(No " + emojiart.FileExtension + " files found)\n")
		used++
	} else {
		maxFiles := rows - 4
		if maxFiles < 1 {
			maxFiles = 1
		}
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			displayName := strings.TrimSuffix(m.fileList[i], emojiart.FileExtension)
			if i == m.selectedFileIndex {
				result.WriteString("> " + displayName + " <")
			} else {
				result.WriteString("  " + displayName)
			}
			result.WriteString("\n")
			used++
		}
	}
	result.WriteString(strings.Repeat("─", cols))
	for ; used < rows; used++ {
		result.WriteString("\n")
	}
	return result.String()
}

// paletteLayout returns the palette bar prefix and the starting column of
// each emoji after it.
func (m model) paletteLayout() (string, []string, []int) {
	p := m.currentPalette()
	prefix := fmt.Sprintf(" %s (%d/%d) ▸ ", p.Name, m.paletteIndex+1, m.palettes.Len())
	emojis := glyph.Clusters(p.Emojis)
	starts := make([]int, len(emojis))
	col := glyph.Width(prefix)
	for i, e := range emojis {
		starts[i] = col
		col += glyph.Width(e) + 1
	}
	return prefix, emojis, starts
}

func (m model) paletteBar(cols int) string {
	prefix, emojis, starts := m.paletteLayout()
	var b strings.Builder
	b.WriteString(paletteStyle.Render(prefix))
	for i, e := range emojis {
		if starts[i]+glyph.Width(e) > cols {
			break
		}
		if i == m.emojiIndex {
			b.WriteString(currentStyle.Render(e))
		} else {
			b.WriteString(e)
		}
		b.WriteString(" ")
	}
	if len(emojis) == 0 {
		b.WriteString("(empty, press a to add emoji)")
	}
	return b.String()
}

func (m model) paletteBarHit(x, cols int) (int, bool) {
	_, emojis, starts := m.paletteLayout()
	for i, e := range emojis {
		if starts[i] >= cols {
			break
		}
		if x >= starts[i] && x < starts[i]+glyph.Width(e) {
			return i, true
		}
	}
	return 0, false
}

func (m model) statusLine(cols int) string {
	if alerts := m.state.Alerts(); len(alerts) > 0 && m.mode == ModeNormal {
		a := alerts[0]
		return alertStyle.Render(fmt.Sprintf(" %s: %s (Enter to dismiss) ", a.Title, a.Message))
	}

	switch m.mode {
	case ModeTextInput:
		return m.inputPrompt() + m.inputWithCursor()
	case ModeFileInput:
		return m.filePrompt() + m.filename + "█"
	case ModeConfirm:
		return m.confirmPrompt()
	}

	left := modeStyle.Render(" "+m.modeString()+" ") + " " + m.documentName()
	var parts []string
	parts = append(parts, fmt.Sprintf("%.0f%%", m.state.Zoom()*100))
	if n := len(m.state.Selection()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if s := m.fetchStatus(); s != "" {
		parts = append(parts, s)
	}
	if m.history.CanUndo() {
		parts = append(parts, "u: Undo "+m.history.UndoName())
	}
	right := strings.Join(parts, " │ ")

	msg := ""
	switch {
	case m.errorMessage != "":
		msg = " " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		msg = " " + successStyle.Render(m.successMessage)
	}

	line := left + msg
	gap := cols - lipgloss.Width(line) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + statusStyle.Render(right)
}

func (m model) documentName() string {
	name := "untitled"
	if m.documentPath != "" {
		name = strings.TrimSuffix(filepath.Base(m.documentPath), emojiart.FileExtension)
	}
	if m.isDirty() {
		name += "*"
	}
	return name
}

func (m model) fetchStatus() string {
	st := m.loader.Status()
	switch st.State {
	case background.Fetching:
		return spinnerFrames[m.spinnerFrame] + " fetching"
	case background.Failed:
		return "background failed"
	}
	return ""
}

func (m model) inputPrompt() string {
	switch m.inputPurpose {
	case InputBackgroundURL:
		return "Background URL: "
	case InputNewPalette:
		return "New palette name: "
	case InputRenamePalette:
		return "Rename palette: "
	case InputAddEmojis:
		return "Add emoji to " + m.currentPalette().Name + ": "
	case InputPlaceEmoji:
		return "Emoji: "
	}
	return "> "
}

func (m model) inputWithCursor() string {
	r := []rune(m.textInputText)
	pos := min(m.textInputCursorPos, len(r))
	return string(r[:pos]) + "█" + string(r[pos:])
}

func (m model) filePrompt() string {
	switch m.fileOp {
	case FileOpSave:
		return "Save as: "
	case FileOpSavePNG:
		return "Export PNG as: "
	}
	return "Open: "
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit without saving? (y/n)"
	case ConfirmDeletePalette:
		return fmt.Sprintf("Delete palette %q? (y/n)", m.currentPalette().Name)
	case ConfirmOverwriteFile:
		return fmt.Sprintf("Overwrite %s? (y/n)", m.pendingPath)
	case ConfirmNewDocument:
		return "Discard unsaved changes? (y/n)"
	}
	return "(y/n)"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.zPanMode {
			return "PAN"
		}
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeTextInput:
		return "TEXT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"EmojiArt Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the screen",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  z                Toggle pan mode (direction keys scroll the view)",
	"  +/-              Zoom in/out, or resize the selected emoji",
	"  0 or f           Zoom the background to fit",
	"  Mouse            Click to select, drag to pan or move the selection,",
	"                   wheel to zoom, double-click background to fit",
	"",
	"Emoji:",
	"------",
	"  e                Place the current palette emoji at the cursor",
	"  E                Type an emoji to place at the cursor",
	"  Space/Enter      Select or deselect the emoji under the cursor",
	"  m                Move selected emoji (Enter to finish, Esc to cancel)",
	"  d/x              Delete selected emoji",
	"  Esc              Clear selection",
	"",
	"Background:",
	"-----------",
	"  p                Paste an image, image path or image URL",
	"  P                Import the newest image from the import directory",
	"  b                Set background from a URL",
	"  B                Clear the background",
	"",
	"Palettes:",
	"---------",
	"  [ / ]            Previous/next emoji",
	"  { / }            Previous/next palette",
	"  N                New palette",
	"  r                Rename palette",
	"  a                Add emoji to palette",
	"  D                Remove current emoji from palette",
	"  X                Delete palette",
	"  < / >            Move palette left/right",
	"",
	"Files:",
	"------",
	"  s                Save document",
	"  o                Open document",
	"  S                Export the view as PNG",
	"  n                New document",
	"",
	"General:",
	"  u/Ctrl+Z         Undo last action",
	"  U/Ctrl+Y         Redo last undone action",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
