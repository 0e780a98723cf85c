package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/glyph"
	"emojiart/interaction"
	"emojiart/logger"
	"emojiart/platform"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		m.ensureCursorInBounds()
		return m, nil

	case applyMsg:
		msg()
		return m, m.tickIfFetching()

	case openMsg:
		m.openDocument(string(msg))
		return m, m.tickIfFetching()

	case tickMsg:
		m.ticking = false
		if m.state.Fetching() {
			m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		}
		return m, m.tickIfFetching()

	case pickedMsg:
		switch {
		case errors.Is(msg.err, platform.ErrNoImportDirectory):
			m.errorMessage = "Set import_directory in ~/.emojiartrc to pick images"
		case msg.err != nil:
			m.errorMessage = "Error picking image: " + msg.err.Error()
		case msg.data == nil:
			m.errorMessage = "No image found to import"
		default:
			m.state.PickedImage(msg.data)
		}
		return m, m.tickIfFetching()

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, m.tickIfFetching()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			return m, cmd
		}
		return m, m.tickIfFetching()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.help {
		switch key {
		case "j", "down":
			if m.helpScroll < len(helpLines)-1 {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.help = false
			m.helpScroll = 0
		}
		return nil
	}

	if alerts := m.state.Alerts(); len(alerts) > 0 && m.mode == ModeNormal {
		switch key {
		case "enter", "esc", " ":
			m.state.Dismiss(alerts[0].ID)
			return nil
		}
	}

	switch m.mode {
	case ModeMove:
		return m.handleMoveKey(key)
	case ModeFileInput:
		return m.handleFileInputKey(msg)
	case ModeTextInput:
		m.handleTextInputKey(msg)
		return nil
	case ModeConfirm:
		return m.handleConfirmKey(key)
	}
	return m.handleNormalKey(key)
}

func (m *model) handleNormalKey(key string) tea.Cmd {
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c", "q":
		if m.isDirty() {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "z":
		m.zPanMode = !m.zPanMode
	case "esc":
		m.zPanMode = false
		m.state.TapBackground()
	case " ", "enter":
		m.tapAtCursor()
	case "e":
		m.placeEmoji(m.currentEmoji())
	case "E":
		m.startTextInput(InputPlaceEmoji, "")
	case "m":
		if len(m.state.Selection()) == 0 {
			m.errorMessage = "Select emoji to move first"
			return nil
		}
		m.mode = ModeMove
		m.moveDX, m.moveDY = 0, 0
	case "+", "=":
		m.zoomBy(zoomStep)
	case "-", "_":
		m.zoomBy(1 / zoomStep)
	case "0", "f":
		m.state.DoubleTapBackground()
	case "d", "x", "delete", "backspace":
		m.state.DeleteSelected()
	case "p":
		if err := m.state.PasteBackground(m.pasteboard); err == nil {
			m.successMessage = "Pasted background"
		}
	case "P":
		return pickImage(m.picker)
	case "b":
		m.startTextInput(InputBackgroundURL, "")
	case "B":
		m.state.ClearBackground()
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y":
		m.redo()
	case "s":
		m.startFileInput(FileOpSave)
	case "S":
		m.startFileInput(FileOpSavePNG)
	case "o":
		m.startFileInput(FileOpOpen)
	case "n":
		if m.isDirty() {
			m.confirm(ConfirmNewDocument)
			return nil
		}
		m.newDocument()
	case "[":
		m.emojiIndex--
		m.currentEmoji()
	case "]":
		m.emojiIndex++
		m.currentEmoji()
	case "{":
		m.selectPalette(m.paletteIndex - 1)
	case "}":
		m.selectPalette(m.paletteIndex + 1)
	case "N":
		m.startTextInput(InputNewPalette, "")
	case "r":
		m.startTextInput(InputRenamePalette, m.currentPalette().Name)
	case "a":
		m.startTextInput(InputAddEmojis, "")
	case "D":
		if emoji := m.currentEmoji(); emoji != "" {
			m.palettes.RemoveEmoji(m.paletteIndex, emoji)
			m.currentEmoji()
		}
	case "X":
		if m.palettes.Len() < 2 {
			m.errorMessage = "The last palette cannot be deleted"
			return nil
		}
		m.confirm(ConfirmDeletePalette)
	case "<":
		if m.paletteIndex > 0 {
			m.palettes.Move(m.paletteIndex, m.paletteIndex-1)
			m.paletteIndex--
		}
	case ">":
		if m.paletteIndex < m.palettes.Len()-1 {
			m.palettes.Move(m.paletteIndex, m.paletteIndex+1)
			m.paletteIndex++
		}
	}
	return nil
}

func (m *model) handleMoveKey(key string) tea.Cmd {
	switch key {
	case "enter", "m":
		m.state.DragEnded(m.moveTranslation())
		m.mode = ModeNormal
	case "esc":
		m.state.CancelGesture()
		m.mode = ModeNormal
	case "ctrl+c":
		return tea.Quit
	default:
		m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return nil
}

func (m *model) selectPalette(index int) {
	n := m.palettes.Len()
	m.paletteIndex = ((index % n) + n) % n
	m.emojiIndex = 0
}

func (m *model) tapAtCursor() {
	if it, ok := itemAtCell(m.scene(), m.cursorX, m.cursorY); ok {
		m.state.TapEmoji(it.ID)
		return
	}
	m.state.TapBackground()
}

func (m *model) placeEmoji(text string) {
	if text == "" {
		m.errorMessage = "The palette is empty"
		return
	}
	if _, err := m.state.AddEmoji(text, m.cursorPoint()); err != nil {
		m.errorMessage = "Not an emoji: " + text
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	cols, rows := m.canvasSize()
	if msg.Y == rows && msg.Type == tea.MouseLeft {
		if i, ok := m.paletteBarHit(msg.X, cols); ok {
			m.emojiIndex = i
		}
		return
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.zoomBy(zoomStep)
	case tea.MouseWheelDown:
		m.zoomBy(1 / zoomStep)
	case tea.MouseLeft:
		if msg.Y >= rows {
			return
		}
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.ensureCursorInBounds()
		it, ok := itemAtCell(m.scene(), msg.X, msg.Y)
		m.mouse.pressed = true
		m.mouse.moved = false
		m.mouse.onSelected = ok && it.Selected
		m.mouse.startX, m.mouse.startY = msg.X, msg.Y
	case tea.MouseMotion:
		if !m.mouse.pressed {
			return
		}
		m.mouse.moved = true
		t := m.mouseTranslation(msg)
		if m.mouse.onSelected {
			m.state.DragChanged(t)
		} else {
			m.state.PanChanged(t)
		}
	case tea.MouseRelease:
		if !m.mouse.pressed {
			return
		}
		m.mouse.pressed = false
		if m.mouse.moved {
			t := m.mouseTranslation(msg)
			if m.mouse.onSelected {
				m.state.DragEnded(t)
			} else {
				m.state.PanEnded(t)
			}
			return
		}
		m.click(m.mouse.startX, m.mouse.startY)
	}
}

func (m *model) mouseTranslation(msg tea.MouseMsg) geom.Vector {
	return geom.Vector{
		DX: float64(msg.X-m.mouse.startX) * cellWidth,
		DY: float64(msg.Y-m.mouse.startY) * cellHeight,
	}
}

func (m *model) click(x, y int) {
	now := time.Now()
	double := now.Sub(m.mouse.lastClick) < doubleClickGap*time.Millisecond &&
		m.mouse.lastX == x && m.mouse.lastY == y
	m.mouse.lastClick, m.mouse.lastX, m.mouse.lastY = now, x, y

	if it, ok := itemAtCell(m.scene(), x, y); ok {
		m.state.TapEmoji(it.ID)
		return
	}
	if double {
		m.state.DoubleTapBackground()
		m.mouse.lastClick = time.Time{}
		return
	}
	m.state.TapBackground()
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m *model) handleConfirmKey(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmDeletePalette:
			name := m.currentPalette().Name
			m.paletteIndex = m.palettes.RemoveAt(m.paletteIndex)
			m.emojiIndex = 0
			m.successMessage = "Deleted palette " + name
		case ConfirmOverwriteFile:
			m.saveDocument(m.pendingPath)
		case ConfirmNewDocument:
			m.newDocument()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	switch op {
	case FileOpOpen:
		m.scanFiles(emojiart.FileExtension)
	case FileOpSave:
		if m.documentPath != "" {
			m.filename = strings.TrimSuffix(filepath.Base(m.documentPath), emojiart.FileExtension)
		}
	}
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.mode = ModeNormal
	case "up":
		if m.fileOp == FileOpOpen && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], emojiart.FileExtension)
		}
	case "down":
		if m.fileOp == FileOpOpen && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], emojiart.FileExtension)
		}
	case "backspace":
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case "enter":
		m.commitFileInput()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.filename += string(msg.Runes)
		case tea.KeySpace:
			m.filename += " "
		}
	}
	return nil
}

func (m *model) commitFileInput() {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		return
	}
	m.mode = ModeNormal
	switch m.fileOp {
	case FileOpOpen:
		m.openDocument(m.config.GetSavePath(withExtension(name, emojiart.FileExtension)))
	case FileOpSave:
		path := m.config.GetSavePath(withExtension(name, emojiart.FileExtension))
		if _, err := os.Stat(path); err == nil && path != m.documentPath {
			m.pendingPath = path
			m.confirm(ConfirmOverwriteFile)
			return
		}
		m.saveDocument(path)
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExtension(name, ".png"))
		if err := m.exportPNG(path); err != nil {
			logger.Get().Warn().Err(err).Str("path", path).Msg("export failed")
			m.errorMessage = "Error exporting: " + err.Error()
			return
		}
		m.successMessage = "Exported to " + path
	}
}

func (m *model) startTextInput(purpose InputPurpose, initial string) {
	m.mode = ModeTextInput
	m.inputPurpose = purpose
	m.textInputText = initial
	m.textInputCursorPos = len([]rune(initial))
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) {
	r := []rune(m.textInputText)
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return
	case "enter":
		m.mode = ModeNormal
		m.commitTextInput(strings.TrimSpace(m.textInputText))
		return
	case "left":
		if m.textInputCursorPos > 0 {
			m.textInputCursorPos--
		}
		return
	case "right":
		if m.textInputCursorPos < len(r) {
			m.textInputCursorPos++
		}
		return
	case "backspace":
		if m.textInputCursorPos > 0 {
			r = append(r[:m.textInputCursorPos-1], r[m.textInputCursorPos:]...)
			m.textInputCursorPos--
			m.textInputText = string(r)
		}
		return
	}
	var insert []rune
	switch msg.Type {
	case tea.KeyRunes:
		insert = msg.Runes
	case tea.KeySpace:
		insert = []rune{' '}
	default:
		return
	}
	out := make([]rune, 0, len(r)+len(insert))
	out = append(out, r[:m.textInputCursorPos]...)
	out = append(out, insert...)
	out = append(out, r[m.textInputCursorPos:]...)
	m.textInputText = string(out)
	m.textInputCursorPos += len(insert)
}

func (m *model) commitTextInput(text string) {
	if text == "" {
		return
	}
	switch m.inputPurpose {
	case InputBackgroundURL:
		m.state.Drop(interaction.Payload{URL: text}, m.cursorPoint())
	case InputPlaceEmoji:
		before := len(m.doc.Emojis())
		m.state.Drop(interaction.Payload{Text: text}, m.cursorPoint())
		if len(m.doc.Emojis()) == before {
			m.errorMessage = "Not an emoji: " + glyph.First(text)
		}
	case InputNewPalette:
		m.palettes.Insert(text, "", m.paletteIndex+1)
		m.selectPalette(m.paletteIndex + 1)
		m.successMessage = "Created palette " + text + " (press a to add emoji)"
	case InputRenamePalette:
		m.palettes.Rename(m.paletteIndex, text)
	case InputAddEmojis:
		added := glyph.Emojis(text)
		if added == "" {
			m.errorMessage = "No emoji in " + text
			return
		}
		m.palettes.AddEmojis(m.paletteIndex, added)
		m.emojiIndex = 0
	}
}
