package main

import (
	"time"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/interaction"
	"emojiart/palette"
	"emojiart/platform"
	"emojiart/render"
	"emojiart/undo"
)

type model struct {
	width  int
	height int

	cursorX  int
	cursorY  int
	zPanMode bool
	mode     Mode
	help     bool

	helpScroll int

	doc      *emojiart.Document
	state    *interaction.State
	loader   *background.Loader
	history  *undo.Manager
	palettes *palette.Store
	raster   *render.Rasterizer

	pasteboard platform.Pasteboard
	picker     platform.Picker

	paletteIndex int
	emojiIndex   int

	// move mode accumulates a drag of the selection in cells
	moveDX int
	moveDY int

	mouse mouseState

	filename          string
	documentPath      string
	startupPath       string
	saved             *emojiart.Model
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation

	inputPurpose       InputPurpose
	textInputText      string
	textInputCursorPos int

	confirmAction  ConfirmAction
	pendingPath    string
	errorMessage   string
	successMessage string

	spinnerFrame int
	ticking      bool

	config *Config
}

type mouseState struct {
	pressed    bool
	onSelected bool
	startX     int
	startY     int
	moved      bool
	lastClick  time.Time
	lastX      int
	lastY      int
}

// applyMsg carries a function posted from a background goroutine that must
// run on the program's update loop.
type applyMsg func()

type tickMsg time.Time

// openMsg opens a document once the program is running.
type openMsg string

type pickedMsg struct {
	data []byte
	err  error
}
