package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeFileInput
	ModeTextInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type InputPurpose int

const (
	InputBackgroundURL InputPurpose = iota
	InputNewPalette
	InputRenamePalette
	InputAddEmojis
	InputPlaceEmoji
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmDeletePalette
	ConfirmOverwriteFile
	ConfirmNewDocument
)

// A terminal cell stands for a block of document pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	zoomStep       = 1.25
	doubleClickGap = 400 // milliseconds
	spinnerPeriod  = 120 // milliseconds
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
