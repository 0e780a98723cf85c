package main

import (
	"os"
	"sort"
	"strings"

	"emojiart/emojiart"
	"emojiart/logger"
)

// scanFiles lists files with the given extension in the save directory, or
// the working directory when none is configured.
func (m *model) scanFiles(ext string) {
	m.fileList = []string{}

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], ext)
	} else {
		m.selectedFileIndex = -1
	}
}

// withExtension appends ext unless name already ends with it.
func withExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

func (m *model) openDocument(path string) {
	doc, err := emojiart.ReadFile(path)
	if err != nil {
		logger.Get().Warn().Err(err).Str("path", path).Msg("open failed")
		m.errorMessage = "Error opening: " + err.Error()
		return
	}
	m.doc.Replace(doc)
	m.history.Clear()
	m.state.TapBackground()
	m.documentPath = path
	m.saved = m.doc.Snapshot()
	m.successMessage = "Opened " + path
	logger.Get().Info().Str("path", path).Int("emojis", len(doc.Emojis)).Msg("document opened")
}

func (m *model) saveDocument(path string) {
	if err := emojiart.WriteFile(path, m.doc.Snapshot()); err != nil {
		logger.Get().Warn().Err(err).Str("path", path).Msg("save failed")
		m.errorMessage = "Error saving: " + err.Error()
		return
	}
	m.documentPath = path
	m.saved = m.doc.Snapshot()
	m.successMessage = "Saved to " + path
	logger.Get().Info().Str("path", path).Msg("document saved")
}

func (m *model) newDocument() {
	m.doc.Replace(emojiart.NewModel())
	m.history.Clear()
	m.state.TapBackground()
	m.documentPath = ""
	m.saved = m.doc.Snapshot()
}

func (m *model) isDirty() bool {
	return m.saved == nil || !m.saved.Equal(m.doc.Snapshot())
}
