package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Picker delivers an image chosen by the user, such as a camera shot or a
// photo library entry. A nil slice with a nil error means the user
// cancelled.
type Picker interface {
	PickImage(ctx context.Context) ([]byte, error)
}

// ErrNoImportDirectory is returned when a FilePicker has no directory.
var ErrNoImportDirectory = errors.New("platform: no import directory configured")

// FilePicker picks the newest image file in a directory, which is where
// camera and photo-sync tools drop their files.
type FilePicker struct {
	Dir string
}

// PickImage implements Picker.
func (p FilePicker) PickImage(ctx context.Context) ([]byte, error) {
	if p.Dir == "" {
		return nil, ErrNoImportDirectory
	}
	path, err := p.Newest()
	if err != nil || path == "" {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Newest returns the path of the most recently modified image in Dir, or ""
// when there is none.
func (p FilePicker) Newest() (string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return "", err
	}
	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(p.Dir, entry.Name())
			newestTime = info.ModTime()
		}
	}
	return newest, nil
}
