package interaction

import (
	"errors"
	"fmt"
)

// ErrClipboardEmpty is returned by PasteBackground when the pasteboard holds
// neither image bytes nor an image URL.
var ErrClipboardEmpty = errors.New("interaction: no image on the pasteboard")

// Alert is a dismissible, non-fatal notification. Alerts with the same ID
// replace each other.
type Alert struct {
	ID      string
	Title   string
	Message string
}

// FetchFailedAlert describes a background that could not be loaded. An empty
// url means embedded image bytes failed to decode.
func FetchFailedAlert(url string) Alert {
	if url == "" {
		return Alert{
			ID:      "decode failed",
			Title:   "Background Image",
			Message: "Couldn't decode the background image.",
		}
	}
	return Alert{
		ID:      "fetch failed: " + url,
		Title:   "Background Image Fetch",
		Message: fmt.Sprintf("Couldn't load image from %s.", url),
	}
}

// ClipboardEmptyAlert is shown when a paste finds nothing usable.
func ClipboardEmptyAlert() Alert {
	return Alert{
		ID:      "paste background",
		Title:   "Paste Background",
		Message: "There is no image currently on the pasteboard.",
	}
}

type alerts struct {
	list []Alert
}

func (a *alerts) show(alert Alert) {
	for i := range a.list {
		if a.list[i].ID == alert.ID {
			a.list[i] = alert
			return
		}
	}
	a.list = append(a.list, alert)
}

func (a *alerts) dismiss(id string) bool {
	for i := range a.list {
		if a.list[i].ID == id {
			a.list = append(a.list[:i], a.list[i+1:]...)
			return true
		}
	}
	return false
}
