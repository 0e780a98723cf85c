package interaction

import (
	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/glyph"
	"emojiart/platform"
)

// Payload is what a drag-and-drop delivers. Any combination of fields may
// be set; Drop uses the first usable one in field order.
type Payload struct {
	URL   string
	Image []byte
	Text  string
}

// Drop handles a drop at a screen point. A URL or image replaces the
// background; text adds its first grapheme when it is an emoji, sized so
// that it appears at the default size at the current zoom. It reports
// whether the payload held anything Drop understands.
func (s *State) Drop(p Payload, at geom.Point) bool {
	switch {
	case p.URL != "":
		s.replaceBackground(emojiart.RemoteURL(platform.ImageURL(p.URL)))
		return true
	case len(p.Image) > 0:
		s.replaceBackground(emojiart.EmbeddedBytes(p.Image))
		return true
	case p.Text != "":
		if first := glyph.First(p.Text); glyph.IsEmoji(first) {
			s.AddEmoji(first, at)
		}
		return true
	}
	return false
}

// AddEmoji adds text at a screen point at the default size for the
// current zoom.
func (s *State) AddEmoji(text string, at geom.Point) (int, error) {
	size := int(float64(s.defaultSize) / s.view.Zoom())
	return s.doc.AddEmoji(text, s.view.ToDocument(at), size, s.undo)
}

// PasteBackground sets the background from the pasteboard, preferring image
// bytes over an image URL. When neither is available an alert is queued and
// ErrClipboardEmpty returned.
func (s *State) PasteBackground(pb platform.Pasteboard) error {
	if data, ok := pb.ImageData(); ok {
		s.replaceBackground(emojiart.EmbeddedBytes(data))
		return nil
	}
	if url, ok := pb.ImageURL(); ok {
		s.replaceBackground(emojiart.RemoteURL(url))
		return nil
	}
	s.alerts.show(ClipboardEmptyAlert())
	return ErrClipboardEmpty
}

// PickedImage sets the background to an image delivered by a picker. A nil
// image means the user cancelled.
func (s *State) PickedImage(data []byte) {
	if len(data) == 0 {
		return
	}
	s.replaceBackground(emojiart.EmbeddedBytes(data))
}

// replaceBackground sets a new background and zooms to fit it once it
// resolves. Setting the current background again changes nothing.
func (s *State) replaceBackground(bg emojiart.Background) {
	if s.doc.Background().Equal(bg) {
		return
	}
	s.autozoom = true
	s.doc.SetBackground(bg, s.undo)
}

// ClearBackground sets a blank background.
func (s *State) ClearBackground() {
	s.doc.SetBackground(emojiart.Blank(), s.undo)
}
