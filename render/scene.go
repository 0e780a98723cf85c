// Package render composes the visible document into a Scene and draws
// scenes to raster images.
package render

import (
	"image"

	"emojiart/geom"
	"emojiart/interaction"
)

// Item is one emoji as it appears on screen.
type Item struct {
	ID         int
	Text       string
	Center     geom.Point
	Size       float64
	Selected   bool
	FrameSize  float64
	DeleteIcon geom.Point
}

// Scene is a frozen frame of the view: everything needed to draw it without
// consulting the document again.
type Scene struct {
	Viewport   geom.Size
	Zoom       float64
	Origin     geom.Point // screen position of the document origin
	Background image.Image
	Fetching   bool
	Items      []Item
}

// Compose captures the current frame of st. Emojis are hidden while a
// background is being fetched.
func Compose(st *interaction.State, bg image.Image) Scene {
	v := st.View()
	sc := Scene{
		Viewport:   v.Viewport,
		Zoom:       v.Zoom(),
		Origin:     v.ToScreen(geom.DocPoint{}),
		Background: bg,
		Fetching:   st.Fetching(),
	}
	if sc.Fetching {
		return sc
	}
	for _, e := range st.Document().Emojis() {
		it := Item{
			ID:       e.ID,
			Text:     e.Text,
			Center:   st.EmojiPosition(e),
			Size:     st.EmojiSize(e),
			Selected: st.IsSelected(e.ID),
		}
		if it.Selected {
			it.FrameSize = st.SelectionFrameSize(e)
			it.DeleteIcon = st.DeleteIconPosition(e)
		}
		sc.Items = append(sc.Items, it)
	}
	return sc
}
