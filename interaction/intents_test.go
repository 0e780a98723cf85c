package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/geom"
)

type fakePasteboard struct {
	data []byte
	url  string
}

func (p fakePasteboard) ImageData() ([]byte, bool) { return p.data, p.data != nil }
func (p fakePasteboard) ImageURL() (string, bool)  { return p.url, p.url != "" }

func TestDropPriority(t *testing.T) {
	f := newFixture(t)
	center := geom.Point{X: 200, Y: 200}

	ok := f.state.Drop(Payload{
		URL:   "https://www.google.com/imgres?imgurl=https%3A%2F%2Fexample.com%2Fa.png",
		Image: []byte("ignored"),
		Text:  "🐶",
	}, center)
	assert.True(t, ok)
	u, isURL := f.doc.Background().URL()
	require.True(t, isURL)
	assert.Equal(t, "https://example.com/a.png", u)
	assert.Empty(t, f.doc.Emojis())

	ok = f.state.Drop(Payload{Image: []byte{1, 2, 3}, Text: "🐶"}, center)
	assert.True(t, ok)
	data, isData := f.doc.Background().ImageData()
	require.True(t, isData)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Empty(t, f.doc.Emojis())

	assert.False(t, f.state.Drop(Payload{}, center))
}

func TestDropText(t *testing.T) {
	f := newFixture(t)
	f.state.ZoomEnded(2)

	assert.True(t, f.state.Drop(Payload{Text: "🔥🐶 fire"}, geom.Point{X: 220, Y: 180}))
	emojis := f.doc.Emojis()
	require.Len(t, emojis, 1)
	assert.Equal(t, "🔥", emojis[0].Text)
	assert.Equal(t, geom.DocPoint{X: 10, Y: -10}, emojis[0].Location())
	assert.Equal(t, DefaultEmojiSize/2, emojis[0].Size)
	assert.Equal(t, emojiart.ActionAddEmoji, f.undo.UndoName())

	assert.True(t, f.state.Drop(Payload{Text: "fire 🔥"}, geom.Point{}))
	assert.Len(t, f.doc.Emojis(), 1)
}

func TestDefaultEmojiSizeOption(t *testing.T) {
	doc := emojiart.NewDocument(emojiart.NewModel())
	s := New(doc, WithDefaultEmojiSize(64), WithViewport(geom.Size{Width: 100, Height: 100}))
	defer s.Close()
	id, err := s.AddEmoji("🚀", geom.Point{X: 50, Y: 50})
	require.NoError(t, err)
	e, _ := doc.Emoji(id)
	assert.Equal(t, 64, e.Size)
	assert.Equal(t, geom.DocPoint{}, e.Location())
}

func TestPasteBackground(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.PasteBackground(fakePasteboard{data: []byte{9}, url: "https://example.com/x.png"}))
	_, isData := f.doc.Background().ImageData()
	assert.True(t, isData)

	require.NoError(t, f.state.PasteBackground(fakePasteboard{url: "https://example.com/x.png"}))
	u, _ := f.doc.Background().URL()
	assert.Equal(t, "https://example.com/x.png", u)

	err := f.state.PasteBackground(fakePasteboard{})
	assert.ErrorIs(t, err, ErrClipboardEmpty)
	alerts := f.state.Alerts()
	require.NotEmpty(t, alerts)
	last := alerts[len(alerts)-1]
	assert.Equal(t, "Paste Background", last.Title)
	assert.Equal(t, "There is no image currently on the pasteboard.", last.Message)
	u, _ = f.doc.Background().URL()
	assert.Equal(t, "https://example.com/x.png", u)
}

func TestNoRecorderStillMutates(t *testing.T) {
	doc := emojiart.NewDocument(emojiart.NewModel())
	s := New(doc, WithViewport(geom.Size{Width: 100, Height: 100}))
	defer s.Close()
	id, err := s.AddEmoji("🚀", geom.Point{X: 50, Y: 50})
	require.NoError(t, err)
	s.TapEmoji(id)
	s.DragEnded(geom.Vector{DX: 5})
	e, _ := doc.Emoji(id)
	assert.Equal(t, geom.DocPoint{X: 5}, e.Location())
}

func TestSameBackgroundDoesNotArmAutozoom(t *testing.T) {
	f := newFixture(t)
	img := pngBytes(t, 200, 100)
	f.state.PickedImage(img)
	require.InDelta(t, 2, f.state.Zoom(), 1e-9)

	f.state.ZoomEnded(0.5)
	f.state.PickedImage(img)
	assert.InDelta(t, 1, f.state.Zoom(), 1e-9)

	f.state.ClearBackground()
	require.True(t, f.undo.Undo())
	assert.Equal(t, background.Resolved, f.loader.Status().State)
	assert.InDelta(t, 1, f.state.Zoom(), 1e-9)

	require.True(t, f.undo.Undo())
	assert.False(t, f.undo.CanUndo(), "picking the same image twice records one step")
}
