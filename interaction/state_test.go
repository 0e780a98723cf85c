package interaction

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/undo"
)

type fixture struct {
	doc    *emojiart.Document
	loader *background.Loader
	undo   *undo.Manager
	state  *State
}

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return nil, errors.New("offline")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		loader: background.NewLoader(background.WithFetcher(failingFetcher{})),
		undo:   undo.New(0),
	}
	f.doc = emojiart.NewDocument(emojiart.NewModel(), emojiart.WithResolver(f.loader))
	f.state = New(f.doc,
		WithRecorder(f.undo),
		WithBackdrop(f.loader),
		WithViewport(geom.Size{Width: 400, Height: 400}),
	)
	t.Cleanup(f.state.Close)
	return f
}

func (f *fixture) add(t *testing.T, text string, x, y, size int) int {
	t.Helper()
	id, err := f.doc.AddEmoji(text, geom.DocPoint{X: x, Y: y}, size, nil)
	require.NoError(t, err)
	return id
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSelectionToggle(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	b := f.add(t, "🐱", 10, 10, 40)

	f.state.TapEmoji(b)
	f.state.TapEmoji(a)
	assert.Equal(t, []int{a, b}, f.state.Selection())

	f.state.TapEmoji(b)
	assert.Equal(t, []int{a}, f.state.Selection())

	f.state.TapEmoji(99)
	assert.Equal(t, []int{a}, f.state.Selection())

	f.state.TapBackground()
	assert.Empty(t, f.state.Selection())
}

func TestSelectionPrunedOnRemoval(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	f.state.TapEmoji(a)
	f.doc.RemoveEmoji(a, nil)
	assert.False(t, f.state.IsSelected(a))
}

func TestPanGesture(t *testing.T) {
	f := newFixture(t)
	f.state.ZoomEnded(2)

	f.state.PanChanged(geom.Vector{DX: 20, DY: -10})
	assert.Equal(t, geom.Vector{DX: 10, DY: -5}, f.state.View().GesturePan)
	assert.Equal(t, geom.Vector{DX: 20, DY: -10}, f.state.View().Pan())

	f.state.PanEnded(geom.Vector{DX: 20, DY: -10})
	v := f.state.View()
	assert.Equal(t, geom.Vector{}, v.GesturePan)
	assert.Equal(t, geom.Vector{DX: 10, DY: -5}, v.SteadyPan)
}

func TestZoomGestureWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.state.ZoomChanged(1.5)
	assert.InDelta(t, 1.5, f.state.Zoom(), 1e-9)

	f.state.ZoomEnded(1.5)
	f.state.ZoomEnded(2)
	v := f.state.View()
	assert.InDelta(t, 3, v.SteadyZoom, 1e-9)
	assert.Equal(t, 1.0, v.GestureZoom)

	f.state.ZoomEnded(0)
	f.state.ZoomEnded(-2)
	assert.InDelta(t, 3, f.state.Zoom(), 1e-9)
	assert.False(t, f.undo.CanUndo())
}

func TestZoomGestureScalesSelection(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	b := f.add(t, "🐱", 10, 10, 20)
	c := f.add(t, "🐭", 20, 20, 10)
	f.state.TapEmoji(a)
	f.state.TapEmoji(b)

	f.state.ZoomChanged(2)
	ea, _ := f.doc.Emoji(a)
	ec, _ := f.doc.Emoji(c)
	assert.Equal(t, 80.0, f.state.EmojiSize(ea))
	assert.Equal(t, 10.0, f.state.EmojiSize(ec))
	assert.Equal(t, 1.0, f.state.Zoom())

	f.state.ZoomEnded(2)
	ea, _ = f.doc.Emoji(a)
	eb, _ := f.doc.Emoji(b)
	ec, _ = f.doc.Emoji(c)
	assert.Equal(t, 80, ea.Size)
	assert.Equal(t, 40, eb.Size)
	assert.Equal(t, 10, ec.Size)
	assert.Empty(t, f.state.Selection())
	assert.Equal(t, 1.0, f.state.Zoom())

	assert.Equal(t, emojiart.ActionScaleEmoji, f.undo.UndoName())
	require.True(t, f.undo.Undo())
	ea, _ = f.doc.Emoji(a)
	eb, _ = f.doc.Emoji(b)
	assert.Equal(t, 40, ea.Size)
	assert.Equal(t, 20, eb.Size)
	assert.False(t, f.undo.CanUndo())
}

func TestDragMovesSelectionAsOneStep(t *testing.T) {
	f := newFixture(t)
	f.state.ZoomEnded(2)
	a := f.add(t, "🐶", 0, 0, 40)
	b := f.add(t, "🐱", 10, 10, 40)
	c := f.add(t, "🐭", 20, 20, 40)
	f.state.TapEmoji(a)
	f.state.TapEmoji(b)

	ea, _ := f.doc.Emoji(a)
	ec, _ := f.doc.Emoji(c)
	before := f.state.EmojiPosition(ea)
	for _, dx := range []float64{2, 10, 30} {
		f.state.DragChanged(geom.Vector{DX: dx, DY: dx / 2})
	}
	assert.Equal(t, geom.Point{X: before.X + 30, Y: before.Y + 15}, f.state.EmojiPosition(ea))
	assert.Equal(t, f.state.View().ToScreen(ec.Location()), f.state.EmojiPosition(ec))

	f.state.DragEnded(geom.Vector{DX: 30, DY: 15})
	ea, _ = f.doc.Emoji(a)
	eb, _ := f.doc.Emoji(b)
	ec, _ = f.doc.Emoji(c)
	assert.Equal(t, geom.DocPoint{X: 15, Y: 8}, ea.Location())
	assert.Equal(t, geom.DocPoint{X: 25, Y: 18}, eb.Location())
	assert.Equal(t, geom.DocPoint{X: 20, Y: 20}, ec.Location())
	assert.Empty(t, f.state.Selection())
	assert.Equal(t, before, f.state.View().ToScreen(geom.DocPoint{}))

	require.True(t, f.undo.Undo())
	ea, _ = f.doc.Emoji(a)
	eb, _ = f.doc.Emoji(b)
	assert.Equal(t, geom.DocPoint{}, ea.Location())
	assert.Equal(t, geom.DocPoint{X: 10, Y: 10}, eb.Location())
	assert.False(t, f.undo.CanUndo())

	require.True(t, f.undo.Redo())
	ea, _ = f.doc.Emoji(a)
	assert.Equal(t, geom.DocPoint{X: 15, Y: 8}, ea.Location())
}

func TestDragWithoutSelectionRecordsNothing(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	f.state.DragEnded(geom.Vector{DX: 30, DY: 30})
	e, _ := f.doc.Emoji(a)
	assert.Equal(t, geom.DocPoint{}, e.Location())
	assert.False(t, f.undo.CanUndo())
}

func TestDeleteSelected(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	b := f.add(t, "🐱", 10, 10, 40)
	c := f.add(t, "🐭", 20, 20, 40)
	f.state.TapEmoji(a)
	f.state.TapEmoji(c)

	f.state.DeleteSelected()
	ids := []int{}
	for _, e := range f.doc.Emojis() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{b}, ids)
	assert.Equal(t, emojiart.ActionRemoveEmoji, f.undo.UndoName())

	require.True(t, f.undo.Undo())
	assert.Len(t, f.doc.Emojis(), 3)
	assert.False(t, f.undo.CanUndo())
}

func TestDecorationPositions(t *testing.T) {
	f := newFixture(t)
	f.state.ZoomEnded(2)
	a := f.add(t, "🐶", 10, 10, 40)
	e, _ := f.doc.Emoji(a)

	assert.Equal(t, geom.Point{X: 220, Y: 220}, f.state.EmojiPosition(e))
	assert.Equal(t, geom.Point{X: 320, Y: 180}, f.state.DeleteIconPosition(e))
	assert.Equal(t, 120.0, f.state.SelectionFrameSize(e))
}

func TestEmojiAt(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	b := f.add(t, "🐱", 10, 0, 40)

	e, ok := f.state.EmojiAt(geom.Point{X: 215, Y: 200})
	require.True(t, ok)
	assert.Equal(t, b, e.ID)

	e, ok = f.state.EmojiAt(geom.Point{X: 185, Y: 200})
	require.True(t, ok)
	assert.Equal(t, a, e.ID)

	_, ok = f.state.EmojiAt(geom.Point{X: 10, Y: 10})
	assert.False(t, ok)
}

func TestPickedImageAutozooms(t *testing.T) {
	f := newFixture(t)
	f.state.PickedImage(pngBytes(t, 200, 100))

	assert.Equal(t, background.Resolved, f.loader.Status().State)
	assert.InDelta(t, 2, f.state.Zoom(), 1e-9)

	f.state.ZoomEnded(0.5)
	f.state.PickedImage(nil)
	assert.InDelta(t, 1, f.state.Zoom(), 1e-9)

	f.state.ClearBackground()
	require.True(t, f.undo.Undo())
	assert.Equal(t, background.Resolved, f.loader.Status().State)
	assert.InDelta(t, 1, f.state.Zoom(), 1e-9, "undo does not autozoom")
}

func TestDoubleTapZoomsToFit(t *testing.T) {
	f := newFixture(t)
	f.state.DoubleTapBackground()
	assert.Equal(t, 1.0, f.state.Zoom())

	f.doc.SetBackground(emojiart.EmbeddedBytes(pngBytes(t, 100, 800)), nil)
	assert.Equal(t, 1.0, f.state.Zoom())
	f.state.PanEnded(geom.Vector{DX: 40})

	f.state.DoubleTapBackground()
	v := f.state.View()
	assert.InDelta(t, 0.5, v.SteadyZoom, 1e-9)
	assert.Equal(t, geom.Vector{}, v.SteadyPan)
}

func TestFetchFailureRaisesAlert(t *testing.T) {
	f := newFixture(t)
	url := "https://example.com/cat.png"
	f.doc.SetBackground(emojiart.RemoteURL(url), nil)
	assert.True(t, f.state.Fetching())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.loader.Queue().Next(ctx))

	assert.False(t, f.state.Fetching())
	alerts := f.state.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "fetch failed: "+url, alerts[0].ID)
	assert.Equal(t, "Background Image Fetch", alerts[0].Title)
	assert.Contains(t, alerts[0].Message, url)

	assert.True(t, f.state.Dismiss(alerts[0].ID))
	assert.Empty(t, f.state.Alerts())
	assert.False(t, f.state.Dismiss(alerts[0].ID))
}

func TestEmbeddedDecodeFailureRaisesAlert(t *testing.T) {
	f := newFixture(t)
	f.state.PickedImage([]byte("not an image"))
	alerts := f.state.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "decode failed", alerts[0].ID)
}

func TestAlertsReplaceByID(t *testing.T) {
	f := newFixture(t)
	f.state.ShowAlert(Alert{ID: "x", Message: "one"})
	f.state.ShowAlert(Alert{ID: "y", Message: "two"})
	f.state.ShowAlert(Alert{ID: "x", Message: "three"})
	assert.Equal(t, []Alert{{ID: "x", Message: "three"}, {ID: "y", Message: "two"}}, f.state.Alerts())
}

func TestCancelGesture(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "🐶", 0, 0, 40)
	f.state.TapEmoji(a)
	f.state.DragChanged(geom.Vector{DX: 50})
	f.state.ZoomChanged(3)
	f.state.PanChanged(geom.Vector{DY: 10})

	f.state.CancelGesture()
	e, _ := f.doc.Emoji(a)
	assert.Equal(t, geom.Point{X: 200, Y: 200}, f.state.EmojiPosition(e))
	assert.Equal(t, 40.0, f.state.EmojiSize(e))
	assert.Equal(t, geom.Vector{}, f.state.View().Pan())
	assert.Equal(t, []int{a}, f.state.Selection())
	assert.False(t, f.undo.CanUndo())
}
