package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/interaction"
)

type stubBackdrop struct {
	status background.Status
}

func (b *stubBackdrop) Status() background.Status { return b.status }
func (b *stubBackdrop) ImageSize() geom.Size { return geom.Size{} }
func (b *stubBackdrop) Subscribe(func(background.Status)) func() {
	return func() {}
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompose(t *testing.T) {
	doc := emojiart.NewDocument(emojiart.NewModel())
	a, err := doc.AddEmoji("🔥", geom.DocPoint{X: 10, Y: 10}, 40, nil)
	require.NoError(t, err)
	b, err := doc.AddEmoji("🐶", geom.DocPoint{X: -10, Y: 0}, 20, nil)
	require.NoError(t, err)

	backdrop := &stubBackdrop{}
	st := interaction.New(doc,
		interaction.WithBackdrop(backdrop),
		interaction.WithViewport(geom.Size{Width: 400, Height: 400}),
	)
	defer st.Close()
	st.ZoomEnded(2)
	st.TapEmoji(a)

	sc := Compose(st, nil)
	assert.Equal(t, 2.0, sc.Zoom)
	assert.Equal(t, geom.Point{X: 200, Y: 200}, sc.Origin)
	require.Len(t, sc.Items, 2)

	assert.Equal(t, Item{
		ID:         a,
		Text:       "🔥",
		Center:     geom.Point{X: 220, Y: 220},
		Size:       80,
		Selected:   true,
		FrameSize:  120,
		DeleteIcon: geom.Point{X: 320, Y: 180},
	}, sc.Items[0])
	assert.Equal(t, b, sc.Items[1].ID)
	assert.False(t, sc.Items[1].Selected)
	assert.Equal(t, geom.Point{X: 180, Y: 200}, sc.Items[1].Center)

	backdrop.status = background.Status{State: background.Fetching, URL: "https://example.com"}
	sc = Compose(st, nil)
	assert.True(t, sc.Fetching)
	assert.Empty(t, sc.Items)
}

func TestDrawBackground(t *testing.T) {
	r, err := NewRasterizer(nil)
	require.NoError(t, err)

	red := color.RGBA{R: 255, A: 255}
	img, err := r.Draw(Scene{
		Viewport:   geom.Size{Width: 100, Height: 100},
		Zoom:       2,
		Origin:     geom.Point{X: 50, Y: 50},
		Background: solid(10, 10, red),
	})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	cr, cg, cb, _ := img.At(50, 50).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{cr, cg, cb})
	cr, cg, cb, _ = img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{cr, cg, cb})
}

func TestDrawItems(t *testing.T) {
	r, err := NewRasterizer(nil)
	require.NoError(t, err)
	sc := Scene{
		Viewport: geom.Size{Width: 120, Height: 80},
		Zoom:     1,
		Origin:   geom.Point{X: 60, Y: 40},
		Items: []Item{
			{ID: 1, Text: "A", Center: geom.Point{X: 30, Y: 40}, Size: 24},
			{ID: 2, Text: "🔥", Center: geom.Point{X: 80, Y: 40}, Size: 24, Selected: true, FrameSize: 44, DeleteIcon: geom.Point{X: 100, Y: 20}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf, sc))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 80, cfg.Height)

	path := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, r.SavePNG(path, sc))
	assert.FileExists(t, path)
}

func TestDrawFetching(t *testing.T) {
	r, err := NewRasterizer(nil)
	require.NoError(t, err)
	_, err = r.Draw(Scene{Viewport: geom.Size{Width: 50, Height: 50}, Zoom: 1, Fetching: true})
	assert.NoError(t, err)
}

func TestDrawEmptyViewport(t *testing.T) {
	r, err := NewRasterizer(nil)
	require.NoError(t, err)
	_, err = r.Draw(Scene{})
	assert.Error(t, err)
}

func TestBadFont(t *testing.T) {
	_, err := NewRasterizer([]byte("not a font"))
	assert.Error(t, err)

	_, err = LoadRasterizer(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)

	r, err := LoadRasterizer("")
	require.NoError(t, err)
	assert.NotNil(t, r)
}
