package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"emojiart/logger"
)

var (
	frameColor  = color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}
	deleteColor = color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}
)

// Rasterizer draws scenes with a TrueType font. Monochrome outline fonts
// such as Noto Emoji render emoji glyphs; bitmap color fonts are not
// supported by freetype.
type Rasterizer struct {
	font  *truetype.Font
	faces map[int]font.Face
}

// NewRasterizer parses fontData, falling back to Go Mono when it is empty.
func NewRasterizer(fontData []byte) (*Rasterizer, error) {
	if len(fontData) == 0 {
		fontData = gomono.TTF
	}
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Rasterizer{font: f, faces: make(map[int]font.Face)}, nil
}

// LoadRasterizer reads a font file; an empty path selects the built-in font.
func LoadRasterizer(path string) (*Rasterizer, error) {
	if path == "" {
		return NewRasterizer(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRasterizer(data)
}

func (r *Rasterizer) face(size float64) font.Face {
	key := int(math.Round(size))
	if key < 1 {
		key = 1
	}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f
}

// Draw renders sc on a white canvas the size of its viewport.
func (r *Rasterizer) Draw(sc Scene) (image.Image, error) {
	dc, err := r.draw(sc)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *Rasterizer) draw(sc Scene) (*gg.Context, error) {
	w, h := int(math.Round(sc.Viewport.Width)), int(math.Round(sc.Viewport.Height))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("nothing to export: viewport is %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	if sc.Background != nil {
		dc.Push()
		dc.Translate(sc.Origin.X, sc.Origin.Y)
		dc.Scale(sc.Zoom, sc.Zoom)
		dc.DrawImageAnchored(sc.Background, 0, 0, 0.5, 0.5)
		dc.Pop()
	}

	if sc.Fetching {
		dc.SetFontFace(r.face(14))
		dc.SetColor(color.Black)
		dc.DrawStringAnchored("Loading…", float64(w)/2, float64(h)/2, 0.5, 0.5)
		return dc, nil
	}

	for _, it := range sc.Items {
		dc.SetFontFace(r.face(it.Size))
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(it.Text, it.Center.X, it.Center.Y, 0.5, 0.5)
		if it.Selected {
			r.drawSelection(dc, it)
		}
	}
	return dc, nil
}

func (r *Rasterizer) drawSelection(dc *gg.Context, it Item) {
	half := it.FrameSize / 2
	dc.SetLineWidth(2)
	dc.SetColor(frameColor)
	dc.DrawRectangle(it.Center.X-half, it.Center.Y-half, it.FrameSize, it.FrameSize)
	dc.Stroke()

	radius := math.Max(it.Size/6, 4)
	dc.SetColor(deleteColor)
	dc.DrawCircle(it.DeleteIcon.X, it.DeleteIcon.Y, radius)
	dc.Fill()
	dc.SetColor(color.White)
	d := radius / 2
	dc.DrawLine(it.DeleteIcon.X-d, it.DeleteIcon.Y-d, it.DeleteIcon.X+d, it.DeleteIcon.Y+d)
	dc.DrawLine(it.DeleteIcon.X-d, it.DeleteIcon.Y+d, it.DeleteIcon.X+d, it.DeleteIcon.Y-d)
	dc.Stroke()
}

// WritePNG encodes the drawn scene as PNG.
func (r *Rasterizer) WritePNG(w io.Writer, sc Scene) error {
	dc, err := r.draw(sc)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes the drawn scene to a PNG file.
func (r *Rasterizer) SavePNG(path string, sc Scene) error {
	dc, err := r.draw(sc)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return err
	}
	logger.Get().Info().Str("path", path).Int("emojis", len(sc.Items)).Msg("exported png")
	return nil
}
