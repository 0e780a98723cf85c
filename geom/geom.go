// Package geom maps between document space and screen space.
//
// Document space is fixed to the document content with its origin at the
// document center and integer coordinates. Screen space is the rendered
// viewport after pan and zoom have been applied.
package geom

import "math"

// DocPoint is a point in document space.
type DocPoint struct {
	X, Y int
}

// Add returns p offset by q.
func (p DocPoint) Add(q DocPoint) DocPoint {
	return DocPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Point is a point in screen space.
type Point struct {
	X, Y float64
}

// Vector is a screen or document displacement, used for pan offsets and
// drag translations.
type Vector struct {
	DX, DY float64
}

// Add returns the sum of two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{DX: v.DX + w.DX, DY: v.DY + w.DY}
}

// Scale multiplies both components by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{DX: v.DX * f, DY: v.DY * f}
}

// Rounded converts a document-space vector into an integer delta.
func (v Vector) Rounded() DocPoint {
	return DocPoint{X: int(math.Round(v.DX)), Y: int(math.Round(v.DY))}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Center returns the midpoint of a rectangle of size s anchored at the origin.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Empty reports whether s has no positive area.
func (s Size) Empty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Fixed document-space offsets of the selection decorations relative to the
// emoji they belong to.
var (
	DeleteIconOffset = DocPoint{X: 50, Y: -20}
)

// SelectionFrameGrowth is added to an emoji's size to size its selection frame.
const SelectionFrameGrowth = 20

// ToScreen maps a document point into screen space:
// screen = center + doc*zoom + pan.
func ToScreen(p DocPoint, pan Vector, zoom float64, center Point) Point {
	return Point{
		X: center.X + float64(p.X)*zoom + pan.DX,
		Y: center.Y + float64(p.Y)*zoom + pan.DY,
	}
}

// ToDocument is the inverse of ToScreen, floored to integers. A zoom that is
// not strictly positive is treated as 1.
func ToDocument(s Point, pan Vector, zoom float64, center Point) DocPoint {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	return DocPoint{
		X: int(math.Floor((s.X - pan.DX - center.X) / zoom)),
		Y: int(math.Floor((s.Y - pan.DY - center.Y) / zoom)),
	}
}

// DeleteIconPosition is where the delete control of a selected emoji is drawn.
// The offset is applied in document space so that it scales with zoom.
func DeleteIconPosition(p DocPoint, pan Vector, zoom float64, center Point) Point {
	return ToScreen(p.Add(DeleteIconOffset), pan, zoom, center)
}

// ZoomToFit returns the scale that fits image inside viewport and a zero pan.
// ok is false for degenerate sizes, in which case the caller keeps its
// current scale and pan.
func ZoomToFit(image, viewport Size) (scale float64, pan Vector, ok bool) {
	if image.Empty() || viewport.Empty() {
		return 0, Vector{}, false
	}
	h := viewport.Width / image.Width
	v := viewport.Height / image.Height
	scale = math.Min(h, v)
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0, Vector{}, false
	}
	return scale, Vector{}, true
}
