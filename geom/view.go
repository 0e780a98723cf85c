package geom

// View is the pan/zoom state of a viewport. Steady values are committed when a
// gesture ends; gesture values are live while it is in progress. Pan values
// are kept in document space and converted to screen space on use.
type View struct {
	Viewport    Size
	SteadyZoom  float64
	GestureZoom float64
	SteadyPan   Vector
	GesturePan  Vector
}

// NewView returns an unzoomed, unpanned view of the given viewport.
func NewView(viewport Size) View {
	return View{Viewport: viewport, SteadyZoom: 1, GestureZoom: 1}
}

// Zoom is the effective scale: steady times gesture.
func (v View) Zoom() float64 {
	z := v.SteadyZoom
	if z == 0 {
		z = 1
	}
	g := v.GestureZoom
	if g == 0 {
		g = 1
	}
	return z * g
}

// Pan is the effective screen-space pan: (steady + gesture) * zoom.
func (v View) Pan() Vector {
	return v.SteadyPan.Add(v.GesturePan).Scale(v.Zoom())
}

// Center is the middle of the viewport in screen space.
func (v View) Center() Point {
	return v.Viewport.Center()
}

// ToScreen maps a document point through the view.
func (v View) ToScreen(p DocPoint) Point {
	return ToScreen(p, v.Pan(), v.Zoom(), v.Center())
}

// ToDocument maps a screen point back into document space.
func (v View) ToDocument(s Point) DocPoint {
	return ToDocument(s, v.Pan(), v.Zoom(), v.Center())
}

// ZoomToFit fits an image of the given size into the viewport. The view is
// returned unchanged when either size is degenerate.
func (v View) ZoomToFit(image Size) View {
	scale, pan, ok := ZoomToFit(image, v.Viewport)
	if !ok {
		return v
	}
	v.SteadyZoom = scale
	v.SteadyPan = pan
	return v
}
