// Package interaction holds the view-local state of an open document: which
// emojis are selected, the pan/zoom view and any gesture in progress. It
// turns gestures and drop/paste/pick intents into document mutations.
package interaction

import (
	"math"

	"github.com/rs/zerolog"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/logger"
)

// DefaultEmojiSize is the size of an emoji added at zoom 1.
const DefaultEmojiSize = 40

// Backdrop is the resolved background as seen by the view.
type Backdrop interface {
	Status() background.Status
	ImageSize() geom.Size
	Subscribe(fn func(background.Status)) (cancel func())
}

// State is the interaction state of one document view. It must be used from
// the goroutine that owns the document.
type State struct {
	doc         *emojiart.Document
	backdrop    Backdrop
	undo        emojiart.Recorder
	defaultSize int

	view       geom.View
	selection  Selection
	emojiPan   geom.Vector
	emojiScale float64
	autozoom   bool
	alerts     alerts

	cancels []func()
	log     zerolog.Logger
}

// Option configures a State.
type Option func(*State)

// WithRecorder sets where undo steps are registered.
func WithRecorder(r emojiart.Recorder) Option {
	return func(s *State) { s.undo = r }
}

// WithBackdrop connects the view to the background loader.
func WithBackdrop(b Backdrop) Option {
	return func(s *State) { s.backdrop = b }
}

// WithDefaultEmojiSize overrides DefaultEmojiSize.
func WithDefaultEmojiSize(size int) Option {
	return func(s *State) {
		if size > 0 {
			s.defaultSize = size
		}
	}
}

// WithViewport sets the initial viewport size.
func WithViewport(size geom.Size) Option {
	return func(s *State) { s.view.Viewport = size }
}

// New returns the interaction state for doc.
func New(doc *emojiart.Document, opts ...Option) *State {
	s := &State{
		doc:         doc,
		defaultSize: DefaultEmojiSize,
		view:        geom.NewView(geom.Size{}),
		emojiScale:  1,
		log:         logger.With("interaction"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cancels = append(s.cancels, doc.Subscribe(s.documentChanged))
	if s.backdrop != nil {
		s.cancels = append(s.cancels, s.backdrop.Subscribe(s.statusChanged))
	}
	return s
}

// Close detaches the state from the document and the backdrop.
func (s *State) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func (s *State) documentChanged(c emojiart.Change) {
	if !c.Emojis {
		return
	}
	s.selection.Prune(func(id int) bool {
		_, ok := s.doc.Emoji(id)
		return ok
	})
}

func (s *State) statusChanged(st background.Status) {
	switch st.State {
	case background.Failed:
		s.autozoom = false
		s.alerts.show(FetchFailedAlert(st.URL))
	case background.Resolved:
		if s.autozoom {
			s.autozoom = false
			s.ZoomToFit()
		}
	}
}

// Document returns the document being edited.
func (s *State) Document() *emojiart.Document { return s.doc }

// View returns the current pan/zoom, including any gesture in progress.
func (s *State) View() geom.View { return s.view }

// Zoom is the effective zoom scale.
func (s *State) Zoom() float64 { return s.view.Zoom() }

// SetViewport records a new viewport size.
func (s *State) SetViewport(size geom.Size) { s.view.Viewport = size }

// Fetching reports whether a remote background is being loaded.
func (s *State) Fetching() bool {
	return s.backdrop != nil && s.backdrop.Status().State == background.Fetching
}

// Selection returns the selected emoji ids in ascending order.
func (s *State) Selection() []int { return s.selection.IDs() }

// IsSelected reports whether the emoji with id is selected.
func (s *State) IsSelected(id int) bool { return s.selection.Contains(id) }

// Alerts returns the alerts waiting to be shown, oldest first.
func (s *State) Alerts() []Alert {
	return append([]Alert(nil), s.alerts.list...)
}

// Dismiss removes the alert with the given id.
func (s *State) Dismiss(id string) bool { return s.alerts.dismiss(id) }

// ShowAlert queues an alert raised by the host.
func (s *State) ShowAlert(a Alert) { s.alerts.show(a) }

// TapEmoji toggles the selection of an emoji.
func (s *State) TapEmoji(id int) {
	if _, ok := s.doc.Emoji(id); !ok {
		return
	}
	s.selection.Toggle(id)
}

// TapBackground clears the selection.
func (s *State) TapBackground() { s.selection.Clear() }

// DoubleTapBackground zooms the background image to fit the viewport.
func (s *State) DoubleTapBackground() { s.ZoomToFit() }

// ZoomToFit fits the background image into the viewport. Nothing changes
// when there is no image or the viewport is empty.
func (s *State) ZoomToFit() {
	if s.backdrop == nil {
		return
	}
	s.view = s.view.ZoomToFit(s.backdrop.ImageSize())
	s.view.GesturePan = geom.Vector{}
	s.view.GestureZoom = 1
}

// PanChanged tracks a background pan gesture. translation is in screen
// space.
func (s *State) PanChanged(translation geom.Vector) {
	s.view.GesturePan = s.toDocument(translation)
}

// PanEnded commits a background pan gesture.
func (s *State) PanEnded(translation geom.Vector) {
	s.view.SteadyPan = s.view.SteadyPan.Add(s.toDocument(translation))
	s.view.GesturePan = geom.Vector{}
}

// ZoomChanged tracks a pinch gesture. With a selection the selected emojis
// grow instead of the view.
func (s *State) ZoomChanged(scale float64) {
	if !validScale(scale) {
		return
	}
	if s.selection.Empty() {
		s.view.GestureZoom = scale
		return
	}
	s.emojiScale = scale
}

// ZoomEnded commits a pinch gesture. Scaling a selection is a single undo
// step and clears the selection.
func (s *State) ZoomEnded(scale float64) {
	defer func() {
		s.view.GestureZoom = 1
		s.emojiScale = 1
		s.selection.Clear()
	}()
	if !validScale(scale) {
		return
	}
	if s.selection.Empty() {
		s.view.SteadyZoom = s.steadyZoom() * scale
		return
	}
	ids := s.selection.IDs()
	emojiart.Group(s.undo, emojiart.ActionScaleEmoji, func() {
		for _, id := range ids {
			s.doc.ScaleEmoji(id, scale, s.undo)
		}
	})
	s.log.Debug().Ints("ids", ids).Float64("scale", scale).Msg("scaled selection")
}

// DragChanged tracks a drag of the selected emojis. translation is in
// screen space.
func (s *State) DragChanged(translation geom.Vector) {
	s.emojiPan = s.toDocument(translation)
}

// DragEnded moves the selected emojis by the final translation as a single
// undo step and clears the selection.
func (s *State) DragEnded(translation geom.Vector) {
	by := s.toDocument(translation).Rounded()
	ids := s.selection.IDs()
	s.emojiPan = geom.Vector{}
	s.selection.Clear()
	if len(ids) == 0 || by == (geom.DocPoint{}) {
		return
	}
	emojiart.Group(s.undo, emojiart.ActionMoveEmoji, func() {
		for _, id := range ids {
			s.doc.MoveEmoji(id, by, s.undo)
		}
	})
	s.log.Debug().Ints("ids", ids).Int("dx", by.X).Int("dy", by.Y).Msg("moved selection")
}

// CancelGesture abandons any pan, pinch or drag in progress without
// touching the document. The selection is kept.
func (s *State) CancelGesture() {
	s.view.GesturePan = geom.Vector{}
	s.view.GestureZoom = 1
	s.emojiPan = geom.Vector{}
	s.emojiScale = 1
}

// DeleteSelected removes every selected emoji as a single undo step.
func (s *State) DeleteSelected() {
	ids := s.selection.IDs()
	s.selection.Clear()
	if len(ids) == 0 {
		return
	}
	emojiart.Group(s.undo, emojiart.ActionRemoveEmoji, func() {
		for _, id := range ids {
			s.doc.RemoveEmoji(id, s.undo)
		}
	})
}

// EmojiPosition is the screen position of an emoji's center, following an
// in-progress drag when it is selected.
func (s *State) EmojiPosition(e emojiart.Emoji) geom.Point {
	return s.follow(e.ID, s.view.ToScreen(e.Location()))
}

// EmojiSize is the on-screen size of an emoji.
func (s *State) EmojiSize(e emojiart.Emoji) float64 {
	size := float64(e.Size) * s.view.Zoom()
	if s.selection.Contains(e.ID) {
		size *= s.emojiScale
	}
	return size
}

// SelectionFrameSize is the on-screen size of the frame drawn around a
// selected emoji.
func (s *State) SelectionFrameSize(e emojiart.Emoji) float64 {
	size := float64(e.Size+geom.SelectionFrameGrowth) * s.view.Zoom()
	if s.selection.Contains(e.ID) {
		size *= s.emojiScale
	}
	return size
}

// DeleteIconPosition is where the delete control of a selected emoji goes.
func (s *State) DeleteIconPosition(e emojiart.Emoji) geom.Point {
	p := geom.DeleteIconPosition(e.Location(), s.view.Pan(), s.view.Zoom(), s.view.Center())
	return s.follow(e.ID, p)
}

// EmojiAt returns the topmost emoji whose on-screen box contains p.
func (s *State) EmojiAt(p geom.Point) (emojiart.Emoji, bool) {
	emojis := s.doc.Emojis()
	for i := len(emojis) - 1; i >= 0; i-- {
		e := emojis[i]
		c := s.EmojiPosition(e)
		half := math.Max(s.EmojiSize(e)/2, 0.5)
		if math.Abs(p.X-c.X) <= half && math.Abs(p.Y-c.Y) <= half {
			return e, true
		}
	}
	return emojiart.Emoji{}, false
}

// ToDocument converts a screen point into document coordinates.
func (s *State) ToDocument(p geom.Point) geom.DocPoint { return s.view.ToDocument(p) }

func (s *State) follow(id int, p geom.Point) geom.Point {
	if !s.selection.Contains(id) {
		return p
	}
	off := s.emojiPan.Scale(s.view.Zoom())
	return geom.Point{X: p.X + off.DX, Y: p.Y + off.DY}
}

func (s *State) toDocument(translation geom.Vector) geom.Vector {
	return translation.Scale(1 / s.view.Zoom())
}

func (s *State) steadyZoom() float64 {
	if s.view.SteadyZoom == 0 {
		return 1
	}
	return s.view.SteadyZoom
}

func validScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0)
}
