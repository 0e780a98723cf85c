package emojiart

import (
	"github.com/rs/zerolog"

	"emojiart/geom"
	"emojiart/logger"
)

// Undo action names.
const (
	ActionAddEmoji      = "Add Emoji"
	ActionRemoveEmoji   = "Remove Emoji"
	ActionMoveEmoji     = "Move Emoji"
	ActionScaleEmoji    = "Scale Emoji"
	ActionSetBackground = "Set Background"
)

// Recorder accepts undo registrations. The inverse, when run, restores the
// state from before the mutation it was recorded for.
type Recorder interface {
	Record(name string, inverse func())
}

// Grouper is implemented by recorders that can coalesce several
// registrations into a single undo step.
type Grouper interface {
	BeginGroup(name string)
	EndGroup()
}

// BackgroundResolver turns a background into a bitmap, typically
// asynchronously.
type BackgroundResolver interface {
	Resolve(bg Background)
}

// Change describes what a mutation touched.
type Change struct {
	Emojis     bool
	Background bool
}

// Document is the single-owner, observable, undo-aware wrapper around a
// Model. All methods must be called from the goroutine that owns it.
type Document struct {
	model     *Model
	listeners Listeners[Change]
	resolver  BackgroundResolver
	log       zerolog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithResolver sets the resolver notified whenever the background changes.
func WithResolver(r BackgroundResolver) Option {
	return func(d *Document) { d.resolver = r }
}

// NewDocument wraps m, or an empty model when m is nil.
func NewDocument(m *Model, opts ...Option) *Document {
	if m == nil {
		m = NewModel()
	}
	d := &Document{
		model: m,
		log:   logger.With("document"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetResolver installs the background resolver and resolves the current
// background through it.
func (d *Document) SetResolver(r BackgroundResolver) {
	d.resolver = r
	if r != nil {
		r.Resolve(d.model.Background)
	}
}

// Subscribe registers fn to be called synchronously after every change.
func (d *Document) Subscribe(fn func(Change)) (cancel func()) {
	return d.listeners.Subscribe(fn)
}

// Background returns the current background.
func (d *Document) Background() Background {
	return d.model.Background
}

// Emojis returns a copy of the emojis in z-order.
func (d *Document) Emojis() []Emoji {
	out := make([]Emoji, len(d.model.Emojis))
	copy(out, d.model.Emojis)
	return out
}

// Emoji looks up an emoji by id.
func (d *Document) Emoji(id int) (Emoji, bool) {
	return d.model.Emoji(id)
}

// Snapshot returns a copy of the underlying model.
func (d *Document) Snapshot() *Model {
	return d.model.Clone()
}

// Replace swaps in a freshly loaded model. It is not undoable.
func (d *Document) Replace(m *Model) {
	if m == nil {
		m = NewModel()
	}
	prev := d.model
	d.model = m
	d.notify(prev, true)
}

// AddEmoji places text at the given document point.
func (d *Document) AddEmoji(text string, at geom.DocPoint, size int, r Recorder) (int, error) {
	var id int
	err := d.perform(ActionAddEmoji, r, func(m *Model) error {
		var err error
		id, err = m.AddEmoji(text, at, size)
		return err
	})
	if err != nil {
		d.log.Debug().Str("text", text).Err(err).Msg("add emoji rejected")
		return 0, err
	}
	return id, nil
}

// RemoveEmoji deletes an emoji; unknown ids are a no-op.
func (d *Document) RemoveEmoji(id int, r Recorder) {
	d.perform(ActionRemoveEmoji, r, func(m *Model) error {
		m.RemoveEmoji(id)
		return nil
	})
}

// MoveEmoji offsets an emoji; unknown ids are a no-op.
func (d *Document) MoveEmoji(id int, by geom.DocPoint, r Recorder) {
	d.perform(ActionMoveEmoji, r, func(m *Model) error {
		m.MoveEmoji(id, by)
		return nil
	})
}

// ScaleEmoji resizes an emoji; unknown ids are a no-op.
func (d *Document) ScaleEmoji(id int, factor float64, r Recorder) {
	d.perform(ActionScaleEmoji, r, func(m *Model) error {
		m.ScaleEmoji(id, factor)
		return nil
	})
}

// SetBackground replaces the background and starts resolving it.
func (d *Document) SetBackground(bg Background, r Recorder) {
	d.perform(ActionSetBackground, r, func(m *Model) error {
		m.SetBackground(bg)
		return nil
	})
}

// Group runs fn with the registrations it makes coalesced into one undo
// step named name, when r supports grouping.
func Group(r Recorder, name string, fn func()) {
	g, ok := r.(Grouper)
	if !ok {
		fn()
		return
	}
	g.BeginGroup(name)
	defer g.EndGroup()
	fn()
}

// perform applies fn to a copy of the model. When the copy differs it
// registers an inverse restoring the old state, commits the copy and
// notifies subscribers. A nil recorder skips registration only.
func (d *Document) perform(name string, r Recorder, fn func(*Model) error) error {
	next := d.model.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if next.Equal(d.model) {
		d.model.nextID = next.nextID
		return nil
	}
	prev := d.model
	if r != nil {
		r.Record(name, func() { d.restore(name, prev, r) })
	}
	d.model = next
	d.notify(prev, false)
	return nil
}

// restore returns the document to target's emojis and background. It is
// itself undoable so that the host can redo. Ids keep counting up.
func (d *Document) restore(name string, target *Model, r Recorder) {
	d.perform(name, r, func(m *Model) error {
		m.Background = target.Background
		m.Emojis = target.Clone().Emojis
		return nil
	})
}

func (d *Document) notify(prev *Model, force bool) {
	change := Change{
		Emojis:     force || !emojisEqual(prev.Emojis, d.model.Emojis),
		Background: force || !prev.Background.Equal(d.model.Background),
	}
	if change.Background && d.resolver != nil {
		d.resolver.Resolve(d.model.Background)
	}
	d.listeners.Publish(change)
}

func emojisEqual(a, b []Emoji) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
