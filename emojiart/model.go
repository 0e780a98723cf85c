// Package emojiart holds the EmojiArt document: a background and an ordered
// set of placed emoji, the undo-aware mutations on it and its file format.
package emojiart

import (
	"encoding/json"
	"fmt"
	"math"

	"emojiart/geom"
	"emojiart/glyph"
)

// MaxEmojiSize bounds emoji sizes so that scaling never overflows.
const MaxEmojiSize = 1 << 16

// Emoji is a glyph placed on the document. Identity is ID; the other fields
// may change under edits.
type Emoji struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Size int    `json:"size"`
}

// Location is the emoji's position in document space.
func (e Emoji) Location() geom.DocPoint {
	return geom.DocPoint{X: e.X, Y: e.Y}
}

// Model is the persisted document state. Emoji order is z-order.
type Model struct {
	Background Background
	Emojis     []Emoji

	nextID int
}

// NewModel returns an empty document with a blank background.
func NewModel() *Model {
	return &Model{nextID: 1}
}

// Emoji looks up an emoji by id.
func (m *Model) Emoji(id int) (Emoji, bool) {
	if i := m.index(id); i >= 0 {
		return m.Emojis[i], true
	}
	return Emoji{}, false
}

func (m *Model) index(id int) int {
	for i := range m.Emojis {
		if m.Emojis[i].ID == id {
			return i
		}
	}
	return -1
}

// AddEmoji appends an emoji and returns its freshly minted id. Sizes below 1
// are raised to 1.
func (m *Model) AddEmoji(text string, at geom.DocPoint, size int) (int, error) {
	if !glyph.IsEmoji(text) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGlyph, text)
	}
	if m.nextID < 1 {
		m.nextID = 1
	}
	id := m.nextID
	m.nextID++
	m.Emojis = append(m.Emojis, Emoji{
		ID:   id,
		Text: text,
		X:    at.X,
		Y:    at.Y,
		Size: clampSize(size),
	})
	return id, nil
}

// RemoveEmoji deletes the emoji with the given id. Absent ids are ignored.
func (m *Model) RemoveEmoji(id int) {
	if i := m.index(id); i >= 0 {
		m.Emojis = append(m.Emojis[:i:i], m.Emojis[i+1:]...)
	}
}

// MoveEmoji offsets an emoji's location. Absent ids are ignored.
func (m *Model) MoveEmoji(id int, by geom.DocPoint) {
	if i := m.index(id); i >= 0 {
		m.Emojis[i].X += by.X
		m.Emojis[i].Y += by.Y
	}
}

// ScaleEmoji multiplies an emoji's size by factor, rounding and never going
// below 1. Non-finite factors and absent ids are ignored.
func (m *Model) ScaleEmoji(id int, factor float64) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	if i := m.index(id); i >= 0 {
		scaled := math.Round(float64(m.Emojis[i].Size) * factor)
		if scaled > MaxEmojiSize {
			scaled = MaxEmojiSize
		}
		m.Emojis[i].Size = clampSize(int(scaled))
	}
}

// SetBackground replaces the background.
func (m *Model) SetBackground(bg Background) {
	m.Background = bg
}

// Clone returns a deep copy of the emoji list sharing background bytes,
// which are never mutated in place.
func (m *Model) Clone() *Model {
	c := &Model{
		Background: m.Background,
		nextID:     m.nextID,
	}
	if m.Emojis != nil {
		c.Emojis = make([]Emoji, len(m.Emojis))
		copy(c.Emojis, m.Emojis)
	}
	return c
}

// Equal compares background and emojis in order.
func (m *Model) Equal(o *Model) bool {
	if !m.Background.Equal(o.Background) || len(m.Emojis) != len(o.Emojis) {
		return false
	}
	for i := range m.Emojis {
		if m.Emojis[i] != o.Emojis[i] {
			return false
		}
	}
	return true
}

func clampSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxEmojiSize {
		return MaxEmojiSize
	}
	return size
}

type modelJSON struct {
	Background Background `json:"background"`
	Emojis     []Emoji    `json:"emojis"`
}

// MarshalJSON writes the document file format.
func (m *Model) MarshalJSON() ([]byte, error) {
	emojis := m.Emojis
	if emojis == nil {
		emojis = []Emoji{}
	}
	return json.Marshal(modelJSON{Background: m.Background, Emojis: emojis})
}

// UnmarshalJSON reads the document file format and validates emoji records.
func (m *Model) UnmarshalJSON(data []byte) error {
	var in modelJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(in.Emojis))
	next := 1
	for _, e := range in.Emojis {
		if e.Size < 1 {
			return fmt.Errorf("emoji %d: %w", e.ID, ErrInvalidSize)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("emoji %d: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	m.Background = in.Background
	m.Emojis = in.Emojis
	if len(m.Emojis) == 0 {
		m.Emojis = nil
	}
	m.nextID = next
	return nil
}
