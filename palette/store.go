// Package palette is the persisted collection of named emoji palettes.
//
// A Store is never empty: it seeds itself with default palettes when
// nothing usable is stored, and refuses to remove its last palette. Every
// mutation writes the whole ordered list back to the key-value backend;
// write failures are logged and otherwise ignored.
package palette

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"emojiart/glyph"
	"emojiart/logger"
)

// KeyPrefix namespaces store keys.
const KeyPrefix = "PaletteStore:"

// Key returns the persistence key of the store called name.
func Key(name string) string {
	return KeyPrefix + name
}

// Palette is a named string of emoji.
type Palette struct {
	Name   string `json:"name"`
	Emojis string `json:"emojis"`
	ID     int    `json:"id"`
}

// Store is a single-owner ordered list of palettes.
type Store struct {
	name     string
	kv       KV
	palettes []Palette
	maxID    int
	timeout  time.Duration
	log      zerolog.Logger
}

// NewStore loads the store called name from kv, seeding defaults when the
// stored value is missing, unreadable or empty.
func NewStore(ctx context.Context, name string, kv KV) *Store {
	s := &Store{
		name:    name,
		kv:      kv,
		timeout: 5 * time.Second,
		log:     logger.With("palette"),
	}
	s.restore(ctx)
	if len(s.palettes) == 0 {
		s.seed()
	}
	return s
}

func (s *Store) restore(ctx context.Context) {
	data, err := s.kv.Get(ctx, Key(s.name))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Str("key", Key(s.name)).Msg("load palettes")
		}
		return
	}
	var palettes []Palette
	if err := json.Unmarshal(data, &palettes); err != nil {
		s.log.Warn().Err(err).Str("key", Key(s.name)).Msg("decode palettes")
		return
	}
	s.palettes = palettes
	for _, p := range palettes {
		if p.ID > s.maxID {
			s.maxID = p.ID
		}
	}
}

func (s *Store) seed() {
	seeds, err := defaults()
	if err != nil {
		s.log.Error().Err(err).Msg("seed palettes")
		seeds = []seed{{Name: "Mix", Emojis: "😀"}}
	}
	for _, sd := range seeds {
		s.Insert(sd.Name, sd.Emojis, 0)
	}
	s.log.Info().Str("store", s.name).Int("palettes", len(s.palettes)).Msg("seeded default palettes")
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// Len returns the number of palettes; it is at least 1.
func (s *Store) Len() int { return len(s.palettes) }

// Palettes returns a copy of all palettes in order.
func (s *Store) Palettes() []Palette {
	out := make([]Palette, len(s.palettes))
	copy(out, s.palettes)
	return out
}

// Palette returns the palette at index, clamped into range.
func (s *Store) Palette(index int) Palette {
	return s.palettes[s.clamp(index)]
}

// Index returns the position of the palette with the given id, or -1.
func (s *Store) Index(id int) int {
	for i, p := range s.palettes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clamp(index int) int {
	return min(max(index, 0), len(s.palettes)-1)
}

// Insert adds a palette at index, clamped into [0, Len()], with an id one
// above any id this store has handed out.
func (s *Store) Insert(name, emojis string, index int) Palette {
	for _, p := range s.palettes {
		if p.ID > s.maxID {
			s.maxID = p.ID
		}
	}
	s.maxID++
	p := Palette{Name: name, Emojis: emojis, ID: s.maxID}
	index = min(max(index, 0), len(s.palettes))
	s.palettes = append(s.palettes, Palette{})
	copy(s.palettes[index+1:], s.palettes[index:])
	s.palettes[index] = p
	s.persist()
	return p
}

// RemoveAt deletes the palette at index unless it is the last one or index
// is out of range. It returns the index to show next.
func (s *Store) RemoveAt(index int) int {
	if len(s.palettes) > 1 && index >= 0 && index < len(s.palettes) {
		s.palettes = append(s.palettes[:index:index], s.palettes[index+1:]...)
		s.persist()
	}
	if index < 0 {
		return 0
	}
	return index % len(s.palettes)
}

// Rename changes the name of the palette at index.
func (s *Store) Rename(index int, name string) {
	s.update(index, func(p *Palette) { p.Name = name })
}

// SetEmojis replaces the emoji of the palette at index.
func (s *Store) SetEmojis(index int, emojis string) {
	s.update(index, func(p *Palette) { p.Emojis = emojis })
}

// AddEmojis puts the emoji found in add at the front of the palette at
// index, dropping anything that is not an emoji and any duplicates.
func (s *Store) AddEmojis(index int, add string) {
	s.update(index, func(p *Palette) { p.Emojis = glyph.Merge(p.Emojis, add) })
}

// RemoveEmoji deletes one emoji from the palette at index.
func (s *Store) RemoveEmoji(index int, emoji string) {
	s.update(index, func(p *Palette) { p.Emojis = glyph.Remove(p.Emojis, emoji) })
}

// Move relocates the palette at from so that it ends up at to. Both are
// clamped into range.
func (s *Store) Move(from, to int) {
	from, to = s.clamp(from), s.clamp(to)
	if from == to {
		return
	}
	p := s.palettes[from]
	s.palettes = append(s.palettes[:from:from], s.palettes[from+1:]...)
	s.palettes = append(s.palettes, Palette{})
	copy(s.palettes[to+1:], s.palettes[to:])
	s.palettes[to] = p
	s.persist()
}

func (s *Store) update(index int, fn func(*Palette)) {
	i := s.clamp(index)
	before := s.palettes[i]
	fn(&s.palettes[i])
	if s.palettes[i] != before {
		s.persist()
	}
}

func (s *Store) persist() {
	data, err := json.Marshal(s.palettes)
	if err != nil {
		s.log.Error().Err(err).Msg("encode palettes")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.kv.Set(ctx, Key(s.name), data); err != nil {
		s.log.Warn().Err(err).Str("key", Key(s.name)).Msg("persist palettes")
	}
}
