package emojiart

import "errors"

var (
	// ErrInvalidGlyph is returned when emoji text is not a single emoji
	// grapheme cluster.
	ErrInvalidGlyph = errors.New("emojiart: not an emoji")

	// ErrInvalidSize is returned when a decoded emoji has a non-positive size.
	ErrInvalidSize = errors.New("emojiart: emoji size must be positive")

	// ErrDuplicateID is returned when a decoded document repeats an emoji id.
	ErrDuplicateID = errors.New("emojiart: duplicate emoji id")

	// ErrAmbiguousBackground is returned when an encoded background names
	// both a URL and image data.
	ErrAmbiguousBackground = errors.New("emojiart: background has both url and imageData")

	// ErrEmptyURL is returned for a URL background with an empty address.
	ErrEmptyURL = errors.New("emojiart: empty background url")
)
