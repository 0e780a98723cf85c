package emojiart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BackgroundKind tags the active variant of a Background.
type BackgroundKind int

const (
	BackgroundBlank BackgroundKind = iota
	BackgroundURL
	BackgroundImageData
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundBlank:
		return "blank"
	case BackgroundURL:
		return "url"
	case BackgroundImageData:
		return "imageData"
	}
	return fmt.Sprintf("BackgroundKind(%d)", int(k))
}

// Background is the document backdrop: blank, a remote image URL or embedded
// image bytes. The zero value is blank. Exactly one variant is active; use
// the constructors to build one.
type Background struct {
	kind BackgroundKind
	url  string
	data []byte
}

// Blank returns the empty background.
func Blank() Background { return Background{} }

// RemoteURL returns a background resolved by fetching url.
func RemoteURL(url string) Background {
	return Background{kind: BackgroundURL, url: url}
}

// EmbeddedBytes returns a background decoded from the given image bytes.
func EmbeddedBytes(data []byte) Background {
	return Background{kind: BackgroundImageData, data: data}
}

// Kind returns the active variant.
func (b Background) Kind() BackgroundKind { return b.kind }

// URL returns the remote URL when the URL variant is active.
func (b Background) URL() (string, bool) {
	if b.kind != BackgroundURL {
		return "", false
	}
	return b.url, true
}

// ImageData returns the embedded bytes when that variant is active.
func (b Background) ImageData() ([]byte, bool) {
	if b.kind != BackgroundImageData {
		return nil, false
	}
	return b.data, true
}

// Equal reports whether two backgrounds hold the same variant and payload.
func (b Background) Equal(o Background) bool {
	if b.kind != o.kind {
		return false
	}
	switch b.kind {
	case BackgroundURL:
		return b.url == o.url
	case BackgroundImageData:
		return bytes.Equal(b.data, o.data)
	}
	return true
}

func (b Background) String() string {
	switch b.kind {
	case BackgroundURL:
		return "url(" + b.url + ")"
	case BackgroundImageData:
		return fmt.Sprintf("imageData(%d bytes)", len(b.data))
	}
	return "blank"
}

type backgroundJSON struct {
	URL       *string `json:"url,omitempty"`
	ImageData *[]byte `json:"imageData,omitempty"`
}

// MarshalJSON encodes blank as {}, a URL as {"url":...} and embedded bytes as
// {"imageData":<base64>}.
func (b Background) MarshalJSON() ([]byte, error) {
	var out backgroundJSON
	switch b.kind {
	case BackgroundURL:
		u := b.url
		out.URL = &u
	case BackgroundImageData:
		d := b.data
		if d == nil {
			d = []byte{}
		}
		out.ImageData = &d
	}
	return json.Marshal(out)
}

// UnmarshalJSON rejects payloads carrying more than one variant.
func (b *Background) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = Blank()
		return nil
	}
	var in backgroundJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode background: %w", err)
	}
	switch {
	case in.URL != nil && in.ImageData != nil:
		return ErrAmbiguousBackground
	case in.URL != nil:
		if *in.URL == "" {
			return fmt.Errorf("decode background: %w", ErrEmptyURL)
		}
		*b = RemoteURL(*in.URL)
	case in.ImageData != nil:
		*b = EmbeddedBytes(*in.ImageData)
	default:
		*b = Blank()
	}
	return nil
}
