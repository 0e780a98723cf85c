package background

import (
	"errors"
	"fmt"
)

// State is the fetch state of the current background.
type State int

const (
	Idle State = iota
	Fetching
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is the fetch state plus the URL it concerns. URL is empty for
// blank and embedded-bytes backgrounds, so an embedded decode failure is
// Failed with no URL.
type Status struct {
	State State
	URL   string
}

func (s Status) String() string {
	if s.URL == "" {
		return s.State.String()
	}
	return s.State.String() + "(" + s.URL + ")"
}

// ErrDecodeFailed wraps image decoding errors.
var ErrDecodeFailed = errors.New("background: cannot decode image")

// FetchError reports a failed resolution. URL is empty for embedded bytes.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("background: embedded image: %v", e.Err)
	}
	return fmt.Sprintf("background: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
