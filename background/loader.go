// Package background resolves a document background into a bitmap.
//
// Remote URLs are fetched on a separate goroutine and the result is posted
// back to the goroutine that owns the document through a dispatcher. Every
// resolution bumps a generation counter; results carrying an older
// generation are dropped, so a slow fetch can never overwrite the bitmap of
// a newer background.
package background

import (
	"context"
	"image"
	"time"

	"github.com/rs/zerolog"

	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/logger"
)

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 15 * time.Second

// Loader tracks the bitmap and fetch status of the current background.
// Resolve and the accessors must be called from the owning goroutine; the
// dispatcher must run posted functions on that same goroutine.
type Loader struct {
	fetcher Fetcher
	decoder Decoder
	post    func(func())
	queue   *Queue
	timeout time.Duration

	generation uint64
	image      image.Image
	status     Status
	err        error
	listeners  emojiart.Listeners[Status]
	log        zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) { l.fetcher = f }
}

// WithDecoder replaces the default image decoder.
func WithDecoder(d Decoder) Option {
	return func(l *Loader) { l.decoder = d }
}

// WithDispatcher sets the function used to hand fetch results back to the
// owning goroutine.
func WithDispatcher(post func(func())) Option {
	return func(l *Loader) { l.post = post }
}

// WithTimeout bounds each remote fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// NewLoader returns an idle loader. Without WithDispatcher results are
// delivered through a Queue that the owner drains; see Loader.Queue.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fetcher: &HTTPFetcher{},
		decoder: ImageDecoder{},
		timeout: DefaultTimeout,
		log:     logger.With("background"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.post == nil {
		l.queue = NewQueue()
		l.post = l.queue.Post
	}
	return l
}

// Resolve starts resolving bg, superseding any fetch in flight.
func (l *Loader) Resolve(bg emojiart.Background) {
	l.generation++
	gen := l.generation
	l.err = nil

	switch bg.Kind() {
	case emojiart.BackgroundBlank:
		l.image = nil
		l.setStatus(Status{State: Idle})

	case emojiart.BackgroundImageData:
		data, _ := bg.ImageData()
		img, err := l.decoder.Decode(data)
		l.complete("", img, err)

	case emojiart.BackgroundURL:
		rawURL, _ := bg.URL()
		l.image = nil
		l.setStatus(Status{State: Fetching, URL: rawURL})
		go l.fetch(gen, rawURL)
	}
}

func (l *Loader) fetch(gen uint64, rawURL string) {
	ctx := context.Background()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	var img image.Image
	data, err := l.fetcher.Fetch(ctx, rawURL)
	if err == nil {
		img, err = l.decoder.Decode(data)
	}
	l.post(func() {
		if gen != l.generation {
			l.log.Debug().Str("url", rawURL).Msg("discarding superseded fetch result")
			return
		}
		l.complete(rawURL, img, err)
	})
}

func (l *Loader) complete(rawURL string, img image.Image, err error) {
	if err != nil {
		l.image = nil
		l.err = &FetchError{URL: rawURL, Err: err}
		l.log.Warn().Err(l.err).Msg("background resolution failed")
		l.setStatus(Status{State: Failed, URL: rawURL})
		return
	}
	l.image = img
	l.setStatus(Status{State: Resolved, URL: rawURL})
}

func (l *Loader) setStatus(s Status) {
	l.status = s
	l.listeners.Publish(s)
}

// Queue returns the default dispatcher queue, or nil when WithDispatcher
// was used.
func (l *Loader) Queue() *Queue { return l.queue }

// Subscribe registers fn for status changes.
func (l *Loader) Subscribe(fn func(Status)) (cancel func()) {
	return l.listeners.Subscribe(fn)
}

// Status returns the current fetch status.
func (l *Loader) Status() Status { return l.status }

// Image returns the resolved bitmap, or nil.
func (l *Loader) Image() image.Image { return l.image }

// Err returns the error behind a Failed status.
func (l *Loader) Err() error { return l.err }

// ImageSize returns the bitmap size, or a zero size without a bitmap.
func (l *Loader) ImageSize() geom.Size {
	if l.image == nil {
		return geom.Size{}
	}
	b := l.image.Bounds()
	return geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
