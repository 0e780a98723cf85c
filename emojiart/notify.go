package emojiart

// Listeners is a list of change callbacks owned by a single goroutine.
// Callbacks run synchronously in subscription order.
type Listeners[T any] struct {
	next int
	subs []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
func (l *Listeners[T]) Subscribe(fn func(T)) (cancel func()) {
	l.next++
	id := l.next
	l.subs = append(l.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every subscriber with v.
func (l *Listeners[T]) Publish(v T) {
	subs := l.subs
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (l *Listeners[T]) Len() int {
	return len(l.subs)
}
