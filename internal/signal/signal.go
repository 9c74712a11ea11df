package signal

// Signal is a list of change handlers dispatched synchronously on the caller's
// goroutine. Handlers registered during a dispatch are not called until the
// next one.
type Signal struct {
	handlers []*handler
}

type handler struct {
	fn      func()
	removed bool
}

// Add registers fn and returns a function that unregisters it. The returned
// function is safe to call more than once.
func (s *Signal) Add(fn func()) func() {
	h := &handler{fn: fn}
	s.handlers = append(s.handlers, h)
	return func() {
		if h.removed {
			return
		}
		h.removed = true
		for i, other := range s.handlers {
			if other == h {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				break
			}
		}
	}
}

func (s *Signal) Dispatch() {
	handlers := s.handlers
	for _, h := range handlers {
		if h.removed {
			continue
		}
		h.fn()
	}
}

func (s *Signal) Len() int {
	return len(s.handlers)
}

// Watchable holds a value and dispatches Changed whenever Set stores a
// different one.
type Watchable[T comparable] struct {
	value   T
	Changed Signal
}

func NewWatchable[T comparable](value T) *Watchable[T] {
	return &Watchable[T]{value: value}
}

func (w *Watchable[T]) Value() T {
	return w.value
}

func (w *Watchable[T]) Set(value T) {
	if w.value == value {
		return
	}
	w.value = value
	w.Changed.Dispatch()
}

// Disposers collects cleanup functions and runs them in reverse order.
type Disposers []func()

func (d *Disposers) Add(fn func()) {
	if fn == nil {
		return
	}
	*d = append(*d, fn)
}

func (d *Disposers) Dispose() {
	items := *d
	*d = nil
	for i := len(items) - 1; i >= 0; i-- {
		items[i]()
	}
}
