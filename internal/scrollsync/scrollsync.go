// Package scrollsync relays scroll offsets from one surface to others.
//
// A Sync observes a single source surface. On every scroll event it copies
// the source's horizontal offset to each horizontal listener, then its
// vertical offset to each vertical listener, in registration order.
package scrollsync

import "sync"

// Surface is anything with a scroll position.
type Surface interface {
	ScrollLeft() int
	ScrollTop() int
	SetScrollLeft(int)
	SetScrollTop(int)
}

// Observed is a Surface that reports scroll events.
type Observed interface {
	Surface
	OnScroll(func())
}

// Accessor resolves a target surface when an event is relayed.
// It may return nil when the target does not exist yet.
type Accessor func() Surface

// Static returns an Accessor that always resolves to s.
func Static(s Surface) Accessor {
	return func() Surface { return s }
}

// Lazy returns an Accessor that calls fn on every relay.
func Lazy(fn func() Surface) Accessor {
	return fn
}

type axis int

const (
	horizontal axis = iota
	vertical
)

type listener struct {
	id int
	fn func(int)
}

// Sync broadcasts scroll offsets of a source surface.
type Sync struct {
	source Observed

	mu     sync.Mutex
	nextID int
	lists  [2][]listener
}

// New attaches a Sync to source. The attachment is permanent.
func New(source Observed) *Sync {
	s := &Sync{source: source}
	source.OnScroll(s.Fire)
	return s
}

// Handle removes a registration.
type Handle struct {
	s    *Sync
	axis axis
	id   int
}

// Remove unregisters the listener. Calling it more than once is a no-op.
func (h Handle) Remove() {
	if h.s == nil {
		return
	}
	h.s.remove(h.axis, h.id)
}

// RelayHorizontalTo mirrors the source's horizontal offset onto target.
func (s *Sync) RelayHorizontalTo(target Accessor) Handle {
	return s.add(horizontal, mirror(target, Surface.SetScrollLeft))
}

// RelayVerticalTo mirrors the source's vertical offset onto target.
func (s *Sync) RelayVerticalTo(target Accessor) Handle {
	return s.add(vertical, mirror(target, Surface.SetScrollTop))
}

// NotifyHorizontal calls fn with the new horizontal offset on every event.
func (s *Sync) NotifyHorizontal(fn func(offset int)) Handle {
	return s.add(horizontal, fn)
}

// NotifyVertical calls fn with the new vertical offset on every event.
func (s *Sync) NotifyVertical(fn func(offset int)) Handle {
	return s.add(vertical, fn)
}

// Fire runs one sweep over all listeners using the source's current offsets.
// Listeners run synchronously on the caller's goroutine.
func (s *Sync) Fire() {
	s.mu.Lock()
	h := append([]listener(nil), s.lists[horizontal]...)
	v := append([]listener(nil), s.lists[vertical]...)
	s.mu.Unlock()

	left := s.source.ScrollLeft()
	for _, l := range h {
		l.fn(left)
	}
	top := s.source.ScrollTop()
	for _, l := range v {
		l.fn(top)
	}
}

// counts reports the number of horizontal and vertical registrations.
func (s *Sync) counts() (h, v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists[horizontal]), len(s.lists[vertical])
}

func (s *Sync) add(a axis, fn func(int)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.lists[a] = append(s.lists[a], listener{id: s.nextID, fn: fn})
	return Handle{s: s, axis: a, id: s.nextID}
}

func (s *Sync) remove(a axis, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[a]
	for i, l := range list {
		if l.id == id {
			s.lists[a] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func mirror(target Accessor, set func(Surface, int)) func(int) {
	return func(offset int) {
		if target == nil {
			return
		}
		if surface := target(); surface != nil {
			set(surface, offset)
		}
	}
}
