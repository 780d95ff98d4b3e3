package scrollsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	left, top int
	onScroll  []func()
}

func (f *fakeSurface) ScrollLeft() int { return f.left }
func (f *fakeSurface) ScrollTop() int { return f.top }
func (f *fakeSurface) SetScrollLeft(v int) { f.left = v }
func (f *fakeSurface) SetScrollTop(v int) { f.top = v }
func (f *fakeSurface) OnScroll(fn func()) { f.onScroll = append(f.onScroll, fn) }

func (f *fakeSurface) scrollTo(left, top int) {
	f.left, f.top = left, top
	for _, fn := range f.onScroll {
		fn()
	}
}

func TestNewAttachesOneObserver(t *testing.T) {
	src := &fakeSurface{}
	New(src)
	assert.Len(t, src.onScroll, 1)
}

func TestListenerOrder(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var calls []string
	s.NotifyVertical(func(int) { calls = append(calls, "vert1") })
	s.NotifyHorizontal(func(int) { calls = append(calls, "horiz1") })
	s.NotifyHorizontal(func(int) { calls = append(calls, "horiz2") })

	src.scrollTo(3, 4)
	assert.Equal(t, []string{"horiz1", "horiz2", "vert1"}, calls)
}

func TestCallbacksReceiveOffsets(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var gotH, gotV int
	s.NotifyHorizontal(func(v int) { gotH = v })
	s.NotifyVertical(func(v int) { gotV = v })

	src.scrollTo(120, 30)
	assert.Equal(t, 120, gotH)
	assert.Equal(t, 30, gotV)
}

func TestRelayHorizontal(t *testing.T) {
	src := &fakeSurface{}
	target := &fakeSurface{top: 7}
	s := New(src)
	s.RelayHorizontalTo(Static(target))

	src.scrollTo(42, 99)
	assert.Equal(t, 42, target.ScrollLeft())
	assert.Equal(t, 7, target.ScrollTop())
}

func TestRelayVertical(t *testing.T) {
	src := &fakeSurface{}
	target := &fakeSurface{left: 5}
	s := New(src)
	s.RelayVerticalTo(Static(target))

	src.scrollTo(42, 99)
	assert.Equal(t, 5, target.ScrollLeft())
	assert.Equal(t, 99, target.ScrollTop())
}

func TestLazyAccessorResolvedAtEventTime(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var late *fakeSurface
	s.RelayHorizontalTo(Lazy(func() Surface {
		if late == nil {
			return nil
		}
		return late
	}))

	// Not created yet: nothing to relay to.
	src.scrollTo(10, 0)

	late = &fakeSurface{}
	src.scrollTo(25, 0)
	assert.Equal(t, 25, late.ScrollLeft())
}

func TestNilAccessorIgnored(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)
	s.RelayVerticalTo(nil)
	assert.NotPanics(t, func() { src.scrollTo(1, 2) })
}

func TestHandleRemove(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var calls []string
	h1 := s.NotifyHorizontal(func(int) { calls = append(calls, "a") })
	s.NotifyHorizontal(func(int) { calls = append(calls, "b") })

	h1.Remove()
	h1.Remove()
	n, v := s.counts()
	require.Equal(t, 1, n)
	require.Equal(t, 0, v)

	src.scrollTo(1, 1)
	assert.Equal(t, []string{"b"}, calls)

	var zero Handle
	assert.NotPanics(t, zero.Remove)
}

func TestRemoveDuringSweep(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var calls int
	var h Handle
	h = s.NotifyHorizontal(func(int) {
		calls++
		h.Remove()
	})
	s.NotifyHorizontal(func(int) { calls++ })

	src.scrollTo(1, 0)
	assert.Equal(t, 2, calls)

	src.scrollTo(2, 0)
	assert.Equal(t, 3, calls)
}

func TestEverySweepRuns(t *testing.T) {
	src := &fakeSurface{}
	s := New(src)

	var seen []int
	s.NotifyHorizontal(func(v int) { seen = append(seen, v) })
	src.scrollTo(1, 0)
	src.scrollTo(1, 0)
	s.Fire()
	assert.Equal(t, []int{1, 1, 1}, seen)
}
