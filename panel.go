package main

import (
	"gantt2svg/internal/scrollsync"
)

// Panel is a scrollable window onto a larger content area.
// Offsets are clamped so the viewport never leaves the content.
type Panel struct {
	Name          string
	ContentWidth  int
	ContentHeight int
	ViewWidth     int
	ViewHeight    int

	left, top int
	observers []func()
}

func newPanel(name string, contentWidth, contentHeight, viewWidth, viewHeight int) *Panel {
	if viewWidth <= 0 || viewWidth > contentWidth {
		viewWidth = contentWidth
	}
	if viewHeight <= 0 || viewHeight > contentHeight {
		viewHeight = contentHeight
	}
	return &Panel{
		Name:          name,
		ContentWidth:  contentWidth,
		ContentHeight: contentHeight,
		ViewWidth:     viewWidth,
		ViewHeight:    viewHeight,
	}
}

func (p *Panel) ScrollLeft() int { return p.left }
func (p *Panel) ScrollTop() int { return p.top }

func (p *Panel) SetScrollLeft(v int) {
	p.left = clamp(v, 0, p.ContentWidth-p.ViewWidth)
}

func (p *Panel) SetScrollTop(v int) {
	p.top = clamp(v, 0, p.ContentHeight-p.ViewHeight)
}

// OnScroll registers fn to run after every ScrollTo.
func (p *Panel) OnScroll(fn func()) {
	p.observers = append(p.observers, fn)
}

// ScrollTo moves the viewport and emits a scroll event.
func (p *Panel) ScrollTo(left, top int) {
	p.SetScrollLeft(left)
	p.SetScrollTop(top)
	for _, fn := range p.observers {
		fn()
	}
}

// panelSet groups the four chart panels. The chart body drives the others:
// the header and load graph follow it horizontally, the task list follows
// it vertically.
type panelSet struct {
	Header *Panel
	List   *Panel
	Chart  *Panel
	Load   *Panel

	sync *scrollsync.Sync
}

func newPanelSet(l chartLayout, config Config) *panelSet {
	vw, vh := config.Viewport.Width, config.Viewport.Height
	ps := &panelSet{
		Chart:  newPanel("chart", l.Width, l.Height, vw, vh),
		Header: newPanel("header", l.Width, config.Layout.HeaderHeight, vw, 0),
		List:   newPanel("list", config.Layout.ListWidth, l.Height, 0, vh),
	}
	if config.Layout.LoadHeight > 0 {
		ps.Load = newPanel("load", l.Width, config.Layout.LoadHeight, vw, 0)
	}

	ps.sync = scrollsync.New(ps.Chart)
	ps.sync.RelayHorizontalTo(scrollsync.Static(ps.Header))
	// The load panel is optional, so resolve it when the event fires.
	ps.sync.RelayHorizontalTo(scrollsync.Lazy(func() scrollsync.Surface {
		if ps.Load == nil {
			return nil
		}
		return ps.Load
	}))
	ps.sync.RelayVerticalTo(scrollsync.Static(ps.List))
	ps.sync.NotifyHorizontal(func(offset int) {
		debugPrint("Chart scrolled horizontally to %d", offset)
	})
	ps.sync.NotifyVertical(func(offset int) {
		debugPrint("Chart scrolled vertically to %d", offset)
	})
	return ps
}

// Scroll scrolls the chart body; the other panels follow.
func (ps *panelSet) Scroll(left, top int) {
	ps.Chart.ScrollTo(left, top)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
