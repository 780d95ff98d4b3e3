package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelClamp(t *testing.T) {
	p := newPanel("chart", 500, 300, 200, 100)
	p.SetScrollLeft(-10)
	assert.Equal(t, 0, p.ScrollLeft())
	p.SetScrollLeft(1000)
	assert.Equal(t, 300, p.ScrollLeft())
	p.SetScrollTop(150)
	assert.Equal(t, 150, p.ScrollTop())
	p.SetScrollTop(250)
	assert.Equal(t, 200, p.ScrollTop())
}

func TestPanelWithoutViewportDoesNotScroll(t *testing.T) {
	p := newPanel("chart", 500, 300, 0, 0)
	assert.Equal(t, 500, p.ViewWidth)
	assert.Equal(t, 300, p.ViewHeight)
	p.ScrollTo(50, 50)
	assert.Equal(t, 0, p.ScrollLeft())
	assert.Equal(t, 0, p.ScrollTop())
}

func TestPanelScrollToNotifies(t *testing.T) {
	p := newPanel("chart", 500, 300, 100, 100)
	var calls int
	p.OnScroll(func() { calls++ })
	p.ScrollTo(10, 10)
	p.ScrollTo(10, 10)
	assert.Equal(t, 2, calls)

	// Direct writes are silent.
	p.SetScrollLeft(20)
	assert.Equal(t, 2, calls)
}

func TestPanelSetFollowsChart(t *testing.T) {
	l, config := sampleLayout(t)
	config.Viewport.Width = 100
	config.Viewport.Height = 56

	ps := newPanelSet(l, config)
	require.NotNil(t, ps.Load)

	ps.Scroll(42, 28)
	assert.Equal(t, 42, ps.Chart.ScrollLeft())
	assert.Equal(t, 28, ps.Chart.ScrollTop())

	assert.Equal(t, 42, ps.Header.ScrollLeft())
	assert.Equal(t, 0, ps.Header.ScrollTop())
	assert.Equal(t, 42, ps.Load.ScrollLeft())
	assert.Equal(t, 0, ps.List.ScrollLeft())
	assert.Equal(t, 28, ps.List.ScrollTop())
}

func TestPanelSetClampedOffsetIsRelayed(t *testing.T) {
	l, config := sampleLayout(t)
	config.Viewport.Width = 100

	ps := newPanelSet(l, config)
	ps.Scroll(10_000, 10_000)

	maxLeft := l.Width - 100
	assert.Equal(t, maxLeft, ps.Chart.ScrollLeft())
	assert.Equal(t, maxLeft, ps.Header.ScrollLeft())
	assert.Equal(t, 0, ps.List.ScrollTop())
}

func TestPanelSetWithoutLoadGraph(t *testing.T) {
	l, config := sampleLayout(t)
	config.Layout.LoadHeight = 0
	config.Viewport.Width = 100

	ps := newPanelSet(l, config)
	assert.Nil(t, ps.Load)
	assert.NotPanics(t, func() { ps.Scroll(30, 0) })
	assert.Equal(t, 30, ps.Header.ScrollLeft())
}
