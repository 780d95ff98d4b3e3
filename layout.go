package main

import (
	"time"

	"gantt2svg/internal/arrow"
)

const day = 24 * time.Hour

// taskBar is the placed rectangle of a task in chart coordinates.
type taskBar struct {
	Task   Task
	Row    int
	X, Y   int
	Width  int
	Height int
}

// midY returns the vertical center of the bar.
func (b taskBar) midY() int {
	return b.Y + b.Height/2
}

// chartLayout holds everything needed to draw the chart body and its
// neighbouring panels. Coordinates are relative to the chart content origin.
type chartLayout struct {
	Start  time.Time // first displayed day (midnight)
	Days   int       // number of displayed days
	Bars   []taskBar
	Width  int // content width of the chart body
	Height int // content height of the chart body
	index  map[string]int
}

// layoutTasks assigns one row per task and positions bars proportionally to
// their dates.
func layoutTasks(tasks []Task, config Config) chartLayout {
	l := chartLayout{index: make(map[string]int, len(tasks))}
	if len(tasks) == 0 {
		return l
	}

	first, last := tasks[0].Start, tasks[0].End
	for _, t := range tasks {
		if t.Start.Before(first) {
			first = t.Start
		}
		if t.End.After(last) {
			last = t.End
		}
	}
	l.Start = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	l.Days = int(last.Sub(l.Start)/day) + 1

	rowHeight := config.Layout.RowHeight
	barHeight := config.Layout.BarHeight
	for i, t := range tasks {
		x := l.xFor(t.Start, config)
		width := l.xFor(t.End, config) - x
		if width < 1 {
			width = 1
		}
		l.Bars = append(l.Bars, taskBar{
			Task:   t,
			Row:    i,
			X:      x,
			Y:      i*rowHeight + (rowHeight-barHeight)/2,
			Width:  width,
			Height: barHeight,
		})
		l.index[t.ID] = i
	}

	l.Width = 2*config.Layout.Padding + l.Days*config.Layout.DayWidth
	l.Height = len(tasks) * rowHeight
	return l
}

// xFor converts a time into a chart x coordinate.
func (l chartLayout) xFor(t time.Time, config Config) int {
	days := float64(t.Sub(l.Start)) / float64(day)
	return config.Layout.Padding + int(days*float64(config.Layout.DayWidth))
}

// bar returns the bar for a task ID.
func (l chartLayout) bar(id string) (taskBar, bool) {
	i, ok := l.index[id]
	if !ok {
		return taskBar{}, false
	}
	return l.Bars[i], true
}

// anchors returns the arrow endpoints for a dependency drawn into dest.
// END_START endpoints are pulled up and left by the dependency padding so the
// line clears the bar edges; the other kinds apply their own offsets when
// routed.
func anchors(kind arrow.LinkKind, from, dest taskBar, c arrow.Constants) (arrow.Point, arrow.Point) {
	switch kind {
	case arrow.StartStart:
		return arrow.Point{X: from.X, Y: from.midY()}, arrow.Point{X: dest.X, Y: dest.midY()}
	case arrow.EndEnd:
		return arrow.Point{X: from.X + from.Width, Y: from.midY()}, arrow.Point{X: dest.X + dest.Width, Y: dest.midY()}
	default:
		return arrow.Point{X: from.X + from.Width - c.DependencyPadding, Y: from.midY() - c.HalfDependencyPadding},
			arrow.Point{X: dest.X - c.DependencyPadding, Y: dest.midY() - c.HalfDependencyPadding}
	}
}

// routedDependency is one arrow ready to be drawn.
type routedDependency struct {
	From, To string
	Kind     arrow.LinkKind
	Geometry arrow.Geometry
}

// routeDependencies computes the geometry of every dependency arrow.
func routeDependencies(l chartLayout, router arrow.Router) []routedDependency {
	var routes []routedDependency
	for _, dest := range l.Bars {
		for _, dep := range dest.Task.Deps {
			from, ok := l.bar(dep.From)
			if !ok {
				debugPrint("Skipping dependency %s -> %s: origin not laid out", dep.From, dest.Task.ID)
				continue
			}
			origin, target := anchors(dep.Kind, from, dest, router.Constants())
			routes = append(routes, routedDependency{
				From:     dep.From,
				To:       dest.Task.ID,
				Kind:     dep.Kind,
				Geometry: router.Route(dep.Kind, origin, target),
			})
		}
	}
	return routes
}

// dailyLoad counts the tasks active on each displayed day. Containers only
// summarize their children and are not counted.
func dailyLoad(l chartLayout) []int {
	load := make([]int, l.Days)
	for _, b := range l.Bars {
		if b.Task.Container {
			continue
		}
		for d := 0; d < l.Days; d++ {
			dayStart := l.Start.Add(time.Duration(d) * day)
			dayEnd := dayStart.Add(day)
			starts := b.Task.Start.Before(dayEnd)
			active := starts && b.Task.End.After(dayStart)
			// Milestones count on the day they fall.
			milestone := starts && b.Task.End.Equal(b.Task.Start) && !b.Task.Start.Before(dayStart)
			if active || milestone {
				load[d]++
			}
		}
	}
	return load
}
