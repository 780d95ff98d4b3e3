package main

import (
	"fmt"
	"strings"

	"gantt2svg/internal/arrow"
)

// generateSVG lays out the tasks, routes their dependency arrows, scrolls the
// chart body to (scrollX, scrollY) and renders all panels as one SVG document.
// It returns an empty string when there are no tasks.
func generateSVG(tasks []Task, config Config, scrollX, scrollY int) string {
	if len(tasks) == 0 {
		return ""
	}

	l := layoutTasks(tasks, config)
	routes := routeDependencies(l, arrow.New(config.Dependency))
	debugPrint("Laid out %d bars over %d days, %d dependency arrows", len(l.Bars), l.Days, len(routes))

	panels := newPanelSet(l, config)
	panels.Scroll(scrollX, scrollY)

	var svg strings.Builder
	svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeSVG(&svg, l, routes, panels, config)
	return svg.String()
}

// writeSVG writes the <svg> element without the XML declaration so it can be
// embedded in HTML.
func writeSVG(svg *strings.Builder, l chartLayout, routes []routedDependency, panels *panelSet, config Config) {
	listWidth := config.Layout.ListWidth
	headerHeight := config.Layout.HeaderHeight
	loadHeight := 0
	if panels.Load != nil {
		loadHeight = panels.Load.ViewHeight
	}
	width := listWidth + panels.Chart.ViewWidth
	height := headerHeight + panels.Chart.ViewHeight + loadHeight

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.title-text { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.task-name { font-family: %s; font-size: %dpx; fill: %s; }
.date-text { font-family: %s; font-size: %dpx; fill: %s; }
.task-bar { fill: %s; stroke: %s; stroke-width: 1; }
.task-container { fill: %s; }
.completion { fill: %s; fill-opacity: 0.7; }
.deadline { stroke: %s; stroke-width: 2; }
.consolidated-line { fill: %s; }
.task-labels, .task-resources { font-family: %s; font-size: %dpx; fill: %s; }
.dep-start, .dep-mid, .dep-end, .dep-arrow { fill: %s; }
.load-bar { fill: %s; }
.grid { stroke: %s; stroke-width: 1; }
</style>
</defs>
`, width, height, config.Colors.Background,
		config.Font.Family, config.Font.Size+2, config.Colors.Text,
		config.Font.Family, config.Font.Size, config.Colors.Text,
		config.Font.Family, config.Font.Size-2, config.Colors.Text,
		config.Colors.Bar, config.Colors.BarStroke,
		config.Colors.Container,
		config.Colors.Completion,
		config.Colors.Deadline,
		config.Colors.Consolidated,
		config.Font.Family, config.Font.Size-2, config.Colors.Text,
		config.Colors.Arrow,
		config.Colors.Load,
		config.Colors.Grid))

	// Corner above the task list
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		listWidth, headerHeight, config.Colors.Header))
	if config.Title != "" {
		svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" class="title-text">%s</text>`+"\n",
			headerHeight/2+config.Font.Size/2, escapeXML(config.Title)))
	}

	openPanel(svg, panels.Header, listWidth, 0)
	drawHeader(svg, l, config)
	svg.WriteString("</svg>\n")

	openPanel(svg, panels.List, 0, headerHeight)
	drawTaskList(svg, l, config)
	svg.WriteString("</svg>\n")

	openPanel(svg, panels.Chart, listWidth, headerHeight)
	drawChart(svg, l, routes, config)
	svg.WriteString("</svg>\n")

	if panels.Load != nil {
		openPanel(svg, panels.Load, listWidth, headerHeight+panels.Chart.ViewHeight)
		drawLoad(svg, l, config)
		svg.WriteString("</svg>\n")
	}

	svg.WriteString("</svg>")
}

// openPanel starts a nested <svg> whose viewBox is the panel's scrolled window.
func openPanel(svg *strings.Builder, p *Panel, x, y int) {
	svg.WriteString(fmt.Sprintf(`<svg id="%s" x="%d" y="%d" width="%d" height="%d" viewBox="%d %d %d %d">`+"\n",
		p.Name, x, y, p.ViewWidth, p.ViewHeight,
		p.ScrollLeft(), p.ScrollTop(), p.ViewWidth, p.ViewHeight))
}

// labelStep returns how many days apart date labels are drawn so they do
// not overlap.
func labelStep(dayWidth int) int {
	const minLabelWidth = 48
	if dayWidth >= minLabelWidth {
		return 1
	}
	return (minLabelWidth + dayWidth - 1) / dayWidth
}

func drawHeader(svg *strings.Builder, l chartLayout, config Config) {
	headerHeight := config.Layout.HeaderHeight
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		l.Width, headerHeight, config.Colors.Header))

	step := labelStep(config.Layout.DayWidth)
	for d := 0; d <= l.Days; d++ {
		x := config.Layout.Padding + d*config.Layout.DayWidth
		tick := 4
		if d%step == 0 {
			tick = 8
			if d < l.Days {
				date := l.Start.AddDate(0, 0, d)
				svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="date-text">%s</text>`+"\n",
					x+2, headerHeight-12, date.Format("Jan 2")))
			}
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid"/>`+"\n",
			x, headerHeight-tick, x, headerHeight))
	}
}

func drawTaskList(svg *strings.Builder, l chartLayout, config Config) {
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		config.Layout.ListWidth, l.Height, config.Colors.Header))

	rowHeight := config.Layout.RowHeight
	for _, b := range l.Bars {
		label := b.Task.Name
		if b.Task.Resource != "" {
			label = fmt.Sprintf("%s (%s)", label, b.Task.Resource)
		}
		x := 8 + b.Task.Depth*config.Layout.Indent
		y := b.Row*rowHeight + rowHeight/2 + config.Font.Size/3
		weight := ""
		if b.Task.Container {
			weight = ` font-weight="bold"`
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="task-name"%s>%s</text>`+"\n", x, y, weight, escapeXML(label)))
	}
}

func drawChart(svg *strings.Builder, l chartLayout, routes []routedDependency, config Config) {
	for d := 0; d <= l.Days; d++ {
		x := config.Layout.Padding + d*config.Layout.DayWidth
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="0" x2="%d" y2="%d" class="grid"/>`+"\n", x, x, l.Height))
	}

	for _, b := range l.Bars {
		drawTask(svg, l, b, config)
	}

	for _, r := range routes {
		svg.WriteString(fmt.Sprintf(`<g class="dependency" data-from="%s" data-to="%s" data-kind="%s">`+"\n",
			escapeXML(r.From), escapeXML(r.To), r.Kind))
		drawDependency(svg, r.Geometry, config.Layout.ArrowLineWidth)
		svg.WriteString("</g>\n")
	}
}

// consolidatedHalfWidth is half the width of the consolidated progress mark.
const consolidatedHalfWidth = 3

// drawTask draws one bar with its completion, deadline and consolidated
// markers, followed by the optional label and resource text.
func drawTask(svg *strings.Builder, l chartLayout, b taskBar, config Config) {
	t := b.Task
	class := "task-bar"
	if t.Container {
		class += " task-container"
	}
	style := ""
	if t.Color != "" {
		style = fmt.Sprintf(` style="fill: %s"`, escapeXML(t.Color))
	}
	svg.WriteString(fmt.Sprintf(`<rect id="task-%s" x="%d" y="%d" width="%d" height="%d" class="%s"%s><title>%s</title></rect>`+"\n",
		escapeXML(t.ID), b.X, b.Y, b.Width, b.Height, class, style, escapeXML(taskTooltip(t))))

	if w := b.Width * t.Progress / 100; w > 0 {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" class="completion"/>`+"\n",
			b.X, b.Y, w, b.Height))
	}
	if !t.Deadline.IsZero() {
		x := l.xFor(t.Deadline, config)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="deadline"/>`+"\n",
			x, b.Y-2, x, b.Y+b.Height+2))
	}
	if !t.Consolidated.IsZero() {
		x := l.xFor(t.Consolidated, config) - consolidatedHalfWidth
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" class="consolidated-line"/>`+"\n",
			x, b.Y, 2*consolidatedHalfWidth, b.Height))
	}

	var spans []string
	if config.Chart.ShowLabels && len(t.Labels) > 0 {
		spans = append(spans, fmt.Sprintf(`<tspan class="task-labels">%s</tspan>`, escapeXML(strings.Join(t.Labels, ", "))))
	}
	if config.Chart.ShowResources && t.Resource != "" {
		spans = append(spans, fmt.Sprintf(`<tspan class="task-resources">[%s]</tspan>`, escapeXML(t.Resource)))
	}
	if len(spans) > 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d">%s</text>`+"\n",
			b.X+b.Width+6, b.midY()+config.Font.Size/3, strings.Join(spans, " ")))
	}
}

// taskTooltip is shown when hovering a task bar.
func taskTooltip(t Task) string {
	text := fmt.Sprintf("%s: %s - %s", t.Name, t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"))
	if t.Progress > 0 {
		text += fmt.Sprintf(" (%d%%)", t.Progress)
	}
	if t.Resource != "" {
		text += " [" + t.Resource + "]"
	}
	if !t.Deadline.IsZero() {
		text += ", deadline " + t.Deadline.Format("2006-01-02")
	}
	return text
}

// drawDependency applies a routed arrow: segments become thin rectangles and
// the arrowhead a triangle pointing in the direction of its variant.
// Hidden or empty primitives are skipped.
func drawDependency(svg *strings.Builder, g arrow.Geometry, lineWidth int) {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	segments := []struct {
		class string
		p     arrow.Primitive
	}{
		{"dep-start", g.Start},
		{"dep-mid", g.Mid},
		{"dep-end", g.End},
	}
	for _, s := range segments {
		if !s.p.Visible || (s.p.Width == 0 && s.p.Height == 0) {
			continue
		}
		w, h := s.p.Width, s.p.Height
		if w == 0 {
			w = lineWidth
		}
		if h == 0 {
			h = lineWidth
		}
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" class="%s"/>`+"\n",
			s.p.Left, s.p.Top, w, h, s.class))
	}

	if g.Arrow.Visible {
		svg.WriteString(fmt.Sprintf(`<polygon points="%s" class="dep-arrow" data-variant="%s"/>`+"\n",
			arrowPoints(g.Arrow), g.Arrow.Variant))
	}
}

// arrowPoints returns the triangle inside the arrowhead's box. The tip lies
// on the box edge facing the variant's direction.
func arrowPoints(p arrow.Primitive) string {
	l, t, w, h := p.Left, p.Top, p.Width, p.Height
	switch p.Variant {
	case arrow.VariantLeft:
		return fmt.Sprintf("%d,%d %d,%d %d,%d", l+w, t, l, t+h/2, l+w, t+h)
	case arrow.VariantDown:
		return fmt.Sprintf("%d,%d %d,%d %d,%d", l, t, l+w, t, l+w/2, t+h)
	case arrow.VariantUp:
		return fmt.Sprintf("%d,%d %d,%d %d,%d", l, t+h, l+w, t+h, l+w/2, t)
	default:
		return fmt.Sprintf("%d,%d %d,%d %d,%d", l, t, l+w, t+h/2, l, t+h)
	}
}

func drawLoad(svg *strings.Builder, l chartLayout, config Config) {
	loadHeight := config.Layout.LoadHeight
	svg.WriteString(fmt.Sprintf(`<line x1="0" y1="0" x2="%d" y2="0" class="grid"/>`+"\n", l.Width))

	load := dailyLoad(l)
	peak := 0
	for _, n := range load {
		if n > peak {
			peak = n
		}
	}
	if peak == 0 {
		return
	}

	usable := loadHeight - 8
	if usable < 1 {
		usable = loadHeight
	}
	for d, n := range load {
		if n == 0 {
			continue
		}
		h := n * usable / peak
		x := config.Layout.Padding + d*config.Layout.DayWidth
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" class="load-bar"><title>%d active</title></rect>`+"\n",
			x+1, loadHeight-h, max(config.Layout.DayWidth-2, 1), h, n))
	}
}

// escapeXML replaces the XML special characters (&, <, >, ", ') with entity
// references so text can be embedded in SVG content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// wrapHTML embeds an SVG document in a minimal HTML page.
func wrapHTML(svgContent, title string) string {
	body := strings.TrimPrefix(svgContent, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	if title == "" {
		title = "Gantt chart"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`, escapeXML(title), body)
}
