package main

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt2svg/internal/arrow"
)

// assertWellFormed fails the test if s is not parseable XML.
func assertWellFormed(t *testing.T, s string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestGenerateSVG(t *testing.T) {
	tasks, err := parseTasks(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	config := getDefaultConfig()
	config.Title = "Q1 <plan>"

	out := generateSVG(tasks, config, 0, 0)
	assertWellFormed(t, out)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, id := range []string{`id="header"`, `id="list"`, `id="chart"`, `id="load"`} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Q1 &lt;plan&gt;")
	assert.Contains(t, out, `id="task-1"`)
	assert.Contains(t, out, "Build (dev)")
	assert.Contains(t, out, "Mar 1")
	assert.Equal(t, 4, strings.Count(out, `class="dependency"`))
	assert.Contains(t, out, `data-kind="SS"`)
	assert.Contains(t, out, `data-variant="down"`)
	assert.Contains(t, out, `data-variant="left"`)
}

func TestGenerateSVGEmpty(t *testing.T) {
	assert.Empty(t, generateSVG(nil, getDefaultConfig(), 0, 0))
}

func TestGenerateSVGScrolledViewBoxes(t *testing.T) {
	tasks, err := parseTasks(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	config := getDefaultConfig()
	config.Viewport.Width = 100
	config.Viewport.Height = 56

	out := generateSVG(tasks, config, 42, 28)
	assertWellFormed(t, out)

	assert.Contains(t, out, `id="chart" x="200" y="40" width="100" height="56" viewBox="42 28 100 56"`)
	assert.Contains(t, out, `id="header" x="200" y="0" width="100" height="40" viewBox="42 0 100 40"`)
	assert.Contains(t, out, `id="list" x="0" y="40" width="200" height="56" viewBox="0 28 200 56"`)
	assert.Contains(t, out, `id="load" x="200" y="96" width="100" height="60" viewBox="42 0 100 60"`)
	assert.Contains(t, out, `<svg width="300" height="156"`)
}

func TestDrawDependencySkipsHidden(t *testing.T) {
	g := arrow.New(arrow.DefaultConstants()).Route(arrow.EndStart, arrow.Point{X: 10, Y: 0}, arrow.Point{X: 50, Y: 30})

	var svg strings.Builder
	drawDependency(&svg, g, 2)
	out := svg.String()

	assert.NotContains(t, out, "dep-start")
	assert.Contains(t, out, `<rect x="10" y="0" width="2" height="30" class="dep-mid"/>`)
	assert.Contains(t, out, `<rect x="10" y="30" width="40" height="2" class="dep-end"/>`)
	assert.Contains(t, out, `points="40,25 50,30 40,35"`)
}

func TestArrowPoints(t *testing.T) {
	box := arrow.Primitive{Left: 0, Top: 0, Width: 10, Height: 10}
	tests := []struct {
		variant arrow.Variant
		want    string
	}{
		{arrow.VariantRight, "0,0 10,5 0,10"},
		{arrow.VariantLeft, "10,0 0,5 10,10"},
		{arrow.VariantDown, "0,0 10,0 5,10"},
		{arrow.VariantUp, "0,10 10,10 5,0"},
	}
	for _, tt := range tests {
		box.Variant = tt.variant
		assert.Equal(t, tt.want, arrowPoints(box), tt.variant.String())
	}
}

const featureCSV = `id,name,start,end,resource,progress,deadline,consolidated,labels,color,parent
p,Phase,2024-03-01,2024-03-01,,,,,,,
a,Alpha,2024-03-01,2024-03-05,dev,50%,2024-03-04,2024-03-02,urgent;api,#ff0000,p
b,Beta,2024-03-03,2024-03-06,,,,,,,p
`

func featureLayout(t *testing.T) (chartLayout, Config) {
	t.Helper()
	tasks, err := parseTasks(strings.NewReader(featureCSV))
	require.NoError(t, err)
	config := getDefaultConfig()
	return layoutTasks(tasks, config), config
}

func TestDrawTaskMarkers(t *testing.T) {
	l, config := featureLayout(t)
	alpha, ok := l.bar("a")
	require.True(t, ok)
	require.Equal(t, 40, alpha.X)
	require.Equal(t, 96, alpha.Width)

	var svg strings.Builder
	drawTask(&svg, l, alpha, config)
	out := svg.String()

	assert.Contains(t, out, `class="task-bar" style="fill: #ff0000"`)
	assert.Contains(t, out, `<rect x="40" y="35" width="48" height="14" class="completion"/>`)
	assert.Contains(t, out, `<line x1="112" y1="33" x2="112" y2="51" class="deadline"/>`)
	assert.Contains(t, out, `<rect x="61" y="35" width="6" height="14" class="consolidated-line"/>`)
	assert.Contains(t, out, "(50%)")
	assert.Contains(t, out, "deadline 2024-03-04")
	assert.NotContains(t, out, "task-labels")
	assert.NotContains(t, out, "task-resources")
}

func TestDrawTaskLabelsAndResources(t *testing.T) {
	l, config := featureLayout(t)
	config.Chart.ShowLabels = true
	config.Chart.ShowResources = true
	alpha, _ := l.bar("a")

	var svg strings.Builder
	drawTask(&svg, l, alpha, config)
	out := svg.String()

	assert.Contains(t, out, `<text x="142" y="46"><tspan class="task-labels">urgent, api</tspan> <tspan class="task-resources">[dev]</tspan></text>`)
}

func TestDrawTaskPlainBar(t *testing.T) {
	l, config := featureLayout(t)
	beta, _ := l.bar("b")

	var svg strings.Builder
	drawTask(&svg, l, beta, config)
	out := svg.String()

	assert.Contains(t, out, `class="task-bar"><title>`)
	assert.NotContains(t, out, "completion")
	assert.NotContains(t, out, "deadline")
	assert.NotContains(t, out, "consolidated-line")
	assert.NotContains(t, out, "<text")
}

func TestGenerateSVGContainers(t *testing.T) {
	tasks, err := parseTasks(strings.NewReader(featureCSV))
	require.NoError(t, err)
	out := generateSVG(tasks, getDefaultConfig(), 0, 0)
	assertWellFormed(t, out)

	assert.Contains(t, out, `id="task-p" x="40" y="7" width="120" height="14" class="task-bar task-container"`)
	assert.Contains(t, out, `<text x="8" y="18" class="task-name" font-weight="bold">Phase</text>`)
	assert.Contains(t, out, `<text x="20" y="46" class="task-name">Alpha (dev)</text>`)
}

func TestLabelStep(t *testing.T) {
	assert.Equal(t, 1, labelStep(48))
	assert.Equal(t, 2, labelStep(24))
	assert.Equal(t, 5, labelStep(10))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", escapeXML(`a & b <c> "d" 'e'`))
}

func TestWrapHTML(t *testing.T) {
	out := wrapHTML(`<?xml version="1.0" encoding="UTF-8"?>`+"\n<svg></svg>", "")
	assert.NotContains(t, out, "<?xml")
	assert.Contains(t, out, "<title>Gantt chart</title>")
	assert.Contains(t, out, "<svg></svg>")
}

func TestGetOutputFilename(t *testing.T) {
	assert.Equal(t, "plan.svg", getOutputFilename("data/plan.csv", "", false))
	assert.Equal(t, "plan.html", getOutputFilename("plan.csv", "", true))
	assert.Equal(t, "out.svg", getOutputFilename("plan.csv", "out.svg", true))
}
