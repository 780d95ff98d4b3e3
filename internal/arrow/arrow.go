/*
Package arrow computes the screen geometry of dependency arrows between
Gantt task bars.

An arrow is drawn as an elbow connector made of three rectangular segments
(start, mid, end) and one arrowhead. Route returns the position, size and
visibility of each of the four primitives for a given link kind and pair of
anchor points. The caller decides how to draw them.
*/
package arrow

import "strings"

// LinkKind identifies which task endpoints a dependency relates.
type LinkKind int

const (
	// EndStart links the end of the origin task to the start of the destination.
	EndStart LinkKind = iota
	// StartStart links the starts of both tasks.
	StartStart
	// EndEnd links the ends of both tasks.
	EndEnd
)

// String returns the short code used in CSV input (ES, SS, EE).
func (k LinkKind) String() string {
	switch k {
	case StartStart:
		return "SS"
	case EndEnd:
		return "EE"
	default:
		return "ES"
	}
}

// ParseLinkKind parses a link kind code. Unknown values fall back to EndStart.
func ParseLinkKind(s string) LinkKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SS", "START_START":
		return StartStart
	case "EE", "END_END":
		return EndEnd
	default:
		return EndStart
	}
}

// Variant selects the directional asset used for the arrowhead.
type Variant int

const (
	VariantRight Variant = iota
	VariantLeft
	VariantDown
	VariantUp
)

func (v Variant) String() string {
	switch v {
	case VariantLeft:
		return "left"
	case VariantDown:
		return "down"
	case VariantUp:
		return "up"
	default:
		return "right"
	}
}

// Asset returns the image file drawn for the variant. Segments use
// SegmentAsset.
func (v Variant) Asset() string {
	switch v {
	case VariantDown:
		return "arrow2.png"
	case VariantLeft:
		return "arrow3.png"
	case VariantUp:
		return "arrow4.png"
	default:
		return "arrow.png"
	}
}

// SegmentAsset is the one-pixel image stretched to draw arrow segments.
const SegmentAsset = "pixel.gif"

// Pixel offsets tied to the arrowhead images rather than to task geometry.
const (
	headSize            = 10 // arrowhead images are 10x10
	headHalf            = 5
	startStartHeadInset = 15 // START_START head sits this far left of the target
	endEndHeadInset     = 8  // END_END head sits this far left of the target
	endEndMidExtension  = 10 // extra mid length when an END_END arrow climbs or stays level
)

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Primitive is one of the four visual parts of an arrow.
// Coordinates may be negative; clamping is up to the caller.
type Primitive struct {
	Left    int
	Top     int
	Width   int
	Height  int
	Visible bool
	Variant Variant
}

// Geometry is the routed arrow.
type Geometry struct {
	Start Primitive
	Mid   Primitive
	End   Primitive
	Arrow Primitive
}

// Constants holds the pixel sizes the router works with.
type Constants struct {
	CornerWidth           int `yaml:"corner_width"`
	Height                int `yaml:"height"`
	HalfHeight            int `yaml:"half_height"`
	DependencyPadding     int `yaml:"padding"`
	HalfDependencyPadding int `yaml:"half_padding"`
}

// DefaultConstants returns the sizes used by the task renderer.
func DefaultConstants() Constants {
	return Constants{
		CornerWidth:           20,
		Height:                10,
		HalfHeight:            5,
		DependencyPadding:     4,
		HalfDependencyPadding: 2,
	}
}

// Router routes arrows using a fixed set of constants.
// It holds no other state and is safe to share.
type Router struct {
	c Constants
}

// New returns a Router for the given constants.
func New(c Constants) Router {
	return Router{c: c}
}

// Constants returns the router's constants.
func (r Router) Constants() Constants {
	return r.c
}

// Route computes the geometry of an arrow from origin to dest.
// Origin and dest must already be in the same coordinate space.
func (r Router) Route(kind LinkKind, origin, dest Point) Geometry {
	switch kind {
	case StartStart:
		return r.startStart(origin, dest)
	case EndEnd:
		return r.endEnd(origin, dest)
	default:
		return r.endStart(origin, dest)
	}
}

// endStart draws a direct elbow: down (or up) from the origin, then across
// to the destination.
func (r Router) endStart(origin, dest Point) Geometry {
	xorig, yorig := origin.X, origin.Y
	xend, yend := dest.X, dest.Y
	width := xend - xorig

	var g Geometry
	g.Start = Primitive{Left: xorig, Top: yorig}

	g.Mid = Primitive{Left: xorig, Top: min(yorig, yend), Height: absInt(yend - yorig), Visible: true}

	g.End = Primitive{Left: xorig, Top: yend, Width: width, Visible: width != 0}
	if width < 0 {
		g.End.Left = xend
		g.End.Width = -width
	}

	g.Arrow = Primitive{Width: headSize, Height: headSize, Visible: true}
	switch {
	case width == 0:
		g.Arrow.Left = xend - headHalf
		if yorig > yend {
			g.Arrow.Variant = VariantUp
			g.Arrow.Top = yend
		} else {
			g.Arrow.Variant = VariantDown
			g.Arrow.Top = yend - headSize
		}
	case width > 0:
		g.Arrow.Variant = VariantRight
		g.Arrow.Left = xend - headSize
		g.Arrow.Top = yend - headHalf
	default:
		g.Arrow.Variant = VariantLeft
		g.Arrow.Left = xend
		g.Arrow.Top = yend - headHalf
	}
	return g
}

// startStart leaves the origin start to the left, runs vertically and enters
// the destination start from the left.
func (r Router) startStart(origin, dest Point) Geometry {
	c := r.c
	xorig := origin.X - c.HalfDependencyPadding
	yorig := origin.Y - c.CornerWidth/2 + c.HalfDependencyPadding
	xend := dest.X + c.HalfDependencyPadding
	yend := dest.Y - c.HalfDependencyPadding

	// Keep the arrow off the source bar when climbing.
	if yend < yorig {
		yorig = origin.Y + c.DependencyPadding
	}

	width1 := c.CornerWidth
	width2 := absInt(xend-xorig) + c.CornerWidth
	if xorig > xend {
		width1, width2 = width2, c.CornerWidth
	}
	left := xorig - width1

	mid := Primitive{Left: left, Top: yend, Height: absInt(yend - yorig), Visible: true}
	if yend > yorig {
		mid.Top = yorig
	}

	return Geometry{
		Start: Primitive{Left: left, Top: yorig, Width: width1, Visible: true},
		Mid:   mid,
		End:   Primitive{Left: left, Top: yend, Width: width2 - c.HalfHeight, Visible: true},
		Arrow: Primitive{
			Left:    xend - startStartHeadInset,
			Top:     yend - c.HalfHeight,
			Width:   headSize,
			Height:  headSize,
			Visible: true,
			Variant: VariantRight,
		},
	}
}

// endEnd leaves the origin end to the right, runs vertically and enters the
// destination end from the right.
func (r Router) endEnd(origin, dest Point) Geometry {
	c := r.c
	xorig := origin.X - c.DependencyPadding
	yorig := origin.Y - c.CornerWidth/2 + c.HalfDependencyPadding
	xend := dest.X + c.HalfDependencyPadding
	yend := dest.Y - c.DependencyPadding

	width1 := absInt(xend-xorig) + c.CornerWidth
	width2 := c.CornerWidth
	if xorig > xend {
		width1, width2 = c.CornerWidth, width1
	}

	start := Primitive{Left: xorig, Top: yorig, Width: width1, Visible: true}
	mid := Primitive{Left: xorig + width1, Top: yorig, Height: absInt(yend - yorig), Visible: true}
	if yend <= yorig {
		start.Top = yorig + c.Height
		mid.Top = yend
		mid.Height += endEndMidExtension
	}

	return Geometry{
		Start: start,
		Mid:   mid,
		End:   Primitive{Left: xorig + width1 - width2, Top: yend, Width: width2, Visible: true},
		Arrow: Primitive{
			Left:    xend - endEndHeadInset,
			Top:     yend - headHalf,
			Width:   headSize,
			Height:  headSize,
			Visible: true,
			Variant: VariantLeft,
		},
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
