package treemap

import "fmt"

// Point describes a location in 2D space. The y-axis grows downward.
type Point struct {
	// X is the location on the horizontal x-axis.
	X int `json:"x"`
	// Y is the location on the vertical y-axis.
	Y int `json:"y"`
}

// NewPoint initializes a new point with the specified coordinates.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of the receiver and another point.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Offset returns a copy of the point translated by the specified relative amount.
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Extent describes the dimensions of an entity in 2D space.
type Extent struct {
	// Width is the dimension on the horizontal x-axis.
	Width int `json:"width"`
	// Height is the dimension on the vertical y-axis.
	Height int `json:"height"`
}

// NewExtent creates a new extent with the specified dimensions.
func NewExtent(width, height int) Extent {
	return Extent{Width: width, Height: height}
}

// Area returns the magnitude of the extent as width times height.
func (e Extent) Area() int {
	return e.Width * e.Height
}

// Scale returns the extent with both dimensions multiplied by factor,
// truncated to integers.
func (e Extent) Scale(factor float64) Extent {
	return Extent{
		Width:  int(float64(e.Width) * factor),
		Height: int(float64(e.Height) * factor),
	}
}

// Positive reports whether both dimensions are greater than zero.
func (e Extent) Positive() bool {
	return e.Width > 0 && e.Height > 0
}

// String returns a string representation of the extent.
func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Rectangles are produced, never mutated, by the layout algorithm.
type Rect struct {
	// Origin is the top-left corner.
	Origin Point `json:"origin"`
	// Extent holds the width and height.
	Extent Extent `json:"extent"`
}

// NewRect creates a rectangle from a top-left corner and an extent.
func NewRect(origin Point, extent Extent) Rect {
	return Rect{Origin: origin, Extent: extent}
}

// Width returns the rectangle's width.
func (r Rect) Width() int { return r.Extent.Width }

// Height returns the rectangle's height.
func (r Rect) Height() int { return r.Extent.Height }

// Area returns the rectangle's area.
func (r Rect) Area() int { return r.Extent.Area() }

// TopRight returns the rectangle's top-right corner.
func (r Rect) TopRight() Point {
	return r.Origin.Offset(r.Extent.Width, 0)
}

// BottomLeft returns the rectangle's bottom-left corner.
func (r Rect) BottomLeft() Point {
	return r.Origin.Offset(0, r.Extent.Height)
}

// BottomRight returns the rectangle's bottom-right corner.
func (r Rect) BottomRight() Point {
	return r.Origin.Offset(r.Extent.Width, r.Extent.Height)
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("%s %s", r.Origin, r.Extent)
}
