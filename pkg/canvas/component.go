package canvas

// =============================================================================
// Geometry
// =============================================================================

// Point is a position in canvas coordinates (origin top-left, y grows down).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is the canvas bounding rectangle as reported by the host rendering
// layer: absolute origin plus width and height.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Origin returns the absolute top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// DefaultCanvasWidth and DefaultCanvasHeight are used when the host does
// not report canvas geometry.
const (
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 800.0
)

// Footprint constants: the assumed rendered size of a placed component,
// used for clamping positions to the canvas. Note the drop bias below
// assumes a 100×50 component; the mismatch is kept as-is.
const (
	FootprintWidth  = 150.0
	FootprintHeight = 80.0
)

// Drop bias: offset applied to drop coordinates so the component centers
// on the cursor.
const (
	dropBiasX = 50.0
	dropBiasY = 25.0
)

// Select-to-place parameters: fixed x position and vertical spacing of the
// per-region stack.
const (
	selectPlaceX = 50.0
	stackSpacing = 80.0
)

// Clamp constrains p so a component footprint starting at p lies fully
// inside the canvas. Positions are never negative.
func Clamp(p Point, canvas Rect) Point {
	maxX := canvas.Width - FootprintWidth
	maxY := canvas.Height - FootprintHeight
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return Point{
		X: min(max(p.X, 0), maxX),
		Y: min(max(p.Y, 0), maxY),
	}
}

// =============================================================================
// PlacedComponent
// =============================================================================

// PlacedComponent is a catalog entry instantiated onto the canvas.
//
// ID and Type are immutable after creation; Region and Position are
// mutated only by the [Controller]. A component's type always exists in
// the catalog for the region it was created under, but the component may
// outlive a later change of the active region (region reassignment is
// never automatic).
type PlacedComponent struct {
	ID       int64         `json:"id"`
	Type     ComponentType `json:"type"`
	Label    string        `json:"label"`
	Region   Region        `json:"region"`
	Position Point         `json:"position"`
}
