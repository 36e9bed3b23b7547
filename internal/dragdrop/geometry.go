package dragdrop

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Contains reports whether p lies inside r. Edges count as inside, matching
// how browsers report bounding boxes.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Empty reports whether r encloses no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// exceeds reports whether the movement d is past threshold t on either axis.
func exceeds(d Point, t float32) bool {
	return abs32(d.X) > t || abs32(d.Y) > t
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
