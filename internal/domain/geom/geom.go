// Package geom holds the integer pixel primitives shared by frame data,
// entities and the collision engine.
package geom

// Direction is the facing of a player or sword
type Direction int

const (
	Right Direction = iota
	Left
)

// Sign returns +1 for Right and -1 for Left
func (d Direction) Sign() int {
	if d == Left {
		return -1
	}
	return 1
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// String returns the string representation of the direction
func (d Direction) String() string {
	if d == Left {
		return "LEFT"
	}
	return "RIGHT"
}

// Point is an immutable pixel coordinate
type Point struct {
	X, Y int
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle in pixels
type Rect struct {
	X, Y, W, H int
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether p lies inside r (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlaps reports whether r and o share any area
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Translate returns r moved by p
func (r Rect) Translate(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H}
}

// Sign returns -1, 0 or +1
func Sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Abs returns the absolute value of x
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
