package core

import (
	"fmt"
	"math"
)

// Point represents a position in 3D space. Unlike a Vector it is affected by translation.
type Point struct {
	X, Y, Z float64
}

// Origin is the origin of the current coordinate system
var Origin = Point{}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Subtract returns the displacement from other to p
func (p Point) Subtract(other Point) Vector {
	return Vector{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return p.Subtract(other).Length()
}

// ToVector returns the displacement from the origin to p
func (p Point) ToVector() Vector {
	return Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Component returns the coordinate along the given axis
func (p Point) Component(axis Axis) float64 {
	switch axis {
	case X:
		return p.X
	case Y:
		return p.Y
	default:
		return p.Z
	}
}

// ApproxEqual reports whether every coordinate is within eps of other
func (p Point) ApproxEqual(other Point, eps float64) bool {
	return math.Abs(p.X-other.X) < eps &&
		math.Abs(p.Y-other.Y) < eps &&
		math.Abs(p.Z-other.Z) < eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}
