package core

// Axis names a coordinate of a Point or Vector
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// XYZ lists the axes in order, for per-axis loops
var XYZ = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}
