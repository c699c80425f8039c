package core

// Ray represents a ray with an origin and direction.
// Solids expect the direction to be unit length.
type Ray struct {
	Origin    Point
	Direction Vector
}

// NewRay creates a new ray
func NewRay(origin Point, direction Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Normalize rescales the direction to unit length in place
func (r *Ray) Normalize() (float64, bool) {
	return r.Direction.Normalize()
}
