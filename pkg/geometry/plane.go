package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Plane is an infinite plane holding every X with (A, B, C)·X + D = 0
type Plane struct {
	A, B, C float64 // Surface normal
	D       float64 // Signed offset from the origin
}

// NewPlane creates a new plane from its equation coefficients
func NewPlane(a, b, c, d float64) *Plane {
	return &Plane{A: a, B: b, C: c, D: d}
}

// NewPlaneFromNormalAndPoint creates the plane through point perpendicular to a unit normal
func NewPlaneFromNormalAndPoint(normal core.Vector, point core.Point) (*Plane, error) {
	if !normal.IsNormalized() {
		return nil, fmt.Errorf("%w: plane normal %v is not unit length", core.ErrDegenerateDirection, normal)
	}
	return NewPlane(normal.X, normal.Y, normal.Z, -normal.Dot(point.ToVector())), nil
}

// Normal returns the unit surface normal
func (p *Plane) Normal() (core.Vector, bool) {
	return core.NewVector(p.A, p.B, p.C).Unit()
}

// DistanceToPoint returns the unsigned distance from the plane to a point
func (p *Plane) DistanceToPoint(point core.Point) float64 {
	n := core.NewVector(p.A, p.B, p.C)
	return math.Abs((n.Dot(point.ToVector()) + p.D) / n.Length())
}

// Intersect tests if a ray intersects with the plane. The returned time may be
// negative; callers reject hits behind the ray origin.
func (p *Plane) Intersect(ray core.Ray) (*core.Intersection, bool) {
	normal, ok := p.Normal()
	if !ok {
		return nil, false
	}

	// Origin lies in the plane.
	v0 := -(normal.Dot(ray.Origin.ToVector()) + p.D)
	if v0 == 0 {
		return nil, false
	}

	t := v0 / normal.Dot(ray.Direction)
	if math.IsInf(t, 0) || math.IsNaN(t) {
		// Ray is parallel to the plane
		return nil, false
	}

	return &core.Intersection{
		Time:   t,
		Point:  ray.At(t),
		Normal: normal,
	}, true
}
