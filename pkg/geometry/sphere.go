package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// NewSphereWithRadius creates a sphere centered on the local origin, to be placed by a transform
func NewSphereWithRadius(radius float64) *Sphere {
	return NewSphere(core.Origin, radius)
}

// IntersectionTime returns the time the ray first crosses the surface. When the ray
// starts inside the sphere this is the exit point. The ray direction must be unit length.
func (s *Sphere) IntersectionTime(ray core.Ray) (float64, bool) {
	originToCenter := s.Center.Subtract(ray.Origin)
	sqrdDistanceToCenter := originToCenter.Dot(originToCenter)
	sqrdRadius := s.Radius * s.Radius
	inside := sqrdDistanceToCenter < sqrdRadius

	// Closest approach is behind the ray origin.
	tClosestApproach := originToCenter.Dot(ray.Direction)
	if tClosestApproach <= 0 && !inside {
		return 0, false
	}

	sqrdHalfChord := sqrdRadius - sqrdDistanceToCenter + tClosestApproach*tClosestApproach
	if sqrdHalfChord < 0 {
		return 0, false
	}

	if inside {
		return tClosestApproach + math.Sqrt(sqrdHalfChord), true
	}
	return tClosestApproach - math.Sqrt(sqrdHalfChord), true
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (*core.Intersection, bool) {
	t, ok := s.IntersectionTime(ray)
	if !ok {
		return nil, false
	}

	point := ray.At(t)
	normal, ok := point.Subtract(s.Center).Unit()
	if !ok {
		// Zero radius sphere
		return nil, false
	}

	return &core.Intersection{
		Time:   t,
		Point:  point,
		Normal: normal,
	}, true
}
