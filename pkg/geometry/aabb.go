package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Lower core.Point // Minimum corner
	Upper core.Point // Maximum corner
}

// NewAABB creates a new AABB from its corners
func NewAABB(lower, upper core.Point) *AABB {
	return &AABB{Lower: lower, Upper: upper}
}

// slab records where a ray enters or leaves the box
type slab struct {
	time float64
	axis core.Axis
}

// slabs runs the slab method and returns the entry and exit of the ray
func (b *AABB) slabs(ray core.Ray) (near, far slab, ok bool) {
	near.time = math.Inf(-1)
	far.time = math.Inf(1)

	for _, axis := range core.XYZ {
		direction := ray.Direction.Component(axis)
		lower := b.Lower.Component(axis)
		upper := b.Upper.Component(axis)
		origin := ray.Origin.Component(axis)

		// Parallel to the slab, so the origin has to be between its planes
		if direction == 0 {
			if origin < lower || upper < origin {
				return near, far, false
			}
			continue
		}

		t1 := (lower - origin) / direction
		t2 := (upper - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > near.time {
			near = slab{time: t1, axis: axis}
		}
		if t2 < far.time {
			far = slab{time: t2, axis: axis}
		}

		if near.time > far.time || far.time < 0 {
			return near, far, false
		}
	}

	return near, far, true
}

// IntersectionTime returns the time the ray enters the box. The ray direction must be unit length.
func (b *AABB) IntersectionTime(ray core.Ray) (float64, bool) {
	near, _, ok := b.slabs(ray)
	if !ok {
		return 0, false
	}
	return near.time, true
}

// Intersect tests if a ray hits the box surface. A ray starting inside reports where it leaves.
func (b *AABB) Intersect(ray core.Ray) (*core.Intersection, bool) {
	near, far, ok := b.slabs(ray)
	if !ok {
		return nil, false
	}

	hit := near
	exiting := false
	if near.time < 0 {
		hit = far
		exiting = true
	}

	// Entering through the lower face when travelling up the axis, leaving through the upper.
	sign := -1.0
	if (ray.Direction.Component(hit.axis) > 0) == exiting {
		sign = 1.0
	}

	var normal core.Vector
	switch hit.axis {
	case core.X:
		normal = core.NewVector(sign, 0, 0)
	case core.Y:
		normal = core.NewVector(0, sign, 0)
	default:
		normal = core.NewVector(0, 0, sign)
	}

	return &core.Intersection{
		Time:   hit.time,
		Point:  ray.At(hit.time),
		Normal: normal,
	}, true
}

// Contains reports whether the point lies inside or on the box
func (b *AABB) Contains(p core.Point) bool {
	for _, axis := range core.XYZ {
		v := p.Component(axis)
		if v < b.Lower.Component(axis) || v > b.Upper.Component(axis) {
			return false
		}
	}
	return true
}

// Center returns the center point of the box
func (b *AABB) Center() core.Point {
	return b.Lower.Add(b.Upper.Subtract(b.Lower).Multiply(0.5))
}

// IsValid returns true if lower <= upper on every axis
func (b *AABB) IsValid() bool {
	return b.Lower.X <= b.Upper.X &&
		b.Lower.Y <= b.Upper.Y &&
		b.Lower.Z <= b.Upper.Z
}
