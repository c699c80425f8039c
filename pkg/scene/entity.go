package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// ErrSingularTransform is returned when an entity placement cannot be inverted
var ErrSingularTransform = errors.New("transform is not invertible")

// Transform holds the matrices into and out of an entity's local coordinate space
type Transform struct {
	ToLocal core.Matrix4x4 // World to local
	ToWorld core.Matrix4x4 // Local to world
}

// NewTransform creates a transform from the matrix placing an object in the world
func NewTransform(toWorld core.Matrix4x4) (Transform, error) {
	toLocal, ok := toWorld.Inverse()
	if !ok {
		return Transform{}, fmt.Errorf("%w:\n%v", ErrSingularTransform, toWorld)
	}
	return Transform{ToLocal: toLocal, ToWorld: toWorld}, nil
}

// Entity is a solid with a material, placed in the world by a transform
type Entity struct {
	Shape     core.Solid
	Material  material.Material
	Transform Transform
}

// Intersect implements core.Solid. The ray is intersected with the shape in local
// space and the hit is mapped back to world space.
func (e *Entity) Intersect(ray core.Ray) (*core.Intersection, bool) {
	localRay, ok := e.Transform.ToLocal.MulRay(ray)
	if !ok {
		return nil, false
	}

	hit, ok := e.Shape.Intersect(localRay)
	if !ok {
		return nil, false
	}

	// Normals transform by the inverse transpose to stay perpendicular under non-uniform scale
	normal, ok := e.Transform.ToLocal.Transpose().MulVector(hit.Normal).Unit()
	if !ok {
		return nil, false
	}

	point := e.Transform.ToWorld.MulPoint(hit.Point)

	// Local times are in local units; measure along the world ray instead
	return &core.Intersection{
		Time:   point.Subtract(ray.Origin).Dot(ray.Direction),
		Point:  point,
		Normal: normal,
	}, true
}
