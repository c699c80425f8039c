package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// PointLight radiates equally in all directions from a single position
type PointLight struct {
	Position  core.Point
	Intensity core.Spectrum
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point, intensity core.Spectrum) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Irradiance implements NonAreaLight with inverse-square falloff. Distances under one
// unit are treated as one so nearby surfaces do not blow up.
func (l *PointLight) Irradiance(point core.Point, normal core.Vector) core.Spectrum {
	lightVector, ok := l.LightVector(point)
	if !ok {
		return core.Black
	}
	cosine := max(0.0, lightVector.Dot(normal))
	distanceSquared := l.Position.Subtract(point).LengthSquared()
	return l.Intensity.Multiply(cosine / max(1.0, distanceSquared))
}

// LightVector implements NonAreaLight
func (l *PointLight) LightVector(point core.Point) (core.Vector, bool) {
	return l.Position.Subtract(point).Unit()
}

// IsHiddenFrom implements NonAreaLight. Only occluders between the point and the light count.
func (l *PointLight) IsHiddenFrom(point core.Point, occluder *core.Intersection) bool {
	if occluder == nil {
		return false
	}
	return occluder.Time < l.Position.DistanceTo(point)
}
