package lights

import "github.com/df07/go-raycaster/pkg/core"

// NonAreaLight is a light with no surface of its own: it cannot be hit by rays,
// only sampled from shading points.
type NonAreaLight interface {
	// Irradiance returns the irradiance the light delivers to a surface at point
	// facing normal, including the cosine falloff.
	Irradiance(point core.Point, normal core.Vector) core.Spectrum

	// LightVector returns the unit vector from point toward the light. It reports
	// false when no direction exists, such as a point sitting on a point light.
	LightVector(point core.Point) (core.Vector, bool)

	// IsHiddenFrom reports whether the nearest occluder found along the light vector
	// from point blocks the light. occluder is nil when nothing was hit.
	IsHiddenFrom(point core.Point, occluder *core.Intersection) bool
}
