package lights

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
)

// DirectionalLight supplies light from a single direction, as if infinitely far away
type DirectionalLight struct {
	Direction core.Vector   // Unit direction the light travels in
	Radiance  core.Spectrum // Radiance arriving along Direction
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction core.Vector, radiance core.Spectrum) (*DirectionalLight, error) {
	d, ok := direction.Unit()
	if !ok {
		return nil, fmt.Errorf("%w: directional light direction %v", core.ErrDegenerateDirection, direction)
	}
	return &DirectionalLight{Direction: d, Radiance: radiance}, nil
}

// Irradiance implements NonAreaLight. Surfaces facing away receive nothing.
func (l *DirectionalLight) Irradiance(point core.Point, normal core.Vector) core.Spectrum {
	cosine := max(0.0, l.Direction.Negate().Dot(normal))
	return l.Radiance.Multiply(cosine)
}

// LightVector implements NonAreaLight; it is the same everywhere
func (l *DirectionalLight) LightVector(point core.Point) (core.Vector, bool) {
	return l.Direction.Negate(), true
}

// IsHiddenFrom implements NonAreaLight. The light is infinitely far away, so any hit blocks it.
func (l *DirectionalLight) IsHiddenFrom(point core.Point, occluder *core.Intersection) bool {
	return occluder != nil
}
