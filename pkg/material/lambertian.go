package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Lambertian represents a purely diffuse material with a single color.
// The cosine term is applied by the light's irradiance, not here.
type Lambertian struct {
	Reflective
	Diffuse core.Spectrum // Diffuse albedo
}

// NewLambertian creates a new lambertian material
func NewLambertian(diffuse core.Spectrum) *Lambertian {
	return &Lambertian{Diffuse: diffuse}
}

// F ignores both directions and returns the diffuse albedo
func (l *Lambertian) F(light, view core.Vector) core.Spectrum {
	return l.Diffuse
}
