package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Material describes how a surface reflects light and where a bounced ray travels next
type Material interface {
	// F is the BRDF-like ratio of outgoing radiance toward view to irradiance arriving
	// from light. light is the direction the light travels; view points toward the viewer.
	F(light, view core.Vector) core.Spectrum

	// NextRayDirection returns the direction a ray continues in after striking the surface.
	// incident points into the surface.
	NextRayDirection(incident, normal core.Vector) core.Vector
}

// Reflective gives a material perfect mirror bounces. Embed it to get the default rule.
type Reflective struct {
	// Legacy selects the 2(n·i)n bounce rule instead of the mirror reflection
	Legacy bool
}

// NextRayDirection implements Material
func (r Reflective) NextRayDirection(incident, normal core.Vector) core.Vector {
	if r.Legacy {
		return LegacyReflection(incident, normal)
	}
	return Reflect(incident, normal)
}

// Reflect returns the mirror reflection of incident about normal: i - 2(n·i)n
func Reflect(incident, normal core.Vector) core.Vector {
	return incident.Subtract(normal.Multiply(2.0 * normal.Dot(incident)))
}

// LegacyReflection returns 2(n·i)n, the normal component of the reflection only.
// Scenes rendered by older versions of the tracer bounced rays this way.
func LegacyReflection(incident, normal core.Vector) core.Vector {
	return normal.Multiply(2.0 * normal.Dot(incident))
}
