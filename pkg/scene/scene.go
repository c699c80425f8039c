package scene

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Config contains the tracing parameters of a scene
type Config struct {
	MaxDepth      int     // Bounces traced after the primary hit
	ShadowEpsilon float64 // Offset of shadow ray origins along the light vector
	BounceEpsilon float64 // Offset of bounced ray origins along the new direction
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:      8,
		ShadowEpsilon: 0.01,
		BounceEpsilon: 0.01,
	}
}

// Option configures a Scene
type Option func(*Scene)

// WithConfig sets the tracing configuration
func WithConfig(config Config) Option {
	return func(s *Scene) {
		s.config = config
	}
}

// WithLogger sets the logger used while building the scene
func WithLogger(logger core.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scene is a collection of entities and lights.
// Once built it is read only, so Trace may be called from many goroutines.
type Scene struct {
	entities []*Entity
	lights   []lights.NonAreaLight
	config   Config
	logger   core.Logger
}

// New creates an empty scene
func New(opts ...Option) *Scene {
	s := &Scene{
		config: DefaultConfig(),
		logger: core.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the tracing configuration
func (s *Scene) Config() Config { return s.config }

// Entities returns the entities in insertion order
func (s *Scene) Entities() []*Entity { return s.entities }

// Lights returns the lights in insertion order
func (s *Scene) Lights() []lights.NonAreaLight { return s.lights }

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.NonAreaLight) {
	s.lights = append(s.lights, light)
	s.logger.Printf("Added light %d: %T\n", len(s.lights), light)
}

// AddEntity adds a shape with a material, placed in the world by toWorld
func (s *Scene) AddEntity(shape core.Solid, mat material.Material, toWorld core.Matrix4x4) error {
	transform, err := NewTransform(toWorld)
	if err != nil {
		return err
	}
	s.entities = append(s.entities, &Entity{Shape: shape, Material: mat, Transform: transform})
	s.logger.Printf("Added entity %d: %T\n", len(s.entities), shape)
	return nil
}

// Nearest returns the entity with the closest hit in front of the ray origin.
// Ties go to the entity added first. Both results are nil on a miss.
func (s *Scene) Nearest(ray core.Ray) (*Entity, *core.Intersection) {
	var (
		closest    *Entity
		closestHit *core.Intersection
	)
	bestTime := math.Inf(1)

	for _, entity := range s.entities {
		hit, ok := entity.Intersect(ray)
		if !ok {
			continue
		}
		if hit.Time > 0 && hit.Time < bestTime {
			bestTime = hit.Time
			closest = entity
			closestHit = hit
		}
	}
	return closest, closestHit
}

// Intersect implements core.Solid
func (s *Scene) Intersect(ray core.Ray) (*core.Intersection, bool) {
	_, hit := s.Nearest(ray)
	return hit, hit != nil
}

// Trace returns the radiance arriving back along ray
func (s *Scene) Trace(ray core.Ray) core.Spectrum {
	return s.Bounce(ray, s.config.MaxDepth)
}

// Bounce returns the direct radiance at the nearest hit plus the radiance of the
// reflected ray, following at most bouncesLeft reflections.
func (s *Scene) Bounce(ray core.Ray, bouncesLeft int) core.Spectrum {
	entity, hit := s.Nearest(ray)
	if entity == nil {
		return core.Black
	}
	if bouncesLeft <= 0 {
		return core.Black
	}

	direct := s.RadianceFrom(ray, entity, hit)

	next, ok := entity.Material.NextRayDirection(ray.Direction, hit.Normal).Unit()
	if !ok {
		return direct
	}
	bounced := core.NewRay(hit.Point.Add(next.Multiply(s.config.BounceEpsilon)), next)

	return direct.Add(s.Bounce(bounced, bouncesLeft-1))
}

// RadianceFrom sums the contribution of every light visible from the hit on entity
func (s *Scene) RadianceFrom(ray core.Ray, entity *Entity, hit *core.Intersection) core.Spectrum {
	radiance := core.Black
	view := ray.Direction.Negate()

	for _, light := range s.lights {
		lightVector, ok := light.LightVector(hit.Point)
		if !ok {
			continue
		}

		shadowOrigin := hit.Point.Add(lightVector.Multiply(s.config.ShadowEpsilon))
		_, occluder := s.Nearest(core.NewRay(shadowOrigin, lightVector))
		if light.IsHiddenFrom(shadowOrigin, occluder) {
			continue
		}

		f := entity.Material.F(lightVector.Negate(), view)
		radiance = radiance.Add(f.MultiplyVec(light.Irradiance(hit.Point, hit.Normal)))
	}
	return radiance
}
