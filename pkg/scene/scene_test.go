package scene

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	f    core.Spectrum
	next func(incident, normal core.Vector) core.Vector
}

func (m MockMaterial) F(light, view core.Vector) core.Spectrum { return m.f }

func (m MockMaterial) NextRayDirection(incident, normal core.Vector) core.Vector {
	return m.next(incident, normal)
}

func assertSpectrum(t *testing.T, got, expected core.Spectrum) {
	t.Helper()
	if !got.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func mustAdd(t *testing.T, s *Scene, shape core.Solid, mat material.Material, toWorld core.Matrix4x4) {
	t.Helper()
	if err := s.AddEntity(shape, mat, toWorld); err != nil {
		t.Fatalf("AddEntity failed: %v", err)
	}
}

// groundScene is a diffuse floor at y=0 lit by a point light four units above the origin.
// The camera ray hits the floor at the origin at 45 degrees.
func groundScene(t *testing.T) (*Scene, core.Ray) {
	t.Helper()
	s := New()
	ground, err := geometry.NewPlaneFromNormalAndPoint(core.NewVector(0, 1, 0), core.Origin)
	if err != nil {
		t.Fatalf("NewPlaneFromNormalAndPoint failed: %v", err)
	}
	mustAdd(t, s, ground, material.NewLambertian(core.NewSpectrum(0.5, 0.5, 0.5)), core.Identity())
	s.AddLight(lights.NewPointLight(core.NewPoint(0, 4, 0), core.NewSpectrum(16, 16, 16)))

	dir, _ := core.NewVector(0, -1, 1).Unit()
	return s, core.NewRay(core.NewPoint(0, 5, -5), dir)
}

func TestScene_EmptyIsBlack(t *testing.T) {
	s := New()
	assertSpectrum(t, s.Trace(core.NewRay(core.Origin, core.NewVector(0, 0, 1))), core.Black)

	// Lights alone have no surface to hit
	s.AddLight(lights.NewPointLight(core.NewPoint(0, 0, 5), core.NewSpectrum(1, 1, 1)))
	assertSpectrum(t, s.Trace(core.NewRay(core.Origin, core.NewVector(0, 0, 1))), core.Black)
}

func TestScene_DirectLighting(t *testing.T) {
	s := New()
	mustAdd(t, s, geometry.NewSphereWithRadius(1), material.NewLambertian(core.NewSpectrum(0.5, 0.5, 0.5)), core.Translate(0, 0, 5))
	s.AddLight(lights.NewPointLight(core.Origin, core.NewSpectrum(1, 1, 1)))

	// Hit at (0,0,4) facing the light: 0.5 * 1/16; the mirror bounce heads back out of the scene
	got := s.Trace(core.NewRay(core.Origin, core.NewVector(0, 0, 1)))
	assertSpectrum(t, got, core.NewSpectrum(0.03125, 0.03125, 0.03125))
}

func TestScene_Shadows(t *testing.T) {
	tests := []struct {
		name     string
		occluder core.Point
		expected core.Spectrum
	}{
		{"Unblocked", core.NewPoint(20, 20, 20), core.NewSpectrum(0.5, 0.5, 0.5)},
		{"OccluderBetween", core.NewPoint(0, 2, 0), core.Black},
		{"OccluderBeyondLight", core.NewPoint(0, 8, 0), core.NewSpectrum(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ray := groundScene(t)
			mustAdd(t, s, geometry.NewSphere(tt.occluder, 0.5), material.NewLambertian(core.Black), core.Identity())
			assertSpectrum(t, s.Trace(ray), tt.expected)
		})
	}
}

func TestScene_DirectionalLightBlockedAtAnyDistance(t *testing.T) {
	s := New()
	ground, _ := geometry.NewPlaneFromNormalAndPoint(core.NewVector(0, 1, 0), core.Origin)
	mustAdd(t, s, ground, material.NewLambertian(core.NewSpectrum(0.5, 0.5, 0.5)), core.Identity())
	light, err := lights.NewDirectionalLight(core.NewVector(0, -1, 0), core.NewSpectrum(1, 1, 1))
	if err != nil {
		t.Fatalf("NewDirectionalLight failed: %v", err)
	}
	s.AddLight(light)

	dir, _ := core.NewVector(0, -1, 1).Unit()
	ray := core.NewRay(core.NewPoint(0, 5, -5), dir)
	assertSpectrum(t, s.Trace(ray), core.NewSpectrum(0.5, 0.5, 0.5))

	mustAdd(t, s, geometry.NewSphere(core.NewPoint(0, 500, 0), 1), material.NewLambertian(core.Black), core.Identity())
	assertSpectrum(t, s.Trace(ray), core.Black)
}

// corridor builds a floor and a ceiling facing each other with a light between them.
// The material sends every bounce straight back along the normal.
func corridor(t *testing.T, config Config, next func(incident, normal core.Vector) core.Vector) *Scene {
	t.Helper()
	s := New(WithConfig(config))
	mat := MockMaterial{f: core.NewSpectrum(0.1, 0.1, 0.1), next: next}
	mustAdd(t, s, geometry.NewPlane(0, 1, 0, 0), mat, core.Identity())
	mustAdd(t, s, geometry.NewPlane(0, -1, 0, 10), mat, core.Identity())
	s.AddLight(lights.NewPointLight(core.NewPoint(0, 5, 0), core.NewSpectrum(25, 25, 25)))
	return s
}

func TestScene_BounceDepth(t *testing.T) {
	backAlongNormal := func(incident, normal core.Vector) core.Vector { return normal }
	ray := core.NewRay(core.NewPoint(0, 5, 0), core.NewVector(0, -1, 0))

	for _, depth := range []int{0, 1, 2, 3, 8} {
		config := DefaultConfig()
		config.MaxDepth = depth
		s := corridor(t, config, backAlongNormal)

		// Every hit is five units from the light facing it: irradiance 1, times 0.1
		expected := 0.1 * float64(depth)
		got := s.Trace(ray)
		if math.Abs(got.X-expected) > 1e-9 {
			t.Errorf("MaxDepth %d: expected %v, got %v", depth, expected, got.X)
		}
	}
}

func TestScene_DegenerateBounceKeepsDirectLight(t *testing.T) {
	nowhere := func(incident, normal core.Vector) core.Vector { return core.Vector{} }
	s := corridor(t, DefaultConfig(), nowhere)

	got := s.Trace(core.NewRay(core.NewPoint(0, 5, 0), core.NewVector(0, -1, 0)))
	assertSpectrum(t, got, core.NewSpectrum(0.1, 0.1, 0.1))
}

func TestScene_MirrorBounceAddsReflectedLight(t *testing.T) {
	s, ray := groundScene(t)
	// A lit white sphere where the reflected ray ends up
	mustAdd(t, s, geometry.NewSphereWithRadius(1), material.NewLambertian(core.NewSpectrum(1, 1, 1)), core.Translate(0, 10, 10))

	withBounce := s.Trace(ray)
	direct := s.Bounce(ray, 1)
	if withBounce.X <= direct.X {
		t.Errorf("expected the reflected sphere to add light: bounce=%v direct=%v", withBounce, direct)
	}
	assertSpectrum(t, direct, core.NewSpectrum(0.5, 0.5, 0.5))
}

func TestScene_NearestPrefersFirstOnTies(t *testing.T) {
	s := New()
	first := material.NewLambertian(core.NewSpectrum(1, 0, 0))
	second := material.NewLambertian(core.NewSpectrum(0, 1, 0))
	mustAdd(t, s, geometry.NewSphereWithRadius(1), first, core.Translate(0, 0, 5))
	mustAdd(t, s, geometry.NewSphereWithRadius(1), second, core.Translate(0, 0, 5))
	mustAdd(t, s, geometry.NewSphereWithRadius(1), second, core.Translate(0, 0, 10))

	entity, hit := s.Nearest(core.NewRay(core.Origin, core.NewVector(0, 0, 1)))
	if entity == nil {
		t.Fatal("expected a hit")
	}
	if entity.Material != material.Material(first) {
		t.Error("expected the first of two coincident entities")
	}
	if math.Abs(hit.Time-4) > 1e-9 {
		t.Errorf("expected time 4, got %v", hit.Time)
	}
}

func TestScene_IgnoresHitsBehindRay(t *testing.T) {
	s := New()
	mustAdd(t, s, geometry.NewSphereWithRadius(1), material.NewLambertian(core.NewSpectrum(1, 1, 1)), core.Translate(0, 0, -5))

	if _, ok := s.Intersect(core.NewRay(core.Origin, core.NewVector(0, 0, 1))); ok {
		t.Error("expected no hit for an entity behind the ray")
	}
	if _, ok := s.Intersect(core.NewRay(core.Origin, core.NewVector(0, 0, -1))); !ok {
		t.Error("expected a hit looking backwards")
	}
}

func TestScene_AddEntityRejectsSingularTransform(t *testing.T) {
	s := New()
	err := s.AddEntity(geometry.NewSphereWithRadius(1), material.NewLambertian(core.Black), core.Scale(0, 1, 1))
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(s.Entities()) != 0 {
		t.Errorf("expected no entities, got %d", len(s.Entities()))
	}
}
