package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

const twoSpheresJSON = `{
  "name": "two-spheres",
  "width": 64,
  "height": 48,
  "maxDepth": 3,
  "camera": {"near": 1, "far": 100, "fovDegrees": 60, "position": [0, 0, -5], "lookRotation": [0, 0, 0]},
  "lights": [
    {"type": "directional", "direction": [0, -1, 0], "radiance": [1, 1, 1]},
    {"type": "point", "position": [0, 10, 0], "intensity": [50, 50, 50]}
  ],
  "entities": [
    {
      "name": "left",
      "shape": {"type": "sphere", "radius": 1},
      "material": {"type": "lambertian", "diffuse": [1, 0, 0]},
      "transform": [{"translate": [-2, 0, 10]}]
    },
    {
      "name": "right",
      "shape": {"type": "box", "lower": [-1, -1, -1], "upper": [1, 1, 1]},
      "material": {"type": "lambertian", "diffuse": [0, 0, 1], "reflection": "legacy"},
      "transform": [{"translate": [2, 0, 10]}, {"rotate": {"axis": "y", "degrees": 45}}, {"scale": [1, 2, 1]}]
    }
  ]
}`

func TestParseDescription(t *testing.T) {
	desc, err := ParseDescription(strings.NewReader(twoSpheresJSON))
	if err != nil {
		t.Fatalf("ParseDescription failed: %v", err)
	}
	if desc.Name != "two-spheres" || desc.Width != 64 || desc.Height != 48 {
		t.Errorf("unexpected header: %+v", desc)
	}
	if len(desc.Lights) != 2 || len(desc.Entities) != 2 {
		t.Fatalf("expected 2 lights and 2 entities, got %d and %d", len(desc.Lights), len(desc.Entities))
	}

	s, camera, err := desc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Config().MaxDepth != 3 {
		t.Errorf("expected MaxDepth 3, got %d", s.Config().MaxDepth)
	}
	if len(s.Entities()) != 2 || len(s.Lights()) != 2 {
		t.Errorf("expected 2 entities and 2 lights, got %d and %d", len(s.Entities()), len(s.Lights()))
	}

	lambertian, ok := s.Entities()[1].Material.(*material.Lambertian)
	if !ok || !lambertian.Legacy {
		t.Error("expected the box to use the legacy reflection rule")
	}

	// The camera sits at z=-5, so the center ray starts there
	ray, ok := camera.GenerateRay(32, 24)
	if !ok {
		t.Fatal("GenerateRay failed")
	}
	if !ray.Origin.ApproxEqual(core.NewPoint(0, 0, -5), 1e-9) {
		t.Errorf("camera origin = %v, expected (0, 0, -5)", ray.Origin)
	}
}

func TestParseDescription_Invalid(t *testing.T) {
	valid := func() *Description { return NewSingleSphereDescription() }

	tests := []struct {
		name   string
		modify func(d *Description)
		target error
	}{
		{"ZeroWidth", func(d *Description) { d.Width = 0 }, ErrInvalidDescription},
		{"NegativeDepth", func(d *Description) { d.MaxDepth = -1 }, ErrInvalidDescription},
		{"NearBehindCamera", func(d *Description) { d.Camera.Near = 0 }, ErrInvalidDescription},
		{"FarBeforeNear", func(d *Description) { d.Camera.Far = 0.5 }, ErrInvalidDescription},
		{"StraightFOV", func(d *Description) { d.Camera.FOVDegrees = 180 }, ErrInvalidDescription},
		{"UnknownLight", func(d *Description) { d.Lights[0].Type = "area" }, ErrInvalidDescription},
		{"ZeroDirection", func(d *Description) { d.Lights[0].Direction = Vec3{} }, ErrInvalidDescription},
		{"UnknownShape", func(d *Description) { d.Entities[0].Shape.Type = "torus" }, ErrInvalidDescription},
		{"ZeroRadius", func(d *Description) { d.Entities[0].Shape.Radius = 0 }, ErrInvalidDescription},
		{"InvertedBox", func(d *Description) {
			d.Entities[0].Shape = ShapeDescription{Type: "box", Lower: Vec3{1, 1, 1}, Upper: Vec3{0, 0, 0}}
		}, ErrInvalidDescription},
		{"ZeroPlaneNormal", func(d *Description) {
			d.Entities[0].Shape = ShapeDescription{Type: "plane"}
		}, ErrInvalidDescription},
		{"UnknownMaterial", func(d *Description) { d.Entities[0].Material.Type = "metal" }, ErrInvalidDescription},
		{"UnknownReflection", func(d *Description) { d.Entities[0].Material.Reflection = "glossy" }, ErrInvalidDescription},
		{"EmptyStep", func(d *Description) {
			d.Entities[0].Transform = append(d.Entities[0].Transform, TransformStep{})
		}, ErrInvalidDescription},
		{"TwoOpsInOneStep", func(d *Description) {
			d.Entities[0].Transform = []TransformStep{{Translate: &Vec3{1, 2, 3}, Scale: &Vec3{1, 1, 1}}}
		}, ErrInvalidDescription},
		{"UnknownAxis", func(d *Description) {
			d.Entities[0].Transform = []TransformStep{{Rotate: &RotateStep{Axis: "w", Degrees: 10}}}
		}, ErrInvalidDescription},
		{"FlattenedEntity", func(d *Description) {
			d.Entities[0].Transform = []TransformStep{{Scale: &Vec3{1, 0, 1}}}
		}, ErrSingularTransform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.modify(d)
			if err := d.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("Validate: expected %v, got %v", tt.target, err)
			}
			if _, _, err := d.Build(); !errors.Is(err, tt.target) {
				t.Errorf("Build: expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestParseDescription_RejectsMalformedJSON(t *testing.T) {
	inputs := []string{
		`{"width": 10,`,
		`{"width": 10, "height": 10, "colour": "red"}`,
		`[]`,
	}
	for _, input := range inputs {
		if _, err := ParseDescription(strings.NewReader(input)); !errors.Is(err, ErrInvalidDescription) {
			t.Errorf("%s: expected ErrInvalidDescription, got %v", input, err)
		}
	}
}

func TestComposeTransform_LastStepAppliesFirst(t *testing.T) {
	m, err := composeTransform([]TransformStep{
		{Translate: &Vec3{1, 0, 0}},
		{Scale: &Vec3{2, 2, 2}},
	})
	if err != nil {
		t.Fatalf("composeTransform failed: %v", err)
	}
	got := m.MulPoint(core.NewPoint(1, 0, 0))
	if !got.ApproxEqual(core.NewPoint(3, 0, 0), 1e-9) {
		t.Errorf("expected (3, 0, 0), got %v", got)
	}

	rotated, err := composeTransform([]TransformStep{{Rotate: &RotateStep{Axis: "Z", Degrees: 90}}})
	if err != nil {
		t.Fatalf("composeTransform failed: %v", err)
	}
	if got := rotated.MulPoint(core.NewPoint(1, 0, 0)); !got.ApproxEqual(core.NewPoint(0, 1, 0), 1e-9) {
		t.Errorf("expected (0, 1, 0), got %v", got)
	}
}

func TestLoadDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	desc, err := LoadDescription(path)
	if err != nil {
		t.Fatalf("LoadDescription failed: %v", err)
	}
	if desc.Name != "two-spheres" {
		t.Errorf("expected name two-spheres, got %q", desc.Name)
	}

	if _, err := LoadDescription(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestBuiltin(t *testing.T) {
	names := BuiltinNames()
	if len(names) != 2 || names[0] != "default" || names[1] != "single" {
		t.Errorf("unexpected builtin names: %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			desc, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) failed: %v", name, err)
			}
			if _, _, err := desc.Build(); err != nil {
				t.Errorf("Build failed: %v", err)
			}
		})
	}

	if _, err := Builtin("cornell"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestBuiltin_ReturnsFreshCopies(t *testing.T) {
	a, _ := Builtin("default")
	a.Width = 1
	a.Entities[0].Transform[0].Translate[0] = 99

	b, _ := Builtin("default")
	if b.Width != 800 || b.Entities[0].Transform[0].Translate[0] != 0 {
		t.Error("modifying one builtin description leaked into the next")
	}
}

func TestDefaultScene(t *testing.T) {
	desc := NewDefaultDescription()
	s, camera, err := desc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.Entities()) != 4 || len(s.Lights()) != 2 {
		t.Fatalf("expected 4 entities and 2 lights, got %d and %d", len(s.Entities()), len(s.Lights()))
	}

	// Straight down onto the ground: full sun on grey plus a trace of the distant point light
	ground := s.Trace(core.NewRay(core.Origin, core.NewVector(0, -1, 0)))
	if ground.X < 0.2 || ground.X > 0.201 {
		t.Errorf("expected ground radiance just above 0.2, got %v", ground)
	}

	// The center pixel looks at the front sphere
	ray, ok := camera.GenerateRay(400, 300)
	if !ok {
		t.Fatal("GenerateRay failed")
	}
	entity, hit := s.Nearest(ray)
	if entity == nil {
		t.Fatal("expected the center ray to hit the front sphere")
	}
	if math.Abs(hit.Time-25) > 1e-6 {
		t.Errorf("expected hit at time 25, got %v", hit.Time)
	}
}
