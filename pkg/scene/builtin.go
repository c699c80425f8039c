package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned for scene names with no built-in description
var ErrUnknownScene = errors.New("unknown scene")

var builtins = map[string]func() *Description{
	"default": NewDefaultDescription,
	"single":  NewSingleSphereDescription,
}

// Builtin returns a fresh copy of a named built-in scene
func Builtin(name string) (*Description, error) {
	create, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, BuiltinNames())
	}
	return create(), nil
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func whiteSphere(name string, x, y, z float64) EntityDescription {
	return EntityDescription{
		Name:      name,
		Shape:     ShapeDescription{Type: "sphere", Radius: 5},
		Material:  MaterialDescription{Type: "lambertian", Diffuse: Vec3{1, 1, 1}},
		Transform: []TransformStep{{Translate: &Vec3{x, y, z}}},
	}
}

// defaultCamera is a 90 degree camera at the origin looking down +Z
func defaultCamera() CameraDescription {
	return CameraDescription{Near: 1, Far: 1000, FOVDegrees: 90}
}

// NewDefaultDescription creates three white spheres resting on a grey ground plane,
// lit from straight above and by a point light over the spheres
func NewDefaultDescription() *Description {
	return &Description{
		Name:   "default",
		Width:  800,
		Height: 600,
		Camera: defaultCamera(),
		Lights: []LightDescription{
			{Type: "directional", Direction: Vec3{0, -1, 0}, Radiance: Vec3{1, 1, 1}},
			{Type: "point", Position: Vec3{0, 20, 30}, Intensity: Vec3{1, 1, 1}},
		},
		Entities: []EntityDescription{
			whiteSphere("center", 0, 0, 30),
			whiteSphere("top", 0, 10, 30),
			whiteSphere("right", 10, 0, 30),
			{
				Name:     "ground",
				Shape:    ShapeDescription{Type: "plane", Normal: Vec3{0, 1, 0}, Point: Vec3{0, -5, 30}},
				Material: MaterialDescription{Type: "lambertian", Diffuse: Vec3{0.2, 0.2, 0.2}},
			},
		},
	}
}

// NewSingleSphereDescription creates one white sphere under a directional light
func NewSingleSphereDescription() *Description {
	return &Description{
		Name:   "single",
		Width:  400,
		Height: 300,
		Camera: defaultCamera(),
		Lights: []LightDescription{
			{Type: "directional", Direction: Vec3{0, -1, 1}, Radiance: Vec3{1, 1, 1}},
		},
		Entities: []EntityDescription{
			whiteSphere("sphere", 0, 0, 20),
		},
	}
}
