package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// ErrInvalidDescription is returned when a scene description fails validation
var ErrInvalidDescription = errors.New("invalid scene description")

// minDeterminant rejects placements too close to singular to invert reliably
const minDeterminant = 1e-12

// Vec3 is an [x, y, z] triple in JSON
type Vec3 [3]float64

func (v Vec3) vector() core.Vector { return core.NewVector(v[0], v[1], v[2]) }
func (v Vec3) point() core.Point   { return core.NewPoint(v[0], v[1], v[2]) }

// Description is a serializable scene: image size, camera, lights and entities
type Description struct {
	Name     string              `json:"name,omitempty"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	MaxDepth int                 `json:"maxDepth,omitempty"` // 0 keeps the default
	Camera   CameraDescription   `json:"camera"`
	Lights   []LightDescription  `json:"lights"`
	Entities []EntityDescription `json:"entities"`
}

// CameraDescription places a perspective camera.
// LookRotation holds degrees about X (pitch), Y (yaw) and Z (roll); roll applies first, then pitch, then yaw.
type CameraDescription struct {
	Near         float64 `json:"near"`
	Far          float64 `json:"far"`
	FOVDegrees   float64 `json:"fovDegrees"`
	Position     Vec3    `json:"position"`
	LookRotation Vec3    `json:"lookRotation"`
}

// LightDescription is a directional or point light
type LightDescription struct {
	Type      string `json:"type"`                // "directional" or "point"
	Direction Vec3   `json:"direction"` // directional
	Radiance  Vec3   `json:"radiance"`  // directional
	Position  Vec3   `json:"position"`  // point
	Intensity Vec3   `json:"intensity"` // point
}

// ShapeDescription is a sphere, plane or box in local coordinates
type ShapeDescription struct {
	Type   string  `json:"type"`             // "sphere", "plane" or "box"
	Center Vec3    `json:"center"` // sphere
	Radius float64 `json:"radius,omitempty"` // sphere
	Normal Vec3    `json:"normal"` // plane
	Point  Vec3    `json:"point"`  // plane
	Lower  Vec3    `json:"lower"`  // box
	Upper  Vec3    `json:"upper"`  // box
}

// MaterialDescription is a lambertian material
type MaterialDescription struct {
	Type       string `json:"type"` // "lambertian"
	Diffuse    Vec3   `json:"diffuse"`
	Reflection string `json:"reflection,omitempty"` // "mirror" (default) or "legacy"
}

// RotateStep rotates about a named axis
type RotateStep struct {
	Axis    string  `json:"axis"` // "x", "y" or "z"
	Degrees float64 `json:"degrees"`
}

// TransformStep is one of translate, scale or rotate
type TransformStep struct {
	Translate *Vec3       `json:"translate,omitempty"`
	Scale     *Vec3       `json:"scale,omitempty"`
	Rotate    *RotateStep `json:"rotate,omitempty"`
}

// EntityDescription is a shape with a material and placement.
// Transform steps compose like matrix products: the last step listed applies first.
type EntityDescription struct {
	Name      string              `json:"name,omitempty"`
	Shape     ShapeDescription    `json:"shape"`
	Material  MaterialDescription `json:"material"`
	Transform []TransformStep     `json:"transform,omitempty"`
}

// LoadDescription reads a JSON scene description from a file
func LoadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene %s: %w", path, err)
	}
	defer f.Close()

	desc, err := ParseDescription(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return desc, nil
}

// ParseDescription decodes and validates a JSON scene description
func ParseDescription(r io.Reader) (*Description, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var desc Description
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDescription, fmt.Sprintf(format, args...))
}

// Validate checks the description without building anything
func (d *Description) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return invalid("image size must be positive, got %dx%d", d.Width, d.Height)
	}
	if d.MaxDepth < 0 {
		return invalid("maxDepth cannot be negative, got %d", d.MaxDepth)
	}

	c := d.Camera
	if c.Near <= 0 || c.Far <= c.Near {
		return invalid("camera needs 0 < near < far, got near=%v far=%v", c.Near, c.Far)
	}
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return invalid("camera fovDegrees must be between 0 and 180, got %v", c.FOVDegrees)
	}

	for i, l := range d.Lights {
		if err := l.validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}

	for i, e := range d.Entities {
		if err := e.validate(); err != nil {
			return fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
	}
	return nil
}

func (l LightDescription) validate() error {
	switch l.Type {
	case "directional":
		if _, ok := l.Direction.vector().Unit(); !ok {
			return invalid("directional light direction %v is degenerate", l.Direction)
		}
	case "point":
	default:
		return invalid("unknown light type %q", l.Type)
	}
	return nil
}

func (e EntityDescription) validate() error {
	s := e.Shape
	switch s.Type {
	case "sphere":
		if s.Radius <= 0 {
			return invalid("sphere radius must be positive, got %v", s.Radius)
		}
	case "plane":
		if _, ok := s.Normal.vector().Unit(); !ok {
			return invalid("plane normal %v is degenerate", s.Normal)
		}
	case "box":
		if !geometry.NewAABB(s.Lower.point(), s.Upper.point()).IsValid() {
			return invalid("box lower %v must not exceed upper %v", s.Lower, s.Upper)
		}
	default:
		return invalid("unknown shape type %q", s.Type)
	}

	m := e.Material
	if m.Type != "lambertian" {
		return invalid("unknown material type %q", m.Type)
	}
	if m.Reflection != "" && m.Reflection != "mirror" && m.Reflection != "legacy" {
		return invalid("unknown reflection rule %q", m.Reflection)
	}

	toWorld, err := composeTransform(e.Transform)
	if err != nil {
		return err
	}
	if math.Abs(toWorld.Determinant()) < minDeterminant {
		return fmt.Errorf("%w: placement determinant is %g", ErrSingularTransform, toWorld.Determinant())
	}
	return nil
}

// composeTransform multiplies the steps left to right
func composeTransform(steps []TransformStep) (core.Matrix4x4, error) {
	m := core.Identity()
	for i, step := range steps {
		set := 0
		if step.Translate != nil {
			set++
			t := step.Translate
			m = m.Mul(core.Translate(t[0], t[1], t[2]))
		}
		if step.Scale != nil {
			set++
			s := step.Scale
			m = m.Mul(core.Scale(s[0], s[1], s[2]))
		}
		if step.Rotate != nil {
			set++
			axis, err := parseAxis(step.Rotate.Axis)
			if err != nil {
				return core.Matrix4x4{}, err
			}
			m = m.Mul(core.Rotate(axis, core.Degrees(step.Rotate.Degrees)))
		}
		if set != 1 {
			return core.Matrix4x4{}, invalid("transform step %d must set exactly one of translate, scale, rotate", i)
		}
	}
	return m, nil
}

func parseAxis(name string) (core.Axis, error) {
	for _, axis := range core.XYZ {
		if strings.EqualFold(name, axis.String()) {
			return axis, nil
		}
	}
	return 0, invalid("unknown rotation axis %q", name)
}

// cameraToWorld places the camera: translate(position) * rotY * rotX * rotZ
func (c CameraDescription) cameraToWorld() core.Matrix4x4 {
	return core.Translate(c.Position[0], c.Position[1], c.Position[2]).
		Mul(core.RotateY(core.Degrees(c.LookRotation[1]))).
		Mul(core.RotateX(core.Degrees(c.LookRotation[0]))).
		Mul(core.RotateZ(core.Degrees(c.LookRotation[2])))
}

// Build validates the description and constructs the scene and its camera
func (d *Description) Build(opts ...Option) (*Scene, *renderer.Camera, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	film, err := renderer.NewFilm(d.Width, d.Height)
	if err != nil {
		return nil, nil, err
	}
	projection, err := renderer.NewPerspective(d.Camera.Near, d.Camera.Far, core.Degrees(d.Camera.FOVDegrees))
	if err != nil {
		return nil, nil, err
	}
	camera, err := renderer.NewCameraAt(film, projection, d.Camera.cameraToWorld())
	if err != nil {
		return nil, nil, err
	}

	config := DefaultConfig()
	if d.MaxDepth > 0 {
		config.MaxDepth = d.MaxDepth
	}
	s := New(append([]Option{WithConfig(config)}, opts...)...)

	for i, l := range d.Lights {
		light, err := l.build()
		if err != nil {
			return nil, nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, e := range d.Entities {
		shape, err := e.Shape.build()
		if err != nil {
			return nil, nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
		toWorld, err := composeTransform(e.Transform)
		if err != nil {
			return nil, nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
		if err := s.AddEntity(shape, e.Material.build(), toWorld); err != nil {
			return nil, nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
	}

	s.logger.Printf("Built scene %q: %d entities, %d lights, %dx%d\n",
		d.Name, len(s.entities), len(s.lights), d.Width, d.Height)
	return s, camera, nil
}

func (l LightDescription) build() (lights.NonAreaLight, error) {
	switch l.Type {
	case "directional":
		return lights.NewDirectionalLight(l.Direction.vector(), l.Radiance.vector())
	case "point":
		return lights.NewPointLight(l.Position.point(), l.Intensity.vector()), nil
	}
	return nil, invalid("unknown light type %q", l.Type)
}

func (s ShapeDescription) build() (core.Solid, error) {
	switch s.Type {
	case "sphere":
		return geometry.NewSphere(s.Center.point(), s.Radius), nil
	case "plane":
		normal, ok := s.Normal.vector().Unit()
		if !ok {
			return nil, invalid("plane normal %v is degenerate", s.Normal)
		}
		return geometry.NewPlaneFromNormalAndPoint(normal, s.Point.point())
	case "box":
		return geometry.NewAABB(s.Lower.point(), s.Upper.point()), nil
	}
	return nil, invalid("unknown shape type %q", s.Type)
}

func (m MaterialDescription) build() material.Material {
	lambertian := material.NewLambertian(m.Diffuse.vector())
	lambertian.Legacy = m.Reflection == "legacy"
	return lambertian
}
