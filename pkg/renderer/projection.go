package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Projection maps between camera space and screen space
type Projection interface {
	ScreenToCamera() core.Matrix4x4
	CameraToScreen() core.Matrix4x4
}

// Perspective is a pinhole projection. The near plane lands on screen Z=0 and the far plane on Z=1.
type Perspective struct {
	near, far      float64
	fov            core.Angle
	cameraToScreen core.Matrix4x4
	screenToCamera core.Matrix4x4
}

// NewPerspective creates a perspective projection.
// Requires near > 0, far > near and a field of view strictly between 0 and 180 degrees.
func NewPerspective(near, far float64, fov core.Angle) (*Perspective, error) {
	if near <= 0 {
		return nil, fmt.Errorf("%w: near plane must be positive, got %v", ErrInvalidProjection, near)
	}
	if far <= near {
		return nil, fmt.Errorf("%w: far plane (%v) must be beyond near plane (%v)", ErrInvalidProjection, far, near)
	}
	if degrees := fov.Degrees(); degrees <= 0 || degrees >= 180 || fov.Radians() >= math.Pi {
		return nil, fmt.Errorf("%w: field of view must be between 0 and 180 degrees, got %v", ErrInvalidProjection, degrees)
	}

	projection := core.Perspective(near, far, fov)
	inverse, ok := projection.Inverse()
	if !ok {
		return nil, fmt.Errorf("%w: perspective transform is singular", ErrInvalidProjection)
	}

	return &Perspective{
		near:           near,
		far:            far,
		fov:            fov,
		cameraToScreen: projection,
		screenToCamera: inverse,
	}, nil
}

// Near returns the distance to the near plane
func (p *Perspective) Near() float64 { return p.near }

// Far returns the distance to the far plane
func (p *Perspective) Far() float64 { return p.far }

// FOV returns the field of view
func (p *Perspective) FOV() core.Angle { return p.fov }

// ScreenToCamera implements Projection
func (p *Perspective) ScreenToCamera() core.Matrix4x4 { return p.screenToCamera }

// CameraToScreen implements Projection
func (p *Perspective) CameraToScreen() core.Matrix4x4 { return p.cameraToScreen }
