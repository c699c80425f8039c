package renderer

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
)

// Camera melds a film and a projection into a single component that casts rays
// from the viewer into the scene. The eye sits at the camera-space origin looking down +Z.
type Camera struct {
	width, height  int
	rasterToCamera core.Matrix4x4
	cameraToRaster core.Matrix4x4
	cameraToWorld  core.Matrix4x4
}

// NewCamera creates a camera at the world origin looking down +Z
func NewCamera(film *Film, projection Projection) (*Camera, error) {
	return NewCameraAt(film, projection, core.Identity())
}

// NewCameraAt creates a camera placed in the world by cameraToWorld
func NewCameraAt(film *Film, projection Projection, cameraToWorld core.Matrix4x4) (*Camera, error) {
	rasterToCamera := projection.ScreenToCamera().Mul(film.RasterToScreen())
	cameraToRaster, ok := rasterToCamera.Inverse()
	if !ok {
		return nil, fmt.Errorf("%w: raster to camera", ErrSingularCamera)
	}
	if _, ok := cameraToWorld.Inverse(); !ok {
		return nil, fmt.Errorf("%w: camera to world", ErrSingularCamera)
	}

	return &Camera{
		width:          film.Width(),
		height:         film.Height(),
		rasterToCamera: rasterToCamera,
		cameraToRaster: cameraToRaster,
		cameraToWorld:  cameraToWorld,
	}, nil
}

// RasterToCamera returns the combined raster to camera transform
func (c *Camera) RasterToCamera() core.Matrix4x4 { return c.rasterToCamera }

// CameraToRaster returns the combined camera to raster transform
func (c *Camera) CameraToRaster() core.Matrix4x4 { return c.cameraToRaster }

// GenerateRay returns the world space ray through raster position (x, y).
// (0, 0) is the top left corner of the image.
func (c *Camera) GenerateRay(x, y float64) (core.Ray, bool) {
	imagePlanePos := c.rasterToCamera.MulPoint(core.NewPoint(x, y, 0))
	ray := core.NewRay(core.Origin, imagePlanePos.Subtract(core.Origin))
	if _, ok := ray.Normalize(); !ok {
		return core.Ray{}, false
	}
	return c.cameraToWorld.MulRay(ray)
}

// FrustumCorner is the world position of an image corner at the near and far distances
type FrustumCorner struct {
	X, Y      float64
	Near, Far core.Point
}

// FrustumCorners returns the four corners of the view frustum, clockwise from the top left
func (c *Camera) FrustumCorners(near, far float64) []FrustumCorner {
	w, h := float64(c.width), float64(c.height)
	raster := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}

	corners := make([]FrustumCorner, 0, len(raster))
	for _, r := range raster {
		ray, ok := c.GenerateRay(r[0], r[1])
		if !ok {
			continue
		}
		corners = append(corners, FrustumCorner{
			X:    r[0],
			Y:    r[1],
			Near: ray.At(near),
			Far:  ray.At(far),
		})
	}
	return corners
}
