package renderer

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
)

// Film maps raster pixel coordinates to the screen (image plane) and back.
//
// Raster space has its origin in the top left corner with Y growing down, spanning
// [0, width] x [0, height]. Screen space is centered on the origin with Y growing up;
// the shorter raster side spans [-1, 1] and the longer one [-aspect, aspect].
type Film struct {
	width, height  int
	screenWidth    float64
	screenHeight   float64
	rasterToScreen core.Matrix4x4
	screenToRaster core.Matrix4x4
}

// NewFilm creates the raster/screen mapping for an image of the given size
func NewFilm(width, height int) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidFilm, width, height)
	}

	screenWidth, screenHeight := screenExtent(float64(width) / float64(height))

	// Read right to left:
	// 1. flip Y so the top left corner ends up at the origin
	// 2. shift by half the screen so all coordinates are non-negative
	// 3. squash to [0, 1]
	// 4. stretch to [0, width] x [0, height]
	screenToRaster := core.Scale(float64(width), float64(height), 1).
		Mul(core.Scale(1/screenWidth, 1/screenHeight, 1)).
		Mul(core.Translate(screenWidth/2, screenHeight/2, 0)).
		Mul(core.Scale(1, -1, 1))

	rasterToScreen, ok := screenToRaster.Inverse()
	if !ok {
		return nil, fmt.Errorf("%w: raster transform for %dx%d is singular", ErrInvalidFilm, width, height)
	}

	return &Film{
		width:          width,
		height:         height,
		screenWidth:    screenWidth,
		screenHeight:   screenHeight,
		rasterToScreen: rasterToScreen,
		screenToRaster: screenToRaster,
	}, nil
}

// screenExtent returns the size of the image plane for an aspect ratio (width / height)
func screenExtent(aspectRatio float64) (width, height float64) {
	if aspectRatio >= 1.0 {
		return 2.0 * aspectRatio, 2.0
	}
	return 2.0, 2.0 / aspectRatio
}

// Width returns the raster width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the raster height in pixels
func (f *Film) Height() int { return f.height }

// AspectRatio returns width / height
func (f *Film) AspectRatio() float64 {
	return float64(f.width) / float64(f.height)
}

// ScreenWidth returns the width of the image plane in screen units
func (f *Film) ScreenWidth() float64 { return f.screenWidth }

// ScreenHeight returns the height of the image plane in screen units
func (f *Film) ScreenHeight() float64 { return f.screenHeight }

// RasterToScreen returns the raster to screen transform
func (f *Film) RasterToScreen() core.Matrix4x4 { return f.rasterToScreen }

// ScreenToRaster returns the screen to raster transform
func (f *Film) ScreenToRaster() core.Matrix4x4 { return f.screenToRaster }
