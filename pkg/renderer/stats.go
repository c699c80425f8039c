package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels int           // Pixels in the image
	RaysTraced  int           // Primary rays successfully generated and traced
	RaysFailed  int           // Pixels whose primary ray could not be generated
	Hits        int           // Primary rays that hit a solid
	Duration    time.Duration // Wall clock time of the render
}

func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.RaysTraced += other.RaysTraced
	s.RaysFailed += other.RaysFailed
	s.Hits += other.Hits
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d rays traced, %d failed, %d hits in %v",
		s.TotalPixels, s.RaysTraced, s.RaysFailed, s.Hits, s.Duration)
}

// AverageLuminance returns the mean Rec. 709 luminance of an image, in [0, 1]
func AverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixel := core.NewSpectrum(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += pixel.Luminance()
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
