package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// SpectrumToRGBA quantizes a spectrum to 8 bits per channel.
// Each component is scaled by 255 and clamped; no tone mapping or gamma is applied.
func SpectrumToRGBA(s core.Spectrum) color.RGBA {
	return color.RGBA{
		R: quantize(s.X * 255.0),
		G: quantize(s.Y * 255.0),
		B: quantize(s.Z * 255.0),
		A: 255,
	}
}

// FloatToHue maps [-1, 1] onto [0, 255]
func FloatToHue(f float64) uint8 {
	return quantize((f + 1.0) / 2.0 * 255.0)
}

// UnitVectorAsColor visualizes a unit vector, e.g. a surface normal, as a color
func UnitVectorAsColor(v core.Vector) color.RGBA {
	return color.RGBA{
		R: FloatToHue(v.X),
		G: FloatToHue(v.Y),
		B: FloatToHue(v.Z),
		A: 255,
	}
}

func quantize(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(math.Min(255, math.Max(0, c)))
}
