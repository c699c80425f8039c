package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NormalizeEpsilon is the shortest length a vector may have and still be given a direction.
const NormalizeEpsilon = 1e-6

// Vector represents a free 3D direction or displacement
type Vector struct {
	X, Y, Z float64
}

// Spectrum is a linear RGB-like radiometric quantity (radiance, irradiance, reflectance)
type Spectrum = Vector

// Black is zero radiance
var Black = Spectrum{}

// NewVector creates a new Vector
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewSpectrum creates a new Spectrum from its red, green and blue parts
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{X: r, Y: g, Z: b}
}

func (v Vector) r3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(p r3.Vec) Vector {
	return Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) Vector {
	return fromR3(r3.Add(v.r3(), other.r3()))
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) Vector {
	return fromR3(r3.Sub(v.r3(), other.r3()))
}

// Multiply returns the vector scaled by a scalar
func (v Vector) Multiply(scalar float64) Vector {
	return fromR3(r3.Scale(scalar, v.r3()))
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vector) MultiplyVec(other Vector) Vector {
	return Vector{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Negate returns the negative of the vector
func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross returns the cross product of two vectors
func (v Vector) Cross(other Vector) Vector {
	return fromR3(r3.Cross(v.r3(), other.r3()))
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return r3.Norm(v.r3())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector) LengthSquared() float64 {
	return r3.Norm2(v.r3())
}

// Normalize rescales the vector in place to unit length and reports the new length.
// Vectors no longer than NormalizeEpsilon have no direction and are left untouched.
func (v *Vector) Normalize() (float64, bool) {
	length := v.Length()
	if length <= NormalizeEpsilon {
		return 0, false
	}
	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength
	v.Z *= invLength
	return v.Length(), true
}

// Unit returns a unit vector in the same direction
func (v Vector) Unit() (Vector, bool) {
	_, ok := v.Normalize()
	return v, ok
}

// IsNormalized reports whether the vector has unit length
func (v Vector) IsNormalized() bool {
	return math.Abs(v.Length()-1.0) < NormalizeEpsilon
}

// AngleWithInDegrees returns the angle between two vectors in [0, 180]
func (v Vector) AngleWithInDegrees(other Vector) (float64, bool) {
	a, ok := v.Unit()
	if !ok {
		return 0, false
	}
	b, ok := other.Unit()
	if !ok {
		return 0, false
	}
	cosine := max(-1.0, min(1.0, a.Dot(b)))
	return Radians(math.Acos(cosine)).Degrees(), true
}

// Component returns the value along the given axis
func (v Vector) Component(axis Axis) float64 {
	switch axis {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vector) Clamp(minVal, maxVal float64) Vector {
	return Vector{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// Luminance returns the perceptual luminance of an RGB color
func (v Vector) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// ApproxEqual reports whether every component is within eps of other
func (v Vector) ApproxEqual(other Vector, eps float64) bool {
	return math.Abs(v.X-other.X) < eps &&
		math.Abs(v.Y-other.Y) < eps &&
		math.Abs(v.Z-other.Z) < eps
}

func (v Vector) String() string {
	return fmt.Sprintf("<%.4f, %.4f, %.4f>", v.X, v.Y, v.Z)
}
