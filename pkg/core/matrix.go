package core

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix4x4 is a row-major homogeneous transform. Points and vectors are treated as
// columns, so transforms compose right to left: (A.Mul(B)).MulPoint(p) applies B first.
//
// The columns show where the three basis vectors and the origin of the current
// coordinate system are sent.
type Matrix4x4 struct {
	M [4][4]float64
}

// Identity returns the identity transform
func Identity() Matrix4x4 {
	return Matrix4x4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translate returns a transform moving points by (x, y, z)
func Translate(x, y, z float64) Matrix4x4 {
	return Matrix4x4{M: [4][4]float64{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}}
}

// Scale returns a possibly non-uniform scale
func Scale(x, y, z float64) Matrix4x4 {
	return Matrix4x4{M: [4][4]float64{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}}
}

// RotateX returns a rotation about the X axis
func RotateX(angle Angle) Matrix4x4 {
	s, c := math.Sincos(angle.Radians())
	return Matrix4x4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}}
}

// RotateY returns a rotation about the Y axis
func RotateY(angle Angle) Matrix4x4 {
	s, c := math.Sincos(angle.Radians())
	return Matrix4x4{M: [4][4]float64{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}}
}

// RotateZ returns a rotation about the Z axis
func RotateZ(angle Angle) Matrix4x4 {
	s, c := math.Sincos(angle.Radians())
	return Matrix4x4{M: [4][4]float64{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Rotate returns a rotation about the given axis
func Rotate(axis Axis, angle Angle) Matrix4x4 {
	switch axis {
	case X:
		return RotateX(angle)
	case Y:
		return RotateY(angle)
	default:
		return RotateZ(angle)
	}
}

// Perspective returns a perspective transform for a system with X+ right, Y+ up and
// Z+ into the screen. X and Y are scaled by 1/tan(fov/2); Z in [near, far] maps to
// [0, 1] after the homogeneous divide.
//
// Preconditions: 0 <= near < far and 0 < fov < 180 degrees. Violations panic.
func Perspective(near, far float64, fov Angle) Matrix4x4 {
	if near < 0 {
		panic("perspective: the distance to the near plane cannot be negative")
	}
	if near >= far {
		panic("perspective: the near plane must be in front of the far plane")
	}
	degrees := fov.Degrees()
	if degrees <= 0 || degrees >= 180 || fov.Radians() >= math.Pi {
		panic(fmt.Sprintf("perspective: invalid field of view: %v degrees", degrees))
	}
	invTanHalfFov := 1.0 / math.Tan(fov.Radians()/2.0)
	return Matrix4x4{M: [4][4]float64{
		{invTanHalfFov, 0, 0, 0},
		{0, invTanHalfFov, 0, 0},
		{0, 0, far / (far - near), -(far * near) / (far - near)},
		{0, 0, 1, 0},
	}}
}

// Mul returns the product m * other
func (m Matrix4x4) Mul(other Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[row][k] * other.M[k][col]
			}
			r.M[row][col] = sum
		}
	}
	return r
}

// Transpose returns the transpose of m
func (m Matrix4x4) Transpose() Matrix4x4 {
	var r Matrix4x4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r.M[row][col] = m.M[col][row]
		}
	}
	return r
}

// Inverse uses Gauss-Jordan elimination with partial pivoting to invert m.
// It reports false when m is singular.
func (m Matrix4x4) Inverse() (Matrix4x4, bool) {
	// Augment with the identity on the right hand side.
	var aug [4][8]float64
	for i := 0; i < 4; i++ {
		copy(aug[i][:4], m.M[i][:])
		aug[i][4+i] = 1.0
	}

	for k := 0; k < 4; k++ {
		// Pick the row with the largest magnitude in the pivot column.
		iMax := k
		maxVal := math.Abs(aug[k][k])
		for i := k + 1; i < 4; i++ {
			if v := math.Abs(aug[i][k]); v > maxVal {
				maxVal = v
				iMax = i
			}
		}

		if aug[iMax][k] == 0.0 {
			return Matrix4x4{}, false
		}

		if iMax != k {
			aug[iMax], aug[k] = aug[k], aug[iMax]
		}

		pivot := aug[k][k]
		for j := 0; j < 8; j++ {
			aug[k][j] /= pivot
		}

		// Zero everything below the pivot.
		for i := k + 1; i < 4; i++ {
			f := aug[i][k]
			for j := k + 1; j < 8; j++ {
				aug[i][j] -= aug[k][j] * f
			}
			aug[i][k] = 0.0
		}
	}

	// Back substitute to zero everything above the diagonal.
	for i := 1; i < 4; i++ {
		for j := 0; j < i; j++ {
			f := aug[j][i]
			if f == 0.0 {
				continue
			}
			for k := i; k < 8; k++ {
				aug[j][k] -= aug[i][k] * f
			}
		}
	}

	var inv Matrix4x4
	for i := 0; i < 4; i++ {
		copy(inv.M[i][:], aug[i][4:])
	}
	return inv, true
}

// Determinant returns the determinant of m
func (m Matrix4x4) Determinant() float64 {
	return mat.Det(m.dense())
}

func (m Matrix4x4) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, m.M[i][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// MulPoint applies the full affine transform followed by the homogeneous divide
func (m Matrix4x4) MulPoint(p Point) Point {
	x := m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3]
	y := m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3]
	z := m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3]
	w := m.M[3][0]*p.X + m.M[3][1]*p.Y + m.M[3][2]*p.Z + m.M[3][3]
	invW := 1.0 / w
	return Point{X: x * invW, Y: y * invW, Z: z * invW}
}

// MulVector applies only the linear part of the transform; directions do not translate
func (m Matrix4x4) MulVector(v Vector) Vector {
	return Vector{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// MulRay transforms the origin as a point and the direction as a vector, then
// re-normalizes the direction. It reports false if the direction collapses.
func (m Matrix4x4) MulRay(r Ray) (Ray, bool) {
	direction, ok := m.MulVector(r.Direction).Unit()
	if !ok {
		return Ray{}, false
	}
	return Ray{Origin: m.MulPoint(r.Origin), Direction: direction}, true
}

// ApproxEqual reports whether every element is within eps of other
func (m Matrix4x4) ApproxEqual(other Matrix4x4, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.M[i][j]-other.M[i][j]) >= eps {
				return false
			}
		}
	}
	return true
}

func (m Matrix4x4) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "┏ %35s ┓\n", "")
	for row := 0; row < 4; row++ {
		fmt.Fprintf(&sb, "┃ %8.4f %8.4f %8.4f %8.4f ┃\n",
			m.M[row][0], m.M[row][1], m.M[row][2], m.M[row][3])
	}
	fmt.Fprintf(&sb, "┗ %35s ┛", "")
	return sb.String()
}
