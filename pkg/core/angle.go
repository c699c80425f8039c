package core

import "math"

// Angle is a planar angle. The zero value is no rotation.
type Angle struct {
	radians float64
}

// Degrees creates an angle measured in degrees
func Degrees(d float64) Angle {
	return Angle{radians: d * math.Pi / 180.0}
}

// Radians creates an angle measured in radians
func Radians(r float64) Angle {
	return Angle{radians: r}
}

// Degrees returns the angle in degrees
func (a Angle) Degrees() float64 {
	return a.radians * 180.0 / math.Pi
}

// Radians returns the angle in radians
func (a Angle) Radians() float64 {
	return a.radians
}
