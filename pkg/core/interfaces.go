package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Intersection describes where a ray meets a surface, in the coordinate space of the query
type Intersection struct {
	Time   float64 // Parameter t along the ray
	Point  Point   // Point of intersection
	Normal Vector  // Unit surface normal at the intersection
}

// Solid is anything a ray can be intersected with
type Solid interface {
	Intersect(ray Ray) (*Intersection, bool)
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a Logger that discards all output
func NopLogger() Logger {
	return nopLogger{}
}
