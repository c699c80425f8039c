package renderer

import "errors"

var (
	// ErrInvalidFilm is returned for films without a positive raster size
	ErrInvalidFilm = errors.New("invalid film")

	// ErrInvalidProjection is returned when projection parameters violate their preconditions
	ErrInvalidProjection = errors.New("invalid projection")

	// ErrSingularCamera is returned when the combined camera transform cannot be inverted
	ErrSingularCamera = errors.New("camera transform is not invertible")
)
