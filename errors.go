package boxblur

import "errors"

// ErrInvalidArgument is returned when a raster is nil or empty, a dimension
// is non-positive, or a radius is negative. Returned errors wrap it with
// detail; test with errors.Is.
var ErrInvalidArgument = errors.New("boxblur: invalid argument")
