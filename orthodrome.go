// Package orthodrome provides great-circle (orthodromic) computations over
// datum-tagged geographic points, polygons and rectangles.
//
// The earth is modelled as a sphere whose scale follows the nautical mile
// definition (1852 m, 60 nautical miles per degree of arc), whatever datum a
// value is tagged with. Values can be serialized to a fixed big-endian binary
// layout, converted to orb geometries and GeoJSON, and exported to FlatGeobuf.
package orthodrome

import (
	"errors"
)

// Common errors returned by this package.
var (
	ErrUnknownDatum    = errors.New("orthodrome: unknown datum")
	ErrDuplicateDatum  = errors.New("orthodrome: datum already registered")
	ErrEmptyDatumID    = errors.New("orthodrome: empty datum identifier")
	ErrNilDatum        = errors.New("orthodrome: nil datum")
	ErrDatumIDTooLong  = errors.New("orthodrome: datum identifier too long")
	ErrMalformedStream = errors.New("orthodrome: malformed stream")
	ErrLengthMismatch  = errors.New("orthodrome: coordinate slices differ in length")
	ErrNoShapes        = errors.New("orthodrome: no shapes")
	ErrNoIndex         = errors.New("orthodrome: file has no spatial index")
	ErrUnsupportedType = errors.New("orthodrome: unsupported geometry type")
)
