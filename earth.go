package orthodrome

import (
	"math"

	"github.com/golang/geo/s1"
)

// Spherical earth scale: one nautical mile is 1852 m and a degree of great
// circle arc spans 60 nautical miles.
const (
	MetersPerNauticalMile    = 1852.0
	NauticalMilesPerDegree   = 60.0
	MetersPerDegreeOfArc     = MetersPerNauticalMile * NauticalMilesPerDegree
	EarthRadiusMeters        = MetersPerDegreeOfArc * 180 / math.Pi
	earthSurfaceMetersToDegs = 1.0 / MetersPerDegreeOfArc
)

// EarthAngle converts a distance on the earth surface in metres to the great
// circle angle it subtends.
func EarthAngle(meters float64) s1.Angle {
	return s1.Angle(meters*earthSurfaceMetersToDegs) * s1.Degree
}

// EarthDistance converts a great circle angle to a distance on the earth
// surface in metres.
func EarthDistance(angle s1.Angle) float64 {
	return angle.Degrees() * MetersPerDegreeOfArc
}

func radians(degrees float64) float64 {
	return (s1.Angle(degrees) * s1.Degree).Radians()
}

func degrees(radians float64) float64 {
	return s1.Angle(radians).Degrees()
}
