package orthodrome

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Point2D is a geographic position in degrees, tagged with a datum.
//
// Coordinates are kept as given. Two points are equal when they share the same
// datum and have exactly equal coordinates; Point2D is comparable so == gives
// the same answer as Equal.
type Point2D struct {
	latitude  float64
	longitude float64
	datum     *Datum
}

// NewPoint2D returns a point at the given coordinates.
func NewPoint2D(latitude, longitude float64, datum *Datum) Point2D {
	return Point2D{latitude: latitude, longitude: longitude, datum: datum}
}

// Latitude returns the latitude in degrees.
func (p Point2D) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p Point2D) Longitude() float64 {
	return p.longitude
}

// Datum returns the datum the point is expressed in.
func (p Point2D) Datum() *Datum {
	return p.datum
}

// Equal reports whether p and o are the same point in the same datum.
func (p Point2D) Equal(o Point2D) bool {
	return p.datum == o.datum && p.latitude == o.latitude && p.longitude == o.longitude
}

// Geometry returns the point as an orb.Point (longitude, latitude).
func (p Point2D) Geometry() orb.Geometry {
	return p.Orb()
}

// Orb returns the point as an orb.Point (longitude, latitude).
func (p Point2D) Orb() orb.Point {
	return orb.Point{p.longitude, p.latitude}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%v,%v)", p.latitude, p.longitude)
}

// Point3D is a Point2D with an altitude in metres.
type Point3D struct {
	Point2D
	altitude float64
}

// NewPoint3D returns a point at the given coordinates and altitude.
func NewPoint3D(latitude, longitude, altitude float64, datum *Datum) Point3D {
	return Point3D{
		Point2D:  NewPoint2D(latitude, longitude, datum),
		altitude: altitude,
	}
}

// Altitude returns the altitude in metres.
func (p Point3D) Altitude() float64 {
	return p.altitude
}

// Equal reports whether p and o have equal 2D positions and altitudes.
func (p Point3D) Equal(o Point3D) bool {
	return p.Point2D.Equal(o.Point2D) && p.altitude == o.altitude
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p.latitude, p.longitude, p.altitude)
}
