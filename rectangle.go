package orthodrome

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Rectangle is a latitude/longitude extent tagged with a datum.
//
// The minimum never exceeds the maximum on either axis. Construction sorts the
// two latitudes and the two longitudes independently of each other, so the
// inputs need not be opposite corners.
type Rectangle struct {
	datum        *Datum
	minLatitude  float64
	maxLatitude  float64
	minLongitude float64
	maxLongitude float64
}

// NewRectangle returns the rectangle spanning lat1..lat2 and long1..long2.
func NewRectangle(lat1, long1, lat2, long2 float64, datum *Datum) Rectangle {
	r := Rectangle{datum: datum}
	if lat1 < lat2 {
		r.minLatitude, r.maxLatitude = lat1, lat2
	} else {
		r.minLatitude, r.maxLatitude = lat2, lat1
	}
	if long1 < long2 {
		r.minLongitude, r.maxLongitude = long1, long2
	} else {
		r.minLongitude, r.maxLongitude = long2, long1
	}
	return r
}

// NewRectangleFromPoints returns the rectangle spanning the coordinates of p1
// and p2. The datums of the points are not checked.
func NewRectangleFromPoints(p1, p2 Point2D, datum *Datum) Rectangle {
	return NewRectangle(p1.latitude, p1.longitude, p2.latitude, p2.longitude, datum)
}

// MinLatitude returns the southern bound.
func (r Rectangle) MinLatitude() float64 { return r.minLatitude }

// MaxLatitude returns the northern bound.
func (r Rectangle) MaxLatitude() float64 { return r.maxLatitude }

// MinLongitude returns the western bound.
func (r Rectangle) MinLongitude() float64 { return r.minLongitude }

// MaxLongitude returns the eastern bound.
func (r Rectangle) MaxLongitude() float64 { return r.maxLongitude }

// Datum returns the datum of the rectangle.
func (r Rectangle) Datum() *Datum {
	return r.datum
}

// Equal reports whether both rectangles share a datum and exact bounds.
func (r Rectangle) Equal(o Rectangle) bool {
	return r == o
}

// Geometry returns the rectangle as an orb.Bound.
func (r Rectangle) Geometry() orb.Geometry {
	return r.Bound()
}

// Bound returns the rectangle as an orb.Bound (X longitude, Y latitude).
func (r Rectangle) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.minLongitude, r.minLatitude},
		Max: orb.Point{r.maxLongitude, r.maxLatitude},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%v,%v) -> (%v,%v)", r.minLatitude, r.minLongitude, r.maxLatitude, r.maxLongitude)
}
