package orthodrome

import (
	"math"
)

// OrthodromicEllipseSegmentation approximates an ellipse centred on center by
// nbSegments points.
//
// The semi axes are in metres and heading (degrees) orients the semi-major
// axis. Points are produced for sweep headings 0, 360/n, ... in increasing
// order, each at the ellipse radius for that sweep heading; the polygon is not
// closed. A zero semi-major axis yields the center alone, and a zero
// semi-minor axis yields the two ends of the major axis.
func OrthodromicEllipseSegmentation(center Point2D, semiMajor, semiMinor, heading float64, nbSegments int) *Polygon {
	if semiMajor == 0 {
		poly := NewPolygonSize(1, center.datum)
		poly.AddPoint2D(center)
		return poly
	}

	if semiMinor == 0 {
		poly := NewPolygonSize(2, center.datum)
		poly.AddPoint2D(OrthodromicExtension(center, semiMajor, heading))
		poly.AddPoint2D(OrthodromicExtension(center, semiMajor, heading+180))
		return poly
	}

	poly := NewPolygonSize(nbSegments, center.datum)
	if nbSegments <= 0 {
		return poly
	}

	step := twoPi / float64(nbSegments)
	rBaseHeading := radians(heading)
	squareSemiMajor := semiMajor * semiMajor
	squareSemiMinor := semiMinor * semiMinor

	rHeading := 0.0
	for i := 0; i < nbSegments; i++ {
		cosa := math.Cos(rHeading - rBaseHeading)
		sina := math.Sin(rHeading - rBaseHeading)
		length := 1 / math.Sqrt(cosa*cosa/squareSemiMajor+sina*sina/squareSemiMinor)
		poly.AddPoint2D(OrthodromicExtension(center, length, degrees(rHeading)))
		rHeading += step
	}
	return poly
}

// OrthodromicArcSegmentation approximates the arc of the given radius (metres)
// around center, starting at startHeading and sweeping angle degrees
// clockwise, by nbSegments segments. Both ends are included, so the polygon
// holds nbSegments+1 points. A non-positive radius yields the center alone.
func OrthodromicArcSegmentation(center Point2D, radius, startHeading, angle float64, nbSegments int) *Polygon {
	if radius <= 0 {
		poly := NewPolygonSize(1, center.datum)
		poly.AddPoint2D(center)
		return poly
	}

	if nbSegments < 0 {
		nbSegments = 0
	}
	poly := NewPolygonSize(nbSegments+1, center.datum)
	step := 0.0
	if nbSegments > 0 {
		step = angle / float64(nbSegments)
	}

	heading := startHeading
	for i := 0; i <= nbSegments; i++ {
		poly.AddPoint2D(OrthodromicExtension(center, radius, heading))
		heading += step
	}
	return poly
}
