package orthodrome

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2

	// Beyond this many radians, repeated subtraction of full turns is
	// replaced by a single reduction.
	maxTurnLoop = 1e9
)

// HeadingDistance is the great circle heading (degrees clockwise from north)
// and distance (metres) from one point to another.
type HeadingDistance struct {
	Heading  float64 `json:"heading"`
	Distance float64 `json:"distance"`
}

func (hd HeadingDistance) String() string {
	return fmt.Sprintf("(%v,%v)", hd.Heading, hd.Distance)
}

// OrthodromicHeadingDistance returns the initial great circle heading and the
// great circle distance from start to end.
func OrthodromicHeadingDistance(start, end Point2D) HeadingDistance {
	rLat1 := radians(start.latitude)
	rLat2 := radians(end.latitude)
	dLong := radians(end.longitude - start.longitude)

	divide := math.Tan(rLat2)*math.Cos(rLat1) - math.Sin(rLat1)*math.Cos(dLong)

	var rv float64
	switch {
	case divide != 0 && dLong == 0 && rLat2 < rLat1:
		rv = math.Pi
	case divide != 0:
		rv = nonIEEEFmod(math.Atan2(math.Sin(dLong), divide), twoPi)
	case dLong > 0:
		rv = nonIEEEFmod(halfPi, twoPi)
	default:
		rv = nonIEEEFmod(-halfPi, twoPi)
	}

	dcos := math.Sin(rLat1)*math.Sin(rLat2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Cos(dLong)
	angle := math.Acos(clamp(dcos))

	return HeadingDistance{
		Heading:  degrees(rv),
		Distance: EarthDistance(s1.Angle(angle)),
	}
}

// OrthodromicExtension returns the point reached from start after travelling
// meters along the great circle leaving start with the given heading
// (degrees). A non-positive distance returns start unchanged. The result is
// in the datum of start, with its longitude wrapped into [-180, 180].
func OrthodromicExtension(start Point2D, meters, heading float64) Point2D {
	if meters <= 0 {
		return start
	}

	rLat1 := radians(start.latitude)
	rLong1 := radians(start.longitude)
	rHeading := normalizeHeading(radians(heading))
	rTheta := EarthAngle(meters).Radians()

	rLat2 := math.Asin(clamp(math.Sin(rLat1)*math.Cos(rTheta) + math.Cos(rLat1)*math.Sin(rTheta)*math.Cos(rHeading)))

	var rLong2 float64
	switch {
	case atPole(start.latitude, rLat1):
		// The heading selects the meridian.
		rLong2 = rHeading
	case rLat2 == halfPi || rLat2 == -halfPi:
		// Travelling along a meridian.
		rLong2 = rLong1
	default:
		dcos := (math.Cos(rTheta) - math.Sin(rLat1)*math.Sin(rLat2)) / (math.Cos(rLat1) * math.Cos(rLat2))
		dLong := math.Acos(clamp(dcos))
		switch {
		case rHeading >= 0 && rHeading <= math.Pi:
			rLong2 = rLong1 + dLong
		case rHeading > math.Pi && rHeading <= twoPi:
			rLong2 = rLong1 - dLong
		default:
			rLong2 = 0
		}
	}

	return NewPoint2D(degrees(rLat2), wrapLongitude(degrees(rLong2)), start.datum)
}

// nonIEEEFmod is a remainder whose sign follows y: for x < 0 the remainder of
// |x| is folded back from y (y >= 0) or negated (y < 0); for x >= 0 and y < 0
// it is offset by y.
func nonIEEEFmod(x, y float64) float64 {
	mod := math.Remainder(math.Abs(x), math.Abs(y))
	if x < 0 {
		if y < 0 {
			return -mod
		}
		return y - mod
	}
	if y < 0 {
		return y + mod
	}
	return mod
}

// normalizeHeading brings a heading in radians back into [0, 2π].
func normalizeHeading(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	if math.Abs(h) > maxTurnLoop {
		h = math.Mod(h, twoPi)
	}
	for h > twoPi {
		h -= twoPi
	}
	for h < 0 {
		h += twoPi
	}
	return h
}

// wrapLongitude brings a longitude in degrees back into [-180, 180].
func wrapLongitude(lon float64) float64 {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0
	}
	if math.Abs(lon) > maxTurnLoop {
		lon = math.Mod(lon, 360)
	}
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

func atPole(latitude, rLatitude float64) bool {
	return latitude == 90 || latitude == -90 || rLatitude == halfPi || rLatitude == -halfPi
}

// clamp restricts v to the domain of acos and asin.
func clamp(v float64) float64 {
	if v >= 0 {
		return math.Min(v, 1)
	}
	return math.Max(v, -1)
}
