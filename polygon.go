package orthodrome

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// DefaultPolygonSize is the initial capacity of a polygon built by NewPolygon.
const DefaultPolygonSize = 10

// Polygon is an ordered, growable sequence of geographic positions sharing one
// datum. It is not safe to append to a polygon while another goroutine reads it.
type Polygon struct {
	datum *Datum
	// X is the longitude and Y the latitude, as in orb.
	points []orb.Point
}

// NewPolygon returns an empty polygon with the default capacity.
func NewPolygon(datum *Datum) *Polygon {
	return NewPolygonSize(DefaultPolygonSize, datum)
}

// NewPolygonSize returns an empty polygon able to hold size points before
// growing.
func NewPolygonSize(size int, datum *Datum) *Polygon {
	if size < 1 {
		size = 1
	}
	return &Polygon{
		datum:  datum,
		points: make([]orb.Point, 0, size),
	}
}

// Datum returns the datum of the polygon.
func (p *Polygon) Datum() *Datum {
	return p.datum
}

// Len returns the number of points.
func (p *Polygon) Len() int {
	return len(p.points)
}

// Cap returns the number of points the polygon can hold before growing.
func (p *Polygon) Cap() int {
	return cap(p.points)
}

// Latitude returns the latitude of point i.
func (p *Polygon) Latitude(i int) float64 {
	return p.points[i][1]
}

// Longitude returns the longitude of point i.
func (p *Polygon) Longitude(i int) float64 {
	return p.points[i][0]
}

// Point returns point i, tagged with the polygon's datum.
func (p *Polygon) Point(i int) Point2D {
	return NewPoint2D(p.points[i][1], p.points[i][0], p.datum)
}

// Points returns all points of the polygon.
func (p *Polygon) Points() []Point2D {
	pts := make([]Point2D, len(p.points))
	for i := range p.points {
		pts[i] = p.Point(i)
	}
	return pts
}

// SetPoint replaces point i.
func (p *Polygon) SetPoint(i int, latitude, longitude float64) {
	p.points[i] = orb.Point{longitude, latitude}
}

// SetPoint2D replaces point i with the coordinates of pt. The datum of pt is
// not checked.
func (p *Polygon) SetPoint2D(i int, pt Point2D) {
	p.SetPoint(i, pt.latitude, pt.longitude)
}

// AddPoint appends a point.
func (p *Polygon) AddPoint(latitude, longitude float64) {
	p.grow(len(p.points) + 1)
	p.points = append(p.points, orb.Point{longitude, latitude})
}

// AddPoint2D appends the coordinates of pt. The datum of pt is not checked.
func (p *Polygon) AddPoint2D(pt Point2D) {
	p.AddPoint(pt.latitude, pt.longitude)
}

// grow doubles the backing storage until it holds n points.
func (p *Polygon) grow(n int) {
	size := cap(p.points)
	if size >= n {
		return
	}
	if size == 0 {
		size = 1
	}
	for size < n {
		size *= 2
	}
	points := make([]orb.Point, len(p.points), size)
	copy(points, p.points)
	p.points = points
}

// Equal reports whether both polygons share a datum and hold exactly the same
// points in the same order.
func (p *Polygon) Equal(o *Polygon) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.datum != o.datum || len(p.points) != len(o.points) {
		return false
	}
	for i := range p.points {
		if p.points[i] != o.points[i] {
			return false
		}
	}
	return true
}

// Geometry returns the polygon as an orb.Polygon with a single ring, closed by
// repeating the first point.
func (p *Polygon) Geometry() orb.Geometry {
	return p.Orb()
}

// Orb returns the polygon as an orb.Polygon with a single closed ring. An empty
// polygon yields an empty orb.Polygon.
func (p *Polygon) Orb() orb.Polygon {
	if len(p.points) == 0 {
		return orb.Polygon{}
	}
	ring := make(orb.Ring, 0, len(p.points)+1)
	ring = append(ring, p.points...)
	ring = append(ring, p.points[0])
	return orb.Polygon{ring}
}

// LineString returns the points as an open orb.LineString.
func (p *Polygon) LineString() orb.LineString {
	ls := make(orb.LineString, len(p.points))
	copy(ls, p.points)
	return ls
}

// Bounds returns the per-axis extent of the polygon's points. An empty polygon
// yields a zero rectangle.
func (p *Polygon) Bounds() Rectangle {
	if len(p.points) == 0 {
		return NewRectangle(0, 0, 0, 0, p.datum)
	}
	b := p.LineString().Bound()
	return NewRectangle(b.Min[1], b.Min[0], b.Max[1], b.Max[0], p.datum)
}

func (p *Polygon) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strconv.Itoa(len(p.points)))
	sb.WriteString(" pts) ")
	for _, pt := range p.points {
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatFloat(pt[1], 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(pt[0], 'g', -1, 64))
		sb.WriteByte(')')
	}
	return sb.String()
}
