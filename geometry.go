package orthodrome

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Shape is a datum-tagged value that has an orb geometry: Point2D, Point3D,
// *Polygon and Rectangle.
type Shape interface {
	Datum() *Datum
	Geometry() orb.Geometry
}

// Shape kinds, stored in the "kind" property of exported features.
const (
	KindPoint2D   = "point2d"
	KindPoint3D   = "point3d"
	KindPolygon   = "polygon"
	KindRectangle = "rectangle"
)

// Feature property names.
const (
	PropKind     = "kind"
	PropDatum    = "datum"
	PropAltitude = "altitude"
)

// KindOf returns the kind of a shape, or "" for an unknown implementation.
func KindOf(s Shape) string {
	switch s.(type) {
	case Point2D, *Point2D:
		return KindPoint2D
	case Point3D, *Point3D:
		return KindPoint3D
	case *Polygon:
		return KindPolygon
	case Rectangle, *Rectangle:
		return KindRectangle
	default:
		return ""
	}
}

// Feature returns s as a GeoJSON feature carrying its kind, datum and, for a
// Point3D, altitude as properties.
func Feature(s Shape) *geojson.Feature {
	f := geojson.NewFeature(s.Geometry())
	f.Properties[PropKind] = KindOf(s)
	if d := s.Datum(); d != nil {
		f.Properties[PropDatum] = d.ID()
	}
	switch p := s.(type) {
	case Point3D:
		f.Properties[PropAltitude] = p.altitude
	case *Point3D:
		f.Properties[PropAltitude] = p.altitude
	}
	return f
}

// FeatureCollection returns the shapes as a GeoJSON feature collection.
func FeatureCollection(shapes ...Shape) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range shapes {
		if s == nil {
			continue
		}
		fc.Append(Feature(s))
	}
	return fc
}

// orbToFGBGeometryType returns the FlatGeobuf geometry type for an orb geometry.
func orbToFGBGeometryType(geom orb.Geometry) flattypes.GeometryType {
	switch geom.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.Ring, orb.Polygon, orb.Bound:
		return flattypes.GeometryTypePolygon
	default:
		return flattypes.GeometryTypeUnknown
	}
}

// geometryToFGB converts the orb geometry of a shape to a FlatGeobuf geometry.
func geometryToFGB(geom orb.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	if geom == nil {
		return nil
	}

	g := writer.NewGeometry(builder)

	switch v := geom.(type) {
	case orb.Point:
		g.SetType(flattypes.GeometryTypePoint)
		g.SetXY([]float64{v[0], v[1]})

	case orb.LineString:
		g.SetType(flattypes.GeometryTypeLineString)
		g.SetXY(pointsToXY(v))

	case orb.Ring:
		g.SetType(flattypes.GeometryTypePolygon)
		g.SetXY(pointsToXY(v))
		g.SetEnds([]uint32{uint32(len(v))})

	case orb.Polygon:
		g.SetType(flattypes.GeometryTypePolygon)
		xy, ends := polygonToXYEnds(v)
		g.SetXY(xy)
		g.SetEnds(ends)

	case orb.Bound:
		g.SetType(flattypes.GeometryTypePolygon)
		xy, ends := polygonToXYEnds(v.ToPolygon())
		g.SetXY(xy)
		g.SetEnds(ends)

	default:
		return nil
	}

	return g
}

// geometryFromFGB converts a FlatGeobuf geometry to an orb geometry. It
// returns nil for a missing geometry or an unsupported type.
func geometryFromFGB(fgbGeom *flattypes.Geometry) (orb.Geometry, error) {
	if fgbGeom == nil {
		return nil, nil
	}

	switch fgbGeom.Type() {
	case flattypes.GeometryTypePoint:
		return pointFromXY(fgbGeom), nil
	case flattypes.GeometryTypeLineString:
		return lineStringFromXY(fgbGeom), nil
	case flattypes.GeometryTypePolygon:
		return polygonFromXYEnds(fgbGeom)
	default:
		return nil, nil
	}
}

func pointsToXY(pts []orb.Point) []float64 {
	xy := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		xy = append(xy, p[0], p[1])
	}
	return xy
}

func polygonToXYEnds(poly orb.Polygon) ([]float64, []uint32) {
	totalPoints := 0
	for _, ring := range poly {
		totalPoints += len(ring)
	}

	xy := make([]float64, 0, totalPoints*2)
	ends := make([]uint32, 0, len(poly))

	cumulative := uint32(0)
	for _, ring := range poly {
		xy = append(xy, pointsToXY(ring)...)
		cumulative += uint32(len(ring))
		ends = append(ends, cumulative)
	}

	return xy, ends
}

func pointFromXY(fgbGeom *flattypes.Geometry) orb.Point {
	if fgbGeom.XyLength() < 2 {
		return orb.Point{}
	}
	return orb.Point{fgbGeom.Xy(0), fgbGeom.Xy(1)}
}

func xyToPoints(fgbGeom *flattypes.Geometry, from, to int) []orb.Point {
	if to <= from {
		return nil
	}
	pts := make([]orb.Point, 0, (to-from)/2)
	for i := from; i+1 < to; i += 2 {
		pts = append(pts, orb.Point{fgbGeom.Xy(i), fgbGeom.Xy(i + 1)})
	}
	return pts
}

func lineStringFromXY(fgbGeom *flattypes.Geometry) orb.LineString {
	return orb.LineString(xyToPoints(fgbGeom, 0, fgbGeom.XyLength()))
}

// polygonFromXYEnds splits the coordinates into rings at the ends offsets,
// which must not decrease.
func polygonFromXYEnds(fgbGeom *flattypes.Geometry) (orb.Polygon, error) {
	xyLen := fgbGeom.XyLength()
	endsLen := fgbGeom.EndsLength()

	if xyLen < 2 {
		return orb.Polygon{}, nil
	}

	// Without an ends array all points form a single ring.
	if endsLen == 0 {
		return orb.Polygon{orb.Ring(xyToPoints(fgbGeom, 0, xyLen))}, nil
	}

	poly := make(orb.Polygon, 0, endsLen)
	start := 0
	for i := 0; i < endsLen; i++ {
		end := int(fgbGeom.Ends(i)) * 2
		if end < start {
			return nil, errors.Wrapf(ErrMalformedStream, "polygon ring %d ends at point %d before point %d", i, end/2, start/2)
		}
		if end > xyLen {
			end = xyLen
		}
		poly = append(poly, orb.Ring(xyToPoints(fgbGeom, start, end)))
		start = end
	}
	return poly, nil
}

// shapeFromGeometry rebuilds a shape of the given kind from its orb geometry.
func shapeFromGeometry(kind string, geom orb.Geometry, datum *Datum, altitude float64) (Shape, error) {
	switch kind {
	case KindPoint2D, KindPoint3D:
		p, ok := geom.(orb.Point)
		if !ok {
			return nil, ErrUnsupportedType
		}
		if kind == KindPoint3D {
			return NewPoint3D(p[1], p[0], altitude, datum), nil
		}
		return NewPoint2D(p[1], p[0], datum), nil

	case KindPolygon:
		var ring []orb.Point
		switch g := geom.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				ring = g[0]
			}
		case orb.LineString:
			ring = g
		default:
			return nil, ErrUnsupportedType
		}
		// Drop the closing point added on export.
		if len(ring) > 1 {
			ring = ring[:len(ring)-1]
		}
		poly := NewPolygonSize(len(ring), datum)
		for _, pt := range ring {
			poly.AddPoint(pt[1], pt[0])
		}
		return poly, nil

	case KindRectangle:
		b := geom.Bound()
		return NewRectangle(b.Min[1], b.Min[0], b.Max[1], b.Max[0], datum), nil

	default:
		return nil, ErrUnsupportedType
	}
}
