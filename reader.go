package orthodrome

import (
	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Reader provides read access to a FlatGeobuf file written by Write.
// Datum identifiers found in the file are resolved through a registry.
type Reader struct {
	fgb      *flatgeobuf.FlatGeoBuf
	registry *Registry
}

// NewReader creates a reader from a file path.
// The file is memory-mapped for efficient access.
func NewReader(path string, registry *Registry) (*Reader, error) {
	fgb, err := flatgeobuf.New(path)
	if err != nil {
		return nil, err
	}

	return &Reader{fgb: fgb, registry: registry}, nil
}

// NewReaderFromData creates a reader from byte data.
func NewReaderFromData(data []byte, registry *Registry) (*Reader, error) {
	fgb, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, err
	}

	return &Reader{fgb: fgb, registry: registry}, nil
}

// Header returns metadata about the FlatGeobuf file.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}

	if h.EnvelopeLength() >= 4 {
		header.Bounds = orb.Bound{
			Min: orb.Point{h.Envelope(0), h.Envelope(1)},
			Max: orb.Point{h.Envelope(2), h.Envelope(3)},
		}
	}

	var crs flattypes.Crs
	if h.Crs(&crs) != nil {
		header.CRS = &CRS{
			Code:        int(crs.Code()),
			Name:        string(crs.Name()),
			Description: string(crs.Description()),
		}
	}

	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if h.Columns(&col, i) {
			header.Columns = append(header.Columns, string(col.Name()))
		}
	}

	return header
}

// ReadShapes reads every shape of the file. The file must have a spatial
// index; the official Go implementation cannot iterate features without one.
func (r *Reader) ReadShapes() ([]Shape, error) {
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 {
		return nil, nil
	}
	if h.IndexNodeSize() == 0 || h.EnvelopeLength() < 4 {
		return nil, ErrNoIndex
	}

	return r.search(h, h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3))
}

// SearchShapes returns the shapes whose bounding boxes intersect rect, using
// the spatial index of the file.
func (r *Reader) SearchShapes(rect Rectangle) ([]Shape, error) {
	h := r.fgb.Header()
	if h.IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}

	return r.search(h, rect.minLongitude, rect.minLatitude, rect.maxLongitude, rect.maxLatitude)
}

// Close releases resources associated with the reader.
func (r *Reader) Close() error {
	// FlatGeoBuf exposes no Close; dropping the reference lets the
	// mapping be collected.
	r.fgb = nil
	return nil
}

func (r *Reader) search(h *flattypes.Header, minX, minY, maxX, maxY float64) ([]Shape, error) {
	features, err := r.fgb.Search(minX, minY, maxX, maxY)
	if err != nil {
		return nil, err
	}

	shapes := make([]Shape, 0, len(features))
	for i, f := range features {
		s, err := r.convertFeature(f, h)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		if s != nil {
			shapes = append(shapes, s)
		}
	}
	return shapes, nil
}

// convertFeature rebuilds a shape from a FlatGeobuf feature.
func (r *Reader) convertFeature(f *flattypes.Feature, h *flattypes.Header) (Shape, error) {
	if f == nil {
		return nil, nil
	}

	var geomObj flattypes.Geometry
	geom, err := geometryFromFGB(f.Geometry(&geomObj))
	if err != nil {
		return nil, err
	}
	if geom == nil {
		return nil, nil
	}

	propsBytes := make([]byte, f.PropertiesLength())
	for i := range propsBytes {
		propsBytes[i] = byte(f.Properties(i))
	}
	props, err := decodeProperties(propsBytes, h)
	if err != nil {
		return nil, err
	}

	datumID, _ := props[PropDatum].(string)
	datum, err := r.registry.Resolve(datumID)
	if err != nil {
		return nil, err
	}
	kind, _ := props[PropKind].(string)
	altitude, _ := props[PropAltitude].(float64)

	return shapeFromGeometry(kind, geom, datum, altitude)
}
