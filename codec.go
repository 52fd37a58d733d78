package orthodrome

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Binary layouts, all big-endian with IEEE-754 doubles. A datum identifier is
// written as an unsigned 16-bit byte length followed by its UTF-8 bytes.
//
//	Point2D:   latitude, longitude, datum
//	Point3D:   latitude, longitude, datum, altitude
//	Polygon:   count (int32), count × (latitude, longitude), datum
//	Rectangle: minLatitude, maxLatitude, minLongitude, maxLongitude, datum
const maxDatumIDLength = math.MaxUint16

// polygonPreallocLimit caps the capacity reserved from a declared point count
// before the points have actually been read.
const polygonPreallocLimit = 1024

// Encoder writes values to a stream in the binary layout.
type Encoder struct {
	w   io.Writer
	buf [8]byte
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WritePoint2D writes p.
func (e *Encoder) WritePoint2D(p Point2D) error {
	if err := checkDatum(p.datum); err != nil {
		return err
	}
	if err := e.writeFloat(p.latitude); err != nil {
		return err
	}
	if err := e.writeFloat(p.longitude); err != nil {
		return err
	}
	return e.writeDatum(p.datum)
}

// WritePoint3D writes p.
func (e *Encoder) WritePoint3D(p Point3D) error {
	if err := e.WritePoint2D(p.Point2D); err != nil {
		return err
	}
	return e.writeFloat(p.altitude)
}

// WritePolygon writes p.
func (e *Encoder) WritePolygon(p *Polygon) error {
	if err := checkDatum(p.datum); err != nil {
		return err
	}
	if len(p.points) > math.MaxInt32 {
		return errors.Errorf("orthodrome: polygon has too many points (%d)", len(p.points))
	}

	binary.BigEndian.PutUint32(e.buf[:4], uint32(int32(len(p.points))))
	if err := e.write(e.buf[:4]); err != nil {
		return err
	}
	for _, pt := range p.points {
		if err := e.writeFloat(pt[1]); err != nil {
			return err
		}
		if err := e.writeFloat(pt[0]); err != nil {
			return err
		}
	}
	return e.writeDatum(p.datum)
}

// WriteRectangle writes r.
func (e *Encoder) WriteRectangle(r Rectangle) error {
	if err := checkDatum(r.datum); err != nil {
		return err
	}
	for _, v := range [...]float64{r.minLatitude, r.maxLatitude, r.minLongitude, r.maxLongitude} {
		if err := e.writeFloat(v); err != nil {
			return err
		}
	}
	return e.writeDatum(r.datum)
}

func (e *Encoder) writeFloat(v float64) error {
	binary.BigEndian.PutUint64(e.buf[:], math.Float64bits(v))
	return e.write(e.buf[:])
}

// checkDatum reports whether d can be written, before any field of its value is.
func checkDatum(d *Datum) error {
	if d == nil {
		return ErrNilDatum
	}
	if len(d.id) > maxDatumIDLength {
		return errors.Wrapf(ErrDatumIDTooLong, "%d bytes", len(d.id))
	}
	return nil
}

func (e *Encoder) writeDatum(d *Datum) error {
	if err := checkDatum(d); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(e.buf[:2], uint16(len(d.id)))
	if err := e.write(e.buf[:2]); err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, d.id); err != nil {
		return errors.Wrap(err, "write datum")
	}
	return nil
}

func (e *Encoder) write(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return errors.Wrap(err, "orthodrome: write")
	}
	return nil
}

// Decoder reads values written by an Encoder, resolving datum identifiers
// through a registry.
type Decoder struct {
	r        io.Reader
	registry *Registry
	buf      [8]byte
}

// NewDecoder returns a decoder reading from r. Datum identifiers are
// resolved through registry; a nil registry resolves none of them.
func NewDecoder(r io.Reader, registry *Registry) *Decoder {
	return &Decoder{r: r, registry: registry}
}

// ReadPoint2D reads a Point2D.
func (d *Decoder) ReadPoint2D() (Point2D, error) {
	lat, err := d.readFloat("latitude")
	if err != nil {
		return Point2D{}, err
	}
	lon, err := d.readFloat("longitude")
	if err != nil {
		return Point2D{}, err
	}
	datum, err := d.readDatum()
	if err != nil {
		return Point2D{}, err
	}
	return NewPoint2D(lat, lon, datum), nil
}

// ReadPoint3D reads a Point3D.
func (d *Decoder) ReadPoint3D() (Point3D, error) {
	p, err := d.ReadPoint2D()
	if err != nil {
		return Point3D{}, err
	}
	alt, err := d.readFloat("altitude")
	if err != nil {
		return Point3D{}, err
	}
	return Point3D{Point2D: p, altitude: alt}, nil
}

// ReadPolygon reads a Polygon.
func (d *Decoder) ReadPolygon() (*Polygon, error) {
	if err := d.readFull(d.buf[:4], "point count"); err != nil {
		return nil, err
	}
	n := int32(binary.BigEndian.Uint32(d.buf[:4]))
	if n < 0 {
		return nil, errors.Wrapf(ErrMalformedStream, "negative point count %d", n)
	}

	poly := NewPolygonSize(min(int(n), polygonPreallocLimit), nil)
	for i := int32(0); i < n; i++ {
		lat, err := d.readFloat("polygon latitude")
		if err != nil {
			return nil, errors.Wrapf(err, "point %d of %d", i, n)
		}
		lon, err := d.readFloat("polygon longitude")
		if err != nil {
			return nil, errors.Wrapf(err, "point %d of %d", i, n)
		}
		poly.AddPoint(lat, lon)
	}

	datum, err := d.readDatum()
	if err != nil {
		return nil, err
	}
	poly.datum = datum
	return poly, nil
}

// ReadRectangle reads a Rectangle.
func (d *Decoder) ReadRectangle() (Rectangle, error) {
	var v [4]float64
	for i, field := range [...]string{"min latitude", "max latitude", "min longitude", "max longitude"} {
		f, err := d.readFloat(field)
		if err != nil {
			return Rectangle{}, err
		}
		v[i] = f
	}
	datum, err := d.readDatum()
	if err != nil {
		return Rectangle{}, err
	}
	// Bounds are taken as written; the writer already ordered them.
	return Rectangle{
		datum:        datum,
		minLatitude:  v[0],
		maxLatitude:  v[1],
		minLongitude: v[2],
		maxLongitude: v[3],
	}, nil
}

func (d *Decoder) readFloat(field string) (float64, error) {
	if err := d.readFull(d.buf[:], field); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(d.buf[:])), nil
}

func (d *Decoder) readDatum() (*Datum, error) {
	if err := d.readFull(d.buf[:2], "datum length"); err != nil {
		return nil, err
	}
	id := make([]byte, binary.BigEndian.Uint16(d.buf[:2]))
	if err := d.readFull(id, "datum"); err != nil {
		return nil, err
	}
	if !utf8.Valid(id) {
		return nil, errors.Wrap(ErrMalformedStream, "datum identifier is not valid UTF-8")
	}
	return d.registry.Resolve(string(id))
}

func (d *Decoder) readFull(b []byte, field string) error {
	_, err := io.ReadFull(d.r, b)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return errors.Wrapf(ErrMalformedStream, "read %s: %v", field, err)
	default:
		return errors.Wrapf(err, "orthodrome: read %s", field)
	}
}
