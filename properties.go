package orthodrome

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// shapeColumns is the fixed property schema of exported shapes, in column
// index order.
var shapeColumns = []struct {
	name string
	typ  flattypes.ColumnType
}{
	{PropKind, flattypes.ColumnTypeString},
	{PropDatum, flattypes.ColumnTypeString},
	{PropAltitude, flattypes.ColumnTypeDouble},
}

// buildColumns creates the FlatGeobuf columns of the shape schema.
func buildColumns(builder *flatbuffers.Builder) []*writer.Column {
	columns := make([]*writer.Column, 0, len(shapeColumns))
	for _, sc := range shapeColumns {
		col := writer.NewColumn(builder)
		col.SetName(sc.name)
		col.SetTitle(sc.name) // Title matches name for JS library compatibility
		col.SetType(sc.typ)
		col.SetNullable(true)
		columns = append(columns, col)
	}
	return columns
}

// encodeProperties encodes the schema properties of a feature to FlatGeobuf
// binary form: a little-endian uint16 column index followed by the value, for
// each present property. Strings are prefixed with a uint32 byte length.
func encodeProperties(props geojson.Properties) []byte {
	if len(props) == 0 {
		return nil
	}

	var buf bytes.Buffer
	var scratch [8]byte

	for i, sc := range shapeColumns {
		value, ok := props[sc.name]
		if !ok || value == nil {
			continue
		}

		switch sc.typ {
		case flattypes.ColumnTypeString:
			s := toString(value)
			binary.LittleEndian.PutUint16(scratch[:2], uint16(i))
			buf.Write(scratch[:2])
			binary.LittleEndian.PutUint32(scratch[:4], uint32(len(s)))
			buf.Write(scratch[:4])
			buf.WriteString(s)

		case flattypes.ColumnTypeDouble:
			f, ok := toFloat64(value)
			if !ok {
				continue
			}
			binary.LittleEndian.PutUint16(scratch[:2], uint16(i))
			buf.Write(scratch[:2])
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(f))
			buf.Write(scratch[:])
		}
	}

	return buf.Bytes()
}

// decodeProperties decodes FlatGeobuf binary properties using the column
// schema of header. Only string and double columns are understood.
func decodeProperties(data []byte, header *flattypes.Header) (geojson.Properties, error) {
	props := make(geojson.Properties)
	if len(data) == 0 || header == nil {
		return props, nil
	}

	offset := 0
	for offset < len(data) {
		if offset+2 > len(data) {
			return nil, errors.Wrap(ErrMalformedStream, "truncated property column index")
		}
		colIndex := int(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2

		var col flattypes.Column
		if colIndex >= header.ColumnsLength() || !header.Columns(&col, colIndex) {
			return nil, errors.Wrapf(ErrMalformedStream, "property column %d out of range", colIndex)
		}
		name := string(col.Name())

		switch col.Type() {
		case flattypes.ColumnTypeString, flattypes.ColumnTypeJson:
			if offset+4 > len(data) {
				return nil, errors.Wrapf(ErrMalformedStream, "truncated length of %q", name)
			}
			n := int(binary.LittleEndian.Uint32(data[offset:]))
			offset += 4
			if n < 0 || offset+n > len(data) {
				return nil, errors.Wrapf(ErrMalformedStream, "truncated value of %q", name)
			}
			props[name] = string(data[offset : offset+n])
			offset += n

		case flattypes.ColumnTypeDouble:
			if offset+8 > len(data) {
				return nil, errors.Wrapf(ErrMalformedStream, "truncated value of %q", name)
			}
			props[name] = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
			offset += 8

		default:
			return nil, errors.Wrapf(ErrUnsupportedType, "column %q of type %s",
				name, flattypes.EnumNamesColumnType[col.Type()])
		}
	}

	return props, nil
}

// toFloat64 converts numeric property values to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toString converts a property value to its string form.
func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
