package orthodrome

import (
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
)

// Write writes shapes to FlatGeobuf format. Each shape becomes a feature whose
// properties record its kind, datum and altitude, so that ReadShapes can
// rebuild it.
func Write(w io.Writer, shapes []Shape, opts *Options) error {
	if len(shapes) == 0 {
		return ErrNoShapes
	}

	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.CRS == nil {
		o := *opts
		o.CRS = CRSForDatum(shapes[0].Datum())
		opts = &o
	}

	return WriteFeatures(w, FeatureCollection(shapes...), opts)
}

// WriteFeatures writes a FeatureCollection, typically built with
// FeatureCollection, to FlatGeobuf format. Only the kind, datum and altitude
// properties are kept.
func WriteFeatures(w io.Writer, fc *geojson.FeatureCollection, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	if fc == nil || len(fc.Features) == 0 {
		return ErrNoShapes
	}

	// Mixed geometries are written with the Unknown type.
	geomType := flattypes.GeometryTypeUnknown
	if fc.Features[0].Geometry != nil {
		geomType = orbToFGBGeometryType(fc.Features[0].Geometry)
		for _, f := range fc.Features[1:] {
			if f.Geometry != nil && orbToFGBGeometryType(f.Geometry) != geomType {
				geomType = flattypes.GeometryTypeUnknown
				break
			}
		}
	}

	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(geomType)
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}
	header.SetColumns(buildColumns(builder))

	if opts.CRS != nil {
		crs := writer.NewCrs(builder)
		crs.SetOrg("EPSG")
		if opts.CRS.Code > 0 {
			crs.SetCode(int32(opts.CRS.Code))
		}
		if opts.CRS.Name != "" {
			crs.SetName(opts.CRS.Name)
		}
		if opts.CRS.Description != "" {
			crs.SetDescription(opts.CRS.Description)
		}
		header.SetCrs(crs)
	}

	gen := &featureGenerator{features: fc.Features}
	fgbWriter := writer.NewWriter(header, opts.IncludeIndex, gen, nil)

	_, err := fgbWriter.Write(w)
	return err
}

// featureGenerator feeds GeoJSON features to the FlatGeobuf writer.
type featureGenerator struct {
	features []*geojson.Feature
	index    int
}

func (g *featureGenerator) Generate() *writer.Feature {
	for g.index < len(g.features) {
		f := g.features[g.index]
		g.index++

		// Skip nil features and unsupported geometries.
		if f == nil || f.Geometry == nil {
			continue
		}
		builder := flatbuffers.NewBuilder(1024)
		fgbGeom := geometryToFGB(f.Geometry, builder)
		if fgbGeom == nil {
			continue
		}

		feature := writer.NewFeature(builder)
		feature.SetGeometry(fgbGeom)
		if props := encodeProperties(f.Properties); len(props) > 0 {
			feature.SetProperties(props)
		}
		return feature
	}
	return nil
}
