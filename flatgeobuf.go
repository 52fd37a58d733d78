package orthodrome

import "github.com/paulmach/orb"

// CRS represents a coordinate reference system written to FlatGeobuf headers.
type CRS struct {
	Code        int    // EPSG code (e.g., 4326 for WGS84)
	Name        string // CRS name
	Description string // CRS description
}

// CRSForDatum returns the CRS of a well-known datum, or nil when the datum has
// no EPSG code.
func CRSForDatum(d *Datum) *CRS {
	if d == nil || d.EPSG() == 0 {
		return nil
	}
	return &CRS{Code: d.EPSG(), Name: d.ID()}
}

// Options configures FlatGeobuf writing.
type Options struct {
	Name         string // Layer name
	Description  string // Layer description
	IncludeIndex bool   // Include spatial index (default: true)
	CRS          *CRS   // Coordinate reference system; derived from the first shape's datum when nil
}

// DefaultOptions returns default options for writing FlatGeobuf files.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
	}
}

// Header contains metadata about a FlatGeobuf file.
type Header struct {
	Name          string    // Layer name
	Description   string    // Layer description
	GeometryType  string    // Geometry type ("Point", "Polygon", "Unknown", etc.)
	FeaturesCount uint64    // Number of features in the file
	Bounds        orb.Bound // Extent of all features (X longitude, Y latitude)
	CRS           *CRS      // Coordinate reference system
	HasIndex      bool      // Whether the file has a spatial index
	Columns       []string  // Property column names
}
