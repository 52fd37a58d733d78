package orthodrome

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Well-known datum identifiers.
const (
	WGS84 = "WGS84"
	NAD27 = "NAD27"
)

// Datum is a named geodetic reference frame. It is an opaque tag: no
// transformation model is attached to it. Datums are owned by a Registry and
// compared by identity.
type Datum struct {
	id string
}

// ID returns the identifier of the datum.
func (d *Datum) ID() string {
	return d.id
}

// EPSG returns the EPSG code of a well-known datum, or 0.
func (d *Datum) EPSG() int {
	switch d.id {
	case WGS84:
		return 4326
	case NAD27:
		return 4267
	default:
		return 0
	}
}

func (d *Datum) String() string {
	return d.id
}

// Registry maps datum identifiers to datums.
//
// A Registry is safe for concurrent use. Datums are never removed once
// registered, so a *Datum handed out by a registry stays valid for the
// lifetime of the registry.
type Registry struct {
	mu       sync.RWMutex
	datums   map[string]*Datum
	fallback *Datum
}

// NewRegistry returns a registry with the NAD27 datum registered. The WGS84
// default datum is created on first use, through Default or a lookup.
func NewRegistry() *Registry {
	r := &Registry{datums: make(map[string]*Datum)}
	r.datums[NAD27] = &Datum{id: NAD27}
	return r
}

// Lookup returns the datum registered under id. Looking up WGS84 creates the
// default datum if needed. A nil registry holds no datums.
func (r *Registry) Lookup(id string) (*Datum, bool) {
	if r == nil {
		return nil, false
	}
	if id == WGS84 {
		return r.Default(), true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.datums[id]
	return d, ok
}

// Resolve is Lookup returning ErrUnknownDatum for an unregistered id.
func (r *Registry) Resolve(id string) (*Datum, error) {
	d, ok := r.Lookup(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDatum, "datum %q", id)
	}
	return d, nil
}

// Default returns the WGS84 datum, creating and registering it on first use.
// Concurrent first calls create a single datum.
func (r *Registry) Default() *Datum {
	r.mu.RLock()
	d := r.fallback
	r.mu.RUnlock()
	if d != nil {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallback == nil {
		r.fallback = &Datum{id: WGS84}
		r.datums[WGS84] = r.fallback
	}
	return r.fallback
}

// Register creates and registers a datum named id. WGS84 is built in and
// cannot be registered.
func (r *Registry) Register(id string) (*Datum, error) {
	if id == "" {
		return nil, ErrEmptyDatumID
	}
	if id == WGS84 {
		return nil, errors.Wrapf(ErrDuplicateDatum, "datum %q", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.datums[id]; exists {
		return nil, errors.Wrapf(ErrDuplicateDatum, "datum %q", id)
	}
	d := &Datum{id: id}
	r.datums[id] = d
	return d, nil
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.datums))
	for id := range r.datums {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Point2D returns a point tagged with the default datum.
func (r *Registry) Point2D(latitude, longitude float64) Point2D {
	return NewPoint2D(latitude, longitude, r.Default())
}

// Point3D returns a point tagged with the default datum.
func (r *Registry) Point3D(latitude, longitude, altitude float64) Point3D {
	return NewPoint3D(latitude, longitude, altitude, r.Default())
}

// Polygon returns an empty polygon tagged with the default datum.
func (r *Registry) Polygon() *Polygon {
	return NewPolygon(r.Default())
}

// Rectangle returns a rectangle tagged with the default datum.
func (r *Registry) Rectangle(lat1, long1, lat2, long2 float64) Rectangle {
	return NewRectangle(lat1, long1, lat2, long2, r.Default())
}
