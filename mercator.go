package orthodrome

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	piDiv360 = math.Pi / 360
	piDiv4   = math.Pi / 4

	// The projected angle is kept one degree away from 0 and π/2 so that the
	// poles map to finite ordinates.
	mercatorMinAngle = 0.017453292
	mercatorMaxAngle = math.Pi/2 - 0.017453292
)

// DefaultMercatorFactor is the scale of DefaultMercator.
const DefaultMercatorFactor = 1000.0

// Mercator is a spherical Mercator projection scaled by a constant factor:
// x = factor·longitude and y = factor·ln(tan(π/4 + latitude/2)), with
// latitudes clamped one degree short of the poles.
type Mercator struct {
	factor float64
}

// NewMercator returns a projection with the given factor.
func NewMercator(factor float64) *Mercator {
	return &Mercator{factor: factor}
}

// DefaultMercator returns a projection with a factor of 1000.
func DefaultMercator() *Mercator {
	return NewMercator(DefaultMercatorFactor)
}

// Factor returns the scale factor of the projection.
func (m *Mercator) Factor() float64 {
	return m.factor
}

// Transform projects longitudes x and latitudes y (degrees) in place.
func (m *Mercator) Transform(x, y []float64) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	for i := range x {
		x[i], y[i] = m.project(x[i], y[i])
	}
	return nil
}

// Project projects an orb.Point holding a longitude and a latitude.
func (m *Mercator) Project(p orb.Point) orb.Point {
	x, y := m.project(p[0], p[1])
	return orb.Point{x, y}
}

// Projection returns the projection as an orb.Projection.
func (m *Mercator) Projection() orb.Projection {
	return m.Project
}

// ProjectShape projects the geometry of s. The input shape is left untouched.
func (m *Mercator) ProjectShape(s Shape) orb.Geometry {
	return project.Geometry(orb.Clone(s.Geometry()), m.Projection())
}

func (m *Mercator) project(lon, lat float64) (float64, float64) {
	angle := lat*piDiv360 + piDiv4
	if angle < mercatorMinAngle {
		angle = mercatorMinAngle
	} else if angle > mercatorMaxAngle {
		angle = mercatorMaxAngle
	}
	return lon * m.factor, m.factor * math.Log(math.Tan(angle))
}
