package orthodrome

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMercator_Transform(t *testing.T) {
	m := DefaultMercator()
	require.Equal(t, 1000.0, m.Factor())

	x := []float64{0, 13, -170}
	y := []float64{0, 12, 45}
	require.NoError(t, m.Transform(x, y))

	require.InDelta(t, 0, x[0], 1e-9)
	require.InDelta(t, 0, y[0], 1e-9)
	require.InDelta(t, 13000, x[1], 1e-9)
	require.InDelta(t, 1000*math.Log(math.Tan(math.Pi/4+radians(12)/2)), y[1], 1e-9)
	require.InDelta(t, -170000, x[2], 1e-9)
	require.InDelta(t, 1000*math.Log(math.Tan(math.Pi/4+radians(45)/2)), y[2], 1e-9)
}

func TestMercator_Symmetric(t *testing.T) {
	m := NewMercator(1)

	for _, lat := range []float64{1, 30, 60, 85} {
		north := m.Project(orb.Point{0, lat})
		south := m.Project(orb.Point{0, -lat})
		require.InDelta(t, -north[1], south[1], 1e-9, "latitude %v", lat)
	}
}

func TestMercator_ClampsPoles(t *testing.T) {
	m := DefaultMercator()

	north := m.Project(orb.Point{0, 90})
	require.False(t, math.IsInf(north[1], 0))
	require.InDelta(t, north[1], m.Project(orb.Point{0, 89})[1], 1e-9)
	require.Greater(t, north[1], m.Project(orb.Point{0, 87})[1])

	south := m.Project(orb.Point{0, -90})
	require.False(t, math.IsInf(south[1], 0))
	require.InDelta(t, -north[1], south[1], 1e-6)
}

func TestMercator_LengthMismatch(t *testing.T) {
	err := DefaultMercator().Transform([]float64{1, 2}, []float64{1})
	require.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestMercator_ProjectShape(t *testing.T) {
	reg := NewRegistry()
	m := DefaultMercator()

	poly := reg.Polygon()
	poly.AddPoint(0, 0)
	poly.AddPoint(0, 10)
	poly.AddPoint(10, 10)

	g := m.ProjectShape(poly)
	projected, ok := g.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, projected, 1)
	require.Len(t, projected[0], 4)
	require.Equal(t, m.Project(orb.Point{10, 10}), projected[0][2])

	// The source polygon is untouched.
	require.Equal(t, 10.0, poly.Longitude(1))

	pt := m.ProjectShape(reg.Point2D(0, 1))
	require.Equal(t, orb.Point{1000, m.Project(orb.Point{1, 0})[1]}, pt)

	b, ok := m.ProjectShape(reg.Rectangle(-10, -10, 10, 10)).(orb.Bound)
	require.True(t, ok)
	require.InDelta(t, -10000, b.Min[0], 1e-9)
	require.InDelta(t, 10000, b.Max[0], 1e-9)
}
