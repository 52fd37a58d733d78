package orthodrome

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestPolygon_AddAndGet(t *testing.T) {
	d := NewRegistry().Default()

	p := NewPolygon(d)
	require.Equal(t, 0, p.Len())
	require.Equal(t, DefaultPolygonSize, p.Cap())

	p.AddPoint(4, 5)
	p.AddPoint2D(NewPoint2D(2, 3, d))
	p.AddPoint(12, 13)

	require.Equal(t, 3, p.Len())
	require.Equal(t, 4.0, p.Latitude(0))
	require.Equal(t, 5.0, p.Longitude(0))
	require.Equal(t, NewPoint2D(2, 3, d), p.Point(1))
	require.Equal(t, []Point2D{
		NewPoint2D(4, 5, d),
		NewPoint2D(2, 3, d),
		NewPoint2D(12, 13, d),
	}, p.Points())

	p.SetPoint(1, -1, -2)
	require.Equal(t, NewPoint2D(-1, -2, d), p.Point(1))

	p.SetPoint2D(2, NewPoint2D(7, 8, d))
	require.Equal(t, NewPoint2D(7, 8, d), p.Point(2))

	require.Equal(t, "(3 pts) (4,5)(-1,-2)(7,8)", p.String())
}

func TestPolygon_GrowDoubles(t *testing.T) {
	p := NewPolygonSize(2, nil)
	require.Equal(t, 2, p.Cap())

	caps := []int{2, 2, 4, 4, 8, 8, 8, 8, 16}
	for i, want := range caps {
		p.AddPoint(float64(i), float64(-i))
		require.Equal(t, want, p.Cap(), "after %d points", i+1)
	}
	require.Equal(t, len(caps), p.Len())

	for i := 0; i < p.Len(); i++ {
		require.Equal(t, float64(i), p.Latitude(i))
		require.Equal(t, float64(-i), p.Longitude(i))
	}
}

func TestPolygon_SizeAtLeastOne(t *testing.T) {
	p := NewPolygonSize(0, nil)
	require.Equal(t, 1, p.Cap())
	p.AddPoint(1, 1)
	p.AddPoint(2, 2)
	require.Equal(t, 2, p.Len())
	require.Equal(t, 2, p.Cap())
}

func TestPolygon_Equal(t *testing.T) {
	r := NewRegistry()
	wgs := r.Default()
	nad, _ := r.Lookup(NAD27)

	build := func(d *Datum, pts ...[2]float64) *Polygon {
		p := NewPolygonSize(1, d)
		for _, pt := range pts {
			p.AddPoint(pt[0], pt[1])
		}
		return p
	}

	a := build(wgs, [2]float64{1, 2}, [2]float64{3, 4})
	require.True(t, a.Equal(build(wgs, [2]float64{1, 2}, [2]float64{3, 4})))
	require.False(t, a.Equal(build(nad, [2]float64{1, 2}, [2]float64{3, 4})))
	require.False(t, a.Equal(build(wgs, [2]float64{3, 4}, [2]float64{1, 2})))
	require.False(t, a.Equal(build(wgs, [2]float64{1, 2})))
	require.False(t, a.Equal(nil))

	var nilPoly *Polygon
	require.True(t, nilPoly.Equal(nil))
}

func TestPolygon_Orb(t *testing.T) {
	p := NewPolygon(nil)
	require.Equal(t, orb.Polygon{}, p.Orb())

	p.AddPoint(0, 0)
	p.AddPoint(0, 10)
	p.AddPoint(10, 10)

	require.Equal(t, orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 0}}}, p.Orb())
	require.Equal(t, orb.LineString{{0, 0}, {10, 0}, {10, 10}}, p.LineString())

	// The ring is a copy.
	ring := p.Orb()[0]
	ring[0] = orb.Point{99, 99}
	require.Equal(t, 0.0, p.Latitude(0))
}

func TestPolygon_Bounds(t *testing.T) {
	d := NewRegistry().Default()

	p := NewPolygon(d)
	p.AddPoint(4, 5)
	p.AddPoint(2, 3)
	p.AddPoint(12, 13)

	b := p.Bounds()
	require.Equal(t, NewRectangle(2, 3, 12, 13, d), b)

	require.Equal(t, NewRectangle(0, 0, 0, 0, d), NewPolygon(d).Bounds())
}
