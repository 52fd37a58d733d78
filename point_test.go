package orthodrome

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestPoint2D(t *testing.T) {
	r := NewRegistry()
	wgs := r.Default()
	nad, _ := r.Lookup(NAD27)

	p := NewPoint2D(12, 13, wgs)
	require.Equal(t, 12.0, p.Latitude())
	require.Equal(t, 13.0, p.Longitude())
	require.Same(t, wgs, p.Datum())
	require.Equal(t, "(12,13)", p.String())

	require.True(t, p.Equal(NewPoint2D(12, 13, wgs)))
	require.True(t, p == NewPoint2D(12, 13, wgs))
	require.False(t, p.Equal(NewPoint2D(12, 13, nad)), "datum differs")
	require.False(t, p.Equal(NewPoint2D(12, 13.000001, wgs)))
}

func TestPoint2D_Orb(t *testing.T) {
	p := NewPoint2D(12, 13, nil)
	require.Equal(t, orb.Point{13, 12}, p.Orb())
	require.Equal(t, orb.Point{13, 12}, p.Geometry())
}

func TestPoint3D(t *testing.T) {
	r := NewRegistry()
	wgs := r.Default()

	p := NewPoint3D(12, 13, 150, wgs)
	require.Equal(t, 12.0, p.Latitude())
	require.Equal(t, 13.0, p.Longitude())
	require.Equal(t, 150.0, p.Altitude())
	require.Equal(t, "(12,13,150)", p.String())

	require.True(t, p.Equal(NewPoint3D(12, 13, 150, wgs)))
	require.False(t, p.Equal(NewPoint3D(12, 13, 151, wgs)))

	// A Point3D can be used wherever a Point2D is expected.
	require.Equal(t, p.Point2D, OrthodromicExtension(p.Point2D, 0, 90))
}
