package orthodrome

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestNewRectangle(t *testing.T) {
	d := NewRegistry().Default()

	tests := []struct {
		name                           string
		lat1, long1, lat2, long2       float64
		minLat, minLon, maxLat, maxLon float64
	}{
		{"ordered", 2, 3, 4, 5, 2, 3, 4, 5},
		{"reversed", 4, 5, 2, 3, 2, 3, 4, 5},
		{"mixed corners", 2, 5, 4, 3, 2, 3, 4, 5},
		{"degenerate", 1, 1, 1, 1, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRectangle(tt.lat1, tt.long1, tt.lat2, tt.long2, d)
			require.Equal(t, tt.minLat, r.MinLatitude())
			require.Equal(t, tt.minLon, r.MinLongitude())
			require.Equal(t, tt.maxLat, r.MaxLatitude())
			require.Equal(t, tt.maxLon, r.MaxLongitude())
			require.Same(t, d, r.Datum())
		})
	}
}

func TestNewRectangleFromPoints(t *testing.T) {
	d := NewRegistry().Default()

	r := NewRectangleFromPoints(NewPoint2D(4, 3, d), NewPoint2D(2, 5, d), d)
	require.Equal(t, NewRectangle(2, 3, 4, 5, d), r)
	require.True(t, r.Equal(NewRectangle(4, 5, 2, 3, d)))
	require.Equal(t, "(2,3) -> (4,5)", r.String())
}

func TestRectangle_Bound(t *testing.T) {
	r := NewRectangle(2, 3, 4, 5, nil)

	b := r.Bound()
	require.Equal(t, orb.Point{3, 2}, b.Min)
	require.Equal(t, orb.Point{5, 4}, b.Max)
	require.Equal(t, b, r.Geometry())
}
