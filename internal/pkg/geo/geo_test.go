package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Symmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Coordinate
	}{
		{"dar es salaam pair", Coordinate{-6.7799869, 39.2023453}, Coordinate{-6.7920000, 39.2080000}},
		{"equator pair", Coordinate{0, 0}, Coordinate{0.5, 0.5}},
		{"antimeridian pair", Coordinate{10, 179.9}, Coordinate{10, -179.9}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, Distance(c.a, c.b), Distance(c.b, c.a), 1e-9)
		})
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	p := Coordinate{-6.7799869, 39.2023453}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_KnownReferencePair(t *testing.T) {
	// Approximately 1000m apart: 0.009 degrees of latitude at the
	// equator is 1001.9m on a 6371km sphere.
	a := Coordinate{0, 0}
	b := Coordinate{0.0089932, 0}
	d := Distance(a, b)
	assert.InDelta(t, 1000, d, 1)
}

func TestDistance_PropagatesNaN(t *testing.T) {
	a := Coordinate{math.NaN(), 0}
	b := Coordinate{0, 0}
	assert.True(t, math.IsNaN(Distance(a, b)))
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{42.4, "42m"},
		{999, "999m"},
		{999.4, "999m"},
		{1000, "1.00km"},
		{1240, "1.24km"},
		{2500, "2.50km"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDistance(c.meters))
	}
}

func TestCheckGeofence(t *testing.T) {
	center := Coordinate{0, 0}

	// ~99m north of the center
	inside := Coordinate{0.00089, 0}
	within, dist := CheckGeofence(inside, center, 100)
	assert.True(t, within)
	assert.InDelta(t, 99, dist, 1)

	// ~101m north of the center
	outside := Coordinate{0.000908, 0}
	within, dist = CheckGeofence(outside, center, 100)
	assert.False(t, within)
	assert.InDelta(t, 101, dist, 1)
}

func TestCheckGeofence_BoundaryInclusive(t *testing.T) {
	center := Coordinate{0, 0}
	p := Coordinate{0.0005, 0}
	d := Distance(p, center)
	within, _ := CheckGeofence(p, center, d)
	assert.True(t, within)
}
