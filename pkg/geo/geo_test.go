package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	// Boston to New York is roughly 190 miles
	d := HaversineMiles(42.3601, -71.0589, 40.7128, -74.0060)
	assert.InDelta(t, 190, d, 5)

	assert.Zero(t, HaversineMiles(10, 10, 10, 10))
}

func TestValidCoords(t *testing.T) {
	assert.True(t, ValidCoords(0, 0))
	assert.True(t, ValidCoords(-90, 180))
	assert.False(t, ValidCoords(91, 0))
	assert.False(t, ValidCoords(0, -181))
}
