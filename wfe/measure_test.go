package wfe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"opdscreen/wfe"
)

func TestRMS(t *testing.T) {
	opd := [][]float64{
		{3, -3},
		{3, -3},
	}
	assert.Equal(t, 3.0, wfe.RMS(opd, nil))

	mask := [][]float64{
		{1, 0},
		{0, 0},
	}
	assert.Equal(t, 3.0, wfe.RMS(opd, mask))

	empty := [][]float64{
		{0, 0},
		{0, 0},
	}
	assert.Equal(t, 0.0, wfe.RMS(opd, empty), "all-zero mask admits nothing")

	opd = [][]float64{{1, 2, 2}}
	assert.InDelta(t, math.Sqrt(3), wfe.RMS(opd, nil), 1e-15)
}

func TestPeakToValley(t *testing.T) {
	opd := [][]float64{
		{1, -4},
		{7, 2},
	}
	assert.Equal(t, 11.0, wfe.PeakToValley(opd, nil))

	mask := [][]float64{
		{1, 1},
		{0, 1},
	}
	assert.Equal(t, 6.0, wfe.PeakToValley(opd, mask))

	none := [][]float64{
		{0, 0},
		{0, 0},
	}
	assert.Equal(t, 0.0, wfe.PeakToValley(opd, none))
}
