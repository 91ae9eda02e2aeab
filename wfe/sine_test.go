package wfe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdscreen/wfe"
)

func TestSineWaveWFE(t *testing.T) {
	const (
		freq      = 10.0  // cycles per meter
		amplitude = 50e-9 // meters
		phase     = 0.25  // cycles
	)
	grid := wfe.SamplingGrid{Npix: 16, PixelScale: 0.01}

	source, err := wfe.NewSineWaveWFE(freq, amplitude, phase)
	require.NoError(t, err)

	opd, err := source.OPD(grid)
	require.NoError(t, err)
	require.Len(t, opd, grid.Npix)

	_, x := grid.Coordinates()
	for i := 0; i < grid.Npix; i++ {
		for j := 0; j < grid.Npix; j++ {
			want := amplitude * math.Sin(2*math.Pi*(x[i][j]*freq+phase))
			assert.Equal(t, want, opd[i][j], "at (%d,%d)", i, j)
		}
	}

	// The ripple runs along X only, so every row is identical.
	for i := 1; i < grid.Npix; i++ {
		assert.Equal(t, opd[0], opd[i], "row %d", i)
	}
}

func TestSineWaveWFEAmplitudeBound(t *testing.T) {
	const amplitude = 1e-7
	grid := wfe.SamplingGrid{Npix: 64, PixelScale: 0.05}

	source, err := wfe.NewSineWaveWFE(3.0, amplitude, 0.0)
	require.NoError(t, err)
	opd, err := source.OPD(grid)
	require.NoError(t, err)

	for _, row := range opd {
		for _, v := range row {
			assert.LessOrEqual(t, math.Abs(v), amplitude)
		}
	}
}

func TestSineWaveWFEBadFrequency(t *testing.T) {
	_, err := wfe.NewSineWaveWFE(0, 1e-7, 0)
	assert.ErrorIs(t, err, wfe.ErrConfig)

	_, err = wfe.NewSineWaveWFE(-5, 1e-7, 0)
	assert.ErrorIs(t, err, wfe.ErrConfig)
}
