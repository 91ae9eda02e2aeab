package wfe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdscreen/wfe"
)

// TestNollIndices checks the j -> (n, m) conversion against the published
// Noll ordering.
func TestNollIndices(t *testing.T) {
	expected := []struct{ j, n, m int }{
		{1, 0, 0},
		{2, 1, 1},
		{3, 1, -1},
		{4, 2, 0},
		{5, 2, -2},
		{6, 2, 2},
		{7, 3, -1},
		{8, 3, 1},
		{9, 3, -3},
		{10, 3, 3},
		{11, 4, 0},
		{12, 4, 2},
		{13, 4, -2},
		{14, 4, 4},
		{15, 4, -4},
	}
	for _, e := range expected {
		n, m := wfe.NollIndices(e.j)
		assert.Equal(t, e.n, n, "j=%d", e.j)
		assert.Equal(t, e.m, m, "j=%d", e.j)
	}
}

// TestZernikeKnownValues spot-checks low-order terms against their
// closed forms: piston is 1 everywhere inside, defocus is
// sqrt(3)*(2 rho^2 - 1).
func TestZernikeKnownValues(t *testing.T) {
	rho := [][]float64{{0.0, 0.5, 1.0, 1.5}}
	theta := [][]float64{{0.0, 0.0, 0.0, 0.0}}

	piston := wfe.Zernike(1, rho, theta, 0.0)
	assert.InDelta(t, 1.0, piston[0][0], 1e-12)
	assert.InDelta(t, 1.0, piston[0][1], 1e-12)
	assert.InDelta(t, 1.0, piston[0][2], 1e-12)
	assert.Equal(t, 0.0, piston[0][3], "outside the unit circle")

	defocus := wfe.Zernike(4, rho, theta, 0.0)
	for i, r := range []float64{0.0, 0.5, 1.0} {
		want := math.Sqrt(3) * (2*r*r - 1)
		assert.InDelta(t, want, defocus[0][i], 1e-12, "rho=%g", r)
	}
}

// TestZernikeWFESingleTerm: with a single non-zero coefficient, the OPD
// equals that basis term scaled by the coefficient, zeroed outside the
// aperture.
func TestZernikeWFESingleTerm(t *testing.T) {
	const k = 2e-6
	grid := wfe.SamplingGrid{Npix: 32, PixelScale: 2.2 / 32}

	source, err := wfe.NewZernikeWFE([]float64{0, 0, 0, k}, 1.0, false)
	require.NoError(t, err)

	opd, err := source.OPD(grid)
	require.NoError(t, err)

	y, x := grid.Coordinates()
	rho, theta := wfe.RhoTheta(y, x, 1.0)
	term := wfe.Zernike(4, rho, theta, 0.0)
	aperture := grid.CircularAperture(1.0)

	for i := 0; i < grid.Npix; i++ {
		for j := 0; j < grid.Npix; j++ {
			want := k * term[i][j]
			if aperture[i][j] == 0 {
				want = 0
			}
			assert.Equal(t, want, opd[i][j], "at (%d,%d)", i, j)
		}
	}
}

// TestZernikeWFEZeroCoefficients: trailing zero coefficients contribute
// nothing, so the result is identical to the shorter coefficient vector.
func TestZernikeWFEZeroCoefficients(t *testing.T) {
	grid := wfe.SamplingGrid{Npix: 16, PixelScale: 2.0 / 16}

	short, err := wfe.NewZernikeWFE([]float64{5e-7}, 1.0, false)
	require.NoError(t, err)
	long, err := wfe.NewZernikeWFE([]float64{5e-7, 0, 0, 0}, 1.0, false)
	require.NoError(t, err)

	a, err := short.OPD(grid)
	require.NoError(t, err)
	b, err := long.OPD(grid)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestZernikeWFETransmission(t *testing.T) {
	grid := wfe.SamplingGrid{Npix: 16, PixelScale: 2.0 / 16}

	plain, err := wfe.NewZernikeWFE([]float64{1e-7}, 0.8, false)
	require.NoError(t, err)
	for _, row := range plain.Transmission(grid) {
		for _, v := range row {
			assert.Equal(t, 1.0, v)
		}
	}

	stop, err := wfe.NewZernikeWFE([]float64{1e-7}, 0.8, true)
	require.NoError(t, err)
	assert.Equal(t, grid.CircularAperture(0.8), stop.Transmission(grid))
}

func TestZernikeWFEBadConfig(t *testing.T) {
	_, err := wfe.NewZernikeWFE(nil, 1.0, false)
	assert.ErrorIs(t, err, wfe.ErrConfig)

	_, err = wfe.NewZernikeWFE([]float64{1e-7}, 0, false)
	assert.ErrorIs(t, err, wfe.ErrConfig)

	_, err = wfe.NewZernikeWFE([]float64{1e-7}, -1.0, false)
	assert.ErrorIs(t, err, wfe.ErrConfig)
}

// TestParameterizedWFE: driving ParameterizedWFE with the Zernike basis
// must agree with ZernikeWFE inside the aperture.
func TestParameterizedWFE(t *testing.T) {
	grid := wfe.SamplingGrid{Npix: 32, PixelScale: 2.2 / 32}
	coefficients := []float64{0, 3e-7, 0, 1e-7}

	param, err := wfe.NewParameterizedWFE(coefficients, 1.0, wfe.ZernikeBasis)
	require.NoError(t, err)
	zern, err := wfe.NewZernikeWFE(coefficients, 1.0, false)
	require.NoError(t, err)

	a, err := param.OPD(grid)
	require.NoError(t, err)
	b, err := zern.OPD(grid)
	require.NoError(t, err)

	aperture := grid.CircularAperture(1.0)
	for i := range a {
		for j := range a[i] {
			if aperture[i][j] != 0 {
				assert.InDelta(t, a[i][j], b[i][j], 1e-18)
			}
		}
	}
}

// TestParameterizedWFETermCountMismatch: a factory producing the wrong
// number of terms is a configuration error.
func TestParameterizedWFETermCountMismatch(t *testing.T) {
	badFactory := func(nterms int, rho, theta [][]float64, outside float64) [][][]float64 {
		return wfe.ZernikeBasis(nterms-1, rho, theta, outside)
	}

	source, err := wfe.NewParameterizedWFE([]float64{1e-7, 2e-7}, 1.0, badFactory)
	require.NoError(t, err)

	grid := wfe.SamplingGrid{Npix: 8, PixelScale: 0.25}
	_, err = source.OPD(grid)
	require.Error(t, err)
	assert.ErrorIs(t, err, wfe.ErrConfig)
}
