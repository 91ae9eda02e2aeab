package wfe

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// StatisticalPSDWFE generates optical polishing noise from a single
// power-law power spectral density P(rho) = rho^-index, normalized so the
// produced screen has exactly the requested RMS.
type StatisticalPSDWFE struct {
	index  float64
	rms    float64
	radius float64
	seed   *int64
}

// NewStatisticalPSDWFE builds a power-law noise source. index is the
// (negative) power-law exponent, rms the target wavefront error in meters,
// radius the pupil normalization radius in meters. A nil seed gives a
// fresh screen every evaluation.
func NewStatisticalPSDWFE(index, rms, radius float64, seed *int64) (*StatisticalPSDWFE, error) {
	if rms < 0 {
		return nil, configErrorf("target rms must not be negative, got %g", rms)
	}
	if radius <= 0 {
		return nil, configErrorf("normalization radius must be positive, got %g", radius)
	}
	return &StatisticalPSDWFE{index: index, rms: rms, radius: radius, seed: seed}, nil
}

func (s *StatisticalPSDWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	n := grid.Npix
	y, x := grid.Coordinates()
	rho, _ := RhoTheta(y, x, s.radius)

	// The pixel-centered coordinate grid never samples rho == 0 exactly,
	// so the power law stays finite everywhere.
	psd := make([][]float64, n)
	for i := 0; i < n; i++ {
		psd[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			psd[i][j] = math.Pow(rho[i][j], -s.index)
		}
	}

	rng := newRand(s.seed)
	draw := NormalField(rng, n)

	// Forward transform of the random screen gives a random PSD, which is
	// shaped by sqrt of the power-law PSD and transformed back.
	spectrum := fftshift2(toComplex2D(draw))
	fft2InPlace(spectrum, true)
	spectrum = fftshift2(spectrum)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			spectrum[i][j] *= complex(math.Sqrt(psd[i][j]), 0)
		}
	}
	spectrum = ifftshift2(spectrum)
	fft2InPlace(spectrum, false)
	spectrum = ifftshift2(spectrum)

	norm := float64(n * n)
	flat := make([]float64, 0, n*n)
	screen := make([][]float64, n)
	for i := 0; i < n; i++ {
		screen[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			screen[i][j] = real(spectrum[i][j]) / norm
			flat = append(flat, screen[i][j])
		}
	}

	// Force zero mean and unit standard deviation, then scale to the
	// requested RMS.
	mean := stat.Mean(flat, nil)
	for i := range flat {
		flat[i] -= mean
	}
	std := stat.PopStdDev(flat, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			screen[i][j] = (screen[i][j] - mean) / std * s.rms
		}
	}
	return screen, nil
}
