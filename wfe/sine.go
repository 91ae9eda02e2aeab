package wfe

import "math"

// SineWaveWFE is a single sinusoidal ripple across the optic, oriented in
// the X direction. The spatial frequency is in cycles per meter and the
// phase offset in cycles; amplitude is in meters. The frequency is spatial
// on purpose, so it cannot be confused with the wavelength of light.
type SineWaveWFE struct {
	spatialFreq float64
	amplitude   float64
	phaseOffset float64
}

func NewSineWaveWFE(spatialFreq, amplitude, phaseOffset float64) (*SineWaveWFE, error) {
	if spatialFreq <= 0 {
		return nil, configErrorf("sine spatial frequency must be positive, got %g", spatialFreq)
	}
	return &SineWaveWFE{spatialFreq: spatialFreq, amplitude: amplitude, phaseOffset: phaseOffset}, nil
}

func (s *SineWaveWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	_, x := grid.Coordinates()

	opd := make([][]float64, grid.Npix)
	for i := range opd {
		opd[i] = make([]float64, grid.Npix)
		for j := range opd[i] {
			opd[i][j] = s.amplitude * math.Sin(2.0*math.Pi*(x[i][j]*s.spatialFreq+s.phaseOffset))
		}
	}
	return opd, nil
}
