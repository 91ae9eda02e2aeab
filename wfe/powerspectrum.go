package wfe

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PSDTerm is one term of a von Karman-family surface power spectral
// density:
//
//	P(k) = beta * exp(-(k*innerScale)^2) / (outerScale^-2 + k^2)^(alpha/2) + roughness
//
// With OuterScale == 0 the denominator degenerates to a pure power law
// (k^2)^(alpha/2). Beta and SurfRoughness carry explicit units; their
// consistency is validated once when the source is built.
type PSDTerm struct {
	Alpha         float64  // PSD index
	Beta          Quantity // normalization constant
	OuterScale    float64  // meters; 0 disables the low-frequency rolloff
	InnerScale    float64  // meters
	SurfRoughness Quantity // high-frequency roughness floor, same units as the PSD
}

// PowerSpectrumConfig holds the construction parameters of a
// PowerSpectrumWFE.
type PowerSpectrumConfig struct {
	Terms           []PSDTerm
	Weights         []float64 // per-term weights; nil means equal weights
	Seed            *int64
	ApplyReflection bool    // multiply the OPD by 2 to turn surface error into path error
	ScreenSize      int     // PSD matrix side; 0 defaults to the wavefront size (x4 when unpadded)
	RMS             float64 // forced surface rms in meters; 0 keeps the PSD-implied rms
	Radius          float64 // beam radius in meters for rms normalization
	IncidentAngle   float64 // degrees; oblique reflection foreshortening
}

// PowerSpectrumWFE synthesizes manufacturing surface-error screens from a
// weighted sum of PSD terms (Males, MagAO-X PDR §5.1; Lumbres et al.).
type PowerSpectrumWFE struct {
	terms           []PSDTerm
	weights         []float64
	seed            *int64
	applyReflection bool
	screenSize      int
	rms             float64
	radius          float64
	incidentAngle   float64
	surfToMeters    float64
}

// NewPowerSpectrumWFE validates the configuration, including the physical
// units of each PSD term, and returns the source. Unit violations surface
// as ErrUnitMismatch; all other problems as ErrConfig.
func NewPowerSpectrumWFE(cfg PowerSpectrumConfig) (*PowerSpectrumWFE, error) {
	if len(cfg.Terms) == 0 {
		return nil, configErrorf("at least one psd term is required")
	}
	weights := cfg.Weights
	if weights == nil {
		weights = make([]float64, len(cfg.Terms))
		for i := range weights {
			weights[i] = 1.0
		}
	} else if len(weights) != len(cfg.Terms) {
		return nil, configErrorf("%d psd weights for %d terms", len(weights), len(cfg.Terms))
	}
	if cfg.RMS > 0 && cfg.Radius <= 0 {
		return nil, configErrorf("a positive radius is required for rms normalization")
	}
	if math.Abs(cfg.IncidentAngle) >= 90 {
		return nil, configErrorf("incident angle must be less than 90 degrees, got %g", cfg.IncidentAngle)
	}
	if cfg.ScreenSize != 0 && cfg.ScreenSize%2 != 0 {
		return nil, configErrorf("psd screen size must be even, got %d", cfg.ScreenSize)
	}

	// The spatial-frequency spacing dk carries units of 1/m, so each
	// term's PSD unit is beta / (1/m^2)^(alpha/2). The roughness floor
	// must match it, and all terms must agree for the sum to make sense.
	var psdUnit Unit
	for i, term := range cfg.Terms {
		u := term.Beta.Unit.Div(PerMeter.Pow(2).Pow(term.Alpha / 2))
		if !term.SurfRoughness.Unit.Equal(u) {
			return nil, unitErrorf("term %d: surface roughness unit does not match the psd unit implied by beta and alpha", i)
		}
		if i == 0 {
			psdUnit = u
		} else if !u.Equal(psdUnit) {
			return nil, unitErrorf("term %d: psd unit differs from term 0", i)
		}
	}
	surfUnit := psdUnit.Mul(PerMeter.Pow(2)).Pow(0.5)
	if math.Abs(surfUnit.LengthExp-1) > 1e-9 {
		return nil, unitErrorf("psd parameters do not imply a length-valued surface unit")
	}

	p := &PowerSpectrumWFE{
		terms:           append([]PSDTerm(nil), cfg.Terms...),
		weights:         append([]float64(nil), weights...),
		seed:            cfg.Seed,
		applyReflection: cfg.ApplyReflection,
		screenSize:      cfg.ScreenSize,
		rms:             cfg.RMS,
		radius:          cfg.Radius,
		incidentAngle:   cfg.IncidentAngle,
		surfToMeters:    surfUnit.Scale,
	}
	return p, nil
}

// evaluatePSD sums the weighted terms over the centered frequency grid.
// The k=0 sample of a zero-outer-scale term is evaluated at 1*dk and then
// forced to zero, since the bare power law has no finite value there.
func (p *PowerSpectrumWFE) evaluatePSD(n int, dk float64) [][]float64 {
	_, _, k := freqGrid(n, dk)
	cen := n / 2

	psd := makeFloat2D(n, n)
	for t, term := range p.terms {
		w := p.weights[t]
		inner2 := term.InnerScale * term.InnerScale
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				kv := k[i][j]
				atZero := i == cen && j == cen
				var v float64
				if term.OuterScale == 0 {
					if atZero {
						kv = dk
					}
					v = term.Beta.Value * math.Exp(-kv*kv*inner2) / math.Pow(kv*kv, term.Alpha/2)
					if atZero {
						v = 0
					}
				} else {
					denom := math.Pow(1.0/(term.OuterScale*term.OuterScale)+kv*kv, term.Alpha/2)
					v = term.Beta.Value * math.Exp(-kv*kv*inner2) / denom
				}
				psd[i][j] += w * (v + term.SurfRoughness.Value)
			}
		}
	}
	return psd
}

// OPD synthesizes a surface-error screen: a Gaussian draw is forward
// transformed, shaped by sqrt(PSD/pixelscale^2), inverse transformed, and
// the real part converted to meters. The screen is synthesized on an
// oversized grid and centrally cropped back to the wavefront shape.
func (p *PowerSpectrumWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}

	waveSize := grid.unpaddedSize()
	screen := p.screenSize
	if screen == 0 {
		screen = grid.Npix
		if !grid.IsPadded {
			screen *= 4 // room for Fourier transform padding
		}
	} else if screen < waveSize {
		return nil, configErrorf("psd screen size %d is smaller than the wavefront size %d", screen, waveSize)
	}
	if screen%2 != 0 {
		return nil, configErrorf("psd screen size must be even, got %d", screen)
	}

	dk := 1.0 / (float64(screen) * grid.PixelScale)
	psd := p.evaluatePSD(screen, dk)

	rng := newRand(p.seed)
	noise := toComplex2D(NormalField(rng, screen))
	fft2InPlace(noise, true)
	noise = fftshift2(noise)

	invPix2 := 1.0 / (grid.PixelScale * grid.PixelScale)
	for i := 0; i < screen; i++ {
		for j := 0; j < screen; j++ {
			noise[i][j] *= complex(math.Sqrt(psd[i][j]*invPix2), 0)
		}
	}

	noise = ifftshift2(noise)
	fft2InPlace(noise, false)

	norm := float64(screen * screen)
	opd := makeFloat2D(screen, screen)
	for i := 0; i < screen; i++ {
		for j := 0; j < screen; j++ {
			opd[i][j] = real(noise[i][j]) / norm * p.surfToMeters
		}
	}

	// Force the rms measured inside the beam aperture of the wave-shaped
	// central region, rescaling the whole screen.
	if p.rms > 0 {
		aperture := grid.CircularAperture(p.radius)
		cropped := padOrCropTo(opd, grid.Npix)
		var squares []float64
		for i := 0; i < grid.Npix; i++ {
			for j := 0; j < grid.Npix; j++ {
				if aperture[i][j] != 0 {
					squares = append(squares, cropped[i][j]*cropped[i][j])
				}
			}
		}
		if len(squares) == 0 {
			return nil, configErrorf("rms normalization radius %g admits no grid samples", p.radius)
		}
		scale := p.rms / math.Sqrt(stat.Mean(squares, nil))
		for i := range opd {
			for j := range opd[i] {
				opd[i][j] *= scale
			}
		}
	}

	if p.incidentAngle != 0 {
		c := math.Cos(p.incidentAngle * math.Pi / 180.0)
		for i := range opd {
			for j := range opd[i] {
				opd[i][j] /= c
			}
		}
	}

	if p.applyReflection {
		for i := range opd {
			for j := range opd[i] {
				opd[i][j] *= 2.0
			}
		}
	}

	if screen != grid.Npix {
		opd = padOrCropTo(opd, grid.Npix)
	}
	return opd, nil
}

// padOrCropTo centers m inside (or crops it to) an n x n array.
func padOrCropTo(m [][]float64, n int) [][]float64 {
	s := len(m)
	if s == n {
		return m
	}
	out := makeFloat2D(n, n)
	if s > n {
		off := (s - n) / 2
		for i := 0; i < n; i++ {
			copy(out[i], m[i+off][off:off+n])
		}
	} else {
		off := (n - s) / 2
		for i := 0; i < s; i++ {
			copy(out[i+off][off:off+s], m[i])
		}
	}
	return out
}
