package wfe

import "math"

// SpectrumKind selects the spatial power spectrum of a turbulent phase
// screen.
type SpectrumKind int

const (
	Kolmogorov SpectrumKind = iota
	Tatarski
	VonKarman
	Hill
)

func (k SpectrumKind) String() string {
	switch k {
	case Kolmogorov:
		return "Kolmogorov"
	case Tatarski:
		return "Tatarski"
	case VonKarman:
		return "von Karman"
	case Hill:
		return "Hill"
	}
	return "unknown"
}

// KolmogorovConfig holds the construction parameters of a KolmogorovWFE.
// Exactly one of R0 (Fried parameter, meters) or Cn2 (index-of-refraction
// structure constant, m^-2/3) must be set together with the propagation
// distance Dz. Zero values mean unset.
type KolmogorovConfig struct {
	R0         float64 // meters
	Cn2        float64 // m^-2/3
	Dz         float64 // meters, required
	InnerScale float64 // meters; required for Tatarski, von Karman, Hill
	OuterScale float64 // meters; required for von Karman
	Kind       SpectrumKind
	Seed       *int64
}

// KolmogorovWFE is a turbulent atmospheric phase screen following the
// Kolmogorov theory of turbulence (Andrews & Phillips 2005; screen
// synthesis per Fleck, Morris & Feit 1976).
type KolmogorovWFE struct {
	r0         float64
	cn2        float64
	dz         float64
	innerScale float64
	outerScale float64
	kind       SpectrumKind
	seed       *int64
}

func NewKolmogorovWFE(cfg KolmogorovConfig) (*KolmogorovWFE, error) {
	if cfg.Dz <= 0 {
		return nil, configErrorf("a positive propagation distance dz is required")
	}
	if cfg.R0 <= 0 && cfg.Cn2 <= 0 {
		return nil, configErrorf("either the Fried parameter r0 or the structure constant Cn2 must be set")
	}
	switch cfg.Kind {
	case Kolmogorov:
	case VonKarman:
		if cfg.OuterScale <= 0 {
			return nil, configErrorf("the %s spectrum requires the outer scale L0", cfg.Kind)
		}
		fallthrough
	case Tatarski, Hill:
		if cfg.InnerScale <= 0 {
			return nil, configErrorf("the %s spectrum requires the inner scale l0", cfg.Kind)
		}
	default:
		return nil, configErrorf("unrecognized spectrum kind %d", cfg.Kind)
	}

	k := &KolmogorovWFE{
		r0:         cfg.R0,
		cn2:        cfg.Cn2,
		dz:         cfg.Dz,
		innerScale: cfg.InnerScale,
		outerScale: cfg.OuterScale,
		kind:       cfg.Kind,
		seed:       cfg.Seed,
	}
	return k, nil
}

// Cn2For returns the index-of-refraction structure constant in m^-2/3.
// When the Fried parameter is set it is derived from r0, dz and the
// wavelength (Herman & Strugala 1990); otherwise the directly supplied
// value is returned unchanged.
func (k *KolmogorovWFE) Cn2For(wavelength float64) float64 {
	if k.r0 > 0 {
		return wavelength * wavelength / k.dz * math.Pow(k.r0/0.185, -5.0/3.0)
	}
	return k.cn2
}

// powerSpectrum evaluates the refractive-index spectrum phi(q) over the
// angular spatial-frequency grid q = 2*pi*fftfreq, in standard FFT
// ordering to match the symmetrized random field. The q=0 sample is forced
// to +Inf before the -11/6 power so phi(0) comes out 0.
func (k *KolmogorovWFE) powerSpectrum(grid SamplingGrid) [][]float64 {
	cn2 := k.Cn2For(grid.Wavelength)
	npix := grid.Npix

	q := fftFreq(npix, grid.PixelScale)
	for i := range q {
		q[i] *= 2.0 * math.Pi
	}

	var outerTerm float64
	if k.kind == VonKarman {
		outerTerm = 1.0 / (k.outerScale * k.outerScale)
	}

	phi := make([][]float64, npix)
	for i := 0; i < npix; i++ {
		phi[i] = make([]float64, npix)
		for j := 0; j < npix; j++ {
			k2 := q[j]*q[j] + q[i]*q[i]
			q2 := k2 + outerTerm
			if i == 0 && j == 0 {
				q2 = math.Inf(1)
			}
			v := 0.0330054 * cn2 * math.Pow(q2, -11.0/6.0)

			switch k.kind {
			case Tatarski, VonKarman:
				m := 5.92 / k.innerScale
				v *= math.Exp(-k2 / (m * m))
			case Hill:
				m := math.Sqrt(k2) * k.innerScale
				v *= (1.0 + 0.70937*m + 2.8235*m*m - 0.28086*m*m*m + 0.08277*m*m*m*m) *
					math.Exp(-1.109*m)
			}
			phi[i][j] = v
		}
	}
	return phi
}

// OPD synthesizes a turbulent phase screen: a Hermitian-symmetric complex
// Gaussian field is weighted by sqrt of the phase spectrum and inverse
// transformed; the real part is the OPD in meters. The dq factor is a
// consequence of the delta function carrying a unit.
func (k *KolmogorovWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	npix := grid.Npix
	dq := 2.0 * math.Pi / (float64(npix) * grid.PixelScale)

	rng := newRand(k.seed)
	c, err := TurbulentField(rng, npix)
	if err != nil {
		return nil, err
	}

	phi := k.powerSpectrum(grid)

	spectrum := makeComplex2D(npix, npix)
	for i := 0; i < npix; i++ {
		for j := 0; j < npix; j++ {
			spectrum[i][j] = complex(dq, 0) * c[i][j] *
				complex(math.Sqrt(2.0*math.Pi*k.dz*phi[i][j]), 0)
		}
	}

	// The unnormalized inverse transform equals npix^2 times the
	// normalized one the synthesis formula calls for.
	fft2InPlace(spectrum, false)

	opd := makeFloat2D(npix, npix)
	for i := 0; i < npix; i++ {
		for j := 0; j < npix; j++ {
			opd[i][j] = real(spectrum[i][j])
		}
	}
	return opd, nil
}
