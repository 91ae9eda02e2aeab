package wfe

// ZernikeWFE describes an optical element by the Zernike coefficients of
// its wavefront distortion. Coefficients are ordered by the Noll
// convention starting at j=1 and are in meters of optical path difference.
// Being normalized on a circle, the element is implicitly also a circular
// aperture; with apertureStop set it doubles as one for transmission.
type ZernikeWFE struct {
	coefficients []float64
	radius       float64
	apertureStop bool
}

// NewZernikeWFE builds a Zernike wavefront-error source. radius (meters)
// is the circle over which the terms are normalized so that rho = 1.
func NewZernikeWFE(coefficients []float64, radius float64, apertureStop bool) (*ZernikeWFE, error) {
	if len(coefficients) == 0 {
		return nil, configErrorf("zernike coefficients must not be empty")
	}
	if radius <= 0 {
		return nil, configErrorf("zernike normalization radius must be positive, got %g", radius)
	}
	z := &ZernikeWFE{
		coefficients: append([]float64(nil), coefficients...),
		radius:       radius,
		apertureStop: apertureStop,
	}
	return z, nil
}

// OPD sums the weighted Zernike terms over the grid and zeroes everything
// outside the normalization circle.
func (z *ZernikeWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	y, x := grid.Coordinates()
	rho, theta := RhoTheta(y, x, z.radius)
	aperture := grid.CircularAperture(z.radius)

	combined := makeFloat2D(grid.Npix, grid.Npix)
	for idx, k := range z.coefficients {
		if k == 0.0 {
			continue
		}
		term := Zernike(idx+1, rho, theta, 0.0)
		for i := range combined {
			for j := range combined[i] {
				combined[i][j] += k * term[i][j]
			}
		}
	}

	for i := range combined {
		for j := range combined[i] {
			if aperture[i][j] == 0 {
				combined[i][j] = 0
			}
		}
	}
	return combined, nil
}

// Transmission returns all ones unless the element is configured as an
// aperture stop, in which case the underlying circular mask is returned.
func (z *ZernikeWFE) Transmission(grid SamplingGrid) [][]float64 {
	if z.apertureStop {
		return grid.CircularAperture(z.radius)
	}
	ones := make([][]float64, grid.Npix)
	for i := range ones {
		ones[i] = make([]float64, grid.Npix)
		for j := range ones[i] {
			ones[i][j] = 1.0
		}
	}
	return ones
}

// ParameterizedWFE describes a distortion decomposed into an arbitrary set
// of orthonormal basis functions (Zernikes, hexikes, ...) supplied by a
// BasisFactory.
type ParameterizedWFE struct {
	coefficients []float64
	radius       float64
	basis        BasisFactory
}

// NewParameterizedWFE builds a basis-expansion source. The factory is
// called with the coefficient count, the normalized polar coordinate
// arrays, and 0.0 as the outside value.
func NewParameterizedWFE(coefficients []float64, radius float64, basis BasisFactory) (*ParameterizedWFE, error) {
	if len(coefficients) == 0 {
		return nil, configErrorf("basis coefficients must not be empty")
	}
	if radius <= 0 {
		return nil, configErrorf("basis normalization radius must be positive, got %g", radius)
	}
	if basis == nil {
		return nil, configErrorf("a basis factory is required")
	}
	p := &ParameterizedWFE{
		coefficients: append([]float64(nil), coefficients...),
		radius:       radius,
		basis:        basis,
	}
	return p, nil
}

func (p *ParameterizedWFE) OPD(grid SamplingGrid) ([][]float64, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	y, x := grid.Coordinates()
	rho, theta := RhoTheta(y, x, p.radius)

	nterms := len(p.coefficients)
	terms := p.basis(nterms, rho, theta, 0.0)
	if len(terms) != nterms {
		return nil, configErrorf("basis factory produced %d terms for %d coefficients", len(terms), nterms)
	}

	combined := makeFloat2D(grid.Npix, grid.Npix)
	for idx, k := range p.coefficients {
		if k == 0.0 {
			continue // save the multiply-and-add of zeros
		}
		term := terms[idx]
		for i := range combined {
			for j := range combined[i] {
				combined[i][j] += k * term[i][j]
			}
		}
	}
	return combined, nil
}
