package wfe

import "math"

// SamplingGrid describes the pixel sampling of the wavefront an error
// source is evaluated against. It is supplied by the propagation engine
// and is immutable for the duration of one OPD computation.
type SamplingGrid struct {
	Npix       int     // the OPD array is Npix x Npix
	PixelScale float64 // meters per pixel
	IsPadded   bool    // true when the array carries oversampling padding
	Oversample int     // padding factor when IsPadded is set
	Wavelength float64 // meters
}

func (g SamplingGrid) validate() error {
	if g.Npix <= 0 {
		return configErrorf("grid npix must be positive, got %d", g.Npix)
	}
	if g.PixelScale <= 0 {
		return configErrorf("grid pixel scale must be positive, got %g", g.PixelScale)
	}
	if g.IsPadded && g.Oversample < 1 {
		return configErrorf("padded grid needs an oversample factor >= 1, got %d", g.Oversample)
	}
	return nil
}

// unpaddedSize is the side length of the wavefront before any oversampling
// padding was applied.
func (g SamplingGrid) unpaddedSize() int {
	if g.IsPadded {
		return g.Npix / g.Oversample
	}
	return g.Npix
}

// Coordinates returns (y, x) arrays in meters for the grid. Pixel centers
// are placed symmetrically about the array center at (Npix-1)/2, so an
// even-sized grid never samples the exact origin.
func (g SamplingGrid) Coordinates() (y, x [][]float64) {
	n := g.Npix
	center := float64(n-1) / 2.0
	y = make([][]float64, n)
	x = make([][]float64, n)
	for i := 0; i < n; i++ {
		y[i] = make([]float64, n)
		x[i] = make([]float64, n)
		yv := (float64(i) - center) * g.PixelScale
		for j := 0; j < n; j++ {
			y[i][j] = yv
			x[i][j] = (float64(j) - center) * g.PixelScale
		}
	}
	return y, x
}

// CircularAperture returns the transmission mask of a circular aperture of
// the given radius (meters) sampled on the grid: 1.0 inside, 0.0 outside.
func (g SamplingGrid) CircularAperture(radius float64) [][]float64 {
	n := g.Npix
	center := float64(n-1) / 2.0
	mask := make([][]float64, n)
	for i := 0; i < n; i++ {
		mask[i] = make([]float64, n)
		yv := (float64(i) - center) * g.PixelScale
		for j := 0; j < n; j++ {
			xv := (float64(j) - center) * g.PixelScale
			if math.Sqrt(xv*xv+yv*yv) <= radius {
				mask[i][j] = 1.0
			}
		}
	}
	return mask
}

// ErrorSource is the single capability shared by all wavefront-error
// variants: produce an OPD array in meters with the same shape and
// orientation as the grid's coordinate arrays.
type ErrorSource interface {
	OPD(grid SamplingGrid) ([][]float64, error)
}
