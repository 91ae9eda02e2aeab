package wfe

import "math"

// RhoTheta converts Cartesian pupil coordinates in meters to dimensionless
// polar coordinates normalized so that rho == 1.0 at the given radius.
func RhoTheta(y, x [][]float64, radius float64) (rho, theta [][]float64) {
	n := len(y)
	rho = make([][]float64, n)
	theta = make([][]float64, n)
	for i := 0; i < n; i++ {
		rho[i] = make([]float64, len(y[i]))
		theta[i] = make([]float64, len(y[i]))
		for j := range y[i] {
			rho[i][j] = math.Sqrt(x[i][j]*x[i][j]+y[i][j]*y[i][j]) / radius
			theta[i][j] = math.Atan2(y[i][j]/radius, x[i][j]/radius)
		}
	}
	return rho, theta
}

// freqGrid builds centered spatial-frequency arrays for an n x n grid with
// frequency spacing dk: integer index grids running -n/2 .. n/2-1 scaled by
// dk, plus the radial magnitude k = sqrt(kx^2 + ky^2). n must be even.
func freqGrid(n int, dk float64) (kx, ky, k [][]float64) {
	cen := n / 2
	kx = make([][]float64, n)
	ky = make([][]float64, n)
	k = make([][]float64, n)
	for i := 0; i < n; i++ {
		kx[i] = make([]float64, n)
		ky[i] = make([]float64, n)
		k[i] = make([]float64, n)
		kyv := float64(i-cen) * dk
		for j := 0; j < n; j++ {
			kxv := float64(j-cen) * dk
			kx[i][j] = kxv
			ky[i][j] = kyv
			k[i][j] = math.Hypot(kxv, kyv)
		}
	}
	return kx, ky, k
}

// fftFreq returns the discrete Fourier transform sample frequencies for n
// samples spaced d apart, in standard FFT ordering: 0, 1, ..., n/2-1,
// -n/2, ..., -1 (all divided by n*d).
func fftFreq(n int, d float64) []float64 {
	f := make([]float64, n)
	scale := 1.0 / (float64(n) * d)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		f[i] = float64(i) * scale
	}
	for i := half; i < n; i++ {
		f[i] = float64(i-n) * scale
	}
	return f
}
