package wfe

import "gonum.org/v1/gonum/dsp/fourier"

// fft2InPlace runs an unnormalized 2D FFT over a square complex grid,
// rows first and then columns. Gonum transforms are unnormalized, so a
// forward pass followed by an inverse pass multiplies the data by n*n;
// callers divide where NumPy-style inverse normalization is wanted.
func fft2InPlace(a [][]complex128, forward bool) {
	h := len(a)
	w := len(a[0])

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	tmp := make([]complex128, w)
	for y := 0; y < h; y++ {
		copy(tmp, a[y])
		if forward {
			rowFFT.Coefficients(tmp, tmp)
		} else {
			rowFFT.Sequence(tmp, tmp)
		}
		copy(a[y], tmp)
	}

	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = a[y][x]
		}
		if forward {
			colFFT.Coefficients(col, col)
		} else {
			colFFT.Sequence(col, col)
		}
		for y := 0; y < h; y++ {
			a[y][x] = col[y]
		}
	}
}

// fftshift2 rolls the zero-frequency sample of a complex grid to the
// center. ifftshift2 is its inverse; the two differ for odd sizes.
func fftshift2(a [][]complex128) [][]complex128 {
	return roll2(a, len(a)/2, len(a[0])/2)
}

func ifftshift2(a [][]complex128) [][]complex128 {
	return roll2(a, (len(a)+1)/2, (len(a[0])+1)/2)
}

func roll2(a [][]complex128, sy, sx int) [][]complex128 {
	h := len(a)
	w := len(a[0])
	out := make([][]complex128, h)
	for y := 0; y < h; y++ {
		out[y] = make([]complex128, w)
		yy := (y - sy + h) % h
		for x := 0; x < w; x++ {
			out[y][x] = a[yy][(x-sx+w)%w]
		}
	}
	return out
}

func makeComplex2D(h, w int) [][]complex128 {
	m := make([][]complex128, h)
	for i := range m {
		m[i] = make([]complex128, w)
	}
	return m
}

func makeFloat2D(h, w int) [][]float64 {
	m := make([][]float64, h)
	for i := range m {
		m[i] = make([]float64, w)
	}
	return m
}

func toComplex2D(m [][]float64) [][]complex128 {
	out := make([][]complex128, len(m))
	for i := range m {
		out[i] = make([]complex128, len(m[i]))
		for j, v := range m[i] {
			out[i][j] = complex(v, 0)
		}
	}
	return out
}
