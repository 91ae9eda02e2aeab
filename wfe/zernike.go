package wfe

import "math"

// BasisFactory produces nterms ordered 2D basis-function arrays evaluated
// over polar pupil coordinates. Terms are counted from the Noll j=1 term.
// Pixels with rho > 1 take the outside value.
type BasisFactory func(nterms int, rho, theta [][]float64, outside float64) [][][]float64

// NollIndices converts a 1-based Noll index j to the radial order n and
// azimuthal order m of the corresponding Zernike term (Noll et al., JOSA
// 1976: within a radial order |m| increases, and even j carries the
// cosine (+m) term).
func NollIndices(j int) (n, m int) {
	if j < 1 {
		panic("wfe: Noll index must be >= 1")
	}
	jj := 1
	for n = 0; ; n++ {
		start := n % 2
		for am := start; am <= n; am += 2 {
			if am == 0 {
				if jj == j {
					return n, 0
				}
				jj++
				continue
			}
			for k := 0; k < 2; k++ {
				if jj == j {
					if j%2 == 0 {
						return n, am
					}
					return n, -am
				}
				jj++
			}
		}
	}
}

// zernikeRadial evaluates the radial polynomial R_n^m at rho for m >= 0.
func zernikeRadial(n, m int, rho float64) float64 {
	sum := 0.0
	for k := 0; k <= (n-m)/2; k++ {
		c := float64(factorial(n-k)) /
			(float64(factorial(k)) * float64(factorial((n+m)/2-k)) * float64(factorial((n-m)/2-k)))
		if k%2 == 1 {
			c = -c
		}
		sum += c * math.Pow(rho, float64(n-2*k))
	}
	return sum
}

func factorial(n int) int64 {
	f := int64(1)
	for i := 2; i <= n; i++ {
		f *= int64(i)
	}
	return f
}

// Zernike evaluates the Noll-normalized Zernike term j over polar pupil
// coordinates. The normalization makes the RMS of each term unity over the
// unit circle, so a coefficient in meters is meters RMS of that aberration.
func Zernike(j int, rho, theta [][]float64, outside float64) [][]float64 {
	n, m := NollIndices(j)
	am := m
	if am < 0 {
		am = -am
	}

	norm := math.Sqrt(float64(n + 1))
	if m != 0 {
		norm = math.Sqrt(2.0 * float64(n+1))
	}

	out := make([][]float64, len(rho))
	for i := range rho {
		out[i] = make([]float64, len(rho[i]))
		for jj := range rho[i] {
			r := rho[i][jj]
			if r > 1.0 {
				out[i][jj] = outside
				continue
			}
			v := norm * zernikeRadial(n, am, r)
			switch {
			case m > 0:
				v *= math.Cos(float64(am) * theta[i][jj])
			case m < 0:
				v *= math.Sin(float64(am) * theta[i][jj])
			}
			out[i][jj] = v
		}
	}
	return out
}

// ZernikeBasis is a BasisFactory returning the first nterms Noll-indexed
// Zernike terms.
func ZernikeBasis(nterms int, rho, theta [][]float64, outside float64) [][][]float64 {
	terms := make([][][]float64, nterms)
	for j := 1; j <= nterms; j++ {
		terms[j-1] = Zernike(j, rho, theta, outside)
	}
	return terms
}
