package wfe

import (
	"math"
	"math/rand"
	"time"
)

// newRand builds the generator owned by one evaluation. A nil seed draws
// from the wall clock, so unseeded sources produce a fresh screen per call;
// no global random state is touched either way.
func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NormalField returns an n x n array of zero-mean unit-variance Gaussian
// values drawn row-major from rng.
func NormalField(rng *rand.Rand, n int) [][]float64 {
	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = rng.NormFloat64()
		}
	}
	return a
}

// SymmetrizedNormalField returns an n x n Gaussian array with the point
// symmetry a[(n-i)%n][(n-j)%n] == sign * a[i][j], which makes its Fourier
// transform Hermitian (sign=+1) or anti-Hermitian (sign=-1). The
// zero-frequency sample a[0][0] is always zero, and for sign=-1 every
// self-conjugate sample is zeroed so the relation holds exactly.
func SymmetrizedNormalField(rng *rand.Rand, n int, sign int) ([][]float64, error) {
	if sign != 1 && sign != -1 {
		return nil, configErrorf("symmetry sign must be +1 or -1, got %d", sign)
	}
	s := float64(sign)

	a := NormalField(rng, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			i2 := (n - i) % n
			j2 := (n - j) % n
			if i2 == i && j2 == j {
				if sign == -1 {
					a[i][j] = 0
				}
				continue
			}
			if i2*n+j2 > i*n+j {
				a[i2][j2] = s * a[i][j]
			}
		}
	}
	a[0][0] = 0
	return a, nil
}

// TurbulentField combines two symmetrized draws as (a + i*b)/sqrt(2),
// giving the complex Gaussian field with the variance and symmetry needed
// to drive a real-valued turbulence realization (Fleck et al. 1976,
// Eq. 63). Both draws come from the same generator, so a fixed seed still
// reproduces the field exactly.
func TurbulentField(rng *rand.Rand, n int) ([][]complex128, error) {
	a, err := SymmetrizedNormalField(rng, n, 1)
	if err != nil {
		return nil, err
	}
	b, err := SymmetrizedNormalField(rng, n, -1)
	if err != nil {
		return nil, err
	}

	invRoot2 := 1.0 / math.Sqrt2
	c := makeComplex2D(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c[i][j] = complex(a[i][j]*invRoot2, b[i][j]*invRoot2)
		}
	}
	return c, nil
}
