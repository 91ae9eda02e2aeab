package wfe

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RMS is the root-mean-square of the OPD values where mask is non-zero.
// A nil mask measures the whole array.
func RMS(opd [][]float64, mask [][]float64) float64 {
	var squares []float64
	for i := range opd {
		for j := range opd[i] {
			if mask != nil && mask[i][j] == 0 {
				continue
			}
			squares = append(squares, opd[i][j]*opd[i][j])
		}
	}
	if len(squares) == 0 {
		return 0
	}
	return math.Sqrt(stat.Mean(squares, nil))
}

// PeakToValley is the spread between the largest and smallest OPD values
// where mask is non-zero. A nil mask measures the whole array.
func PeakToValley(opd [][]float64, mask [][]float64) float64 {
	first := true
	var lo, hi float64
	for i := range opd {
		for j := range opd[i] {
			if mask != nil && mask[i][j] == 0 {
				continue
			}
			v := opd[i][j]
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if first {
		return 0
	}
	return hi - lo
}
