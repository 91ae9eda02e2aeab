package wfe

import "math"

// Unit is a power of length together with a scale factor to SI (meters).
// It is just enough unit algebra to validate PSD term parameters once at
// construction; everywhere else plain float64 meters are used by convention.
type Unit struct {
	Scale     float64 // multiplicative factor to the SI equivalent
	LengthExp float64 // exponent of length in the dimension
}

var (
	Dimensionless = Unit{Scale: 1, LengthExp: 0}
	Meter         = Unit{Scale: 1, LengthExp: 1}
	Nanometer     = Unit{Scale: 1e-9, LengthExp: 1}
	PerMeter      = Unit{Scale: 1, LengthExp: -1}
)

func (u Unit) Mul(v Unit) Unit {
	return Unit{Scale: u.Scale * v.Scale, LengthExp: u.LengthExp + v.LengthExp}
}

func (u Unit) Div(v Unit) Unit {
	return Unit{Scale: u.Scale / v.Scale, LengthExp: u.LengthExp - v.LengthExp}
}

func (u Unit) Pow(p float64) Unit {
	return Unit{Scale: math.Pow(u.Scale, p), LengthExp: u.LengthExp * p}
}

// Equal reports whether two units agree in both dimension and scale,
// within floating-point tolerance.
func (u Unit) Equal(v Unit) bool {
	const tol = 1e-9
	if math.Abs(u.LengthExp-v.LengthExp) > tol {
		return false
	}
	if u.Scale == v.Scale {
		return true
	}
	return math.Abs(u.Scale-v.Scale) <= tol*math.Max(math.Abs(u.Scale), math.Abs(v.Scale))
}

// Quantity is a value tagged with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// SI returns the value converted to the SI equivalent of its unit.
func (q Quantity) SI() float64 { return q.Value * q.Unit.Scale }
