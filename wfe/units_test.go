package wfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"opdscreen/wfe"
)

func TestUnitAlgebra(t *testing.T) {
	area := wfe.Meter.Mul(wfe.Meter)
	assert.True(t, area.Equal(wfe.Unit{Scale: 1, LengthExp: 2}))

	assert.True(t, area.Div(wfe.Meter).Equal(wfe.Meter))
	assert.True(t, area.Pow(0.5).Equal(wfe.Meter))
	assert.True(t, wfe.Meter.Mul(wfe.PerMeter).Equal(wfe.Dimensionless))

	// Same dimension, different scale.
	assert.False(t, wfe.Nanometer.Equal(wfe.Meter))
	assert.True(t, wfe.Nanometer.Equal(wfe.Unit{Scale: 1e-9, LengthExp: 1}))
}

func TestQuantitySI(t *testing.T) {
	q := wfe.Quantity{Value: 50, Unit: wfe.Nanometer}
	assert.InDelta(t, 50e-9, q.SI(), 1e-24)

	plain := wfe.Quantity{Value: 2.5, Unit: wfe.Meter}
	assert.Equal(t, 2.5, plain.SI())
}
