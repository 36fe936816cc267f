package flowmodel

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gowcns/eos"
)

func testModels(t *testing.T, dim int) (models []FlowModel) {
	mm, err := eos.NewMassFractionMixture([]float64{1.4, 1.67, 1.3}, []float64{717.5, 3115.6, 1000})
	assert.Nil(t, err)
	vm, err := eos.NewVolumeFractionMixture([]eos.StiffenedGas{{Gamma: 4.4, PInf: 6.e8}, {Gamma: 1.4}})
	assert.Nil(t, err)
	four, err := NewFourEquation(dim, mm)
	assert.Nil(t, err)
	five, err := NewFiveEquation(dim, vm)
	assert.Nil(t, err)
	return []FlowModel{NewSingleSpecies(dim, eos.NewIdealGas(1.4)), four, five}
}

// samplePrimitive is a valid primitive state for any of the test models
func samplePrimitive(m FlowModel) (v []float64) {
	l := m.Layout()
	v = make([]float64, l.NumEqn)
	for k := l.Density.Start; k < l.Density.End(); k++ {
		v[k] = 0.5 + 0.25*float64(k)
	}
	for d := 0; d < l.Velocity.Len; d++ {
		v[l.Velocity.Start+d] = 0.3 - 0.2*float64(d)
	}
	v[l.Energy] = 1.e5
	for k := 0; k < l.Fraction.Len; k++ {
		v[l.Fraction.Start+k] = 0.6 / float64(l.Fraction.Len+1)
	}
	return
}

func TestLayout(t *testing.T) {
	models := testModels(t, 3)
	{ // Single species
		l := models[0].Layout()
		assert.Equal(t, 5, l.NumEqn)
		assert.Equal(t, Span{1, 3}, l.Velocity)
		assert.Equal(t, 4, l.Energy)
		assert.Equal(t, 0, l.Fraction.Len)
	}
	{ // Four equation, three species
		l := models[1].Layout()
		assert.Equal(t, 1+3+1+2, l.NumEqn)
		assert.Equal(t, Span{5, 2}, l.Fraction)
	}
	{ // Five equation, two species
		l := models[2].Layout()
		assert.Equal(t, 2+3+1+1, l.NumEqn)
		assert.Equal(t, Span{0, 2}, l.Density)
		assert.Equal(t, Span{2, 3}, l.Velocity)
		assert.Equal(t, Span{6, 1}, l.Fraction)
		assert.Equal(t, l.Fraction, models[2].SourceFields())
		assert.Equal(t, 0, models[0].SourceFields().Len)
	}
	{ // Kind parsing
		k, err := NewKind("Five-Equation")
		assert.Nil(t, err)
		assert.Equal(t, FiveEquation, k)
		_, err = NewKind("seven-equation")
		assert.NotNil(t, err)
	}
}

func TestConversions(t *testing.T) {
	for _, dim := range []int{1, 2, 3} {
		for _, m := range testModels(t, dim) {
			var (
				l  = m.Layout()
				v  = samplePrimitive(m)
				q  = make([]float64, l.NumEqn)
				v2 = make([]float64, l.NumEqn)
			)
			assert.Nil(t, m.PrimitiveToConserved(v, q))
			assert.Nil(t, m.ConservedToPrimitive(q, v2))
			for i := range v {
				assert.InDelta(t, v[i], v2[i], 1.e-9*math.Max(1, math.Abs(v[i])), m.Kind().Print())
			}
			p, err := m.Pressure(q)
			assert.Nil(t, err)
			assert.InDelta(t, 1., p/v[l.Energy], 1.e-9)
			c1, err := m.SoundSpeed(q)
			assert.Nil(t, err)
			c2, err := m.PrimitiveSoundSpeed(v)
			assert.Nil(t, err)
			assert.InDelta(t, 1., c1/c2, 1.e-9)
			assert.Nil(t, m.CheckPrimitive(v))
		}
	}
}

func TestFractions(t *testing.T) {
	for _, m := range testModels(t, 2) {
		var (
			v   = samplePrimitive(m)
			all = make([]float64, m.NumSpecies())
			sum float64
		)
		m.Fractions(v, all)
		for _, f := range all {
			sum += f
		}
		assert.Equal(t, 1., sum, m.Kind().Print())
	}
}

func TestFlux(t *testing.T) {
	{ // Single species ideal gas flux by hand
		m := NewSingleSpecies(2, eos.NewIdealGas(1.4))
		v := []float64{2, 3, -1, 5}
		f := make([]float64, 4)
		assert.Nil(t, m.Flux(v, 0, f))
		E := 5/0.4 + 0.5*2*(9+1)
		assert.InDeltaSlice(t, []float64{6, 2*9 + 5, -6, 3 * (E + 5)}, f, 1.e-12)
		assert.Nil(t, m.Flux(v, 1, f))
		assert.InDeltaSlice(t, []float64{-2, -6, 2 + 5, -(E + 5)}, f, 1.e-12)
	}
	{ // Species fluxes advect with the normal velocity
		for _, m := range testModels(t, 2)[1:] {
			var (
				l = m.Layout()
				v = samplePrimitive(m)
				f = make([]float64, l.NumEqn)
				q = make([]float64, l.NumEqn)
			)
			assert.Nil(t, m.Flux(v, 1, f))
			assert.Nil(t, m.PrimitiveToConserved(v, q))
			un := v[l.Velocity.Start+1]
			for k := l.Fraction.Start; k < l.Fraction.End(); k++ {
				assert.InDelta(t, q[k]*un, f[k], 1.e-14)
			}
			for k := l.Density.Start; k < l.Density.End(); k++ {
				assert.InDelta(t, q[k]*un, f[k], 1.e-14)
			}
		}
	}
}

func TestInvalidStates(t *testing.T) {
	for _, m := range testModels(t, 1) {
		var (
			l = m.Layout()
			v = samplePrimitive(m)
			q = make([]float64, l.NumEqn)
		)
		assert.Nil(t, m.PrimitiveToConserved(v, q))
		bad := append([]float64{}, v...)
		bad[l.Energy] = -1.e12
		assert.True(t, errors.Is(m.CheckPrimitive(bad), eos.ErrDomain))
		bad = append([]float64{}, v...)
		bad[0] = math.NaN()
		assert.True(t, errors.Is(m.CheckPrimitive(bad), eos.ErrDomain))
		qb := append([]float64{}, q...)
		for k := l.Density.Start; k < l.Density.End(); k++ {
			qb[k] = 0
		}
		assert.True(t, errors.Is(m.ConservedToPrimitive(qb, make([]float64, l.NumEqn)), eos.ErrDomain))
	}
}
