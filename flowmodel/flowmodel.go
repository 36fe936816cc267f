package flowmodel

import (
	"fmt"
	"math"

	"github.com/notargets/gowcns/eos"
)

// MaxSpecies bounds the number of species of the mixture models
const MaxSpecies = 16

// FlowModel is the capability set the flux kernel needs from a flow model.
// Conserved and primitive vectors share one Layout; the density span is
// identical in both.
type FlowModel interface {
	Kind() Kind
	Dim() int
	NumSpecies() int
	Layout() Layout
	ConservedToPrimitive(q, v []float64) error
	PrimitiveToConserved(v, q []float64) error
	// Flux is the physical flux in direction dir of a primitive state
	Flux(v []float64, dir int, f []float64) error
	// Mixture is the equation of state at the composition of a primitive state
	Mixture(v []float64) (eos.EquationOfState, error)
	Density(v []float64) float64
	// Fractions fills all NumSpecies fractions, the last one as one minus the rest
	Fractions(v, all []float64)
	Pressure(q []float64) (float64, error)
	SoundSpeed(q []float64) (float64, error)
	PrimitiveSoundSpeed(v []float64) (float64, error)
	// CheckPrimitive verifies a primitive state is finite with positive
	// density and pressure and a real sound speed
	CheckPrimitive(v []float64) error
	// SourceFields are the conserved components carrying the
	// non-conservative source q*div(u)
	SourceFields() Span
}

type base struct {
	dim    int
	layout Layout
}

func (b *base) Dim() int       { return b.dim }
func (b *base) Layout() Layout { return b.layout }

// velocityFromMomentum fills primitive velocities, returning the kinetic energy
func (b *base) velocityFromMomentum(rho float64, q, v []float64) (ke float64) {
	vs := b.layout.Velocity.Start
	for d := 0; d < b.dim; d++ {
		u := q[vs+d] / rho
		v[vs+d] = u
		ke += 0.5 * q[vs+d] * u
	}
	return
}

func (b *base) momentumFromVelocity(rho float64, v, q []float64) (ke float64) {
	vs := b.layout.Velocity.Start
	for d := 0; d < b.dim; d++ {
		u := v[vs+d]
		q[vs+d] = rho * u
		ke += 0.5 * rho * u * u
	}
	return
}

// flux fills the density, momentum and energy components
func (b *base) flux(v []float64, rho, rhoe float64, dir int, f []float64) {
	var (
		l  = b.layout
		vs = l.Velocity.Start
		un = v[vs+dir]
		p  = v[l.Energy]
		ke float64
	)
	for k := l.Density.Start; k < l.Density.End(); k++ {
		f[k] = v[k] * un
	}
	for d := 0; d < b.dim; d++ {
		u := v[vs+d]
		ke += 0.5 * rho * u * u
		f[vs+d] = rho * u * un
	}
	f[vs+dir] += p
	f[l.Energy] = un * (rhoe + ke + p)
}

func (b *base) checkFinite(v []float64) (err error) {
	for i, x := range v[:b.layout.NumEqn] {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			err = fmt.Errorf("%w: component %d = %v", eos.ErrDomain, i, x)
			return
		}
	}
	return
}

func (b *base) primitiveSoundSpeed(m FlowModel, v []float64) (c float64, err error) {
	var (
		gas eos.EquationOfState
	)
	if gas, err = m.Mixture(v); err != nil {
		return
	}
	return gas.SoundSpeed(m.Density(v), v[b.layout.Energy])
}

func (b *base) checkPrimitive(m FlowModel, v []float64) (err error) {
	if err = b.checkFinite(v); err != nil {
		return
	}
	for k := b.layout.Density.Start; k < b.layout.Density.End(); k++ {
		if v[k] < 0 {
			return fmt.Errorf("%w: negative density component %d = %v", eos.ErrDomain, k, v[k])
		}
	}
	if rho := m.Density(v); !(rho > 0) {
		return fmt.Errorf("%w: density = %v", eos.ErrDomain, rho)
	}
	if p := v[b.layout.Energy]; !(p > 0) {
		return fmt.Errorf("%w: pressure = %v", eos.ErrDomain, p)
	}
	_, err = b.primitiveSoundSpeed(m, v)
	return
}

func conservedPressure(m FlowModel, q []float64) (p float64, err error) {
	v := make([]float64, m.Layout().NumEqn)
	if err = m.ConservedToPrimitive(q, v); err != nil {
		return
	}
	p = v[m.Layout().Energy]
	return
}

func conservedSoundSpeed(m FlowModel, q []float64) (c float64, err error) {
	v := make([]float64, m.Layout().NumEqn)
	if err = m.ConservedToPrimitive(q, v); err != nil {
		return
	}
	return m.PrimitiveSoundSpeed(v)
}
