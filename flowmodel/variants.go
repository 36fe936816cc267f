package flowmodel

import (
	"fmt"

	"github.com/notargets/gowcns/eos"
)

// Single is one fluid: [rho, rho*u, E]
type Single struct {
	base
	EOS eos.EquationOfState
}

func NewSingleSpecies(dim int, e eos.EquationOfState) (m *Single) {
	m = &Single{
		base: base{dim: dim, layout: newLayout(1, dim, 0)},
		EOS:  e,
	}
	return
}

func (m *Single) Kind() Kind                                       { return SingleSpecies }
func (m *Single) NumSpecies() int                                  { return 1 }
func (m *Single) Density(v []float64) float64                      { return v[0] }
func (m *Single) Fractions(_, all []float64)                       { all[0] = 1 }
func (m *Single) Mixture(_ []float64) (eos.EquationOfState, error) { return m.EOS, nil }
func (m *Single) SourceFields() Span                               { return Span{} }

func (m *Single) ConservedToPrimitive(q, v []float64) (err error) {
	var (
		rho = q[0]
		p   float64
	)
	if !(rho > 0) {
		return fmt.Errorf("%w: density = %v", eos.ErrDomain, rho)
	}
	v[0] = rho
	ke := m.velocityFromMomentum(rho, q, v)
	if p, err = m.EOS.Pressure(rho, q[m.layout.Energy]-ke); err != nil {
		return
	}
	v[m.layout.Energy] = p
	return
}

func (m *Single) PrimitiveToConserved(v, q []float64) (err error) {
	var (
		rho  = v[0]
		rhoe float64
	)
	if rhoe, err = m.EOS.InternalEnergy(rho, v[m.layout.Energy]); err != nil {
		return
	}
	q[0] = rho
	q[m.layout.Energy] = rhoe + m.momentumFromVelocity(rho, v, q)
	return
}

func (m *Single) Flux(v []float64, dir int, f []float64) (err error) {
	var (
		rhoe float64
	)
	if rhoe, err = m.EOS.InternalEnergy(v[0], v[m.layout.Energy]); err != nil {
		return
	}
	m.flux(v, v[0], rhoe, dir, f)
	return
}

func (m *Single) Pressure(q []float64) (float64, error)   { return conservedPressure(m, q) }
func (m *Single) SoundSpeed(q []float64) (float64, error) { return conservedSoundSpeed(m, q) }
func (m *Single) PrimitiveSoundSpeed(v []float64) (float64, error) {
	return m.primitiveSoundSpeed(m, v)
}
func (m *Single) CheckPrimitive(v []float64) error { return m.checkPrimitive(m, v) }

// MassFraction is the four equation mixture model:
// [rho, rho*u, E, rho*Y_1..rho*Y_{N-1}] with primitive fractions Y
type MassFraction struct {
	base
	Rule *eos.MassFractionMixture
	n    int
}

func NewFourEquation(dim int, rule *eos.MassFractionMixture) (m *MassFraction, err error) {
	n := rule.NumSpecies()
	if n > MaxSpecies {
		err = fmt.Errorf("%d species exceeds the maximum of %d", n, MaxSpecies)
		return
	}
	m = &MassFraction{
		base: base{dim: dim, layout: newLayout(1, dim, n-1)},
		Rule: rule,
		n:    n,
	}
	return
}

func (m *MassFraction) Kind() Kind                  { return FourEquation }
func (m *MassFraction) NumSpecies() int             { return m.n }
func (m *MassFraction) Density(v []float64) float64 { return v[0] }
func (m *MassFraction) SourceFields() Span          { return Span{} }

func (m *MassFraction) Fractions(v, all []float64) {
	var (
		fs  = m.layout.Fraction.Start
		sum float64
	)
	for k := 0; k < m.n-1; k++ {
		all[k] = v[fs+k]
		sum += all[k]
	}
	all[m.n-1] = 1 - sum
}

func (m *MassFraction) gas(v []float64) (eos.StiffenedGas, error) {
	var buf [MaxSpecies]float64
	all := buf[:m.n]
	m.Fractions(v, all)
	return m.Rule.MixGas(all)
}

func (m *MassFraction) Mixture(v []float64) (e eos.EquationOfState, err error) {
	var sg eos.StiffenedGas
	if sg, err = m.gas(v); err != nil {
		return
	}
	e = &sg
	return
}

func (m *MassFraction) ConservedToPrimitive(q, v []float64) (err error) {
	var (
		rho = q[0]
		fs  = m.layout.Fraction.Start
		sg  eos.StiffenedGas
		p   float64
	)
	if !(rho > 0) {
		return fmt.Errorf("%w: density = %v", eos.ErrDomain, rho)
	}
	v[0] = rho
	for k := 0; k < m.n-1; k++ {
		v[fs+k] = q[fs+k] / rho
	}
	ke := m.velocityFromMomentum(rho, q, v)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if p, err = sg.Pressure(rho, q[m.layout.Energy]-ke); err != nil {
		return
	}
	v[m.layout.Energy] = p
	return
}

func (m *MassFraction) PrimitiveToConserved(v, q []float64) (err error) {
	var (
		rho  = v[0]
		fs   = m.layout.Fraction.Start
		sg   eos.StiffenedGas
		rhoe float64
	)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if rhoe, err = sg.InternalEnergy(rho, v[m.layout.Energy]); err != nil {
		return
	}
	q[0] = rho
	for k := 0; k < m.n-1; k++ {
		q[fs+k] = rho * v[fs+k]
	}
	q[m.layout.Energy] = rhoe + m.momentumFromVelocity(rho, v, q)
	return
}

func (m *MassFraction) Flux(v []float64, dir int, f []float64) (err error) {
	var (
		rho  = v[0]
		fs   = m.layout.Fraction.Start
		un   = v[m.layout.Velocity.Start+dir]
		sg   eos.StiffenedGas
		rhoe float64
	)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if rhoe, err = sg.InternalEnergy(rho, v[m.layout.Energy]); err != nil {
		return
	}
	m.flux(v, rho, rhoe, dir, f)
	for k := 0; k < m.n-1; k++ {
		f[fs+k] = rho * v[fs+k] * un
	}
	return
}

func (m *MassFraction) Pressure(q []float64) (float64, error)   { return conservedPressure(m, q) }
func (m *MassFraction) SoundSpeed(q []float64) (float64, error) { return conservedSoundSpeed(m, q) }
func (m *MassFraction) PrimitiveSoundSpeed(v []float64) (float64, error) {
	return m.primitiveSoundSpeed(m, v)
}
func (m *MassFraction) CheckPrimitive(v []float64) error { return m.checkPrimitive(m, v) }

// VolumeFraction is the five equation model of Allaire et al:
// [alpha_1*rho_1..alpha_N*rho_N, rho*u, E, alpha_1..alpha_{N-1}]
type VolumeFraction struct {
	base
	Rule *eos.VolumeFractionMixture
	n    int
}

func NewFiveEquation(dim int, rule *eos.VolumeFractionMixture) (m *VolumeFraction, err error) {
	n := rule.NumSpecies()
	if n > MaxSpecies {
		err = fmt.Errorf("%d species exceeds the maximum of %d", n, MaxSpecies)
		return
	}
	m = &VolumeFraction{
		base: base{dim: dim, layout: newLayout(n, dim, n-1)},
		Rule: rule,
		n:    n,
	}
	return
}

func (m *VolumeFraction) Kind() Kind         { return FiveEquation }
func (m *VolumeFraction) NumSpecies() int    { return m.n }
func (m *VolumeFraction) SourceFields() Span { return m.layout.Fraction }

func (m *VolumeFraction) Density(v []float64) (rho float64) {
	for k := 0; k < m.n; k++ {
		rho += v[k]
	}
	return
}

func (m *VolumeFraction) Fractions(v, all []float64) {
	var (
		fs  = m.layout.Fraction.Start
		sum float64
	)
	for k := 0; k < m.n-1; k++ {
		all[k] = v[fs+k]
		sum += all[k]
	}
	all[m.n-1] = 1 - sum
}

func (m *VolumeFraction) gas(v []float64) (eos.StiffenedGas, error) {
	var buf [MaxSpecies]float64
	all := buf[:m.n]
	m.Fractions(v, all)
	return m.Rule.MixGas(all)
}

func (m *VolumeFraction) Mixture(v []float64) (e eos.EquationOfState, err error) {
	var sg eos.StiffenedGas
	if sg, err = m.gas(v); err != nil {
		return
	}
	e = &sg
	return
}

func (m *VolumeFraction) ConservedToPrimitive(q, v []float64) (err error) {
	var (
		fs  = m.layout.Fraction.Start
		rho float64
		sg  eos.StiffenedGas
		p   float64
	)
	for k := 0; k < m.n; k++ {
		if q[k] < 0 {
			return fmt.Errorf("%w: partial density %d = %v", eos.ErrDomain, k, q[k])
		}
		v[k] = q[k]
		rho += q[k]
	}
	if !(rho > 0) {
		return fmt.Errorf("%w: density = %v", eos.ErrDomain, rho)
	}
	for k := 0; k < m.n-1; k++ {
		v[fs+k] = q[fs+k]
	}
	ke := m.velocityFromMomentum(rho, q, v)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if p, err = sg.Pressure(rho, q[m.layout.Energy]-ke); err != nil {
		return
	}
	v[m.layout.Energy] = p
	return
}

func (m *VolumeFraction) PrimitiveToConserved(v, q []float64) (err error) {
	var (
		fs   = m.layout.Fraction.Start
		rho  = m.Density(v)
		sg   eos.StiffenedGas
		rhoe float64
	)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if rhoe, err = sg.InternalEnergy(rho, v[m.layout.Energy]); err != nil {
		return
	}
	copy(q[:m.n], v[:m.n])
	for k := 0; k < m.n-1; k++ {
		q[fs+k] = v[fs+k]
	}
	q[m.layout.Energy] = rhoe + m.momentumFromVelocity(rho, v, q)
	return
}

func (m *VolumeFraction) Flux(v []float64, dir int, f []float64) (err error) {
	var (
		fs   = m.layout.Fraction.Start
		un   = v[m.layout.Velocity.Start+dir]
		rho  = m.Density(v)
		sg   eos.StiffenedGas
		rhoe float64
	)
	if sg, err = m.gas(v); err != nil {
		return
	}
	if rhoe, err = sg.InternalEnergy(rho, v[m.layout.Energy]); err != nil {
		return
	}
	m.flux(v, rho, rhoe, dir, f)
	for k := 0; k < m.n-1; k++ {
		f[fs+k] = v[fs+k] * un
	}
	return
}

func (m *VolumeFraction) Pressure(q []float64) (float64, error)   { return conservedPressure(m, q) }
func (m *VolumeFraction) SoundSpeed(q []float64) (float64, error) { return conservedSoundSpeed(m, q) }
func (m *VolumeFraction) PrimitiveSoundSpeed(v []float64) (float64, error) {
	return m.primitiveSoundSpeed(m, v)
}
func (m *VolumeFraction) CheckPrimitive(v []float64) error { return m.checkPrimitive(m, v) }
