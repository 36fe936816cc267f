package eos

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned when a state lies outside the domain of an equation of state
var ErrDomain = errors.New("state outside equation of state domain")

// EquationOfState closes the Euler equations for one fluid or one mixture
// composition. Energies are per unit volume.
type EquationOfState interface {
	Pressure(rho, rhoe float64) (p float64, err error)
	InternalEnergy(rho, p float64) (rhoe float64, err error)
	SoundSpeed(rho, p float64) (c float64, err error)
	// RoeSoundSpeed evaluates c from the static specific enthalpy h = (rhoe+p)/rho
	RoeSoundSpeed(h float64) (c float64, err error)
}

// StiffenedGas is p = (Gamma-1)*rhoe - Gamma*PInf, an ideal gas when PInf is zero
type StiffenedGas struct {
	Gamma, PInf float64
}

func NewIdealGas(gamma float64) *StiffenedGas {
	return &StiffenedGas{Gamma: gamma}
}

func NewStiffenedGas(gamma, pInf float64) (sg *StiffenedGas, err error) {
	if !(gamma > 1) || pInf < 0 || math.IsInf(pInf, 0) || math.IsInf(gamma, 0) {
		err = fmt.Errorf("%w: gamma = %v, pInf = %v", ErrDomain, gamma, pInf)
		return
	}
	sg = &StiffenedGas{Gamma: gamma, PInf: pInf}
	return
}

func (sg *StiffenedGas) Pressure(rho, rhoe float64) (p float64, err error) {
	if !(rho > 0) || math.IsNaN(rhoe) || math.IsInf(rhoe, 0) {
		err = fmt.Errorf("%w: rho = %v, rhoe = %v", ErrDomain, rho, rhoe)
		return
	}
	p = (sg.Gamma-1)*rhoe - sg.Gamma*sg.PInf
	return
}

func (sg *StiffenedGas) InternalEnergy(rho, p float64) (rhoe float64, err error) {
	if !(rho > 0) || !(p+sg.PInf > 0) || math.IsInf(p, 0) {
		err = fmt.Errorf("%w: rho = %v, p = %v", ErrDomain, rho, p)
		return
	}
	rhoe = (p + sg.Gamma*sg.PInf) / (sg.Gamma - 1)
	return
}

func (sg *StiffenedGas) SoundSpeed(rho, p float64) (c float64, err error) {
	var (
		c2 = sg.Gamma * (p + sg.PInf) / rho
	)
	if !(rho > 0) || !(c2 > 0) || math.IsInf(c2, 0) {
		err = fmt.Errorf("%w: rho = %v, p = %v", ErrDomain, rho, p)
		return
	}
	c = math.Sqrt(c2)
	return
}

func (sg *StiffenedGas) RoeSoundSpeed(h float64) (c float64, err error) {
	var (
		c2 = (sg.Gamma - 1) * h
	)
	if !(c2 > 0) || math.IsInf(c2, 0) {
		err = fmt.Errorf("%w: enthalpy = %v", ErrDomain, h)
		return
	}
	c = math.Sqrt(c2)
	return
}
