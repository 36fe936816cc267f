package eos

import (
	"fmt"
	"math"
)

// MixingRule builds the equation of state of a mixture from its full set of
// species fractions, which must sum to one.
type MixingRule interface {
	NumSpecies() int
	Mix(fractions []float64) (EquationOfState, error)
}

// MassFractionMixture mixes ideal gases by mass fraction:
// gamma = sum(Y*cp) / sum(Y*cv)
type MassFractionMixture struct {
	Gamma, Cv []float64
}

func NewMassFractionMixture(gamma, cv []float64) (mm *MassFractionMixture, err error) {
	if len(gamma) < 2 || len(gamma) != len(cv) {
		err = fmt.Errorf("%w: need matching gamma and cv for at least two species, have %d and %d",
			ErrDomain, len(gamma), len(cv))
		return
	}
	for k := range gamma {
		if !(gamma[k] > 1) || !(cv[k] > 0) {
			err = fmt.Errorf("%w: species %d gamma = %v, cv = %v", ErrDomain, k, gamma[k], cv[k])
			return
		}
	}
	mm = &MassFractionMixture{Gamma: gamma, Cv: cv}
	return
}

func (mm *MassFractionMixture) NumSpecies() int { return len(mm.Gamma) }

func (mm *MassFractionMixture) Mix(Y []float64) (e EquationOfState, err error) {
	var (
		sg StiffenedGas
	)
	if sg, err = mm.MixGas(Y); err != nil {
		return
	}
	e = &sg
	return
}

// MixGas is Mix returning the mixture by value
func (mm *MassFractionMixture) MixGas(Y []float64) (sg StiffenedGas, err error) {
	var (
		cp, cv float64
	)
	for k, y := range Y {
		cv += y * mm.Cv[k]
		cp += y * mm.Cv[k] * mm.Gamma[k]
	}
	if !(cv > 0) || !(cp > cv) {
		err = fmt.Errorf("%w: mass fractions %v give cp = %v, cv = %v", ErrDomain, Y, cp, cv)
		return
	}
	sg = StiffenedGas{Gamma: cp / cv}
	return
}

// VolumeFractionMixture mixes stiffened gases by volume fraction with
// isobaric closure: 1/(gamma-1) and gamma*pInf/(gamma-1) are volume averaged.
type VolumeFractionMixture struct {
	Species []StiffenedGas
}

func NewVolumeFractionMixture(species []StiffenedGas) (vm *VolumeFractionMixture, err error) {
	if len(species) < 2 {
		err = fmt.Errorf("%w: need at least two species, have %d", ErrDomain, len(species))
		return
	}
	for k, sg := range species {
		if _, err = NewStiffenedGas(sg.Gamma, sg.PInf); err != nil {
			err = fmt.Errorf("species %d: %w", k, err)
			return
		}
	}
	vm = &VolumeFractionMixture{Species: species}
	return
}

func (vm *VolumeFractionMixture) NumSpecies() int { return len(vm.Species) }

func (vm *VolumeFractionMixture) Mix(alpha []float64) (e EquationOfState, err error) {
	var (
		sg StiffenedGas
	)
	if sg, err = vm.MixGas(alpha); err != nil {
		return
	}
	e = &sg
	return
}

// MixGas is Mix returning the mixture by value
func (vm *VolumeFractionMixture) MixGas(alpha []float64) (sg StiffenedGas, err error) {
	var (
		G, Pi float64
	)
	for k, a := range alpha {
		sg := vm.Species[k]
		G += a / (sg.Gamma - 1)
		Pi += a * sg.Gamma * sg.PInf / (sg.Gamma - 1)
	}
	if !(G > 0) || math.IsInf(G, 0) || math.IsNaN(Pi) {
		err = fmt.Errorf("%w: volume fractions %v", ErrDomain, alpha)
		return
	}
	sg = StiffenedGas{Gamma: 1 + 1/G, PInf: Pi / (G + 1)}
	return
}

// Single adapts one equation of state to the MixingRule contract
type Single struct {
	EOS EquationOfState
}

func (s Single) NumSpecies() int { return 1 }

func (s Single) Mix(_ []float64) (EquationOfState, error) { return s.EOS, nil }
