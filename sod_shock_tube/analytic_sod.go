package sod_shock_tube

import (
	"errors"
	"fmt"
	"math"
)

var ErrVacuum = errors.New("initial states generate vacuum")

// State is a one dimensional ideal gas primitive state
type State struct {
	Rho, U, P float64
}

// Sod is the classic shock tube, diaphragm at x = 0.5
var (
	SodLeft  = State{Rho: 1, U: 0, P: 1}
	SodRight = State{Rho: 0.125, U: 0, P: 0.1}
)

// ExactRiemann is the exact self similar solution of the ideal gas Riemann
// problem between L and R
type ExactRiemann struct {
	Gamma        float64
	L, R         State
	PStar, UStar float64
	cL, cR       float64
}

func NewExactRiemann(gamma float64, L, R State) (er *ExactRiemann, err error) {
	if !(L.Rho > 0) || !(R.Rho > 0) || !(L.P > 0) || !(R.P > 0) || !(gamma > 1) {
		err = fmt.Errorf("invalid Riemann problem: gamma = %v, L = %+v, R = %+v", gamma, L, R)
		return
	}
	er = &ExactRiemann{
		Gamma: gamma,
		L:     L,
		R:     R,
		cL:    math.Sqrt(gamma * L.P / L.Rho),
		cR:    math.Sqrt(gamma * R.P / R.Rho),
	}
	if 2*(er.cL+er.cR)/(gamma-1) <= R.U-L.U {
		err = ErrVacuum
		return
	}
	er.PStar = fzero(er.pressureFunction, er.guessPressure())
	fL, _ := er.waveFunction(er.PStar, L, er.cL)
	fR, _ := er.waveFunction(er.PStar, R, er.cR)
	er.UStar = 0.5*(L.U+R.U) + 0.5*(fR-fL)
	return
}

func (er *ExactRiemann) guessPressure() float64 {
	var (
		L, R = er.L, er.R
		pv   = 0.5*(L.P+R.P) - 0.125*(R.U-L.U)*(L.Rho+R.Rho)*(er.cL+er.cR)
	)
	return math.Max(1.e-8*math.Min(L.P, R.P), pv)
}

func (er *ExactRiemann) pressureFunction(P float64) (y, dy float64) {
	fL, dL := er.waveFunction(P, er.L, er.cL)
	fR, dR := er.waveFunction(P, er.R, er.cR)
	y = fL + fR + er.R.U - er.L.U
	dy = dL + dR
	return
}

// waveFunction is the velocity jump across the wave connecting state K to pressure P
func (er *ExactRiemann) waveFunction(P float64, K State, c float64) (f, df float64) {
	var (
		gamma = er.Gamma
	)
	if P > K.P { // shock
		A := 2 / ((gamma + 1) * K.Rho)
		B := (gamma - 1) / (gamma + 1) * K.P
		q := math.Sqrt(A / (B + P))
		f = (P - K.P) * q
		df = q * (1 - 0.5*(P-K.P)/(B+P))
		return
	}
	// rarefaction
	ratio := P / K.P
	f = 2 * c / (gamma - 1) * (math.Pow(ratio, (gamma-1)/(2*gamma)) - 1)
	df = math.Pow(ratio, -(gamma+1)/(2*gamma)) / (K.Rho * c)
	return
}

func fzero(f func(P float64) (y, dy float64), start float64) float64 {
	var (
		tol = 1.e-14
		P   = start
	)
	for iter := 0; iter < 100; iter++ {
		y, dy := f(P)
		Pnew := math.Max(tol, P-y/dy)
		change := 2 * math.Abs(Pnew-P) / (Pnew + P)
		P = Pnew
		if change < tol {
			break
		}
	}
	return P
}

// Sample returns the solution on the ray xi = x/t
func (er *ExactRiemann) Sample(xi float64) (s State) {
	var (
		gamma = er.Gamma
		g1    = (gamma - 1) / (2 * gamma)
		g2    = (gamma + 1) / (2 * gamma)
		g5    = 2 / (gamma + 1)
		g6    = (gamma - 1) / (gamma + 1)
		g7    = (gamma - 1) / 2
		L, R  = er.L, er.R
		pS    = er.PStar
		uS    = er.UStar
	)
	fan := func(K State, c, sign float64) State {
		cf := g5 * (c + sign*g7*(K.U-xi))
		return State{
			Rho: K.Rho * math.Pow(cf/c, 2/(gamma-1)),
			U:   g5 * (-sign*c + g7*K.U + xi),
			P:   K.P * math.Pow(cf/c, 2*gamma/(gamma-1)),
		}
	}
	if xi <= uS {
		if pS > L.P {
			sL := L.U - er.cL*math.Sqrt(g2*pS/L.P+g1)
			if xi <= sL {
				return L
			}
			return State{Rho: L.Rho * (pS/L.P + g6) / (g6*pS/L.P + 1), U: uS, P: pS}
		}
		if xi <= L.U-er.cL {
			return L
		}
		if xi > uS-er.cL*math.Pow(pS/L.P, g1) {
			return State{Rho: L.Rho * math.Pow(pS/L.P, 1/gamma), U: uS, P: pS}
		}
		return fan(L, er.cL, 1)
	}
	if pS > R.P {
		sR := R.U + er.cR*math.Sqrt(g2*pS/R.P+g1)
		if xi >= sR {
			return R
		}
		return State{Rho: R.Rho * (pS/R.P + g6) / (g6*pS/R.P + 1), U: uS, P: pS}
	}
	if xi >= R.U+er.cR {
		return R
	}
	if xi <= uS+er.cR*math.Pow(pS/R.P, g1) {
		return State{Rho: R.Rho * math.Pow(pS/R.P, 1/gamma), U: uS, P: pS}
	}
	return fan(R, er.cR, -1)
}

// Flux is the exact Euler flux [rho*u, rho*u*u+p, u*(E+p)] on the ray xi
func (er *ExactRiemann) Flux(xi float64) (F [3]float64) {
	s := er.Sample(xi)
	E := s.P/(er.Gamma-1) + 0.5*s.Rho*s.U*s.U
	F = [3]float64{s.Rho * s.U, s.Rho*s.U*s.U + s.P, s.U * (E + s.P)}
	return
}

// SOD_calc samples the Sod solution at time t on [0,1] at the ends and either
// side of each wave: rarefaction head and tail, contact and shock
func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	var (
		gamma   = 1.4
		x0      = 0.5
		er, _   = NewExactRiemann(gamma, SodLeft, SodRight)
		cL      = er.cL
		cStarL  = cL * math.Pow(er.PStar/SodLeft.P, (gamma-1)/(2*gamma))
		shock   = er.ShockSpeed()
		x1      = x0 - cL*t
		x2      = x0 + (er.UStar-cStarL)*t
		x3      = x0 + er.UStar*t
		x4      = x0 + shock*t
		tol     = 1.e-8
		samples = []float64{0, x1 - tol, x1 + tol, x2 - tol, x2 + tol, x3 - tol, x3 + tol, x4 - tol, x4 + tol, 1}
	)
	X = samples
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		s := er.Sample((x - x0) / t)
		Rho[i], P[i], U[i] = s.Rho, s.P, s.U
		E[i] = s.P / ((gamma - 1.) * s.Rho)
	}
	return
}

// ShockSpeed is the speed of the right moving wave when it is a shock, the
// speed of its head otherwise
func (er *ExactRiemann) ShockSpeed() float64 {
	var (
		gamma = er.Gamma
		R     = er.R
	)
	if er.PStar > R.P {
		return R.U + er.cR*math.Sqrt((gamma+1)/(2*gamma)*er.PStar/R.P+(gamma-1)/(2*gamma))
	}
	return R.U + er.cR
}
