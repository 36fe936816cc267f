package weno

import (
	"math"

	"github.com/notargets/gowcns/utils"
)

// LD is the sixth order WCNS with low dissipation: central and upwind
// sub-stencils blended through adaptive linear weights
type LD struct {
	Parameters
}

func (ld *LD) Name() string { return WCNS6LD.Print() }

func (ld *LD) Interpolate(s []float64) (wL, wR float64, ok bool) {
	var (
		okL, okR bool
		r        = mirror(s)
	)
	wL, okL = ld.interpolate(s)
	wR, okR = ld.interpolate(r[:])
	ok = okL && okR
	return
}

func (ld *LD) interpolate(s []float64) (w float64, ok bool) {
	var (
		q     = candidates(s)
		omega [4]float64
	)
	if omega, ok = ld.weights(s); !ok {
		return
	}
	w = s[2]
	for k := 0; k < 4; k++ {
		w += omega[k] * q[k]
	}
	ok = finite(w)
	return
}

// sigma measures the local departure from smoothness of u[i-1..i+2], zero
// for linear data and one at a step
func (ld *LD) sigma(s []float64) float64 {
	var (
		eps        = ld.Epsilon
		a1, a2, a3 = s[2] - s[1], s[3] - s[2], s[4] - s[3]
	)
	theta1 := math.Abs(a1-a2) / (math.Abs(a1) + math.Abs(a2) + eps)
	theta2 := math.Abs(a2-a3) / (math.Abs(a2) + math.Abs(a3) + eps)
	return min(1, max(theta1, theta2))
}

func (ld *LD) weights(s []float64) (omega [4]float64, ok bool) {
	var (
		beta = smoothness(s)
		eps  = ld.Epsilon
		t    [4]float64
		tmax float64
		sum  float64
	)
	// The downwind stencil never counts as smoother than the others
	beta[3] = max(beta[0], beta[1], beta[2], beta[3])
	tau := math.Abs(beta[3] - (beta[0]+4*beta[1]+beta[2])/6)
	bavg := 0.25 * (beta[0] + beta[1] + beta[2] + beta[3])
	ratio := tau / (bavg + eps)
	sigma := ld.sigma(s) * min(1, ratio/ld.AlphaTau)
	d := [4]float64{
		(1 + sigma) / 32,
		(15 + 5*sigma) / 32,
		(15 - 5*sigma) / 32,
		(1 - sigma) / 32,
	}
	for k := 0; k < 4; k++ {
		t[k] = ld.C + utils.POW(tau/(beta[k]+eps), ld.P)
		tmax = max(tmax, t[k])
	}
	if !finite(tmax) {
		return
	}
	for k := 0; k < 4; k++ {
		omega[k] = d[k] * utils.POW(t[k]/tmax, ld.Q)
		sum += omega[k]
	}
	if !finite(sum) || !(sum > 0) {
		return
	}
	for k := 0; k < 4; k++ {
		omega[k] /= sum
	}
	ok = true
	return
}
