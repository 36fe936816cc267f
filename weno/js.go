package weno

import (
	"github.com/notargets/gowcns/utils"
)

var linearJS = [3]float64{1. / 16, 10. / 16, 5. / 16}

// JS is the fifth order WCNS with Jiang-Shu weights, optionally with the
// Henrick mapping of the weights
type JS struct {
	Parameters
	Mapped bool
}

func (js *JS) Name() string {
	if js.Mapped {
		return WCNS5JSM.Print()
	}
	return WCNS5JS.Print()
}

func (js *JS) Interpolate(s []float64) (wL, wR float64, ok bool) {
	var (
		okL, okR bool
		r        = mirror(s)
	)
	wL, okL = js.interpolate(s)
	wR, okR = js.interpolate(r[:])
	ok = okL && okR
	return
}

func (js *JS) interpolate(s []float64) (w float64, ok bool) {
	var (
		q     = candidates(s)
		omega [3]float64
	)
	if omega, ok = js.weights(s); !ok {
		return
	}
	w = s[2]
	for k := 0; k < 3; k++ {
		w += omega[k] * q[k]
	}
	ok = finite(w)
	return
}

func (js *JS) weights(s []float64) (omega [3]float64, ok bool) {
	var (
		beta = smoothness(s)
		eps  = js.Epsilon
		bmin = min(beta[0], beta[1], beta[2])
		sum  float64
	)
	// Scaled by the smallest indicator so no term overflows
	for k := 0; k < 3; k++ {
		omega[k] = linearJS[k] * utils.POW((bmin+eps)/(beta[k]+eps), js.Q)
		sum += omega[k]
	}
	if !finite(sum) || !(sum > 0) {
		return
	}
	for k := 0; k < 3; k++ {
		omega[k] /= sum
	}
	if js.Mapped {
		sum = 0
		for k := 0; k < 3; k++ {
			omega[k] = henrick(omega[k], linearJS[k])
			sum += omega[k]
		}
		for k := 0; k < 3; k++ {
			omega[k] /= sum
		}
	}
	ok = finite(omega[0]) && finite(omega[1]) && finite(omega[2])
	return
}

func henrick(w, d float64) float64 {
	return w * (d + d*d - 3*d*w + w*w) / (d*d + w*(1-2*d))
}
