package weno

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ConvergenceStudy records interpolation errors of one scheme on a sequence
// of refined grids
type ConvergenceStudy struct {
	Title          string
	NumPTS         []int
	LeftRMS        []float64
	RightRMS       []float64
	LeftMAX        []float64
	RightMAX       []float64
	FailedStencils int
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{Title: title}
}

func (cs *ConvergenceStudy) Add(numPTS int, leftRMS, rightRMS, leftMAX, rightMAX float64) {
	cs.NumPTS = append(cs.NumPTS, numPTS)
	cs.LeftRMS = append(cs.LeftRMS, leftRMS)
	cs.RightRMS = append(cs.RightRMS, rightRMS)
	cs.LeftMAX = append(cs.LeftMAX, leftMAX)
	cs.RightMAX = append(cs.RightMAX, rightMAX)
}

// Study interpolates f, sampled at the nodes of a periodic unit grid, to every
// midpoint for each resolution in numPTS
func Study(ip Interpolator, f func(x float64) float64, numPTS []int) (cs *ConvergenceStudy) {
	cs = NewConvergenceStudy(ip.Name())
	for _, n := range numPTS {
		var (
			h      = 1. / float64(n)
			s      = make([]float64, StencilWidth)
			errL   = make([]float64, n)
			errR   = make([]float64, n)
			half   = StencilWidth/2 - 1
			target float64
		)
		for i := 0; i < n; i++ {
			for j := range s {
				s[j] = f(float64(i+j-half) * h)
			}
			target = f((float64(i) + 0.5) * h)
			wL, wR, ok := ip.Interpolate(s)
			if !ok {
				cs.FailedStencils++
				continue
			}
			errL[i], errR[i] = wL-target, wR-target
		}
		rms := 1 / math.Sqrt(float64(n))
		cs.Add(n, rms*floats.Norm(errL, 2), rms*floats.Norm(errR, 2),
			floats.Norm(errL, math.Inf(1)), floats.Norm(errR, math.Inf(1)))
	}
	return
}

// Orders returns the observed RMS order between successive resolutions
func (cs *ConvergenceStudy) Orders() (left, right []float64) {
	for i := 1; i < len(cs.NumPTS); i++ {
		ratio := math.Log(float64(cs.NumPTS[i]) / float64(cs.NumPTS[i-1]))
		left = append(left, math.Log(cs.LeftRMS[i-1]/cs.LeftRMS[i])/ratio)
		right = append(right, math.Log(cs.RightRMS[i-1]/cs.RightRMS[i])/ratio)
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	left, right := cs.Orders()
	fmt.Printf("Title = %s\n", cs.Title)
	for i := range cs.NumPTS {
		fmt.Printf("%6d, %12.5e, %12.5e, %12.5e, %12.5e", cs.NumPTS[i],
			cs.LeftRMS[i], cs.RightRMS[i], cs.LeftMAX[i], cs.RightMAX[i])
		if i > 0 {
			fmt.Printf(", order %5.2f, %5.2f", left[i-1], right[i-1])
		}
		fmt.Printf("\n")
	}
	if cs.FailedStencils != 0 {
		fmt.Printf("%d stencils failed\n", cs.FailedStencils)
	}
}
