package weno

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrParameters = errors.New("invalid WENO parameters")

// StencilWidth is the number of cells an Interpolator reads per interface
const StencilWidth = 6

type Scheme uint8

const (
	WCNS5JS Scheme = iota
	WCNS5JSM
	WCNS6LD
	FirstOrder
)

var (
	SchemeNames = map[string]Scheme{
		"wcns5-js":    WCNS5JS,
		"wcns5-jsm":   WCNS5JSM,
		"wcns6-ld":    WCNS6LD,
		"first-order": FirstOrder,
	}
	SchemePrintNames = []string{"WCNS5-JS", "WCNS5-JS Mapped", "WCNS6-LD", "First Order"}
)

func (s Scheme) Print() (txt string) {
	txt = SchemePrintNames[s]
	return
}

func NewScheme(label string) (s Scheme, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if s, ok = SchemeNames[label]; !ok {
		err = fmt.Errorf("unable to use reconstruction scheme named %s", label)
	}
	return
}

// Interpolator evaluates a characteristic field at the midpoint interface of
// a six cell stencil s = u[i-2..i+3]. wL is biased to the left cell, wR is the
// same construction on the mirrored stencil. ok is false when the smoothness
// indicators or weights are not finite.
type Interpolator interface {
	Interpolate(s []float64) (wL, wR float64, ok bool)
	Name() string
}

type Parameters struct {
	Epsilon  float64 // Regularizes the smoothness indicators
	P, Q     int     // Exponents of the nonlinear weights
	C        float64 // Bias towards the linear weights (WCNS6-LD)
	AlphaTau float64 // Scale of the sigma damping ratio (WCNS6-LD)
}

func DefaultParameters(s Scheme) (p Parameters) {
	switch s {
	case WCNS6LD:
		p = Parameters{Epsilon: 1.e-40, P: 2, Q: 4, C: 1000, AlphaTau: 35}
	default:
		p = Parameters{Epsilon: 1.e-40, P: 1, Q: 2}
	}
	return
}

func (p Parameters) Validate(s Scheme) (err error) {
	switch {
	case s == FirstOrder:
		return
	case !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0):
		err = fmt.Errorf("%w: epsilon = %v", ErrParameters, p.Epsilon)
	case p.Q < 1:
		err = fmt.Errorf("%w: q = %d", ErrParameters, p.Q)
	case s == WCNS6LD && p.P < 1:
		err = fmt.Errorf("%w: p = %d", ErrParameters, p.P)
	case s == WCNS6LD && (!(p.C > 0) || math.IsInf(p.C, 0)):
		err = fmt.Errorf("%w: C = %v", ErrParameters, p.C)
	case s == WCNS6LD && !(p.AlphaTau > 0):
		err = fmt.Errorf("%w: alpha_tau = %v", ErrParameters, p.AlphaTau)
	}
	return
}

func New(s Scheme, p Parameters) (ip Interpolator, err error) {
	if err = p.Validate(s); err != nil {
		return
	}
	switch s {
	case WCNS5JS:
		ip = &JS{Parameters: p}
	case WCNS5JSM:
		ip = &JS{Parameters: p, Mapped: true}
	case WCNS6LD:
		ip = &LD{Parameters: p}
	case FirstOrder:
		ip = FirstOrderInterpolator{}
	default:
		err = fmt.Errorf("%w: unknown scheme %d", ErrParameters, s)
	}
	return
}

// candidates are the sub-stencil midpoint interpolants, as deviations from s[2]
func candidates(s []float64) (q [4]float64) {
	var (
		d0, d1 = s[0] - s[2], s[1] - s[2]
		d3, d4 = s[3] - s[2], s[4] - s[2]
		d5     = s[5] - s[2]
	)
	q[0] = (3*d0 - 10*d1) / 8
	q[1] = (-d1 + 3*d3) / 8
	q[2] = (6*d3 - d4) / 8
	q[3] = (15*d3 - 10*d4 + 3*d5) / 8
	return
}

// smoothness returns the indicators of the four three point sub-stencils
func smoothness(s []float64) (beta [4]float64) {
	sq := func(x float64) float64 { return x * x }
	beta[0] = 13./12*sq(s[0]-2*s[1]+s[2]) + 0.25*sq(s[0]-4*s[1]+3*s[2])
	beta[1] = 13./12*sq(s[1]-2*s[2]+s[3]) + 0.25*sq(s[1]-s[3])
	beta[2] = 13./12*sq(s[2]-2*s[3]+s[4]) + 0.25*sq(3*s[2]-4*s[3]+s[4])
	beta[3] = 13./12*sq(s[3]-2*s[4]+s[5]) + 0.25*sq(-5*s[3]+8*s[4]-3*s[5])
	return
}

func mirror(s []float64) (r [StencilWidth]float64) {
	for i := 0; i < StencilWidth; i++ {
		r[i] = s[StencilWidth-1-i]
	}
	return
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// FirstOrderInterpolator copies the cells either side of the interface
type FirstOrderInterpolator struct{}

func (FirstOrderInterpolator) Interpolate(s []float64) (wL, wR float64, ok bool) {
	return s[2], s[3], true
}

func (FirstOrderInterpolator) Name() string { return FirstOrder.Print() }
