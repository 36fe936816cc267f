package characteristic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gowcns/eos"
	"github.com/notargets/gowcns/flowmodel"
)

var ErrDegenerateReference = errors.New("degenerate reference state for characteristic projection")

type Average uint8

const (
	SimpleAverage Average = iota
	RoeAverage
)

var (
	AverageNames = map[string]Average{
		"simple": SimpleAverage,
		"roe":    RoeAverage,
	}
	AveragePrintNames = []string{"Simple", "Roe"}
)

func (a Average) Print() (txt string) {
	txt = AveragePrintNames[a]
	return
}

func NewAverage(label string) (a Average, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if a, ok = AverageNames[label]; !ok {
		err = fmt.Errorf("unable to use reference average named %s", label)
	}
	return
}

// Reference is the state the flux Jacobian is linearised about at one interface
type Reference struct {
	Densities  []float64 // Partial densities, or the density of a single fluid
	Rho        float64
	Velocity   [3]float64
	SoundSpeed float64
	v          []float64 // Primitive scratch at the averaged composition
}

// Projection holds left (L) and right (R) eigenvectors of the primitive
// variable flux Jacobian in one direction, rows of L ordered by ascending
// eigenvalue: u-c, densities, tangential velocities, fractions, u+c.
type Projection struct {
	L, R        *mat.Dense
	Eigenvalues []float64
}

type Projector struct {
	model  flowmodel.FlowModel
	avg    Average
	layout flowmodel.Layout
}

func NewProjector(model flowmodel.FlowModel, avg Average) *Projector {
	return &Projector{
		model:  model,
		avg:    avg,
		layout: model.Layout(),
	}
}

func (pr *Projector) NewReference() *Reference {
	return &Reference{
		Densities: make([]float64, pr.layout.Density.Len),
		v:         make([]float64, pr.layout.NumEqn),
	}
}

func (pr *Projector) NewProjection() *Projection {
	n := pr.layout.NumEqn
	return &Projection{
		L:           mat.NewDense(n, n, nil),
		R:           mat.NewDense(n, n, nil),
		Eigenvalues: make([]float64, n),
	}
}

// Reference averages the primitive states either side of an interface
func (pr *Projector) Reference(vL, vR []float64, ref *Reference) (err error) {
	var (
		l = pr.layout
		v = ref.v
	)
	for k := l.Fraction.Start; k < l.Fraction.End(); k++ {
		v[k] = 0.5 * (vL[k] + vR[k])
	}
	switch pr.avg {
	case RoeAverage:
		err = pr.roe(vL, vR, ref)
	default:
		err = pr.simple(vL, vR, ref)
	}
	if err != nil {
		return
	}
	if !(ref.Rho > 0) || !(ref.SoundSpeed > 0) || math.IsInf(ref.SoundSpeed, 0) || math.IsInf(ref.Rho, 0) {
		err = fmt.Errorf("%w: rho = %v, c = %v", ErrDegenerateReference, ref.Rho, ref.SoundSpeed)
	}
	return
}

func (pr *Projector) simple(vL, vR []float64, ref *Reference) (err error) {
	var (
		l = pr.layout
		v = ref.v
	)
	for k := 0; k < l.Energy+1; k++ {
		v[k] = 0.5 * (vL[k] + vR[k])
	}
	copy(ref.Densities, v[l.Density.Start:l.Density.End()])
	for d := 0; d < l.Velocity.Len; d++ {
		ref.Velocity[d] = v[l.Velocity.Start+d]
	}
	ref.Rho = pr.model.Density(v)
	if ref.SoundSpeed, err = pr.model.PrimitiveSoundSpeed(v); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerateReference, err)
	}
	return
}

func (pr *Projector) roe(vL, vR []float64, ref *Reference) (err error) {
	var (
		l          = pr.layout
		v          = ref.v
		rhoL, rhoR = pr.model.Density(vL), pr.model.Density(vR)
		hL, hR     float64
		gas        eos.EquationOfState
		ke         float64
	)
	if !(rhoL > 0) || !(rhoR > 0) {
		return fmt.Errorf("%w: rhoL = %v, rhoR = %v", ErrDegenerateReference, rhoL, rhoR)
	}
	if hL, err = pr.totalEnthalpy(vL, rhoL); err != nil {
		return
	}
	if hR, err = pr.totalEnthalpy(vR, rhoR); err != nil {
		return
	}
	rhoLs, rhoRs := math.Sqrt(rhoL), math.Sqrt(rhoR)
	rhoLsRs := rhoLs + rhoRs
	ref.Rho = rhoLs * rhoRs
	for k := l.Density.Start; k < l.Density.End(); k++ {
		v[k] = 0.5 * ref.Rho * (vL[k]/rhoL + vR[k]/rhoR)
	}
	copy(ref.Densities, v[l.Density.Start:l.Density.End()])
	for d := 0; d < l.Velocity.Len; d++ {
		u := (rhoLs*vL[l.Velocity.Start+d] + rhoRs*vR[l.Velocity.Start+d]) / rhoLsRs
		ref.Velocity[d] = u
		v[l.Velocity.Start+d] = u
		ke += 0.5 * u * u
	}
	h := (rhoLs*hL + rhoRs*hR) / rhoLsRs
	v[l.Energy] = 0.5 * (vL[l.Energy] + vR[l.Energy])
	if gas, err = pr.model.Mixture(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDegenerateReference, err)
	}
	if ref.SoundSpeed, err = gas.RoeSoundSpeed(h - ke); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerateReference, err)
	}
	return
}

func (pr *Projector) totalEnthalpy(v []float64, rho float64) (H float64, err error) {
	var (
		l    = pr.layout
		p    = v[l.Energy]
		gas  eos.EquationOfState
		rhoe float64
	)
	if gas, err = pr.model.Mixture(v); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDegenerateReference, err)
	}
	if rhoe, err = gas.InternalEnergy(rho, p); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDegenerateReference, err)
	}
	H = (rhoe + p) / rho
	for d := 0; d < l.Velocity.Len; d++ {
		u := v[l.Velocity.Start+d]
		H += 0.5 * u * u
	}
	return
}

// Build fills the eigenvector matrices of the primitive flux Jacobian in
// direction dir about ref.
func (pr *Projector) Build(ref *Reference, dir int, p *Projection) (err error) {
	var (
		l        = pr.layout
		n        = l.NumEqn
		rho, c   = ref.Rho, ref.SoundSpeed
		rc, rcc  = rho * c, rho * c * c
		un       = ref.Velocity[dir]
		vn       = l.Velocity.Start + dir
		pc       = l.Energy
		row      = 1
		L, R     = p.L, p.R
		lam      = p.Eigenvalues
		finiteOK = !math.IsNaN(rc) && !math.IsInf(rcc, 0)
	)
	if !(rho > 0) || !(c > 0) || !finiteOK {
		return fmt.Errorf("%w: rho = %v, c = %v", ErrDegenerateReference, rho, c)
	}
	L.Zero()
	R.Zero()
	// Acoustic waves
	L.Set(0, vn, -0.5*rc)
	L.Set(0, pc, 0.5)
	L.Set(n-1, vn, 0.5*rc)
	L.Set(n-1, pc, 0.5)
	R.Set(vn, 0, -1/rc)
	R.Set(vn, n-1, 1/rc)
	R.Set(pc, 0, 1)
	R.Set(pc, n-1, 1)
	lam[0], lam[n-1] = un-c, un+c
	// Entropy and composition waves of each density
	for k := 0; k < l.Density.Len; k++ {
		col := l.Density.Start + k
		ratio := ref.Densities[k] / rcc
		L.Set(row, col, 1)
		L.Set(row, pc, -ratio)
		R.Set(col, row, 1)
		R.Set(col, 0, ratio)
		R.Set(col, n-1, ratio)
		lam[row] = un
		row++
	}
	// Shear waves
	for d := 0; d < l.Velocity.Len; d++ {
		if d == dir {
			continue
		}
		L.Set(row, l.Velocity.Start+d, 1)
		R.Set(l.Velocity.Start+d, row, 1)
		lam[row] = un
		row++
	}
	// Interface advection
	for k := 0; k < l.Fraction.Len; k++ {
		L.Set(row, l.Fraction.Start+k, 1)
		R.Set(l.Fraction.Start+k, row, 1)
		lam[row] = un
		row++
	}
	return
}

// ToCharacteristic projects a primitive vector onto the characteristic fields
func (p *Projection) ToCharacteristic(dv, w []float64) {
	for i := range w {
		w[i] = floats.Dot(p.L.RawRowView(i), dv)
	}
}

// ToPrimitive is the inverse of ToCharacteristic
func (p *Projection) ToPrimitive(w, dv []float64) {
	for i := range dv {
		dv[i] = floats.Dot(p.R.RawRowView(i), w)
	}
}
