package riemann

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowcns/eos"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/sod_shock_tube"
)

func testModels(t *testing.T, dim int) (models []flowmodel.FlowModel) {
	mm, err := eos.NewMassFractionMixture([]float64{1.4, 1.67}, []float64{717.5, 3115.6})
	require.NoError(t, err)
	vm, err := eos.NewVolumeFractionMixture([]eos.StiffenedGas{{Gamma: 1.4}, {Gamma: 1.67}})
	require.NoError(t, err)
	four, err := flowmodel.NewFourEquation(dim, mm)
	require.NoError(t, err)
	five, err := flowmodel.NewFiveEquation(dim, vm)
	require.NoError(t, err)
	return []flowmodel.FlowModel{flowmodel.NewSingleSpecies(dim, eos.NewIdealGas(1.4)), four, five}
}

// primitive builds a state for any model from a density, velocity and
// pressure, splitting the density evenly where there are partial densities
func primitive(m flowmodel.FlowModel, rho float64, u [3]float64, p, frac float64) (v []float64) {
	l := m.Layout()
	v = make([]float64, l.NumEqn)
	for k := l.Density.Start; k < l.Density.End(); k++ {
		v[k] = rho / float64(l.Density.Len)
	}
	for d := 0; d < l.Velocity.Len; d++ {
		v[l.Velocity.Start+d] = u[d]
	}
	v[l.Energy] = p
	for k := 0; k < l.Fraction.Len; k++ {
		v[l.Fraction.Start+k] = frac
	}
	return
}

func TestConsistency(t *testing.T) {
	for _, dim := range []int{1, 2, 3} {
		for _, m := range testModels(t, dim) {
			for _, wse := range []WaveSpeedEstimate{Davis, Einfeldt} {
				var (
					s  = NewSolver(m, Options{WaveSpeeds: wse, Hybrid: true})
					ws = s.NewWorkspace()
					n  = m.Layout().NumEqn
					v  = primitive(m, 1.2, [3]float64{0.3, -0.2, 0.1}, 0.9, 0.4)
					f  = make([]float64, n)
					fe = make([]float64, n)
				)
				for dir := 0; dir < dim; dir++ {
					res, err := s.Flux(v, v, dir, f, ws)
					require.NoError(t, err)
					require.NoError(t, m.Flux(v, dir, fe))
					for i := range f {
						assert.InDeltaf(t, fe[i], f[i], 1.e-12*(1+math.Abs(fe[i])),
							"%s dim %d dir %d component %d", m.Kind(), dim, dir, i)
					}
					assert.InDelta(t, v[m.Layout().Velocity.Start+dir], res.FaceVelocity, 1.e-12)
					assert.True(t, res.MaxSignalSpeed > 0)
				}
			}
		}
	}
}

func TestSupersonic(t *testing.T) {
	for _, m := range testModels(t, 2) {
		var (
			s  = NewSolver(m, DefaultOptions())
			ws = s.NewWorkspace()
			n  = m.Layout().NumEqn
			f  = make([]float64, n)
			fe = make([]float64, n)
		)
		{ // Everything moves right, the flux is the left flux
			vL := primitive(m, 1, [3]float64{5, 0.1}, 1, 0.3)
			vR := primitive(m, 0.5, [3]float64{6, -0.2}, 0.7, 0.6)
			res, err := s.Flux(vL, vR, 0, f, ws)
			require.NoError(t, err)
			assert.Equal(t, LeftSupersonic, res.Branch)
			require.NoError(t, m.Flux(vL, 0, fe))
			assert.Equal(t, fe, f)
			assert.Equal(t, 5., res.FaceVelocity)
		}
		{ // Everything moves left
			vL := primitive(m, 1, [3]float64{0.1, -5}, 1, 0.3)
			vR := primitive(m, 0.5, [3]float64{0.2, -6}, 0.7, 0.6)
			res, err := s.Flux(vL, vR, 1, f, ws)
			require.NoError(t, err)
			assert.Equal(t, RightSupersonic, res.Branch)
			require.NoError(t, m.Flux(vR, 1, fe))
			assert.Equal(t, fe, f)
			assert.Equal(t, -6., res.FaceVelocity)
		}
	}
}

func TestContactPreservation(t *testing.T) {
	for _, dim := range []int{1, 2, 3} {
		for _, m := range testModels(t, dim) {
			var (
				s  = NewSolver(m, DefaultOptions())
				ws = s.NewWorkspace()
				l  = m.Layout()
				f  = make([]float64, l.NumEqn)
			)
			// Density and composition jump at rest in uniform pressure
			vL := primitive(m, 1, [3]float64{}, 2.5, 0.9)
			vR := primitive(m, 0.1, [3]float64{}, 2.5, 0.1)
			res, err := s.Flux(vL, vR, dim-1, f, ws)
			require.NoError(t, err)
			assert.Equal(t, LeftStar, res.Branch)
			assert.Equal(t, 0., res.FaceVelocity)
			for i := range f {
				expected := 0.
				if i == l.Velocity.Start+dim-1 {
					expected = 2.5
				}
				assert.Equalf(t, expected, f[i], "%s component %d", m.Kind(), i)
			}
		}
	}
}

func TestHLLFallback(t *testing.T) {
	var (
		m  = flowmodel.NewSingleSpecies(1, eos.NewIdealGas(1.4))
		s  = NewSolver(m, DefaultOptions())
		ws = s.NewWorkspace()
		f  = make([]float64, 3)
	)
	{ // Strong expansion gives a negative star pressure
		vL := []float64{1, -3, 1}
		vR := []float64{1, 3, 1}
		res, err := s.Flux(vL, vR, 0, f, ws)
		require.NoError(t, err)
		assert.Equal(t, HLL, res.Branch)
		assert.Equal(t, ws.FHLL, f)
		assert.InDelta(t, 0, res.FaceVelocity, 1.e-14)
		assert.InDelta(t, 0, f[0], 1.e-14)
		assert.InDelta(t, 3+1.4/math.Sqrt(1.4), res.MaxSignalSpeed, 1.e-12)
	}
	{ // The same expansion at extreme scale, with u ~ lambda and p ~ lambda^2
		var (
			lambda = 1.e85
			fs     = make([]float64, 3)
		)
		vL := []float64{1, -3, 1}
		vR := []float64{0.5, 3, 1}
		res, err := s.Flux(vL, vR, 0, f, ws)
		require.NoError(t, err)
		assert.Equal(t, HLL, res.Branch)
		vL = []float64{1, -3 * lambda, lambda * lambda}
		vR = []float64{0.5, 3 * lambda, lambda * lambda}
		resS, err := s.Flux(vL, vR, 0, fs, ws)
		require.NoError(t, err)
		assert.Equal(t, HLL, resS.Branch)
		assert.InEpsilon(t, lambda*f[0], fs[0], 1.e-9)
		assert.InEpsilon(t, lambda*lambda*f[1], fs[1], 1.e-9)
		assert.InEpsilon(t, lambda*lambda*lambda*f[2], fs[2], 1.e-9)
		assert.InEpsilon(t, lambda*res.MaxSignalSpeed, resS.MaxSignalSpeed, 1.e-9)
	}
	{ // A valid state whose flux overflows is unphysical
		v := []float64{1, 1.e200, 1}
		_, err := s.Flux(v, v, 0, f, ws)
		assert.ErrorIs(t, err, ErrUnphysicalState)
	}
}

func TestUnphysicalState(t *testing.T) {
	for _, m := range testModels(t, 1) {
		var (
			s  = NewSolver(m, DefaultOptions())
			ws = s.NewWorkspace()
			f  = make([]float64, m.Layout().NumEqn)
			v  = primitive(m, 1, [3]float64{}, 1, 0.5)
		)
		bad := primitive(m, 1, [3]float64{}, -1, 0.5)
		_, err := s.Flux(v, bad, 0, f, ws)
		assert.True(t, errors.Is(err, ErrUnphysicalState))
		bad = primitive(m, 0, [3]float64{}, 1, 0.5)
		_, err = s.Flux(bad, v, 0, f, ws)
		assert.True(t, errors.Is(err, ErrUnphysicalState))
		bad = primitive(m, 1, [3]float64{math.NaN()}, 1, 0.5)
		_, err = s.Flux(bad, v, 0, f, ws)
		assert.True(t, errors.Is(err, ErrUnphysicalState))
	}
}

func TestPositivity(t *testing.T) {
	var (
		m   = flowmodel.NewSingleSpecies(1, eos.NewIdealGas(1.4))
		rnd = rand.New(rand.NewSource(7))
		fL  = make([]float64, 3)
		fR  = make([]float64, 3)
		q   = make([]float64, 3)
	)
	state := func() []float64 {
		return []float64{0.5 + 1.5*rnd.Float64(), rnd.Float64() - 0.5, 0.5 + 1.5*rnd.Float64()}
	}
	for _, wse := range []WaveSpeedEstimate{Davis, Einfeldt} {
		s := NewSolver(m, Options{WaveSpeeds: wse})
		ws := s.NewWorkspace()
		for trial := 0; trial < 500; trial++ {
			a, b, c := state(), state(), state()
			resL, err := s.Flux(a, b, 0, fL, ws)
			require.NoError(t, err)
			resR, err := s.Flux(b, c, 0, fR, ws)
			require.NoError(t, err)
			lambda := 0.5 / math.Max(resL.MaxSignalSpeed, resR.MaxSignalSpeed)
			require.NoError(t, m.PrimitiveToConserved(b, q))
			for i := range q {
				q[i] -= lambda * (fR[i] - fL[i])
			}
			p, err := m.Pressure(q)
			require.NoError(t, err)
			assert.True(t, q[0] > 0)
			assert.True(t, p > 0)
		}
	}
}

func TestHybrid(t *testing.T) {
	var (
		m      = flowmodel.NewSingleSpecies(2, eos.NewIdealGas(1.4))
		hybrid = NewSolver(m, DefaultOptions())
		pure   = NewSolver(m, Options{WaveSpeeds: Davis})
		ws     = pure.NewWorkspace()
		fh     = make([]float64, 4)
		fc     = make([]float64, 4)
		fHLL   = make([]float64, 4)
	)
	{ // Pure shear, equal blend of HLLC and HLL away from normal momentum
		vL := []float64{1, 0.2, 1, 1}
		vR := []float64{0.8, 0.2, -1, 0.9}
		_, err := pure.Flux(vL, vR, 0, fc, ws)
		require.NoError(t, err)
		copy(fHLL, ws.FHLL)
		_, err = hybrid.Flux(vL, vR, 0, fh, ws)
		require.NoError(t, err)
		for i := range fh {
			if i == 1 {
				assert.Equal(t, fc[i], fh[i])
				continue
			}
			assert.InDelta(t, 0.5*fc[i]+0.5*fHLL[i], fh[i], 1.e-14)
		}
	}
	{ // Normal jump only, pure HLLC
		vL := []float64{1, 0.5, 0.3, 1}
		vR := []float64{0.8, 0.1, 0.3, 0.9}
		_, err := pure.Flux(vL, vR, 0, fc, ws)
		require.NoError(t, err)
		_, err = hybrid.Flux(vL, vR, 0, fh, ws)
		require.NoError(t, err)
		assert.Equal(t, fc, fh)
	}
	{ // One dimension never blends
		m1 := flowmodel.NewSingleSpecies(1, eos.NewIdealGas(1.4))
		s := NewSolver(m1, DefaultOptions())
		w1 := s.NewWorkspace()
		f := make([]float64, 3)
		res, err := s.Flux([]float64{1, 0, 1}, []float64{0.125, 0, 0.1}, 0, f, w1)
		require.NoError(t, err)
		assert.Equal(t, w1.FHC, f)
		assert.NotEqual(t, HLL, res.Branch)
	}
}

func TestSodInterface(t *testing.T) {
	var (
		m     = flowmodel.NewSingleSpecies(1, eos.NewIdealGas(1.4))
		L, R  = sod_shock_tube.SodLeft, sod_shock_tube.SodRight
		vL    = []float64{L.Rho, L.U, L.P}
		vR    = []float64{R.Rho, R.U, R.P}
		f     = make([]float64, 3)
		er, _ = sod_shock_tube.NewExactRiemann(1.4, L, R)
		exact = er.Flux(0)
	)
	for _, wse := range []WaveSpeedEstimate{Davis, Einfeldt} {
		s := NewSolver(m, Options{WaveSpeeds: wse})
		res, err := s.Flux(vL, vR, 0, f, s.NewWorkspace())
		require.NoError(t, err)
		assert.Equal(t, LeftStar, res.Branch)
		assert.True(t, res.FaceVelocity > 0)
		assert.True(t, res.MaxSignalSpeed >= math.Sqrt(1.4))
		for i := range f {
			assert.True(t, f[i] > 0)
		}
		// The HLLC star state is the average of the wave fan bounded by the
		// estimated speeds S_L, S_R, not the exact star state. Against the
		// exact flux (0.3954, 0.6698, 1.1539) Davis and Einfeldt both give a
		// mass flux about 9% high, a momentum flux about 27% low and an
		// energy flux within 1%.
		assert.InEpsilonf(t, exact[0], f[0], 0.10, "%s mass", wse.Print())
		assert.InEpsilonf(t, exact[1], f[1], 0.28, "%s momentum", wse.Print())
		assert.InEpsilonf(t, exact[2], f[2], 0.02, "%s energy", wse.Print())
		assert.True(t, f[0] > exact[0])
		assert.True(t, f[1] < exact[1])
	}
}

func TestOptionNames(t *testing.T) {
	w, err := NewWaveSpeedEstimate("Einfeldt")
	assert.NoError(t, err)
	assert.Equal(t, Einfeldt, w)
	assert.Equal(t, "Davis", Davis.Print())
	_, err = NewWaveSpeedEstimate("roe")
	assert.Error(t, err)
	assert.Equal(t, "HLL", HLL.Print())
}
