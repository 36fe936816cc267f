package InputParameters

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowcns/characteristic"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/riemann"
	"github.com/notargets/gowcns/weno"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Water Air Interface
FlowModel: five-equation
Dimension: 2
Species:
  - Gamma: 4.4
    PInf: 6.e8
  - Gamma: 1.4
Scheme: wcns5-jsm
Q: 3
ReferenceAverage: roe
WaveSpeeds: einfeldt
Hybrid: false
ParallelDegree: 2
Cells: 200
Left:
  Density: [1000, 0]
  Velocity: [0, 0]
  Pressure: 1.e9
  Fractions: [1]
Right:
  Density: [0, 50]
  Velocity: [0, 0]
  Pressure: 1.e5
  Fractions: [0]
`)
	var input InputParameters
	require.NoError(t, input.Parse(fileInput))
	input.Print()
	assert.Equal(t, "Water Air Interface", input.Title)
	assert.Equal(t, 6.e8, input.Species[0].PInf)
	assert.Equal(t, 200, input.Cells)
	{ // Flow model
		m, err := input.FlowModel()
		require.NoError(t, err)
		assert.Equal(t, flowmodel.FiveEquation, m.Kind())
		assert.Equal(t, 2, m.Dim())
		assert.Equal(t, 2, m.NumSpecies())
		vL, err := input.Left.Primitive(m)
		require.NoError(t, err)
		assert.Equal(t, []float64{1000, 0, 0, 0, 1.e9, 1}, vL)
		_, err = input.Right.Primitive(m)
		require.NoError(t, err)
	}
	{ // Reconstruction options
		opts, err := input.Options(logrus.StandardLogger())
		require.NoError(t, err)
		assert.Equal(t, characteristic.RoeAverage, opts.Average)
		assert.Equal(t, riemann.Einfeldt, opts.Riemann.WaveSpeeds)
		assert.False(t, opts.Riemann.Hybrid)
		assert.Equal(t, 2, opts.ParallelDegree)
		js, ok := opts.Interpolator.(*weno.JS)
		require.True(t, ok)
		assert.True(t, js.Mapped)
		assert.Equal(t, 3, js.Q)
		assert.Equal(t, 1.e-40, js.Epsilon)
	}
}

func TestDefaults(t *testing.T) {
	var input InputParameters
	require.NoError(t, input.Parse([]byte(`Title: Sod`)))
	m, err := input.FlowModel()
	require.NoError(t, err)
	assert.Equal(t, flowmodel.SingleSpecies, m.Kind())
	assert.Equal(t, 1, m.Dim())
	opts, err := input.Options(nil)
	require.NoError(t, err)
	assert.True(t, opts.Riemann.Hybrid)
	assert.Equal(t, riemann.Davis, opts.Riemann.WaveSpeeds)
	assert.Equal(t, weno.WCNS6LD.Print(), opts.Interpolator.Name())
	{ // Bad names and shapes
		for _, bad := range []string{
			"FlowModel: seven-equation",
			"Scheme: wcns9",
			"ReferenceAverage: geometric",
			"WaveSpeeds: guess",
			"Dimension: 4",
			"Species: [{Gamma: 1.4}, {Gamma: 1.6}]",
			"Scheme: wcns6-ld\nQ: -1",
		} {
			var ip InputParameters
			require.NoError(t, ip.Parse([]byte(bad)))
			_, errM := ip.FlowModel()
			_, errO := ip.Options(nil)
			assert.True(t, errM != nil || errO != nil, bad)
		}
		_, err = State{Density: []float64{1, 1}, Pressure: 1}.Primitive(m)
		assert.Error(t, err)
		_, err = State{Density: []float64{1}, Pressure: -1}.Primitive(m)
		assert.Error(t, err)
	}
}
