package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"

	"github.com/notargets/gowcns/characteristic"
	"github.com/notargets/gowcns/eos"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/reconstruct"
	"github.com/notargets/gowcns/riemann"
	"github.com/notargets/gowcns/weno"
)

type Species struct {
	Gamma float64 `json:"Gamma"`
	PInf  float64 `json:"PInf"`
	Cv    float64 `json:"Cv"` // Mass fraction mixtures only
}

// State is a primitive state given by its parts
type State struct {
	Density   []float64 `json:"Density"` // One per species for the five equation model
	Velocity  []float64 `json:"Velocity"`
	Pressure  float64   `json:"Pressure"`
	Fractions []float64 `json:"Fractions"` // The first N-1 species
}

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title            string    `json:"Title"`
	FlowModelName    string    `json:"FlowModel"`
	Dimension        int       `json:"Dimension"`
	Species          []Species `json:"Species"`
	Scheme           string    `json:"Scheme"`
	Epsilon          float64   `json:"Epsilon"`
	P                int       `json:"P"`
	Q                int       `json:"Q"`
	C                float64   `json:"C"`
	AlphaTau         float64   `json:"AlphaTau"`
	ReferenceAverage string    `json:"ReferenceAverage"`
	WaveSpeeds       string    `json:"WaveSpeeds"`
	Hybrid           *bool     `json:"Hybrid"`
	ParallelDegree   int       `json:"ParallelDegree"`
	Cells            int       `json:"Cells"`
	Left             State     `json:"Left"`
	Right            State     `json:"Right"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Flow Model\n", ip.FlowModelName)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	for i, sp := range ip.Species {
		fmt.Printf("Species[%d] = Gamma %8.5f, PInf %8.5g, Cv %8.5g\n", i, sp.Gamma, sp.PInf, sp.Cv)
	}
	fmt.Printf("[%s]\t\t\t= Scheme\n", ip.Scheme)
	fmt.Printf("[%s]\t\t\t= Reference Average\n", ip.ReferenceAverage)
	fmt.Printf("[%s]\t\t\t= Wave Speeds\n", ip.WaveSpeeds)
	fmt.Printf("[%v]\t\t\t= Hybrid\n", ip.hybrid())
	fmt.Printf("[%d]\t\t\t\t= Cells\n", ip.Cells)
	fmt.Printf("Left  = %+v\n", ip.Left)
	fmt.Printf("Right = %+v\n", ip.Right)
}

func (ip *InputParameters) hybrid() bool {
	if ip.Hybrid == nil {
		return true
	}
	return *ip.Hybrid
}

func (ip *InputParameters) dimension() int {
	if ip.Dimension == 0 {
		return 1
	}
	return ip.Dimension
}

func (ip *InputParameters) FlowModel() (m flowmodel.FlowModel, err error) {
	var (
		kind = flowmodel.SingleSpecies
		dim  = ip.dimension()
	)
	if ip.FlowModelName != "" {
		if kind, err = flowmodel.NewKind(ip.FlowModelName); err != nil {
			return
		}
	}
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("dimension %d out of range [1,3]", dim)
		return
	}
	switch kind {
	case flowmodel.SingleSpecies:
		var sg *eos.StiffenedGas
		switch len(ip.Species) {
		case 0:
			sg = eos.NewIdealGas(1.4)
		case 1:
			if sg, err = eos.NewStiffenedGas(ip.Species[0].Gamma, ip.Species[0].PInf); err != nil {
				return
			}
		default:
			err = fmt.Errorf("%s takes one species, have %d", kind.Print(), len(ip.Species))
			return
		}
		m = flowmodel.NewSingleSpecies(dim, sg)
	case flowmodel.FourEquation:
		gamma := make([]float64, len(ip.Species))
		cv := make([]float64, len(ip.Species))
		for i, sp := range ip.Species {
			gamma[i], cv[i] = sp.Gamma, sp.Cv
		}
		var mm *eos.MassFractionMixture
		if mm, err = eos.NewMassFractionMixture(gamma, cv); err != nil {
			return
		}
		m, err = flowmodel.NewFourEquation(dim, mm)
	case flowmodel.FiveEquation:
		species := make([]eos.StiffenedGas, len(ip.Species))
		for i, sp := range ip.Species {
			species[i] = eos.StiffenedGas{Gamma: sp.Gamma, PInf: sp.PInf}
		}
		var vm *eos.VolumeFractionMixture
		if vm, err = eos.NewVolumeFractionMixture(species); err != nil {
			return
		}
		m, err = flowmodel.NewFiveEquation(dim, vm)
	}
	return
}

// Interpolator builds the scheme with its default parameters overridden by
// any that are set
func (ip *InputParameters) Interpolator() (interp weno.Interpolator, err error) {
	var (
		s = weno.WCNS6LD
	)
	if ip.Scheme != "" {
		if s, err = weno.NewScheme(ip.Scheme); err != nil {
			return
		}
	}
	p := weno.DefaultParameters(s)
	if ip.Epsilon != 0 {
		p.Epsilon = ip.Epsilon
	}
	if ip.P != 0 {
		p.P = ip.P
	}
	if ip.Q != 0 {
		p.Q = ip.Q
	}
	if ip.C != 0 {
		p.C = ip.C
	}
	if ip.AlphaTau != 0 {
		p.AlphaTau = ip.AlphaTau
	}
	return weno.New(s, p)
}

func (ip *InputParameters) Options(log logrus.FieldLogger) (opts reconstruct.Options, err error) {
	opts = reconstruct.DefaultOptions()
	opts.Log = log
	opts.ParallelDegree = ip.ParallelDegree
	opts.Riemann.Hybrid = ip.hybrid()
	if ip.ReferenceAverage != "" {
		if opts.Average, err = characteristic.NewAverage(ip.ReferenceAverage); err != nil {
			return
		}
	}
	if ip.WaveSpeeds != "" {
		if opts.Riemann.WaveSpeeds, err = riemann.NewWaveSpeedEstimate(ip.WaveSpeeds); err != nil {
			return
		}
	}
	opts.Interpolator, err = ip.Interpolator()
	return
}

// Primitive lays out the state for model m
func (s State) Primitive(m flowmodel.FlowModel) (v []float64, err error) {
	var (
		l = m.Layout()
	)
	switch {
	case len(s.Density) != l.Density.Len:
		err = fmt.Errorf("%s needs %d densities, have %d", m.Kind().Print(), l.Density.Len, len(s.Density))
	case len(s.Velocity) > l.Velocity.Len:
		err = fmt.Errorf("%d velocity components in %d dimensions", len(s.Velocity), l.Velocity.Len)
	case len(s.Fractions) != l.Fraction.Len:
		err = fmt.Errorf("%s needs %d fractions, have %d", m.Kind().Print(), l.Fraction.Len, len(s.Fractions))
	}
	if err != nil {
		return
	}
	v = make([]float64, l.NumEqn)
	copy(v[l.Density.Start:], s.Density)
	copy(v[l.Velocity.Start:], s.Velocity)
	v[l.Energy] = s.Pressure
	copy(v[l.Fraction.Start:], s.Fractions)
	if err = m.CheckPrimitive(v); err != nil {
		v = nil
	}
	return
}
