package riemann

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/gowcns/characteristic"
	"github.com/notargets/gowcns/flowmodel"
)

var ErrUnphysicalState = errors.New("unphysical state at Riemann solver")

type WaveSpeedEstimate uint8

const (
	Davis WaveSpeedEstimate = iota
	Einfeldt
)

var (
	WaveSpeedNames = map[string]WaveSpeedEstimate{
		"davis":    Davis,
		"einfeldt": Einfeldt,
	}
	WaveSpeedPrintNames = []string{"Davis", "Einfeldt"}
)

func (ws WaveSpeedEstimate) Print() (txt string) {
	txt = WaveSpeedPrintNames[ws]
	return
}

func NewWaveSpeedEstimate(label string) (ws WaveSpeedEstimate, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if ws, ok = WaveSpeedNames[label]; !ok {
		err = fmt.Errorf("unable to use wave speed estimate named %s", label)
	}
	return
}

// Branch identifies the part of the approximate wave fan sampled at the interface
type Branch uint8

const (
	LeftSupersonic Branch = iota
	LeftStar
	RightStar
	RightSupersonic
	HLL
)

var BranchPrintNames = []string{"Left Supersonic", "Left Star", "Right Star", "Right Supersonic", "HLL"}

func (b Branch) Print() string { return BranchPrintNames[b] }

type Options struct {
	WaveSpeeds WaveSpeedEstimate
	// Hybrid blends HLL into all but the normal momentum flux where the
	// velocity jump is transverse to the interface
	Hybrid bool
}

func DefaultOptions() Options {
	return Options{WaveSpeeds: Davis, Hybrid: true}
}

type Result struct {
	MaxSignalSpeed float64
	// FaceVelocity is the interface normal velocity consistent with the flux
	FaceVelocity float64
	Branch       Branch
}

// Solver is safe for concurrent use; scratch lives in a Workspace per goroutine
type Solver struct {
	model  flowmodel.FlowModel
	opts   Options
	layout flowmodel.Layout
	roe    *characteristic.Projector
}

func NewSolver(model flowmodel.FlowModel, opts Options) *Solver {
	return &Solver{
		model:  model,
		opts:   opts,
		layout: model.Layout(),
		roe:    characteristic.NewProjector(model, characteristic.RoeAverage),
	}
}

func (s *Solver) Options() Options { return s.opts }

type Workspace struct {
	UL, UR, FL, FR   []float64
	Ustar, FHLL, FHC []float64
	ref              *characteristic.Reference
}

func (s *Solver) NewWorkspace() (ws *Workspace) {
	n := s.layout.NumEqn
	ws = &Workspace{
		UL:    make([]float64, n),
		UR:    make([]float64, n),
		FL:    make([]float64, n),
		FR:    make([]float64, n),
		Ustar: make([]float64, n),
		FHLL:  make([]float64, n),
		FHC:   make([]float64, n),
		ref:   s.roe.NewReference(),
	}
	return
}
