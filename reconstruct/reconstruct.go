package reconstruct

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gowcns/characteristic"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/instrument"
	"github.com/notargets/gowcns/riemann"
	"github.com/notargets/gowcns/utils"
	"github.com/notargets/gowcns/weno"
)

// GhostWidth is the number of ghost layers each active direction must carry
const GhostWidth = weno.StencilWidth / 2

var ErrInput = errors.New("invalid reconstruction input")

type Options struct {
	Interpolator   weno.Interpolator // Defaults to WCNS6-LD
	Average        characteristic.Average
	Riemann        riemann.Options
	ParallelDegree int // Zero uses all CPUs
	Log            logrus.FieldLogger
	Reporter       instrument.Reporter
}

func DefaultOptions() Options {
	return Options{
		Average: characteristic.SimpleAverage,
		Riemann: riemann.DefaultOptions(),
	}
}

// InterfaceError is a fatal physical violation at one interface. Index is the
// face index: face i along Direction lies between cells i-1 and i.
type InterfaceError struct {
	Direction int
	Index     [3]int
	Model     flowmodel.Kind
	Err       error
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("%s: interface %v in direction %d: %v", e.Model.Print(), e.Index, e.Direction, e.Err)
}

func (e *InterfaceError) Unwrap() error { return e.Err }

// CellError is a conserved state that has no primitive equivalent
type CellError struct {
	Index [3]int
	Model flowmodel.Kind
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: cell %v: %v", e.Model.Print(), e.Index, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

type Stats struct {
	Interfaces           int
	FirstOrderInterfaces int // Whole interface reconstructed first order
	FirstOrderFields     int // Single characteristic fields reconstructed first order
	HLLFallbacks         int
}

func (s *Stats) Add(o Stats) {
	s.Interfaces += o.Interfaces
	s.FirstOrderInterfaces += o.FirstOrderInterfaces
	s.FirstOrderFields += o.FirstOrderFields
	s.HLLFallbacks += o.HLLFallbacks
}

func (s Stats) Degraded() bool {
	return s.FirstOrderInterfaces+s.FirstOrderFields+s.HLLFallbacks > 0
}

// Result holds interior face fluxes per active direction and the cell
// centered source, all without ghosts. Fluxes of inactive directions are nil.
type Result struct {
	Fluxes         [3]*utils.Field
	FaceVelocity   [3]*utils.Field
	Source         *utils.Field
	MaxSignalSpeed float64
	Stats          Stats
}

// Reconstructor computes interface fluxes and non-conservative sources for
// one flow model. It holds no per-pass state and is safe for concurrent use.
type Reconstructor struct {
	model  flowmodel.FlowModel
	layout flowmodel.Layout
	opts   Options
	interp weno.Interpolator
	proj   *characteristic.Projector
	solver *riemann.Solver
	log    logrus.FieldLogger
}

func New(model flowmodel.FlowModel, opts Options) (rc *Reconstructor, err error) {
	if model == nil {
		err = fmt.Errorf("%w: nil flow model", ErrInput)
		return
	}
	rc = &Reconstructor{
		model:  model,
		layout: model.Layout(),
		opts:   opts,
		interp: opts.Interpolator,
		proj:   characteristic.NewProjector(model, opts.Average),
		solver: riemann.NewSolver(model, opts.Riemann),
		log:    opts.Log,
	}
	if rc.interp == nil {
		if rc.interp, err = weno.New(weno.WCNS6LD, weno.DefaultParameters(weno.WCNS6LD)); err != nil {
			return nil, err
		}
	}
	if rc.log == nil {
		rc.log = logrus.StandardLogger()
	}
	rc.log = rc.log.WithField("model", model.Kind().Print())
	return
}

func (rc *Reconstructor) Model() flowmodel.FlowModel { return rc.model }

func (rc *Reconstructor) Interpolator() weno.Interpolator { return rc.interp }

func (rc *Reconstructor) validate(Q *utils.Field, dx [3]float64) (err error) {
	var (
		s = Q.Shape
	)
	if Q.NumComp != rc.layout.NumEqn {
		return fmt.Errorf("%w: %d components, model has %d", ErrInput, Q.NumComp, rc.layout.NumEqn)
	}
	if s.Dim != rc.model.Dim() {
		return fmt.Errorf("%w: field dimension %d, model dimension %d", ErrInput, s.Dim, rc.model.Dim())
	}
	for d := 0; d < s.Dim; d++ {
		switch {
		case s.N[d] < 1:
			return fmt.Errorf("%w: no cells in direction %d", ErrInput, d)
		case s.Ghost[d] < GhostWidth:
			return fmt.Errorf("%w: %d ghost layers in direction %d, need %d", ErrInput, s.Ghost[d], d, GhostWidth)
		case !(dx[d] > 0):
			return fmt.Errorf("%w: spacing %v in direction %d", ErrInput, dx[d], d)
		}
	}
	return
}
