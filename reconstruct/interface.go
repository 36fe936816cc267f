package reconstruct

import (
	"github.com/sirupsen/logrus"

	"github.com/notargets/gowcns/characteristic"
	"github.com/notargets/gowcns/instrument"
	"github.com/notargets/gowcns/riemann"
	"github.com/notargets/gowcns/utils"
	"github.com/notargets/gowcns/weno"
)

// Workspace is the scratch of one goroutine visiting interfaces
type Workspace struct {
	Stats   Stats
	cells   [weno.StencilWidth][]float64
	w       [][weno.StencilWidth]float64 // Characteristic stencil per field
	dv, wc  []float64
	wL, wR  []float64
	vL, vR  []float64
	ref     *characteristic.Reference
	proj    *characteristic.Projection
	riemann *riemann.Workspace
	tally   *instrument.Tally
}

func (rc *Reconstructor) NewWorkspace() (ws *Workspace) {
	n := rc.layout.NumEqn
	ws = &Workspace{
		w:       make([][weno.StencilWidth]float64, n),
		dv:      make([]float64, n),
		wc:      make([]float64, n),
		wL:      make([]float64, n),
		wR:      make([]float64, n),
		vL:      make([]float64, n),
		vR:      make([]float64, n),
		ref:     rc.proj.NewReference(),
		proj:    rc.proj.NewProjection(),
		riemann: rc.solver.NewWorkspace(),
		tally:   instrument.NewTally(rc.opts.Reporter),
	}
	for j := range ws.cells {
		ws.cells[j] = make([]float64, n)
	}
	return
}

// Flush hands the accumulated section times to the Reporter
func (ws *Workspace) Flush() { ws.tally.Flush() }

// InterfaceFlux reconstructs the states either side of face in direction dir
// from the primitive field V and writes their Riemann flux into f. The face
// lies between cells face-1 and face along dir; V must hold the three cells
// either side of it.
func (rc *Reconstructor) InterfaceFlux(V *utils.Field, dir int, face [3]int, ws *Workspace, f []float64) (res riemann.Result, err error) {
	var (
		first  = face
		stride = V.Stride[dir]
		v2, v3 = ws.cells[2], ws.cells[3]
	)
	first[dir] -= GhostWidth
	off := V.Offset(first)
	for j := range ws.cells {
		V.GetOffset(off+j*stride, ws.cells[j])
	}
	if !rc.characteristicReconstruction(dir, face, ws) {
		copy(ws.vL, v2)
		copy(ws.vR, v3)
		ws.Stats.FirstOrderInterfaces++
	}
	stop := ws.tally.Start(instrument.RiemannSolver)
	res, err = rc.solver.Flux(ws.vL, ws.vR, dir, f, ws.riemann)
	stop()
	if err != nil {
		err = &InterfaceError{Direction: dir, Index: face, Model: rc.model.Kind(), Err: err}
		return
	}
	if res.Branch == riemann.HLL {
		ws.Stats.HLLFallbacks++
		rc.degraded(dir, face, "HLL fallback")
	}
	ws.Stats.Interfaces++
	return
}

// characteristicReconstruction fills ws.vL and ws.vR, reporting false when
// the interface has to drop to first order
func (rc *Reconstructor) characteristicReconstruction(dir int, face [3]int, ws *Workspace) (ok bool) {
	var (
		n  = rc.layout.NumEqn
		v2 = ws.cells[2]
	)
	stop := ws.tally.Start(instrument.CharacteristicDecomposition)
	err := rc.proj.Reference(v2, ws.cells[3], ws.ref)
	if err == nil {
		err = rc.proj.Build(ws.ref, dir, ws.proj)
	}
	if err != nil {
		stop()
		rc.degradedErr(dir, face, "first order interface", err)
		return false
	}
	// Deviations from the upwind cell keep uniform data exact
	for j, cell := range ws.cells {
		for i := 0; i < n; i++ {
			ws.dv[i] = cell[i] - v2[i]
		}
		ws.proj.ToCharacteristic(ws.dv, ws.wc)
		for m := 0; m < n; m++ {
			ws.w[m][j] = ws.wc[m]
		}
	}
	stop()

	stop = ws.tally.Start(instrument.WENOInterpolation)
	for m := 0; m < n; m++ {
		var fieldOK bool
		if ws.wL[m], ws.wR[m], fieldOK = rc.interp.Interpolate(ws.w[m][:]); !fieldOK {
			ws.wL[m], ws.wR[m] = 0, ws.w[m][3]
			ws.Stats.FirstOrderFields++
			rc.log.WithFields(logrus.Fields{
				"direction": dir,
				"index":     face,
				"field":     m,
			}).Debug("first order characteristic field")
		}
	}
	stop()

	stop = ws.tally.Start(instrument.CharacteristicDecomposition)
	ws.proj.ToPrimitive(ws.wL, ws.dv)
	for i := 0; i < n; i++ {
		ws.vL[i] = v2[i] + ws.dv[i]
	}
	ws.proj.ToPrimitive(ws.wR, ws.dv)
	for i := 0; i < n; i++ {
		ws.vR[i] = v2[i] + ws.dv[i]
	}
	stop()

	if err = rc.model.CheckPrimitive(ws.vL); err == nil {
		err = rc.model.CheckPrimitive(ws.vR)
	}
	if err != nil {
		rc.degradedErr(dir, face, "first order interface", err)
		return false
	}
	return true
}

func (rc *Reconstructor) degraded(dir int, face [3]int, msg string) {
	rc.log.WithFields(logrus.Fields{
		"direction": dir,
		"index":     face,
	}).Debug(msg)
}

func (rc *Reconstructor) degradedErr(dir int, face [3]int, msg string, err error) {
	rc.log.WithFields(logrus.Fields{
		"direction": dir,
		"index":     face,
	}).WithError(err).Debug(msg)
}
