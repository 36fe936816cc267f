package reconstruct

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gowcns/instrument"
	"github.com/notargets/gowcns/riemann"
	"github.com/notargets/gowcns/utils"
)

// forEachBucket splits [0, n) into contiguous buckets processed concurrently.
// When several buckets fail, the error of the lowest one is returned, which
// is the first failure in linear order since each bucket stops at its first.
func (rc *Reconstructor) forEachBucket(n int, work func(bn, lo, hi int) error) (err error) {
	var (
		np   = utils.ParallelDegree(rc.opts.ParallelDegree, n)
		pm   = utils.NewPartitionMap(np, n)
		errs = make([]error, np)
		g    errgroup.Group
	)
	for bn := 0; bn < np; bn++ {
		bn := bn
		g.Go(func() error {
			lo, hi := pm.GetBucketRange(bn)
			errs[bn] = work(bn, lo, hi)
			return errs[bn]
		})
	}
	if g.Wait() == nil {
		return
	}
	for _, err = range errs {
		if err != nil {
			return
		}
	}
	return
}

// Primitive converts the cells of Q that directional stencils read: the
// interior and the ghost layers across each face. Edge and corner ghosts are
// neither read nor converted and stay zero in V.
func (rc *Reconstructor) Primitive(Q *utils.Field) (V *utils.Field, err error) {
	var (
		r = Q.Shape.Range(true)
		n = rc.layout.NumEqn
	)
	V = utils.NewField(Q.Shape, n)
	err = rc.forEachBucket(r.Len(), func(_, lo, hi int) (err error) {
		var (
			q = make([]float64, n)
			v = make([]float64, n)
		)
		for k := lo; k < hi; k++ {
			idx := r.Index(k)
			if Q.Shape.GhostDirections(idx) > 1 {
				continue
			}
			off := Q.Offset(idx)
			Q.GetOffset(off, q)
			if err = rc.model.ConservedToPrimitive(q, v); err != nil {
				return &CellError{Index: idx, Model: rc.model.Kind(), Err: err}
			}
			V.PutOffset(off, v)
		}
		return
	})
	if err != nil {
		V = nil
	}
	return
}

// ComputeFluxesAndSources reconstructs and solves every interior interface of
// the conserved field Q with cell spacing dx. Q must carry GhostWidth ghost
// layers in each active direction; it is only read.
func (rc *Reconstructor) ComputeFluxesAndSources(Q *utils.Field, dx [3]float64) (res *Result, err error) {
	var (
		V     *utils.Field
		shape = Q.Shape
		n     = rc.layout.NumEqn
	)
	if err = rc.validate(Q, dx); err != nil {
		return
	}
	if V, err = rc.Primitive(Q); err != nil {
		return
	}
	res = &Result{}
	for dir := 0; dir < shape.Dim; dir++ {
		if err = rc.direction(V, dir, res); err != nil {
			return nil, err
		}
	}
	res.Source = utils.NewField(shape.Interior(), n)
	if rc.model.SourceFields().Len > 0 {
		t0 := time.Now()
		rc.sources(V, dx, res)
		if rc.opts.Reporter != nil {
			rc.opts.Reporter.Record(instrument.ComputeSource, time.Since(t0))
		}
	}
	if res.Stats.Degraded() {
		rc.log.WithFields(logrus.Fields{
			"interfaces":             res.Stats.Interfaces,
			"first_order_interfaces": res.Stats.FirstOrderInterfaces,
			"first_order_fields":     res.Stats.FirstOrderFields,
			"hll_fallbacks":          res.Stats.HLLFallbacks,
		}).Warn("reconstruction degraded")
	}
	return
}

func (rc *Reconstructor) direction(V *utils.Field, dir int, res *Result) (err error) {
	var (
		fs     = V.Shape.FaceShape(dir)
		faces  = fs.Range(false)
		n      = rc.layout.NumEqn
		np     = utils.ParallelDegree(rc.opts.ParallelDegree, faces.Len())
		stats  = make([]Stats, np)
		smax   = make([]float64, np)
		t0     = time.Now()
		F, Vel = utils.NewField(fs, n), utils.NewField(fs, 1)
	)
	err = rc.forEachBucket(faces.Len(), func(bn, lo, hi int) (err error) {
		var (
			ws = rc.NewWorkspace()
			f  = make([]float64, n)
		)
		defer ws.Flush()
		for k := lo; k < hi; k++ {
			var (
				face = faces.Index(k)
				r    riemann.Result
			)
			if r, err = rc.InterfaceFlux(V, dir, face, ws, f); err != nil {
				return
			}
			off := F.Offset(face)
			F.PutOffset(off, f)
			Vel.Data[off] = r.FaceVelocity
			smax[bn] = math.Max(smax[bn], r.MaxSignalSpeed)
		}
		stats[bn] = ws.Stats
		return
	})
	if err != nil {
		return
	}
	for bn := range stats {
		res.Stats.Add(stats[bn])
		res.MaxSignalSpeed = math.Max(res.MaxSignalSpeed, smax[bn])
	}
	res.Fluxes[dir], res.FaceVelocity[dir] = F, Vel
	if rc.opts.Reporter != nil {
		rc.opts.Reporter.Record(instrument.ReconstructFlux, time.Since(t0))
	}
	return
}

// sources accumulates alpha * div(u) for the advected volume fractions from
// the interface velocities consistent with the fluxes
func (rc *Reconstructor) sources(V *utils.Field, dx [3]float64, res *Result) {
	var (
		S     = res.Source
		cells = S.Shape.Range(false)
		span  = rc.model.SourceFields()
	)
	_ = rc.forEachBucket(cells.Len(), func(_, lo, hi int) error {
		for k := lo; k < hi; k++ {
			var (
				idx = cells.Index(k)
				div float64
			)
			for d := 0; d < S.Shape.Dim; d++ {
				var (
					Vel   = res.FaceVelocity[d]
					right = idx
				)
				right[d]++
				div += (Vel.At(0, right) - Vel.At(0, idx)) / dx[d]
			}
			for c := span.Start; c < span.End(); c++ {
				S.Set(c, idx, V.At(c, idx)*div)
			}
		}
		return nil
	})
}
