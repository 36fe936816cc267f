package riemann

import (
	"fmt"
	"math"
)

const hybridEpsilon = 1.e-40

type side struct {
	rho, un, p, c float64
}

func (s *Solver) side(v []float64, dir int, sd *side, U, F []float64) (err error) {
	if err = s.model.CheckPrimitive(v); err != nil {
		return
	}
	sd.rho = s.model.Density(v)
	sd.un = v[s.layout.Velocity.Start+dir]
	sd.p = v[s.layout.Energy]
	if sd.c, err = s.model.PrimitiveSoundSpeed(v); err != nil {
		return
	}
	if err = s.model.PrimitiveToConserved(v, U); err != nil {
		return
	}
	err = s.model.Flux(v, dir, F)
	return
}

// Flux computes the HLLC flux between primitive states vL and vR in
// direction dir into f, falling back to HLL where the contact construction
// is not valid. Valid states whose flux does not fit in a float64 are
// reported as unphysical.
func (s *Solver) Flux(vL, vR []float64, dir int, f []float64, ws *Workspace) (res Result, err error) {
	if res, err = s.flux(vL, vR, dir, f, ws); err != nil {
		return
	}
	if !finite(res.FaceVelocity) || !finite(res.MaxSignalSpeed) {
		err = fmt.Errorf("%w: face velocity %v, signal speed %v", ErrUnphysicalState,
			res.FaceVelocity, res.MaxSignalSpeed)
		return
	}
	for i, x := range f {
		if !finite(x) {
			err = fmt.Errorf("%w: %s flux component %d = %v", ErrUnphysicalState, res.Branch.Print(), i, x)
			return
		}
	}
	return
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func (s *Solver) flux(vL, vR []float64, dir int, f []float64, ws *Workspace) (res Result, err error) {
	var (
		L, R   side
		sL, sR float64
	)
	if err = s.side(vL, dir, &L, ws.UL, ws.FL); err != nil {
		err = fmt.Errorf("%w: left state: %v", ErrUnphysicalState, err)
		return
	}
	if err = s.side(vR, dir, &R, ws.UR, ws.FR); err != nil {
		err = fmt.Errorf("%w: right state: %v", ErrUnphysicalState, err)
		return
	}
	sL, sR = s.waveSpeeds(&L, &R, vL, vR, dir, ws)
	res.MaxSignalSpeed = math.Max(math.Abs(sL), math.Abs(sR))
	switch {
	case sL >= 0:
		copy(f, ws.FL)
		res.FaceVelocity, res.Branch = L.un, LeftSupersonic
		return
	case sR <= 0:
		copy(f, ws.FR)
		res.FaceVelocity, res.Branch = R.un, RightSupersonic
		return
	}
	uHLL := s.hll(&L, &R, sL, sR, ws)
	sStar, ok := contact(&L, &R, sL, sR)
	if !ok {
		copy(f, ws.FHLL)
		res.FaceVelocity, res.Branch = uHLL, HLL
		return
	}
	var uHLLC float64
	if sStar >= 0 {
		uHLLC = s.hllc(vL, &L, sL, sStar, dir, ws.UL, ws.FL, ws)
		res.Branch = LeftStar
	} else {
		uHLLC = s.hllc(vR, &R, sR, sStar, dir, ws.UR, ws.FR, ws)
		res.Branch = RightStar
	}
	if !s.opts.Hybrid || s.model.Dim() == 1 {
		copy(f, ws.FHC)
		res.FaceVelocity = uHLLC
		return
	}
	b1, b2 := s.hybridWeights(vL, vR, dir)
	vn := s.layout.Velocity.Start + dir
	for i := range f {
		if i == vn {
			f[i] = ws.FHC[i]
			continue
		}
		f[i] = b1*ws.FHC[i] + b2*ws.FHLL[i]
	}
	res.FaceVelocity = b1*uHLLC + b2*uHLL
	return
}

// waveSpeeds bounds the fan with the one sided acoustic speeds and either the
// arithmetic (Davis) or Roe (Einfeldt) averaged ones
func (s *Solver) waveSpeeds(L, R *side, vL, vR []float64, dir int, ws *Workspace) (sL, sR float64) {
	var (
		uAve = 0.5 * (L.un + R.un)
		cAve = 0.5 * (L.c + R.c)
	)
	if s.opts.WaveSpeeds == Einfeldt {
		if err := s.roe.Reference(vL, vR, ws.ref); err == nil {
			uAve, cAve = ws.ref.Velocity[dir], ws.ref.SoundSpeed
		}
	}
	sL = math.Min(uAve-cAve, L.un-L.c)
	sR = math.Max(uAve+cAve, R.un+R.c)
	return
}

// contact returns the contact wave speed and whether the star region is
// valid: finite, ordered between the outer waves, with non-negative pressure
func contact(L, R *side, sL, sR float64) (sStar float64, ok bool) {
	var (
		dL = L.rho * (sL - L.un)
		dR = R.rho * (sR - R.un)
	)
	sStar = (R.p - L.p + L.un*dL - R.un*dR) / (dL - dR)
	pStar := L.p + dL*(sStar-L.un)
	ok = !math.IsNaN(sStar) && !math.IsInf(sStar, 0) &&
		!math.IsNaN(pStar) && pStar >= 0 &&
		sL < sStar && sStar < sR
	return
}

// hll fills ws.FHLL and returns the consistent face velocity, with the wave
// speeds scaled by the fan width before they multiply the jump in U
func (s *Solver) hll(L, R *side, sL, sR float64, ws *Workspace) (uFace float64) {
	var (
		inv    = 1 / (sR - sL)
		wL, wR = sR * inv, sL * inv
	)
	for i := range ws.FHLL {
		ws.FHLL[i] = wL*ws.FL[i] - wR*ws.FR[i] + sL*wL*(ws.UR[i]-ws.UL[i])
	}
	uFace = wL*L.un - wR*R.un
	return
}

// hllc fills ws.FHC with the star state flux on the side of sK
func (s *Solver) hllc(v []float64, K *side, sK, sStar float64, dir int,
	U, F []float64, ws *Workspace) (uFace float64) {
	var (
		l   = s.layout
		chi = (sK - K.un) / (sK - sStar)
		vs  = l.Velocity.Start
	)
	for i := range ws.Ustar {
		ws.Ustar[i] = chi * U[i]
	}
	for d := 0; d < l.Velocity.Len; d++ {
		if d == dir {
			ws.Ustar[vs+d] = chi * K.rho * sStar
		} else {
			ws.Ustar[vs+d] = chi * K.rho * v[vs+d]
		}
	}
	ws.Ustar[l.Energy] = chi * (U[l.Energy] + (sStar-K.un)*(K.rho*sStar+K.p/(sK-K.un)))
	for i := range ws.FHC {
		ws.FHC[i] = F[i] + sK*(ws.Ustar[i]-U[i])
	}
	uFace = chi * sStar
	return
}

func (s *Solver) hybridWeights(vL, vR []float64, dir int) (b1, b2 float64) {
	var (
		vs     = s.layout.Velocity.Start
		dn     = vR[vs+dir] - vL[vs+dir]
		mag2   = dn * dn
		a1, a2 float64
	)
	for d := 0; d < s.layout.Velocity.Len; d++ {
		if d != dir {
			dt := vR[vs+d] - vL[vs+d]
			mag2 += dt * dt
		}
	}
	mag := math.Sqrt(mag2)
	if mag < hybridEpsilon {
		a1, a2 = 1, 0
	} else {
		a1 = math.Abs(dn) / mag
		a2 = math.Sqrt(math.Max(0, 1-a1*a1))
	}
	b1 = 0.5 + 0.5*a1/(a1+a2)
	b2 = 1 - b1
	return
}
