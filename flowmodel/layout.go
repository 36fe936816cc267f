package flowmodel

// Span is a contiguous block of components
type Span struct {
	Start, Len int
}

func (s Span) End() int { return s.Start + s.Len }

// Layout places the fields of a state vector. The same layout serves the
// conserved vector (densities, momentum, total energy, fractions) and the
// primitive vector (densities, velocity, pressure, fractions).
type Layout struct {
	Density  Span
	Velocity Span
	Energy   int
	Fraction Span
	NumEqn   int
}

func newLayout(numDensities, dim, numFractions int) (l Layout) {
	l.Density = Span{0, numDensities}
	l.Velocity = Span{numDensities, dim}
	l.Energy = numDensities + dim
	l.Fraction = Span{l.Energy + 1, numFractions}
	l.NumEqn = l.Fraction.End()
	return
}

// Pressure is the primitive counterpart of Energy
func (l Layout) Pressure() int { return l.Energy }
