package utils

import "fmt"

// Shape is a structured block of cells, N interior cells in each direction
// padded by Ghost layers on both sides. Directions at or above Dim are
// inactive and hold a single cell with no ghosts.
type Shape struct {
	Dim   int
	N     [3]int
	Ghost [3]int
}

func NewShape(dim int, n [3]int, ghost int) (s Shape) {
	if dim < 1 || dim > 3 {
		panic(fmt.Sprintf("dimension %d out of range [1,3]", dim))
	}
	s.Dim = dim
	for d := 0; d < 3; d++ {
		if d < dim {
			s.N[d] = n[d]
			s.Ghost[d] = ghost
		} else {
			s.N[d] = 1
		}
	}
	return
}

// FaceShape is the shape of the faces normal to dir that bound the interior
// cells: one more face than cells along dir, no ghosts.
func (s Shape) FaceShape(dir int) (fs Shape) {
	fs.Dim = s.Dim
	fs.N = s.N
	fs.N[dir]++
	return
}

// Interior returns the shape with ghost layers removed
func (s Shape) Interior() (is Shape) {
	is.Dim, is.N = s.Dim, s.N
	return
}

func (s Shape) Extent(d int) int { return s.N[d] + 2*s.Ghost[d] }

// Size is the number of points including ghosts
func (s Shape) Size() int { return s.Extent(0) * s.Extent(1) * s.Extent(2) }

// Range covers the points of the shape, ghosts included when withGhosts is set
func (s Shape) Range(withGhosts bool) (r Range) {
	for d := 0; d < 3; d++ {
		r.Hi[d] = s.N[d]
		if withGhosts {
			r.Lo[d] = -s.Ghost[d]
			r.Hi[d] += s.Ghost[d]
		}
	}
	return
}

func (s Shape) Contains(idx [3]int) bool {
	for d := 0; d < 3; d++ {
		if idx[d] < -s.Ghost[d] || idx[d] >= s.N[d]+s.Ghost[d] {
			return false
		}
	}
	return true
}

// GhostDirections counts the directions in which idx lies in a ghost layer.
// Directional stencils only read cells with a count of at most one.
func (s Shape) GhostDirections(idx [3]int) (n int) {
	for d := 0; d < 3; d++ {
		if idx[d] < 0 || idx[d] >= s.N[d] {
			n++
		}
	}
	return
}

// Field is a multi-component array over a Shape, stored one component slab
// after another with i running fastest. Indices are relative to the first
// interior cell, so ghosts have negative indices.
type Field struct {
	Shape   Shape
	NumComp int
	Stride  [3]int
	Data    []float64
	size    int
}

func NewField(s Shape, numComp int) (f *Field) {
	f = &Field{
		Shape:   s,
		NumComp: numComp,
		size:    s.Size(),
	}
	f.Stride = [3]int{1, s.Extent(0), s.Extent(0) * s.Extent(1)}
	f.Data = make([]float64, numComp*f.size)
	return
}

// Len is the number of points per component
func (f *Field) Len() int { return f.size }

func (f *Field) Offset(idx [3]int) (ind int) {
	if !f.Shape.Contains(idx) {
		panic(fmt.Sprintf("index %v out of range for shape N=%v ghost=%v",
			idx, f.Shape.N, f.Shape.Ghost))
	}
	for d := 0; d < 3; d++ {
		ind += (idx[d] + f.Shape.Ghost[d]) * f.Stride[d]
	}
	return
}

func (f *Field) Comp(c int) []float64 {
	return f.Data[c*f.size : (c+1)*f.size]
}

func (f *Field) At(c int, idx [3]int) float64 {
	return f.Data[c*f.size+f.Offset(idx)]
}

func (f *Field) Set(c int, idx [3]int, val float64) {
	f.Data[c*f.size+f.Offset(idx)] = val
}

// Get gathers all components at a point into q
func (f *Field) Get(idx [3]int, q []float64) {
	f.GetOffset(f.Offset(idx), q)
}

func (f *Field) GetOffset(off int, q []float64) {
	for c := 0; c < f.NumComp; c++ {
		q[c] = f.Data[c*f.size+off]
	}
}

// Put scatters q into all components at a point
func (f *Field) Put(idx [3]int, q []float64) {
	f.PutOffset(f.Offset(idx), q)
}

func (f *Field) PutOffset(off int, q []float64) {
	for c := 0; c < f.NumComp; c++ {
		f.Data[c*f.size+off] = q[c]
	}
}

// Fill sets every point of the field to q
func (f *Field) Fill(q []float64) {
	for c := 0; c < f.NumComp; c++ {
		slab := f.Comp(c)
		for i := range slab {
			slab[i] = q[c]
		}
	}
}
