package utils

// Range is the half open box [Lo, Hi) of multi-indices
type Range struct {
	Lo, Hi [3]int
}

func (r Range) Len() (n int) {
	n = 1
	for d := 0; d < 3; d++ {
		if r.Hi[d] <= r.Lo[d] {
			return 0
		}
		n *= r.Hi[d] - r.Lo[d]
	}
	return
}

// Index maps the linear position n, i fastest, to its multi-index
func (r Range) Index(n int) (idx [3]int) {
	var (
		ni = r.Hi[0] - r.Lo[0]
		nj = r.Hi[1] - r.Lo[1]
	)
	idx[0] = r.Lo[0] + n%ni
	n /= ni
	idx[1] = r.Lo[1] + n%nj
	idx[2] = r.Lo[2] + n/nj
	return
}

// Linear is the inverse of Index
func (r Range) Linear(idx [3]int) int {
	var (
		ni = r.Hi[0] - r.Lo[0]
		nj = r.Hi[1] - r.Lo[1]
	)
	return (idx[0] - r.Lo[0]) + ni*((idx[1]-r.Lo[1])+nj*(idx[2]-r.Lo[2]))
}
