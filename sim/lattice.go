package sim

import "fmt"

// MaxSites bounds L^Dim so that a trial's forest and pair scan stay addressable.
const MaxSites = 1 << 30

// Lattice is a periodic hypercubic lattice with Side sites along each of Dim axes.
// Sites are numbered in row-major order: idx = sum x_k * Side^(Dim-1-k).
type Lattice struct {
	Side int
	Dim  int
}

// NewLattice validates side and dim and returns the lattice.
func NewLattice(side, dim int) (Lattice, error) {
	if side < 1 {
		return Lattice{}, fmt.Errorf("%w: lattice side must be >= 1, got %d", ErrInvalidConfig, side)
	}
	if dim < 1 {
		return Lattice{}, fmt.Errorf("%w: lattice dimension must be >= 1, got %d", ErrInvalidConfig, dim)
	}
	n := 1
	for k := 0; k < dim; k++ {
		if n > MaxSites/side {
			return Lattice{}, fmt.Errorf("%w: lattice %d^%d exceeds %d sites", ErrInvalidConfig, side, dim, MaxSites)
		}
		n *= side
	}
	return Lattice{Side: side, Dim: dim}, nil
}

// NumSites returns Side^Dim.
func (l Lattice) NumSites() int {
	n := 1
	for k := 0; k < l.Dim; k++ {
		n *= l.Side
	}
	return n
}

// Coords writes the coordinates of site idx into dst (len Dim) and returns it.
func (l Lattice) Coords(idx int, dst []int) []int {
	if dst == nil {
		dst = make([]int, l.Dim)
	}
	for k := l.Dim - 1; k >= 0; k-- {
		dst[k] = idx % l.Side
		idx /= l.Side
	}
	return dst
}

// Index is the inverse of Coords.
func (l Lattice) Index(coords []int) int {
	idx := 0
	for _, x := range coords {
		idx = idx*l.Side + x
	}
	return idx
}

// Shift returns the site reached from idx by the displacement r, wrapping
// around every axis.
func (l Lattice) Shift(idx int, r []int, scratch []int) int {
	c := l.Coords(idx, scratch)
	for k := range c {
		c[k] = mod(c[k]+r[k], l.Side)
	}
	return l.Index(c)
}

// Displacement writes the periodic displacement from a to b into dst,
// each component folded to its shortest image |r_k| <= Side/2.
func (l Lattice) Displacement(a, b int, dst []int) []int {
	if dst == nil {
		dst = make([]int, l.Dim)
	}
	for k := l.Dim - 1; k >= 0; k-- {
		dst[k] = l.fold(b%l.Side - a%l.Side)
		a /= l.Side
		b /= l.Side
	}
	return dst
}

// fold maps a raw coordinate difference to its minimum-image length.
func (l Lattice) fold(delta int) int {
	delta = mod(delta, l.Side)
	if other := l.Side - delta; other < delta {
		return other
	}
	return delta
}

func mod(a, m int) int {
	a %= m
	if a < 0 {
		a += m
	}
	return a
}
