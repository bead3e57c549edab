package core

// Array2D is a fixed-size two-dimensional container.
// Values are stored column-major: index = x*height + y.
// Reads outside the bounds return the default value and writes outside
// the bounds are ignored, so callers never need to bounds-check first.
type Array2D[V any] struct {
	width  int
	height int
	def    V
	values []V
}

// NewArray2D creates a width x height array with every cell set to def.
// Negative dimensions are treated as zero.
func NewArray2D[V any](width, height int, def V) *Array2D[V] {
	width = Max(width, 0)
	height = Max(height, 0)

	a := &Array2D[V]{
		width:  width,
		height: height,
		def:    def,
		values: make([]V, width*height),
	}
	for i := range a.values {
		a.values[i] = def
	}
	return a
}

// Width returns the number of columns.
func (a *Array2D[V]) Width() int {
	return a.width
}

// Height returns the number of rows.
func (a *Array2D[V]) Height() int {
	return a.height
}

// InBounds reports whether (x, y) addresses a stored cell.
func (a *Array2D[V]) InBounds(x, y int) bool {
	return x >= 0 && x < a.width && y >= 0 && y < a.height
}

// Get returns the value at (x, y), or the default when out of bounds.
func (a *Array2D[V]) Get(x, y int) V {
	if !a.InBounds(x, y) {
		return a.def
	}
	return a.values[x*a.height+y]
}

// Set stores v at (x, y). Out-of-bounds writes are silently ignored.
func (a *Array2D[V]) Set(x, y int, v V) {
	if !a.InBounds(x, y) {
		return
	}
	a.values[x*a.height+y] = v
}

// Fill sets every cell to v.
func (a *Array2D[V]) Fill(v V) {
	for i := range a.values {
		a.values[i] = v
	}
}

// Values returns a copy of the backing storage in column-major order.
func (a *Array2D[V]) Values() []V {
	out := make([]V, len(a.values))
	copy(out, a.values)
	return out
}
