package noisemap

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned for non-positive map dimensions and
// malformed builder input.
var ErrInvalidParameter = errors.New("noisemap: invalid parameter")

// NoiseMap is a width x height grid of float64 values. Values are stored
// row-major: vals[y*stride + x], where stride is the width at the last
// allocation.
//
// Reads outside [0,width) x [0,height) return the border value and writes
// there are ignored. A NoiseMap has no internal locking.
type NoiseMap struct {
	width, height int

	// Dimensions of vals as last allocated. SetSize does not touch them.
	stride, rows int
	vals         []float64

	border float64
}

// New returns a zero-filled map. It fails with ErrInvalidParameter if either
// dimension is below 1.
func New(width, height int) (*NoiseMap, error) {
	m := &NoiseMap{}
	if err := m.SetSize(width, height); err != nil {
		return nil, err
	}
	m.Reallocate()
	return m, nil
}

// Width returns the declared width.
func (m *NoiseMap) Width() int { return m.width }

// Height returns the declared height.
func (m *NoiseMap) Height() int { return m.height }

// BorderValue returns the value reported for every position outside the map.
func (m *NoiseMap) BorderValue() float64 { return m.border }

// SetBorderValue sets the value reported outside the map. Any float64 is
// accepted, including NaN and infinities.
func (m *NoiseMap) SetBorderValue(v float64) { m.border = v }

// Value returns the value at (x, y), or the border value if the position is
// outside the map.
//
// After SetSize grows the map and before Reallocate, positions inside the
// new bounds but past the old storage read as 0.
func (m *NoiseMap) Value(x, y int) float64 {
	if !m.inBounds(x, y) {
		return m.border
	}
	i, ok := m.index(x, y)
	if !ok {
		return 0
	}
	return m.vals[i]
}

// SetValue stores v at (x, y). It does nothing if the position is outside the
// map or past storage that has not been reallocated since SetSize.
func (m *NoiseMap) SetValue(x, y int, v float64) {
	if !m.inBounds(x, y) {
		return
	}
	if i, ok := m.index(x, y); ok {
		m.vals[i] = v
	}
}

// SetSize changes the declared dimensions. It fails with ErrInvalidParameter,
// leaving the map unchanged, if either dimension is below 1.
//
// Storage is not reallocated: values already stored keep their (x, y)
// positions where the old storage covers them. Call Reallocate to get fresh
// storage for the new size.
func (m *NoiseMap) SetSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("size %dx%d: %w", width, height, ErrInvalidParameter)
	}
	m.width, m.height = width, height
	return nil
}

// Reallocate discards all stored values and allocates zeroed storage for the
// current dimensions. The border value is kept.
func (m *NoiseMap) Reallocate() {
	m.vals = make([]float64, m.width*m.height)
	m.stride, m.rows = m.width, m.height
}

// Clear sets every stored value to v.
func (m *NoiseMap) Clear(v float64) {
	for i := range m.vals {
		m.vals[i] = v
	}
}

// Row returns the backing slice for row y, of length Width. Writes through it
// update the map. Row returns nil if y is outside the map or the row is not
// fully covered by storage (SetSize without Reallocate).
func (m *NoiseMap) Row(y int) []float64 {
	if y < 0 || y >= m.height || y >= m.rows || m.width > m.stride {
		return nil
	}
	start := y * m.stride
	return m.vals[start : start+m.width : start+m.width]
}

// Clone returns a deep copy of m, including its border value.
func (m *NoiseMap) Clone() *NoiseMap {
	c := *m
	c.vals = make([]float64, len(m.vals))
	copy(c.vals, m.vals)
	return &c
}

func (m *NoiseMap) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// index maps an in-bounds position to its storage offset.
func (m *NoiseMap) index(x, y int) (int, bool) {
	if x >= m.stride || y >= m.rows {
		return 0, false
	}
	return y*m.stride + x, true
}
