package noisemap

// Field is a scalar field over R³, usually a coherent-noise generator.
// Value must be deterministic for a given point.
type Field interface {
	Value(x, y, z float64) float64
}

// FieldFunc adapts an ordinary function to Field.
type FieldFunc func(x, y, z float64) float64

// Value calls f(x, y, z).
func (f FieldFunc) Value(x, y, z float64) float64 { return f(x, y, z) }

// Const is a field with the same value everywhere.
type Const float64

// Value returns c.
func (c Const) Value(_, _, _ float64) float64 { return float64(c) }
