package noisemap

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the values inside a map's bounds.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // population standard deviation
}

// Stats summarises every position inside the map. The border value is not
// included.
func (m *NoiseMap) Stats() Summary {
	vals := make([]float64, 0, m.width*m.height)
	for y := 0; y < m.height; y++ {
		if row := m.Row(y); row != nil {
			vals = append(vals, row...)
			continue
		}
		for x := 0; x < m.width; x++ {
			vals = append(vals, m.Value(x, y))
		}
	}
	if len(vals) == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(vals, nil)
	return Summary{
		Count:  len(vals),
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
		Mean:   mean,
		StdDev: std,
	}
}
