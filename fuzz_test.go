package noisemap

import (
	"math"
	"testing"
)

// FuzzNoiseMapAccess drives Value/SetValue/SetSize with arbitrary coordinates.
// The invariant: no panic, out-of-bounds reads return the border value and
// in-bounds writes read back.
// Run with: go test -fuzz=FuzzNoiseMapAccess -fuzztime=60s ./...
func FuzzNoiseMapAccess(f *testing.F) {
	f.Add(4, 3, 0, 0, 1.5, 0, 0)
	f.Add(4, 3, 3, 2, -2.0, 8, 8)
	f.Add(1, 1, -1, 0, 7.0, 1, 1)
	f.Add(2, 2, math.MaxInt, math.MinInt, 0.0, 2, 5)
	f.Add(5, 5, 4, 4, math.Inf(1), 0, 3)

	f.Fuzz(func(t *testing.T, w, h, x, y int, v float64, nw, nh int) {
		// Keep allocations small.
		w, h = w%64, h%64
		m, err := New(w, h)
		if err != nil {
			if w >= 1 && h >= 1 {
				t.Fatalf("New(%d, %d): %v", w, h, err)
			}
			return
		}
		m.SetBorderValue(-123)

		m.SetValue(x, y, v)
		got := m.Value(x, y)
		if x >= 0 && x < w && y >= 0 && y < h {
			if got != v && !(math.IsNaN(got) && math.IsNaN(v)) {
				t.Fatalf("Value(%d, %d) = %g after SetValue %g", x, y, got, v)
			}
		} else if got != -123 {
			t.Fatalf("Value(%d, %d) = %g outside %dx%d, want border", x, y, got, w, h)
		}

		// Resizing without reallocating must never panic.
		_ = m.SetSize(nw%64, nh%64)
		m.SetValue(x, y, v)
		_ = m.Value(x, y)
		_ = m.Row(y)
		_ = m.Stats()
	})
}

func TestIndexStaleStorage(t *testing.T) {
	m, err := New(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetSize(4, 1); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want int
		ok   bool
	}{
		{0, 0, 0, true},
		{1, 0, 1, true},
		{2, 0, 0, false}, // past the old stride
		{1, 2, 5, true},  // old rows stay addressable
		{0, 3, 0, false},
	}
	for _, tc := range tests {
		i, ok := m.index(tc.x, tc.y)
		if ok != tc.ok || (ok && i != tc.want) {
			t.Errorf("index(%d, %d) = %d, %v; want %d, %v", tc.x, tc.y, i, ok, tc.want, tc.ok)
		}
	}
}
