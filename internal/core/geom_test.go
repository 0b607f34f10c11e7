package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	cases := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},  // top-left corner
		{5, 7, true},  // bottom-right inside
		{6, 3, false}, // just past right edge
		{2, 8, false}, // just past bottom edge
		{1, 3, false}, // left of rect
		{2, 2, false}, // above rect
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestLerp(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{5, 5, 0.3, 5},
		{10, 0, 0.25, 7.5},
	}
	for _, tc := range cases {
		if got := Lerp(tc.a, tc.b, tc.t); got != tc.want {
			t.Errorf("Lerp(%v,%v,%v) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp should pass through in-range values")
	}
	if Clamp(-3, 0, 10) != 0 {
		t.Error("Clamp should raise low values to min")
	}
	if Clamp(42, 0, 10) != 10 {
		t.Error("Clamp should lower high values to max")
	}

	if ClampF(0.5, 0, 1) != 0.5 || ClampF(-0.1, 0, 1) != 0 || ClampF(1.7, 0, 1) != 1 {
		t.Error("ClampF boundary behavior is wrong")
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(2, 7) != 2 || Max(2, 7) != 7 {
		t.Error("Min/Max are wrong")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs is wrong")
	}
}
