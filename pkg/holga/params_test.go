package holga

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSampleBounds(t *testing.T) {
	s := NewSource(42)
	for i := 0; i < 10000; i++ {
		p := s.Sample()
		if !SaturationRange.Contains(p.Saturation) {
			t.Fatalf("saturation %f outside %+v", p.Saturation, SaturationRange)
		}
		if !BrightnessRange.Contains(p.Brightness) {
			t.Fatalf("brightness %f outside %+v", p.Brightness, BrightnessRange)
		}
		if !ContrastRange.Contains(p.Contrast) {
			t.Fatalf("contrast %f outside %+v", p.Contrast, ContrastRange)
		}
		if p.BlurRadius != 2.0 || p.VignetteRadius != 1.0 || p.VignetteIntensity != 1.0 {
			t.Fatalf("fixed params changed: %+v", p)
		}
	}
}

func TestSampleSpread(t *testing.T) {
	s := NewSource(7)
	lo, hi := 1.0, 0.0
	for i := 0; i < 5000; i++ {
		p := s.Sample()
		lo = min(lo, p.Saturation)
		hi = max(hi, p.Saturation)
	}
	// a uniform draw over [0.6, 1.0] should get close to both ends
	if lo > 0.62 || hi < 0.98 {
		t.Errorf("saturation spread [%f, %f], want close to [0.6, 1.0]", lo, hi)
	}
}

func TestSampleSeeded(t *testing.T) {
	a, b := NewSource(99), NewSource(99)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(a.Sample(), b.Sample()); diff != "" {
			t.Fatalf("sample %d differs with equal seeds (-a +b):\n%s", i, diff)
		}
	}

	if cmp.Equal(NewSource(1).Sample(), NewSource(2).Sample()) {
		t.Errorf("different seeds gave identical params")
	}
}

func TestRangeContains(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0.6, true},
		{1.0, true},
		{0.8, true},
		{0.59, false},
		{1.01, false},
	}
	for _, tc := range tests {
		if got := SaturationRange.Contains(tc.v); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
