package holga

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Range is a closed interval that parameters are drawn from.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	SaturationRange = Range{Min: 0.6, Max: 1.0}
	BrightnessRange = Range{Min: -0.1, Max: 0.1}
	ContrastRange   = Range{Min: 1.0, Max: 1.2}
)

const (
	BlurRadius        = 2.0
	VignetteRadius    = 1.0
	VignetteIntensity = 1.0
)

// Params are the settings a single frame is developed with.
type Params struct {
	Saturation float64
	Brightness float64
	Contrast   float64

	BlurRadius        float64
	VignetteRadius    float64
	VignetteIntensity float64
}

func (p Params) String() string {
	return fmt.Sprintf("sat=%.3f bright=%+.3f contrast=%.3f", p.Saturation, p.Brightness, p.Contrast)
}

// Source draws filter parameters. It is safe for concurrent use.
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a seeded random source for filter parameters.
func NewSource(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample draws saturation, brightness and contrast independently and uniformly.
func (s *Source) Sample() Params {
	s.mu.Lock()
	sat := uniform(s.r, SaturationRange)
	bright := uniform(s.r, BrightnessRange)
	contrast := uniform(s.r, ContrastRange)
	s.mu.Unlock()

	return Params{
		Saturation:        sat,
		Brightness:        bright,
		Contrast:          contrast,
		BlurRadius:        BlurRadius,
		VignetteRadius:    VignetteRadius,
		VignetteIntensity: VignetteIntensity,
	}
}

// uniform returns a value in [r.Min, r.Max].
func uniform(rng *rand.Rand, r Range) float64 {
	// Float64 is [0,1); rounding keeps the result inside the closed interval.
	v := r.Min + rng.Float64()*(r.Max-r.Min)
	if v > r.Max {
		v = r.Max
	}
	return v
}
