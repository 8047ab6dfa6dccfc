// Package holga simulates a plastic film camera: captures accumulate on a fixed-size roll which
// is developed through a film effect once it is full.
package holga

import (
	"time"
)

// DefaultRollSize is the number of exposures on a roll.
const DefaultRollSize = 12

// DefaultQuality is the JPEG quality developed frames are encoded with.
const DefaultQuality = 90

// Config holds configuration for holga.
type Config struct {
	InDir         string
	WatchDir      string
	OutDir        string
	Workers       int
	Quality       int
	Seed          int64
	KeepNegatives bool
	ReadExif      bool
}

// Filter returns a film filter for this configuration. A zero Seed means a time-based seed.
func (c *Config) Filter() *Filter {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	q := c.Quality
	if q <= 0 {
		q = DefaultQuality
	}
	return NewFilter(NewSource(uint64(seed)), q)
}

// RollOptions returns the roll options for this configuration.
func (c *Config) RollOptions() []Option {
	opts := []Option{WithFilter(c.Filter())}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
