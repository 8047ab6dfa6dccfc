package holga

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// State is the lifecycle stage of a roll.
type State int

const (
	// Collecting accepts exposures.
	Collecting State = iota
	// Developing runs the film filter over every exposure.
	Developing
	// Ready exposes the developed frames.
	Ready
	// Ruined means at least one frame failed to develop; nothing is ever exposed.
	Ruined
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Developing:
		return "developing"
	case Ready:
		return "ready"
	case Ruined:
		return "ruined"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Roll.
type Option func(*Roll)

// WithCapacity sets the number of exposures on the roll. Film rolls hold DefaultRollSize; other
// sizes exist for short test rolls.
func WithCapacity(n int) Option {
	return func(r *Roll) {
		r.capacity = n
	}
}

// WithFilter sets the filter frames are developed with.
func WithFilter(f *Filter) Option {
	return func(r *Roll) {
		r.filter = f
	}
}

// WithWorkers limits how many frames are developed at once.
func WithWorkers(n int) Option {
	return func(r *Roll) {
		r.workers = n
	}
}

// WithReady registers fn to receive the developed frames once the roll is ready.
func WithReady(fn func([]*ProcessedFrame)) Option {
	return func(r *Roll) {
		r.onReady = fn
	}
}

// Roll is a fixed number of exposures that are developed together.
type Roll struct {
	capacity int
	workers  int
	filter   *Filter
	onReady  func([]*ProcessedFrame)

	mu        sync.Mutex
	state     State
	frames    []RawFrame
	developed []*ProcessedFrame
}

// NewRoll returns an empty roll in the Collecting state.
func NewRoll(opts ...Option) *Roll {
	r := &Roll{
		capacity: DefaultRollSize,
		workers:  runtime.NumCPU(),
	}
	for _, o := range opts {
		o(r)
	}

	if r.capacity <= 0 {
		r.capacity = DefaultRollSize
	}
	if r.workers <= 0 {
		r.workers = 1
	}
	if r.filter == nil {
		r.filter = NewFilter(NewSource(uint64(time.Now().UnixNano())), DefaultQuality)
	}
	r.frames = make([]RawFrame, 0, r.capacity)
	return r
}

// Append adds an exposure. Filling the last exposure develops the roll before returning.
func (r *Roll) Append(f RawFrame) error {
	r.mu.Lock()
	if len(r.frames) >= r.capacity {
		r.mu.Unlock()
		return ErrRollFull
	}

	r.frames = append(r.frames, f)
	klog.Infof("captured %d/%d: %s", len(r.frames), r.capacity, f.Path)
	if len(r.frames) < r.capacity {
		r.mu.Unlock()
		return nil
	}

	klog.Infof("roll complete, developing %d frames ...", r.capacity)
	r.state = Developing
	frames := r.frames
	r.mu.Unlock()

	developed := r.develop(frames)

	r.mu.Lock()
	if len(developed) != r.capacity {
		r.state = Ruined
		r.mu.Unlock()
		klog.Errorf("roll ruined: %d of %d frames developed", len(developed), r.capacity)
		return nil
	}
	r.state = Ready
	r.developed = developed
	fn := r.onReady
	r.mu.Unlock()

	klog.Infof("roll ready: %d frames", len(developed))
	if fn != nil {
		fn(copyFrames(developed))
	}
	return nil
}

// develop runs the filter over frames, returning the survivors in their original order.
func (r *Roll) develop(frames []RawFrame) []*ProcessedFrame {
	// Sample up front so a seeded source gives the same roll whatever the scheduling.
	params := make([]Params, len(frames))
	for i := range frames {
		params[i] = r.filter.Sample()
	}

	slots := make([]*ProcessedFrame, len(frames))
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, f := range frames {
		g.Go(func() error {
			pf, err := r.filter.ApplyWith(f, params[i])
			if err != nil {
				var de *DecodeError
				if errors.As(err, &de) {
					de.Index = i
				}
				klog.Warningf("dropping frame %d: %v", i, err)
				return nil
			}
			pf.Index = i
			slots[i] = pf
			return nil
		})
	}
	// Workers never return errors; failures are dropped above.
	_ = g.Wait()

	out := make([]*ProcessedFrame, 0, len(slots))
	for _, pf := range slots {
		if pf != nil {
			out = append(out, pf)
		}
	}
	return out
}

// IsFull reports whether every exposure has been used.
func (r *Roll) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames) == r.capacity
}

// Len returns the number of exposures taken.
func (r *Roll) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Cap returns the number of exposures on the roll.
func (r *Roll) Cap() int {
	return r.capacity
}

// Remaining returns the number of exposures left.
func (r *Roll) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capacity - len(r.frames)
}

// State returns the current lifecycle state.
func (r *Roll) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Developed returns the developed frames in capture order.
func (r *Roll) Developed() ([]*ProcessedFrame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Ready {
		return nil, fmt.Errorf("%w: %s with %d/%d exposures", ErrNotReady, r.state, len(r.frames), r.capacity)
	}
	return copyFrames(r.developed), nil
}

// copyFrames deep copies fs so callers cannot reach the roll's buffers.
func copyFrames(fs []*ProcessedFrame) []*ProcessedFrame {
	out := make([]*ProcessedFrame, len(fs))
	for i, pf := range fs {
		out[i] = pf.Clone()
	}
	return out
}
