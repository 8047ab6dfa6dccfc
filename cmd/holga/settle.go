package main

import (
	"sync"
	"time"
)

// settler delivers a file name on ready once it has seen no events for delay.
type settler struct {
	delay   time.Duration
	ready   chan string
	done    chan struct{}
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

func newSettler(delay time.Duration) *settler {
	return &settler{
		delay:   delay,
		ready:   make(chan string),
		done:    make(chan struct{}),
		pending: map[string]*time.Timer{},
	}
}

// touch starts or restarts the quiet period for name.
func (s *settler) touch(name string) {
	if t, ok := s.pending[name]; ok && t.Stop() {
		t.Reset(s.delay)
		return
	}

	s.wg.Add(1)
	s.pending[name] = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		select {
		case s.ready <- name:
		case <-s.done:
		}
	})
}

// settled forgets name after it was received from ready.
func (s *settler) settled(name string) {
	delete(s.pending, name)
}

// stop cancels pending timers and waits for fired ones to give up.
func (s *settler) stop() {
	close(s.done)
	for _, t := range s.pending {
		if t.Stop() {
			s.wg.Done()
		}
	}
	s.wg.Wait()
}
