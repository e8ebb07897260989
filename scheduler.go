package scrollfx

import (
	"sort"
	"time"
)

// FrameFunc is an animation-frame callback. now is the frame timestamp
// measured from an arbitrary host origin.
type FrameFunc func(now time.Duration)

// CancelFunc cancels a pending frame or timer. Calling it after the callback
// ran, or more than once, is a no-op.
type CancelFunc func()

// Scheduler is the host's frame and timer source. In a browser it wraps
// requestAnimationFrame and setTimeout; in tests and game-loop hosts it is a
// ManualScheduler pumped explicitly.
type Scheduler interface {
	RequestFrame(fn FrameFunc) CancelFunc
	After(d time.Duration, fn func()) CancelFunc
}

type frameRequest struct {
	fn        FrameFunc
	cancelled bool
}

type timerRequest struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// ManualScheduler is a deterministic Scheduler. Frames run only when Tick is
// called and timers fire only when Advance moves the clock past their due
// time. Frames requested from inside a frame callback run on the next Tick,
// matching requestAnimationFrame.
type ManualScheduler struct {
	now    time.Duration
	seq    uint64
	frames []*frameRequest
	timers []*timerRequest
}

// NewManualScheduler creates a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame queues fn for the next Tick.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) CancelFunc {
	req := &frameRequest{fn: fn}
	s.frames = append(s.frames, req)
	return func() { req.cancelled = true }
}

// After queues fn to run once the clock has advanced by d.
func (s *ManualScheduler) After(d time.Duration, fn func()) CancelFunc {
	s.seq++
	req := &timerRequest{due: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, req)
	return func() { req.cancelled = true }
}

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live frame requests.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, f := range s.frames {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// PendingTimers returns the number of live timers.
func (s *ManualScheduler) PendingTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Tick runs every frame queued before the call with timestamp Now and
// returns how many ran.
func (s *ManualScheduler) Tick() int {
	queued := s.frames
	s.frames = nil
	ran := 0
	for _, f := range queued {
		if f.cancelled {
			continue
		}
		f.cancelled = true
		f.fn(s.now)
		ran++
	}
	return ran
}

// Advance moves the clock forward by d and fires due timers in due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].due != s.timers[j].due {
				return s.timers[i].due < s.timers[j].due
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].due > s.now {
			return
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
	}
}

// Step advances the clock by d and then runs one Tick. It is the usual way to
// simulate one display frame.
func (s *ManualScheduler) Step(d time.Duration) int {
	s.Advance(d)
	return s.Tick()
}

// RunFrames steps up to n frames of length d, stopping early once no frame
// is pending. It returns the number of frames that ran a callback.
func (s *ManualScheduler) RunFrames(n int, d time.Duration) int {
	ran := 0
	for i := 0; i < n; i++ {
		s.Advance(d)
		if s.Pending() == 0 {
			break
		}
		s.Tick()
		ran++
	}
	return ran
}
