package scrollfx

import "testing"

func TestScrollStateAdvance(t *testing.T) {
	s := ScrollState{Target: 100}
	s.Advance(0.12)
	if !approxEqual(s.Current, 12, epsilon) {
		t.Errorf("Current = %f, want ~12", s.Current)
	}
	if s.LastSampled != 0 {
		t.Errorf("LastSampled = %f, want 0", s.LastSampled)
	}
	if !s.Moved() {
		t.Error("Moved = false after advancing")
	}
}

func TestScrollStateNeverOvershoots(t *testing.T) {
	s := ScrollState{Current: 1000, Target: 0}
	prev := s.Current
	for i := 0; i < 200; i++ {
		s.Advance(0.12)
		if s.Current < s.Target || s.Current > prev {
			t.Fatalf("frame %d: Current = %f moved away from target", i, s.Current)
		}
		prev = s.Current
	}
}

func TestScrollStateSettle(t *testing.T) {
	s := ScrollState{Current: 99.6, Target: 100}
	s.Settle(0.5)
	if s.Current != 100 {
		t.Errorf("Current = %f, want snapped to 100", s.Current)
	}
	s = ScrollState{Current: 99, Target: 100}
	s.Settle(0.5)
	if s.Current != 99 {
		t.Errorf("Current = %f, want untouched 99", s.Current)
	}
}

func TestScrollStateConverged(t *testing.T) {
	s := ScrollState{Current: 99.5, Target: 100}
	if !s.Converged(0.5) {
		t.Error("distance equal to eps should count as converged")
	}
	s.Current = 99.4
	if s.Converged(0.5) {
		t.Error("distance above eps reported converged")
	}
}

func TestScrollStateIdle(t *testing.T) {
	s := ScrollState{Current: 100, Target: 100, LastSampled: 100}
	s.Advance(0.12)
	if s.Moved() {
		t.Error("Moved = true at rest")
	}
}
