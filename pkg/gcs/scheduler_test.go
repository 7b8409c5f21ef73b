package gcs

import "testing"

func TestSchedulerDrainRunsToFixpoint(t *testing.T) {
	s := NewState()
	x := s.CreateVariable(0, 9, "x")
	y := s.CreateVariable(0, 9, "y")

	sched := NewScheduler(s, nil, nil)
	calls := map[string]int{}

	// x < y enforced from both sides (x <= yhi-1, then y >= xlo+1) to
	// exercise a two-propagator chain reaction: tightening x should wake the
	// y propagator and vice versa until neither can tighten further.
	sched.Register("x-lt-y", map[SimpleVariableID]Triggers{
		x: BoundsTrigger(),
		y: BoundsTrigger(),
	}, func(t *InferenceTracker) Outcome {
		calls["x-lt-y"]++
		_, yhi := t.State().Bounds(y)
		return t.InferLessThan(x, yhi, NoJustificationNeeded())
	})
	sched.Register("y-gt-x", map[SimpleVariableID]Triggers{
		x: BoundsTrigger(),
		y: BoundsTrigger(),
	}, func(t *InferenceTracker) Outcome {
		calls["y-gt-x"]++
		xlo, _ := t.State().Bounds(x)
		return t.InferGreaterThanOrEqual(y, xlo+1, NoJustificationNeeded())
	})

	result := sched.Drain()
	if result.Outcome == Contradiction {
		t.Fatalf("unexpected contradiction")
	}
	if calls["x-lt-y"] == 0 || calls["y-gt-x"] == 0 {
		t.Fatalf("expected both propagators to run at least once, got %v", calls)
	}
}

func TestSchedulerDrainStopsOnContradiction(t *testing.T) {
	s := NewState()
	x := s.CreateVariable(0, 0, "x")

	sched := NewScheduler(s, nil, nil)
	sched.Register("force-empty", watchAll(x), func(t *InferenceTracker) Outcome {
		return t.InferEqual(x, 1, NoJustificationNeeded())
	})

	result := sched.Drain()
	if result.Outcome != Contradiction {
		t.Fatalf("Outcome = %v, want Contradiction", result.Outcome)
	}
}

func TestSchedulerDisableUntilBacktrackReenablesOnBacktrack(t *testing.T) {
	s := NewState()
	x := s.CreateVariable(0, 9, "x")
	sched := NewScheduler(s, nil, nil)

	runs := 0
	h := sched.Register("counter", watchAll(x), func(t *InferenceTracker) Outcome {
		runs++
		return NoChange
	})
	sched.Drain()
	runs = 0

	ts := s.NewEpoch()
	sched.DisableUntilBacktrack(h)
	sched.Register("wake-it", watchAll(x), func(t *InferenceTracker) Outcome {
		return t.InferGreaterThanOrEqual(x, 1, NoJustificationNeeded())
	})
	sched.Drain()
	if runs != 0 {
		t.Fatalf("disabled propagator ran %d times, want 0", runs)
	}

	s.Backtrack(ts)
	sched.QueueAll()
	sched.Drain()
	if runs == 0 {
		t.Fatalf("propagator should have re-enabled after backtrack")
	}
}

func TestSchedulerNotifyExternalChangeWakesMatchingPropagators(t *testing.T) {
	s := NewState()
	x := s.CreateVariable(0, 9, "x")
	y := s.CreateVariable(0, 9, "y")
	sched := NewScheduler(s, nil, nil)

	woken := false
	sched.Register("watch-x", map[SimpleVariableID]Triggers{x: AnyTrigger()},
		func(t *InferenceTracker) Outcome {
			woken = true
			return NoChange
		})
	sched.Drain()
	woken = false

	s.InferEqual(y, 3)
	sched.NotifyExternalChange()
	sched.Drain()
	if woken {
		t.Fatalf("propagator watching x should not wake on a y-only change")
	}

	s.InferEqual(x, 3)
	sched.NotifyExternalChange()
	sched.Drain()
	if !woken {
		t.Fatalf("propagator watching x should wake on an x change")
	}
}
