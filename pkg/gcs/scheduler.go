package gcs

import "sync/atomic"

// Scheduler runs the event-driven propagation fixpoint: a single-threaded
// cooperative work queue of propagators, woken by the domain-change events
// their registered Triggers match, polling an abort flag between
// propagator calls rather than running any internal parallelism.
type Scheduler struct {
	state *State
	proof *ProofLogger
	names *NamesAndIDsTracker

	props  []*propagatorEntry
	queue  []int
	queued []bool

	abort *atomic.Bool
}

// NewScheduler builds a scheduler over state. proof/names may be nil to run
// without proof logging.
func NewScheduler(state *State, proof *ProofLogger, names *NamesAndIDsTracker) *Scheduler {
	return &Scheduler{state: state, proof: proof, names: names}
}

// SetAbortFlag installs the flag Drain polls between propagator calls. A
// nil flag (the default) means the scheduler never aborts on its own.
func (s *Scheduler) SetAbortFlag(flag *atomic.Bool) { s.abort = flag }

// Register adds a propagator to the schedule in the Enabled state and
// queues it to run at least once. triggers maps each simple variable the
// propagator reads to the domain events that should wake it.
func (s *Scheduler) Register(name string, triggers map[SimpleVariableID]Triggers, fn PropagatorFunc) PropagatorHandle {
	id := len(s.props)
	s.props = append(s.props, &propagatorEntry{
		id:       id,
		name:     name,
		fn:       fn,
		triggers: triggers,
		state:    PropagatorEnabled,
	})
	s.queued = append(s.queued, false)
	s.queuePropagator(id)
	return PropagatorHandle(id)
}

// DisableUntilBacktrack moves a propagator to PropagatorDisabledUntilBacktrack
// for the remainder of the current epoch; it is re-enabled automatically
// when that epoch is discarded.
func (s *Scheduler) DisableUntilBacktrack(h PropagatorHandle) {
	entry := s.props[int(h)]
	if entry.state == PropagatorDisabledUntilBacktrack {
		return
	}
	entry.state = PropagatorDisabledUntilBacktrack
	s.state.OnBacktrack(func() {
		entry.state = PropagatorEnabled
	})
}

// CallCount returns how many times a propagator's function has actually
// been invoked, for Stats reporting.
func (s *Scheduler) CallCount(h PropagatorHandle) uint64 { return s.props[int(h)].callCount }

func (s *Scheduler) queuePropagator(id int) {
	if s.queued[id] {
		return
	}
	s.queued[id] = true
	s.queue = append(s.queue, id)
}

// QueueAll enqueues every currently enabled propagator, used once when a
// Problem finishes posting constraints to establish the initial fixpoint.
func (s *Scheduler) QueueAll() {
	for _, e := range s.props {
		if e.state == PropagatorEnabled {
			s.queuePropagator(e.id)
		}
	}
}

// DrainResult reports how a Drain call ended.
type DrainResult struct {
	Outcome Outcome // Contradiction, or BoundsChanged if any propagator changed a domain, else NoChange
	Aborted bool
}

// Drain repeatedly pops a propagator off the queue, runs it, and enqueues
// every enabled propagator (itself included) whose triggers match a variable it
// changed, until the queue empties (a fixpoint), a propagator reports
// Contradiction, or the abort flag is observed set.
func (s *Scheduler) Drain() DrainResult {
	anyChange := false
	for len(s.queue) > 0 {
		if s.abort != nil && s.abort.Load() {
			return DrainResult{Outcome: NoChange, Aborted: true}
		}
		id := s.queue[0]
		s.queue = s.queue[1:]
		s.queued[id] = false

		entry := s.props[id]
		if entry.state != PropagatorEnabled {
			continue
		}

		tracker := NewInferenceTracker(s.state, s.proof, s.names).WithLevel(ProofLevel(s.state.CurrentDepth()))
		outcome := entry.fn(tracker)
		entry.callCount++

		if outcome == Contradiction {
			s.queue = nil
			for i := range s.queued {
				s.queued[i] = false
			}
			return DrainResult{Outcome: Contradiction}
		}

		if tracker.AnyChange() {
			anyChange = true
			s.wakeFrom(s.state.extractChangedVariables())
		}
	}
	if anyChange {
		return DrainResult{Outcome: BoundsChanged}
	}
	return DrainResult{Outcome: NoChange}
}

// NotifyExternalChange drains any change events produced by a mutation the
// scheduler didn't originate itself (a search decision, or the search
// driver tightening an optimisation bound), waking every propagator whose
// triggers match. Call it right after State.Guess or an equivalent direct
// inference, before the next Drain.
func (s *Scheduler) NotifyExternalChange() {
	s.wakeFrom(s.state.extractChangedVariables())
}

func (s *Scheduler) wakeFrom(events []changeEvent) {
	for _, ev := range events {
		for _, other := range s.props {
			if other.state != PropagatorEnabled {
				continue
			}
			trig, ok := other.triggers[ev.Var]
			if ok && trig.wakesOn(ev.How) {
				s.queuePropagator(other.id)
			}
		}
	}
}
