package gcs

import "time"

// BranchingStrategy picks the next decision literal given the current
// state, or reports false when every variable is already assigned (a
// solution has been reached).
type BranchingStrategy interface {
	NextDecision(state *State) (Literal, bool)
}

// BranchingFunc adapts a plain function to BranchingStrategy.
type BranchingFunc func(state *State) (Literal, bool)

func (f BranchingFunc) NextDecision(state *State) (Literal, bool) { return f(state) }

// Objective names the variable a search should minimise or maximise.
type Objective struct {
	Var      IntegerVariableID
	Minimise bool
}

// Stats accumulates counters over one Solve call, reported back to the
// caller (and, in cmd/gcsctl, printed with --statistics).
type Stats struct {
	Decisions       int
	Backtracks      int
	Solutions       int
	PropagatorCalls uint64
	Duration        time.Duration
}

// Callbacks lets a caller observe solutions as they are found.
// OnSolution returning false stops the search after this solution.
type Callbacks struct {
	OnSolution func(*State) bool
}

// SolveOutcome summarises how a Solve call ended.
type SolveOutcome int

const (
	OutcomeExhausted SolveOutcome = iota // search space fully explored
	OutcomeStoppedByCallback
	OutcomeAborted
	OutcomeTimedOut
)

type pendingAlternative struct {
	ts    Timestamp
	level ProofLevel
	alt   Literal
	tried bool
}

// Solve runs a depth-first branch-and-bound (or, with obj == nil, plain
// satisfaction) search over state using scheduler for propagation and
// branch for variable/value selection. Every accepted solution is reported
// through cb.OnSolution; with a non-nil objective, the search keeps
// tightening against the best objective value found so far and only stops
// when the remaining space is proven not to contain anything better.
func (p *Problem) Solve(branch BranchingStrategy, obj *Objective, cb Callbacks) (Stats, SolveOutcome) {
	start := p.now()
	stats := Stats{}
	state := p.state
	scheduler := p.scheduler

	var bestObjective Integer
	haveBest := false

	stack := make([]pendingAlternative, 0, 64)

	popOrDone := func() (pendingAlternative, bool) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			state.Backtrack(top.ts)
			stats.Backtracks++
			if obj != nil && haveBest && p.tightenObjective(*obj, bestObjective) == Contradiction {
				continue
			}
			if top.tried {
				continue
			}
			return top, true
		}
		return pendingAlternative{}, false
	}

	// retighten pops alternatives off the stack, guessing each one's stored
	// (negated) literal, until a guess does not immediately contradict or
	// the stack empties. It reports (outcome, true) only when the search is over;
	// (_, false) means the caller should loop back into Drain with a live
	// alternative now in place.
	retighten := func() (SolveOutcome, bool) {
		for {
			alt, ok := popOrDone()
			if !ok {
				return OutcomeExhausted, true
			}
			alt.tried = true
			outcome := state.Guess(alt.alt)
			scheduler.NotifyExternalChange()
			stack = append(stack, alt)
			if outcome != Contradiction {
				return OutcomeExhausted, false
			}
		}
	}

	for {
		if p.abortFlag != nil && p.abortFlag.Load() {
			stats.Duration = time.Since(start)
			return stats, OutcomeAborted
		}

		dr := scheduler.Drain()
		if dr.Aborted {
			stats.Duration = time.Since(start)
			return stats, OutcomeAborted
		}
		if dr.Outcome == Contradiction {
			if out, done := retighten(); done {
				stats.Duration = time.Since(start)
				return stats, out
			}
			continue
		}

		lit, hasMore := branch.NextDecision(state)
		if !hasMore {
			stats.Solutions++
			keepGoing := true
			if cb.OnSolution != nil {
				keepGoing = cb.OnSolution(state)
			}
			if obj != nil {
				v, _ := state.OptionalSingleValue(obj.Var)
				if !haveBest || (obj.Minimise && v < bestObjective) || (!obj.Minimise && v > bestObjective) {
					bestObjective = v
					haveBest = true
				}
			}
			if !keepGoing {
				stats.Duration = time.Since(start)
				return stats, OutcomeStoppedByCallback
			}
			if out, done := retighten(); done {
				stats.Duration = time.Since(start)
				return stats, out
			}
			continue
		}

		ts := state.NewEpoch()
		level := ProofLevel(state.CurrentDepth())
		if p.proof != nil {
			proof := p.proof
			state.OnBacktrack(func() { proof.ForgetProofLevel(level) })
		}
		stats.Decisions++
		outcome := state.Guess(lit)
		scheduler.NotifyExternalChange()
		stack = append(stack, pendingAlternative{ts: ts, level: level, alt: lit.Negated()})
		if outcome == Contradiction {
			continue
		}
	}
}

// tightenObjective re-applies the improving bound on the objective variable
// at the newly current epoch, through an InferenceTracker so the inference
// is logged as a proof step like any propagator's would be: the eventual
// BOUNDS certificate is an UNSAT proof of the problem with this tightening
// folded in, so every improving bound found during search has to appear in
// the derivation, not just the final one. popOrDone calls this after every
// backtrack, so the tightened bound is live in every branch the search goes
// on to explore, not only the one active when the best solution was found.
func (p *Problem) tightenObjective(obj Objective, best Integer) Outcome {
	tracker := NewInferenceTracker(p.state, p.proof, p.names).WithLevel(ProofLevel(p.state.CurrentDepth()))
	var o Outcome
	if obj.Minimise {
		o = tracker.InferLessThan(obj.Var, best, RUPJustification(reasonOf()))
	} else {
		o = tracker.InferGreaterThanOrEqual(obj.Var, best+1, RUPJustification(reasonOf()))
	}
	p.scheduler.NotifyExternalChange()
	return o
}
