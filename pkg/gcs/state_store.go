package gcs

// Timestamp is an opaque checkpoint handle returned by State.NewEpoch and
// consumed by State.Backtrack. It is the depth of the epoch stack
// immediately after the checkpoint was taken.
type Timestamp int

// epochSnapshot is the copy taken when an epoch begins: the domain-state
// vector and per-epoch auxiliary constraint-state vector as they stood at
// that instant, plus the guess-stack/extra-condition depths to truncate
// back to. DomainState values are flat structs whose only heap-shared field
// (intervalBacking) is never written in place, so copying the slice is cheap and
// mutating the live slice afterwards never disturbs the snapshot.
type epochSnapshot struct {
	domains  []DomainState
	auxEpoch []any
	guessLen int
	extraLen int
}

// State is the store of evolving domains for all integer variables, plus
// the auxiliary constraint-state table, the guess stack, and per-epoch
// on-backtrack hooks. It knows nothing about proofs; propagators
// interact with it only through an InferenceTracker (inference.go), and the
// scheduler/search driver hold a *State directly for read-only bounds
// queries and epoch management.
type State struct {
	domains []DomainState
	names   []string

	auxEpoch      []any
	auxPersistent []any

	guesses         []Literal
	extraConditions []Literal

	snapshots []epochSnapshot
	hooks     [][]func()

	pending []changeEvent
}

// NewState returns an empty state store.
func NewState() *State {
	return &State{}
}

// CreateVariable creates a new simple variable with domain [lo, hi],
// collapsing to a Constant domain if lo == hi. name may be empty.
func (s *State) CreateVariable(lo, hi Integer, name string) SimpleVariableID {
	if lo > hi {
		panic("gcs: CreateVariable with empty range")
	}
	id := SimpleVariableID{Index: len(s.domains)}
	s.domains = append(s.domains, NewRangeDomain(lo, hi))
	s.names = append(s.names, name)
	return id
}

// CreateVariableFromValues creates a new simple variable whose domain is
// exactly the given (deduplicated) value set.
func (s *State) CreateVariableFromValues(values []Integer, name string) SimpleVariableID {
	id := SimpleVariableID{Index: len(s.domains)}
	s.domains = append(s.domains, NewDomainFromValues(values))
	s.names = append(s.names, name)
	return id
}

// NumVariables returns the number of simple variables created so far.
func (s *State) NumVariables() int { return len(s.domains) }

// Name returns the optional name given to a simple variable at creation.
func (s *State) Name(v SimpleVariableID) string { return s.names[v.Index] }

func (s *State) domainOf(v SimpleVariableID) DomainState { return s.domains[v.Index] }

// Bounds returns (min, max) for any IntegerVariableID, unwrapping views and
// constants.
func (s *State) Bounds(v IntegerVariableID) (Integer, Integer) {
	base, negate, offset := Resolve(v)
	lo, hi := s.baseBounds(base)
	if !negate {
		return lo + offset, hi + offset
	}
	return offset - hi, offset - lo
}

func (s *State) baseBounds(base IntegerVariableID) (Integer, Integer) {
	switch b := base.(type) {
	case ConstantVariableID:
		return b.Value, b.Value
	case SimpleVariableID:
		return s.domainOf(b).Bounds()
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

// InDomain reports whether v may currently take value val.
func (s *State) InDomain(v IntegerVariableID, val Integer) bool {
	base, negate, offset := Resolve(v)
	baseVal := ToBaseValue(negate, offset, val)
	switch b := base.(type) {
	case ConstantVariableID:
		return b.Value == baseVal
	case SimpleVariableID:
		return s.domainOf(b).Has(baseVal)
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

// DomainSize returns the number of values v may currently take.
func (s *State) DomainSize(v IntegerVariableID) Integer {
	base, _, _ := Resolve(v)
	switch b := base.(type) {
	case ConstantVariableID:
		return 1
	case SimpleVariableID:
		return s.domainOf(b).Count()
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

// OptionalSingleValue returns the single remaining value of v, if any.
func (s *State) OptionalSingleValue(v IntegerVariableID) (Integer, bool) {
	lo, hi := s.Bounds(v)
	if lo != hi {
		return 0, false
	}
	if s.DomainSize(v) == 1 {
		return lo, true
	}
	return 0, false
}

// IterateValues calls f for each value v may currently take, in ascending
// order, stopping early if f returns false.
func (s *State) IterateValues(v IntegerVariableID, f func(Integer) bool) {
	base, negate, offset := Resolve(v)
	switch b := base.(type) {
	case ConstantVariableID:
		f(FromBaseValue(negate, offset, b.Value))
	case SimpleVariableID:
		if !negate {
			s.domainOf(b).IterateValues(func(bv Integer) bool { return f(bv + offset) })
			return
		}
		// Iterating a negated view in ascending order means walking the
		// base domain from its maximum down to its minimum.
		vals := s.domainOf(b).ToSlice()
		for i := len(vals) - 1; i >= 0; i-- {
			if !f(offset - vals[i]) {
				return
			}
		}
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

// transformCondition rewrites a (op, value) condition stated against a view
// into the equivalent condition against its resolved base variable, given
// the view's accumulated (negate, offset) transform (variable.go).
func transformCondition(negate bool, offset Integer, op ComparisonOp, value Integer) (ComparisonOp, Integer) {
	if !negate {
		return op, value - offset
	}
	switch op {
	case OpEqual, OpNotEqual:
		return op, offset - value
	case OpLessThan:
		return OpGreaterOrEqual, offset-value+1
	case OpGreaterOrEqual:
		return OpLessThan, offset-value+1
	default:
		panic("gcs: unknown comparison op")
	}
}

// inferCondition applies an (op, value) condition to v, updating the
// underlying simple variable's domain if necessary and recording a change
// event. Operations on a Constant either no-change or contradict;
// operations on a view are redirected to its resolved base after applying
// transformCondition.
func (s *State) inferCondition(v IntegerVariableID, op ComparisonOp, value Integer) Outcome {
	base, negate, offset := Resolve(v)
	baseOp, baseValue := transformCondition(negate, offset, op, value)

	switch b := base.(type) {
	case ConstantVariableID:
		_, outcome := ApplyCondition(NewConstantDomain(b.Value), baseOp, baseValue)
		if outcome == Contradiction {
			return Contradiction
		}
		return NoChange
	case SimpleVariableID:
		before := s.domainOf(b)
		after, outcome := ApplyCondition(before, baseOp, baseValue)
		if outcome == Contradiction {
			return Contradiction
		}
		if outcome == NoChange {
			return NoChange
		}
		s.domains[b.Index] = after
		if how, ok := howChangedFor(outcome); ok {
			s.pending = append(s.pending, changeEvent{Var: b, How: how})
		}
		return outcome
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

func (s *State) InferEqual(v IntegerVariableID, value Integer) Outcome {
	return s.inferCondition(v, OpEqual, value)
}

func (s *State) InferNotEqual(v IntegerVariableID, value Integer) Outcome {
	return s.inferCondition(v, OpNotEqual, value)
}

func (s *State) InferLessThan(v IntegerVariableID, value Integer) Outcome {
	return s.inferCondition(v, OpLessThan, value)
}

func (s *State) InferGreaterThanOrEqual(v IntegerVariableID, value Integer) Outcome {
	return s.inferCondition(v, OpGreaterOrEqual, value)
}

// InferLiteral applies a Literal directly, used by Guess and by propagators
// that reason in terms of literals rather than raw conditions.
func (s *State) InferLiteral(l Literal) Outcome {
	if l.IsTrue() {
		return NoChange
	}
	if l.IsFalse() {
		return Contradiction
	}
	cond, _ := l.Condition()
	return s.inferCondition(cond.Var, cond.Op, cond.Value)
}

// Guess pushes a decision literal onto the guess stack and applies it as an
// inference.
func (s *State) Guess(l Literal) Outcome {
	s.guesses = append(s.guesses, l)
	return s.InferLiteral(l)
}

// GuessStackDepth returns the number of decisions currently on the guess
// stack.
func (s *State) GuessStackDepth() int { return len(s.guesses) }

// GuessStack returns the current guess stack (decision literals only, not
// extra proof conditions), oldest first.
func (s *State) GuessStack() []Literal { return append([]Literal(nil), s.guesses...) }

// PushExtraProofCondition records an assumption that should appear in a
// proof reason but is not a true guess (used for sub-search).
func (s *State) PushExtraProofCondition(l Literal) {
	s.extraConditions = append(s.extraConditions, l)
}

// ExtraProofConditions returns the current extra-proof-condition stack.
func (s *State) ExtraProofConditions() []Literal {
	return append([]Literal(nil), s.extraConditions...)
}

// extractChangedVariables drains the pending change-event queue. It is the
// only way the scheduler learns which propagators to wake.
func (s *State) extractChangedVariables() []changeEvent {
	if len(s.pending) == 0 {
		return nil
	}
	drained := s.pending
	s.pending = nil
	return drained
}

// NewPerEpochHandle allocates a slot of auxiliary constraint state scoped to
// the epoch it is created in: its value is restored (via the epoch's
// structural copy) whenever that epoch is discarded by Backtrack.
func (s *State) NewPerEpochHandle(initial any) int {
	idx := len(s.auxEpoch)
	s.auxEpoch = append(s.auxEpoch, initial)
	return idx
}

func (s *State) GetPerEpoch(handle int) any        { return s.auxEpoch[handle] }
func (s *State) SetPerEpoch(handle int, value any) { s.auxEpoch[handle] = value }

// NewPersistentHandle allocates a slot of auxiliary constraint state that
// survives backtracking entirely (e.g. memoised, search-path-independent
// results).
func (s *State) NewPersistentHandle(initial any) int {
	idx := len(s.auxPersistent)
	s.auxPersistent = append(s.auxPersistent, initial)
	return idx
}

func (s *State) GetPersistent(handle int) any        { return s.auxPersistent[handle] }
func (s *State) SetPersistent(handle int, value any) { s.auxPersistent[handle] = value }

// NewEpoch checkpoints the current domain-state vector, per-epoch auxiliary
// state vector, guess-stack depth, and extra-proof-condition depth, and
// opens a fresh (initially empty) on-backtrack hook list. The returned
// Timestamp names this epoch for a later Backtrack call.
func (s *State) NewEpoch() Timestamp {
	domains := make([]DomainState, len(s.domains))
	copy(domains, s.domains)
	aux := make([]any, len(s.auxEpoch))
	copy(aux, s.auxEpoch)

	s.snapshots = append(s.snapshots, epochSnapshot{
		domains:  domains,
		auxEpoch: aux,
		guessLen: len(s.guesses),
		extraLen: len(s.extraConditions),
	})
	s.hooks = append(s.hooks, nil)
	return Timestamp(len(s.snapshots))
}

// OnBacktrack registers f to run when the currently open epoch is
// discarded. Hooks run in LIFO order relative to other hooks registered in
// the same epoch. Calling OnBacktrack with no open epoch is a programming
// error in a propagator (the root epoch is never discarded) and is ignored.
func (s *State) OnBacktrack(f func()) {
	if len(s.hooks) == 0 {
		return
	}
	top := len(s.hooks) - 1
	s.hooks[top] = append(s.hooks[top], f)
}

// Backtrack truncates the state back to the epoch named by ts, running
// every discarded epoch's on-backtrack hooks in LIFO order.
func (s *State) Backtrack(ts Timestamp) {
	for len(s.snapshots) >= int(ts) {
		top := len(s.snapshots) - 1
		hks := s.hooks[top]
		for i := len(hks) - 1; i >= 0; i-- {
			hks[i]()
		}
		snap := s.snapshots[top]
		s.snapshots = s.snapshots[:top]
		s.hooks = s.hooks[:top]
		s.domains = snap.domains
		s.auxEpoch = snap.auxEpoch
		s.guesses = s.guesses[:snap.guessLen]
		s.extraConditions = s.extraConditions[:snap.extraLen]
	}
	s.pending = nil
}

// CurrentDepth returns the number of epochs currently open (0 at the root).
func (s *State) CurrentDepth() int { return len(s.snapshots) }
