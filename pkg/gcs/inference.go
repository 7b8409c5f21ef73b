package gcs

// InferenceTracker is the thin shim every propagator is handed instead of a
// bare *State. It routes each inference to the state store and, when proof
// logging is enabled, to the proof logger and names tracker in lockstep, so
// a propagator can never update a domain without the proof staying in sync.
type InferenceTracker struct {
	state *State
	proof *ProofLogger
	names *NamesAndIDsTracker
	level ProofLevel

	anyChange bool
}

// NewInferenceTracker builds a tracker over state. proof and names may both
// be nil to run without proof logging.
func NewInferenceTracker(state *State, proof *ProofLogger, names *NamesAndIDsTracker) *InferenceTracker {
	return &InferenceTracker{state: state, proof: proof, names: names, level: ProofLevelCurrent}
}

// State exposes the underlying store for read-only queries (Bounds,
// InDomain, DomainSize, IterateValues, OptionalSingleValue).
func (t *InferenceTracker) State() *State { return t.state }

// WithLevel returns a shallow copy of the tracker scoped to a different
// proof level, used when a propagator's caller wants its justifications
// attached at a temporary level (e.g. during an explicit-justification
// sub-derivation).
func (t *InferenceTracker) WithLevel(level ProofLevel) *InferenceTracker {
	clone := *t
	clone.level = level
	return &clone
}

// AnyChange reports whether any inference routed through this tracker
// actually changed a domain, since the tracker was constructed or last
// reset. The scheduler uses this to decide whether to wake propagators from
// the change events the call produced.
func (t *InferenceTracker) AnyChange() bool { return t.anyChange }

// ResetChangeFlag clears AnyChange. The scheduler does not call it: Drain
// builds a fresh tracker for every propagator invocation.
func (t *InferenceTracker) ResetChangeFlag() { t.anyChange = false }

func (t *InferenceTracker) emit(lit Literal, just Justification) {
	if t.proof == nil {
		return
	}
	switch just.kind {
	case justNoneNeeded, justGuess:
		// nothing to certify: the model already entails it, or it is a
		// decision recorded separately by the search driver.
	case justRUP:
		t.proof.EmitRUP(t.names, lit, just.reason, t.level)
	case justAssert:
		t.proof.EmitAssert(t.names, lit, just.reason, t.level)
	case justExplicit:
		reason := just.explicit(t.proof, t.level)
		t.proof.EmitRUP(t.names, lit, reason, t.level)
	}
}

func (t *InferenceTracker) infer(v IntegerVariableID, op ComparisonOp, value Integer, just Justification) Outcome {
	outcome := t.state.inferCondition(v, op, value)
	if outcome == NoChange {
		return outcome
	}
	t.anyChange = true
	if outcome != Contradiction {
		t.emit(NewCondition(v, op, value), just)
	} else {
		t.emit(LiteralFalse(), just)
	}
	return outcome
}

// InferEqual asserts v = value, justified by just.
func (t *InferenceTracker) InferEqual(v IntegerVariableID, value Integer, just Justification) Outcome {
	return t.infer(v, OpEqual, value, just)
}

// InferNotEqual asserts v != value, justified by just.
func (t *InferenceTracker) InferNotEqual(v IntegerVariableID, value Integer, just Justification) Outcome {
	return t.infer(v, OpNotEqual, value, just)
}

// InferLessThan asserts v < value, justified by just.
func (t *InferenceTracker) InferLessThan(v IntegerVariableID, value Integer, just Justification) Outcome {
	return t.infer(v, OpLessThan, value, just)
}

// InferGreaterThanOrEqual asserts v >= value, justified by just.
func (t *InferenceTracker) InferGreaterThanOrEqual(v IntegerVariableID, value Integer, just Justification) Outcome {
	return t.infer(v, OpGreaterOrEqual, value, just)
}

// InferLiteral asserts an arbitrary Literal, justified by just.
func (t *InferenceTracker) InferLiteral(l Literal, just Justification) Outcome {
	if l.IsTrue() {
		return NoChange
	}
	if l.IsFalse() {
		t.anyChange = true
		t.emit(LiteralFalse(), just)
		return Contradiction
	}
	cond, _ := l.Condition()
	return t.infer(cond.Var, cond.Op, cond.Value, just)
}

// Contradiction is a convenience for a propagator that has detected
// infeasibility directly (e.g. an empty support set) rather than via a
// single failed domain update.
func (t *InferenceTracker) Contradiction(just Justification) Outcome {
	t.anyChange = true
	t.emit(LiteralFalse(), just)
	return Contradiction
}
