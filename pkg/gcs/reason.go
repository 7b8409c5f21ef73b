package gcs

// Reason is a lazy closure producing the list of literals whose conjunction
// justifies an inference. It is evaluated at most once per inference, on
// demand, both by the proof logger (which negates the literals into the
// emitted clause) and to seed the reason of a chained Explicit
// justification.
type Reason func() []Literal

// reasonOf is a convenience constructor for a fixed literal list.
func reasonOf(lits ...Literal) Reason {
	return func() []Literal { return lits }
}

// justificationKind discriminates the Justification sum type.
type justificationKind int

const (
	justNoneNeeded justificationKind = iota
	justGuess
	justRUP
	justAssert
	justExplicit
)

// ExplicitSteps is the closure an Explicit justification runs: it may emit
// whatever intermediate proof lines it needs via logger, then returns the
// Reason the final RUP/assert-shaped inference line should cite.
type ExplicitSteps func(logger *ProofLogger, level ProofLevel) Reason

// Justification is attached to every inference a propagator makes, telling
// the proof logger how (or whether) to certify it.
type Justification struct {
	kind     justificationKind
	reason   Reason
	explicit ExplicitSteps
}

// NoJustificationNeeded marks an inference as trusted: no proof step is
// emitted. Used for constraints fully encoded in the PB model at posting
// time, where RUP on the model alone would always succeed anyway.
func NoJustificationNeeded() Justification { return Justification{kind: justNoneNeeded} }

// GuessJustification marks a literal as a decision, not an inference.
func GuessJustification() Justification { return Justification{kind: justGuess} }

// RUPJustification asks the proof logger to emit a single "u" line derived
// from reason by reverse unit propagation on currently known constraints.
func RUPJustification(reason Reason) Justification {
	return Justification{kind: justRUP, reason: reason}
}

// AssertJustification is shaped like RUPJustification but is emitted as an
// assertion ("a" line) instead of being left for RUP to re-derive.
func AssertJustification(reason Reason) Justification {
	return Justification{kind: justAssert, reason: reason}
}

// ExplicitJustification wraps a closure that emits whatever intermediate
// proof lines are needed before the logger wraps them with the final
// inference.
func ExplicitJustification(steps ExplicitSteps) Justification {
	return Justification{kind: justExplicit, explicit: steps}
}
