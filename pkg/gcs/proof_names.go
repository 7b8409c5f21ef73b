package gcs

import "fmt"

// orderKey names the pseudo-Boolean order variable "var >= threshold".
type orderKey struct {
	v         SimpleVariableID
	threshold Integer
}

// directKey names the pseudo-Boolean direct variable "var == value".
type directKey struct {
	v     SimpleVariableID
	value Integer
}

// NamesAndIDsTracker is the bijection between CP-level conditions and the
// small positive integers ("x1", "x2", ...) the OPB/.pbp formats name
// pseudo-Boolean variables by. It materialises an order variable (var >=
// k) or a direct variable (var == k) the first time a condition needs one,
// never eagerly, so proofs over huge domains stay proportional to what
// propagators actually reason about. XLiteral{id: 0} is reserved to mean
// the Boolean constant true (negated, constant false), so bounds-exceeding
// conditions never need a materialised variable at all.
type NamesAndIDsTracker struct {
	nextID int
	order  map[orderKey]XLiteral
	direct map[directKey]XLiteral
	names  map[int]string
	bounds map[SimpleVariableID][2]Integer
	bits   map[ProofBitVariable]XLiteral

	// proof is nil until the logger is open (proof_logger.go's header has
	// been written). Materialisations before that point are declared by
	// the OPB model instead (proof_model.go's AddOrderConsistency and the
	// constraint encodings that reference them); materialisations after it
	// opens declare themselves inline as red-rule introductions, since the
	// model file has already been written and cannot be amended.
	proof *ProofLogger
}

// NewNamesAndIDsTracker returns an empty tracker. nextID starts at 1 so id
// 0 is free to mean the constant true/false.
func NewNamesAndIDsTracker() *NamesAndIDsTracker {
	return &NamesAndIDsTracker{
		nextID: 1,
		order:  make(map[orderKey]XLiteral),
		direct: make(map[directKey]XLiteral),
		names:  make(map[int]string),
		bounds: make(map[SimpleVariableID][2]Integer),
		bits:   make(map[ProofBitVariable]XLiteral),
	}
}

// SetProofLogger attaches the logger order/direct variables should declare
// themselves to when materialised from here on. Called once the logger's
// header has been written and the OPB model file is closed for writing.
func (n *NamesAndIDsTracker) SetProofLogger(p *ProofLogger) { n.proof = p }

// BitVariable returns the XLiteral for a sign/magnitude decomposition bit,
// materialising it on first use. Two ProofBitVariable values naming the
// same (Var, Position) but opposite Positive are each other's negation.
func (n *NamesAndIDsTracker) BitVariable(b ProofBitVariable) XLiteral {
	if x, ok := n.bits[b]; ok {
		return x
	}
	opposite := b
	opposite.Positive = !b.Positive
	if x, ok := n.bits[opposite]; ok {
		n.bits[b] = x.Negated()
		return x.Negated()
	}
	x := n.fresh(fmt.Sprintf("bit_%v_%d", b.Var, b.Position))
	if !b.Positive {
		x = x.Negated()
	}
	n.bits[b] = x
	return x
}

var constTrue = XLiteral{id: 0, negative: false}
var constFalse = XLiteral{id: 0, negative: true}

// RecordBounds tells the tracker a simple variable's initial bounds, used
// to collapse always-true/always-false conditions to constants instead of
// materialising a variable for them.
func (n *NamesAndIDsTracker) RecordBounds(v SimpleVariableID, lo, hi Integer) {
	n.bounds[v] = [2]Integer{lo, hi}
}

func (n *NamesAndIDsTracker) fresh(name string) XLiteral {
	id := n.nextID
	n.nextID++
	n.names[id] = name
	return XLiteral{id: id}
}

// orderVariable returns the XLiteral for "v >= threshold", materialising it
// on first use.
func (n *NamesAndIDsTracker) orderVariable(v SimpleVariableID, threshold Integer) XLiteral {
	if b, ok := n.bounds[v]; ok {
		if threshold <= b[0] {
			return constTrue
		}
		if threshold > b[1] {
			return constFalse
		}
	}
	key := orderKey{v: v, threshold: threshold}
	if x, ok := n.order[key]; ok {
		return x
	}
	x := n.fresh(fmt.Sprintf("ov%d_ge_%d", v.Index, int64(threshold)))
	n.order[key] = x
	n.defineOrderVariable(v, threshold, x)
	return x
}

// defineOrderVariable emits x's red-rule introduction, once a proof is open:
// first that x is redundant on its own negation (nothing upstream
// constrains a brand new variable), then the order-consistency implication
// "v >= threshold" -> "v >= threshold-1" against whatever weaker order
// variable already exists or gets materialised for it, both checkable under
// the same x := false witness. A RUP/assert line can cite x immediately
// afterwards, however deep into search it was first needed.
func (n *NamesAndIDsTracker) defineOrderVariable(v SimpleVariableID, threshold Integer, x XLiteral) {
	if n.proof == nil {
		return
	}
	witness := map[XLiteral]bool{x: false}
	n.proof.EmitRed(n, PseudoBooleanSum{
		Addends: []PBAddend{TermFromXLiteral(1, x.Negated())},
		Cmp:     PBGreaterEqual,
		Bound:   0,
	}, witness, ProofLevelTop)

	weaker := n.orderVariable(v, threshold-1)
	if weaker == constTrue {
		return
	}
	n.proof.EmitRed(n, PseudoBooleanSum{
		Addends: []PBAddend{TermFromXLiteral(1, x.Negated()), TermFromXLiteral(1, weaker)},
		Cmp:     PBGreaterEqual,
		Bound:   1,
	}, witness, ProofLevelTop)
}

// directVariable returns the XLiteral for "v == value", materialising it on
// first use.
func (n *NamesAndIDsTracker) directVariable(v SimpleVariableID, value Integer) XLiteral {
	if b, ok := n.bounds[v]; ok && (value < b[0] || value > b[1]) {
		return constFalse
	}
	key := directKey{v: v, value: value}
	if x, ok := n.direct[key]; ok {
		return x
	}
	x := n.fresh(fmt.Sprintf("dv%d_eq_%d", v.Index, int64(value)))
	n.direct[key] = x
	n.defineDirectVariable(v, value, x)
	return x
}

// defineDirectVariable emits x's red-rule introduction, once a proof is
// open: x redundant on its own negation, then the two halves of the direct
// encoding "v == value" -> "v >= value" and "v == value" -> not "v >=
// value+1", against whichever order variables those need, all under the
// same x := false witness.
func (n *NamesAndIDsTracker) defineDirectVariable(v SimpleVariableID, value Integer, x XLiteral) {
	if n.proof == nil {
		return
	}
	witness := map[XLiteral]bool{x: false}
	n.proof.EmitRed(n, PseudoBooleanSum{
		Addends: []PBAddend{TermFromXLiteral(1, x.Negated())},
		Cmp:     PBGreaterEqual,
		Bound:   0,
	}, witness, ProofLevelTop)

	if lower := n.orderVariable(v, value); lower != constTrue {
		n.proof.EmitRed(n, PseudoBooleanSum{
			Addends: []PBAddend{TermFromXLiteral(1, x.Negated()), TermFromXLiteral(1, lower)},
			Cmp:     PBGreaterEqual,
			Bound:   1,
		}, witness, ProofLevelTop)
	}
	if upper := n.orderVariable(v, value+1); upper != constFalse {
		n.proof.EmitRed(n, PseudoBooleanSum{
			Addends: []PBAddend{TermFromXLiteral(1, x.Negated()), TermFromXLiteral(1, upper.Negated())},
			Cmp:     PBGreaterEqual,
			Bound:   1,
		}, witness, ProofLevelTop)
	}
}

// XLiteralFor maps a resolved (base-variable) condition to its pseudo-
// Boolean literal, choosing order or direct encoding and negating as
// needed so callers never have to think about which encoding a comparator
// uses.
func (n *NamesAndIDsTracker) XLiteralFor(v SimpleVariableID, op ComparisonOp, value Integer) XLiteral {
	switch op {
	case OpGreaterOrEqual:
		return n.orderVariable(v, value)
	case OpLessThan:
		return n.orderVariable(v, value).Negated()
	case OpEqual:
		return n.directVariable(v, value)
	case OpNotEqual:
		return n.directVariable(v, value).Negated()
	default:
		panic("gcs: unknown comparison op")
	}
}

// XLiteralForLiteral resolves an arbitrary (possibly view-typed) Literal
// down to its base variable's pseudo-Boolean literal.
func (n *NamesAndIDsTracker) XLiteralForLiteral(l Literal) XLiteral {
	if l.IsTrue() {
		return constTrue
	}
	if l.IsFalse() {
		return constFalse
	}
	cond, _ := l.Condition()
	base, negate, offset := Resolve(cond.Var)
	op, value := transformCondition(negate, offset, cond.Op, cond.Value)
	switch b := base.(type) {
	case ConstantVariableID:
		_, outcome := ApplyCondition(NewConstantDomain(b.Value), op, value)
		if outcome == Contradiction {
			return constFalse
		}
		return constTrue
	case SimpleVariableID:
		return n.XLiteralFor(b, op, value)
	default:
		panic("gcs: Resolve returned a non-base variable")
	}
}

// Name returns the human-readable name assigned to a materialised
// pseudo-Boolean variable id, or "" for the reserved constant id.
func (n *NamesAndIDsTracker) Name(id int) string { return n.names[id] }

// NeedProofName is called by propagators posting reified auxiliaries (e.g.
// a table's per-tuple support flag) that need a fresh, otherwise-unused
// pseudo-Boolean variable not tied to any CP condition.
func (n *NamesAndIDsTracker) NeedProofName(name string) XLiteral {
	return n.fresh(name)
}

// XLiteralForAddend resolves any PBAddend term kind (literal, flag, bit, or
// raw XLiteral) to its underlying XLiteral.
func (n *NamesAndIDsTracker) XLiteralForAddend(a PBAddend) XLiteral {
	switch {
	case a.term.hasLit:
		return n.XLiteralForLiteral(a.term.lit)
	case a.term.hasFlag:
		return a.term.flagPos
	case a.term.hasBit:
		return n.BitVariable(a.term.bit)
	case a.term.hasX:
		return a.term.x
	default:
		panic("gcs: PBAddend with no term set")
	}
}

// Count returns how many pseudo-Boolean variables have been materialised,
// for proof header bookkeeping.
func (n *NamesAndIDsTracker) Count() int { return n.nextID - 1 }
