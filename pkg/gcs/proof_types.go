package gcs

import "fmt"

// XLiteral is a pseudo-Boolean literal: a small positive integer identifying
// a PB variable, plus a negation bit. XLiterals are the atoms the OPB/.pbp
// file formats are written in terms of.
type XLiteral struct {
	id       int
	negative bool
}

func (l XLiteral) Negated() XLiteral { return XLiteral{id: l.id, negative: !l.negative} }

func (l XLiteral) String() string {
	if l.negative {
		return fmt.Sprintf("~x%d", l.id)
	}
	return fmt.Sprintf("x%d", l.id)
}

// ProofFlag is a named Boolean auxiliary a propagator introduces at posting
// time (e.g. a reification flag for one table tuple). It carries both
// polarities so call sites never have to remember to negate.
type ProofFlag struct {
	Name     string
	Positive XLiteral
	Negative XLiteral
}

// ProofOnlyVariable is an integer variable that exists only in the proof,
// such as the magnitude of a signed variable split into sign+magnitude for
// the multiplication propagator.
type ProofOnlyVariable struct {
	Name string
	Lo   Integer
	Hi   Integer
}

// ProofBitVariable names one bit of an integer variable's bit encoding.
type ProofBitVariable struct {
	Var      IntegerVariableID
	Position int
	Positive bool
}

// pbTerm is the sum type for one addend of a PseudoBooleanSum: a literal, a
// flag (in a given polarity), a bit variable, or a raw XLiteral standing in
// for an already-resolved term.
type pbTerm struct {
	lit     Literal
	hasLit  bool
	flagPos XLiteral
	hasFlag bool
	bit     ProofBitVariable
	hasBit  bool
	x       XLiteral
	hasX    bool
}

// PBAddend is one (coefficient × term) summand of a PseudoBooleanSum.
type PBAddend struct {
	Coeff Integer
	term  pbTerm
}

func TermFromLiteral(coeff Integer, l Literal) PBAddend {
	return PBAddend{Coeff: coeff, term: pbTerm{lit: l, hasLit: true}}
}

func TermFromFlag(coeff Integer, f ProofFlag, positive bool) PBAddend {
	x := f.Positive
	if !positive {
		x = f.Negative
	}
	return PBAddend{Coeff: coeff, term: pbTerm{flagPos: x, hasFlag: true}}
}

func TermFromBit(coeff Integer, b ProofBitVariable) PBAddend {
	return PBAddend{Coeff: coeff, term: pbTerm{bit: b, hasBit: true}}
}

func TermFromXLiteral(coeff Integer, x XLiteral) PBAddend {
	return PBAddend{Coeff: coeff, term: pbTerm{x: x, hasX: true}}
}

// PBComparator is the relation a PseudoBooleanSum is compared by.
type PBComparator int

const (
	PBLessEqual PBComparator = iota
	PBGreaterEqual
	PBEqual
)

func (c PBComparator) String() string {
	switch c {
	case PBLessEqual:
		return "<="
	case PBGreaterEqual:
		return ">="
	default:
		return "="
	}
}

// PseudoBooleanSum is sum(coeff*term) compared to an Integer bound.
type PseudoBooleanSum struct {
	Addends []PBAddend
	Cmp     PBComparator
	Bound   Integer
}

// ProofLine is a monotonically increasing line number returned when a
// constraint is added to the proof model, or a step is emitted to the proof
// logger.
type ProofLine int

// ProofLevel scopes a proof line so it can be bulk-deleted when the
// corresponding search epoch ends. The scheduler and search driver use the
// current search depth as the level: lines at ProofLevelTop (depth 0) are
// never deleted, and lines at depth d are deleted by ForgetProofLevel when
// the epoch at depth d is backtracked. ProofLevelCurrent is the default
// level of a fresh InferenceTracker; ProofLevelTemporary gets no separate
// handling, so its lines are not deleted at the end of a propagator call.
type ProofLevel int

const (
	ProofLevelTop ProofLevel = iota
	ProofLevelCurrent
	ProofLevelTemporary
)
