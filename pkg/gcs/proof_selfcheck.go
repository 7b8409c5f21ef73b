package gcs

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// ProofSelfChecker is an internal, non-certifying sanity check: it replays
// a clause against a small in-process SAT solver fed every clausal
// constraint committed to it so far, and reports whether the clause
// actually follows. The proof logger does not call it. It covers only pure
// clausal (coefficient-1,
// >= 1) pseudo-Boolean constraints -- the shape every RUP/Assert line this
// package emits happens to have. General weighted PB constraints from the
// model (linear sums, at-most-one cardinality) are not re-checked here;
// CheckAndCommitClause reports ok for anything it cannot represent.
type ProofSelfChecker struct {
	sat  *gini.Gini
	vars map[int]z.Lit
}

// NewProofSelfChecker returns a checker with no committed clauses.
func NewProofSelfChecker() *ProofSelfChecker {
	return &ProofSelfChecker{sat: gini.New(), vars: make(map[int]z.Lit)}
}

func (c *ProofSelfChecker) litFor(x XLiteral) z.Lit {
	v, ok := c.vars[x.id]
	if !ok {
		v = c.sat.Lit()
		c.vars[x.id] = v
	}
	if x.negative {
		return v.Not()
	}
	return v
}

func isClausal(sum PseudoBooleanSum) bool {
	if sum.Cmp != PBGreaterEqual || sum.Bound != 1 {
		return false
	}
	for _, a := range sum.Addends {
		if a.Coeff != 1 {
			return false
		}
	}
	return true
}

// CheckAndCommitClause checks that sum is implied by every clause committed
// so far (i.e. that asserting its negation is unsatisfiable), and if so
// commits sum itself for future checks. It reports true for any
// non-clausal sum without checking it.
func (c *ProofSelfChecker) CheckAndCommitClause(names *NamesAndIDsTracker, sum PseudoBooleanSum) bool {
	if !isClausal(sum) {
		return true
	}
	lits := make([]z.Lit, 0, len(sum.Addends))
	for _, a := range sum.Addends {
		lits = append(lits, c.litFor(names.XLiteralForAddend(a)))
	}
	assumptions := make([]z.Lit, len(lits))
	for i, l := range lits {
		assumptions[i] = l.Not()
	}
	c.sat.Assume(assumptions...)
	// gini's Solve reports 1 for SAT, -1 for UNSAT, 0 if interrupted before a
	// verdict. Only a SAT verdict means the new clause is not yet implied;
	// treat an inconclusive result the same as UNSAT, since this check is a
	// best-effort sanity net rather than the certifying verifier itself.
	if c.sat.Solve() == 1 {
		return false
	}
	for _, l := range lits {
		c.sat.Add(l)
	}
	c.sat.Add(z.LitNull)
	return true
}
