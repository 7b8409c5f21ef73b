package gcs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unitClause(x XLiteral) PseudoBooleanSum {
	return PseudoBooleanSum{Addends: []PBAddend{TermFromXLiteral(1, x)}, Cmp: PBGreaterEqual, Bound: 1}
}

func clauseOf(xs ...XLiteral) PseudoBooleanSum {
	addends := make([]PBAddend, len(xs))
	for i, x := range xs {
		addends[i] = TermFromXLiteral(1, x)
	}
	return PseudoBooleanSum{Addends: addends, Cmp: PBGreaterEqual, Bound: 1}
}

func TestSelfCheckerCommitsAFreshFact(t *testing.T) {
	names := NewNamesAndIDsTracker()
	x1 := names.NeedProofName("x1")
	checker := NewProofSelfChecker()

	require.True(t, checker.CheckAndCommitClause(names, unitClause(x1)), "first clause on a fresh checker has nothing to refute it")
}

func TestSelfCheckerAcceptsAnImpliedClause(t *testing.T) {
	names := NewNamesAndIDsTracker()
	x1 := names.NeedProofName("x1")
	x2 := names.NeedProofName("x2")
	x3 := names.NeedProofName("x3")
	checker := NewProofSelfChecker()

	require.True(t, checker.CheckAndCommitClause(names, unitClause(x1)))
	// x1 -> x1 or x2 or x3 is a trivial consequence of the unit clause above.
	require.True(t, checker.CheckAndCommitClause(names, clauseOf(x1, x2, x3)))
}

func TestSelfCheckerRejectsAnUnjustifiedClause(t *testing.T) {
	names := NewNamesAndIDsTracker()
	x1 := names.NeedProofName("x1")
	checker := NewProofSelfChecker()

	require.True(t, checker.CheckAndCommitClause(names, unitClause(x1.Negated())))
	// x1 is false by the committed fact above, so asserting x1 outright does
	// not follow.
	require.False(t, checker.CheckAndCommitClause(names, unitClause(x1)))
}

func TestSelfCheckerSkipsNonClausalSumsWithoutChecking(t *testing.T) {
	names := NewNamesAndIDsTracker()
	x1 := names.NeedProofName("x1")
	checker := NewProofSelfChecker()

	weighted := PseudoBooleanSum{Addends: []PBAddend{TermFromXLiteral(2, x1)}, Cmp: PBGreaterEqual, Bound: 2}
	require.True(t, checker.CheckAndCommitClause(names, weighted), "non-clausal sums are reported ok without being checked")
}
