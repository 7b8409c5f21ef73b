package gcs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProofModelFinaliseWritesOPBHeaderAndConstraints(t *testing.T) {
	names := NewNamesAndIDsTracker()
	v := SimpleVariableID{Index: 0}
	names.RecordBounds(v, 0, 9)

	model := NewProofModel(names)
	line := model.AddConstraint("x >= 3", PseudoBooleanSum{
		Addends: []PBAddend{TermFromXLiteral(1, names.orderVariable(v, 3))},
		Cmp:     PBGreaterEqual,
		Bound:   1,
	})
	require.Equal(t, ProofLine(1), line)
	require.Equal(t, 1, model.LineCount())

	var sb strings.Builder
	require.NoError(t, model.Finalise(&sb))

	out := sb.String()
	require.Contains(t, out, "#variable=")
	require.Contains(t, out, "#constraint= 1")
	require.Contains(t, out, "x >= 3")
	require.Contains(t, out, ">= 1 ;")
}

func TestProofModelOrderConsistencyReferencesBothThresholds(t *testing.T) {
	names := NewNamesAndIDsTracker()
	v := SimpleVariableID{Index: 0}
	names.RecordBounds(v, 0, 9)

	model := NewProofModel(names)
	line := model.AddOrderConsistency(v, 3, 5)
	require.Equal(t, ProofLine(1), line)
	require.Equal(t, 2, names.Count(), "both order thresholds should be materialised")
}

func TestProofLoggerEmitRUPAndForgetProofLevel(t *testing.T) {
	names := NewNamesAndIDsTracker()
	x := SimpleVariableID{Index: 0}
	names.RecordBounds(x, 0, 9)
	conclusion := GreaterThanOrEqual(x, 5)
	reason := reasonOf(GreaterThanOrEqual(x, 3))

	var sb strings.Builder
	logger := NewProofLogger(&sb, 0)

	line := logger.EmitRUP(names, conclusion, reason, ProofLevel(1))
	require.Equal(t, ProofLine(1), line)
	require.NoError(t, logger.w.Flush())
	require.Contains(t, sb.String(), "u ")

	logger.ForgetProofLevel(ProofLevel(1))
	require.NoError(t, logger.w.Flush())
	require.Contains(t, sb.String(), "del id 1")
}

func TestProofLoggerConcludeWritesFinalLinesAndCloses(t *testing.T) {
	var sb strings.Builder
	logger := NewProofLogger(&sb, 0)
	require.NoError(t, logger.Conclude(ConcludeSat, 0, 0))
	out := sb.String()
	require.Contains(t, out, "conclusion SAT")
	require.Contains(t, out, "end pseudo-Boolean proof")
}
