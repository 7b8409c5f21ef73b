package gcs

import (
	"bufio"
	"fmt"
	"io"
)

// proofModelLine is one constraint recorded in the model, in the order it
// was added; its position (1-based) is its ProofLine.
type proofModelLine struct {
	comment string
	sum     PseudoBooleanSum
}

// ProofModel accumulates the pseudo-Boolean encoding of a CP problem --
// order/direct variable consistency clauses plus each posted constraint's
// own PB encoding -- and writes it once, at the end of posting, as a single
// OPB file. It never reopens or rewrites the file afterwards; the proof
// logger (proof_logger.go) appends the derivation against these fixed line
// numbers.
type ProofModel struct {
	names     *NamesAndIDsTracker
	lines     []proofModelLine
	objective *PseudoBooleanSum
	minimise  bool
}

// NewProofModel returns an empty model over names.
func NewProofModel(names *NamesAndIDsTracker) *ProofModel {
	return &ProofModel{names: names}
}

// AddConstraint records one PB constraint with an explanatory comment and
// returns the ProofLine it will be written as.
func (m *ProofModel) AddConstraint(comment string, sum PseudoBooleanSum) ProofLine {
	m.lines = append(m.lines, proofModelLine{comment: comment, sum: sum})
	return ProofLine(len(m.lines))
}

// AddOrderConsistency records "v >= higherThreshold  =>  v >= lowerThreshold" for a freshly
// materialised order variable pair, keeping the order encoding internally
// consistent as propagators reference new thresholds.
func (m *ProofModel) AddOrderConsistency(v SimpleVariableID, lowerThreshold, higherThreshold Integer) ProofLine {
	lo := m.names.orderVariable(v, lowerThreshold)
	hi := m.names.orderVariable(v, higherThreshold)
	sum := PseudoBooleanSum{
		Addends: []PBAddend{TermFromXLiteral(1, hi.Negated()), TermFromXLiteral(1, lo)},
		Cmp:     PBGreaterEqual,
		Bound:   1,
	}
	return m.AddConstraint(fmt.Sprintf("order consistency v%d", v.Index), sum)
}

// SetObjective installs the optimisation objective, used when Conclude on
// the proof logger reports a BOUNDS-style optimality certificate.
func (m *ProofModel) SetObjective(sum PseudoBooleanSum, minimise bool) {
	m.objective = &sum
	m.minimise = minimise
}

// LineCount returns how many constraints have been recorded.
func (m *ProofModel) LineCount() int { return len(m.lines) }

func (m *ProofModel) formatSum(sum PseudoBooleanSum) string {
	out := ""
	for _, a := range sum.Addends {
		x := m.names.XLiteralForAddend(a)
		out += fmt.Sprintf("%+d %s ", int64(a.Coeff), x.String())
	}
	return out + sum.Cmp.String() + fmt.Sprintf(" %d ;", int64(sum.Bound))
}

// Finalise writes the accumulated model as a single OPB file to w. It is
// called exactly once, after every constraint has been posted and before
// search begins. The "#variable=" line is a comment, informational only:
// it counts variables known at model-writing time. Order/direct variables a
// propagator first reasons about mid-search are materialised later and
// declare themselves inline in the derivation stream instead, as red-rule
// extension introductions (proof_names.go), which is how the format expects
// new variables to enter a proof after its formula is fixed.
func (m *ProofModel) Finalise(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "* #variable= %d #constraint= %d\n", m.names.Count(), len(m.lines))
	if m.objective != nil {
		dir := "max"
		if m.minimise {
			dir = "min"
		}
		fmt.Fprintf(bw, "%s: %s;\n", dir, m.formatObjective(*m.objective))
	}
	for _, line := range m.lines {
		if line.comment != "" {
			fmt.Fprintf(bw, "* %s\n", line.comment)
		}
		fmt.Fprintln(bw, m.formatSum(line.sum))
	}
	if err := bw.Flush(); err != nil {
		return NewProofError("writing OPB model: %v", err)
	}
	return nil
}

func (m *ProofModel) formatObjective(sum PseudoBooleanSum) string {
	out := ""
	for _, a := range sum.Addends {
		x := m.names.XLiteralForAddend(a)
		out += fmt.Sprintf("%+d %s ", int64(a.Coeff), x.String())
	}
	return out
}
