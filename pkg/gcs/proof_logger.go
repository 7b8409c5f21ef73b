package gcs

import (
	"bufio"
	"fmt"
	"io"
)

// ProofConclusion is the final verdict a .pbp proof certifies.
type ProofConclusion int

const (
	ConcludeNone ProofConclusion = iota
	ConcludeUnsat
	ConcludeSat
	ConcludeBounds
)

// ProofLogger is the append-only writer for the derivation stream that
// follows the OPB model (proof_model.go). Every inference a propagator
// makes with a RUP/Assert/Explicit Justification becomes one or more lines
// here, each tagged with the ProofLevel it belongs to so a whole search
// subtree's worth of lines can be deleted in one batch when that subtree is
// backtracked out of, rather than one line at a time.
type ProofLogger struct {
	w        *bufio.Writer
	closer   io.Closer
	nextLine ProofLine
	perLevel map[ProofLevel][]ProofLine
	err      error

	// lastContradiction is the line number of the most recent RUP/Assert
	// step whose conclusion was the false literal, i.e. the empty clause.
	// Conclude cites it as the contradiction line of a UNSAT verdict.
	lastContradiction ProofLine
}

// NewProofLogger opens a logger writing to w and writes the mandatory proof
// header: the format version line, then "f M 0" declaring that formula
// constraints 1..modelLines (the OPB model already written alongside this
// proof) are axioms. modelLines is the number of constraints already written
// to the OPB model, so derivation lines are numbered contiguously after it.
func NewProofLogger(w io.Writer, modelLines int) *ProofLogger {
	p := &ProofLogger{
		w:        bufio.NewWriter(w),
		nextLine: ProofLine(modelLines + 1),
		perLevel: make(map[ProofLevel][]ProofLine),
	}
	fmt.Fprintf(p.w, "pseudo-Boolean proof version 2.0\n")
	fmt.Fprintf(p.w, "f %d 0\n", modelLines)
	return p
}

// SetCloser records a Closer (typically the underlying *os.File) that
// Close should close after flushing.
func (p *ProofLogger) SetCloser(c io.Closer) { p.closer = c }

// Err returns the first write error encountered, if any. Every Emit*
// method is a no-op once Err is non-nil, so a caller only needs to check it
// once at the end rather than after every call.
func (p *ProofLogger) Err() error { return p.err }

func (p *ProofLogger) record(level ProofLevel, line ProofLine) {
	if level == ProofLevelTop {
		return
	}
	p.perLevel[level] = append(p.perLevel[level], line)
}

func (p *ProofLogger) writeLine(format string, args ...any) ProofLine {
	if p.err != nil {
		return 0
	}
	line := p.nextLine
	p.nextLine++
	if _, err := fmt.Fprintf(p.w, format+"\n", args...); err != nil {
		p.err = NewProofError("writing proof line %d: %v", int(line), err)
	}
	return line
}

// clauseSum builds the PB encoding of the clause (not reason_1 or ... or
// not reason_n or conclusion): one addend per reason literal, negated, plus
// the conclusion literal, all with coefficient 1, compared >= 1.
func clauseSum(names *NamesAndIDsTracker, conclusion Literal, reason []Literal) PseudoBooleanSum {
	addends := make([]PBAddend, 0, len(reason)+1)
	for _, r := range reason {
		addends = append(addends, TermFromXLiteral(1, names.XLiteralForLiteral(r).Negated()))
	}
	addends = append(addends, TermFromXLiteral(1, names.XLiteralForLiteral(conclusion)))
	return PseudoBooleanSum{Addends: addends, Cmp: PBGreaterEqual, Bound: 1}
}

func formatClause(sum PseudoBooleanSum) string {
	out := ""
	for _, a := range sum.Addends {
		out += fmt.Sprintf("%+d %s ", int64(a.Coeff), a.term.x.String())
	}
	return out + fmt.Sprintf(">= %d ;", int64(sum.Bound))
}

// EmitRUP emits the clause justifying conclusion, reached by reverse unit
// propagation against the constraints already known to the verifier ("u"
// line in veriPB's format).
func (p *ProofLogger) EmitRUP(names *NamesAndIDsTracker, conclusion Literal, reason Reason, level ProofLevel) ProofLine {
	sum := clauseSum(names, conclusion, reason())
	line := p.writeLine("u %s", formatClause(sum))
	p.record(level, line)
	if conclusion.IsFalse() {
		p.lastContradiction = line
	}
	return line
}

// EmitAssert is shaped like EmitRUP but tells the verifier to trust the
// line outright ("a" line) instead of re-deriving it by RUP, used when a
// propagator's justification is cheaper to assert than to let the verifier
// rediscover.
func (p *ProofLogger) EmitAssert(names *NamesAndIDsTracker, conclusion Literal, reason Reason, level ProofLevel) ProofLine {
	sum := clauseSum(names, conclusion, reason())
	line := p.writeLine("a %s", formatClause(sum))
	p.record(level, line)
	if conclusion.IsFalse() {
		p.lastContradiction = line
	}
	return line
}

// EmitRed emits a redundance-based strengthening rule ("red" line):
// constraint sum holds because of the substitution witness (mapping each
// witness XLiteral to the Boolean it is fixed to).
func (p *ProofLogger) EmitRed(names *NamesAndIDsTracker, sum PseudoBooleanSum, witness map[XLiteral]bool, level ProofLevel) ProofLine {
	body := ""
	for _, a := range sum.Addends {
		body += fmt.Sprintf("%+d %s ", int64(a.Coeff), names.XLiteralForAddend(a).String())
	}
	body += fmt.Sprintf("%s %d ;", sum.Cmp.String(), int64(sum.Bound))
	wit := ""
	for x, val := range witness {
		lit := x
		if !val {
			lit = x.Negated()
		}
		wit += " " + lit.String()
	}
	line := p.writeLine("red %s;%s", body, wit)
	p.record(level, line)
	return line
}

// EmitPol emits a raw polynomial-combination ("pol") line, used by explicit
// justifications (linear sum propagation, all-different's Hall-set
// argument) that derive their conclusion by combining existing constraint
// lines rather than by RUP.
func (p *ProofLogger) EmitPol(expression string, level ProofLevel) ProofLine {
	line := p.writeLine("pol %s", expression)
	p.record(level, line)
	return line
}

// ForgetProofLevel deletes (via "del" lines) every proof line recorded at
// level since it was last forgotten, and clears the bookkeeping. It is
// registered as a State.OnBacktrack hook for every epoch opened at that
// level, so a discarded search subtree's proof lines are deleted together.
func (p *ProofLogger) ForgetProofLevel(level ProofLevel) {
	lines := p.perLevel[level]
	if len(lines) == 0 {
		return
	}
	ids := ""
	for _, l := range lines {
		ids += fmt.Sprintf(" %d", int(l))
	}
	p.writeLine("del id%s", ids)
	delete(p.perLevel, level)
}

// Conclude writes the mandatory "output NONE" line (this solver never
// reports witnessing output, only the verdict), the conclusion line, and
// the footer, then flushes the stream. No further Emit* call is valid
// afterwards. lo and hi are only meaningful for ConcludeBounds, where they
// are the proven-optimal objective value repeated as both bounds (a search
// that found and proved optimal value v certifies "BOUNDS v v").
func (p *ProofLogger) Conclude(c ProofConclusion, lo, hi Integer) error {
	p.writeLine("output NONE")
	switch c {
	case ConcludeUnsat:
		p.writeLine("conclusion UNSAT : %d", int64(p.lastContradiction))
	case ConcludeSat:
		p.writeLine("conclusion SAT")
	case ConcludeBounds:
		p.writeLine("conclusion BOUNDS %d %d", int64(lo), int64(hi))
	default:
		p.writeLine("conclusion NONE")
	}
	p.writeLine("end pseudo-Boolean proof")
	return p.Close()
}

// Close flushes buffered output and closes the underlying writer, if one
// was registered with SetCloser.
func (p *ProofLogger) Close() error {
	if err := p.w.Flush(); err != nil && p.err == nil {
		p.err = NewProofError("flushing proof: %v", err)
	}
	if p.closer != nil {
		if err := p.closer.Close(); err != nil && p.err == nil {
			p.err = NewProofError("closing proof: %v", err)
		}
	}
	return p.err
}
