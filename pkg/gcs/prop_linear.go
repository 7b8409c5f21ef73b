package gcs

import "fmt"

// LinearTerm is one coeff*var addend of a linear constraint.
type LinearTerm struct {
	Coeff Integer
	Var   IntegerVariableID
}

// linearBoundsPass tightens every term of terms so that
// sum(coeff_i * var_i) <= bound holds, given the other terms' current
// bounds, returning the worst Outcome seen and Contradiction as soon as the
// bound is infeasible outright. modelLine, if non-zero, is cited in each
// tightening's proof step as the PB constraint the derivation combines with
// the other variables' current bounds (a polynomial-combination
// justification).
func linearBoundsPass(t *InferenceTracker, terms []LinearTerm, bound Integer, modelLine ProofLine) Outcome {
	minSum := Integer(0)
	contribMin := make([]Integer, len(terms))
	for i, term := range terms {
		lo, hi := t.State().Bounds(term.Var)
		if term.Coeff >= 0 {
			contribMin[i] = term.Coeff.Mul(lo)
		} else {
			contribMin[i] = term.Coeff.Mul(hi)
		}
		minSum += contribMin[i]
	}
	if minSum > bound {
		return t.Contradiction(ExplicitJustification(func(logger *ProofLogger, level ProofLevel) Reason {
			return linearPolReason(t, terms, modelLine, logger, level)
		}))
	}

	worst := NoChange
	for i, term := range terms {
		slack := bound - (minSum - contribMin[i])
		lo, hi := t.State().Bounds(term.Var)
		just := ExplicitJustification(func(logger *ProofLogger, level ProofLevel) Reason {
			return linearPolReason(t, terms, modelLine, logger, level)
		})
		switch {
		case term.Coeff > 0:
			newHi := FloorDiv(slack, term.Coeff)
			if newHi < hi {
				if o := t.InferLessThan(term.Var, newHi+1, just); o == Contradiction {
					return Contradiction
				} else if o != NoChange {
					worst = o
				}
			}
		case term.Coeff < 0:
			newLo := CeilDiv(slack, term.Coeff)
			if newLo > lo {
				if o := t.InferGreaterThanOrEqual(term.Var, newLo, just); o == Contradiction {
					return Contradiction
				} else if o != NoChange {
					worst = o
				}
			}
		}
	}
	return worst
}

func linearPolReason(t *InferenceTracker, terms []LinearTerm, modelLine ProofLine, logger *ProofLogger, level ProofLevel) Reason {
	expr := fmt.Sprintf("%d", int(modelLine))
	lits := make([]Literal, 0, len(terms))
	for _, term := range terms {
		lo, hi := t.State().Bounds(term.Var)
		lits = append(lits, GreaterThanOrEqual(term.Var, lo), LessThanOrEqual(term.Var, hi))
	}
	if logger != nil && modelLine != 0 {
		logger.EmitPol(expr, level)
	}
	return reasonOf(lits...)
}

func negateTerms(terms []LinearTerm) []LinearTerm {
	out := make([]LinearTerm, len(terms))
	for i, term := range terms {
		out[i] = LinearTerm{Coeff: term.Coeff.Neg(), Var: term.Var}
	}
	return out
}

// LinearLessEqual returns a propagator enforcing sum(terms) <= bound.
func LinearLessEqual(terms []LinearTerm, bound Integer, modelLine ProofLine) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		return linearBoundsPass(t, terms, bound, modelLine)
	}
}

// LinearGreaterThanOrEqual returns a propagator enforcing sum(terms) >= bound.
func LinearGreaterThanOrEqual(terms []LinearTerm, bound Integer, modelLine ProofLine) PropagatorFunc {
	negated := negateTerms(terms)
	return func(t *InferenceTracker) Outcome {
		return linearBoundsPass(t, negated, bound.Neg(), modelLine)
	}
}

// LinearEquals returns a propagator enforcing sum(terms) == bound, by
// running both directions to a joint fixpoint each call.
func LinearEquals(terms []LinearTerm, bound Integer, modelLine ProofLine) PropagatorFunc {
	negated := negateTerms(terms)
	return func(t *InferenceTracker) Outcome {
		worst := NoChange
		if o := linearBoundsPass(t, terms, bound, modelLine); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := linearBoundsPass(t, negated, bound.Neg(), modelLine); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		return worst
	}
}

// linearModelSum builds the PB encoding of sum(terms) <= bound for the
// proof model. Each variable is rewritten in order encoding: x = lo +
// sum_{k=lo+1}^{hi} [x >= k], so coeff*x becomes a constant (folded into
// the bound) plus one addend per threshold above x's current lower bound.
func linearModelSum(p *Problem, terms []LinearTerm, bound Integer) PseudoBooleanSum {
	var addends []PBAddend
	adjBound := bound
	for _, term := range terms {
		lo, hi := p.state.Bounds(term.Var)
		adjBound -= term.Coeff.Mul(lo)
		base, negate, offset := Resolve(term.Var)
		simple, ok := base.(SimpleVariableID)
		if !ok {
			continue // a Constant folds entirely into adjBound above
		}
		for k := lo + 1; k <= hi; k++ {
			baseOp, baseVal := transformCondition(negate, offset, OpGreaterOrEqual, k)
			x := p.names.XLiteralFor(simple, baseOp, baseVal)
			addends = append(addends, TermFromXLiteral(term.Coeff, x))
		}
	}
	return PseudoBooleanSum{Addends: addends, Cmp: PBLessEqual, Bound: adjBound}
}
