package gcs

// This file holds the comparison, Boolean, and min/max/abs propagators,
// each rebuilt directly as a bounds-consistency PropagatorFunc, justified
// by RUP against the bounds of the variables that drove the inference.
// These constraints are simple enough that the reason is just the other
// operands' current bounds; there is no dedicated model encoding to cite a
// line number from.

func boundsReason(t *InferenceTracker, vars ...IntegerVariableID) Reason {
	return func() []Literal {
		lits := make([]Literal, 0, len(vars)*2)
		for _, v := range vars {
			lo, hi := t.State().Bounds(v)
			lits = append(lits, GreaterThanOrEqual(v, lo), LessThanOrEqual(v, hi))
		}
		return lits
	}
}

// equalsPropagator keeps x and y equal by copying each one's bounds onto
// the other until they agree.
func equalsPropagator(x, y IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		xlo, xhi := t.State().Bounds(x)
		ylo, yhi := t.State().Bounds(y)
		worst := NoChange
		if ylo > xlo {
			if o := t.InferGreaterThanOrEqual(x, ylo, RUPJustification(boundsReason(t, y))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if yhi < xhi {
			if o := t.InferLessThan(x, yhi+1, RUPJustification(boundsReason(t, y))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		xlo, xhi = t.State().Bounds(x)
		if xlo > ylo {
			if o := t.InferGreaterThanOrEqual(y, xlo, RUPJustification(boundsReason(t, x))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if xhi < yhi {
			if o := t.InferLessThan(y, xhi+1, RUPJustification(boundsReason(t, x))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		return worst
	}
}

// notEqualsPropagator removes y's fixed value from x (and vice versa) as
// soon as either is instantiated.
func notEqualsPropagator(x, y IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		worst := NoChange
		if yv, ok := t.State().OptionalSingleValue(y); ok {
			o := t.InferNotEqual(x, yv, RUPJustification(reasonOf(EqualTo(y, yv))))
			if o == Contradiction {
				return Contradiction
			}
			if o != NoChange {
				worst = o
			}
		}
		if xv, ok := t.State().OptionalSingleValue(x); ok {
			o := t.InferNotEqual(y, xv, RUPJustification(reasonOf(EqualTo(x, xv))))
			if o == Contradiction {
				return Contradiction
			}
			if o != NoChange {
				worst = o
			}
		}
		return worst
	}
}

// lessThanOrEqualPropagator enforces x <= y by bounds consistency.
func lessThanOrEqualPropagator(x, y IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		xlo, _ := t.State().Bounds(x)
		_, yhi := t.State().Bounds(y)
		worst := NoChange
		if o := t.InferLessThan(x, yhi+1, RUPJustification(boundsReason(t, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferGreaterThanOrEqual(y, xlo, RUPJustification(boundsReason(t, x))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		return worst
	}
}

// absPropagator enforces y = |x|.
func absPropagator(x, y IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		xlo, xhi := t.State().Bounds(x)
		bound := MaxInt(xlo.Neg(), xhi)
		if bound < 0 {
			bound = 0
		}
		worst := NoChange
		if o := t.InferGreaterThanOrEqual(y, 0, RUPJustification(boundsReason(t, x))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferLessThan(y, bound+1, RUPJustification(boundsReason(t, x))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		ylo, _ := t.State().Bounds(y)
		if xlo >= 0 {
			if o := t.InferGreaterThanOrEqual(x, ylo, RUPJustification(boundsReason(t, y))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if xhi <= 0 {
			if o := t.InferLessThan(x, -ylo+1, RUPJustification(boundsReason(t, y))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		return worst
	}
}

// minPropagator enforces z = min(x, y).
func minPropagator(x, y, z IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		xlo, xhi := t.State().Bounds(x)
		ylo, yhi := t.State().Bounds(y)
		worst := NoChange
		lo := MinInt(xlo, ylo)
		hi := MinInt(xhi, yhi)
		if o := t.InferGreaterThanOrEqual(z, lo, RUPJustification(boundsReason(t, x, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferLessThan(z, hi+1, RUPJustification(boundsReason(t, x, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		zlo, _ := t.State().Bounds(z)
		if o := t.InferGreaterThanOrEqual(x, zlo, RUPJustification(boundsReason(t, z, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferGreaterThanOrEqual(y, zlo, RUPJustification(boundsReason(t, z, x))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		return worst
	}
}

// maxPropagator enforces z = max(x, y).
func maxPropagator(x, y, z IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		xlo, xhi := t.State().Bounds(x)
		ylo, yhi := t.State().Bounds(y)
		worst := NoChange
		lo := MaxInt(xlo, ylo)
		hi := MaxInt(xhi, yhi)
		if o := t.InferGreaterThanOrEqual(z, lo, RUPJustification(boundsReason(t, x, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferLessThan(z, hi+1, RUPJustification(boundsReason(t, x, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		_, zhi := t.State().Bounds(z)
		if o := t.InferLessThan(x, zhi+1, RUPJustification(boundsReason(t, z, y))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferLessThan(y, zhi+1, RUPJustification(boundsReason(t, z, x))); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		return worst
	}
}

// boolAndPropagator enforces the Boolean-as-0/1-integer relation
// z = x AND y.
func boolAndPropagator(x, y, z IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		worst := NoChange
		if xv, ok := t.State().OptionalSingleValue(x); ok && xv == 0 {
			if o := t.InferEqual(z, 0, RUPJustification(reasonOf(EqualTo(x, 0)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if yv, ok := t.State().OptionalSingleValue(y); ok && yv == 0 {
			if o := t.InferEqual(z, 0, RUPJustification(reasonOf(EqualTo(y, 0)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if zv, ok := t.State().OptionalSingleValue(z); ok && zv == 1 {
			if o := t.InferEqual(x, 1, RUPJustification(reasonOf(EqualTo(z, 1)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
			if o := t.InferEqual(y, 1, RUPJustification(reasonOf(EqualTo(z, 1)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if xv, xok := t.State().OptionalSingleValue(x); xok && xv == 1 {
			if yv, yok := t.State().OptionalSingleValue(y); yok && yv == 1 {
				if o := t.InferEqual(z, 1, RUPJustification(reasonOf(EqualTo(x, 1), EqualTo(y, 1)))); o == Contradiction {
					return Contradiction
				} else if o != NoChange {
					worst = o
				}
			}
		}
		return worst
	}
}

// boolOrPropagator enforces z = x OR y.
func boolOrPropagator(x, y, z IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		worst := NoChange
		if xv, ok := t.State().OptionalSingleValue(x); ok && xv == 1 {
			if o := t.InferEqual(z, 1, RUPJustification(reasonOf(EqualTo(x, 1)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if yv, ok := t.State().OptionalSingleValue(y); ok && yv == 1 {
			if o := t.InferEqual(z, 1, RUPJustification(reasonOf(EqualTo(y, 1)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if zv, ok := t.State().OptionalSingleValue(z); ok && zv == 0 {
			if o := t.InferEqual(x, 0, RUPJustification(reasonOf(EqualTo(z, 0)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
			if o := t.InferEqual(y, 0, RUPJustification(reasonOf(EqualTo(z, 0)))); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
		if xv, xok := t.State().OptionalSingleValue(x); xok && xv == 0 {
			if yv, yok := t.State().OptionalSingleValue(y); yok && yv == 0 {
				if o := t.InferEqual(z, 0, RUPJustification(reasonOf(EqualTo(x, 0), EqualTo(y, 0)))); o == Contradiction {
					return Contradiction
				} else if o != NoChange {
					worst = o
				}
			}
		}
		return worst
	}
}

// impliesPropagator enforces x => y (i.e. NOT x OR y) over 0/1 variables.
func impliesPropagator(x, y IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		if xv, ok := t.State().OptionalSingleValue(x); ok && xv == 1 {
			return t.InferEqual(y, 1, RUPJustification(reasonOf(EqualTo(x, 1))))
		}
		if yv, ok := t.State().OptionalSingleValue(y); ok && yv == 0 {
			return t.InferEqual(x, 0, RUPJustification(reasonOf(EqualTo(y, 0))))
		}
		return NoChange
	}
}

// countPropagator enforces count = |{ i : vars[i] == value }|, by bounds
// consistency over the number of variables that could still take value.
func countPropagator(vars []IntegerVariableID, value Integer, count IntegerVariableID) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		fixed := 0
		possible := 0
		for _, v := range vars {
			if t.State().InDomain(v, value) {
				possible++
				if iv, ok := t.State().OptionalSingleValue(v); ok && iv == value {
					fixed++
				}
			}
		}
		worst := NoChange
		reason := func() []Literal {
			lits := make([]Literal, 0, len(vars))
			for _, v := range vars {
				if !t.State().InDomain(v, value) {
					lits = append(lits, NotEqualTo(v, value))
				} else if iv, ok := t.State().OptionalSingleValue(v); ok && iv == value {
					lits = append(lits, EqualTo(v, value))
				}
			}
			return lits
		}
		if o := t.InferGreaterThanOrEqual(count, Integer(fixed), RUPJustification(reason)); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		if o := t.InferLessThan(count, Integer(possible)+1, RUPJustification(reason)); o == Contradiction {
			return Contradiction
		} else if o != NoChange {
			worst = o
		}
		return worst
	}
}
