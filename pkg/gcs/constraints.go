package gcs

import "fmt"

// watchAll builds a trigger map waking on any domain change for every
// simple variable reachable (through view resolution) from vars. Every
// constructor in this file registers its propagator with this map, including
// those whose propagators only read bounds.
func watchAll(vars ...IntegerVariableID) map[SimpleVariableID]Triggers {
	m := make(map[SimpleVariableID]Triggers)
	for _, v := range vars {
		base, _, _ := Resolve(v)
		if s, ok := base.(SimpleVariableID); ok {
			m[s] = AnyTrigger()
		}
	}
	return m
}

// Equal posts x == y.
func Equal(x, y IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("equal", watchAll(x, y), equalsPropagator(x, y))
		return nil
	})
}

// NotEqual posts x != y.
func NotEqual(x, y IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("not-equal", watchAll(x, y), notEqualsPropagator(x, y))
		return nil
	})
}

// LessThanOrEqual posts x <= y.
func LessThanOrEqual(x, y IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("less-equal", watchAll(x, y), lessThanOrEqualPropagator(x, y))
		return nil
	})
}

// Abs posts y == |x|.
func Abs(x, y IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("abs", watchAll(x, y), absPropagator(x, y))
		return nil
	})
}

// Min posts z == min(x, y).
func Min(x, y, z IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("min", watchAll(x, y, z), minPropagator(x, y, z))
		return nil
	})
}

// Max posts z == max(x, y).
func Max(x, y, z IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("max", watchAll(x, y, z), maxPropagator(x, y, z))
		return nil
	})
}

// BoolAnd posts z == x AND y over 0/1 integer variables.
func BoolAnd(x, y, z IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("bool-and", watchAll(x, y, z), boolAndPropagator(x, y, z))
		return nil
	})
}

// BoolOr posts z == x OR y over 0/1 integer variables.
func BoolOr(x, y, z IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("bool-or", watchAll(x, y, z), boolOrPropagator(x, y, z))
		return nil
	})
}

// Implies posts x => y over 0/1 integer variables.
func Implies(x, y IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("implies", watchAll(x, y), impliesPropagator(x, y))
		return nil
	})
}

// Count posts count == |{ i : vars[i] == value }|.
func Count(vars []IntegerVariableID, value Integer, count IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		all := append(append([]IntegerVariableID{}, vars...), count)
		p.scheduler.Register("count", watchAll(all...), countPropagator(vars, value, count))
		return nil
	})
}

// LinearLessEqualConstraint posts sum(terms) <= bound.
func LinearLessEqualConstraint(terms []LinearTerm, bound Integer) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		vars := make([]IntegerVariableID, len(terms))
		for i, t := range terms {
			vars[i] = t.Var
		}
		var line ProofLine
		if p.model != nil {
			line = p.model.AddConstraint("linear <=", linearModelSum(p, terms, bound))
		}
		p.scheduler.Register("linear-le", watchAll(vars...), LinearLessEqual(terms, bound, line))
		return nil
	})
}

// LinearEqualsConstraint posts sum(terms) == bound.
func LinearEqualsConstraint(terms []LinearTerm, bound Integer) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		vars := make([]IntegerVariableID, len(terms))
		for i, t := range terms {
			vars[i] = t.Var
		}
		var line ProofLine
		if p.model != nil {
			line = p.model.AddConstraint("linear ==", linearModelSum(p, terms, bound))
		}
		p.scheduler.Register("linear-eq", watchAll(vars...), LinearEquals(terms, bound, line))
		return nil
	})
}

// AllDifferentConstraint posts that every variable in vars takes a
// distinct value, propagated to full generalised arc consistency.
func AllDifferentConstraint(vars []IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		var line ProofLine
		if p.model != nil {
			line = allDifferentModelEncoding(p, vars)
		}
		p.scheduler.Register("all-different", watchAll(vars...), AllDifferent(vars, line))
		return nil
	})
}

// allDifferentModelEncoding posts a direct pairwise-inequality PB encoding:
// for every pair of variables and every value either could take,
// not(x_i = v) or not(x_j = v).
func allDifferentModelEncoding(p *Problem, vars []IntegerVariableID) ProofLine {
	var last ProofLine
	for i := 0; i < len(vars); i++ {
		loI, hiI := p.state.Bounds(vars[i])
		for j := i + 1; j < len(vars); j++ {
			loJ, hiJ := p.state.Bounds(vars[j])
			lo := MaxInt(loI, loJ)
			hi := MinInt(hiI, hiJ)
			for v := lo; v <= hi; v++ {
				sum := PseudoBooleanSum{
					Addends: []PBAddend{
						TermFromLiteral(1, NotEqualTo(vars[i], v)),
						TermFromLiteral(1, NotEqualTo(vars[j], v)),
					},
					Cmp: PBGreaterEqual, Bound: 1,
				}
				last = p.model.AddConstraint(fmt.Sprintf("alldiff pairwise v%d", int64(v)), sum)
			}
		}
	}
	return last
}

// TableConstraint posts an extensional table constraint: (vars...) must
// match one of tuples.
func TableConstraint(vars []IntegerVariableID, tuples [][]TableValue) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		var line ProofLine
		if p.model != nil {
			line = tableModelEncoding(p, vars, tuples)
		}
		p.scheduler.Register("table", watchAll(vars...), Table(vars, tuples, line))
		return nil
	})
}

// MultiplyConstraint posts z == x * y.
func MultiplyConstraint(x, y, z IntegerVariableID) Constraint {
	return ConstraintFunc(func(p *Problem) error {
		p.scheduler.Register("multiply", watchAll(x, y, z), Multiply(x, y, z, 0))
		return nil
	})
}
