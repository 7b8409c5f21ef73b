package gcs

// TableValue is one cell of a table constraint's tuple list: either a
// wildcard (matches any value the variable in that position could take) or
// a fixed required value.
type TableValue struct {
	Any   bool
	Value Integer
}

// Wildcard is the TableValue that matches any value.
func Wildcard() TableValue { return TableValue{Any: true} }

// Fixed is the TableValue requiring exactly value.
func Fixed(value Integer) TableValue { return TableValue{Value: value} }

// Table returns a propagator enforcing that (vars[0], ..., vars[k-1]) takes
// one of the rows in tuples, each row the same length as vars. modelLine
// names the table's PB encoding (0 if the model is disabled); it is not
// cited: each removal is justified by RUP over tableReason's literals.
func Table(vars []IntegerVariableID, tuples [][]TableValue, modelLine ProofLine) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		return tablePropagate(t, vars, tuples, modelLine)
	}
}

func tableSupports(t *InferenceTracker, vars []IntegerVariableID, tuple []TableValue, skip int, val Integer) bool {
	for j, v := range vars {
		want := tuple[j]
		if j == skip {
			if !want.Any && want.Value != val {
				return false
			}
			continue
		}
		if !want.Any && !t.State().InDomain(v, want.Value) {
			return false
		}
	}
	return true
}

func tablePropagate(t *InferenceTracker, vars []IntegerVariableID, tuples [][]TableValue, modelLine ProofLine) Outcome {
	worst := NoChange
	for i, v := range vars {
		var toRemove []Integer
		t.State().IterateValues(v, func(val Integer) bool {
			for _, tuple := range tuples {
				if tableSupports(t, vars, tuple, i, val) {
					return true
				}
			}
			toRemove = append(toRemove, val)
			return true
		})
		for _, val := range toRemove {
			pos, value := i, val
			just := RUPJustification(func() []Literal {
				return tableReason(t, vars, tuples, pos, value)
			})
			if o := t.InferNotEqual(v, val, just); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
	}
	return worst
}

// tableReason builds the disjunction-over-ruled-out-tuples reason: for
// every row that could have supported (vars[i] = val), cite whichever other
// position's current domain already excludes that row, so the verifier can
// see every candidate row is individually infeasible.
func tableReason(t *InferenceTracker, vars []IntegerVariableID, tuples [][]TableValue, i int, val Integer) []Literal {
	var lits []Literal
	for _, tuple := range tuples {
		want := tuple[i]
		if !want.Any && want.Value != val {
			continue
		}
		for j, v := range vars {
			if j == i {
				continue
			}
			w := tuple[j]
			if !w.Any && !t.State().InDomain(v, w.Value) {
				lits = append(lits, NotEqualTo(v, w.Value))
				break
			}
		}
	}
	return lits
}

// tableModelEncoding reifies each tuple behind a fresh ProofFlag ("this row
// is selected"), asserts flag => (var == value) for every fixed cell, and
// records an at-least-one constraint over the flags as the table's PB
// encoding. It returns the at-least-one constraint's ProofLine, which Post
// hands to Table as modelLine.
func tableModelEncoding(p *Problem, vars []IntegerVariableID, tuples [][]TableValue) ProofLine {
	flags := make([]ProofFlag, len(tuples))
	for i, tuple := range tuples {
		selected := p.names.NeedProofName("table_row")
		flag := ProofFlag{
			Name:     "table_row",
			Positive: selected,
			Negative: selected.Negated(),
		}
		flags[i] = flag
		for j, cell := range tuple {
			if cell.Any {
				continue
			}
			sum := PseudoBooleanSum{
				Addends: []PBAddend{
					TermFromFlag(1, flag, false),
					TermFromLiteral(1, EqualTo(vars[j], cell.Value)),
				},
				Cmp:   PBGreaterEqual,
				Bound: 1,
			}
			p.model.AddConstraint("table row implies cell", sum)
		}
	}
	addends := make([]PBAddend, len(flags))
	for i, f := range flags {
		addends[i] = TermFromFlag(1, f, true)
	}
	return p.model.AddConstraint("table at-least-one row selected", PseudoBooleanSum{
		Addends: addends, Cmp: PBGreaterEqual, Bound: 1,
	})
}
