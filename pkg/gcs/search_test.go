package gcs

import "testing"

func newTestProblem() *Problem {
	cfg := DefaultSolverConfig()
	return NewProblem(cfg)
}

func TestSolveAllDifferentEnumeratesAllPermutations(t *testing.T) {
	p := newTestProblem()
	vars := make([]IntegerVariableID, 3)
	for i := range vars {
		vars[i] = p.CreateIntegerVariable(1, 3, "")
	}
	if err := p.Post(AllDifferentConstraint(vars)); err != nil {
		t.Fatalf("Post: %v", err)
	}

	solutions := 0
	_, outcome, err := p.SolveWith(SmallestDomainBranching(vars), Callbacks{
		OnSolution: func(state *State) bool {
			solutions++
			seen := map[Integer]bool{}
			for _, v := range vars {
				val, ok := state.OptionalSingleValue(v)
				if !ok {
					t.Fatalf("variable not fixed in a reported solution")
				}
				if seen[val] {
					t.Fatalf("duplicate value %d in all-different solution", val)
				}
				seen[val] = true
			}
			return true
		},
	})
	if err != nil {
		t.Fatalf("SolveWith: %v", err)
	}
	if outcome != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", outcome)
	}
	if solutions != 6 {
		t.Fatalf("solutions = %d, want 6 (3!)", solutions)
	}
}

func TestSolveContradictoryLinearConstraintsIsUnsat(t *testing.T) {
	p := newTestProblem()
	x := p.CreateIntegerVariable(0, 5, "x")
	y := p.CreateIntegerVariable(0, 5, "y")
	terms := []LinearTerm{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}
	if err := p.Post(LinearLessEqualConstraint(terms, 3)); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if err := p.Post(LinearEqualsConstraint(terms, 10)); err != nil {
		t.Fatalf("Post: %v", err)
	}

	solutions := 0
	stats, outcome, err := p.SolveWith(InputOrderBranching([]IntegerVariableID{x, y}), Callbacks{
		OnSolution: func(state *State) bool { solutions++; return true },
	})
	if err != nil {
		t.Fatalf("SolveWith: %v", err)
	}
	if outcome != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", outcome)
	}
	if solutions != 0 {
		t.Fatalf("solutions = %d, want 0", solutions)
	}
	if stats.Solutions != 0 {
		t.Fatalf("stats.Solutions = %d, want 0", stats.Solutions)
	}
}

func TestSolveMinimisesSquare(t *testing.T) {
	p := newTestProblem()
	x := p.CreateIntegerVariable(-10, 10, "x")
	z := p.CreateIntegerVariable(0, 100, "z")
	if err := p.Post(MultiplyConstraint(x, x, z)); err != nil {
		t.Fatalf("Post: %v", err)
	}
	p.Minimise(z)

	var best Integer = -1
	_, outcome, err := p.SolveWith(SmallestDomainBranching([]IntegerVariableID{x, z}), Callbacks{
		OnSolution: func(state *State) bool {
			v, ok := state.OptionalSingleValue(z)
			if ok {
				best = v
			}
			return true
		},
	})
	if err != nil {
		t.Fatalf("SolveWith: %v", err)
	}
	if outcome != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", outcome)
	}
	if best != 0 {
		t.Fatalf("best z = %d, want 0 (x=0)", best)
	}
}

func TestSolveStopsAtFirstSolutionWhenCallbackDeclines(t *testing.T) {
	p := newTestProblem()
	vars := make([]IntegerVariableID, 3)
	for i := range vars {
		vars[i] = p.CreateIntegerVariable(1, 3, "")
	}
	if err := p.Post(AllDifferentConstraint(vars)); err != nil {
		t.Fatalf("Post: %v", err)
	}

	solutions := 0
	_, outcome, err := p.SolveWith(SmallestDomainBranching(vars), Callbacks{
		OnSolution: func(state *State) bool {
			solutions++
			return false
		},
	})
	if err != nil {
		t.Fatalf("SolveWith: %v", err)
	}
	if outcome != OutcomeStoppedByCallback {
		t.Fatalf("outcome = %v, want OutcomeStoppedByCallback", outcome)
	}
	if solutions != 1 {
		t.Fatalf("solutions = %d, want 1", solutions)
	}
}
