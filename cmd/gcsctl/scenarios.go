package main

import (
	"fmt"
	"sort"

	"github.com/latticeforge/gcs/pkg/gcs"
)

// namedVar pairs a variable with the name it should be printed under; the
// solver's own variable names are internal (state_store.go) and not directly
// queryable once views are involved, so the driver keeps its own list.
type namedVar struct {
	name string
	v    gcs.IntegerVariableID
}

// scenario is one built-in demonstration problem: a Problem builder plus the
// variables to print and the branching strategy to search with.
type scenario struct {
	name        string
	description string
	build       func(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy)
}

var scenarios = map[string]scenario{}

func register(s scenario) { scenarios[s.name] = s }

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(scenario{
		name:        "n-queens",
		description: "place 8 non-attacking queens on an 8x8 board",
		build:       buildNQueens,
	})
	register(scenario{
		name:        "unsat-linear",
		description: "two linear constraints over the same sum that cannot both hold",
		build:       buildUnsatLinear,
	})
	register(scenario{
		name:        "square-minimise",
		description: "minimise z = x*x over x in [-10,10]",
		build:       buildSquareMinimise,
	})
	register(scenario{
		name:        "mult-bc",
		description: "z = x*y bounds consistency over disjoint-sign domains",
		build:       buildMultBC,
	})
	register(scenario{
		name:        "table-wildcards",
		description: "an extensional table constraint with wildcard cells",
		build:       buildTableWildcards,
	})
	register(scenario{
		name:        "alldiff-gac",
		description: "an all-different pruning only generalised arc consistency catches",
		build:       buildAllDiffGAC,
	})
}

func buildNQueens(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	const n = 8
	queens := make([]gcs.IntegerVariableID, n)
	named := make([]namedVar, n)
	for i := 0; i < n; i++ {
		v := p.CreateIntegerVariable(0, n-1, fmt.Sprintf("q%d", i))
		queens[i] = v
		named[i] = namedVar{name: fmt.Sprintf("q%d", i), v: v}
	}
	diagUp := make([]gcs.IntegerVariableID, n)
	diagDown := make([]gcs.IntegerVariableID, n)
	for i := 0; i < n; i++ {
		diagUp[i] = gcs.Plus(queens[i], gcs.Integer(i))
		diagDown[i] = gcs.Minus(queens[i], gcs.Integer(i))
	}
	_ = p.Post(gcs.AllDifferentConstraint(queens))
	_ = p.Post(gcs.AllDifferentConstraint(diagUp))
	_ = p.Post(gcs.AllDifferentConstraint(diagDown))
	return named, gcs.SmallestDomainBranching(queens)
}

func buildUnsatLinear(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	x := p.CreateIntegerVariable(0, 5, "x")
	y := p.CreateIntegerVariable(0, 5, "y")
	terms := []gcs.LinearTerm{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}
	_ = p.Post(gcs.LinearLessEqualConstraint(terms, 3))
	_ = p.Post(gcs.LinearEqualsConstraint(terms, 10))
	named := []namedVar{{"x", x}, {"y", y}}
	return named, gcs.InputOrderBranching([]gcs.IntegerVariableID{x, y})
}

func buildSquareMinimise(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	x := p.CreateIntegerVariable(-10, 10, "x")
	z := p.CreateIntegerVariable(0, 100, "z")
	_ = p.Post(gcs.MultiplyConstraint(x, x, z))
	p.Minimise(z)
	named := []namedVar{{"x", x}, {"z", z}}
	return named, gcs.SmallestDomainBranching([]gcs.IntegerVariableID{x, z})
}

func buildMultBC(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	x := p.CreateIntegerVariable(-5, -1, "x")
	y := p.CreateIntegerVariable(2, 7, "y")
	z := p.CreateIntegerVariable(-35, 35, "z")
	_ = p.Post(gcs.MultiplyConstraint(x, y, z))
	named := []namedVar{{"x", x}, {"y", y}, {"z", z}}
	return named, gcs.SmallestDomainBranching([]gcs.IntegerVariableID{x, y, z})
}

func buildTableWildcards(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	a := p.CreateIntegerVariable(0, 3, "a")
	b := p.CreateIntegerVariable(0, 3, "b")
	c := p.CreateIntegerVariable(0, 3, "c")
	tuples := [][]gcs.TableValue{
		{gcs.Fixed(0), gcs.Wildcard(), gcs.Fixed(1)},
		{gcs.Fixed(1), gcs.Fixed(2), gcs.Wildcard()},
		{gcs.Wildcard(), gcs.Fixed(3), gcs.Fixed(3)},
	}
	_ = p.Post(gcs.TableConstraint([]gcs.IntegerVariableID{a, b, c}, tuples))
	named := []namedVar{{"a", a}, {"b", b}, {"c", c}}
	return named, gcs.SmallestDomainBranching([]gcs.IntegerVariableID{a, b, c})
}

func buildAllDiffGAC(p *gcs.Problem) ([]namedVar, gcs.BranchingStrategy) {
	v1 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3}, "v1")
	v2 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3}, "v2")
	v3 := p.CreateIntegerVariable(1, 4, "v3")
	v4 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3, 4}, "v4")
	vars := []gcs.IntegerVariableID{v1, v2, v3, v4}
	_ = p.Post(gcs.AllDifferentConstraint(vars))
	named := []namedVar{{"v1", v1}, {"v2", v2}, {"v3", v3}, {"v4", v4}}
	return named, gcs.SmallestDomainBranching(vars)
}
