// Package e2e drives the solver end to end through the same Problem facade
// the gcsctl CLI uses, one Describe block per built-in demonstration
// scenario, checking the final solution set rather than any propagator's
// internal pruning behaviour.
package e2e

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/latticeforge/gcs/pkg/gcs"
)

func newProblem() *gcs.Problem {
	return gcs.NewProblem(gcs.DefaultSolverConfig())
}

var _ = Describe("n-queens", func() {
	It("places 8 non-attacking queens in exactly 92 ways", func() {
		p := newProblem()
		const n = 8
		queens := make([]gcs.IntegerVariableID, n)
		for i := range queens {
			queens[i] = p.CreateIntegerVariable(0, n-1, fmt.Sprintf("q%d", i))
		}
		diagUp := make([]gcs.IntegerVariableID, n)
		diagDown := make([]gcs.IntegerVariableID, n)
		for i := range queens {
			diagUp[i] = gcs.Plus(queens[i], gcs.Integer(i))
			diagDown[i] = gcs.Minus(queens[i], gcs.Integer(i))
		}
		Expect(p.Post(gcs.AllDifferentConstraint(queens))).To(Succeed())
		Expect(p.Post(gcs.AllDifferentConstraint(diagUp))).To(Succeed())
		Expect(p.Post(gcs.AllDifferentConstraint(diagDown))).To(Succeed())

		solutions := 0
		_, outcome, err := p.SolveWith(gcs.SmallestDomainBranching(queens), gcs.Callbacks{
			OnSolution: func(state *gcs.State) bool {
				solutions++
				seen := map[gcs.Integer]bool{}
				for _, q := range queens {
					v, ok := state.OptionalSingleValue(q)
					Expect(ok).To(BeTrue())
					Expect(seen[v]).To(BeFalse(), "two queens on the same row")
					seen[v] = true
				}
				return true
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(solutions).To(Equal(92))
	})
})

var _ = Describe("unsat-linear", func() {
	It("reports no solutions for two contradictory sums", func() {
		p := newProblem()
		x := p.CreateIntegerVariable(0, 5, "x")
		y := p.CreateIntegerVariable(0, 5, "y")
		terms := []gcs.LinearTerm{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}
		Expect(p.Post(gcs.LinearLessEqualConstraint(terms, 3))).To(Succeed())
		Expect(p.Post(gcs.LinearEqualsConstraint(terms, 10))).To(Succeed())

		solutions := 0
		_, outcome, err := p.SolveWith(gcs.InputOrderBranching([]gcs.IntegerVariableID{x, y}), gcs.Callbacks{
			OnSolution: func(*gcs.State) bool { solutions++; return true },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(solutions).To(Equal(0))
	})
})

var _ = Describe("square-minimise", func() {
	It("minimises z = x*x to zero at x = 0", func() {
		p := newProblem()
		x := p.CreateIntegerVariable(-10, 10, "x")
		z := p.CreateIntegerVariable(0, 100, "z")
		Expect(p.Post(gcs.MultiplyConstraint(x, x, z))).To(Succeed())
		p.Minimise(z)

		var best gcs.Integer = -1
		_, outcome, err := p.SolveWith(gcs.SmallestDomainBranching([]gcs.IntegerVariableID{x, z}), gcs.Callbacks{
			OnSolution: func(state *gcs.State) bool {
				if v, ok := state.OptionalSingleValue(z); ok {
					best = v
				}
				return true
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(best).To(Equal(gcs.Integer(0)))
	})
})

var _ = Describe("mult-bc", func() {
	It("only ever reports z equal to the true product of x and y", func() {
		p := newProblem()
		x := p.CreateIntegerVariable(-5, -1, "x")
		y := p.CreateIntegerVariable(2, 7, "y")
		z := p.CreateIntegerVariable(-35, 35, "z")
		Expect(p.Post(gcs.MultiplyConstraint(x, y, z))).To(Succeed())

		solutions := 0
		_, outcome, err := p.SolveWith(gcs.SmallestDomainBranching([]gcs.IntegerVariableID{x, y, z}), gcs.Callbacks{
			OnSolution: func(state *gcs.State) bool {
				solutions++
				xv, _ := state.OptionalSingleValue(x)
				yv, _ := state.OptionalSingleValue(y)
				zv, _ := state.OptionalSingleValue(z)
				Expect(zv).To(Equal(xv * yv))
				return true
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(solutions).To(Equal(5 * 6))
	})
})

var _ = Describe("table-wildcards", func() {
	It("enumerates exactly the assignments covered by the wildcard tuples", func() {
		p := newProblem()
		a := p.CreateIntegerVariable(0, 3, "a")
		b := p.CreateIntegerVariable(0, 3, "b")
		c := p.CreateIntegerVariable(0, 3, "c")
		tuples := [][]gcs.TableValue{
			{gcs.Fixed(0), gcs.Wildcard(), gcs.Fixed(1)},
			{gcs.Fixed(1), gcs.Fixed(2), gcs.Wildcard()},
			{gcs.Wildcard(), gcs.Fixed(3), gcs.Fixed(3)},
		}
		Expect(p.Post(gcs.TableConstraint([]gcs.IntegerVariableID{a, b, c}, tuples))).To(Succeed())

		type triple struct{ a, b, c gcs.Integer }
		seen := map[triple]bool{}
		_, outcome, err := p.SolveWith(gcs.SmallestDomainBranching([]gcs.IntegerVariableID{a, b, c}), gcs.Callbacks{
			OnSolution: func(state *gcs.State) bool {
				av, _ := state.OptionalSingleValue(a)
				bv, _ := state.OptionalSingleValue(b)
				cv, _ := state.OptionalSingleValue(c)
				t := triple{av, bv, cv}
				Expect(seen[t]).To(BeFalse(), "duplicate solution reported")
				seen[t] = true
				matches := (av == 0 && cv == 1) ||
					(av == 1 && bv == 2) ||
					(bv == 3 && cv == 3)
				Expect(matches).To(BeTrue(), "solution %+v matches no table tuple", t)
				return true
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(seen).To(HaveLen(12))
	})
})

var _ = Describe("alldiff-gac", func() {
	It("prunes down to the two assignments a Hall-set argument allows", func() {
		p := newProblem()
		v1 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3}, "v1")
		v2 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3}, "v2")
		v3 := p.CreateIntegerVariable(1, 4, "v3")
		v4 := p.CreateIntegerVariableFromValues([]gcs.Integer{2, 3, 4}, "v4")
		vars := []gcs.IntegerVariableID{v1, v2, v3, v4}
		Expect(p.Post(gcs.AllDifferentConstraint(vars))).To(Succeed())

		solutions := 0
		_, outcome, err := p.SolveWith(gcs.SmallestDomainBranching(vars), gcs.Callbacks{
			OnSolution: func(state *gcs.State) bool {
				solutions++
				seen := map[gcs.Integer]bool{}
				for _, v := range vars {
					val, ok := state.OptionalSingleValue(v)
					Expect(ok).To(BeTrue())
					Expect(seen[val]).To(BeFalse())
					seen[val] = true
				}
				v3val, _ := state.OptionalSingleValue(v3)
				v4val, _ := state.OptionalSingleValue(v4)
				Expect(v3val).To(Equal(gcs.Integer(1)), "the Hall set {2,3} must force v3 out of it")
				Expect(v4val).To(Equal(gcs.Integer(4)), "the Hall set {2,3} must force v4 out of it")
				return true
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(gcs.OutcomeExhausted))
		Expect(solutions).To(Equal(2))
	})
})
