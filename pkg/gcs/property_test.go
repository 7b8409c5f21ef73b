package gcs

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func reverseIntegers(values []Integer) []Integer {
	out := make([]Integer, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

func TestDomainFromValuesCanonicalisationIsOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("the canonical domain does not depend on the order values were given in", prop.ForAll(
		func(values []int64) bool {
			ints := make([]Integer, len(values))
			for i, v := range values {
				ints[i] = Integer(v)
			}
			forward := NewDomainFromValues(ints)
			backward := NewDomainFromValues(reverseIntegers(ints))

			fLo, fHi := forward.Bounds()
			bLo, bHi := backward.Bounds()
			return forward.kind == backward.kind &&
				forward.Count() == backward.Count() &&
				fLo == bLo && fHi == bHi
		},
		gen.SliceOfN(6, gen.Int64Range(-30, 30)),
	))

	properties.TestingRun(t)
}

func TestDomainFromValuesIsIdempotentUnderRebuildFromItsOwnValues(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("rebuilding a domain from its own ToSlice output reproduces it exactly", prop.ForAll(
		func(values []int64) bool {
			ints := make([]Integer, len(values))
			for i, v := range values {
				ints[i] = Integer(v)
			}
			once := NewDomainFromValues(ints)
			twice := NewDomainFromValues(once.ToSlice())

			oLo, oHi := once.Bounds()
			tLo, tHi := twice.Bounds()
			return once.kind == twice.kind &&
				once.Count() == twice.Count() &&
				oLo == tLo && oHi == tHi
		},
		gen.SliceOfN(6, gen.Int64Range(-30, 30)),
	))

	properties.TestingRun(t)
}

func TestStateBacktrackRoundTripsBoundsForAnyInferenceSequence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("NewEpoch followed by Backtrack always restores the exact prior bounds", prop.ForAll(
		func(lo, span int64) bool {
			s := NewState()
			v := s.CreateVariable(0, 99, "x")
			beforeLo, beforeHi := s.Bounds(v)

			ts := s.NewEpoch()
			s.InferGreaterThanOrEqual(v, Integer(lo))
			s.InferLessThan(v, Integer(lo+span+1))
			s.Backtrack(ts)

			afterLo, afterHi := s.Bounds(v)
			return afterLo == beforeLo && afterHi == beforeHi
		},
		gen.Int64Range(0, 80),
		gen.Int64Range(0, 80),
	))

	properties.TestingRun(t)
}

func TestStateNestedBacktrackRoundTripsThroughMultipleEpochs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("backtracking the outer epoch undoes every nested epoch's changes too", prop.ForAll(
		func(firstBound, secondBound int64) bool {
			s := NewState()
			v := s.CreateVariable(0, 99, "x")
			beforeLo, beforeHi := s.Bounds(v)

			outer := s.NewEpoch()
			s.InferGreaterThanOrEqual(v, Integer(firstBound))
			s.NewEpoch()
			s.InferLessThan(v, Integer(secondBound))
			s.Backtrack(outer)

			afterLo, afterHi := s.Bounds(v)
			return afterLo == beforeLo && afterHi == beforeHi
		},
		gen.Int64Range(0, 80),
		gen.Int64Range(20, 99),
	))

	properties.TestingRun(t)
}
