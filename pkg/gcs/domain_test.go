package gcs

import "testing"

func TestDomainRepresentationCanonicalises(t *testing.T) {
	tests := []struct {
		name     string
		build    func() DomainState
		wantKind domainKind
		wantMin  Integer
		wantMax  Integer
		wantLen  Integer
	}{
		{
			name:     "range_collapses_to_constant",
			build:    func() DomainState { return NewRangeDomain(5, 5) },
			wantKind: domainConstant,
			wantMin:  5, wantMax: 5, wantLen: 1,
		},
		{
			name:     "contiguous_values_become_range",
			build:    func() DomainState { return NewDomainFromValues([]Integer{3, 4, 5, 6}) },
			wantKind: domainRange,
			wantMin:  3, wantMax: 6, wantLen: 4,
		},
		{
			name:     "sparse_small_span_becomes_bitset",
			build:    func() DomainState { return NewDomainFromValues([]Integer{1, 3, 5}) },
			wantKind: domainBitset,
			wantMin:  1, wantMax: 5, wantLen: 3,
		},
		{
			name:     "wide_sparse_span_becomes_interval_set",
			build:    func() DomainState { return NewDomainFromValues([]Integer{0, 100, 200}) },
			wantKind: domainIntervalSet,
			wantMin:  0, wantMax: 200, wantLen: 3,
		},
		{
			name:     "bitset_with_one_surviving_bit_collapses",
			build:    func() DomainState { return canonicalizeBitset(10, 1 << 2) },
			wantKind: domainConstant,
			wantMin:  12, wantMax: 12, wantLen: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.build()
			if d.kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", d.kind, tc.wantKind)
			}
			if lo, hi := d.Bounds(); lo != tc.wantMin || hi != tc.wantMax {
				t.Fatalf("bounds = [%d,%d], want [%d,%d]", lo, hi, tc.wantMin, tc.wantMax)
			}
			if d.Count() != tc.wantLen {
				t.Fatalf("count = %d, want %d", d.Count(), tc.wantLen)
			}
		})
	}
}

func TestDomainNotEqualSplitsRangeIntoBitset(t *testing.T) {
	d := NewRangeDomain(0, 5)
	after, outcome := DomainNotEqual(d, 3)
	if outcome != InteriorValuesChanged {
		t.Fatalf("outcome = %v, want InteriorValuesChanged", outcome)
	}
	if after.Has(3) {
		t.Fatalf("3 should have been removed")
	}
	if after.Count() != 5 {
		t.Fatalf("count = %d, want 5", after.Count())
	}
}

func TestDomainNotEqualLastValueContradicts(t *testing.T) {
	d := NewConstantDomain(7)
	if _, outcome := DomainNotEqual(d, 7); outcome != Contradiction {
		t.Fatalf("outcome = %v, want Contradiction", outcome)
	}
}

func TestDomainLessThanAndGreaterThanOrEqual(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(DomainState) (DomainState, Outcome)
		want    Outcome
		wantMin Integer
		wantMax Integer
	}{
		{
			name:    "less_than_truncates_upper_bound",
			apply:   func(d DomainState) (DomainState, Outcome) { return DomainLessThan(d, 5) },
			want:    BoundsChanged,
			wantMin: 0, wantMax: 4,
		},
		{
			name:    "greater_or_equal_truncates_lower_bound",
			apply:   func(d DomainState) (DomainState, Outcome) { return DomainGreaterThanOrEqual(d, 5) },
			want:    BoundsChanged,
			wantMin: 5, wantMax: 9,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewRangeDomain(0, 9)
			after, outcome := tc.apply(d)
			if outcome != tc.want {
				t.Fatalf("outcome = %v, want %v", outcome, tc.want)
			}
			if lo, hi := after.Bounds(); lo != tc.wantMin || hi != tc.wantMax {
				t.Fatalf("bounds = [%d,%d], want [%d,%d]", lo, hi, tc.wantMin, tc.wantMax)
			}
		})
	}
}

func TestDomainLessThanBelowMinimumContradicts(t *testing.T) {
	d := NewRangeDomain(5, 10)
	if _, outcome := DomainLessThan(d, 5); outcome != Contradiction {
		t.Fatalf("outcome = %v, want Contradiction", outcome)
	}
}

func TestDomainIterateValuesAscending(t *testing.T) {
	d := NewDomainFromValues([]Integer{9, 1, 5, 3})
	var got []Integer
	d.IterateValues(func(v Integer) bool {
		got = append(got, v)
		return true
	})
	want := []Integer{1, 3, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDomainIterateValuesStopsEarly(t *testing.T) {
	d := NewRangeDomain(0, 100)
	count := 0
	d.IterateValues(func(v Integer) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
