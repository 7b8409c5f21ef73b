package gcs

import (
	"fmt"
	"math/bits"
	"strings"
)

// domainKind discriminates the four representations a domain can take.
// Representation is canonicalised aggressively: a domain of size 1 always
// collapses to domainConstant; a contiguous range that would fit in a
// bitset stays a domainRange until a hole is punched into it; a bitset with
// one surviving bit collapses to domainConstant.
type domainKind int

const (
	domainConstant domainKind = iota
	domainRange
	domainBitset
	domainIntervalSet
)

// bitsetWidth is the width of the SmallBitset representation.
const bitsetWidth = 64

// DomainState is the immutable value a simple variable's domain takes at a
// point in search. Operations on it (domain_ops.go) return a new
// DomainState rather than mutating in place; IntervalSet-backed domains
// share their interval backing between copies (interval_set.go).
type DomainState struct {
	kind domainKind

	// domainConstant
	constant Integer

	// domainRange
	lo, hi Integer

	// domainBitset: base is the value bit 0 represents; bits holds up to
	// bitsetWidth presence bits.
	base Integer
	bits uint64

	// domainIntervalSet
	ivs *intervalBacking
}

// NewConstantDomain returns a singleton domain.
func NewConstantDomain(v Integer) DomainState {
	return DomainState{kind: domainConstant, constant: v}
}

// NewRangeDomain returns the contiguous domain [lo, hi]. Panics if lo > hi;
// callers (state_store.go's CreateVariable) are expected to validate bounds
// before constructing a domain.
func NewRangeDomain(lo, hi Integer) DomainState {
	if lo > hi {
		panic("gcs: empty range domain")
	}
	if lo == hi {
		return NewConstantDomain(lo)
	}
	return DomainState{kind: domainRange, lo: lo, hi: hi}
}

// NewDomainFromValues returns the smallest canonical domain containing
// exactly the given (deduplicated) values.
func NewDomainFromValues(values []Integer) DomainState {
	if len(values) == 0 {
		panic("gcs: empty domain")
	}
	uniq := append([]Integer(nil), values...)
	sortIntegers(uniq)
	uniq = dedupSorted(uniq)
	if len(uniq) == 1 {
		return NewConstantDomain(uniq[0])
	}
	if uniq[len(uniq)-1]-uniq[0]+1 == Integer(len(uniq)) {
		return NewRangeDomain(uniq[0], uniq[len(uniq)-1])
	}
	if uniq[len(uniq)-1]-uniq[0] < bitsetWidth {
		var bitsVal uint64
		base := uniq[0]
		for _, v := range uniq {
			bitsVal |= 1 << uint(v-base)
		}
		return canonicalizeBitset(base, bitsVal)
	}
	ivs := make([]interval, 0, len(uniq))
	start := uniq[0]
	prev := uniq[0]
	for _, v := range uniq[1:] {
		if v == prev+1 {
			prev = v
			continue
		}
		ivs = append(ivs, interval{start, prev})
		start, prev = v, v
	}
	ivs = append(ivs, interval{start, prev})
	return DomainState{kind: domainIntervalSet, ivs: newIntervalBacking(ivs)}
}

func sortIntegers(s []Integer) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func dedupSorted(s []Integer) []Integer {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// canonicalizeBitset collapses a (base, bits) pair to the smallest
// equivalent representation: Constant if one bit, Range if contiguous,
// otherwise a bitset.
func canonicalizeBitset(base Integer, bitsVal uint64) DomainState {
	count := bits.OnesCount64(bitsVal)
	if count == 0 {
		panic("gcs: empty domain")
	}
	if count == 1 {
		off := bits.TrailingZeros64(bitsVal)
		return NewConstantDomain(base + Integer(off))
	}
	lowest := bits.TrailingZeros64(bitsVal)
	highest := 63 - bits.LeadingZeros64(bitsVal)
	span := highest - lowest + 1
	if bits.OnesCount64(bitsVal) == span {
		return NewRangeDomain(base+Integer(lowest), base+Integer(highest))
	}
	// Re-base so bit 0 is the lowest present value, keeping the
	// representation as compact as the aggressive-canonicalisation
	// invariant demands.
	return DomainState{kind: domainBitset, base: base + Integer(lowest), bits: bitsVal >> uint(lowest)}
}

// Count returns the number of values in the domain.
func (d DomainState) Count() Integer {
	switch d.kind {
	case domainConstant:
		return 1
	case domainRange:
		return d.hi - d.lo + 1
	case domainBitset:
		return Integer(bits.OnesCount64(d.bits))
	case domainIntervalSet:
		return d.ivs.count()
	default:
		panic("gcs: unknown domain kind")
	}
}

// Has reports whether v is in the domain.
func (d DomainState) Has(v Integer) bool {
	switch d.kind {
	case domainConstant:
		return v == d.constant
	case domainRange:
		return v >= d.lo && v <= d.hi
	case domainBitset:
		off := v - d.base
		if off < 0 || off >= bitsetWidth {
			return false
		}
		return d.bits&(1<<uint(off)) != 0
	case domainIntervalSet:
		return d.ivs.has(v)
	default:
		return false
	}
}

// IsSingleton reports whether the domain contains exactly one value.
func (d DomainState) IsSingleton() bool { return d.kind == domainConstant }

// SingletonValue returns the single value of a singleton domain. Panics if
// the domain is not a singleton.
func (d DomainState) SingletonValue() Integer {
	if d.kind != domainConstant {
		panic("gcs: SingletonValue on non-singleton domain")
	}
	return d.constant
}

// Min returns the domain's lower bound.
func (d DomainState) Min() Integer {
	switch d.kind {
	case domainConstant:
		return d.constant
	case domainRange:
		return d.lo
	case domainBitset:
		return d.base + Integer(bits.TrailingZeros64(d.bits))
	case domainIntervalSet:
		return d.ivs.min()
	default:
		panic("gcs: unknown domain kind")
	}
}

// Max returns the domain's upper bound.
func (d DomainState) Max() Integer {
	switch d.kind {
	case domainConstant:
		return d.constant
	case domainRange:
		return d.hi
	case domainBitset:
		return d.base + Integer(63-bits.LeadingZeros64(d.bits))
	case domainIntervalSet:
		return d.ivs.max()
	default:
		panic("gcs: unknown domain kind")
	}
}

// Bounds returns (Min, Max) together.
func (d DomainState) Bounds() (Integer, Integer) { return d.Min(), d.Max() }

// IterateValues calls f for each value in the domain in ascending order,
// stopping early if f returns false.
func (d DomainState) IterateValues(f func(Integer) bool) {
	switch d.kind {
	case domainConstant:
		f(d.constant)
	case domainRange:
		for v := d.lo; v <= d.hi; v++ {
			if !f(v) {
				return
			}
		}
	case domainBitset:
		b := d.bits
		for b != 0 {
			off := bits.TrailingZeros64(b)
			if !f(d.base + Integer(off)) {
				return
			}
			b &^= 1 << uint(off)
		}
	case domainIntervalSet:
		iterateIntervals(d.ivs.intervals, f)
	}
}

// ToSlice materialises the domain as a sorted slice of values.
func (d DomainState) ToSlice() []Integer {
	out := make([]Integer, 0, d.Count())
	d.IterateValues(func(v Integer) bool { out = append(out, v); return true })
	return out
}

// intervals returns the domain's values as a sorted disjoint interval list,
// used internally by domain_ops.go to implement NotEqual without caring
// which concrete representation it started from.
func (d DomainState) intervals() []interval {
	switch d.kind {
	case domainConstant:
		return []interval{{d.constant, d.constant}}
	case domainRange:
		return []interval{{d.lo, d.hi}}
	case domainBitset:
		var ivs []interval
		b := d.bits
		for b != 0 {
			start := bits.TrailingZeros64(b)
			run := b >> uint(start)
			length := bits.TrailingZeros64(^run)
			ivs = append(ivs, interval{d.base + Integer(start), d.base + Integer(start+length-1)})
			b &^= ((uint64(1) << uint(length)) - 1) << uint(start)
		}
		return ivs
	case domainIntervalSet:
		return d.ivs.intervals
	default:
		return nil
	}
}

// fromIntervals builds the canonical DomainState for a sorted disjoint
// interval list, panicking if it is empty (an empty domain is represented
// by the Contradiction Outcome, never by a DomainState value).
func fromIntervals(ivs []interval) DomainState {
	if len(ivs) == 0 {
		panic("gcs: empty domain")
	}
	if len(ivs) == 1 {
		return NewRangeDomain(ivs[0].Lo, ivs[0].Hi)
	}
	lo, hi := ivs[0].Lo, ivs[len(ivs)-1].Hi
	if hi-lo < bitsetWidth {
		var bitsVal uint64
		for _, iv := range ivs {
			for v := iv.Lo; v <= iv.Hi; v++ {
				bitsVal |= 1 << uint(v-lo)
			}
		}
		return canonicalizeBitset(lo, bitsVal)
	}
	return DomainState{kind: domainIntervalSet, ivs: newIntervalBacking(ivs)}
}

func (d DomainState) String() string {
	switch d.kind {
	case domainConstant:
		return fmt.Sprintf("{%d}", d.constant)
	case domainRange:
		return fmt.Sprintf("{%d..%d}", d.lo, d.hi)
	default:
		var sb strings.Builder
		sb.WriteString("{")
		first := true
		for _, iv := range d.intervals() {
			if !first {
				sb.WriteString(",")
			}
			first = false
			if iv.Lo == iv.Hi {
				fmt.Fprintf(&sb, "%d", iv.Lo)
			} else {
				fmt.Fprintf(&sb, "%d..%d", iv.Lo, iv.Hi)
			}
		}
		sb.WriteString("}")
		return sb.String()
	}
}
