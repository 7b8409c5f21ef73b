package gcs

import "sort"

// interval is a closed inclusive range [Lo, Hi].
type interval struct {
	Lo, Hi Integer
}

// intervalBacking is the shared backing store for an IntervalSet-shaped
// domain. Several epochs' domain vectors may point at the same
// intervalBacking; this is safe because no operation writes into a backing
// in place: every domain operation builds a fresh interval list. retain and
// uniqueForWrite maintain refCount for copy-on-write use, but the state
// store calls neither. This is the sole shared-ownership relationship in the core;
// every other piece of per-epoch state is exclusively owned.
type intervalBacking struct {
	refCount  int
	intervals []interval // sorted, disjoint, non-adjacent (no two intervals touch)
}

func newIntervalBacking(ivs []interval) *intervalBacking {
	return &intervalBacking{refCount: 1, intervals: ivs}
}

func (b *intervalBacking) retain() *intervalBacking {
	b.refCount++
	return b
}

// uniqueForWrite returns a backing store the caller can mutate freely: b
// itself if it has exactly one owner, or a fresh clone otherwise. The caller
// is expected to have already dropped its own reference to b if cloning.
func (b *intervalBacking) uniqueForWrite() *intervalBacking {
	if b.refCount <= 1 {
		return b
	}
	b.refCount--
	ivs := make([]interval, len(b.intervals))
	copy(ivs, b.intervals)
	return newIntervalBacking(ivs)
}

func (b *intervalBacking) count() Integer {
	var total Integer
	for _, iv := range b.intervals {
		total += iv.Hi - iv.Lo + 1
	}
	return total
}

func (b *intervalBacking) has(v Integer) bool {
	ivs := b.intervals
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].Hi >= v })
	return i < len(ivs) && ivs[i].Lo <= v
}

func (b *intervalBacking) min() Integer {
	if len(b.intervals) == 0 {
		return 0
	}
	return b.intervals[0].Lo
}

func (b *intervalBacking) max() Integer {
	if len(b.intervals) == 0 {
		return 0
	}
	return b.intervals[len(b.intervals)-1].Hi
}

// removeValueFromIntervals returns the interval list with v removed, splitting an
// interval into two when v falls strictly inside it.
func removeValueFromIntervals(ivs []interval, v Integer) []interval {
	out := make([]interval, 0, len(ivs)+1)
	for _, iv := range ivs {
		if v < iv.Lo || v > iv.Hi {
			out = append(out, iv)
			continue
		}
		if iv.Lo == iv.Hi {
			continue // whole interval removed
		}
		if v == iv.Lo {
			out = append(out, interval{iv.Lo + 1, iv.Hi})
		} else if v == iv.Hi {
			out = append(out, interval{iv.Lo, iv.Hi - 1})
		} else {
			out = append(out, interval{iv.Lo, v - 1}, interval{v + 1, iv.Hi})
		}
	}
	return out
}

func removeBelowFromIntervals(ivs []interval, threshold Integer) []interval {
	out := make([]interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Hi < threshold {
			continue
		}
		lo := iv.Lo
		if lo < threshold {
			lo = threshold
		}
		out = append(out, interval{lo, iv.Hi})
	}
	return out
}

func removeAboveFromIntervals(ivs []interval, threshold Integer) []interval {
	out := make([]interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Lo > threshold {
			continue
		}
		hi := iv.Hi
		if hi > threshold {
			hi = threshold
		}
		out = append(out, interval{iv.Lo, hi})
	}
	return out
}

func intersectIntervals(a, b []interval) []interval {
	out := make([]interval, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := a[i].Lo
		if b[j].Lo > lo {
			lo = b[j].Lo
		}
		hi := a[i].Hi
		if b[j].Hi < hi {
			hi = b[j].Hi
		}
		if lo <= hi {
			out = append(out, interval{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return out
}

func iterateIntervals(ivs []interval, f func(Integer) bool) {
	for _, iv := range ivs {
		for v := iv.Lo; v <= iv.Hi; v++ {
			if !f(v) {
				return
			}
		}
	}
}
