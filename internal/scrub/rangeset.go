package scrub

import (
	"fmt"
	"slices"
	"sort"
)

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether r covers nothing.
func (r Range) IsEmpty() bool { return r.Start >= r.End }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// RangeSet is an ordered set of disjoint ranges. Ranges that overlap or touch
// are merged on insertion, so no two stored ranges are ever adjacent.
type RangeSet struct {
	ranges []Range
}

// NewRangeSet returns a set holding the union of ranges.
func NewRangeSet(ranges ...Range) *RangeSet {
	s := &RangeSet{}
	for _, r := range ranges {
		s.Add(r)
	}
	return s
}

// Add inserts r, coalescing it with every stored range it overlaps or abuts.
// Empty ranges are ignored.
func (s *RangeSet) Add(r Range) {
	if r.IsEmpty() {
		return
	}

	// First stored range that ends at or after r.Start can be merged.
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= r.Start
	})
	j := i
	for j < len(s.ranges) && s.ranges[j].Start <= r.End {
		r.Start = min(r.Start, s.ranges[j].Start)
		r.End = max(r.End, s.ranges[j].End)
		j++
	}
	s.ranges = slices.Replace(s.ranges, i, j, r)
}

// Ranges returns the stored ranges in ascending order.
func (s *RangeSet) Ranges() []Range {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ranges)
}

// Len returns the number of disjoint ranges.
func (s *RangeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ranges)
}

// Size returns the total number of bytes covered.
func (s *RangeSet) Size() int {
	total := 0
	for _, r := range s.Ranges() {
		total += r.Len()
	}
	return total
}

// Equal reports whether both sets hold the same coalesced ranges.
func (s *RangeSet) Equal(other *RangeSet) bool {
	return slices.Equal(s.Ranges(), other.Ranges())
}

func (s *RangeSet) String() string { return fmt.Sprint(s.Ranges()) }
