package interval

import (
	"fmt"
	"math"
	"sort"

	"github.com/gpt-tools/partition/internal"
	"github.com/pkg/errors"
)

var (
	ErrUnsorted    = errors.New("ranges are not sorted")
	ErrOverlapping = errors.New("ranges overlap")
)

// RangeSet is a finite union of disjoint ranges, sorted ascending by Lo.
// Ranges that merely touch are kept as separate entries.
// The zero value is the empty set.
type RangeSet struct {
	ranges []Range
}

func NewSet(loBoundary Boundary, lo, hi float64, hiBoundary Boundary) (RangeSet, error) {
	r, err := New(loBoundary, lo, hi, hiBoundary)
	if err != nil {
		return RangeSet{}, err
	}
	return SetOf(r), nil
}

func NewClosedSet(lo, hi float64) (RangeSet, error) {
	return NewSet(Closed, lo, hi, Closed)
}

// SetOf wraps a single range.
func SetOf(r Range) RangeSet {
	return RangeSet{ranges: []Range{r}}
}

// FromRanges builds a set from ranges that are already sorted and pairwise
// disjoint. Each range must end no later than the next one starts, so equal-Lo
// ranges such as [5, 5] and (5, 10] must come in that order.
func FromRanges(ranges ...Range) (RangeSet, error) {
	if len(ranges) == 0 {
		return RangeSet{}, nil
	}

	for i := range ranges {
		if i > 0 && !inOrder(ranges[i-1], ranges[i]) {
			return RangeSet{}, errors.Wrapf(ErrUnsorted, "%s before %s", ranges[i-1], ranges[i])
		}

		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].IntersectsWith(ranges[j]) {
				return RangeSet{}, errors.Wrapf(ErrOverlapping, "%s and %s", ranges[i], ranges[j])
			}
		}
	}

	return RangeSet{ranges: append([]Range(nil), ranges...)}, nil
}

// Ranges returns a copy of the member ranges.
func (s RangeSet) Ranges() []Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return append([]Range(nil), s.ranges...)
}

// Len returns the number of ranges in s.
func (s RangeSet) Len() int {
	return len(s.ranges)
}

func (s RangeSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

func (s RangeSet) first() Range {
	if len(s.ranges) == 0 {
		panic("interval: empty range set has no lowest range")
	}
	return s.ranges[0]
}

func (s RangeSet) last() Range {
	if len(s.ranges) == 0 {
		panic("interval: empty range set has no highest range")
	}
	return s.ranges[len(s.ranges)-1]
}

// LowestLo returns the Lo of the first range. It panics if s is empty.
func (s RangeSet) LowestLo() float64 {
	return s.first().Lo
}

// HighestHi returns the Hi of the last range. It panics if s is empty.
func (s RangeSet) HighestHi() float64 {
	return s.last().Hi
}

// LowestBoundary panics if s is empty.
func (s RangeSet) LowestBoundary() Boundary {
	return s.first().LoBoundary
}

// HighestBoundary panics if s is empty.
func (s RangeSet) HighestBoundary() Boundary {
	return s.last().HiBoundary
}

// Contains reports whether any range of s contains v.
func (s RangeSet) Contains(v float64) bool {
	for _, r := range s.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// Inverse returns the complement of s over the extended real line.
func (s RangeSet) Inverse() RangeSet {
	if s.IsEmpty() {
		return SetOf(Unbounded())
	}

	var ranges []Range
	if r, ok := s.leftTail(); ok {
		ranges = append(ranges, r)
	}
	ranges = append(ranges, s.gaps()...)
	if r, ok := s.rightTail(); ok {
		ranges = append(ranges, r)
	}
	return RangeSet{ranges: ranges}
}

// leftTail covers (-Inf, LowestLo), unless s already starts at -Inf.
func (s RangeSet) leftTail() (Range, bool) {
	if math.IsInf(s.LowestLo(), -1) {
		return Range{}, false
	}
	return Range{
		LoBoundary: Open,
		Lo:         math.Inf(-1),
		Hi:         s.LowestLo(),
		HiBoundary: s.LowestBoundary().Inverse(),
	}, true
}

func inOrder(a, b Range) bool {
	return internal.CompareFloat(a.Lo, b.Lo) <= 0 && internal.CompareFloat(a.Hi, b.Lo) <= 0
}

// lessRange orders by Lo, then by Hi.
func lessRange(a, b Range) bool {
	if res := internal.CompareFloat(a.Lo, b.Lo); res != 0 {
		return res < 0
	}
	return internal.CompareFloat(a.Hi, b.Hi) < 0
}

// gaps returns the ranges lying strictly between consecutive members.
func (s RangeSet) gaps() []Range {
	if len(s.ranges) < 2 {
		return nil
	}

	gaps := make([]Range, 0, len(s.ranges)-1)
	for i := 1; i < len(s.ranges); i++ {
		a, b := s.ranges[i-1], s.ranges[i]
		if a.Hi > b.Lo {
			panic(fmt.Sprintf("interval: unordered ranges %s and %s", a, b))
		}

		gaps = append(gaps, Range{
			LoBoundary: a.HiBoundary.Inverse(),
			Lo:         a.Hi,
			Hi:         b.Lo,
			HiBoundary: b.LoBoundary.Inverse(),
		})
	}
	return gaps
}

// rightTail covers (HighestHi, Inf), unless s already ends at Inf.
func (s RangeSet) rightTail() (Range, bool) {
	if math.IsInf(s.HighestHi(), 1) {
		return Range{}, false
	}
	return Range{
		LoBoundary: s.HighestBoundary().Inverse(),
		Lo:         s.HighestHi(),
		Hi:         math.Inf(1),
		HiBoundary: Open,
	}, true
}

// IntersectsWith reports whether any range of s intersects any range of other.
func (s RangeSet) IntersectsWith(other RangeSet) bool {
	for _, x := range s.ranges {
		for _, y := range other.ranges {
			if x.IntersectsWith(y) {
				return true
			}
		}
	}
	return false
}

// Intersect returns the values shared by s and other. The result is absent
// (false) when nothing is shared; a present result is never empty.
func (s RangeSet) Intersect(other RangeSet) (RangeSet, bool) {
	var ranges []Range
	for _, x := range s.ranges {
		for _, y := range other.ranges {
			if r, ok := x.Intersect(y); ok {
				ranges = append(ranges, r)
			}
		}
	}

	if len(ranges) == 0 {
		return RangeSet{}, false
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return lessRange(ranges[i], ranges[j])
	})
	return RangeSet{ranges: ranges}, true
}

// Equal reports whether both sets hold the same ranges in the same order.
func (s RangeSet) Equal(other RangeSet) bool {
	if len(s.ranges) != len(other.ranges) {
		return false
	}

	for i := range s.ranges {
		if s.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

// String renders the set as space-separated ranges; the empty set renders as "".
func (s RangeSet) String() string {
	buf := make([]byte, 0, 16*len(s.ranges))
	for i, r := range s.ranges {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = r.appendTo(buf)
	}
	return string(buf)
}
