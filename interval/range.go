package interval

import (
	"math"
	"strconv"

	"github.com/gpt-tools/partition/internal"
	"github.com/pkg/errors"
)

var ErrInvalidRange = errors.New("invalid range: lo is greater than hi")

// Range is a single contiguous interval over the extended real line.
// Infinite endpoints are expected to carry an Open boundary; New does not enforce it.
type Range struct {
	LoBoundary Boundary
	Lo, Hi     float64
	HiBoundary Boundary
}

// New returns the range between lo and hi, failing with ErrInvalidRange when lo > hi.
func New(loBoundary Boundary, lo, hi float64, hiBoundary Boundary) (Range, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Range{}, errors.Wrapf(ErrInvalidRange, "NaN endpoint in (%v, %v)", lo, hi)
	}

	if lo > hi {
		return Range{}, errors.Wrapf(ErrInvalidRange, "%v > %v", lo, hi)
	}

	return Range{
		LoBoundary: loBoundary,
		Lo:         lo,
		Hi:         hi,
		HiBoundary: hiBoundary,
	}, nil
}

// NewClosed returns [lo, hi].
func NewClosed(lo, hi float64) (Range, error) {
	return New(Closed, lo, hi, Closed)
}

// Point returns the closed range [v, v].
func Point(v float64) Range {
	return Range{LoBoundary: Closed, Lo: v, Hi: v, HiBoundary: Closed}
}

// Unbounded returns (-Inf, Inf).
func Unbounded() Range {
	return Range{LoBoundary: Open, Lo: math.Inf(-1), Hi: math.Inf(1), HiBoundary: Open}
}

// Contains reports whether v lies in r, honouring both boundaries.
func (r Range) Contains(v float64) bool {
	return (r.Lo < v && v < r.Hi) ||
		(r.Lo == v && r.LoBoundary == Closed) ||
		(r.Hi == v && r.HiBoundary == Closed)
}

// IntersectsWith reports whether the two ranges share at least one value.
// Ranges that only touch at an endpoint intersect only if both are closed there.
func (r Range) IntersectsWith(other Range) bool {
	disjoint := r.Lo > other.Hi || other.Lo > r.Hi ||
		(r.Lo == other.Hi && (r.LoBoundary == Open || other.HiBoundary == Open)) ||
		(other.Lo == r.Hi && (other.LoBoundary == Open || r.HiBoundary == Open))

	return !disjoint
}

// Intersect returns the overlap of the two ranges, or false if there is none.
func (r Range) Intersect(other Range) (Range, bool) {
	if !r.IntersectsWith(other) {
		return Range{}, false
	}

	intersection := r

	res := internal.CompareFloat(other.Lo, intersection.Lo)
	if res > 0 {
		intersection.Lo = other.Lo
		intersection.LoBoundary = other.LoBoundary
	} else if res == 0 {
		intersection.LoBoundary = intersection.LoBoundary.and(other.LoBoundary)
	}

	res = internal.CompareFloat(other.Hi, intersection.Hi)
	if res < 0 {
		intersection.Hi = other.Hi
		intersection.HiBoundary = other.HiBoundary
	} else if res == 0 {
		intersection.HiBoundary = intersection.HiBoundary.and(other.HiBoundary)
	}
	return intersection, true
}

func formatEndpoint(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (r Range) appendTo(buf []byte) []byte {
	buf = append(buf, r.LoBoundary.lowSymbol())
	buf = append(buf, formatEndpoint(r.Lo)...)
	buf = append(buf, ", "...)
	buf = append(buf, formatEndpoint(r.Hi)...)
	return append(buf, r.HiBoundary.highSymbol())
}

// String renders the range in interval notation, e.g. "[5, 10)".
func (r Range) String() string {
	return string(r.appendTo(make([]byte, 0, 16)))
}
