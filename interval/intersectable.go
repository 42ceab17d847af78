package interval

// Intersectable is the overlap capability shared by Range and RangeSet.
type Intersectable[T any] interface {
	IntersectsWith(other T) bool
	Intersect(other T) (T, bool)
}

var (
	_ Intersectable[Range]    = Range{}
	_ Intersectable[RangeSet] = RangeSet{}
)

// IntersectAll folds Intersect over its arguments, stopping at the first
// absent result.
func IntersectAll[T Intersectable[T]](first T, rest ...T) (T, bool) {
	acc := first
	for _, x := range rest {
		var ok bool
		if acc, ok = acc.Intersect(x); !ok {
			var zero T
			return zero, false
		}
	}
	return acc, true
}
