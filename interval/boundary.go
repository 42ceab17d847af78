package interval

// Boundary tells whether an endpoint belongs to its Range.
type Boundary uint8

const (
	// Open excludes the endpoint from the range.
	Open Boundary = iota
	// Closed includes the endpoint in the range.
	Closed
)

// Inverse swaps Open and Closed.
func (b Boundary) Inverse() Boundary {
	if b == Open {
		return Closed
	}
	return Open
}

// and is Closed only when both boundaries are Closed.
func (b Boundary) and(other Boundary) Boundary {
	if b == Closed && other == Closed {
		return Closed
	}
	return Open
}

func (b Boundary) String() string {
	if b == Closed {
		return "closed"
	}
	return "open"
}

func (b Boundary) lowSymbol() byte {
	if b == Closed {
		return '['
	}
	return '('
}

func (b Boundary) highSymbol() byte {
	if b == Closed {
		return ']'
	}
	return ')'
}
