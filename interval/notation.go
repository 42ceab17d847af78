package interval

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
	ErrSyntax         = errors.New("invalid interval notation")
	ErrClosedInfinity = errors.New("infinite endpoint must be open")
)

type scanner struct {
	input string
	pos   int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) && unicode.IsSpace(rune(s.input[s.pos])) {
		s.pos++
	}
}

func (s *scanner) done() bool {
	s.skipSpace()
	return s.pos >= len(s.input)
}

func (s *scanner) expect(symbols string) (byte, error) {
	s.skipSpace()
	if s.pos >= len(s.input) {
		return 0, errors.Wrapf(ErrSyntax, "expected one of %q at end of input", symbols)
	}

	c := s.input[s.pos]
	if strings.IndexByte(symbols, c) < 0 {
		return 0, errors.Wrapf(ErrSyntax, "expected one of %q at offset %d, got %q", symbols, s.pos, c)
	}
	s.pos++
	return c, nil
}

func (s *scanner) endpoint(terminators string) (float64, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.input) && !strings.ContainsRune(terminators, rune(s.input[s.pos])) && !unicode.IsSpace(rune(s.input[s.pos])) {
		s.pos++
	}

	token := s.input[start:s.pos]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) {
		return 0, errors.Wrapf(ErrSyntax, "bad endpoint %q at offset %d", token, start)
	}
	return v, nil
}

func (s *scanner) scanRange() (Range, error) {
	lo, err := s.expect("[(")
	if err != nil {
		return Range{}, err
	}

	loValue, err := s.endpoint(",")
	if err != nil {
		return Range{}, err
	}

	if _, err := s.expect(","); err != nil {
		return Range{}, err
	}

	hiValue, err := s.endpoint("])")
	if err != nil {
		return Range{}, err
	}

	hi, err := s.expect("])")
	if err != nil {
		return Range{}, err
	}

	loBoundary, hiBoundary := Open, Open
	if lo == '[' {
		loBoundary = Closed
	}
	if hi == ']' {
		hiBoundary = Closed
	}

	if (math.IsInf(loValue, 0) && loBoundary == Closed) || (math.IsInf(hiValue, 0) && hiBoundary == Closed) {
		return Range{}, errors.Wrapf(ErrClosedInfinity, "at offset %d", s.pos)
	}
	return New(loBoundary, loValue, hiValue, hiBoundary)
}

// Parse reads a single range such as "[5, 10)" or "(-Inf, 0]".
func Parse(input string) (Range, error) {
	s := &scanner{input: input}
	r, err := s.scanRange()
	if err != nil {
		return Range{}, err
	}

	if !s.done() {
		return Range{}, errors.Wrapf(ErrSyntax, "trailing input %q", input[s.pos:])
	}
	return r, nil
}

// ParseSet reads whitespace-separated ranges in ascending order.
// The empty string yields the empty set.
func ParseSet(input string) (RangeSet, error) {
	s := &scanner{input: input}

	var ranges []Range
	for !s.done() {
		r, err := s.scanRange()
		if err != nil {
			return RangeSet{}, err
		}
		ranges = append(ranges, r)
	}
	return FromRanges(ranges...)
}

// MustParse is like Parse but panics if the input cannot be parsed.
func MustParse(input string) Range {
	r, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return r
}

// MustParseSet is like ParseSet but panics if the input cannot be parsed
// or does not form a valid set.
func MustParseSet(input string) RangeSet {
	s, err := ParseSet(input)
	if err != nil {
		panic(err)
	}
	return s
}
