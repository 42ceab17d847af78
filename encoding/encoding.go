// Package encoding defines the msgpack wire format of n-tuple inputs.
package encoding

import (
	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/interval"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	kindBool uint8 = iota + 1
	kindInterval
)

var ErrMalformed = errors.New("malformed n-tuple encoding")

type wireRange struct {
	LoClosed bool    `msgpack:"lc"`
	Lo       float64 `msgpack:"lo"`
	Hi       float64 `msgpack:"hi"`
	HiClosed bool    `msgpack:"hc"`
}

type wireInput struct {
	Name       string      `msgpack:"name"`
	Kind       uint8       `msgpack:"kind"`
	Expression uint8       `msgpack:"expr"`
	BoolVal    bool        `msgpack:"bool,omitempty"`
	Ranges     []wireRange `msgpack:"ranges,omitempty"`
	Precision  float64     `msgpack:"precision,omitempty"`
	IsConstant bool        `msgpack:"const,omitempty"`
}

type wireTuple struct {
	Inputs []wireInput `msgpack:"inputs"`
}

func boundaryOf(closed bool) interval.Boundary {
	if closed {
		return interval.Closed
	}
	return interval.Open
}

func encodeRanges(s interval.RangeSet) []wireRange {
	ranges := make([]wireRange, 0, s.Len())
	for _, r := range s.Ranges() {
		ranges = append(ranges, wireRange{
			LoClosed: r.LoBoundary == interval.Closed,
			Lo:       r.Lo,
			Hi:       r.Hi,
			HiClosed: r.HiBoundary == interval.Closed,
		})
	}
	return ranges
}

func decodeRanges(ranges []wireRange) (interval.RangeSet, error) {
	decoded := make([]interval.Range, 0, len(ranges))
	for _, r := range ranges {
		dr, err := interval.New(boundaryOf(r.LoClosed), r.Lo, r.Hi, boundaryOf(r.HiClosed))
		if err != nil {
			return interval.RangeSet{}, err
		}
		decoded = append(decoded, dr)
	}
	return interval.FromRanges(decoded...)
}

func encodeInput(in dto.NamedInput) (wireInput, error) {
	w := wireInput{Name: in.Name}

	switch {
	case in.Input.Bool != nil:
		w.Kind = kindBool
		w.Expression = uint8(in.Input.Bool.Expression)
		w.BoolVal = in.Input.Bool.BoolVal
		w.IsConstant = in.Input.Bool.IsConstant
	case in.Input.Interval != nil:
		w.Kind = kindInterval
		w.Expression = uint8(in.Input.Interval.Expression)
		w.Ranges = encodeRanges(in.Input.Interval.Interval)
		w.Precision = in.Input.Interval.Precision
		w.IsConstant = in.Input.Interval.IsConstant
	default:
		return wireInput{}, errors.Errorf("input %q carries no value", in.Name)
	}
	return w, nil
}

func decodeInput(w wireInput) (dto.NamedInput, error) {
	switch w.Kind {
	case kindBool:
		return dto.NamedInput{Name: w.Name, Input: dto.Input{Bool: &dto.BoolDTO{
			Expression: dto.BoolExpression(w.Expression),
			BoolVal:    w.BoolVal,
			IsConstant: w.IsConstant,
		}}}, nil
	case kindInterval:
		set, err := decodeRanges(w.Ranges)
		if err != nil {
			return dto.NamedInput{}, errors.Wrapf(err, "input %q", w.Name)
		}
		return dto.NamedInput{Name: w.Name, Input: dto.Input{Interval: &dto.IntervalDTO{
			Expression: dto.IntervalExpression(w.Expression),
			Interval:   set,
			Precision:  w.Precision,
			IsConstant: w.IsConstant,
		}}}, nil
	}
	return dto.NamedInput{}, errors.Wrapf(ErrMalformed, "input %q has unknown kind %d", w.Name, w.Kind)
}

// EncodeTuple serializes a single n-tuple input.
func EncodeTuple(t dto.NTupleInput) ([]byte, error) {
	w := wireTuple{Inputs: make([]wireInput, 0, len(t.Inputs))}
	for _, in := range t.Inputs {
		wi, err := encodeInput(in)
		if err != nil {
			return nil, err
		}
		w.Inputs = append(w.Inputs, wi)
	}
	return msgpack.Marshal(&w)
}

// DecodeTuple is the inverse of EncodeTuple. Range sets are re-validated.
func DecodeTuple(data []byte) (dto.NTupleInput, error) {
	var w wireTuple
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return dto.NTupleInput{}, errors.Wrap(ErrMalformed, err.Error())
	}

	t := dto.NTupleInput{Inputs: make([]dto.NamedInput, 0, len(w.Inputs))}
	for _, wi := range w.Inputs {
		in, err := decodeInput(wi)
		if err != nil {
			return dto.NTupleInput{}, err
		}
		t.Inputs = append(t.Inputs, in)
	}
	return t, nil
}
