package encoding

import (
	"math"
	"testing"

	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/interval"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeDecodeTuple(t *testing.T) {
	tuple := dto.NTupleInput{
		Inputs: []dto.NamedInput{
			{Name: "age", Input: dto.Input{Interval: &dto.IntervalDTO{
				Expression: dto.Eq,
				Interval:   interval.MustParseSet("(-Inf, 0) [18, 65) (100, Inf)"),
				Precision:  1,
			}}},
			{Name: "member", Input: dto.Input{Bool: &dto.BoolDTO{Expression: dto.IsTrue, BoolVal: true}}},
			{Name: "ratio", Input: dto.Input{Interval: &dto.IntervalDTO{
				Expression: dto.NotEq,
				Interval:   interval.RangeSet{},
				Precision:  0.01,
				IsConstant: true,
			}}},
		},
	}

	data, err := EncodeTuple(tuple)
	require.NoError(t, err)

	decoded, err := DecodeTuple(data)
	require.NoError(t, err)
	require.Equal(t, tuple, decoded)

	age, ok := decoded.Get("age")
	require.True(t, ok)
	require.True(t, math.IsInf(age.Interval.Interval.LowestLo(), -1))
	require.True(t, math.IsInf(age.Interval.Interval.HighestHi(), 1))
}

func TestEncodeEmptyInput(t *testing.T) {
	_, err := EncodeTuple(dto.NTupleInput{Inputs: []dto.NamedInput{{Name: "x"}}})
	require.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := DecodeTuple([]byte{0xc1})
	require.ErrorIs(t, err, ErrMalformed)

	data, err := msgpack.Marshal(&wireTuple{Inputs: []wireInput{{Name: "x", Kind: 42}}})
	require.NoError(t, err)
	_, err = DecodeTuple(data)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeRevalidatesRanges(t *testing.T) {
	data, err := msgpack.Marshal(&wireTuple{Inputs: []wireInput{{
		Name: "x",
		Kind: kindInterval,
		Ranges: []wireRange{
			{LoClosed: true, Lo: 0, Hi: 20, HiClosed: true},
			{LoClosed: true, Lo: 10, Hi: 30, HiClosed: true},
		},
	}}})
	require.NoError(t, err)

	_, err = DecodeTuple(data)
	require.ErrorIs(t, err, interval.ErrOverlapping)

	data, err = msgpack.Marshal(&wireTuple{Inputs: []wireInput{{
		Name:   "x",
		Kind:   kindInterval,
		Ranges: []wireRange{{Lo: 30, Hi: 20}},
	}}})
	require.NoError(t, err)

	_, err = DecodeTuple(data)
	require.ErrorIs(t, err, interval.ErrInvalidRange)
}
