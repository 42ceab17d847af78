// Package dto holds the transfer objects handed to the n-tuple generator.
package dto

import (
	"fmt"

	"github.com/gpt-tools/partition/interval"
)

type BoolExpression uint8

const (
	IsTrue BoolExpression = iota
	IsFalse
)

func (e BoolExpression) String() string {
	if e == IsTrue {
		return "is true"
	}
	return "is false"
}

// IntervalExpression tells whether the value must lie inside (Eq) or
// outside (NotEq) the interval.
type IntervalExpression uint8

const (
	Eq IntervalExpression = iota
	NotEq
)

func (e IntervalExpression) String() string {
	if e == Eq {
		return "in"
	}
	return "not in"
}

type BoolDTO struct {
	Expression BoolExpression
	BoolVal    bool
	IsConstant bool
}

type IntervalDTO struct {
	Expression IntervalExpression
	Interval   interval.RangeSet
	// Precision is the smallest step between two values of the variable's type.
	Precision  float64
	IsConstant bool
}

// Input carries exactly one of Bool or Interval.
type Input struct {
	Bool     *BoolDTO
	Interval *IntervalDTO
}

func (in Input) String() string {
	switch {
	case in.Bool != nil:
		return in.Bool.Expression.String()
	case in.Interval != nil:
		return fmt.Sprintf("%s %s", in.Interval.Expression, in.Interval.Interval)
	}
	return "<nil>"
}

type NamedInput struct {
	Name  string
	Input Input
}

// NTupleInput lists the inputs of one predicate in condition order.
type NTupleInput struct {
	Inputs []NamedInput
}

// Get returns the input bound to the named variable.
func (t NTupleInput) Get(name string) (Input, bool) {
	for _, in := range t.Inputs {
		if in.Name == name {
			return in.Input, true
		}
	}
	return Input{}, false
}
