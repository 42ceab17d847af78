// Package ir describes features as typed variables and predicates over them.
package ir

import (
	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/interval"
)

type Kind uint8

const (
	Bool Kind = iota
	Integer
	Float
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Integer:
		return "int"
	case Float:
		return "float"
	}
	return "unknown"
}

type VarType struct {
	Kind      Kind
	precision float64
}

var (
	BoolType    = VarType{Kind: Bool}
	IntegerType = VarType{Kind: Integer, precision: 1}
)

// FloatType returns a float type whose values are spaced by precision.
func FloatType(precision float64) VarType {
	return VarType{Kind: Float, precision: precision}
}

// Precision returns the step between two consecutive values of the type.
// Bool has none.
func (t VarType) Precision() (float64, bool) {
	if t.Kind == Bool || t.precision <= 0 {
		return 0, false
	}
	return t.precision, true
}

func (t VarType) String() string {
	return t.Kind.String()
}

type Variable struct {
	Name string
	Type VarType
}

// Condition constrains a single variable.
type Condition interface {
	VariableName() string
}

type BoolCondition struct {
	Variable      string
	ShouldEqualTo bool
}

func (c BoolCondition) VariableName() string {
	return c.Variable
}

type IntervalCondition struct {
	Variable   string
	Expression dto.IntervalExpression
	Interval   interval.RangeSet
}

func (c IntervalCondition) VariableName() string {
	return c.Variable
}

// Predicate is a conjunction of conditions.
type Predicate []Condition

type Feature struct {
	Variables  []Variable
	Predicates []Predicate
}

func (f *Feature) lookupVariable(name string) (Variable, bool) {
	for _, v := range f.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
