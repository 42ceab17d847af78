package ir

import (
	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/interval"
	"github.com/pkg/errors"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrNoPrecision       = errors.New("variable type has no precision")
	ErrUnsatisfiable     = errors.New("interval conditions share no value")
)

func convertBoolDTO(c BoolCondition) *dto.BoolDTO {
	expression := dto.IsFalse
	if c.ShouldEqualTo {
		expression = dto.IsTrue
	}
	return &dto.BoolDTO{
		Expression: expression,
		BoolVal:    c.ShouldEqualTo,
		IsConstant: false,
	}
}

func convertIntervalDTO(v Variable, c IntervalCondition) (*dto.IntervalDTO, error) {
	precision, ok := v.Type.Precision()
	if !ok {
		return nil, errors.Wrapf(ErrNoPrecision, "variable %q of type %s", v.Name, v.Type)
	}

	return &dto.IntervalDTO{
		Expression: c.Expression,
		Interval:   c.Interval,
		Precision:  precision,
		IsConstant: false,
	}, nil
}

func (f *Feature) convertCondition(c Condition) (dto.Input, error) {
	v, ok := f.lookupVariable(c.VariableName())
	if !ok {
		return dto.Input{}, errors.Wrapf(ErrUndefinedVariable, "%q", c.VariableName())
	}

	switch c := c.(type) {
	case BoolCondition:
		return dto.Input{Bool: convertBoolDTO(c)}, nil
	case IntervalCondition:
		intervalDTO, err := convertIntervalDTO(v, c)
		if err != nil {
			return dto.Input{}, err
		}
		return dto.Input{Interval: intervalDTO}, nil
	}
	return dto.Input{}, errors.Errorf("unsupported condition %T", c)
}

// convertPredicate keeps conditions in order. Repeated Eq interval conditions
// on the same variable collapse into their intersection at the position of
// the first one.
func (f *Feature) convertPredicate(p Predicate) (dto.NTupleInput, error) {
	inputs := make([]dto.NamedInput, 0, len(p))
	eqPositions := make(map[string]int)

	for _, c := range p {
		in, err := f.convertCondition(c)
		if err != nil {
			return dto.NTupleInput{}, err
		}

		name := c.VariableName()
		if in.Interval != nil && in.Interval.Expression == dto.Eq {
			if pos, seen := eqPositions[name]; seen {
				prev := inputs[pos].Input.Interval
				merged, ok := interval.IntersectAll(prev.Interval, in.Interval.Interval)
				if !ok {
					return dto.NTupleInput{}, errors.Wrapf(ErrUnsatisfiable, "%q in %s and %s", name, prev.Interval, in.Interval.Interval)
				}

				mergedDTO := *prev
				mergedDTO.Interval = merged
				inputs[pos].Input = dto.Input{Interval: &mergedDTO}
				continue
			}
			eqPositions[name] = len(inputs)
		}

		inputs = append(inputs, dto.NamedInput{Name: name, Input: in})
	}
	return dto.NTupleInput{Inputs: inputs}, nil
}

// NTuples converts every predicate of the feature into the input of one
// n-tuple, in predicate order. Eq interval conditions on the same variable
// within a predicate are intersected into a single input, so a tuple may hold
// fewer inputs than its predicate has conditions.
func (f *Feature) NTuples() ([]dto.NTupleInput, error) {
	tuples := make([]dto.NTupleInput, 0, len(f.Predicates))
	for i, p := range f.Predicates {
		tuple, err := f.convertPredicate(p)
		if err != nil {
			return nil, errors.Wrapf(err, "predicate %d", i)
		}
		tuples = append(tuples, tuple)
	}
	return tuples, nil
}
