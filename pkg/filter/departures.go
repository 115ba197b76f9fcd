package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/mvg/pkg/mvg"
)

// DepartureFilter is a compiled boolean expression evaluated against each
// departure, eg. `type == "U-Bahn" && !cancelled`
type DepartureFilter struct {
	Expression string

	program *vm.Program
}

func CompileDepartureFilter(expression string) (*DepartureFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("%w: empty departure filter", mvg.ErrInvalidInput)
	}

	program, err := expr.Compile(expression, expr.Env(mvg.Departure{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid departure filter: %s", mvg.ErrInvalidInput, err)
	}

	return &DepartureFilter{
		Expression: expression,
		program:    program,
	}, nil
}

func (f *DepartureFilter) Match(departure mvg.Departure) (bool, error) {
	output, err := expr.Run(f.program, departure)
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}

// Apply returns the departures matching the filter in their original order.
// A nil filter keeps everything.
func (f *DepartureFilter) Apply(departures []mvg.Departure) ([]mvg.Departure, error) {
	if f == nil {
		return departures, nil
	}

	filtered := []mvg.Departure{}
	for _, departure := range departures {
		matches, err := f.Match(departure)
		if err != nil {
			return nil, err
		}

		if matches {
			filtered = append(filtered, departure)
		}
	}

	return filtered, nil
}
