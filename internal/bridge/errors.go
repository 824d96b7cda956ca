package bridge

import (
	"errors"
	"fmt"
	"github.com/viant/nativeudf/internal/signature"
)

//ErrUnsupportedDirectEvaluation is matched by any direct evaluation attempt
var ErrUnsupportedDirectEvaluation = errors.New("direct evaluation of native function is unsupported")

//UnsupportedDirectEvaluationError represents a programming error: native calls are evaluated by the native backend only
type UnsupportedDirectEvaluationError struct {
	Kind      signature.Kind
	Name      string
	Operation string
}

func (e *UnsupportedDirectEvaluationError) Error() string {
	return fmt.Sprintf("%v of native %v function %v is not supported, it has to run in the native backend", e.Operation, e.Kind, e.Name)
}

//Is returns true for ErrUnsupportedDirectEvaluation
func (e *UnsupportedDirectEvaluationError) Is(target error) bool {
	return target == ErrUnsupportedDirectEvaluation
}

func unsupported(call Call, operation string) error {
	return &UnsupportedDirectEvaluationError{Kind: call.Kind(), Name: call.Name(), Operation: operation}
}
