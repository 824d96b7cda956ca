package signature

import (
	"errors"
	"fmt"
)

var (
	//ErrUnregisteredFunction is matched by lookup misses
	ErrUnregisteredFunction = errors.New("unregistered function")
	//ErrNotRecordType is returned when aggregate intermediate types are not a struct
	ErrNotRecordType = errors.New("intermediate types must be a struct")
)

//UnregisteredFunctionError represents a lookup miss
type UnregisteredFunctionError struct {
	Kind Kind
	Name string
	Args string
}

func (e *UnregisteredFunctionError) Error() string {
	return fmt.Sprintf("%v function %v%v is not registered", e.Kind, e.Name, e.Args)
}

//Is returns true for ErrUnregisteredFunction
func (e *UnregisteredFunctionError) Is(target error) bool {
	return target == ErrUnregisteredFunction
}
