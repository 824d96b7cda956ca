package bridge

import (
	"fmt"
	"github.com/viant/nativeudf/internal/signature"
	"strings"
)

//Factory binds call site argument expressions to a registered native function
type Factory func(args []Expr) (Call, error)

//Descriptor represents enumerated native function binding
type Descriptor struct {
	Name  string
	Kind  signature.Kind
	Usage string
	New   Factory
}

//Descriptors returns a descriptor per registered scalar then aggregate name; nothing when not enabled
func Descriptors(catalog *signature.Catalog, enabled bool) []*Descriptor {
	if !enabled {
		return nil
	}
	var result []*Descriptor
	for _, name := range catalog.ScalarNames() {
		fnName := name
		result = append(result, &Descriptor{
			Name:  fnName,
			Kind:  signature.KindScalar,
			Usage: usage(signature.KindScalar, fnName),
			New: func(args []Expr) (Call, error) {
				return NewScalarCall(catalog, fnName, args)
			},
		})
	}
	for _, name := range catalog.AggregateNames() {
		fnName := name
		result = append(result, &Descriptor{
			Name:  fnName,
			Kind:  signature.KindAggregate,
			Usage: usage(signature.KindAggregate, fnName),
			New: func(args []Expr) (Call, error) {
				return NewAggregateCall(catalog, fnName, args)
			},
		})
	}
	return result
}

func usage(kind signature.Kind, name string) string {
	return fmt.Sprintf("%v(...) - native %v function, evaluated by the native backend", strings.TrimSpace(name), kind)
}
