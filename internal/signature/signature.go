package signature

import (
	"fmt"
	"github.com/apache/arrow-go/v18/arrow"
	"strings"
)

//intermediatePrefix prefixes positional accumulator field names
const intermediatePrefix = "inter_"

type (
	//Signature represents a registered native function call contract
	Signature struct {
		Name       string
		Args       []arrow.DataType
		ReturnType arrow.DataType
		Nullable   bool
	}

	//IntermediateField represents an accumulator buffer field
	IntermediateField struct {
		Name     string
		Type     arrow.DataType
		Nullable bool
	}

	//AggregateSignature represents a registered native aggregate contract
	AggregateSignature struct {
		Signature
		Intermediate []IntermediateField
	}
)

//Matches returns true if args are exactly equal to signature arguments
func (s *Signature) Matches(args []arrow.DataType) bool {
	if len(s.Args) != len(args) {
		return false
	}
	for i, arg := range s.Args {
		if !arrow.TypeEqual(arg, args[i]) {
			return false
		}
	}
	return true
}

//String returns signature rendering
func (s *Signature) String() string {
	return fmt.Sprintf("%v%v -> %v", s.Name, TypesString(s.Args), s.ReturnType)
}

//IntermediateType returns accumulator buffer struct type
func (s *AggregateSignature) IntermediateType() *arrow.StructType {
	fields := make([]arrow.Field, len(s.Intermediate))
	for i, field := range s.Intermediate {
		fields[i] = arrow.Field{Name: field.Name, Type: field.Type, Nullable: field.Nullable}
	}
	return arrow.StructOf(fields...)
}

//TypesString renders argument types as (t1, t2)
func TypesString(types []arrow.DataType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		if t == nil {
			parts[i] = "null"
			continue
		}
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func newIntermediate(intermediate *arrow.StructType) []IntermediateField {
	fields := intermediate.Fields()
	result := make([]IntermediateField, len(fields))
	for i, field := range fields {
		result[i] = IntermediateField{
			Name:     fmt.Sprintf("%v%d", intermediatePrefix, i),
			Type:     field.Type,
			Nullable: field.Nullable,
		}
	}
	return result
}

func cloneTypes(types []arrow.DataType) []arrow.DataType {
	if len(types) == 0 {
		return nil
	}
	result := make([]arrow.DataType, len(types))
	copy(result, types)
	return result
}
