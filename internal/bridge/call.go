package bridge

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/viant/nativeudf/internal/signature"
)

type (
	//Expr represents typed call site argument expression
	Expr interface {
		DataType() arrow.DataType
		Nullable() bool
	}

	//Call represents a call site bound to a native function
	Call interface {
		Expr
		Name() string
		Kind() signature.Kind
		Args() []Expr
		//FunctionID returns call function id registered in table
		FunctionID(table FunctionTable) int64
		//Eval always fails, native calls evaluate in the native backend
		Eval(input interface{}) (interface{}, error)
		//GenCode always fails, native calls are not code generated
		GenCode() error
	}

	//ScalarCall represents native scalar function call site
	ScalarCall struct {
		signature *signature.Signature
		args      []Expr
	}

	//AggregateCall represents native aggregate function call site
	AggregateCall struct {
		signature *signature.AggregateSignature
		args      []Expr
	}
)

func (c *ScalarCall) Name() string             { return c.signature.Name }
func (c *ScalarCall) Kind() signature.Kind     { return signature.KindScalar }
func (c *ScalarCall) Args() []Expr             { return c.args }
func (c *ScalarCall) DataType() arrow.DataType { return c.signature.ReturnType }
func (c *ScalarCall) Nullable() bool           { return c.signature.Nullable }

//FunctionID returns function id for name and argument types
func (c *ScalarCall) FunctionID(table FunctionTable) int64 {
	return table.ID(FunctionKey(c.signature.Name, c.signature.Args))
}

func (c *ScalarCall) Eval(input interface{}) (interface{}, error) {
	return nil, unsupported(c, "eval")
}

func (c *ScalarCall) GenCode() error {
	return unsupported(c, "code generation")
}

func (c *AggregateCall) Name() string             { return c.signature.Name }
func (c *AggregateCall) Kind() signature.Kind     { return signature.KindAggregate }
func (c *AggregateCall) Args() []Expr             { return c.args }
func (c *AggregateCall) DataType() arrow.DataType { return c.signature.ReturnType }
func (c *AggregateCall) Nullable() bool           { return c.signature.Nullable }

//FunctionID returns function id for name and argument types
func (c *AggregateCall) FunctionID(table FunctionTable) int64 {
	return table.ID(FunctionKey(c.signature.Name, c.signature.Args))
}

//Intermediate returns accumulator buffer schema
func (c *AggregateCall) Intermediate() []signature.IntermediateField {
	return c.signature.Intermediate
}

//IntermediateType returns accumulator buffer struct type
func (c *AggregateCall) IntermediateType() *arrow.StructType {
	return c.signature.IntermediateType()
}

func (c *AggregateCall) Eval(input interface{}) (interface{}, error) {
	return nil, unsupported(c, "eval")
}

func (c *AggregateCall) GenCode() error {
	return unsupported(c, "code generation")
}

func argTypes(args []Expr) []arrow.DataType {
	result := make([]arrow.DataType, len(args))
	for i, arg := range args {
		result[i] = arg.DataType()
	}
	return result
}

//NewScalarCall resolves scalar call site against catalog
func NewScalarCall(catalog *signature.Catalog, name string, args []Expr) (*ScalarCall, error) {
	aSignature, err := catalog.LookupScalar(name, argTypes(args))
	if err != nil {
		return nil, err
	}
	return &ScalarCall{signature: aSignature, args: args}, nil
}

//NewAggregateCall resolves aggregate call site against catalog
func NewAggregateCall(catalog *signature.Catalog, name string, args []Expr) (*AggregateCall, error) {
	aSignature, err := catalog.LookupAggregate(name, argTypes(args))
	if err != nil {
		return nil, err
	}
	return &AggregateCall{signature: aSignature, args: args}, nil
}
