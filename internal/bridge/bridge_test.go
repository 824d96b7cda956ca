package bridge_test

import (
	"errors"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nativeudf/internal/bridge"
	"github.com/viant/nativeudf/internal/signature"
	"testing"
)

type column struct {
	dataType arrow.DataType
	nullable bool
}

func (c *column) DataType() arrow.DataType { return c.dataType }
func (c *column) Nullable() bool           { return c.nullable }

func newCatalog(t *testing.T) *signature.Catalog {
	catalog := signature.NewCatalog()
	catalog.RegisterScalar("myudf", arrow.PrimitiveTypes.Int64, true, []arrow.DataType{arrow.PrimitiveTypes.Int64})
	catalog.RegisterScalar("myudf", arrow.BinaryTypes.String, false, []arrow.DataType{arrow.BinaryTypes.String})
	err := catalog.RegisterAggregate("myavg", arrow.PrimitiveTypes.Float64, true,
		[]arrow.DataType{arrow.PrimitiveTypes.Float64},
		arrow.StructOf(
			arrow.Field{Name: "sum", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			arrow.Field{Name: "count", Type: arrow.PrimitiveTypes.Int64},
		))
	require.Nil(t, err)
	return catalog
}

func TestDescriptors(t *testing.T) {
	catalog := newCatalog(t)
	assert.Empty(t, bridge.Descriptors(catalog, false))

	descriptors := bridge.Descriptors(catalog, true)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "myudf", descriptors[0].Name)
	assert.Equal(t, signature.KindScalar, descriptors[0].Kind)
	assert.Contains(t, descriptors[0].Usage, "myudf")
	assert.Equal(t, "myavg", descriptors[1].Name)
	assert.Equal(t, signature.KindAggregate, descriptors[1].Kind)

	assert.Empty(t, bridge.Descriptors(signature.NewCatalog(), true))
}

func TestScalarCall(t *testing.T) {
	catalog := newCatalog(t)
	descriptor := bridge.Descriptors(catalog, true)[0]
	table := bridge.NewTable()

	var testCases = []struct {
		description string
		args        []bridge.Expr
		expect      arrow.DataType
		nullable    bool
		key         string
		hasError    bool
	}{
		{
			description: "int64 overload",
			args:        []bridge.Expr{&column{dataType: arrow.PrimitiveTypes.Int64}},
			expect:      arrow.PrimitiveTypes.Int64,
			nullable:    true,
			key:         "myudf:5:int64",
		},
		{
			description: "string overload",
			args:        []bridge.Expr{&column{dataType: arrow.BinaryTypes.String, nullable: true}},
			expect:      arrow.BinaryTypes.String,
			key:         "myudf:4:utf8",
		},
		{
			description: "unregistered overload",
			args:        []bridge.Expr{&column{dataType: arrow.PrimitiveTypes.Int32}},
			hasError:    true,
		},
	}

	for _, testCase := range testCases {
		call, err := descriptor.New(testCase.args)
		if testCase.hasError {
			assert.True(t, errors.Is(err, signature.ErrUnregisteredFunction), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, arrow.TypeEqual(testCase.expect, call.DataType()), testCase.description)
		assert.Equal(t, testCase.nullable, call.Nullable(), testCase.description)
		assert.Equal(t, testCase.args, call.Args(), testCase.description)

		id := call.FunctionID(table)
		assert.Equal(t, id, call.FunctionID(table), testCase.description)
		actual, ok := table.Lookup(testCase.key)
		assert.True(t, ok, testCase.description)
		assert.Equal(t, id, actual, testCase.description)

		_, err = call.Eval(nil)
		assert.True(t, errors.Is(err, bridge.ErrUnsupportedDirectEvaluation), testCase.description)
		assert.True(t, errors.Is(call.GenCode(), bridge.ErrUnsupportedDirectEvaluation), testCase.description)
	}
	assert.Equal(t, []string{"myudf:5:int64", "myudf:4:utf8"}, table.Keys())
}

func TestAggregateCall(t *testing.T) {
	catalog := newCatalog(t)
	call, err := bridge.NewAggregateCall(catalog, "myavg", []bridge.Expr{&column{dataType: arrow.PrimitiveTypes.Float64}})
	require.Nil(t, err)
	assert.Equal(t, signature.KindAggregate, call.Kind())
	require.Len(t, call.Intermediate(), 2)
	assert.Equal(t, "inter_0", call.Intermediate()[0].Name)
	assert.Equal(t, "inter_1", call.Intermediate()[1].Name)
	assert.Equal(t, 2, call.IntermediateType().NumFields())
	assert.Equal(t, int64(0), call.FunctionID(bridge.NewTable()))

	_, err = call.Eval(nil)
	unsupported := &bridge.UnsupportedDirectEvaluationError{}
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "myavg", unsupported.Name)
	assert.Equal(t, signature.KindAggregate, unsupported.Kind)

	_, err = bridge.NewAggregateCall(catalog, "myudf", []bridge.Expr{&column{dataType: arrow.PrimitiveTypes.Int64}})
	assert.True(t, errors.Is(err, signature.ErrUnregisteredFunction))
}

func TestTable_ID(t *testing.T) {
	table := bridge.NewTable()
	assert.Equal(t, int64(0), table.ID("a:int64"))
	assert.Equal(t, int64(1), table.ID("b:"))
	assert.Equal(t, int64(0), table.ID("a:int64"))
	_, ok := table.Lookup("c:")
	assert.False(t, ok)
}

func TestFunctionKey(t *testing.T) {
	twoStructs := []arrow.DataType{
		arrow.StructOf(arrow.Field{Name: "x", Type: arrow.PrimitiveTypes.Int64}),
		arrow.StructOf(arrow.Field{Name: "y", Type: arrow.PrimitiveTypes.Int64}),
	}
	oneStruct := []arrow.DataType{
		arrow.StructOf(arrow.Field{Name: "x: int64>_struct<y", Type: arrow.PrimitiveTypes.Int64}),
	}
	var testCases = []struct {
		description string
		args        []arrow.DataType
		expect      string
	}{
		{description: "no args", expect: "f:"},
		{description: "primitive args", args: []arrow.DataType{arrow.PrimitiveTypes.Int64, arrow.BinaryTypes.String}, expect: "f:5:int64_4:utf8"},
		{description: "nil arg", args: []arrow.DataType{nil, arrow.PrimitiveTypes.Int64}, expect: "f:0:_5:int64"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, bridge.FunctionKey("f", testCase.args), testCase.description)
	}
	assert.NotEqual(t, bridge.FunctionKey("f", twoStructs), bridge.FunctionKey("f", oneStruct))
}
