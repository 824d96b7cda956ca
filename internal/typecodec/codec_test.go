package typecodec

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCodec_Type(t *testing.T) {
	var testCases = []struct {
		description string
		field       arrow.Field
	}{
		{
			description: "nullable int64",
			field:       arrow.Field{Name: "ret", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		},
		{
			description: "non nullable string",
			field:       arrow.Field{Name: "ret", Type: arrow.BinaryTypes.String},
		},
		{
			description: "list of float64",
			field:       arrow.Field{Name: "ret", Type: arrow.ListOf(arrow.PrimitiveTypes.Float64), Nullable: true},
		},
	}
	codec := New()
	for _, testCase := range testCases {
		data, err := codec.EncodeType(testCase.field)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := codec.DecodeType(data)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, arrow.TypeEqual(testCase.field.Type, actual.Type), testCase.description)
		assert.EqualValues(t, testCase.field.Nullable, actual.Nullable, testCase.description)
	}
}

func TestCodec_Struct(t *testing.T) {
	codec := New()
	fields := []arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int32},
		{Name: "b", Type: arrow.BinaryTypes.String, Nullable: true},
	}
	data, err := codec.EncodeStruct(fields)
	assert.Nil(t, err)
	actual, err := codec.DecodeStruct(data)
	assert.Nil(t, err)
	assert.True(t, arrow.TypeEqual(arrow.StructOf(fields...), actual))

	data, err = codec.EncodeStruct(nil)
	assert.Nil(t, err)
	actual, err = codec.DecodeStruct(data)
	assert.Nil(t, err)
	assert.Equal(t, 0, actual.NumFields())
}

func TestCodec_Errors(t *testing.T) {
	codec := New()
	_, err := codec.DecodeType(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = codec.DecodeStruct([]byte("not an arrow stream"))
	assert.NotNil(t, err)

	data, err := codec.EncodeStruct([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int32},
		{Name: "b", Type: arrow.PrimitiveTypes.Int32},
	})
	assert.Nil(t, err)
	_, err = codec.DecodeType(data)
	assert.NotNil(t, err)
}
