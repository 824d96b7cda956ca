// Package typecodec serializes function types exchanged with the native backend.
// Every payload is an Arrow IPC stream holding only a schema: a single type is a
// one-field schema, a struct is a schema whose fields are the struct fields.
package typecodec

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

//ErrEmptyPayload is returned when decoding empty payload
var ErrEmptyPayload = errors.New("empty type payload")

//Codec encodes and decodes types as Arrow IPC schema payloads
type Codec struct {
	mem memory.Allocator
}

//EncodeType encodes a single type, field name is informational
func (c *Codec) EncodeType(field arrow.Field) ([]byte, error) {
	return c.encode(arrow.NewSchema([]arrow.Field{field}, nil))
}

//EncodeStruct encodes ordered fields
func (c *Codec) EncodeStruct(fields []arrow.Field) ([]byte, error) {
	return c.encode(arrow.NewSchema(fields, nil))
}

//DecodeType decodes a single type payload
func (c *Codec) DecodeType(data []byte) (arrow.Field, error) {
	schema, err := c.decode(data)
	if err != nil {
		return arrow.Field{}, err
	}
	if schema.NumFields() != 1 {
		return arrow.Field{}, fmt.Errorf("invalid type payload: expected 1 field, but had: %v", schema.NumFields())
	}
	return schema.Field(0), nil
}

//DecodeStruct decodes a struct payload
func (c *Codec) DecodeStruct(data []byte) (*arrow.StructType, error) {
	schema, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	return arrow.StructOf(schema.Fields()...), nil
}

func (c *Codec) encode(schema *arrow.Schema) ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := ipc.NewWriter(buffer, ipc.WithSchema(schema), ipc.WithAllocator(c.mem))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode schema %v: %w", schema, err)
	}
	return buffer.Bytes(), nil
}

func (c *Codec) decode(data []byte) (*arrow.Schema, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(c.mem))
	if err != nil {
		return nil, fmt.Errorf("failed to decode type payload: %w", err)
	}
	defer reader.Release()
	return reader.Schema(), nil
}

//New creates a codec
func New() *Codec {
	return &Codec{mem: memory.NewGoAllocator()}
}
