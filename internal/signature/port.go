package signature

import (
	"context"
	"fmt"
	"github.com/apache/arrow-go/v18/arrow"
)

type (
	//Codec decodes serialized type payloads sent by the native side
	Codec interface {
		//DecodeType decodes a single type, field nullability is the type nullability
		DecodeType(data []byte) (arrow.Field, error)
		//DecodeStruct decodes a struct of named fields
		DecodeStruct(data []byte) (*arrow.StructType, error)
	}

	//Port is the registration entry point invoked by the native backend
	Port interface {
		RegisterScalar(name string, returnType, argTypes []byte) error
		RegisterAggregate(name string, returnType, argTypes, intermediateTypes []byte) error
	}

	//SignatureSource represents native component reporting its functions through a Port
	SignatureSource interface {
		Register(ctx context.Context, port Port) error
	}

	port struct {
		catalog *Catalog
		codec   Codec
	}
)

func (p *port) RegisterScalar(name string, returnType, argTypes []byte) error {
	ret, err := p.codec.DecodeType(returnType)
	if err != nil {
		return fmt.Errorf("failed to decode %v return type: %w", name, err)
	}
	args, err := p.codec.DecodeStruct(argTypes)
	if err != nil {
		return fmt.Errorf("failed to decode %v argument types: %w", name, err)
	}
	p.catalog.RegisterScalar(name, ret.Type, ret.Nullable, fieldTypes(args))
	return nil
}

func (p *port) RegisterAggregate(name string, returnType, argTypes, intermediateTypes []byte) error {
	ret, err := p.codec.DecodeType(returnType)
	if err != nil {
		return fmt.Errorf("failed to decode %v return type: %w", name, err)
	}
	args, err := p.codec.DecodeStruct(argTypes)
	if err != nil {
		return fmt.Errorf("failed to decode %v argument types: %w", name, err)
	}
	intermediate, err := p.codec.DecodeStruct(intermediateTypes)
	if err != nil {
		return fmt.Errorf("failed to decode %v intermediate types: %w", name, err)
	}
	return p.catalog.RegisterAggregate(name, ret.Type, ret.Nullable, fieldTypes(args), intermediate)
}

func fieldTypes(structType *arrow.StructType) []arrow.DataType {
	fields := structType.Fields()
	result := make([]arrow.DataType, len(fields))
	for i := range fields {
		result[i] = fields[i].Type
	}
	return result
}

//NewPort creates a registration port; catalog is its sole mutation target
func NewPort(catalog *Catalog, codec Codec) Port {
	return &port{catalog: catalog, codec: codec}
}
