package nativeudf

import (
	"github.com/viant/nativeudf/internal/bridge"
	"github.com/viant/nativeudf/internal/library"
	"github.com/viant/nativeudf/internal/signature"
)

type (
	//Role represents process role
	Role = library.Role
	//Catalog represents native function signatures registry
	Catalog = signature.Catalog
	//Port represents registration entry point used by the native backend
	Port = signature.Port
	//SignatureSource represents native component registering its functions
	SignatureSource = signature.SignatureSource
	//Descriptor represents enumerated function binding
	Descriptor = bridge.Descriptor
	//Expr represents typed call site argument
	Expr = bridge.Expr
	//Call represents bound native call site
	Call = bridge.Call
	//Fetcher retrieves remote artifacts
	Fetcher = library.Fetcher
)

const (
	//Worker executor process
	Worker = library.Worker
	//Coordinator driver process
	Coordinator = library.Coordinator
)

var (
	//ErrUnregisteredFunction is matched by lookup misses
	ErrUnregisteredFunction = signature.ErrUnregisteredFunction
	//ErrInvalidArgument is matched by rejected library references
	ErrInvalidArgument = library.ErrInvalidArgument
	//ErrArtifactUnpack is matched by library fetch or unpack failures
	ErrArtifactUnpack = library.ErrArtifactUnpack
	//ErrUnsupportedDirectEvaluation is matched by direct evaluation attempts
	ErrUnsupportedDirectEvaluation = bridge.ErrUnsupportedDirectEvaluation
)
