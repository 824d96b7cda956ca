package library

import (
	"errors"
	"fmt"
)

var (
	//ErrInvalidArgument is matched by rejected references
	ErrInvalidArgument = errors.New("invalid argument")
	//ErrArtifactUnpack is matched by fetch or unpack failures
	ErrArtifactUnpack = errors.New("artifact unpack failure")
)

//InvalidArgumentError represents a rejected library reference
type InvalidArgumentError struct {
	Reference string
	Mode      Mode
	Role      Role
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%v %v only accepts absolute library paths, but had: %v", e.Mode, e.Role, e.Reference)
}

//Is returns true for ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

//ArtifactUnpackFailure represents failed fetch or unpack of an absolute reference
type ArtifactUnpackFailure struct {
	Source string
	Err    error
}

func (e *ArtifactUnpackFailure) Error() string {
	return fmt.Sprintf("failed to fetch/unpack native library %v: %v", e.Source, e.Err)
}

//Unwrap returns underlying cause
func (e *ArtifactUnpackFailure) Unwrap() error {
	return e.Err
}

//Is returns true for ErrArtifactUnpack
func (e *ArtifactUnpackFailure) Is(target error) bool {
	return target == ErrArtifactUnpack
}

//NameConflictError represents fetched references that would be localized under the same workspace name
type NameConflictError struct {
	Name   string
	First  string
	Second string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("library references %v and %v share local name %v, use path#alias to rename one of them", e.First, e.Second, e.Name)
}

//Is returns true for ErrInvalidArgument
func (e *NameConflictError) Is(target error) bool {
	return target == ErrInvalidArgument
}

//MissingLibraryError represents a resolved location with no file behind it
type MissingLibraryError struct {
	Location string
}

func (e *MissingLibraryError) Error() string {
	return fmt.Sprintf("native library %v does not exist", e.Location)
}

//Is returns true for ErrInvalidArgument
func (e *MissingLibraryError) Is(target error) bool {
	return target == ErrInvalidArgument
}
