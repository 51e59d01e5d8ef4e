// Package errors provides structured error handling for closed vocabularies
// and the tooling that publishes them.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Enumeration errors
	CodeInvalidEnumValue      Code = "INVALID_ENUM_VALUE"
	CodeInvalidEnumDefinition Code = "INVALID_ENUM_DEFINITION"

	// Generator errors
	CodeGeneratorConfig        Code = "GENERATOR_INVALID_CONFIG"
	CodeGeneratorNoConstants   Code = "GENERATOR_NO_CONSTANTS"
	CodeGeneratorPackageErrors Code = "GENERATOR_PACKAGE_ERRORS"

	// Lookup table errors
	CodeLookupDrift Code = "LOOKUP_TABLE_DRIFT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - values outside a closed vocabulary, bad flags
	case CodeInvalidEnumValue,
		CodeGeneratorConfig:
		return codes.InvalidArgument

	// NotFound - the requested type declares nothing
	case CodeGeneratorNoConstants:
		return codes.NotFound

	// FailedPrecondition - sources must compile, tables must be regenerated
	case CodeGeneratorPackageErrors,
		CodeLookupDrift:
		return codes.FailedPrecondition

	default:
		return codes.Internal
	}
}
