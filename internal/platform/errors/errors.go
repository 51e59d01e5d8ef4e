package errors

import (
	stderrors "errors"
	"sort"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the error domain reported in gRPC error details.
const Domain = "github.com/louisbranch/goconst"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Offending values, enumeration names
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// ToGRPCStatus converts the error to a gRPC status with errdetails.
func (e *Error) ToGRPCStatus() error {
	grpcCode := e.Code.GRPCCode()
	st := status.New(grpcCode, e.Error())

	st, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if err != nil {
		// If we can't attach details, return the basic status
		return status.New(grpcCode, e.Error()).Err()
	}
	return st.Err()
}

// Describe renders err for a command's stderr and picks the exit status from
// the gRPC code of its domain error, so callers can tell a bad invocation (3)
// from a missing vocabulary (5) or broken sources (9). Errors without a
// domain error exit with 1.
func Describe(err error) (string, int) {
	if err == nil {
		return "", 0
	}
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return err.Error(), 1
	}
	st := status.Convert(domainErr.ToGRPCStatus())

	var b strings.Builder
	b.WriteString(st.Code().String())
	b.WriteString(": ")
	b.WriteString(err.Error())
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(info.GetMetadata()))
		for key := range info.GetMetadata() {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b.WriteString(" [")
		b.WriteString(info.GetReason())
		for _, key := range keys {
			b.WriteString(" " + key + "=" + info.GetMetadata()[key])
		}
		b.WriteString("]")
	}
	return b.String(), int(st.Code())
}
