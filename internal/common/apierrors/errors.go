// Package apierrors contains generic errors shared by the console client and the
// services it talks to. Server-side, the interceptors in this file look for these
// error types and set the gRPC status code accordingly; client-side,
// IsRemoteRejection separates requests the server refused from transport failures.
package apierrors

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "pipeline" or "job"
	Value   string // Resource id
	Message string
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "parallelism"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
}

// ErrFailedPrecondition is returned when the resource is in a state that
// doesn't permit the requested action, e.g., stopping a job that already finished.
type ErrFailedPrecondition struct {
	Message string
}

func (err *ErrFailedPrecondition) Error() string {
	return err.Message
}

// CodeFromError maps error types to gRPC return codes.
// Uses errors.As to look through the chain of errors.
func CodeFromError(err error) codes.Code {
	// If the error is nil or a gRPC status, return the embedded code.
	if s, ok := status.FromError(errors.Cause(err)); ok {
		return s.Code()
	}

	{
		var e *ErrNotFound
		if errors.As(err, &e) {
			return codes.NotFound
		}
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return codes.InvalidArgument
		}
	}
	{
		var e *ErrFailedPrecondition
		if errors.As(err, &e) {
			return codes.FailedPrecondition
		}
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}

	return codes.Unknown
}

// rejectionCodes are the status codes with which a server refuses a well-formed
// request. Their messages are written for the user.
var rejectionCodes = map[codes.Code]bool{
	codes.InvalidArgument:    true,
	codes.NotFound:           true,
	codes.AlreadyExists:      true,
	codes.PermissionDenied:   true,
	codes.Unauthenticated:    true,
	codes.FailedPrecondition: true,
	codes.OutOfRange:         true,
	codes.ResourceExhausted:  true,
	codes.Aborted:            true,
}

// IsRemoteRejection reports whether err is a gRPC status by which the server
// refused the request, as opposed to a transport or unclassified failure.
func IsRemoteRejection(err error) bool {
	s, ok := status.FromError(errors.Cause(err))
	if !ok || err == nil {
		return false
	}
	return rejectionCodes[s.Code()]
}

// RemoteMessage returns the message the server attached to a gRPC status error,
// without the "rpc error: code = ..." prefix.
func RemoteMessage(err error) string {
	if s, ok := status.FromError(errors.Cause(err)); ok {
		return s.Message()
	}
	return err.Error()
}

// UnaryServerInterceptor returns an interceptor that extracts the cause of an error chain
// and returns it as a gRPC status error.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		rv, err := handler(ctx, req)

		// If the error is nil or a gRPC status, return as-is
		if _, ok := status.FromError(err); ok {
			return rv, err
		}

		cause := errors.Cause(err)
		return rv, status.Error(CodeFromError(cause), cause.Error())
	}
}

// StreamServerInterceptor returns an interceptor that extracts the cause of an error chain
// and returns it as a gRPC status error.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, stream)

		if _, ok := status.FromError(err); ok {
			return err
		}

		cause := errors.Cause(err)
		return status.Error(CodeFromError(cause), cause.Error())
	}
}
