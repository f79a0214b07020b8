package console

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"

	"github.com/jacksonrnewhouse/arroyo/internal/common/apierrors"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// GenericFailureMessage is shown when a remote call fails without a message
// the server meant for users.
const GenericFailureMessage = "Something went wrong. Please try again."

// ErrLaunchDisabled is returned by Launcher.Start when the inputs needed for a
// launch are missing. No remote call was made.
var ErrLaunchDisabled = errors.New("pipeline name and sink are required")

// ValidationError carries the compiler errors of a query that failed to validate.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "query failed validation"
	}
	return e.Messages[0]
}

// TransportError is a remote call that failed before the server could answer it.
type TransportError struct {
	Op      string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectedError is a remote call the server answered with an error status.
// Message is the server's own message.
type RejectedError struct {
	Op      string
	Message string
	Code    codes.Code
	Err     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected (%s): %s", e.Op, e.Code, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// TerminalJobError is returned when a job reached a terminal state while a
// different state was awaited.
type TerminalJobError struct {
	JobID   string
	State   api.JobState
	Details []*api.JobLogMessage
}

func (e *TerminalJobError) Error() string {
	msg := fmt.Sprintf("job %s is %s", e.JobID, e.State)
	if len(e.Details) > 0 {
		msgs := make([]string, 0, len(e.Details))
		for _, d := range e.Details {
			msgs = append(msgs, d.Message)
		}
		msg += ": " + strings.Join(msgs, "; ")
	}
	return msg
}

// PollTimeoutError is returned when a job did not reach Target within the
// configured wait.
type PollTimeoutError struct {
	JobID     string
	Target    api.JobState
	LastState api.JobState
	LastErr   error
}

func (e *PollTimeoutError) Error() string {
	msg := fmt.Sprintf("timed out waiting for job %s to be %s", e.JobID, e.Target)
	if e.LastState != "" {
		msg += fmt.Sprintf(", last seen %s", e.LastState)
	}
	if e.LastErr != nil {
		msg += fmt.Sprintf(", last error: %s", e.LastErr)
	}
	return msg
}

func (e *PollTimeoutError) Unwrap() error {
	return e.LastErr
}

// StreamError is an output subscription that failed. A stream the server
// closed normally is not an error.
type StreamError struct {
	JobID string
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("output stream of job %s failed: %s", e.JobID, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// classifyRemoteError turns the error of a failed RPC into a RejectedError
// when the server answered, and a TransportError otherwise.
func classifyRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apierrors.IsRemoteRejection(err) {
		return &RejectedError{
			Op:      op,
			Message: apierrors.RemoteMessage(err),
			Code:    apierrors.CodeFromError(err),
			Err:     err,
		}
	}
	return &TransportError{Op: op, Message: GenericFailureMessage, Err: err}
}

// UserMessage is the text shown to a user for err.
func UserMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.Message
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
