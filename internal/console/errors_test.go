package console

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func asTransport(err error, target **TransportError) bool {
	return errors.As(err, target)
}

func asRejected(err error, target **RejectedError) bool {
	return errors.As(err, target)
}

func TestClassifyRemoteError(t *testing.T) {
	tests := map[string]struct {
		err      error
		rejected bool
		message  string
	}{
		"invalid argument": {err: status.Error(codes.InvalidArgument, "bad name"), rejected: true, message: "bad name"},
		"wrapped not found": {err: errors.WithStack(status.Error(codes.NotFound, "no such sink")), rejected: true, message: "no such sink"},
		"unavailable":      {err: status.Error(codes.Unavailable, "connection refused"), message: GenericFailureMessage},
		"internal":         {err: status.Error(codes.Internal, "panic"), message: GenericFailureMessage},
		"plain":            {err: fmt.Errorf("dial tcp: i/o timeout"), message: GenericFailureMessage},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := classifyRemoteError("start pipeline", tc.err)

			var rejected *RejectedError
			var transport *TransportError
			assert.Equal(t, tc.rejected, asRejected(err, &rejected))
			assert.Equal(t, !tc.rejected, asTransport(err, &transport))
			assert.Equal(t, tc.message, UserMessage(err))
			assert.True(t, errors.Is(err, tc.err))
		})
	}
	assert.NoError(t, classifyRemoteError("noop", nil))
}

func TestRejectedErrorCode(t *testing.T) {
	err := classifyRemoteError("stop preview", errors.WithStack(status.Error(codes.FailedPrecondition, "job finished")))

	var rejected *RejectedError
	assert.True(t, asRejected(err, &rejected))
	assert.Equal(t, codes.FailedPrecondition, rejected.Code)
	assert.Equal(t, "stop preview rejected (FailedPrecondition): job finished", rejected.Error())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "first", (&ValidationError{Messages: []string{"first", "second"}}).Error())
	assert.Equal(t, "query failed validation", (&ValidationError{}).Error())
	assert.Equal(t, "job job_1 is Finished", (&TerminalJobError{JobID: "job_1", State: api.JobStateFinished}).Error())
	assert.Equal(t,
		"timed out waiting for job job_1 to be Stopped, last seen Stopping",
		(&PollTimeoutError{JobID: "job_1", Target: api.JobStateStopped, LastState: api.JobStateStopping}).Error())
	assert.Equal(t,
		"timed out waiting for job job_1 to be Running, last error: boom",
		(&PollTimeoutError{JobID: "job_1", Target: api.JobStateRunning, LastErr: fmt.Errorf("boom")}).Error())
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "first", UserMessage(errors.Wrap(&ValidationError{Messages: []string{"first"}}, "preview")))
}
