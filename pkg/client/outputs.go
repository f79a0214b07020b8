package client

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// OutputStream is an open output subscription of a single job.
type OutputStream struct {
	jobId  string
	stream api.Api_SubscribeToOutputClient
	cancel context.CancelFunc
}

// SubscribeOutputs opens the output subscription of jobId. The subscription
// lives until ctx is done, the server ends the stream or Close is called.
func SubscribeOutputs(ctx context.Context, client api.ApiClient, jobId string) (*OutputStream, error) {
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := client.SubscribeToOutput(streamCtx, &api.GrpcOutputSubscription{JobId: jobId})
	if err != nil {
		cancel()
		return nil, errors.WithStack(err)
	}
	return &OutputStream{jobId: jobId, stream: stream, cancel: cancel}, nil
}

func (s *OutputStream) JobId() string {
	return s.jobId
}

// Next blocks until the next record arrives. It returns io.EOF once the server
// has closed the stream. Any other error means the stream failed.
func (s *OutputStream) Next() (*api.OutputData, error) {
	msg, err := s.stream.Recv()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return msg, nil
}

// Close releases the subscription. It is safe to call more than once.
func (s *OutputStream) Close() {
	s.cancel()
}

// IsStreamCancelled reports whether err was caused by the local side closing
// the subscription rather than by the server or the transport.
func IsStreamCancelled(err error) bool {
	cause := errors.Cause(err)
	if cause == context.Canceled {
		return true
	}
	st, ok := status.FromError(cause)
	return ok && st.Code() == codes.Canceled
}
