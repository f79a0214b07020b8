package console

import (
	"math"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

var errNotYet = errors.New("job has not reached the awaited state")

type awaitRequest struct {
	JobID    string
	Target   api.JobState
	Interval time.Duration
	// Zero waits forever.
	MaxWait time.Duration
	// Metric label of the loop.
	Loop string
	// Called with every successfully fetched status, in order.
	OnStatus func(*api.JobStatus)
}

// statusPoller fetches job details at a fixed cadence until the job reaches a
// target state. Failed fetches are logged, counted and retried. A job that
// ends in another terminal state aborts the wait with a TerminalJobError.
type statusPoller struct {
	client api.ApiClient
	// Deadline of each fetch.
	timeout time.Duration
}

func (p *statusPoller) await(ctx *consolecontext.Context, req awaitRequest) error {
	var lastState api.JobState
	var lastErr error

	interval := req.Interval
	if interval <= 0 {
		interval = Defaults().PollInterval
	}
	attempts := uint(math.MaxUint32)
	if req.MaxWait > 0 {
		attempts = uint(req.MaxWait/interval) + 1
	}

	err := retry.Do(
		func() error {
			callCtx, cancel := requestContext(ctx, p.timeout)
			defer cancel()
			resp, err := p.client.GetJobDetails(callCtx, &api.JobDetailsReq{JobId: req.JobID})
			if err != nil {
				if ctx.Err() == nil {
					lastErr = err
					statusPollFailuresCounter.WithLabelValues(req.Loop).Inc()
					ctx.Log.WithError(err).Warnf("failed to fetch status of job %s", req.JobID)
				}
				return err
			}
			lastErr = nil

			status := resp.GetJobStatus()
			if status == nil {
				return errNotYet
			}
			lastState = status.GetState()
			if req.OnStatus != nil {
				req.OnStatus(status)
			}

			if lastState == req.Target {
				return nil
			}
			if lastState.IsTerminal() {
				return &TerminalJobError{JobID: req.JobID, State: lastState}
			}
			return errNotYet
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var terminal *TerminalJobError
			return ctx.Err() == nil && !errors.As(err, &terminal)
		}),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err == nil {
		return nil
	}

	var terminal *TerminalJobError
	if errors.As(err, &terminal) {
		if terminal.State == api.JobStateFailed {
			terminal.Details = p.operatorErrors(ctx, req.JobID)
		}
		return terminal
	}
	return &PollTimeoutError{JobID: req.JobID, Target: req.Target, LastState: lastState, LastErr: lastErr}
}

// operatorErrors fetches the error log of a failed job. Failures are logged
// and yield no details.
func (p *statusPoller) operatorErrors(ctx *consolecontext.Context, jobID string) []*api.JobLogMessage {
	callCtx, cancel := requestContext(ctx, p.timeout)
	defer cancel()
	resp, err := p.client.GetOperatorErrors(callCtx, &api.OperatorErrorsReq{JobId: jobID})
	if err != nil {
		ctx.Log.WithError(err).Warnf("failed to fetch operator errors of job %s", jobID)
		return nil
	}
	return resp.Messages
}
