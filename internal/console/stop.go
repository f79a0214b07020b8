package console

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

type StopController struct {
	client api.ApiClient
	poller *statusPoller
	config Configuration
}

// NewStopController fills unset fields of config from Defaults.
func NewStopController(apiClient api.ApiClient, config Configuration) *StopController {
	config = config.withDefaults()
	return &StopController{
		client: apiClient,
		poller: &statusPoller{client: apiClient, timeout: config.RequestTimeout},
		config: config,
	}
}

// StopPreview stops the job of session immediately and waits until the job
// reports Stopped. Only then is the session deactivated, exactly once. A nil
// or already terminated session is a no-op; a session that has no job yet is
// cancelled.
func (c *StopController) StopPreview(ctx *consolecontext.Context, session *Session) error {
	if session == nil {
		return nil
	}
	snapshot := session.Snapshot()
	if snapshot.Phase == PhaseTerminated {
		return nil
	}
	if snapshot.JobID == "" {
		session.terminate(ReasonCancelled)
		return nil
	}
	if !session.requestStop() {
		return nil
	}

	ctx = consolecontext.WithLogField(ctx, "jobId", snapshot.JobID)
	// The stop loop ends with the session, e.g. when a new preview supersedes it.
	stopCtx, cancel := consolecontext.WithCancel(ctx)
	defer cancel()
	stopWatching := context.AfterFunc(session.context(), cancel)
	defer stopWatching()

	callCtx, cancelCall := requestContext(stopCtx, c.config.RequestTimeout)
	_, err := c.client.UpdateJob(callCtx, &api.UpdateJobReq{JobId: snapshot.JobID, Stop: api.StopTypeImmediate})
	cancelCall()
	if err != nil {
		session.abortStop()
		ctx.Log.WithError(err).Error("failed to stop preview job")
		return classifyRemoteError("stop preview", err)
	}
	ctx.Log.Info("requested immediate stop of preview job")

	err = c.poller.await(stopCtx, awaitRequest{
		JobID:    snapshot.JobID,
		Target:   api.JobStateStopped,
		Interval: c.config.StopPollInterval,
		MaxWait:  c.config.StopMaxWait,
		Loop:     pollLoopStop,
		OnStatus: session.setStatus,
	})
	if err != nil {
		session.abortStop()
		if ctx.Err() == nil && stopCtx.Err() != nil {
			// The session ended while stopping.
			return nil
		}
		return errors.WithMessage(err, "stop preview")
	}

	session.confirmStopped()
	ctx.Log.Info("preview job stopped")
	return nil
}
