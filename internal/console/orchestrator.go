package console

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

// Orchestrator runs preview jobs: it validates the query, launches an
// ephemeral job writing to the web sink, waits for it to run and streams its
// output into the current Session. At most one session is live at a time.
type Orchestrator struct {
	client    api.ApiClient
	validator *Validator
	poller    *statusPoller
	config    Configuration

	// Parent of every session context. Cancelled by Close.
	ctx    *consolecontext.Context
	cancel context.CancelFunc

	// Serializes StartPreview calls.
	startMu sync.Mutex

	mu        sync.Mutex
	current   *Session
	observers []func(Snapshot)
	closed    bool

	// Receives the result of every validation a preview runs.
	onValidated func(ValidationResult)
}

// NewOrchestrator fills unset fields of config from Defaults.
func NewOrchestrator(ctx *consolecontext.Context, apiClient api.ApiClient, config Configuration) *Orchestrator {
	config = config.withDefaults()
	orchestratorCtx, cancel := consolecontext.WithCancel(ctx)
	return &Orchestrator{
		client:    apiClient,
		validator: &Validator{client: apiClient, timeout: config.RequestTimeout},
		poller:    &statusPoller{client: apiClient, timeout: config.RequestTimeout},
		config:    config,
		ctx:       orchestratorCtx,
		cancel:    cancel,
	}
}

// Observe registers fn for every session started after the call. Observers
// are invoked synchronously and in order with a Snapshot after each change;
// they must not block.
func (o *Orchestrator) Observe(fn func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

// Current returns the latest session, or nil if no preview was started.
func (o *Orchestrator) Current() *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// StartPreview supersedes the current session and starts a new one. It
// returns once the preview job has been launched, or with the session and the
// error if validation or the launch failed. Cancelling ctx before then
// cancels the session; a job launched in the meantime is stopped.
func (o *Orchestrator) StartPreview(ctx *consolecontext.Context, query string, udfs string) (*Session, error) {
	o.startMu.Lock()
	defer o.startMu.Unlock()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, errors.New("orchestrator is closed")
	}
	previous := o.current
	session := newSession(o.ctx, append([]func(Snapshot){}, o.observers...))
	o.current = session
	o.mu.Unlock()

	if previous != nil {
		previous.terminate(ReasonSuperseded)
		<-previous.exited
	}

	stopWatching := context.AfterFunc(ctx, func() {
		session.terminate(ReasonCancelled)
	})
	defer stopWatching()

	jobID, err := o.launch(session, query, udfs)
	if err != nil {
		session.fail(err)
		close(session.exited)
		return session, err
	}

	previewsStartedCounter.Inc()
	if !session.assignJob(jobID) {
		session.recordJobID(jobID)
		close(session.exited)
		o.stopOrphan(jobID)
		return session, errors.Wrap(context.Canceled, "preview cancelled after launch")
	}
	session.context().Log.Infof("preview job %s launched", jobID)

	go o.run(session)
	return session, nil
}

func (o *Orchestrator) launch(session *Session, query string, udfs string) (string, error) {
	ctx := session.context()

	session.setPhase(PhaseValidating)
	result, err := o.validator.Validate(ctx, query, udfs)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	if o.onValidated != nil {
		o.onValidated(result)
	}
	if errs, ok := result.(ErrorsResult); ok {
		return "", &ValidationError{Messages: errs.Messages}
	}

	session.setPhase(PhaseStarting)
	callCtx, cancel := requestContext(ctx, o.config.RequestTimeout)
	defer cancel()
	resp, err := o.client.StartPipeline(callCtx, &api.CreatePipelineReq{
		Name: o.config.PreviewName,
		Sql: &api.CreateSqlJob{
			Query:   query,
			Udfs:    []*api.CreateUdf{{Language: api.UdfLanguageRust, Definition: udfs}},
			Sink:    BuiltinSink{Kind: api.BuiltinSinkWeb}.toAPI(),
			Preview: true,
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		ctx.Log.WithError(err).Error("failed to launch preview job")
		return "", classifyRemoteError("launch preview", err)
	}
	return resp.JobId, nil
}

// stopOrphan stops a preview job whose session ended while it was launched.
func (o *Orchestrator) stopOrphan(jobID string) {
	ctx := consolecontext.WithLogField(o.ctx, "jobId", jobID)
	callCtx, cancel := requestContext(ctx, o.config.RequestTimeout)
	defer cancel()
	if _, err := o.client.UpdateJob(callCtx, &api.UpdateJobReq{JobId: jobID, Stop: api.StopTypeImmediate}); err != nil {
		ctx.Log.WithError(err).Error("failed to stop preview job launched by a cancelled session")
		return
	}
	ctx.Log.Info("stopped preview job launched by a cancelled session")
}

// run waits for the job to run, then streams its output until the stream ends
// or the session is cancelled.
func (o *Orchestrator) run(session *Session) {
	defer close(session.exited)

	ctx := session.context()
	jobID := session.JobID()

	err := o.poller.await(ctx, awaitRequest{
		JobID:    jobID,
		Target:   api.JobStateRunning,
		Interval: o.config.PollInterval,
		MaxWait:  o.config.MaxWait,
		Loop:     pollLoopPreview,
		OnStatus: session.setStatus,
	})
	if err != nil {
		o.finishWithError(session, err)
		return
	}

	stream, err := client.SubscribeOutputs(ctx, o.client, jobID)
	if err != nil {
		o.finishWithError(session, &StreamError{JobID: jobID, Err: err})
		return
	}
	defer stream.Close()

	if !session.startStreaming() {
		return
	}
	ctx.Log.Info("subscribed to preview output")

	for {
		record, err := stream.Next()
		if err == io.EOF {
			ctx.Log.Info("preview output stream closed")
			session.finishRun(ReasonFinished, nil)
			return
		}
		if err != nil {
			o.finishWithError(session, &StreamError{JobID: jobID, Err: err})
			return
		}
		session.appendOutput(record)
	}
}

func (o *Orchestrator) finishWithError(session *Session, err error) {
	ctx := session.context()
	if ctx.Err() != nil {
		// Superseded, stopped or torn down; whoever cancelled set the reason.
		return
	}

	var terminal *TerminalJobError
	var timeout *PollTimeoutError
	var stream *StreamError
	switch {
	case errors.As(err, &terminal):
		ctx.Log.WithError(err).Warn("preview job ended before running")
		reason := ReasonJobFailed
		switch terminal.State {
		case api.JobStateStopped:
			reason = ReasonStopped
		case api.JobStateFinished:
			reason = ReasonFinished
		}
		session.finishRun(reason, err)
	case errors.As(err, &timeout):
		ctx.Log.WithError(err).Warn("gave up waiting for preview job")
		session.finishRun(ReasonTimedOut, err)
	case errors.As(err, &stream):
		ctx.Log.WithError(err).Error("preview output stream failed")
		session.finishRun(ReasonStreamFailed, err)
	default:
		ctx.Log.WithError(err).Error("preview failed")
		session.finishRun(ReasonStreamFailed, err)
	}
}

// Close cancels the current session and waits for its goroutine to return.
// No preview can be started afterwards.
func (o *Orchestrator) Close() {
	o.startMu.Lock()
	defer o.startMu.Unlock()

	o.mu.Lock()
	o.closed = true
	current := o.current
	o.mu.Unlock()

	if current != nil {
		current.terminate(ReasonCancelled)
		<-current.exited
	}
	o.cancel()
}
