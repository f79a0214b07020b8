package console

import (
	"github.com/sirupsen/logrus"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// StartOptions configures a durable launch. Zero Parallelism and
// CheckpointIntervalMs take the configured defaults.
type StartOptions struct {
	Name                 string
	Sink                 SinkSelection
	Parallelism          uint64
	CheckpointIntervalMs uint64
}

// Navigator is told about the job view to show after a launch.
type Navigator interface {
	NavigateToJob(jobID string)
}

type NavigatorFunc func(jobID string)

func (f NavigatorFunc) NavigateToJob(jobID string) {
	f(jobID)
}

type LaunchOutcome struct {
	// Set when the launch was refused locally for missing inputs.
	Disabled bool
	JobID    string
	// Route of the job's detail view.
	Path string
}

type Launcher struct {
	client    api.ApiClient
	drafts    draft.Repository
	navigator Navigator
	config    Configuration
}

func NewLauncher(apiClient api.ApiClient, drafts draft.Repository, navigator Navigator, config Configuration) *Launcher {
	return &Launcher{client: apiClient, drafts: drafts, navigator: navigator, config: config.withDefaults()}
}

// CanStart reports whether opts carries the inputs a launch needs. A named
// sink without a name counts as no sink.
func CanStart(opts StartOptions) bool {
	if opts.Name == "" || opts.Sink == nil {
		return false
	}
	if named, ok := opts.Sink.(NamedSink); ok && named.Name == "" {
		return false
	}
	return true
}

// Start launches query as a durable pipeline. On success the saved query draft
// is cleared and the navigator is sent to the new job. A launch with missing
// inputs makes no remote call and returns ErrLaunchDisabled.
func (l *Launcher) Start(ctx *consolecontext.Context, opts StartOptions, query string, udfs string) (*LaunchOutcome, error) {
	if !CanStart(opts) {
		launchesCounter.WithLabelValues("disabled").Inc()
		return &LaunchOutcome{Disabled: true}, ErrLaunchDisabled
	}

	parallelism := opts.Parallelism
	if parallelism == 0 {
		parallelism = l.config.DefaultParallelism
	}
	checkpointInterval := opts.CheckpointIntervalMs
	if checkpointInterval == 0 {
		checkpointInterval = l.config.DefaultCheckpointIntervalMs
	}

	ctx = consolecontext.WithLogFields(ctx, logrus.Fields{"pipeline": opts.Name, "sink": opts.Sink.Label()})
	callCtx, cancel := requestContext(ctx, l.config.RequestTimeout)
	defer cancel()
	resp, err := l.client.StartPipeline(callCtx, &api.CreatePipelineReq{
		Name: opts.Name,
		Sql: &api.CreateSqlJob{
			Query:                    query,
			Udfs:                     []*api.CreateUdf{{Language: api.UdfLanguageRust, Definition: udfs}},
			Sink:                     opts.Sink.toAPI(),
			Parallelism:              parallelism,
			CheckpointIntervalMillis: checkpointInterval,
		},
	})
	if err != nil {
		classified := classifyRemoteError("start pipeline", err)
		if _, ok := classified.(*TransportError); ok {
			ctx.Log.WithError(err).Error("unhandled error starting pipeline")
			launchesCounter.WithLabelValues("failed").Inc()
		} else {
			launchesCounter.WithLabelValues("rejected").Inc()
		}
		return &LaunchOutcome{}, classified
	}
	launchesCounter.WithLabelValues("started").Inc()

	if err := l.drafts.Clear(draft.QueryKey); err != nil {
		ctx.Log.WithError(err).Warn("failed to clear query draft")
	}

	ctx.Log.Infof("started job %s", resp.JobId)
	if l.navigator != nil {
		l.navigator.NavigateToJob(resp.JobId)
	}
	return &LaunchOutcome{JobID: resp.JobId, Path: api.JobDetailPath(resp.JobId)}, nil
}
