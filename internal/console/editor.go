package console

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// Editor is one query editing session. It keeps the query and udfs text in
// step with the draft repository and drives validation, previews and
// launches for them.
type Editor struct {
	client       api.ApiClient
	config       Configuration
	drafts       draft.Repository
	validator    *Validator
	orchestrator *Orchestrator
	stopper      *StopController
	launcher     *Launcher

	mu            sync.Mutex
	query         string
	udfs          string
	graph         *api.JobGraph
	errMessage    string
	suggestedName string
}

// NewEditor opens an editor with the saved drafts restored. Unset fields of
// config are taken from Defaults; the result must pass Validate.
func NewEditor(ctx *consolecontext.Context, apiClient api.ApiClient, drafts draft.Repository, navigator Navigator, config Configuration) (*Editor, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid console configuration")
	}
	saved, err := draft.Load(drafts)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		client:       apiClient,
		config:       config,
		drafts:       drafts,
		validator:    &Validator{client: apiClient, timeout: config.RequestTimeout},
		orchestrator: NewOrchestrator(ctx, apiClient, config),
		stopper:      NewStopController(apiClient, config),
		launcher:     NewLauncher(apiClient, drafts, navigator, config),
		query:        saved.Query,
		udfs:         saved.Udfs,
	}
	e.orchestrator.onValidated = e.recordValidation
	return e, nil
}

func (e *Editor) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

func (e *Editor) Udfs() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.udfs
}

// SetQuery replaces the query text and saves it as a draft.
func (e *Editor) SetQuery(text string) error {
	e.mu.Lock()
	e.query = text
	e.mu.Unlock()
	return e.drafts.Set(draft.QueryKey, text)
}

// SetUdfs replaces the udfs text and saves it as a draft.
func (e *Editor) SetUdfs(text string) error {
	e.mu.Lock()
	e.udfs = text
	e.mu.Unlock()
	return e.drafts.Set(draft.UdfKey, text)
}

// Graph is the graph of the last successful check, or nil.
func (e *Editor) Graph() *api.JobGraph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph
}

// Error is the message of the last failed check, preview or start.
func (e *Editor) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMessage
}

// SuggestedName is the pipeline name proposed by CopyFrom.
func (e *Editor) SuggestedName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suggestedName
}

// Catalog loads the sources and sinks offered next to the query.
func (e *Editor) Catalog(ctx *consolecontext.Context) (*Catalog, error) {
	return loadCatalog(ctx, e.client, e.config.RequestTimeout)
}

func (e *Editor) Orchestrator() *Orchestrator {
	return e.orchestrator
}

// Check validates the current text. The graph is cleared first and only set
// again for a query that compiles.
func (e *Editor) Check(ctx *consolecontext.Context) (ValidationResult, error) {
	e.mu.Lock()
	e.graph = nil
	e.errMessage = ""
	query, udfs := e.query, e.udfs
	e.mu.Unlock()

	result, err := e.validator.Validate(ctx, query, udfs)
	if err != nil {
		e.setError(err)
		return nil, err
	}
	e.recordValidation(result)
	return result, nil
}

func (e *Editor) recordValidation(result ValidationResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch r := result.(type) {
	case GraphResult:
		e.graph = r.Graph
	case ErrorsResult:
		e.errMessage = r.First()
	}
}

// Preview starts a preview of the current text. Its validation feeds Graph
// and Error the same way Check does.
func (e *Editor) Preview(ctx *consolecontext.Context) (*Session, error) {
	e.mu.Lock()
	e.graph = nil
	e.errMessage = ""
	query, udfs := e.query, e.udfs
	e.mu.Unlock()

	session, err := e.orchestrator.StartPreview(ctx, query, udfs)
	if err != nil {
		e.setError(err)
	}
	return session, err
}

// StopPreview stops the current preview, if any.
func (e *Editor) StopPreview(ctx *consolecontext.Context) error {
	return e.stopper.StopPreview(ctx, e.orchestrator.Current())
}

// Start checks the current text and launches it as a durable pipeline.
func (e *Editor) Start(ctx *consolecontext.Context, opts StartOptions) (*LaunchOutcome, error) {
	if !CanStart(opts) {
		return e.launcher.Start(ctx, opts, "", "")
	}

	result, err := e.Check(ctx)
	if err != nil {
		return &LaunchOutcome{}, err
	}
	if errs, ok := result.(ErrorsResult); ok {
		return &LaunchOutcome{}, &ValidationError{Messages: errs.Messages}
	}

	outcome, err := e.launcher.Start(ctx, opts, e.Query(), e.Udfs())
	if err != nil {
		e.setError(err)
	}
	return outcome, err
}

// CopyFrom loads the definition of an existing pipeline into the editor. The
// copied text is not saved as a draft until it is edited.
func (e *Editor) CopyFrom(ctx *consolecontext.Context, pipelineID string) error {
	callCtx, cancel := requestContext(ctx, e.config.RequestTimeout)
	defer cancel()
	def, err := e.client.GetPipeline(callCtx, &api.GetPipelineReq{PipelineId: pipelineID})
	if err != nil {
		err = classifyRemoteError("get pipeline", err)
		e.setError(err)
		return err
	}

	udfs := ""
	if len(def.Udfs) > 0 {
		udfs = def.Udfs[0].Definition
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.query = def.Definition
	e.udfs = udfs
	e.suggestedName = def.Name + "-copy"
	e.graph = nil
	e.errMessage = ""
	return nil
}

// Close cancels any running preview session. The preview job itself is left
// to the server.
func (e *Editor) Close() {
	e.orchestrator.Close()
}

func (e *Editor) setError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errMessage = UserMessage(err)
}
