// Package fakeapi is an in-process, scriptable arroyo_api.ApiGrpc server for
// tests and local development.
package fakeapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jacksonrnewhouse/arroyo/internal/common/apierrors"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// StreamEnd is what a job's output stream does after its scripted outputs.
type StreamEnd int

const (
	// EndBlock keeps the stream open until the job is stopped or the client leaves.
	EndBlock StreamEnd = iota
	// EndClose closes the stream normally.
	EndClose
	// EndError fails the stream.
	EndError
)

// JobScript scripts the life of one launched job.
type JobScript struct {
	// States served by consecutive status fetches. The last one repeats.
	Statuses []api.JobState
	// Zero based indexes of status fetches that fail with codes.Internal.
	FailStatusCalls map[int]bool
	// States served after the job was stopped. The last one repeats.
	StopStatuses []api.JobState
	Outputs      []*api.OutputData
	// Delay before each output.
	OutputInterval time.Duration
	End            StreamEnd
	OperatorErrors []*api.JobLogMessage
	// Fail UpdateJob with codes.FailedPrecondition.
	RejectStop bool
	// Close the output stream once the job is stopped.
	CloseOnStop bool
}

func DefaultScript() *JobScript {
	return &JobScript{
		Statuses:     []api.JobState{api.JobStateCreated, api.JobStateScheduling, api.JobStateRunning},
		StopStatuses: []api.JobState{api.JobStateStopping, api.JobStateStopped},
		End:          EndBlock,
		CloseOnStop:  true,
	}
}

type job struct {
	id          string
	pipelineId  string
	script      *JobScript
	statusCalls int
	stopCalls   int
	stopped     bool
	stopCh      chan struct{}
	served      api.JobState
	seenRunning bool
}

type Server struct {
	api.UnimplementedApiServer

	mu          sync.Mutex
	sources     []*api.SourceDef
	sinks       []*api.SinkDef
	pipelines   map[string]*api.PipelineDef
	scripts     []*JobScript
	jobs        map[string]*job
	launches    []*api.CreatePipelineReq
	events      []string
	nextId      int
	rejectStart string
	failStart   bool
	failGraph   bool
	// Script of jobs launched with an empty script queue.
	fallback func() *JobScript
}

func New() *Server {
	return &Server{
		pipelines: map[string]*api.PipelineDef{},
		jobs:      map[string]*job{},
		fallback:  DefaultScript,
	}
}

func (s *Server) AddSource(source *api.SourceDef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, source)
}

func (s *Server) AddSink(sink *api.SinkDef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

func (s *Server) AddPipeline(def *api.PipelineDef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines[def.PipelineId] = def
}

// Script queues the script of the next launched job. Jobs launched with an
// empty queue follow DefaultScript.
func (s *Server) Script(script *JobScript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, script)
}

// FallbackScript replaces DefaultScript for jobs launched with an empty script queue.
func (s *Server) FallbackScript(fallback func() *JobScript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = fallback
}

// RejectStart makes StartPipeline fail with codes.InvalidArgument and message.
func (s *Server) RejectStart(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectStart = message
}

// FailStart makes StartPipeline fail with codes.Internal.
func (s *Server) FailStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStart = true
}

// FailGraph makes GraphForPipeline fail with codes.Internal.
func (s *Server) FailGraph() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGraph = true
}

// Launches returns every StartPipeline request received, in order.
func (s *Server) Launches() []*api.CreatePipelineReq {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*api.CreatePipelineReq{}, s.launches...)
}

// Events returns the server's log, e.g. "launch:preview", "status:Running",
// "status:error", "subscribe", "stop".
func (s *Server) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.events...)
}

func (s *Server) HasEvent(event string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e == event {
			return true
		}
	}
	return false
}

func (s *Server) recordLocked(event string) {
	s.events = append(s.events, event)
}

func (s *Server) GetPipeline(ctx context.Context, req *api.GetPipelineReq) (*api.PipelineDef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.pipelines[req.PipelineId]
	if !ok {
		return nil, &apierrors.ErrNotFound{Type: "pipeline", Value: req.PipelineId}
	}
	return def, nil
}

func (s *Server) GetSources(ctx context.Context, req *api.GetSourcesReq) (*api.GetSourcesResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &api.GetSourcesResp{Sources: s.sources}, nil
}

func (s *Server) GetSinks(ctx context.Context, req *api.GetSinksReq) (*api.GetSinksResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &api.GetSinksResp{Sinks: s.sinks}, nil
}

func (s *Server) GraphForPipeline(ctx context.Context, req *api.PipelineGraphReq) (*api.PipelineGraphResp, error) {
	s.mu.Lock()
	fail := s.failGraph
	s.mu.Unlock()
	if fail {
		return nil, status.Error(codes.Internal, "compiler unavailable")
	}
	return Compile(req.Query), nil
}

func (s *Server) StartPipeline(ctx context.Context, req *api.CreatePipelineReq) (*api.CreatePipelineResp, error) {
	log := consolecontext.FromGrpcCtx(ctx).Log

	s.mu.Lock()
	defer s.mu.Unlock()
	s.launches = append(s.launches, req)
	s.recordLocked("launch:" + req.Name)

	if s.failStart {
		return nil, status.Error(codes.Internal, "scheduler crashed")
	}
	if s.rejectStart != "" {
		return nil, status.Error(codes.InvalidArgument, s.rejectStart)
	}
	if req.Name == "" {
		return nil, &apierrors.ErrInvalidArgument{Name: "name", Value: "", Message: "must not be empty"}
	}
	if req.GetSql() == nil {
		return nil, &apierrors.ErrInvalidArgument{Name: "sql", Value: "", Message: "a sql pipeline is required"}
	}
	if resp := Compile(req.Sql.Query); resp.GetErrors() != nil {
		return nil, &apierrors.ErrInvalidArgument{Name: "query", Value: req.Sql.Query, Message: resp.Errors.Errors[0].Message}
	}

	script := s.fallback()
	if len(s.scripts) > 0 {
		script = s.scripts[0]
		s.scripts = s.scripts[1:]
	}

	s.nextId++
	j := &job{
		id:         fmt.Sprintf("job_%d", s.nextId),
		pipelineId: fmt.Sprintf("pl_%d", s.nextId),
		script:     script,
		stopCh:     make(chan struct{}),
	}
	s.jobs[j.id] = j
	s.pipelines[j.pipelineId] = &api.PipelineDef{
		PipelineId: j.pipelineId,
		Name:       req.Name,
		Definition: req.Sql.Query,
		Udfs:       req.Sql.Udfs,
	}
	log.Infof("launched job %s for pipeline %s", j.id, req.Name)
	return &api.CreatePipelineResp{PipelineId: j.pipelineId, JobId: j.id}, nil
}

func (s *Server) GetJobDetails(ctx context.Context, req *api.JobDetailsReq) (*api.JobDetailsResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.jobLocked(req.JobId)
	if err != nil {
		return nil, err
	}

	var state api.JobState
	if j.stopped {
		state = pick(j.script.StopStatuses, j.stopCalls, api.JobStateStopped)
		j.stopCalls++
	} else {
		call := j.statusCalls
		j.statusCalls++
		if j.script.FailStatusCalls[call] {
			s.recordLocked("status:error")
			return nil, status.Error(codes.Internal, "job store unavailable")
		}
		state = pick(j.script.Statuses, call, api.JobStateRunning)
	}

	j.served = state
	if state == api.JobStateRunning {
		j.seenRunning = true
	}
	s.recordLocked("status:" + state.String())
	return &api.JobDetailsResp{JobStatus: &api.JobStatus{JobId: j.id, PipelineName: s.pipelines[j.pipelineId].Name, State: state}}, nil
}

func (s *Server) UpdateJob(ctx context.Context, req *api.UpdateJobReq) (*api.UpdateJobResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.jobLocked(req.JobId)
	if err != nil {
		return nil, err
	}
	s.recordLocked("stop")
	if j.script.RejectStop {
		return nil, &apierrors.ErrFailedPrecondition{Message: fmt.Sprintf("job %s can not be stopped", j.id)}
	}
	if req.Stop != api.StopTypeNone && !j.stopped {
		j.stopped = true
		close(j.stopCh)
	}
	return &api.UpdateJobResp{}, nil
}

func (s *Server) SubscribeToOutput(req *api.GrpcOutputSubscription, stream api.Api_SubscribeToOutputServer) error {
	s.mu.Lock()
	j, err := s.jobLocked(req.JobId)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !j.seenRunning {
		s.mu.Unlock()
		return &apierrors.ErrFailedPrecondition{Message: fmt.Sprintf("job %s is not running", j.id)}
	}
	s.recordLocked("subscribe")
	script := j.script
	s.mu.Unlock()

	ctx := stream.Context()
	for _, output := range script.Outputs {
		if script.OutputInterval > 0 {
			select {
			case <-time.After(script.OutputInterval):
			case <-ctx.Done():
				return ctx.Err()
			case <-j.stopCh:
				if script.CloseOnStop {
					return nil
				}
			}
		}
		if err := stream.Send(output); err != nil {
			return err
		}
	}

	switch script.End {
	case EndClose:
		return nil
	case EndError:
		return status.Error(codes.Internal, "output stream broken")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-j.stopCh:
		if script.CloseOnStop {
			return nil
		}
		<-ctx.Done()
		return ctx.Err()
	}
}

func (s *Server) GetOperatorErrors(ctx context.Context, req *api.OperatorErrorsReq) (*api.OperatorErrorsRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.jobLocked(req.JobId)
	if err != nil {
		return nil, err
	}
	return &api.OperatorErrorsRes{Messages: j.script.OperatorErrors}, nil
}

func (s *Server) jobLocked(jobId string) (*job, error) {
	j, ok := s.jobs[jobId]
	if !ok {
		return nil, &apierrors.ErrNotFound{Type: "job", Value: jobId}
	}
	return j, nil
}

func pick(states []api.JobState, i int, fallback api.JobState) api.JobState {
	if len(states) == 0 {
		return fallback
	}
	if i >= len(states) {
		return states[len(states)-1]
	}
	return states[i]
}

// Compile accepts queries starting with SELECT and answers with a three node
// graph. Anything else is a planning error.
func Compile(query string) *api.PipelineGraphResp {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return &api.PipelineGraphResp{Errors: &api.PipelineGraphErrors{Errors: []*api.ErrorMessage{
			{Message: "Query is empty"},
		}}}
	}
	fields := strings.Fields(trimmed)
	if !strings.EqualFold(fields[0], "SELECT") {
		return &api.PipelineGraphResp{Errors: &api.PipelineGraphErrors{Errors: []*api.ErrorMessage{
			{Message: fmt.Sprintf("sql parser error: Expected an SQL statement, found: %s", fields[0])},
			{Message: "no pipeline could be planned"},
		}}}
	}
	return &api.PipelineGraphResp{JobGraph: &api.JobGraph{
		Nodes: []*api.JobNode{
			{NodeId: "source_0", Operator: "source", Parallelism: 1},
			{NodeId: "projection_1", Operator: "projection", Parallelism: 1},
			{NodeId: "sink_2", Operator: "sink", Parallelism: 1},
		},
		Edges: []*api.JobEdge{
			{SrcId: "source_0", DestId: "projection_1", EdgeType: "Forward"},
			{SrcId: "projection_1", DestId: "sink_2", EdgeType: "Forward"},
		},
	}}
}
