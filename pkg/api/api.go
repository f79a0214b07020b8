package api

// Messages of the arroyo_api.ApiGrpc service. Field names follow the service's
// JSON mapping so the same structs travel over the json and cbor codecs.

type UdfLanguage string

const (
	UdfLanguageRust UdfLanguage = "rust"
)

type CreateUdf struct {
	Language   UdfLanguage `json:"language"`
	Definition string      `json:"definition"`
}

type BuiltinSink string

const (
	BuiltinSinkWeb  BuiltinSink = "Web"
	BuiltinSinkLog  BuiltinSink = "Log"
	BuiltinSinkNull BuiltinSink = "Null"
)

// Sink is a oneof: exactly one of Builtin or User is set.
type Sink struct {
	Builtin BuiltinSink `json:"builtin,omitempty"`
	User    string      `json:"user,omitempty"`
}

func (m *Sink) GetBuiltin() BuiltinSink {
	if m != nil {
		return m.Builtin
	}
	return ""
}

func (m *Sink) GetUser() string {
	if m != nil {
		return m.User
	}
	return ""
}

type CreateSqlJob struct {
	Query                    string       `json:"query"`
	Udfs                     []*CreateUdf `json:"udfs,omitempty"`
	Sink                     *Sink        `json:"sink,omitempty"`
	Preview                  bool         `json:"preview,omitempty"`
	Parallelism              uint64       `json:"parallelism,omitempty"`
	CheckpointIntervalMillis uint64       `json:"checkpointIntervalMillis,omitempty"`
}

type CreatePipelineReq struct {
	Name string        `json:"name"`
	Sql  *CreateSqlJob `json:"sql,omitempty"`
}

func (m *CreatePipelineReq) GetSql() *CreateSqlJob {
	if m != nil {
		return m.Sql
	}
	return nil
}

type CreatePipelineResp struct {
	PipelineId string `json:"pipelineId"`
	JobId      string `json:"jobId"`
}

type GetPipelineReq struct {
	PipelineId string `json:"pipelineId"`
}

type PipelineDef struct {
	PipelineId string       `json:"pipelineId"`
	Name       string       `json:"name"`
	Definition string       `json:"definition"`
	Udfs       []*CreateUdf `json:"udfs,omitempty"`
}

type SourceField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

type SourceDef struct {
	Id     int64          `json:"id"`
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Fields []*SourceField `json:"fields,omitempty"`
}

type GetSourcesReq struct{}

type GetSourcesResp struct {
	Sources []*SourceDef `json:"sources,omitempty"`
}

type SinkDef struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

type GetSinksReq struct{}

type GetSinksResp struct {
	Sinks []*SinkDef `json:"sinks,omitempty"`
}

type PipelineGraphReq struct {
	Query string       `json:"query"`
	Udfs  []*CreateUdf `json:"udfs,omitempty"`
}

type JobNode struct {
	NodeId      string `json:"nodeId"`
	Operator    string `json:"operator"`
	Parallelism uint32 `json:"parallelism"`
}

type JobEdge struct {
	SrcId     string `json:"srcId"`
	DestId    string `json:"destId"`
	KeyType   string `json:"keyType,omitempty"`
	ValueType string `json:"valueType,omitempty"`
	EdgeType  string `json:"edgeType,omitempty"`
}

type JobGraph struct {
	Nodes []*JobNode `json:"nodes,omitempty"`
	Edges []*JobEdge `json:"edges,omitempty"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

type PipelineGraphErrors struct {
	Errors []*ErrorMessage `json:"errors,omitempty"`
}

// PipelineGraphResp is a oneof: either JobGraph or Errors is set.
type PipelineGraphResp struct {
	JobGraph *JobGraph           `json:"jobGraph,omitempty"`
	Errors   *PipelineGraphErrors `json:"errors,omitempty"`
}

func (m *PipelineGraphResp) GetJobGraph() *JobGraph {
	if m != nil {
		return m.JobGraph
	}
	return nil
}

func (m *PipelineGraphResp) GetErrors() *PipelineGraphErrors {
	if m != nil {
		return m.Errors
	}
	return nil
}

type JobDetailsReq struct {
	JobId string `json:"jobId"`
}

type JobStatus struct {
	JobId        string   `json:"jobId"`
	PipelineName string   `json:"pipelineName,omitempty"`
	RunId        uint64   `json:"runId,omitempty"`
	State        JobState `json:"state"`
	StartTime    int64    `json:"startTime,omitempty"`
	FinishTime   int64    `json:"finishTime,omitempty"`
	Failures     string   `json:"failures,omitempty"`
}

func (m *JobStatus) GetState() JobState {
	if m != nil {
		return m.State
	}
	return ""
}

type JobDetailsResp struct {
	JobStatus *JobStatus `json:"jobStatus,omitempty"`
	JobGraph  *JobGraph  `json:"jobGraph,omitempty"`
}

func (m *JobDetailsResp) GetJobStatus() *JobStatus {
	if m != nil {
		return m.JobStatus
	}
	return nil
}

type StopType string

const (
	StopTypeNone      StopType = ""
	StopTypeImmediate StopType = "Immediate"
	StopTypeGraceful  StopType = "Graceful"
)

type UpdateJobReq struct {
	JobId string   `json:"jobId"`
	Stop  StopType `json:"stop,omitempty"`
}

type UpdateJobResp struct{}

type GrpcOutputSubscription struct {
	JobId string `json:"jobId"`
}

type OutputData struct {
	OperatorId string `json:"operatorId"`
	Timestamp  uint64 `json:"timestamp"`
	Key        string `json:"key,omitempty"`
	Value      string `json:"value"`
}

type OperatorErrorsReq struct {
	JobId string `json:"jobId"`
}

type JobLogMessage struct {
	Id         int64  `json:"id"`
	CreatedAt  int64  `json:"createdAt"`
	OperatorId string `json:"operatorId"`
	TaskIndex  *int64 `json:"taskIndex,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

type OperatorErrorsRes struct {
	Messages []*JobLogMessage `json:"messages,omitempty"`
}
