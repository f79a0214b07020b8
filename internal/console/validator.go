package console

import (
	"time"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// ValidationResult is the outcome of compiling a query: a GraphResult or an
// ErrorsResult.
type ValidationResult interface {
	isValidationResult()
}

type GraphResult struct {
	Graph *api.JobGraph
}

// ErrorsResult holds every message the compiler reported, in order.
type ErrorsResult struct {
	Messages []string
}

func (GraphResult) isValidationResult()  {}
func (ErrorsResult) isValidationResult() {}

// First is the message surfaced to the user.
func (r ErrorsResult) First() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0]
}

type Validator struct {
	client  api.ApiClient
	timeout time.Duration
}

// NewValidator returns a validator whose requests give up after
// common.DefaultRequestTimeout.
func NewValidator(client api.ApiClient) *Validator {
	return &Validator{client: client, timeout: common.DefaultRequestTimeout}
}

// Validate asks the compiler for the graph of query. The query is sent as
// is, empty or not, along with the udfs text as a single rust udf. A failed
// call is returned as an error and never as an ErrorsResult.
func (v *Validator) Validate(ctx *consolecontext.Context, query string, udfs string) (ValidationResult, error) {
	callCtx, cancel := requestContext(ctx, v.timeout)
	defer cancel()
	resp, err := v.client.GraphForPipeline(callCtx, &api.PipelineGraphReq{
		Query: query,
		Udfs:  []*api.CreateUdf{{Language: api.UdfLanguageRust, Definition: udfs}},
	})
	if err != nil {
		ctx.Log.WithError(err).Debug("graph request failed")
		return nil, classifyRemoteError("validate query", err)
	}

	if graph := resp.GetJobGraph(); graph != nil {
		return GraphResult{Graph: graph}, nil
	}
	errs := resp.GetErrors()
	if errs == nil {
		return nil, &TransportError{Op: "validate query", Message: GenericFailureMessage}
	}
	messages := make([]string, 0, len(errs.Errors))
	for _, e := range errs.Errors {
		messages = append(messages, e.Message)
	}
	return ErrorsResult{Messages: messages}, nil
}
