package pipeline

import (
	"fmt"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

type GetAPI func(string) (*api.PipelineDef, error)

func Get(getConnectionDetails client.ConnectionDetails) GetAPI {
	return func(pipelineId string) (*api.PipelineDef, error) {
		conn, err := client.CreateApiConnection(getConnectionDetails())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to api because %s", err)
		}
		defer conn.Close()

		ctx, cancel := common.ContextWithDefaultTimeout()
		defer cancel()

		def, err := api.NewApiClient(conn).GetPipeline(ctx, &api.GetPipelineReq{PipelineId: pipelineId})
		if err != nil {
			return nil, fmt.Errorf("get pipeline request failed: %s", err)
		}
		return def, nil
	}
}

type OperatorErrorsAPI func(string) ([]*api.JobLogMessage, error)

func OperatorErrors(getConnectionDetails client.ConnectionDetails) OperatorErrorsAPI {
	return func(jobId string) ([]*api.JobLogMessage, error) {
		conn, err := client.CreateApiConnection(getConnectionDetails())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to api because %s", err)
		}
		defer conn.Close()

		ctx, cancel := common.ContextWithDefaultTimeout()
		defer cancel()

		resp, err := api.NewApiClient(conn).GetOperatorErrors(ctx, &api.OperatorErrorsReq{JobId: jobId})
		if err != nil {
			return nil, fmt.Errorf("get operator errors request failed: %s", err)
		}
		return resp.Messages, nil
	}
}
