package fakeapi

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func withInProcess(t *testing.T, action func(s *Server, client api.ApiClient)) {
	s := New()
	proc, err := StartInProcess(s, api.CodecCBOR)
	require.NoError(t, err)
	defer proc.Close()
	action(s, proc.Client)
}

func TestCompile(t *testing.T) {
	assert.NotNil(t, Compile("select * from nexmark").GetJobGraph())
	assert.NotNil(t, Compile("SELEC 1").GetErrors())
	assert.NotNil(t, Compile("   ").GetErrors())
}

func TestJobFollowsScript(t *testing.T) {
	withInProcess(t, func(s *Server, client api.ApiClient) {
		s.Script(&JobScript{
			Statuses:     []api.JobState{api.JobStateCreated, api.JobStateRunning},
			StopStatuses: []api.JobState{api.JobStateStopping, api.JobStateStopped},
			Outputs:      []*api.OutputData{{OperatorId: "sink_2", Value: "a"}},
			End:          EndClose,
		})
		ctx := context.Background()

		resp, err := client.StartPipeline(ctx, &api.CreatePipelineReq{Name: "p", Sql: &api.CreateSqlJob{Query: "SELECT 1"}})
		require.NoError(t, err)

		for _, expected := range []api.JobState{api.JobStateCreated, api.JobStateRunning, api.JobStateRunning} {
			details, err := client.GetJobDetails(ctx, &api.JobDetailsReq{JobId: resp.JobId})
			require.NoError(t, err)
			assert.Equal(t, expected, details.GetJobStatus().GetState())
		}

		stream, err := client.SubscribeToOutput(ctx, &api.GrpcOutputSubscription{JobId: resp.JobId})
		require.NoError(t, err)
		output, err := stream.Recv()
		require.NoError(t, err)
		assert.Equal(t, "a", output.Value)
		_, err = stream.Recv()
		assert.Equal(t, io.EOF, err)

		_, err = client.UpdateJob(ctx, &api.UpdateJobReq{JobId: resp.JobId, Stop: api.StopTypeImmediate})
		require.NoError(t, err)
		for _, expected := range []api.JobState{api.JobStateStopping, api.JobStateStopped, api.JobStateStopped} {
			details, err := client.GetJobDetails(ctx, &api.JobDetailsReq{JobId: resp.JobId})
			require.NoError(t, err)
			assert.Equal(t, expected, details.GetJobStatus().GetState())
		}
	})
}

func TestSubscribeBeforeRunningIsRefused(t *testing.T) {
	withInProcess(t, func(s *Server, client api.ApiClient) {
		ctx := context.Background()
		resp, err := client.StartPipeline(ctx, &api.CreatePipelineReq{Name: "p", Sql: &api.CreateSqlJob{Query: "SELECT 1"}})
		require.NoError(t, err)

		stream, err := client.SubscribeToOutput(ctx, &api.GrpcOutputSubscription{JobId: resp.JobId})
		require.NoError(t, err)
		_, err = stream.Recv()
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})
}

func TestStartPipelineValidation(t *testing.T) {
	withInProcess(t, func(s *Server, client api.ApiClient) {
		ctx := context.Background()

		_, err := client.StartPipeline(ctx, &api.CreatePipelineReq{Name: "", Sql: &api.CreateSqlJob{Query: "SELECT 1"}})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		_, err = client.StartPipeline(ctx, &api.CreatePipelineReq{Name: "p", Sql: &api.CreateSqlJob{Query: "SELEC 1"}})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		_, err = client.GetJobDetails(ctx, &api.JobDetailsReq{JobId: "job_404"})
		assert.Equal(t, codes.NotFound, status.Code(err))

		assert.Len(t, s.Launches(), 2)
	})
}
