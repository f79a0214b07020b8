package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/internal/fakeapi"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

type recordingNavigator struct {
	jobIDs []string
}

func (n *recordingNavigator) NavigateToJob(jobID string) {
	n.jobIDs = append(n.jobIDs, jobID)
}

func withLauncher(t *testing.T, action func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator)) {
	withFakeApi(t, func(fake *fakeapi.Server, client api.ApiClient) {
		drafts := draft.NewInMemoryRepository()
		require.NoError(t, drafts.Set(draft.QueryKey, "SELECT 1"))
		require.NoError(t, drafts.Set(draft.UdfKey, "fn f() {}"))
		navigator := &recordingNavigator{}
		action(fake, NewLauncher(client, drafts, navigator, testConfig()), drafts, navigator)
	})
}

func TestLauncherStart_DisabledWithoutInputs(t *testing.T) {
	tests := map[string]StartOptions{
		"empty name":   {Name: "", Sink: BuiltinSink{Kind: api.BuiltinSinkWeb}},
		"no sink":      {Name: "orders"},
		"neither":      {},
		"unnamed sink": {Name: "orders", Sink: NamedSink{}},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			withLauncher(t, func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator) {
				outcome, err := launcher.Start(testContext(), opts, "SELECT 1", "")

				assert.ErrorIs(t, err, ErrLaunchDisabled)
				assert.True(t, outcome.Disabled)
				assert.Empty(t, fake.Launches())
				assert.Empty(t, navigator.jobIDs)

				_, ok, err := drafts.Get(draft.QueryKey)
				require.NoError(t, err)
				assert.True(t, ok)
			})
		})
	}
}

func TestLauncherStart_Success(t *testing.T) {
	withLauncher(t, func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator) {
		outcome, err := launcher.Start(testContext(), StartOptions{Name: "orders", Sink: NamedSink{Name: "kafka_orders"}}, "SELECT 1", "fn f() {}")
		require.NoError(t, err)

		assert.Equal(t, &LaunchOutcome{JobID: "job_1", Path: "/jobs/job_1"}, outcome)
		assert.Equal(t, []string{"job_1"}, navigator.jobIDs)

		launches := fake.Launches()
		require.Len(t, launches, 1)
		assert.Equal(t, "orders", launches[0].Name)
		assert.Equal(t, &api.CreateSqlJob{
			Query:                    "SELECT 1",
			Udfs:                     []*api.CreateUdf{{Language: api.UdfLanguageRust, Definition: "fn f() {}"}},
			Sink:                     &api.Sink{User: "kafka_orders"},
			Parallelism:              4,
			CheckpointIntervalMillis: 5000,
		}, launches[0].Sql)

		_, ok, err := drafts.Get(draft.QueryKey)
		require.NoError(t, err)
		assert.False(t, ok, "query draft should be cleared")

		udfs, ok, err := drafts.Get(draft.UdfKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "fn f() {}", udfs)
	})
}

func TestLauncherStart_ExplicitOptions(t *testing.T) {
	withLauncher(t, func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator) {
		opts := StartOptions{Name: "orders", Sink: BuiltinSink{Kind: api.BuiltinSinkNull}, Parallelism: 16, CheckpointIntervalMs: 60000}
		_, err := launcher.Start(testContext(), opts, "SELECT 1", "")
		require.NoError(t, err)

		sql := fake.Launches()[0].Sql
		assert.Equal(t, uint64(16), sql.Parallelism)
		assert.Equal(t, uint64(60000), sql.CheckpointIntervalMillis)
		assert.Equal(t, &api.Sink{Builtin: api.BuiltinSinkNull}, sql.Sink)
	})
}

func TestLauncherStart_Rejected(t *testing.T) {
	withLauncher(t, func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator) {
		fake.RejectStart("pipeline orders already exists")

		outcome, err := launcher.Start(testContext(), StartOptions{Name: "orders", Sink: BuiltinSink{Kind: api.BuiltinSinkLog}}, "SELECT 1", "")

		var rejected *RejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "pipeline orders already exists", rejected.Message)
		var transport *TransportError
		assert.False(t, asTransport(err, &transport))
		assert.Equal(t, "pipeline orders already exists", UserMessage(err))

		assert.False(t, outcome.Disabled)
		assert.Empty(t, outcome.JobID)
		assert.Empty(t, navigator.jobIDs)
		_, ok, _ := drafts.Get(draft.QueryKey)
		assert.True(t, ok)
	})
}

func TestLauncherStart_TransportFailure(t *testing.T) {
	withLauncher(t, func(fake *fakeapi.Server, launcher *Launcher, drafts *draft.InMemoryRepository, navigator *recordingNavigator) {
		fake.FailStart()

		_, err := launcher.Start(testContext(), StartOptions{Name: "orders", Sink: BuiltinSink{Kind: api.BuiltinSinkLog}}, "SELECT 1", "")

		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, GenericFailureMessage, UserMessage(err))
		var rejected *RejectedError
		assert.NotErrorIs(t, err, ErrLaunchDisabled)
		assert.False(t, asRejected(err, &rejected))
		assert.Empty(t, navigator.jobIDs)
	})
}
