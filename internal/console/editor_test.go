package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/internal/fakeapi"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func withEditor(t *testing.T, drafts draft.Repository, action func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator)) {
	withFakeApi(t, func(fake *fakeapi.Server, client api.ApiClient) {
		navigator := &recordingNavigator{}
		editor, err := NewEditor(testContext(), client, drafts, navigator, testConfig())
		require.NoError(t, err)
		defer editor.Close()
		action(fake, editor, navigator)
	})
}

func TestEditor_RestoresDrafts(t *testing.T) {
	drafts := draft.NewInMemoryRepository()
	require.NoError(t, drafts.Set(draft.QueryKey, "SELECT 1"))
	require.NoError(t, drafts.Set(draft.UdfKey, "fn f() {}"))

	withEditor(t, drafts, func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		assert.Equal(t, "SELECT 1", editor.Query())
		assert.Equal(t, "fn f() {}", editor.Udfs())
	})
}

func TestEditor_EditsArePersisted(t *testing.T) {
	drafts := draft.NewInMemoryRepository()
	withEditor(t, drafts, func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELECT 2"))
		require.NoError(t, editor.SetUdfs(""))

		query, ok, err := drafts.Get(draft.QueryKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "SELECT 2", query)

		udfs, ok, err := drafts.Get(draft.UdfKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", udfs)
	})
}

func TestEditor_CheckSetsGraphOnlyForValidQueries(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELECT 1"))
		result, err := editor.Check(testContext())
		require.NoError(t, err)
		assert.IsType(t, GraphResult{}, result)
		assert.NotNil(t, editor.Graph())
		assert.Empty(t, editor.Error())

		require.NoError(t, editor.SetQuery("SELEC 1"))
		result, err = editor.Check(testContext())
		require.NoError(t, err)
		assert.IsType(t, ErrorsResult{}, result)
		assert.Nil(t, editor.Graph())
		assert.Equal(t, "sql parser error: Expected an SQL statement, found: SELEC", editor.Error())
	})
}

func TestEditor_StartRefusesInvalidQuery(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELEC 1"))

		_, err := editor.Start(testContext(), StartOptions{Name: "orders", Sink: BuiltinSink{Kind: api.BuiltinSinkLog}})

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Empty(t, fake.Launches())
		assert.Empty(t, navigator.jobIDs)
	})
}

func TestEditor_StartClearsQueryDraft(t *testing.T) {
	drafts := draft.NewInMemoryRepository()
	withEditor(t, drafts, func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELECT 1"))

		outcome, err := editor.Start(testContext(), StartOptions{Name: "orders", Sink: BuiltinSink{Kind: api.BuiltinSinkLog}})
		require.NoError(t, err)

		assert.Equal(t, "job_1", outcome.JobID)
		assert.Equal(t, []string{"job_1"}, navigator.jobIDs)
		_, ok, err := drafts.Get(draft.QueryKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEditor_CopyFrom(t *testing.T) {
	drafts := draft.NewInMemoryRepository()
	require.NoError(t, drafts.Set(draft.QueryKey, "SELECT saved"))

	withEditor(t, drafts, func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		fake.AddPipeline(&api.PipelineDef{
			PipelineId: "pl_7",
			Name:       "orders",
			Definition: "SELECT * FROM orders",
			Udfs:       []*api.CreateUdf{{Language: api.UdfLanguageRust, Definition: "fn double(x: i64) -> i64 { x * 2 }"}},
		})

		require.NoError(t, editor.CopyFrom(testContext(), "pl_7"))

		assert.Equal(t, "SELECT * FROM orders", editor.Query())
		assert.Equal(t, "fn double(x: i64) -> i64 { x * 2 }", editor.Udfs())
		assert.Equal(t, "orders-copy", editor.SuggestedName())

		saved, _, err := drafts.Get(draft.QueryKey)
		require.NoError(t, err)
		assert.Equal(t, "SELECT saved", saved, "copied text is not persisted")
	})
}

func TestEditor_CopyFromMissingPipeline(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		err := editor.CopyFrom(testContext(), "pl_missing")

		var rejected *RejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, `resource "pl_missing" of type "pipeline" does not exist`, editor.Error())
	})
}

func TestEditor_PreviewAndStop(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELECT 1"))

		session, err := editor.Preview(testContext())
		require.NoError(t, err)
		waitForActive(t, session)

		require.NoError(t, editor.StopPreview(testContext()))
		assert.Equal(t, ReasonStopped, session.Snapshot().Reason)
	})
}

func TestEditor_PreviewFeedsGraph(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		require.NoError(t, editor.SetQuery("SELECT 1"))

		session, err := editor.Preview(testContext())
		require.NoError(t, err)
		require.NotNil(t, editor.Graph())
		assert.NotEmpty(t, editor.Graph().Nodes)
		assert.Empty(t, editor.Error())
		require.NoError(t, editor.StopPreview(testContext()))
		assert.Equal(t, ReasonStopped, session.Snapshot().Reason)

		require.NoError(t, editor.SetQuery("SELEC 1"))
		_, err = editor.Preview(testContext())
		require.Error(t, err)
		assert.Nil(t, editor.Graph())
		assert.Equal(t, "sql parser error: Expected an SQL statement, found: SELEC", editor.Error())
	})
}

func TestNewEditor_RejectsInvalidConfiguration(t *testing.T) {
	withFakeApi(t, func(fake *fakeapi.Server, client api.ApiClient) {
		config := testConfig()
		config.MaxWait = -time.Second

		_, err := NewEditor(testContext(), client, draft.NewInMemoryRepository(), nil, config)
		assert.ErrorContains(t, err, "maxWait must not be negative")
	})
}

func TestNewEditor_FillsUnsetConfiguration(t *testing.T) {
	withFakeApi(t, func(fake *fakeapi.Server, client api.ApiClient) {
		editor, err := NewEditor(testContext(), client, draft.NewInMemoryRepository(), nil, Configuration{})
		require.NoError(t, err)
		defer editor.Close()

		defaults := Defaults()
		defaults.MaxWait = 0
		defaults.StopMaxWait = 0
		assert.Equal(t, defaults, editor.config)
	})
}

func TestEditor_StopWithoutPreview(t *testing.T) {
	withEditor(t, draft.NewInMemoryRepository(), func(fake *fakeapi.Server, editor *Editor, navigator *recordingNavigator) {
		assert.NoError(t, editor.StopPreview(testContext()))
		assert.Empty(t, fake.Events())
	})
}
