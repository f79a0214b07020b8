package console

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func TestSnapshot_BusyAndLabel(t *testing.T) {
	tests := map[string]struct {
		snapshot Snapshot
		busy     bool
		label    string
	}{
		"no session": {
			snapshot: Snapshot{Phase: PhaseIdle},
			label:    "Preview",
		},
		"scheduling": {
			snapshot: Snapshot{Phase: PhaseAwaitingRunning, Status: &api.JobStatus{State: api.JobStateScheduling}},
			busy:     true,
			label:    "Scheduling",
		},
		"running before subscription": {
			snapshot: Snapshot{Phase: PhaseAwaitingRunning, Status: &api.JobStatus{State: api.JobStateRunning}},
			label:    "Preview",
		},
		"streaming": {
			snapshot: Snapshot{Phase: PhaseStreaming, Status: &api.JobStatus{State: api.JobStateRunning}, Active: true},
			label:    "Stop preview",
		},
		"stopping": {
			snapshot: Snapshot{Phase: PhaseStreaming, Active: true, Stopping: true},
			busy:     true,
			label:    "stopping",
		},
		"finished": {
			snapshot: Snapshot{Phase: PhaseTerminated, Reason: ReasonFinished},
			label:    "Preview",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.busy, tc.snapshot.Busy())
			assert.Equal(t, tc.label, tc.snapshot.Label())
		})
	}
}

func TestSession_TerminatedSessionIgnoresUpdates(t *testing.T) {
	s := newSession(testContext(), nil)
	s.assignJob("job_1")
	s.terminate(ReasonSuperseded)

	s.setStatus(&api.JobStatus{State: api.JobStateRunning})
	assert.False(t, s.startStreaming())
	s.appendOutput(&api.OutputData{Value: "late"})

	snapshot := s.Snapshot()
	assert.Equal(t, PhaseTerminated, snapshot.Phase)
	assert.Equal(t, ReasonSuperseded, snapshot.Reason)
	assert.Nil(t, snapshot.Status)
	assert.Empty(t, snapshot.Outputs)
	assert.False(t, snapshot.Active)

	select {
	case <-s.Done():
	default:
		t.Fatal("terminated session should be done")
	}
	assert.Error(t, s.context().Err())
}

func TestSession_JobIDAssignedOnce(t *testing.T) {
	s := newSession(testContext(), nil)
	s.assignJob("job_1")
	s.assignJob("job_2")
	assert.Equal(t, "job_1", s.JobID())
}

func TestSession_StopOwnsTerminationWhileInFlight(t *testing.T) {
	s := newSession(testContext(), nil)
	s.assignJob("job_1")
	s.startStreaming()
	assert.True(t, s.requestStop())

	s.finishRun(ReasonFinished, nil)
	assert.True(t, s.Snapshot().Active, "stream end must not deactivate while a stop is in flight")

	assert.True(t, s.confirmStopped())
	snapshot := s.Snapshot()
	assert.False(t, snapshot.Active)
	assert.Equal(t, ReasonStopped, snapshot.Reason)
	assert.False(t, s.confirmStopped())
}

func TestSession_AbortedStopAppliesPendingEnd(t *testing.T) {
	s := newSession(testContext(), nil)
	s.assignJob("job_1")
	s.startStreaming()
	s.requestStop()
	s.finishRun(ReasonFinished, nil)

	s.abortStop()

	snapshot := s.Snapshot()
	assert.Equal(t, PhaseTerminated, snapshot.Phase)
	assert.Equal(t, ReasonFinished, snapshot.Reason)
	assert.False(t, snapshot.Active)
}

func TestSession_ObserversSeeEveryChangeInOrder(t *testing.T) {
	recorder := &snapshotRecorder{}
	s := newSession(testContext(), []func(Snapshot){recorder.observe})
	s.assignJob("job_1")
	s.setStatus(&api.JobStatus{State: api.JobStateRunning})
	s.startStreaming()
	s.appendOutput(&api.OutputData{Value: "a"})
	s.finishRun(ReasonFinished, nil)

	var phases []Phase
	for _, snapshot := range recorder.all() {
		phases = append(phases, snapshot.Phase)
	}
	assert.Equal(t, []Phase{PhaseAwaitingRunning, PhaseAwaitingRunning, PhaseStreaming, PhaseStreaming, PhaseTerminated}, phases)
}

func TestSession_SnapshotsAreCopies(t *testing.T) {
	s := newSession(testContext(), nil)
	s.assignJob("job_1")
	before := s.Snapshot()

	s.setStatus(&api.JobStatus{JobId: "job_1", State: api.JobStateRunning})
	s.startStreaming()
	s.appendOutput(&api.OutputData{OperatorId: "sink_2", Value: "a"})

	ignoreID := cmpopts.IgnoreFields(Snapshot{}, "ID")
	expectedBefore := Snapshot{JobID: "job_1", Phase: PhaseAwaitingRunning}
	if diff := cmp.Diff(expectedBefore, before, ignoreID, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot changed after later updates (-want +got):\n%s", diff)
	}

	expectedAfter := Snapshot{
		JobID:   "job_1",
		Phase:   PhaseStreaming,
		Status:  &api.JobStatus{JobId: "job_1", State: api.JobStateRunning},
		Outputs: []OutputRecord{{SequenceID: 1, Payload: &api.OutputData{OperatorId: "sink_2", Value: "a"}}},
		Active:  true,
	}
	if diff := cmp.Diff(expectedAfter, s.Snapshot(), ignoreID, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected snapshot (-want +got):\n%s", diff)
	}
}
