package console

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

type Phase string

const (
	PhaseIdle            Phase = "Idle"
	PhaseValidating      Phase = "Validating"
	PhaseStarting        Phase = "Starting"
	PhaseAwaitingRunning Phase = "AwaitingRunning"
	PhaseStreaming       Phase = "Streaming"
	PhaseTerminated      Phase = "Terminated"
)

// Reason records why a session reached PhaseTerminated.
type Reason string

const (
	ReasonFinished     Reason = "Finished"
	ReasonStopped      Reason = "Stopped"
	ReasonStreamFailed Reason = "StreamFailed"
	ReasonJobFailed    Reason = "JobFailed"
	ReasonTimedOut     Reason = "TimedOut"
	ReasonSuperseded   Reason = "Superseded"
	ReasonCancelled    Reason = "Cancelled"
)

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	ID       string
	JobID    string
	Phase    Phase
	Status   *api.JobStatus
	Outputs  []OutputRecord
	Active   bool
	Stopping bool
	Reason   Reason
	Err      error
}

func (s Snapshot) State() api.JobState {
	return s.Status.GetState()
}

// Busy reports whether the preview control is waiting on the job: a launch
// that has not reached Running yet or a stop in flight.
func (s Snapshot) Busy() bool {
	if s.Stopping {
		return true
	}
	switch s.Phase {
	case PhaseValidating, PhaseStarting, PhaseAwaitingRunning:
		return s.State() != api.JobStateRunning && !s.Active
	}
	return false
}

// Label is the text of the preview control.
func (s Snapshot) Label() string {
	if s.Stopping {
		return "stopping"
	}
	if s.Busy() {
		return s.State().String()
	}
	if s.Active {
		return "Stop preview"
	}
	return "Preview"
}

// Session is a single preview run. Only its orchestrator goroutine and the
// StopController mutate it; everyone else reads Snapshots.
type Session struct {
	ID string

	ctx    *consolecontext.Context
	cancel context.CancelFunc
	// Closed once the session is terminated.
	done chan struct{}
	// Closed once the orchestrator goroutine has returned.
	exited chan struct{}

	// Serializes observer notifications so they arrive in mutation order.
	notifyMu  sync.Mutex
	observers []func(Snapshot)

	mu            sync.Mutex
	jobID         string
	phase         Phase
	status        *api.JobStatus
	outputs       *outputBuffer
	active        bool
	stopRequested bool
	reason        Reason
	err           error
	// Set when the run ended while a stop was in flight.
	runEnded      bool
	pendingReason Reason
	pendingErr    error
}

func newSession(parent *consolecontext.Context, observers []func(Snapshot)) *Session {
	id := uuid.NewString()
	ctx, cancel := consolecontext.WithCancel(consolecontext.WithLogField(parent, "previewSession", id))
	return &Session{
		ID:        id,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
		observers: observers,
		phase:     PhaseIdle,
		outputs:   newOutputBuffer(MaxOutputs, outputsEvictedCounter.Inc),
	}
}

func (s *Session) JobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Done is closed once the session is terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session is terminated or ctx is done.
func (s *Session) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-s.done:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		ID:       s.ID,
		JobID:    s.jobID,
		Phase:    s.phase,
		Outputs:  s.outputs.list(),
		Active:   s.active,
		Stopping: s.stopRequested && s.phase != PhaseTerminated,
		Reason:   s.reason,
		Err:      s.err,
	}
	if s.status != nil {
		status := *s.status
		snapshot.Status = &status
	}
	return snapshot
}

// update applies fn under the session lock and notifies observers when fn
// reports a change. Mutations of a terminated session are dropped, which
// keeps loops of a superseded session from writing into it.
func (s *Session) update(fn func() bool) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.phase == PhaseTerminated || !fn() {
		s.mu.Unlock()
		return false
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, observer := range s.observers {
		observer(snapshot)
	}
	return true
}

func (s *Session) setPhase(phase Phase) {
	s.update(func() bool {
		s.phase = phase
		return true
	})
}

func (s *Session) assignJob(jobID string) bool {
	return s.update(func() bool {
		if s.jobID != "" {
			return false
		}
		s.jobID = jobID
		s.ctx = consolecontext.WithLogField(s.ctx, "jobId", jobID)
		s.phase = PhaseAwaitingRunning
		return true
	})
}

// recordJobID keeps the id of a job launched after the session ended.
func (s *Session) recordJobID(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobID == "" {
		s.jobID = jobID
	}
}

func (s *Session) setStatus(status *api.JobStatus) {
	s.update(func() bool {
		s.status = status
		return true
	})
}

func (s *Session) startStreaming() bool {
	return s.update(func() bool {
		s.phase = PhaseStreaming
		s.active = true
		return true
	})
}

func (s *Session) appendOutput(payload *api.OutputData) {
	s.update(func() bool {
		s.outputs.append(payload)
		return true
	})
	outputsReceivedCounter.Inc()
}

// fail returns the session to Idle after a preview that never launched a job.
func (s *Session) fail(err error) {
	s.update(func() bool {
		s.phase = PhaseIdle
		s.err = err
		return true
	})
	s.close()
}

// finishRun records the end of the orchestrator goroutine. While a stop is in
// flight the StopController owns the transition to Terminated.
func (s *Session) finishRun(reason Reason, err error) {
	var terminated bool
	s.update(func() bool {
		if s.stopRequested {
			s.runEnded = true
			s.pendingReason = reason
			s.pendingErr = err
			return false
		}
		s.terminateLocked(reason, err)
		terminated = true
		return true
	})
	if terminated {
		s.close()
	}
}

func (s *Session) requestStop() bool {
	return s.update(func() bool {
		if s.stopRequested || s.jobID == "" {
			return false
		}
		s.stopRequested = true
		return true
	})
}

// confirmStopped deactivates the session after the job was seen Stopped.
func (s *Session) confirmStopped() bool {
	terminated := s.update(func() bool {
		s.terminateLocked(ReasonStopped, nil)
		return true
	})
	if terminated {
		s.close()
	}
	return terminated
}

// abortStop withdraws a stop that did not complete. If the run ended in the
// meantime its outcome is applied now.
func (s *Session) abortStop() {
	var terminated bool
	s.update(func() bool {
		s.stopRequested = false
		if s.runEnded {
			s.terminateLocked(s.pendingReason, s.pendingErr)
			terminated = true
		}
		return true
	})
	if terminated {
		s.close()
	}
}

// terminate ends the session with reason unless it already ended.
func (s *Session) terminate(reason Reason) {
	if s.update(func() bool {
		s.terminateLocked(reason, nil)
		return true
	}) {
		s.close()
	}
}

func (s *Session) terminateLocked(reason Reason, err error) {
	s.phase = PhaseTerminated
	s.active = false
	s.reason = reason
	if err != nil {
		s.err = err
	}
	previewTerminationsCounter.WithLabelValues(string(reason)).Inc()
}

// close releases the session context, which ends its polling loops and
// output subscription, and wakes Wait callers.
func (s *Session) close() {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Session) context() *consolecontext.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}
