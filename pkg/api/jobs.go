package api

// JobState is the lifecycle state reported by the job controller.
type JobState string

const (
	JobStateCreated            JobState = "Created"
	JobStateCompiling          JobState = "Compiling"
	JobStateScheduling         JobState = "Scheduling"
	JobStateRunning            JobState = "Running"
	JobStateRecovering         JobState = "Recovering"
	JobStateRestarting         JobState = "Restarting"
	JobStateCheckpointStopping JobState = "CheckpointStopping"
	JobStateStopping           JobState = "Stopping"
	JobStateStopped            JobState = "Stopped"
	JobStateFinishing          JobState = "Finishing"
	JobStateFinished           JobState = "Finished"
	JobStateFailed             JobState = "Failed"
)

var allJobStates = []JobState{
	JobStateCreated,
	JobStateCompiling,
	JobStateScheduling,
	JobStateRunning,
	JobStateRecovering,
	JobStateRestarting,
	JobStateCheckpointStopping,
	JobStateStopping,
	JobStateStopped,
	JobStateFinishing,
	JobStateFinished,
	JobStateFailed,
}

func (s JobState) String() string {
	return string(s)
}

// IsTerminal reports whether a job in this state will never run again.
func (s JobState) IsTerminal() bool {
	switch s {
	case JobStateStopped, JobStateFinished, JobStateFailed:
		return true
	}
	return false
}

func (s JobState) IsKnown() bool {
	for _, known := range allJobStates {
		if s == known {
			return true
		}
	}
	return false
}

// JobDetailPath is the console route of a job's detail view.
func JobDetailPath(jobId string) string {
	return "/jobs/" + jobId
}
