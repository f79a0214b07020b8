package console

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/fakeapi"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

const testTimeout = 10 * time.Second

func testConfig() Configuration {
	config := Defaults()
	config.PollInterval = 10 * time.Millisecond
	config.StopPollInterval = 5 * time.Millisecond
	config.MaxWait = 5 * time.Second
	config.StopMaxWait = 5 * time.Second
	return config
}

func withFakeApi(t *testing.T, action func(fake *fakeapi.Server, client api.ApiClient)) {
	fake := fakeapi.New()
	proc, err := fakeapi.StartInProcess(fake, api.CodecCBOR)
	require.NoError(t, err)
	defer proc.Close()

	action(fake, proc.Client)
}

func waitForEnd(t *testing.T, session *Session) Snapshot {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	snapshot, err := session.Wait(ctx)
	require.NoError(t, err, "session did not terminate, last seen %+v", snapshot)
	return snapshot
}

func waitForActive(t *testing.T, session *Session) {
	require.Eventually(t, func() bool {
		return session.Snapshot().Active
	}, testTimeout, 5*time.Millisecond)
}

func outputs(n int) []*api.OutputData {
	out := make([]*api.OutputData, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &api.OutputData{OperatorId: "sink_2", Timestamp: uint64(i), Value: "row"})
	}
	return out
}

func sequenceIDs(records []OutputRecord) []uint64 {
	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.SequenceID)
	}
	return ids
}

// snapshotRecorder collects every snapshot an observer receives.
type snapshotRecorder struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (r *snapshotRecorder) observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

func (r *snapshotRecorder) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot{}, r.snapshots...)
}

func testContext() *consolecontext.Context {
	return consolecontext.Background()
}

// distinctPhases lists the phases of snapshots in order, collapsing repeats.
func distinctPhases(snapshots []Snapshot) []Phase {
	var phases []Phase
	for _, s := range snapshots {
		if len(phases) == 0 || phases[len(phases)-1] != s.Phase {
			phases = append(phases, s.Phase)
		}
	}
	return phases
}
