package arroyoctl

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

// Preview runs the query as a preview job and prints its outputs as they
// arrive. It returns when the job ends. Once ctx is done the preview job is
// stopped and Preview returns after the stop has landed; if ctx is done before
// the job was launched the launch is abandoned.
func (a *App) Preview(ctx context.Context, query string, udfs string) error {
	return a.withEditor(func(editorCtx *consolecontext.Context, editor *console.Editor) error {
		if err := applyText(editor, query, udfs); err != nil {
			return err
		}

		printer := &outputPrinter{app: a}
		editor.Orchestrator().Observe(printer.print)

		session, err := editor.Preview(consolecontext.New(ctx, editorCtx.Log))
		if err != nil {
			if ctx.Err() != nil {
				return errors.New("preview cancelled")
			}
			return errors.New(console.UserMessage(err))
		}
		fmt.Fprintf(a.Out, "Preview job %s launched\n", session.JobID())

		select {
		case <-session.Done():
		case <-ctx.Done():
			fmt.Fprintf(a.Out, "Stopping preview job %s\n", session.JobID())
			if err := editor.StopPreview(editorCtx); err != nil {
				return errors.New(console.UserMessage(err))
			}
		}

		snapshot := session.Snapshot()
		fmt.Fprintf(a.Out, "Preview ended: %s, %d output(s) received\n", snapshot.Reason, printer.count())
		if snapshot.Err != nil {
			return errors.New(console.UserMessage(snapshot.Err))
		}
		return nil
	})
}

// outputPrinter writes every record and job state once, in the order the
// session produced them.
type outputPrinter struct {
	app *App

	mu        sync.Mutex
	lastID    uint64
	lastState api.JobState
}

func (p *outputPrinter) print(snapshot console.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if state := snapshot.State(); state != "" && state != p.lastState {
		fmt.Fprintf(p.app.Out, "Job %s is %s\n", snapshot.JobID, state)
		p.lastState = state
	}
	for _, record := range snapshot.Outputs {
		if record.SequenceID <= p.lastID {
			continue
		}
		fmt.Fprintf(p.app.Out, "%d\t%s\t%s\n", record.SequenceID, record.Payload.OperatorId, record.Payload.Value)
		p.lastID = record.SequenceID
	}
}

func (p *outputPrinter) count() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastID
}
