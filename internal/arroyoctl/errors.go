package arroyoctl

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jacksonrnewhouse/arroyo/pkg/client"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/pipeline"
)

// Errors prints the operator errors reported by a job.
func (a *App) Errors(jobID string) error {
	operatorErrors := pipeline.OperatorErrors(func() *client.ApiConnectionDetails { return a.Params.ApiConnectionDetails })
	messages, err := operatorErrors(jobID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Fprintf(a.Out, "Job %s reported no errors\n", jobID)
		return nil
	}

	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tOPERATOR\tTASK\tMESSAGE\tDETAILS")
	for _, m := range messages {
		task := "-"
		if m.TaskIndex != nil {
			task = fmt.Sprint(*m.TaskIndex)
		}
		created := time.UnixMicro(m.CreatedAt).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", created, m.OperatorId, task, m.Message, m.Details)
	}
	return w.Flush()
}
