package arroyoctl

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
)

// Check compiles the query and prints its graph, or the compiler's messages.
// Empty query or udfs fall back to the saved drafts.
func (a *App) Check(query string, udfs string) error {
	return a.withEditor(func(ctx *consolecontext.Context, editor *console.Editor) error {
		if err := applyText(editor, query, udfs); err != nil {
			return err
		}
		result, err := editor.Check(ctx)
		if err != nil {
			return errors.New(console.UserMessage(err))
		}

		switch r := result.(type) {
		case console.GraphResult:
			w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
			fmt.Fprintln(w, "NODE\tOPERATOR\tPARALLELISM")
			for _, node := range r.Graph.Nodes {
				fmt.Fprintf(w, "%s\t%s\t%d\n", node.NodeId, node.Operator, node.Parallelism)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, edge := range r.Graph.Edges {
				fmt.Fprintf(a.Out, "%s -> %s\n", edge.SrcId, edge.DestId)
			}
			return nil
		case console.ErrorsResult:
			for _, message := range r.Messages {
				fmt.Fprintln(a.Out, message)
			}
			return errors.Errorf("query failed validation with %d error(s)", len(r.Messages))
		}
		return nil
	})
}
