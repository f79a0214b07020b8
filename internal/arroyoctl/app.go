// Package arroyoctl contains the logic behind the arroyoctl commands. Every
// command is a method on App that writes its results to App.Out.
package arroyoctl

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

type App struct {
	Params *Params
	Out    io.Writer
}

// Params are read from the command line and the config files before a
// command runs.
type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	Drafts               draft.Configuration
	Console              console.Configuration
	// Sink used by start when none is given on the command line.
	DefaultSink console.SinkSelection
}

func New() *App {
	return &App{
		Params: &Params{Console: console.Defaults()},
		Out:    os.Stdout,
	}
}

// withEditor opens an editor over the saved drafts for the duration of action.
func (a *App) withEditor(action func(ctx *consolecontext.Context, editor *console.Editor) error) error {
	drafts, err := draft.NewRepository(a.Params.Drafts)
	if err != nil {
		return err
	}
	return client.WithApiClient(a.Params.ApiConnectionDetails, func(apiClient api.ApiClient) error {
		ctx := consolecontext.Background()
		editor, err := console.NewEditor(ctx, apiClient, drafts, console.NavigatorFunc(a.printJobLink), a.Params.Console)
		if err != nil {
			return err
		}
		defer editor.Close()
		return action(ctx, editor)
	})
}

func (a *App) printJobLink(jobID string) {
	fmt.Fprintf(a.Out, "Job %s started, see %s\n", jobID, api.JobDetailPath(jobID))
}

// applyText replaces the editor's text with whatever was given on the command line.
func applyText(editor *console.Editor, query string, udfs string) error {
	if query != "" {
		if err := editor.SetQuery(query); err != nil {
			return err
		}
	}
	if udfs != "" {
		if err := editor.SetUdfs(udfs); err != nil {
			return err
		}
	}
	return nil
}
