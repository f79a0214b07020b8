package arroyoctl

import (
	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/pipeline"
)

// StartParams are the start command's inputs. A pipeline file, when given,
// supplies the query, udfs and any launch option left unset.
type StartParams struct {
	File                 string
	Name                 string
	Sink                 string
	Query                string
	Udfs                 string
	Parallelism          uint64
	CheckpointIntervalMs uint64
}

// Start checks the query and launches it as a durable pipeline.
func (a *App) Start(params StartParams) error {
	if params.File != "" {
		file, err := pipeline.LoadFile(params.File)
		if err != nil {
			return err
		}
		params = mergeFile(params, file)
	}

	return a.withEditor(func(ctx *consolecontext.Context, editor *console.Editor) error {
		if err := applyText(editor, params.Query, params.Udfs); err != nil {
			return err
		}

		sink := a.Params.DefaultSink
		if params.Sink != "" {
			catalog, err := editor.Catalog(ctx)
			if err != nil {
				return errors.New(console.UserMessage(err))
			}
			selection, ok := catalog.ResolveSink(params.Sink)
			if !ok {
				return errors.Errorf("unknown sink %q, run arroyoctl sinks to list them", params.Sink)
			}
			sink = selection
		}

		opts := console.StartOptions{
			Name:                 params.Name,
			Sink:                 sink,
			Parallelism:          params.Parallelism,
			CheckpointIntervalMs: params.CheckpointIntervalMs,
		}
		if !console.CanStart(opts) {
			return errors.New("a pipeline needs a name and a sink")
		}

		if _, err := editor.Start(ctx, opts); err != nil {
			return errors.New(console.UserMessage(err))
		}
		return nil
	})
}

func mergeFile(params StartParams, file *pipeline.File) StartParams {
	params.Query = file.Query
	params.Udfs = file.Udfs
	if params.Name == "" {
		params.Name = file.Name
	}
	if params.Sink == "" {
		params.Sink = file.Sink
	}
	if params.Parallelism == 0 {
		params.Parallelism = file.Parallelism
	}
	if params.CheckpointIntervalMs == 0 {
		params.CheckpointIntervalMs = file.CheckpointIntervalMs
	}
	return params
}
