package console

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

type SinkOption struct {
	Name      string
	Selection SinkSelection
}

// Catalog is what the editor offers next to the query: the configured
// sources, and the sinks a pipeline can be launched with.
type Catalog struct {
	Sources []*api.SourceDef
	// The builtin Web, Log and Null sinks followed by the user's sinks.
	Sinks []SinkOption
}

// LoadCatalog fetches sources and sinks concurrently, giving up after
// common.DefaultRequestTimeout.
func LoadCatalog(ctx *consolecontext.Context, apiClient api.ApiClient) (*Catalog, error) {
	return loadCatalog(ctx, apiClient, common.DefaultRequestTimeout)
}

func loadCatalog(ctx *consolecontext.Context, apiClient api.ApiClient, timeout time.Duration) (*Catalog, error) {
	var sources *api.GetSourcesResp
	var sinks *api.GetSinksResp

	callCtx, cancel := requestContext(ctx, timeout)
	defer cancel()
	g, gctx := consolecontext.ErrGroup(callCtx)
	g.Go(func() error {
		resp, err := apiClient.GetSources(gctx, &api.GetSourcesReq{})
		if err != nil {
			return classifyRemoteError("get sources", err)
		}
		sources = resp
		return nil
	})
	g.Go(func() error {
		resp, err := apiClient.GetSinks(gctx, &api.GetSinksReq{})
		if err != nil {
			return classifyRemoteError("get sinks", err)
		}
		sinks = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	options := make([]SinkOption, 0, len(builtinSinks)+len(sinks.Sinks))
	for _, kind := range builtinSinks {
		options = append(options, SinkOption{Name: string(kind), Selection: BuiltinSink{Kind: kind}})
	}
	for _, sink := range sinks.Sinks {
		options = append(options, SinkOption{Name: sink.Name, Selection: NamedSink{Name: sink.Name}})
	}
	return &Catalog{Sources: sources.Sources, Sinks: options}, nil
}

// ResolveSink finds the option called name. Names are matched exactly.
func (c *Catalog) ResolveSink(name string) (SinkSelection, bool) {
	i := slices.IndexFunc(c.Sinks, func(option SinkOption) bool {
		return option.Name == name
	})
	if i < 0 {
		return nil, false
	}
	return c.Sinks[i].Selection, true
}
