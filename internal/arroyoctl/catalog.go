package arroyoctl

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

// Sources prints the configured sources and their fields.
func (a *App) Sources() error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tFIELDS")
	for _, source := range catalog.Sources {
		fields := make([]string, 0, len(source.Fields))
		for _, field := range source.Fields {
			fields = append(fields, field.Name+" "+field.Type)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", source.Name, source.Kind, strings.Join(fields, ", "))
	}
	return w.Flush()
}

// Sinks prints the sinks a pipeline can be started with.
func (a *App) Sinks() error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE")
	for _, option := range catalog.Sinks {
		kind := "user"
		if _, ok := option.Selection.(console.BuiltinSink); ok {
			kind = "builtin"
		}
		fmt.Fprintf(w, "%s\t%s\n", option.Name, kind)
	}
	return w.Flush()
}

func (a *App) loadCatalog() (*console.Catalog, error) {
	var catalog *console.Catalog
	err := client.WithApiClient(a.Params.ApiConnectionDetails, func(apiClient api.ApiClient) error {
		var err error
		catalog, err = console.LoadCatalog(consolecontext.Background(), apiClient)
		if err != nil {
			return errors.New(console.UserMessage(err))
		}
		return nil
	})
	return catalog, err
}
