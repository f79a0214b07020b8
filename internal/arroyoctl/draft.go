package arroyoctl

import (
	"fmt"

	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/pipeline"
)

var draftKeys = []string{draft.QueryKey, draft.UdfKey}

// DraftGet prints the saved drafts.
func (a *App) DraftGet() error {
	repo, err := draft.NewRepository(a.Params.Drafts)
	if err != nil {
		return err
	}
	saved, err := draft.Load(repo)
	if err != nil {
		return err
	}
	if !saved.HasQuery && !saved.HasUdfs {
		fmt.Fprintln(a.Out, "No drafts saved")
		return nil
	}
	if saved.HasQuery {
		fmt.Fprintf(a.Out, "-- %s\n%s\n", draft.QueryKey, saved.Query)
	}
	if saved.HasUdfs {
		fmt.Fprintf(a.Out, "-- %s\n%s\n", draft.UdfKey, saved.Udfs)
	}
	return nil
}

func (a *App) DraftSet(key string, text string) error {
	if err := validateDraftKey(key); err != nil {
		return err
	}
	repo, err := draft.NewRepository(a.Params.Drafts)
	if err != nil {
		return err
	}
	if err := repo.Set(key, text); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Saved %s draft\n", key)
	return nil
}

// DraftClear removes the named drafts, or all of them when no key is given.
func (a *App) DraftClear(keys ...string) error {
	if len(keys) == 0 {
		keys = draftKeys
	}
	for _, key := range keys {
		if err := validateDraftKey(key); err != nil {
			return err
		}
	}
	repo, err := draft.NewRepository(a.Params.Drafts)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := repo.Clear(key); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Cleared %s draft\n", key)
	}
	return nil
}

// DraftCopy saves the definition of an existing pipeline as the drafts.
func (a *App) DraftCopy(pipelineID string) error {
	get := pipeline.Get(func() *client.ApiConnectionDetails { return a.Params.ApiConnectionDetails })
	def, err := get(pipelineID)
	if err != nil {
		return err
	}

	udfs := ""
	if len(def.Udfs) > 0 {
		udfs = def.Udfs[0].Definition
	}

	repo, err := draft.NewRepository(a.Params.Drafts)
	if err != nil {
		return err
	}
	if err := repo.Set(draft.QueryKey, def.Definition); err != nil {
		return err
	}
	if err := repo.Set(draft.UdfKey, udfs); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Copied pipeline %s into the drafts, suggested name %s-copy\n", pipelineID, def.Name)
	return nil
}

func validateDraftKey(key string) error {
	for _, known := range draftKeys {
		if key == known {
			return nil
		}
	}
	return fmt.Errorf("unknown draft %q, must be one of %v", key, draftKeys)
}
