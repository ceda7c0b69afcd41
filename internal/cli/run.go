package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filerecon/recon/internal/classify"
	"github.com/filerecon/recon/internal/config"
	"github.com/filerecon/recon/internal/pipeline"
	"github.com/filerecon/recon/internal/render"
	"github.com/filerecon/recon/internal/store"
)

// runRecon is the default (no-subcommand) workflow: load config, open the
// store, build the enrichment plan, drive the coordinator through however
// many of its four stages the mode flags call for, and render the final
// result set in the requested format (spec.md §5/§6).
func runRecon(cmd *cobra.Command, args []string) error {
	fv := flagValues
	cfg, err := config.Load(fv, cmd)
	if err != nil {
		return pipeline.NewError("loading configuration", err)
	}
	if err := config.Validate(cfg); err != nil {
		return pipeline.NewConfigError("invalid configuration", err)
	}

	if fv.Delete {
		if err := store.Delete(cfg.Source.File); err != nil {
			return pipeline.NewError("deleting store", err)
		}
	}

	st, err := store.Open(cfg.Source.File)
	if err != nil {
		return pipeline.NewError("opening store", err)
	}
	defer st.Close() //nolint:errcheck

	classes := buildClasses(cfg.Source.DefaultFields)

	plan, err := pipeline.BuildEnrichmentPlan(cfg.Source.ComputedFields)
	if err != nil {
		return pipeline.NewConfigError("building enrichment plan", err)
	}

	coord, err := pipeline.NewCoordinator(st, classes, plan, fv.Concurrency)
	if err != nil {
		return err
	}

	var progressReporter *render.ProgressReporter
	if !fv.NoProgress {
		progressReporter = render.NewProgressReporter(cmd.ErrOrStderr())
		coord.OnProgress = progressReporter.Update
	}

	mode := pipeline.ModeFlags{
		Update: fv.Update,
		Delete: fv.Delete,
		All:    fv.All,
		InMem:  fv.InMem,
	}

	selectionQuery := cfg.Source.BeforeComputedFieldsQuery
	finalQuery := cfg.Source.Query

	result, err := coord.Run(cmd.Context(), cfg.Source.Root, selectionQuery, finalQuery, mode)
	if progressReporter != nil {
		progressReporter.Done()
	}
	if err != nil {
		return err
	}

	if err := renderResult(cmd, fv, result); err != nil {
		return pipeline.NewError("rendering output", err)
	}

	return applyFailConditions(fv, result)
}

// buildClasses turns source.default_fields into a classify.Classes, with a
// class left unconfigured (and so always nil/null on every row) when its
// key is absent from the map, per the tri-state rule.
func buildClasses(defaultFields map[string][]string) classify.Classes {
	archive, hasArchive := defaultFields["is_archive"]
	document, hasDocument := defaultFields["is_document"]
	media, hasMedia := defaultFields["is_media"]
	code, hasCode := defaultFields["is_code"]

	return classify.Classes{
		Archive:  classify.NewClassSet(hasArchive, archive),
		Document: classify.NewClassSet(hasDocument, document),
		Media:    classify.NewClassSet(hasMedia, media),
		Code:     classify.NewClassSet(hasCode, code),
	}
}

// renderResult dispatches to the output format named by the mutually
// exclusive --json/--csv/--xargs flags, falling back to the styled table.
func renderResult(cmd *cobra.Command, fv *config.FlagValues, result *store.QueryResult) error {
	out := cmd.OutOrStdout()
	switch {
	case fv.JSON:
		return render.JSON(out, result)
	case fv.CSV:
		return render.CSV(out, result)
	case fv.Xargs:
		return render.Xargs(out, result)
	default:
		return render.Table(out, result, !fv.NoStyle)
	}
}

// applyFailConditions implements spec.md §6's --fail-some/--fail-none exit
// code contract (testable scenario S6): --fail-some exits non-zero when
// the final result set has any rows, --fail-none exits non-zero when it
// has none. Both flags cannot be set at once (config.ValidateFlags rejects
// that combination before this ever runs).
func applyFailConditions(fv *config.FlagValues, result *store.QueryResult) error {
	if fv.FailSome && len(result.Rows) > 0 {
		return pipeline.NewResultError(fmt.Sprintf("--fail-some: result set has %d row(s)", len(result.Rows)))
	}
	if fv.FailNone && len(result.Rows) == 0 {
		return pipeline.NewResultError("--fail-none: result set is empty")
	}
	return nil
}
