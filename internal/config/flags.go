package config

import (
	"github.com/spf13/cobra"
)

// FlagValues collects the parsed CLI flag values. Populated by BindFlags,
// consumed by Load (via the posflag koanf provider) and directly by
// internal/cli for flags that control process behavior rather than
// resolved configuration (mode flags, output format, fail conditions).
type FlagValues struct {
	ConfigPath string
	Root       string
	Query      string
	File       string
	Delete     bool
	Update     bool
	All        bool
	InMem      bool
	NoProgress bool
	Xargs      bool
	JSON       bool
	CSV        bool
	NoStyle    bool
	FailSome   bool
	FailNone   bool
	Verbose     bool
	Concurrency int
}

// BindFlags registers every flag from spec.md §6 plus the [EXPANSION]
// --concurrency override on cmd, mirroring the teacher's BindFlags shape:
// a struct of pointers populated as a side effect of cobra parsing, read
// back after PersistentPreRunE runs.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.ConfigPath, "config", "c", "", "path to config file")
	pf.StringVarP(&fv.Root, "root", "r", "", "root directory to walk")
	pf.StringVarP(&fv.Query, "query", "q", "", "final query run against the store")
	pf.StringVarP(&fv.File, "file", "f", "", "store path (':memory:' for in-memory)")
	pf.BoolVarP(&fv.Delete, "delete", "d", false, "drop the store before running")
	pf.BoolVarP(&fv.Update, "update", "u", false, "always run walk/enrich before querying")
	pf.BoolVarP(&fv.All, "all", "a", false, "disable ignore-file consultation")
	pf.BoolVarP(&fv.InMem, "inmem", "m", false, "use an in-memory store (implies -u)")
	pf.BoolVar(&fv.NoProgress, "no-progress", false, "disable the progress bar")
	pf.BoolVar(&fv.Xargs, "xargs", false, "render output as a whitespace-joined token list")
	pf.BoolVar(&fv.JSON, "json", false, "render output as a JSON array")
	pf.BoolVar(&fv.CSV, "csv", false, "render output as CSV")
	pf.BoolVar(&fv.NoStyle, "no-style", false, "disable table styling")
	pf.BoolVar(&fv.FailSome, "fail-some", false, "exit non-zero if the result set is non-empty")
	pf.BoolVar(&fv.FailNone, "fail-none", false, "exit non-zero if the result set is empty")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.IntVar(&fv.Concurrency, "concurrency", 0, "enrichment worker pool size (0 = runtime.NumCPU())")

	return fv
}

// ValidateFlags checks mutually-exclusive flag combinations, matching the
// teacher's ValidateFlags "fatal before any work starts" shape.
func ValidateFlags(fv *FlagValues) error {
	if fv.JSON && fv.CSV {
		return errMutuallyExclusive("--json", "--csv")
	}
	if fv.JSON && fv.Xargs {
		return errMutuallyExclusive("--json", "--xargs")
	}
	if fv.CSV && fv.Xargs {
		return errMutuallyExclusive("--csv", "--xargs")
	}
	if fv.FailSome && fv.FailNone {
		return errMutuallyExclusive("--fail-some", "--fail-none")
	}
	return nil
}

func errMutuallyExclusive(a, b string) error {
	return &flagConflictError{a: a, b: b}
}

type flagConflictError struct{ a, b string }

func (e *flagConflictError) Error() string {
	return e.a + " and " + e.b + " are mutually exclusive"
}
