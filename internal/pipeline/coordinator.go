package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/filerecon/recon/internal/classify"
	"github.com/filerecon/recon/internal/discovery"
	"github.com/filerecon/recon/internal/enrich/match"
	"github.com/filerecon/recon/internal/enrich/process"
	"github.com/filerecon/recon/internal/metadata"
	"github.com/filerecon/recon/internal/store"
)

// ModeFlags captures the -u/-d/-a/-m flag combination that selects which of
// the coordinator's four stages run, per spec.md §4.6.
type ModeFlags struct {
	Update bool
	Delete bool
	All    bool
	InMem  bool
}

// Coordinator stages the walker -> base-row insertion -> selection query ->
// processor/matcher execution -> update-back-to-store pipeline (spec.md
// §4.6). It owns concurrency, a shared EnrichmentPlan, and resumability.
type Coordinator struct {
	Store       *store.Store
	Classes     classify.Classes
	Plan        *EnrichmentPlan
	Yara        *match.YaraMatcher
	Concurrency int
	Logger      *slog.Logger

	// OnProgress, if set, is called after every base-row insert and after
	// every enrichment update, for internal/render's progress bar.
	OnProgress func(stage string, done, total int)
}

// NewCoordinator builds a Coordinator. concurrency <= 0 defaults to
// runtime.NumCPU(), matching spec.md §5.
func NewCoordinator(st *store.Store, classes classify.Classes, plan *EnrichmentPlan, concurrency int) (*Coordinator, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	c := &Coordinator{
		Store:       st,
		Classes:     classes,
		Plan:        plan,
		Concurrency: concurrency,
		Logger:      slog.Default().With("component", "coordinator"),
	}

	if plan.YaraEnabled {
		ym, err := match.NewYaraMatcher(plan.YaraRuleSource)
		if err != nil {
			return nil, NewConfigError("compiling yara rules", err)
		}
		c.Yara = ym
	}

	return c, nil
}

// Run drives the full pipeline for one invocation: it decides which of the
// four stages to run based on mode and the store's current state, then runs
// them in order, and finally executes finalQuery (stage 4) and returns its
// result.
func (c *Coordinator) Run(ctx context.Context, root, selectionQuery, finalQuery string, mode ModeFlags) (*store.QueryResult, error) {
	runStages123 := mode.Update || mode.InMem
	if !runStages123 {
		hasRows, err := c.Store.HasRows(ctx)
		if err != nil {
			return nil, NewError("checking store state", err)
		}
		runStages123 = !hasRows
	}

	if runStages123 {
		walkResult, err := c.walkAndInsert(ctx, root, mode.All)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("walk complete", "found", walkResult.TotalFound, "skipped", walkResult.TotalSkipped)

		ids, err := c.Store.SelectCandidateIDs(ctx, selectionQuery, !mode.Delete)
		if err != nil {
			return nil, NewError("running selection query", err)
		}
		c.Logger.Info("selection complete", "candidates", len(ids))

		if err := c.enrich(ctx, ids); err != nil {
			return nil, err
		}
	}

	result, err := c.Store.Query(ctx, finalQuery)
	if err != nil {
		return nil, NewError("running final query", err)
	}
	return result, nil
}

// walkAndInsert is stage 1: Walk + Base Insert. The walker's single
// producer feeds metadata.Extract + classify.Classes.Classify + a single
// serialized store writer, matching spec.md §5's stage shape (one writer
// goroutine, no lock contention on the embedded store).
func (c *Coordinator) walkAndInsert(ctx context.Context, root string, all bool) (*discovery.Result, error) {
	w := discovery.NewWalker()

	// The ignore chain is always built -- is_ignored classification needs
	// it regardless of mode -- but only wired into WalkerConfig (and so
	// only used to actually filter entries) when all is false. Under -a,
	// the walker visits ignored entries too, so is_ignored can report what
	// would have been filtered under the default mode (SPEC_FULL.md §4.3).
	gm, err := discovery.NewGitignoreMatcher(root)
	if err != nil {
		return nil, NewError("loading gitignore files", err)
	}
	defaultIgnorer := discovery.NewDefaultIgnoreMatcher()

	cfg := discovery.WalkerConfig{Root: root}
	if !all {
		cfg.GitignoreMatcher = gm
		cfg.DefaultIgnorer = defaultIgnorer
	}

	now := time.Now()
	inserted := 0

	result, err := w.Walk(ctx, cfg, func(entry metadata.Entry) error {
		row, err := metadata.Extract(entry)
		if err != nil {
			c.Logger.Warn("extraction error", "path", entry.Path, "error", err)
			return nil
		}

		classResult := c.Classes.Classify(row.Ext)
		row.IsArchive = classResult.IsArchive
		row.IsDocument = classResult.IsDocument
		row.IsMedia = classResult.IsMedia
		row.IsCode = classResult.IsCode

		row.IsIgnored = defaultIgnorer.IsIgnored(entry.Path, row.IsDir) || gm.IsIgnored(entry.Path, row.IsDir)

		if _, err := c.Store.UpsertBase(ctx, row, now); err != nil {
			return fmt.Errorf("inserting base row for %s: %w", entry.Path, err)
		}
		inserted++
		if c.OnProgress != nil {
			c.OnProgress("walk", inserted, 0)
		}
		return nil
	})
	if err != nil {
		return nil, NewError("walking", err)
	}
	return result, nil
}

// enrich is stage 3: for each candidate, open the file once, fan the byte
// stream through every enabled processor/matcher, and write the combined
// update back. A bounded errgroup pool drives concurrency (spec.md §5);
// store writes are still one-at-a-time since *store.Store serializes
// through a single *sql.DB connection.
func (c *Coordinator) enrich(ctx context.Context, ids []int64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	total := len(ids)
	done := 0

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := c.enrichOne(gctx, id); err != nil {
				c.Logger.Warn("enrichment error", "id", id, "error", err)
			}
			done++
			if c.OnProgress != nil {
				c.OnProgress("enrich", done, total)
			}
			return nil
		})
	}

	return g.Wait()
}

// enrichOne enriches a single candidate. Per-file errors are logged and
// swallowed: computed is still flipped (with content fields left null),
// since spec.md §7 requires the final query to never observe a
// half-enriched row.
func (c *Coordinator) enrichOne(ctx context.Context, id int64) error {
	cand, err := c.Store.GetCandidate(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()

	// path_match is path-only (spec.md §4.5) and never needs content, so it
	// is evaluated independent of NeedsContent() and survives the
	// no-content-needed short-circuit below.
	pathMatch := store.EnrichmentUpdate{}
	if c.Plan.PathMatcher != nil {
		encoded := encodeTokens(c.Plan.PathMatcher.Match(cand.AbsPath).Value())
		pathMatch.PathMatch = &encoded
	}

	if cand.IsDir || cand.IsSymlink || !c.Plan.NeedsContent() {
		return c.Store.UpdateEnrichment(ctx, id, pathMatch, now)
	}

	quickHash, qhErr := store.QuickHash(cand.AbsPath, cand.Size)
	if qhErr == nil && cand.Computed && cand.QuickHash != nil && *cand.QuickHash == quickHash {
		return c.Store.MarkComputedOnly(ctx, id, now)
	}

	update, err := c.runProcessors(cand)
	if err != nil {
		c.Logger.Debug("processor error, leaving content fields null", "path", cand.AbsPath, "error", err)
		update = store.EnrichmentUpdate{}
	}
	update.PathMatch = pathMatch.PathMatch
	if qhErr == nil {
		update.QuickHash = &quickHash
	}

	return c.Store.UpdateEnrichment(ctx, id, update, now)
}

// runProcessors opens cand.AbsPath exactly once and streams it through
// every enabled processor and content-consuming matcher concurrently
// (spec.md §4.4/§9 "streaming fan-out"): the single-read guarantee holds
// regardless of how many processors/matchers are enabled.
func (c *Coordinator) runProcessors(cand *store.Candidate) (store.EnrichmentUpdate, error) {
	f, err := os.Open(cand.AbsPath)
	if err != nil {
		return store.EnrichmentUpdate{}, fmt.Errorf("opening %s: %w", cand.AbsPath, err)
	}
	defer f.Close() //nolint:errcheck

	byteType := process.NewByteTypeProcessor()
	var procs []process.Processor
	procs = append(procs, byteType)

	var magic *process.MagicProcessor
	if c.Plan.FileMagic {
		magic = process.NewMagicProcessor()
		procs = append(procs, magic)
	}
	var crc32p, md5p, sha256p, sha512p *process.DigestProcessor
	if c.Plan.CRC32 {
		crc32p = process.NewCRC32Processor()
		procs = append(procs, crc32p)
	}
	if c.Plan.MD5 {
		md5p = process.NewMD5Processor()
		procs = append(procs, md5p)
	}
	if c.Plan.SHA256 {
		sha256p = process.NewSHA256Processor()
		procs = append(procs, sha256p)
	}
	if c.Plan.SHA512 {
		sha512p = process.NewSHA512Processor()
		procs = append(procs, sha512p)
	}
	var simhashp *process.SimHashProcessor
	if c.Plan.SimHash {
		simhashp = process.NewSimHashProcessor()
		procs = append(procs, simhashp)
	}
	var contentMatchProc *match.ContentMatchProcessor
	if len(c.Plan.ContentMatch) > 0 {
		cmp, err := match.NewContentMatchProcessor(c.Plan.ContentMatch)
		if err != nil {
			return store.EnrichmentUpdate{}, fmt.Errorf("compiling content_match: %w", err)
		}
		contentMatchProc = cmp
		procs = append(procs, cmp)
	}
	var rawBuf *process.RawBufferProcessor
	if c.Plan.YaraEnabled {
		rawBuf = process.NewRawBufferProcessor()
		procs = append(procs, rawBuf)
	}

	if err := process.Stream(f, procs...); err != nil {
		return store.EnrichmentUpdate{}, fmt.Errorf("reading %s: %w", cand.AbsPath, err)
	}

	update := store.EnrichmentUpdate{}

	// byteType always runs (it's needed to decide whether simhash should
	// skip binary content) but bytes_type/is_binary are each only persisted
	// when independently configured (spec.md §4.3 tri-state rule); is_binary
	// is derived from byte_type's output, not a second read.
	byteTypeVal, _ := byteType.Finish()
	byteTypeStr := byteTypeVal.(string)
	isBinary := process.IsBinary(byteTypeStr)
	if c.Plan.ByteType {
		update.BytesType = &byteTypeStr
	}
	if c.Plan.IsBinary {
		update.IsBinary = &isBinary
	}

	if magic != nil {
		if v, err := magic.Finish(); err == nil {
			s := v.(string)
			update.FileMagic = &s
		}
	}
	if crc32p != nil {
		if v, err := crc32p.Finish(); err == nil {
			s := v.(string)
			update.CRC32 = &s
			if dm := c.Plan.DigestMatchers["crc32"]; dm != nil {
				encoded := encodeTokens(dm.Match(s).Value())
				update.CRC32Match = &encoded
			}
		}
	}
	if md5p != nil {
		if v, err := md5p.Finish(); err == nil {
			s := v.(string)
			update.MD5 = &s
			if dm := c.Plan.DigestMatchers["md5"]; dm != nil {
				encoded := encodeTokens(dm.Match(s).Value())
				update.MD5Match = &encoded
			}
		}
	}
	if sha256p != nil {
		if v, err := sha256p.Finish(); err == nil {
			s := v.(string)
			update.SHA256 = &s
			if dm := c.Plan.DigestMatchers["sha256"]; dm != nil {
				encoded := encodeTokens(dm.Match(s).Value())
				update.SHA256Match = &encoded
			}
		}
	}
	if sha512p != nil {
		if v, err := sha512p.Finish(); err == nil {
			s := v.(string)
			update.SHA512 = &s
			if dm := c.Plan.DigestMatchers["sha512"]; dm != nil {
				encoded := encodeTokens(dm.Match(s).Value())
				update.SHA512Match = &encoded
			}
		}
	}
	if simhashp != nil && !isBinary {
		if v, err := simhashp.Finish(); err == nil {
			s := v.(string)
			update.SimHash = &s
			if c.Plan.SimHashMatcher != nil {
				encoded := encodeTokens(c.Plan.SimHashMatcher.Match(s).Value())
				update.SimHashMatch = &encoded
			}
		}
	}
	if contentMatchProc != nil {
		if v, err := contentMatchProc.Finish(); err == nil {
			encoded := encodeTokens(v.(match.Result).Value())
			update.ContentMatch = &encoded
		}
	}
	if rawBuf != nil && c.Yara != nil {
		res, err := c.Yara.Match(rawBuf.Bytes())
		if err != nil {
			c.Logger.Debug("yara scan error", "path", cand.AbsPath, "error", err)
		} else {
			encoded := encodeTokens(res.Value())
			update.YaraMatch = &encoded
		}
	}

	return update, nil
}
