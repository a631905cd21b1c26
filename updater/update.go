package updater

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/internal/dcontext"
	"github.com/bootlin/elixir/internal/uuid"
	"github.com/bootlin/elixir/store"
)

// Updater drives the four-stage update pipeline against one DB. Grounded
// on non_gen_update.py's top-level per-tag loop (build_partial_state /
// update_version / apply_partial_state), with stage 2's parallel
// extraction reimplemented over golang.org/x/sync/errgroup — the same
// bounded-worker-pool pattern the teacher already uses in
// registry/storage/tagstore.go's Lookup.
type Updater struct {
	DB      *store.DB
	Collab  collaborator.Collaborator
	Workers int // concurrency limit for stage-2 extraction; <=0 means GOMAXPROCS
	DTSComp bool
}

func (u *Updater) workers() int {
	if u.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return u.Workers
}

// blobWork is one new blob carried from stage 1 into stage 2.
type blobWork struct {
	idx      int
	hash     string
	filename string
	fam      family.Family
}

// Update runs the pipeline for one tag. It is a no-op (returning nil) if
// the tag is already fully indexed (db.Versions has an entry for it) —
// Versions is the sole "fully indexed" signal, matching
// non_gen_update.py's `if not db.vers.exists(tag)` guard.
func (u *Updater) Update(ctx context.Context, tag string) error {
	already, err := u.DB.Versions.Exists(ctx, []byte(tag))
	if err != nil {
		return fmt.Errorf("check existing version %s: %w", tag, err)
	}
	if already {
		return nil
	}

	traceID := uuid.NewString()
	ctx = dcontext.WithTraceID(ctx, traceID)
	ctx = dcontext.WithLogger(ctx, dcontext.GetLoggerWithField(ctx, "update.trace", traceID))
	log := dcontext.GetLogger(ctx)
	log.Infof("updating tag %s", tag)

	start := time.Now()
	defer func() { updateDuration.WithValues(tag).UpdateSince(start) }()

	st, err := buildPartialState(ctx, u.DB, u.Collab, tag)
	if err != nil {
		return fmt.Errorf("build partial state for %s: %w", tag, err)
	}
	log.Infof("tag %s: %d new blobs to extract", tag, len(st.newBlobIdx))

	work := make([]blobWork, 0, len(st.newBlobIdx))
	for _, idx := range st.newBlobIdx {
		b := st.idxToBlob[idx]
		work = append(work, blobWork{idx: idx, hash: b.Hash, filename: b.Filename, fam: family.Of(b.Filename)})
	}

	merge := newMergeState(u.DB)

	if err := u.runDefsStage(ctx, merge, work); err != nil {
		return fmt.Errorf("defs stage for %s: %w", tag, err)
	}
	if err := u.runDocsStage(ctx, merge, work); err != nil {
		return fmt.Errorf("docs stage for %s: %w", tag, err)
	}
	if u.DTSComp {
		if err := u.runCompsStage(ctx, merge, work); err != nil {
			return fmt.Errorf("comps stage for %s: %w", tag, err)
		}
	}
	if err := u.runRefsStage(ctx, merge, work); err != nil {
		return fmt.Errorf("refs stage for %s: %w", tag, err)
	}

	commitCtx := dcontext.DetachedContext(ctx)
	if err := applyPartialState(commitCtx, u.DB, st); err != nil {
		return fmt.Errorf("commit tag %s: %w", tag, err)
	}
	if err := generateDefsCaches(commitCtx, u.DB); err != nil {
		return fmt.Errorf("generate defs caches after %s: %w", tag, err)
	}

	tagsIndexed.Inc(1)
	log.Infof("tag %s fully indexed", tag)
	return nil
}

type defsResult struct {
	work blobWork
	defs map[string][]defOccurrence
}

func (u *Updater) runDefsStage(ctx context.Context, merge *mergeState, work []blobWork) error {
	results := make([]defsResult, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers())
	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			defs, err := getDefs(gctx, u.Collab, w.hash, w.filename, w.fam)
			if err != nil {
				return err
			}
			results[i] = defsResult{work: w, defs: defs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	blobsExtracted.WithValues("defs").Inc(float64(len(work)))
	for _, r := range results {
		for id, occs := range r.defs {
			if err := merge.addDefs(ctx, r.work.idx, r.work.fam, id, occs); err != nil {
				return err
			}
		}
	}
	return nil
}

type docsResult struct {
	work blobWork
	docs map[string][]int
}

func (u *Updater) runDocsStage(ctx context.Context, merge *mergeState, work []blobWork) error {
	results := make([]docsResult, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers())
	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			docs, err := getDocs(gctx, u.Collab, w.hash, w.filename, w.fam)
			if err != nil {
				return err
			}
			results[i] = docsResult{work: w, docs: docs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	blobsExtracted.WithValues("docs").Inc(float64(len(work)))
	for _, r := range results {
		for id, lines := range r.docs {
			if err := merge.addDocs(ctx, r.work.idx, r.work.fam, id, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

type compsResult struct {
	work      blobWork
	comps     map[string][]int
	compsDocs map[string][]int
}

func (u *Updater) runCompsStage(ctx context.Context, merge *mergeState, work []blobWork) error {
	results := make([]compsResult, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers())
	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			comps, err := getComps(gctx, u.Collab, w.hash, w.fam)
			if err != nil {
				return err
			}
			r := compsResult{work: w, comps: comps}
			if w.fam == family.Binding {
				compsDocs, err := getCompsDocs(gctx, u.Collab, w.hash)
				if err != nil {
					return err
				}
				r.compsDocs = compsDocs
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	blobsExtracted.WithValues("comps").Inc(float64(len(work)))
	for _, r := range results {
		for compatible, lines := range r.comps {
			if err := merge.addComps(ctx, r.work.idx, r.work.fam, compatible, lines); err != nil {
				return err
			}
		}
		for compatible, lines := range r.compsDocs {
			if err := merge.addCompsDocs(ctx, r.work.idx, compatible, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

type refsResult struct {
	work blobWork
	refs map[string]refOccurrence
}

func (u *Updater) runRefsStage(ctx context.Context, merge *mergeState, work []blobWork) error {
	results := make([]refsResult, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers())
	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			refs, err := getRefs(gctx, u.Collab, w.hash, w.fam)
			if err != nil {
				return err
			}
			results[i] = refsResult{work: w, refs: refs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	blobsExtracted.WithValues("refs").Inc(float64(len(work)))
	for _, r := range results {
		for id, occ := range r.refs {
			if err := merge.addRefs(ctx, r.work.idx, id, occ); err != nil {
				return err
			}
		}
	}
	return nil
}

// UpdateAll runs Update for every tag the collaborator reports, in the
// order given — the original implementation processes list-tags output in
// order and re-opens a fresh DB handle per tag; since Go holds one long-
// lived *store.DB open for the process lifetime instead, each tag's commit
// still durably syncs before the next tag starts, giving the same
// crash-safety property (an interrupted run leaves every earlier tag fully
// committed and the next tag to retry from scratch).
func (u *Updater) UpdateAll(ctx context.Context) error {
	tags, err := u.Collab.ScriptLines(ctx, "list-tags")
	if err != nil {
		return fmt.Errorf("list-tags: %w", err)
	}
	for _, tag := range tags {
		if err := u.Update(ctx, tag); err != nil {
			return fmt.Errorf("tag %s: %w", tag, err)
		}
		if err := u.DB.Variables.Put(ctx, []byte("latestTag"), []byte(tag)); err != nil {
			return fmt.Errorf("record latest tag %s: %w", tag, err)
		}
	}
	return nil
}
