package main

// Asynchronous highlighting. The editor queues a job with an immutable text
// snapshot whenever a buffer changes. A single worker goroutine owns the set of
// in-flight jobs, cancels the previous job of a window when a newer one
// arrives and runs every job in its own goroutine. Results travel back on a
// channel and are applied by the main loop only when they are still current.

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrConfiguration reports a tokenizer that cannot be built for a language.
var ErrConfiguration = errors.New("highlight: invalid tokenizer configuration")

// TokenRange is a highlighted span of bytes.
type TokenRange struct {
	Start int    // Byte offset.
	Len   int    // Length in bytes.
	Kind  string // Token kind, e.g. "keyword".
}

// HighlightJob asks for the tokens of one window at one point in time.
type HighlightJob struct {
	ID       uuid.UUID
	WindowID int
	Seq      uint64  // Window sequence number at submission.
	Text     *Buffer // Snapshot; never edited after submission.
	Language *Language
}

// HighlightResult carries the tokens of a finished job, sorted by Start and
// non-overlapping.
type HighlightResult struct {
	WindowID int
	Seq      uint64
	Tokens   []TokenRange
}

type inflightJob struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

type jobDone struct {
	windowID int
	id       uuid.UUID
}

// Highlighter runs highlight jobs in the background.
type Highlighter struct {
	jobs     <-chan HighlightJob
	results  chan<- HighlightResult
	log      *zap.Logger
	inflight map[int]inflightJob // Owned by Run.
	done     chan jobDone
}

// NewHighlighter creates a worker reading jobs and writing results. Job
// lifecycle is logged at debug level; log may be nil.
func NewHighlighter(jobs <-chan HighlightJob, results chan<- HighlightResult, log *zap.Logger) *Highlighter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Highlighter{
		jobs:     jobs,
		results:  results,
		log:      log.Named("Highlight"),
		inflight: make(map[int]inflightJob),
		done:     make(chan jobDone),
	}
}

// Run processes jobs until ctx is canceled or the job channel is closed. All
// in-flight jobs are canceled on return.
func (h *Highlighter) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-h.jobs:
			if !ok {
				return
			}
			h.start(ctx, job)
		case d := <-h.done:
			if cur, ok := h.inflight[d.windowID]; ok && cur.id == d.id {
				delete(h.inflight, d.windowID)
			}
		}
	}
}

func (h *Highlighter) start(ctx context.Context, job HighlightJob) {
	if prev, ok := h.inflight[job.WindowID]; ok {
		prev.cancel()
		h.log.Debug("canceled job", zap.Stringer("job", prev.id), zap.Int("window", job.WindowID))
	}

	log := h.log.With(zap.Stringer("job", job.ID), zap.Int("window", job.WindowID), zap.Uint64("seq", job.Seq))
	jobCtx, cancel := context.WithCancel(ctx)
	h.inflight[job.WindowID] = inflightJob{id: job.ID, cancel: cancel}
	log.Debug("started job")

	go func() {
		defer cancel()

		tokens, err := highlightText(jobCtx, job.Text, job.Language)
		switch {
		case err == nil && jobCtx.Err() == nil:
			select {
			case h.results <- HighlightResult{WindowID: job.WindowID, Seq: job.Seq, Tokens: tokens}:
				log.Debug("finished job", zap.Int("tokens", len(tokens)))
			case <-jobCtx.Done():
			}
		case err != nil && !errors.Is(err, ErrConfiguration) && !errors.Is(err, context.Canceled):
			log.Debug("job failed", zap.Error(err))
		}

		select {
		case h.done <- jobDone{windowID: job.WindowID, id: job.ID}:
		case <-ctx.Done():
		}
	}()
}

// highlightText tokenizes a snapshot and returns sorted token ranges.
func highlightText(ctx context.Context, text *Buffer, lang *Language) ([]TokenRange, error) {
	tk, err := newTokenizer(lang)
	if err != nil {
		return nil, err
	}
	events, err := tk.events(ctx, text.Bytes())
	if err != nil {
		return nil, err
	}
	tokens, err := flattenEvents(ctx, events)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tokens, func(a, b TokenRange) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return tokens, nil
}

// TokenAt finds the token containing the byte offset off.
func TokenAt(tokens []TokenRange, off int) (TokenRange, bool) {
	i, found := slices.BinarySearchFunc(tokens, off, func(t TokenRange, off int) int {
		switch {
		case t.Start+t.Len <= off:
			return -1
		case t.Start > off:
			return 1
		}
		return 0
	})
	if !found {
		return TokenRange{}, false
	}
	return tokens[i], true
}
