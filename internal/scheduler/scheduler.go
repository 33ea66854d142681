// Package scheduler runs the clipboard watcher: on a cron spec it reads the
// clipboard and, when the content changed, pushes it through the
// summarization pipeline.
package scheduler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"textdigest/internal/clipboard"
	"textdigest/internal/pipeline"
	"textdigest/internal/session"
)

const tickTimeout = 2 * time.Minute

// Watcher polls the clipboard on a cron spec and summarizes new content.
// Ticks are strictly sequential; a tick is skipped while a run is in flight.
type Watcher struct {
	ctx      context.Context
	cron     *cron.Cron
	pipe     *pipeline.Pipeline
	sess     *session.Session
	opts     pipeline.Options
	out      io.Writer
	copyBack bool
	log      *slog.Logger

	lastInput string
	lastWrite string
}

// New builds a watcher. The summary is always written to out; when copyBack
// is set it also replaces the clipboard content.
func New(
	ctx context.Context,
	pipe *pipeline.Pipeline,
	opts pipeline.Options,
	out io.Writer,
	copyBack bool,
	log *slog.Logger,
) *Watcher {
	opts.Reduce = true
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = pipeline.DefaultSystemPrompt
	}

	return &Watcher{
		ctx:  ctx,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		pipe: pipe,
		sess: session.New(opts.SystemPrompt).
			WithCache(session.NewSummaryCache(session.DefaultCacheMaxEntries)),
		opts:     opts,
		out:      out,
		copyBack: copyBack,
		log:      log,
	}
}

// Start schedules clipboard checks on the given cron spec.
func (w *Watcher) Start(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.tick); err != nil {
		return fmt.Errorf("add cron func: %w", err)
	}

	w.cron.Start()

	return nil
}

// Stop stops the cron loop. An in-flight tick finishes on its own.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

func (w *Watcher) tick() {
	ctx, cancel := context.WithTimeout(w.ctx, tickTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		w.log.InfoContext(ctx, "Watcher context is done",
			"error", ctx.Err())
		return
	default:
	}

	text, err := clipboard.Read()
	if err != nil {
		w.log.ErrorContext(ctx, "Failed to read clipboard",
			"error", err)
		return
	}

	if strings.TrimSpace(text) == "" {
		return
	}

	inputHash := contentHash(text)
	if inputHash == w.lastInput || inputHash == w.lastWrite {
		return
	}
	w.lastInput = inputHash

	result, err := w.pipe.RunWithSession(ctx, w.sess, w.opts, text)
	if err != nil {
		w.log.ErrorContext(ctx, "Failed to summarize clipboard content",
			"error", err,
			"inputLength", len(text))
		return
	}

	summary := result.Text()

	if _, err = fmt.Fprintln(w.out, summary); err != nil {
		w.log.ErrorContext(ctx, "Failed to write summary",
			"error", err)
	}

	if w.copyBack {
		if err = clipboard.Write(summary); err != nil {
			w.log.ErrorContext(ctx, "Failed to write clipboard",
				"error", err)
			return
		}

		// Remember what we wrote so the next tick does not summarize it.
		w.lastWrite = contentHash(summary)
	}

	w.log.InfoContext(ctx, "Clipboard content is summarized",
		"blocks", len(result.Blocks),
		"remoteCalls", result.RemoteCalls,
		"summaryLength", len(summary))
}

func contentHash(text string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(text)))

	return hex.EncodeToString(hash[:])
}
