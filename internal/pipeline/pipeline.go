// Package pipeline implements chunked summarization: normalize, split into
// blocks, summarize each block through a conversational endpoint with a
// bounded length-driven retry, then optionally reduce the per-block results
// into one consolidated summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"textdigest/internal/chunk"
	"textdigest/internal/llm"
	"textdigest/internal/session"
	"textdigest/internal/textnorm"
)

const (
	// LengthSlack is the tolerance above the summary budget before a reply
	// triggers a retry.
	LengthSlack = 100

	// DefaultBlockSize is the default block budget in runes.
	DefaultBlockSize = 2000
	// DefaultSummaryBlock is the default per-block summary budget in runes.
	DefaultSummaryBlock = 200
	// DefaultMaxAttempts bounds remote calls per block.
	DefaultMaxAttempts = 3

	// reduceBudgetFactor scales the summary budget for the final reduction
	// pass over the concatenated per-block summaries.
	reduceBudgetFactor = 2

	cacheEntryTTL = time.Hour

	// DefaultSystemPrompt steers the summarization style.
	DefaultSystemPrompt = `You are a careful summarizer.

Rules:
- Keep only the core ideas and critical context (dates, numbers, names).
- Do not enumerate lists or examples - compress them into general statements.
- Neutral tone, no fillers.
- Answer in the same language as the input.`
)

// Options is the resolved configuration of a pipeline run. All options are
// fixed before the run starts; nothing is negotiated mid-flight.
type Options struct {
	// BlockSize is the block budget in runes (nch).
	BlockSize int
	// SummaryBlock is the target summary length per block in runes.
	SummaryBlock int
	// Model identifies the remote model.
	Model string
	// Temperature is passed through to the endpoint, range 0-1.
	Temperature float64
	// MaxAttempts bounds remote calls per block. Minimum 1.
	MaxAttempts int
	// Reduce enables the final consolidation pass over multiple blocks.
	Reduce bool
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string
}

func (o Options) withDefaults() Options {
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.SummaryBlock == 0 {
		o.SummaryBlock = DefaultSummaryBlock
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.SystemPrompt == "" {
		o.SystemPrompt = DefaultSystemPrompt
	}

	return o
}

func (o Options) validate() error {
	var errs []error

	if o.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block size must be positive, got %d", o.BlockSize))
	}
	if o.SummaryBlock <= 0 {
		errs = append(errs, fmt.Errorf("summary block must be positive, got %d", o.SummaryBlock))
	}
	if o.BlockSize > 0 && o.SummaryBlock > o.BlockSize {
		errs = append(errs, fmt.Errorf(
			"summary block must not exceed block size (%d > %d)",
			o.SummaryBlock,
			o.BlockSize,
		))
	}
	if o.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be at least 1, got %d", o.MaxAttempts))
	}
	if o.Temperature < 0 || o.Temperature > 1 {
		errs = append(errs, fmt.Errorf("temperature must be within [0, 1], got %g", o.Temperature))
	}

	return errors.Join(errs...)
}

// Result carries the outcome of a run in block order.
type Result struct {
	// Blocks are the input blocks after normalization and splitting.
	Blocks []string
	// Summaries are the per-block results, one per block, in block order.
	Summaries []string
	// Reduced is the consolidated summary; empty unless reduction ran.
	Reduced string
	// RemoteCalls counts outbound calls issued during the run.
	RemoteCalls int
}

// Text returns the consolidated summary if present, otherwise the per-block
// summaries joined with a single space.
func (r *Result) Text() string {
	if r.Reduced != "" {
		return r.Reduced
	}

	return strings.Join(r.Summaries, " ")
}

// Pipeline drives the chunked summarization rounds. Blocks are processed
// strictly in order, one remote call at a time.
type Pipeline struct {
	client llm.Client
	log    *slog.Logger
}

// New builds a pipeline on top of a remote client.
func New(client llm.Client, log *slog.Logger) *Pipeline {
	return &Pipeline{client: client, log: log}
}

// Run normalizes and summarizes the given text parts inside a fresh session.
func (p *Pipeline) Run(
	ctx context.Context,
	opts Options,
	parts ...string,
) (*Result, error) {
	opts = opts.withDefaults()

	return p.RunWithSession(ctx, session.New(opts.SystemPrompt), opts, parts...)
}

// RunWithSession is Run with a caller-owned session, so history and the
// optional summary cache survive across runs. The session must not be used
// concurrently. A failed block fails the whole run; summaries of earlier
// blocks are not returned.
func (p *Pipeline) RunWithSession(
	ctx context.Context,
	sess *session.Session,
	opts Options,
	parts ...string,
) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}

	text := textnorm.Normalize(parts...)
	if text == "" {
		return nil, errors.New("normalized text is empty")
	}

	blocks, err := chunk.Split(text, opts.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	result := &Result{Blocks: blocks}
	for i, block := range blocks {
		summary, calls, roundErr := p.round(ctx, sess, block, opts.SummaryBlock, opts)
		if roundErr != nil {
			return nil, fmt.Errorf("summarize block %d of %d: %w", i+1, len(blocks), roundErr)
		}

		result.Summaries = append(result.Summaries, summary)
		result.RemoteCalls += calls

		p.log.DebugContext(ctx, "Block is summarized",
			"block", i+1,
			"blocks", len(blocks),
			"blockSize", humanize.Bytes(uint64(len(block))),
			"summarySize", humanize.Bytes(uint64(len(summary))),
			"calls", calls)
	}

	if opts.Reduce && len(result.Summaries) > 1 {
		joined := strings.Join(result.Summaries, " ")

		reduced, calls, reduceErr := p.round(
			ctx,
			sess,
			joined,
			opts.SummaryBlock*reduceBudgetFactor,
			opts,
		)
		if reduceErr != nil {
			return nil, fmt.Errorf("reduce summaries: %w", reduceErr)
		}

		result.Reduced = reduced
		result.RemoteCalls += calls

		p.log.DebugContext(ctx, "Summaries are reduced",
			"blocks", len(blocks),
			"reducedSize", humanize.Bytes(uint64(len(reduced))),
			"calls", calls)
	}

	return result, nil
}

// round runs one per-block exchange: append the user instruction, call the
// endpoint with the whole history, record the reply and prune the session so
// only the system entry and the latest reply persist. A reply of budget +
// LengthSlack runes or more is retried immediately, up to MaxAttempts calls;
// the final reply is accepted regardless of length. Transport errors are
// never retried.
func (p *Pipeline) round(
	ctx context.Context,
	sess *session.Session,
	block string,
	budget int,
	opts Options,
) (string, int, error) {
	instruction := fmt.Sprintf(
		"Summarize the following text in about %d characters:\n\n%s",
		budget,
		block,
	)

	cacheKey := session.CacheKey(instruction, block)
	if cached, ok := sess.Cache().Get(cacheKey, time.Now()); ok {
		return cached, 0, nil
	}

	sess.AppendUser(instruction)

	var reply string
	calls := 0
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		var err error
		reply, err = p.client.Send(ctx, sess.Messages(), opts.Model, opts.Temperature)
		calls++
		if err != nil {
			sess.Prune()

			return "", calls, err
		}

		length := utf8.RuneCountInString(reply)
		if length < budget+LengthSlack {
			break
		}

		p.log.DebugContext(ctx, "Summary exceeds budget",
			"attempt", attempt,
			"maxAttempts", opts.MaxAttempts,
			"length", length,
			"budget", budget,
			"slack", LengthSlack)
	}

	sess.AppendAssistant(reply)
	sess.Prune()

	now := time.Now()
	sess.Cache().Set(cacheKey, reply, now.Add(cacheEntryTTL), now)

	return reply, calls, nil
}
