package ctxengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// ErrNoSummarizer indicates a Compactor was constructed without the
// summarization capability it depends on.
var ErrNoSummarizer = errors.New("ctxengine: summarizer is required")

// Summarizer produces a condensed summary from a rendered prompt. The
// concrete implementation is the model-provider transport layer; failures
// from it are treated as recoverable by the compactor.
type Summarizer interface {
	Summarize(ctx context.Context, prompt, model string) (string, error)
}

// SummarizerFunc adapts a plain function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, prompt, model string) (string, error)

// Summarize implements Summarizer.
func (f SummarizerFunc) Summarize(ctx context.Context, prompt, model string) (string, error) {
	return f(ctx, prompt, model)
}

// Compactor replaces the older portion of a context with a generated summary
// when any configured threshold is exceeded. The most recent RetentionWindow
// messages are always preserved verbatim.
//
// Compactor implements Transformer. A failed summarization call never fails
// the pipeline: the pass is skipped and the context flows through unchanged.
type Compactor struct {
	summarizer Summarizer
	estimator  TokenEstimator
	config     CompactionConfig
	logger     *slog.Logger
}

// NewCompactor creates a Compactor. The summarizer is mandatory; a nil
// estimator defaults to a CharEstimator and a nil logger to slog.Default().
// Invalid configuration is rejected up front.
func NewCompactor(summarizer Summarizer, estimator TokenEstimator, cfg CompactionConfig, logger *slog.Logger) (*Compactor, error) {
	if summarizer == nil {
		return nil, ErrNoSummarizer
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ctxengine: invalid compaction config: %w", err)
	}
	if estimator == nil {
		estimator = NewCharEstimator(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Compactor{
		summarizer: summarizer,
		estimator:  estimator,
		config:     cfg.withDefaults(),
		logger:     logger,
	}, nil
}

// ShouldCompact reports whether any configured threshold is exceeded.
// Thresholds combine with OR semantics; an unconfigured threshold never
// triggers.
func (c *Compactor) ShouldCompact(history chat.Context) bool {
	if c.config.MessageThreshold > 0 && len(history) > c.config.MessageThreshold {
		return true
	}
	if c.config.TurnThreshold > 0 && history.UserTurns() > c.config.TurnThreshold {
		return true
	}
	if c.config.TokenThreshold > 0 && EstimateMessages(c.estimator, history) > c.config.TokenThreshold {
		return true
	}
	return false
}

// Apply implements Transformer.
//
// When compaction is due, the context is partitioned into a head (everything
// except the last RetentionWindow messages) and a tail. The head is rendered
// into the summarization prompt, summarized by the configured model, and
// replaced by a single assistant message carrying the extracted summary; the
// tail is appended unchanged.
func (c *Compactor) Apply(ctx context.Context, history chat.Context) (chat.Context, error) {
	if !c.ShouldCompact(history) {
		return history, nil
	}

	retain := c.config.RetentionWindow
	if len(history) <= retain {
		return history, nil
	}
	head := history[:len(history)-retain]
	tail := history[len(history)-retain:]

	prompt, err := renderPrompt(c.config.Prompt, head, c.config.SummaryTag)
	if err != nil {
		// A broken custom template is recoverable the same way a failed
		// summarization call is: deliver the context unsummarized.
		c.logger.Warn("compaction skipped: prompt rendering failed", "error", err)
		return history, nil
	}

	raw, err := c.summarizer.Summarize(ctx, prompt, c.config.Model)
	if err != nil {
		c.logger.Warn("compaction skipped: summarization failed",
			"model", c.config.Model, "error", err)
		return history, nil
	}

	summary, tagged := extractTagged(raw, c.config.SummaryTag)
	if !tagged {
		c.logger.Debug("summary tag absent from response, using full text",
			"tag", c.config.SummaryTag)
	}
	summary = truncateToTokens(c.estimator, summary, c.config.MaxTokens)

	out := make(chat.Context, 0, 1+len(tail))
	out = append(out, chat.NewTextMessage(chat.RoleAssistant, summary))
	out = append(out, tail.Clone()...)

	c.logger.Debug("context compacted",
		"summarized", len(head), "retained", len(tail), "model", c.config.Model)
	return out, nil
}
