package ctxengine

import (
	"errors"
	"fmt"
)

// DefaultSummaryTag is the tag the summarization model is asked to wrap its
// final summary in when no custom tag is configured.
const DefaultSummaryTag = "summary"

// CompactionConfig holds the resolved per-agent compaction settings.
// Threshold fields use zero to mean "not configured": an unconfigured
// threshold never triggers compaction.
type CompactionConfig struct {
	// Model identifies the model used to produce the summary. Required.
	Model string

	// RetentionWindow is the number of most-recent messages exempt from
	// summarization. Required.
	RetentionWindow int

	// MessageThreshold triggers compaction when the context holds more than
	// this many messages.
	MessageThreshold int

	// TokenThreshold triggers compaction when the estimated token count of
	// the context exceeds this value.
	TokenThreshold int

	// TurnThreshold triggers compaction when the context holds more than
	// this many user turns.
	TurnThreshold int

	// MaxTokens caps the length of the synthesized summary message. The
	// summary is prefix-truncated to fit. Zero means uncapped.
	MaxTokens int

	// Prompt is a custom summarization prompt template. It may reference
	// {{.Conversation}} and {{.Tag}}. Empty selects the default template.
	Prompt string

	// SummaryTag is the tag name used to extract the summary text out of the
	// model's raw response. Empty selects DefaultSummaryTag.
	SummaryTag string
}

// Validate checks the contract the compaction engine relies on. Callers are
// expected to hand the engine fully resolved configuration; a violation here
// is a programming error, not a runtime condition to retry.
func (c CompactionConfig) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("ctxengine: compaction model is required"))
	}
	if c.RetentionWindow <= 0 {
		errs = append(errs, errors.New("ctxengine: retention_window must be positive"))
	}
	for name, v := range map[string]int{
		"message_threshold": c.MessageThreshold,
		"token_threshold":   c.TokenThreshold,
		"turn_threshold":    c.TurnThreshold,
		"max_tokens":        c.MaxTokens,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("ctxengine: %s must be non-negative", name))
		}
	}
	return errors.Join(errs...)
}

// withDefaults returns a copy of c with the summary tag defaulted. Thresholds
// are deliberately not defaulted: absent means disabled.
func (c CompactionConfig) withDefaults() CompactionConfig {
	if c.SummaryTag == "" {
		c.SummaryTag = DefaultSummaryTag
	}
	return c
}
