package config

import (
	"errors"
	"fmt"

	ctxengine "github.com/ctxkit/ctxkit/internal/context"
)

// ErrUnknownAgent is wrapped by ResolveCompaction when the agent ID does not
// exist in the workflow.
var ErrUnknownAgent = errors.New("config: unknown agent")

// ResolveCompaction computes the effective compaction settings for one agent:
// each field of the agent's compact block falls back to the workflow-level
// block when absent. The second return value reports whether compaction is
// enabled at all — false when neither level carries a compact block.
func ResolveCompaction(wf *Workflow, agentID string) (ctxengine.CompactionConfig, bool, error) {
	agent, ok := wf.Agents[agentID]
	if !ok {
		return ctxengine.CompactionConfig{}, false, fmt.Errorf("%w: %q", ErrUnknownAgent, agentID)
	}

	if agent.Compact == nil && wf.Compact == nil {
		return ctxengine.CompactionConfig{}, false, nil
	}

	merged := mergeCompact(agent.Compact, wf.Compact)
	cfg := ctxengine.CompactionConfig{
		Model:            merged.Model,
		RetentionWindow:  intOrZero(merged.RetentionWindow),
		MessageThreshold: intOrZero(merged.MessageThreshold),
		TokenThreshold:   intOrZero(merged.TokenThreshold),
		TurnThreshold:    intOrZero(merged.TurnThreshold),
		MaxTokens:        intOrZero(merged.MaxTokens),
		Prompt:           merged.Prompt,
		SummaryTag:       merged.SummaryTag,
	}

	if err := cfg.Validate(); err != nil {
		return ctxengine.CompactionConfig{}, false, fmt.Errorf("config: agent %q: %w", agentID, err)
	}
	return cfg, true, nil
}

// mergeCompact overlays the agent block on the workflow defaults, field by
// field. Either argument may be nil.
func mergeCompact(agent, defaults *CompactBlock) CompactBlock {
	var merged CompactBlock
	if defaults != nil {
		merged = *defaults
	}
	if agent == nil {
		return merged
	}

	if agent.Model != "" {
		merged.Model = agent.Model
	}
	if agent.RetentionWindow != nil {
		merged.RetentionWindow = agent.RetentionWindow
	}
	if agent.MessageThreshold != nil {
		merged.MessageThreshold = agent.MessageThreshold
	}
	if agent.TokenThreshold != nil {
		merged.TokenThreshold = agent.TokenThreshold
	}
	if agent.TurnThreshold != nil {
		merged.TurnThreshold = agent.TurnThreshold
	}
	if agent.MaxTokens != nil {
		merged.MaxTokens = agent.MaxTokens
	}
	if agent.Prompt != "" {
		merged.Prompt = agent.Prompt
	}
	if agent.SummaryTag != "" {
		merged.SummaryTag = agent.SummaryTag
	}
	return merged
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
