// Package config defines the YAML workflow schema the context pipeline is
// configured from, with environment variable expansion, per-agent resolution,
// and structural validation.
package config

// Workflow is the top-level configuration structure. Workflow-level compact
// settings act as defaults that every agent inherits field by field.
type Workflow struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Compact holds workflow-level compaction defaults.
	Compact *CompactBlock `yaml:"compact,omitempty"`

	// Agents maps agent IDs to their configuration.
	Agents map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig is the per-agent configuration.
type AgentConfig struct {
	// Model is the model the agent itself converses with. Informational for
	// the pipeline; the compaction model is configured separately.
	Model string `yaml:"model,omitempty"`

	// Compact holds the agent's compaction settings. A nil block with no
	// workflow-level defaults means compaction is disabled for the agent.
	Compact *CompactBlock `yaml:"compact,omitempty"`
}

// CompactBlock describes the compaction knobs for an agent or a workflow.
// Pointer fields distinguish "absent" (inherit) from an explicit zero.
type CompactBlock struct {
	// Model identifies the model used to produce summaries.
	Model string `yaml:"model,omitempty"`

	// RetentionWindow is the count of most-recent messages exempt from
	// summarization.
	RetentionWindow *int `yaml:"retention_window,omitempty"`

	// MessageThreshold triggers compaction on message count.
	MessageThreshold *int `yaml:"message_threshold,omitempty"`

	// TokenThreshold triggers compaction on estimated token count.
	TokenThreshold *int `yaml:"token_threshold,omitempty"`

	// TurnThreshold triggers compaction on user turn count.
	TurnThreshold *int `yaml:"turn_threshold,omitempty"`

	// MaxTokens caps the retained summary length after compaction.
	MaxTokens *int `yaml:"max_tokens,omitempty"`

	// Prompt is a custom summarization prompt template.
	Prompt string `yaml:"prompt,omitempty"`

	// SummaryTag is the tag name used to extract the summary from the
	// model's response.
	SummaryTag string `yaml:"summary_tag,omitempty"`
}
