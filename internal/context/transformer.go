// Package ctxengine implements the conversation context pipeline: composable
// transformations that normalize a context for a model provider and keep it
// within size budgets through compaction.
package ctxengine

import (
	"context"
	"fmt"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// Transformer rewrites a conversation context. Implementations must treat
// the input as immutable and return a new context (or the input unchanged);
// any external call they need is an injected dependency.
//
// A transformer may not assume it runs first or last in a pipeline, and must
// tolerate content already normalized by an earlier stage.
type Transformer interface {
	Apply(ctx context.Context, history chat.Context) (chat.Context, error)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(ctx context.Context, history chat.Context) (chat.Context, error)

// Apply implements Transformer.
func (f TransformerFunc) Apply(ctx context.Context, history chat.Context) (chat.Context, error) {
	return f(ctx, history)
}

// Pipeline applies transformers in order: each stage sees the output of the
// previous one. A Pipeline is itself a Transformer, so pipelines nest.
type Pipeline []Transformer

// Apply implements Transformer.
func (p Pipeline) Apply(ctx context.Context, history chat.Context) (chat.Context, error) {
	for i, t := range p {
		var err error
		history, err = t.Apply(ctx, history)
		if err != nil {
			return nil, fmt.Errorf("ctxengine: pipeline stage %d: %w", i, err)
		}
	}
	return history, nil
}
