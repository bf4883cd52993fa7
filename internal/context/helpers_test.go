package ctxengine_test

import (
	"context"
	"fmt"

	ctxengine "github.com/ctxkit/ctxkit/internal/context"
	"github.com/ctxkit/ctxkit/pkg/chat"
)

// mockSummarizer records calls and returns a canned response or error.
type mockSummarizer struct {
	result     string
	err        error
	calls      int
	lastPrompt string
	lastModel  string
}

func (m *mockSummarizer) Summarize(_ context.Context, prompt, model string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastModel = model
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

// makeTextMessages builds n text messages alternating user/assistant,
// starting with user.
func makeTextMessages(n int) chat.Context {
	history := make(chat.Context, 0, n)
	for i := 0; i < n; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		history = append(history, chat.NewTextMessage(role, fmt.Sprintf("message %d", i)))
	}
	return history
}

func validConfig() ctxengine.CompactionConfig {
	return ctxengine.CompactionConfig{
		Model:           "summarizer-model",
		RetentionWindow: 5,
	}
}
