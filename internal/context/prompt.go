package ctxengine

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// defaultPrompt is the built-in summarization prompt. It has two substitution
// points: the serialized conversation and the tag the response must wrap the
// final summary in.
const defaultPrompt = `You are compacting the history of an agent conversation so it can continue
within a limited context window.

Analyze the conversation below and write:

1. Objective: what the user is trying to accomplish.
2. Progress: what has been done so far, in chronological order.
3. Key facts and decisions: identifiers, file paths, constraints, and
   conclusions that must survive compaction.
4. Open items: unresolved questions and pending work.

Then emit the complete summary wrapped in <{{.Tag}}> and </{{.Tag}}> tags.
Only the content inside the tags is kept.

<conversation>
{{.Conversation}}
</conversation>`

// promptData carries the substitution values for a summarization prompt.
type promptData struct {
	Conversation string
	Tag          string
}

// renderPrompt executes the configured (or default) template against the
// serialized head of the context.
func renderPrompt(tmplText string, history chat.Context, tag string) (string, error) {
	if tmplText == "" {
		tmplText = defaultPrompt
	}
	tmpl, err := template.New("compact").Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("ctxengine: parse compaction prompt: %w", err)
	}
	var b strings.Builder
	err = tmpl.Execute(&b, promptData{Conversation: renderMessages(history), Tag: tag})
	if err != nil {
		return "", fmt.Errorf("ctxengine: render compaction prompt: %w", err)
	}
	return b.String(), nil
}

// renderMessages serializes a context into a plain-text transcript for the
// summarization model.
func renderMessages(history chat.Context) string {
	var b strings.Builder
	for i, m := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Type {
		case chat.MessageText:
			b.WriteString(string(m.Role))
			b.WriteString(": ")
			b.WriteString(m.Content)
		case chat.MessageImage:
			fmt.Fprintf(&b, "[image: %s]", m.URL)
		case chat.MessageTool:
			fmt.Fprintf(&b, "tool %s (%s)", m.ToolName, m.CallID)
			if m.Output != nil {
				if m.Output.IsError {
					b.WriteString(" [error]")
				}
				if text := m.Output.Text(); text != "" {
					b.WriteString(":\n")
					b.WriteString(text)
				}
			}
		}
	}
	return b.String()
}

// extractTagged returns the text between the first well-formed open/close
// pair of the given tag, case-sensitively. When the pair is absent the full
// response is returned as-is with found=false: a model that ignored the tag
// instruction still produced a usable summary.
func extractTagged(response, tag string) (text string, found bool) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(response, open)
	if start < 0 {
		return response, false
	}
	rest := response[start+len(open):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return response, false
	}
	return strings.TrimSpace(rest[:end]), true
}

// truncateToTokens prefix-truncates text so its estimated token count does
// not exceed maxTokens. Truncation never splits a UTF-8 rune.
func truncateToTokens(estimator TokenEstimator, text string, maxTokens int) string {
	total := estimator.Estimate(text)
	if maxTokens <= 0 || total <= maxTokens {
		return text
	}

	// Proportional starting point, then back off until the estimate fits.
	budget := len(text) * maxTokens / total
	for budget > 0 && !utf8.RuneStart(text[budget]) {
		budget--
	}
	for budget > 0 && estimator.Estimate(text[:budget]) > maxTokens {
		budget--
		for budget > 0 && !utf8.RuneStart(text[budget]) {
			budget--
		}
	}
	return text[:budget]
}
