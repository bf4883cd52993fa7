package ctxengine

import (
	"strings"
	"testing"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

func TestExtractTagged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		response  string
		tag       string
		want      string
		wantFound bool
	}{
		{
			"well-formed pair",
			"preamble <summary>the gist</summary> trailing",
			"summary", "the gist", true,
		},
		{
			"first pair wins",
			"<summary>one</summary><summary>two</summary>",
			"summary", "one", true,
		},
		{
			"inner whitespace trimmed",
			"<summary>\n  padded \n</summary>",
			"summary", "padded", true,
		},
		{
			"missing tag falls back to full response",
			"no tags here at all",
			"summary", "no tags here at all", false,
		},
		{
			"unclosed tag falls back to full response",
			"<summary>never closed",
			"summary", "<summary>never closed", false,
		},
		{
			"matching is case-sensitive",
			"<Summary>wrong case</Summary>",
			"summary", "<Summary>wrong case</Summary>", false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := extractTagged(tt.response, tt.tag)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("extractTagged = (%q, %v), want (%q, %v)", got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestRenderMessages(t *testing.T) {
	t.Parallel()

	history := chat.Context{
		chat.NewTextMessage(chat.RoleUser, "run the tool"),
		chat.NewToolMessage("shell", "c1", chat.ToolOutput{
			IsError: true,
			Values:  []chat.ContentItem{chat.NewTextItem("command not found")},
		}),
		chat.NewImageMessage("http://img", "image/png"),
	}

	got := renderMessages(history)

	for _, want := range []string{
		"user: run the tool",
		"tool shell (c1) [error]:",
		"command not found",
		"[image: http://img]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
}

func TestRenderPrompt_DefaultTemplate(t *testing.T) {
	t.Parallel()

	history := chat.Context{chat.NewTextMessage(chat.RoleUser, "hello world")}
	got, err := renderPrompt("", history, "summary")
	if err != nil {
		t.Fatalf("renderPrompt: %v", err)
	}
	if !strings.Contains(got, "<summary>") || !strings.Contains(got, "</summary>") {
		t.Errorf("default prompt does not name the wrapping tag:\n%s", got)
	}
	if !strings.Contains(got, "user: hello world") {
		t.Errorf("default prompt does not embed the transcript:\n%s", got)
	}
}

func TestRenderPrompt_BadTemplate(t *testing.T) {
	t.Parallel()

	if _, err := renderPrompt("{{.Broken", nil, "summary"); err == nil {
		t.Fatal("expected parse error for malformed template")
	}
}

func TestTruncateToTokens(t *testing.T) {
	t.Parallel()

	e := NewCharEstimator(1) // one char per token, estimate = len+1

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"zero max means uncapped", "abcdef", 0, "abcdef"},
		{"fits untouched", "abc", 10, "abc"},
		{"prefix kept", "abcdefghij", 5, "abcd"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateToTokens(e, tt.text, tt.max); got != tt.want {
				t.Errorf("truncateToTokens(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}

	t.Run("never splits a rune", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("é", 50) // two bytes per rune
		got := truncateToTokens(e, text, 11)
		if !strings.HasPrefix(text, got) {
			t.Fatalf("result is not a prefix: %q", got)
		}
		if len(got)%2 != 0 {
			t.Errorf("result splits a rune: %d bytes", len(got))
		}
		if e.Estimate(got) > 11 {
			t.Errorf("estimate %d exceeds cap 11", e.Estimate(got))
		}
	})
}
