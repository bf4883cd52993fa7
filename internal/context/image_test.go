package ctxengine_test

import (
	"context"
	"reflect"
	"testing"

	ctxengine "github.com/ctxkit/ctxkit/internal/context"
	"github.com/ctxkit/ctxkit/pkg/chat"
)

func TestImageExtractor_InterleavedImages(t *testing.T) {
	t.Parallel()

	history := chat.Context{
		chat.NewToolMessage("screenshot", "call-1", chat.ToolOutput{
			Values: []chat.ContentItem{
				chat.NewTextItem("Before"),
				chat.NewImageItem("url1", "image/png"),
				chat.NewTextItem("Between"),
				chat.NewImageItem("url2", "image/jpeg"),
				chat.NewTextItem("After"),
			},
		}),
	}

	out, err := ctxengine.ImageExtractor{}.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	// Rewritten tool message + two marker/image pairs.
	if len(out) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(out))
	}

	wantValues := []chat.ContentItem{
		chat.NewTextItem("Before"),
		chat.NewTextItem("[The image with ID 0 will be sent as an attachment in the next message]"),
		chat.NewTextItem("Between"),
		chat.NewTextItem("[The image with ID 1 will be sent as an attachment in the next message]"),
		chat.NewTextItem("After"),
	}
	if !reflect.DeepEqual(out[0].Output.Values, wantValues) {
		t.Errorf("rewritten tool output = %+v, want %+v", out[0].Output.Values, wantValues)
	}

	wantTail := chat.Context{
		chat.NewTextMessage(chat.RoleUser, "[Here is the image attachment for ID 0]"),
		chat.NewImageMessage("url1", "image/png"),
		chat.NewTextMessage(chat.RoleUser, "[Here is the image attachment for ID 1]"),
		chat.NewImageMessage("url2", "image/jpeg"),
	}
	if !reflect.DeepEqual(out[1:], wantTail) {
		t.Errorf("attachment messages = %+v, want %+v", out[1:], wantTail)
	}
}

func TestImageExtractor_CounterSharedAcrossMessages(t *testing.T) {
	t.Parallel()

	history := chat.Context{
		chat.NewToolMessage("a", "call-1", chat.ToolOutput{
			Values: []chat.ContentItem{chat.NewImageItem("u1", "image/png")},
		}),
		chat.NewTextMessage(chat.RoleAssistant, "in between"),
		chat.NewToolMessage("b", "call-2", chat.ToolOutput{
			Values: []chat.ContentItem{
				chat.NewImageItem("u2", "image/png"),
				chat.NewImageItem("u3", "image/gif"),
			},
		}),
	}

	out, err := ctxengine.ImageExtractor{}.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	// The counter must not reset between tool messages.
	second := out[4] // rewritten second tool message
	want := []chat.ContentItem{
		chat.NewTextItem("[The image with ID 1 will be sent as an attachment in the next message]"),
		chat.NewTextItem("[The image with ID 2 will be sent as an attachment in the next message]"),
	}
	if !reflect.DeepEqual(second.Output.Values, want) {
		t.Errorf("second tool output = %+v, want %+v", second.Output.Values, want)
	}
}

func TestImageExtractor_NoImagesInToolOutputsAfterPass(t *testing.T) {
	t.Parallel()

	history := chat.Context{
		chat.NewTextMessage(chat.RoleUser, "look at these"),
		chat.NewToolMessage("cam", "c1", chat.ToolOutput{
			IsError: true,
			Values: []chat.ContentItem{
				chat.NewTextItem("failed, partial frame follows"),
				chat.NewImageItem("data:image/png;base64,xyz", "image/png"),
			},
		}),
		chat.NewImageMessage("preexisting", "image/webp"),
	}

	out, err := ctxengine.ImageExtractor{}.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	for i, m := range out {
		if m.Type != chat.MessageTool {
			continue
		}
		for _, v := range m.Output.Values {
			if v.Type == chat.ItemImage {
				t.Errorf("message %d still holds an inline image: %+v", i, v)
			}
		}
	}

	// Error outputs are extracted identically; the image must survive as an
	// attachment message.
	var urls []string
	for _, m := range out {
		if m.Type == chat.MessageImage {
			urls = append(urls, m.URL)
		}
	}
	want := []string{"data:image/png;base64,xyz", "preexisting"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("image message URLs = %v, want %v", urls, want)
	}
}

func TestImageExtractor_PassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history chat.Context
	}{
		{"empty context", chat.Context{}},
		{"text only", makeTextMessages(4)},
		{"tool output without images", chat.Context{
			chat.NewToolMessage("ls", "c1", chat.ToolOutput{
				Values: []chat.ContentItem{chat.NewTextItem("file.go")},
			}),
		}},
		{"standalone image message", chat.Context{
			chat.NewImageMessage("u", "image/png"),
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := ctxengine.ImageExtractor{}.Apply(context.Background(), tt.history)
			if err != nil {
				t.Fatalf("Apply returned unexpected error: %v", err)
			}
			if !reflect.DeepEqual(out, tt.history) {
				t.Errorf("context changed: got %+v, want %+v", out, tt.history)
			}
		})
	}
}

func TestImageExtractor_InputNotMutated(t *testing.T) {
	t.Parallel()

	history := chat.Context{
		chat.NewToolMessage("cam", "c1", chat.ToolOutput{
			Values: []chat.ContentItem{chat.NewImageItem("u1", "image/png")},
		}),
	}
	snapshot := history.Clone()

	if _, err := (ctxengine.ImageExtractor{}).Apply(context.Background(), history); err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	if !reflect.DeepEqual(history, snapshot) {
		t.Errorf("input context was mutated: got %+v, want %+v", history, snapshot)
	}
}
