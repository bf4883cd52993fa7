package ctxengine

import (
	"context"
	"fmt"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// ImageExtractor lifts images embedded in tool outputs into standalone
// attachment messages, for providers that reject inline image content inside
// a tool result payload.
//
// Each image item is replaced in place by a placeholder text item carrying an
// ID, and a pair of messages (a user-role marker followed by the image) is
// appended directly after the rewritten tool message. IDs are assigned by a
// single counter shared across the whole pass, so they are unique and
// strictly increasing in scan order. Non-tool messages pass through
// unchanged.
type ImageExtractor struct{}

type pendingAttachment struct {
	id       int
	url      string
	mimeType string
}

// Apply implements Transformer.
func (ImageExtractor) Apply(_ context.Context, history chat.Context) (chat.Context, error) {
	out := make(chat.Context, 0, len(history))
	nextID := 0

	for _, msg := range history {
		if msg.Type != chat.MessageTool || msg.Output == nil || !msg.Output.HasImages() {
			out = append(out, msg.Clone())
			continue
		}

		msg = msg.Clone()
		var pending []pendingAttachment
		for i, item := range msg.Output.Values {
			if item.Type != chat.ItemImage {
				continue
			}
			pending = append(pending, pendingAttachment{id: nextID, url: item.URL, mimeType: item.MIMEType})
			msg.Output.Values[i] = chat.NewTextItem(fmt.Sprintf(
				"[The image with ID %d will be sent as an attachment in the next message]", nextID))
			nextID++
		}
		out = append(out, msg)

		// Extraction is independent of IsError: failed tool calls still get
		// their images relayed.
		for _, att := range pending {
			out = append(out, chat.NewTextMessage(chat.RoleUser, fmt.Sprintf(
				"[Here is the image attachment for ID %d]", att.id)))
			out = append(out, chat.NewImageMessage(att.url, att.mimeType))
		}
	}

	return out, nil
}
