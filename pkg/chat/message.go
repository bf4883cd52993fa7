package chat

import "encoding/json"

// Message is a flat union representing one conversation turn or attachment.
// The Type field discriminates which fields are meaningful:
//
//   - MessageText: Role, Content, and optionally ToolCalls, Model,
//     ReasoningDetails.
//   - MessageImage: URL, MIMEType.
//   - MessageTool: ToolName, CallID, Output.
type Message struct {
	Type MessageType `json:"type"`

	// Text message fields.
	Role             Role            `json:"role,omitempty"`
	Content          string          `json:"content,omitempty"`
	ToolCalls        json.RawMessage `json:"tool_calls,omitempty"`
	Model            string          `json:"model,omitempty"`
	ReasoningDetails json.RawMessage `json:"reasoning_details,omitempty"`

	// Image message fields.
	URL      string `json:"url,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`

	// Tool result fields.
	ToolName string      `json:"tool_name,omitempty"`
	CallID   string      `json:"call_id,omitempty"`
	Output   *ToolOutput `json:"output,omitempty"`
}

// NewTextMessage creates a role-tagged text message.
func NewTextMessage(role Role, content string) Message {
	return Message{Type: MessageText, Role: role, Content: content}
}

// NewImageMessage creates a standalone image attachment message.
func NewImageMessage(url, mimeType string) Message {
	return Message{Type: MessageImage, URL: url, MIMEType: mimeType}
}

// NewToolMessage creates a tool result message.
func NewToolMessage(toolName, callID string, output ToolOutput) Message {
	return Message{Type: MessageTool, ToolName: toolName, CallID: callID, Output: &output}
}

// Clone returns a deep copy of the message, including its tool output.
func (m Message) Clone() Message {
	cp := m
	if m.ToolCalls != nil {
		cp.ToolCalls = make(json.RawMessage, len(m.ToolCalls))
		copy(cp.ToolCalls, m.ToolCalls)
	}
	if m.ReasoningDetails != nil {
		cp.ReasoningDetails = make(json.RawMessage, len(m.ReasoningDetails))
		copy(cp.ReasoningDetails, m.ReasoningDetails)
	}
	if m.Output != nil {
		out := m.Output.Clone()
		cp.Output = &out
	}
	return cp
}

// Context is the ordered sequence of messages presented to a model for one
// inference call. Insertion order is conversation chronology and is
// load-bearing: models interpret position as recency and causality.
type Context []Message

// Clone returns a deep copy of the context. Transformers use it so a failed
// or partial transformation can never corrupt the caller's copy.
func (c Context) Clone() Context {
	if c == nil {
		return nil
	}
	cp := make(Context, len(c))
	for i, m := range c {
		cp[i] = m.Clone()
	}
	return cp
}

// UserTurns returns the number of user-authored text messages. One user
// message corresponds to one conversation turn.
func (c Context) UserTurns() int {
	n := 0
	for _, m := range c {
		if m.Type == MessageText && m.Role == RoleUser {
			n++
		}
	}
	return n
}
