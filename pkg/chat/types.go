// Package chat defines the conversation data contract shared by the context
// pipeline: content items, messages, and the ordered Context sent to a model.
package chat

// Role identifies the author of a text message.
type Role string

// Role constants for conversation messages.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageType discriminates the variant stored in a Message.
type MessageType string

// Supported message types.
const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageTool  MessageType = "tool"
)

// ItemType discriminates the variant stored in a ContentItem.
type ItemType string

// Supported content item types.
const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
)
