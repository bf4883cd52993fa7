package chat

// ContentItem is a flat union representing one piece of content inside a tool
// output. The Type field discriminates which fields are meaningful.
type ContentItem struct {
	Type     ItemType `json:"type"`
	Text     string   `json:"text,omitempty"`
	URL      string   `json:"url,omitempty"`
	MIMEType string   `json:"mime_type,omitempty"`
}

// NewTextItem creates a text content item.
func NewTextItem(text string) ContentItem {
	return ContentItem{Type: ItemText, Text: text}
}

// NewImageItem creates an image content item. The URL may be a data URI or a
// remote reference; it is opaque to the pipeline and never validated.
func NewImageItem(url, mimeType string) ContentItem {
	return ContentItem{Type: ItemImage, URL: url, MIMEType: mimeType}
}

// ToolOutput is the structured result of a tool invocation. The order of
// Values is semantically meaningful (interleaved narration and images) and
// must be preserved by any code that rewrites it.
type ToolOutput struct {
	IsError bool          `json:"is_error,omitempty"`
	Values  []ContentItem `json:"values"`
}

// HasImages reports whether any value is an image item.
func (o ToolOutput) HasImages() bool {
	for _, v := range o.Values {
		if v.Type == ItemImage {
			return true
		}
	}
	return false
}

// Text concatenates the text of all text items, separated by newlines.
func (o ToolOutput) Text() string {
	var result string
	for _, v := range o.Values {
		if v.Type == ItemText && v.Text != "" {
			if result != "" {
				result += "\n"
			}
			result += v.Text
		}
	}
	return result
}

// Clone returns a deep copy of the output. Mutating the copy's Values does
// not affect the original.
func (o ToolOutput) Clone() ToolOutput {
	cp := o
	if o.Values != nil {
		cp.Values = make([]ContentItem, len(o.Values))
		copy(cp.Values, o.Values)
	}
	return cp
}
