package llmprovider

// SourceType distinguishes URL sources from document sources.
type SourceType string

const (
	SourceTypeURL      SourceType = "url"
	SourceTypeDocument SourceType = "document"
)

// Content is a sealed interface over the parts of a non-streaming response.
//
// Variants: ReasoningContent, TextContent, Source, ToolCall.
type Content interface {
	contentPart()
}

// ReasoningContent is the model's reasoning text. It always precedes
// TextContent in a response.
type ReasoningContent struct {
	Text string
}

// TextContent is the model's answer text.
type TextContent struct {
	Text string
}

// Source is a reference backing the generated answer.
// Used both as response content and as a stream part.
//
// Provider mappings:
// - top-level citations[] → URL source
// - annotations[].url_citation → URL source with title
// - groundingMetadata.groundingChunks[] → URL or document source
type Source struct {
	SourceType SourceType `json:"source_type"`
	ID         string     `json:"id"`

	// URL is set for URL sources
	URL string `json:"url,omitempty"`

	// Title is optional for URL sources and always set for document sources
	Title string `json:"title,omitempty"`

	// MediaType and Filename are set for document sources
	MediaType string `json:"media_type,omitempty"`
	Filename  string `json:"filename,omitempty"`
}

// ToolCall is a complete tool invocation requested by the model.
// Used both as response content and as a stream part.
type ToolCall struct {
	ToolCallID string `json:"tool_call_id"`
	ToolName   string `json:"tool_name"`

	// Input is the raw JSON argument text. It is passed through as received
	// and may be invalid JSON when a stream ended before the arguments
	// completed.
	Input string `json:"input"`

	// ProviderExecuted is true when the provider already ran the tool
	ProviderExecuted bool `json:"provider_executed,omitempty"`
}

func (ReasoningContent) contentPart() {}
func (TextContent) contentPart()      {}
func (Source) contentPart()           {}
func (ToolCall) contentPart()         {}

var (
	_ Content = ReasoningContent{}
	_ Content = TextContent{}
	_ Content = Source{}
	_ Content = ToolCall{}
)

// HasClientToolCalls reports whether content holds at least one tool call the
// caller is expected to execute.
func HasClientToolCalls(content []Content) bool {
	for _, c := range content {
		if tc, ok := c.(ToolCall); ok && !tc.ProviderExecuted {
			return true
		}
	}
	return false
}

// ResponseText concatenates the text content of a response.
func ResponseText(content []Content) string {
	var text string
	for _, c := range content {
		if t, ok := c.(TextContent); ok {
			text += t.Text
		}
	}
	return text
}
