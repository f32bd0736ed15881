package llmprovider

// GenerateRequest contains the parameters for an LLM generation request.
type GenerateRequest struct {
	// Messages contains the conversation history.
	Messages []Message

	// Model is the model identifier (e.g., "openai", "gemini-search")
	Model string

	// Params contains all request parameters (temperature, max_tokens, tools, etc.)
	// Provider adapters extract what they support from this unified struct.
	Params *RequestParams
}

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single turn in the conversation.
//
// System messages use Content only. User and assistant messages use Parts;
// when Parts is empty, Content is treated as a single TextPart. Tool messages
// carry ToolResultParts.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	Parts   []Part `json:"parts,omitempty"`
}

// EffectiveParts returns Parts, or a single TextPart built from Content
// when Parts is empty.
func (m Message) EffectiveParts() []Part {
	if len(m.Parts) > 0 {
		return m.Parts
	}
	return []Part{TextPart{Text: m.Content}}
}

// Part is a sealed interface over message parts.
type Part interface {
	PartType() string
	messagePart()
}

// Part type names
const (
	PartTypeText       = "text"
	PartTypeFile       = "file"
	PartTypeReasoning  = "reasoning"
	PartTypeToolCall   = "tool-call"
	PartTypeToolResult = "tool-result"
)

// TextPart is plain text.
type TextPart struct {
	Text string `json:"text"`
}

// FilePart references a file. Exactly one of URL, Data or StringData is used,
// checked in that order.
type FilePart struct {
	// MediaType is the IANA media type; "image/*" means any image
	MediaType string `json:"media_type"`

	// URL is a remote location that is passed through unchanged
	URL string `json:"url,omitempty"`

	// Data is raw file content
	Data []byte `json:"data,omitempty"`

	// StringData is base64 content, or text that still needs encoding
	StringData string `json:"string_data,omitempty"`
}

// ReasoningPart is reasoning text from a previous assistant turn.
type ReasoningPart struct {
	Text string `json:"text"`
}

// ToolCallPart is a tool invocation from a previous assistant turn.
type ToolCallPart struct {
	ToolCallID string `json:"tool_call_id"`
	ToolName   string `json:"tool_name"`

	// Input is the decoded argument value; it is re-serialized as JSON
	Input interface{} `json:"input"`

	ProviderExecuted bool `json:"provider_executed,omitempty"`
}

// ToolResultPart is the output of a tool invocation.
type ToolResultPart struct {
	ToolCallID string           `json:"tool_call_id"`
	ToolName   string           `json:"tool_name"`
	Output     ToolResultOutput `json:"output"`
}

// Tool result output types
const (
	ToolOutputTypeText      = "text"
	ToolOutputTypeErrorText = "error-text"
	ToolOutputTypeJSON      = "json"
	ToolOutputTypeErrorJSON = "error-json"
	ToolOutputTypeContent   = "content"
)

// ToolResultOutput is a typed tool result.
//
// Value holds a string for text outputs, any JSON-serializable value for json
// outputs and []ToolOutputContent for content outputs.
type ToolResultOutput struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value,omitempty"`

	// Reason is used by output types that carry no value (e.g. "execution-denied")
	Reason string `json:"reason,omitempty"`
}

// ToolOutputTypeContent is one item of a mixed-content tool result.
type ToolOutputContent struct {
	Type      string `json:"type"` // "text" or "media"
	Text      string `json:"text,omitempty"`
	Data      string `json:"data,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

func (TextPart) PartType() string       { return PartTypeText }
func (FilePart) PartType() string       { return PartTypeFile }
func (ReasoningPart) PartType() string  { return PartTypeReasoning }
func (ToolCallPart) PartType() string   { return PartTypeToolCall }
func (ToolResultPart) PartType() string { return PartTypeToolResult }

func (TextPart) messagePart()       {}
func (FilePart) messagePart()       {}
func (ReasoningPart) messagePart()  {}
func (ToolCallPart) messagePart()   {}
func (ToolResultPart) messagePart() {}

var (
	_ Part = TextPart{}
	_ Part = FilePart{}
	_ Part = ReasoningPart{}
	_ Part = ToolCallPart{}
	_ Part = ToolResultPart{}
)

// NewTextMessage creates a message with a single text part.
func NewTextMessage(role Role, text string) Message {
	if role == RoleSystem {
		return Message{Role: role, Content: text}
	}
	return Message{Role: role, Parts: []Part{TextPart{Text: text}}}
}
