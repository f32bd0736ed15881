package pollinations

// ===== Outbound =====

// ChatCompletionRequest is the typed part of a Pollinations chat completion request.
// Pollinations uses the OpenAI-compatible format. Provider settings and
// per-call provider options are merged on top of the marshaled struct.
type ChatCompletionRequest struct {
	Model            string          `json:"model"`
	Messages         []Message       `json:"messages"`
	Seed             int             `json:"seed"`
	Temperature      *float64        `json:"temperature,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	ResponseFormat   *ResponseFormat `json:"response_format,omitempty"`
	Tools            []Tool          `json:"tools,omitempty"`
	ToolChoice       string          `json:"tool_choice,omitempty"` // "auto", "none", "required"
}

// Message represents a message in the conversation.
// Content is a string, a []ContentPart, or nil (serialized as null for
// assistant turns that only carry tool calls).
type Message struct {
	Role       string      `json:"role"` // "system", "user", "assistant", "tool"
	Content    interface{} `json:"content"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolCallID *string     `json:"tool_call_id,omitempty"` // For role:"tool" messages
	Name       *string     `json:"name,omitempty"`         // For role:"tool" messages
}

// ContentPart represents a part of multimodal user content.
type ContentPart struct {
	Type     string    `json:"type"` // "text", "image_url"
	Text     *string   `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an image URL (remote or data URI) in content.
type ImageURL struct {
	URL string `json:"url"`
}

// ToolCall represents a function call in assistant messages and non-streaming responses.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall represents the function details of a tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

// Tool represents a function tool definition.
type Tool struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition represents a function tool definition.
type FunctionDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters"` // JSON Schema with root type "object"
}

// ResponseFormat is the OpenAI-compatible structured output selector.
type ResponseFormat struct {
	Type       string            `json:"type"` // "text", "json_object", "json_schema"
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat carries the schema for "json_schema" response formats.
type JSONSchemaFormat struct {
	Schema      interface{} `json:"schema"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ===== Inbound =====

// ChatCompletionResponse represents a non-streaming chat completion response.
type ChatCompletionResponse struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"` // "chat.completion"
	Created   int64    `json:"created"`
	Model     string   `json:"model"`
	Citations []string `json:"citations,omitempty"` // Perplexity-style source URLs
	Choices   []Choice `json:"choices"`
	Usage     *Usage   `json:"usage,omitempty"`
}

// Choice represents a completion choice in the response.
type Choice struct {
	Index             int                `json:"index"`
	Message           ResponseMessage    `json:"message"`
	FinishReason      *string            `json:"finish_reason"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// ResponseMessage is the assistant message of a non-streaming choice.
type ResponseMessage struct {
	Role             string       `json:"role"`
	Content          *string      `json:"content"`
	ReasoningContent *string      `json:"reasoning_content,omitempty"`
	ToolCalls        []ToolCall   `json:"tool_calls,omitempty"`
	Annotations      []Annotation `json:"annotations,omitempty"`
}

// ChatCompletionChunk represents one streamed SSE payload.
type ChatCompletionChunk struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"` // "chat.completion.chunk"
	Created   int64         `json:"created"`
	Model     string        `json:"model"`
	Citations []string      `json:"citations,omitempty"`
	Choices   []ChunkChoice `json:"choices"`
	Usage     *Usage        `json:"usage,omitempty"`
}

// ChunkChoice is the per-choice part of a streamed payload.
type ChunkChoice struct {
	Index             int                `json:"index"`
	Delta             Delta              `json:"delta"`
	FinishReason      *string            `json:"finish_reason"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// Delta contains the incremental fields of a streamed choice.
type Delta struct {
	Role             string          `json:"role,omitempty"`
	Content          string          `json:"content,omitempty"`
	ReasoningContent string          `json:"reasoning_content,omitempty"`
	ToolCalls        []ToolCallDelta `json:"tool_calls,omitempty"`
	Annotations      []Annotation    `json:"annotations,omitempty"`
}

// ToolCallDelta is one tool call fragment. Only Index is reliable on every
// fragment; ID, Type and Name usually arrive on the first one.
type ToolCallDelta struct {
	Index    *int               `json:"index,omitempty"`
	ID       string             `json:"id,omitempty"`
	Type     string             `json:"type,omitempty"`
	Function *FunctionCallDelta `json:"function,omitempty"`
}

// FunctionCallDelta carries name and argument fragments.
type FunctionCallDelta struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// Annotation represents an inline citation (OpenAI web search style).
type Annotation struct {
	Type        string       `json:"type,omitempty"` // "url_citation"
	URLCitation *URLCitation `json:"url_citation,omitempty"`
}

// URLCitation represents a web search result citation.
type URLCitation struct {
	URL   string  `json:"url"`
	Title *string `json:"title,omitempty"`
}

// GroundingMetadata is Gemini-style grounding evidence attached to a choice.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk is one piece of grounding evidence. At most one field is normally set.
type GroundingChunk struct {
	Web              *WebChunk              `json:"web,omitempty"`
	RetrievedContext *RetrievedContextChunk `json:"retrievedContext,omitempty"`
	Maps             *MapsChunk             `json:"maps,omitempty"`
}

// WebChunk is a web page reference.
type WebChunk struct {
	URI    string `json:"uri,omitempty"`
	Title  string `json:"title,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// RetrievedContextChunk is a RAG / file search reference.
type RetrievedContextChunk struct {
	URI             string `json:"uri,omitempty"`
	Title           string `json:"title,omitempty"`
	Text            string `json:"text,omitempty"`
	FileSearchStore string `json:"fileSearchStore,omitempty"`
}

// MapsChunk is a maps place reference.
type MapsChunk struct {
	URI     string `json:"uri,omitempty"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text,omitempty"`
	PlaceID string `json:"placeId,omitempty"`
}

// Usage represents token usage in the response.
type Usage struct {
	PromptTokens            int                      `json:"prompt_tokens"`
	CompletionTokens        int                      `json:"completion_tokens"`
	TotalTokens             int                      `json:"total_tokens"`
	PromptTokensDetails     *PromptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`
}

// PromptTokensDetails breaks down prompt tokens.
type PromptTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
	AudioTokens  int `json:"audio_tokens"`
}

// CompletionTokensDetails breaks down completion tokens.
type CompletionTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
	AudioTokens     int `json:"audio_tokens"`
}
