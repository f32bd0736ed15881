package llmprovider

import "encoding/json"

// FinishReason is the provider-neutral classification of why generation stopped.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content-filter"
	FinishReasonToolCalls     FinishReason = "tool-calls"
	FinishReasonError         FinishReason = "error"
	FinishReasonOther         FinishReason = "other"
)

// InputTokens is the prompt side of token usage.
type InputTokens struct {
	Total      int `json:"total"`
	NoCache    int `json:"no_cache"`
	CacheRead  int `json:"cache_read"`
	CacheWrite int `json:"cache_write"`
}

// OutputTokens is the completion side of token usage.
type OutputTokens struct {
	Total     int `json:"total"`
	Text      int `json:"text"`
	Reasoning int `json:"reasoning"`
}

// Usage reports token counts. Counters the provider did not report are zero.
type Usage struct {
	InputTokens  InputTokens  `json:"input_tokens"`
	OutputTokens OutputTokens `json:"output_tokens"`
}

// GenerateResponse contains the LLM provider's response.
type GenerateResponse struct {
	// Content is ordered: reasoning, text, sources, tool calls
	Content []Content

	// FinishReason is the mapped reason; RawFinishReason is the vendor value
	FinishReason    FinishReason
	RawFinishReason string

	Usage Usage

	// Warnings lists non-fatal issues found while building the request or
	// reading the response
	Warnings []Warning

	// Model is the model reported by the provider (may differ from request if aliased)
	Model string

	// RequestBody is the exact JSON body that was sent
	RequestBody json.RawMessage
}
