package llmprovider

import (
	"encoding/json"
	"fmt"
)

// RequestParams represents all possible LLM request parameters.
// All scalar fields are optional pointers to distinguish "not set" from "set to zero value".
type RequestParams struct {
	// ===== Core Parameters =====

	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0-2.0)
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP (nucleus sampling) - cumulative probability cutoff (0.0-1.0)
	TopP *float64 `json:"top_p,omitempty"`

	// TopK limits sampling to top K tokens (not every provider supports it)
	TopK *int `json:"top_k,omitempty"`

	// Stop sequences - generation stops if any of these are generated
	Stop []string `json:"stop,omitempty"`

	// Seed for deterministic sampling. When nil, providers that require a
	// seed derive one from the clock (see ResolveSeed).
	Seed *int `json:"seed,omitempty"`

	// FrequencyPenalty reduces repetition of token sequences (-2.0 to 2.0)
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`

	// PresencePenalty reduces repetition of topics (-2.0 to 2.0)
	PresencePenalty *float64 `json:"presence_penalty,omitempty"`

	// ResponseFormat for structured outputs (JSON mode, etc.)
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// IncludeRawChunks asks for raw provider chunks alongside canonical parts
	IncludeRawChunks bool `json:"include_raw_chunks,omitempty"`

	// ===== Tool Parameters =====

	// Tools available for the model to use
	Tools []Tool `json:"tools,omitempty"`

	// ToolChoice controls whether/which tools to use (nil means provider default)
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`

	// ===== Provider Passthrough =====

	// ProviderOptions holds per-provider option bags keyed by provider name.
	// Values are copied into the request body as-is and override provider settings.
	ProviderOptions map[string]map[string]interface{} `json:"provider_options,omitempty"`
}

// Response format types
const (
	ResponseFormatText = "text"
	ResponseFormatJSON = "json"
)

// ResponseFormat specifies the format for structured outputs.
type ResponseFormat struct {
	Type string `json:"type"` // "text" or "json"

	// Schema is an optional JSON Schema for json output
	Schema interface{} `json:"schema,omitempty"`

	// Name and Description label the schema (optional)
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ValidateRequestParams validates request parameter ranges.
// Returns a *ValidationError wrapping ErrInvalidRequest on the first violation.
func ValidateRequestParams(params *RequestParams) error {
	if params == nil {
		return nil // nil params is valid
	}

	if params.Temperature != nil {
		if *params.Temperature < 0.0 || *params.Temperature > 2.0 {
			return invalidParam("temperature", *params.Temperature, "must be between 0.0 and 2.0")
		}
	}

	if params.TopP != nil {
		if *params.TopP < 0.0 || *params.TopP > 1.0 {
			return invalidParam("top_p", *params.TopP, "must be between 0.0 and 1.0")
		}
	}

	if params.TopK != nil {
		if *params.TopK < 0 {
			return invalidParam("top_k", *params.TopK, "must be non-negative")
		}
	}

	if params.MaxTokens != nil {
		if *params.MaxTokens < 1 {
			return invalidParam("max_tokens", *params.MaxTokens, "must be positive")
		}
	}

	if params.FrequencyPenalty != nil {
		if *params.FrequencyPenalty < -2.0 || *params.FrequencyPenalty > 2.0 {
			return invalidParam("frequency_penalty", *params.FrequencyPenalty, "must be between -2.0 and 2.0")
		}
	}

	if params.PresencePenalty != nil {
		if *params.PresencePenalty < -2.0 || *params.PresencePenalty > 2.0 {
			return invalidParam("presence_penalty", *params.PresencePenalty, "must be between -2.0 and 2.0")
		}
	}

	if params.ResponseFormat != nil {
		switch params.ResponseFormat.Type {
		case ResponseFormatText, ResponseFormatJSON:
		default:
			return invalidParam("response_format.type", params.ResponseFormat.Type, "must be 'text' or 'json'")
		}
	}

	if params.ToolChoice != nil {
		if err := params.ToolChoice.Validate(); err != nil {
			return &ValidationError{
				Field:  "tool_choice",
				Value:  params.ToolChoice.Mode,
				Reason: err.Error(),
				Err:    ErrInvalidRequest,
			}
		}
	}

	return nil
}

func invalidParam(field string, value any, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    ErrInvalidRequest,
	}
}

// GetRequestParamStruct unmarshals a JSON-like map into a typed RequestParams struct
func GetRequestParamStruct(params map[string]interface{}) (*RequestParams, error) {
	if params == nil {
		return &RequestParams{}, nil
	}

	jsonBytes, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	var rp RequestParams
	if err := json.Unmarshal(jsonBytes, &rp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}

	return &rp, nil
}

// ProviderOptionsFor returns the option bag for the named provider (nil if absent).
func (rp *RequestParams) ProviderOptionsFor(provider string) map[string]interface{} {
	if rp == nil || rp.ProviderOptions == nil {
		return nil
	}
	return rp.ProviderOptions[provider]
}
