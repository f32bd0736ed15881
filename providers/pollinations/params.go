package pollinations

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/sjson"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// requestBuilder turns a GenerateRequest into a Pollinations request body.
// It is shared between GenerateResponse and StreamResponse.
type requestBuilder struct {
	providerName string

	// settings are provider-level body fields; per-call provider options
	// override them key by key
	settings map[string]interface{}

	validator *llmprovider.ValidationEngine
}

// build returns the JSON body and the warnings collected while building it.
// Warnings are ordered: message conversion, request validation, tools.
func (b *requestBuilder) build(req *llmprovider.GenerateRequest, stream bool) ([]byte, []llmprovider.Warning, error) {
	chatReq, warnings, err := b.buildChatCompletionRequest(req)
	if err != nil {
		return nil, nil, err
	}

	body, err := b.encodeRequestBody(chatReq, req.Params, stream)
	if err != nil {
		return nil, nil, err
	}

	return body, warnings, nil
}

// buildChatCompletionRequest builds the typed part of the request.
func (b *requestBuilder) buildChatCompletionRequest(req *llmprovider.GenerateRequest) (*ChatCompletionRequest, []llmprovider.Warning, error) {
	messages, warnings, err := convertToPollinationsMessages(req.Messages)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert messages: %w", err)
	}

	if b.validator != nil {
		warnings = append(warnings, b.validator.Validate(b.providerName, req)...)
	}

	params := req.Params
	if params == nil {
		params = &llmprovider.RequestParams{}
	}

	chatReq := &ChatCompletionRequest{
		Model:            req.Model,
		Messages:         messages,
		Seed:             llmprovider.ResolveSeed(params.Seed),
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		TopP:             params.TopP,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
		ResponseFormat:   convertResponseFormat(params.ResponseFormat),
	}

	if len(params.Stop) > 0 {
		chatReq.Stop = params.Stop
	}

	if len(params.Tools) > 0 {
		tools, toolWarnings := prepareTools(params.Tools)
		warnings = append(warnings, toolWarnings...)
		if len(tools) > 0 {
			chatReq.Tools = tools
			if params.ToolChoice != nil {
				chatReq.ToolChoice = mapToolChoice(params.ToolChoice)
			}
		}
	}

	return chatReq, warnings, nil
}

// convertResponseFormat maps the library response format to the OpenAI shape.
func convertResponseFormat(format *llmprovider.ResponseFormat) *ResponseFormat {
	if format == nil {
		return nil
	}

	if format.Type != llmprovider.ResponseFormatJSON {
		return &ResponseFormat{Type: "text"}
	}

	if format.Schema == nil {
		return &ResponseFormat{Type: "json_object"}
	}

	return &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchemaFormat{
			Schema:      format.Schema,
			Name:        format.Name,
			Description: format.Description,
		},
	}
}

// encodeRequestBody marshals the typed request and writes settings, provider
// options and the stream flag on top of it. Provider options win over
// settings; nil values are skipped so they never erase a field.
func (b *requestBuilder) encodeRequestBody(chatReq *ChatCompletionRequest, params *llmprovider.RequestParams, stream bool) ([]byte, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	merged := make(map[string]interface{}, len(b.settings))
	for k, v := range b.settings {
		if v != nil {
			merged[k] = v
		}
	}
	for k, v := range params.ProviderOptionsFor(b.providerName) {
		if v != nil {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		body, err = sjson.SetBytes(body, escapeJSONPathKey(key), merged[key])
		if err != nil {
			return nil, fmt.Errorf("failed to set provider option %q: %w", key, err)
		}
	}

	if stream {
		body, err = sjson.SetBytes(body, "stream", true)
		if err != nil {
			return nil, fmt.Errorf("failed to set stream flag: %w", err)
		}
	}

	return body, nil
}

// escapeJSONPathKey makes an option key safe to use as a single sjson path
// component (option keys are literal field names, never paths).
func escapeJSONPathKey(key string) string {
	if !strings.ContainsAny(key, `\.*?|#@!=<>%:[]{}"`) {
		return key
	}
	var sb strings.Builder
	sb.Grow(len(key) * 2)
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@!=<>%:[]{}"`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BuildChatCompletionRequestDebug builds the exact request body this provider
// would send (non-streaming) and returns it as a map for inspection.
//
// Used by debug tooling to show the JSON sent to Pollinations. The seed is
// resolved, so an unset seed shows the clock-derived value.
func (p *Provider) BuildChatCompletionRequestDebug(req *llmprovider.GenerateRequest) (map[string]interface{}, []llmprovider.Warning, error) {
	body, warnings, err := p.builder.build(req, false)
	if err != nil {
		return nil, nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal pollinations request: %w", err)
	}

	return result, warnings, nil
}
