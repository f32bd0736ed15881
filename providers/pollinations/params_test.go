package pollinations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

func newTestBuilder(t *testing.T, settings map[string]interface{}) *requestBuilder {
	t.Helper()
	registry, err := llmprovider.NewDefaultCapabilityRegistry()
	require.NoError(t, err)
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return &requestBuilder{
		providerName: DefaultName,
		settings:     settings,
		validator:    llmprovider.NewDefaultValidationEngine(registry),
	}
}

func userRequest(model string, params *llmprovider.RequestParams) *llmprovider.GenerateRequest {
	return &llmprovider.GenerateRequest{
		Model:    model,
		Messages: []llmprovider.Message{{Role: llmprovider.RoleUser, Content: "Hello"}},
		Params:   params,
	}
}

func TestBuild_TypedFields(t *testing.T) {
	b := newTestBuilder(t, nil)

	body, warnings, err := b.build(userRequest("openai", &llmprovider.RequestParams{
		Seed:             intPtr(42),
		Temperature:      float64Ptr(0.7),
		MaxTokens:        intPtr(256),
		TopP:             float64Ptr(0.9),
		FrequencyPenalty: float64Ptr(0.5),
		PresencePenalty:  float64Ptr(-0.5),
		Stop:             []string{"END"},
	}), false)

	require.NoError(t, err)
	assert.Empty(t, warnings)

	wire := gjson.ParseBytes(body)
	assert.Equal(t, "openai", wire.Get("model").String())
	assert.Equal(t, int64(42), wire.Get("seed").Int())
	assert.Equal(t, 0.7, wire.Get("temperature").Float())
	assert.Equal(t, int64(256), wire.Get("max_tokens").Int())
	assert.Equal(t, 0.9, wire.Get("top_p").Float())
	assert.Equal(t, 0.5, wire.Get("frequency_penalty").Float())
	assert.Equal(t, -0.5, wire.Get("presence_penalty").Float())
	assert.Equal(t, "END", wire.Get("stop.0").String())
	assert.Equal(t, "user", wire.Get("messages.0.role").String())
	assert.Equal(t, "Hello", wire.Get("messages.0.content").String())

	assert.False(t, wire.Get("stream").Exists())
	assert.False(t, wire.Get("tools").Exists())
	assert.False(t, wire.Get("tool_choice").Exists())
	assert.False(t, wire.Get("response_format").Exists())
}

func TestBuild_StreamFlag(t *testing.T) {
	b := newTestBuilder(t, nil)

	body, _, err := b.build(userRequest("openai", nil), true)
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(body, "stream").Bool())
}

func TestBuild_SeedAlwaysPresent(t *testing.T) {
	b := newTestBuilder(t, nil)

	body, _, err := b.build(userRequest("openai", nil), false)
	require.NoError(t, err)

	seed := gjson.GetBytes(body, "seed")
	require.True(t, seed.Exists())
	assert.GreaterOrEqual(t, seed.Int(), int64(0))
	assert.Less(t, seed.Int(), int64(1<<31-1))

	// An explicit zero seed is sent as zero
	body, _, err = b.build(userRequest("openai", &llmprovider.RequestParams{Seed: intPtr(0)}), false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gjson.GetBytes(body, "seed").Int())
}

func TestBuild_WarningOrder(t *testing.T) {
	b := newTestBuilder(t, nil)

	hosted, err := llmprovider.NewProviderTool("google.search", "")
	require.NoError(t, err)

	req := &llmprovider.GenerateRequest{
		Model: "some-unlisted-model",
		Messages: []llmprovider.Message{{
			Role: llmprovider.RoleUser,
			Parts: []llmprovider.Part{
				llmprovider.TextPart{Text: "Summarize"},
				llmprovider.FilePart{MediaType: "application/pdf", URL: "https://docs.example/a.pdf"},
			},
		}},
		Params: &llmprovider.RequestParams{
			TopK:  intPtr(40),
			Tools: []llmprovider.Tool{*hosted},
		},
	}

	_, warnings, err := b.build(req, false)
	require.NoError(t, err)

	assert.Equal(t, []llmprovider.Warning{
		llmprovider.OtherWarning("File type application/pdf is not supported for Pollinations API"),
		llmprovider.UnsupportedWarning("topK", "Pollinations API does not support topK parameter. Use temperature or topP instead."),
		llmprovider.UnsupportedWarning("tool", "Tool type provider is not supported"),
	}, warnings)
}

func TestBuild_CapabilityWarnings(t *testing.T) {
	b := newTestBuilder(t, nil)

	fn, err := llmprovider.NewCustomTool("f", "does f", map[string]interface{}{"type": "object"})
	require.NoError(t, err)

	req := &llmprovider.GenerateRequest{
		Model: "perplexity-fast",
		Messages: []llmprovider.Message{{
			Role: llmprovider.RoleUser,
			Parts: []llmprovider.Part{
				llmprovider.FilePart{MediaType: "image/png", URL: "https://img.example/a.png"},
			},
		}},
		Params: &llmprovider.RequestParams{Tools: []llmprovider.Tool{*fn}},
	}

	_, warnings, err := b.build(req, false)
	require.NoError(t, err)
	assert.Equal(t, []llmprovider.Warning{
		llmprovider.OtherWarning("Model perplexity-fast might not support tools"),
		llmprovider.OtherWarning("Model perplexity-fast might not support image input"),
	}, warnings)
}

func TestBuild_SettingsAndProviderOptions(t *testing.T) {
	b := newTestBuilder(t, map[string]interface{}{
		"user":          "settings-user",
		"private":       true,
		"referrer":      "from-settings",
		"dropped":       nil,
		"safe":          false,
		"temperature":   1.5,
		"custom.dotted": "literal key",
	})

	body, _, err := b.build(userRequest("openai", &llmprovider.RequestParams{
		Temperature: float64Ptr(0.2),
		ProviderOptions: map[string]map[string]interface{}{
			"pollinations": {
				"user":           "option-user",
				"referrer":       nil,
				"stream_options": map[string]interface{}{"include_usage": true},
				"seed":           7,
			},
			"openrouter": {"user": "someone else"},
		},
	}), true)
	require.NoError(t, err)

	wire := gjson.ParseBytes(body)
	assert.Equal(t, "option-user", wire.Get("user").String(), "provider options override settings")
	assert.Equal(t, "from-settings", wire.Get("referrer").String(), "nil option values never erase a field")
	assert.True(t, wire.Get("private").Bool())
	assert.False(t, wire.Get("dropped").Exists())
	assert.True(t, wire.Get("safe").Exists())
	assert.False(t, wire.Get("safe").Bool())
	assert.Equal(t, 1.5, wire.Get("temperature").Float(), "settings override typed fields")
	assert.Equal(t, int64(7), wire.Get("seed").Int())
	assert.True(t, wire.Get("stream_options.include_usage").Bool())
	assert.Equal(t, "literal key", wire.Get(`custom\.dotted`).String())
	assert.False(t, wire.Get("custom").Exists())
	assert.True(t, wire.Get("stream").Bool())
}

func TestBuild_ToolsAndToolChoice(t *testing.T) {
	b := newTestBuilder(t, nil)

	fn, err := llmprovider.NewCustomTool("get_weather", "Weather lookup", map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"city": map[string]interface{}{"type": "string"}},
	})
	require.NoError(t, err)
	required, err := llmprovider.NewToolChoice(llmprovider.ToolChoiceModeRequired)
	require.NoError(t, err)

	body, _, err := b.build(userRequest("openai", &llmprovider.RequestParams{
		Tools:      []llmprovider.Tool{*fn},
		ToolChoice: required,
	}), false)
	require.NoError(t, err)

	wire := gjson.ParseBytes(body)
	assert.Equal(t, "function", wire.Get("tools.0.type").String())
	assert.Equal(t, "get_weather", wire.Get("tools.0.function.name").String())
	assert.Equal(t, "string", wire.Get("tools.0.function.parameters.properties.city.type").String())
	assert.Equal(t, "required", wire.Get("tool_choice").String())

	// Without a tool choice the field is left to the API default
	body, _, err = b.build(userRequest("openai", &llmprovider.RequestParams{
		Tools: []llmprovider.Tool{*fn},
	}), false)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(body, "tool_choice").Exists())
}

func TestBuild_ToolChoiceDroppedWithoutUsableTools(t *testing.T) {
	b := newTestBuilder(t, nil)

	hosted, err := llmprovider.NewProviderTool("google.search", "search")
	require.NoError(t, err)
	none, err := llmprovider.NewToolChoice(llmprovider.ToolChoiceModeNone)
	require.NoError(t, err)

	body, warnings, err := b.build(userRequest("openai", &llmprovider.RequestParams{
		Tools:      []llmprovider.Tool{*hosted},
		ToolChoice: none,
	}), false)
	require.NoError(t, err)

	assert.Len(t, warnings, 1)
	assert.False(t, gjson.GetBytes(body, "tools").Exists())
	assert.False(t, gjson.GetBytes(body, "tool_choice").Exists())
}

func TestConvertResponseFormat(t *testing.T) {
	assert.Nil(t, convertResponseFormat(nil))

	assert.Equal(t, &ResponseFormat{Type: "text"},
		convertResponseFormat(&llmprovider.ResponseFormat{Type: llmprovider.ResponseFormatText}))

	assert.Equal(t, &ResponseFormat{Type: "json_object"},
		convertResponseFormat(&llmprovider.ResponseFormat{Type: llmprovider.ResponseFormatJSON}))

	schema := map[string]interface{}{"type": "object"}
	assert.Equal(t, &ResponseFormat{
		Type:       "json_schema",
		JSONSchema: &JSONSchemaFormat{Schema: schema, Name: "answer", Description: "The answer"},
	}, convertResponseFormat(&llmprovider.ResponseFormat{
		Type:        llmprovider.ResponseFormatJSON,
		Schema:      schema,
		Name:        "answer",
		Description: "The answer",
	}))
}

func TestBuild_MessageErrorsAreWrapped(t *testing.T) {
	b := newTestBuilder(t, nil)

	_, _, err := b.build(&llmprovider.GenerateRequest{
		Model:    "openai",
		Messages: []llmprovider.Message{{Role: "narrator", Content: "Once upon a time"}},
	}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, llmprovider.ErrUnsupportedRole)
	assert.Contains(t, err.Error(), "failed to convert messages")
}

func TestEscapeJSONPathKey(t *testing.T) {
	assert.Equal(t, "plain_key", escapeJSONPathKey("plain_key"))
	assert.Equal(t, `a\.b`, escapeJSONPathKey("a.b"))
	assert.Equal(t, `x\*\?`, escapeJSONPathKey("x*?"))
	assert.Equal(t, `\#tag`, escapeJSONPathKey("#tag"))
}

func TestBuildChatCompletionRequestDebug(t *testing.T) {
	p, err := NewProvider(WithAPIKey(""), WithSettings(map[string]interface{}{"private": true}))
	require.NoError(t, err)

	body, warnings, err := p.BuildChatCompletionRequestDebug(userRequest("openai", &llmprovider.RequestParams{
		Seed: intPtr(3),
	}))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "openai", body["model"])
	assert.Equal(t, float64(3), body["seed"])
	assert.Equal(t, true, body["private"])
	assert.NotContains(t, body, "stream")
}
