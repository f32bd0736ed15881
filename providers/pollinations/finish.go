package pollinations

import (
	"strings"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// finishReasonMap is keyed by normalized reasons (see normalizeFinishReason).
var finishReasonMap = map[string]llmprovider.FinishReason{
	"stop":                    llmprovider.FinishReasonStop,
	"length":                  llmprovider.FinishReasonLength,
	"max-tokens":              llmprovider.FinishReasonLength,
	"max-token":               llmprovider.FinishReasonLength,
	"tool-calls":              llmprovider.FinishReasonToolCalls,
	"toolcalls":               llmprovider.FinishReasonToolCalls,
	"content-filter":          llmprovider.FinishReasonContentFilter,
	"contentfilter":           llmprovider.FinishReasonContentFilter,
	"safety":                  llmprovider.FinishReasonContentFilter,
	"image-safety":            llmprovider.FinishReasonContentFilter,
	"recitation":              llmprovider.FinishReasonContentFilter,
	"blocklist":               llmprovider.FinishReasonContentFilter,
	"prohibited-content":      llmprovider.FinishReasonContentFilter,
	"spii":                    llmprovider.FinishReasonContentFilter,
	"error":                   llmprovider.FinishReasonError,
	"malformed-function-call": llmprovider.FinishReasonError,
	"function-call-error":     llmprovider.FinishReasonError,
}

// normalizeFinishReason lowercases and turns both '_' and '-' into '-'.
func normalizeFinishReason(reason string) string {
	return strings.ReplaceAll(strings.ToLower(reason), "_", "-")
}

// mapFinishReason converts a vendor finish reason to the canonical value.
// An empty reason means a normal stop. A "stop" with client tool calls in the
// same response is reported as tool-calls.
func mapFinishReason(reason string, hasToolCalls bool) llmprovider.FinishReason {
	if reason == "" {
		return llmprovider.FinishReasonStop
	}

	mapped, ok := finishReasonMap[normalizeFinishReason(reason)]
	if !ok {
		return llmprovider.FinishReasonOther
	}

	if mapped == llmprovider.FinishReasonStop && hasToolCalls {
		return llmprovider.FinishReasonToolCalls
	}

	return mapped
}

// convertUsage maps wire usage to canonical usage. Absent counters are zero.
func convertUsage(usage *Usage) llmprovider.Usage {
	var result llmprovider.Usage
	if usage == nil {
		return result
	}

	result.InputTokens.Total = usage.PromptTokens
	result.OutputTokens.Total = usage.CompletionTokens

	if usage.PromptTokensDetails != nil {
		result.InputTokens.CacheRead = usage.PromptTokensDetails.CachedTokens
	}
	if usage.CompletionTokensDetails != nil {
		result.OutputTokens.Reasoning = usage.CompletionTokensDetails.ReasoningTokens
	}

	return result
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
