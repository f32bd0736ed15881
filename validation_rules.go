package llmprovider

import (
	"fmt"
	"strings"
)

// ParameterValidationRule flags parameters the chat-completions wire format cannot express
type ParameterValidationRule struct{}

func (r *ParameterValidationRule) Name() string {
	return "Parameter Validation"
}

func (r *ParameterValidationRule) Check(provider string, req *GenerateRequest) []Warning {
	var warnings []Warning

	if req.Params == nil {
		return warnings
	}

	if req.Params.TopK != nil {
		warnings = append(warnings, UnsupportedWarning(
			"topK",
			fmt.Sprintf("%s API does not support topK parameter. Use temperature or topP instead.", displayName(provider)),
		))
	}

	if req.Params.IncludeRawChunks {
		warnings = append(warnings, UnsupportedWarning(
			"includeRawChunks",
			fmt.Sprintf("%s API does not support includeRawChunks parameter. This setting will be ignored.", displayName(provider)),
		))
	}

	return warnings
}

// CapabilityValidationRule warns when a known model lacks a feature the request uses.
// Models missing from the registry are not reported.
type CapabilityValidationRule struct {
	registry *CapabilityRegistry
}

func (r *CapabilityValidationRule) Name() string {
	return "Capability Validation"
}

func (r *CapabilityValidationRule) Check(provider string, req *GenerateRequest) []Warning {
	var warnings []Warning

	if r.registry == nil {
		return warnings
	}

	modelCap, err := r.registry.GetModelCapability(provider, req.Model)
	if err != nil {
		return warnings
	}

	if req.Params != nil && len(req.Params.Tools) > 0 && !modelCap.Features.Tools {
		warnings = append(warnings, OtherWarning("Model %s might not support tools", req.Model))
	}

	if hasImageParts(req.Messages) && !modelCap.Features.Vision {
		warnings = append(warnings, OtherWarning("Model %s might not support image input", req.Model))
	}

	return warnings
}

func hasImageParts(messages []Message) bool {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if fp, ok := part.(FilePart); ok && strings.HasPrefix(fp.MediaType, "image/") {
				return true
			}
		}
	}
	return false
}

// displayName turns "pollinations" into "Pollinations" for user-facing messages
func displayName(provider string) string {
	if provider == "" {
		return "Provider"
	}
	return strings.ToUpper(provider[:1]) + provider[1:]
}
