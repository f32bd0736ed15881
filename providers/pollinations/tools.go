package pollinations

import (
	"fmt"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// prepareTools converts library tools to the Pollinations function format.
// Pollinations uses OpenAI format, so function tools map directly; every
// other tool type is dropped with a warning.
func prepareTools(tools []llmprovider.Tool) ([]Tool, []llmprovider.Warning) {
	if len(tools) == 0 {
		return nil, nil
	}

	var warnings []llmprovider.Warning
	result := make([]Tool, 0, len(tools))

	for _, tool := range tools {
		if tool.Type != llmprovider.ToolTypeFunction {
			warnings = append(warnings, llmprovider.UnsupportedWarning(
				"tool",
				fmt.Sprintf("Tool type %s is not supported", tool.Type),
			))
			continue
		}

		parameters, warning := normalizeToolSchema(tool.Function.Name, tool.Function.Parameters)
		if warning != nil {
			warnings = append(warnings, *warning)
		}

		result = append(result, Tool{
			Type: llmprovider.ToolTypeFunction,
			Function: FunctionDefinition{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				Parameters:  parameters,
			},
		})
	}

	return result, warnings
}

// normalizeToolSchema guarantees a JSON Schema with root type "object".
// Anything that is not a JSON object is replaced with an empty object schema.
func normalizeToolSchema(toolName string, schema interface{}) (map[string]interface{}, *llmprovider.Warning) {
	original, ok := schema.(map[string]interface{})
	if !ok || original == nil {
		warning := llmprovider.OtherWarning("Invalid schema for tool '%s': schema must be a JSON Schema object", toolName)
		return map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		}, &warning
	}

	normalized := make(map[string]interface{}, len(original)+1)
	for k, v := range original {
		normalized[k] = v
	}
	normalized["type"] = "object"

	if declared, present := original["type"]; present && declared != nil && declared != "object" {
		warning := llmprovider.OtherWarning(
			"Schema for tool '%s' must have type: \"object\" at root level, got type: \"%v\"",
			toolName, declared,
		)
		return normalized, &warning
	}

	return normalized, nil
}

// mapToolChoice converts a tool choice to the wire value. Pollinations has no
// way to force a specific tool, so that mode degrades to "auto".
func mapToolChoice(choice *llmprovider.ToolChoice) string {
	if choice == nil {
		return string(llmprovider.ToolChoiceModeAuto)
	}

	switch choice.Mode {
	case llmprovider.ToolChoiceModeAuto, llmprovider.ToolChoiceModeNone, llmprovider.ToolChoiceModeRequired:
		return string(choice.Mode)
	default:
		return string(llmprovider.ToolChoiceModeAuto)
	}
}
