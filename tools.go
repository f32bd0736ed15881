package llmprovider

import (
	"errors"
	"fmt"
)

// Tool type constants
const (
	// ToolTypeFunction is a client-executed function tool
	ToolTypeFunction = "function"

	// ToolTypeProvider is a provider-defined tool (e.g. a hosted search)
	ToolTypeProvider = "provider"
)

// ToolChoiceMode controls tool selection behavior
type ToolChoiceMode string

const (
	ToolChoiceModeAuto     ToolChoiceMode = "auto"     // Model decides whether to use tools
	ToolChoiceModeRequired ToolChoiceMode = "required" // Model must use a tool
	ToolChoiceModeNone     ToolChoiceMode = "none"     // Model cannot use tools
	ToolChoiceModeSpecific ToolChoiceMode = "specific" // Model must use specific tool
)

// FunctionDetails represents the function definition within a tool (OpenAI format).
type FunctionDetails struct {
	Name        string `json:"name"`                  // Function name (required)
	Description string `json:"description,omitempty"` // What the function does

	// Parameters is the JSON Schema for the arguments. It is kept as an
	// untyped value so adapters can detect and repair malformed schemas.
	Parameters interface{} `json:"parameters"`
}

// Tool represents a tool declaration (OpenAI universal format).
//
// Function tools are converted for the wire. Provider tools (Type
// ToolTypeProvider, identified by ID) are only meaningful to providers that
// host them; other adapters drop them with a warning.
type Tool struct {
	Type     string          `json:"type"`         // "function" or "provider"
	ID       string          `json:"id,omitempty"` // Provider tool id (e.g. "google.search")
	Function FunctionDetails `json:"function"`     // Function definition
}

// Validate checks if a function Tool is properly configured
func (t *Tool) Validate() error {
	if t.Type == "" {
		return errors.New("tool type is required")
	}

	if t.Type != ToolTypeFunction {
		return fmt.Errorf("unsupported tool type: %s (only 'function' is supported)", t.Type)
	}

	if t.Function.Name == "" {
		return errors.New("function name is required")
	}

	schema, ok := t.Function.Parameters.(map[string]interface{})
	if !ok || schema == nil {
		return errors.New("function parameters must be a JSON schema object")
	}

	if schemaType, ok := schema["type"].(string); !ok || schemaType != "object" {
		return errors.New("function parameters must be a JSON schema with type 'object'")
	}

	return nil
}

// ToolChoice specifies tool selection behavior
type ToolChoice struct {
	Mode     ToolChoiceMode `json:"mode"`                // Selection mode
	ToolName *string        `json:"tool_name,omitempty"` // Required when Mode is ToolChoiceModeSpecific
}

// Validate checks if the ToolChoice is properly configured
func (tc *ToolChoice) Validate() error {
	if tc.Mode == ToolChoiceModeSpecific && tc.ToolName == nil {
		return errors.New("tool_name is required when mode is 'specific'")
	}

	if tc.Mode == ToolChoiceModeSpecific && *tc.ToolName == "" {
		return errors.New("tool_name cannot be empty when mode is 'specific'")
	}

	switch tc.Mode {
	case ToolChoiceModeAuto, ToolChoiceModeRequired, ToolChoiceModeNone, ToolChoiceModeSpecific:
	default:
		return fmt.Errorf("invalid tool choice mode: %s", tc.Mode)
	}

	return nil
}

// NewToolChoice creates a new ToolChoice with the specified mode
func NewToolChoice(mode ToolChoiceMode) (*ToolChoice, error) {
	tc := &ToolChoice{
		Mode: mode,
	}

	if err := tc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool choice: %w", err)
	}

	return tc, nil
}

// NewSpecificToolChoice creates a ToolChoice for a specific tool
func NewSpecificToolChoice(toolName string) (*ToolChoice, error) {
	tc := &ToolChoice{
		Mode:     ToolChoiceModeSpecific,
		ToolName: &toolName,
	}

	if err := tc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid specific tool choice: %w", err)
	}

	return tc, nil
}
