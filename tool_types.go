package llmprovider

import (
	"errors"
	"fmt"
)

// NewCustomTool creates a function tool (OpenAI format).
//
// Parameters:
//   - name: Function name (required)
//   - description: What the function does (required)
//   - parameters: JSON Schema object defining function parameters (required)
//
// Example parameters:
//
//	map[string]interface{}{
//	  "type": "object",
//	  "properties": map[string]interface{}{
//	    "location": map[string]interface{}{
//	      "type": "string",
//	      "description": "The city and state, e.g. San Francisco, CA",
//	    },
//	  },
//	  "required": []string{"location"},
//	}
func NewCustomTool(name string, description string, parameters map[string]interface{}) (*Tool, error) {
	if name == "" {
		return nil, errors.New("tool name is required")
	}

	if description == "" {
		return nil, errors.New("tool description is required")
	}

	if parameters == nil {
		return nil, errors.New("parameters are required")
	}

	tool := &Tool{
		Type: ToolTypeFunction,
		Function: FunctionDetails{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}

	if err := tool.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create custom tool: %w", err)
	}

	return tool, nil
}

// NewProviderTool declares a provider-hosted tool such as "google.search".
// Adapters that cannot host it drop it and report a warning.
func NewProviderTool(id string, name string) (*Tool, error) {
	if id == "" {
		return nil, errors.New("provider tool id is required")
	}

	if name == "" {
		name = id
	}

	return &Tool{
		Type:     ToolTypeProvider,
		ID:       id,
		Function: FunctionDetails{Name: name},
	}, nil
}

// NewSearchTool creates a client-side web search function tool.
func NewSearchTool() (*Tool, error) {
	tool, err := NewCustomTool("search", "Search the web for current information", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}
	return tool, nil
}
