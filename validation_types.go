package llmprovider

import "fmt"

// WarningType classifies a non-fatal request or response issue
type WarningType string

const (
	// WarningTypeUnsupported means a requested feature was ignored
	WarningTypeUnsupported WarningType = "unsupported"

	// WarningTypeOther covers everything else (invalid schema, dropped part, ...)
	WarningTypeOther WarningType = "other"
)

// Warning is an informational notice attached to a response or stream.
// Warnings never interrupt processing; provider APIs are the source of truth.
type Warning struct {
	Type WarningType `json:"type"`

	// Feature and Details are set for unsupported warnings
	Feature string `json:"feature,omitempty"`
	Details string `json:"details,omitempty"`

	// Message is set for other warnings
	Message string `json:"message,omitempty"`
}

// UnsupportedWarning creates a warning for an ignored feature.
func UnsupportedWarning(feature, details string) Warning {
	return Warning{Type: WarningTypeUnsupported, Feature: feature, Details: details}
}

// OtherWarning creates a free-form warning.
func OtherWarning(format string, args ...any) Warning {
	return Warning{Type: WarningTypeOther, Message: fmt.Sprintf(format, args...)}
}

// String renders the warning for logs and CLIs
func (w Warning) String() string {
	if w.Type == WarningTypeUnsupported {
		if w.Details != "" {
			return fmt.Sprintf("unsupported %s: %s", w.Feature, w.Details)
		}
		return fmt.Sprintf("unsupported %s", w.Feature)
	}
	return w.Message
}

// ValidationRule interface allows adding custom validation logic
type ValidationRule interface {
	// Name returns a human-readable name for this rule
	Name() string

	// Check inspects a request and returns warnings
	Check(provider string, req *GenerateRequest) []Warning
}
