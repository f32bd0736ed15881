package llmprovider

// ValidationEngine runs a list of rules against a request.
// Engines are plain values owned by a provider; there is no shared instance.
type ValidationEngine struct {
	rules []ValidationRule
}

// NewValidationEngine creates an engine with the given rules.
func NewValidationEngine(rules ...ValidationRule) *ValidationEngine {
	return &ValidationEngine{rules: rules}
}

// NewDefaultValidationEngine creates an engine with the built-in rules.
// registry may be nil, in which case capability checks are skipped.
func NewDefaultValidationEngine(registry *CapabilityRegistry) *ValidationEngine {
	return NewValidationEngine(
		&ParameterValidationRule{},
		&CapabilityValidationRule{registry: registry},
	)
}

// AddRule adds a validation rule to the engine
func (ve *ValidationEngine) AddRule(rule ValidationRule) {
	ve.rules = append(ve.rules, rule)
}

// RemoveRule removes a validation rule by name
func (ve *ValidationEngine) RemoveRule(name string) bool {
	for i, rule := range ve.rules {
		if rule.Name() == name {
			ve.rules = append(ve.rules[:i], ve.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Validate runs all rules in order and returns their warnings
func (ve *ValidationEngine) Validate(provider string, req *GenerateRequest) []Warning {
	var warnings []Warning
	for _, rule := range ve.rules {
		warnings = append(warnings, rule.Check(provider, req)...)
	}
	return warnings
}

// FilterWarningsByType returns warnings matching the specified types
func FilterWarningsByType(warnings []Warning, types ...WarningType) []Warning {
	filtered := make([]Warning, 0)
	typeMap := make(map[WarningType]bool)
	for _, t := range types {
		typeMap[t] = true
	}

	for _, w := range warnings {
		if typeMap[w.Type] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
