package llmprovider

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrInvalidModel indicates the requested model is not supported by the provider.
	ErrInvalidModel = errors.New("llmprovider: invalid or unsupported model")

	// ErrInvalidAPIKey indicates the API key is missing, malformed, or unauthorized.
	ErrInvalidAPIKey = errors.New("llmprovider: invalid API key")

	// ErrRateLimited indicates the provider's rate limit has been exceeded.
	ErrRateLimited = errors.New("llmprovider: rate limit exceeded")

	// ErrUnsupportedFeature indicates the requested feature is not available.
	// Examples: extended thinking on models that don't support it, vision on text-only models.
	ErrUnsupportedFeature = errors.New("llmprovider: unsupported feature")

	// ErrInvalidRequest indicates the request parameters are invalid.
	ErrInvalidRequest = errors.New("llmprovider: invalid request")

	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("llmprovider: provider unavailable")

	// ErrInvalidResponseData indicates the provider returned a structurally invalid payload.
	// Example: a non-streaming response without any choices.
	ErrInvalidResponseData = errors.New("llmprovider: invalid response data")

	// ErrUnsupportedRole indicates a conversation message has a role the provider cannot express.
	ErrUnsupportedRole = errors.New("llmprovider: unsupported message role")
)

// ModelError represents an error related to model validation or availability.
type ModelError struct {
	Model    string // The model that was requested
	Provider string // The provider name
	Reason   string // Human-readable explanation
	Err      error  // Wrapped error (usually ErrInvalidModel or ErrUnsupportedFeature)
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model '%s' for provider '%s': %s (%v)", e.Model, e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("model '%s' for provider '%s': %s", e.Model, e.Provider, e.Reason)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ValidationError represents an error in request parameter validation.
type ValidationError struct {
	Field  string // The parameter field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrInvalidRequest)
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for '%s' (value: %v): %s (%v)", e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for '%s' (value: %v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ProviderError represents an error from the underlying provider API.
type ProviderError struct {
	Provider   string // The provider name
	StatusCode int    // HTTP status code (0 for transport failures)
	Message    string // Error message from provider
	URL        string // Endpoint that was called
	Retryable  bool   // Whether this error is potentially retryable
	Err        error  // Wrapped sentinel error (ErrRateLimited, ErrProviderUnavailable, etc.) or transport cause
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// InvalidResponseDataError reports a provider payload that cannot be mapped.
type InvalidResponseDataError struct {
	Provider string // The provider name
	Message  string // What was wrong with the payload
	Data     []byte // The offending payload (may be truncated by the caller)
}

func (e *InvalidResponseDataError) Error() string {
	return fmt.Sprintf("provider '%s' returned invalid response data: %s", e.Provider, e.Message)
}

func (e *InvalidResponseDataError) Unwrap() error {
	return ErrInvalidResponseData
}

// UnsupportedRoleError reports a message role outside system/user/assistant/tool.
type UnsupportedRoleError struct {
	Role string
}

func (e *UnsupportedRoleError) Error() string {
	return fmt.Sprintf("Unsupported message role: %s", e.Role)
}

func (e *UnsupportedRoleError) Unwrap() error {
	return ErrUnsupportedRole
}

// invalidRequestErrors are causes that only a changed request can fix.
var invalidRequestErrors = []error{
	ErrInvalidRequest,
	ErrInvalidModel,
	ErrUnsupportedFeature,
	ErrUnsupportedRole,
}

// IsRetryable reports whether err may succeed on retry: rate limits,
// upstream unavailability and ProviderErrors marked Retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrProviderUnavailable)
}

// IsInvalidRequest reports whether err was caused by the request itself.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	for _, target := range invalidRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidAPIKey) {
		return true
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode == 401 || providerErr.StatusCode == 403
	}

	return false
}
