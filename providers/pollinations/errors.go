package pollinations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// maxErrorBodyBytes caps how much of an error body is read.
const maxErrorBodyBytes = 64 << 10

// handleErrorResponse converts a non-2xx response into a *llmprovider.ProviderError.
//
// Pollinations error bodies come in several shapes:
//
//	{"error": "...", "status": 400, "details": {"error": {"message": "..."}}}
//	{"error": {"message": "...", "type": "...", "code": "..."}}
//	{"error": "..."}
//	{"message": "..."}
//
// The most specific message wins; anything else falls back to the raw body.
func (p *Provider) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	url := p.baseURL
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}

	message := extractErrorMessage(resp.StatusCode, http.StatusText(resp.StatusCode), body)

	p.logger.WithFields(logrus.Fields{
		"provider":    p.name,
		"status_code": resp.StatusCode,
		"url":         url,
		"error":       message,
	}).Warn("Pollinations request failed")

	return &llmprovider.ProviderError{
		Provider:   p.name,
		StatusCode: resp.StatusCode,
		Message:    message,
		URL:        url,
		Retryable:  isRetryableStatus(resp.StatusCode),
		Err:        sentinelForStatus(resp.StatusCode),
	}
}

// extractErrorMessage picks the error message out of a response body.
func extractErrorMessage(status int, statusText string, body []byte) string {
	fallback := fmt.Sprintf("API call failed with status %d: %s", status, statusText)

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return fallback
	}

	if !gjson.Valid(text) {
		return fallback + " - " + text
	}

	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return fallback + " - " + text
	}

	if msg := parsed.Get("details.error.message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}

	errField := parsed.Get("error")
	if errField.IsObject() {
		if msg := errField.Get("message"); msg.Type == gjson.String {
			return msg.Str
		}
	}
	if errField.Type == gjson.String && errField.Str != "" {
		return errField.Str
	}

	if msg := parsed.Get("message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}

	return fallback + " - " + text
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}

// sentinelForStatus maps HTTP status codes to library sentinel errors.
func sentinelForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return llmprovider.ErrInvalidAPIKey
	case status == http.StatusTooManyRequests:
		return llmprovider.ErrRateLimited
	case status >= 500:
		return llmprovider.ErrProviderUnavailable
	default:
		return llmprovider.ErrInvalidRequest
	}
}

// wrapTransportError wraps a failure that happened before any HTTP status was
// received. Cancellation and deadline errors are returned unchanged so callers
// can test them with errors.Is.
func (p *Provider) wrapTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var providerErr *llmprovider.ProviderError
	if errors.As(err, &providerErr) {
		return err
	}

	return &llmprovider.ProviderError{
		Provider: p.name,
		Message:  err.Error(),
		URL:      p.baseURL,
		Err:      err,
	}
}
