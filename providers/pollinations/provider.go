package pollinations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

const (
	// DefaultBaseURL is the unified Pollinations chat completions endpoint.
	DefaultBaseURL = "https://gen.pollinations.ai/v1/chat/completions"

	// LegacyBaseURL is the older text endpoint, kept for existing integrations.
	LegacyBaseURL = "https://text.pollinations.ai/openai"

	// APIKeyEnvVar is read when no API key option is given.
	APIKeyEnvVar = "POLLINATIONS_API_KEY"

	// DefaultName is the provider name and the providerOptions key.
	DefaultName = string(llmprovider.ProviderPollinations)

	contentTypeJSON = "application/json"
)

// Provider implements llmprovider.Provider for the Pollinations
// OpenAI-compatible chat completions API.
//
// An API key is optional: without one requests go to the anonymous tier.
// Model ids are not checked against the catalog; Pollinations is the source
// of truth and the catalog only drives warnings.
type Provider struct {
	name       string
	apiKey     string
	baseURL    string
	referrer   string
	headers    map[string]string
	httpClient *http.Client
	logger     logrus.FieldLogger
	generateID func() string

	capabilities *llmprovider.CapabilityRegistry
	builder      *requestBuilder
}

// Option configures a Provider.
type Option func(*Provider)

// WithAPIKey sets the API key, overriding POLLINATIONS_API_KEY.
func WithAPIKey(apiKey string) Option {
	return func(p *Provider) { p.apiKey = apiKey }
}

// WithBaseURL sets the chat completions endpoint. A trailing slash is removed.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithLegacyURLs switches to the legacy endpoint.
func WithLegacyURLs() Option {
	return func(p *Provider) { p.baseURL = LegacyBaseURL }
}

// WithReferrer sets the Referer header used by Pollinations for attribution.
func WithReferrer(referrer string) Option {
	return func(p *Provider) { p.referrer = referrer }
}

// WithHeaders adds custom request headers.
func WithHeaders(headers map[string]string) Option {
	return func(p *Provider) {
		for k, v := range headers {
			p.headers[k] = v
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) { p.httpClient = client }
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Provider) { p.logger = logger }
}

// WithIDGenerator sets the generator used for source ids.
func WithIDGenerator(generateID func() string) Option {
	return func(p *Provider) { p.generateID = generateID }
}

// WithName overrides the provider name (and the providerOptions key).
func WithName(name string) Option {
	return func(p *Provider) { p.name = name }
}

// WithSettings sets provider-level request body fields sent on every call.
func WithSettings(settings map[string]interface{}) Option {
	return func(p *Provider) {
		for k, v := range settings {
			p.builder.settings[k] = v
		}
	}
}

// WithCapabilities replaces the embedded model catalog.
func WithCapabilities(registry *llmprovider.CapabilityRegistry) Option {
	return func(p *Provider) { p.capabilities = registry }
}

// NewProvider creates a Pollinations provider.
func NewProvider(opts ...Option) (*Provider, error) {
	p := &Provider{
		name:       DefaultName,
		apiKey:     os.Getenv(APIKeyEnvVar),
		baseURL:    DefaultBaseURL,
		headers:    make(map[string]string),
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logrus.StandardLogger(),
		generateID: uuid.NewString,
		builder:    &requestBuilder{settings: make(map[string]interface{})},
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.baseURL == "" {
		return nil, fmt.Errorf("pollinations: base URL must not be empty")
	}

	if p.capabilities == nil {
		registry, err := llmprovider.NewDefaultCapabilityRegistry()
		if err != nil {
			return nil, err
		}
		p.capabilities = registry
	}

	p.builder.providerName = p.name
	p.builder.validator = llmprovider.NewDefaultValidationEngine(p.capabilities)

	return p, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.name
}

// BaseURL returns the chat completions endpoint in use.
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// SupportsModel accepts any non-empty model id.
func (p *Provider) SupportsModel(model string) bool {
	return strings.TrimSpace(model) != ""
}

// Capabilities returns the model catalog used for warnings.
func (p *Provider) Capabilities() *llmprovider.CapabilityRegistry {
	return p.capabilities
}

// validateRequest runs the checks shared by both call paths.
func (p *Provider) validateRequest(req *llmprovider.GenerateRequest) error {
	if !p.SupportsModel(req.Model) {
		return &llmprovider.ModelError{
			Model:    req.Model,
			Provider: p.name,
			Reason:   "model id must not be empty",
			Err:      llmprovider.ErrInvalidModel,
		}
	}
	return llmprovider.ValidateRequestParams(req.Params)
}

// GenerateResponse generates a non-streaming response from Pollinations.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	body, warnings, err := p.builder.build(req, false)
	if err != nil {
		return nil, err
	}

	log := p.requestLogger(req, false)
	log.Debug("Sending Pollinations request")

	resp, err := p.do(ctx, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, p.wrapTransportError(fmt.Errorf("failed to read response body: %w", err))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, &llmprovider.InvalidResponseDataError{
			Provider: p.name,
			Message:  fmt.Sprintf("failed to parse response: %v", err),
			Data:     respBody,
		}
	}

	response, err := convertFromChatCompletionResponse(&chatResp, warnings, p.name, p.generateID)
	if err != nil {
		return nil, err
	}
	response.RequestBody = json.RawMessage(body)

	log.WithFields(logrus.Fields{
		"finish_reason": response.FinishReason,
		"input_tokens":  response.Usage.InputTokens.Total,
		"output_tokens": response.Usage.OutputTokens.Total,
	}).Debug("Pollinations response received")

	return response, nil
}

// do sends body to the endpoint and returns a 2xx response. Any other status
// is converted to an error and the body is closed.
func (p *Provider) do(ctx context.Context, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.buildHeaders() {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, p.wrapTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, p.handleErrorResponse(resp)
	}

	return resp, nil
}

// buildHeaders returns custom headers overlaid with auth, referrer and content type.
func (p *Provider) buildHeaders() map[string]string {
	headers := make(map[string]string, len(p.headers)+3)
	for k, v := range p.headers {
		headers[k] = v
	}
	if p.apiKey != "" {
		headers["Authorization"] = "Bearer " + p.apiKey
	}
	if p.referrer != "" {
		headers["Referer"] = p.referrer
	}
	headers["Content-Type"] = contentTypeJSON
	return headers
}

func (p *Provider) requestLogger(req *llmprovider.GenerateRequest, stream bool) logrus.FieldLogger {
	return p.logger.WithFields(logrus.Fields{
		"provider": p.name,
		"model":    req.Model,
		"stream":   stream,
	})
}

var _ llmprovider.Provider = (*Provider)(nil)
