package llmprovider

import (
	"context"
)

// Provider defines the interface that all LLM providers must implement.
//
// Types used by this interface:
//   - GenerateRequest, Message: defined in request.go
//   - GenerateResponse: defined in response.go
//   - StreamEvent, StreamPart: defined in streaming.go
type Provider interface {
	// GenerateResponse generates a complete response from the LLM provider (blocking).
	GenerateResponse(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// StreamResponse generates a streaming response from the LLM provider (non-blocking).
	// Returns a channel that emits StreamEvent as they arrive.
	// The channel is closed when streaming completes or encounters an error.
	// A clean completion ends with a Finish part; an aborted stream ends with
	// an Error event and no Finish. A consumer that stops reading must cancel
	// ctx so the producer can exit.
	//
	// Usage:
	//   events, err := provider.StreamResponse(ctx, req)
	//   if err != nil { return err }
	//   for event := range events {
	//     if event.Error != nil { handle error }
	//     switch part := event.Part.(type) {
	//     case llmprovider.TextDelta: ...
	//     case llmprovider.Finish: ...
	//     }
	//   }
	StreamResponse(ctx context.Context, req *GenerateRequest) (<-chan StreamEvent, error)

	// Name returns the provider name (e.g., "pollinations")
	Name() string

	// SupportsModel returns true if the provider accepts the given model.
	SupportsModel(model string) bool
}
