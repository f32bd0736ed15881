package llmprovider

// StreamPartType is the tag carried by every canonical stream part.
type StreamPartType string

// Stream part tags
const (
	StreamPartStreamStart      StreamPartType = "stream-start"
	StreamPartResponseMetadata StreamPartType = "response-metadata"
	StreamPartSource           StreamPartType = "source"
	StreamPartReasoningStart   StreamPartType = "reasoning-start"
	StreamPartReasoningDelta   StreamPartType = "reasoning-delta"
	StreamPartReasoningEnd     StreamPartType = "reasoning-end"
	StreamPartTextStart        StreamPartType = "text-start"
	StreamPartTextDelta        StreamPartType = "text-delta"
	StreamPartTextEnd          StreamPartType = "text-end"
	StreamPartToolInputStart   StreamPartType = "tool-input-start"
	StreamPartToolInputDelta   StreamPartType = "tool-input-delta"
	StreamPartToolInputEnd     StreamPartType = "tool-input-end"
	StreamPartToolCall         StreamPartType = "tool-call"
	StreamPartFinish           StreamPartType = "finish"
)

// StreamPart is a sealed interface over the canonical streaming events.
// Consumers switch on the concrete type; the unexported marker method
// prevents implementations outside this package.
//
// Ordering guarantee: every *Delta or *End part for a given ID is preceded by
// exactly one matching *Start part for that ID, with no *End in between.
type StreamPart interface {
	Type() StreamPartType
	streamPart()
}

// StreamStart is always the first part of a stream.
type StreamStart struct {
	// Warnings collected while building the request
	Warnings []Warning
}

// ResponseMetadata reports the model that actually served the request.
type ResponseMetadata struct {
	ModelID string
}

// ReasoningStart opens the reasoning segment.
type ReasoningStart struct {
	ID string
}

// ReasoningDelta carries incremental reasoning text.
type ReasoningDelta struct {
	ID    string
	Delta string
}

// ReasoningEnd closes the reasoning segment.
type ReasoningEnd struct {
	ID string
}

// TextStart opens the answer text segment.
type TextStart struct {
	ID string
}

// TextDelta carries incremental answer text.
type TextDelta struct {
	ID    string
	Delta string
}

// TextEnd closes the answer text segment.
type TextEnd struct {
	ID string
}

// ToolInputStart opens a tool call argument segment. ID is the tool call ID.
type ToolInputStart struct {
	ID       string
	ToolName string
}

// ToolInputDelta carries a fragment of the tool call's JSON arguments.
type ToolInputDelta struct {
	ID    string
	Delta string
}

// ToolInputEnd closes a tool call argument segment.
type ToolInputEnd struct {
	ID string
}

// Finish is the final part of a cleanly completed stream.
// A stream that is aborted never produces a Finish.
type Finish struct {
	FinishReason FinishReason

	// RawFinishReason is the vendor value before mapping (empty if absent)
	RawFinishReason string

	Usage Usage
}

func (StreamStart) Type() StreamPartType      { return StreamPartStreamStart }
func (ResponseMetadata) Type() StreamPartType { return StreamPartResponseMetadata }
func (Source) Type() StreamPartType           { return StreamPartSource }
func (ReasoningStart) Type() StreamPartType   { return StreamPartReasoningStart }
func (ReasoningDelta) Type() StreamPartType   { return StreamPartReasoningDelta }
func (ReasoningEnd) Type() StreamPartType     { return StreamPartReasoningEnd }
func (TextStart) Type() StreamPartType        { return StreamPartTextStart }
func (TextDelta) Type() StreamPartType        { return StreamPartTextDelta }
func (TextEnd) Type() StreamPartType          { return StreamPartTextEnd }
func (ToolInputStart) Type() StreamPartType   { return StreamPartToolInputStart }
func (ToolInputDelta) Type() StreamPartType   { return StreamPartToolInputDelta }
func (ToolInputEnd) Type() StreamPartType     { return StreamPartToolInputEnd }
func (ToolCall) Type() StreamPartType         { return StreamPartToolCall }
func (Finish) Type() StreamPartType           { return StreamPartFinish }

func (StreamStart) streamPart()      {}
func (ResponseMetadata) streamPart() {}
func (Source) streamPart()           {}
func (ReasoningStart) streamPart()   {}
func (ReasoningDelta) streamPart()   {}
func (ReasoningEnd) streamPart()     {}
func (TextStart) streamPart()        {}
func (TextDelta) streamPart()        {}
func (TextEnd) streamPart()          {}
func (ToolInputStart) streamPart()   {}
func (ToolInputDelta) streamPart()   {}
func (ToolInputEnd) streamPart()     {}
func (ToolCall) streamPart()         {}
func (Finish) streamPart()           {}

// Interface compliance checks.
var (
	_ StreamPart = StreamStart{}
	_ StreamPart = ResponseMetadata{}
	_ StreamPart = Source{}
	_ StreamPart = ReasoningStart{}
	_ StreamPart = ReasoningDelta{}
	_ StreamPart = ReasoningEnd{}
	_ StreamPart = TextStart{}
	_ StreamPart = TextDelta{}
	_ StreamPart = TextEnd{}
	_ StreamPart = ToolInputStart{}
	_ StreamPart = ToolInputDelta{}
	_ StreamPart = ToolInputEnd{}
	_ StreamPart = ToolCall{}
	_ StreamPart = Finish{}
)

// StreamEvent represents a single item on a streaming response channel.
// Exactly one of Part or Error is set.
type StreamEvent struct {
	// Part is the canonical event (nil if Error is set)
	Part StreamPart

	// Error reports a transport failure or cancellation. No further events
	// follow an error and the channel is closed afterwards.
	Error error
}

// CollectStream drains a stream channel into a slice of parts.
// It stops at the first error and returns the parts received before it.
func CollectStream(events <-chan StreamEvent) ([]StreamPart, error) {
	var parts []StreamPart
	for event := range events {
		if event.Error != nil {
			// Drain so the producer goroutine can exit
			for range events {
			}
			return parts, event.Error
		}
		parts = append(parts, event.Part)
	}
	return parts, nil
}
