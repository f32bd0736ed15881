package pollinations

import (
	"strconv"

	"github.com/tidwall/gjson"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// Segment ids are "reasoning-0" and "0" for the first segment of each kind.
// A segment of the same kind that reopens after being closed gets the next
// number, so no id is ever started twice.
func reasoningSegmentID(seq int) string { return "reasoning-" + strconv.Itoa(seq) }
func textSegmentID(seq int) string { return strconv.Itoa(seq) }

// pendingToolCall accumulates one tool call keyed by its positional index.
// ID and Name are fixed once the call is started.
type pendingToolCall struct {
	ID       string
	Name     string
	Args     string
	Started  bool
	Finished bool
}

// deltaNormalizer converts streamed chat completion chunks into canonical
// stream parts. One instance serves exactly one stream.
//
// Reasoning and text segments are "reasoning-0" and "0" unless a kind
// reopens after closing; the reopened segment is "reasoning-1", "1" and so on.
type deltaNormalizer struct {
	warnings   []llmprovider.Warning
	generateID func() string

	firstChunkSeen   bool
	groundingEmitted bool
	reasoningOpen    bool
	textOpen         bool
	sawToolCall      bool

	reasoningSeq int
	textSeq      int

	toolCalls map[int]*pendingToolCall
	toolOrder []int
}

func newDeltaNormalizer(warnings []llmprovider.Warning, generateID func() string) *deltaNormalizer {
	return &deltaNormalizer{
		warnings:   warnings,
		generateID: generateID,
		toolCalls:  make(map[int]*pendingToolCall),
	}
}

// Process handles one payload and returns the parts it produces, in order.
func (n *deltaNormalizer) Process(chunk *ChatCompletionChunk) []llmprovider.StreamPart {
	var parts []llmprovider.StreamPart

	if !n.firstChunkSeen {
		n.firstChunkSeen = true
		parts = append(parts, llmprovider.StreamStart{Warnings: n.warnings})

		if chunk.Model != "" {
			parts = append(parts, llmprovider.ResponseMetadata{ModelID: chunk.Model})
		}

		for _, url := range chunk.Citations {
			if url == "" {
				continue
			}
			parts = append(parts, llmprovider.Source{
				SourceType: llmprovider.SourceTypeURL,
				ID:         n.generateID(),
				URL:        url,
			})
		}
	}

	if len(chunk.Choices) == 0 {
		return parts
	}
	choice := chunk.Choices[0]
	delta := choice.Delta

	if choice.GroundingMetadata != nil && !n.groundingEmitted {
		if sources := extractGroundingSources(choice.GroundingMetadata, n.generateID); sources != nil {
			for _, source := range sources {
				parts = append(parts, source)
			}
			n.groundingEmitted = true
		}
	}

	for _, annotation := range delta.Annotations {
		if source, ok := annotationSource(annotation, n.generateID); ok {
			parts = append(parts, source)
		}
	}

	if delta.ReasoningContent != "" {
		if !n.reasoningOpen {
			parts = append(parts, llmprovider.ReasoningStart{ID: reasoningSegmentID(n.reasoningSeq)})
			n.reasoningOpen = true
		}
		parts = append(parts, llmprovider.ReasoningDelta{ID: reasoningSegmentID(n.reasoningSeq), Delta: delta.ReasoningContent})
	}

	if delta.Content != "" {
		parts = n.closeReasoning(parts)
		if !n.textOpen {
			parts = append(parts, llmprovider.TextStart{ID: textSegmentID(n.textSeq)})
			n.textOpen = true
		}
		parts = append(parts, llmprovider.TextDelta{ID: textSegmentID(n.textSeq), Delta: delta.Content})
	}

	if len(delta.ToolCalls) > 0 {
		parts = n.closeReasoning(parts)
		for _, fragment := range delta.ToolCalls {
			parts = n.processToolFragment(parts, fragment)
		}
	}

	if choice.FinishReason != nil && *choice.FinishReason != "" {
		raw := *choice.FinishReason
		parts = n.closeSegments(parts)
		parts = n.finalizePending(parts)

		parts = append(parts, llmprovider.Finish{
			FinishReason:    mapFinishReason(raw, n.sawToolCall),
			RawFinishReason: raw,
			Usage:           convertUsage(chunk.Usage),
		})
	}

	return parts
}

// Flush closes whatever is still open after the last payload. It never
// produces a Finish part.
func (n *deltaNormalizer) Flush() []llmprovider.StreamPart {
	var parts []llmprovider.StreamPart
	parts = n.closeSegments(parts)
	parts = n.finalizePending(parts)
	return parts
}

func (n *deltaNormalizer) processToolFragment(parts []llmprovider.StreamPart, fragment ToolCallDelta) []llmprovider.StreamPart {
	if fragment.Index == nil {
		return parts
	}
	index := *fragment.Index

	var name, args string
	if fragment.Function != nil {
		name = fragment.Function.Name
		args = fragment.Function.Arguments
	}

	call, seen := n.toolCalls[index]
	if !seen {
		if fragment.Type != "" && fragment.Type != llmprovider.ToolTypeFunction {
			return parts
		}
		call = &pendingToolCall{}
		n.toolCalls[index] = call
		n.toolOrder = append(n.toolOrder, index)
	}

	if call.Finished {
		return parts
	}

	if call.Started {
		if args == "" {
			return parts
		}
		call.Args += args
		parts = append(parts, llmprovider.ToolInputDelta{ID: call.ID, Delta: args})
		if gjson.Valid(call.Args) {
			parts = n.completeToolCall(parts, call)
		}
		return parts
	}

	// Held until both id and name are known.
	if call.ID == "" {
		call.ID = fragment.ID
	}
	if call.Name == "" {
		call.Name = name
	}
	call.Args += args
	if call.ID == "" || call.Name == "" {
		return parts
	}

	call.Started = true
	parts = append(parts, llmprovider.ToolInputStart{ID: call.ID, ToolName: call.Name})

	if call.Args == "" {
		return parts
	}
	parts = append(parts, llmprovider.ToolInputDelta{ID: call.ID, Delta: call.Args})
	if gjson.Valid(call.Args) {
		parts = n.completeToolCall(parts, call)
	}
	return parts
}

func (n *deltaNormalizer) completeToolCall(parts []llmprovider.StreamPart, call *pendingToolCall) []llmprovider.StreamPart {
	call.Finished = true
	n.sawToolCall = true
	return append(parts,
		llmprovider.ToolInputEnd{ID: call.ID},
		llmprovider.ToolCall{ToolCallID: call.ID, ToolName: call.Name, Input: call.Args},
	)
}

// finalizePending emits every started but unfinished call, even when its
// arguments are not valid JSON, then clears the table. Calls that never got
// an id and name are dropped.
func (n *deltaNormalizer) finalizePending(parts []llmprovider.StreamPart) []llmprovider.StreamPart {
	for _, index := range n.toolOrder {
		call := n.toolCalls[index]
		if call.Finished || !call.Started {
			continue
		}
		if call.Args == "" {
			call.Args = "{}"
		}
		parts = n.completeToolCall(parts, call)
	}

	n.toolCalls = make(map[int]*pendingToolCall)
	n.toolOrder = nil
	return parts
}

func (n *deltaNormalizer) closeReasoning(parts []llmprovider.StreamPart) []llmprovider.StreamPart {
	if n.reasoningOpen {
		parts = append(parts, llmprovider.ReasoningEnd{ID: reasoningSegmentID(n.reasoningSeq)})
		n.reasoningOpen = false
		n.reasoningSeq++
	}
	return parts
}

func (n *deltaNormalizer) closeSegments(parts []llmprovider.StreamPart) []llmprovider.StreamPart {
	parts = n.closeReasoning(parts)
	if n.textOpen {
		parts = append(parts, llmprovider.TextEnd{ID: textSegmentID(n.textSeq)})
		n.textOpen = false
		n.textSeq++
	}
	return parts
}

// annotationSource maps a url_citation annotation to a URL source.
func annotationSource(annotation Annotation, generateID func() string) (llmprovider.Source, bool) {
	if annotation.URLCitation == nil || annotation.URLCitation.URL == "" {
		return llmprovider.Source{}, false
	}
	return llmprovider.Source{
		SourceType: llmprovider.SourceTypeURL,
		ID:         generateID(),
		URL:        annotation.URLCitation.URL,
		Title:      derefString(annotation.URLCitation.Title),
	}, true
}
