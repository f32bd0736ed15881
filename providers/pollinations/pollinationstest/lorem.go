package pollinationstest

import (
	"encoding/json"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/google/uuid"
)

// Chunk is a streamed chat completion payload in wire shape.
type Chunk map[string]interface{}

// Generator produces wire payloads filled with lorem ipsum text.
type Generator struct {
	model   string
	id      string
	created int64
	lorem   *loremgen.Lorem
}

// NewGenerator creates a generator for responses reported as model.
func NewGenerator(model string) *Generator {
	return &Generator{
		model:   model,
		id:      "chatcmpl-" + uuid.NewString(),
		created: time.Now().Unix(),
		lorem:   loremgen.New(),
	}
}

// Words returns roughly n words of lorem ipsum, split into word-sized deltas
// that concatenate back to the full text.
func (g *Generator) Words(n int) []string {
	var words []string
	for len(words) < n {
		words = append(words, strings.Fields(g.lorem.Sentence(5, 15))...)
	}
	words = words[:n]

	deltas := make([]string, len(words))
	for i, w := range words {
		if i == 0 {
			deltas[i] = w
		} else {
			deltas[i] = " " + w
		}
	}
	return deltas
}

// Chunk builds a payload with one choice carrying delta.
func (g *Generator) Chunk(delta map[string]interface{}) Chunk {
	return Chunk{
		"id":      g.id,
		"object":  "chat.completion.chunk",
		"created": g.created,
		"model":   g.model,
		"choices": []interface{}{
			map[string]interface{}{"index": 0, "delta": delta},
		},
	}
}

// FinishChunk builds the payload carrying the finish reason and usage.
func (g *Generator) FinishChunk(reason string, promptTokens, completionTokens int) Chunk {
	return Chunk{
		"id":      g.id,
		"object":  "chat.completion.chunk",
		"created": g.created,
		"model":   g.model,
		"choices": []interface{}{
			map[string]interface{}{"index": 0, "delta": map[string]interface{}{}, "finish_reason": reason},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
	}
}

// TextStream returns SSE lines streaming words of answer text, optionally
// preceded by reasoning, ending with a stop finish and the sentinel.
func (g *Generator) TextStream(reasoningWords, textWords int) []string {
	lines := []string{DataLine(g.Chunk(map[string]interface{}{"role": "assistant"}))}

	for _, w := range g.Words(reasoningWords) {
		lines = append(lines, DataLine(g.Chunk(map[string]interface{}{"reasoning_content": w})))
	}
	for _, w := range g.Words(textWords) {
		lines = append(lines, DataLine(g.Chunk(map[string]interface{}{"content": w})))
	}

	lines = append(lines,
		DataLine(g.FinishChunk("stop", 12, reasoningWords+textWords)),
		DoneLine(),
	)
	return lines
}

// ToolCallStream returns SSE lines streaming a single tool call whose JSON
// arguments are cut into the given number of fragments. The first fragment
// carries id and name; later ones only the index.
func (g *Generator) ToolCallStream(toolName string, args map[string]interface{}, fragments int) []string {
	raw, err := json.Marshal(args)
	if err != nil {
		panic("pollinationstest: cannot marshal tool arguments: " + err.Error())
	}

	callID := "call_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	lines := []string{DataLine(g.Chunk(map[string]interface{}{"role": "assistant"}))}

	for i, piece := range splitN(string(raw), fragments) {
		call := map[string]interface{}{
			"index":    0,
			"function": map[string]interface{}{"arguments": piece},
		}
		if i == 0 {
			call["id"] = callID
			call["type"] = "function"
			call["function"].(map[string]interface{})["name"] = toolName
		}
		lines = append(lines, DataLine(g.Chunk(map[string]interface{}{
			"tool_calls": []interface{}{call},
		})))
	}

	lines = append(lines,
		DataLine(g.FinishChunk("tool_calls", 20, len(raw)/4)),
		DoneLine(),
	)
	return lines
}

// Completion builds a non-streaming response with a paragraph of text.
func (g *Generator) Completion() map[string]interface{} {
	text := g.lorem.Paragraph(3, 5)
	return map[string]interface{}{
		"id":      g.id,
		"object":  "chat.completion",
		"created": g.created,
		"model":   g.model,
		"choices": []interface{}{
			map[string]interface{}{
				"index":         0,
				"message":       map[string]interface{}{"role": "assistant", "content": text},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     12,
			"completion_tokens": len(strings.Fields(text)),
			"total_tokens":      12 + len(strings.Fields(text)),
		},
	}
}

// splitN cuts s into n pieces of roughly equal size (fewer if s is short).
func splitN(s string, n int) []string {
	if n <= 1 || len(s) <= n {
		return []string{s}
	}
	size := (len(s) + n - 1) / n
	var pieces []string
	for len(s) > size {
		pieces = append(pieces, s[:size])
		s = s[size:]
	}
	return append(pieces, s)
}
