package pollinations

import (
	"encoding/json"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

// ===== Outbound: library messages → Pollinations messages =====

// convertToPollinationsMessages maps the conversation to wire messages.
// Parts the wire format cannot express are dropped with a warning; an unknown
// role fails the whole conversion.
func convertToPollinationsMessages(messages []llmprovider.Message) ([]Message, []llmprovider.Warning, error) {
	var warnings []llmprovider.Warning
	result := make([]Message, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llmprovider.RoleSystem:
			result = append(result, Message{Role: string(msg.Role), Content: systemText(msg)})

		case llmprovider.RoleUser:
			userMsg, userWarnings := convertUserMessage(msg)
			warnings = append(warnings, userWarnings...)
			result = append(result, userMsg)

		case llmprovider.RoleAssistant:
			assistantMsg, assistantWarnings, err := convertAssistantMessage(msg)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, assistantWarnings...)
			result = append(result, assistantMsg)

		case llmprovider.RoleTool:
			toolMsgs, toolWarnings, err := convertToolMessage(msg)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, toolWarnings...)
			result = append(result, toolMsgs...)

		default:
			return nil, nil, &llmprovider.UnsupportedRoleError{Role: string(msg.Role)}
		}
	}

	return result, warnings, nil
}

// convertUserMessage keeps a single text part as a plain string; anything
// else becomes a list of text and image_url parts.
func convertUserMessage(msg llmprovider.Message) (Message, []llmprovider.Warning) {
	parts := msg.EffectiveParts()

	if len(parts) == 1 {
		if text, ok := parts[0].(llmprovider.TextPart); ok {
			return Message{Role: string(llmprovider.RoleUser), Content: text.Text}, nil
		}
	}

	var warnings []llmprovider.Warning
	content := make([]ContentPart, 0, len(parts))

	for _, part := range parts {
		switch p := part.(type) {
		case llmprovider.TextPart:
			text := p.Text
			content = append(content, ContentPart{Type: "text", Text: &text})

		case llmprovider.FilePart:
			if !strings.HasPrefix(p.MediaType, "image/") {
				warnings = append(warnings, llmprovider.OtherWarning("File type %s is not supported for Pollinations API", p.MediaType))
				continue
			}
			mediaType := p.MediaType
			if mediaType == "image/*" {
				mediaType = "image/jpeg"
			}
			content = append(content, ContentPart{
				Type:     "image_url",
				ImageURL: &ImageURL{URL: llmprovider.FileDataURL(p, mediaType)},
			})

		default:
			warnings = append(warnings, llmprovider.OtherWarning("User content part type %s is not supported", part.PartType()))
		}
	}

	return Message{Role: string(llmprovider.RoleUser), Content: content}, warnings
}

// systemText joins the text parts of a system message. Other part kinds have
// no meaning in a system turn and are ignored.
func systemText(msg llmprovider.Message) string {
	var text strings.Builder
	for _, part := range msg.EffectiveParts() {
		if p, ok := part.(llmprovider.TextPart); ok {
			text.WriteString(p.Text)
		}
	}
	return text.String()
}

// convertAssistantMessage folds text and reasoning into one string and maps
// tool calls. Content is null when there is no text.
func convertAssistantMessage(msg llmprovider.Message) (Message, []llmprovider.Warning, error) {
	var warnings []llmprovider.Warning
	var text strings.Builder
	var toolCalls []ToolCall

	for _, part := range msg.EffectiveParts() {
		switch p := part.(type) {
		case llmprovider.TextPart:
			text.WriteString(p.Text)

		case llmprovider.ToolCallPart:
			args, err := json.Marshal(p.Input)
			if err != nil {
				return Message{}, nil, fmt.Errorf("failed to marshal input of tool call %s: %w", p.ToolCallID, err)
			}
			toolCalls = append(toolCalls, ToolCall{
				ID:   p.ToolCallID,
				Type: llmprovider.ToolTypeFunction,
				Function: FunctionCall{
					Name:      p.ToolName,
					Arguments: string(args),
				},
			})

		case llmprovider.ReasoningPart:
			warnings = append(warnings, llmprovider.OtherWarning("Reasoning content is not supported by Pollinations API; including as text"))
			text.WriteString(p.Text)

		default:
			warnings = append(warnings, llmprovider.OtherWarning("Assistant content part type %s is not supported", part.PartType()))
		}
	}

	out := Message{Role: string(llmprovider.RoleAssistant), ToolCalls: toolCalls}
	if text.Len() > 0 {
		out.Content = text.String()
	}
	return out, warnings, nil
}

// convertToolMessage fans tool results out to one wire message each.
func convertToolMessage(msg llmprovider.Message) ([]Message, []llmprovider.Warning, error) {
	var result []Message

	for _, part := range msg.Parts {
		toolResult, ok := part.(llmprovider.ToolResultPart)
		if !ok {
			continue
		}

		content, err := toolResultContent(toolResult.Output)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert result of tool call %s: %w", toolResult.ToolCallID, err)
		}

		callID := toolResult.ToolCallID
		name := toolResult.ToolName
		result = append(result, Message{
			Role:       string(llmprovider.RoleTool),
			Content:    content,
			ToolCallID: &callID,
			Name:       &name,
		})
	}

	if len(result) > 0 {
		return result, nil, nil
	}

	// Without results the raw parts are sent so the turn is not lost.
	raw, err := json.Marshal(nonNilParts(msg.Parts))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tool message: %w", err)
	}
	empty := ""
	fallback := Message{
		Role:       string(llmprovider.RoleTool),
		Content:    string(raw),
		ToolCallID: &empty,
		Name:       &empty,
	}
	return []Message{fallback}, []llmprovider.Warning{llmprovider.OtherWarning("Tool message has no tool results")}, nil
}

func nonNilParts(parts []llmprovider.Part) []llmprovider.Part {
	if parts == nil {
		return []llmprovider.Part{}
	}
	return parts
}

// toolResultContent renders a tool output as the string content of a tool message.
func toolResultContent(output llmprovider.ToolResultOutput) (string, error) {
	switch output.Type {
	case llmprovider.ToolOutputTypeText, llmprovider.ToolOutputTypeErrorText:
		if s, ok := output.Value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(output.Value), nil

	case llmprovider.ToolOutputTypeJSON, llmprovider.ToolOutputTypeErrorJSON:
		data, err := json.Marshal(output.Value)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case llmprovider.ToolOutputTypeContent:
		items, _ := output.Value.([]llmprovider.ToolOutputContent)
		texts := make([]string, 0, len(items))
		for _, item := range items {
			if item.Type == "text" {
				texts = append(texts, item.Text)
			} else {
				texts = append(texts, "")
			}
		}
		return strings.Join(texts, "\n"), nil

	default:
		data, err := json.Marshal(output)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// ===== Inbound: Pollinations response → library response =====

// convertFromChatCompletionResponse maps a complete response. Content order is
// reasoning, text, citation sources, grounding sources, annotation sources,
// tool calls. Request warnings are carried over and extended.
func convertFromChatCompletionResponse(
	resp *ChatCompletionResponse,
	warnings []llmprovider.Warning,
	providerName string,
	generateID func() string,
) (*llmprovider.GenerateResponse, error) {
	if len(resp.Choices) == 0 {
		data, _ := json.Marshal(resp)
		return nil, &llmprovider.InvalidResponseDataError{
			Provider: providerName,
			Message:  "No choices in response",
			Data:     data,
		}
	}

	choice := resp.Choices[0]
	message := choice.Message
	var content []llmprovider.Content

	if reasoning := derefString(message.ReasoningContent); reasoning != "" {
		content = append(content, llmprovider.ReasoningContent{Text: reasoning})
	}

	if text := derefString(message.Content); text != "" {
		content = append(content, llmprovider.TextContent{Text: text})
	}

	for _, url := range resp.Citations {
		if url == "" {
			continue
		}
		content = append(content, llmprovider.Source{
			SourceType: llmprovider.SourceTypeURL,
			ID:         generateID(),
			URL:        url,
		})
	}

	for _, source := range extractGroundingSources(choice.GroundingMetadata, generateID) {
		content = append(content, source)
	}

	for _, annotation := range message.Annotations {
		if source, ok := annotationSource(annotation, generateID); ok {
			content = append(content, source)
		}
	}

	for _, toolCall := range message.ToolCalls {
		if toolCall.ID == "" || toolCall.Function.Name == "" {
			warnings = append(warnings, llmprovider.OtherWarning("Invalid tool call in response: missing id or function name"))
			continue
		}

		input := toolCall.Function.Arguments
		if input == "" {
			input = "{}"
		}
		content = append(content, llmprovider.ToolCall{
			ToolCallID: toolCall.ID,
			ToolName:   toolCall.Function.Name,
			Input:      input,
		})
	}

	rawReason := derefString(choice.FinishReason)

	return &llmprovider.GenerateResponse{
		Content:         content,
		FinishReason:    mapFinishReason(rawReason, llmprovider.HasClientToolCalls(content)),
		RawFinishReason: rawReason,
		Usage:           convertUsage(resp.Usage),
		Warnings:        warnings,
		Model:           resp.Model,
	}, nil
}
