package llm2

import (
	"encoding/base64"
	"encoding/json"

	"github.com/openai/openai-go/v3/shared"
)

// chatRequest is the wire shape POSTed to an OpenAI-like completions
// endpoint. Fields are conditionally populated by compatibility flags; omitempty drops
// anything left at its zero value.
type chatRequest struct {
	Model           string                 `json:"model"`
	Stream          bool                   `json:"stream"`
	Messages        []wireMessage          `json:"messages"`
	StreamOptions   *streamOptions         `json:"stream_options,omitempty"`
	Store           *bool                  `json:"store,omitempty"`
	MaxTokens       *int                   `json:"max_tokens,omitempty"`
	MaxCompTokens   *int                   `json:"max_completion_tokens,omitempty"`
	Temperature     *float32               `json:"temperature,omitempty"`
	Tools           []wireTool             `json:"tools,omitempty"`
	ToolChoice      any                    `json:"tool_choice,omitempty"`
	ReasoningEffort shared.ReasoningEffort `json:"reasoning_effort,omitempty"`
	Thinking        *wireThinking          `json:"thinking,omitempty"`
	ReasoningSplit  *bool                  `json:"reasoning_split,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type wireThinking struct {
	Type string `json:"type"`
}

type wireMessage struct {
	Role       string         `json:"role"`
	Content    any            `json:"content,omitempty"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireToolCallFunc `json:"function"`
}

type wireToolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *wireImageURL `json:"image_url,omitempty"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

type wireTool struct {
	Type     string           `json:"type"`
	Function wireToolFunction `json:"function"`
}

type wireToolFunction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
	Strict      bool   `json:"strict"`
}

// buildRequestBody builds the request body shared by the OpenAI-like and MiniMax drivers.
func buildRequestBody(model Model, ctx Context, options Options, compat Compat) ([]byte, error) {
	req := chatRequest{
		Model:    model.ID,
		Stream:   true,
		Messages: convertMessages(model, ctx, options, compat),
	}

	if compat.SupportsUsageInStreaming {
		req.StreamOptions = &streamOptions{IncludeUsage: true}
	}
	if compat.SupportsStore {
		f := false
		req.Store = &f
	}
	if options.MaxTokens != nil {
		switch compat.MaxTokensField {
		case MaxTokensFieldMaxTokens:
			req.MaxTokens = options.MaxTokens
		default:
			req.MaxCompTokens = options.MaxTokens
		}
	}
	if options.Temperature != nil {
		req.Temperature = options.Temperature
	}
	if len(ctx.Tools) > 0 {
		req.Tools = convertTools(ctx.Tools)
	}
	if options.ToolChoice != nil {
		req.ToolChoice = convertToolChoice(*options.ToolChoice)
	}
	if model.Reasoning && compat.SupportsReasoningEffort && options.ReasoningEffort != "" {
		if compat.ThinkingFormat == ThinkingFormatZai {
			req.Thinking = &wireThinking{Type: "enabled"}
		} else {
			req.ReasoningEffort = shared.ReasoningEffort(options.ReasoningEffort)
		}
	}
	if model.API == APIMinimaxCompletions && model.Reasoning {
		t := true
		req.ReasoningSplit = &t
	}

	return json.Marshal(req)
}

func convertToolChoice(tc ToolChoice) any {
	switch tc.Mode {
	case "function":
		return map[string]any{
			"type":     "function",
			"function": map[string]any{"name": tc.Function},
		}
	case "":
		return nil
	default:
		return tc.Mode
	}
}

func convertTools(tools []Tool) []wireTool {
	out := make([]wireTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, wireTool{
			Type: "function",
			Function: wireToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
				Strict:      false,
			},
		})
	}
	return out
}

func convertMessages(model Model, ctx Context, options Options, compat Compat) []wireMessage {
	out := []wireMessage{}

	if ctx.SystemPrompt != "" {
		role := "system"
		if model.API != APIMinimaxCompletions && model.Reasoning && compat.SupportsDeveloperRole {
			role = "developer"
		}
		out = append(out, wireMessage{Role: role, Content: ctx.SystemPrompt})
	}

	for _, m := range ctx.Messages {
		switch m.Kind {
		case MessageKindUser:
			out = append(out, convertUserMessage(model, *m.User))
		case MessageKindToolResult:
			out = append(out, convertToolResultMessage(*m.ToolResult, compat))
		case MessageKindAssistant:
			if wm, ok := convertAssistantMessage(*m.Assistant, options, compat); ok {
				out = append(out, wm)
			}
		}
	}
	return out
}

func convertUserMessage(model Model, m UserMessage) wireMessage {
	allText := true
	for _, b := range m.Content {
		if b.Type != UserContentText {
			allText = false
			break
		}
	}
	if allText {
		var text string
		for _, b := range m.Content {
			text += b.Text
		}
		return wireMessage{Role: "user", Content: text}
	}

	var parts []wireContentPart
	for _, b := range m.Content {
		switch b.Type {
		case UserContentText:
			parts = append(parts, wireContentPart{Type: "text", Text: b.Text})
		case UserContentImage:
			if !model.AcceptsInput(InputImage) {
				continue
			}
			parts = append(parts, wireContentPart{
				Type: "image_url",
				ImageURL: &wireImageURL{
					URL: fittedImageDataURL(b.ImageMime, b.ImageData),
				},
			})
		}
	}
	return wireMessage{Role: "user", Content: parts}
}

func convertToolResultMessage(m ToolResultMessage, compat Compat) wireMessage {
	var text string
	for i, b := range m.Content {
		if b.Type != ToolResultText {
			continue
		}
		if i > 0 && text != "" {
			text += "\n"
		}
		text += b.Text
	}
	wm := wireMessage{Role: "tool", Content: text, ToolCallID: m.ToolCallID}
	if compat.RequiresToolResultName {
		wm.Name = m.ToolName
	}
	return wm
}

func convertAssistantMessage(m AssistantMessage, options Options, compat Compat) (wireMessage, bool) {
	thinkingMode := options.AssistantThinkingMode
	if compat.RequiresThinkingAsText && (thinkingMode == "" || thinkingMode == ThinkingModeOmit) {
		thinkingMode = ThinkingModePlainText
	}

	var parts []wireContentPart
	var calls []wireToolCall

	for _, b := range m.Content {
		switch b.Type {
		case ContentBlockTypeText:
			if b.Text != "" {
				parts = append(parts, wireContentPart{Type: "text", Text: b.Text})
			}
		case ContentBlockTypeThinking:
			switch thinkingMode {
			case ThinkingModePlainText:
				if b.Thinking != "" {
					parts = append(parts, wireContentPart{Type: "text", Text: b.Thinking})
				}
			case ThinkingModeThinkTags:
				if b.Thinking != "" {
					parts = append(parts, wireContentPart{Type: "text", Text: thinkOpenTag + b.Thinking + thinkCloseTag})
				}
			case ThinkingModeOmit:
				// dropped
			}
		case ContentBlockTypeToolCall:
			argsJSON, err := json.Marshal(b.ToolCallArgs)
			if err != nil {
				argsJSON = []byte("{}")
			}
			calls = append(calls, wireToolCall{
				ID:   b.ToolCallID,
				Type: "function",
				Function: wireToolCallFunc{
					Name:      b.ToolCallName,
					Arguments: string(argsJSON),
				},
			})
		}
	}

	if len(parts) == 0 && len(calls) == 0 {
		return wireMessage{}, false
	}

	wm := wireMessage{Role: "assistant", ToolCalls: calls}
	if len(parts) > 0 {
		wm.Content = parts
	}
	return wm, true
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Most providers reject images above these thresholds outright; downscale
// rather than fail the whole request.
const (
	maxImageBytes      = 5 * 1024 * 1024
	maxImageLongEdgePx = 2048
)

// fittedImageDataURL downsizes oversized user images before they're sent,
// falling back to the original bytes if they don't decode as an image.
func fittedImageDataURL(mime string, data []byte) string {
	raw := dataURL(mime, data)
	fitted, _, _, err := fitImageToLimits(raw, maxImageBytes, maxImageLongEdgePx)
	if err != nil {
		return raw
	}
	return fitted
}
