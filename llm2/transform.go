package llm2

import "time"

// TransformTarget identifies the model a message sequence is being prepared
// for, used to decide whether a given assistant message was produced by the
// same model it is now being replayed to.
type TransformTarget struct {
	API      Api
	Provider Provider
	ModelID  string
}

// ToolCallIDNormalizer rewrites a tool-call id for a new target model.
type ToolCallIDNormalizer func(oldID string, target TransformTarget, assistant AssistantMessage) string

// TransformMessages rewrites a message history for a new target model: per-block transforms, then synthetic tool-result insertion.
func TransformMessages(messages []Message, target TransformTarget, normalize ToolCallIDNormalizer) []Message {
	pass1 := transformPass(messages, target, normalize)
	return insertSyntheticToolResults(pass1)
}

func transformPass(messages []Message, target TransformTarget, normalize ToolCallIDNormalizer) []Message {
	idMap := map[string]string{}
	out := make([]Message, 0, len(messages))

	for _, m := range messages {
		switch m.Kind {
		case MessageKindUser:
			out = append(out, m)

		case MessageKindToolResult:
			tr := *m.ToolResult
			if newID, ok := idMap[tr.ToolCallID]; ok {
				tr.ToolCallID = newID
			}
			out = append(out, NewToolResultMessage(tr))

		case MessageKindAssistant:
			asst := *m.Assistant
			if asst.StopReason == StopReasonError || asst.StopReason == StopReasonAborted {
				continue
			}
			sameModel := target.Provider.Equal(asst.Provider) && target.API == asst.API && target.ModelID == asst.Model

			content := make([]ContentBlock, 0, len(asst.Content))
			for _, b := range asst.Content {
				switch b.Type {
				case ContentBlockTypeThinking:
					if nb, keep := transformThinkingBlock(b, sameModel); keep {
						content = append(content, nb)
					}
				case ContentBlockTypeText:
					content = append(content, transformTextBlock(b, sameModel))
				case ContentBlockTypeToolCall:
					content = append(content, transformToolCallBlock(b, sameModel, target, asst, normalize, idMap))
				default:
					content = append(content, b)
				}
			}
			asst.Content = content
			out = append(out, NewAssistantMessage(asst))
		}
	}
	return out
}

func transformThinkingBlock(b ContentBlock, sameModel bool) (ContentBlock, bool) {
	hasSignature := b.ThinkingSignature != ""
	if sameModel && hasSignature {
		return b, true
	}
	if isAllWhitespace(b.Thinking) {
		return b, false
	}
	if sameModel {
		return b, true
	}
	return TextBlock(b.Thinking), true
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func transformTextBlock(b ContentBlock, sameModel bool) ContentBlock {
	if sameModel {
		return b
	}
	b.TextSignature = ""
	return b
}

func transformToolCallBlock(b ContentBlock, sameModel bool, target TransformTarget, asst AssistantMessage, normalize ToolCallIDNormalizer, idMap map[string]string) ContentBlock {
	if sameModel {
		return b
	}
	b.ThoughtSignature = ""
	if normalize == nil {
		return b
	}
	newID := normalize(b.ToolCallID, target, asst)
	if newID != "" && newID != b.ToolCallID {
		idMap[b.ToolCallID] = newID
		b.ToolCallID = newID
	}
	return b
}

// insertSyntheticToolResults implements pass 2: any tool call not answered
// by the next boundary (an assistant message, before it updates pending; or
// a user message) gets a synthetic error result inserted ahead of it.
func insertSyntheticToolResults(messages []Message) []Message {
	out := make([]Message, 0, len(messages))
	var pending []ContentBlock
	satisfied := map[string]bool{}

	flush := func() {
		for _, call := range pending {
			if satisfied[call.ToolCallID] {
				continue
			}
			out = append(out, NewToolResultMessage(ToolResultMessage{
				ToolCallID: call.ToolCallID,
				ToolName:   call.ToolCallName,
				Content:    []ToolResultContentBlock{{Type: ToolResultText, Text: "No result provided"}},
				IsError:    true,
				Timestamp:  unixMillis(time.Now()),
			}))
		}
		pending = nil
		satisfied = map[string]bool{}
	}

	for _, m := range messages {
		switch m.Kind {
		case MessageKindUser:
			flush()
			out = append(out, m)
		case MessageKindAssistant:
			flush()
			out = append(out, m)
			pending = nil
			for _, b := range m.Assistant.Content {
				if b.Type == ContentBlockTypeToolCall {
					pending = append(pending, b)
				}
			}
		case MessageKindToolResult:
			satisfied[m.ToolResult.ToolCallID] = true
			out = append(out, m)
		}
	}
	flush()
	return out
}
