package llm2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetOf(m AssistantMessage) TransformTarget {
	return TransformTarget{API: m.API, Provider: m.Provider, ModelID: m.Model}
}

func TestTransformMessages_DropsErroredAndAbortedAssistantMessages(t *testing.T) {
	target := TransformTarget{API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), ModelID: "gpt-5"}
	msgs := []Message{
		NewAssistantMessage(AssistantMessage{StopReason: StopReasonError}),
		NewAssistantMessage(AssistantMessage{StopReason: StopReasonAborted}),
		NewAssistantMessage(AssistantMessage{API: target.API, Provider: target.Provider, Model: target.ModelID, StopReason: StopReasonStop}),
	}
	out := TransformMessages(msgs, target, nil)
	require.Len(t, out, 1)
	assert.Equal(t, StopReasonStop, out[0].Assistant.StopReason)
}

func TestTransformMessages_SameModelKeepsSignedThinkingByteIdentical(t *testing.T) {
	asst := AssistantMessage{
		API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), Model: "gpt-5",
		StopReason: StopReasonStop,
		Content:    []ContentBlock{ThinkingBlock("deep thought", "sig-123")},
	}
	target := targetOf(asst)
	out := TransformMessages([]Message{NewAssistantMessage(asst)}, target, nil)

	require.Len(t, out, 1)
	require.Len(t, out[0].Assistant.Content, 1)
	assert.Equal(t, "deep thought", out[0].Assistant.Content[0].Thinking)
	assert.Equal(t, "sig-123", out[0].Assistant.Content[0].ThinkingSignature)
}

func TestTransformMessages_CrossModelUnsignedThinkingBecomesText(t *testing.T) {
	asst := AssistantMessage{
		API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), Model: "gpt-5",
		StopReason: StopReasonStop,
		Content:    []ContentBlock{ThinkingBlock("deep thought", "")},
	}
	target := TransformTarget{API: APIMinimaxCompletions, Provider: KnownProviderOf(ProviderMinimax), ModelID: "minimax-m1"}
	out := TransformMessages([]Message{NewAssistantMessage(asst)}, target, nil)

	require.Len(t, out[0].Assistant.Content, 1)
	assert.Equal(t, ContentBlockTypeText, out[0].Assistant.Content[0].Type)
	assert.Equal(t, "deep thought", out[0].Assistant.Content[0].Text)
}

func TestTransformMessages_WhitespaceOnlyThinkingIsDropped(t *testing.T) {
	asst := AssistantMessage{StopReason: StopReasonStop, Content: []ContentBlock{ThinkingBlock("   \n\t", "")}}
	out := TransformMessages([]Message{NewAssistantMessage(asst)}, TransformTarget{}, nil)
	assert.Empty(t, out[0].Assistant.Content)
}

func TestTransformMessages_ToolCallIDNormalizationAppliesToLaterToolResult(t *testing.T) {
	asst := AssistantMessage{
		API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), Model: "gpt-5",
		StopReason: StopReasonStop,
		Content:    []ContentBlock{ToolCallBlock("old-id", "search", map[string]any{})},
	}
	target := TransformTarget{API: APIMinimaxCompletions, Provider: KnownProviderOf(ProviderMinimax), ModelID: "minimax-m1"}
	normalize := func(oldID string, _ TransformTarget, _ AssistantMessage) string { return "new-" + oldID }

	msgs := []Message{
		NewAssistantMessage(asst),
		NewToolResultMessage(ToolResultMessage{ToolCallID: "old-id"}),
	}
	out := TransformMessages(msgs, target, normalize)

	require.Len(t, out, 2)
	assert.Equal(t, "new-old-id", out[0].Assistant.Content[0].ToolCallID)
	assert.Equal(t, "new-old-id", out[1].ToolResult.ToolCallID)
}

// scenario 6: a tool call immediately followed by a user turn (no tool
// result) gets a synthetic error result spliced in between.
func TestTransformMessages_SyntheticToolResultBeforeUserBoundary(t *testing.T) {
	asst := AssistantMessage{
		API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), Model: "gpt-5",
		StopReason: StopReasonStop,
		Content:    []ContentBlock{ToolCallBlock("call-123", "lookup", map[string]any{})},
	}
	target := targetOf(asst)
	msgs := []Message{
		NewAssistantMessage(asst),
		NewUserMessage(UserMessage{Content: []UserContentBlock{{Type: UserContentText, Text: "continue"}}}),
	}
	out := TransformMessages(msgs, target, nil)

	require.Len(t, out, 3)
	assert.Equal(t, MessageKindToolResult, out[1].Kind)
	assert.Equal(t, "call-123", out[1].ToolResult.ToolCallID)
	assert.True(t, out[1].ToolResult.IsError)
	assert.Equal(t, "No result provided", out[1].ToolResult.Content[0].Text)
	assert.Equal(t, MessageKindUser, out[2].Kind)
}

func TestTransformMessages_SatisfiedToolCallGetsNoSyntheticResult(t *testing.T) {
	asst := AssistantMessage{
		API: APIOpenAICompletions, Provider: KnownProviderOf(ProviderOpenAI), Model: "gpt-5",
		StopReason: StopReasonStop,
		Content:    []ContentBlock{ToolCallBlock("call-1", "lookup", map[string]any{})},
	}
	target := targetOf(asst)
	msgs := []Message{
		NewAssistantMessage(asst),
		NewToolResultMessage(ToolResultMessage{ToolCallID: "call-1"}),
		NewUserMessage(UserMessage{Content: []UserContentBlock{{Type: UserContentText, Text: "thanks"}}}),
	}
	out := TransformMessages(msgs, target, nil)
	require.Len(t, out, 3)
}
