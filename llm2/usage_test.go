package llm2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageFromChunk_BasicFallback(t *testing.T) {
	total := 30
	u := usageFromChunk(providerUsage{
		PromptTokens:     10,
		CompletionTokens: 20,
		TotalTokens:      &total,
	})
	assert.Equal(t, 10, u.Input)
	assert.Equal(t, 20, u.Output)
	assert.Equal(t, 30, u.Total)
	assert.Equal(t, 0, u.CacheRead)
}

func TestUsageFromChunk_TotalDefaultsToInputPlusOutput(t *testing.T) {
	u := usageFromChunk(providerUsage{PromptTokens: 5, CompletionTokens: 7})
	assert.Equal(t, 12, u.Total)
}

func TestUsageFromChunk_CacheReadFallsBackToPromptDetails(t *testing.T) {
	cached := 4
	u := usageFromChunk(providerUsage{
		PromptTokens:        10,
		CompletionTokens:    5,
		PromptTokensDetails: &providerPromptDetails{CachedTokens: &cached},
	})
	assert.Equal(t, 4, u.CacheRead)
}

func TestUsageFromChunk_CostCascade(t *testing.T) {
	totalCost := 0.05
	u := usageFromChunk(providerUsage{
		PromptTokens:     10,
		CompletionTokens: 5,
		CostDetails:      &providerCostDetails{UpstreamInferenceCost: &totalCost},
	})
	assert.Equal(t, 0.05, u.Cost.Total)
}

func TestUsageFromChunk_CostFallsBackToTopLevel(t *testing.T) {
	cost := 0.02
	u := usageFromChunk(providerUsage{PromptTokens: 1, CompletionTokens: 1, Cost: &cost})
	assert.Equal(t, 0.02, u.Cost.Total)
}

func TestApplyOpenAIReasoningAdjustment_FoldsReasoningIntoOutputAndAdjustsInput(t *testing.T) {
	u := Usage{Input: 100, Output: 20, CacheRead: 30}
	reasoning := 15
	adjusted := applyOpenAIReasoningAdjustment(u, &providerCompDetails{ReasoningTokens: &reasoning})

	assert.Equal(t, 70, adjusted.Input)   // 100 - cacheRead(30)
	assert.Equal(t, 35, adjusted.Output)  // 20 + reasoning(15)
	assert.Equal(t, 135, adjusted.Total)  // 70 + 35 + 30
}

func TestApplyOpenAIReasoningAdjustment_NoOpWithoutReasoningTokens(t *testing.T) {
	u := Usage{Input: 100, Output: 20}
	assert.Equal(t, u, applyOpenAIReasoningAdjustment(u, nil))
	assert.Equal(t, u, applyOpenAIReasoningAdjustment(u, &providerCompDetails{}))
}

func TestMapFinishReason(t *testing.T) {
	assert.Equal(t, StopReasonStop, mapFinishReason("stop"))
	assert.Equal(t, StopReasonLength, mapFinishReason("length"))
	assert.Equal(t, StopReasonToolUse, mapFinishReason("tool_calls"))
	assert.Equal(t, StopReasonToolUse, mapFinishReason("function_call"))
	assert.Equal(t, StopReasonError, mapFinishReason("content_filter"))
	assert.Equal(t, StopReasonStop, mapFinishReason("something_else"))
}
