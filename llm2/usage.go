package llm2

// Cost holds per-bucket and total dollar amounts for a single turn.
type Cost struct {
	Input      float64
	Output     float64
	CacheRead  float64
	CacheWrite float64
	Total      float64
}

// Usage is the token accounting record carried on AssistantMessage.
type Usage struct {
	Input      int
	Output     int
	CacheRead  int
	CacheWrite int
	Total      int
	Cost       Cost
}

// StopReason classifies how an assistant turn ended.
type StopReason string

const (
	StopReasonStop    StopReason = "stop"
	StopReasonLength  StopReason = "length"
	StopReasonToolUse StopReason = "tool-use"
	StopReasonError   StopReason = "error"
	StopReasonAborted StopReason = "aborted"
)

// mapFinishReason maps a provider finish_reason string to a StopReason.
func mapFinishReason(s string) StopReason {
	switch s {
	case "stop":
		return StopReasonStop
	case "length":
		return StopReasonLength
	case "tool_calls", "function_call":
		return StopReasonToolUse
	case "content_filter":
		return StopReasonError
	default:
		return StopReasonStop
	}
}

// providerUsage is the wire shape of a provider's usage payload, covering
// the generic/MiniMax fields and the OpenAI-dialect extras. Unknown fields
// are ignored by encoding/json.
type providerUsage struct {
	PromptTokens          int                    `json:"prompt_tokens"`
	CompletionTokens      int                    `json:"completion_tokens"`
	TotalTokens           *int                   `json:"total_tokens"`
	CacheReadInputTokens  *int                   `json:"cache_read_input_tokens"`
	CacheCreationTokens   *int                   `json:"cache_creation_input_tokens"`
	Cost                  *float64               `json:"cost"`
	CostDetails           *providerCostDetails   `json:"cost_details"`
	PromptTokensDetails   *providerPromptDetails `json:"prompt_tokens_details"`
	CompletionTokenDetail *providerCompDetails   `json:"completion_tokens_details"`
}

type providerCostDetails struct {
	UpstreamInferencePromptCost      *float64 `json:"upstream_inference_prompt_cost"`
	UpstreamInferenceCompletionsCost *float64 `json:"upstream_inference_completions_cost"`
	UpstreamInferenceCost            *float64 `json:"upstream_inference_cost"`
}

type providerPromptDetails struct {
	CachedTokens    *int `json:"cached_tokens"`
	CacheWriteTokens *int `json:"cache_write_tokens"`
}

type providerCompDetails struct {
	ReasoningTokens *int `json:"reasoning_tokens"`
}

func intOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func floatOr(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}

// usageFromChunk implements the shared fallback cascade (generic /
// MiniMax path; no OpenAI-dialect reasoning-token adjustment here).
func usageFromChunk(u providerUsage) Usage {
	cacheRead := 0
	if u.CacheReadInputTokens != nil {
		cacheRead = *u.CacheReadInputTokens
	} else if u.PromptTokensDetails != nil {
		cacheRead = intOr(u.PromptTokensDetails.CachedTokens, 0)
	}

	cacheWrite := 0
	if u.CacheCreationTokens != nil {
		cacheWrite = *u.CacheCreationTokens
	} else if u.PromptTokensDetails != nil {
		cacheWrite = intOr(u.PromptTokensDetails.CacheWriteTokens, 0)
	}

	input := u.PromptTokens
	output := u.CompletionTokens
	total := intOr(u.TotalTokens, input+output)

	cost := Cost{}
	if u.CostDetails != nil {
		cost.Input = floatOr(u.CostDetails.UpstreamInferencePromptCost, 0)
		cost.Output = floatOr(u.CostDetails.UpstreamInferenceCompletionsCost, 0)
	}

	switch {
	case u.CostDetails != nil && u.CostDetails.UpstreamInferenceCost != nil:
		cost.Total = *u.CostDetails.UpstreamInferenceCost
	case u.Cost != nil:
		cost.Total = *u.Cost
	case cost.Input != 0 || cost.Output != 0:
		cost.Total = cost.Input + cost.Output
	default:
		cost.Total = 0
	}

	return Usage{
		Input:      input,
		Output:     output,
		CacheRead:  cacheRead,
		CacheWrite: cacheWrite,
		Total:      total,
		Cost:       cost,
	}
}

// applyOpenAIReasoningAdjustment implements the OpenAI-dialect variation of
// its variation: reasoning tokens fold into output, and prompt_tokens double-counts
// cached tokens so cache_read is subtracted back out of input.
func applyOpenAIReasoningAdjustment(u Usage, details *providerCompDetails) Usage {
	if details == nil || details.ReasoningTokens == nil {
		return u
	}
	u.Output += *details.ReasoningTokens
	u.Input -= u.CacheRead
	u.Total = u.Input + u.Output + u.CacheRead
	return u
}
