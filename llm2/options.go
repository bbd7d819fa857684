package llm2

import "streamcore/secret_manager"

// AssistantThinkingMode governs how prior-turn thinking blocks of every
// assistant message are rendered back onto the wire. The unset value drops
// them like omit, unless the resolved compat sets RequiresThinkingAsText, in
// which case they render as plain text.
type AssistantThinkingMode string

const (
	ThinkingModeOmit      AssistantThinkingMode = "omit"
	ThinkingModePlainText AssistantThinkingMode = "plain-text"
	ThinkingModeThinkTags AssistantThinkingMode = "think-tags"
)

// ToolChoice mirrors the request-builder's tool_choice field: auto, none,
// required, or a forced function call.
type ToolChoice struct {
	Mode     string // "auto", "none", "required", "function"
	Function string // set when Mode == "function"
}

// Options carries everything a driver needs beyond the model and context:
// sampling parameters, the resolved or discoverable API key, and secrets
// fallback for callers that don't set ApiKey directly.
type Options struct {
	ApiKey                string
	MaxTokens             *int
	Temperature           *float32
	ReasoningEffort       string
	ToolChoice            *ToolChoice
	AssistantThinkingMode AssistantThinkingMode

	// Headers carries per-call headers merged on top of the model's default
	// headers; a name set in both wins with the Headers value.
	Headers map[string]string

	Secrets secret_manager.SecretManagerContainer
}

// ActionParams returns a loggable summary of the request shape, omitting the
// API key.
func (o Options) ActionParams() map[string]any {
	return map[string]any{
		"maxTokens":             o.MaxTokens,
		"temperature":           o.Temperature,
		"reasoningEffort":       o.ReasoningEffort,
		"toolChoice":            o.ToolChoice,
		"assistantThinkingMode": o.AssistantThinkingMode,
	}
}
