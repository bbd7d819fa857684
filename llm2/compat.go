package llm2

// MaxTokensField selects which JSON field carries the max-output-tokens
// request parameter.
type MaxTokensField string

const (
	MaxTokensFieldMaxTokens           MaxTokensField = "max_tokens"
	MaxTokensFieldMaxCompletionTokens MaxTokensField = "max_completion_tokens"
)

// ThinkingFormat selects how reasoning-effort requests are shaped.
type ThinkingFormat string

const (
	ThinkingFormatOpenAI ThinkingFormat = "openai"
	ThinkingFormatZai    ThinkingFormat = "zai"
)

// Compat is the resolved, fully-populated compatibility record that
// governs request shape for the OpenAI-like driver.
type Compat struct {
	SupportsStore                    bool
	SupportsDeveloperRole            bool
	SupportsReasoningEffort          bool
	SupportsUsageInStreaming         bool
	MaxTokensField                   MaxTokensField
	RequiresToolResultName           bool
	RequiresAssistantAfterToolResult bool
	RequiresThinkingAsText           bool
	RequiresMistralToolIDs           bool
	ThinkingFormat                   ThinkingFormat
}

// CompatOverride lets a Model explicitly replace individual resolved
// fields, one field at a time. Nil pointers mean "use the detected value."
type CompatOverride struct {
	SupportsStore                    *bool
	SupportsDeveloperRole            *bool
	SupportsReasoningEffort          *bool
	SupportsUsageInStreaming         *bool
	MaxTokensField                   *MaxTokensField
	RequiresToolResultName           *bool
	RequiresAssistantAfterToolResult *bool
	RequiresThinkingAsText           *bool
	RequiresMistralToolIDs           *bool
	ThinkingFormat                   *ThinkingFormat
}

// detectCompat derives compatibility flags from provider identity
// and base URL substring sniffing.
func detectCompat(m Model) Compat {
	isZai := m.Provider.Known == ProviderZai || m.baseURLContainsAny("api.z.ai")
	isNonStandard := isKnownAmong(m.Provider, ProviderCerebras, ProviderXai, ProviderMistral, ProviderZai) ||
		m.baseURLContainsAny("cerebras.ai", "api.x.ai", "mistral.ai", "chutes.ai") || isZai
	useMaxTokens := m.Provider.Known == ProviderMistral || m.baseURLContainsAny("mistral.ai", "chutes.ai")
	isGrok := m.Provider.Known == ProviderXai || m.baseURLContainsAny("api.x.ai")
	isMistral := m.Provider.Known == ProviderMistral || m.baseURLContainsAny("mistral.ai")

	maxTokensField := MaxTokensFieldMaxCompletionTokens
	if useMaxTokens {
		maxTokensField = MaxTokensFieldMaxTokens
	}
	thinkingFormat := ThinkingFormatOpenAI
	if isZai {
		thinkingFormat = ThinkingFormatZai
	}

	return Compat{
		SupportsStore:            !isNonStandard,
		SupportsDeveloperRole:    !isNonStandard,
		SupportsReasoningEffort:  !isGrok && !isZai,
		SupportsUsageInStreaming: true,
		MaxTokensField:           maxTokensField,
		RequiresToolResultName:   isMistral,
		RequiresThinkingAsText:   isMistral,
		RequiresMistralToolIDs:   isMistral,
		RequiresAssistantAfterToolResult: false,
		ThinkingFormat:           thinkingFormat,
	}
}

func isKnownAmong(p Provider, candidates ...KnownProvider) bool {
	if !p.IsKnown() {
		return false
	}
	for _, c := range candidates {
		if p.Known == c {
			return true
		}
	}
	return false
}

// resolveCompat detects then applies the model's explicit override,
// field-by-field.
func resolveCompat(m Model) Compat {
	resolved := detectCompat(m)
	if m.Compat == nil {
		return resolved
	}
	o := m.Compat
	if o.SupportsStore != nil {
		resolved.SupportsStore = *o.SupportsStore
	}
	if o.SupportsDeveloperRole != nil {
		resolved.SupportsDeveloperRole = *o.SupportsDeveloperRole
	}
	if o.SupportsReasoningEffort != nil {
		resolved.SupportsReasoningEffort = *o.SupportsReasoningEffort
	}
	if o.SupportsUsageInStreaming != nil {
		resolved.SupportsUsageInStreaming = *o.SupportsUsageInStreaming
	}
	if o.MaxTokensField != nil {
		resolved.MaxTokensField = *o.MaxTokensField
	}
	if o.RequiresToolResultName != nil {
		resolved.RequiresToolResultName = *o.RequiresToolResultName
	}
	if o.RequiresAssistantAfterToolResult != nil {
		resolved.RequiresAssistantAfterToolResult = *o.RequiresAssistantAfterToolResult
	}
	if o.RequiresThinkingAsText != nil {
		resolved.RequiresThinkingAsText = *o.RequiresThinkingAsText
	}
	if o.RequiresMistralToolIDs != nil {
		resolved.RequiresMistralToolIDs = *o.RequiresMistralToolIDs
	}
	if o.ThinkingFormat != nil {
		resolved.ThinkingFormat = *o.ThinkingFormat
	}
	return resolved
}
