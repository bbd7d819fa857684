package llm2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCompat_Mistral(t *testing.T) {
	m := Model{Provider: KnownProviderOf(ProviderMistral), BaseURL: "https://api.mistral.ai/v1/chat/completions"}
	c := resolveCompat(m)

	assert.Equal(t, MaxTokensFieldMaxTokens, c.MaxTokensField)
	assert.True(t, c.RequiresToolResultName)
	assert.False(t, c.SupportsStore)
	assert.False(t, c.SupportsDeveloperRole)
	assert.True(t, c.RequiresThinkingAsText)
	assert.True(t, c.RequiresMistralToolIDs)
}

func TestResolveCompat_Default(t *testing.T) {
	m := Model{Provider: KnownProviderOf(ProviderOpenAI), BaseURL: "https://api.openai.com/v1/chat/completions"}
	c := resolveCompat(m)

	assert.Equal(t, MaxTokensFieldMaxCompletionTokens, c.MaxTokensField)
	assert.True(t, c.SupportsStore)
	assert.True(t, c.SupportsDeveloperRole)
	assert.True(t, c.SupportsReasoningEffort)
	assert.False(t, c.RequiresToolResultName)
}

func TestResolveCompat_Grok(t *testing.T) {
	m := Model{Provider: KnownProviderOf(ProviderXai)}
	c := resolveCompat(m)
	assert.False(t, c.SupportsReasoningEffort)
	assert.False(t, c.SupportsStore)
}

func TestResolveCompat_Zai(t *testing.T) {
	m := Model{BaseURL: "https://api.z.ai/v1/chat/completions"}
	c := resolveCompat(m)
	assert.False(t, c.SupportsReasoningEffort)
	assert.Equal(t, ThinkingFormatZai, c.ThinkingFormat)
}

func TestResolveCompat_DetectedIsPureFunctionOfProviderAndURL(t *testing.T) {
	m1 := Model{Provider: KnownProviderOf(ProviderCerebras), BaseURL: "https://x/a"}
	m2 := Model{Provider: KnownProviderOf(ProviderCerebras), BaseURL: "https://x/a"}
	assert.Equal(t, detectCompat(m1), detectCompat(m2))
}

func TestResolveCompat_OverrideReplacesOnlyThatField(t *testing.T) {
	supportsStore := true
	m := Model{
		Provider: KnownProviderOf(ProviderMistral),
		BaseURL:  "https://api.mistral.ai/v1/chat/completions",
		Compat:   &CompatOverride{SupportsStore: &supportsStore},
	}
	c := resolveCompat(m)
	assert.True(t, c.SupportsStore)
	assert.True(t, c.RequiresToolResultName) // untouched detected value survives
}
