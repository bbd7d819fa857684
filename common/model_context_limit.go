package common

import (
	"os"
	"strconv"
)

const (
	// DefaultContextLimitTokens is the fallback context limit when models.dev lookup fails
	DefaultContextLimitTokens = 100000
	// CharsPerToken is the conservative estimate for token-to-char conversion
	CharsPerToken = 2.5
)

// GetModelContextLimit returns the context limit in tokens for a given model.
// Falls back to the STREAMCORE_FALLBACK_MAX_TOKENS environment variable, then
// DefaultContextLimitTokens, if the model is not found in models.dev.
func GetModelContextLimit(provider, model string) int {
	info, _ := getModel(provider, model)
	if info != nil && info.Limit.Context > 0 {
		return info.Limit.Context
	}
	if v := os.Getenv("STREAMCORE_FALLBACK_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultContextLimitTokens
}

// MaxCharsForModel converts the model's context limit to a character budget
// and subtracts reservedChars (e.g. room reserved for the model's output).
func MaxCharsForModel(provider, model string, reservedChars int) int {
	totalChars := int(float64(GetModelContextLimit(provider, model)) * CharsPerToken)
	return totalChars - reservedChars
}
