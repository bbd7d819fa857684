package llm2

import (
	"os"

	"streamcore/secret_manager"
)

// ambientCredentialSentinel is returned for dialects that authenticate via
// cloud SDK credential chains rather than a bearer token.
const ambientCredentialSentinel = "<authenticated>"

// envKeysByProvider lists, in priority order, the environment variables
// consulted for each known provider's bearer token.
var envKeysByProvider = map[KnownProvider][]string{
	ProviderAnthropic:       {"ANTHROPIC_OAUTH_TOKEN", "ANTHROPIC_API_KEY"},
	ProviderOpenAI:          {"OPENAI_API_KEY"},
	ProviderGoogle:          {"GEMINI_API_KEY"},
	ProviderGroq:            {"GROQ_API_KEY"},
	ProviderCerebras:        {"CEREBRAS_API_KEY"},
	ProviderXai:             {"XAI_API_KEY"},
	ProviderOpenRouter:      {"OPENROUTER_API_KEY"},
	ProviderVercelAIGateway: {"AI_GATEWAY_API_KEY"},
	ProviderZai:             {"ZAI_API_KEY"},
	ProviderMistral:         {"MISTRAL_API_KEY"},
	ProviderMinimax:         {"MINIMAX_API_KEY"},
	ProviderMinimaxCn:       {"MINIMAX_CN_API_KEY"},
}

// getEnvAPIKey resolves an API key from the environment: it returns the
// first non-empty credential found for provider, or "" if none is set.
// Vertex and Bedrock never consult an env var directly; they report the
// ambient-credential sentinel when the cloud SDK's own conventions indicate
// credentials are configured.
func getEnvAPIKey(p Provider) string {
	switch p.Known {
	case ProviderGoogleVertex:
		if hasVertexAmbientCredentials() {
			return ambientCredentialSentinel
		}
		return ""
	case ProviderAmazonBedrock:
		if hasBedrockAmbientCredentials() {
			return ambientCredentialSentinel
		}
		return ""
	}

	for _, key := range envKeysByProvider[p.Known] {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// secretManagerAPIKey consults a caller-supplied SecretManager for the same
// credential names getEnvAPIKey would check, for callers that keep API keys
// out of the process environment entirely.
func secretManagerAPIKey(p Provider, secrets secret_manager.SecretManagerContainer) string {
	if secrets.SecretManager == nil {
		return ""
	}
	for _, key := range envKeysByProvider[p.Known] {
		if v, err := secrets.SecretManager.GetSecret(key); err == nil && v != "" {
			return v
		}
	}
	return ""
}

func hasVertexAmbientCredentials() bool {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		return true
	}
	return os.Getenv("GOOGLE_CLOUD_PROJECT") != "" && os.Getenv("GOOGLE_CLOUD_LOCATION") != ""
}

func hasBedrockAmbientCredentials() bool {
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" || os.Getenv("AWS_PROFILE") != "" {
		return true
	}
	return os.Getenv("AWS_CONTAINER_CREDENTIALS_RELATIVE_URI") != "" || os.Getenv("AWS_ROLE_ARN") != ""
}
