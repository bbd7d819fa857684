package llm2

import "strings"

// Api identifies the wire-format dialect a Model speaks.
type Api string

const (
	APIOpenAICompletions    Api = "openai-completions"
	APIMinimaxCompletions   Api = "minimax-completions"
	APIAnthropicMessages    Api = "anthropic-messages"
	APIBedrockConverse      Api = "bedrock-converse-stream"
	APIOpenAIResponses      Api = "openai-responses"
	APIGoogleGenerativeAI   Api = "google-generative-ai"
	APIGoogleVertex         Api = "google-vertex"
)

// KnownProvider enumerates the fourteen provider identities the resolver and
// environment collaborator recognize by name.
type KnownProvider string

const (
	ProviderAmazonBedrock     KnownProvider = "amazon-bedrock"
	ProviderAnthropic         KnownProvider = "anthropic"
	ProviderGoogle            KnownProvider = "google"
	ProviderGoogleVertex      KnownProvider = "google-vertex"
	ProviderOpenAI            KnownProvider = "openai"
	ProviderXai               KnownProvider = "xai"
	ProviderGroq              KnownProvider = "groq"
	ProviderCerebras          KnownProvider = "cerebras"
	ProviderOpenRouter        KnownProvider = "openrouter"
	ProviderVercelAIGateway   KnownProvider = "vercel-ai-gateway"
	ProviderZai               KnownProvider = "zai"
	ProviderMistral           KnownProvider = "mistral"
	ProviderMinimax           KnownProvider = "minimax"
	ProviderMinimaxCn         KnownProvider = "minimax-cn"
)

var knownProviders = map[KnownProvider]bool{
	ProviderAmazonBedrock: true, ProviderAnthropic: true, ProviderGoogle: true,
	ProviderGoogleVertex: true, ProviderOpenAI: true, ProviderXai: true,
	ProviderGroq: true, ProviderCerebras: true, ProviderOpenRouter: true,
	ProviderVercelAIGateway: true, ProviderZai: true, ProviderMistral: true,
	ProviderMinimax: true, ProviderMinimaxCn: true,
}

// Provider is either a known enumerated identity or an opaque custom string.
// String() round-trips: ParseProvider(p.String()) == p.
type Provider struct {
	Known  KnownProvider
	Custom string
}

func KnownProviderOf(p KnownProvider) Provider {
	return Provider{Known: p}
}

func CustomProvider(name string) Provider {
	return Provider{Custom: name}
}

func ParseProvider(s string) Provider {
	if knownProviders[KnownProvider(s)] {
		return Provider{Known: KnownProvider(s)}
	}
	return Provider{Custom: s}
}

func (p Provider) String() string {
	if p.Known != "" {
		return string(p.Known)
	}
	return p.Custom
}

func (p Provider) IsKnown() bool {
	return p.Known != ""
}

func (p Provider) Equal(other Provider) bool {
	return p.String() == other.String()
}

// InputType enumerates modalities a model accepts in user content.
type InputType string

const (
	InputText  InputType = "text"
	InputImage InputType = "image"
)

// ModelCost holds per-token pricing coefficients (dollars per token).
type ModelCost struct {
	Input      float64
	Output     float64
	CacheRead  float64
	CacheWrite float64
}

// Model is an immutable descriptor for a callable endpoint.
type Model struct {
	ID            string
	Name          string
	API           Api
	Provider      Provider
	BaseURL       string
	Reasoning     bool
	Input         []InputType
	Cost          ModelCost
	ContextWindow uint32
	MaxTokens     uint32
	Headers       map[string]string
	Compat        *CompatOverride
}

// AcceptsInput reports whether the model lists the given input modality.
func (m Model) AcceptsInput(t InputType) bool {
	for _, in := range m.Input {
		if in == t {
			return true
		}
	}
	return false
}

// baseURLContainsAny reports whether the model's base URL contains any of the
// given substrings, case-insensitively (mirrors provider-sniffing heuristics
// that providers themselves use inconsistent casing for).
func (m Model) baseURLContainsAny(substrs ...string) bool {
	lower := strings.ToLower(m.BaseURL)
	for _, s := range substrs {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
