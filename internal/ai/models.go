package ai

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "gemini" | "anthropic" | "openai"
	APIKey   string
	Model    string
}

// Digest is the structured summary a model is asked to return.
type Digest struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Entities  []string `json:"entities"`
}
