// Package llm provides centralized model configuration and client abstractions
// for the generation, embedding, and image backends.
package llm

// Provider represents a generation backend.
type Provider string

// Provider constants define supported backends.
const (
	// ProviderGemini is the Google Gemini provider (default).
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider.
	ProviderOpenAI Provider = "openai"
)

// EmbeddingDimensions is the fixed dimensionality of stored content
// embeddings. The successful_content table's vector column is created
// with this size, so every provider must produce vectors of this length.
const EmbeddingDimensions = 768

// Config holds the model selection for one provider.
type Config struct {
	Provider        Provider
	GenerationModel string
	EmbeddingModel  string
	ImageModel      string
}

// DefaultConfig returns the default configuration (Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini model set.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		GenerationModel: "gemini-1.5-flash",
		EmbeddingModel:  "text-embedding-004",
		ImageModel:      "imagen-3.0-generate-002",
	}
}

// DefaultOpenAIConfig returns the default OpenAI model set.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider:        ProviderOpenAI,
		GenerationModel: "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		ImageModel:      "dall-e-3",
	}
}
