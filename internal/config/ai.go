package config

import "strings"

// Question providers
const (
	ProviderAuto    = "auto"
	ProviderCatalog = "catalog"
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
)

// AIConfig holds all follow-up generation settings
type AIConfig struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"-"` // Never serialize
	BaseURL     string `json:"baseUrl"`
	Model       string `json:"model"`
	OllamaURL   string `json:"ollamaUrl"`
	OllamaModel string `json:"ollamaModel"`
	TimeoutMS   int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Provider:    ProviderAuto,
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/models",
		Model:       "gemini-2.0-flash",
		OllamaURL:   "http://localhost:11434",
		OllamaModel: "llama3.2:latest",
		TimeoutMS:   10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the Gemini API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + model + ":generateContent"
}

// ResolvedProvider turns "auto" into a concrete provider
func (c *AIConfig) ResolvedProvider() string {
	p := strings.ToLower(c.Provider)
	if p == "" || p == ProviderAuto {
		if c.IsEnabled() {
			return ProviderGemini
		}
		return ProviderCatalog
	}
	return p
}
