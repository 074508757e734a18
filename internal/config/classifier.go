package config

import "os"

// ClassifierConfig holds the Hugging Face inference settings for the
// emotion classifier.
type ClassifierConfig struct {
	APIToken  string `json:"-"` // Never serialize
	Model     string `json:"model"`
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultClassifierConfig returns the default classifier configuration
func DefaultClassifierConfig() *ClassifierConfig {
	return &ClassifierConfig{
		APIToken:  os.Getenv("HF_API_TOKEN"),
		Model:     getEnvOrDefault("EMOTION_MODEL", "boltuix/bert-emotion"),
		BaseURL:   "https://api-inference.huggingface.co/models",
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the inference API is configured. Without a
// token the service runs the deterministic lexicon classifier instead.
func (c *ClassifierConfig) IsEnabled() bool {
	return c.APIToken != ""
}

// ModelEndpoint returns the full inference endpoint for the configured model
func (c *ClassifierConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
