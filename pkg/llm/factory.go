package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Config selects and configures an LLM. Empty fields fall back to the
// provider's environment variables.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
}

// GetAvailableProviders returns a list of available LLM providers
func GetAvailableProviders() []Provider {
	return []Provider{ProviderClaude, ProviderOpenAI}
}

// ProviderNames joins the available providers for help and error text.
func ProviderNames() string {
	names := make([]string, 0, len(GetAvailableProviders()))
	for _, p := range GetAvailableProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// Create builds an LLM from cfg.
func Create(cfg Config) (LLM, error) {
	switch cfg.Provider {
	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required")
		}
		c := NewClaude(cfg.APIKey)
		if cfg.Model != "" {
			c = NewClaudeWithModel(cfg.APIKey, cfg.Model)
		}
		if cfg.BaseURL != "" {
			c.WithBaseURL(cfg.BaseURL)
		}
		return c, nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		o := NewOpenAI(cfg.APIKey)
		if cfg.Model != "" {
			o = NewOpenAIWithModel(cfg.APIKey, cfg.Model)
		}
		if cfg.BaseURL != "" {
			o.WithBaseURL(cfg.BaseURL)
		}
		return o, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: %s)", cfg.Provider, ProviderNames())
	}
}

// CreateFromEnv fills the gaps in cfg from LLM_PROVIDER, ANTHROPIC_API_KEY,
// CLAUDE_MODEL, OPENAI_API_KEY and OPENAI_MODEL, then creates the LLM.
// Claude is the default provider.
func CreateFromEnv(cfg Config) (LLM, error) {
	if cfg.Provider == "" {
		cfg.Provider = Provider(strings.ToLower(os.Getenv("LLM_PROVIDER")))
	}
	cfg.Provider = Provider(strings.ToLower(string(cfg.Provider)))
	if cfg.Provider == "" {
		cfg.Provider = ProviderClaude
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = os.Getenv("OPENAI_MODEL")
		}

	case ProviderClaude:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = os.Getenv("CLAUDE_MODEL")
		}
	}

	return Create(cfg)
}
