package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/config"
)

// NewClientForConfig creates the provider-specific client named by the AI
// configuration. Returns LLMClient to enable dependency injection of mocks.
func NewClientForConfig(cfg config.AIConfig, logger *zap.Logger) (LLMClient, error) {
	clientCfg := &Config{
		Endpoint: cfg.BaseURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.RequestTimeout,
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewClient(clientCfg, logger)
	case config.ProviderAnthropic:
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
