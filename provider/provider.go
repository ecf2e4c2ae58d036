package provider

import (
	"context"
	"errors"

	"github.com/ayadlabs/propchat/config"
	openai_provider "github.com/ayadlabs/propchat/provider/openai"
)

// Provider is the interface every LLM implementation must satisfy. Complete
// is the single reasoning capability the dialogue layer consumes; system may
// be empty. CreateEmbedding turns texts into fixed-length vectors and is
// deterministic for identical input.
type Provider interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Type {
	case "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set")
		}
		return openai_provider.NewClient(openai_provider.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			CompletionModel: cfg.CompletionModel,
			EmbeddingModel:  cfg.EmbeddingModel,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			Timeout:         cfg.Timeout,
		}), nil
	default:
		return nil, errors.New("unsupported LLM provider: " + cfg.Type)
	}
}
