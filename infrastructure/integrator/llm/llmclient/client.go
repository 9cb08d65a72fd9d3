package llmclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/store-insights-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

type OpenAIClient struct {
	httpClient      *http.Client
	url             string
	apiKey          string
	model           string
	maxElapsed      time.Duration
	initialInterval time.Duration
}

// NewClient cria o cliente de chat completions compatível com a API da OpenAI
func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: cfg.LLMTimeout(),
		},
		url:             cfg.LLM.URL,
		apiKey:          cfg.LLM.APIKey,
		model:           cfg.LLM.Model,
		maxElapsed:      cfg.LLMMaxElapsed(),
		initialInterval: 500 * time.Millisecond,
	}
}
