package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/rs/zerolog"
)

// Options tune a provider client. The zero value is usable.
type Options struct {
	// Timeout bounds each Chat call; zero means only the caller's context.
	Timeout time.Duration
	Log     zerolog.Logger
	// HTTPClient replaces the default transport, mainly for tests.
	HTTPClient *http.Client
}

// New returns the client for s.Provider.
func New(s config.LLMSettings, log zerolog.Logger) (Client, error) {
	opts := &Options{Timeout: s.Timeout, Log: log}
	switch s.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(s.Endpoint, s.APIKey, s.Model, opts)
	case config.ProviderAzure:
		return NewAzOpenAIClient(s.Endpoint, s.APIKey, s.Model, opts)
	case config.ProviderLangChain:
		return NewLangChainClient(s.Endpoint, s.APIKey, s.Model, opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", s.Provider)
	}
}
