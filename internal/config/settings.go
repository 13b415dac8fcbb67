package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/agentx-labs/setupassist/internal/branding"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyProvider        = "llm.provider"
	KeyModel           = "llm.model"
	KeyEndpoint        = "llm.endpoint"
	KeyAPIKey          = "llm.api_key"
	KeyMaxIterations   = "llm.max_iterations"
	KeyMaxPromptTokens = "llm.max_prompt_tokens"
	KeyLLMTimeout      = "llm.timeout"
	KeyClassifierMatch = "classifier.match"
	KeyInstallManager  = "install.manager"
	KeyInstallManifest = "install.manifest"
	KeyInstallTimeout  = "install.timeout"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

// Providers understood by the llm package.
const (
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderLangChain = "langchain"
)

// DefaultOpenAIEndpoint is used when provider is openai and no endpoint is set.
const DefaultOpenAIEndpoint = "https://api.openai.com/v1"

var knownKeys = []string{
	KeyProvider, KeyModel, KeyEndpoint, KeyAPIKey, KeyMaxIterations,
	KeyMaxPromptTokens, KeyLLMTimeout, KeyClassifierMatch, KeyInstallManager,
	KeyInstallManifest, KeyInstallTimeout, KeyLogLevel, KeyLogFormat,
}

// Settings is the resolved configuration for one process.
type Settings struct {
	LLM        LLMSettings
	Classifier ClassifierSettings
	Install    InstallSettings
	Log        LogSettings
}

// LLMSettings configures the language model client and agent loop.
type LLMSettings struct {
	Provider        string
	Model           string
	Endpoint        string
	APIKey          string
	MaxIterations   int
	MaxPromptTokens int
	Timeout         time.Duration
}

// ClassifierSettings configures greeting detection.
type ClassifierSettings struct {
	Match string // "word" or "substring"
}

// InstallSettings configures the dependency installer.
type InstallSettings struct {
	Manager  string
	Manifest string // empty means the manager's default manifest
	Timeout  time.Duration
}

// LogSettings configures diagnostics.
type LogSettings struct {
	Level  string
	Format string
}

func setDefaults() {
	viper.SetDefault(KeyProvider, ProviderOpenAI)
	viper.SetDefault(KeyModel, "gpt-3.5-turbo")
	viper.SetDefault(KeyMaxIterations, 8)
	viper.SetDefault(KeyMaxPromptTokens, 4096)
	viper.SetDefault(KeyLLMTimeout, "2m")
	viper.SetDefault(KeyClassifierMatch, "word")
	viper.SetDefault(KeyInstallManager, "pip")
	viper.SetDefault(KeyInstallTimeout, "0s")
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")
}

// IsKnownKey reports whether key is a supported config key.
func IsKnownKey(key string) bool {
	return slices.Contains(knownKeys, key)
}

// KnownKeys returns all supported config keys in display order.
func KnownKeys() []string {
	return slices.Clone(knownKeys)
}

// Current resolves the merged Viper view into Settings. Load must have been
// called first. The API key is not required here; a missing key surfaces as
// the provider's authentication error on the first request.
func Current() (*Settings, error) {
	s := &Settings{
		LLM: LLMSettings{
			Provider:        viper.GetString(KeyProvider),
			Model:           viper.GetString(KeyModel),
			Endpoint:        viper.GetString(KeyEndpoint),
			APIKey:          viper.GetString(KeyAPIKey),
			MaxIterations:   viper.GetInt(KeyMaxIterations),
			MaxPromptTokens: viper.GetInt(KeyMaxPromptTokens),
			Timeout:         viper.GetDuration(KeyLLMTimeout),
		},
		Classifier: ClassifierSettings{
			Match: viper.GetString(KeyClassifierMatch),
		},
		Install: InstallSettings{
			Manager:  viper.GetString(KeyInstallManager),
			Manifest: viper.GetString(KeyInstallManifest),
			Timeout:  viper.GetDuration(KeyInstallTimeout),
		},
		Log: LogSettings{
			Level:  viper.GetString(KeyLogLevel),
			Format: viper.GetString(KeyLogFormat),
		},
	}

	switch s.LLM.Provider {
	case ProviderOpenAI, ProviderLangChain:
		if s.LLM.APIKey == "" {
			s.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if s.LLM.Endpoint == "" && s.LLM.Provider == ProviderOpenAI {
			s.LLM.Endpoint = DefaultOpenAIEndpoint
		}
	case ProviderAzure:
		if s.LLM.APIKey == "" {
			s.LLM.APIKey = os.Getenv("AZURE_OPENAI_KEY")
		}
		if s.LLM.Endpoint == "" {
			s.LLM.Endpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
		}
		if s.LLM.Endpoint == "" {
			return nil, fmt.Errorf("provider %q requires %s or AZURE_OPENAI_ENDPOINT", ProviderAzure, branding.EnvVar("LLM_ENDPOINT"))
		}
	default:
		return nil, fmt.Errorf("unknown provider %q: supported providers are %q, %q and %q",
			s.LLM.Provider, ProviderOpenAI, ProviderAzure, ProviderLangChain)
	}

	if s.Classifier.Match != "word" && s.Classifier.Match != "substring" {
		return nil, fmt.Errorf("%s must be 'word' or 'substring', got %q", KeyClassifierMatch, s.Classifier.Match)
	}
	if s.LLM.MaxIterations < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyMaxIterations, s.LLM.MaxIterations)
	}

	return s, nil
}
