package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir, clears provider env vars, and resets Viper.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"OPENAI_API_KEY", "AZURE_OPENAI_KEY", "AZURE_OPENAI_ENDPOINT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestFilePath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, ".setupassist", "config.yaml"), FilePath())
}

func TestCurrent_Defaults(t *testing.T) {
	isolate(t)
	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, s.LLM.Provider)
	assert.Equal(t, "gpt-3.5-turbo", s.LLM.Model)
	assert.Equal(t, DefaultOpenAIEndpoint, s.LLM.Endpoint)
	assert.Equal(t, 8, s.LLM.MaxIterations)
	assert.Equal(t, 2*time.Minute, s.LLM.Timeout)
	assert.Equal(t, "word", s.Classifier.Match)
	assert.Equal(t, "pip", s.Install.Manager)
	assert.Zero(t, s.Install.Timeout)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
}

func TestLoad_EnvFileSuppliesKey(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0644))

	require.NoError(t, Load(envFile))
	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-dotenv", s.LLM.APIKey)
}

func TestLoad_PrefixedEnvOverridesDefault(t *testing.T) {
	isolate(t)
	t.Setenv("SETUPASSIST_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("SETUPASSIST_LLM_API_KEY", "sk-prefixed")
	t.Setenv("OPENAI_API_KEY", "sk-generic")

	require.NoError(t, Load(""))
	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", s.LLM.Model)
	assert.Equal(t, "sk-prefixed", s.LLM.APIKey, "prefixed variable should win")
}

func TestCurrent_AzureRequiresEndpoint(t *testing.T) {
	isolate(t)
	t.Setenv("SETUPASSIST_LLM_PROVIDER", "azure")
	require.NoError(t, Load(""))

	_, err := Current()
	require.Error(t, err)

	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_KEY", "azkey")
	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.openai.azure.com", s.LLM.Endpoint)
	assert.Equal(t, "azkey", s.LLM.APIKey)
}

func TestCurrent_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{"provider", "SETUPASSIST_LLM_PROVIDER", "bedrock", "unknown provider"},
		{"match", "SETUPASSIST_CLASSIFIER_MATCH", "fuzzy", KeyClassifierMatch},
		{"iterations", "SETUPASSIST_LLM_MAX_ITERATIONS", "0", KeyMaxIterations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)
			require.NoError(t, Load(""))

			_, err := Current()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSet_PersistsToFile(t *testing.T) {
	isolate(t)
	require.NoError(t, Load(""))

	require.NoError(t, Set(KeyModel, "gpt-4o"))
	data, err := os.ReadFile(FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "gpt-4o")

	viper.Reset()
	require.NoError(t, Load(""))
	assert.Equal(t, "gpt-4o", Get(KeyModel))
}

func TestSet_UnknownKey(t *testing.T) {
	isolate(t)
	assert.Error(t, Set("llm.temperature", "0.2"))
}

func TestRedactValue(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{KeyAPIKey, "sk-12345", "sk-1***"},
		{"GITHUB_TOKEN", "ghp_abcdef123456", "ghp_***"},
		{"MY_SECRET", "ab", "***"},
		{"MY_SECRET", "", "***"},
		{KeyModel, "gpt-3.5-turbo", "gpt-3.5-turbo"},
		{KeyLogLevel, "info", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, RedactValue(tt.key, tt.value))
		})
	}
}
