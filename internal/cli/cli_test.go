package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in an isolated home and working directory.
// env is applied after provider variables are cleared.
func runCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"OPENAI_API_KEY", "AZURE_OPENAI_KEY", "AZURE_OPENAI_ENDPOINT", "SETUPASSIST_LLM_PROVIDER", "SETUPASSIST_LLM_API_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	t.Chdir(t.TempDir())
	viper.Reset()
	versionShort, versionJSON = false, false
	fileContent = ""
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	out, err := runCLI(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", strings.TrimSpace(out))
}

func TestToolCreateDir(t *testing.T) {
	out, err := runCLI(t, nil, "tool", "create-dir", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Project directory 'demo' created.")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(wd, "demo"))
}

func TestToolCreateFile(t *testing.T) {
	out, err := runCLI(t, nil, "tool", "create-file", "demo", "main.py", "--content", "print('hi')\n")
	require.NoError(t, err)
	assert.Contains(t, out, "File 'main.py' created in 'demo'.")

	wd, err := os.Getwd()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(wd, "demo", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(data))
}

func TestAskGeneralQueryNeedsNoLLM(t *testing.T) {
	out, err := runCLI(t, nil, "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello!")
}

func TestConfigShowRedactsKey(t *testing.T) {
	out, err := runCLI(t, map[string]string{"SETUPASSIST_LLM_API_KEY": "sk-abcdefghijklmnop"}, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
	assert.Contains(t, out, "llm.api_key")
	assert.NotContains(t, out, "warning:")
}

func TestConfigShowWarnsOnInvalidSettings(t *testing.T) {
	out, err := runCLI(t, map[string]string{"SETUPASSIST_LLM_PROVIDER": "bedrock"}, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `warning: unknown provider "bedrock"`)
	assert.Contains(t, out, "llm.provider")
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	_, err := runCLI(t, nil, "config", "set", "bogus.key", "x")
	assert.Error(t, err)
}
