package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "setupassist", CLIName())
	assert.Equal(t, "AI Project Setup Assistant", DisplayName())
	assert.Equal(t, ".setupassist", HomeDir())
	assert.Equal(t, "setupassist-tools", MCPName())
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"home", "SETUPASSIST_HOME"},
		{"LLM_API_KEY", "SETUPASSIST_LLM_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvVar(tt.suffix))
		})
	}
}
