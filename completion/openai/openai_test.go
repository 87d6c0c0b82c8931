package openai

import (
	"testing"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := New()

	var cfgErr *completion.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "OPENAI_API_KEY")
}

func TestNew_ExplicitKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	provider, err := New(func(o *Options) {
		o.APIKey = "test-key"
	})

	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Info().Provider)
}
