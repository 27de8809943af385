package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GENERATION_ENDPOINT", "https://generation.test/v1:generateContent")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Generation.BackoffBase)
	assert.Equal(t, 45*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, "pdftotext", cfg.Extract.Pdftotext)
	assert.Equal(t, "pandoc", cfg.Extract.Pandoc)
	assert.Equal(t, 2, cfg.Usage.MaxFreeUses)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GENERATION_ENDPOINT", "https://generation.test/v1:generateContent")
	t.Setenv("GENERATION_MAX_ATTEMPTS", "5")
	t.Setenv("GENERATION_BACKOFF_BASE", "250ms")
	t.Setenv("MAX_FREE_USES", "10")

	cfg := LoadConfig()
	assert.Equal(t, 5, cfg.Generation.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Generation.BackoffBase)
	assert.Equal(t, 10, cfg.Usage.MaxFreeUses)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, KindMissingInput, KindOf(err))

	cfg.Generation.Endpoint = "https://generation.test"
	err = cfg.Validate()
	require.Error(t, err) // MaxAttempts still zero

	cfg.Generation.MaxAttempts = 3
	assert.NoError(t, cfg.Validate())
}
