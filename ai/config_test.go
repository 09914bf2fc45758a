package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.JudgeHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.ClassifierModel)
	assert.NotEmpty(t, cfg.JudgeModel)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://gpu-box:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithJudgeModel("gpt-4o-mini"),
		WithMinKeywordWeight(0.25),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://gpu-box:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://gpu-box:9100/v1", cfg.JudgeHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.JudgeModel)
	assert.Equal(t, 0.25, cfg.MinKeywordWeight)
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, ClassifierHost: tt.host, JudgeHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.JudgeHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing judge host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JudgeHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing judge model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JudgeModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("keyword weight out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinKeywordWeight = 1.5
		assert.Error(t, cfg.Validate())
	})
}
