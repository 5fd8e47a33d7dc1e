package srcpatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MarkerStrip, cfg.Marker.Policy)
	assert.Equal(t, AlignPositionalMode, cfg.Align)
	assert.True(t, cfg.MatchEntities)
	assert.NotNil(t, cfg.Logger)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Tags, cfg.Tags)
}

func TestLoadConfigLayersOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srcpatch.toml")
	data := `
tags = ["p", "h1"]
match_entities = false
align = "lcs"

[marker]
policy = "retain"

[activation]
fragment = "edit-mode"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "h1"}, cfg.Tags)
	assert.False(t, cfg.MatchEntities)
	assert.Equal(t, AlignLCSMode, cfg.Align)
	assert.Equal(t, MarkerRetain, cfg.Marker.Policy)
	assert.Equal(t, DefaultConfig().Marker.Pattern, cfg.Marker.Pattern)
	assert.Equal(t, "edit-mode", cfg.Activation.Fragment)
	assert.Equal(t, "edit", cfg.Activation.QueryParam)
	assert.Equal(t, 40, cfg.PreviewLen)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Bad TOML", "tags = ["},
		{"Unknown policy", "[marker]\npolicy = \"maybe\""},
		{"Unknown align", `align = "diagonal"`},
		{"Empty tags", `tags = []`},
		{"Bad marker pattern", "[marker]\npattern = \"(\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateRejectsNegativePreview(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PreviewLen = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
