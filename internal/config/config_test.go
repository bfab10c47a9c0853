package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
)

func TestDefault_Values(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, 80, cfg.LineLength)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, config.KeywordLower, cfg.KeywordCase)
	assert.True(t, cfg.TrailingNewline)
	assert.False(t, cfg.AlignSignals.Port)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverlaysRecognisedKeys(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, `
line_length: 100
keyword_case: upper
align_signals:
  port: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.LineLength)
	assert.Equal(t, config.KeywordUpper, cfg.KeywordCase)
	assert.True(t, cfg.AlignSignals.Port)
	assert.Equal(t, 2, cfg.Indent, "unset keys keep their Default() value")
}

func TestLoad_IgnoresUnrecognisedKeys(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, `
line_length: 90
some_future_option: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.LineLength)
}

func TestLoad_RejectsTypeMismatch(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, `keyword_case: 7`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownEnumValue(t *testing.T) {
	t.Parallel()

	err := config.Validate(map[string]any{"keyword_case": "shout"})
	assert.Error(t, err)
}

func TestIndentFor_FallsBackToConfigIndent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, cfg.Indent, cfg.IndentFor("generic"))
	assert.Equal(t, cfg.Indent, cfg.IndentFor("port"))

	cfg.ClauseIndent.Port = 4
	assert.Equal(t, 4, cfg.IndentFor("port"))
	assert.Equal(t, cfg.Indent, cfg.IndentFor("generic"))
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".vhdlfmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
