package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/config"
)

func TestRunThemesMarksConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	cfg.Theme = "rose-pine"
	require.NoError(t, config.SaveConfig(path, cfg))

	var out bytes.Buffer
	require.NoError(t, runThemes(&out, path))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(colors.Themes))
	for _, line := range lines {
		name := strings.Fields(strings.TrimPrefix(line, "*"))[0]
		assert.Equal(t, name == "rose-pine", strings.HasPrefix(line, "*"), line)
	}
}

func TestRunGroupAddPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	var out bytes.Buffer
	require.NoError(t, runGroup(&out, path, []string{"add", "Work", "^work"}))
	assert.Equal(t, "added group Work\n", out.String())

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Groups, 2)
	assert.Equal(t, "Work", cfg.Groups[0].Name)
	assert.Equal(t, "Default", cfg.Groups[1].Name)

	out.Reset()
	require.NoError(t, runGroup(&out, path, []string{"list"}))
	assert.Equal(t, "Work\t^work\nDefault\t.*\n", out.String())
}

func TestRunGroupRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, runGroup(&bytes.Buffer{}, path, []string{"add", "Work", "^work"}))

	assert.ErrorIs(t, runGroup(&bytes.Buffer{}, path, []string{"add", "Work", "x"}), config.ErrGroupExists)
	assert.ErrorIs(t, runGroup(&bytes.Buffer{}, path, []string{"add", "Bad", "("}), config.ErrInvalidConfig)
	assert.Error(t, runGroup(&bytes.Buffer{}, path, []string{"add", "Short"}))
	assert.Error(t, runGroup(&bytes.Buffer{}, path, []string{"remove"}))
	assert.Error(t, runGroup(&bytes.Buffer{}, path, nil))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Groups, 2)
}

func TestRunGroupKeepsEnvOverridesOutOfFile(t *testing.T) {
	t.Setenv("TABSWITCH_THEME", "rose-pine")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, runGroup(&bytes.Buffer{}, path, []string{"add", "Work", "^work"}))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}
