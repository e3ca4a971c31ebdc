package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ukechug/pkg/css"
	"ukechug/pkg/text"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ukechug.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[viewport]
width = 320

[paint]
background = "#000"
border_width = 2

[document]
scripts = false

[log]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, 320.0, cfg.Viewport.Width)
	assert.Equal(t, 600.0, cfg.Viewport.Height)
	assert.Equal(t, 2, cfg.Paint.BorderWidth)
	assert.False(t, cfg.Document.Scripts)
	assert.True(t, cfg.Document.UserAgent)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())

	opts := cfg.Options()
	assert.Equal(t, 320.0, opts.Width)
	assert.Equal(t, css.Black, opts.Background)
	assert.Equal(t, 2, opts.Theme.BorderWidth)
	assert.False(t, opts.Scripts)
	assert.Equal(t, css.Transparent, opts.Theme.Background)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[viewport`},
		{"unknown key", "[viewport]\ndepth = 3\n"},
		{"wrong type", "[viewport]\nwidth = \"wide\"\n"},
		{"invalid value", "[canvas]\ncell_width = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Viewport.Width = -1
	cfg.Paint.TextColor = "sparkly"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewport")
	assert.Contains(t, err.Error(), "text_color")
	assert.Contains(t, err.Error(), "log level")
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestTheme(t *testing.T) {
	cfg := Default()
	cfg.Paint.TextColor = "red"
	cfg.Paint.BorderColor = "nonsense"
	cfg.Paint.LineHeight = 2

	theme := cfg.Theme()
	assert.Equal(t, css.Color{R: 255, A: 255}, theme.TextColor)
	assert.Equal(t, css.Black, theme.BorderColor)
	assert.Equal(t, 2.0, theme.LineHeight)
	assert.Equal(t, 16.0, theme.FontSize)
}

func TestFont(t *testing.T) {
	f, err := Default().Font()
	require.NoError(t, err)
	assert.NotNil(t, f)

	cfg := Default()
	cfg.Paint.Font = filepath.Join(t.TempDir(), "missing.ttf")
	_, err = cfg.Font()
	assert.ErrorIs(t, err, text.ErrNoFont)
}
