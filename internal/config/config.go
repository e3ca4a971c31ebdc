// Package config loads ukechug settings from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"ukechug/pkg/css"
	"ukechug/pkg/pipeline"
	"ukechug/pkg/render"
	"ukechug/pkg/text"
)

type Config struct {
	Viewport Viewport `toml:"viewport"`
	Paint    Paint    `toml:"paint"`
	Canvas   Canvas   `toml:"canvas"`
	Log      Log      `toml:"log"`
	Document Document `toml:"document"`
}

type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Paint struct {
	Background  string  `toml:"background"`
	FontSize    float64 `toml:"font_size"`
	TextColor   string  `toml:"text_color"`
	BorderColor string  `toml:"border_color"`
	BorderWidth int     `toml:"border_width"`
	TextInset   float64 `toml:"text_inset"`
	LineHeight  float64 `toml:"line_height"`
	Font        string  `toml:"font"` // TTF path; empty uses the embedded face
}

type Canvas struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

type Log struct {
	Level string `toml:"level"`
}

type Document struct {
	UserAgent   bool `toml:"user_agent"`
	Scripts     bool `toml:"scripts"`
	MeasureText bool `toml:"measure_text"`
	Links       bool `toml:"links"`
}

func Default() Config {
	return Config{
		Viewport: Viewport{Width: 800, Height: 600},
		Paint: Paint{
			Background:  "#ffffff",
			FontSize:    16,
			TextColor:   "black",
			BorderColor: "black",
			BorderWidth: 0,
			TextInset:   10,
			LineHeight:  1.5,
		},
		Canvas:   Canvas{CellWidth: 8, CellHeight: 16},
		Log:      Log{Level: "info"},
		Document: Document{UserAgent: true, Scripts: true, MeasureText: true, Links: true},
	}
}

// Load decodes the TOML file at path over Default. An empty path returns
// the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("loading config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %gx%g must be positive", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("canvas cell %gx%g must be positive", c.Canvas.CellWidth, c.Canvas.CellHeight))
	}
	if c.Paint.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size %g must be positive", c.Paint.FontSize))
	}
	for name, v := range map[string]string{
		"background":   c.Paint.Background,
		"text_color":   c.Paint.TextColor,
		"border_color": c.Paint.BorderColor,
	} {
		if _, ok := css.ParseColor(v); !ok {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", name, v))
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// Theme converts the paint section. Invalid colors fall back to the
// default theme's.
func (c Config) Theme() render.Theme {
	theme := render.DefaultTheme()
	if col, ok := css.ParseColor(c.Paint.TextColor); ok {
		theme.TextColor = col
	}
	if col, ok := css.ParseColor(c.Paint.BorderColor); ok {
		theme.BorderColor = col
	}
	theme.FontSize = c.Paint.FontSize
	theme.BorderWidth = c.Paint.BorderWidth
	theme.TextInset = c.Paint.TextInset
	theme.LineHeight = c.Paint.LineHeight
	return theme
}

// Options converts the config to renderer options.
func (c Config) Options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Width = c.Viewport.Width
	opts.Height = c.Viewport.Height
	if col, ok := css.ParseColor(c.Paint.Background); ok {
		opts.Background = col
	}
	opts.Theme = c.Theme()
	opts.UserAgent = c.Document.UserAgent
	opts.Scripts = c.Document.Scripts
	opts.MeasureText = c.Document.MeasureText
	opts.Links = c.Document.Links
	return opts
}

// Font loads the configured font, or the embedded one when none is set.
func (c Config) Font() (*text.Font, error) {
	if c.Paint.Font == "" {
		return text.DefaultFont()
	}
	return text.LoadFont(c.Paint.Font)
}

// LogLevel parses the log level, defaulting to info when it is invalid.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
