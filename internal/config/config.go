// Package config provides configuration types, defaults, and persistence for gridline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/tracing"
)

// Source kinds.
const (
	SourceAuto   = "auto"
	SourceSample = "sample"
	SourceCSV    = "csv"
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
)

// Config holds all configuration options for gridline.
type Config struct {
	Source     SourceConfig        `mapstructure:"source"`
	AutoReload bool                `mapstructure:"auto_reload"`
	UI         UIConfig            `mapstructure:"ui"`
	Theme      ThemeConfig         `mapstructure:"theme"`
	Columns    []ColumnConfig      `mapstructure:"columns"`
	Keys       map[string][]string `mapstructure:"keys"`
	Flags      map[string]bool     `mapstructure:"flags"`
	Tracing    tracing.Config      `mapstructure:"tracing"`
}

// SourceConfig selects the dataset.
type SourceConfig struct {
	Path  string `mapstructure:"path"`
	Kind  string `mapstructure:"kind"`  // auto (from extension), sample, csv, yaml, sqlite
	Table string `mapstructure:"table"` // required for sqlite
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar  bool `mapstructure:"show_status_bar"`
	StripeRows     bool `mapstructure:"stripe_rows"`
	MaxColumnWidth int  `mapstructure:"max_column_width"`
	DoubleClickMs  int  `mapstructure:"double_click_ms"`
}

// ThemeConfig holds theme customization.
type ThemeConfig struct {
	// Preset is one of "default", "catppuccin-mocha", "high-contrast".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual tokens, nested or as quoted dot keys.
	Colors map[string]any `mapstructure:"colors"`
}

// ColumnConfig overrides how a dataset column is presented and edited.
type ColumnConfig struct {
	ID       string   `mapstructure:"id"`
	Header   string   `mapstructure:"header"`
	Type     string   `mapstructure:"type"` // text, number, options
	Editable *bool    `mapstructure:"editable"`
	Options  []string `mapstructure:"options"`
	Width    int      `mapstructure:"width"`
	Hidden   bool     `mapstructure:"hidden"`
	Hideable *bool    `mapstructure:"hideable"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// HiddenColumns returns the ids of columns configured as hidden.
func (c Config) HiddenColumns() []string {
	var ids []string
	for _, col := range c.Columns {
		if col.Hidden {
			ids = append(ids, col.ID)
		}
	}
	return ids
}

// ResolveSourceKind returns the configured kind, inferring it from the
// file extension when the kind is auto or empty.
func (s SourceConfig) ResolveSourceKind() string {
	kind := strings.ToLower(s.Kind)
	if kind != "" && kind != SourceAuto {
		return kind
	}
	if s.Path == "" {
		return SourceSample
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv", ".tsv":
		return SourceCSV
	case ".yaml", ".yml":
		return SourceYAML
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return SourceCSV
	}
}

// ValidateSource checks the source section.
func ValidateSource(s SourceConfig) error {
	kind := s.ResolveSourceKind()
	switch kind {
	case SourceSample:
		return nil
	case SourceCSV, SourceYAML:
		if s.Path == "" {
			return fmt.Errorf("source.path is required for %s sources", kind)
		}
	case SourceSQLite:
		if s.Path == "" {
			return fmt.Errorf("source.path is required for sqlite sources")
		}
		if s.Table == "" {
			return fmt.Errorf("source.table is required for sqlite sources")
		}
	default:
		return fmt.Errorf("source.kind must be one of auto, sample, csv, yaml, sqlite, got %q", s.Kind)
	}
	return nil
}

// ValidateColumns checks column overrides.
func ValidateColumns(cols []ColumnConfig) error {
	seen := make(map[string]bool, len(cols))
	for i, col := range cols {
		if col.ID == "" {
			return fmt.Errorf("column %d: id is required", i)
		}
		if seen[col.ID] {
			return fmt.Errorf("column %d (%s): duplicate id", i, col.ID)
		}
		seen[col.ID] = true

		switch strings.ToLower(col.Type) {
		case "", "text", "number":
			if len(col.Options) > 0 {
				return fmt.Errorf("column %d (%s): options require type \"options\"", i, col.ID)
			}
		case "options":
			if len(col.Options) == 0 {
				return fmt.Errorf("column %d (%s): options column needs at least one option", i, col.ID)
			}
		default:
			return fmt.Errorf("column %d (%s): invalid type %q (must be \"text\", \"number\" or \"options\")", i, col.ID, col.Type)
		}
		if col.Width < 0 {
			return fmt.Errorf("column %d (%s): width must not be negative", i, col.ID)
		}
		if col.Hidden && col.Hideable != nil && !*col.Hideable {
			return fmt.Errorf("column %d (%s): cannot be hidden and not hideable", i, col.ID)
		}
	}
	return nil
}

// ValidateUI checks the ui section.
func ValidateUI(ui UIConfig) error {
	if ui.DoubleClickMs < 0 || ui.DoubleClickMs > 5000 {
		return fmt.Errorf("ui.double_click_ms must be between 0 and 5000, got %d", ui.DoubleClickMs)
	}
	if ui.MaxColumnWidth < 0 {
		return fmt.Errorf("ui.max_column_width must not be negative")
	}
	return nil
}

// ValidateTracing checks the tracing section.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Validate runs every section validator.
func (c Config) Validate() error {
	if err := ValidateSource(c.Source); err != nil {
		return err
	}
	if err := ValidateColumns(c.Columns); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultTracesFilePath returns ~/.config/gridline/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gridline", "traces", "traces.jsonl")
}

// Defaults returns the default configuration.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	return Config{
		Source:     SourceConfig{Kind: SourceAuto},
		AutoReload: true,
		UI: UIConfig{
			ShowStatusBar:  true,
			StripeRows:     false,
			MaxColumnWidth: 40,
			DoubleClickMs:  400,
		},
		Tracing: tc,
	}
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# gridline configuration

# Dataset to display. Without a path the built-in sample users table is shown.
source:
  # path: ./users.csv
  kind: auto        # auto (from extension), sample, csv, yaml, sqlite
  # table: users    # required for sqlite

# Reload the dataset when the source file changes
auto_reload: true

ui:
  show_status_bar: true
  stripe_rows: false
  max_column_width: 40
  double_click_ms: 400   # Two presses on a cell within this window start editing

# theme:
#   preset: catppuccin-mocha   # default, catppuccin-mocha, high-contrast
#   colors:
#     selection.bg: "#1A5276"

# Column overrides, matched by id (the CSV header, YAML key or SQL column)
# columns:
#   - id: department
#     type: options
#     options: [Engineering, Marketing, Sales, HR]
#   - id: email
#     hidden: true

# Key overrides by action: copy, clear, filter, columns, sort, reload, export, help, quit
# keys:
#   copy: [ctrl+c, alt+c, y]

# Feature flags
# flags:
#   osc52-clipboard: true   # Copy through the terminal when no clipboard tool exists

tracing:
  enabled: false
  exporter: file       # none, file, stdout, otlp
  # file_path: ~/.config/gridline/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default template to configPath.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
