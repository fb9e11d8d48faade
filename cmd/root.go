package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/gridline/internal/app"
	"github.com/zjrosen/gridline/internal/config"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/source"
	"github.com/zjrosen/gridline/internal/tracing"
	"github.com/zjrosen/gridline/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".gridline/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gridline [path]",
	Short: "A terminal data grid with drag selection and clipboard export",
	Long: `gridline shows a CSV, YAML or SQLite table in an interactive grid.
Drag across cells to select a rectangle and press ctrl+c to copy it as
tab-separated values, ready to paste into a spreadsheet. Double-click a
cell to edit it.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.gridline/config.yaml, then ~/.config/gridline/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write debug logs to gridline-debug.log (or set GRIDLINE_DEBUG)")
	rootCmd.Flags().StringP("kind", "k", "",
		"source kind: auto, sample, csv, yaml, sqlite")
	rootCmd.Flags().StringP("table", "t", "",
		"table to show when the source is a SQLite database")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading when the source file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("source.kind", rootCmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("source.table", rootCmd.Flags().Lookup("table"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .gridline/config.yaml (current directory)
		// 2. ~/.config/gridline/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setDefaults registers config.Defaults with v so that keys missing from
// the file keep their default values.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("source.kind", defaults.Source.Kind)
	v.SetDefault("auto_reload", defaults.AutoReload)
	v.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("ui.stripe_rows", defaults.UI.StripeRows)
	v.SetDefault("ui.max_column_width", defaults.UI.MaxColumnWidth)
	v.SetDefault("ui.double_click_ms", defaults.UI.DoubleClickMs)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridline")
}

func runApp(cmd *cobra.Command, args []string) error {
	if debugEnabled(cmd) {
		cleanup, err := log.InitWithTeaLog("gridline-debug.log", "gridline")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if len(args) == 1 {
		cfg.Source.Path = args[0]
	}
	// Handle --no-auto-reload flag (negated logic)
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	if err := prepareConfig(&cfg); err != nil {
		return err
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	ds, err := source.Load(cmd.Context(), cfg.Source, cfg.Columns)
	if err != nil {
		return fmt.Errorf("loading %s: %w", describeSource(cfg.Source), err)
	}

	// Store the config file path for saving column changes
	configFilePath := viper.ConfigFileUsed()

	zone.NewGlobal()
	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configFilePath,
		Dataset:    ds,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// prepareConfig fills derived defaults and validates c.
func prepareConfig(c *config.Config) error {
	if c.Tracing.Enabled && c.Tracing.Exporter == "file" && c.Tracing.FilePath == "" {
		c.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func debugEnabled(cmd *cobra.Command) bool {
	if os.Getenv("GRIDLINE_DEBUG") != "" {
		return true
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}

func describeSource(s config.SourceConfig) string {
	if s.Path == "" {
		return "sample dataset"
	}
	return s.Path
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
