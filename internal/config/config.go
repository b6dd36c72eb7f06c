package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// CleaningConfig controls where and how cleaned tables are written
type CleaningConfig struct {
	// OutputDir overrides the per-run directory derived from the source path.
	OutputDir       string   `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Format          string   `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx csv"`
	DirPrefix       string   `yaml:"dir_prefix" envconfig:"DIR_PREFIX" validate:"required"`
	TimestampLayout string   `yaml:"timestamp_layout" envconfig:"TIMESTAMP_LAYOUT" validate:"required"`
	NullTokens      []string `yaml:"null_tokens" envconfig:"NULL_TOKENS"`
	BOMPrefix       bool     `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE" validate:"required_if=TracingEnabled true"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	// MetricsFile receives a Prometheus text exposition after each run.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file and
// AWNULL_* environment variables, in that order of precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate normalises and validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Cleaning.Format = strings.ToLower(strings.TrimPrefix(c.Cleaning.Format, "."))

	if len(c.Cleaning.NullTokens) == 0 {
		c.Cleaning.NullTokens = append([]string(nil), DefaultNullTokens...)
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"nullhandler.yaml",
		"configs/nullhandler.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: DefaultLogFile,
		},
		Cleaning: CleaningConfig{
			Format:          FormatXLSX,
			DirPrefix:       DefaultDirPrefix,
			TimestampLayout: DefaultTimestampLayout,
			NullTokens:      append([]string(nil), DefaultNullTokens...),
			BOMPrefix:       true,
		},
		Telemetry: TelemetryConfig{
			TracingEnabled: false,
			MetricsEnabled: true,
		},
	}
}
