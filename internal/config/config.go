package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Company CompanyConfig `mapstructure:"company"`
	Report  ReportConfig  `mapstructure:"report"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// OpenAIConfig holds extraction service configuration.
type OpenAIConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	Temperature   float32       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

// CompanyConfig identifies the reference company whose point of view
// determines each invoice's direction.
type CompanyConfig struct {
	Name string `mapstructure:"name"`
}

// ReportConfig holds the input directory and output report path.
type ReportConfig struct {
	InvoicesDir string `mapstructure:"invoices_dir"`
	OutputPath  string `mapstructure:"output_path"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional YAML file and environment
// variables. A missing config file is fine; a missing credential is not.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.max_tokens", 4096)
	v.SetDefault("openai.timeout", 120*time.Second)
	v.SetDefault("openai.max_concurrent", 4)

	v.SetDefault("company.name", "TechNova Solutions, Inc.")

	v.SetDefault("report.invoices_dir", "data/invoices")
	v.SetDefault("report.output_path", "data/invoices-report.xlsx")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("company.name", "COMPANY_NAME")
	v.BindEnv("report.invoices_dir", "INVOICES_DIR")
	v.BindEnv("report.output_path", "REPORT_FILEPATH")
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required (set OPENAI_API_KEY)")
	}
	if c.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if c.Report.InvoicesDir == "" {
		return fmt.Errorf("report.invoices_dir is required")
	}
	if c.Report.OutputPath == "" {
		return fmt.Errorf("report.output_path is required")
	}
	return nil
}
