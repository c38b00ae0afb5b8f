package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the main configuration struct.
// It is assembled once at startup by GetConfig and passed by reference to all components.
type Config struct {
	Advanced struct {
		// LogLevel is the log level used by the application.
		LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
		// LogPretty enables pretty logging.
		LogPretty bool `yaml:"log_pretty" env:"LOG_PRETTY"`
		// LogJson enables JSON logging.
		LogJson bool `yaml:"log_json" env:"LOG_JSON"`
		// SubmitTimeout bounds the whole verify and dispatch cycle of one contact submission.
		SubmitTimeout time.Duration `yaml:"submit_timeout" env:"SUBMIT_TIMEOUT"`
		// EventQueueSize is the handler queue size of the internal event bus.
		EventQueueSize int `yaml:"event_queue_size"`
	} `yaml:"advanced"`

	Statistics struct {
		// CollectSubmissionData enables the prometheus counters for contact submissions.
		CollectSubmissionData bool `yaml:"collect_submission_data" env:"METRICS_ENABLED"`
		// ListeningAddress is the listening address of the metrics server.
		ListeningAddress string `yaml:"listening_address" env:"METRICS_LISTENING_ADDRESS"`
	} `yaml:"statistics"`

	Health struct {
		// ListeningAddress is the listening address of the health check server. Empty disables it.
		ListeningAddress string `yaml:"listening_address" env:"HC_LISTEN_ADDR"`
	} `yaml:"health"`

	Company CompanyConfig `yaml:"company"`

	Mail MailConfig `yaml:"mail"`

	Web WebConfig `yaml:"web"`
}

// LogStartupValues logs the most important configuration values on startup. Secrets are never logged.
func (c *Config) LogStartupValues() {
	slog.Debug("configuration loaded", "logLevel", c.Advanced.LogLevel)

	slog.Debug("config: web",
		"listeningAddress", c.Web.ListeningAddress,
		"externalUrl", c.Web.ExternalUrl,
		"requestLogging", c.Web.RequestLogging,
		"adminEndpointEnabled", c.Web.AdminSecret != "",
		"rateLimit", c.Web.RateLimit,
	)

	slog.Debug("config: mail",
		"host", c.Mail.Host,
		"port", c.Mail.Port,
		"secure", c.Mail.Secure,
		"fromEmail", c.Mail.FromEmail,
		"companyEmail", c.Mail.CompanyEmail,
		"adminEmailSet", c.Mail.AdminEmail != "",
	)

	slog.Debug("config: statistics",
		"collectSubmissionData", c.Statistics.CollectSubmissionData,
		"listeningAddress", c.Statistics.ListeningAddress,
	)
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Advanced.LogLevel = "info"
	cfg.Advanced.SubmitTimeout = 60 * time.Second
	cfg.Advanced.EventQueueSize = 100

	cfg.Statistics.CollectSubmissionData = true
	cfg.Statistics.ListeningAddress = ":8787"

	cfg.Health.ListeningAddress = ":11223"

	cfg.Company = CompanyConfig{
		Name:         "Coral Property Developers",
		Website:      "coral.lk",
		ContactEmail: "marketing@coral.lk",
		Phone:        "0112 596 235",
		Address:      "No 42, Ridgeway Place, Colombo 04",
	}

	cfg.Mail = MailConfig{
		ConnectTimeout: 10 * time.Second,
		SendTimeout:    30 * time.Second,
		CertValidation: true,
	}

	cfg.Web = WebConfig{
		RequestLogging:   false,
		ListeningAddress: ":8888",
		ExternalUrl:      "http://localhost:8888",
		MaxBodyBytes:     64 * 1024,
		AllowedOrigins:   []string{"*"},
		RateLimit:        0.2,
		RateLimitBurst:   5,
		RateLimitEvict:   15 * time.Minute,
	}

	return cfg
}

// GetConfig returns the configuration from the config file and the environment.
// Values are applied in the following order: defaults, YAML file, .env files, environment variables.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	// override config values from YAML file

	cfgFileName := "config.yml"
	cfgFileRequired := false
	if envCfgFileName := os.Getenv("CORAL_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
		cfgFileRequired = true
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		if cfgFileRequired || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config from yaml: %w", err)
		}
		slog.Debug("config file not found, using defaults and environment", "file", cfgFileName)
	}

	// override config values from .env files and the environment

	if err := loadEnvFiles(".env.local", ".env"); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Web.Sanitize()

	return cfg, nil
}

// loadConfigFile reads the given YAML file. ${VAR} references are substituted with values from the environment.
func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return nil
}

// loadEnvFiles loads all existing dotenv files. Variables that are already set in the process
// environment are never overridden, and earlier files win over later ones.
func loadEnvFiles(filenames ...string) error {
	for _, filename := range filenames {
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		if err := godotenv.Load(filename); err != nil {
			return fmt.Errorf("failed to load %s: %w", filename, err)
		}
	}

	return nil
}
