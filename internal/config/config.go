// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"provenance/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	Port              int                      `mapstructure:"port" validate:"gte=1,lte=65535"`
	SchedulerInterval time.Duration            `mapstructure:"scheduler_interval" validate:"gte=1s"`
	ConcurrencyPolicy domain.ConcurrencyPolicy `mapstructure:"concurrency_policy" validate:"oneof=Allow Forbid"`
	HistoryLimit      int                      `mapstructure:"history_limit" validate:"gte=1,lte=10000"`
	HTTPTimeout       time.Duration            `mapstructure:"http_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration            `mapstructure:"shutdown_timeout" validate:"gt=0"`
	LogLevel          string                   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	TracingEnabled    bool                     `mapstructure:"tracing_enabled"`
	EndpointAccept    string                   `mapstructure:"endpoint_accept" validate:"required,mediatype"`
	Endpoints         []EndpointConfig         `mapstructure:"endpoints" validate:"dive"`
	Articles          []ArticleConfig          `mapstructure:"articles" validate:"dive"`
}

// EndpointConfig registers a feed endpoint.
type EndpointConfig struct {
	ID     int    `mapstructure:"id"`
	URL    string `mapstructure:"url" validate:"required,url"`
	Status string `mapstructure:"status" validate:"required"`
}

// ArticleConfig seeds the article store.
type ArticleConfig struct {
	ID        int32  `mapstructure:"id"`
	Title     string `mapstructure:"title" validate:"required"`
	Available bool   `mapstructure:"available"`
}

// EndpointRecords converts the configured endpoints to domain records.
func (c *Config) EndpointRecords() []domain.EndpointRecord {
	records := make([]domain.EndpointRecord, 0, len(c.Endpoints))
	for _, e := range c.Endpoints {
		records = append(records, domain.EndpointRecord{ID: e.ID, URL: e.URL, Status: e.Status})
	}
	return records
}

// ArticleRecords converts the configured articles to domain records.
func (c *Config) ArticleRecords() []domain.ArticleRecord {
	records := make([]domain.ArticleRecord, 0, len(c.Articles))
	for _, a := range c.Articles {
		records = append(records, domain.ArticleRecord{ID: a.ID, Title: a.Title, Available: a.Available})
	}
	return records
}

// Load loads configuration from environment variables, the config file and
// defaults, highest precedence first. An empty path searches ./configs and
// the working directory for config.yaml.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8881)
	v.SetDefault("scheduler_interval", "300s")
	v.SetDefault("concurrency_policy", string(domain.ConcurrencyPolicyForbid))
	v.SetDefault("history_limit", 100)
	v.SetDefault("http_timeout", "15s")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("log_level", "info")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("endpoint_accept", "application/xml")
	v.SetDefault("endpoints", []map[string]any{
		{"id": 1, "url": "https://feed.infoq.com/development/", "status": domain.EndpointStatusReady},
	})
	v.SetDefault("articles", []map[string]any{
		{"id": 10101, "title": "Programming Languages InfoQ Trends Report - October 2019 4", "available": true},
		{"id": 10106, "title": "Ryan Kitchens on Learning from Incidents at Netflix, the Role of SRE, and Sociotechnical Systems", "available": true},
	})
}

// Validate checks cfg against its validation rules and reports every
// violation in one error.
func Validate(cfg *Config) error {
	validate := validator.New()
	_ = validate.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		_, _, err := mime.ParseMediaType(fl.Field().String())
		return err == nil
	})

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		details := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			details = append(details, fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(details, "; "))
	}
	return nil
}
