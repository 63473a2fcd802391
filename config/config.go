package config

import (
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type EndpointConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

type HealthCheckConfig struct {
	Interval       string `mapstructure:"interval"`
	ConnectTimeout string `mapstructure:"connect_timeout"`
	TotalTimeout   string `mapstructure:"total_timeout"`
}

type LoadTestConfig struct {
	Requests       int    `mapstructure:"requests"`
	Delay          string `mapstructure:"delay"`
	ConnectTimeout string `mapstructure:"connect_timeout"`
	TotalTimeout   string `mapstructure:"total_timeout"`
}

type StubConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Environment string            `mapstructure:"environment"`
	Primary     EndpointConfig    `mapstructure:"primary"`
	Secondary   EndpointConfig    `mapstructure:"secondary"`
	HealthCheck HealthCheckConfig `mapstructure:"health_check"`
	LoadTest    LoadTestConfig    `mapstructure:"load_test"`
	Stub        StubConfig        `mapstructure:"stub"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// Load reads configuration from ./config.yaml (or ./config/config.yaml)
// and the environment, applies defaults and validates the result. The
// endpoint addresses have no usable default: they come from the
// provisioning output and an empty address is a configuration error.
func Load() (*Config, error) {
	viper.SetDefault("environment", EnvDev)
	viper.SetDefault("primary.name", "aws")
	viper.SetDefault("primary.address", "")
	viper.SetDefault("secondary.name", "gcp")
	viper.SetDefault("secondary.address", "")
	viper.SetDefault("health_check.interval", "30s")
	viper.SetDefault("health_check.connect_timeout", "5s")
	viper.SetDefault("health_check.total_timeout", "10s")
	viper.SetDefault("load_test.requests", 10)
	viper.SetDefault("load_test.delay", "500ms")
	viper.SetDefault("load_test.connect_timeout", "3s")
	viper.SetDefault("load_test.total_timeout", "5s")
	viper.SetDefault("stub.address", ":8081")
	viper.SetDefault("logging.level", LogLevelInfo)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvProd),
		),
		validation.Field(&c.Primary,
			validation.Required,
			validation.By(validateEndpointConfig),
		),
		validation.Field(&c.Secondary,
			validation.Required,
			validation.By(validateEndpointConfig),
		),
		validation.Field(&c.HealthCheck,
			validation.Required,
			validation.By(func(value interface{}) error {
				hc, ok := value.(HealthCheckConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a HealthCheckConfig")
				}
				return validation.ValidateStruct(&hc,
					validation.Field(&hc.Interval, validation.Required, validation.By(validateDuration)),
					validation.Field(&hc.ConnectTimeout, validation.Required, validation.By(validateDuration)),
					validation.Field(&hc.TotalTimeout, validation.Required, validation.By(validateDuration)),
				)
			}),
		),
		validation.Field(&c.LoadTest,
			validation.Required,
			validation.By(func(value interface{}) error {
				lt, ok := value.(LoadTestConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoadTestConfig")
				}
				return validation.ValidateStruct(&lt,
					validation.Field(&lt.Requests, validation.Required, validation.Min(1)),
					validation.Field(&lt.Delay, validation.Required, validation.By(validateDuration)),
					validation.Field(&lt.ConnectTimeout, validation.Required, validation.By(validateDuration)),
					validation.Field(&lt.TotalTimeout, validation.Required, validation.By(validateDuration)),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
	)
}

func validateEndpointConfig(value interface{}) error {
	ec, ok := value.(EndpointConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be an EndpointConfig")
	}

	if strings.TrimSpace(ec.Name) == "" {
		return validation.NewError("validation_missing_name", "endpoint name cannot be empty")
	}

	if strings.TrimSpace(ec.Address) == "" {
		return validation.NewError("validation_missing_address", "endpoint address cannot be empty")
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 2s, 5m)")
	}
	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be a positive duration")
	}

	return nil
}

// Duration parses an already-validated duration string, falling back when
// the value is unset.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
