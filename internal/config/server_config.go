package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	ListenAddr                  string  `mapstructure:"listen_addr"`
	MetricsAddr                 string  `mapstructure:"metrics_addr"`
	RateLimitPerSecond          float32 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst              int     `mapstructure:"rate_limit_burst"`
	NotificationRetentionInDays int     `mapstructure:"notification_retention_days"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.ListenAddr == "" {
		errs = append(errs, fmt.Errorf("missing variable: listen_addr"))
	}

	if config.RateLimitPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit_per_second must be positive"))
	}

	if config.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit_burst must be positive"))
	}

	if config.NotificationRetentionInDays <= 0 {
		errs = append(errs, fmt.Errorf("notification_retention_days must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("server.listen_addr", "LISTEN_ADDR")
	if err != nil {
		return err
	}

	err = viper.BindEnv("server.metrics_addr", "METRICS_ADDR")
	if err != nil {
		return err
	}

	err = viper.BindEnv("server.rate_limit_per_second", "RATE_LIMIT_PER_SECOND")
	if err != nil {
		return err
	}

	err = viper.BindEnv("server.rate_limit_burst", "RATE_LIMIT_BURST")
	if err != nil {
		return err
	}

	return viper.BindEnv("server.notification_retention_days", "NOTIFICATION_RETENTION_DAYS")
}
