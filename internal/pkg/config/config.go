package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/env"
)

const DefaultVaccinationAPIURL = "https://apis.ccbp.in/covid-vaccination-data"

// Config holds the runtime settings of the dashboard server.
type Config struct {
	AppHost string `validate:"required"`
	AppPort string `validate:"required,numeric"`
	AppEnv  string `validate:"oneof=dev prod test"`

	VaccinationAPIURL string        `validate:"required,url"`
	FetchTimeout      time.Duration `validate:"gte=0"` // 0 keeps the transport default

	InstanceTTL   time.Duration `validate:"gt=0"`
	SweepInterval time.Duration `validate:"gt=0"`

	CacheHost     string `validate:"required"`
	CachePort     string `validate:"required,numeric"`
	CachePassword string
	StatusMirror  bool

	SessionStorage string `validate:"oneof=memory redis"`

	MetricsUser     string `validate:"required"`
	MetricsPassword string `validate:"required"`
}

var validate = validator.New()

// Load reads the configuration from the env package and validates it.
func Load() (*Config, error) {
	fetchTimeout, err := durationEnv("COWIN_FETCH_TIMEOUT", "0s")
	if err != nil {
		return nil, err
	}
	ttl, err := durationEnv("DASHBOARD_INSTANCE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	sweep, err := durationEnv("DASHBOARD_SWEEP_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}
	mirror, err := strconv.ParseBool(env.GetEnv("STATUS_MIRROR", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_MIRROR: %w", err)
	}

	cfg := &Config{
		AppHost:           env.GetEnv("APP_HOST", "localhost"),
		AppPort:           env.GetEnv("APP_PORT", "4000"),
		AppEnv:            env.GetEnv("APP_ENV", "prod"),
		VaccinationAPIURL: env.GetEnv("COWIN_API_URL", DefaultVaccinationAPIURL),
		FetchTimeout:      fetchTimeout,
		InstanceTTL:       ttl,
		SweepInterval:     sweep,
		CacheHost:         env.GetEnv("CACHE_HOST", "localhost"),
		CachePort:         env.GetEnv("CACHE_PORT", "6379"),
		CachePassword:     env.GetEnv("CACHE_PASSWORD", ""),
		StatusMirror:      mirror,
		SessionStorage:    env.GetEnv("SESSION_STORAGE", "memory"),
		MetricsUser:       env.GetEnv("METRICS_USER", "admin"),
		MetricsPassword:   env.GetEnv("METRICS_PASSWORD", "test"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for fiber.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// CacheAddr is the redis address.
func (c *Config) CacheAddr() string {
	return fmt.Sprintf("%s:%s", c.CacheHost, c.CachePort)
}

func durationEnv(key, def string) (time.Duration, error) {
	raw := env.GetEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
