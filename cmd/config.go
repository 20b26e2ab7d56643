package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"fleet/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBTimeZone string

	RedisAddr    string
	TripCacheTTL time.Duration

	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	EnforceAvailability  bool
	OverdueTripsSchedule string
	OverdueTripsGrace    time.Duration

	LogFile  string
	LogLevel string
}

// Postgres returns the database part of the configuration.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
		TimeZone: c.DBTimeZone,
	}
}

// LoadConfig reads envFile into the process environment, without
// overriding variables that are already set, and then builds the Config.
// A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the Config from getenv, applying defaults for unset
// keys. Every malformed value is reported.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:   p.str("HTTP_PORT", "8080"),
		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", "postgres"),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", "fleet"),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),
		DBTimeZone: p.str("DB_TIMEZONE", "UTC"),

		RedisAddr:    p.str("REDIS_ADDR", ""),
		TripCacheTTL: p.duration("TRIP_CACHE_TTL", 5*time.Minute),

		MQTTBroker:      p.str("MQTT_BROKER", ""),
		MQTTClientID:    p.str("MQTT_CLIENT_ID", "fleet"),
		MQTTTopicPrefix: p.str("MQTT_TOPIC_PREFIX", "fleet"),

		EnforceAvailability:  p.boolean("ENFORCE_AVAILABILITY", true),
		OverdueTripsSchedule: p.str("OVERDUE_TRIPS_SCHEDULE", "0 */5 * * * *"),
		OverdueTripsGrace:    p.duration("OVERDUE_TRIPS_GRACE", 30*time.Minute),

		LogFile:  p.str("LOG_FILE", ""),
		LogLevel: p.str("LOG_LEVEL", "info"),
	}

	if cfg.TripCacheTTL <= 0 {
		p.fail("TRIP_CACHE_TTL", cfg.TripCacheTTL.String(), errors.New("must be positive"))
	}
	if cfg.OverdueTripsGrace < 0 {
		p.fail("OVERDUE_TRIPS_GRACE", cfg.OverdueTripsGrace.String(), errors.New("must not be negative"))
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.OverdueTripsSchedule); err != nil {
		p.fail("OVERDUE_TRIPS_SCHEDULE", cfg.OverdueTripsSchedule, err)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		p.fail("LOG_LEVEL", cfg.LogLevel, err)
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("invalid %s %q: %w", key, value, err))
}

func (p *envParser) str(key, def string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return def
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := p.getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return d
}

func (p *envParser) boolean(key string, def bool) bool {
	raw := p.getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return b
}
