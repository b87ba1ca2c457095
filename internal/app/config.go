package app

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yungbote/skillbridge-backend/internal/data/db"
	"github.com/yungbote/skillbridge-backend/internal/http/middleware"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/realtime/bus"
)

const devSecret = "CHANGE_ME_DEV_ONLY"

type Config struct {
	AppName string `mapstructure:"app_name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	LogMode string `mapstructure:"log_mode"`

	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`

	Database DatabaseConfig `mapstructure:"database"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
	Otel     OtelConfig     `mapstructure:"otel"`
	SLO      SLOConfig      `mapstructure:"slo"`

	CORSOrigins    []string `mapstructure:"-"`
	AllowedOrigins []string `mapstructure:"-"`
	AllowedMethods []string `mapstructure:"-"`
	AllowedHeaders []string `mapstructure:"-"`

	SeedDemoData   bool `mapstructure:"seed_demo_data"`
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

type RealtimeConfig struct {
	Bus          string `mapstructure:"bus"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisChannel string `mapstructure:"redis_channel"`
	NATSURL      string `mapstructure:"nats_url"`
	NATSSubject  string `mapstructure:"nats_subject"`
}

type OtelConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	Headers     string  `mapstructure:"headers"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type SLOConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	Interval              time.Duration `mapstructure:"interval"`
	Window                time.Duration `mapstructure:"window"`
	APIAvailabilityTarget float64       `mapstructure:"api_availability_target"`
	APILatencyTarget      float64       `mapstructure:"api_latency_target"`
	NotificationTarget    float64       `mapstructure:"notification_target"`
	AlertWebhookURL       string        `mapstructure:"alert_webhook_url"`
	AlertOwner            string        `mapstructure:"alert_owner"`
	AlertRunbookURL       string        `mapstructure:"alert_runbook_url"`
	AlertMinInterval      time.Duration `mapstructure:"alert_min_interval"`
}

// LoadConfig reads .env (if present), then an optional config.yaml, then the environment.
// configPath, when set, names the YAML file explicitly and must exist.
func LoadConfig(configPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORSOrigins = stringList(v, "cors_origins")
	cfg.AllowedOrigins = stringList(v, "allowed_origins")
	cfg.AllowedMethods = stringList(v, "allowed_methods")
	cfg.AllowedHeaders = stringList(v, "allowed_headers")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "SkillBridge LMS Backend")
	v.SetDefault("version", "0.1.0")
	v.SetDefault("env", "development")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 3001)
	v.SetDefault("log_mode", "development")
	v.SetDefault("secret_key", devSecret)
	v.SetDefault("access_token_ttl", "8h")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("database.url", "sqlite:///./app.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("allowed_origins", "")
	v.SetDefault("allowed_methods", "")
	v.SetDefault("allowed_headers", "")
	v.SetDefault("seed_demo_data", true)
	v.SetDefault("realtime.bus", bus.KindLocal)
	v.SetDefault("realtime.redis_addr", "")
	v.SetDefault("realtime.redis_channel", "skillbridge.notifications")
	v.SetDefault("realtime.nats_url", "")
	v.SetDefault("realtime.nats_subject", "skillbridge.notifications")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.headers", "")
	v.SetDefault("otel.sample_ratio", 0.1)
	v.SetDefault("slo.enabled", false)
	v.SetDefault("slo.interval", "60s")
	v.SetDefault("slo.window", "720h")
	v.SetDefault("slo.api_availability_target", 0.995)
	v.SetDefault("slo.api_latency_target", 0.95)
	v.SetDefault("slo.notification_target", 0.99)
	v.SetDefault("slo.alert_webhook_url", "")
	v.SetDefault("slo.alert_owner", "")
	v.SetDefault("slo.alert_runbook_url", "")
	v.SetDefault("slo.alert_min_interval", "15m")
}

func bindEnv(v *viper.Viper) {
	binds := map[string][]string{
		"app_name":                    {"APP_NAME"},
		"version":                     {"VERSION"},
		"env":                         {"APP_ENV"},
		"host":                        {"HOST"},
		"port":                        {"PORT"},
		"log_mode":                    {"LOG_MODE"},
		"secret_key":                  {"SECRET_KEY", "JWT_SECRET_KEY"},
		"access_token_ttl":            {"ACCESS_TOKEN_TTL"},
		"bcrypt_cost":                 {"BCRYPT_COST"},
		"database.url":                {"DATABASE_URL"},
		"database.max_connections":    {"DATABASE_MAX_CONNECTIONS"},
		"database.max_conn_lifetime":  {"DATABASE_MAX_CONN_LIFETIME"},
		"cors_origins":                {"CORS_ORIGINS"},
		"allowed_origins":             {"ALLOWED_ORIGINS"},
		"allowed_methods":             {"ALLOWED_METHODS"},
		"allowed_headers":             {"ALLOWED_HEADERS"},
		"seed_demo_data":              {"SEED_DEMO_DATA"},
		"realtime.bus":                {"REALTIME_BUS"},
		"realtime.redis_addr":         {"REDIS_ADDR"},
		"realtime.redis_channel":      {"REDIS_CHANNEL"},
		"realtime.nats_url":           {"NATS_URL"},
		"realtime.nats_subject":       {"NATS_SUBJECT"},
		"metrics_enabled":             {"METRICS_ENABLED"},
		"otel.enabled":                {"OTEL_ENABLED"},
		"otel.endpoint":               {"OTEL_EXPORTER_OTLP_ENDPOINT"},
		"otel.insecure":               {"OTEL_EXPORTER_OTLP_INSECURE"},
		"otel.headers":                {"OTEL_EXPORTER_OTLP_HEADERS"},
		"otel.sample_ratio":           {"OTEL_SAMPLER_RATIO"},
		"slo.enabled":                 {"SLO_ENABLED"},
		"slo.interval":                {"SLO_EVAL_INTERVAL"},
		"slo.window":                  {"SLO_WINDOW"},
		"slo.api_availability_target": {"SLO_API_AVAIL_TARGET"},
		"slo.api_latency_target":      {"SLO_API_LATENCY_TARGET"},
		"slo.notification_target":     {"SLO_NOTIFICATION_TARGET"},
		"slo.alert_webhook_url":       {"SLO_ALERT_WEBHOOK_URL"},
		"slo.alert_owner":             {"SLO_ALERT_OWNER"},
		"slo.alert_runbook_url":       {"SLO_ALERT_RUNBOOK_URL"},
		"slo.alert_min_interval":      {"SLO_ALERT_MIN_INTERVAL"},
	}
	for key, envs := range binds {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// stringList accepts either a YAML sequence or a comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	var parts []string
	switch raw := v.Get(key).(type) {
	case nil:
		return nil
	case []string:
		parts = raw
	case []interface{}:
		for _, item := range raw {
			parts = append(parts, fmt.Sprint(item))
		}
	default:
		parts = strings.Split(fmt.Sprint(raw), ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret_key must not be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access_token_ttl must be positive, got %s", c.AccessTokenTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if _, _, err := db.ParseURL(c.Database.URL); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Realtime.Bus)) {
	case "", bus.KindLocal, bus.KindRedis, bus.KindNATS:
	default:
		return fmt.Errorf("unknown realtime bus %q", c.Realtime.Bus)
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) UsesDevSecret() bool { return c.SecretKey == devSecret }

func (c Config) DBConfig() db.Config {
	return db.Config{
		URL:             c.Database.URL,
		MaxConnections:  c.Database.MaxConnections,
		MaxConnLifetime: c.Database.MaxConnLifetime,
	}
}

func (c Config) BusConfig() bus.Config {
	return bus.Config{
		Kind:         c.Realtime.Bus,
		RedisAddr:    c.Realtime.RedisAddr,
		RedisChannel: c.Realtime.RedisChannel,
		NATSURL:      c.Realtime.NATSURL,
		NATSSubject:  c.Realtime.NATSSubject,
	}
}

func (c Config) CORSConfig() middleware.CORSConfig {
	return middleware.CORSConfig{
		Origins:        c.CORSOrigins,
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: c.AllowedMethods,
		AllowedHeaders: c.AllowedHeaders,
	}
}

func (c Config) OtelSettings() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: "skillbridge",
		Environment: c.Env,
		Version:     c.Version,
		Endpoint:    c.Otel.Endpoint,
		Insecure:    c.Otel.Insecure,
		Headers:     c.Otel.Headers,
		SampleRatio: c.Otel.SampleRatio,
	}
}

func (c Config) SLOSettings() observability.SLOConfig {
	return observability.SLOConfig{
		Enabled:               c.SLO.Enabled,
		Interval:              c.SLO.Interval,
		Window:                c.SLO.Window,
		APIAvailabilityTarget: c.SLO.APIAvailabilityTarget,
		APILatencyTarget:      c.SLO.APILatencyTarget,
		NotificationTarget:    c.SLO.NotificationTarget,
		AlertWebhookURL:       c.SLO.AlertWebhookURL,
		AlertOwner:            c.SLO.AlertOwner,
		AlertRunbookURL:       c.SLO.AlertRunbookURL,
		AlertMinInterval:      c.SLO.AlertMinInterval,
	}
}
