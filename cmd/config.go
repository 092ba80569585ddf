package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"makanapa/internal/adapters/out/postgres"
	"makanapa/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	envPrefix = "MAKANAPA"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type AppConfig struct {
	Mode string `mapstructure:"mode"` // debug / release
	// Timezone order identifiers and message timestamps are rendered in.
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	RunnerChatID  int64  `mapstructure:"runner_chat_id"`
	Mode          string `mapstructure:"mode"`
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	// RequestTimeout bounds every Bot API call, including long polls.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// EventTimeout bounds the handling of one inbound event.
	EventTimeout time.Duration `mapstructure:"event_timeout"`
	Workers      int           `mapstructure:"workers"`
	QueueSize    int           `mapstructure:"queue_size"`
}

type DatabasePoolConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"`
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	Prefix     string        `mapstructure:"prefix"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type KafkaConfig struct {
	// Brokers is a comma separated list. Empty disables event publishing.
	Brokers      string        `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type HTTPConfig struct {
	Port       string `mapstructure:"port"`
	AdminToken string `mapstructure:"admin_token"`
}

type JobsConfig struct {
	OrphanReportSpec string        `mapstructure:"orphan_report_spec"`
	OrphanAge        time.Duration `mapstructure:"orphan_age"`
}

func (c LogConfig) ToLoggerOptions(mode string) logger.Options {
	return logger.Options{
		Mode:       mode,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

func (c DatabaseConfig) ToDatabaseConfig() postgres.Config {
	return postgres.Config{
		Driver: c.Driver,
		DSN:    c.DSN,
		Pool: postgres.PoolConfig{
			MaxOpenConns:    c.Pool.MaxOpenConns,
			MaxIdleConns:    c.Pool.MaxIdleConns,
			ConnMaxLifetime: c.Pool.ConnMaxLifetime,
			ConnMaxIdleTime: c.Pool.ConnMaxIdleTime,
		},
	}
}

// PollTimeout is the long-poll wait in seconds. It stays below the request
// timeout so that an idle poll never trips the HTTP client.
func (c TelegramConfig) PollTimeout() int {
	seconds := int(c.RequestTimeout.Seconds() / 2)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// LoadConfig reads .env (if present), then the config file, then MAKANAPA_*
// environment variables, later sources overriding earlier ones. An empty path
// looks for config.yml in the working directory and ./etc.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./etc")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.timezone", "Asia/Kuala_Lumpur")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "makanapa.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.runner_chat_id", 0)
	v.SetDefault("telegram.mode", ModePolling)
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.webhook_secret", "")
	v.SetDefault("telegram.request_timeout", "60s")
	v.SetDefault("telegram.event_timeout", "30s")
	v.SetDefault("telegram.workers", 8)
	v.SetDefault("telegram.queue_size", 64)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:data/makanapa.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	v.SetDefault("database.pool.max_open_conns", 10)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime", "0s")
	v.SetDefault("database.pool.conn_max_idle_time", "0s")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "makanapa")
	v.SetDefault("redis.session_ttl", "0s")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "makanapa.order-events")
	v.SetDefault("kafka.write_timeout", "5s")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.admin_token", "")
	v.SetDefault("jobs.orphan_report_spec", "0 */10 * * * *")
	v.SetDefault("jobs.orphan_age", "5m")
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var problems []error

	if strings.TrimSpace(c.Telegram.Token) == "" {
		problems = append(problems, errors.New("telegram.token is required"))
	}
	if c.Telegram.RunnerChatID == 0 {
		problems = append(problems, errors.New("telegram.runner_chat_id is required"))
	}
	switch c.Telegram.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Telegram.WebhookURL == "" || c.Telegram.WebhookSecret == "" {
			problems = append(problems, errors.New("telegram.webhook_url and telegram.webhook_secret are required in webhook mode"))
		}
	default:
		problems = append(problems, fmt.Errorf("telegram.mode must be %q or %q, got %q", ModePolling, ModeWebhook, c.Telegram.Mode))
	}
	if c.Telegram.RequestTimeout <= 0 {
		problems = append(problems, errors.New("telegram.request_timeout must be positive"))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		problems = append(problems, fmt.Errorf("app.timezone: %w", err))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, errors.New("redis.addr is required when redis is enabled"))
	}

	return errors.Join(problems...)
}
