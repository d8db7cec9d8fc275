package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host             string
	Port             int
	ReadTimeoutSec   int
	WriteTimeoutSec  int
	IdleTimeoutSec   int
	RequestTimeoutMs int
	MaxBodyBytes     int64
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxConcurrency   int64
}

type App struct {
	Name     string
	Env      string
	Timezone string
	HTTP     HTTP
}

type LogRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate LogRotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Enabled        bool   `mapstructure:"enabled"`
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	DedupeTTLHours int    `mapstructure:"dedupe_ttl_hours"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type AMQP struct {
	URL          string `mapstructure:"url"`
	EventosQueue string `mapstructure:"eventos_queue"`
	PushQueue    string `mapstructure:"push_queue"`
	Prefetch     int    `mapstructure:"prefetch"`
}

type Firebase struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	ProjectID       string `mapstructure:"project_id"`
}

type Identity struct {
	Driver string // local | firebase
}

type Push struct {
	Driver string // fcm | amqp | log
}

type Fanout struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

type Reminder struct {
	LookaheadHours int    `mapstructure:"lookahead_hours"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
	Schedule       string `mapstructure:"schedule"`
}

type Config struct {
	App      App
	Log      Log
	JWT      JWT
	DB       DB
	Redis    Redis    `mapstructure:"redis"`
	AMQP     AMQP     `mapstructure:"amqp"`
	Firebase Firebase `mapstructure:"firebase"`
	Identity Identity
	Push     Push
	Fanout   Fanout   `mapstructure:"fanout"`
	Reminder Reminder `mapstructure:"reminder"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "paroquia-backend")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.timezone", "America/Sao_Paulo")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.requesttimeoutms", 15000)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("identity.driver", "local")
	v.SetDefault("push.driver", "log")
	v.SetDefault("redis.dedupe_ttl_hours", 72)
	v.SetDefault("amqp.eventos_queue", "evento.created")
	v.SetDefault("amqp.push_queue", "push.jobs")
	v.SetDefault("amqp.prefetch", 10)
	v.SetDefault("fanout.max_concurrency", 16)
	v.SetDefault("reminder.lookahead_hours", 48)
	v.SetDefault("reminder.max_concurrency", 8)
	v.SetDefault("reminder.schedule", "0 8 * * *")
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

// Location resolves app.timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using UTC", c.App.Timezone)
		return time.UTC
	}
	return loc
}

func (c *Config) DedupeTTL() time.Duration {
	return time.Duration(c.Redis.DedupeTTLHours) * time.Hour
}

func (c *Config) Lookahead() time.Duration {
	return time.Duration(c.Reminder.LookaheadHours) * time.Hour
}
