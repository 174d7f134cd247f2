package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	DB         DBConfig         `mapstructure:"db"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Posts      PostsConfig      `mapstructure:"posts"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Outbox     OutboxConfig     `mapstructure:"outbox"`
	ClickHouse ClickHouseConfig `mapstructure:"clickhouse"`
	Log        LogConfig        `mapstructure:"log"`
}

type HTTPConfig struct {
	Port         string   `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type PostsConfig struct {
	Store string `mapstructure:"store"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"`
}

type OutboxConfig struct {
	Period time.Duration `mapstructure:"period"`
	Limit  int           `mapstructure:"limit"`
}

type ClickHouseConfig struct {
	Addr      string        `mapstructure:"addr"`
	Database  string        `mapstructure:"database"`
	User      string        `mapstructure:"user"`
	Password  string        `mapstructure:"password"`
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Posts se guardan en la base relacional o en MongoDB.
const (
	PostsStoreSQL   = "sql"
	PostsStoreMongo = "mongo"
)

// SetDefaults registra los valores por defecto.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.allow_origins", []string{"*"})
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "./purrfectmatch.db")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "purrfectmatch")
	v.SetDefault("posts.store", PostsStoreSQL)
	v.SetDefault("redis.addr", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "purrfectmatch-catalog")
	v.SetDefault("outbox.period", time.Second)
	v.SetDefault("outbox.limit", 10)
	v.SetDefault("clickhouse.addr", "")
	v.SetDefault("clickhouse.database", "default")
	v.SetDefault("clickhouse.user", "default")
	v.SetDefault("clickhouse.password", "")
	v.SetDefault("clickhouse.batch_size", 500)
	v.SetDefault("clickhouse.interval", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load lee .env (si existe), el fichero de configuración (si existe) y el
// entorno. PURRFECT_DB_DSN sobrescribe db.dsn.
func Load(v *viper.Viper, path string) (*Config, error) {
	envFiles := []string{".env", ".env.local"}
	dirs := []string{"."}
	if path != "" {
		dirs = append(dirs, filepath.Dir(path))
	}
	for _, dir := range dirs {
		for _, envFile := range envFiles {
			_ = godotenv.Load(filepath.Join(dir, envFile)) // Ignore errors
		}
	}

	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("PURRFECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate comprueba los valores que no tienen un fallback razonable.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid db.driver %q (sqlite|postgres)", c.DB.Driver)
	}
	switch c.Posts.Store {
	case PostsStoreSQL:
	case PostsStoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("posts.store=mongo requires mongo.uri")
		}
	default:
		return fmt.Errorf("invalid posts.store %q (sql|mongo)", c.Posts.Store)
	}
	if c.Outbox.Limit <= 0 || c.Outbox.Period <= 0 {
		return fmt.Errorf("outbox.limit and outbox.period must be positive")
	}
	return nil
}

// CacheTTLSeconds es el TTL en el formato que espera la caché.
func (c *Config) CacheTTLSeconds() int {
	return int(c.Cache.TTL / time.Second)
}
