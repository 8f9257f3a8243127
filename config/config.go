package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Postgres   PostgresConfig
	LocalStore LocalStoreConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Sync       SyncConfig
	I18n       I18nConfig
}

type ServerConfig struct {
	AppEnv       string
	HTTPPort     string
	GRPCPort     string
	AllowOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	ConnectTimeout  int
}

type LocalStoreConfig struct {
	// sqlite, redis, memory or none
	Driver     string
	SQLitePath string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	LockTTL   int
}

type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	EventsTopic string
	StockTopic  string
	GroupID     string
}

type SyncConfig struct {
	TrustEmptyRemote bool
	RefreshSchedule  string
	ReportSchedule   string
	HealthInterval   time.Duration
}

type I18nConfig struct {
	DefaultLang string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:       getEnv("APP_ENV", "dev"),
			HTTPPort:     getEnv("HTTP_PORT", ":8080"),
			GRPCPort:     getEnv("GRPC_PORT", ":8082"),
			AllowOrigins: getEnvSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Enabled:         getEnvBool("POSTGRES_ENABLED", true),
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "taller"),
			Password:        getEnv("POSTGRES_PASSWORD", "taller"),
			DBName:          getEnv("POSTGRES_DB", "taller_repairs"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			ConnectTimeout:  getEnvInt("POSTGRES_CONNECT_TIMEOUT", 5),
		},
		LocalStore: LocalStoreConfig{
			Driver:     strings.ToLower(getEnv("LOCAL_STORE_DRIVER", "sqlite")),
			SQLitePath: getEnv("LOCAL_STORE_SQLITE_PATH", "taller.db"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "taller:"),
			LockTTL:   getEnvInt("REDIS_LOCK_TTL", 5),
		},
		Kafka: KafkaConfig{
			Enabled:     getEnvBool("KAFKA_ENABLED", false),
			Brokers:     getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			EventsTopic: getEnv("KAFKA_TOPIC_EVENTS", "repairs.events"),
			StockTopic:  getEnv("KAFKA_TOPIC_STOCK", "repairs.stock"),
			GroupID:     getEnv("KAFKA_GROUP_INVENTORY", "repair-inventory"),
		},
		Sync: SyncConfig{
			TrustEmptyRemote: getEnvBool("SYNC_TRUST_EMPTY_REMOTE", false),
			RefreshSchedule:  getEnv("SYNC_REFRESH_SCHEDULE", "0 */5 * * * *"),
			ReportSchedule:   getEnv("SYNC_REPORT_SCHEDULE", "0 0 8 * * *"),
			HealthInterval:   time.Duration(getEnvInt("SYNC_HEALTH_INTERVAL", 15)) * time.Second,
		},
		I18n: I18nConfig{
			DefaultLang: getEnv("I18N_DEFAULT_LANG", "es"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
