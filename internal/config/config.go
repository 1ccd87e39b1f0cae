package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Драйверы хранилища каталога
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Хранилища сессий викторины
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Quiz      QuizConfig
	Cache     CacheConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	// Driver: "postgres" или "memory" (каталог в памяти с категориями по умолчанию, для разработки)
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: без Redis кеш категорий и rate limiting отключены, сессии хранятся в памяти
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно)
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff / MaxRetryBackoff: интервалы между попытками в миллисекундах
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// QuizConfig содержит настройки сессий викторины
type QuizConfig struct {
	// SessionBackend: "memory" или "redis"
	SessionBackend string `mapstructure:"session_backend"`
	// SessionTTL: сессия без обращений дольше TTL удаляется
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	// CleanupInterval: период очистки истекших сессий в памяти
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CacheConfig содержит настройки кеша
type CacheConfig struct {
	// CategoriesTTL: время жизни кеша категорий в Redis; 0 отключает кеш
	CategoriesTTL time.Duration `mapstructure:"categories_ttl"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig содержит настройки ограничения частоты запросов к викторинам
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("quiz.session_backend", SessionBackendMemory)
	vip.SetDefault("quiz.session_ttl", 30*time.Minute)
	vip.SetDefault("quiz.cleanup_interval", 5*time.Minute)
	vip.SetDefault("cache.categories_ttl", 10*time.Minute)
	vip.SetDefault("cors.allowed_origins", []string{"*"})
	vip.SetDefault("rate_limit.max_requests", 120)
	vip.SetDefault("rate_limit.window", time.Minute)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS") // Для массива строк
	vip.BindEnv("redis.addr", "REDIS_ADDR")   // Для одиночной строки
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("quiz.session_backend", "QUIZ_SESSION_BACKEND")
	vip.BindEnv("quiz.session_ttl", "QUIZ_SESSION_TTL")
	vip.BindEnv("quiz.cleanup_interval", "QUIZ_CLEANUP_INTERVAL")

	vip.BindEnv("cache.categories_ttl", "CACHE_CATEGORIES_TTL")

	vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")
	vip.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	// 3. Читаем файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Enabled: %t (mode=%s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Quiz Session Backend: %s (ttl=%s)", cfg.Quiz.SessionBackend, cfg.Quiz.SessionTTL)
		log.Printf("Rate Limit Enabled: %t", cfg.RateLimit.Enabled)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры и их сочетания
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
		if os.Getenv("GIN_MODE") == "release" && c.Database.Password == "" {
			return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q (expected %q or %q)", c.Database.Driver, DriverPostgres, DriverMemory)
	}

	switch c.Quiz.SessionBackend {
	case SessionBackendMemory:
		if c.Quiz.CleanupInterval <= 0 {
			return fmt.Errorf("quiz cleanup interval must be positive, got %s", c.Quiz.CleanupInterval)
		}
	case SessionBackendRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("quiz session backend %q requires redis.enabled", SessionBackendRedis)
		}
	default:
		return fmt.Errorf("unknown quiz session backend %q (expected %q or %q)", c.Quiz.SessionBackend, SessionBackendMemory, SessionBackendRedis)
	}
	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("quiz session ttl must be positive, got %s", c.Quiz.SessionTTL)
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("rate limiting requires redis.enabled")
		}
		if c.RateLimit.MaxRequests < 1 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit requires positive max_requests and window")
		}
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	return nil
}
