package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config содержит все конфигурационные параметры приложения.
type Config struct {
	Server struct {
		Host         string
		Port         int
		CookieSecure bool
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	Store struct {
		Driver string // sqlite | redis | badger | memory
		SQLite struct {
			DSN string // Data Source Name, например: "classifieds.db?_foreign_keys=on"
		}
		Redis struct {
			Addr     string
			Password string
			DB       int
			Prefix   string
		}
		Badger struct {
			Path     string
			InMemory bool
		}
	}
	Session struct {
		Expiration      time.Duration
		CleanupInterval time.Duration
	}
	Logger struct {
		Level  string
		Format string // text | json
		Output string // stdout | stderr
	}
	// Tiers переопределяет сроки жизни объявлений для каждого тарифа.
	// Нулевое значение означает "использовать значение по умолчанию".
	Tiers struct {
		Free    time.Duration
		Premium time.Duration
		Vip     time.Duration
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
}

// AppConfig - это глобальная переменная для хранения загруженной конфигурации,
// доступная для всего приложения.
var AppConfig *Config

// EnvPrefix is prepended to every environment override, e.g. CLASSIFIEDS_SERVER_PORT.
const EnvPrefix = "CLASSIFIEDS"

// setDefaults задает значения по умолчанию для всех ключей.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	// Cookie Secure: default false for local HTTP; set CLASSIFIEDS_SERVER_COOKIE_SECURE=true in prod
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite.dsn", "classifieds.db?_foreign_keys=on")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "classifieds:")
	v.SetDefault("store.badger.path", "./data/badger")
	v.SetDefault("store.badger.in_memory", false)

	v.SetDefault("session.expiration", 24*time.Hour)
	v.SetDefault("session.cleanup_interval", 30*time.Minute)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("tiers.free", time.Duration(0))
	v.SetDefault("tiers.premium", time.Duration(0))
	v.SetDefault("tiers.vip", time.Duration(0))

	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 20)
}

// LoadConfig загружает конфигурацию из файла (если он есть), переменных окружения
// и значений по умолчанию. Пустой path означает поиск config.yaml в стандартных местах;
// отсутствие файла в этом случае не считается ошибкой.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/classifieds")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}

	// --- Конфигурация Сервера ---
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.CookieSecure = v.GetBool("server.cookie_secure")
	cfg.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	cfg.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	cfg.Server.IdleTimeout = v.GetDuration("server.idle_timeout")

	// --- Конфигурация Хранилища ---
	cfg.Store.Driver = strings.ToLower(v.GetString("store.driver"))
	cfg.Store.SQLite.DSN = v.GetString("store.sqlite.dsn")
	cfg.Store.Redis.Addr = v.GetString("store.redis.addr")
	cfg.Store.Redis.Password = v.GetString("store.redis.password")
	cfg.Store.Redis.DB = v.GetInt("store.redis.db")
	cfg.Store.Redis.Prefix = v.GetString("store.redis.prefix")
	cfg.Store.Badger.Path = v.GetString("store.badger.path")
	cfg.Store.Badger.InMemory = v.GetBool("store.badger.in_memory")

	// --- Конфигурация Сессий ---
	cfg.Session.Expiration = v.GetDuration("session.expiration")
	cfg.Session.CleanupInterval = v.GetDuration("session.cleanup_interval")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Format = v.GetString("logger.format")
	cfg.Logger.Output = v.GetString("logger.output")

	cfg.Tiers.Free = v.GetDuration("tiers.free")
	cfg.Tiers.Premium = v.GetDuration("tiers.premium")
	cfg.Tiers.Vip = v.GetDuration("tiers.vip")

	cfg.RateLimit.RPS = v.GetFloat64("rate_limit.rps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

// validate отсекает значения, с которыми приложение не сможет стартовать.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	if c.Session.Expiration <= 0 {
		return fmt.Errorf("config: session.expiration must be positive, got %s", c.Session.Expiration)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("config: session.cleanup_interval must be positive, got %s", c.Session.CleanupInterval)
	}
	if c.Tiers.Free < 0 || c.Tiers.Premium < 0 || c.Tiers.Vip < 0 {
		return errors.New("config: tier expiry overrides must not be negative")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
