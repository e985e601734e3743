// Package config описывает настройки приложения и их загрузку.
//
// Настройки читаются из YAML-файла, путь к которому задаёт CONFIG_PATH;
// переменные окружения переопределяют значения из файла. Без CONFIG_PATH
// конфигурация собирается только из окружения и значений по умолчанию.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-default:"sqlite://expense.db"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	RedisConnection         `yaml:"redis_connection"`
	AMQP                    `yaml:"amqp"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Session настройки cookie-сессии.
type Session struct {
	SecretKey    string        `yaml:"secret_key" env:"SECRET_KEY" env-default:"dev-secret-key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"SESSION_TTL" env-default:"24h"`
	SecureCookie bool          `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

// RedisConnection настройки подключения к redis. Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	SummaryTTL   time.Duration `yaml:"summary_ttl" env-default:"1h"`
}

// AMQP настройки публикации событий журнала. Пустой URL отключает публикацию.
type AMQP struct {
	URL      string `yaml:"url" env:"AMQP_URL"`
	Exchange string `yaml:"exchange" env:"AMQP_EXCHANGE" env-default:"ledger"`
	Retries  int    `yaml:"retries" env-default:"3"`
}

// RateLimit ограничение частоты запросов на вход и регистрацию.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"AUTH_RATE_RPS" env-default:"1"`
	Burst int     `yaml:"burst" env:"AUTH_RATE_BURST" env-default:"5"`
}

// Load читает конфигурацию. Ошибка возвращается, если CONFIG_PATH указывает
// на несуществующий файл или значения не разбираются.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad как Load, но завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  SecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"  SecureCookie: %t\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  SummaryTTL: %s\n"+
			"AMQP:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.SecretKey),
		c.TokenTTL,
		c.SecureCookie,
		c.AddressRedis,
		c.DB,
		c.SummaryTTL,
		mask(c.URL),
		c.Exchange,
		c.RPS,
		c.Burst,
	)
}

// mask скрывает учётные данные: строки подключения обрезаются до схемы.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "://"); i >= 0 {
		return s[:i+3] + "***"
	}
	return "***"
}
