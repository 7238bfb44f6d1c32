// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env" env-default:"local"`
	GRPCAuthAddress         string        `yaml:"grpc_auth_address"`
	StorageConnectionString string        `yaml:"storage_connection_string"`
	RabbitURL               string        `yaml:"rabbit_url"`
	RabbitMaxRetries        int           `yaml:"rabbit_max_retries" env-default:"5"`
	RabbitRetryDelay        time.Duration `yaml:"rabbit_retry_delay" env-default:"3s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	LLMProvider             `yaml:"llm_provider"`
	Payment                 `yaml:"payment"`
	SMTP                    `yaml:"smtp"`
	Scheduler               `yaml:"scheduler"`
}

// Scheduler структура для настройки интервалов фоновых задач подписок.
type Scheduler struct {
	MarkExpiredInterval time.Duration `yaml:"mark_expired_interval" env-default:"1h"`
	RenewInterval       time.Duration `yaml:"renew_interval" env-default:"1h"`
}

// SMTP структура для настройки SMTP-транспорта писем.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// LLMProvider структура для настройки внешнего LLM-провайдера рекомендаций.
// Пустой APIKey означает, что провайдер не сконфигурирован: сервис рекомендаций
// в этом случае всегда использует статический запасной набор.
type LLMProvider struct {
	APIKey     string        `yaml:"api_key"`
	APIURL     string        `yaml:"api_url" env-default:"https://api.groq.com/openai/v1/chat/completions"`
	Model      string        `yaml:"model" env-default:"llama3-8b-8192"`
	TimeoutLLM time.Duration `yaml:"timeout" env-default:"30s"`
}

// Payment структура для настройки симулятора платежей.
type Payment struct {
	ProcessingDelay time.Duration `yaml:"processing_delay" env-default:"1500ms"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
