// Package config loads the process configuration from the environment.
//
// Values come from OS environment variables first, then an optional .env file.
// Everything is validated once at startup; an invalid configuration stops the process.
package config

import "time"

// Config is the top-level configuration. Each component receives only its own section.
type Config struct {
	Env string `envconfig:"APP_ENV" default:"local" validate:"oneof=local dev prod test"`

	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	OpenMeteo OpenMeteoConfig
	Prices    PricesConfig
	RAG       RAGConfig
	LLM       LLMConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	GinMode string `envconfig:"GIN_MODE" default:"release" validate:"oneof=debug release test"`
}

// DatabaseConfig selects the driver and its connection parameters.
// sqlite is meant for local development only.
type DatabaseConfig struct {
	Driver         string        `envconfig:"DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" validate:"required_if=Driver postgres"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME" validate:"required_if=Driver postgres"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:"coffee.db"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	RunMigrations  bool          `envconfig:"RUN_MIGRATIONS" default:"false"`
}

// RedisConfig is optional. Without a host the price cache is bypassed.
// PRICE_CACHE_TTL=0 makes cached prices expire at the next daily quotation.
type RedisConfig struct {
	Host     string        `envconfig:"REDIS_HOST"`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	PriceTTL time.Duration `envconfig:"PRICE_CACHE_TTL" default:"1h"`
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" validate:"required,min=32"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type OpenMeteoConfig struct {
	ForecastURL  string        `envconfig:"OPEN_METEO_FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	GeocodingURL string        `envconfig:"OPEN_METEO_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search" validate:"required,url"`
	Timeout      time.Duration `envconfig:"OPEN_METEO_TIMEOUT" default:"15s"`
}

type PricesConfig struct {
	SourceURL   string        `envconfig:"PRICE_SOURCE_URL" default:"https://www.noticiasagricolas.com.br/cotacoes/cafe" validate:"required,url"`
	HistoryDays int           `envconfig:"PRICE_HISTORY_DAYS" default:"90" validate:"min=3,max=365"`
	ScrapeEvery time.Duration `envconfig:"PRICE_SCRAPE_INTERVAL" default:"2s"`
	Timeout     time.Duration `envconfig:"PRICE_SCRAPE_TIMEOUT" default:"10s"`
}

type RAGConfig struct {
	BaseURL string        `envconfig:"RAG_BASE_URL" default:"http://localhost:8002" validate:"required,url"`
	TopK    int           `envconfig:"RAG_TOP_K" default:"5" validate:"min=1,max=50"`
	Timeout time.Duration `envconfig:"RAG_TIMEOUT" default:"30s"`
}

// LLMConfig controls the explanation generator. GEMINI_API_KEY is read by the genai SDK itself.
type LLMConfig struct {
	Enabled bool          `envconfig:"LLM_ENABLED" default:"true"`
	Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash" validate:"required"`
	Timeout time.Duration `envconfig:"EXPLANATION_TIMEOUT" default:"20s"`
}
