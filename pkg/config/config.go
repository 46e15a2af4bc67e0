package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Name-match strictness applied on the public signing endpoint.
const (
	NameMatchExact = "exact"
	NameMatchFold  = "fold"
	NameMatchOff   = "off"
)

// Policy for a balance schedule that starts before the entry schedule ends.
const (
	BalancePolicyOff     = "off"
	BalancePolicyWarn    = "warn"
	BalancePolicyEnforce = "enforce"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Storage   StorageConfig
	Converter ConverterConfig
	Email     EmailConfig
	Signing   SigningConfig
	Catalog   CatalogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	QueryTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig controls where generated contract files live and how
// public download links are signed.
type StorageConfig struct {
	BaseDir         string
	PathPrefix      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	RetryBackoff    time.Duration
}

// ConverterConfig bounds the external DOCX->PDF conversion process.
type ConverterConfig struct {
	Binary  string
	Timeout time.Duration
}

// EmailConfig configures the SendGrid signing-link sender.
type EmailConfig struct {
	APIKey      string
	FromName    string
	FromAddress string
	SendTimeout time.Duration
	Workers     int
	MaxRetries  int
}

// SigningConfig governs the public countersignature flow.
type SigningConfig struct {
	BaseURL       string
	NameMatch     string
	BalancePolicy string
}

// CatalogConfig tunes the course/cohort catalog cache.
type CatalogConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		QueryTimeout: parseDuration(v.GetString("DB_QUERY_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Storage = StorageConfig{
		BaseDir:         v.GetString("STORAGE_DIR"),
		PathPrefix:      v.GetString("STORAGE_PATH_PREFIX"),
		SignedURLSecret: v.GetString("STORAGE_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("STORAGE_SIGNED_URL_TTL"), 24*time.Hour),
		RetryBackoff:    parseDuration(v.GetString("STORAGE_RETRY_BACKOFF"), 500*time.Millisecond),
	}

	cfg.Converter = ConverterConfig{
		Binary:  v.GetString("CONVERTER_BIN"),
		Timeout: parseDuration(v.GetString("CONVERTER_TIMEOUT"), 30*time.Second),
	}

	cfg.Email = EmailConfig{
		APIKey:      v.GetString("SENDGRID_API_KEY"),
		FromName:    v.GetString("EMAIL_FROM_NAME"),
		FromAddress: v.GetString("EMAIL_FROM_ADDRESS"),
		SendTimeout: parseDuration(v.GetString("EMAIL_SEND_TIMEOUT"), 10*time.Second),
		Workers:     v.GetInt("EMAIL_WORKERS"),
		MaxRetries:  v.GetInt("EMAIL_MAX_RETRIES"),
	}

	cfg.Signing = SigningConfig{
		BaseURL:       strings.TrimRight(v.GetString("SIGNING_BASE_URL"), "/"),
		NameMatch:     v.GetString("SIGNING_NAME_MATCH"),
		BalancePolicy: v.GetString("SIGNING_BALANCE_POLICY"),
	}

	cfg.Catalog = CatalogConfig{
		CacheTTL: parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "nexusmed_contratos")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_QUERY_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "nexusmed-portal")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORAGE_DIR", "./contratos")
	v.SetDefault("STORAGE_PATH_PREFIX", "minutas")
	v.SetDefault("STORAGE_SIGNED_URL_SECRET", "dev_storage_secret")
	v.SetDefault("STORAGE_SIGNED_URL_TTL", "24h")
	v.SetDefault("STORAGE_RETRY_BACKOFF", "500ms")

	v.SetDefault("CONVERTER_BIN", "soffice")
	v.SetDefault("CONVERTER_TIMEOUT", "30s")

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM_NAME", "NexusMed Secretaria")
	v.SetDefault("EMAIL_FROM_ADDRESS", "secretaria@nexusmed.org")
	v.SetDefault("EMAIL_SEND_TIMEOUT", "10s")
	v.SetDefault("EMAIL_WORKERS", 1)
	v.SetDefault("EMAIL_MAX_RETRIES", 3)

	v.SetDefault("SIGNING_BASE_URL", "http://localhost:8080")
	v.SetDefault("SIGNING_NAME_MATCH", NameMatchFold)
	v.SetDefault("SIGNING_BALANCE_POLICY", BalancePolicyWarn)

	v.SetDefault("CATALOG_CACHE_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
