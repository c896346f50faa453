package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Email  EmailConfig
	Parser ParserConfig
	KVK    KVKConfig
	PDOK   PDOKConfig
	OCR    OCRConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// QueueConfig holds intake queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single AI extraction provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds AI extraction settings with a primary and an optional
// secondary provider.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary provider config, or nil if not configured.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	if p.Primary.Provider != "" {
		return &p.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// KVKConfig holds KVK Handelsregister API settings.
type KVKConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// PDOKConfig holds PDOK Locatieserver settings.
type PDOKConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds tesseract OCR settings.
type OCRConfig struct {
	TesseractPath string `mapstructure:"tesseract_path"`
	Languages     string `mapstructure:"languages"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the INTAKE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "intake")
	v.SetDefault("db.password", "intake_secret")
	v.SetDefault("db.name", "intake_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "aansluitintake")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "intake-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.concurrency", 2)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@impact-energy.nl")
	v.SetDefault("email.from_name", "Impact Energy Intake")

	// Parser provider defaults
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "gpt-4o")
	v.SetDefault("parser.primary.max_retries", 3)
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.max_retries", 3)
	v.SetDefault("parser.secondary.timeout_secs", 120)

	// KVK defaults
	v.SetDefault("kvk.base_url", "https://api.kvk.nl/api")
	v.SetDefault("kvk.api_key", "")
	v.SetDefault("kvk.timeout_secs", 8)

	// PDOK defaults (public service, no key)
	v.SetDefault("pdok.base_url", "https://api.pdok.nl/bzk/locatieserver/search/v3_1")
	v.SetDefault("pdok.timeout_secs", 6)

	// OCR defaults
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.languages", "nld+eng")
	v.SetDefault("ocr.timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "INTAKE_SERVER_PORT",
		"server.read_timeout":  "INTAKE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "INTAKE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "INTAKE_SERVER_ENVIRONMENT",
		"db.host":              "INTAKE_DB_HOST",
		"db.port":              "INTAKE_DB_PORT",
		"db.user":              "INTAKE_DB_USER",
		"db.password":          "INTAKE_DB_PASSWORD",
		"db.name":              "INTAKE_DB_NAME",
		"db.sslmode":           "INTAKE_DB_SSLMODE",
		"db.max_open":          "INTAKE_DB_MAX_OPEN",
		"db.max_idle":          "INTAKE_DB_MAX_IDLE",
		"jwt.secret":           "INTAKE_JWT_SECRET",
		"jwt.access_expiry":    "INTAKE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "INTAKE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "INTAKE_JWT_ISSUER",
		"s3.region":            "INTAKE_S3_REGION",
		"s3.bucket":            "INTAKE_S3_BUCKET",
		"s3.endpoint":          "INTAKE_S3_ENDPOINT",
		"s3.access_key":        "INTAKE_S3_ACCESS_KEY",
		"s3.secret_key":        "INTAKE_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "INTAKE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "INTAKE_S3_PRESIGN_EXPIRY",
		"log.level":            "INTAKE_LOG_LEVEL",
		"log.format":           "INTAKE_LOG_FORMAT",
		"cors.allowed_origins": "INTAKE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":       "INTAKE_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":              "INTAKE_QUEUE_CONCURRENCY",
		"email.provider":                 "INTAKE_EMAIL_PROVIDER",
		"email.region":                   "INTAKE_EMAIL_REGION",
		"email.from_address":             "INTAKE_EMAIL_FROM_ADDRESS",
		"email.from_name":                "INTAKE_EMAIL_FROM_NAME",
		"parser.primary.provider":        "INTAKE_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "INTAKE_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "INTAKE_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.max_retries":     "INTAKE_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":    "INTAKE_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "INTAKE_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "INTAKE_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "INTAKE_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.max_retries":   "INTAKE_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":  "INTAKE_PARSER_SECONDARY_TIMEOUT_SECS",
		"kvk.base_url":                   "INTAKE_KVK_BASE_URL",
		"kvk.api_key":                    "INTAKE_KVK_API_KEY",
		"kvk.timeout_secs":               "INTAKE_KVK_TIMEOUT_SECS",
		"pdok.base_url":                  "INTAKE_PDOK_BASE_URL",
		"pdok.timeout_secs":              "INTAKE_PDOK_TIMEOUT_SECS",
		"ocr.tesseract_path":             "INTAKE_OCR_TESSERACT_PATH",
		"ocr.languages":                  "INTAKE_OCR_LANGUAGES",
		"ocr.timeout_secs":               "INTAKE_OCR_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INTAKE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INTAKE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			MaxRetries:   v.GetInt("parser.primary.max_retries"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Secondary: ParserProviderConfig{
			Provider:     v.GetString("parser.secondary.provider"),
			APIKey:       v.GetString("parser.secondary.api_key"),
			DefaultModel: v.GetString("parser.secondary.default_model"),
			MaxRetries:   v.GetInt("parser.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("parser.secondary.timeout_secs"),
		},
	}

	cfg.KVK = KVKConfig{
		BaseURL:     v.GetString("kvk.base_url"),
		APIKey:      v.GetString("kvk.api_key"),
		TimeoutSecs: v.GetInt("kvk.timeout_secs"),
	}

	cfg.PDOK = PDOKConfig{
		BaseURL:     v.GetString("pdok.base_url"),
		TimeoutSecs: v.GetInt("pdok.timeout_secs"),
	}

	cfg.OCR = OCRConfig{
		TesseractPath: v.GetString("ocr.tesseract_path"),
		Languages:     v.GetString("ocr.languages"),
		TimeoutSecs:   v.GetInt("ocr.timeout_secs"),
	}

	return cfg, nil
}
