package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV"      envDefault:"development"`
		Port        string `env:"PORT"         envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"tourney_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"         envDefault:"supersecret"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"1440"`
		Issuer                   string `env:"JWT_ISSUER"                      envDefault:"tourney"`
	}
	Stripe struct {
		SecretKey      string `env:"STRIPE_SECRET_KEY"`
		WebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET"`
		Currency       string `env:"STRIPE_CURRENCY"        envDefault:"inr"`
		SuccessURL     string `env:"STRIPE_SUCCESS_URL"     envDefault:"http://localhost:3000/success"`
		CancelURL      string `env:"STRIPE_CANCEL_URL"      envDefault:"http://localhost:3000/cancel"`
		TimeoutSeconds int    `env:"STRIPE_TIMEOUT_SECONDS" envDefault:"10"`
	}
	Webhook struct {
		RetentionDays        int `env:"WEBHOOK_RETENTION_DAYS"         envDefault:"30"`
		PruneIntervalMinutes int `env:"WEBHOOK_PRUNE_INTERVAL_MINUTES" envDefault:"60"`
	}
}

// StripeTimeout is the upper bound for a single call to the payment provider.
func (c *Config) StripeTimeout() time.Duration {
	return time.Duration(c.Stripe.TimeoutSeconds) * time.Second
}

// WebhookRetention is how long webhook delivery records are kept.
func (c *Config) WebhookRetention() time.Duration {
	return time.Duration(c.Webhook.RetentionDays) * 24 * time.Hour
}

func (c *Config) WebhookPruneInterval() time.Duration {
	return time.Duration(c.Webhook.PruneIntervalMinutes) * time.Minute
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "tourney_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- JWT Configuration ---
	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "your-very-strong-access-secret")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "tourney")

	var err error
	cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 24*60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}

	// --- Stripe Configuration ---
	cfg.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	cfg.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")
	cfg.Stripe.Currency = strings.ToLower(getEnv("STRIPE_CURRENCY", "inr"))
	cfg.Stripe.SuccessURL = getEnv("STRIPE_SUCCESS_URL", cfg.App.FrontendURL+"/success")
	cfg.Stripe.CancelURL = getEnv("STRIPE_CANCEL_URL", cfg.App.FrontendURL+"/cancel")
	cfg.Stripe.TimeoutSeconds, err = getEnvAsInt("STRIPE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid STRIPE_TIMEOUT_SECONDS: %w", err)
	}

	// --- Webhook delivery log ---
	cfg.Webhook.RetentionDays, err = getEnvAsInt("WEBHOOK_RETENTION_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_RETENTION_DAYS: %w", err)
	}
	cfg.Webhook.PruneIntervalMinutes, err = getEnvAsInt("WEBHOOK_PRUNE_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_PRUNE_INTERVAL_MINUTES: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWT.AccessTokenSecret == "your-very-strong-access-secret" {
		log.Println("WARNING: Using default JWT secret. Please set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Println("WARNING: STRIPE_WEBHOOK_SECRET is empty, webhook deliveries will be rejected until it is set.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// Validate checks the loaded values for settings the service cannot run without.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case "development", "test", "production":
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of development, test, production, got %q", c.App.Env))
	}
	if c.App.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.App.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL is required"))
	}
	if c.JWT.AccessTokenSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_SECRET is required"))
	}
	if c.JWT.AccessTokenExpiryMinutes <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_EXPIRY_MINUTES must be positive"))
	}
	if c.App.Env == "production" && c.Stripe.WebhookSecret == "" {
		errs = append(errs, errors.New("STRIPE_WEBHOOK_SECRET is required in production"))
	}
	if c.Stripe.Currency == "" {
		errs = append(errs, errors.New("STRIPE_CURRENCY is required"))
	}
	if c.Stripe.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("STRIPE_TIMEOUT_SECONDS must be positive"))
	}
	if c.Webhook.RetentionDays <= 0 {
		errs = append(errs, errors.New("WEBHOOK_RETENTION_DAYS must be positive"))
	}
	if c.Webhook.PruneIntervalMinutes <= 0 {
		errs = append(errs, errors.New("WEBHOOK_PRUNE_INTERVAL_MINUTES must be positive"))
	}

	return errors.Join(errs...)
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	// Unique violations surface as gorm.ErrDuplicatedKey.
	gormConfig := &gorm.Config{TranslateError: true}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of the application.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectDB(*appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
