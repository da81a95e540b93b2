package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	Bank    BankConfig
	JWT     JWTConfig
	Session SessionConfig
	Backup  BackupConfig
}

// BankConfig holds ledger and persistence configuration
type BankConfig struct {
	DataDir            string
	MinimumBalance     float64
	LoanMinimumBalance float64
	LoanInterestRate   float64
	AccountNumberFloor int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// SessionConfig holds the idle-session policy
type SessionConfig struct {
	IdleMinutes int
}

// BackupConfig holds the backup scheduler configuration
type BackupConfig struct {
	Schedule string // cron expression
	Enabled  bool
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Bank:    loadBankConfig(),
		JWT:     loadJWTConfig(appMode),
		Session: loadSessionConfig(),
		Backup:  loadBackupConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadBankConfig loads ledger configuration
func loadBankConfig() BankConfig {
	minBalance, _ := strconv.ParseFloat(getEnv("MINIMUM_BALANCE", "50.0"), 64)
	loanMin, _ := strconv.ParseFloat(getEnv("LOAN_MINIMUM_BALANCE", "5000.0"), 64)
	loanRate, _ := strconv.ParseFloat(getEnv("LOAN_INTEREST_RATE", "0.05"), 64)

	return BankConfig{
		DataDir:            getEnv("DATA_DIR", "data"),
		MinimumBalance:     minBalance,
		LoanMinimumBalance: loanMin,
		LoanInterestRate:   loanRate,
		AccountNumberFloor: 1000,
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadSessionConfig loads idle-session config
func loadSessionConfig() SessionConfig {
	idle, _ := strconv.Atoi(getEnv("SESSION_IDLE_MINUTES", "10"))
	return SessionConfig{IdleMinutes: idle}
}

// loadBackupConfig loads backup scheduler config
func loadBackupConfig() BackupConfig {
	enabled, _ := strconv.ParseBool(getEnv("BACKUP_ENABLED", "true"))
	return BackupConfig{
		Schedule: getEnv("BACKUP_SCHEDULE", "30 2 * * *"),
		Enabled:  enabled,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://bank.khalfanoviski.com"
	}
	return origins
}
