package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Checklist ChecklistConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
	Schedule  ScheduleConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// StorageConfig picks the persistence backend: "mongodb" or "memory".
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB. Transactions is a request: it
// takes effect only when the server is a replica set member or mongos.
type MongoDBConfig struct {
	URI          string
	DBName       string
	Transactions bool
}

// RedisConfig enables the shared stock lock when Address is set.
type RedisConfig struct {
	Address string
}

// AuthConfig holds token signing and bootstrap credentials.
type AuthConfig struct {
	Secret               string
	TokenTTLHours        int
	DefaultAdminPassword string
}

// ChecklistConfig holds the equipment reference list every vehicle is checked against.
type ChecklistConfig struct {
	Tools []string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// The export is disabled when CredentialsPath or SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	InventoryRange  string
	CountsRange     string
}

// Enabled reports whether Sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// Alerts and the webhook are disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken    string
	PhoneNumberID  string
	VerifyToken    string
	BaseURL        string
	APIVersion     string
	AlertRecipient string
}

// Enabled reports whether WhatsApp messaging is configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// ScheduleConfig holds cron expressions for background jobs. An empty
// expression disables the job.
type ScheduleConfig struct {
	LowStockCron   string
	SheetsSyncCron string
	Timezone       string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttl, err := strconv.Atoi(getenvWithDefault("AUTH_TOKEN_TTL_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getenvWithDefault("STORAGE_DRIVER", "mongodb")),
		},
		MongoDB: MongoDBConfig{
			URI:          getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:       getenvWithDefault("MONGODB_DB_NAME", "fleetstock"),
			Transactions: getenvBool("MONGODB_TRANSACTIONS", true),
		},
		Redis: RedisConfig{
			Address: os.Getenv("REDIS_ADDRESS"),
		},
		Auth: AuthConfig{
			Secret:               os.Getenv("AUTH_SECRET"),
			TokenTTLHours:        ttl,
			DefaultAdminPassword: getenvWithDefault("DEFAULT_ADMIN_PASSWORD", "admin"),
		},
		Checklist: ChecklistConfig{
			Tools: splitList(os.Getenv("CHECKLIST_TOOLS")),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			InventoryRange:  getenvWithDefault("SHEETS_INVENTORY_RANGE", "Inventory!A1"),
			CountsRange:     getenvWithDefault("SHEETS_COUNTS_RANGE", "Counts!A:H"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:    os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:  os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:    os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:        getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:     getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			AlertRecipient: os.Getenv("WHATSAPP_ALERT_RECIPIENT"),
		},
		Schedule: ScheduleConfig{
			LowStockCron:   getenvWithDefault("LOW_STOCK_CRON", "0 7 * * *"),
			SheetsSyncCron: os.Getenv("SHEETS_SYNC_CRON"),
			Timezone:       getenvWithDefault("TIMEZONE", "Asia/Bangkok"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case "mongodb":
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}

	if c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET must be provided")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return errors.New("AUTH_TOKEN_TTL_HOURS must be positive")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be provided together")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Schedule.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
