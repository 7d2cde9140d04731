package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Drive     DriveConfig
	Renderer  RendererConfig
	MongoDB   MongoDBConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SheetsConfig contains configuration required to interact with the Google
// Sheets workbook that owns the ledger, inventory, and user tabs.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// DriveConfig holds settings for the attachment upload folder.
type DriveConfig struct {
	CredentialsPath string
	FolderID        string
}

// RendererConfig points at the HTML-to-PDF conversion service.
type RendererConfig struct {
	BaseURL string
}

// MongoDBConfig holds settings for the report snapshot archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
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
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("LEDGER_SPREADSHEET_ID"),
		},
		Drive: DriveConfig{
			CredentialsPath: getenvWithDefault("DRIVE_CREDENTIALS_PATH", os.Getenv("GOOGLE_CREDENTIALS_PATH")),
			FolderID:        os.Getenv("DRIVE_FOLDER_ID"),
		},
		Renderer: RendererConfig{
			BaseURL: getenvWithDefault("RENDERER_BASE_URL", "http://localhost:3000"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockledger"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "30 0 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
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

	switch {
	case c.Sheets.CredentialsPath == "":
		return errors.New("GOOGLE_CREDENTIALS_PATH must be provided")
	case c.Sheets.SpreadsheetID == "":
		return errors.New("LEDGER_SPREADSHEET_ID must be provided")
	}

	if c.Drive.FolderID == "" {
		return errors.New("DRIVE_FOLDER_ID must be provided")
	}

	if c.Renderer.BaseURL == "" {
		return errors.New("RENDERER_BASE_URL must not be empty")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
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
