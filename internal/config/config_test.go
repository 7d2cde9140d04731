package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CREDENTIALS_PATH", "/etc/creds.json")
	t.Setenv("LEDGER_SPREADSHEET_ID", "sheet-id")
	t.Setenv("DRIVE_FOLDER_ID", "folder-id")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/etc/creds.json", cfg.Drive.CredentialsPath, "drive credentials default to the sheets credentials")
	assert.Equal(t, "http://localhost:3000", cfg.Renderer.BaseURL)
	assert.Equal(t, "stockledger", cfg.MongoDB.DBName)
	assert.Equal(t, "30 0 * * *", cfg.Reporting.CronSchedule)
}

func TestLoadFailsWithoutSpreadsheet(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEDGER_SPREADSHEET_ID", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGER_SPREADSHEET_ID")
}

func TestValidateNilConfig(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
