package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "GIN_MODE", "DB_DRIVER", "DB_DSN", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL",
	"SEED_FILE", "CLEANING_ETA_MINUTES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10, cfg.CleaningEtaMinutes)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nCLEANING_ETA_MINUTES=15\nDB_DRIVER=MySQL\nDB_DSN=user:pw@tcp(db:3306)/floor\n"), 0o600))
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port, "environment wins over the file")
	assert.Equal(t, 15, cfg.CleaningEtaMinutes)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "user:pw@tcp(db:3306)/floor", cfg.DBDSN)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":            "postgres",
		"CLEANING_ETA_MINUTES": "0",
		"RATE_LIMIT_RPS":       "fast",
		"TOKEN_TTL":            "forever",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}

	t.Run("release without secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GIN_MODE", "release")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", DBDSN: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)

	_, err = InitDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
