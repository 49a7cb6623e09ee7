package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.FlashTTL)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CATS_ADDR":      ":9090",
		"CATS_DB_DRIVER": "sqlite",
		"CATS_DB_DSN":    "file:cats.db",
		"CATS_FLASH_TTL": "30s",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "file:cats.db", cfg.DSN)
	assert.Equal(t, 30*time.Second, cfg.FlashTTL)
}

func TestLoadFrom_RejectsDriverWithoutDSN(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CATS_DB_DRIVER": "postgres"})
	require.Error(t, err)
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CATS_DB_DRIVER": "mongo", "CATS_DB_DSN": "x"})
	require.Error(t, err)
}
