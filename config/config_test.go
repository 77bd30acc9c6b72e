package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
database:
  host: localhost
  name: flights
`))
	require.NoError(t, err)

	assert.Equal(t, "flightdb", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "flightdb_sid", cfg.Session.CookieName)
	assert.Equal(t, 30, cfg.Cache.ListTTLSeconds)
	assert.Equal(t, "flightdb.records", cfg.Kafka.RecordsTopic)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("FLIGHTDB_TEST_DB_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(`
database:
  host: db
  name: flights
  password: ${FLIGHTDB_TEST_DB_PASSWORD}
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestParse_Validation(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "missing host", yaml: "database:\n  name: flights\n"},
		{name: "missing name", yaml: "database:\n  host: db\n"},
		{name: "negative ttl", yaml: "database:\n  host: db\n  name: f\nsession:\n  ttl_hours: -1\n"},
		{name: "negative cache ttl", yaml: "database:\n  host: db\n  name: f\ncache:\n  list_ttl_seconds: -5\n"},
		{name: "negative stats interval", yaml: "database:\n  host: db\n  name: f\nworker:\n  stats_interval_seconds: -1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  host: db\n  name: flights\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
