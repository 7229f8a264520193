package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.S3Bucket)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("TOKEN_VALIDITY", "30m")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
}

func TestParseEnv_InvalidDurationKeepsDefault(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	raw := []byte(`{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://json/db",
		"secret_key": "k",
		"token_validity_duration": "1h",
		"s3_bucket": "images"
	}`)

	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal(raw, c))

	assert.Equal(t, ":7070", c.EndpointAddrHTTP)
	assert.Equal(t, time.Hour, c.TokenValidityDuration.Duration)
	assert.Equal(t, "images", c.S3Bucket)
}

func TestParseJson_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr_http": ":6060",
		"database_dsn": "postgres://file/db",
		"secret_key": "filekey",
		"token_validity_duration": "2h",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "b",
		"s3_region": "r",
		"s3_base_endpoint": "http://s3/"
	}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"estatedesk", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://file/db", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "http://s3/", cfg.S3BaseEndpoint)
}
