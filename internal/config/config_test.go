package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("UPLOAD_MAX_BYTES", "1024")
	os.Setenv("DB_AUTO_MIGRATE", "true")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("UPLOAD_MAX_BYTES")
		os.Unsetenv("DB_AUTO_MIGRATE")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadFallbacks(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "PORT", "UPLOAD_MAX_BYTES"} {
		orig := os.Getenv(key)
		os.Unsetenv(key)
		defer os.Setenv(key, orig)
	}

	cfg := Load()

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "pdf_archive", cfg.Database.Name)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Empty(t, cfg.Archive.Endpoint)
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		cfg := Load()
		return cfg
	}

	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := valid()
		cfg.Port = "not-a-port"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad db port", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Port = "x"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive upload cap", func(t *testing.T) {
		cfg := valid()
		cfg.Upload.MaxBytes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("archive endpoint without credentials", func(t *testing.T) {
		cfg := valid()
		cfg.Archive.Endpoint = "minio:9000"
		assert.Error(t, cfg.Validate())

		cfg.Archive.AccessKey = "key"
		cfg.Archive.SecretKey = "secret"
		cfg.Archive.Bucket = "pdfs"
		assert.NoError(t, cfg.Validate())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "10485760")
	assert.Equal(t, int64(10485760), getEnvInt64(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))

	os.Unsetenv(key)
	assert.Equal(t, int64(7), getEnvInt64(key, 7))
}
