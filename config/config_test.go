package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_DRIVER", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("DEV_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Session.Driver)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, DefaultDevBaseURL, cfg.BaseURL())
}

func TestBaseURL_PerEnvironment(t *testing.T) {
	cfg := &Config{
		API: APIConfig{DevBaseURL: "http://dev.local/", ProdBaseURL: "https://prod.example"},
		App: AppConfig{Environment: "development"},
	}
	assert.Equal(t, "http://dev.local", cfg.BaseURL())

	cfg.App.Environment = "production"
	assert.Equal(t, "https://prod.example", cfg.BaseURL())

	cfg.API.BaseURL = "http://override:3000"
	assert.Equal(t, "http://override:3000", cfg.BaseURL())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			API:     APIConfig{BaseURL: "http://localhost:8000", Timeout: time.Second},
			Session: SessionConfig{Driver: "memory", Profile: "default"},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Session.Driver = "etcd"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Session.Driver = "postgres"
	assert.Error(t, cfg.Validate(), "postgres driver needs DB_DSN")

	cfg = valid()
	cfg.API.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	assert.Equal(t, 3, getEnvAsInt("X_INT", 3))

	t.Setenv("X_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("X_DUR", time.Second))

	t.Setenv("X_LIST", " a, ,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvAsList("X_LIST", nil))
}
