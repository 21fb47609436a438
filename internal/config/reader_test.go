package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvReader_Read(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("JWT_SIGNING_KEY", "test-key")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USERNAME", "taskdeck")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DATABASE", "taskdeck")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "taskdeck", cfg.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestEnvReader_Read_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore, the unset makes the variable
	// genuinely absent rather than empty.
	for _, key := range []string{
		"ENV", "JWT_SIGNING_KEY", "POSTGRES_HOST",
		"POSTGRES_USERNAME", "POSTGRES_PASSWORD", "POSTGRES_DATABASE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	_, err := NewEnvReader().Read()
	assert.Error(t, err)
}
