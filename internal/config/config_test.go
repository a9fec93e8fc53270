package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("PORT", "5005")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "6h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("CORS_ORIGINS", "*")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "5005", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.EmailEnabled())
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_CONN", "postgres://u:p@db/x")
	t.Setenv("TOKEN_SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CORS_ORIGINS", "http://a.test/, http://b.test")
	t.Setenv("SMTP_HOST", "smtp.test")
	t.Setenv("SENDER_EMAIL", "noreply@cohort.test")
	t.Setenv("RATE_LIMIT_REDIS_DB", "3")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db/x", cfg.DBConn)
	assert.Equal(t, "s3cr3t", cfg.TokenSecret)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.RateLimitRedisDB)
	assert.True(t, cfg.EmailEnabled())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown driver", key: "STORE_DRIVER", value: "sqlite"},
		{name: "empty secret", key: "TOKEN_SECRET", value: ""},
		{name: "bad ttl", key: "TOKEN_TTL", value: "soon"},
		{name: "negative ttl", key: "TOKEN_TTL", value: "-1h"},
		{name: "bad cost", key: "BCRYPT_COST", value: "ten"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", "memory")
			t.Setenv("TOKEN_SECRET", "secret")
			t.Setenv("TOKEN_TTL", "6h")
			t.Setenv("BCRYPT_COST", "10")
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
