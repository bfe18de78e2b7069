package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestFromEnv_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnv_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "staging")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "APP_ENV")
}

func TestFromEnv_RejectsBadTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "TIMEZONE")
}

func TestParseExpire(t *testing.T) {
	cases := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "", want: time.Hour},
		{raw: "7d", want: 7 * 24 * time.Hour},
		{raw: "36h", want: 36 * time.Hour},
		{raw: "15m", want: 15 * time.Minute},
		{raw: "0d", wantErr: true},
		{raw: "xd", wantErr: true},
		{raw: "-1h", wantErr: true},
		{raw: "soon", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseExpire(tc.raw, time.Hour)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "hr", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/hr?sslmode=disable&application_name=dayflow", d.DSN())
}
