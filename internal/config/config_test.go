package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		IssuerID:       "issuer-uuid",
		KeyID:          "ABC123",
		PrivateKeyPath: "keys/AuthKey_ABC123.p8",
		AppID:          "1234567890",
		RequestID:      "req-uuid",
	}
}

func TestValidateSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"complete config", func(*Config) {}, nil},
		{"missing request id", func(c *Config) { c.RequestID = "" }, ErrMissingRequestID},
		{"missing app id", func(c *Config) { c.AppID = "" }, ErrMissingAppID},
		{"missing issuer id", func(c *Config) { c.IssuerID = "" }, ErrMissingIssuerID},
		{"missing key id", func(c *Config) { c.KeyID = "" }, ErrMissingKeyID},
		{"missing private key path", func(c *Config) { c.PrivateKeyPath = "" }, ErrMissingPrivateKeyPath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateSync()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	require.Equal(t, defaultReportsDir, cfg.ReportsDir)
	require.Equal(t, defaultWarehouseDays, cfg.WarehouseDays)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ANALYTICS_REQUEST_ID", "req-from-env")
	t.Setenv("APP_NAME", "Indlovu")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "req-from-env", cfg.RequestID)
	require.Equal(t, "Indlovu", cfg.AppName)
}
