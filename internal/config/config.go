// Package config builds the immutable configuration value object the sync
// pipeline components receive at construction time. Values come from the
// environment (optionally via a .env file loaded in main) and are read
// exactly once at process start.
package config

import "errors"

// Config is the top-level configuration for indlovu.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	// App Store Connect API credentials.
	IssuerID       string `mapstructure:"issuer_id"`
	KeyID          string `mapstructure:"key_id"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
	AppID          string `mapstructure:"app_id"`

	// RequestID is the analytics report request all report IDs compose with.
	RequestID string `mapstructure:"analytics_request_id"`

	// AppName labels the run summary.
	AppName string `mapstructure:"app_name"`

	// APIBaseURL is the analytics API endpoint.
	APIBaseURL string `mapstructure:"api_base_url"`

	// ReportsDir is the parent of per-run dated output directories.
	ReportsDir string `mapstructure:"reports_dir"`

	// StoreDBPath locates the tabular store database. Empty disables the
	// publish stage.
	StoreDBPath string `mapstructure:"store_db_path"`

	// WarehouseDSN connects the secondary analytics warehouse. Empty
	// disables the firebase stage.
	WarehouseDSN string `mapstructure:"warehouse_dsn"`

	// WarehouseDays is the default lookback window for warehouse reports.
	WarehouseDays int `mapstructure:"warehouse_days"`

	// LogLevel sets the slog level: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Configuration preconditions. All are fatal before any network call.
var (
	// ErrMissingRequestID indicates ANALYTICS_REQUEST_ID is not set.
	ErrMissingRequestID = errors.New("ANALYTICS_REQUEST_ID is not set; add it to your .env file")

	// ErrMissingAppID indicates APP_ID is not set.
	ErrMissingAppID = errors.New("APP_ID is not set; add it to your .env file")

	// ErrMissingIssuerID indicates ISSUER_ID is not set.
	ErrMissingIssuerID = errors.New("ISSUER_ID is not set; add it to your .env file")

	// ErrMissingKeyID indicates KEY_ID is not set.
	ErrMissingKeyID = errors.New("KEY_ID is not set; add it to your .env file")

	// ErrMissingPrivateKeyPath indicates PRIVATE_KEY_PATH is not set.
	ErrMissingPrivateKeyPath = errors.New("PRIVATE_KEY_PATH is not set; add it to your .env file")
)

// ValidateCredentials checks the fields token issuance and the resource
// client need. Called before the first network call.
func (c *Config) ValidateCredentials() error {
	if c.IssuerID == "" {
		return ErrMissingIssuerID
	}

	if c.KeyID == "" {
		return ErrMissingKeyID
	}

	if c.PrivateKeyPath == "" {
		return ErrMissingPrivateKeyPath
	}

	if c.AppID == "" {
		return ErrMissingAppID
	}

	return nil
}

// ValidateSync checks the fields a full sync run needs on top of
// credentials.
func (c *Config) ValidateSync() error {
	if err := c.ValidateCredentials(); err != nil {
		return err
	}

	if c.RequestID == "" {
		return ErrMissingRequestID
	}

	return nil
}
