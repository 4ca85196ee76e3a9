package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Defaults applied when the environment does not set a value.
const (
	defaultAppName       = "App"
	defaultAPIBaseURL    = "https://api.appstoreconnect.apple.com/v1"
	defaultReportsDir    = "reports"
	defaultWarehouseDays = 30
	defaultLogLevel      = "info"
)

// envKeys are the environment variables bound explicitly so viper sees them
// without a prefix: the tool keeps the variable names its .env files have
// always used (ANALYTICS_REQUEST_ID, APP_ID, ...).
var envKeys = []string{
	"issuer_id",
	"key_id",
	"private_key_path",
	"app_id",
	"analytics_request_id",
	"app_name",
	"api_base_url",
	"reports_dir",
	"store_db_path",
	"warehouse_dsn",
	"warehouse_days",
	"log_level",
}

// Load builds a Config from the environment. Callers that need a .env file
// load it with godotenv before calling Load.
func Load() (*Config, error) {
	viperCfg := viper.New()

	viperCfg.SetDefault("app_name", defaultAppName)
	viperCfg.SetDefault("api_base_url", defaultAPIBaseURL)
	viperCfg.SetDefault("reports_dir", defaultReportsDir)
	viperCfg.SetDefault("warehouse_days", defaultWarehouseDays)
	viperCfg.SetDefault("log_level", defaultLogLevel)

	for _, key := range envKeys {
		if err := viperCfg.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config

	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
