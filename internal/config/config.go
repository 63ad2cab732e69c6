package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/vcscsvcscs/blobstore/pkg/blobstore"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig
	Logging LoggingConfig
}

// StorageConfig holds Azure Blob Storage configuration
type StorageConfig struct {
	AccountName   string
	ContainerName string
	TenantID      string
	ClientID      string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Options converts the storage section into library options.
func (s StorageConfig) Options() blobstore.Options {
	return blobstore.Options{
		AccountName:   s.AccountName,
		ContainerName: s.ContainerName,
		TenantID:      s.TenantID,
		ClientID:      s.ClientID,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Azure Storage
	v.BindEnv("storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("storage.containername", "AZURE_STORAGE_CONTAINER")

	// Identity; both are optional and select the credential mode
	v.BindEnv("storage.tenantid", "AZURE_TENANT_ID")
	v.BindEnv("storage.clientid", "AZURE_CLIENT_ID")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.AccountName == "" {
		return fmt.Errorf("storage.accountname is required")
	}

	if c.Storage.ContainerName == "" {
		return fmt.Errorf("storage.containername is required")
	}

	return nil
}
