// Package backup writes CSV snapshots of the job sheet to S3 or an
// S3-compatible object store.
package backup

// Config configures the backup destination.
//
// Authentication follows the AWS SDK v2 default chain (environment,
// shared config, instance role) unless explicit keys are provided. For
// S3-compatible stores (MinIO, Wasabi), set Endpoint and typically
// ForcePathStyle.
type Config struct {
	// Bucket is the destination bucket (required).
	Bucket string `mapstructure:"bucket"`

	// Region is the AWS region. Empty lets the SDK resolve it from the
	// environment or profile.
	Region string `mapstructure:"region"`

	// Endpoint is a custom endpoint URL for S3-compatible stores.
	Endpoint string `mapstructure:"endpoint"`

	// Prefix is prepended to snapshot object keys.
	Prefix string `mapstructure:"prefix"`

	// AccessKeyID/SecretAccessKey are explicit credentials. Both must
	// be set together; they take precedence over the default chain.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	// ForcePathStyle forces path-style URLs (bucket in path, not
	// subdomain). Required for most S3-compatible stores.
	ForcePathStyle bool `mapstructure:"force_path_style"`
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return &ConfigError{Field: "Bucket", Message: "bucket name is required"}
	}
	if (c.AccessKeyID != "") != (c.SecretAccessKey != "") {
		return &ConfigError{
			Field:   "AccessKeyID/SecretAccessKey",
			Message: "both access key ID and secret access key must be provided together",
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "backup config: " + e.Field + ": " + e.Message
}
