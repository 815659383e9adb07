// Package sheets implements the spreadsheet backend: append-row and
// range-read operations against a Google Sheets spreadsheet,
// authenticated with a service account.
package sheets

// Default range settings. The read range covers the 14 persisted
// columns; row 1 of the sheet is the header row, which consumers of raw
// row data skip themselves.
const (
	DefaultSheetName = "Sheet1"
	DefaultReadRange = "A:N"
)

// Config configures the spreadsheet backend.
//
// Credentials are service-account credentials, typically supplied via
// environment (JOBTRACK_SPREADSHEET_ID, JOBTRACK_CLIENT_EMAIL,
// JOBTRACK_PRIVATE_KEY). PrivateKey must be PEM; literal \n escapes are
// normalized by the config loader before reaching this package.
type Config struct {
	// SpreadsheetID identifies the spreadsheet (required).
	SpreadsheetID string `mapstructure:"spreadsheet_id"`

	// ClientEmail is the service-account email (required).
	ClientEmail string `mapstructure:"client_email"`

	// PrivateKey is the service-account PEM private key (required).
	PrivateKey string `mapstructure:"private_key"`

	// SheetName is the tab rows are appended to.
	SheetName string `mapstructure:"sheet_name"`

	// ReadRange is the column range read by Read, without the sheet
	// prefix (e.g. "A:N").
	ReadRange string `mapstructure:"read_range"`
}

// Validate checks that required configuration is present and applies
// range defaults.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return &ConfigError{Field: "SpreadsheetID", Message: "spreadsheet id is required"}
	}
	if c.ClientEmail == "" {
		return &ConfigError{Field: "ClientEmail", Message: "service account client email is required"}
	}
	if c.PrivateKey == "" {
		return &ConfigError{Field: "PrivateKey", Message: "service account private key is required"}
	}
	if c.SheetName == "" {
		c.SheetName = DefaultSheetName
	}
	if c.ReadRange == "" {
		c.ReadRange = DefaultReadRange
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "sheets config: " + e.Field + ": " + e.Message
}
