// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pure-import/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// PureConfig holds settings for the Pure web API client.
type PureConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API root, e.g. "https://research-portal.example.org/ws/api/".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is sent in the api-key header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries bounds 429 retries on read-only calls (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// DirectoryConfig selects the database backing the internal person directory.
type DirectoryConfig struct {
	// Driver is "sqlite3" or "pgx".
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"`

	// DSN is the driver-specific data source; for sqlite3 a file path.
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
}

// ImportConfig holds the fixed values stamped onto every submitted research output.
type ImportConfig struct {
	// VisibilityKey is used when a record carries no visibility (e.g. "FREE").
	VisibilityKey string `json:"visibility_key" yaml:"visibility_key" mapstructure:"visibility_key"`

	// WorkflowStep is used when a record carries no workflow step (e.g. "forApproval").
	WorkflowStep string `json:"workflow_step" yaml:"workflow_step" mapstructure:"workflow_step"`

	// DefaultLanguageURI is used when a record carries no language.
	DefaultLanguageURI string `json:"default_language_uri" yaml:"default_language_uri" mapstructure:"default_language_uri"`

	// PayloadDir, when set, receives one JSON file per assembled payload.
	PayloadDir string `json:"payload_dir,omitempty" yaml:"payload_dir,omitempty" mapstructure:"payload_dir"`
}

// OpenAlexConfig holds settings for harvesting works from OpenAlex.
type OpenAlexConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Email is sent as mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// Delay is the pause between consecutive work fetches (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`

	// PeerReview is the default peer-review flag for harvested records.
	PeerReview bool `json:"peer_review" yaml:"peer_review" mapstructure:"peer_review"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stderr, stdout, discard, or file.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Dir holds daily log files when Output is file.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups all settings for a pure-import run.
type Config struct {
	Pure      PureConfig      `json:"pure" yaml:"pure" mapstructure:"pure"`
	Directory DirectoryConfig `json:"directory" yaml:"directory" mapstructure:"directory"`
	Import    ImportConfig    `json:"import" yaml:"import" mapstructure:"import"`
	OpenAlex  OpenAlexConfig  `json:"openalex" yaml:"openalex" mapstructure:"openalex"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
