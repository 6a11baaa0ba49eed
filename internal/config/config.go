// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads pure-import settings from a YAML file and
// PURE_IMPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/pure-import/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. PURE_IMPORT_PURE_BASE_URL.
const EnvPrefix = "PURE_IMPORT"

// keys lists every setting so AutomaticEnv can see nested keys during Unmarshal.
var keys = []string{
	"pure.base_url", "pure.api_key", "pure.timeout", "pure.user_agent", "pure.max_retries",
	"directory.driver", "directory.dsn",
	"import.visibility_key", "import.workflow_step", "import.default_language_uri", "import.payload_dir",
	"openalex.email", "openalex.timeout", "openalex.user_agent", "openalex.delay", "openalex.peer_review",
	"log.level", "log.format", "log.output", "log.dir",
}

// Load reads configuration. When path is empty it looks for pure-import.yaml
// in the working directory and in ~/.config/pure-import; a missing file is
// not an error. Environment variables override file values.
func Load(path string) (*types.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pure-import")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pure-import"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Pure.BaseURL = ensureTrailingSlash(cfg.Pure.BaseURL)
	return &cfg, nil
}

// Validate checks the settings an import run cannot do without.
func Validate(cfg *types.Config) error {
	var errs []error
	if cfg.Pure.BaseURL == "" {
		errs = append(errs, errors.New("pure.base_url is required"))
	}
	if cfg.Pure.APIKey == "" {
		errs = append(errs, errors.New("pure.api_key is required (config, PURE_IMPORT_PURE_API_KEY, .secrets/pure-api-key or .env)"))
	}
	switch cfg.Directory.Driver {
	case "sqlite3", "pgx":
	default:
		errs = append(errs, fmt.Errorf("directory.driver %q is not one of sqlite3, pgx", cfg.Directory.Driver))
	}
	if cfg.Directory.DSN == "" {
		errs = append(errs, errors.New("directory.dsn is required"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pure.base_url", "")
	v.SetDefault("pure.timeout", "60s")
	v.SetDefault("pure.user_agent", "pure-import/0.1")
	v.SetDefault("pure.max_retries", 5)

	v.SetDefault("directory.driver", "sqlite3")
	v.SetDefault("directory.dsn", "data/persons.db")

	v.SetDefault("import.visibility_key", "FREE")
	v.SetDefault("import.workflow_step", "forApproval")
	v.SetDefault("import.default_language_uri", "/dk/atira/pure/core/languages/en_GB")
	v.SetDefault("import.payload_dir", "")

	v.SetDefault("openalex.timeout", "30s")
	v.SetDefault("openalex.user_agent", "pure-import/0.1")
	v.SetDefault("openalex.delay", "1s")
	v.SetDefault("openalex.peer_review", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.dir", "logs")
}

func ensureTrailingSlash(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
