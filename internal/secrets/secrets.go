// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials for the Pure and OpenAlex APIs.
//
// Two sources are read. A directory of plain-text files where the filename is
// the key and the trimmed contents are the value, and a dotenv file whose
// PURE_API_KEY and OPENALEX_EMAIL entries map to the same keys.
//
// Known keys: pure-api-key, openalex-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pdiddy/pure-import/pkg/types"
)

const (
	KeyPureAPIKey    = "pure-api-key"
	KeyOpenAlexEmail = "openalex-email"
)

// envKeys maps dotenv variable names to secret keys.
var envKeys = map[string]string{
	"PURE_API_KEY":   KeyPureAPIKey,
	"OPENALEX_EMAIL": KeyOpenAlexEmail,
}

// Load reads all files in dir and then envFile. Values from dir win over
// envFile. A missing directory or env file is not an error.
func Load(dir, envFile string) (map[string]string, error) {
	secrets, err := loadDir(dir)
	if err != nil {
		return nil, err
	}
	if envFile == "" {
		return secrets, nil
	}

	env, err := godotenv.Read(envFile)
	if err != nil {
		if os.IsNotExist(err) {
			return secrets, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
	}
	for name, key := range envKeys {
		v := strings.TrimSpace(env[name])
		if v == "" {
			continue
		}
		if _, ok := secrets[key]; !ok {
			secrets[key] = v
		}
	}
	return secrets, nil
}

// Apply fills empty credential fields of cfg from secrets.
func Apply(cfg *types.Config, secrets map[string]string) {
	if cfg.Pure.APIKey == "" {
		cfg.Pure.APIKey = secrets[KeyPureAPIKey]
	}
	if cfg.OpenAlex.Email == "" {
		cfg.OpenAlex.Email = secrets[KeyOpenAlexEmail]
	}
}

func loadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}
	return secrets, nil
}
