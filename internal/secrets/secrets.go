// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: search-api-key, analysis-api-key.
//
// The engine core never sees raw values; it consumes an Enablement view
// that answers only "is this key configured".
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Enablement is the boolean-only view of loaded secrets handed to the
// engine: which keys are configured, never their values.
type Enablement struct {
	configured map[string]bool
}

// NewEnablement builds the enablement view from loaded secrets.
func NewEnablement(secrets map[string]string) Enablement {
	configured := make(map[string]bool, len(secrets))
	for k, v := range secrets {
		if v != "" {
			configured[k] = true
		}
	}
	return Enablement{configured: configured}
}

// Configured reports whether the named key holds a value.
func (e Enablement) Configured(key string) bool {
	return e.configured[key]
}

// Keys returns the configured key names, sorted.
func (e Enablement) Keys() []string {
	keys := make([]string, 0, len(e.configured))
	for k := range e.configured {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
