// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed
// contents are the value.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets/"

// SemanticScholarAPIKey is the file holding the Semantic Scholar API key.
const SemanticScholarAPIKey = "semantic-scholar-api-key"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty set. Unreadable files are logged and
// skipped.
func Load(dir string, logger *slog.Logger) (Secrets, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Fallback returns configured when it is non-empty, else the secret stored
// under key, else "".
func (s Secrets) Fallback(key, configured string) string {
	if configured != "" {
		return configured
	}
	return s[key]
}

// Keys returns the loaded key names in sorted order. Values are never
// exposed so the result is safe to log.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
