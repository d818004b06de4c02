// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads LLM provider credentials from a directory of
// plain-text files. Each file is one secret: the filename is its name and the
// trimmed contents are its value.
//
// Recognized names: gemini-api-key, openai-api-key, anthropic-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/research-genie/internal/logging"
)

// DefaultDir is the secrets directory, relative to the working directory.
const DefaultDir = ".secrets"

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty map. Empty files are skipped and unreadable files are
// logged and skipped.
func Load(dir string, log *logging.Logger) (map[string]string, error) {
	log = logging.OrNop(log)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no secrets directory", "dir", dir)
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping unreadable secret", "name", name, "error", err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}
	log.Debug("secrets loaded", "dir", dir, "count", len(out))
	return out, nil
}
