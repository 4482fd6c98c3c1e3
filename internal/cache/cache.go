// Package cache keeps JSON snapshots of fetched course data under the cache directory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/where"
	"github.com/spf13/afero"
)

// TTL is how long an entry stays fresh.
const TTL = 24 * time.Hour

func dir() string {
	return filepath.Join(where.Cache(), "courses")
}

// Key derives a stable entry name from its parts. Case and surrounding space do not matter.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry into target. It reports false for missing, expired or corrupt entries.
func Read(key string, target any) bool {
	fs := filesystem.API()
	path := filepath.Join(dir(), key+".json")

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.WithFields(log.Fields{"path": path}).WithError(err).Warn("corrupt cache entry")
		return false
	}
	return true
}

// Write stores data under key. The entry is replaced atomically.
func Write(key string, data any) error {
	fs := filesystem.API()
	if err := fs.MkdirAll(dir(), os.ModePerm); err != nil {
		return err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	path := filepath.Join(dir(), key+".json")
	tmpPath := path + ".tmp"

	if err := fs.WriteFile(tmpPath, encoded, 0644); err != nil {
		return err
	}
	return fs.Rename(tmpPath, path)
}

// CollectGarbage removes expired entries.
func CollectGarbage() {
	_ = afero.Walk(filesystem.API(), dir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
}
