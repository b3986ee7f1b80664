// Package assets resolves static asset names to cache-busted URLs.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
)

const (
	urlPrefix  = "/static/"
	hashLength = 10
)

// AssetResolver fingerprints files of a static filesystem so their URLs change with their content.
type AssetResolver struct {
	fsys   fs.FS
	mu     sync.RWMutex
	hashes map[string]string
	logger *slog.Logger
}

// NewAssetResolver creates a resolver over fsys, whose root is the static directory.
func NewAssetResolver(fsys fs.FS, logger *slog.Logger) *AssetResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetResolver{
		fsys:   fsys,
		hashes: make(map[string]string),
		logger: logger,
	}
}

// Resolve returns the URL of a logical asset name, e.g. "css/app.css" becomes
// "/static/css/app.css?v=1a2b3c4d5e". Missing files resolve to the plain path.
func (ar *AssetResolver) Resolve(logicalName string) string {
	name := strings.TrimPrefix(logicalName, "/")
	plain := urlPrefix + name
	if ar == nil || ar.fsys == nil {
		return plain
	}

	ar.mu.RLock()
	h, ok := ar.hashes[name]
	ar.mu.RUnlock()
	if ok {
		return withVersion(plain, h)
	}

	h, err := ar.fingerprint(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ar.logger.Warn("failed to fingerprint asset",
				slog.String("asset", name),
				slog.Any("error", err),
			)
		}
		return plain
	}

	ar.mu.Lock()
	ar.hashes[name] = h
	ar.mu.Unlock()
	return withVersion(plain, h)
}

// Reset drops cached fingerprints.
func (ar *AssetResolver) Reset() {
	if ar == nil {
		return
	}
	ar.mu.Lock()
	ar.hashes = make(map[string]string)
	ar.mu.Unlock()
}

func (ar *AssetResolver) fingerprint(name string) (string, error) {
	data, err := fs.ReadFile(ar.fsys, name)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:hashLength], nil
}

func withVersion(path, hash string) string {
	if hash == "" {
		return path
	}
	return path + "?v=" + hash
}

// ResolveAsset resolves a logical asset name. In dev mode fingerprints are
// recomputed on every call so edited files are picked up without a restart.
func ResolveAsset(resolver *AssetResolver, logicalName string, devMode bool) string {
	if resolver == nil {
		return urlPrefix + strings.TrimPrefix(logicalName, "/")
	}
	if devMode {
		resolver.Reset()
	}
	return resolver.Resolve(logicalName)
}
