package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CatalogKey returns the key a catalog is stored under. The fingerprint
// covers the type definitions; the names are sorted first, so discovery order
// does not matter.
func CatalogKey(version, fingerprint string, typeNames []string) string {
	names := slices.Clone(typeNames)
	slices.Sort(names)
	return hashKey("catalog", version, fingerprint, names)
}
