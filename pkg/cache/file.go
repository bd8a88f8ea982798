package cache

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// FileCache keeps one JSON file per entry under dir, fanned out into
// subdirectories by the first two hex digits of the hashed key.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (and if needed creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// record is the on-disk form of an entry. Key is kept in clear so entries can
// be listed; the file name only carries its hash.
type record struct {
	Key       string    `json:"key"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Data      []byte    `json:"data"`
}

func (r record) expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// Entry describes a stored entry without its payload.
type Entry struct {
	Key       string
	Kind      string // key prefix, e.g. "catalog"
	StoredAt  time.Time
	ExpiresAt time.Time // zero when the entry never expires
	Size      int       // payload bytes
}

// Get implements Cache. Expired and unreadable entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	rec, ok, err := readRecord(path)
	if err != nil || !ok {
		return nil, false, err
	}
	if rec.Key != key || rec.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return rec.Data, true, nil
}

// Set implements Cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	rec := record{Key: key, StoredAt: now, Data: data}
	if ttl > 0 {
		rec.ExpiresAt = now.Add(ttl)
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Delete implements Cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close implements Cache.
func (c *FileCache) Close() error { return nil }

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Entries lists the live entries, oldest first. Expired entries are skipped.
func (c *FileCache) Entries() ([]Entry, error) {
	files, err := c.files()
	if err != nil {
		return nil, err
	}
	now := c.now()
	var out []Entry
	for _, path := range files {
		rec, ok, err := readRecord(path)
		if err != nil || !ok || rec.expired(now) {
			continue
		}
		kind, _, _ := strings.Cut(rec.Key, ":")
		out = append(out, Entry{
			Key:       rec.Key,
			Kind:      kind,
			StoredAt:  rec.StoredAt,
			ExpiresAt: rec.ExpiresAt,
			Size:      len(rec.Data),
		})
	}
	slices.SortFunc(out, func(a, b Entry) int { return a.StoredAt.Compare(b.StoredAt) })
	return out, nil
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	files, err := c.files()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *FileCache) files() ([]string, error) {
	return filepath.Glob(filepath.Join(c.dir, "*", "*.json"))
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

// readRecord reports ok=false for a missing file. A file that does not decode
// is removed and also reported as missing.
func readRecord(path string) (record, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return record{}, false, nil
	}
	if err != nil {
		return record{}, false, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(path)
		return record{}, false, nil
	}
	return rec, true, nil
}

var _ Cache = (*FileCache)(nil)
