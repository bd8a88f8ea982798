package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/shadergraph/pkg/cache"
	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/export"
)

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{0, "node", "0 nodes"},
		{1, "node", "1 node"},
		{3, "link", "3 links"},
		{2, "entry", "2 entries"},
		{1, "entry", "1 entry"},
	}
	for _, tt := range tests {
		if got := count(tt.n, tt.noun); got != tt.want {
			t.Errorf("count(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}

func TestPrintBatch(t *testing.T) {
	b := &export.Batch{
		Results: []*export.Result{{
			Document: &doc.MaterialGraph{
				MaterialName: "Wood",
				Nodes:        make([]doc.Node, 5),
				Links:        make([]doc.Link, 4),
			},
			Path: "/tmp/materials/Wood.json",
		}},
		Failed: []export.Failure{{Material: "Broken", Err: fmt.Errorf("disk full")}},
	}

	var buf bytes.Buffer
	printBatch(&buf, b)
	out := buf.String()

	for _, want := range []string{"Material", "Wood", "/tmp/materials/Wood.json", "Broken", "disk full"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch table misses %q:\n%s", want, out)
		}
	}
}

func TestCacheTable(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	entries := []cache.Entry{
		{Key: "catalog:0123456789abcdef0123", Kind: "catalog", StoredAt: now.Add(-time.Hour), ExpiresAt: now.Add(23 * time.Hour), Size: 2048},
		{Key: "catalog:fedcba", Kind: "catalog", StoredAt: now, Size: 12},
	}
	out := cacheTable(entries, now).Render()

	for _, want := range []string{"Kind", "0123456789ab", "2.0 KiB", "in 23h0m0s", "fedcba", "12 B", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("cache table misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abc") {
		t.Error("key hash should be shortened to 12 characters")
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := byteSize(tt.n); got != tt.want {
			t.Errorf("byteSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
