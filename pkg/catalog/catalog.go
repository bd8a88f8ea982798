// Package catalog builds the master catalog of shader node types.
//
// The catalog is produced by instantiating every registered shader node type
// once in a scratch material and serializing the fresh node. The scratch
// material is always removed again, whether the scan succeeds or not.
//
//	g := catalog.New(logger, cache.NewNullCache(), 0)
//	res, err := g.Generate(ctx, h, "/tmp/blender_shader_nodes_master.json")
//
// Entries are keyed by type name. A type that cannot be instantiated or
// serialized is skipped and reported in [Result.Issues].
package catalog

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shadergraph/pkg/cache"
	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
	"github.com/matzehuels/shadergraph/pkg/nodedoc"
	"github.com/matzehuels/shadergraph/pkg/observability"
)

// ScratchPrefix starts the name of the temporary material a scan runs in.
const ScratchPrefix = "_temp_master_export"

// Generator builds master catalogs.
type Generator struct {
	Logger *log.Logger
	Cache  cache.Cache
	TTL    time.Duration
}

// New creates a generator. A nil cache disables caching and a nil logger
// discards all output.
func New(logger *log.Logger, c cache.Cache, ttl time.Duration) *Generator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Generator{Logger: logger, Cache: c, TTL: ttl}
}

// Result is the outcome of a catalog generation.
type Result struct {
	Catalog *doc.Catalog
	Issues  []doc.Issue

	// Candidates is the number of node types discovered.
	Candidates int

	// Cached reports whether the catalog came from the cache.
	Cached bool

	// Path is the file the catalog was written to, if any.
	Path string
}

// Generate scans the host's shader node types. When path is non-empty the
// catalog is also written there as indented JSON.
func (g *Generator) Generate(ctx context.Context, h host.Host, path string) (*Result, error) {
	start := time.Now()
	version := Version(h.Version())
	candidates := Discover(h)
	g.Logger.Infof("Found %d shader node types", len(candidates))

	key, cacheable := catalogKey(h, version, candidates)
	var res *Result
	ok := false
	if cacheable {
		res, ok = g.cached(ctx, key)
	} else {
		g.Logger.Debug("host has no type fingerprint, not caching the catalog")
	}
	if !ok {
		var err error
		if res, err = g.scan(ctx, h, version, candidates); err != nil {
			return nil, err
		}
		if cacheable {
			g.store(ctx, key, res.Catalog)
		}
	}
	res.Candidates = len(candidates)
	g.Logger.Infof("Total nodes exported: %d", len(res.Catalog.ShaderNodes))
	observability.Export().OnCatalogComplete(ctx, len(candidates), len(res.Catalog.ShaderNodes), res.Cached, time.Since(start))

	if path == "" {
		return res, nil
	}
	if err := docio.WriteCatalogFile(res.Catalog, path); err != nil {
		return res, err
	}
	res.Path = path
	g.Logger.Info("Master node catalog exported to " + path)
	return res, nil
}

// scan instantiates each candidate in a scratch material. The scratch
// material is removed before scan returns.
func (g *Generator) scan(ctx context.Context, h host.Host, version string, candidates []string) (_ *Result, err error) {
	scratch, err := h.NewMaterial(ScratchName())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create scratch material")
	}
	defer func() {
		if rmErr := h.RemoveMaterial(scratch); rmErr != nil {
			g.Logger.Error("Could not remove scratch material", "material", scratch.Name(), "err", rmErr)
			if err == nil {
				err = errors.Wrap(errors.ErrCodeInternal, rmErr, "remove scratch material %s", scratch.Name())
			}
		}
	}()

	scratch.SetUseNodes(true)
	tree := scratch.NodeTree()
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInternal, "scratch material %s has no node tree", scratch.Name())
	}

	res := &Result{Catalog: &doc.Catalog{
		HostVersion: version,
		ShaderNodes: make(map[string]doc.CatalogEntry, len(candidates)),
	}}
	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, issues, err := instantiate(tree, name)
		observability.Export().OnCatalogType(ctx, name, err)
		if err != nil {
			g.Logger.Warnf("Could not process %s: %v", name, errors.UserMessage(err))
			res.Issues = append(res.Issues, doc.Issue{Node: name, Err: err})
			continue
		}
		for _, is := range issues {
			g.Logger.Warn("skipped", "type", name, "issue", is)
		}
		res.Issues = append(res.Issues, issues...)
		res.Catalog.ShaderNodes[name] = entry
	}
	return res, nil
}

// instantiate creates one node of the named type on a cleared graph and
// documents it.
func instantiate(tree host.NodeTree, name string) (entry doc.CatalogEntry, issues []doc.Issue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New(errors.ErrCodeNodeTypeInstantiation, "%s: %v", name, rec)
		}
	}()

	tree.ClearNodes()
	n, err := tree.NewNode(name)
	if err != nil {
		return doc.CatalogEntry{}, nil, errors.Wrap(errors.ErrCodeNodeTypeInstantiation, err, "instantiate %s", name)
	}
	entry, issues = nodedoc.Entry(n)
	for i := range issues {
		issues[i].Node = name
	}
	return entry, issues, nil
}

// catalogKey derives the cache key. Only hosts that fingerprint their type
// definitions are cacheable; names alone cannot detect a changed definition.
func catalogKey(h host.Host, version string, candidates []string) (string, bool) {
	fp, ok := h.(host.Fingerprinter)
	if !ok {
		return "", false
	}
	return cache.CatalogKey(version, fp.Fingerprint(), candidates), true
}

func (g *Generator) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := g.Cache.Get(ctx, key)
	if err != nil {
		g.Logger.Debug("catalog cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	c, err := docio.UnmarshalCatalog(data)
	if err != nil {
		g.Logger.Debug("discarding unreadable cached catalog", "err", err)
		return nil, false
	}
	g.Logger.Debug("catalog cache hit", "key", key)
	return &Result{Catalog: c, Cached: true}, true
}

func (g *Generator) store(ctx context.Context, key string, c *doc.Catalog) {
	data, err := docio.MarshalCatalog(c)
	if err == nil {
		err = g.Cache.Set(ctx, key, data, g.TTL)
	}
	if err != nil {
		g.Logger.Debug("catalog cache write failed", "err", err)
	}
}

// Discover returns the names of the instantiable shader node types, sorted.
// A candidate derives from the node base type, carries the shader node
// prefix, and is currently registered.
func Discover(h host.Host) []string {
	var out []string
	for _, t := range h.Types() {
		if t.IsNode && t.Registered && strings.HasPrefix(t.Name, host.ShaderNodePrefix) {
			out = append(out, t.Name)
		}
	}
	slices.Sort(out)
	return out
}

// Version joins a version tuple with dots: [4 2 0] becomes "4.2.0".
func Version(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// ScratchName returns a fresh name for the scratch material.
func ScratchName() string {
	return fmt.Sprintf("%s.%s", ScratchPrefix, uuid.NewString()[:8])
}
