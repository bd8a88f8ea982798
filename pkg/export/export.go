// Package export walks material node graphs into [doc.MaterialGraph]
// documents.
//
// # Entry Points
//
//   - [Exporter.Material]: one material by name, optionally written to a file
//   - [Exporter.All]: every node-using material in the host, one file each
//   - [Exporter.Selected]: node-using materials on the selected objects
//
// # Failures
//
// Only a missing material (MATERIAL_NOT_FOUND) or a material without node
// shading (NOT_APPLICABLE) stops an export; both return a nil document and a
// coded error, which [errors.Aborts] recognizes. Everything else degrades the
// document and is reported in [Result.Issues].
package export

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
	"github.com/matzehuels/shadergraph/pkg/nodedoc"
	"github.com/matzehuels/shadergraph/pkg/observability"
)

// Exporter serializes materials from a host.
//
// The Exporter holds no state besides its logger; one value may serve any
// number of exports.
type Exporter struct {
	Logger *log.Logger
}

// New creates an exporter. A nil logger discards all output.
func New(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Exporter{Logger: logger}
}

// Result is the outcome of one material export.
type Result struct {
	Document *doc.MaterialGraph
	Issues   []doc.Issue

	// Path is the file the document was written to, if any.
	Path string
}

// Material exports the named material. When path is non-empty the document is
// also written there as indented JSON.
//
// The document is returned even if writing it fails; the error then carries
// ErrCodeIO.
func (e *Exporter) Material(ctx context.Context, h host.Host, name, path string) (*Result, error) {
	start := time.Now()
	res, err := e.material(h, name, path)

	var nodes, links, issues int
	if res != nil {
		nodes, links, issues = len(res.Document.Nodes), len(res.Document.Links), len(res.Issues)
	}
	observability.Export().OnMaterialExport(ctx, name, nodes, links, issues, time.Since(start), err)
	return res, err
}

func (e *Exporter) material(h host.Host, name, path string) (*Result, error) {
	m, ok := h.Material(name)
	if !ok {
		e.Logger.Error("Material not found", "material", name)
		return nil, errors.New(errors.ErrCodeMaterialNotFound, "material %q not found", name)
	}
	tree := m.NodeTree()
	if !m.UseNodes() || tree == nil {
		e.Logger.Error("Material does not use nodes", "material", name)
		return nil, errors.New(errors.ErrCodeNotApplicable, "material %q does not use nodes", name)
	}

	g, issues := Graph(m, tree)
	for _, is := range issues {
		e.Logger.Debug("skipped", "material", name, "issue", is)
	}
	res := &Result{Document: g, Issues: issues}

	if path == "" {
		return res, nil
	}
	if err := docio.WriteMaterialFile(g, path); err != nil {
		return res, err
	}
	res.Path = path
	e.Logger.Info("Exported material to " + path)
	return res, nil
}

// Graph builds the document for a node-using material. Nodes and links keep
// the host's iteration order.
func Graph(m host.Material, tree host.NodeTree) (*doc.MaterialGraph, []doc.Issue) {
	var issues []doc.Issue

	nodes := tree.Nodes()
	g := &doc.MaterialGraph{
		MaterialName:       m.Name(),
		BlendMethod:        m.BlendMethod(),
		UseBackfaceCulling: m.UseBackfaceCulling(),
		Nodes:              make([]doc.Node, 0, len(nodes)),
		Links:              []doc.Link{},
	}
	for _, n := range nodes {
		d, nodeIssues := nodedoc.Serialize(n)
		g.Nodes = append(g.Nodes, d)
		issues = append(issues, nodeIssues...)
	}
	for _, l := range tree.Links() {
		g.Links = append(g.Links, Link(l))
	}
	return g, issues
}

// Link converts one graph edge, keeping both display names and identifiers
// of its endpoint sockets.
func Link(l host.Link) doc.Link {
	from, to := l.FromSocket(), l.ToSocket()
	return doc.Link{
		FromNode:             l.FromNode().Name(),
		FromSocket:           from.Name(),
		FromSocketIdentifier: from.Identifier(),
		ToNode:               l.ToNode().Name(),
		ToSocket:             to.Name(),
		ToSocketIdentifier:   to.Identifier(),
		IsValid:              l.IsValid(),
		IsHidden:             l.IsHidden(),
	}
}
