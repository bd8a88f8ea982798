// Package pkg provides the core libraries for exporting shader node graphs.
//
// # Overview
//
// Shadergraph reads the node graphs of a host application's materials and
// writes them as self-describing JSON documents. It also builds a master
// catalog of every registered shader node type by instantiating each one in a
// throwaway material. The pkg directory is organized into four areas:
//
//  1. Host access - the [host] interfaces and their in-memory [host/memhost]
//     implementation, loaded from YAML snapshots by [host/scene]
//  2. Serialization - [value], [introspect], and [nodedoc] turn host values,
//     property descriptors, and nodes into document types from [doc]
//  3. Drivers - [export] (materials) and [catalog] (node types), with [docio]
//     writing the JSON files
//  4. Support - [errors], [cache], [observability], [metrics], [buildinfo],
//     and [render/nodelink] for diagrams
//
// # Architecture
//
// The typical data flow:
//
//	scene.yaml
//	     ↓
//	[host/scene] (build an in-memory host)
//	     ↓
//	[export] / [catalog] (walk materials or node types)
//	     ↓
//	[nodedoc] → [introspect] → [value]
//	     ↓
//	[docio] (indented JSON) or [render/nodelink] (DOT/SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/shadergraph/pkg/export"
//	    "github.com/matzehuels/shadergraph/pkg/host/scene"
//	)
//
//	h, _ := scene.Load("scene.yaml")
//	res, err := export.New(logger).Material(ctx, h, "Wood", "/tmp/Wood_nodes.json")
//	if errors.Aborts(err) {
//	    // the material is missing or does not use nodes
//	}
//	for _, issue := range res.Issues {
//	    logger.Warn(issue.Error())
//	}
//
// # Failure Model
//
// Only a missing material or one without node shading stops an export.
// Properties, extension blocks, and catalog node types that fail are skipped
// and reported as [doc.Issue] values next to the document.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/nodedoc/...            # Specific package
//	go test -run Example                 # Examples only
//
// [host]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/host
// [host/memhost]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/host/memhost
// [host/scene]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/host/scene
// [value]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/value
// [introspect]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/introspect
// [nodedoc]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/nodedoc
// [doc]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/doc
// [doc.Issue]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/doc#Issue
// [export]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/export
// [catalog]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/catalog
// [docio]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/docio
// [errors]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/metrics
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/buildinfo
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/shadergraph/pkg/render/nodelink
package pkg
