// Package nodelink renders material node graphs as node-link diagrams.
//
// # Overview
//
// This package draws an exported [doc.MaterialGraph] with Graphviz, the way
// the host's node editor lays it out: nodes as records with input sockets on
// the left and output sockets on the right, and links running between the
// socket ports from left to right.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// Disabled sockets are left out of the diagram. Links whose endpoint socket
// is not drawn attach to the node itself.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
