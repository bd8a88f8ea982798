package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/value"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type and the default value of every unlinked
	// input to the node labels. When false, only names are shown.
	Detailed bool
}

// ToDOT converts a material graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Each node is a record with its inputs on the left and outputs on the right;
// links attach to the socket ports. Muted nodes and hidden sockets are drawn
// greyed out, invalid links in red.
func ToDOT(g *doc.MaterialGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%s;\n", quote(g.MaterialName))
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ports := make(map[string]portIndex, len(g.Nodes))
	for _, n := range g.Nodes {
		ports[n.Name] = newPortIndex(n)
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		from := endpoint(l.FromNode, ports[l.FromNode].outputs[l.FromSocketIdentifier])
		to := endpoint(l.ToNode, ports[l.ToNode].inputs[l.ToSocketIdentifier])
		var attrs []string
		if !l.IsValid {
			attrs = append(attrs, "color=red", "style=dashed")
		}
		if l.IsHidden {
			attrs = append(attrs, "style=dotted")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %s -> %s [%s];\n", from, to, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// portIndex maps socket identifiers to record port names.
type portIndex struct {
	inputs  map[string]string
	outputs map[string]string
}

func newPortIndex(n doc.Node) portIndex {
	p := portIndex{inputs: map[string]string{}, outputs: map[string]string{}}
	for i, s := range n.Inputs {
		if s.Enabled {
			p.inputs[s.Identifier] = "i" + strconv.Itoa(i)
		}
	}
	for i, s := range n.Outputs {
		if s.Enabled {
			p.outputs[s.Identifier] = "o" + strconv.Itoa(i)
		}
	}
	return p
}

func endpoint(node, port string) string {
	if port == "" {
		return strconv.Quote(node)
	}
	return fmt.Sprintf("%q:%s", node, port)
}

func fmtLabel(n doc.Node, detailed bool) string {
	title := n.Name
	if n.Label != "" {
		title = n.Label
	}
	title = escape(title)
	if detailed {
		title += `\n` + escape(n.IDName)
	}

	ins := make([]string, 0, len(n.Inputs))
	for i, s := range n.Inputs {
		if !s.Enabled {
			continue
		}
		text := escape(s.Name)
		if detailed && !s.IsLinked && s.DefaultValue != nil {
			text += " = " + escape(fmtValue(s.DefaultValue))
		}
		ins = append(ins, fmt.Sprintf("<i%d> %s", i, text))
	}
	outs := make([]string, 0, len(n.Outputs))
	for i, s := range n.Outputs {
		if !s.Enabled {
			continue
		}
		outs = append(outs, fmt.Sprintf("<o%d> %s", i, escape(s.Name)))
	}

	return fmt.Sprintf("{%s|{{%s}|{%s}}}", title, strings.Join(ins, "|"), strings.Join(outs, "|"))
}

func fmtAttrs(n doc.Node, label string) []string {
	attrs := []string{"label=" + quote(label)}
	if n.Mute {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	}
	return attrs
}

// fmtValue prints a normalized value compactly. Vector components are
// rounded to three decimals.
func fmtValue(v any) string {
	switch x := value.Normalize(v).(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if f, ok := e.(float64); ok {
				parts[i] = strconv.FormatFloat(f, 'f', 3, 64)
			} else {
				parts[i] = fmt.Sprint(e)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprint(x)
	}
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

// quote wraps s in a DOT string. Backslashes are left alone so record
// escapes and \n line breaks survive.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// escape quotes the characters that are structural in record labels.
func escape(s string) string {
	return recordEscaper.Replace(s)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
