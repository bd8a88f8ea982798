// Package nodedoc serializes a single graph node into a [doc.Node].
//
// Serialization is read-only and best-effort: a property or extension block
// that fails to serialize is left out and reported as a [doc.Issue], while the
// rest of the node is still returned.
//
// # Order
//
// Sockets keep their declared order and properties their declaration order, so
// two exports of the same graph produce identical documents.
//
// # Extensions
//
// Three node types carry state that is not exposed as properties:
//   - color ramps (VALTORGB): modes and the ordered color stops
//   - RGB curves (CURVE_RGB): one control-point list per channel
//   - image textures (TEX_IMAGE): the referenced image, when there is one
package nodedoc

import (
	"fmt"

	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
	"github.com/matzehuels/shadergraph/pkg/introspect"
	"github.com/matzehuels/shadergraph/pkg/value"
)

// Serialize converts n into a document. The returned issues describe
// properties and extension blocks that were skipped or degraded.
func Serialize(n host.Node) (doc.Node, []doc.Issue) {
	out := doc.Node{
		Name:       n.Name(),
		IDName:     n.IDName(),
		Type:       n.Type(),
		Label:      n.Label(),
		Location:   doc.Vec2(n.Location()),
		Width:      doc.Float(n.Width()),
		Height:     doc.Float(n.Height()),
		Hide:       n.Hide(),
		Mute:       n.Mute(),
		Inputs:     make([]doc.InputSocket, 0, len(n.Inputs())),
		Outputs:    make([]doc.OutputSocket, 0, len(n.Outputs())),
		Properties: make(map[string]doc.Property),
	}

	for _, s := range n.Inputs() {
		out.Inputs = append(out.Inputs, Input(s))
	}
	for _, s := range n.Outputs() {
		out.Outputs = append(out.Outputs, Output(s))
	}

	props, issues := properties(n)
	for _, p := range props {
		out.Properties[p.Identifier] = p
	}

	if err := extend(n, &out); err != nil {
		issues = append(issues, doc.Issue{
			Node: n.Name(),
			Err:  errors.Wrap(errors.ErrCodeExtensionRead, err, "%s extension", n.Type()),
		})
	}

	return out, issues
}

// Entry converts a freshly instantiated node into a catalog entry: socket
// summaries without link data, and the type's own properties in declaration
// order.
func Entry(n host.Node) (doc.CatalogEntry, []doc.Issue) {
	out := doc.CatalogEntry{
		IDName:    n.IDName(),
		ClassName: n.IDName(),
		Name:      n.TypeLabel(),
		Label:     n.Label(),
		Inputs:    make([]doc.CatalogInput, 0, len(n.Inputs())),
		Outputs:   make([]doc.CatalogOutput, 0, len(n.Outputs())),
	}
	for _, s := range n.Inputs() {
		out.Inputs = append(out.Inputs, doc.CatalogInput{
			Name:         s.Name(),
			Type:         s.Type(),
			Identifier:   s.Identifier(),
			DefaultValue: defaultValue(s),
		})
	}
	for _, s := range n.Outputs() {
		out.Outputs = append(out.Outputs, doc.CatalogOutput{
			Name:       s.Name(),
			Type:       s.Type(),
			Identifier: s.Identifier(),
		})
	}

	props, issues := properties(n)
	out.Properties = props
	return out, issues
}

// properties documents the node's own properties in declaration order.
// Properties that fail outright are skipped; degraded ones are kept with a
// null current_value. Both are reported.
func properties(n host.Node) ([]doc.Property, []doc.Issue) {
	var issues []doc.Issue
	results := introspect.Walk(n)
	out := make([]doc.Property, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			issues = append(issues, doc.Issue{Node: n.Name(), Property: r.Property.Identifier, Err: r.Err})
			continue
		}
		if r.Degraded != nil {
			issues = append(issues, doc.Issue{Node: n.Name(), Property: r.Property.Identifier, Err: r.Degraded})
		}
		out = append(out, r.Property)
	}
	return out, issues
}

// Input serializes an input socket. Links are recorded only when the socket
// is connected, each naming the source node and its output socket's display
// name.
func Input(s host.Socket) doc.InputSocket {
	out := doc.InputSocket{
		Name:         s.Name(),
		Identifier:   s.Identifier(),
		Type:         s.Type(),
		DefaultValue: defaultValue(s),
		Enabled:      s.Enabled(),
		Hide:         s.Hide(),
		HideValue:    s.HideValue(),
	}
	if links := s.Links(); s.IsLinked() && len(links) > 0 {
		out.IsLinked = true
		out.Links = make([]doc.IncomingLink, len(links))
		for i, l := range links {
			out.Links[i] = doc.IncomingLink{
				FromNode:   l.FromNode().Name(),
				FromSocket: l.FromSocket().Name(),
			}
		}
	}
	return out
}

// Output serializes an output socket. Links name the destination node and
// its input socket's display name.
func Output(s host.Socket) doc.OutputSocket {
	out := doc.OutputSocket{
		Name:         s.Name(),
		Identifier:   s.Identifier(),
		Type:         s.Type(),
		DefaultValue: defaultValue(s),
		Enabled:      s.Enabled(),
		Hide:         s.Hide(),
	}
	if links := s.Links(); s.IsLinked() && len(links) > 0 {
		out.IsLinked = true
		out.Links = make([]doc.OutgoingLink, len(links))
		for i, l := range links {
			out.Links[i] = doc.OutgoingLink{
				ToNode:   l.ToNode().Name(),
				ToSocket: l.ToSocket().Name(),
			}
		}
	}
	return out
}

func defaultValue(s host.Socket) any {
	v, ok := s.DefaultValue()
	if !ok {
		return nil
	}
	return value.Normalize(v)
}

// extend fills the type-specific extension block, recovering from a host
// accessor that panics.
func extend(n host.Node, out *doc.Node) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	switch n.Type() {
	case host.TypeColorRamp:
		ramp, err := n.ColorRamp()
		if err != nil {
			return err
		}
		out.ColorRamp = colorRamp(ramp)
	case host.TypeRGBCurve:
		mapping, err := n.Curves()
		if err != nil {
			return err
		}
		out.Curves = curves(mapping)
	case host.TypeImageTexture:
		im, err := n.Image()
		if err != nil {
			return err
		}
		if im != nil {
			out.Image = image(im)
		}
	}
	return nil
}

func colorRamp(r *host.ColorRamp) *doc.ColorRamp {
	out := &doc.ColorRamp{
		ColorMode:        r.ColorMode,
		HueInterpolation: r.HueInterpolation,
		Interpolation:    r.Interpolation,
		Elements:         make([]doc.RampElement, len(r.Elements)),
	}
	for i, e := range r.Elements {
		out.Elements[i] = doc.RampElement{
			Position: doc.Float(e.Position),
			Color:    doc.Vec4(e.Color),
			Alpha:    doc.Float(e.Alpha),
		}
	}
	return out
}

func curves(m *host.CurveMapping) []doc.Curve {
	out := make([]doc.Curve, len(m.Curves))
	for i, c := range m.Curves {
		points := make([]doc.CurvePoint, len(c.Points))
		for j, p := range c.Points {
			points[j] = doc.CurvePoint{Location: doc.Vec2(p.Location), HandleType: p.HandleType}
		}
		out[i] = doc.Curve{Points: points}
	}
	return out
}

func image(im *host.Image) *doc.Image {
	return &doc.Image{
		Name:       im.Name,
		Filepath:   im.Filepath,
		Size:       im.Size,
		Colorspace: doc.Colorspace{Name: im.Colorspace},
	}
}
