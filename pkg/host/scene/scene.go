// Package scene loads YAML scene snapshots into an in-memory host.
//
// A snapshot describes everything an export reads: the host version, the
// registered node types, materials with their node graphs, and the selected
// objects. Decoding is strict: unknown keys are errors, so a typo never
// silently drops part of a graph.
//
//	version: [4, 2, 0]
//	builtins: true
//	materials:
//	  - name: Wood
//	    use_nodes: true
//	    nodes:
//	      - {name: Ramp, type: ShaderNodeValToRGB, location: [-300, 0]}
//	      - {name: Shader, type: ShaderNodeBsdfPrincipled}
//	    links:
//	      - {from: Ramp, from_socket: Color, to: Shader, to_socket: Base Color}
//	objects:
//	  - {name: Cube, selected: true, materials: [Wood]}
//
// Property values may reference other data blocks with {ref: Type, name: N};
// such values are exported as placeholders.
package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
	"github.com/matzehuels/shadergraph/pkg/host/memhost"
)

// Scene is the snapshot document.
type Scene struct {
	Version   []int      `yaml:"version"`
	Builtins  bool       `yaml:"builtins"`
	Types     []Type     `yaml:"types"`
	Materials []Material `yaml:"materials"`
	Objects   []Object   `yaml:"objects"`
}

// Type defines a node type.
type Type struct {
	Name         string         `yaml:"name"`
	Type         string         `yaml:"type"`
	Label        string         `yaml:"label"`
	Width        float64        `yaml:"width"`
	Height       float64        `yaml:"height"`
	Inputs       []Socket       `yaml:"inputs"`
	Outputs      []Socket       `yaml:"outputs"`
	Properties   []Property     `yaml:"properties"`
	Defaults     map[string]any `yaml:"defaults"`
	NotNode      bool           `yaml:"not_node"`
	Unregistered bool           `yaml:"unregistered"`
	Fail         string         `yaml:"fail"`
}

// Socket defines a socket on a node type.
type Socket struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier"`
	Type       string `yaml:"type"`
	Default    any    `yaml:"default"`
	Disabled   bool   `yaml:"disabled"`
	Hidden     bool   `yaml:"hidden"`
	HideValue  bool   `yaml:"hide_value"`
}

// Property defines a property descriptor.
type Property struct {
	Identifier  string   `yaml:"identifier"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	ArrayLength int      `yaml:"array_length"`
	Min         float64  `yaml:"min"`
	Max         float64  `yaml:"max"`
	Items       []string `yaml:"items"`
}

// Material is a material and its node graph.
type Material struct {
	Name            string `yaml:"name"`
	UseNodes        bool   `yaml:"use_nodes"`
	BlendMethod     string `yaml:"blend_method"`
	BackfaceCulling bool   `yaml:"backface_culling"`
	Nodes           []Node `yaml:"nodes"`
	Links           []Link `yaml:"links"`
}

// Node is one node instance. Inputs override socket defaults by identifier;
// Values override property values by identifier.
type Node struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Label     string         `yaml:"label"`
	Location  [2]float64     `yaml:"location"`
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	Hide      bool           `yaml:"hide"`
	Mute      bool           `yaml:"mute"`
	Inputs    map[string]any `yaml:"inputs"`
	Values    map[string]any `yaml:"values"`
	ColorRamp *ColorRamp     `yaml:"color_ramp"`
	Curves    [][]CurvePoint `yaml:"curves"`
	Image     *Image         `yaml:"image"`
}

// ColorRamp is color-ramp state.
type ColorRamp struct {
	ColorMode        string        `yaml:"color_mode"`
	Interpolation    string        `yaml:"interpolation"`
	HueInterpolation string        `yaml:"hue_interpolation"`
	Elements         []RampElement `yaml:"elements"`
}

// RampElement is a ramp stop. Alpha defaults to the color's fourth channel.
type RampElement struct {
	Position float64    `yaml:"position"`
	Color    [4]float64 `yaml:"color"`
	Alpha    *float64   `yaml:"alpha"`
}

// CurvePoint is a curve control point.
type CurvePoint struct {
	Location   [2]float64 `yaml:"location"`
	HandleType string     `yaml:"handle_type"`
}

// Image is an image referenced by an image-texture node.
type Image struct {
	Name       string `yaml:"name"`
	Filepath   string `yaml:"filepath"`
	Size       [2]int `yaml:"size"`
	Colorspace string `yaml:"colorspace"`
}

// Link connects two sockets by node name and socket identifier.
type Link struct {
	From       string `yaml:"from"`
	FromSocket string `yaml:"from_socket"`
	To         string `yaml:"to"`
	ToSocket   string `yaml:"to_socket"`
	Valid      *bool  `yaml:"valid"`
	Hidden     bool   `yaml:"hidden"`
}

// Object is a scene object. An empty material name is an empty slot.
type Object struct {
	Name      string   `yaml:"name"`
	Selected  bool     `yaml:"selected"`
	Materials []string `yaml:"materials"`
}

// Load reads a snapshot file and builds a host from it.
func Load(path string) (*memhost.Host, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open scene")
	}
	defer f.Close()
	h, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Decode reads a snapshot and builds a host from it.
func Decode(r io.Reader) (*memhost.Host, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	return Build(&s)
}

// Build creates a host from a decoded snapshot.
func Build(s *Scene) (*memhost.Host, error) {
	h := memhost.New(s.Version...)
	if s.Builtins {
		h.RegisterBuiltins()
	}
	for _, t := range s.Types {
		def, err := t.def()
		if err != nil {
			return nil, err
		}
		h.Register(def)
	}
	for _, m := range s.Materials {
		if err := m.build(h); err != nil {
			return nil, err
		}
	}
	for _, o := range s.Objects {
		slots := make([]*memhost.Material, len(o.Materials))
		for i, name := range o.Materials {
			if name == "" {
				continue
			}
			if slots[i] = h.Lookup(name); slots[i] == nil {
				return nil, invalid("object %q: unknown material %q", o.Name, name)
			}
		}
		h.AddObject(o.Name, o.Selected, slots...)
	}
	return h, nil
}

func (t Type) def() (memhost.NodeDef, error) {
	if t.Name == "" {
		return memhost.NodeDef{}, invalid("node type without a name")
	}
	def := memhost.NodeDef{
		Name:         t.Name,
		Type:         t.Type,
		Label:        t.Label,
		Width:        t.Width,
		Height:       t.Height,
		NotNode:      t.NotNode,
		Unregistered: t.Unregistered,
	}
	if t.Fail != "" {
		def.FailNew = fmt.Errorf("%s", t.Fail)
	}
	for _, s := range t.Inputs {
		def.Inputs = append(def.Inputs, s.def())
	}
	for _, s := range t.Outputs {
		def.Outputs = append(def.Outputs, s.def())
	}
	for _, p := range t.Properties {
		hp, err := p.descriptor()
		if err != nil {
			return memhost.NodeDef{}, invalid("type %q: %v", t.Name, err)
		}
		def.Properties = append(def.Properties, hp)
	}
	if len(t.Defaults) > 0 {
		def.Defaults = make(map[string]any, len(t.Defaults))
		for id, v := range t.Defaults {
			def.Defaults[id] = toValue(v)
		}
	}
	return def, nil
}

func (s Socket) def() memhost.SocketDef {
	id := s.Identifier
	if id == "" {
		id = s.Name
	}
	return memhost.SocketDef{
		Name:       s.Name,
		Identifier: id,
		Type:       s.Type,
		Default:    toValue(s.Default),
		Disabled:   s.Disabled,
		Hidden:     s.Hidden,
		HideValue:  s.HideValue,
	}
}

func (p Property) descriptor() (host.Property, error) {
	if p.Identifier == "" {
		return host.Property{}, fmt.Errorf("property without an identifier")
	}
	typ, err := host.ParsePropertyType(p.Type)
	if err != nil {
		return host.Property{}, fmt.Errorf("property %q: %w", p.Identifier, err)
	}
	out := host.Property{
		Identifier:  p.Identifier,
		Name:        p.Name,
		Description: p.Description,
		Type:        typ,
		ArrayLength: p.ArrayLength,
		HardMin:     p.Min,
		HardMax:     p.Max,
	}
	for _, item := range p.Items {
		out.EnumItems = append(out.EnumItems, host.EnumItem{Identifier: item, Name: item})
	}
	return out, nil
}

func (m Material) build(h *memhost.Host) error {
	if m.Name == "" {
		return invalid("material without a name")
	}
	mat := h.AddMaterial(m.Name, m.UseNodes)
	mat.BackfaceCulling = m.BackfaceCulling
	if m.BlendMethod != "" {
		mat.BlendMode = m.BlendMethod
	}
	if len(m.Nodes) == 0 && len(m.Links) == 0 {
		return nil
	}
	if !m.UseNodes {
		return invalid("material %q: nodes given but use_nodes is false", m.Name)
	}

	tree := mat.Tree()
	for _, n := range m.Nodes {
		if err := n.build(tree); err != nil {
			return invalid("material %q: %v", m.Name, err)
		}
	}
	for _, l := range m.Links {
		if err := l.build(tree); err != nil {
			return invalid("material %q: %v", m.Name, err)
		}
	}
	return nil
}

func (n Node) build(tree *memhost.NodeTree) error {
	node, err := tree.Add(n.Type)
	if err != nil {
		return err
	}
	if n.Name != "" {
		if other := tree.Node(n.Name); other != nil && other != node {
			return fmt.Errorf("duplicate node name %q", n.Name)
		}
		node.SetName(n.Name)
	}
	node.SetLabel(n.Label)
	node.SetLocation(n.Location[0], n.Location[1])
	if n.Width != 0 || n.Height != 0 {
		w, h := node.Width(), node.Height()
		if n.Width != 0 {
			w = n.Width
		}
		if n.Height != 0 {
			h = n.Height
		}
		node.SetSize(w, h)
	}
	node.SetHide(n.Hide)
	node.SetMute(n.Mute)

	for id, v := range n.Inputs {
		s := node.Input(id)
		if s == nil {
			return fmt.Errorf("node %q: no input %q", node.Name(), id)
		}
		s.SetDefault(toValue(v))
	}
	for id, v := range n.Values {
		node.SetValue(id, toValue(v))
	}

	if r := n.ColorRamp; r != nil {
		ramp := &host.ColorRamp{
			ColorMode:        r.ColorMode,
			Interpolation:    r.Interpolation,
			HueInterpolation: r.HueInterpolation,
		}
		for _, e := range r.Elements {
			alpha := e.Color[3]
			if e.Alpha != nil {
				alpha = *e.Alpha
			}
			ramp.Elements = append(ramp.Elements, host.RampElement{Position: e.Position, Color: e.Color, Alpha: alpha})
		}
		node.SetColorRamp(ramp)
	}
	if n.Curves != nil {
		mapping := &host.CurveMapping{}
		for _, points := range n.Curves {
			c := host.Curve{}
			for _, p := range points {
				c.Points = append(c.Points, host.CurvePoint{Location: p.Location, HandleType: p.HandleType})
			}
			mapping.Curves = append(mapping.Curves, c)
		}
		node.SetCurves(mapping)
	}
	if im := n.Image; im != nil {
		node.SetImage(&host.Image{Name: im.Name, Filepath: im.Filepath, Size: im.Size, Colorspace: im.Colorspace})
	}
	return nil
}

func (l Link) build(tree *memhost.NodeTree) error {
	from, to := tree.Node(l.From), tree.Node(l.To)
	if from == nil {
		return fmt.Errorf("link: unknown node %q", l.From)
	}
	if to == nil {
		return fmt.Errorf("link: unknown node %q", l.To)
	}
	link, err := tree.Connect(from, l.FromSocket, to, l.ToSocket)
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}
	if l.Valid != nil {
		link.SetValid(*l.Valid)
	}
	link.SetHidden(l.Hidden)
	return nil
}

// toValue turns {ref: Type, name: N} maps into reference values. Everything
// else is kept as decoded.
func toValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	typ, ok := m["ref"].(string)
	if !ok {
		return v
	}
	name, _ := m["name"].(string)
	return memhost.Ref{Type: typ, Name: name}
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidScene, format, args...)
}
