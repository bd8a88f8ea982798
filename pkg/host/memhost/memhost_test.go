package memhost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/shadergraph/pkg/host"
)

func newHost(t *testing.T) *Host {
	t.Helper()
	h := New(4, 2, 0)
	h.RegisterBuiltins()
	return h
}

func TestTypesInNameOrder(t *testing.T) {
	h := newHost(t)
	h.RegisterType(host.TypeInfo{Name: "AAA"})

	types := h.Types()
	require.NotEmpty(t, types)
	assert.Equal(t, "AAA", types[0].Name)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].Name, types[i].Name)
	}
}

func TestRegisterFlags(t *testing.T) {
	h := New()
	h.Register(NodeDef{Name: "ShaderNodeGone", Unregistered: true})
	h.Register(NodeDef{Name: "ShaderNodeTree", NotNode: true})

	byName := map[string]host.TypeInfo{}
	for _, ti := range h.Types() {
		byName[ti.Name] = ti
	}
	assert.False(t, byName["ShaderNodeGone"].Registered)
	assert.True(t, byName["ShaderNodeGone"].IsNode)
	assert.False(t, byName["ShaderNodeTree"].IsNode)
}

func TestNewMaterialUniqueNames(t *testing.T) {
	h := newHost(t)
	a, err := h.NewMaterial("Wood")
	require.NoError(t, err)
	b, err := h.NewMaterial("Wood")
	require.NoError(t, err)

	assert.Equal(t, "Wood", a.Name())
	assert.Equal(t, "Wood.001", b.Name())
	assert.False(t, a.UseNodes(), "new materials start without nodes")
	assert.Nil(t, a.NodeTree())

	_, err = h.NewMaterial("")
	assert.Error(t, err)
}

func TestRemoveMaterial(t *testing.T) {
	h := newHost(t)
	m, err := h.NewMaterial("Scratch")
	require.NoError(t, err)

	require.NoError(t, h.RemoveMaterial(m))
	_, ok := h.Material("Scratch")
	assert.False(t, ok)
	assert.Error(t, h.RemoveMaterial(m), "removing twice should fail")
}

func TestAddNode(t *testing.T) {
	h := newHost(t)
	tree := h.AddMaterial("Wood", true).Tree()
	require.NotNil(t, tree)

	a, err := tree.Add("ShaderNodeMath")
	require.NoError(t, err)
	b, err := tree.Add("ShaderNodeMath")
	require.NoError(t, err)

	assert.Equal(t, "Math", a.Name())
	assert.Equal(t, "Math.001", b.Name())
	assert.Equal(t, DefaultWidth, a.Width())
	assert.Equal(t, "ShaderNodeMath", a.IDName())
	assert.Equal(t, "MATH", a.Type())
	assert.Len(t, tree.Nodes(), 2)

	tree.ClearNodes()
	assert.Empty(t, tree.Nodes())
}

func TestAddNodeFailures(t *testing.T) {
	h := newHost(t)
	boom := errors.New("boom")
	h.Register(NodeDef{Name: "ShaderNodeBroken", FailNew: boom})
	h.Register(NodeDef{Name: "ShaderNodeGone", Unregistered: true})
	tree := h.AddMaterial("Wood", true).Tree()

	_, err := tree.Add("ShaderNodeMissing")
	assert.Error(t, err)
	_, err = tree.Add("ShaderNodeGone")
	assert.Error(t, err)
	_, err = tree.Add("ShaderNodeBroken")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, tree.Nodes())
}

func TestConnect(t *testing.T) {
	h := newHost(t)
	tree := h.AddMaterial("Wood", true).Tree()
	a, _ := tree.Add("ShaderNodeValue")
	b, _ := tree.Add("ShaderNodeMath")
	c, _ := tree.Add("ShaderNodeValue")

	l, err := tree.Connect(a, "Value", b, "Value_001")
	require.NoError(t, err)
	assert.True(t, l.IsValid())
	assert.Equal(t, "Value", l.ToSocket().Name())
	assert.Equal(t, "Value_001", l.ToSocket().Identifier())
	assert.True(t, b.Input("Value_001").IsLinked())
	assert.True(t, a.Output("Value").IsLinked())

	// A second link into the same input replaces the first.
	_, err = tree.Connect(c, "Value", b, "Value_001")
	require.NoError(t, err)
	assert.Len(t, tree.Links(), 1)
	assert.False(t, a.Output("Value").IsLinked())
	assert.Equal(t, c.Name(), b.Input("Value_001").Links()[0].FromNode().Name())

	_, err = tree.Connect(a, "Nope", b, "Value")
	assert.Error(t, err)
	_, err = tree.Connect(a, "Value", b, "Nope")
	assert.Error(t, err)
}

func TestNodeGet(t *testing.T) {
	h := newHost(t)
	tree := h.AddMaterial("Wood", true).Tree()
	n, _ := tree.Add("ShaderNodeTexImage")
	n.SetLocation(10, -20)

	v, err := n.Get("location")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{10, -20}, v)

	v, err = n.Get("interpolation")
	require.NoError(t, err)
	assert.Equal(t, "Linear", v)

	// Declared but unset.
	v, err = n.Get("image")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = n.Get("no_such_property")
	assert.Error(t, err)

	boom := errors.New("boom")
	n.SetReadError("projection", boom)
	_, err = n.Get("projection")
	assert.ErrorIs(t, err, boom)
}

func TestNodeRNAInheritsShaderNode(t *testing.T) {
	h := newHost(t)
	n, _ := h.AddMaterial("Wood", true).Tree().Add("ShaderNodeMath")

	rna := n.RNA()
	assert.Equal(t, "ShaderNodeMath", rna.Identifier())
	require.Len(t, rna.Bases(), 1)
	assert.Equal(t, "ShaderNode", rna.Bases()[0].Identifier())

	var ids []string
	for _, p := range rna.Properties() {
		ids = append(ids, p.Identifier)
	}
	assert.Contains(t, ids, "rna_type")
	assert.Contains(t, ids, "operation")
}

func TestExtensions(t *testing.T) {
	h := newHost(t)
	tree := h.AddMaterial("Wood", true).Tree()

	ramp, _ := tree.Add("ShaderNodeValToRGB")
	r, err := ramp.ColorRamp()
	require.NoError(t, err)
	assert.Len(t, r.Elements, 2)

	// Returned state is a copy.
	r.Elements[0].Position = 0.7
	again, _ := ramp.ColorRamp()
	assert.Equal(t, 0.0, again.Elements[0].Position)

	tex, _ := tree.Add("ShaderNodeTexImage")
	im, err := tex.Image()
	require.NoError(t, err)
	assert.Nil(t, im)

	tex.SetImage(&host.Image{Name: "wood.png"})
	v, _ := tex.Get("image")
	assert.Equal(t, "wood.png", v.(*host.Image).Name)

	math, _ := tree.Add("ShaderNodeMath")
	_, err = math.ColorRamp()
	assert.Error(t, err, "math nodes have no ramp")

	ramp.SetExtensionError(errors.New("boom"))
	_, err = ramp.ColorRamp()
	assert.Error(t, err)
}

func TestColorRampStopsSorted(t *testing.T) {
	h := newHost(t)
	n, err := h.AddMaterial("Wood", true).Tree().Add("ShaderNodeValToRGB")
	require.NoError(t, err)

	n.SetColorRamp(&host.ColorRamp{Elements: []host.RampElement{
		{Position: 0.9, Color: [4]float64{1, 1, 1, 1}, Alpha: 1},
		{Position: 0.1, Color: [4]float64{0, 0, 0, 1}, Alpha: 1},
		{Position: 0.5, Color: [4]float64{0.5, 0.5, 0.5, 1}, Alpha: 1},
	}})

	r, err := n.ColorRamp()
	require.NoError(t, err)
	require.Len(t, r.Elements, 3)
	assert.Equal(t, 0.1, r.Elements[0].Position)
	assert.Equal(t, 0.5, r.Elements[1].Position)
	assert.Equal(t, 0.9, r.Elements[2].Position)
}

func TestFingerprint(t *testing.T) {
	custom := func(fac float64) NodeDef {
		return NodeDef{
			Name:   "ShaderNodeCustom",
			Type:   "CUSTOM",
			Label:  "Custom",
			Inputs: []SocketDef{{Name: "Fac", Identifier: "Fac", Type: "VALUE", Default: fac}},
		}
	}

	a, b := newHost(t), newHost(t)
	a.Register(custom(0.25))
	b.Register(custom(0.25))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "equal definitions")

	c := newHost(t)
	c.Register(custom(0.75))
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint(), "socket default changed")

	d := newHost(t)
	def := custom(0.25)
	def.Properties = []host.Property{{Identifier: "clamp", Name: "Clamp", Type: host.PropertyBoolean}}
	d.Register(def)
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint(), "property added")

	e := newHost(t)
	def = custom(0.25)
	def.ColorRamp = &host.ColorRamp{Elements: []host.RampElement{{Position: 0.3}}}
	e.Register(def)
	assert.NotEqual(t, a.Fingerprint(), e.Fingerprint(), "ramp seed changed")
}

func TestSelectedObjects(t *testing.T) {
	h := newHost(t)
	wood := h.AddMaterial("Wood", true)
	h.AddObject("Cube", true, wood, nil)
	h.AddObject("Plane", false, wood)

	sel := h.SelectedObjects()
	require.Len(t, sel, 1)
	assert.Equal(t, "Cube", sel[0].Name())

	slots := sel[0].Materials()
	require.Len(t, slots, 2)
	assert.Equal(t, "Wood", slots[0].Name())
	assert.Nil(t, slots[1], "empty slot must be an untyped nil")
}

func TestRefPlaceholderName(t *testing.T) {
	name, ok := Ref{Type: "Image", Name: "wood.png"}.RefName()
	assert.True(t, ok)
	assert.Equal(t, "wood.png", name)

	_, ok = Ref{Type: "ColorRamp"}.RefName()
	assert.False(t, ok)
}
