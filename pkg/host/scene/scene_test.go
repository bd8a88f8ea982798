package scene

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host/memhost"
)

func TestLoad(t *testing.T) {
	h, err := Load("testdata/wood.yaml")
	require.NoError(t, err)

	assert.Equal(t, []int{4, 2, 0}, h.Version())
	require.Len(t, h.Materials(), 3)

	wood := h.Lookup("Wood")
	require.NotNil(t, wood)
	tree := wood.Tree()
	require.NotNil(t, tree)
	assert.Len(t, tree.Nodes(), 5)
	assert.Len(t, tree.Links(), 5)

	grain := tree.Node("Grain")
	require.NotNil(t, grain)
	assert.Equal(t, [2]float64{-600, 200}, grain.Location())
	v, err := grain.Get("interpolation")
	require.NoError(t, err)
	assert.Equal(t, "Cubic", v)
	im, err := grain.Image()
	require.NoError(t, err)
	require.NotNil(t, im)
	assert.Equal(t, [2]int{2048, 2048}, im.Size)

	bump := tree.Node("Bump")
	require.NotNil(t, bump)
	def, ok := bump.Input("Strength").DefaultValue()
	assert.True(t, ok)
	assert.Equal(t, 0.3, def)
	assert.True(t, bump.Input("Height").IsLinked())
}

func TestLoadRampAlphaDefaultsToColor(t *testing.T) {
	h, err := Load("testdata/wood.yaml")
	require.NoError(t, err)

	ramp, err := h.Lookup("Wood").Tree().Node("Ramp").ColorRamp()
	require.NoError(t, err)
	require.Len(t, ramp.Elements, 2)
	assert.Equal(t, 1.0, ramp.Elements[0].Alpha)
	assert.Equal(t, 0.5, ramp.Elements[1].Alpha)
}

func TestDecodeRampStopsByPosition(t *testing.T) {
	src := `
builtins: true
materials:
  - name: M
    use_nodes: true
    nodes:
      - name: Ramp
        type: ShaderNodeValToRGB
        color_ramp:
          elements:
            - {position: 1.0, color: [1, 1, 1, 1]}
            - {position: 0.0, color: [0, 0, 0, 1]}
`
	h, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	ramp, err := h.Lookup("M").Tree().Node("Ramp").ColorRamp()
	require.NoError(t, err)
	require.Len(t, ramp.Elements, 2)
	assert.Equal(t, 0.0, ramp.Elements[0].Position)
	assert.Equal(t, 1.0, ramp.Elements[1].Position)
}

func TestLoadLinksAndObjects(t *testing.T) {
	h, err := Load("testdata/wood.yaml")
	require.NoError(t, err)

	glass := h.Lookup("Glass")
	assert.Equal(t, "BLEND", glass.BlendMethod())
	assert.True(t, glass.UseBackfaceCulling())

	var invalid int
	for _, l := range glass.Tree().Links() {
		if !l.IsValid() {
			invalid++
		}
	}
	assert.Equal(t, 1, invalid)

	grey := h.Lookup("Viewport Grey")
	assert.False(t, grey.UseNodes())
	assert.Nil(t, grey.NodeTree())

	sel := h.SelectedObjects()
	require.Len(t, sel, 2)
	slots := sel[0].Materials()
	require.Len(t, slots, 3)
	assert.Nil(t, slots[1])
}

func TestLoadCustomTypes(t *testing.T) {
	h, err := Load("testdata/wood.yaml")
	require.NoError(t, err)

	def, ok := h.Def("ShaderNodeBump")
	require.True(t, ok)
	require.Len(t, def.Properties, 1)
	assert.Equal(t, "invert", def.Properties[0].Identifier)

	for _, ti := range h.Types() {
		if ti.Name == "ShaderNodeLegacy" {
			assert.False(t, ti.Registered)
		}
	}
}

func TestDecodeRefValues(t *testing.T) {
	src := `
builtins: true
materials:
  - name: M
    use_nodes: true
    nodes:
      - name: Tex
        type: ShaderNodeTexImage
        values:
          image: {ref: Image, name: brick.png}
          projection_blend: {x: 1}
`
	h, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	n := h.Lookup("M").Tree().Node("Tex")
	v, err := n.Get("image")
	require.NoError(t, err)
	assert.Equal(t, memhost.Ref{Type: "Image", Name: "brick.png"}, v)

	// Plain maps are kept as decoded.
	v, err = n.Get("projection_blend")
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, v)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown key",
			src:  "versoin: [4, 2]\n",
			want: "versoin",
		},
		{
			name: "unknown node type",
			src:  "materials:\n  - name: M\n    use_nodes: true\n    nodes:\n      - {type: ShaderNodeNope}\n",
			want: "ShaderNodeNope",
		},
		{
			name: "unknown link node",
			src:  "builtins: true\nmaterials:\n  - name: M\n    use_nodes: true\n    nodes:\n      - {name: V, type: ShaderNodeValue}\n    links:\n      - {from: V, from_socket: Value, to: X, to_socket: Fac}\n",
			want: `"X"`,
		},
		{
			name: "unknown socket",
			src:  "builtins: true\nmaterials:\n  - name: M\n    use_nodes: true\n    nodes:\n      - {name: V, type: ShaderNodeValue, inputs: {Fac: 1}}\n",
			want: "Fac",
		},
		{
			name: "nodes without use_nodes",
			src:  "builtins: true\nmaterials:\n  - name: M\n    nodes:\n      - {type: ShaderNodeValue}\n",
			want: "use_nodes",
		},
		{
			name: "bad property type",
			src:  "types:\n  - name: ShaderNodeX\n    properties:\n      - {identifier: p, type: DOUBLE}\n",
			want: "DOUBLE",
		},
		{
			name: "unknown object material",
			src:  "objects:\n  - {name: Cube, materials: [Nope]}\n",
			want: "Nope",
		},
		{
			name: "duplicate node name",
			src:  "builtins: true\nmaterials:\n  - name: M\n    use_nodes: true\n    nodes:\n      - {name: V, type: ShaderNodeValue}\n      - {name: V, type: ShaderNodeMath}\n",
			want: "duplicate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidScene), "err = %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	h, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, h.Materials())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.True(t, errors.Is(err, errors.ErrCodeIO))
}

func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob("../../../examples/scenes/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			h, err := Load(path)
			require.NoError(t, err)
			assert.NotEmpty(t, h.Materials())
			for _, m := range h.Materials() {
				if tree := m.NodeTree(); tree != nil {
					assert.NotEmpty(t, tree.Nodes(), "material %q", m.Name())
				}
			}
		})
	}
}
