package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/errors"
)

const testScene = `version: [4, 2, 0]
builtins: true
materials:
  - name: Simple
    use_nodes: true
    blend_method: OPAQUE
    nodes:
      - name: Principled
        type: ShaderNodeBsdfPrincipled
      - name: Output
        type: ShaderNodeOutputMaterial
    links:
      - {from: Principled, from_socket: BSDF, to: Output, to_socket: Surface}
  - name: Unused
    use_nodes: true
    nodes:
      - name: Value
        type: ShaderNodeValue
  - name: Flat
    use_nodes: false
objects:
  - name: Cube
    selected: true
    materials: [Simple, Flat]
  - name: Plane
    selected: false
    materials: [Unused]
`

// setupEnv points the config and cache directories at fresh temp dirs and
// writes the test scene, returning its path.
func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	return c.Execute(context.Background(), args...)
}

// executeOut runs the command tree and returns what it wrote to its output
// stream.
func executeOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"material", "materials", "catalog", "render", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestMaterialCommand(t *testing.T) {
	scene := setupEnv(t)
	out := filepath.Join(t.TempDir(), "simple.json")

	if err := execute(t, "material", scene, "Simple", "-o", out); err != nil {
		t.Fatalf("material: %v", err)
	}

	g, err := docio.ReadMaterialFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if g.MaterialName != "Simple" {
		t.Errorf("material_name = %q, want Simple", g.MaterialName)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Errorf("got %d nodes and %d links, want 2 and 1", len(g.Nodes), len(g.Links))
	}
}

func TestMaterialCommandAborts(t *testing.T) {
	scene := setupEnv(t)
	out := filepath.Join(t.TempDir(), "out.json")

	tests := []struct {
		name     string
		material string
		code     errors.Code
	}{
		{"missing material", "Nope", errors.ErrCodeMaterialNotFound},
		{"no nodes", "Flat", errors.ErrCodeNotApplicable},
		{"empty name", "", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, "material", scene, tt.material, "-o", out)
			if !errors.Is(err, tt.code) {
				t.Errorf("material %q error = %v, want code %s", tt.material, err, tt.code)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output file written for aborted export")
			}
		})
	}
}

func TestMaterialCommandMissingScene(t *testing.T) {
	setupEnv(t)
	err := execute(t, "material", filepath.Join(t.TempDir(), "none.yaml"), "Simple")
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeIO)
	}
}

func TestMaterialsCommand(t *testing.T) {
	scene := setupEnv(t)

	tests := []struct {
		name  string
		args  []string
		want  []string
		avoid []string
	}{
		{"all", nil, []string{"Simple.json", "Unused.json"}, []string{"Flat.json"}},
		{"selected", []string{"--selected"}, []string{"Simple.json"}, []string{"Unused.json", "Flat.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "materials")
			args := append([]string{"materials", scene, "-d", dir}, tt.args...)
			if err := execute(t, args...); err != nil {
				t.Fatalf("materials: %v", err)
			}
			for _, name := range tt.want {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("%s not written: %v", name, err)
				}
			}
			for _, name := range tt.avoid {
				if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
					t.Errorf("%s should not be written", name)
				}
			}
		})
	}
}

func TestMaterialsCommandConfigDir(t *testing.T) {
	scene := setupEnv(t)
	dir := filepath.Join(t.TempDir(), "from-config")
	cfg := writeConfig(t, t.TempDir(), `materials_dir = "`+dir+`"`)

	if err := execute(t, "--config", cfg, "materials", scene); err != nil {
		t.Fatalf("materials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Simple.json")); err != nil {
		t.Errorf("Simple.json not written to configured dir: %v", err)
	}
}

func TestCatalogCommand(t *testing.T) {
	scene := setupEnv(t)
	out := filepath.Join(t.TempDir(), "catalog.json")

	if err := execute(t, "catalog", scene, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("catalog: %v", err)
	}

	c, err := docio.ReadCatalogFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if c.HostVersion != "4.2.0" {
		t.Errorf("blender_version = %q, want 4.2.0", c.HostVersion)
	}
	if _, ok := c.ShaderNodes["ShaderNodeBsdfPrincipled"]; !ok {
		t.Error("catalog misses ShaderNodeBsdfPrincipled")
	}

	dir, _ := cacheDir()
	if entries, _ := filepath.Glob(filepath.Join(dir, "*", "*.json")); len(entries) != 0 {
		t.Errorf("--no-cache left %d cache entries", len(entries))
	}
}

func TestCatalogCommandCacheAndClear(t *testing.T) {
	scene := setupEnv(t)
	out := filepath.Join(t.TempDir(), "catalog.json")

	for i := 0; i < 2; i++ {
		if err := execute(t, "catalog", scene, "-o", out); err != nil {
			t.Fatalf("catalog run %d: %v", i, err)
		}
	}

	dir, _ := cacheDir()
	entries, _ := filepath.Glob(filepath.Join(dir, "*", "*.json"))
	if len(entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(entries))
	}

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = filepath.Glob(filepath.Join(dir, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache entries after clear = %d, want 0", len(entries))
	}
}

func TestCacheListCommand(t *testing.T) {
	scene := setupEnv(t)

	out, err := executeOut(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if strings.Contains(out, "catalog") {
		t.Errorf("empty cache listed entries:\n%s", out)
	}

	if err := execute(t, "catalog", scene, "-o", filepath.Join(t.TempDir(), "catalog.json")); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	out, err = executeOut(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "catalog") || !strings.Contains(out, "Expires") {
		t.Errorf("cache list output:\n%s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	setupEnv(t)
	out, err := executeOut(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the binary name")
	}
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for an unsupported shell")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	scene := setupEnv(t)
	out := filepath.Join(t.TempDir(), "simple.dot")

	if err := execute(t, "render", scene, "Simple", "-o", out, "--detailed"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("render output is not DOT:\n%s", data)
	}
}

func TestRenderCommandFormat(t *testing.T) {
	scene := setupEnv(t)
	err := execute(t, "render", scene, "Simple", "-o", filepath.Join(t.TempDir(), "simple.pdf"))
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("error = %v, want unsupported format", err)
	}
}

func TestMetricsFile(t *testing.T) {
	scene := setupEnv(t)
	metricsPath := filepath.Join(t.TempDir(), "shadergraph.prom")
	cfg := writeConfig(t, t.TempDir(), `metrics_file = "`+metricsPath+`"`)

	_ = execute(t, "--config", cfg, "material", scene, "Nope", "-o", filepath.Join(t.TempDir(), "x.json"))

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file not written after failed command: %v", err)
	}
	if !strings.Contains(string(data), `shadergraph_material_exports_total{result="MATERIAL_NOT_FOUND"} 1`) {
		t.Errorf("metrics file misses the failed export:\n%s", data)
	}
}
