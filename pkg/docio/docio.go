// Package docio reads and writes export documents as JSON.
//
// Material graphs are written with a 2-space indent and the master catalog
// with a 4-space indent. Files are UTF-8 and created with 0644 permissions.
// A file is encoded in full before anything touches disk and then renamed
// into place, so a failed write leaves no partial file behind.
//
// Each document has a Write (io.Writer), Write...File (path), and Read...File
// variant:
//
//	if err := docio.WriteMaterialFile(g, "/tmp/materials/Wood.json"); err != nil {
//	    return err
//	}
//	back, _ := docio.ReadMaterialFile("/tmp/materials/Wood.json")
package docio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/errors"
)

// Indentation used for each document kind.
const (
	MaterialIndent = "  "
	CatalogIndent  = "    "
)

// WriteMaterial encodes a material graph as JSON to w.
func WriteMaterial(g *doc.MaterialGraph, w io.Writer) error {
	return encode(g, w, MaterialIndent)
}

// WriteMaterialFile writes a material graph to a JSON file at path.
func WriteMaterialFile(g *doc.MaterialGraph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteMaterial(g, w) })
}

// WriteCatalog encodes the master catalog as JSON to w.
func WriteCatalog(c *doc.Catalog, w io.Writer) error {
	return encode(c, w, CatalogIndent)
}

// WriteCatalogFile writes the master catalog to a JSON file at path.
func WriteCatalogFile(c *doc.Catalog, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteCatalog(c, w) })
}

// MarshalCatalog encodes the master catalog to bytes.
func MarshalCatalog(c *doc.Catalog) ([]byte, error) {
	return json.MarshalIndent(c, "", CatalogIndent)
}

// UnmarshalCatalog decodes a catalog previously produced by MarshalCatalog.
func UnmarshalCatalog(data []byte) (*doc.Catalog, error) {
	var c doc.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &c, nil
}

// ReadMaterialFile decodes a material graph file.
func ReadMaterialFile(path string) (*doc.MaterialGraph, error) {
	var g doc.MaterialGraph
	if err := readFile(path, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadCatalogFile decodes a catalog file.
func ReadCatalogFile(path string) (*doc.Catalog, error) {
	var c doc.Catalog
	if err := readFile(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MaterialFileName derives the file name a material is exported to.
func MaterialFileName(materialName string) string {
	return errors.SafeFileName(materialName) + ".json"
}

// MaterialPath returns the per-material output path inside dir.
func MaterialPath(dir, materialName string) string {
	return filepath.Join(dir, MaterialFileName(materialName))
}

// FileNames hands out per-material paths inside one directory. Distinct
// materials whose names sanitize to the same file ("a/b" and "a_b") get a
// ".001"-style suffix instead of overwriting each other. Names are compared
// case-insensitively.
type FileNames struct {
	dir  string
	used map[string]bool
}

// NewFileNames starts an empty allocation for dir.
func NewFileNames(dir string) *FileNames {
	return &FileNames{dir: dir, used: make(map[string]bool)}
}

// Path returns the output path for materialName and whether it had to be
// renamed to avoid a collision.
func (f *FileNames) Path(materialName string) (string, bool) {
	base := errors.SafeFileName(materialName)
	name := base
	for i := 1; f.used[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s.%03d", base, i)
	}
	f.used[strings.ToLower(name)] = true
	return filepath.Join(f.dir, name+".json"), name != base
}

func encode(v any, w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename %s", path)
	}
	return nil
}

func readFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
