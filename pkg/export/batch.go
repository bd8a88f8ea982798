package export

import (
	"context"
	"os"

	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
)

// Batch is the outcome of exporting several materials into a directory.
type Batch struct {
	Results []*Result
	Failed  []Failure
}

// Failure records a material whose export returned an error.
type Failure struct {
	Material string
	Err      error
}

// Count returns the number of materials written.
func (b *Batch) Count() int { return len(b.Results) }

// All exports every node-using material in the host to dir, one file per
// material named after it. Materials without node shading are skipped
// silently. A failing material is recorded and the batch continues.
func (e *Exporter) All(ctx context.Context, h host.Host, dir string) (*Batch, error) {
	var names []string
	for _, m := range h.Materials() {
		if m.UseNodes() {
			names = append(names, m.Name())
		}
	}
	b, err := e.batch(ctx, h, dir, names)
	if err != nil {
		return b, err
	}
	e.Logger.Infof("Exported %d materials to %s", b.Count(), dir)
	return b, nil
}

// Selected exports the node-using materials assigned to the selected objects.
// A material shared by several objects or slots is exported once; empty slots
// are skipped.
func (e *Exporter) Selected(ctx context.Context, h host.Host, dir string) (*Batch, error) {
	var names []string
	seen := make(map[string]bool)
	for _, obj := range h.SelectedObjects() {
		for _, m := range obj.Materials() {
			if m == nil || !m.UseNodes() || seen[m.Name()] {
				continue
			}
			seen[m.Name()] = true
			names = append(names, m.Name())
		}
	}
	b, err := e.batch(ctx, h, dir, names)
	if err != nil {
		return b, err
	}
	e.Logger.Infof("Exported %d selected materials to %s", b.Count(), dir)
	return b, nil
}

func (e *Exporter) batch(ctx context.Context, h host.Host, dir string, names []string) (*Batch, error) {
	if err := errors.ValidateOutputPath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	b := &Batch{}
	files := docio.NewFileNames(dir)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return b, err
		}
		path, renamed := files.Path(name)
		if renamed {
			e.Logger.Warn("File name already taken, writing to a suffixed file", "material", name, "file", path)
		}
		res, err := e.Material(ctx, h, name, path)
		if err != nil {
			e.Logger.Warn("Could not export material", "material", name, "err", err)
			b.Failed = append(b.Failed, Failure{Material: name, Err: err})
			continue
		}
		b.Results = append(b.Results, res)
	}
	return b, nil
}
