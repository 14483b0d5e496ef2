package sqlexport

import (
	"fmt"
	"path/filepath"

	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/seed"

	"github.com/spf13/afero"
)

// Writer writes the export artifact to a filesystem
type Writer struct {
	Fs afero.Fs
}

func NewWriter(fs afero.Fs) *Writer {
	return &Writer{Fs: fs}
}

// Write renders ds into dir and returns the written paths in write order:
// one script per table, the bundle, the policy script and the runbook.
func (w *Writer) Write(dir string, ds *seed.Dataset) ([]string, error) {
	if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	write := func(name, content string) error {
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(w.Fs, path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	for _, t := range ds.Tables() {
		script, err := RenderTable(t)
		if err != nil {
			return written, err
		}
		if err := write(TableFile(t.Spec.Name), script); err != nil {
			return written, err
		}
	}

	bundle, err := RenderBundle(ds)
	if err != nil {
		return written, err
	}
	if err := write(BundleFile, bundle); err != nil {
		return written, err
	}
	if err := write(PoliciesFile, policy.Render(specs(ds))); err != nil {
		return written, err
	}

	runbook, err := RenderRunbook(ds)
	if err != nil {
		return written, err
	}
	if err := write(RunbookFile, runbook); err != nil {
		return written, err
	}
	return written, nil
}
