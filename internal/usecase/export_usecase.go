package usecase

import (
	"context"

	"cosmetic-platform-dataset/internal/seed"
	"cosmetic-platform-dataset/internal/sqlexport"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type ExportResult struct {
	Dir      string   `json:"dir"`
	Files    []string `json:"files"`
	Tables   int      `json:"tables"`
	Rows     int      `json:"rows"`
	Checksum string   `json:"checksum"`
}

type ExportUsecase interface {
	Export(ctx context.Context, dir string) (*ExportResult, error)
}

type exportUsecase struct {
	log     *logrus.Logger
	dataset *seed.Dataset
	writer  *sqlexport.Writer
}

func NewExportUsecase(log *logrus.Logger, dataset *seed.Dataset, fs afero.Fs) ExportUsecase {
	return &exportUsecase{
		log:     log,
		dataset: dataset,
		writer:  sqlexport.NewWriter(fs),
	}
}

// Export writes the per-table scripts, the bundle, the policy script and
// the runbook to dir.
func (u *exportUsecase) Export(ctx context.Context, dir string) (*ExportResult, error) {
	checksum, err := u.dataset.Checksum()
	if err != nil {
		return nil, err
	}

	files, err := u.writer.Write(dir, u.dataset)
	if err != nil {
		u.log.Warnf("Failed to export dataset: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"dir": dir, "files": len(files)}).Info("Dataset exported")
	return &ExportResult{
		Dir:      dir,
		Files:    files,
		Tables:   len(u.dataset.Tables()),
		Rows:     u.dataset.TotalRows(),
		Checksum: checksum,
	}, nil
}
