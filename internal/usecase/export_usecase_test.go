package usecase

import (
	"context"
	"testing"

	"cosmetic-platform-dataset/internal/sqlexport"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_WritesScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	uc := NewExportUsecase(newLogger(), loadDataset(t), fs)

	result, err := uc.Export(context.Background(), "out")
	require.NoError(t, err)

	assert.Equal(t, "out", result.Dir)
	assert.Equal(t, 27, result.Tables)
	assert.Equal(t, 159, result.Rows)
	assert.Len(t, result.Checksum, 16)
	assert.Len(t, result.Files, 30)

	for _, name := range []string{sqlexport.BundleFile, sqlexport.PoliciesFile, sqlexport.RunbookFile, sqlexport.TableFile("users")} {
		ok, err := afero.Exists(fs, "out/"+name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}
